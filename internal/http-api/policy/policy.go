// Package policy decides whether a requester may perform an action on a
// resource. Decisions are pure: every relation the rules consult
// (authorship, board moderation, role flags) is passed in by the caller,
// which resolves the resource first: a missing resource is a NotFound
// before policy ever runs.
package policy

// Action names a mutating operation on a resource. Reads are open and
// never reach the policy.
type Action string

const (
	ActionEdit    Action = "edit"
	ActionDelete  Action = "delete"
	ActionFeature Action = "feature" // set or clear a post's featured flag

	ActionCreateBoard      Action = "createBoard"
	ActionChangeBoard      Action = "changeBoard"
	ActionDeleteBoard      Action = "deleteBoard"
	ActionManageModerators Action = "manageModerators"
)

// Requester is the caller's identity as the rules see it.
type Requester struct {
	ID          string
	IsSuperuser bool
	IsStaff     bool
}

// Resource carries the object-specific relations for content rules.
type Resource struct {
	AuthorID string
	// ModeratedByRequester is true when the requester holds a moderator
	// assignment on the board that owns the resource's post.
	ModeratedByRequester bool
}

// Decide evaluates the content rules in fixed order, first match wins:
// superuser, board moderator, author. Authors may edit and delete their
// own content but may never touch the featured flag.
func Decide(req Requester, action Action, res Resource) bool {
	switch action {
	case ActionCreateBoard, ActionChangeBoard, ActionDeleteBoard, ActionManageModerators:
		return DecideBoardManagement(req, action)
	}

	if req.IsSuperuser {
		return true
	}
	if res.ModeratedByRequester {
		return true
	}
	if req.ID == res.AuthorID {
		return action == ActionEdit || action == ActionDelete
	}
	return false
}

// DecideBoardManagement keys off capability grants rather than
// ownership: superuser first, then the staff capability set. Moderators
// get no say here.
func DecideBoardManagement(req Requester, action Action) bool {
	if req.IsSuperuser {
		return true
	}
	switch action {
	case ActionCreateBoard, ActionChangeBoard, ActionDeleteBoard, ActionManageModerators:
		return req.IsStaff
	}
	return false
}
