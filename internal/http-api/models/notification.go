package models

import "time"

// Verb is the closed set of notification event kinds.
type Verb string

const (
	VerbNewPost         Verb = "newPost"
	VerbUpdatePost      Verb = "updatePost"
	VerbDeletePost      Verb = "deletePost"
	VerbLikePost        Verb = "likePost"
	VerbCollectPost     Verb = "collectPost"
	VerbCommentPost     Verb = "commentPost"
	VerbReplyComment    Verb = "replyComment"
	VerbLikeComment     Verb = "likeComment"
	VerbCollectComment  Verb = "collectComment"
	VerbModerator       Verb = "moderator"
	VerbRemoveModerator Verb = "removeModerator"
)

// Entity kinds a notification can point at.
const (
	KindPost    = "post"
	KindBoard   = "board"
	KindComment = "comment"
)

// Notification records that an actor did something the recipient should
// hear about. Target and action object are stored as kind+id pairs, not
// foreign keys: the referenced entity may be deleted independently and
// rendering degrades to a tombstone instead of breaking.
type Notification struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorID     string `gorm:"type:uuid;not null" json:"actor_id"`
	RecipientID string `gorm:"type:uuid;not null;index" json:"recipient_id"`
	Verb        Verb   `gorm:"type:varchar(32);not null" json:"verb"`
	Description string `gorm:"type:text" json:"description"`

	TargetKind string `gorm:"type:varchar(16);not null" json:"target_kind"`
	TargetID   int64  `gorm:"not null" json:"target_id"`
	ActionKind string `gorm:"type:varchar(16)" json:"action_kind,omitempty"`
	ActionID   *int64 `json:"action_id,omitempty"`

	Unread    bool      `gorm:"default:true;index" json:"unread"`
	CreatedAt time.Time `json:"created_at"`

	// Associations
	Actor     User `json:"actor,omitempty" gorm:"foreignKey:ActorID;constraint:OnDelete:CASCADE;"`
	Recipient User `json:"recipient,omitempty" gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE;"`
}

func (Notification) TableName() string {
	return "notifications"
}
