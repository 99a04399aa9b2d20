package service

import (
	"context"
	"errors"

	"forumhub/internal/http-api/dto"
	"forumhub/internal/http-api/models"
	"forumhub/internal/http-api/repository"

	"gorm.io/gorm"
)

// NotificationService is the dispatcher side of every content mutation:
// it persists notifications, retracts them when the triggering
// interaction is reversed, and renders stored kind+id references into
// display payloads.
type NotificationService interface {
	Dispatch(ctx context.Context, n Event) error
	Retract(ctx context.Context, recipientID string, verb models.Verb, actionKind string, actionID int64) error
	List(ctx context.Context, recipientID string, page, pageSize int) ([]dto.NotificationView, int64, error)
	Get(ctx context.Context, recipientID string, notificationID int64) (*dto.NotificationView, error)
	MarkRead(ctx context.Context, recipientID string, notificationID int64) error
	MarkAllRead(ctx context.Context, recipientID string) error
	MarkUnread(ctx context.Context, recipientID string, notificationID int64) error
}

// Event is one content-mutation occurrence to notify about. ActionKind
// and ActionID are optional; when the verb has no secondary entity the
// target doubles as the action object so retraction can still match.
type Event struct {
	ActorID     string
	RecipientID string
	Verb        models.Verb
	Description string
	TargetKind  string
	TargetID    int64
	ActionKind  string
	ActionID    *int64
}

type notificationService struct {
	repo        repository.NotificationRepository
	postRepo    repository.PostRepository
	boardRepo   repository.BoardRepository
	commentRepo repository.CommentRepository
}

func NewNotificationService(
	repo repository.NotificationRepository,
	postRepo repository.PostRepository,
	boardRepo repository.BoardRepository,
	commentRepo repository.CommentRepository,
) NotificationService {
	return &notificationService{
		repo:        repo,
		postRepo:    postRepo,
		boardRepo:   boardRepo,
		commentRepo: commentRepo,
	}
}

func (s *notificationService) Dispatch(ctx context.Context, e Event) error {
	notification := &models.Notification{
		ActorID:     e.ActorID,
		RecipientID: e.RecipientID,
		Verb:        e.Verb,
		Description: e.Description,
		TargetKind:  e.TargetKind,
		TargetID:    e.TargetID,
		ActionKind:  e.ActionKind,
		ActionID:    e.ActionID,
		Unread:      true,
	}
	return s.repo.Create(ctx, notification)
}

func (s *notificationService) Retract(ctx context.Context, recipientID string, verb models.Verb, actionKind string, actionID int64) error {
	return s.repo.DeleteMatching(ctx, recipientID, verb, actionKind, actionID)
}

func (s *notificationService) List(ctx context.Context, recipientID string, page, pageSize int) ([]dto.NotificationView, int64, error) {
	notifications, total, err := s.repo.ListByRecipient(ctx, recipientID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	views := make([]dto.NotificationView, 0, len(notifications))
	for i := range notifications {
		views = append(views, s.render(&notifications[i]))
	}
	return views, total, nil
}

func (s *notificationService) Get(ctx context.Context, recipientID string, notificationID int64) (*dto.NotificationView, error) {
	notification, err := s.repo.GetByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if notification.RecipientID != recipientID {
		return nil, ErrNotFound
	}
	view := s.render(notification)
	return &view, nil
}

func (s *notificationService) MarkRead(ctx context.Context, recipientID string, notificationID int64) error {
	return asNotFound(s.repo.MarkRead(ctx, recipientID, notificationID))
}

func (s *notificationService) MarkAllRead(ctx context.Context, recipientID string) error {
	return s.repo.MarkAllRead(ctx, recipientID)
}

func (s *notificationService) MarkUnread(ctx context.Context, recipientID string, notificationID int64) error {
	return asNotFound(s.repo.MarkUnread(ctx, recipientID, notificationID))
}

func asNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// render denormalizes one notification. A reference whose entity is gone
// resolves to a tombstone; a single dangling notification must never
// break the listing.
func (s *notificationService) render(n *models.Notification) dto.NotificationView {
	view := dto.NotificationView{
		ID:          n.ID,
		Actor:       dto.FromModelToUserDesc(&n.Actor),
		Verb:        n.Verb,
		Description: n.Description,
		Target:      s.resolve(n.TargetKind, n.TargetID),
		Unread:      n.Unread,
		Timestamp:   n.CreatedAt,
	}
	if n.ActionID != nil {
		view.ActionObject = s.resolve(n.ActionKind, *n.ActionID)
	}
	return view
}

func (s *notificationService) resolve(kind string, id int64) any {
	switch kind {
	case models.KindPost:
		post, err := s.postRepo.GetByID(id)
		if err != nil {
			return dto.NewTombstone(id)
		}
		return dto.FromModelToPostDesc(post)
	case models.KindBoard:
		board, err := s.boardRepo.GetByID(id)
		if err != nil {
			return dto.NewTombstone(id)
		}
		return dto.FromModelToBoardDesc(board)
	case models.KindComment:
		comment, err := s.commentRepo.GetByID(id)
		if err != nil {
			return dto.NewTombstone(id)
		}
		return dto.FromModelToCommentDesc(comment)
	}
	return nil
}
