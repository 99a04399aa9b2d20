package service

import (
	"context"
	"testing"

	"forumhub/internal/http-api/dto"
	"forumhub/internal/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type notificationFixture struct {
	repo        *MockNotificationRepository
	postRepo    *MockPostRepository
	boardRepo   *MockBoardRepository
	commentRepo *MockCommentRepository
	svc         NotificationService
}

func newNotificationFixture() *notificationFixture {
	f := &notificationFixture{
		repo:        new(MockNotificationRepository),
		postRepo:    new(MockPostRepository),
		boardRepo:   new(MockBoardRepository),
		commentRepo: new(MockCommentRepository),
	}
	f.svc = NewNotificationService(f.repo, f.postRepo, f.boardRepo, f.commentRepo)
	return f
}

func TestDispatch_PersistsUnread(t *testing.T) {
	f := newNotificationFixture()
	actionID := int64(10)
	f.repo.On("Create", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
		return n.Unread &&
			n.ActorID == "fan" && n.RecipientID == "writer" &&
			n.Verb == models.VerbLikePost &&
			n.TargetKind == models.KindPost && n.TargetID == 1 &&
			n.ActionID != nil && *n.ActionID == 10
	})).Return(nil)

	err := f.svc.Dispatch(context.Background(), Event{
		ActorID:     "fan",
		RecipientID: "writer",
		Verb:        models.VerbLikePost,
		Description: "liked your post",
		TargetKind:  models.KindPost,
		TargetID:    1,
		ActionKind:  models.KindPost,
		ActionID:    &actionID,
	})

	assert.NoError(t, err)
	f.repo.AssertExpectations(t)
}

func TestRetract_DelegatesTriple(t *testing.T) {
	f := newNotificationFixture()
	f.repo.On("DeleteMatching", mock.Anything, "writer", models.VerbLikePost, models.KindPost, int64(1)).
		Return(nil)

	err := f.svc.Retract(context.Background(), "writer", models.VerbLikePost, models.KindPost, 1)

	assert.NoError(t, err)
	f.repo.AssertExpectations(t)
}

// A notification whose target has since been deleted renders as a
// tombstone instead of breaking the listing.
func TestList_DanglingTargetRendersTombstone(t *testing.T) {
	f := newNotificationFixture()
	actionID := int64(77)
	f.repo.On("ListByRecipient", mock.Anything, "writer", 1, 10).
		Return([]models.Notification{{
			ID:          1,
			ActorID:     "mod",
			Actor:       models.User{ID: "mod", Username: "mod"},
			RecipientID: "writer",
			Verb:        models.VerbDeletePost,
			TargetKind:  models.KindPost,
			TargetID:    77,
			ActionKind:  models.KindPost,
			ActionID:    &actionID,
			Unread:      true,
		}}, int64(1), nil)
	f.postRepo.On("GetByID", int64(77)).Return(nil, gorm.ErrRecordNotFound)

	views, total, err := f.svc.List(context.Background(), "writer", 1, 10)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	tomb, ok := views[0].Target.(dto.Tombstone)
	assert.True(t, ok)
	assert.True(t, tomb.Deleted)
	assert.Equal(t, dto.TombstoneLabel, tomb.Label)
}

func TestList_LiveTargetRendersDesc(t *testing.T) {
	f := newNotificationFixture()
	f.repo.On("ListByRecipient", mock.Anything, "writer", 1, 10).
		Return([]models.Notification{{
			ID:          2,
			Actor:       models.User{ID: "fan", Username: "fan"},
			RecipientID: "writer",
			Verb:        models.VerbCommentPost,
			TargetKind:  models.KindPost,
			TargetID:    1,
			ActionKind:  models.KindComment,
			ActionID:    int64Ptr(10),
		}}, int64(1), nil)
	f.postRepo.On("GetByID", int64(1)).Return(&models.Post{ID: 1, Title: "hello"}, nil)
	f.commentRepo.On("GetByID", int64(10)).Return(&models.Comment{ID: 10, Content: "nice"}, nil)

	views, _, err := f.svc.List(context.Background(), "writer", 1, 10)

	assert.NoError(t, err)
	target, ok := views[0].Target.(dto.PostDesc)
	assert.True(t, ok)
	assert.Equal(t, "hello", target.Title)
	action, ok := views[0].ActionObject.(dto.CommentDesc)
	assert.True(t, ok)
	assert.Equal(t, "nice", action.Content)
}

// Reading someone else's notification is indistinguishable from a
// missing one.
func TestGet_WrongRecipientIsNotFound(t *testing.T) {
	f := newNotificationFixture()
	f.repo.On("GetByID", mock.Anything, int64(5)).Return(&models.Notification{
		ID: 5, RecipientID: "writer",
	}, nil)

	_, err := f.svc.Get(context.Background(), "snoop", 5)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMarkRead_MissingRowMapsToNotFound(t *testing.T) {
	f := newNotificationFixture()
	f.repo.On("MarkRead", mock.Anything, "writer", int64(5)).Return(gorm.ErrRecordNotFound)

	err := f.svc.MarkRead(context.Background(), "writer", 5)

	assert.ErrorIs(t, err, ErrNotFound)
}

func int64Ptr(v int64) *int64 { return &v }
