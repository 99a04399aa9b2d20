package service

import (
	"context"

	"forumhub/internal/http-api/dto"
	"forumhub/internal/http-api/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository mocks repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) AddToGroup(userID, groupName string) error {
	args := m.Called(userID, groupName)
	return args.Error(0)
}

func (m *MockUserRepository) RemoveFromGroup(userID, groupName string) error {
	args := m.Called(userID, groupName)
	return args.Error(0)
}

// MockRefreshTokenRepository mocks repository.RefreshTokenRepository
type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(refreshToken *models.RefreshToken) error {
	args := m.Called(refreshToken)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByToken(tokenString string) (*models.RefreshToken, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Revoke(tokenID string) error {
	args := m.Called(tokenID)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) Delete(tokenID string) error {
	args := m.Called(tokenID)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) DeleteByUser(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockBoardRepository mocks repository.BoardRepository
type MockBoardRepository struct {
	mock.Mock
}

func (m *MockBoardRepository) Create(board *models.Board) error {
	args := m.Called(board)
	return args.Error(0)
}

func (m *MockBoardRepository) Update(board *models.Board) error {
	args := m.Called(board)
	return args.Error(0)
}

func (m *MockBoardRepository) Delete(boardID int64) error {
	args := m.Called(boardID)
	return args.Error(0)
}

func (m *MockBoardRepository) GetByID(boardID int64) (*models.Board, error) {
	args := m.Called(boardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Board), args.Error(1)
}

func (m *MockBoardRepository) List(filters map[string]string, page, pageSize int) ([]models.Board, int64, error) {
	args := m.Called(filters, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Board), args.Get(1).(int64), args.Error(2)
}

func (m *MockBoardRepository) AppointModerator(boardID int64, userID string) (*models.ModeratorAssignment, bool, error) {
	args := m.Called(boardID, userID)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*models.ModeratorAssignment), args.Bool(1), args.Error(2)
}

func (m *MockBoardRepository) RemoveModerator(assignmentID int64) (*models.ModeratorAssignment, error) {
	args := m.Called(assignmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ModeratorAssignment), args.Error(1)
}

func (m *MockBoardRepository) GetAssignment(assignmentID int64) (*models.ModeratorAssignment, error) {
	args := m.Called(assignmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ModeratorAssignment), args.Error(1)
}

func (m *MockBoardRepository) ListAssignments(filters map[string]string, page, pageSize int) ([]models.ModeratorAssignment, int64, error) {
	args := m.Called(filters, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.ModeratorAssignment), args.Get(1).(int64), args.Error(2)
}

func (m *MockBoardRepository) IsModerator(boardID int64, userID string) (bool, error) {
	args := m.Called(boardID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBoardRepository) ModeratorsOf(boardID int64) ([]models.ModeratorAssignment, error) {
	args := m.Called(boardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ModeratorAssignment), args.Error(1)
}

// MockPostRepository mocks repository.PostRepository
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(post *models.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) Update(post *models.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(postID int64) error {
	args := m.Called(postID)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(postID int64) (*models.Post, error) {
	args := m.Called(postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) IncrementViews(postID int64) error {
	args := m.Called(postID)
	return args.Error(0)
}

func (m *MockPostRepository) List(filters map[string]string, page, pageSize int) ([]models.Post, int64, error) {
	args := m.Called(filters, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) ListFeatured(page, pageSize int) ([]models.Post, int64, error) {
	args := m.Called(page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) ReplaceTags(post *models.Post, names []string) error {
	args := m.Called(post, names)
	return args.Error(0)
}

func (m *MockPostRepository) GetOrCreateLike(userID string, postID int64) (bool, error) {
	args := m.Called(userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) DeleteLike(userID string, postID int64) (bool, error) {
	args := m.Called(userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) GetOrCreateCollect(userID string, postID int64) (bool, error) {
	args := m.Called(userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) DeleteCollect(userID string, postID int64) (bool, error) {
	args := m.Called(userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) CountInteractions(postID int64) (int64, int64, int64, error) {
	args := m.Called(postID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Get(2).(int64), args.Error(3)
}

func (m *MockPostRepository) HasLiked(userID string, postID int64) (bool, error) {
	args := m.Called(userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) HasCollected(userID string, postID int64) (bool, error) {
	args := m.Called(userID, postID)
	return args.Bool(0), args.Error(1)
}

// MockCommentRepository mocks repository.CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(comment *models.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Update(comment *models.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(commentID int64) (*models.Comment, error) {
	args := m.Called(commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByPost(postID int64, page, pageSize int) ([]models.Comment, int64, error) {
	args := m.Called(postID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) List(filters map[string]string, page, pageSize int) ([]models.Comment, int64, error) {
	args := m.Called(filters, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) DeleteWithNotifications(comment *models.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) CountInteractions(commentID int64) (int64, int64, int64, error) {
	args := m.Called(commentID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Get(2).(int64), args.Error(3)
}

func (m *MockCommentRepository) GetOrCreateLike(userID string, commentID int64) (bool, error) {
	args := m.Called(userID, commentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCommentRepository) DeleteLike(userID string, commentID int64) (bool, error) {
	args := m.Called(userID, commentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCommentRepository) GetOrCreateCollect(userID string, commentID int64) (bool, error) {
	args := m.Called(userID, commentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCommentRepository) DeleteCollect(userID string, commentID int64) (bool, error) {
	args := m.Called(userID, commentID)
	return args.Bool(0), args.Error(1)
}

// MockNotificationRepository mocks repository.NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) GetByID(ctx context.Context, notificationID int64) (*models.Notification, error) {
	args := m.Called(ctx, notificationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) ListByRecipient(ctx context.Context, recipientID string, page, pageSize int) ([]models.Notification, int64, error) {
	args := m.Called(ctx, recipientID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, recipientID string, notificationID int64) error {
	args := m.Called(ctx, recipientID, notificationID)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, recipientID string) error {
	args := m.Called(ctx, recipientID)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkUnread(ctx context.Context, recipientID string, notificationID int64) error {
	args := m.Called(ctx, recipientID, notificationID)
	return args.Error(0)
}

func (m *MockNotificationRepository) DeleteMatching(ctx context.Context, recipientID string, verb models.Verb, actionKind string, actionID int64) error {
	args := m.Called(ctx, recipientID, verb, actionKind, actionID)
	return args.Error(0)
}

// MockNotifier mocks NotificationService for the content services.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Dispatch(ctx context.Context, e Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockNotifier) Retract(ctx context.Context, recipientID string, verb models.Verb, actionKind string, actionID int64) error {
	args := m.Called(ctx, recipientID, verb, actionKind, actionID)
	return args.Error(0)
}

func (m *MockNotifier) List(ctx context.Context, recipientID string, page, pageSize int) ([]dto.NotificationView, int64, error) {
	args := m.Called(ctx, recipientID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]dto.NotificationView), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotifier) Get(ctx context.Context, recipientID string, notificationID int64) (*dto.NotificationView, error) {
	args := m.Called(ctx, recipientID, notificationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.NotificationView), args.Error(1)
}

func (m *MockNotifier) MarkRead(ctx context.Context, recipientID string, notificationID int64) error {
	args := m.Called(ctx, recipientID, notificationID)
	return args.Error(0)
}

func (m *MockNotifier) MarkAllRead(ctx context.Context, recipientID string) error {
	args := m.Called(ctx, recipientID)
	return args.Error(0)
}

func (m *MockNotifier) MarkUnread(ctx context.Context, recipientID string, notificationID int64) error {
	args := m.Called(ctx, recipientID, notificationID)
	return args.Error(0)
}

// MockCodeStore mocks CodeStore
type MockCodeStore struct {
	mock.Mock
}

func (m *MockCodeStore) Store(ctx context.Context, purpose, email, code string) error {
	args := m.Called(ctx, purpose, email, code)
	return args.Error(0)
}

func (m *MockCodeStore) Verify(ctx context.Context, purpose, email, code string) (bool, error) {
	args := m.Called(ctx, purpose, email, code)
	return args.Bool(0), args.Error(1)
}

// MockMailer mocks Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}
