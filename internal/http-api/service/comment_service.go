package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"forumhub/internal/http-api/dto"
	"forumhub/internal/http-api/models"
	"forumhub/internal/http-api/policy"
	"forumhub/internal/http-api/repository"

	"gorm.io/gorm"
)

type CommentService interface {
	Create(requesterID string, req dto.CreateCommentRequest) (*dto.CommentResponse, error)
	GetByID(commentID int64) (*dto.CommentResponse, error)
	Update(commentID int64, requesterID, content string) (*dto.CommentResponse, error)
	Delete(commentID int64, requesterID string) error
	ListByPost(postID int64, page, pageSize int) ([]dto.CommentResponse, int64, error)
	List(filters map[string]string, page, pageSize int) ([]dto.CommentResponse, int64, error)
	Like(commentID int64, requesterID string) (bool, error)
	Unlike(commentID int64, requesterID string) error
	Collect(commentID int64, requesterID string) (bool, error)
	Uncollect(commentID int64, requesterID string) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	boardRepo   repository.BoardRepository
	userRepo    repository.UserRepository
	notifier    NotificationService
	logger      *slog.Logger
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	boardRepo repository.BoardRepository,
	userRepo repository.UserRepository,
	notifier NotificationService,
	logger *slog.Logger,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		boardRepo:   boardRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// Create inserts a comment, flattening the client's conceptual nesting
// to the two-level display model: the stored parent is always a root
// comment, and reply_to names the author actually being answered.
func (s *commentService) Create(requesterID string, req dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: content must not be empty", ErrValidation)
	}

	post, err := s.postRepo.GetByID(req.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: post %d does not exist", ErrValidation, req.PostID)
		}
		return nil, err
	}

	comment := &models.Comment{
		Content:  req.Content,
		AuthorID: requesterID,
		PostID:   post.ID,
	}

	if req.ParentID != nil {
		parent, err := s.commentRepo.GetByID(*req.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("parent comment %d: %w", *req.ParentID, ErrNotFound)
			}
			return nil, err
		}
		if parent.PostID != post.ID {
			return nil, fmt.Errorf("%w: parent comment belongs to another post", ErrValidation)
		}
		// The reply addresses the immediate parent's author, but it is
		// stored under the thread root; a reply's parent is always that
		// root, so one hop reaches it.
		rootID := parent.ID
		if parent.ParentID != nil {
			rootID = *parent.ParentID
		}
		comment.ParentID = &rootID
		replyTo := parent.AuthorID
		comment.ReplyToID = &replyTo
	} else {
		replyTo := post.AuthorID
		comment.ReplyToID = &replyTo
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	// Best-effort: the comment stands even if the notification fails.
	event := Event{
		ActorID:     requesterID,
		RecipientID: *comment.ReplyToID,
		Verb:        models.VerbCommentPost,
		Description: "commented on your post",
		TargetKind:  models.KindPost,
		TargetID:    post.ID,
		ActionKind:  models.KindComment,
		ActionID:    &comment.ID,
	}
	if comment.ParentID != nil {
		event.Verb = models.VerbReplyComment
		event.Description = "replied to your comment"
		event.TargetKind = models.KindComment
		event.TargetID = *comment.ParentID
	}
	if err := s.notifier.Dispatch(context.Background(), event); err != nil {
		s.logger.Warn("notification dispatch failed",
			"verb", event.Verb, "comment_id", comment.ID, "error", err)
	}

	return s.GetByID(comment.ID)
}

func (s *commentService) GetByID(commentID int64) (*dto.CommentResponse, error) {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("comment %d: %w", commentID, ErrNotFound)
		}
		return nil, err
	}
	return s.toResponse(comment), nil
}

// Update is author-only: moderators may remove a comment but never
// rewrite someone else's words.
func (s *commentService) Update(commentID int64, requesterID, content string) (*dto.CommentResponse, error) {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("comment %d: %w", commentID, ErrNotFound)
		}
		return nil, err
	}
	if comment.AuthorID != requesterID {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content must not be empty", ErrValidation)
	}

	comment.Content = content
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, err
	}
	return s.GetByID(commentID)
}

// Delete removes the comment under the content policy, atomically with
// the notifications that pointed at it: no dangling notification
// survives a successful delete.
func (s *commentService) Delete(commentID int64, requesterID string) error {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("comment %d: %w", commentID, ErrNotFound)
		}
		return err
	}

	requester, resource, err := s.relations(comment, requesterID)
	if err != nil {
		return err
	}
	if !policy.Decide(requester, policy.ActionDelete, resource) {
		return ErrForbidden
	}

	return s.commentRepo.DeleteWithNotifications(comment)
}

func (s *commentService) ListByPost(postID int64, page, pageSize int) ([]dto.CommentResponse, int64, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, fmt.Errorf("post %d: %w", postID, ErrNotFound)
		}
		return nil, 0, err
	}
	comments, total, err := s.commentRepo.ListByPost(postID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return s.toResponses(comments), total, nil
}

func (s *commentService) List(filters map[string]string, page, pageSize int) ([]dto.CommentResponse, int64, error) {
	comments, total, err := s.commentRepo.List(filters, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return s.toResponses(comments), total, nil
}

// Like is an idempotent get-or-create: only a newly created record
// notifies the comment's author, a repeat is reported as already liked.
func (s *commentService) Like(commentID int64, requesterID string) (bool, error) {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("comment %d: %w", commentID, ErrNotFound)
		}
		return false, err
	}

	created, err := s.commentRepo.GetOrCreateLike(requesterID, commentID)
	if err != nil || !created {
		return created, err
	}

	s.dispatchInteraction(requesterID, comment, models.VerbLikeComment, "liked your comment")
	return true, nil
}

func (s *commentService) Unlike(commentID int64, requesterID string) error {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("comment %d: %w", commentID, ErrNotFound)
		}
		return err
	}

	found, err := s.commentRepo.DeleteLike(requesterID, commentID)
	if err != nil || !found {
		return err
	}
	return s.notifier.Retract(context.Background(),
		comment.AuthorID, models.VerbLikeComment, models.KindComment, comment.ID)
}

func (s *commentService) Collect(commentID int64, requesterID string) (bool, error) {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("comment %d: %w", commentID, ErrNotFound)
		}
		return false, err
	}

	created, err := s.commentRepo.GetOrCreateCollect(requesterID, commentID)
	if err != nil || !created {
		return created, err
	}

	s.dispatchInteraction(requesterID, comment, models.VerbCollectComment, "collected your comment")
	return true, nil
}

func (s *commentService) Uncollect(commentID int64, requesterID string) error {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("comment %d: %w", commentID, ErrNotFound)
		}
		return err
	}

	found, err := s.commentRepo.DeleteCollect(requesterID, commentID)
	if err != nil || !found {
		return err
	}
	return s.notifier.Retract(context.Background(),
		comment.AuthorID, models.VerbCollectComment, models.KindComment, comment.ID)
}

// dispatchInteraction notifies the comment's author about a like or
// collect. The comment doubles as the action object so the later
// retraction can key on the exact comment instead of sweeping every
// like on the post.
func (s *commentService) dispatchInteraction(actorID string, comment *models.Comment, verb models.Verb, description string) {
	commentID := comment.ID
	err := s.notifier.Dispatch(context.Background(), Event{
		ActorID:     actorID,
		RecipientID: comment.AuthorID,
		Verb:        verb,
		Description: description,
		TargetKind:  models.KindComment,
		TargetID:    comment.ID,
		ActionKind:  models.KindComment,
		ActionID:    &commentID,
	})
	if err != nil {
		s.logger.Warn("notification dispatch failed",
			"verb", verb, "comment_id", comment.ID, "error", err)
	}
}

// relations resolves the requester identity and the object-specific
// relations the policy consults.
func (s *commentService) relations(comment *models.Comment, requesterID string) (policy.Requester, policy.Resource, error) {
	requester, err := s.userRepo.FindByID(requesterID)
	if err != nil {
		return policy.Requester{}, policy.Resource{}, err
	}

	post, err := s.postRepo.GetByID(comment.PostID)
	if err != nil {
		return policy.Requester{}, policy.Resource{}, err
	}
	moderates, err := s.boardRepo.IsModerator(post.BoardID, requesterID)
	if err != nil {
		return policy.Requester{}, policy.Resource{}, err
	}

	return policy.Requester{
			ID:          requester.ID,
			IsSuperuser: requester.IsSuperuser,
			IsStaff:     requester.IsStaff,
		}, policy.Resource{
			AuthorID:             comment.AuthorID,
			ModeratedByRequester: moderates,
		}, nil
}

func (s *commentService) toResponse(comment *models.Comment) *dto.CommentResponse {
	resp := dto.FromModelToCommentResponse(comment)
	likes, collects, replies, err := s.commentRepo.CountInteractions(comment.ID)
	if err == nil {
		resp.LikeCount = likes
		resp.CollectCount = collects
		resp.ReplyCount = replies
	}
	return resp
}

func (s *commentService) toResponses(comments []models.Comment) []dto.CommentResponse {
	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, *s.toResponse(&comments[i]))
	}
	return responses
}
