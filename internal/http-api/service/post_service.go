package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"forumhub/internal/http-api/dto"
	"forumhub/internal/http-api/models"
	"forumhub/internal/http-api/policy"
	"forumhub/internal/http-api/repository"

	"gorm.io/gorm"
)

type PostService interface {
	Create(requesterID string, req dto.CreatePostRequest) (*dto.PostResponse, error)
	GetDetail(postID int64) (*dto.PostResponse, error)
	Update(postID int64, requesterID string, req dto.UpdatePostRequest) (*dto.PostResponse, error)
	Delete(postID int64, requesterID string) error
	List(filters map[string]string, page, pageSize int) ([]dto.PostListItem, int64, error)
	ListFeatured(page, pageSize int) ([]dto.PostListItem, int64, error)
	Status(postID int64, requesterID string) (*dto.PostStatusResponse, error)
	Like(postID int64, requesterID string) (bool, error)
	Unlike(postID int64, requesterID string) error
	Collect(postID int64, requesterID string) (bool, error)
	Uncollect(postID int64, requesterID string) error
}

type postService struct {
	postRepo  repository.PostRepository
	boardRepo repository.BoardRepository
	userRepo  repository.UserRepository
	notifier  NotificationService
	logger    *slog.Logger
}

func NewPostService(
	postRepo repository.PostRepository,
	boardRepo repository.BoardRepository,
	userRepo repository.UserRepository,
	notifier NotificationService,
	logger *slog.Logger,
) PostService {
	return &postService{
		postRepo:  postRepo,
		boardRepo: boardRepo,
		userRepo:  userRepo,
		notifier:  notifier,
		logger:    logger,
	}
}

// Create persists the post and fans a newPost notification out to the
// moderators of the board it landed in.
func (s *postService) Create(requesterID string, req dto.CreatePostRequest) (*dto.PostResponse, error) {
	board, err := s.boardRepo.GetByID(req.BoardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("board %d: %w", req.BoardID, ErrNotFound)
		}
		return nil, err
	}

	post := &models.Post{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: requesterID,
		BoardID:  board.ID,
		CoverImg: req.CoverImg,
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}
	if len(req.Tags) > 0 {
		if err := s.postRepo.ReplaceTags(post, req.Tags); err != nil {
			return nil, err
		}
	}

	s.fanOutToModerators(requesterID, post, models.VerbNewPost, "published a post in your board")

	return s.GetByID(post.ID)
}

// GetByID returns the post without touching the view counter.
func (s *postService) GetByID(postID int64) (*dto.PostResponse, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("post %d: %w", postID, ErrNotFound)
		}
		return nil, err
	}
	return dto.FromModelToPostResponse(post), nil
}

// GetDetail is the read path behind the detail endpoint; every fetch
// bumps the view counter, which only ever goes up.
func (s *postService) GetDetail(postID int64) (*dto.PostResponse, error) {
	resp, err := s.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if err := s.postRepo.IncrementViews(postID); err != nil {
		s.logger.Warn("view counter increment failed", "post_id", postID, "error", err)
	} else {
		resp.Views++
	}
	return resp, nil
}

// Update applies a partial update under the content policy. A request
// carrying is_featured is a feature action for the whole request: a
// non-privileged author is denied even if every other field would have
// been fine.
func (s *postService) Update(postID int64, requesterID string, req dto.UpdatePostRequest) (*dto.PostResponse, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("post %d: %w", postID, ErrNotFound)
		}
		return nil, err
	}

	requester, resource, err := s.relations(post, requesterID)
	if err != nil {
		return nil, err
	}
	action := policy.ActionEdit
	if req.IsFeatured != nil {
		action = policy.ActionFeature
	}
	if !policy.Decide(requester, action, resource) {
		return nil, ErrForbidden
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.IsFeatured != nil {
		post.IsFeatured = *req.IsFeatured
	}
	if req.CoverImg != nil {
		post.CoverImg = *req.CoverImg
	}
	if err := s.postRepo.Update(post); err != nil {
		return nil, err
	}
	if req.Tags != nil {
		if err := s.postRepo.ReplaceTags(post, *req.Tags); err != nil {
			return nil, err
		}
	}

	// Moderation edits are announced to the author.
	if requesterID != post.AuthorID {
		s.dispatchToAuthor(requesterID, post, models.VerbUpdatePost, "updated your post")
	}

	return s.GetByID(postID)
}

func (s *postService) Delete(postID int64, requesterID string) error {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("post %d: %w", postID, ErrNotFound)
		}
		return err
	}

	requester, resource, err := s.relations(post, requesterID)
	if err != nil {
		return err
	}
	if !policy.Decide(requester, policy.ActionDelete, resource) {
		return ErrForbidden
	}

	if err := s.postRepo.Delete(postID); err != nil {
		return err
	}

	// The target is already gone; the notification renders as a
	// tombstone, which is exactly what a deletion notice should do.
	if requesterID != post.AuthorID {
		s.dispatchToAuthor(requesterID, post, models.VerbDeletePost, "deleted your post")
	}
	return nil
}

func (s *postService) List(filters map[string]string, page, pageSize int) ([]dto.PostListItem, int64, error) {
	posts, total, err := s.postRepo.List(filters, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return toListItems(posts), total, nil
}

func (s *postService) ListFeatured(page, pageSize int) ([]dto.PostListItem, int64, error) {
	posts, total, err := s.postRepo.ListFeatured(page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return toListItems(posts), total, nil
}

func (s *postService) Status(postID int64, requesterID string) (*dto.PostStatusResponse, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("post %d: %w", postID, ErrNotFound)
		}
		return nil, err
	}

	likes, collects, comments, err := s.postRepo.CountInteractions(postID)
	if err != nil {
		return nil, err
	}
	status := &dto.PostStatusResponse{
		LikeCount:    likes,
		CollectCount: collects,
		CommentCount: comments,
	}
	if requesterID != "" {
		if status.HasLiked, err = s.postRepo.HasLiked(requesterID, postID); err != nil {
			return nil, err
		}
		if status.HasCollected, err = s.postRepo.HasCollected(requesterID, postID); err != nil {
			return nil, err
		}
	}
	return status, nil
}

func (s *postService) Like(postID int64, requesterID string) (bool, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("post %d: %w", postID, ErrNotFound)
		}
		return false, err
	}

	created, err := s.postRepo.GetOrCreateLike(requesterID, postID)
	if err != nil || !created {
		return created, err
	}

	s.dispatchToAuthor(requesterID, post, models.VerbLikePost, "liked your post")
	return true, nil
}

func (s *postService) Unlike(postID int64, requesterID string) error {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("post %d: %w", postID, ErrNotFound)
		}
		return err
	}

	found, err := s.postRepo.DeleteLike(requesterID, postID)
	if err != nil || !found {
		return err
	}
	return s.notifier.Retract(context.Background(),
		post.AuthorID, models.VerbLikePost, models.KindPost, post.ID)
}

func (s *postService) Collect(postID int64, requesterID string) (bool, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("post %d: %w", postID, ErrNotFound)
		}
		return false, err
	}

	created, err := s.postRepo.GetOrCreateCollect(requesterID, postID)
	if err != nil || !created {
		return created, err
	}

	s.dispatchToAuthor(requesterID, post, models.VerbCollectPost, "collected your post")
	return true, nil
}

func (s *postService) Uncollect(postID int64, requesterID string) error {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("post %d: %w", postID, ErrNotFound)
		}
		return err
	}

	found, err := s.postRepo.DeleteCollect(requesterID, postID)
	if err != nil || !found {
		return err
	}
	return s.notifier.Retract(context.Background(),
		post.AuthorID, models.VerbCollectPost, models.KindPost, post.ID)
}

// dispatchToAuthor sends a best-effort notification about this post to
// its author. Target and action object are both the post so retraction
// can match on the standard triple.
func (s *postService) dispatchToAuthor(actorID string, post *models.Post, verb models.Verb, description string) {
	postID := post.ID
	err := s.notifier.Dispatch(context.Background(), Event{
		ActorID:     actorID,
		RecipientID: post.AuthorID,
		Verb:        verb,
		Description: description,
		TargetKind:  models.KindPost,
		TargetID:    postID,
		ActionKind:  models.KindPost,
		ActionID:    &postID,
	})
	if err != nil {
		s.logger.Warn("notification dispatch failed",
			"verb", verb, "post_id", post.ID, "error", err)
	}
}

func (s *postService) fanOutToModerators(actorID string, post *models.Post, verb models.Verb, description string) {
	assignments, err := s.boardRepo.ModeratorsOf(post.BoardID)
	if err != nil {
		s.logger.Warn("moderator lookup failed", "board_id", post.BoardID, "error", err)
		return
	}
	postID := post.ID
	for _, assignment := range assignments {
		if assignment.UserID == actorID {
			continue
		}
		err := s.notifier.Dispatch(context.Background(), Event{
			ActorID:     actorID,
			RecipientID: assignment.UserID,
			Verb:        verb,
			Description: description,
			TargetKind:  models.KindPost,
			TargetID:    postID,
			ActionKind:  models.KindPost,
			ActionID:    &postID,
		})
		if err != nil {
			s.logger.Warn("notification dispatch failed",
				"verb", verb, "post_id", post.ID, "recipient", assignment.UserID, "error", err)
		}
	}
}

func (s *postService) relations(post *models.Post, requesterID string) (policy.Requester, policy.Resource, error) {
	requester, err := s.userRepo.FindByID(requesterID)
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
			AuthorID:             post.AuthorID,
			ModeratedByRequester: moderates,
		}, nil
}

func toListItems(posts []models.Post) []dto.PostListItem {
	items := make([]dto.PostListItem, 0, len(posts))
	for i := range posts {
		items = append(items, dto.FromModelToPostListItem(&posts[i]))
	}
	return items
}
