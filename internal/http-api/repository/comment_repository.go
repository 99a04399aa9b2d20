package repository

import (
	"forumhub/internal/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentRepository interface {
	Create(comment *models.Comment) error
	Update(comment *models.Comment) error
	GetByID(commentID int64) (*models.Comment, error)
	ListByPost(postID int64, page, pageSize int) ([]models.Comment, int64, error)
	List(filters map[string]string, page, pageSize int) ([]models.Comment, int64, error)
	DeleteWithNotifications(comment *models.Comment) error
	CountInteractions(commentID int64) (likes, collects, replies int64, err error)

	GetOrCreateLike(userID string, commentID int64) (bool, error)
	DeleteLike(userID string, commentID int64) (bool, error)
	GetOrCreateCollect(userID string, commentID int64) (bool, error)
	DeleteCollect(userID string, commentID int64) (bool, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *commentRepository) Update(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

func (r *commentRepository) GetByID(commentID int64) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Preload("Author").Preload("ReplyTo").
		First(&comment, "id = ?", commentID).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByPost returns the post's comments in insertion order. Roots and
// replies come back in one flat sequence; a nested render groups replies
// by their parent_id client-side.
func (r *commentRepository) ListByPost(postID int64, page, pageSize int) ([]models.Comment, int64, error) {
	var total int64
	if err := r.db.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []models.Comment
	err := r.db.Where("post_id = ?", postID).
		Preload("Author").
		Preload("ReplyTo").
		Order("created_at ASC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

var commentFilterFields = map[string]bool{
	"post_id":     false,
	"author_id":   false,
	"parent_id":   false,
	"reply_to_id": false,
}

func (r *commentRepository) List(filters map[string]string, page, pageSize int) ([]models.Comment, int64, error) {
	q := applyFilters(r.db.Model(&models.Comment{}), commentFilterFields, filters)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []models.Comment
	err := q.Preload("Author").Preload("ReplyTo").
		Order("created_at ASC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// DeleteWithNotifications removes the comment together with any
// notification whose action object is this comment and whose recipient
// is the user the comment replied to. One transaction: either the
// comment and its notifications all go, or none do.
func (r *commentRepository) DeleteWithNotifications(comment *models.Comment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if comment.ReplyToID != nil {
			err := tx.Where(
				"recipient_id = ? AND action_kind = ? AND action_id = ?",
				*comment.ReplyToID, models.KindComment, comment.ID,
			).Delete(&models.Notification{}).Error
			if err != nil {
				return err
			}
		}
		// replies hang off this comment when it is a root
		if err := tx.Where("parent_id = ?", comment.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(comment).Error
	})
}

func (r *commentRepository) CountInteractions(commentID int64) (int64, int64, int64, error) {
	var likes, collects, replies int64
	if err := r.db.Model(&models.CommentLike{}).Where("comment_id = ?", commentID).Count(&likes).Error; err != nil {
		return 0, 0, 0, err
	}
	if err := r.db.Model(&models.CommentCollect{}).Where("comment_id = ?", commentID).Count(&collects).Error; err != nil {
		return 0, 0, 0, err
	}
	if err := r.db.Model(&models.Comment{}).Where("parent_id = ?", commentID).Count(&replies).Error; err != nil {
		return 0, 0, 0, err
	}
	return likes, collects, replies, nil
}

func (r *commentRepository) GetOrCreateLike(userID string, commentID int64) (bool, error) {
	res := r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.CommentLike{UserID: userID, CommentID: commentID})
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return false, nil
		}
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *commentRepository) DeleteLike(userID string, commentID int64) (bool, error) {
	res := r.db.Where("user_id = ? AND comment_id = ?", userID, commentID).
		Delete(&models.CommentLike{})
	return res.RowsAffected > 0, res.Error
}

func (r *commentRepository) GetOrCreateCollect(userID string, commentID int64) (bool, error) {
	res := r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.CommentCollect{UserID: userID, CommentID: commentID})
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return false, nil
		}
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *commentRepository) DeleteCollect(userID string, commentID int64) (bool, error) {
	res := r.db.Where("user_id = ? AND comment_id = ?", userID, commentID).
		Delete(&models.CommentCollect{})
	return res.RowsAffected > 0, res.Error
}
