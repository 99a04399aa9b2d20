package repository

import (
	"forumhub/internal/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostRepository interface {
	Create(post *models.Post) error
	Update(post *models.Post) error
	Delete(postID int64) error
	GetByID(postID int64) (*models.Post, error)
	IncrementViews(postID int64) error
	List(filters map[string]string, page, pageSize int) ([]models.Post, int64, error)
	ListFeatured(page, pageSize int) ([]models.Post, int64, error)
	ReplaceTags(post *models.Post, names []string) error

	GetOrCreateLike(userID string, postID int64) (bool, error)
	DeleteLike(userID string, postID int64) (bool, error)
	GetOrCreateCollect(userID string, postID int64) (bool, error)
	DeleteCollect(userID string, postID int64) (bool, error)
	CountInteractions(postID int64) (likes, collects, comments int64, err error)
	HasLiked(userID string, postID int64) (bool, error)
	HasCollected(userID string, postID int64) (bool, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *postRepository) Update(post *models.Post) error {
	return r.db.Save(post).Error
}

func (r *postRepository) Delete(postID int64) error {
	return r.db.Where("id = ?", postID).Delete(&models.Post{}).Error
}

func (r *postRepository) GetByID(postID int64) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("Author").Preload("Board").Preload("Tags").
		First(&post, "id = ?", postID).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// IncrementViews bumps the view counter in place. An UPDATE expression
// rather than read-modify-write, so concurrent fetches never lose a
// count.
func (r *postRepository) IncrementViews(postID int64) error {
	return r.db.Model(&models.Post{}).
		Where("id = ?", postID).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

var postFilterFields = map[string]bool{
	"id":          false,
	"title":       true,
	"content":     true,
	"author_id":   false,
	"board_id":    false,
	"is_featured": false,
}

func (r *postRepository) List(filters map[string]string, page, pageSize int) ([]models.Post, int64, error) {
	q := applyFilters(r.db.Model(&models.Post{}), postFilterFields, filters)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := q.Preload("Author").Preload("Board").Preload("Tags").
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) ListFeatured(page, pageSize int) ([]models.Post, int64, error) {
	return r.List(map[string]string{"is_featured": "true"}, page, pageSize)
}

// ReplaceTags swaps the post's tag set, creating missing tag rows on the
// fly.
func (r *postRepository) ReplaceTags(post *models.Post, names []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		tags := make([]models.Tag, 0, len(names))
		for _, name := range names {
			var tag models.Tag
			if err := tx.Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
				return err
			}
			tags = append(tags, tag)
		}
		return tx.Model(post).Association("Tags").Replace(tags)
	})
}

func (r *postRepository) GetOrCreateLike(userID string, postID int64) (bool, error) {
	res := r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.PostLike{UserID: userID, PostID: postID})
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return false, nil
		}
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *postRepository) DeleteLike(userID string, postID int64) (bool, error) {
	res := r.db.Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.PostLike{})
	return res.RowsAffected > 0, res.Error
}

func (r *postRepository) GetOrCreateCollect(userID string, postID int64) (bool, error) {
	res := r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.PostCollect{UserID: userID, PostID: postID})
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return false, nil
		}
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *postRepository) DeleteCollect(userID string, postID int64) (bool, error) {
	res := r.db.Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.PostCollect{})
	return res.RowsAffected > 0, res.Error
}

func (r *postRepository) HasLiked(userID string, postID int64) (bool, error) {
	var count int64
	err := r.db.Model(&models.PostLike{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

func (r *postRepository) HasCollected(userID string, postID int64) (bool, error) {
	var count int64
	err := r.db.Model(&models.PostCollect{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

func (r *postRepository) CountInteractions(postID int64) (int64, int64, int64, error) {
	var likes, collects, comments int64
	if err := r.db.Model(&models.PostLike{}).Where("post_id = ?", postID).Count(&likes).Error; err != nil {
		return 0, 0, 0, err
	}
	if err := r.db.Model(&models.PostCollect{}).Where("post_id = ?", postID).Count(&collects).Error; err != nil {
		return 0, 0, 0, err
	}
	if err := r.db.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&comments).Error; err != nil {
		return 0, 0, 0, err
	}
	return likes, collects, comments, nil
}
