package dto

import (
	"time"

	"forumhub/internal/http-api/models"
)

type CreatePostRequest struct {
	Title    string   `json:"title" binding:"required,max=100"`
	Content  string   `json:"content" binding:"required"`
	BoardID  int64    `json:"board_id" binding:"required"`
	Tags     []string `json:"tags"`
	CoverImg string   `json:"cover_img"`
}

// UpdatePostRequest is a partial update; nil fields are untouched.
// IsFeatured is policy-guarded: its mere presence from a non-privileged
// author fails the whole request.
type UpdatePostRequest struct {
	Title      *string   `json:"title"`
	Content    *string   `json:"content"`
	IsFeatured *bool     `json:"is_featured"`
	Tags       *[]string `json:"tags"`
	CoverImg   *string   `json:"cover_img"`
}

// PostDesc is the short post payload embedded in notifications.
type PostDesc struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

func FromModelToPostDesc(post *models.Post) PostDesc {
	return PostDesc{ID: post.ID, Title: post.Title}
}

type PostResponse struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Author     UserDesc  `json:"author"`
	Board      BoardDesc `json:"board"`
	IsFeatured bool      `json:"is_featured"`
	CoverImg   string    `json:"cover_img,omitempty"`
	Views      int64     `json:"views"`
	Tags       []string  `json:"tags"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func FromModelToPostResponse(post *models.Post) *PostResponse {
	tags := make([]string, 0, len(post.Tags))
	for _, tag := range post.Tags {
		tags = append(tags, tag.Name)
	}
	return &PostResponse{
		ID:         post.ID,
		Title:      post.Title,
		Content:    post.Content,
		Author:     FromModelToUserDesc(&post.Author),
		Board:      FromModelToBoardDesc(&post.Board),
		IsFeatured: post.IsFeatured,
		CoverImg:   post.CoverImg,
		Views:      post.Views,
		Tags:       tags,
		CreatedAt:  post.CreatedAt,
		UpdatedAt:  post.UpdatedAt,
	}
}

// PostListItem truncates content for list views.
type PostListItem struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Author     UserDesc  `json:"author"`
	Board      BoardDesc `json:"board"`
	IsFeatured bool      `json:"is_featured"`
	Views      int64     `json:"views"`
	Tags       []string  `json:"tags"`
	CreatedAt  time.Time `json:"created_at"`
}

const listContentPreview = 120

func FromModelToPostListItem(post *models.Post) PostListItem {
	content := post.Content
	if len(content) > listContentPreview {
		content = content[:listContentPreview]
	}
	tags := make([]string, 0, len(post.Tags))
	for _, tag := range post.Tags {
		tags = append(tags, tag.Name)
	}
	return PostListItem{
		ID:         post.ID,
		Title:      post.Title,
		Content:    content,
		Author:     FromModelToUserDesc(&post.Author),
		Board:      FromModelToBoardDesc(&post.Board),
		IsFeatured: post.IsFeatured,
		Views:      post.Views,
		Tags:       tags,
		CreatedAt:  post.CreatedAt,
	}
}

// PostStatusResponse is the caller-specific interaction summary.
type PostStatusResponse struct {
	LikeCount    int64 `json:"like_count"`
	CollectCount int64 `json:"collect_count"`
	CommentCount int64 `json:"comment_count"`
	HasLiked     bool  `json:"has_liked"`
	HasCollected bool  `json:"has_collected"`
}
