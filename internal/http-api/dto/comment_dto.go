package dto

import (
	"time"

	"forumhub/internal/http-api/models"
)

type CreateCommentRequest struct {
	Content  string `json:"content" binding:"required,min=1,max=5000"`
	PostID   int64  `json:"post_id" binding:"required"`
	ParentID *int64 `json:"parent_id"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}

// CommentDesc is the short comment payload embedded in notifications.
type CommentDesc struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
}

func FromModelToCommentDesc(comment *models.Comment) CommentDesc {
	return CommentDesc{ID: comment.ID, Content: comment.Content}
}

type CommentResponse struct {
	ID           int64     `json:"id"`
	Content      string    `json:"content"`
	Author       UserDesc  `json:"author"`
	PostID       int64     `json:"post_id"`
	ParentID     *int64    `json:"parent_id"`
	ReplyTo      *UserDesc `json:"reply_to"`
	LikeCount    int64     `json:"like_count"`
	CollectCount int64     `json:"collect_count"`
	ReplyCount   int64     `json:"reply_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FromModelToCommentResponse converts a Comment model to CommentResponse DTO
func FromModelToCommentResponse(comment *models.Comment) *CommentResponse {
	resp := &CommentResponse{
		ID:        comment.ID,
		Content:   comment.Content,
		Author:    FromModelToUserDesc(&comment.Author),
		PostID:    comment.PostID,
		ParentID:  comment.ParentID,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
	if comment.ReplyTo != nil {
		desc := FromModelToUserDesc(comment.ReplyTo)
		resp.ReplyTo = &desc
	}
	return resp
}
