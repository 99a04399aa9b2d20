package handler

import (
	"forumhub/internal/http-api/dto"
	"forumhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterRoutes registers comment routes. Reading a post's thread is
// public; everything that writes requires authentication.
func (h *CommentHandler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.GET("/posts/:id/comments", h.ListByPost)
	public.GET("/comments", h.List)
	public.GET("/comments/:id", h.GetByID)

	comments := authed.Group("/comments")
	{
		comments.POST("", h.Create)
		comments.PATCH("/:id", h.Update)
		comments.DELETE("/:id", h.Delete)
		comments.POST("/:id/like", h.Like)
		comments.DELETE("/:id/like", h.Unlike)
		comments.POST("/:id/collect", h.Collect)
		comments.DELETE("/:id/collect", h.Uncollect)
	}
}

// ListByPost returns a post's comment thread, oldest first.
// GET /api/posts/:id/comments
func (h *CommentHandler) ListByPost(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, pageSize := dto.PageParams(c.Request)
	comments, total, err := h.commentService.ListByPost(postID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, dto.NewListResponse(c.Request, total, page, pageSize, comments))
}

// List returns comments filtered by query parameters.
// GET /api/comments?post_id=...&author_id=...&parent_id=...
func (h *CommentHandler) List(c *gin.Context) {
	page, pageSize := dto.PageParams(c.Request)
	comments, total, err := h.commentService.List(queryFilters(c), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, dto.NewListResponse(c.Request, total, page, pageSize, comments))
}

// GetByID returns a single comment.
// GET /api/comments/:id
func (h *CommentHandler) GetByID(c *gin.Context) {
	commentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	comment, err := h.commentService.GetByID(commentID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, comment)
}

// Create posts a comment or reply; nesting is flattened to two levels.
// POST /api/comments
func (h *CommentHandler) Create(c *gin.Context) {
	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, err.Error())
		return
	}

	comment, err := h.commentService.Create(currentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, comment)
}

// Update rewrites the comment body; author only.
// PATCH /api/comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	commentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, err.Error())
		return
	}

	comment, err := h.commentService.Update(commentID, currentUserID(c), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, comment)
}

// Delete removes a comment under the content policy, together with the
// notifications that pointed at it.
// DELETE /api/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.commentService.Delete(commentID, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "comment deleted")
}

// Like records a like on a comment.
// POST /api/comments/:id/like
func (h *CommentHandler) Like(c *gin.Context) {
	commentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	created, err := h.commentService.Like(commentID, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if !created {
		respondMessage(c, "already liked")
		return
	}
	respondMessage(c, "liked")
}

// Unlike removes a like from a comment.
// DELETE /api/comments/:id/like
func (h *CommentHandler) Unlike(c *gin.Context) {
	commentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.commentService.Unlike(commentID, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "unliked")
}

// Collect records a collect on a comment.
// POST /api/comments/:id/collect
func (h *CommentHandler) Collect(c *gin.Context) {
	commentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	created, err := h.commentService.Collect(commentID, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if !created {
		respondMessage(c, "already collected")
		return
	}
	respondMessage(c, "collected")
}

// Uncollect removes a collect from a comment.
// DELETE /api/comments/:id/collect
func (h *CommentHandler) Uncollect(c *gin.Context) {
	commentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.commentService.Uncollect(commentID, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "uncollected")
}
