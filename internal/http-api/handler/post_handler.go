package handler

import (
	"forumhub/internal/http-api/dto"
	"forumhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postService service.PostService
}

func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// RegisterRoutes registers post routes. Reads are public; the status
// endpoint takes an optional identity to personalize has_liked and
// has_collected.
func (h *PostHandler) RegisterRoutes(public, optional, authed *gin.RouterGroup) {
	public.GET("/posts", h.List)
	public.GET("/posts/featured", h.ListFeatured)
	public.GET("/posts/:id", h.GetDetail)
	optional.GET("/posts/:id/status", h.Status)

	posts := authed.Group("/posts")
	{
		posts.POST("", h.Create)
		posts.PATCH("/:id", h.Update)
		posts.DELETE("/:id", h.Delete)
		posts.POST("/:id/like", h.Like)
		posts.DELETE("/:id/like", h.Unlike)
		posts.POST("/:id/collect", h.Collect)
		posts.DELETE("/:id/collect", h.Uncollect)
	}
}

// List returns posts in the standard list envelope.
// GET /api/posts?title=...&board_id=...&author_id=...
func (h *PostHandler) List(c *gin.Context) {
	page, pageSize := dto.PageParams(c.Request)
	posts, total, err := h.postService.List(queryFilters(c), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, dto.NewListResponse(c.Request, total, page, pageSize, posts))
}

// ListFeatured returns only featured posts.
// GET /api/posts/featured
func (h *PostHandler) ListFeatured(c *gin.Context) {
	page, pageSize := dto.PageParams(c.Request)
	posts, total, err := h.postService.ListFeatured(page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, dto.NewListResponse(c.Request, total, page, pageSize, posts))
}

// GetDetail returns the full post and bumps its view counter.
// GET /api/posts/:id
func (h *PostHandler) GetDetail(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	post, err := h.postService.GetDetail(postID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, post)
}

// Status returns the interaction summary, personalized when a valid
// token was presented.
// GET /api/posts/:id/status
func (h *PostHandler) Status(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	status, err := h.postService.Status(postID, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, status)
}

// Create publishes a post to a board.
// POST /api/posts
func (h *PostHandler) Create(c *gin.Context) {
	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, err.Error())
		return
	}

	post, err := h.postService.Create(currentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, post)
}

// Update applies a partial post update under the content policy.
// PATCH /api/posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, err.Error())
		return
	}

	post, err := h.postService.Update(postID, currentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, post)
}

// Delete removes a post under the content policy.
// DELETE /api/posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.postService.Delete(postID, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "post deleted")
}

// Like records a like; repeats are reported as already liked.
// POST /api/posts/:id/like
func (h *PostHandler) Like(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	created, err := h.postService.Like(postID, currentUserID(c))
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

// Unlike removes a like; removing a non-existent like still succeeds.
// DELETE /api/posts/:id/like
func (h *PostHandler) Unlike(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.postService.Unlike(postID, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "unliked")
}

// Collect records a collect; repeats are reported as already collected.
// POST /api/posts/:id/collect
func (h *PostHandler) Collect(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	created, err := h.postService.Collect(postID, currentUserID(c))
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

// Uncollect removes a collect.
// DELETE /api/posts/:id/collect
func (h *PostHandler) Uncollect(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.postService.Uncollect(postID, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "uncollected")
}
