package handler

import (
	"forumhub/internal/http-api/dto"
	"forumhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type BoardHandler struct {
	boardService service.BoardService
}

func NewBoardHandler(boardService service.BoardService) *BoardHandler {
	return &BoardHandler{boardService: boardService}
}

// RegisterRoutes registers board and moderator-assignment routes.
// Reads are public, writes require authentication.
func (h *BoardHandler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.GET("/boards", h.List)
	public.GET("/boards/:id", h.GetByID)

	boards := authed.Group("/boards")
	{
		boards.POST("", h.Create)
		boards.PATCH("/:id", h.Update)
		boards.DELETE("/:id", h.Delete)
	}

	moderators := authed.Group("/moderators")
	{
		moderators.GET("", h.ListAssignments)
		moderators.POST("", h.AppointModerator)
		moderators.DELETE("/:id", h.RemoveModerator)
	}
}

// List returns boards in the standard list envelope.
// GET /api/boards?name=...
func (h *BoardHandler) List(c *gin.Context) {
	page, pageSize := dto.PageParams(c.Request)
	boards, total, err := h.boardService.List(queryFilters(c), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, dto.NewListResponse(c.Request, total, page, pageSize, boards))
}

// GetByID returns a single board.
// GET /api/boards/:id
func (h *BoardHandler) GetByID(c *gin.Context) {
	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}
	board, err := h.boardService.GetByID(boardID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, board)
}

// Create makes a new board; superusers and staff only.
// POST /api/boards
func (h *BoardHandler) Create(c *gin.Context) {
	var req dto.CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, err.Error())
		return
	}

	board, err := h.boardService.Create(currentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, board)
}

// Update applies a partial board update; superusers and staff only.
// PATCH /api/boards/:id
func (h *BoardHandler) Update(c *gin.Context) {
	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, err.Error())
		return
	}

	board, err := h.boardService.Update(boardID, currentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, board)
}

// Delete removes a board; superusers and staff only.
// DELETE /api/boards/:id
func (h *BoardHandler) Delete(c *gin.Context) {
	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.boardService.Delete(boardID, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "board deleted")
}

// AppointModerator assigns a user to moderate a board. Re-appointing an
// existing moderator reports the standing assignment.
// POST /api/moderators
func (h *BoardHandler) AppointModerator(c *gin.Context) {
	var req dto.AppointModeratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, err.Error())
		return
	}

	assignment, created, err := h.boardService.AppointModerator(currentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	if created {
		respondCreated(c, assignment)
		return
	}
	respondOK(c, assignment)
}

// RemoveModerator ends a moderator assignment.
// DELETE /api/moderators/:id
func (h *BoardHandler) RemoveModerator(c *gin.Context) {
	assignmentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.boardService.RemoveModerator(currentUserID(c), assignmentID); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "moderator removed")
}

// ListAssignments lists moderator assignments, filterable by board or
// user.
// GET /api/moderators?board_id=...&user_id=...
func (h *BoardHandler) ListAssignments(c *gin.Context) {
	page, pageSize := dto.PageParams(c.Request)
	assignments, total, err := h.boardService.ListAssignments(queryFilters(c), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, dto.NewListResponse(c.Request, total, page, pageSize, assignments))
}
