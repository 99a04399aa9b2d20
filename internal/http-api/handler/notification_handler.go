package handler

import (
	"forumhub/internal/http-api/dto"
	"forumhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// RegisterRoutes registers notification routes; all require an
// authenticated recipient.
func (h *NotificationHandler) RegisterRoutes(authed *gin.RouterGroup) {
	notifications := authed.Group("/notifications")
	{
		notifications.GET("", h.List)
		notifications.GET("/:id", h.GetByID)
		notifications.POST("/read-all", h.MarkAllRead)
		notifications.POST("/:id/read", h.MarkRead)
		notifications.POST("/:id/unread", h.MarkUnread)
	}
}

// List returns the caller's notifications, unread first then newest
// first.
// GET /api/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	page, pageSize := dto.PageParams(c.Request)
	views, total, err := h.notificationService.List(c.Request.Context(), currentUserID(c), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, dto.NewListResponse(c.Request, total, page, pageSize, views))
}

// GetByID returns one of the caller's notifications.
// GET /api/notifications/:id
func (h *NotificationHandler) GetByID(c *gin.Context) {
	notificationID, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.notificationService.Get(c.Request.Context(), currentUserID(c), notificationID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, view)
}

// MarkRead flips one notification to read.
// POST /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	notificationID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.notificationService.MarkRead(c.Request.Context(), currentUserID(c), notificationID); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "marked read")
}

// MarkAllRead flips every unread notification the caller has.
// POST /api/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.notificationService.MarkAllRead(c.Request.Context(), currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "all marked read")
}

// MarkUnread flips one notification back to unread.
// POST /api/notifications/:id/unread
func (h *NotificationHandler) MarkUnread(c *gin.Context) {
	notificationID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.notificationService.MarkUnread(c.Request.Context(), currentUserID(c), notificationID); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "marked unread")
}
