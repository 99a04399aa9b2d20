package handler

import (
	"forumhub/internal/http-api/dto"
	"forumhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes registers user routes on the authenticated group.
func (h *UserHandler) RegisterRoutes(authed *gin.RouterGroup) {
	users := authed.Group("/users")
	{
		users.GET("", h.List)
		users.GET("/me", h.Me)
		users.GET("/:id", h.GetProfile)
		users.PATCH("/:id", h.UpdateProfile)
		users.DELETE("/:id", h.Delete)
	}
}

// Me returns the authenticated user's own profile.
// GET /api/users/me
func (h *UserHandler) Me(c *gin.Context) {
	profile, err := h.userService.GetProfile(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, profile)
}

// GetProfile returns any user's profile.
// GET /api/users/:id
func (h *UserHandler) GetProfile(c *gin.Context) {
	profile, err := h.userService.GetProfile(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, profile)
}

// UpdateProfile applies a partial profile update; owner or superuser.
// PATCH /api/users/:id
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, err.Error())
		return
	}

	profile, err := h.userService.UpdateProfile(c.Param("id"), currentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, profile)
}

// Delete removes an account; owner or superuser.
// DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.Delete(c.Param("id"), currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "user deleted")
}

// List is the staff-only account directory.
// GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	profiles, err := h.userService.List(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, profiles)
}
