package dto

import (
	"time"

	"forumhub/internal/http-api/models"
)

// UserDesc is the short user payload embedded in posts, comments and
// notifications.
type UserDesc struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

func FromModelToUserDesc(user *models.User) UserDesc {
	return UserDesc{
		ID:       user.ID,
		Username: user.Username,
		Avatar:   user.Avatar,
	}
}

// UpdateProfileRequest is a partial update; nil fields are untouched.
type UpdateProfileRequest struct {
	Avatar    *string    `json:"avatar"`
	College   *string    `json:"college"`
	Major     *string    `json:"major"`
	Address   *string    `json:"address"`
	Phone     *string    `json:"phone"`
	BirthDate *time.Time `json:"birth_date"`
}

type UserProfileResponse struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Avatar      string     `json:"avatar,omitempty"`
	College     string     `json:"college,omitempty"`
	Major       string     `json:"major,omitempty"`
	Address     string     `json:"address,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
	IsSuperuser bool       `json:"is_superuser"`
	IsStaff     bool       `json:"is_staff"`
	IsActive    bool       `json:"is_active"`
	Groups      []string   `json:"groups"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
}

func FromModelToUserProfile(user *models.User) *UserProfileResponse {
	groups := make([]string, 0, len(user.Groups))
	for _, g := range user.Groups {
		groups = append(groups, g.Name)
	}
	return &UserProfileResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		Avatar:      user.Avatar,
		College:     user.College,
		Major:       user.Major,
		Address:     user.Address,
		Phone:       user.Phone,
		BirthDate:   user.BirthDate,
		IsSuperuser: user.IsSuperuser,
		IsStaff:     user.IsStaff,
		IsActive:    user.IsActive,
		Groups:      groups,
		CreatedAt:   user.CreatedAt,
		LastLogin:   user.LastLogin,
	}
}
