package dto

import (
	"time"

	"forumhub/internal/http-api/models"
)

type CreateBoardRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

// UpdateBoardRequest is a partial update; nil fields are untouched.
type UpdateBoardRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// BoardDesc is the short board payload embedded in posts and
// notifications.
type BoardDesc struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func FromModelToBoardDesc(board *models.Board) BoardDesc {
	return BoardDesc{ID: board.ID, Name: board.Name}
}

type BoardResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromModelToBoardResponse(board *models.Board) *BoardResponse {
	return &BoardResponse{
		ID:          board.ID,
		Name:        board.Name,
		Description: board.Description,
		CreatedAt:   board.CreatedAt,
	}
}

type AppointModeratorRequest struct {
	BoardID int64  `json:"board_id" binding:"required"`
	UserID  string `json:"user_id" binding:"required,uuid"`
}

type AssignmentResponse struct {
	ID        int64     `json:"id"`
	Board     BoardDesc `json:"board"`
	Moderator UserDesc  `json:"moderator"`
	CreatedAt time.Time `json:"created_at"`
}

func FromModelToAssignmentResponse(a *models.ModeratorAssignment) *AssignmentResponse {
	return &AssignmentResponse{
		ID:        a.ID,
		Board:     FromModelToBoardDesc(&a.Board),
		Moderator: FromModelToUserDesc(&a.User),
		CreatedAt: a.CreatedAt,
	}
}
