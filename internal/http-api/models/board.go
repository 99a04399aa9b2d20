package models

import "time"

type Board struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Board) TableName() string {
	return "boards"
}

// ModeratorAssignment links a user to a board they moderate. A user can
// hold at most one assignment per board; membership in the "moderator"
// group is re-derived from the assignment count on every change.
type ModeratorAssignment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	BoardID   int64     `gorm:"not null;uniqueIndex:idx_board_moderator" json:"board_id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_board_moderator" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	// Associations
	Board Board `json:"board,omitempty" gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE;"`
	User  User  `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

func (ModeratorAssignment) TableName() string {
	return "moderator_assignments"
}
