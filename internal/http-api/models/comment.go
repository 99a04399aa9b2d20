package models

import "time"

// Comment is a node in a post's comment tree. The tree is flattened to
// exactly two levels at write time: ParentID always points at a root
// comment (never at another reply), and ReplyToID names the user whose
// comment was actually being answered.
type Comment struct {
	ID        int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Content   string  `gorm:"not null;type:text" json:"content"`
	AuthorID  string  `gorm:"type:uuid;not null;index" json:"author_id"`
	PostID    int64   `gorm:"not null;index" json:"post_id"`
	ParentID  *int64  `gorm:"index" json:"parent_id"`
	ReplyToID *string `gorm:"type:uuid" json:"reply_to_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Author  User     `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
	Post    Post     `json:"post,omitempty" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE;"`
	Parent  *Comment `json:"parent,omitempty" gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE;"`
	ReplyTo *User    `json:"reply_to,omitempty" gorm:"foreignKey:ReplyToID"`
}

func (Comment) TableName() string {
	return "comments"
}

// IsRoot reports whether the comment starts a thread.
func (c *Comment) IsRoot() bool {
	return c.ParentID == nil
}
