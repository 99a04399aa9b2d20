package models

import "time"

type Post struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Title      string `gorm:"not null" json:"title"`
	Content    string `gorm:"not null;type:text" json:"content"`
	AuthorID   string `gorm:"type:uuid;not null;index" json:"author_id"`
	BoardID    int64  `gorm:"not null;index" json:"board_id"`
	IsFeatured bool   `gorm:"default:false" json:"is_featured"`
	CoverImg   string `json:"cover_img,omitempty"`
	// Views only ever goes up; incremented on every detail fetch.
	Views int64 `gorm:"default:0" json:"views"`

	Tags []Tag `gorm:"many2many:post_tags;" json:"tags,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Author User  `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
	Board  Board `json:"board,omitempty" gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE;"`
}

func (Post) TableName() string {
	return "posts"
}

type Tag struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

func (Tag) TableName() string {
	return "tags"
}
