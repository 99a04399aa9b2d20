package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reserved group names. "member" is assigned to every user on
// registration; "moderator" is derived from board assignments and must
// never be granted or revoked directly.
const (
	GroupMember    = "member"
	GroupModerator = "moderator"
)

type User struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	Username    string `gorm:"uniqueIndex;not null" json:"username"`
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	Password    string `gorm:"column:password_hash;not null" json:"-"` // Not show in JSON
	IsSuperuser bool   `gorm:"default:false" json:"is_superuser"`
	IsStaff     bool   `gorm:"default:false" json:"is_staff"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`

	// Profile
	Avatar    string     `json:"avatar,omitempty"`
	College   string     `json:"college,omitempty"`
	Major     string     `json:"major,omitempty"`
	Address   string     `json:"address,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`

	Groups []Group `gorm:"many2many:user_groups;" json:"groups,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	// If the ID is not already set, generate a new one.
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}

// InGroup reports whether the user currently holds the named role.
func (user *User) InGroup(name string) bool {
	for _, g := range user.Groups {
		if g.Name == name {
			return true
		}
	}
	return false
}

type Group struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

func (Group) TableName() string {
	return "groups"
}
