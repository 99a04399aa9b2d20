package dto

import (
	"time"

	"forumhub/internal/http-api/models"
)

// Tombstone stands in for a referenced entity that has since been
// deleted. A dangling reference degrades to this payload instead of
// failing the listing.
type Tombstone struct {
	ID      int64  `json:"id"`
	Deleted bool   `json:"deleted"`
	Label   string `json:"label"`
}

const TombstoneLabel = "this item was deleted"

func NewTombstone(id int64) Tombstone {
	return Tombstone{ID: id, Deleted: true, Label: TombstoneLabel}
}

// NotificationView is the denormalized notification payload: actor,
// target and action object resolved to their description DTOs, or a
// Tombstone when the entity is gone.
type NotificationView struct {
	ID           int64       `json:"id"`
	Actor        UserDesc    `json:"actor"`
	Verb         models.Verb `json:"verb"`
	Description  string      `json:"description"`
	Target       any         `json:"target"`
	ActionObject any         `json:"action_object"`
	Unread       bool        `json:"unread"`
	Timestamp    time.Time   `json:"timestamp"`
}
