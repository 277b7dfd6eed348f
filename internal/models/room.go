package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Room visibility kinds.
const (
	VisibilityPrivate = "PRIVATE"
	VisibilityPublic  = "PUBLIC"
)

// ValidVisibility reports whether v is a known visibility kind.
func ValidVisibility(v string) bool {
	return v == VisibilityPrivate || v == VisibilityPublic
}

// Room is a named group-chat destination. The name is unique across the
// system; uniqueness is enforced by the database index, not by a pre-check.
type Room struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"uniqueIndex;not null" json:"name"`
	Visibility string    `gorm:"type:text;not null;default:PRIVATE" json:"visibility"`
	CreatedBy  string    `gorm:"type:uuid" json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// BeforeCreate assigns a UUID if the ID is not set yet.
func (r *Room) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}
