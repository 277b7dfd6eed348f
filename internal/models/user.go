package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// System-wide identity roles, distinct from per-room membership roles.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User represents an identity in the system. The password is stored only as
// an argon2id hash and is never serialized to clients.
type User struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"type:text;not null;default:USER" json:"role"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// BeforeCreate is a GORM hook that assigns a UUID if the ID is not set yet.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}
