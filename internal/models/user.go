package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an account that authors content and engages with it.
type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:255" json:"email,omitempty"`
	Name         string    `gorm:"size:120" json:"name"`
	Avatar       string    `json:"avatar"`
	Role         string    `gorm:"size:16;default:user" json:"role,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt,omitzero"`
	UpdatedAt    time.Time `json:"-"`
}

// BeforeCreate assigns a UUID and the default role.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

// AuthorColumns are the public profile fields attached to content.
var AuthorColumns = []string{"id", "name", "avatar"}
