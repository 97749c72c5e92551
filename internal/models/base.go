// Package models contains the persistent entities of the content hub.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base carries the identifier and creation timestamp shared by every table.
type Base struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

// BeforeCreate assigns a UUID unless the caller supplied an id.
func (b *Base) BeforeCreate(_ *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// Counts are computed per query and never stored.
type Counts struct {
	LikesCount    int64 `gorm:"->;-:migration" json:"likesCount"`
	CommentsCount int64 `gorm:"->;-:migration" json:"commentsCount"`
	// Liked reports whether the requesting viewer liked the row.
	Liked bool `gorm:"->;-:migration" json:"liked"`
}
