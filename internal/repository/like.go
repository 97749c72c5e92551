package repository

import (
	"context"

	"aihub/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines persistence operations for likes.
type LikeRepository interface {
	// Toggle removes the user's like on target if present, otherwise adds it,
	// and reports whether the target is liked afterwards.
	Toggle(ctx context.Context, userID string, target models.Target) (bool, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Toggle runs delete-then-insert in one transaction. The insert is guarded by
// the (user_id, target_key) unique index, so two concurrent toggles that both
// miss the delete leave a single row and both report liked.
func (r *likeRepository) Toggle(ctx context.Context, userID string, target models.Target) (bool, error) {
	var liked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Unscoped().
			Where("user_id = ? AND target_key = ?", userID, target.Key()).
			Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			liked = false
			return nil
		}

		like := &models.Like{UserID: userID}
		target.ApplyToLike(like)
		if err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "target_key"}},
			DoNothing: true,
		}).Create(like).Error; err != nil {
			return err
		}
		liked = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return liked, nil
}
