package database

import "aihub/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.News{},
		&models.Video{},
		&models.Image{},
		&models.CommunityPost{},
		&models.Comment{},
		&models.Like{},
	}
}
