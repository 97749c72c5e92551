package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// IsForeignKeyViolation reports whether err came from a rejected foreign key.
// Drivers that do not translate the error are matched on their message.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint")
}

// IsNotFound reports whether err means the requested row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
