// Package testutil provides shared fixtures for tests.
package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"aihub/internal/database"
	"aihub/internal/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var dbSeq atomic.Int64

// NewTestDB returns a migrated in-memory sqlite database private to t.
// A single connection serializes writers, matching how tests exercise
// concurrent callers without sqlite table-lock errors.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_foreign_keys=on", name, dbSeq.Add(1))

	db, err := database.Open(sqlite.Open(dsn))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// CreateUser inserts a user with the given id. A non-empty password is
// stored as a bcrypt hash.
func CreateUser(t *testing.T, db *gorm.DB, id, password string) *models.User {
	t.Helper()

	u := &models.User{
		ID:     id,
		Email:  id + "@example.com",
		Name:   "User " + id,
		Avatar: "/avatars/" + id + ".png",
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		require.NoError(t, err)
		u.PasswordHash = string(hash)
	}
	require.NoError(t, db.Create(u).Error)
	return u
}
