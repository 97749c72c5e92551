package seed

import (
	"context"
	"testing"

	"aihub/internal/models"
	"aihub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoadCatalog(t *testing.T) {
	c, err := LoadCatalog()
	require.NoError(t, err)
	assert.Contains(t, c.Categories.Community, "Discussion")
	assert.NotEmpty(t, c.Tags)
	require.NotEmpty(t, c.Accounts)
	assert.NotEmpty(t, c.Accounts[0].Email)

	_, err = parseCatalog([]byte("categories:\n  news: [LLM]\n"))
	assert.Error(t, err)

	_, err = parseCatalog([]byte("categories: ["))
	assert.Error(t, err)
}

func TestSeeder_RunAndClear(t *testing.T) {
	db := testutil.NewTestDB(t)
	catalog, err := LoadCatalog()
	require.NoError(t, err)

	s := NewSeeder(db, catalog, Options{
		Users:           4,
		ItemsPerKind:    3,
		CommentsPerItem: 2,
		RandSeed:        42,
		BcryptCost:      bcrypt.MinCost,
	})
	ctx := context.Background()

	sum, err := s.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4+len(catalog.Accounts), sum.Users)
	assert.Equal(t, 3, sum.News)
	assert.Equal(t, 3, sum.Posts)

	count := func(model any) int64 {
		var n int64
		require.NoError(t, db.Model(model).Count(&n).Error)
		return n
	}
	assert.Equal(t, int64(sum.Users), count(&models.User{}))
	assert.Equal(t, int64(3), count(&models.Image{}))
	assert.Equal(t, int64(sum.Comments), count(&models.Comment{}))
	assert.Equal(t, int64(sum.Likes), count(&models.Like{}))

	var pinned int64
	require.NoError(t, db.Model(&models.CommunityPost{}).Where("pinned = ?", true).Count(&pinned).Error)
	assert.Equal(t, int64(2), pinned)

	var demo models.User
	require.NoError(t, db.Where("email = ?", catalog.Accounts[0].Email).First(&demo).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(demo.PasswordHash), []byte(catalog.Accounts[0].Password)))

	// Every reply hangs off a top-level comment.
	var nested int64
	require.NoError(t, db.Model(&models.Comment{}).
		Where("parent_id IN (SELECT id FROM comments WHERE parent_id IS NOT NULL)").
		Count(&nested).Error)
	assert.Zero(t, nested)

	require.NoError(t, s.ClearAll(ctx))
	for _, m := range []any{&models.Like{}, &models.Comment{}, &models.News{}, &models.Video{}, &models.Image{}, &models.CommunityPost{}, &models.User{}} {
		assert.Zero(t, count(m), "%T", m)
	}
}

func TestSeeder_RerunKeepsDemoAccounts(t *testing.T) {
	db := testutil.NewTestDB(t)
	catalog, err := LoadCatalog()
	require.NoError(t, err)
	opts := Options{Users: 2, ItemsPerKind: 1, RandSeed: 7, BcryptCost: bcrypt.MinCost}
	ctx := context.Background()

	_, err = NewSeeder(db, catalog, opts).Run(ctx)
	require.NoError(t, err)

	var before models.User
	require.NoError(t, db.Where("id = ?", catalog.Accounts[0].ID).First(&before).Error)

	opts.RandSeed = 8
	sum, err := NewSeeder(db, catalog, opts).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2+len(catalog.Accounts), sum.Users)

	var after models.User
	require.NoError(t, db.Where("id = ?", catalog.Accounts[0].ID).First(&after).Error)
	assert.Equal(t, before.PasswordHash, after.PasswordHash)

	var total int64
	require.NoError(t, db.Model(&models.User{}).Count(&total).Error)
	assert.Equal(t, int64(2*2+len(catalog.Accounts)), total)
}
