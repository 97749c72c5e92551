package service

import (
	"testing"

	"aihub/internal/cache"
	"aihub/internal/models"
	"aihub/internal/repository"
	"aihub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)
}

// newContentService returns a content service over a fresh sqlite database
// with user u1 already present.
func newContentService(t *testing.T, lists *cache.ListCache) (*ContentService, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	testutil.CreateUser(t, db, "u1", "")
	svc := NewContentService(
		repository.NewNewsRepository(db),
		repository.NewVideoRepository(db),
		repository.NewImageRepository(db),
		repository.NewCommunityPostRepository(db),
		lists,
	)
	return svc, db
}

func TestNewPagination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		total int64
		limit int
		pages int64
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{45, 20, 3},
	}
	for _, tt := range tests {
		p := NewPagination(tt.total, 2, tt.limit)
		assert.Equal(t, tt.pages, p.Pages, "total=%d limit=%d", tt.total, tt.limit)
		assert.Equal(t, 2, p.Page)
	}
}

func TestNormalizeTags(t *testing.T) {
	t.Parallel()

	tags, err := normalizeTags([]string{" llm ", "", "LLM", "vision"})
	require.NoError(t, err)
	assert.Equal(t, []string{"llm", "vision"}, tags)

	tags, err = normalizeTags(nil)
	require.NoError(t, err)
	assert.NotNil(t, tags)

	assert.Equal(t, []string{"a", " b", ""}, SplitTags("a, b,"))
	assert.Empty(t, SplitTags("  "))
}
