package repository

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"aihub/internal/models"
	"aihub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedNews(t *testing.T, db *gorm.DB, authorID string) {
	t.Helper()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []struct {
		title, description, category string
	}{
		{"GPT Release Notes", "A new model ships", "LLM"},
		{"Diffusion advances", "Better image synthesis", "Vision"},
		{"Robotics roundup", "Arms and legs and gpt planners", "Robotics"},
		{"Open weights debate", "Licensing discussion", "LLM"},
		{"Benchmark season", "Scores for 100% of tasks", "LLM"},
	}
	for i, r := range rows {
		n := &models.News{
			Title:       r.title,
			Description: r.description,
			Category:    r.category,
			Tags:        []string{"ai"},
			AuthorID:    authorID,
		}
		n.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, db.Create(n).Error)
	}
}

func TestContentRepository_ListPagination(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.CreateUser(t, db, "u1", "")
	seedNews(t, db, "u1")
	repo := NewNewsRepository(db)
	ctx := context.Background()

	for _, limit := range []int{1, 2, 3, 5, 10} {
		for page := 1; page <= 4; page++ {
			t.Run(fmt.Sprintf("limit=%d page=%d", limit, page), func(t *testing.T) {
				items, total, err := repo.List(ctx, NewListQuery(page, limit))
				require.NoError(t, err)
				assert.Equal(t, int64(5), total)
				assert.LessOrEqual(t, len(items), limit)

				pages := int(math.Ceil(float64(total) / float64(limit)))
				if page <= pages {
					assert.NotEmpty(t, items)
				} else {
					assert.Empty(t, items)
				}
			})
		}
	}
}

func TestContentRepository_ListOrderAndAuthor(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.CreateUser(t, db, "u1", "secret")
	seedNews(t, db, "u1")
	repo := NewNewsRepository(db)

	items, _, err := repo.List(context.Background(), NewListQuery(1, 10))
	require.NoError(t, err)
	require.Len(t, items, 5)

	assert.Equal(t, "Benchmark season", items[0].Title)
	for i := 1; i < len(items); i++ {
		assert.False(t, items[i].CreatedAt.After(items[i-1].CreatedAt))
	}

	require.NotNil(t, items[0].Author)
	assert.Equal(t, "u1", items[0].Author.ID)
	assert.Equal(t, "User u1", items[0].Author.Name)
	assert.Empty(t, items[0].Author.Email)
	assert.Empty(t, items[0].Author.PasswordHash)
	assert.Equal(t, []string{"ai"}, items[0].Tags)
}

func TestContentRepository_CategoryFilter(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.CreateUser(t, db, "u1", "")
	seedNews(t, db, "u1")
	repo := NewNewsRepository(db)
	ctx := context.Background()

	all, total, err := repo.List(ctx, NewListQuery(1, 10).WithCategory("all"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, all, 5)

	llm, total, err := repo.List(ctx, NewListQuery(1, 10).WithCategory("LLM"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	for _, n := range llm {
		assert.Equal(t, "LLM", n.Category)
	}
}

func TestContentRepository_SearchNonASCII(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.CreateUser(t, db, "u1", "")
	require.NoError(t, db.Create(&models.News{Title: "Über KI", Category: "LLM", AuthorID: "u1"}).Error)
	repo := NewNewsRepository(db)
	ctx := context.Background()

	// sqlite LOWER folds ASCII only, so the non-ASCII letter keeps its case.
	for _, search := range []string{"Über", "Über ki", "ber KI"} {
		items, total, err := repo.List(ctx, NewListQuery(1, 10).WithSearch(search))
		require.NoError(t, err, search)
		assert.Equal(t, int64(1), total, search)
		require.Len(t, items, 1, search)
		assert.Equal(t, "Über KI", items[0].Title)
	}
}

func TestContentRepository_Search(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.CreateUser(t, db, "u1", "")
	seedNews(t, db, "u1")
	repo := NewNewsRepository(db)
	ctx := context.Background()

	tests := []struct {
		search string
		want   []string
	}{
		{"gpt", []string{"Robotics roundup", "GPT Release Notes"}},
		{"SYNTHESIS", []string{"Diffusion advances"}},
		{"100%", []string{"Benchmark season"}},
		{"no such thing", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			items, total, err := repo.List(ctx, NewListQuery(1, 10).WithSearch(tt.search))
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.want)), total)

			titles := make([]string, 0, len(items))
			for _, n := range items {
				titles = append(titles, n.Title)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestContentRepository_CountsAndLikedFlag(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.CreateUser(t, db, "u1", "")
	testutil.CreateUser(t, db, "u2", "")
	repo := NewImageRepository(db)
	ctx := context.Background()

	img := &models.Image{Title: "Cat", ImageURL: "/cat.png", Category: "Art", AuthorID: "u1"}
	require.NoError(t, repo.Create(ctx, img))

	likes := NewLikeRepository(db)
	target := models.Target{Kind: models.TargetImage, ID: img.ID}
	_, err := likes.Toggle(ctx, "u2", target)
	require.NoError(t, err)

	comment := &models.Comment{Content: "nice", AuthorID: "u1"}
	require.NoError(t, target.ApplyToComment(comment))
	require.NoError(t, NewCommentRepository(db).Create(ctx, comment))

	got, err := repo.GetByID(ctx, img.ID, "u2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.LikesCount)
	assert.Equal(t, int64(1), got.CommentsCount)
	assert.True(t, got.Liked)

	got, err = repo.GetByID(ctx, img.ID, "u1")
	require.NoError(t, err)
	assert.False(t, got.Liked)

	items, _, err := repo.List(ctx, NewListQuery(1, 10).WithViewer("u2"))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Liked)
}

func TestContentRepository_CommunityPinnedFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.CreateUser(t, db, "u1", "")
	repo := NewCommunityPostRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, pinned := range []bool{true, false, false} {
		p := &models.CommunityPost{
			Title:    fmt.Sprintf("post %d", i),
			Content:  "body",
			Category: "Discussion",
			Pinned:   pinned,
			AuthorID: "u1",
		}
		p.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, repo.Create(ctx, p))
	}

	items, _, err := repo.List(ctx, NewListQuery(1, 10))
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "post 0", items[0].Title)
	assert.Equal(t, "post 2", items[1].Title)
	assert.Equal(t, "post 1", items[2].Title)
}

func TestContentRepository_UnknownAuthorIsForeignKeyViolation(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewVideoRepository(db)

	err := repo.Create(context.Background(), &models.Video{
		Title: "Orphan", VideoURL: "/v.mp4", Category: "Demo", AuthorID: "ghost",
	})
	require.Error(t, err)
	assert.True(t, IsForeignKeyViolation(err))
}

func TestListQuery(t *testing.T) {
	t.Parallel()

	q := NewListQuery(0, 20).WithCategory(" ALL ").WithSearch("  gpt ").WithViewer("u1")
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, "", q.Category)
	assert.Equal(t, "gpt", q.Search)
	assert.Equal(t, 0, q.Offset())
	assert.Equal(t, 40, NewListQuery(3, 20).Offset())

	assert.Equal(t, q.CacheKey(), q.WithViewer("someone-else").CacheKey())
	assert.NotEqual(t, q.CacheKey(), q.WithCategory("LLM").CacheKey())
	assert.Equal(t, `%50\% off\_now%`, likePattern("50% off_now"))
}
