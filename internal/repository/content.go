package repository

import (
	"context"
	"fmt"
	"strings"

	"aihub/internal/models"

	"gorm.io/gorm"
)

// ContentRepository stores one kind of content item.
type ContentRepository[T any] interface {
	Create(ctx context.Context, item *T) error
	GetByID(ctx context.Context, id, viewerID string) (*T, error)
	List(ctx context.Context, q ListQuery) ([]*T, int64, error)
}

// contentTable describes how a content table is filtered and ordered.
type contentTable struct {
	name          string
	targetColumn  string
	searchColumns []string
	pinnedFirst   bool
}

type contentRepository[T any] struct {
	db    *gorm.DB
	table contentTable
}

// NewNewsRepository returns the repository for AI news.
func NewNewsRepository(db *gorm.DB) ContentRepository[models.News] {
	return &contentRepository[models.News]{db: db, table: contentTable{
		name:          "news",
		targetColumn:  "news_id",
		searchColumns: []string{"title", "description"},
	}}
}

// NewVideoRepository returns the repository for AI videos.
func NewVideoRepository(db *gorm.DB) ContentRepository[models.Video] {
	return &contentRepository[models.Video]{db: db, table: contentTable{
		name:          "videos",
		targetColumn:  "video_id",
		searchColumns: []string{"title", "description"},
	}}
}

// NewImageRepository returns the repository for AI images.
func NewImageRepository(db *gorm.DB) ContentRepository[models.Image] {
	return &contentRepository[models.Image]{db: db, table: contentTable{
		name:          "images",
		targetColumn:  "image_id",
		searchColumns: []string{"title", "description"},
	}}
}

// NewCommunityPostRepository returns the repository for community posts.
// Pinned posts sort ahead of the rest.
func NewCommunityPostRepository(db *gorm.DB) ContentRepository[models.CommunityPost] {
	return &contentRepository[models.CommunityPost]{db: db, table: contentTable{
		name:          "community_posts",
		targetColumn:  "post_id",
		searchColumns: []string{"title", "content"},
		pinnedFirst:   true,
	}}
}

func (r *contentRepository[T]) Create(ctx context.Context, item *T) error {
	return r.db.WithContext(ctx).Omit("Author").Create(item).Error
}

func (r *contentRepository[T]) GetByID(ctx context.Context, id, viewerID string) (*T, error) {
	var item T
	err := r.applyDetails(r.db.WithContext(ctx).Model(new(T)), viewerID).
		Preload("Author", authorPreview).
		Where(r.table.name+".id = ?", id).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *contentRepository[T]) List(ctx context.Context, q ListQuery) ([]*T, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(new(T)).Scopes(r.filters(q)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*T, 0, q.Limit)
	if total == 0 || int64(q.Offset()) >= total {
		return items, total, nil
	}

	err := r.applyDetails(r.db.WithContext(ctx).Model(new(T)), q.ViewerID).
		Scopes(r.filters(q)).
		Preload("Author", authorPreview).
		Order(r.order()).
		Limit(q.Limit).
		Offset(q.Offset()).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *contentRepository[T]) filters(q ListQuery) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if q.Category != "" {
			db = db.Where(r.table.name+".category = ?", q.Category)
		}
		if q.Search != "" {
			pattern := likePattern(q.Search)
			conds := make([]string, 0, len(r.table.searchColumns))
			args := make([]interface{}, 0, len(r.table.searchColumns))
			for _, col := range r.table.searchColumns {
				conds = append(conds, fmt.Sprintf(`LOWER(%s.%s) LIKE LOWER(?) ESCAPE '\'`, r.table.name, col))
				args = append(args, pattern)
			}
			db = db.Where("("+strings.Join(conds, " OR ")+")", args...)
		}
		return db
	}
}

func (r *contentRepository[T]) order() string {
	t := r.table.name
	if r.table.pinnedFirst {
		return t + ".pinned DESC, " + t + ".created_at DESC, " + t + ".id DESC"
	}
	return t + ".created_at DESC, " + t + ".id DESC"
}

// applyDetails adds subqueries to fetch counts and liked status in a single query.
func (r *contentRepository[T]) applyDetails(db *gorm.DB, viewerID string) *gorm.DB {
	t, col := r.table.name, r.table.targetColumn
	selectQuery := fmt.Sprintf("%[1]s.*, "+
		"(SELECT COUNT(*) FROM likes WHERE likes.%[2]s = %[1]s.id) AS likes_count, "+
		"(SELECT COUNT(*) FROM comments WHERE comments.%[2]s = %[1]s.id) AS comments_count", t, col)

	if viewerID != "" {
		return db.Select(selectQuery+fmt.Sprintf(
			", EXISTS(SELECT 1 FROM likes WHERE likes.%[2]s = %[1]s.id AND likes.user_id = ?) AS liked", t, col), viewerID)
	}
	return db.Select(selectQuery + ", false AS liked")
}

func authorPreview(db *gorm.DB) *gorm.DB {
	return db.Select(models.AuthorColumns)
}
