package service

import (
	"context"
	"strings"

	"aihub/internal/cache"
	"aihub/internal/models"
	"aihub/internal/repository"
)

const (
	maxTitleLen       = 255
	maxCategoryLen    = 64
	maxDescriptionLen = 5000
	maxContentLen     = 50000
)

// ContentService lists and creates news, videos, images and community posts.
type ContentService struct {
	news   repository.ContentRepository[models.News]
	videos repository.ContentRepository[models.Video]
	images repository.ContentRepository[models.Image]
	posts  repository.ContentRepository[models.CommunityPost]
	lists  *cache.ListCache
}

// NewContentService wires the content repositories. lists may be nil.
func NewContentService(
	news repository.ContentRepository[models.News],
	videos repository.ContentRepository[models.Video],
	images repository.ContentRepository[models.Image],
	posts repository.ContentRepository[models.CommunityPost],
	lists *cache.ListCache,
) *ContentService {
	return &ContentService{news: news, videos: videos, images: images, posts: posts, lists: lists}
}

// CreateNewsInput is the payload for a news article.
type CreateNewsInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Category    string   `json:"category"`
	ImageURL    string   `json:"imageUrl"`
	SourceURL   string   `json:"sourceUrl"`
	Tags        []string `json:"tags"`
	AuthorID    string   `json:"authorId"`
}

// CreateVideoInput is the payload for a video.
type CreateVideoInput struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	VideoURL     string   `json:"videoUrl"`
	ThumbnailURL string   `json:"thumbnailUrl"`
	Duration     int      `json:"duration"`
	Category     string   `json:"category"`
	Tags         []string `json:"tags"`
	AuthorID     string   `json:"authorId"`
}

// CreateImageInput is the payload for an image.
type CreateImageInput struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	ImageURL     string   `json:"imageUrl"`
	ThumbnailURL string   `json:"thumbnailUrl"`
	Category     string   `json:"category"`
	Tags         []string `json:"tags"`
	Width        *int     `json:"width"`
	Height       *int     `json:"height"`
	FileSize     *int64   `json:"fileSize"`
	AuthorID     string   `json:"authorId"`
}

// CreatePostInput is the payload for a community post.
type CreatePostInput struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	AuthorID string   `json:"authorId"`
}

// ListNews returns a page of news.
func (s *ContentService) ListNews(ctx context.Context, q repository.ListQuery) (*ListResult[models.News], error) {
	return listContent(ctx, s.lists, s.news, ResourceNews, q)
}

// ListVideos returns a page of videos.
func (s *ContentService) ListVideos(ctx context.Context, q repository.ListQuery) (*ListResult[models.Video], error) {
	return listContent(ctx, s.lists, s.videos, ResourceVideos, q)
}

// ListImages returns a page of images.
func (s *ContentService) ListImages(ctx context.Context, q repository.ListQuery) (*ListResult[models.Image], error) {
	return listContent(ctx, s.lists, s.images, ResourceImages, q)
}

// ListPosts returns a page of community posts, pinned first.
func (s *ContentService) ListPosts(ctx context.Context, q repository.ListQuery) (*ListResult[models.CommunityPost], error) {
	return listContent(ctx, s.lists, s.posts, ResourceCommunity, q)
}

// listContent serves anonymous pages through the list cache. Pages with a
// viewer carry a per-user liked flag and always hit the store.
func listContent[T any](
	ctx context.Context,
	lists *cache.ListCache,
	repo repository.ContentRepository[T],
	resource string,
	q repository.ListQuery,
) (*ListResult[T], error) {
	load := func(dest *ListResult[T]) error {
		items, total, err := repo.List(ctx, q)
		if err != nil {
			return storeError(err)
		}
		dest.Items = items
		dest.Pagination = NewPagination(total, q.Page, q.Limit)
		return nil
	}

	var result ListResult[T]
	if q.ViewerID != "" {
		if err := load(&result); err != nil {
			return nil, err
		}
		return &result, nil
	}

	if err := lists.Fetch(ctx, resource, q.CacheKey(), &result, func() error { return load(&result) }); err != nil {
		return nil, err
	}
	if result.Items == nil {
		result.Items = []*T{}
	}
	return &result, nil
}

// CreateNews validates and stores a news article.
func (s *ContentService) CreateNews(ctx context.Context, in CreateNewsInput) (*models.News, error) {
	if err := requireFields(
		field{"title", in.Title},
		field{"category", in.Category},
		field{"authorId", in.AuthorID},
	); err != nil {
		return nil, err
	}
	if err := checkLengths(in.Title, in.Category, in.Description); err != nil {
		return nil, err
	}
	if err := maxLen("Content", in.Content, maxContentLen); err != nil {
		return nil, err
	}
	tags, err := normalizeTags(in.Tags)
	if err != nil {
		return nil, err
	}

	news := &models.News{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Content:     in.Content,
		Category:    strings.TrimSpace(in.Category),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		SourceURL:   strings.TrimSpace(in.SourceURL),
		Tags:        tags,
		AuthorID:    strings.TrimSpace(in.AuthorID),
	}
	return createContent(ctx, s.lists, s.news, ResourceNews, news, func() string { return news.ID })
}

// CreateVideo validates and stores a video.
func (s *ContentService) CreateVideo(ctx context.Context, in CreateVideoInput) (*models.Video, error) {
	if err := requireFields(
		field{"title", in.Title},
		field{"videoUrl", in.VideoURL},
		field{"category", in.Category},
		field{"authorId", in.AuthorID},
	); err != nil {
		return nil, err
	}
	if err := checkLengths(in.Title, in.Category, in.Description); err != nil {
		return nil, err
	}
	if in.Duration < 0 {
		return nil, models.NewValidationError("duration must not be negative")
	}
	tags, err := normalizeTags(in.Tags)
	if err != nil {
		return nil, err
	}

	video := &models.Video{
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		VideoURL:     strings.TrimSpace(in.VideoURL),
		ThumbnailURL: strings.TrimSpace(in.ThumbnailURL),
		Duration:     in.Duration,
		Category:     strings.TrimSpace(in.Category),
		Tags:         tags,
		AuthorID:     strings.TrimSpace(in.AuthorID),
	}
	return createContent(ctx, s.lists, s.videos, ResourceVideos, video, func() string { return video.ID })
}

// CreateImage validates and stores an image.
func (s *ContentService) CreateImage(ctx context.Context, in CreateImageInput) (*models.Image, error) {
	if err := requireFields(
		field{"title", in.Title},
		field{"imageUrl", in.ImageURL},
		field{"category", in.Category},
		field{"authorId", in.AuthorID},
	); err != nil {
		return nil, err
	}
	if err := checkLengths(in.Title, in.Category, in.Description); err != nil {
		return nil, err
	}
	if (in.Width != nil && *in.Width <= 0) || (in.Height != nil && *in.Height <= 0) {
		return nil, models.NewValidationError("width and height must be positive")
	}
	if in.FileSize != nil && *in.FileSize < 0 {
		return nil, models.NewValidationError("fileSize must not be negative")
	}
	tags, err := normalizeTags(in.Tags)
	if err != nil {
		return nil, err
	}

	img := &models.Image{
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		ImageURL:     strings.TrimSpace(in.ImageURL),
		ThumbnailURL: strings.TrimSpace(in.ThumbnailURL),
		Category:     strings.TrimSpace(in.Category),
		Tags:         tags,
		Width:        in.Width,
		Height:       in.Height,
		FileSize:     in.FileSize,
		AuthorID:     strings.TrimSpace(in.AuthorID),
	}
	return createContent(ctx, s.lists, s.images, ResourceImages, img, func() string { return img.ID })
}

// CreatePost validates and stores a community post.
func (s *ContentService) CreatePost(ctx context.Context, in CreatePostInput) (*models.CommunityPost, error) {
	if err := requireFields(
		field{"title", in.Title},
		field{"content", in.Content},
		field{"category", in.Category},
		field{"authorId", in.AuthorID},
	); err != nil {
		return nil, err
	}
	if err := checkLengths(in.Title, in.Category, ""); err != nil {
		return nil, err
	}
	if err := maxLen("Content", in.Content, maxContentLen); err != nil {
		return nil, err
	}
	tags, err := normalizeTags(in.Tags)
	if err != nil {
		return nil, err
	}

	post := &models.CommunityPost{
		Title:    strings.TrimSpace(in.Title),
		Content:  in.Content,
		Category: strings.TrimSpace(in.Category),
		Tags:     tags,
		AuthorID: strings.TrimSpace(in.AuthorID),
	}
	return createContent(ctx, s.lists, s.posts, ResourceCommunity, post, func() string { return post.ID })
}

func checkLengths(title, category, description string) error {
	if err := maxLen("Title", title, maxTitleLen); err != nil {
		return err
	}
	if err := maxLen("Category", category, maxCategoryLen); err != nil {
		return err
	}
	return maxLen("Description", description, maxDescriptionLen)
}

// createContent stores item and reloads it with its author profile and counts.
func createContent[T any](
	ctx context.Context,
	lists *cache.ListCache,
	repo repository.ContentRepository[T],
	resource string,
	item *T,
	id func() string,
) (*T, error) {
	if err := repo.Create(ctx, item); err != nil {
		return nil, storeError(err)
	}
	lists.BumpGeneration(ctx, resource)

	created, err := repo.GetByID(ctx, id(), "")
	if err != nil {
		return nil, storeError(err)
	}
	return created, nil
}
