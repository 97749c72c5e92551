// Package seed fills the database with demo users, content and engagement.
// It is meant for development and tests only.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"aihub/internal/middleware"
	"aihub/internal/models"
	"aihub/internal/repository"
	"aihub/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Options controls how much data Run creates.
type Options struct {
	Users           int
	ItemsPerKind    int
	CommentsPerItem int
	// RandSeed makes runs reproducible; 0 seeds from the clock.
	RandSeed int64
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
}

// DefaultOptions is a small but lively demo dataset.
func DefaultOptions() Options {
	return Options{Users: 12, ItemsPerKind: 15, CommentsPerItem: 4}
}

// Summary counts the rows Run created.
type Summary struct {
	Users    int
	News     int
	Videos   int
	Images   int
	Posts    int
	Comments int
	Likes    int
}

// Seeder builds demo data from a catalogue.
type Seeder struct {
	db      *gorm.DB
	catalog *Catalog
	opts    Options
	fake    *gofakeit.Faker
	users   repository.UserRepository
	likes   repository.LikeRepository
	now     time.Time
}

// NewSeeder creates a seeder writing to db.
func NewSeeder(db *gorm.DB, catalog *Catalog, opts Options) *Seeder {
	seed := opts.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	return &Seeder{
		db:      db,
		catalog: catalog,
		opts:    opts,
		fake:    gofakeit.New(seed),
		users:   repository.NewUserRepository(db),
		likes:   repository.NewLikeRepository(db),
		now:     time.Now(),
	}
}

// ClearAll deletes every row, children before parents.
func (s *Seeder) ClearAll(ctx context.Context) error {
	tx := s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true})
	if err := tx.Delete(&models.Like{}).Error; err != nil {
		return fmt.Errorf("clear likes: %w", err)
	}
	if err := tx.Where("parent_id IS NOT NULL").Delete(&models.Comment{}).Error; err != nil {
		return fmt.Errorf("clear replies: %w", err)
	}
	for _, m := range []any{&models.Comment{}, &models.News{}, &models.Video{}, &models.Image{}, &models.CommunityPost{}, &models.User{}} {
		if err := tx.Delete(m).Error; err != nil {
			return fmt.Errorf("clear %T: %w", m, err)
		}
	}
	return nil
}

// Run creates users, content, comments and likes.
func (s *Seeder) Run(ctx context.Context) (*Summary, error) {
	sum := &Summary{}

	users, err := s.seedUsers(ctx)
	if err != nil {
		return nil, err
	}
	sum.Users = len(users)

	var targets []models.Target

	news := make([]*models.News, 0, s.opts.ItemsPerKind)
	for i := 0; i < s.opts.ItemsPerKind; i++ {
		news = append(news, &models.News{
			Base:        models.Base{CreatedAt: s.pastTime()},
			Title:       s.fake.Sentence(6),
			Description: s.fake.Sentence(18),
			Content:     s.fake.Paragraph(3, 4, 12, "\n\n"),
			Category:    s.fake.RandomString(s.catalog.Categories.News),
			ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%s/1200/630", s.fake.UUID()),
			SourceURL:   s.fake.URL(),
			Tags:        s.pickTags(),
			Views:       s.fake.Number(0, 5000),
			AuthorID:    s.pickUser(users).ID,
		})
	}
	if err := s.createBatch(ctx, &news, len(news)); err != nil {
		return nil, fmt.Errorf("seed news: %w", err)
	}
	for _, n := range news {
		targets = append(targets, models.Target{Kind: models.TargetNews, ID: n.ID})
	}
	sum.News = len(news)

	videos := make([]*models.Video, 0, s.opts.ItemsPerKind)
	for i := 0; i < s.opts.ItemsPerKind; i++ {
		id := s.fake.UUID()
		videos = append(videos, &models.Video{
			Base:         models.Base{CreatedAt: s.pastTime()},
			Title:        s.fake.Sentence(5),
			Description:  s.fake.Sentence(20),
			VideoURL:     fmt.Sprintf("https://videos.example.com/%s.mp4", id),
			ThumbnailURL: fmt.Sprintf("https://picsum.photos/seed/%s/640/360", id),
			Duration:     s.fake.Number(30, 3600),
			Category:     s.fake.RandomString(s.catalog.Categories.Videos),
			Tags:         s.pickTags(),
			Views:        s.fake.Number(0, 20000),
			AuthorID:     s.pickUser(users).ID,
		})
	}
	if err := s.createBatch(ctx, &videos, len(videos)); err != nil {
		return nil, fmt.Errorf("seed videos: %w", err)
	}
	for _, v := range videos {
		targets = append(targets, models.Target{Kind: models.TargetVideo, ID: v.ID})
	}
	sum.Videos = len(videos)

	images := make([]*models.Image, 0, s.opts.ItemsPerKind)
	for i := 0; i < s.opts.ItemsPerKind; i++ {
		w, h := 1024, s.fake.RandomInt([]int{576, 768, 1024, 1536})
		size := int64(s.fake.Number(200_000, 4_000_000))
		id := s.fake.UUID()
		images = append(images, &models.Image{
			Base:         models.Base{CreatedAt: s.pastTime()},
			Title:        s.fake.Sentence(4),
			Description:  s.fake.Sentence(14),
			ImageURL:     fmt.Sprintf("https://picsum.photos/seed/%s/%d/%d", id, w, h),
			ThumbnailURL: fmt.Sprintf("https://picsum.photos/seed/%s/320/%d", id, h*320/w),
			Category:     s.fake.RandomString(s.catalog.Categories.Images),
			Tags:         s.pickTags(),
			Width:        &w,
			Height:       &h,
			FileSize:     &size,
			Views:        s.fake.Number(0, 10000),
			AuthorID:     s.pickUser(users).ID,
		})
	}
	if err := s.createBatch(ctx, &images, len(images)); err != nil {
		return nil, fmt.Errorf("seed images: %w", err)
	}
	for _, img := range images {
		targets = append(targets, models.Target{Kind: models.TargetImage, ID: img.ID})
	}
	sum.Images = len(images)

	posts := make([]*models.CommunityPost, 0, s.opts.ItemsPerKind)
	for i := 0; i < s.opts.ItemsPerKind; i++ {
		posts = append(posts, &models.CommunityPost{
			Base:     models.Base{CreatedAt: s.pastTime()},
			Title:    s.fake.Sentence(7),
			Content:  s.fake.Paragraph(2, 3, 14, "\n\n"),
			Category: s.fake.RandomString(s.catalog.Categories.Community),
			Tags:     s.pickTags(),
			Pinned:   i < 2,
			Views:    s.fake.Number(0, 3000),
			AuthorID: s.pickUser(users).ID,
		})
	}
	if err := s.createBatch(ctx, &posts, len(posts)); err != nil {
		return nil, fmt.Errorf("seed posts: %w", err)
	}
	for _, p := range posts {
		targets = append(targets, models.Target{Kind: models.TargetPost, ID: p.ID})
	}
	sum.Posts = len(posts)

	for _, target := range targets {
		n, err := s.seedThreads(ctx, target, users)
		if err != nil {
			return nil, err
		}
		sum.Comments += n
	}

	for _, u := range users {
		for _, target := range targets {
			if s.fake.Number(1, 100) > 20 {
				continue
			}
			if _, err := s.likes.Toggle(ctx, u.ID, target); err != nil {
				return nil, fmt.Errorf("seed like on %s: %w", target.Key(), err)
			}
			sum.Likes++
		}
	}

	middleware.Logger.InfoContext(ctx, "seed complete",
		"users", sum.Users, "news", sum.News, "videos", sum.Videos, "images", sum.Images,
		"posts", sum.Posts, "comments", sum.Comments, "likes", sum.Likes)
	return sum, nil
}

// seedUsers keeps catalogue accounts that already exist, so reruns without
// ClearAll leave their passwords untouched.
func (s *Seeder) seedUsers(ctx context.Context) ([]*models.User, error) {
	users := make([]*models.User, 0, len(s.catalog.Accounts)+s.opts.Users)

	for _, a := range s.catalog.Accounts {
		existing, err := s.users.GetByID(ctx, a.ID)
		if err == nil {
			users = append(users, existing)
			continue
		}
		var appErr *models.AppError
		if !errors.As(err, &appErr) || appErr.Code != models.CodeNotFound {
			return nil, fmt.Errorf("seed account %s: %w", a.ID, err)
		}

		hash, err := service.HashPassword(a.Password, s.opts.BcryptCost)
		if err != nil {
			return nil, err
		}
		u := &models.User{
			ID:           a.ID,
			Email:        a.Email,
			Name:         a.Name,
			Role:         a.Role,
			Avatar:       fmt.Sprintf("https://i.pravatar.cc/150?u=%s", a.ID),
			PasswordHash: hash,
		}
		if err := s.users.Create(ctx, u); err != nil {
			return nil, fmt.Errorf("seed account %s: %w", a.ID, err)
		}
		users = append(users, u)
	}

	// Generated users share one hash; hashing per user dominates seed time.
	hash, err := service.HashPassword("password123", s.opts.BcryptCost)
	if err != nil {
		return nil, err
	}
	for range s.opts.Users {
		id := s.fake.UUID()
		u := &models.User{
			ID:           id,
			Email:        fmt.Sprintf("%s.%s@example.com", strings.ToLower(s.fake.Username()), id[:8]),
			Name:         s.fake.Name(),
			Avatar:       fmt.Sprintf("https://i.pravatar.cc/150?u=%s", id),
			PasswordHash: hash,
		}
		if err := s.users.Create(ctx, u); err != nil {
			return nil, fmt.Errorf("seed users: %w", err)
		}
		users = append(users, u)
	}
	return users, nil
}

// seedThreads adds top-level comments to target, each with a few replies.
func (s *Seeder) seedThreads(ctx context.Context, target models.Target, users []*models.User) (int, error) {
	created := 0
	for i := s.fake.Number(0, s.opts.CommentsPerItem); i > 0; i-- {
		root := &models.Comment{
			Base:     models.Base{CreatedAt: s.pastTime()},
			Content:  s.fake.Sentence(s.fake.Number(6, 24)),
			AuthorID: s.pickUser(users).ID,
		}
		if err := target.ApplyToComment(root); err != nil {
			return created, err
		}
		if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(root).Error; err != nil {
			return created, fmt.Errorf("seed comment on %s: %w", target.Key(), err)
		}
		created++

		for j := s.fake.Number(0, 2); j > 0; j-- {
			reply := &models.Comment{
				Base:     models.Base{CreatedAt: root.CreatedAt.Add(time.Duration(s.fake.Number(1, 600)) * time.Minute)},
				Content:  s.fake.Sentence(s.fake.Number(4, 16)),
				AuthorID: s.pickUser(users).ID,
				ParentID: &root.ID,
			}
			if err := target.ApplyToComment(reply); err != nil {
				return created, err
			}
			if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(reply).Error; err != nil {
				return created, fmt.Errorf("seed reply on %s: %w", target.Key(), err)
			}
			created++
		}
	}
	return created, nil
}

func (s *Seeder) createBatch(ctx context.Context, rows any, n int) error {
	if n == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Omit(clause.Associations).CreateInBatches(rows, 100).Error
}

func (s *Seeder) pickUser(users []*models.User) *models.User {
	return users[s.fake.Number(0, len(users)-1)]
}

func (s *Seeder) pickTags() []string {
	n := s.fake.Number(0, 3)
	if n == 0 || len(s.catalog.Tags) == 0 {
		return []string{}
	}
	seen := make(map[string]bool, n)
	tags := make([]string, 0, n)
	for len(tags) < n && len(seen) < len(s.catalog.Tags) {
		tag := s.fake.RandomString(s.catalog.Tags)
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return tags
}

// pastTime spreads rows over the last sixty days.
func (s *Seeder) pastTime() time.Time {
	return s.now.Add(-time.Duration(s.fake.Number(0, 60*24*60)) * time.Minute)
}
