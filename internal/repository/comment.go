package repository

import (
	"context"

	"aihub/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	// ListTopLevel returns the threads of a target, newest first, with their
	// replies attached oldest first.
	ListTopLevel(ctx context.Context, target models.Target, page, limit int) ([]*models.Comment, int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

const commentDetails = "comments.*, " +
	"(SELECT COUNT(*) FROM likes WHERE likes.comment_id = comments.id) AS likes_count, " +
	"(SELECT COUNT(*) FROM comments AS replies WHERE replies.parent_id = comments.id) AS replies_count"

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Omit("Author", "Replies", "News", "Video", "Image", "Post").Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Select(commentDetails).
		Preload("Author", authorPreview).
		Where("comments.id = ?", id).
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	if comment.Replies == nil {
		comment.Replies = []*models.Comment{}
	}
	return &comment, nil
}

func (r *commentRepository) ListTopLevel(ctx context.Context, target models.Target, page, limit int) ([]*models.Comment, int64, error) {
	if page < 1 {
		page = 1
	}
	topLevel := func(db *gorm.DB) *gorm.DB {
		return db.Scopes(target.Scope()).Where("comments.parent_id IS NULL")
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Comment{}).Scopes(topLevel).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	comments := make([]*models.Comment, 0, limit)
	offset := (page - 1) * limit
	if total == 0 || int64(offset) >= total {
		return comments, total, nil
	}

	err := r.db.WithContext(ctx).
		Select(commentDetails).
		Scopes(topLevel).
		Preload("Author", authorPreview).
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Select(commentDetails).Order("comments.created_at ASC, comments.id ASC")
		}).
		Preload("Replies.Author", authorPreview).
		Order("comments.created_at DESC, comments.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	for _, c := range comments {
		if c.Replies == nil {
			c.Replies = []*models.Comment{}
		}
		for _, reply := range c.Replies {
			reply.Replies = []*models.Comment{}
		}
	}
	return comments, total, nil
}
