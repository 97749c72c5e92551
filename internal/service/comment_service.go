package service

import (
	"context"
	"strings"

	"aihub/internal/cache"
	"aihub/internal/models"
	"aihub/internal/repository"
)

const maxCommentLen = 10000

// CommentService lists and creates comments on content items.
type CommentService struct {
	commentRepo repository.CommentRepository
	lists       *cache.ListCache
}

// CreateCommentInput is the payload for a new comment or reply.
type CreateCommentInput struct {
	Content  string `json:"content"`
	AuthorID string `json:"authorId"`
	Type     string `json:"type"`
	ItemID   string `json:"itemId"`
	ParentID string `json:"parentId"`
}

// NewCommentService creates a comment service. lists may be nil.
func NewCommentService(commentRepo repository.CommentRepository, lists *cache.ListCache) *CommentService {
	return &CommentService{commentRepo: commentRepo, lists: lists}
}

// ListComments returns the top-level comments of an item with their replies.
func (s *CommentService) ListComments(ctx context.Context, kind, itemID string, page, limit int) (*ListResult[models.Comment], error) {
	if err := requireFields(field{"type", kind}, field{"itemId", itemID}); err != nil {
		return nil, err
	}
	target, err := models.ParseCommentTarget(kind, itemID)
	if err != nil {
		return nil, err
	}

	comments, total, err := s.commentRepo.ListTopLevel(ctx, target, page, limit)
	if err != nil {
		return nil, storeError(err)
	}
	return &ListResult[models.Comment]{
		Items:      comments,
		Pagination: NewPagination(total, page, limit),
	}, nil
}

// CreateComment stores a comment. A reply to a reply is attached to the
// thread's top-level comment so nesting stays one level deep.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if err := requireFields(
		field{"content", in.Content},
		field{"authorId", in.AuthorID},
		field{"type", in.Type},
		field{"itemId", in.ItemID},
	); err != nil {
		return nil, err
	}
	if err := maxLen("Comment", in.Content, maxCommentLen); err != nil {
		return nil, err
	}

	target, err := models.ParseCommentTarget(in.Type, in.ItemID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content:  strings.TrimSpace(in.Content),
		AuthorID: strings.TrimSpace(in.AuthorID),
	}
	if err := target.ApplyToComment(comment); err != nil {
		return nil, err
	}

	if parentID := strings.TrimSpace(in.ParentID); parentID != "" {
		rootID, err := s.threadRoot(ctx, parentID, target)
		if err != nil {
			return nil, err
		}
		comment.ParentID = &rootID
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, storeError(err)
	}
	s.lists.BumpGeneration(ctx, resourceFor(target.Kind))

	created, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, storeError(err)
	}
	return created, nil
}

// threadRoot checks that the parent belongs to target and returns the id of
// the top-level comment of its thread.
func (s *CommentService) threadRoot(ctx context.Context, parentID string, target models.Target) (string, error) {
	parent, err := s.commentRepo.GetByID(ctx, parentID)
	if err != nil {
		if repository.IsNotFound(err) {
			return "", models.NewValidationError("Parent comment not found")
		}
		return "", storeError(err)
	}

	parentTarget, ok := parent.Target()
	if !ok || parentTarget != target {
		return "", models.NewValidationError("Parent comment belongs to a different item")
	}

	if parent.ParentID != nil {
		return *parent.ParentID, nil
	}
	return parent.ID, nil
}
