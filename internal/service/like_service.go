package service

import (
	"context"
	"strings"

	"aihub/internal/cache"
	"aihub/internal/middleware"
	"aihub/internal/models"
	"aihub/internal/observability"
	"aihub/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// LikeService toggles likes.
type LikeService struct {
	likeRepo repository.LikeRepository
	lists    *cache.ListCache
}

// NewLikeService creates a like service. lists may be nil.
func NewLikeService(likeRepo repository.LikeRepository, lists *cache.ListCache) *LikeService {
	return &LikeService{likeRepo: likeRepo, lists: lists}
}

// Toggle flips the user's like on the item and reports the new state.
func (s *LikeService) Toggle(ctx context.Context, userID, kind, itemID string) (liked bool, err error) {
	if err := requireFields(field{"userId", userID}, field{"type", kind}, field{"itemId", itemID}); err != nil {
		return false, err
	}
	target, err := models.ParseTarget(kind, itemID)
	if err != nil {
		return false, err
	}

	ctx, finish := observability.StartSpan(ctx, "likes.toggle",
		attribute.String("like.target_type", string(target.Kind)),
		attribute.String("like.target_id", target.ID),
	)
	defer func() { finish(err) }()

	liked, err = s.likeRepo.Toggle(ctx, strings.TrimSpace(userID), target)
	if err != nil {
		observability.LikeToggles.WithLabelValues(string(target.Kind), "error").Inc()
		return false, storeError(err)
	}

	outcome := "unliked"
	if liked {
		outcome = "liked"
	}
	observability.LikeToggles.WithLabelValues(string(target.Kind), outcome).Inc()
	middleware.Logger.DebugContext(ctx, "like toggled", "target", target.Key(), "liked", liked)

	if resource := resourceFor(target.Kind); resource != "" {
		s.lists.BumpGeneration(ctx, resource)
	}
	return liked, nil
}
