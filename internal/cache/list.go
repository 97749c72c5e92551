package cache

import (
	"context"
	"fmt"
	"time"

	"aihub/internal/middleware"
	"aihub/internal/observability"

	"github.com/redis/go-redis/v9"
)

// ListCache caches list pages per resource. Every resource has a generation
// counter that is part of the key; bumping it orphans all cached pages,
// which then expire by TTL.
type ListCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewListCache returns a list cache. A nil client disables caching.
func NewListCache(rdb *redis.Client, ttl time.Duration) *ListCache {
	return &ListCache{rdb: rdb, ttl: ttl}
}

func generationKey(resource string) string {
	return "listgen:" + resource
}

func (c *ListCache) generation(ctx context.Context, resource string) (int64, error) {
	gen, err := c.rdb.Get(ctx, generationKey(resource)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return gen, err
}

// Key is the cache key of one page under the current generation.
func (c *ListCache) Key(ctx context.Context, resource, queryHash string) (string, error) {
	gen, err := c.generation(ctx, resource)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("list:%s:v%d:%s", resource, gen, queryHash), nil
}

// Fetch serves dest from the cache or fills it with fetch and stores it.
func (c *ListCache) Fetch(ctx context.Context, resource, queryHash string, dest any, fetch func() error) error {
	if c == nil || c.rdb == nil || c.ttl <= 0 {
		observability.ListCacheRequests.WithLabelValues(resource, "bypass").Inc()
		return fetch()
	}

	key, err := c.Key(ctx, resource, queryHash)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "list cache unavailable", "resource", resource, "error", err)
		observability.ListCacheRequests.WithLabelValues(resource, "bypass").Inc()
		return fetch()
	}

	hit, err := Aside(ctx, c.rdb, key, dest, c.ttl, fetch)
	if err != nil {
		return err
	}
	if hit {
		observability.ListCacheRequests.WithLabelValues(resource, "hit").Inc()
	} else {
		observability.ListCacheRequests.WithLabelValues(resource, "miss").Inc()
	}
	return nil
}

// BumpGeneration invalidates every cached page of resource.
func (c *ListCache) BumpGeneration(ctx context.Context, resource string) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Incr(ctx, generationKey(resource)).Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to invalidate list cache", "resource", resource, "error", err)
	}
}
