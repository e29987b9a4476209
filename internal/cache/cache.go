// Package cache holds the short-lived featured-artworks list so the landing
// page does not hit the store on every request. Two backends exist: an
// in-process cache (default) and Redis, selected by configuration.
package cache

import (
	"context"
	"time"

	"github.com/RizBits14/creovate-server/internal/config"
	"github.com/RizBits14/creovate-server/internal/domain"
)

const featuredKey = "creovate:featured"

// Featured caches the featured artworks list.
type Featured interface {
	// Get returns the cached list and whether it was present.
	Get(ctx context.Context) ([]domain.Artwork, bool, error)
	// Set stores the list until the configured TTL elapses.
	Set(ctx context.Context, arts []domain.Artwork) error
	// Invalidate drops the cached list.
	Invalidate(ctx context.Context) error
	// Close releases backend resources.
	Close() error
}

// New returns the backend selected by cfg, or nil when caching is
// disabled (FeaturedTTL == 0).
func New(ctx context.Context, cfg config.CacheConfig) (Featured, error) {
	if cfg.FeaturedTTL <= 0 {
		return nil, nil
	}
	if cfg.RedisURL != "" {
		return NewRedis(ctx, cfg.RedisURL, cfg.FeaturedTTL)
	}
	return NewMemory(cfg.FeaturedTTL), nil
}

func cleanupInterval(ttl time.Duration) time.Duration {
	if ttl < time.Minute {
		return time.Minute
	}
	return 2 * ttl
}
