// Package cache – Redis
//
// The shared Featured implementation. The list is stored as one JSON value
// under a fixed key with the configured TTL, so every API instance sees the
// same cached list and the same invalidations.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/RizBits14/creovate-server/internal/domain"
)

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// Redis is a Featured cache shared between API instances.
type Redis struct {
	store cmdable
	raw   *redis.Client
	ttl   time.Duration
}

// NewRedis connects to url (redis://...) and verifies connectivity.
func NewRedis(ctx context.Context, url string, ttl time.Duration) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = 3 * time.Second
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Redis{store: raw, raw: raw, ttl: ttl}, nil
}

// Get implements Featured.
func (r *Redis) Get(ctx context.Context) ([]domain.Artwork, bool, error) {
	s, err := r.store.Get(ctx, featuredKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var arts []domain.Artwork
	if err := json.Unmarshal([]byte(s), &arts); err != nil {
		return nil, false, fmt.Errorf("decode featured: %w", err)
	}
	return arts, true, nil
}

// Set implements Featured.
func (r *Redis) Set(ctx context.Context, arts []domain.Artwork) error {
	b, err := json.Marshal(arts)
	if err != nil {
		return fmt.Errorf("encode featured: %w", err)
	}
	return r.store.Set(ctx, featuredKey, string(b), r.ttl).Err()
}

// Invalidate implements Featured.
func (r *Redis) Invalidate(ctx context.Context) error {
	return r.store.Del(ctx, featuredKey).Err()
}

// Close implements Featured.
func (r *Redis) Close() error {
	if r.raw == nil {
		return nil
	}
	return r.raw.Close()
}
