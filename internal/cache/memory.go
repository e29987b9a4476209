// Package cache – Memory
//
// The in-process Featured implementation, used when REDIS_URL is unset.
// Each API instance keeps its own copy of the list.
package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/RizBits14/creovate-server/internal/domain"
)

// Memory is an in-process Featured cache backed by go-cache.
type Memory struct {
	c *gocache.Cache
}

// NewMemory creates a cache whose entries expire after ttl.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{c: gocache.New(ttl, cleanupInterval(ttl))}
}

// Get implements Featured.
func (m *Memory) Get(_ context.Context) ([]domain.Artwork, bool, error) {
	v, found := m.c.Get(featuredKey)
	if !found {
		return nil, false, nil
	}
	arts, _ := v.([]domain.Artwork)
	// hand out a copy so callers cannot reorder the cached slice
	return append([]domain.Artwork(nil), arts...), true, nil
}

// Set implements Featured.
func (m *Memory) Set(_ context.Context, arts []domain.Artwork) error {
	m.c.Set(featuredKey, append([]domain.Artwork(nil), arts...), gocache.DefaultExpiration)
	return nil
}

// Invalidate implements Featured.
func (m *Memory) Invalidate(_ context.Context) error {
	m.c.Delete(featuredKey)
	return nil
}

// Close implements Featured.
func (m *Memory) Close() error { return nil }
