// Package services – ArtworkService
//
// This file implements the ArtworkService, which owns the artwork lifecycle:
// listing with optional filters, the featured list, creation with server-side
// stamps, field patches, likes and deletion. The featured list is served
// through an optional cache that every write invalidates. A featured fill
// that overlapped a write is not cached.
//
// Malformed ids are not client errors here: they surface as wrapped
// repo.ErrInvalidID so the handler reports a generic server failure.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/RizBits14/creovate-server/internal/domain"
	"github.com/RizBits14/creovate-server/internal/repo"
)

// FeaturedLimit caps the featured list.
const FeaturedLimit = 6

// ArtworkStore is the persistence contract required by ArtworkService.
type ArtworkStore interface {
	repo.Collection[domain.Artwork]

	// Patch merges doc into the artwork and returns the modified count.
	Patch(ctx context.Context, id string, doc map[string]any) (int64, error)
}

// FeaturedCache caches the featured list. Implementations must be safe for
// concurrent use.
type FeaturedCache interface {
	Get(ctx context.Context) ([]domain.Artwork, bool, error)
	Set(ctx context.Context, arts []domain.Artwork) error
	Invalidate(ctx context.Context) error
}

// ArtworkFilter narrows List. Empty fields mean "no constraint".
type ArtworkFilter struct {
	Visibility string
	Email      string
}

// ArtworkService provides the artwork use-cases.
type ArtworkService struct {
	// Store is the arts collection.
	Store ArtworkStore
	// Cache is optional; nil disables featured caching.
	Cache FeaturedCache
	// Now returns the current time (overridable in tests).
	Now func() time.Time

	// gen counts invalidations; mu orders them against cache fills.
	mu  sync.Mutex
	gen uint64
}

// NewArtworkService constructs an ArtworkService. cache may be nil.
func NewArtworkService(store ArtworkStore, cache FeaturedCache) *ArtworkService {
	return &ArtworkService{
		Store: store,
		Cache: cache,
		Now:   func() time.Time { return time.Now().UTC() },
	}
}

// List returns artworks matching f, newest first.
func (s *ArtworkService) List(ctx context.Context, f ArtworkFilter) ([]domain.Artwork, error) {
	ctx, span := otel.Tracer("services/ArtworkService").Start(ctx, "List")
	defer span.End()

	filter := repo.Filter{}
	if f.Visibility != "" {
		filter["visibility"] = f.Visibility
	}
	if f.Email != "" {
		filter["email"] = f.Email
	}
	span.SetAttributes(attribute.Int("filter.keys", len(filter)))
	return s.Store.FindMany(ctx, filter, repo.NewestFirst, 0)
}

// ListMine returns the artworks owned by email, or an empty list when email
// is blank.
func (s *ArtworkService) ListMine(ctx context.Context, email string) ([]domain.Artwork, error) {
	if email == "" {
		return []domain.Artwork{}, nil
	}
	return s.List(ctx, ArtworkFilter{Email: email})
}

// Get returns the artwork with id, or (nil, nil) when it does not exist.
func (s *ArtworkService) Get(ctx context.Context, id string) (*domain.Artwork, error) {
	ctx, span := otel.Tracer("services/ArtworkService").Start(ctx, "Get")
	defer span.End()

	pid, err := repo.ParseID(id)
	if err != nil {
		return nil, fmt.Errorf("get artwork %q: %w", id, err)
	}
	a, err := s.Store.FindOne(ctx, repo.Filter{"id": pid})
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	return a, err
}

// Featured returns up to FeaturedLimit public artworks, newest first.
func (s *ArtworkService) Featured(ctx context.Context) ([]domain.Artwork, error) {
	ctx, span := otel.Tracer("services/ArtworkService").Start(ctx, "Featured")
	defer span.End()

	if s.Cache != nil {
		arts, found, err := s.Cache.Get(ctx)
		switch {
		case err != nil:
			featuredCacheLookups.WithLabelValues("error").Inc()
			zerolog.Ctx(ctx).Warn().Err(err).Msg("featured cache read failed")
		case found:
			featuredCacheLookups.WithLabelValues("hit").Inc()
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return arts, nil
		default:
			featuredCacheLookups.WithLabelValues("miss").Inc()
		}
	}

	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	arts, err := s.Store.FindMany(ctx, repo.Filter{"visibility": domain.VisibilityPublic}, repo.NewestFirst, FeaturedLimit)
	if err != nil {
		return nil, err
	}
	if s.Cache != nil {
		s.fill(ctx, gen, arts)
	}
	return arts, nil
}

// fill caches arts unless a write invalidated the list after gen was read.
func (s *ArtworkService) fill(ctx context.Context, gen uint64, arts []domain.Artwork) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		zerolog.Ctx(ctx).Debug().Msg("featured list changed during read; not caching")
		return
	}
	if err := s.Cache.Set(ctx, arts); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("featured cache write failed")
	}
}

// Create stores a new artwork from body and returns its id.
func (s *ArtworkService) Create(ctx context.Context, body map[string]any) (string, error) {
	ctx, span := otel.Tracer("services/ArtworkService").Start(ctx, "Create")
	defer span.End()

	a := domain.NewArtwork(uuid.NewString(), body, s.Now())
	if err := s.Store.InsertOne(ctx, a); err != nil {
		return "", err
	}
	artworksCreated.Inc()
	span.SetAttributes(attribute.String("artwork.id", a.ID))
	s.invalidate(ctx)
	return a.ID, nil
}

// Update sets every field in body except the id, likes and createdAt.
// It returns the number of modified artworks (0 or 1).
func (s *ArtworkService) Update(ctx context.Context, id string, body map[string]any) (int64, error) {
	ctx, span := otel.Tracer("services/ArtworkService").Start(ctx, "Update")
	defer span.End()

	pid, err := repo.ParseID(id)
	if err != nil {
		return 0, fmt.Errorf("update artwork %q: %w", id, err)
	}
	n, err := s.Store.Patch(ctx, pid, body)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.invalidate(ctx)
	}
	return n, nil
}

// Like atomically adds one to the artwork's likes.
func (s *ArtworkService) Like(ctx context.Context, id string) (int64, error) {
	ctx, span := otel.Tracer("services/ArtworkService").Start(ctx, "Like")
	defer span.End()

	pid, err := repo.ParseID(id)
	if err != nil {
		return 0, fmt.Errorf("like artwork %q: %w", id, err)
	}
	n, err := s.Store.IncrementMany(ctx, repo.Filter{"id": pid}, "likes", 1)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		artworkLikes.Inc()
		s.invalidate(ctx)
	}
	return n, nil
}

// Delete removes the artwork. It returns ErrArtworkNotFound when nothing
// matched. Favourites and reviews pointing at it are left in place.
func (s *ArtworkService) Delete(ctx context.Context, id string) (int64, error) {
	ctx, span := otel.Tracer("services/ArtworkService").Start(ctx, "Delete")
	defer span.End()

	pid, err := repo.ParseID(id)
	if err != nil {
		return 0, fmt.Errorf("delete artwork %q: %w", id, err)
	}
	n, err := s.Store.DeleteMany(ctx, repo.Filter{"id": pid})
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, ErrArtworkNotFound
	}
	s.invalidate(ctx)
	return n, nil
}

func (s *ArtworkService) invalidate(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	if err := s.Cache.Invalidate(ctx); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("featured cache invalidate failed")
	}
}
