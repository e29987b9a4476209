// Package services – FavouriteService
//
// This file implements the per-user favourites relation. Adding is
// idempotent: an existing (userEmail, artworkId) pair is reported back with
// Already=true and nothing is written. The lookup-then-insert is not atomic;
// a concurrent duplicate is tolerated.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"github.com/RizBits14/creovate-server/internal/domain"
	"github.com/RizBits14/creovate-server/internal/repo"
)

// FavouriteService provides the favourites use-cases.
type FavouriteService struct {
	Store repo.Collection[domain.Favourite]
	Now   func() time.Time
}

// NewFavouriteService constructs a FavouriteService.
func NewFavouriteService(store repo.Collection[domain.Favourite]) *FavouriteService {
	return &FavouriteService{Store: store, Now: func() time.Time { return time.Now().UTC() }}
}

// Add favourites artworkID for userEmail. already reports whether the pair
// existed before the call.
func (s *FavouriteService) Add(ctx context.Context, userEmail, artworkID string) (already bool, err error) {
	ctx, span := otel.Tracer("services/FavouriteService").Start(ctx, "Add")
	defer span.End()

	if userEmail == "" || artworkID == "" {
		favouriteAdds.WithLabelValues("invalid").Inc()
		return false, ErrFavouriteFieldsRequired
	}

	_, err = s.Store.FindOne(ctx, repo.Filter{"user_email": userEmail, "artwork_id": artworkID})
	switch {
	case err == nil:
		favouriteAdds.WithLabelValues("already").Inc()
		return true, nil
	case !errors.Is(err, repo.ErrNotFound):
		return false, err
	}

	fav := &domain.Favourite{
		ID:        uuid.NewString(),
		UserEmail: userEmail,
		ArtworkID: artworkID,
		CreatedAt: s.Now(),
	}
	if err := s.Store.InsertOne(ctx, fav); err != nil {
		return false, err
	}
	favouriteAdds.WithLabelValues("created").Inc()
	return false, nil
}

// ListForUser returns the user's favourites in store order, or an empty
// list when email is blank.
func (s *FavouriteService) ListForUser(ctx context.Context, email string) ([]domain.Favourite, error) {
	if email == "" {
		return []domain.Favourite{}, nil
	}
	ctx, span := otel.Tracer("services/FavouriteService").Start(ctx, "ListForUser")
	defer span.End()
	return s.Store.FindMany(ctx, repo.Filter{"user_email": email}, nil, 0)
}

// Exists reports whether email has favourited artworkID. Missing inputs
// yield false without touching the store.
func (s *FavouriteService) Exists(ctx context.Context, email, artworkID string) (bool, error) {
	if email == "" || artworkID == "" {
		return false, nil
	}
	ctx, span := otel.Tracer("services/FavouriteService").Start(ctx, "Exists")
	defer span.End()

	_, err := s.Store.FindOne(ctx, repo.Filter{"user_email": email, "artwork_id": artworkID})
	if errors.Is(err, repo.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Remove deletes the (email, artworkID) favourite, duplicates included, and
// reports 1 if anything was removed.
func (s *FavouriteService) Remove(ctx context.Context, artworkID, email string) (int64, error) {
	if email == "" {
		return 0, ErrEmailRequired
	}
	ctx, span := otel.Tracer("services/FavouriteService").Start(ctx, "Remove")
	defer span.End()
	n, err := s.Store.DeleteMany(ctx, repo.Filter{"user_email": email, "artwork_id": artworkID})
	if n > 1 {
		n = 1
	}
	return n, err
}
