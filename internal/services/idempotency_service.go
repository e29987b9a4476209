// Package services – IdempotencyService
//
// This file records which resource a keyed create produced, so a retry with
// the same Idempotency-Key gets the same id back. Records expire after TTL;
// an expired key counts as unseen.
package services

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"gorm.io/gorm"

	"github.com/RizBits14/creovate-server/internal/domain"
	"github.com/RizBits14/creovate-server/internal/repo"
)

// IdempotencyService records and replays keyed create results. The scope
// (e.g. "POST /arts") keeps equal keys on different endpoints apart.
type IdempotencyService struct {
	Keys *repo.IdempotencyKeys
	// TTL is how long a recorded result can be replayed.
	TTL time.Duration
	// Now stamps records and judges expiry.
	Now func() time.Time
}

// NewIdempotencyService constructs an IdempotencyService.
func NewIdempotencyService(db *gorm.DB, ttl time.Duration) *IdempotencyService {
	return &IdempotencyService{Keys: repo.NewIdempotencyKeys(db), TTL: ttl, Now: func() time.Time { return time.Now().UTC() }}
}

// Lookup returns the resource id recorded for (scope, key). found is false
// for a blank key, an unknown key and a record past its expiry; err is only
// set when the store fails.
func (s *IdempotencyService) Lookup(ctx context.Context, scope, key string) (resourceID string, found bool, err error) {
	ctx, span := otel.Tracer("services/IdempotencyService").Start(ctx, "Lookup")
	defer span.End()

	rec, err := s.Keys.Get(ctx, scope, key, s.Now())
	if errors.Is(err, repo.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return rec.ResourceID, true, nil
}

// Exists reports whether a replayable record exists. Its signature matches
// the middleware lookup hook.
func (s *IdempotencyService) Exists(ctx context.Context, scope, key string, _ time.Time) (bool, error) {
	_, found, err := s.Lookup(ctx, scope, key)
	return found, err
}

// Record stores the outcome of a keyed request. A concurrent request that
// already recorded the same key is not an error.
func (s *IdempotencyService) Record(ctx context.Context, scope, key, resourceID string, status int) error {
	ctx, span := otel.Tracer("services/IdempotencyService").Start(ctx, "Record")
	defer span.End()

	now := s.Now()
	err := s.Keys.Put(ctx, &domain.Idempotency{
		Scope:      scope,
		Key:        key,
		ResourceID: resourceID,
		Status:     status,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.TTL),
	})
	if errors.Is(err, repo.ErrDuplicate) {
		return nil
	}
	return err
}

// Purge deletes records whose expiry is before Now and returns how many
// were removed. cmd/server runs it on a ticker.
func (s *IdempotencyService) Purge(ctx context.Context) (int64, error) {
	return s.Keys.Purge(ctx, s.Now())
}
