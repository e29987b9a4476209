// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file stores Idempotency-Key results and purges them
// once they expire.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/RizBits14/creovate-server/internal/domain"
)

// ErrDuplicate means a live record already holds the (scope, key) pair.
var ErrDuplicate = errors.New("duplicate idempotency key")

// IdempotencyKeys stores the outcome of keyed create requests. Expiry is
// always judged against a caller-supplied clock.
type IdempotencyKeys struct {
	*GormCollection[domain.Idempotency]
	db *gorm.DB
}

// NewIdempotencyKeys binds the idempotency table to db.
func NewIdempotencyKeys(db *gorm.DB) *IdempotencyKeys {
	return &IdempotencyKeys{GormCollection: NewCollection[domain.Idempotency](db), db: db}
}

// Get returns the record for (scope, key) that is still live at now, or
// ErrNotFound. A blank key never matches.
func (k *IdempotencyKeys) Get(ctx context.Context, scope, key string, now time.Time) (*domain.Idempotency, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrNotFound
	}
	var rec domain.Idempotency
	err := k.db.WithContext(ctx).
		Where("scope = ? AND key = ? AND expires_at > ?", scope, key, now).
		Take(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Put inserts rec, assigning an id when empty. A record for the same pair
// that expired by rec.CreatedAt is replaced; a live one yields ErrDuplicate.
func (k *IdempotencyKeys) Put(ctx context.Context, rec *domain.Idempotency) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	err := k.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stale := tx.Where("scope = ? AND key = ? AND expires_at <= ?", rec.Scope, rec.Key, rec.CreatedAt)
		if err := stale.Delete(&domain.Idempotency{}).Error; err != nil {
			return err
		}
		return tx.Create(rec).Error
	})
	if IsDuplicate(err) {
		return ErrDuplicate
	}
	return err
}

// Purge deletes every record expired at now.
func (k *IdempotencyKeys) Purge(ctx context.Context, now time.Time) (int64, error) {
	res := k.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&domain.Idempotency{})
	return res.RowsAffected, res.Error
}
