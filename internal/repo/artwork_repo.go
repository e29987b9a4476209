// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file adds the artwork patch, which merges attributes
// into the stored document inside a transaction.
package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/RizBits14/creovate-server/internal/domain"
)

// Artworks is the arts collection plus the field-merging patch that a
// flat column update cannot express.
type Artworks struct {
	*GormCollection[domain.Artwork]
	db *gorm.DB
}

// NewArtworks binds the arts collection to db.
func NewArtworks(db *gorm.DB) *Artworks {
	return &Artworks{GormCollection: NewCollection[domain.Artwork](db), db: db}
}

// Patch merges doc into the artwork identified by id and reports how many
// records actually changed (0 when the artwork is missing or the patch is a
// no-op). Likes and createdAt are never touched.
func (a *Artworks) Patch(ctx context.Context, id string, doc map[string]any) (int64, error) {
	var modified int64
	err := a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var art domain.Artwork
		if err := tx.Take(&art, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if !art.ApplyPatch(doc) {
			return nil
		}
		res := tx.Model(&domain.Artwork{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"email":      art.Email,
				"visibility": art.Visibility,
				"fields":     art.Fields,
			})
		modified = res.RowsAffected
		return res.Error
	})
	return modified, err
}
