package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/RizBits14/creovate-server/internal/domain"
	"github.com/RizBits14/creovate-server/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// fakeCache is an in-test FeaturedCache that counts calls and can fail.
type fakeCache struct {
	mu          sync.Mutex
	arts        []domain.Artwork
	found       bool
	gets, sets  int
	invalidates int
	failGet     bool
	failSet     bool
}

func (f *fakeCache) Get(context.Context) ([]domain.Artwork, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.failGet {
		return nil, false, errors.New("cache down")
	}
	return f.arts, f.found, nil
}

func (f *fakeCache) Set(_ context.Context, arts []domain.Artwork) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets++
	if f.failSet {
		return errors.New("cache down")
	}
	f.arts, f.found = arts, true
	return nil
}

func (f *fakeCache) Invalidate(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidates++
	f.arts, f.found = nil, false
	return nil
}
