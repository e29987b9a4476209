package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/RizBits14/creovate-server/internal/domain"
	"github.com/RizBits14/creovate-server/internal/http/middleware"
	"github.com/RizBits14/creovate-server/internal/repo"
	"github.com/RizBits14/creovate-server/internal/services"
)

// --- test DB helper (pure-Go sqlite, one database per test) ---
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:h_%s?mode=memory&cache=shared", uuid.NewString())
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
	if err := repo.EnsureIndexes(context.Background(), db); err != nil {
		t.Fatalf("indexes: %v", err)
	}
	return db
}

// tick returns a clock that advances one second per call, so newest-first
// ordering is deterministic.
func tick() func() time.Time {
	now := time.Now().UTC().Add(-time.Hour)
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

// newHandlers wires the real services over db.
func newHandlers(db *gorm.DB) *Handlers {
	arts := services.NewArtworkService(repo.NewArtworks(db), nil)
	arts.Now = tick()
	reviews := services.NewReviewService(repo.NewCollection[domain.Review](db))
	reviews.Now = tick()
	return New(
		arts,
		services.NewFavouriteService(repo.NewCollection[domain.Favourite](db)),
		reviews,
		services.NewContactService(repo.NewCollection[domain.ContactMessage](db)),
		services.NewIdempotencyService(db, time.Hour),
	)
}

// newRouter mounts every endpoint behind the request id and idempotency
// middleware, mirroring the production route table.
func newRouter(h *Handlers, lookup middleware.IdempotencyLookup) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID())
	if lookup != nil {
		r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{MaxLen: 200}, lookup))
	}

	r.GET("/arts", h.ListArtworks)
	r.GET("/my-arts", h.ListMyArtworks)
	r.GET("/featured", h.FeaturedArtworks)
	r.GET("/arts/:id", h.GetArtwork)
	r.POST("/arts", h.CreateArtwork)
	r.PATCH("/arts/:id", h.UpdateArtwork)
	r.PATCH("/arts/:id/like", h.LikeArtwork)
	r.DELETE("/arts/:id", h.DeleteArtwork)

	r.POST("/favourites", h.AddFavourite)
	r.GET("/favourites", h.ListFavourites)
	r.GET("/favourites/check", h.CheckFavourite)
	r.DELETE("/favourites/:artworkId", h.RemoveFavourite)

	r.GET("/reviews", h.ListReviews)
	r.POST("/reviews", h.CreateReview)

	r.POST("/contact", h.SubmitContact)
	return r
}

func do(t *testing.T, r http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func expectServerError(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d; want 500 (body=%s)", w.Code, w.Body.String())
	}
	resp := decode[ErrorResponse](t, w)
	if resp.Success || resp.Code != ErrCodeInternal || resp.Message != "Server error" {
		t.Fatalf("unexpected error body: %+v", resp)
	}
}

var errStore = errors.New("store down")

// failingArtworks answers every call with errStore.
type failingArtworks struct{}

func (failingArtworks) List(context.Context, services.ArtworkFilter) ([]domain.Artwork, error) {
	return nil, errStore
}
func (failingArtworks) ListMine(context.Context, string) ([]domain.Artwork, error) {
	return nil, errStore
}
func (failingArtworks) Get(context.Context, string) (*domain.Artwork, error) { return nil, errStore }
func (failingArtworks) Featured(context.Context) ([]domain.Artwork, error) { return nil, errStore }
func (failingArtworks) Create(context.Context, map[string]any) (string, error) {
	return "", errStore
}
func (failingArtworks) Update(context.Context, string, map[string]any) (int64, error) {
	return 0, errStore
}
func (failingArtworks) Like(context.Context, string) (int64, error)   { return 0, errStore }
func (failingArtworks) Delete(context.Context, string) (int64, error) { return 0, errStore }

// failingFavourites answers every call with errStore.
type failingFavourites struct{}

func (failingFavourites) Add(context.Context, string, string) (bool, error) { return false, errStore }
func (failingFavourites) ListForUser(context.Context, string) ([]domain.Favourite, error) {
	return nil, errStore
}
func (failingFavourites) Exists(context.Context, string, string) (bool, error) {
	return false, errStore
}
func (failingFavourites) Remove(context.Context, string, string) (int64, error) {
	return 0, errStore
}

// failingReviews answers every call with errStore.
type failingReviews struct{}

func (failingReviews) ListForArtwork(context.Context, string) ([]domain.Review, error) {
	return nil, errStore
}
func (failingReviews) Create(context.Context, services.ReviewInput) (string, bool, error) {
	return "", false, errStore
}

// failingContact answers every call with errStore.
type failingContact struct{}

func (failingContact) Submit(context.Context, string, string, string) error { return errStore }

// stubIdem is an in-memory IdempotencyService.
type stubIdem struct {
	ids       map[string]string
	lookupErr error
	recordErr error
	records   int
}

func (s *stubIdem) Lookup(_ context.Context, scope, key string) (string, bool, error) {
	if s.lookupErr != nil {
		return "", false, s.lookupErr
	}
	id, ok := s.ids[scope+"|"+key]
	return id, ok, nil
}

func (s *stubIdem) Record(_ context.Context, scope, key, id string, _ int) error {
	s.records++
	if s.recordErr != nil {
		return s.recordErr
	}
	if s.ids == nil {
		s.ids = map[string]string{}
	}
	s.ids[scope+"|"+key] = id
	return nil
}

func (s *stubIdem) exists(_ context.Context, scope, key string, _ time.Time) (bool, error) {
	_, ok := s.ids[scope+"|"+key]
	return ok, nil
}
