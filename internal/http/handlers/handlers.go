// Package handlers exposes the gallery REST endpoints.
//
// Handlers are transport-thin: they decode input, call application services,
// and translate results into HTTP responses. Services are consumed through the
// narrow interfaces below so tests can substitute fakes.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RizBits14/creovate-server/internal/domain"
	"github.com/RizBits14/creovate-server/internal/services"
)

//
// Service contracts (context-aware)
//

// ArtworkService defines artwork operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ArtworkService interface {
	// List returns artworks matching the filter, newest first.
	List(ctx context.Context, f services.ArtworkFilter) ([]domain.Artwork, error)
	// ListMine returns the artworks owned by email.
	ListMine(ctx context.Context, email string) ([]domain.Artwork, error)
	// Get returns one artwork, or nil when it does not exist.
	Get(ctx context.Context, id string) (*domain.Artwork, error)
	// Featured returns the newest public artworks.
	Featured(ctx context.Context) ([]domain.Artwork, error)
	// Create stores a new artwork and returns its id.
	Create(ctx context.Context, body map[string]any) (string, error)
	// Update merges body into an artwork and returns the modified count.
	Update(ctx context.Context, id string, body map[string]any) (int64, error)
	// Like increments the like counter and returns the modified count.
	Like(ctx context.Context, id string) (int64, error)
	// Delete removes an artwork and returns the deleted count.
	Delete(ctx context.Context, id string) (int64, error)
}

// FavouriteService defines the per-user favourites relation.
type FavouriteService interface {
	Add(ctx context.Context, userEmail, artworkID string) (already bool, err error)
	ListForUser(ctx context.Context, email string) ([]domain.Favourite, error)
	Exists(ctx context.Context, email, artworkID string) (bool, error)
	Remove(ctx context.Context, artworkID, email string) (int64, error)
}

// ReviewService defines review submission and listing.
type ReviewService interface {
	ListForArtwork(ctx context.Context, artworkID string) ([]domain.Review, error)
	Create(ctx context.Context, in services.ReviewInput) (id string, already bool, err error)
}

// ContactService accepts contact-form messages.
type ContactService interface {
	Submit(ctx context.Context, name, email, message string) error
}

// IdempotencyService records and replays keyed create results.
type IdempotencyService interface {
	Lookup(ctx context.Context, scope, key string) (resourceID string, found bool, err error)
	Record(ctx context.Context, scope, key, resourceID string, status int) error
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for artworks, favourites, reviews and
// contact messages.
type Handlers struct {
	artSvc     ArtworkService
	favSvc     FavouriteService
	reviewSvc  ReviewService
	contactSvc ContactService
	idemSvc    IdempotencyService
}

// New constructs and returns a Handlers instance bound to the given services.
// idem may be nil, which disables replay of keyed creates.
func New(arts ArtworkService, favs FavouriteService, reviews ReviewService, contact ContactService, idem IdempotencyService) *Handlers {
	return &Handlers{
		artSvc:     arts,
		favSvc:     favs,
		reviewSvc:  reviews,
		contactSvc: contact,
		idemSvc:    idem,
	}
}

// respondError maps service errors onto the error envelope. Validation
// messages are passed through; everything else becomes a generic 500.
func respondError(c *gin.Context, op string, err error) {
	if errors.Is(err, services.ErrValidation) {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	internalError(c, op, err)
}

// invalidBody answers a body that is not valid JSON.
func invalidBody(c *gin.Context) {
	fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
}
