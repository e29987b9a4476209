// Artwork HTTP handlers.
//
// This file exposes REST endpoints for artworks:
//   - GET    /arts               (list, optional visibility/email filters)
//   - GET    /my-arts            (list by owner email)
//   - GET    /featured           (newest public artworks)
//   - GET    /arts/{id}          (single artwork or null)
//   - POST   /arts               (create, Idempotency-Key aware)
//   - PATCH  /arts/{id}          (merge fields)
//   - PATCH  /arts/{id}/like     (increment likes)
//   - DELETE /arts/{id}          (delete)
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RizBits14/creovate-server/internal/http/middleware"
	"github.com/RizBits14/creovate-server/internal/services"
)

// HeaderIdempotencyReplayed marks a response served from a recorded result.
const HeaderIdempotencyReplayed = "Idempotency-Replayed"

// ListArtworks godoc
// @Summary      List artworks
// @Description  Returns artworks newest first. Both filters are exact matches.
// @Tags         arts
// @Produce      json
// @Param        visibility  query  string  false  "Visibility filter"  example(Public)
// @Param        email       query  string  false  "Owner email filter"
// @Success      200  {array}   object
// @Failure      500  {object}  handlers.ErrorResponse
// @Router       /arts [get]
func (h *Handlers) ListArtworks(c *gin.Context) {
	arts, err := h.artSvc.List(c.Request.Context(), services.ArtworkFilter{
		Visibility: c.Query("visibility"),
		Email:      c.Query("email"),
	})
	if err != nil {
		internalError(c, "list artworks", err)
		return
	}
	ok(c, http.StatusOK, arts)
}

// ListMyArtworks godoc
// @Summary      List an owner's artworks
// @Description  Returns the artworks created by email, or [] when email is missing.
// @Tags         arts
// @Produce      json
// @Param        email  query  string  false  "Owner email"
// @Success      200  {array}   object
// @Failure      500  {object}  handlers.ErrorResponse
// @Router       /my-arts [get]
func (h *Handlers) ListMyArtworks(c *gin.Context) {
	arts, err := h.artSvc.ListMine(c.Request.Context(), c.Query("email"))
	if err != nil {
		internalError(c, "list my artworks", err)
		return
	}
	ok(c, http.StatusOK, arts)
}

// FeaturedArtworks godoc
// @Summary      Featured artworks
// @Description  Returns up to six public artworks, newest first.
// @Tags         arts
// @Produce      json
// @Success      200  {array}   object
// @Failure      500  {object}  handlers.ErrorResponse
// @Router       /featured [get]
func (h *Handlers) FeaturedArtworks(c *gin.Context) {
	arts, err := h.artSvc.Featured(c.Request.Context())
	if err != nil {
		internalError(c, "featured artworks", err)
		return
	}
	ok(c, http.StatusOK, arts)
}

// GetArtwork godoc
// @Summary      Get an artwork
// @Description  Returns the artwork, or null when no artwork has this id.
// @Tags         arts
// @Produce      json
// @Param        id   path      string  true  "Artwork ID"
// @Success      200  {object}  object
// @Failure      500  {object}  handlers.ErrorResponse
// @Router       /arts/{id} [get]
func (h *Handlers) GetArtwork(c *gin.Context) {
	art, err := h.artSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		internalError(c, "get artwork", err)
		return
	}
	if art == nil {
		ok(c, http.StatusOK, nil)
		return
	}
	ok(c, http.StatusOK, art)
}

// CreateArtwork godoc
// @Summary      Create an artwork
// @Description  Stores an artwork document. likes defaults to 0 and createdAt is set by the server.
// @Description  With an Idempotency-Key header, a retried request returns the id created first.
// @Tags         arts
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string  false  "Idempotency key"
// @Param        body             body      object  true   "Artwork fields"
// @Success      201  {object}  handlers.InsertResponse
// @Failure      400  {object}  handlers.ErrorResponse
// @Failure      500  {object}  handlers.ErrorResponse
// @Router       /arts [post]
func (h *Handlers) CreateArtwork(c *gin.Context) {
	ctx := c.Request.Context()
	key, keyed := middleware.GetIdempotencyKey(c)
	scope := middleware.IdempotencyScope(c)

	if keyed && h.idemSvc != nil && middleware.IsReplay(c) {
		id, found, err := h.idemSvc.Lookup(ctx, scope, key)
		if err != nil {
			middleware.LoggerFrom(c).Warn().Err(err).Msg("idempotency lookup failed")
		}
		if found {
			c.Header(HeaderIdempotencyReplayed, "true")
			ok(c, http.StatusCreated, InsertResponse{Success: true, InsertedID: id})
			return
		}
	}

	doc, err := bindDocument(c)
	if err != nil {
		invalidBody(c)
		return
	}
	id, err := h.artSvc.Create(ctx, doc)
	if err != nil {
		internalError(c, "create artwork", err)
		return
	}

	if keyed && h.idemSvc != nil {
		if err := h.idemSvc.Record(ctx, scope, key, id, http.StatusCreated); err != nil {
			middleware.LoggerFrom(c).Warn().Err(err).Str("artwork_id", id).Msg("idempotency record failed")
		}
	}
	ok(c, http.StatusCreated, InsertResponse{Success: true, InsertedID: id})
}

// UpdateArtwork godoc
// @Summary      Update an artwork
// @Description  Sets every supplied field. _id, likes and createdAt are ignored.
// @Description  modifiedCount is 0 when the artwork is missing or nothing changed.
// @Tags         arts
// @Accept       json
// @Produce      json
// @Param        id    path      string  true  "Artwork ID"
// @Param        body  body      object  true  "Fields to set"
// @Success      200  {object}  handlers.ModifiedResponse
// @Failure      400  {object}  handlers.ErrorResponse
// @Failure      500  {object}  handlers.ErrorResponse
// @Router       /arts/{id} [patch]
func (h *Handlers) UpdateArtwork(c *gin.Context) {
	doc, err := bindDocument(c)
	if err != nil {
		invalidBody(c)
		return
	}
	n, err := h.artSvc.Update(c.Request.Context(), c.Param("id"), doc)
	if err != nil {
		internalError(c, "update artwork", err)
		return
	}
	ok(c, http.StatusOK, ModifiedResponse{Success: true, ModifiedCount: n})
}

// LikeArtwork godoc
// @Summary      Like an artwork
// @Description  Atomically increments likes by one.
// @Tags         arts
// @Produce      json
// @Param        id   path      string  true  "Artwork ID"
// @Success      200  {object}  handlers.ModifiedResponse
// @Failure      500  {object}  handlers.ErrorResponse
// @Router       /arts/{id}/like [patch]
func (h *Handlers) LikeArtwork(c *gin.Context) {
	n, err := h.artSvc.Like(c.Request.Context(), c.Param("id"))
	if err != nil {
		internalError(c, "like artwork", err)
		return
	}
	ok(c, http.StatusOK, ModifiedResponse{Success: true, ModifiedCount: n})
}

// DeleteArtwork godoc
// @Summary      Delete an artwork
// @Description  Favourites and reviews of the artwork are kept.
// @Tags         arts
// @Produce      json
// @Param        id   path      string  true  "Artwork ID"
// @Success      200  {object}  handlers.DeletedResponse
// @Failure      404  {object}  handlers.DeletedResponse
// @Failure      500  {object}  handlers.ErrorResponse
// @Router       /arts/{id} [delete]
func (h *Handlers) DeleteArtwork(c *gin.Context) {
	n, err := h.artSvc.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, services.ErrArtworkNotFound) {
		c.AbortWithStatusJSON(http.StatusNotFound, DeletedResponse{Success: false, DeletedCount: 0, Message: "Not found"})
		return
	}
	if err != nil {
		internalError(c, "delete artwork", err)
		return
	}
	ok(c, http.StatusOK, DeletedResponse{Success: true, DeletedCount: n})
}
