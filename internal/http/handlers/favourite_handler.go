// Favourite HTTP handlers.
//
//   - POST   /favourites                 (add, idempotent)
//   - GET    /favourites?email=          (list)
//   - GET    /favourites/check           (membership)
//   - DELETE /favourites/{artworkId}     (remove)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AddFavouriteRequest is the JSON payload for adding a favourite.
type AddFavouriteRequest struct {
	UserEmail string `json:"userEmail" example:"riz@example.com"`
	ArtworkID string `json:"artworkId" example:"6f1c2b0e-8a55-4d8e-9a77-3f5b8f1d2c10"`
}

// AddFavourite godoc
// @Summary      Favourite an artwork
// @Description  Adding an existing pair answers 200 with already=true and writes nothing.
// @Tags         favourites
// @Accept       json
// @Produce      json
// @Param        body  body      handlers.AddFavouriteRequest  true  "Favourite"
// @Success      201  {object}  handlers.SuccessResponse
// @Success      200  {object}  handlers.SuccessResponse
// @Failure      400  {object}  handlers.ErrorResponse
// @Failure      500  {object}  handlers.ErrorResponse
// @Router       /favourites [post]
func (h *Handlers) AddFavourite(c *gin.Context) {
	var req AddFavouriteRequest
	if err := bindJSON(c, &req); err != nil {
		invalidBody(c)
		return
	}
	already, err := h.favSvc.Add(c.Request.Context(), req.UserEmail, req.ArtworkID)
	if err != nil {
		respondError(c, "add favourite", err)
		return
	}
	if already {
		ok(c, http.StatusOK, SuccessResponse{Success: true, Already: true})
		return
	}
	ok(c, http.StatusCreated, SuccessResponse{Success: true})
}

// ListFavourites godoc
// @Summary      List favourites
// @Description  Returns the user's favourites, or [] when email is missing.
// @Tags         favourites
// @Produce      json
// @Param        email  query  string  false  "User email"
// @Success      200  {array}   domain.Favourite
// @Failure      500  {object}  handlers.ErrorResponse
// @Router       /favourites [get]
func (h *Handlers) ListFavourites(c *gin.Context) {
	favs, err := h.favSvc.ListForUser(c.Request.Context(), c.Query("email"))
	if err != nil {
		internalError(c, "list favourites", err)
		return
	}
	ok(c, http.StatusOK, favs)
}

// CheckFavourite godoc
// @Summary      Check a favourite
// @Description  exists is false when either parameter is missing.
// @Tags         favourites
// @Produce      json
// @Param        email  query  string  false  "User email"
// @Param        artId  query  string  false  "Artwork ID"
// @Success      200  {object}  handlers.ExistsResponse
// @Failure      500  {object}  handlers.ErrorResponse
// @Router       /favourites/check [get]
func (h *Handlers) CheckFavourite(c *gin.Context) {
	exists, err := h.favSvc.Exists(c.Request.Context(), c.Query("email"), c.Query("artId"))
	if err != nil {
		internalError(c, "check favourite", err)
		return
	}
	ok(c, http.StatusOK, ExistsResponse{Exists: exists})
}

// RemoveFavourite godoc
// @Summary      Remove a favourite
// @Description  Succeeds whether or not the pair existed.
// @Tags         favourites
// @Produce      json
// @Param        artworkId  path   string  true  "Artwork ID"
// @Param        email      query  string  true  "User email"
// @Success      200  {object}  handlers.DeletedResponse
// @Failure      400  {object}  handlers.ErrorResponse
// @Failure      500  {object}  handlers.ErrorResponse
// @Router       /favourites/{artworkId} [delete]
func (h *Handlers) RemoveFavourite(c *gin.Context) {
	n, err := h.favSvc.Remove(c.Request.Context(), c.Param("artworkId"), c.Query("email"))
	if err != nil {
		respondError(c, "remove favourite", err)
		return
	}
	ok(c, http.StatusOK, DeletedResponse{Success: true, DeletedCount: n})
}
