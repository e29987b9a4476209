// Review HTTP handlers.
//
//   - GET  /reviews?artworkId=   (list, newest first)
//   - POST /reviews              (submit, one per user and artwork)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RizBits14/creovate-server/internal/services"
)

// CreateReviewRequest is the JSON payload for submitting a review.
type CreateReviewRequest struct {
	ArtworkID string `json:"artworkId" example:"6f1c2b0e-8a55-4d8e-9a77-3f5b8f1d2c10"`
	UserEmail string `json:"userEmail" example:"riz@example.com"`
	UserName  string `json:"userName" example:"Riz"`
	// Rating accepts a number or a numeric string.
	Rating  any    `json:"rating" swaggertype:"integer" example:"5"`
	Comment string `json:"comment" example:"Beautiful use of colour."`
}

// ListReviews godoc
// @Summary      List reviews
// @Description  Returns an artwork's reviews newest first, or [] when artworkId is missing.
// @Tags         reviews
// @Produce      json
// @Param        artworkId  query  string  false  "Artwork ID"
// @Success      200  {array}   domain.Review
// @Failure      500  {object}  handlers.ErrorResponse
// @Router       /reviews [get]
func (h *Handlers) ListReviews(c *gin.Context) {
	reviews, err := h.reviewSvc.ListForArtwork(c.Request.Context(), c.Query("artworkId"))
	if err != nil {
		internalError(c, "list reviews", err)
		return
	}
	ok(c, http.StatusOK, reviews)
}

// CreateReview godoc
// @Summary      Submit a review
// @Description  rating must be 1 to 5 and comment at least 10 characters after trimming.
// @Description  A second review by the same user answers 200 with already=true.
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        body  body      handlers.CreateReviewRequest  true  "Review"
// @Success      201  {object}  handlers.InsertResponse
// @Success      200  {object}  handlers.SuccessResponse
// @Failure      400  {object}  handlers.ErrorResponse
// @Failure      500  {object}  handlers.ErrorResponse
// @Router       /reviews [post]
func (h *Handlers) CreateReview(c *gin.Context) {
	var req CreateReviewRequest
	if err := bindJSON(c, &req); err != nil {
		invalidBody(c)
		return
	}
	id, already, err := h.reviewSvc.Create(c.Request.Context(), services.ReviewInput{
		ArtworkID: req.ArtworkID,
		UserEmail: req.UserEmail,
		UserName:  req.UserName,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		respondError(c, "create review", err)
		return
	}
	if already {
		ok(c, http.StatusOK, SuccessResponse{Success: true, Already: true})
		return
	}
	ok(c, http.StatusCreated, InsertResponse{Success: true, InsertedID: id})
}
