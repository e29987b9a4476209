// Contact HTTP handler.
//
//   - POST /contact   (store a contact-form message)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContactRequest is the JSON payload of the contact form.
type ContactRequest struct {
	Name    string `json:"name" example:"Riz"`
	Email   string `json:"email" example:"riz@example.com"`
	Message string `json:"message" example:"I would like to buy a print."`
}

// SubmitContact godoc
// @Summary      Send a contact message
// @Description  name needs 2 characters, email a simple address shape, message 10 characters.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        body  body      handlers.ContactRequest  true  "Message"
// @Success      201  {object}  handlers.SuccessResponse
// @Failure      400  {object}  handlers.ErrorResponse
// @Failure      500  {object}  handlers.ErrorResponse
// @Router       /contact [post]
func (h *Handlers) SubmitContact(c *gin.Context) {
	var req ContactRequest
	if err := bindJSON(c, &req); err != nil {
		invalidBody(c)
		return
	}
	if err := h.contactSvc.Submit(c.Request.Context(), req.Name, req.Email, req.Message); err != nil {
		respondError(c, "submit contact", err)
		return
	}
	ok(c, http.StatusCreated, SuccessResponse{Success: true})
}
