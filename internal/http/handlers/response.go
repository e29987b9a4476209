// Response envelopes and the helpers every handler answers through. Errors
// always carry success=false, the request id and a stable code; 5xx details
// stay in the server log.
package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RizBits14/creovate-server/internal/http/middleware"
)

// ErrorResponse is the error envelope of every endpoint. Message is safe to
// show to users.
type ErrorResponse struct {
	Success   bool   `json:"success" example:"false"`
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	Code      string `json:"code" example:"bad_request"`
	Message   string `json:"message" example:"Missing userEmail or artworkId"`
}

// InsertResponse acknowledges a created record.
type InsertResponse struct {
	Success    bool   `json:"success" example:"true"`
	InsertedID string `json:"insertedId" example:"6f1c2b0e-8a55-4d8e-9a77-3f5b8f1d2c10"`
}

// ModifiedResponse reports how many records an update changed.
type ModifiedResponse struct {
	Success       bool  `json:"success" example:"true"`
	ModifiedCount int64 `json:"modifiedCount" example:"1"`
}

// DeletedResponse reports how many records a delete removed.
type DeletedResponse struct {
	Success      bool   `json:"success" example:"true"`
	DeletedCount int64  `json:"deletedCount" example:"1"`
	Message      string `json:"message,omitempty" example:"Not found"`
}

// SuccessResponse acknowledges a write. Already is set when the desired
// state existed before the request.
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
	Already bool `json:"already,omitempty" example:"true"`
}

// ExistsResponse answers a membership check.
type ExistsResponse struct {
	Exists bool `json:"exists" example:"true"`
}

// fail aborts with the error envelope. 5xx responses are also logged.
func fail(c *gin.Context, status int, code, msg string) {
	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	})
}

// Fail lets the router answer 404/405 and CORS rejections in the same shape.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// internalError logs err with the failing operation and answers 500 with the
// generic message.
func internalError(c *gin.Context, op string, err error) {
	middleware.LoggerFrom(c).Error().Err(err).Str("op", op).Msg("store failure")
	_ = c.Error(err)
	fail(c, http.StatusInternalServerError, ErrCodeInternal, msgServerError)
}

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// bindJSON binds the request body into v through gin's JSON binding. An
// empty body leaves v untouched.
func bindJSON(c *gin.Context, v any) error {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return nil
	}
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// bindDocument decodes a free-form JSON object body. Empty and null bodies
// yield an empty document.
func bindDocument(c *gin.Context) (map[string]any, error) {
	var doc map[string]any
	if err := bindJSON(c, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}
