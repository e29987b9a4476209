// Package middleware contains the Gin middleware of the HTTP layer.
//
// This file implements SanitizeJSON, an opt-in filter (SANITIZE_INPUT) that
// strips markup from JSON string values on writes. It is off by default
// because artwork documents are stored verbatim.
package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"html"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

// SanitizeJSON returns a middleware that rewrites POST, PUT and PATCH JSON
// bodies with all string values (object keys excluded) passed through a
// bluemonday strict policy. Entities produced by the policy are unescaped
// again so plain text such as "Tom & Jerry" survives unchanged.
//
// Empty and malformed bodies are passed through untouched; handlers report
// decoding errors in the standard envelope. Bodies over the size limit are
// answered with 413.
func SanitizeJSON() gin.HandlerFunc {
	policy := bluemonday.StrictPolicy()
	clean := func(s string) string { return html.UnescapeString(policy.Sanitize(s)) }

	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}
		if c.Request.Body == nil {
			c.Next()
			return
		}

		buf, err := io.ReadAll(c.Request.Body)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				abortJSON(c, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large")
				return
			}
			abortJSON(c, http.StatusBadRequest, "bad_request", "invalid body")
			return
		}

		out := buf
		if len(bytes.TrimSpace(buf)) > 0 {
			dec := json.NewDecoder(bytes.NewReader(buf))
			dec.UseNumber()
			var body any
			if err := dec.Decode(&body); err == nil {
				if b, err := json.Marshal(sanitizeValue(body, clean)); err == nil {
					out = b
				}
			}
		}

		c.Request.Body = io.NopCloser(bytes.NewReader(out))
		c.Request.ContentLength = int64(len(out))
		c.Next()
	}
}

// sanitizeValue applies clean to every string reachable from v.
func sanitizeValue(v any, clean func(string) string) any {
	switch t := v.(type) {
	case string:
		return clean(t)
	case map[string]any:
		for k, vv := range t {
			t[k] = sanitizeValue(vv, clean)
		}
		return t
	case []any:
		for i, vv := range t {
			t[i] = sanitizeValue(vv, clean)
		}
		return t
	default:
		return v
	}
}
