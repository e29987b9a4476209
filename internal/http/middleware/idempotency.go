// Package middleware contains the Gin middleware of the HTTP layer.
//
// This file handles the Idempotency-Key header on unsafe methods. A key is
// checked for length and charset, then looked up under the request scope
// (method plus route template). A hit marks the request as a replay and lets
// it skip the rate limiter; the handler answers from the stored result.
//
// Lookup failures are logged and the request continues as a first attempt.
package middleware

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
)

// HeaderIdempotencyKey carries a client-chosen key that makes a retried
// create return the first result instead of inserting again.
const HeaderIdempotencyKey = "Idempotency-Key"

const (
	ctxKeyIdemKey    = "idem.key"
	ctxKeyIdemReplay = "idem.replay"
	ctxKeyRateBypass = "rate.bypass"

	defaultIdemKeyMaxLen = 200
)

var defaultIdemKeyPattern = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)

// GetIdempotencyKey returns the key validated by IdempotencyValidator.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	s := c.GetString(ctxKeyIdemKey)
	return s, s != ""
}

// IsReplay reports whether a stored result exists for this request's scope
// and key, so the handler can answer from it.
func IsReplay(c *gin.Context) bool {
	return c.GetBool(ctxKeyIdemReplay)
}

// IdempotencyOptions bounds accepted keys.
type IdempotencyOptions struct {
	MaxLen  int            // 200 when <= 0
	Pattern *regexp.Regexp // token characters when nil
}

// IdempotencyLookup reports whether an unexpired result is stored for
// (scope, key). Errors are logged and treated as a miss.
type IdempotencyLookup func(ctx context.Context, scope, key string, now time.Time) (exists bool, err error)

// IdempotencyScope names the operation a key applies to: the method and the
// matched route, e.g. "POST /arts". Unmatched requests fall back to the raw path.
func IdempotencyScope(c *gin.Context) string {
	path := c.FullPath()
	if path == "" {
		path = c.Request.URL.Path
	}
	return c.Request.Method + " " + path
}

// IdempotencyValidator checks the Idempotency-Key header of unsafe requests.
// A malformed key answers 400. A key with a stored result marks the request
// as a replay and lets it skip the rate limiter. Requests without the
// header, and GET/HEAD/OPTIONS, pass through untouched.
func IdempotencyValidator(opts IdempotencyOptions, lookup IdempotencyLookup) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = defaultIdemKeyMaxLen
	}
	pat := opts.Pattern
	if pat == nil {
		pat = defaultIdemKeyPattern
	}

	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxLen || !pat.MatchString(key) {
			abortJSON(c, http.StatusBadRequest, "bad_idempotency_key", "invalid Idempotency-Key")
			return
		}
		c.Set(ctxKeyIdemKey, key)

		if lookup != nil {
			exists, err := lookup(c.Request.Context(), IdempotencyScope(c), key, time.Now().UTC())
			switch {
			case err != nil:
				LoggerFrom(c).Warn().Err(err).Msg("idempotency lookup failed")
			case exists:
				c.Set(ctxKeyIdemReplay, true)
				c.Set(ctxKeyRateBypass, true)
			}
		}
		c.Next()
	}
}
