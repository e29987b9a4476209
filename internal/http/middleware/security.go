// Package middleware contains the Gin middleware of the HTTP layer.
//
// This file provides SecurityHeaders for JSON responses. HSTS is only sent
// when enabled and the request arrived over HTTPS.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const defaultHSTSMaxAge = 180 * 24 * time.Hour

// SecurityOptions selects the optional response headers of SecurityHeaders.
type SecurityOptions struct {
	// EnableHSTS sends Strict-Transport-Security on HTTPS requests. Only set
	// it when TLS terminates in front of every instance.
	EnableHSTS bool
	HSTSMaxAge time.Duration // 180 days when <= 0
	// EnablePolicy adds Permissions-Policy and X-Permitted-Cross-Domain-Policies.
	EnablePolicy bool
	// CrossOriginResourcePolicy is sent verbatim when non-empty. The gallery
	// frontend lives on another origin, so the router passes "cross-origin".
	CrossOriginResourcePolicy string
}

// SecurityHeaders hardens every JSON response. nosniff, frame denial and
// no-referrer are always set; the rest follows opt.
func SecurityHeaders(opt SecurityOptions) gin.HandlerFunc {
	maxAge := opt.HSTSMaxAge
	if maxAge <= 0 {
		maxAge = defaultHSTSMaxAge
	}
	hsts := "max-age=" + strconv.Itoa(int(maxAge.Seconds())) + "; includeSubDomains; preload"

	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")

		if opt.EnablePolicy {
			h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=(), payment=()")
			h.Set("X-Permitted-Cross-Domain-Policies", "none")
		}
		if opt.CrossOriginResourcePolicy != "" {
			h.Set("Cross-Origin-Resource-Policy", opt.CrossOriginResourcePolicy)
		}
		// never on plain HTTP
		if opt.EnableHSTS && isHTTPS(c.Request) {
			h.Set("Strict-Transport-Security", hsts)
		}
		c.Next()
	}
}

// isHTTPS reports whether r arrived over TLS, directly or through a proxy
// that set X-Forwarded-Proto.
func isHTTPS(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
