// Package middleware contains the Gin middleware of the HTTP layer.
//
// This file implements a per-client token bucket built on x/time/rate.
// Buckets live in a go-cache and expire when idle. Limits apply per process.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

// visitorTTL is how long an idle client keeps its bucket.
const visitorTTL = 10 * time.Minute

// keyFunc maps a request to its bucket.
type keyFunc func(*gin.Context) string

// KeyByIP buckets requests by client IP. The gallery API has no
// authenticated identity, so the address is the only stable key.
func KeyByIP() keyFunc {
	return func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	}
}

// rateLimited counts requests rejected with 429.
var rateLimited = prometheus.NewCounter(prometheus.CounterOpts{
	Namespace: "creovate",
	Subsystem: "http",
	Name:      "rate_limited_total",
	Help:      "Requests rejected by the rate limiter.",
})

func init() {
	prometheus.MustRegister(rateLimited)
}

// RateLimiter is a process-local token bucket per key. Idle buckets expire
// from a go-cache after visitorTTL. Safe for concurrent use.
type RateLimiter struct {
	rps   rate.Limit
	burst int
	keyFn keyFunc

	mu       sync.Mutex // serializes create-if-absent
	visitors *gocache.Cache
}

// NewRateLimiter allows rps requests per second per key with the given
// burst (coerced to at least 1).
func NewRateLimiter(rps float64, burst int, keyFn keyFunc) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		keyFn:    keyFn,
		visitors: gocache.New(visitorTTL, visitorTTL/2),
	}
}

// limiter returns the bucket for key, creating it on first use. Every
// lookup pushes the expiry out again.
func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if v, ok := rl.visitors.Get(key); ok {
		lim := v.(*rate.Limiter)
		rl.visitors.SetDefault(key, lim)
		return lim
	}
	lim := rate.NewLimiter(rl.rps, rl.burst)
	rl.visitors.SetDefault(key, lim)
	return lim
}

// IsRateBypass reports whether IdempotencyValidator found a stored result
// for this request. Replays do not consume tokens.
func IsRateBypass(c *gin.Context) bool {
	return c.GetBool(ctxKeyRateBypass)
}

// Handler enforces the limit and answers 429 with Retry-After: 1 and the
// standard error envelope.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsRateBypass(c) || rl.limiter(rl.keyFn(c)).Allow() {
			c.Next()
			return
		}
		rateLimited.Inc()
		c.Header("Retry-After", "1")
		abortJSON(c, http.StatusTooManyRequests, "too_many_requests", "rate limit exceeded")
	}
}
