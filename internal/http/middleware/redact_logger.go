// Package middleware contains the Gin middleware of the HTTP layer.
//
// This file implements RedactingLogger, the access logger. Artwork ids,
// emails and phone numbers are masked in the logged query string and header
// values; credential headers are replaced outright. Bodies are never logged.
package middleware

import (
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

// Artwork ids are UUIDs and the favourites/my-arts queries carry emails, so
// both are scrubbed from logged queries and header values. UUIDs go first so
// the phone pattern cannot eat their digit groups.
var (
	uuidPattern  = regexp.MustCompile(`(?i)\b[0-9a-f]{8}-[0-9a-f]{4}-[1-5][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}\b`)
	emailPattern = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`\b(?:\+?\d{1,3}[ .-]?)?(?:\(?\d{2,4}\)?[ .-]?)?\d{3,4}[ .-]?\d{4}\b`)
)

func redact(s string) string {
	if s == "" {
		return s
	}
	s = uuidPattern.ReplaceAllString(s, "[REDACTED:id]")
	s = emailPattern.ReplaceAllString(s, "[REDACTED:email]")
	return phonePattern.ReplaceAllString(s, "[REDACTED:phone]")
}

// RedactOptions lists extra headers to mask on top of Authorization, Cookie
// and Set-Cookie. Names are case-insensitive.
type RedactOptions struct {
	MaskHeaders []string
}

// RedactingLogger writes one access log line per request without bodies.
// It also installs the request-scoped logger returned by LoggerFrom and
// zerolog.Ctx, tagged with the trace id when otelgin started a span.
// 4xx log at warn, 5xx and recorded c.Errors at error.
func RedactingLogger(opts RedactOptions) gin.HandlerFunc {
	masked := map[string]bool{"authorization": true, "cookie": true, "set-cookie": true}
	for _, h := range opts.MaskHeaders {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			masked[h] = true
		}
	}

	return func(c *gin.Context) {
		start := time.Now()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		rid := c.GetString(requestIDKey)
		if rid == "" {
			rid = c.GetHeader(requestIDHeader)
		}

		lc := log.With().
			Str("request_id", rid).
			Str("method", c.Request.Method).
			Str("path", route).
			Str("remote_ip", c.ClientIP())
		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
			lc = lc.Str("trace_id", sc.TraceID().String())
		}
		l := lc.Logger()
		c.Set(loggerKey, &l)
		c.Request = c.Request.WithContext(l.WithContext(c.Request.Context()))

		headers := zerolog.Dict()
		for k, vv := range c.Request.Header {
			if masked[strings.ToLower(k)] {
				headers.Str(k, "[REDACTED]")
				continue
			}
			headers.Str(k, redact(strings.Join(vv, ", ")))
		}
		query := truncate(redact(c.Request.URL.RawQuery), maxQueryLogLength)

		c.Next()

		status := c.Writer.Status()
		var ev *zerolog.Event
		switch {
		case status >= 500 || len(c.Errors) > 0:
			ev = l.Error()
		case status >= 400:
			ev = l.Warn()
		default:
			ev = l.Info()
		}
		if len(c.Errors) > 0 {
			ev = ev.Str("errors", c.Errors.String())
		}
		ev.Str("query", query).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Dict("headers", headers).
			Msg("http_request")
	}
}
