// Package middleware contains the Gin middleware of the HTTP layer.
//
// This file exports Prometheus collectors for HTTP traffic under the
// creovate_http_* names. Routes are labelled by template, never by raw
// path, so artwork ids do not create new series.
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Labels use the Gin route template so /arts/:id stays one series.
var (
	httpReqs = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "creovate",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "path", "status"})

	httpLat = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "creovate",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})

	httpInflight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "creovate",
		Subsystem: "http",
		Name:      "requests_inflight",
		Help:      "HTTP requests currently being served.",
	})

	// Artwork lists are the largest payloads; buckets run 256B to 4MiB.
	httpRespSize = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "creovate",
		Subsystem: "http",
		Name:      "response_size_bytes",
		Help:      "HTTP response body size by method and route.",
		Buckets:   prometheus.ExponentialBuckets(256, 4, 8),
	}, []string{"method", "path"})
)

func init() {
	prometheus.MustRegister(httpReqs, httpLat, httpInflight, httpRespSize)
}

// Metrics records request count, latency, in-flight gauge and response size.
// Unmatched requests are labelled with the raw URL path.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpInflight.Inc()
		defer httpInflight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		m := c.Request.Method
		httpReqs.WithLabelValues(m, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpLat.WithLabelValues(m, route).Observe(time.Since(start).Seconds())
		if n := c.Writer.Size(); n >= 0 {
			httpRespSize.WithLabelValues(m, route).Observe(float64(n))
		}
	}
}
