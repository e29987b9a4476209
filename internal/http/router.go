// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// compression, CORS, security headers, idempotency, rate limiting and input
// sanitizing.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/RizBits14/creovate-server/docs"
	"github.com/RizBits14/creovate-server/internal/config"
	"github.com/RizBits14/creovate-server/internal/domain"
	"github.com/RizBits14/creovate-server/internal/http/handlers"
	"github.com/RizBits14/creovate-server/internal/http/middleware"
	"github.com/RizBits14/creovate-server/internal/repo"
	"github.com/RizBits14/creovate-server/internal/services"
)

// Banner is the plain-text body of GET /.
const Banner = "Creovate server is running ✅"

// maxBodyBytes caps request bodies for all endpoints.
const maxBodyBytes = 1 << 20

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. featured may be nil, which disables the featured-artworks cache.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing, request-scoped logger
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Gzip (except /metrics)
//  7. Metrics
//  8. Idempotency validator (before rate limiter to allow bypass on replay)
//  9. Rate limiter (per client IP, bypass on replay)
//  10. CORS and security headers
//  11. HTML sanitizing of JSON bodies (optional)
func RegisterRoutes(r *gin.Engine, db *gorm.DB, featured services.FeaturedCache, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	idemSvc := services.NewIdempotencyService(db, cfg.IdempotencyTTL)

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{middleware.HeaderIdempotencyKey},
	}))
	r.Use(middleware.Recovery())
	r.Use(limitBody(maxBodyBytes))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{MaxLen: 200}, idemSvc.Exists))

	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByIP())
	r.Use(rl.Handler())

	r.Use(cors.New(corsConfig(cfg.CORS)))
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:                cfg.Security.EnableHSTS,
		HSTSMaxAge:                cfg.Security.HSTSMaxAge,
		EnablePolicy:              true,
		CrossOriginResourcePolicy: "cross-origin",
	}))
	if cfg.Security.SanitizeInput {
		r.Use(middleware.SanitizeJSON())
	}

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := repo.Ping(ctx, db); err != nil {
			middleware.LoggerFrom(c).Error().Err(err).Msg("health: store unreachable")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = cfg.APIBasePath
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db/cache
	artSvc := services.NewArtworkService(repo.NewArtworks(db), featured)
	favSvc := services.NewFavouriteService(repo.NewCollection[domain.Favourite](db))
	reviewSvc := services.NewReviewService(repo.NewCollection[domain.Review](db))
	contactSvc := services.NewContactService(repo.NewCollection[domain.ContactMessage](db))
	h := handlers.New(artSvc, favSvc, reviewSvc, contactSvc, idemSvc)

	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		api.GET("/", func(c *gin.Context) { c.String(http.StatusOK, Banner) })

		// Artworks
		api.GET("/arts", h.ListArtworks)
		api.GET("/my-arts", h.ListMyArtworks)
		api.GET("/featured", h.FeaturedArtworks)
		api.GET("/arts/:id", h.GetArtwork)
		api.POST("/arts", h.CreateArtwork)
		api.PATCH("/arts/:id", h.UpdateArtwork)
		api.PATCH("/arts/:id/like", h.LikeArtwork)
		api.DELETE("/arts/:id", h.DeleteArtwork)

		// Favourites
		api.POST("/favourites", h.AddFavourite)
		api.GET("/favourites", h.ListFavourites)
		api.GET("/favourites/check", h.CheckFavourite)
		api.DELETE("/favourites/:artworkId", h.RemoveFavourite)

		// Reviews
		api.GET("/reviews", h.ListReviews)
		api.POST("/reviews", h.CreateReview)

		// Contact
		api.POST("/contact", h.SubmitContact)
	}
}

// corsConfig allows any origin without credentials when the allow-list is
// empty or "*", and the listed origins with credentials otherwise.
func corsConfig(c config.CORSConfig) cors.Config {
	cc := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderIdempotencyKey},
		ExposeHeaders: []string{"X-Request-ID", "Content-Length", handlers.HeaderIdempotencyReplayed},
		MaxAge:        12 * time.Hour,
	}
	if c.AllowAll() {
		cc.AllowAllOrigins = true
		return cc
	}
	cc.AllowOrigins = c.AllowedOrigins
	cc.AllowCredentials = true
	return cc
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
