// Command server runs the Creovate gallery API.
//
//	@title			Creovate API
//	@version		1.0
//	@description	Art gallery backend: artworks, favourites, reviews and contact messages.
//	@BasePath		/
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/RizBits14/creovate-server/internal/cache"
	"github.com/RizBits14/creovate-server/internal/config"
	httpapi "github.com/RizBits14/creovate-server/internal/http"
	"github.com/RizBits14/creovate-server/internal/observability"
	"github.com/RizBits14/creovate-server/internal/repo"
	"github.com/RizBits14/creovate-server/internal/services"
	"github.com/RizBits14/creovate-server/internal/sysutil"
)

const (
	shutdownTimeout = 10 * time.Second
	purgeInterval   = time.Hour
)

func main() {
	envErr := godotenv.Load()
	cfg := config.MustLoad()

	sysutil.ConfigureLogger(os.Stderr, cfg.LogLevel, cfg.LogPretty)
	if envErr != nil {
		log.Debug().Msg(".env file not found, relying on environment")
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	version := sysutil.FirstNonEmpty(os.Getenv("APP_VERSION"), "dev")
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Error().Err(err).Msg("otel shutdown")
		}
	}()

	db, err := repo.Open(cfg.DB.Driver, cfg.DB.DSN())
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("open store")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}
	if err := repo.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes")
	}

	featured, err := cache.New(ctx, cfg.Cache)
	if err != nil {
		log.Fatal().Err(err).Msg("featured cache")
	}
	var featuredCache services.FeaturedCache
	if featured != nil {
		featuredCache = featured
		defer func() { _ = featured.Close() }()
	}

	r := gin.New()
	httpapi.RegisterRoutes(r, db, featuredCache, cfg)

	go purgeIdempotency(ctx, db, cfg.IdempotencyTTL)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("driver", cfg.DB.Driver).
			Str("base_path", cfg.APIBasePath).
			Bool("featured_cache", featuredCache != nil).
			Msg("creovate server listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped unexpectedly")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// purgeIdempotency drops expired Idempotency-Key records until ctx ends.
func purgeIdempotency(ctx context.Context, db *gorm.DB, ttl time.Duration) {
	svc := services.NewIdempotencyService(db, ttl)
	t := time.NewTicker(purgeInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := svc.Purge(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("idempotency purge failed")
				continue
			}
			if n > 0 {
				log.Debug().Int64("removed", n).Msg("idempotency purge")
			}
		}
	}
}
