// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file contains database bootstrapping helpers for
// SQLite (pure Go driver) and PostgreSQL, schema migrations and index setup.
package repo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/RizBits14/creovate-server/internal/config"
	"github.com/RizBits14/creovate-server/internal/domain"
)

// Open connects to the store selected by driver ("sqlite" or "postgres").
func Open(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case config.DriverSQLite:
		return OpenSQLite(dsn)
	case config.DriverPostgres:
		return OpenPostgres(dsn)
	default:
		return nil, fmt.Errorf("repo: unsupported driver %q", driver)
	}
}

// OpenSQLite opens (or creates) a SQLite database and applies PRAGMAs.
func OpenSQLite(path string) (*gorm.DB, error) {
	// Fail early if parent directory does not exist (instead of sqlite "out of memory (14)" on Windows).
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, err
	}

	// PRAGMAs
	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA busy_timeout=5000;")

	tune(db, 10)
	return instrument(db)
}

// OpenPostgres connects to PostgreSQL using a URL or keyword DSN.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, err
	}
	tune(db, 25)
	return instrument(db)
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}
}

// tune applies connection pool limits.
func tune(db *gorm.DB, maxOpen int) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(maxOpen)
		sqlDB.SetMaxIdleConns(maxOpen)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
}

// instrument registers the OpenTelemetry GORM plugin so queries show up as
// child spans of the request trace.
func instrument(db *gorm.DB) (*gorm.DB, error) {
	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics(), tracing.WithoutQueryVariables())); err != nil {
		return nil, fmt.Errorf("repo: otel plugin: %w", err)
	}
	return db, nil
}

// AutoMigrate creates or updates every table the API writes to.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Artwork{},
		&domain.Favourite{},
		&domain.Review{},
		&domain.ContactMessage{},
		&domain.Idempotency{},
	)
}

// EnsureIndexes creates the indexes the handlers rely on. It is idempotent
// and safe to run on every start, including against tables that were
// created before the model tags carried the index.
func EnsureIndexes(ctx context.Context, db *gorm.DB) error {
	if err := NewCollection[domain.Review](db).EnsureUniqueIndex(ctx, "ux_reviews_artwork_user", "artwork_id", "user_email"); err != nil {
		return fmt.Errorf("reviews index: %w", err)
	}
	if err := NewCollection[domain.Idempotency](db).EnsureUniqueIndex(ctx, "ux_idempotency_scope_key", "scope", "key"); err != nil {
		return fmt.Errorf("idempotency index: %w", err)
	}
	return nil
}

// Ping checks that the store is reachable.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
