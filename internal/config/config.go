// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes server timeouts,
// logging, the document store connection, caching, rate limiting, web
// protection and observability settings.
package config

import (
	"errors"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// defaultOrigins are the local frontend dev servers that are always allowed.
var defaultOrigins = []string{"http://localhost:5173", "http://localhost:3000"}

// DBConfig selects and addresses the document store backend.
type DBConfig struct {
	Driver string // DB_DRIVER: sqlite|postgres
	Path   string // DB_PATH: SQLite file
	URL    string // DB_URL, or assembled from DB_USERNAME/DB_PASSWORD/DB_HOST/DB_NAME
}

// DSN returns the connection string for the configured driver.
func (c DBConfig) DSN() string {
	if c.Driver == DriverPostgres {
		return c.URL
	}
	return c.Path
}

// CacheConfig controls the featured-artworks cache.
type CacheConfig struct {
	RedisURL    string        // REDIS_URL; empty selects the in-process cache
	FeaturedTTL time.Duration // FEATURED_CACHE_TTL; 0 disables caching
}

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// AllowAll reports whether the allow-list is empty or contains "*".
func (c CORSConfig) AllowAll() bool {
	return len(c.AllowedOrigins) == 0 || slices.Contains(c.AllowedOrigins, "*")
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS    bool
	HSTSMaxAge    time.Duration
	SanitizeInput bool // opt-in: strip HTML from JSON string fields on writes
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int
	GinMode           string // debug|release|test

	// Logging / Docs
	LogLevel       string
	LogPretty      bool
	SwaggerEnabled bool
	APIBasePath    string

	// Store
	DB DBConfig

	// Featured cache
	Cache CacheConfig

	// Rate limiting
	RateRPS   float64
	RateBurst int

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Idempotency-Key retention for POST /arts
	IdempotencyTTL time.Duration

	// Observability
	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		Port:              getenv("PORT", "3000"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),

		LogLevel:       strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty:      getbool("LOG_PRETTY", false),
		SwaggerEnabled: getbool("SWAGGER_ENABLED", false),
		APIBasePath:    normalizeBasePath(getenv("API_BASE_PATH", "/")),

		DB: DBConfig{
			Driver: strings.ToLower(getenv("DB_DRIVER", DriverSQLite)),
			Path:   getenv("DB_PATH", "creovate.db"),
			URL: getenv("DB_URL", postgresURL(
				os.Getenv("DB_USERNAME"),
				os.Getenv("DB_PASSWORD"),
				os.Getenv("DB_HOST"),
				getenv("DB_NAME", "creovate_db"),
			)),
		},

		Cache: CacheConfig{
			RedisURL:    getenv("REDIS_URL", ""),
			FeaturedTTL: getdur("FEATURED_CACHE_TTL", 30*time.Second),
		},

		RateRPS:   getfloat("RATE_RPS", 20.0),
		RateBurst: getint("RATE_BURST", 40),

		CORS: CORSConfig{
			AllowedOrigins: mergeOrigins(defaultOrigins, append(
				splitCSV(os.Getenv("CORS_ALLOWED_ORIGINS")),
				os.Getenv("CLIENT_URL"),
				os.Getenv("CLIENT_URL_2"),
			)...),
		},
		Security: SecurityConfig{
			EnableHSTS:    getbool("ENABLE_HSTS", false),
			HSTSMaxAge:    getdur("HSTS_MAX_AGE", 180*24*time.Hour),
			SanitizeInput: getbool("SANITIZE_INPUT", false),
		},

		IdempotencyTTL: getdur("IDEMPOTENCY_TTL", 24*time.Hour),

		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "creovate-server"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	cfg.normalize()
	return cfg, cfg.validate()
}

func (c *Config) normalize() {
	if c.LogLevel == "warning" {
		c.LogLevel = "warn"
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		c.GinMode = "release"
	}
	if c.DB.Driver == "postgresql" || c.DB.Driver == "pg" {
		c.DB.Driver = DriverPostgres
	}
}

// validate reports every broken setting at once.
func (c Config) validate() error {
	checks := []struct {
		bad bool
		msg string
	}{
		{!slices.Contains([]string{"debug", "info", "warn", "error", "fatal", "panic"}, c.LogLevel),
			"LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic"},
		{strings.TrimSpace(c.Port) == "", "PORT must not be empty"},
		{c.ReadTimeout <= 0 || c.ReadHeaderTimeout <= 0 || c.WriteTimeout <= 0 || c.IdleTimeout <= 0,
			"timeouts must be positive durations"},
		{c.MaxHeaderBytes <= 0, "MAX_HEADER_BYTES must be > 0"},
		{c.DB.Driver != DriverSQLite && c.DB.Driver != DriverPostgres, "DB_DRIVER must be one of: sqlite, postgres"},
		{c.DB.Driver == DriverSQLite && strings.TrimSpace(c.DB.Path) == "", "DB_PATH must not be empty"},
		{c.DB.Driver == DriverPostgres && strings.TrimSpace(c.DB.URL) == "",
			"DB_URL (or DB_USERNAME/DB_PASSWORD/DB_HOST) is required for postgres"},
		{c.Cache.FeaturedTTL < 0, "FEATURED_CACHE_TTL must be >= 0"},
		{c.RateRPS < 0, "RATE_RPS must be >= 0"},
		{c.RateBurst < 1, "RATE_BURST must be >= 1"},
		{c.Security.HSTSMaxAge < 0, "HSTS_MAX_AGE must be >= 0"},
		{c.IdempotencyTTL <= 0, "IDEMPOTENCY_TTL must be > 0"},
		{c.OTEL.SampleRatio < 0 || c.OTEL.SampleRatio > 1, "OTEL_TRACES_SAMPLER_ARG must be in [0,1]"},
	}
	var errs []error
	for _, ch := range checks {
		if ch.bad {
			errs = append(errs, errors.New(ch.msg))
		}
	}
	return errors.Join(errs...)
}

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// mergeOrigins returns base followed by extra, skipping blanks and
// duplicates. base is never modified.
func mergeOrigins(base []string, extra ...string) []string {
	seen := make(map[string]struct{}, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, o := range slices.Concat(base, extra) {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "" {
			continue
		}
		if _, dup := seen[o]; dup {
			continue
		}
		seen[o] = struct{}{}
		out = append(out, o)
	}
	return out
}

// postgresURL assembles a connection URL from discrete credentials.
// It returns "" when no host is given.
func postgresURL(user, password, host, name string) string {
	if strings.TrimSpace(host) == "" {
		return ""
	}
	u := url.URL{
		Scheme:   "postgres",
		Host:     host,
		Path:     "/" + name,
		RawQuery: "sslmode=require",
	}
	if user != "" {
		u.User = url.UserPassword(user, password)
	}
	return u.String()
}

// normalizeBasePath ensures leading '/' and strips trailing '/' (except root).
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = "/"
		}
	}
	return p
}
