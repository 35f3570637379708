// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Supported data backends.
const (
	BackendPostgres  = "postgres"
	BackendPostgREST = "postgrest"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Backend selects where facts live: "postgres" or "postgrest".
	Backend string

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// PostgREST endpoint, e.g. a Supabase project's /rest/v1 root.
	PostgRESTURL   string
	PostgRESTKey   string
	PostgRESTTable string

	// Valkey (Redis-compatible) for flash sessions
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// Write rate limiting per client IP
	RateLimitWrites int
	RateLimitWindow time.Duration

	// LogFile receives the terminal client's log output.
	LogFile string
}

// LoadEnvFile reads KEY=VALUE pairs from path into the process
// environment without overriding variables that are already set. A missing
// file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("env file not found, using process environment", "path", path)
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing or malformed.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		Backend: envOrDefault("DATA_BACKEND", BackendPostgres),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "factshare"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "factshare"),

		PostgRESTURL:   os.Getenv("POSTGREST_URL"),
		PostgRESTKey:   os.Getenv("POSTGREST_KEY"),
		PostgRESTTable: envOrDefault("POSTGREST_TABLE", "facts"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		LogFile: envOrDefault("FACTSHARE_LOG_FILE", "factshare-tui.log"),
	}

	var err error
	cfg.RateLimitWrites, err = strconv.Atoi(envOrDefault("RATE_LIMIT_WRITES", "30"))
	if err != nil || cfg.RateLimitWrites <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_WRITES must be a positive integer")
	}
	cfg.RateLimitWindow, err = time.ParseDuration(envOrDefault("RATE_LIMIT_WINDOW", "1m"))
	if err != nil || cfg.RateLimitWindow <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_WINDOW must be a positive duration")
	}

	switch cfg.Backend {
	case BackendPostgres:
		if cfg.Env == "production" && cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	case BackendPostgREST:
		if cfg.PostgRESTURL == "" || cfg.PostgRESTKey == "" {
			return nil, fmt.Errorf("POSTGREST_URL and POSTGREST_KEY are required for the postgrest backend")
		}
	default:
		return nil, fmt.Errorf("DATA_BACKEND %q is not supported (use %q or %q)",
			cfg.Backend, BackendPostgres, BackendPostgREST)
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// ValkeyAddr returns the Valkey address (host:port).
func (c *Config) ValkeyAddr() string {
	return fmt.Sprintf("%s:%s", c.ValkeyHost, c.ValkeyPort)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
