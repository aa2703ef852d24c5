// Package config handles application configuration via environment variables.
// It uses kelseyhightower/envconfig for parsing and provides sensible defaults.
// A .env file in the working directory is loaded first when present.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
// Values are loaded from environment variables with the prefix "APP".
// Example: APP_PORT=3030, APP_LOG_LEVEL=debug
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Log        LogConfig
	Moderation ModerationConfig
	CORS       CORSConfig
	RateLimit  RateLimitConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Port is the HTTP server port (default: 3030)
	Port int `envconfig:"PORT" default:"3030"`

	// Host is the HTTP server host (default: 127.0.0.1)
	Host string `envconfig:"HOST" default:"127.0.0.1"`

	// ReadTimeout is the maximum duration for reading the entire request (default: 10s)
	ReadTimeout time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`

	// WriteTimeout is the maximum duration before timing out writes of the response (default: 30s)
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"30s"`

	// ShutdownTimeout is the maximum duration to wait for active connections to finish (default: 30s)
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	// URL is a full connection string; when set it overrides the discrete fields.
	URL string `envconfig:"DATABASE_URL"`

	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"qaboard"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	// MaxConns caps the pool; requests beyond it wait for a free connection (default: 5)
	MaxConns int `envconfig:"DB_MAX_CONNS" default:"5"`

	// MinConns is the number of connections kept open when idle (default: 0)
	MinConns int `envconfig:"DB_MIN_CONNS" default:"0"`

	// ConnMaxLifetime is the maximum lifetime of a connection (default: 5m)
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`

	// Migrate applies embedded schema migrations at startup (default: true)
	Migrate bool `envconfig:"DB_MIGRATE" default:"true"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	// Level is the log level: debug, info, warn, error (default: info)
	Level string `envconfig:"LOG_LEVEL" default:"info"`

	// Format is the log format: json, text, plain (default: json)
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

// ModerationConfig holds settings for the profanity moderation API.
type ModerationConfig struct {
	URL             string        `envconfig:"MODERATION_URL" default:"https://api.apilayer.com/bad_words"`
	APIKey          string        `envconfig:"MODERATION_API_KEY"`
	CensorCharacter string        `envconfig:"MODERATION_CENSOR_CHAR" default:"*"`
	Timeout         time.Duration `envconfig:"MODERATION_TIMEOUT" default:"10s"`

	// MaxRetries bounds retries after the first attempt (default: 3)
	MaxRetries      int           `envconfig:"MODERATION_MAX_RETRIES" default:"3"`
	InitialInterval time.Duration `envconfig:"MODERATION_INITIAL_INTERVAL" default:"200ms"`
	MaxInterval     time.Duration `envconfig:"MODERATION_MAX_INTERVAL" default:"5s"`
}

// CORSConfig holds cross-origin settings.
type CORSConfig struct {
	// AllowedOrigins lists accepted origins; empty accepts any origin.
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS"`
	AllowedMethods []string `envconfig:"CORS_ALLOWED_METHODS" default:"PUT,DELETE,GET,POST"`
	AllowedHeaders []string `envconfig:"CORS_ALLOWED_HEADERS" default:"content-type"`
}

// RateLimitConfig holds per-client rate limiting settings.
type RateLimitConfig struct {
	// RPS is the sustained requests per second per client; 0 disables limiting.
	RPS   float64 `envconfig:"RATE_RPS" default:"0"`
	Burst int     `envconfig:"RATE_BURST" default:"20"`
}

// DSN returns the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

// Addr returns the server address in host:port format.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads configuration from environment variables.
// It returns an error if required variables are missing or invalid.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config

	// Load each config section separately to flatten env var names
	// This allows env vars like APP_PORT instead of APP_SERVER_PORT
	sections := []struct {
		name string
		spec any
	}{
		{"server", &cfg.Server},
		{"database", &cfg.Database},
		{"log", &cfg.Log},
		{"moderation", &cfg.Moderation},
		{"cors", &cfg.CORS},
		{"rate limit", &cfg.RateLimit},
	}
	for _, s := range sections {
		if err := envconfig.Process("APP", s.spec); err != nil {
			return nil, fmt.Errorf("failed to load %s config: %w", s.name, err)
		}
	}

	if cfg.Database.MaxConns <= 0 {
		return nil, fmt.Errorf("APP_DB_MAX_CONNS must be positive, got %d", cfg.Database.MaxConns)
	}
	if cfg.Moderation.MaxRetries < 0 {
		return nil, fmt.Errorf("APP_MODERATION_MAX_RETRIES must not be negative, got %d", cfg.Moderation.MaxRetries)
	}

	return &cfg, nil
}
