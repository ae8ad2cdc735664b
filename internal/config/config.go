// Package config loads server configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Store driver names accepted in MOMENTUM_STORE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

// Config contains all momentumd settings.
type Config struct {
	// --- HTTP ---
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`

	// --- Store ---
	StoreDriver string `envconfig:"STORE_DRIVER" default:"memory"`

	MongoURI      string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDatabase string `envconfig:"MONGO_DATABASE" default:"momentum"`

	PGHost     string `envconfig:"PG_HOST" default:"localhost"`
	PGPort     int    `envconfig:"PG_PORT" default:"5432"`
	PGUser     string `envconfig:"PG_USER" default:"momentum"`
	PGPassword string `envconfig:"PG_PASSWORD" default:""`
	PGDatabase string `envconfig:"PG_DATABASE" default:"momentum"`
	PGSSLMode  string `envconfig:"PG_SSLMODE" default:"disable"`

	// --- Auth ---
	JWTSecret string        `envconfig:"JWT_SECRET" default:""`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`

	// --- Rewards ---
	CatalogPath       string `envconfig:"CATALOG_PATH" default:""`
	TaskRewardDefault int64  `envconfig:"TASK_REWARD_DEFAULT" default:"10"`
	FocusRate         int64  `envconfig:"FOCUS_RATE" default:"1"`
	DailyBonusPoints  int64  `envconfig:"DAILY_BONUS_POINTS" default:"5"`
	DailyBonusCron    string `envconfig:"DAILY_BONUS_CRON" default:"0 6 * * *"`

	// --- Music proxy ---
	MusicEnabled      bool   `envconfig:"MUSIC_ENABLED" default:"false"`
	MusicBaseURL      string `envconfig:"MUSIC_BASE_URL" default:""`
	MusicTokenURL     string `envconfig:"MUSIC_TOKEN_URL" default:""`
	MusicClientID     string `envconfig:"MUSIC_CLIENT_ID" default:""`
	MusicClientSecret string `envconfig:"MUSIC_CLIENT_SECRET" default:""`

	// --- Logging ---
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
}

// Load reads configuration from MOMENTUM_* environment variables and
// validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("momentum", &cfg); err != nil {
		return nil, fmt.Errorf("config: process environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints that tags cannot express.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverMemory, DriverMongo, DriverPostgres:
	default:
		return fmt.Errorf("config: unknown store driver %q", c.StoreDriver)
	}

	if c.JWTSecret == "" {
		return fmt.Errorf("config: MOMENTUM_JWT_SECRET is required")
	}
	if c.TaskRewardDefault < 0 || c.FocusRate < 0 || c.DailyBonusPoints < 0 {
		return fmt.Errorf("config: reward amounts must not be negative")
	}

	if c.MusicEnabled {
		if c.MusicBaseURL == "" || c.MusicTokenURL == "" {
			return fmt.Errorf("config: music proxy enabled but MOMENTUM_MUSIC_BASE_URL or MOMENTUM_MUSIC_TOKEN_URL is empty")
		}
	}
	return nil
}

// PostgresDSN returns the PostgreSQL connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGDatabase, c.PGSSLMode,
	)
}

// SlogLevel maps the configured level name to a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
