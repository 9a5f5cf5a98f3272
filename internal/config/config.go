// Package config loads server configuration from defaults, an optional
// YAML file and GAMEHUB_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// ErrInvalidConfig is returned when a loaded value fails validation
var ErrInvalidConfig = errors.New("invalid config")

// Storage backends
const (
	StorageFile   = "file"
	StorageMemory = "memory"
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
)

// Config contains process configuration
type Config struct {
	// LogLevel is one of debug, info, warn, error
	LogLevel string `koanf:"log_level"`

	// Addr is the HTTP listen address
	Addr string `koanf:"addr"`

	// StorageType selects the record store backend
	StorageType string `koanf:"storage_type"`

	// DataDir holds users.json and scores.json for the file backend
	DataDir string `koanf:"data_dir"`

	RedisURL    string `koanf:"redis_url"`
	RedisPrefix string `koanf:"redis_prefix"`

	SQLitePath string `koanf:"sqlite_path"`

	SessionDuration time.Duration `koanf:"session_duration"`
	GameIdleTimeout time.Duration `koanf:"game_idle_timeout"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"`

	BcryptCost int `koanf:"bcrypt_cost"`
}

// New returns the defaults
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":8080",
		StorageType:     StorageFile,
		DataDir:         "data",
		RedisPrefix:     "gamehub",
		SQLitePath:      "data/gamehub.db",
		SessionDuration: 24 * time.Hour,
		GameIdleTimeout: 2 * time.Hour,
		CleanupInterval: 10 * time.Minute,
		BcryptCost:      10,
	}
}

// Validate checks the loaded values hang together
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch c.StorageType {
	case StorageFile:
		if c.DataDir == "" {
			return fmt.Errorf("%w: data_dir is required for file storage", ErrInvalidConfig)
		}
	case StorageMemory:
	case StorageRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("%w: redis_url is required for redis storage", ErrInvalidConfig)
		}
	case StorageSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("%w: sqlite_path is required for sqlite storage", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage_type %q", ErrInvalidConfig, c.StorageType)
	}
	if c.SessionDuration <= 0 {
		return fmt.Errorf("%w: session_duration must be positive", ErrInvalidConfig)
	}
	if c.GameIdleTimeout <= 0 {
		return fmt.Errorf("%w: game_idle_timeout must be positive", ErrInvalidConfig)
	}
	if c.CleanupInterval <= 0 {
		return fmt.Errorf("%w: cleanup_interval must be positive", ErrInvalidConfig)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a log level name onto slog
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, level)
}
