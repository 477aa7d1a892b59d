// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/mcoot/santaworkshop/internal/api"
	"github.com/mcoot/santaworkshop/internal/factory"
	"github.com/mcoot/santaworkshop/internal/services/session"
	redisstorage "github.com/mcoot/santaworkshop/internal/storage/redis"
	sqlitestorage "github.com/mcoot/santaworkshop/internal/storage/sqlite"
)

// Prefix is prepended to every variable name, e.g. SANTA_PORT
const Prefix = "SANTA"

// Config holds every server setting
type Config struct {
	// --- HTTP ---
	Host string `envconfig:"HOST" default:""`
	Port int    `envconfig:"PORT" default:"8080"`

	// --- Storage ---
	StorageType  string `envconfig:"STORAGE_TYPE" default:"sqlite"`
	RedisURL     string `envconfig:"REDIS_URL"`
	SQLitePath   string `envconfig:"SQLITE_PATH" default:"santa.db"`
	KeyNamespace string `envconfig:"KEY_NAMESPACE" default:"santa"`

	// --- Application ---
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"info"`
	FrameInterval time.Duration `envconfig:"FRAME_INTERVAL" default:"16ms"`
}

// Load reads an optional .env file, then the environment. Variables already
// set in the environment win over the file.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that envconfig cannot
func (c *Config) Validate() error {
	switch c.StorageType {
	case factory.StorageTypeMemory, factory.StorageTypeSQLite:
	case factory.StorageTypeRedis:
		if c.RedisURL == "" {
			return errors.New("SANTA_REDIS_URL required when SANTA_STORAGE_TYPE=redis")
		}
	default:
		return fmt.Errorf("unknown SANTA_STORAGE_TYPE %q", c.StorageType)
	}
	if c.StorageType == factory.StorageTypeSQLite && c.SQLitePath == "" {
		return errors.New("SANTA_SQLITE_PATH required when SANTA_STORAGE_TYPE=sqlite")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("SANTA_PORT out of range: %d", c.Port)
	}
	if c.FrameInterval <= 0 {
		return errors.New("SANTA_FRAME_INTERVAL must be > 0")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses the configured log level
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return level, fmt.Errorf("unknown SANTA_LOG_LEVEL %q", c.LogLevel)
	}
	return level, nil
}

// Factory builds the application factory settings
func (c *Config) Factory(logger *slog.Logger) factory.Config {
	cfg := factory.Config{
		Logger:        logger,
		StorageType:   c.StorageType,
		SessionConfig: session.Config{FrameInterval: c.FrameInterval},
	}

	switch c.StorageType {
	case factory.StorageTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = c.RedisURL
		redisCfg.Namespace = c.KeyNamespace
		cfg.RedisConfig = &redisCfg
	case factory.StorageTypeSQLite:
		sqliteCfg := sqlitestorage.DefaultConfig()
		sqliteCfg.Path = c.SQLitePath
		sqliteCfg.Namespace = c.KeyNamespace
		cfg.SQLiteConfig = &sqliteCfg
	}
	return cfg
}

// Server builds the HTTP server settings
func (c *Config) Server() api.ServerConfig {
	cfg := api.DefaultServerConfig()
	cfg.Host = c.Host
	cfg.Port = c.Port
	return cfg
}
