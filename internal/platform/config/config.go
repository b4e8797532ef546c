// Copyright (c) 2026 FishEye. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. In development a
local .env file is merged into the environment first (godotenv).

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (catalog, ledgers) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/taibuivan/fisheye/internal/platform/constants"
)

// # Configuration Schema

// Config holds all runtime configuration for the FishEye API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Source document holding photographers and media.
	// Accepts a filesystem path, file://, http(s):// or s3://bucket/key.
	SourceURL     string        `env:"SOURCE_URL"     envDefault:"data/photographers.json"`
	SourceTimeout time.Duration `env:"SOURCE_TIMEOUT" envDefault:"15s"`

	// AssetsBase prefixes portrait and media paths handed to the front-end.
	AssetsBase string `env:"ASSETS_BASE"`

	// SortLocale is the BCP 47 tag used to collate media titles.
	SortLocale string `env:"SORT_LOCALE" envDefault:"fr"`

	// Like ledger backends. When both are empty likes are kept in memory.
	RedisURL    string `env:"REDIS_URL"`
	DatabaseURL string `env:"DATABASE_URL"`

	// Object Storage (S3-compatible) for s3:// source URLs
	S3Region   string `env:"S3_REGION"   envDefault:"auto"`
	S3Endpoint string `env:"S3_ENDPOINT"`

	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`

	// Message broker for media.liked events. Empty disables publishing.
	AMQPURL   string `env:"AMQP_URL"`
	AMQPQueue string `env:"AMQP_QUEUE" envDefault:"fisheye.media.liked"`

	// Cross-Origin Resource Sharing (comma-separated domain suffixes)
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Merge a local .env file when present; real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to load .env file: %w", err)
	}

	return parse(env.Options{})
}

// LoadFrom parses configuration from an explicit variable set instead of the
// process environment.
func LoadFrom(environment map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environment})
}

func parse(options env.Options) (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.ParseWithOptions(cfg, options); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if strings.TrimSpace(cfg.SourceURL) == "" {
		return nil, fmt.Errorf("config: SOURCE_URL must not be empty")
	}

	if cfg.SourceTimeout <= 0 {
		cfg.SourceTimeout = constants.DefaultSourceTimeout
	}

	if strings.TrimSpace(cfg.AMQPQueue) == "" {
		cfg.AMQPQueue = constants.DefaultLikeQueue
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the CORS domain suffixes accepted outside development.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
