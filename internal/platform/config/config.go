// Copyright (c) 2026 ComicHub. All rights reserved.

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the ComicHub API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// Shared secret used to sign JWT access tokens
	JWTSecret string `env:"JWT_SECRET,required"`

	// Daily release checker fire time (local clock)
	ReleaseCheckHour   int `env:"RELEASE_CHECK_HOUR"   envDefault:"0"`
	ReleaseCheckMinute int `env:"RELEASE_CHECK_MINUTE" envDefault:"1"`

	// Outbound email (SMTP)
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     string `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	EmailFrom    string `env:"EMAIL_FROM" envDefault:"noreply@comichub.io"`

	// PublicBaseURL is the frontend origin used in emailed links.
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"https://comichub.io"`

	// Bootstrap admin account, created at startup when no admin exists.
	AdminUsername string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.ReleaseCheckHour < 0 || cfg.ReleaseCheckHour > 23 {
		return nil, fmt.Errorf("config: RELEASE_CHECK_HOUR must be 0-23, got %d", cfg.ReleaseCheckHour)
	}
	if cfg.ReleaseCheckMinute < 0 || cfg.ReleaseCheckMinute > 59 {
		return nil, fmt.Errorf("config: RELEASE_CHECK_MINUTE must be 0-59, got %d", cfg.ReleaseCheckMinute)
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
