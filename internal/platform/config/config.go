// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

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
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Storage Drivers

const (
	// DriverPostgres selects the pgx backed repositories.
	DriverPostgres = "postgres"

	// DriverSQLite selects the modernc.org/sqlite backed repositories.
	DriverSQLite = "sqlite"
)

// # Configuration Schema

// Config holds all runtime configuration for the promptdb server and CLI.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational database. DATABASE_URL is a postgres:// URL for the postgres
	// driver and a file path for sqlite.
	DatabaseDriver string `env:"DATABASE_DRIVER" envDefault:"postgres"`
	DatabaseURL    string `env:"DATABASE_URL,required"`

	// MigrationPath is an optional filesystem path to the SQL migrations directory.
	// Empty means the migrations embedded in the binary are used.
	MigrationPath string `env:"MIGRATION_PATH"`

	// Key-Value store (Redis). Optional: without it the import lock is process-local.
	RedisURL string `env:"REDIS_URL"`

	// Import guard rails
	ImportLockTTL  time.Duration `env:"IMPORT_LOCK_TTL"  envDefault:"2m"`
	MaxImportBytes int64         `env:"MAX_IMPORT_BYTES" envDefault:"10485760"`

	// Cross-Origin Resource Sharing
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	// Per-IP rate limiting
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"50"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"100"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks cross-field rules the env tags cannot express.
func (c *Config) validate() error {
	switch c.DatabaseDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("config: unsupported DATABASE_DRIVER %q (want %q or %q)", c.DatabaseDriver, DriverPostgres, DriverSQLite)
	}

	if c.MaxImportBytes <= 0 {
		return fmt.Errorf("config: MAX_IMPORT_BYTES must be positive")
	}

	if c.ImportLockTTL <= 0 {
		return fmt.Errorf("config: IMPORT_LOCK_TTL must be positive")
	}

	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// UsesSQLite reports whether the SQLite backend is selected.
func (c *Config) UsesSQLite() bool {
	return c.DatabaseDriver == DriverSQLite
}
