// Package config provides configuration for the property importer. Runtime
// settings come from environment variables (with .env overlay in main); the
// ordered source-file sequence comes from a YAML file so that adding,
// reordering, or disabling an export never needs a rebuild.
package config

import (
	"fmt"
	"strings"
)

// Config holds all importer configuration loaded from the environment.
type Config struct {
	Database DatabaseConfig
	Import   ImportConfig
	Logging  LoggingConfig
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string (required).
	// Supports both DATABASE_URL and DB_URL env vars for compatibility.
	URL string `env:"DATABASE_URL" envAlt:"DB_URL" required:"true"`

	// MaxConns is the maximum number of pool connections (default: 4).
	// The run is single-threaded, so a small pool suffices.
	MaxConns int `env:"DB_MAX_CONNS" default:"4"`
}

// ImportConfig holds the identity and input settings of a run.
type ImportConfig struct {
	// CompanyID is the tenant whose lookup tables scope the run (required).
	CompanyID string `env:"IMPORT_COMPANY_ID" required:"true"`

	// UserID is recorded as the creator of every imported property (required).
	UserID string `env:"IMPORT_USER_ID" required:"true"`

	// SourcesFile is the YAML file declaring the ordered source sequence
	// (default: sources.yaml).
	SourcesFile string `env:"IMPORT_SOURCES_FILE" default:"sources.yaml"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info).
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text).
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Validate checks that the configuration is usable, collecting every
// failure so misconfiguration is reported in one pass.
func (c *Config) Validate() error {
	var errs []string

	if c.Database.URL == "" {
		errs = append(errs, "DATABASE_URL is required")
	}
	if c.Database.MaxConns <= 0 {
		errs = append(errs, "DB_MAX_CONNS must be positive")
	}
	if c.Import.CompanyID == "" {
		errs = append(errs, "IMPORT_COMPANY_ID is required")
	}
	if c.Import.UserID == "" {
		errs = append(errs, "IMPORT_USER_ID is required")
	}
	if c.Import.SourcesFile == "" {
		errs = append(errs, "IMPORT_SOURCES_FILE must not be empty")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
