package config

import (
	"os"
	"testing"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/test")
	t.Setenv("IMPORT_COMPANY_ID", "tenant-1")
	t.Setenv("IMPORT_USER_ID", "user-1")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.MaxConns != 4 {
		t.Errorf("Database.MaxConns = %d, want 4", cfg.Database.MaxConns)
	}
	if cfg.Import.SourcesFile != "sources.yaml" {
		t.Errorf("Import.SourcesFile = %q, want sources.yaml", cfg.Import.SourcesFile)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Logging.Format = %q, want text", cfg.Logging.Format)
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_MAX_CONNS", "8")
	t.Setenv("IMPORT_SOURCES_FILE", "custom.yaml")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.MaxConns != 8 {
		t.Errorf("Database.MaxConns = %d, want 8", cfg.Database.MaxConns)
	}
	if cfg.Import.SourcesFile != "custom.yaml" {
		t.Errorf("Import.SourcesFile = %q, want custom.yaml", cfg.Import.SourcesFile)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoad_AltEnvVar(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/alttest")
	t.Setenv("IMPORT_COMPANY_ID", "tenant-1")
	t.Setenv("IMPORT_USER_ID", "user-1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.URL != "postgres://localhost/alttest" {
		t.Errorf("Database.URL = %q, want %q", cfg.Database.URL, "postgres://localhost/alttest")
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("DATABASE_URL")
	os.Unsetenv("DB_URL")
	os.Unsetenv("IMPORT_COMPANY_ID")
	os.Unsetenv("IMPORT_USER_ID")

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error for missing required variables")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "non-numeric max conns", key: "DB_MAX_CONNS", value: "lots"},
		{name: "zero max conns", key: "DB_MAX_CONNS", value: "0"},
		{name: "bad log level", key: "LOG_LEVEL", value: "loud"},
		{name: "bad log format", key: "LOG_FORMAT", value: "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Fatalf("Load() expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}
