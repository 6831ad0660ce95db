package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"readrise/internal/platform/config"
)

func TestNewDefaults(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.Path != filepath.Join(dir, "readrise.db") {
		t.Fatalf("unexpected database defaults: %+v", cfg.Database)
	}
	if cfg.UserID != "me" || cfg.Log.Level != "info" || cfg.Digest.Notifier != "log" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if _, err := config.New(""); err == nil {
		t.Fatalf("empty data dir should fail")
	}
}

func TestLoadReadsYAMLFromDataDir(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	yaml := "user: reader-7\nlog:\n  level: debug\n  format: json\ndigest:\n  notifier: desktop\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.Load("", dir)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UserID != "reader-7" || cfg.Log.Level != "debug" || cfg.Log.Format != "json" || cfg.Digest.Notifier != "desktop" {
		t.Fatalf("config file values not applied: %+v", cfg)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("defaults must survive partial file, got %+v", cfg.Database)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("database:\n  driver: postgres\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.Load(path, dir); err == nil {
		t.Fatalf("postgres without dsn should fail validation")
	}
	if _, err := config.Load(filepath.Join(dir, "missing.yaml"), dir); err == nil {
		t.Fatalf("explicit missing config file should fail")
	}
}

func TestLoadAcceptsDriverAliases(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		driver string
		want   string
	}{
		{driver: "postgresql", want: "postgres"},
		{driver: "PostgreSQL", want: "postgres"},
		{driver: " Postgres ", want: "postgres"},
		{driver: "SQLite", want: "sqlite"},
	} {
		dir := t.TempDir()
		path := filepath.Join(dir, "custom.yaml")
		body := "database:\n  driver: \"" + tc.driver + "\"\n  dsn: postgres://localhost/readrise\n"
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
		cfg, err := config.Load(path, dir)
		if err != nil {
			t.Fatalf("driver %q: %v", tc.driver, err)
		}
		if cfg.Database.Driver != tc.want {
			t.Fatalf("driver %q normalized to %q, want %q", tc.driver, cfg.Database.Driver, tc.want)
		}
		if got := config.NormalizeDriver(tc.driver); got != tc.want {
			t.Fatalf("NormalizeDriver(%q) = %q, want %q", tc.driver, got, tc.want)
		}
	}
	if err := (config.Config{UserID: "me", Database: config.DatabaseConfig{Driver: "postgresql", DSN: "postgres://x"}, Digest: config.DigestConfig{Notifier: "log"}}).Validate(); err != nil {
		t.Fatalf("Validate must accept the postgresql alias: %v", err)
	}
}
