package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("listen addr = %q", cfg.ListenAddr)
	}
	if cfg.Upstream.Timeout != 30*time.Second {
		t.Errorf("upstream timeout = %v", cfg.Upstream.Timeout)
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Errorf("session ttl = %v", cfg.Session.TTL)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "listen_addr: \":9999\"\nupstream:\n  base_url: \"https://api.example.com/api/v1\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != ":9999" {
		t.Errorf("listen addr = %q", cfg.ListenAddr)
	}
	if cfg.Upstream.BaseURL != "https://api.example.com/api/v1" {
		t.Errorf("base url = %q", cfg.Upstream.BaseURL)
	}
	// Untouched keys keep defaults.
	if cfg.Session.DBPath != "carrierboard.sqlite3" {
		t.Errorf("db path = %q", cfg.Session.DBPath)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("CARRIERBOARD_UPSTREAM__BASE_URL", "https://env.example.com/api/v1")
	t.Setenv("CARRIERBOARD_LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Upstream.BaseURL != "https://env.example.com/api/v1" {
		t.Errorf("base url = %q", cfg.Upstream.BaseURL)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log level = %q", cfg.LogLevel)
	}
}

func TestLoadMissingFileIsFine(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err != nil {
		t.Errorf("missing config file should not fail: %v", err)
	}
}
