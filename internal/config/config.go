// Package config loads the dashboard configuration: struct defaults,
// overridden by an optional YAML file, overridden by CARRIERBOARD_-prefixed
// environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Config is the full dashboard configuration.
type Config struct {
	ListenAddr string         `koanf:"listen_addr"`
	LogLevel   string         `koanf:"log_level"`
	Upstream   UpstreamConfig `koanf:"upstream"`
	Session    SessionConfig  `koanf:"session"`
}

// UpstreamConfig points at the remote freight-management API.
type UpstreamConfig struct {
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`
}

// SessionConfig controls login sessions.
type SessionConfig struct {
	DBPath string        `koanf:"db_path"`
	Secret string        `koanf:"secret"` // empty = persisted auto-generated secret
	TTL    time.Duration `koanf:"ttl"`
}

// envPrefix is the prefix for environment overrides. Double underscore
// separates nesting levels, e.g. CARRIERBOARD_UPSTREAM__BASE_URL.
const envPrefix = "CARRIERBOARD_"

// Load reads configuration, layering defaults, the optional YAML file at
// path (ignored when missing), and environment variables.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	defaults := &Config{
		ListenAddr: ":8080",
		LogLevel:   "info",
		Upstream: UpstreamConfig{
			BaseURL: "http://localhost:8000/api/v1",
			Timeout: 30 * time.Second,
		},
		Session: SessionConfig{
			DBPath: "carrierboard.sqlite3",
			TTL:    24 * time.Hour,
		},
	}

	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil && !strings.Contains(err.Error(), "no such file") {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.Upstream.BaseURL == "" {
		return nil, fmt.Errorf("upstream.base_url must be set")
	}

	return &cfg, nil
}
