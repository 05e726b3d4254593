// Package config loads client configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all client configuration.
type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// API endpoint, mirrors the dashboard's NEXT_PUBLIC_API_URL.
	APIURL      string        `envconfig:"LENS_API_URL" default:"http://localhost:8000/api"`
	HTTPTimeout time.Duration `envconfig:"LENS_HTTP_TIMEOUT" default:"30s"`

	// Where the session database lives. Empty means the per-user
	// config directory; sessions fall back to memory-only when
	// neither is writable.
	StateDir string `envconfig:"LENS_STATE_DIR"`

	CacheCapacity int `envconfig:"LENS_CACHE_CAPACITY" default:"256"`

	// Optional address for the Prometheus endpoint, e.g. ":9188".
	// Empty disables it.
	MetricsAddr string `envconfig:"LENS_METRICS_ADDR"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}

// SessionPath returns the session database path, creating the state
// directory if needed.
func (c *Config) SessionPath() (string, error) {
	dir := c.StateDir
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("resolving state dir: %w", err)
		}
		dir = filepath.Join(base, "startuplens")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("creating state dir: %w", err)
	}
	return filepath.Join(dir, "session.db"), nil
}

// Development reports whether the client runs in development mode.
func (c *Config) Development() bool {
	return c.Environment == "development"
}
