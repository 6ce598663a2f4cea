// Package config reads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

const appName = "lightnovel-reader"

type Config struct {
	// Content site origin; endpoint paths are appended to it.
	BaseURL string `env:"NOVEL_BASE_URL" envDefault:"https://lightnovelpub.me"`

	// Storage backend for bookmarks, history and preferences: file, sqlite, redis or memory.
	Storage     string `env:"NOVEL_STORAGE"      envDefault:"file"`
	StateDir    string `env:"NOVEL_STATE_DIR"`
	SQLitePath  string `env:"NOVEL_SQLITE_PATH"`
	RedisURL    string `env:"NOVEL_REDIS_URL"    envDefault:"redis://localhost:6379/0"`
	RedisPrefix string `env:"NOVEL_REDIS_PREFIX" envDefault:"lightnovel"`

	// Render pages in headless Chrome before extraction.
	Render      bool          `env:"NOVEL_RENDER"      envDefault:"false"`
	RetryCount  int           `env:"NOVEL_RETRY_COUNT" envDefault:"3"`
	HTTPTimeout time.Duration `env:"NOVEL_HTTP_TIMEOUT" envDefault:"30s"`

	APIAddr  string `env:"NOVEL_API_ADDR" envDefault:":8080"`
	LogLevel string `env:"LOG_LEVEL"      envDefault:"info"`
}

// Load reads the environment. The result is not validated, so callers can
// apply overrides first and then call Validate.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	if cfg.StateDir == "" {
		cfg.StateDir = defaultStateDir()
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = filepath.Join(cfg.StateDir, "state.db")
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage {
	case "file", "sqlite", "redis", "memory":
	default:
		return fmt.Errorf("config: storage must be one of file, sqlite, redis, memory; got %q", c.Storage)
	}
	if c.BaseURL == "" {
		return fmt.Errorf("config: base url cannot be empty")
	}
	if c.RetryCount < 0 {
		return fmt.Errorf("config: retry count cannot be negative")
	}
	return nil
}

// defaultStateDir returns XDG_STATE_HOME/lightnovel-reader or ~/.local/state/lightnovel-reader
func defaultStateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", appName)
}
