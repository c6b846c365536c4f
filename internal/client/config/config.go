// Package config assembles runtime settings for the Evently CLI.
//
// Sources are layered: defaults, then environment variables, then an
// optional JSON file (path via -c/-config), then command-line flags.
// Later sources take precedence.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// APIBaseURL is the base URL of the Evently REST backend, including
	// the /api prefix.
	APIBaseURL string `env:"EVENTLY_API_URL"`
	// DatabasePath is the SQLite file holding the persisted credential.
	DatabasePath   string        `env:"EVENTLY_DB_PATH"`
	RequestTimeout time.Duration `env:"EVENTLY_REQUEST_TIMEOUT"`
	LogLevel       int           `env:"EVENTLY_LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults for local development.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5005/api"
	c.DatabasePath = "evently.db"
	c.RequestTimeout = 15 * time.Second
	c.LogLevel = 0
}

// LoadConfig constructs a Config from all sources in precedence order.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}
	if err := parseJSON(cfg); err != nil {
		return nil, err
	}
	parseFlags(cfg)
	return cfg, nil
}
