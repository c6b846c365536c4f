package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/evently/evently/internal/flagx"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling; values are
// copied into the runtime Config only when present.
type jsonConfig struct {
	APIBaseURL        string `json:"api_base_url"`
	DatabasePath      string `json:"database_path"`
	RequestTimeoutSec int    `json:"request_timeout_sec"`
	LogLevel          *int   `json:"log_level"`
}

// parseJSON overlays cfg with values from the JSON file named by the
// -c/-config flags. No flag, no file, no overlay.
func parseJSON(cfg *Config) error {
	path := flagx.JSONConfigFlags()
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.RequestTimeoutSec > 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeoutSec) * time.Second
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	return nil
}
