package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	os.Args = []string{"evently"}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "http://localhost:5005/api", cfg.APIBaseURL)
	require.Equal(t, "evently.db", cfg.DatabasePath)
	require.Equal(t, 15*time.Second, cfg.RequestTimeout)
	require.Equal(t, 0, cfg.LogLevel)
}

func TestLoadConfig_EnvOverridesDefaults(t *testing.T) {
	os.Args = []string{"evently"}
	t.Setenv("EVENTLY_API_URL", "https://events.example.com/api")
	t.Setenv("EVENTLY_DB_PATH", "/tmp/e.db")
	t.Setenv("EVENTLY_REQUEST_TIMEOUT", "30s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "https://events.example.com/api", cfg.APIBaseURL)
	require.Equal(t, "/tmp/e.db", cfg.DatabasePath)
	require.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_JSONOverridesEnv(t *testing.T) {
	t.Setenv("EVENTLY_API_URL", "https://from-env.example.com")

	path := filepath.Join(t.TempDir(), "config.json")
	data, err := json.Marshal(map[string]any{
		"api_base_url":        "https://from-file.example.com/api",
		"request_timeout_sec": 5,
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	os.Args = []string{"evently", "-config", path}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "https://from-file.example.com/api", cfg.APIBaseURL)
	require.Equal(t, 5*time.Second, cfg.RequestTimeout)
	require.Equal(t, "evently.db", cfg.DatabasePath, "fields absent from the file keep earlier values")
}

func TestLoadConfig_FlagsWinOverEverything(t *testing.T) {
	t.Setenv("EVENTLY_DB_PATH", "/tmp/from-env.db")
	os.Args = []string{"evently", "-d", "/tmp/from-flag.db", "-t", "3"}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "/tmp/from-flag.db", cfg.DatabasePath)
	require.Equal(t, 3*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_MissingConfigFile(t *testing.T) {
	os.Args = []string{"evently", "-config", filepath.Join(t.TempDir(), "absent.json")}

	_, err := LoadConfig()
	require.Error(t, err)
}
