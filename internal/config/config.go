package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration. Service endpoints and the
// bearer token are always injected from the environment.
type Config struct {
	LoginBase     string
	TelemetryBase string
	BearerToken   string
	StateDir      string
	LogFile       string

	// Dashboard prefill, overridable per deployment.
	DefaultDeviceID string
	DefaultDataType string
}

// Load reads configuration from the environment, with .env support for local
// development.
func Load() (Config, error) {
	// No .env file is fine; system environment still applies.
	godotenv.Load() //nolint:errcheck

	cfg := Config{
		LoginBase:       os.Getenv("VOLTBOARD_LOGIN_BASE"),
		TelemetryBase:   os.Getenv("VOLTBOARD_TELEMETRY_BASE"),
		BearerToken:     os.Getenv("VOLTBOARD_BEARER_TOKEN"),
		StateDir:        os.Getenv("VOLTBOARD_STATE_DIR"),
		LogFile:         os.Getenv("VOLTBOARD_LOG_FILE"),
		DefaultDeviceID: getenv("VOLTBOARD_DEVICE_ID", "battery-1"),
		DefaultDataType: getenv("VOLTBOARD_DATA_TYPE", "voltage"),
	}

	if cfg.LoginBase == "" || cfg.TelemetryBase == "" {
		return Config{}, fmt.Errorf("configuration is incomplete: set VOLTBOARD_LOGIN_BASE and VOLTBOARD_TELEMETRY_BASE")
	}

	if cfg.StateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("get home dir: %w", err)
		}
		cfg.StateDir = filepath.Join(home, ".voltboard")
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.StateDir, "voltboard.log")
	}
	return cfg, nil
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
