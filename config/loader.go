package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	appDirName     = ".servicehub"
	configFileName = "config.yaml"
)

// Dir returns the per-user data directory (~/.servicehub). The config file
// and the local catalogue database both live there.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to find home directory: %w", err)
	}
	return filepath.Join(home, appDirName), nil
}

// Path returns the location of the user config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads the user config file when one exists and falls back to the
// defaults otherwise. A broken config file is ignored with a warning
// rather than stopping the client.
func Load() *Config {
	path, err := Path()
	if err != nil {
		log.Debug().Err(err).Msg("No home directory, using default config")
		return DefaultConfig()
	}
	if _, err := os.Stat(path); err != nil {
		return DefaultConfig()
	}
	cfg, err := LoadFromFile(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Ignoring unusable config file")
		return DefaultConfig()
	}
	log.Debug().Str("path", path).Msg("Loaded user config")
	return cfg
}

// ResolveServerURL picks the API endpoint, trying in order: the explicit
// flag value, the SERVICEHUB_API_URL environment variable, the config
// file, the build-time default, and finally the local development server.
func ResolveServerURL(flagValue string, cfg *Config) string {
	for _, candidate := range []string{
		flagValue,
		os.Getenv(EnvServerURL),
		fileServerURL(cfg),
		DefaultServerURL,
	} {
		if candidate != "" {
			return strings.TrimRight(candidate, "/")
		}
	}
	return FallbackServerURL
}

func fileServerURL(cfg *Config) string {
	if cfg == nil {
		return ""
	}
	return cfg.ServerURL
}
