// Package config resolves the ServiceHub client settings: the server
// endpoint the gateway dispatches to and the defaults for local commands.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/myservicehub/ServiceHub-sub004/pkg/validation"
)

// DefaultServerURL may be set at build time to point release builds at a
// fixed deployment:
//
//	go build -ldflags "-X github.com/myservicehub/ServiceHub-sub004/config.DefaultServerURL=https://api.servicehub.example"
var DefaultServerURL = ""

// EnvServerURL overrides the config file and the build-time default.
const EnvServerURL = "SERVICEHUB_API_URL"

// FallbackServerURL is used when nothing else names a server. It matches
// the backend's local development setup.
const FallbackServerURL = "http://localhost:8000"

// Config holds the settings read from the user config file.
type Config struct {
	// ServerURL is the API endpoint. Empty means fall through to the
	// build-time default.
	ServerURL string `yaml:"server_url"`
	// Workers is the number of concurrent fetchers used when syncing the
	// local job catalogue.
	Workers int `yaml:"workers"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ServerURL: "",
		Workers:   4,
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := validation.ValidateWorkerCount(c.Workers); err != nil {
		return fmt.Errorf("workers: %w", err)
	}
	return nil
}

// LoadFromFile reads a YAML config file over the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
