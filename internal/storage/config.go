package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// userConfigFile is the name of the user configuration file (sibling to .barkly/).
	userConfigFile = ".barklyconfig.yaml"

	// Default configuration values
	DefaultEndpoint  = "https://dog.ceo/api/breeds/image/random"
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "barkly"
)

// Config represents user configuration from .barklyconfig.yaml.
// This file is user-managed and never written by barkly.
type Config struct {
	// Endpoint is the random image endpoint.
	Endpoint string `yaml:"endpoint"`

	// Timeout bounds a single fetch, e.g. "10s".
	Timeout time.Duration `yaml:"timeout"`

	// UserAgent is sent with every request.
	UserAgent string `yaml:"user_agent"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Endpoint:  DefaultEndpoint,
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// LoadConfig loads .barklyconfig.yaml from dir if it exists, otherwise
// returns defaults. Partial config files are merged with defaults.
func LoadConfig(dir string) (*Config, error) {
	configPath := filepath.Join(dir, userConfigFile)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", userConfigFile, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", userConfigFile, err)
	}

	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("invalid timeout %s in %s: must not be negative", cfg.Timeout, userConfigFile)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}

	return cfg, nil
}

// LoadConfig loads the user config that sits next to .barkly/.
func (s *Storage) LoadConfig() (*Config, error) {
	return LoadConfig(s.root)
}

// ConfigPath returns the path to the user config file.
func (s *Storage) ConfigPath() string {
	return filepath.Join(s.root, userConfigFile)
}
