// Package storage provides file system operations for .barkly/ directories.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// barklyDir is the name of the barkly directory.
	barklyDir = ".barkly"
	// configFile is the name of the storage config file within .barkly/.
	configFile = "config.yaml"
	// prefsFile holds named preference slots within .barkly/.
	prefsFile = "prefs.yaml"

	// storageVersion is written to config.yaml on init.
	storageVersion = 1
)

// StorageConfig contains settings stored in .barkly/config.yaml.
type StorageConfig struct {
	Version int `yaml:"version"`
}

// Storage provides access to a .barkly/ directory.
type Storage struct {
	root string // path to directory containing .barkly/
}

// Open returns a Storage for the given directory.
// Returns error if .barkly/ does not exist.
func Open(dir string) (*Storage, error) {
	path := filepath.Join(dir, barklyDir)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotInitializedError{Dir: dir}
		}
		return nil, fmt.Errorf("failed to access .barkly/: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf(".barkly is not a directory")
	}

	return &Storage{root: dir}, nil
}

// Init creates the .barkly/ directory.
// Returns error if .barkly/ already exists.
func Init(dir string) (*Storage, error) {
	path := filepath.Join(dir, barklyDir)

	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf(".barkly/ directory already exists in %s", dir)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to check for .barkly/: %w", err)
	}

	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .barkly/: %w", err)
	}

	cfg := StorageConfig{Version: storageVersion}
	cfgData, err := yaml.Marshal(&cfg)
	if err != nil {
		os.RemoveAll(path)
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(path, configFile), cfgData, 0644); err != nil {
		os.RemoveAll(path)
		return nil, fmt.Errorf("failed to write config.yaml: %w", err)
	}

	return &Storage{root: dir}, nil
}

// OpenOrInit opens dir's .barkly/ directory, creating it first if needed.
func OpenOrInit(dir string) (*Storage, error) {
	s, err := Open(dir)
	if err == nil {
		return s, nil
	}
	if _, ok := err.(*NotInitializedError); !ok {
		return nil, err
	}
	return Init(dir)
}

// Root returns the root directory containing .barkly/.
func (s *Storage) Root() string {
	return s.root
}

// BarklyPath returns the path to the .barkly/ directory.
func (s *Storage) BarklyPath() string {
	return filepath.Join(s.root, barklyDir)
}

// LoadStorageConfig reads .barkly/config.yaml.
func (s *Storage) LoadStorageConfig() (*StorageConfig, error) {
	path := filepath.Join(s.BarklyPath(), configFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config.yaml: %w", err)
	}

	var cfg StorageConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config.yaml: %w", err)
	}
	return &cfg, nil
}

// NotInitializedError indicates there is no .barkly/ directory.
type NotInitializedError struct {
	Dir string
}

func (e *NotInitializedError) Error() string {
	return fmt.Sprintf(".barkly/ directory not found in %s (run 'barkly init')", e.Dir)
}
