package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// prefsPath returns the path to .barkly/prefs.yaml.
func (s *Storage) prefsPath() string {
	return filepath.Join(s.root, barklyDir, prefsFile)
}

// loadPrefs reads every slot. A missing file is an empty set of slots.
func (s *Storage) loadPrefs() (map[string][]string, error) {
	data, err := os.ReadFile(s.prefsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return map[string][]string{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", prefsFile, err)
	}

	prefs := map[string][]string{}
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", prefsFile, err)
	}
	if prefs == nil {
		prefs = map[string][]string{}
	}
	return prefs, nil
}

// LoadStrings returns the list stored under key, or nil if the slot is empty.
func (s *Storage) LoadStrings(key string) ([]string, error) {
	prefs, err := s.loadPrefs()
	if err != nil {
		return nil, err
	}
	return prefs[key], nil
}

// SaveStrings replaces the list stored under key. Other slots are kept.
// The file is written to a temporary name and renamed into place.
func (s *Storage) SaveStrings(key string, values []string) error {
	prefs, err := s.loadPrefs()
	if err != nil {
		return err
	}
	if values == nil {
		values = []string{}
	}
	prefs[key] = values

	data, err := yaml.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", prefsFile, err)
	}

	path := s.prefsPath()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", prefsFile, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", prefsFile, err)
	}
	return nil
}
