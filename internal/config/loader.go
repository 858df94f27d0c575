package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultConfigDir is the default config directory name.
	DefaultConfigDir = ".sandgate"
	// DefaultConfigFile is the default sandbox spec file name.
	DefaultConfigFile = "sandbox.json"
)

// GetConfigDir returns the default config directory path (~/.sandgate).
func GetConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", DefaultConfigDir)
	}
	return filepath.Join(home, DefaultConfigDir)
}

// GetConfigPath returns the default sandbox spec path (~/.sandgate/sandbox.json).
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), DefaultConfigFile)
}

// LoadConfig loads a sandbox spec from the specified path.
// If path is empty, it uses the default path (~/.sandgate/sandbox.json).
// If the file doesn't exist, it returns the default configuration.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = GetConfigPath()
	}

	// Expand ~ in the path
	path = expandPath(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	// Start with defaults and unmarshal over them
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig saves a sandbox spec to the specified path.
// If path is empty, it uses the default path.
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = GetConfigPath()
	}

	path = expandPath(path)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}

// Exists checks if a sandbox spec exists at the given path.
// If path is empty, checks the default path.
func Exists(path string) bool {
	if path == "" {
		path = GetConfigPath()
	}
	path = expandPath(path)
	_, err := os.Stat(path)
	return err == nil
}
