// Package config provides project-level configuration for undraft.
// It supports loading configuration from .undraft/config.yaml files with
// proper precedence: CLI flags > project config > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigDir is the directory name for undraft configuration
	ConfigDir = ".undraft"
	// ConfigFile is the name of the configuration file
	ConfigFile = "config.yaml"
	// ConfigPath is the full path to the config file relative to project root
	ConfigPath = ConfigDir + "/" + ConfigFile

	// DefaultInterval is the poll interval in seconds used when neither a
	// flag nor a config file supplies one.
	DefaultInterval = 30
)

// ProjectConfig represents the project-level configuration for undraft.
// It provides defaults that can be overridden by CLI flags.
type ProjectConfig struct {
	// Interval is the default poll interval in seconds.
	Interval int `yaml:"interval,omitempty"`

	// Repo is the default repository (owner/name) to monitor.
	Repo string `yaml:"repo,omitempty"`

	// Backend pins the platform backend ("gh" or "api") instead of
	// detecting one at startup.
	Backend string `yaml:"backend,omitempty"`
}

// Load loads the project configuration from the given directory.
// It searches for .undraft/config.yaml in the directory and its parents.
//
// If no config file is found, it returns a zero config and nil error.
// If a config file is found but cannot be parsed, it returns an error.
func Load(dir string) (*ProjectConfig, error) {
	configPath, err := findConfigPath(dir)
	if err != nil {
		return nil, err
	}
	if configPath == "" {
		// No config file found, return zero config
		return &ProjectConfig{}, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Interval < 0 {
		return nil, fmt.Errorf("invalid interval %d in %s: must be a positive integer", cfg.Interval, configPath)
	}

	return &cfg, nil
}

// LoadFromCurrentDir loads the project configuration from the current working directory.
func LoadFromCurrentDir() (*ProjectConfig, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return Load(dir)
}

// findConfigPath searches for .undraft/config.yaml in dir and its parent directories.
// It returns the full path to the config file, or empty string if not found.
func findConfigPath(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	// Search upward through directory tree
	for {
		configPath := filepath.Join(absDir, ConfigPath)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parentDir := filepath.Dir(absDir)
		if parentDir == absDir {
			// Reached root without finding config
			return "", nil
		}
		absDir = parentDir
	}
}

// ResolveInterval returns the effective poll interval in seconds.
// Precedence: CLI flag (when set) > project config > DefaultInterval.
func (c *ProjectConfig) ResolveInterval(cliValue int, cliSet bool) int {
	if cliSet {
		return cliValue
	}
	if c.Interval > 0 {
		return c.Interval
	}
	return DefaultInterval
}

// ResolveBackend returns the effective backend preference; empty means
// detect at startup.
func (c *ProjectConfig) ResolveBackend(cliValue string) string {
	if cliValue != "" {
		return cliValue
	}
	return c.Backend
}
