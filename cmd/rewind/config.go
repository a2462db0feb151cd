// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/rewind/pkg/journal"
	"github.com/AleutianAI/rewind/pkg/logging"
)

// Config holds the runtime settings for the rewind CLI.
type Config struct {
	// MaxDepth is the maximum number of history entries kept before the
	// oldest is evicted.
	MaxDepth int `json:"max_depth" yaml:"max_depth"`

	// UpdateWindow is the coalescing window for rapid same-target edits.
	// YAML and JSON take nanoseconds; the --window flag and the
	// REWIND_UPDATE_WINDOW env var accept strings like "250ms".
	UpdateWindow time.Duration `json:"update_window" yaml:"update_window"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level" yaml:"log_level"`

	// LogJSON switches console log output from text to JSON.
	LogJSON bool `json:"log_json" yaml:"log_json"`

	// LogDir, when set, mirrors all logs to a dated JSON file there.
	LogDir string `json:"log_dir" yaml:"log_dir"`
}

// DefaultConfig returns the settings used when no file, env var, or flag
// overrides them.
func DefaultConfig() Config {
	return Config{
		MaxDepth:     64,
		UpdateWindow: journal.DefaultUpdateWindow,
		LogLevel:     "info",
	}
}

// LoadConfig loads configuration with priority: env > file > defaults.
// Flag overrides are layered on afterwards by the command setup.
//
// An empty path falls back to ~/.rewind/config.yaml; that implicit file is
// optional, but a path given explicitly must exist.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
	}
	if path != "" {
		if err := loadConfigFile(path, &config); err != nil {
			if explicit || !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("loading config from %s: %w", path, err)
			}
		}
	}

	loadConfigFromEnv(&config)

	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

// defaultConfigPath returns ~/.rewind/config.yaml, or "" when the home
// directory cannot be resolved.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".rewind", "config.yaml")
}

// loadConfigFile reads a YAML config file, falling back to JSON parsing if
// YAML fails.
func loadConfigFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if yamlErr := yaml.Unmarshal(data, config); yamlErr != nil {
		if jsonErr := json.Unmarshal(data, config); jsonErr != nil {
			return fmt.Errorf("parsing config: %w", yamlErr)
		}
	}
	return nil
}

// loadConfigFromEnv overrides config values from REWIND_* environment
// variables. Unparseable values are ignored.
func loadConfigFromEnv(config *Config) {
	if v := os.Getenv("REWIND_MAX_DEPTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.MaxDepth = n
		}
	}
	if v := os.Getenv("REWIND_UPDATE_WINDOW"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.UpdateWindow = d
		}
	}
	if v := os.Getenv("REWIND_LOG_LEVEL"); v != "" {
		config.LogLevel = v
	}
	if v := os.Getenv("REWIND_LOG_JSON"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			config.LogJSON = b
		}
	}
	if v := os.Getenv("REWIND_LOG_DIR"); v != "" {
		config.LogDir = v
	}
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	if c.MaxDepth < 1 {
		return fmt.Errorf("max_depth must be at least 1, got %d", c.MaxDepth)
	}
	if c.UpdateWindow <= 0 {
		return fmt.Errorf("update_window must be positive, got %v", c.UpdateWindow)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}
