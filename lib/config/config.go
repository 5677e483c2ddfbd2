// Copyright 2026 The Shipboard Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the master configuration for a Shipboard server.
type Config struct {
	// Server configures the SSH listener.
	Server ServerConfig `yaml:"server"`

	// Log configures structured logging.
	Log LogConfig `yaml:"log"`
}

// ServerConfig configures the SSH listener.
type ServerConfig struct {
	// ListenAddr is the TCP address to listen on.
	ListenAddr string `yaml:"listen_addr"`

	// HostKeyPath is where the server's private host key lives. A
	// missing file is created with a fresh ed25519 key on startup.
	HostKeyPath string `yaml:"host_key_path"`

	// AppTitle is the panel title shown by the built-in status
	// application.
	AppTitle string `yaml:"app_title"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is "text" or "json".
	Format string `yaml:"format"`
}

// Default returns the built-in configuration: localhost listener,
// host key under ${HOME}/.shipboard, info-level text logs.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddr:  "127.0.0.1:2222",
			HostKeyPath: "${HOME}/.shipboard/host_key",
			AppTitle:    "shipboard",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from the file named by the
// SHIPBOARD_CONFIG environment variable.
func Load() (*Config, error) {
	configPath := os.Getenv("SHIPBOARD_CONFIG")
	if configPath == "" {
		return nil, fmt.Errorf("SHIPBOARD_CONFIG environment variable not set; " +
			"set it to the path of your shipboard.yaml config file, or use --config flag")
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, merging it
// over the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.expandVariables()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the configuration is complete and coherent.
func (c *Config) Validate() error {
	if c.Server.ListenAddr == "" {
		return fmt.Errorf("server.listen_addr is required")
	}
	if c.Server.HostKeyPath == "" {
		return fmt.Errorf("server.host_key_path is required")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format %q is not one of text, json", c.Log.Format)
	}
	return nil
}

// expandVariables expands ${HOME} in path fields.
func (c *Config) expandVariables() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	c.Server.HostKeyPath = strings.ReplaceAll(c.Server.HostKeyPath, "${HOME}", home)
}
