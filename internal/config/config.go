// Package config handles AgentArena configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds all configuration
type Config struct {
	// Paths
	DataDir string `json:"data_dir"`

	// Server
	Server ServerConfig `json:"server"`

	// Leaderboard policy
	Leaderboard LeaderboardConfig `json:"leaderboard"`

	// Logging
	LogLevel string `json:"log_level"`
}

// ServerConfig for the HTTP server
type ServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// LeaderboardConfig caps leaderboard reads
type LeaderboardConfig struct {
	DefaultLimit int `json:"default_limit"`
	MaxLimit     int `json:"max_limit"`
}

// Default returns default configuration
func Default() *Config {
	home, _ := os.UserHomeDir()

	return &Config{
		DataDir: filepath.Join(home, ".agentarena"),
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
		Leaderboard: LeaderboardConfig{
			DefaultLimit: 25,
			MaxLimit:     100,
		},
		LogLevel: "info",
	}
}

// Load loads config from the file, falling back to defaults when it does
// not exist yet
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to the file
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// DatabasePath returns the SQLite file path under the data directory
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "agentarena.db")
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
