// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml)
//  2. Environment variables (fallback)
//
// Example usage:
//
//	cfg := config.LoadOrEnv("config.yaml")
//	dbPath := cfg.Storage.DatabasePath
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config represents the entire application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
	Share   ShareConfig   `yaml:"share"`
	History HistoryConfig `yaml:"history"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// StorageConfig holds snapshot database configuration.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// LoggingConfig holds log settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ShareConfig holds link-sharing settings.
type ShareConfig struct {
	// BaseURL is the public address of the web app that share links point
	// at (the token is appended as a query parameter).
	BaseURL string `yaml:"base_url"`
}

// HistoryConfig holds undo history settings.
type HistoryConfig struct {
	Capacity int `yaml:"capacity"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:        ":8080",
			CORSOrigins: []string{"http://localhost:4200", "http://localhost:5173"},
		},
		Storage: StorageConfig{DatabasePath: "./data/splitsnap.db"},
		Logging: LoggingConfig{Level: "info"},
		Share:   ShareConfig{BaseURL: "http://localhost:8080"},
		History: HistoryConfig{Capacity: 50},
	}
}

// Load reads configuration from a YAML file, layered over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.applyFallbacks()
	return cfg, nil
}

// LoadOrEnv loads the YAML file when present, otherwise falls back to
// environment variables over the defaults.
func LoadOrEnv(path string) Config {
	if _, err := os.Stat(path); err == nil {
		if cfg, err := Load(path); err == nil {
			return cfg
		}
	}

	cfg := Default()
	if v := os.Getenv("SPLITSNAP_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.Storage.DatabasePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("SHARE_BASE_URL"); v != "" {
		cfg.Share.BaseURL = v
	}
	if v := os.Getenv("HISTORY_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.History.Capacity = n
		}
	}
	cfg.applyFallbacks()
	return cfg
}

// applyFallbacks repairs values a partial file may have blanked.
func (c *Config) applyFallbacks() {
	def := Default()
	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}
	if c.Storage.DatabasePath == "" {
		c.Storage.DatabasePath = def.Storage.DatabasePath
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
	if c.Share.BaseURL == "" {
		c.Share.BaseURL = def.Share.BaseURL
	}
	if c.History.Capacity <= 0 {
		c.History.Capacity = def.History.Capacity
	}
}
