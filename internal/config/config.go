// Package config assembles process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/abhisek/skillgauge/internal/llm"
)

// Config holds all configuration for skillgauge.
type Config struct {
	Server ServerConfig
	Oracle llm.Config
	Store  StoreConfig
	Roles  RolesConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string
	Port            int
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// StoreConfig holds the oracle event log configuration.
type StoreConfig struct {
	// Path is the SQLite database file. Empty means use the default
	// XDG data path.
	Path string
}

// RolesConfig holds the role → skills table configuration.
type RolesConfig struct {
	// Path is an optional YAML file; when empty, no role table is loaded
	// and requests must carry their skills explicitly.
	Path string
}

// Load builds the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SKILLGAUGE_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SKILLGAUGE_PORT", 8080),
			RequestTimeout:  getEnvAsDuration("SKILLGAUGE_REQUEST_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getEnvAsDuration("SKILLGAUGE_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Oracle: llm.ConfigFromEnv(),
		Store: StoreConfig{
			Path: getEnv("SKILLGAUGE_DB", ""),
		},
		Roles: RolesConfig{
			Path: getEnv("SKILLGAUGE_ROLES_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
