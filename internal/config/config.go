package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Monitor MonitorConfig
	Ballot  BallotConfig
	Logging LoggingConfig
}

// MonitorConfig holds configuration for the read-only results monitor
type MonitorConfig struct {
	Enabled bool
	Port    string
	Host    string
	Env     string // "development" or "production"
}

// BallotConfig holds ballot set-up configuration
type BallotConfig struct {
	SeedCandidates []string
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // "pretty", "json" or "text"
}

// Load loads configuration from environment variables with defaults.
// Variables from envFiles are applied first without overriding anything
// already set in the environment; missing files are ignored.
func Load(envFiles ...string) (*Config, error) {
	for _, file := range envFiles {
		if file == "" {
			continue
		}
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return &Config{
		Monitor: MonitorConfig{
			Enabled: getEnvBool("MONITOR_ENABLED", false),
			Port:    getEnv("PORT", "8080"),
			Host:    getEnv("HOST", "127.0.0.1"),
			Env:     getEnv("ENV", "development"),
		},
		Ballot: BallotConfig{
			SeedCandidates: getEnvList("SEED_CANDIDATES"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "warn"),
			Format: getEnv("LOG_FORMAT", "pretty"),
		},
	}, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Monitor.Env == "development"
}

// GetAddr returns the monitor address in host:port format
func (c *Config) GetAddr() string {
	return c.Monitor.Host + ":" + c.Monitor.Port
}

// getEnv returns an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvBool returns an environment variable as a bool or a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvList splits a comma-separated variable, dropping blank entries
func getEnvList(key string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return nil
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
