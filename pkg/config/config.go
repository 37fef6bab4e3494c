// Package config loads application configuration from the environment.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv   string
	LogLevel string

	// Database
	DBDriver    string // "sqlite" or "postgres"
	SQLitePath  string
	DatabaseURL string
	MaxConns    int

	// Messaging; empty means in-process bus only
	AMQPURL string

	// Scheduler defaults
	Policy          string
	MaxCascade      int
	StickyDirection bool
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:   getEnv("CASCAL_ENV", "development"),
		LogLevel: getEnv("CASCAL_LOG_LEVEL", "info"),

		DBDriver:    getEnv("CASCAL_DB_DRIVER", "sqlite"),
		SQLitePath:  getEnv("CASCAL_SQLITE_PATH", ""),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		MaxConns:    getIntEnv("CASCAL_DB_MAX_CONNS", 4),

		AMQPURL: getEnv("CASCAL_AMQP_URL", ""),

		Policy:          getEnv("CASCAL_POLICY", "forward"),
		MaxCascade:      getIntEnv("CASCAL_MAX_CASCADE", 0),
		StickyDirection: getBoolEnv("CASCAL_STICKY_DIRECTION", true),
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
