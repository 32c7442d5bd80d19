// Package config loads PairFit client configuration from the environment.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv   string
	LogLevel string

	// Backend
	APIBaseURL  string
	HTTPTimeout time.Duration

	// Local storage
	DataDir       string
	CacheURL      string
	EncryptionKey string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:   getEnv("PAIRFIT_ENV", "development"),
		LogLevel: getEnv("PAIRFIT_LOG_LEVEL", "info"),

		APIBaseURL:  getEnv("PAIRFIT_API_URL", "http://localhost:8001/api"),
		HTTPTimeout: getDurationEnv("PAIRFIT_HTTP_TIMEOUT", 30*time.Second),

		DataDir:       getEnv("PAIRFIT_DATA_DIR", defaultDataDir()),
		CacheURL:      getEnv("PAIRFIT_CACHE_URL", ""),
		EncryptionKey: getEnv("PAIRFIT_ENCRYPTION_KEY", ""),
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

// DatabasePath returns the path of the on-device sqlite database.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "pairfit.db")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pairfit"
	}
	return filepath.Join(home, ".pairfit")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
