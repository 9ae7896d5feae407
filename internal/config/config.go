package config

import (
	"os"
	"strconv"
)

// Config holds application configuration
type Config struct {
	Env             string
	LogLevel        string
	Timezone        string // IANA name; empty means the host zone
	SettingsPath    string
	MaxRangeDays    int // upper bound callers enforce on generation ranges
	DefaultCapacity int
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Env:             getEnv("ENV", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		Timezone:        getEnv("TIMEZONE", ""),
		SettingsPath:    getEnv("SETTINGS_PATH", "settings.yaml"),
		MaxRangeDays:    getEnvAsInt("MAX_RANGE_DAYS", 90),
		DefaultCapacity: getEnvAsInt("DEFAULT_CAPACITY", 1),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
