package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "settings.yaml", cfg.SettingsPath)
	assert.Equal(t, 90, cfg.MaxRangeDays)
	assert.Equal(t, 1, cfg.DefaultCapacity)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TIMEZONE", "America/Chicago")
	t.Setenv("MAX_RANGE_DAYS", "30")

	cfg := Load()

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "America/Chicago", cfg.Timezone)
	assert.Equal(t, 30, cfg.MaxRangeDays)
}

func TestLoadIgnoresUnparseableInt(t *testing.T) {
	t.Setenv("MAX_RANGE_DAYS", "many")
	assert.Equal(t, 90, Load().MaxRangeDays)
}
