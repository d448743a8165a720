package config_test

import (
	"os"
	"testing"

	"villagecore/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"GAME_SPEED", "MAX_BUILD_QUEUE", "PORT", "ADMIN_PORT", "LOG_LEVEL"} {
		os.Unsetenv(key)
	}

	cfg := config.Load()
	assert.Equal(t, 1.0, cfg.GameSpeed)
	assert.Equal(t, 2, cfg.MaxBuildQueue)
	assert.Equal(t, "3001", cfg.ServerPort)
	assert.Equal(t, "3002", cfg.AdminPort)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadReadsEnvOverrides(t *testing.T) {
	t.Setenv("GAME_SPEED", "2.5")
	t.Setenv("MAX_BUILD_QUEUE", "5")
	t.Setenv("PORT", "8080")
	t.Setenv("ADMIN_PORT", "8081")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := config.Load()
	assert.Equal(t, 2.5, cfg.GameSpeed)
	assert.Equal(t, 5, cfg.MaxBuildQueue)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "8081", cfg.AdminPort)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadFallsBackOnUnparsableNumbers(t *testing.T) {
	t.Setenv("GAME_SPEED", "not-a-number")
	t.Setenv("MAX_BUILD_QUEUE", "not-a-number")

	cfg := config.Load()
	assert.Equal(t, 1.0, cfg.GameSpeed)
	assert.Equal(t, 2, cfg.MaxBuildQueue)
}
