package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"CASCAL_ENV", "CASCAL_LOG_LEVEL", "CASCAL_DB_DRIVER", "CASCAL_SQLITE_PATH",
		"DATABASE_URL", "CASCAL_DB_MAX_CONNS", "CASCAL_AMQP_URL",
		"CASCAL_POLICY", "CASCAL_MAX_CASCADE", "CASCAL_STICKY_DIRECTION",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Empty(t, cfg.SQLitePath)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, 4, cfg.MaxConns)
	assert.Empty(t, cfg.AMQPURL)
	assert.Equal(t, "forward", cfg.Policy)
	assert.Equal(t, 0, cfg.MaxCascade)
	assert.True(t, cfg.StickyDirection)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("CASCAL_ENV", "production")
	t.Setenv("CASCAL_LOG_LEVEL", "debug")
	t.Setenv("CASCAL_DB_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/cascal")
	t.Setenv("CASCAL_DB_MAX_CONNS", "16")
	t.Setenv("CASCAL_AMQP_URL", "amqp://localhost")
	t.Setenv("CASCAL_POLICY", "balanced")
	t.Setenv("CASCAL_MAX_CASCADE", "25")
	t.Setenv("CASCAL_STICKY_DIRECTION", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.AppEnv)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "postgres://localhost/cascal", cfg.DatabaseURL)
	assert.Equal(t, 16, cfg.MaxConns)
	assert.Equal(t, "amqp://localhost", cfg.AMQPURL)
	assert.Equal(t, "balanced", cfg.Policy)
	assert.Equal(t, 25, cfg.MaxCascade)
	assert.False(t, cfg.StickyDirection)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("CASCAL_DB_MAX_CONNS", "not-a-number")
	t.Setenv("CASCAL_MAX_CASCADE", "")
	t.Setenv("CASCAL_STICKY_DIRECTION", "maybe")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.MaxConns)
	assert.Equal(t, 0, cfg.MaxCascade)
	assert.True(t, cfg.StickyDirection)
}

func TestEnvironmentChecks(t *testing.T) {
	dev := &Config{AppEnv: "development"}
	assert.True(t, dev.IsDevelopment())
	assert.False(t, dev.IsProduction())

	prod := &Config{AppEnv: "production"}
	assert.True(t, prod.IsProduction())
	assert.False(t, prod.IsDevelopment())
}
