package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "invoices.db", cfg.DBDSN)
	assert.Equal(t, "cookie", cfg.SessionStore)
	assert.Equal(t, 86400, cfg.SessionMaxAge)
	assert.True(t, cfg.SeedSampleData)
	assert.False(t, cfg.LegacyPasswordDigest)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoad_Production(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("SESSION_STORE", "memory")
	t.Setenv("SEED_SAMPLE_DATA", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "memory", cfg.SessionStore)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.SeedSampleData)
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("SESSION_MAX_AGE", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET is not set")
	assert.Contains(t, err.Error(), `DB_DRIVER "mysql" is not supported`)
	assert.Contains(t, err.Error(), "SESSION_MAX_AGE")
}
