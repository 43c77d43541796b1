package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "orderdesk", cfg.Service.Name)
	assert.Equal(t, "8080", cfg.Service.Port)
	assert.Equal(t, time.Minute, cfg.Redis.TTL)
	assert.Equal(t, "example_orders.json", cfg.Seed.File)
	assert.NotEmpty(t, cfg.Database.URL)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://test@db:5432/test")
	t.Setenv("REDIS_ADDR", "cache:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Service.Port)
	assert.Equal(t, "postgres://test@db:5432/test", cfg.Database.URL)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
}
