package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, StoreMemory, cfg.Store.Driver)
	assert.True(t, cfg.Store.Seed)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "speed_cameras", cfg.Database.DBName)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, 60*time.Second, cfg.Redis.TTL)
	assert.Equal(t, "*", cfg.CORS.AllowedOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GIN_MODE", "release")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("SEED_SAMPLE_DATA", "false")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/cams")
	t.Setenv("REDIS_URL", "redis://cache:6379/0")
	t.Setenv("CACHE_TTL", "5m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, StorePostgres, cfg.Store.Driver)
	assert.False(t, cfg.Store.Seed)
	assert.Equal(t, "postgres://u:p@db:5432/cams", cfg.Database.DSN())
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, "https://a.example,https://b.example", cfg.CORS.AllowedOrigins)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestDatabaseConfig_DSNFromParts(t *testing.T) {
	db := DatabaseConfig{
		Host:     "db.example.com",
		Port:     "5433",
		User:     "admin",
		Password: "secret",
		DBName:   "cams",
		SSLMode:  "require",
	}

	assert.Equal(t, "host=db.example.com user=admin password=secret dbname=cams port=5433 sslmode=require", db.DSN())
}

func TestLoad_InvalidStoreDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_DRIVER")
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeCacheTTL(t *testing.T) {
	t.Setenv("CACHE_TTL", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CACHE_TTL")
}

func TestLoad_InvalidSeedFlag(t *testing.T) {
	t.Setenv("SEED_SAMPLE_DATA", "sometimes")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SEED_SAMPLE_DATA")
}

func TestGetEnv(t *testing.T) {
	t.Setenv("TEST_CONFIG_VAR", "")
	assert.Equal(t, "fallback", getEnv("TEST_CONFIG_VAR", "fallback"))

	t.Setenv("TEST_CONFIG_VAR", "custom")
	assert.Equal(t, "custom", getEnv("TEST_CONFIG_VAR", "fallback"))
}
