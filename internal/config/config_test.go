package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func noEnvFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"DATABASE_URL", "MONGODB_URI", "DATABASE_NAME", "MONGODB_DATABASE", "PORT", "STORE_BACKEND", "REDIS_HOST", "RATE_LIMIT_ENABLED", "RATE_LIMIT_RPS", "CORS_ALLOW_ORIGINS"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := LoadConfig(noEnvFile(t))
	require.NoError(t, err)

	require.Equal(t, "8000", cfg.Server.Port)
	require.Equal(t, "0.0.0.0:8000", cfg.Server.Addr())
	require.False(t, cfg.Database.Configured())
	require.Equal(t, "shop", cfg.Database.Name)
	require.Equal(t, BackendMongo, cfg.Database.Backend)
	require.Equal(t, 10*time.Second, cfg.Database.Timeout)
	require.Empty(t, cfg.Redis.Addr())
	require.False(t, cfg.RateLimit.Enabled)
	require.Equal(t, 30*time.Second, cfg.Cache.ProductListTTL)
	require.Equal(t, []string{"*"}, cfg.CORS.AllowOrigins)
}

func TestLoadConfig_DatabaseFallbacks(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_NAME", "")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("MONGODB_DATABASE", "legacy")

	cfg, err := LoadConfig(noEnvFile(t))
	require.NoError(t, err)
	require.Equal(t, "mongodb://localhost:27017", cfg.Database.URL)
	require.Equal(t, "legacy", cfg.Database.Name)

	t.Setenv("DATABASE_URL", "mongodb://db:27017")
	t.Setenv("DATABASE_NAME", "christmas")
	cfg, err = LoadConfig(noEnvFile(t))
	require.NoError(t, err)
	require.Equal(t, "mongodb://db:27017", cfg.Database.URL)
	require.Equal(t, "christmas", cfg.Database.Name)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_BACKEND", "Memory")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_USE_REDIS", "true")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "4")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("MONGODB_CONNECT_ATTEMPTS", "0")

	cfg, err := LoadConfig(noEnvFile(t))
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Server.Port)
	require.Equal(t, BackendMemory, cfg.Database.Backend)
	require.Equal(t, "cache:6379", cfg.Redis.Addr())
	require.True(t, cfg.RateLimit.Enabled)
	require.True(t, cfg.RateLimit.UseRedis)
	require.Equal(t, 2.5, cfg.RateLimit.RPS)
	require.Equal(t, 4, cfg.RateLimit.Burst)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowOrigins)
	require.Equal(t, 1, cfg.Database.ConnectAttempts)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	os.Unsetenv("DATABASE_URL")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DATABASE_URL=mongodb://from-file:27017\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("DATABASE_URL") })

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "mongodb://from-file:27017", cfg.Database.URL)
}
