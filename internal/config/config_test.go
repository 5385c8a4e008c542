package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"CONFIG_FILE", "DATABASE_URL", "DATABASE_MAX_CONNS", "REDIS_URL", "PORT", "RATE_PROVIDER", "PATTERN_CACHE_SIZE", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(k, "")
	}
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 256, cfg.PatternCacheSize)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "port: \"9000\"\nredis_url: redis://cache:6379/0\npattern_cache_size: 8\nlogging:\n  level: debug\n  format: console\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "9100")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_MAX_CONNS", "9")
	t.Setenv("REDIS_URL", "")
	t.Setenv("RATE_PROVIDER", "")
	t.Setenv("PATTERN_CACHE_SIZE", "not-a-number")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9100", cfg.Port)
	assert.Equal(t, "redis://cache:6379/0", cfg.RedisURL)
	assert.Equal(t, 8, cfg.PatternCacheSize)
	assert.Equal(t, int32(9), cfg.DatabaseMaxConns)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "stderr", cfg.Logging.Output)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
