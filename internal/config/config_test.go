package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/zhouzirui/students/backend/internal/service/upstream"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "UPSTREAM_URL", "UPSTREAM_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, upstream.DefaultURL, cfg.Upstream.URL)
	assert.Equal(t, 10*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, zapcore.InfoLevel, cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "127.0.0.1:9000")
	t.Setenv("UPSTREAM_URL", "http://localhost:3000/users")
	t.Setenv("UPSTREAM_TIMEOUT", "2s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "Console")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, "http://localhost:3000/users", cfg.Upstream.URL)
	assert.Equal(t, 2*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, zapcore.DebugLevel, cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadPortNumber(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "3001")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":3001", cfg.Server.Addr)
}

func TestLoadInvalid(t *testing.T) {
	cases := map[string]string{
		"PORT":             "80 80",
		"UPSTREAM_URL":     "ftp://example.org/users",
		"UPSTREAM_TIMEOUT": "soon",
		"LOG_LEVEL":        "loud",
		"LOG_FORMAT":       "xml",
	}

	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoadNonPositiveTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("UPSTREAM_TIMEOUT", "0s")

	_, err := Load()
	assert.ErrorContains(t, err, "UPSTREAM_TIMEOUT")
}
