package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allConfigKeys lists every ADMINPANEL_ env var that Load() reads.
var allConfigKeys = []string{
	"ADMINPANEL_LISTEN_ADDR",
	"ADMINPANEL_DB_PATH",
	"ADMINPANEL_SECRET_KEY",
	"ADMINPANEL_TOKEN_TTL",
	"ADMINPANEL_LOADING_DELAY",
	"ADMINPANEL_REVALIDATE_INTERVAL",
	"ADMINPANEL_SECURE_COOKIES",
	"ADMINPANEL_GITHUB_TOKEN",
}

// isolateConfigEnv unsets every ADMINPANEL_ variable for the duration of the
// test so values from the host shell do not leak in.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func TestLoad_Success(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("ADMINPANEL_LISTEN_ADDR", "0.0.0.0:9090")
	t.Setenv("ADMINPANEL_DB_PATH", "/tmp/test.db")
	t.Setenv("ADMINPANEL_SECRET_KEY", "s3cret")
	t.Setenv("ADMINPANEL_TOKEN_TTL", "2h")
	t.Setenv("ADMINPANEL_LOADING_DELAY", "250ms")
	t.Setenv("ADMINPANEL_REVALIDATE_INTERVAL", "30s")
	t.Setenv("ADMINPANEL_SECURE_COOKIES", "true")
	t.Setenv("ADMINPANEL_GITHUB_TOKEN", "ghp_test123")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddr)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, "s3cret", cfg.SecretKey)
	assert.False(t, cfg.EphemeralSecret)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 250*time.Millisecond, cfg.LoadingDelay)
	assert.Equal(t, 30*time.Second, cfg.RevalidateInterval)
	assert.True(t, cfg.SecureCookies)
	assert.True(t, cfg.HasGitHubToken())
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", cfg.ListenAddr)
	assert.Equal(t, "adminpanel.db", cfg.DBPath)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, time.Second, cfg.LoadingDelay)
	assert.Equal(t, 5*time.Minute, cfg.RevalidateInterval)
	assert.False(t, cfg.SecureCookies)
	assert.False(t, cfg.HasGitHubToken())
}

func TestLoad_GeneratesSecret(t *testing.T) {
	isolateConfigEnv(t)

	first, err := Load()
	require.NoError(t, err)
	second, err := Load()
	require.NoError(t, err)

	assert.True(t, first.EphemeralSecret)
	assert.Len(t, first.SecretKey, 64)
	assert.NotEqual(t, first.SecretKey, second.SecretKey)
}

func TestLoad_InvalidDuration(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("ADMINPANEL_REVALIDATE_INTERVAL", "not-a-duration")

	_, err := Load()

	assert.Error(t, err)
}

func TestLoad_NonPositiveDuration(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"ADMINPANEL_TOKEN_TTL", "0s"},
		{"ADMINPANEL_LOADING_DELAY", "-1s"},
		{"ADMINPANEL_REVALIDATE_INTERVAL", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			isolateConfigEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoad_InvalidBool(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("ADMINPANEL_SECURE_COOKIES", "maybe")

	_, err := Load()

	assert.Error(t, err)
}
