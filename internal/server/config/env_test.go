package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseEnv(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("variables override defaults", func(t *testing.T) {
		os.Args = []string{"testbin"}
		t.Setenv(EnvSecretKey, "env-secret")
		t.Setenv(EnvTokenValidity, "7d")
		t.Setenv(EnvCORSAllowOrigins, "https://a.example, https://b.example,")
		t.Setenv(EnvS3Bucket, "avatars")

		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseEnv(cfg))

		assert.Equal(t, "env-secret", cfg.SecretKey)
		assert.Equal(t, 7*24*time.Hour, cfg.TokenValidityDuration)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowOrigins)
		assert.True(t, cfg.StorageEnabled())
	})

	t.Run("dotenv file from flag", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "server.env")
		require.NoError(t, os.WriteFile(path, []byte("ALUMNILINK_LOG_LEVEL=debug\n"), 0o600))
		os.Args = []string{"testbin", "-env", path}
		t.Setenv(EnvLogLevel, "")
		require.NoError(t, os.Unsetenv(EnvLogLevel))

		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseEnv(cfg))

		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("bad duration", func(t *testing.T) {
		os.Args = []string{"testbin"}
		t.Setenv(EnvTokenValidity, "forever")

		cfg := &Config{}
		require.Error(t, parseEnv(cfg))
	})
}
