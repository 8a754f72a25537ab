package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			JWTSecret: "a-perfectly-long-development-secret-key",
			Port:      "8375",
			Env:       "development",
		}
	}

	t.Run("valid development config", func(t *testing.T) {
		require.NoError(t, base().Validate())
	})

	t.Run("missing port", func(t *testing.T) {
		cfg := base()
		cfg.Port = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		cfg := base()
		cfg.JWTSecret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("production rejects default secret", func(t *testing.T) {
		cfg := base()
		cfg.Env = "production"
		cfg.JWTSecret = "your-secret-key-change-in-production"
		assert.Error(t, cfg.Validate())
	})

	t.Run("production rejects short secret", func(t *testing.T) {
		cfg := base()
		cfg.Env = "production"
		cfg.JWTSecret = "short"
		assert.Error(t, cfg.Validate())
	})

	t.Run("production rejects weak db password", func(t *testing.T) {
		cfg := base()
		cfg.Env = "production"
		cfg.DBPassword = "password"
		assert.Error(t, cfg.Validate())
	})

	t.Run("production accepts hardened config", func(t *testing.T) {
		cfg := base()
		cfg.Env = "production"
		cfg.DBPassword = "genuinely-strong-password"
		cfg.DBSSLMode = "require"
		require.NoError(t, cfg.Validate())
	})
}
