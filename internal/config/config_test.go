package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classlog/classlog/internal/config"
)

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("CLASSLOG_SECRET_KEY", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CLASSLOG_SECRET_KEY", "unit-test-secret")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.ListenAddr)
	assert.Equal(t, 30*time.Minute, cfg.GetTokenTTL())
	assert.Equal(t, []byte("unit-test-secret"), cfg.GetSigningKey())
	assert.Equal(t, int64(10<<20), cfg.MaxUploadSize)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CLASSLOG_SECRET_KEY", "unit-test-secret")
	t.Setenv("CLASSLOG_LISTEN_ADDR", ":9001")
	t.Setenv("CLASSLOG_TOKEN_TTL", "2h")
	t.Setenv("CLASSLOG_MAX_UPLOAD_SIZE", "1048576")
	t.Setenv("CLASSLOG_ENVIRONMENT", "production")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9001", cfg.ListenAddr)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, int64(1<<20), cfg.MaxUploadSize)
	assert.Equal(t, "production", cfg.Environment)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("CLASSLOG_SECRET_KEY", "unit-test-secret")

	t.Run("Bad TTL", func(t *testing.T) {
		t.Setenv("CLASSLOG_TOKEN_TTL", "not-a-duration")
		_, err := config.Load()
		assert.Error(t, err)
	})

	t.Run("Bad upload size", func(t *testing.T) {
		t.Setenv("CLASSLOG_MAX_UPLOAD_SIZE", "lots")
		_, err := config.Load()
		assert.Error(t, err)
	})
}
