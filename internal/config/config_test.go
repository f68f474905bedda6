package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "./accounts.db", cfg.DatabasePath)
	assert.Equal(t, "session", cfg.SessionCookieName)
	assert.Equal(t, "s3cret", cfg.ServerSecret)
}

func TestLoadRequiresServerSecret(t *testing.T) {
	t.Setenv("SERVER_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_SECRET", "s3cret")
	t.Setenv("PORT", "9999")
	t.Setenv("SESSION_COOKIE_NAME", "sid")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.ServerPort)
	assert.Equal(t, "sid", cfg.SessionCookieName)
}
