package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingPasswordFails(t *testing.T) {
	t.Setenv("APP_PASSWORD", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APP_PASSWORD")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_PASSWORD", "hunter2")
	t.Setenv("SERVER_HOST", "")
	t.Setenv("SERVER_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "hunter2", cfg.Password)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PASSWORD", "hunter2")
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("SERVER_PORT", "9999")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", cfg.Addr())
}
