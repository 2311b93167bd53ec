package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "storefront", cfg.ServiceName)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, ModeHTTP, cfg.Mode)
}

func TestLoadRejectsUnknownMode(t *testing.T) {
	t.Setenv("MODE", "batch")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadCLIMode(t *testing.T) {
	t.Setenv("MODE", "cli")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ModeCLI, cfg.Mode)
}
