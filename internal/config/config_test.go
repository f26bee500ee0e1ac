package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Parallel()

	cfg := NewDefaultConfig()
	assert.Equal(t, "info", cfg.Logger.LogLevel)
	assert.Equal(t, DefaultMaxNodes, cfg.History.MaxNodes)
	assert.False(t, cfg.History.Ephemeral)
	assert.Equal(t, StatusBarHeight, cfg.Pad.StatusBarHeight)
}

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[logger]
log_level = "debug"

[history]
max_nodes = 25
ephemeral = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	fileCfg, err := loadFromFile(path)
	require.NoError(t, err)

	cfg := NewDefaultConfig()
	cfg.merge(fileCfg)
	assert.Equal(t, "debug", cfg.Logger.LogLevel)
	assert.Equal(t, 25, cfg.History.MaxNodes)
	assert.True(t, cfg.History.Ephemeral)
}

func TestLoadFromMissingFileIsNotAnError(t *testing.T) {
	t.Parallel()

	cfg, err := loadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoadFromBrokenFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[logger\nlog_level="), 0644))

	_, err := loadFromFile(path)
	assert.Error(t, err)
}

func TestValidateResetsInvalidValues(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	cfg.History.MaxNodes = -5
	cfg.Pad.StatusBarHeight = 0
	cfg.validate()

	assert.Equal(t, DefaultMaxNodes, cfg.History.MaxNodes)
	assert.Equal(t, "info", cfg.Logger.LogLevel)
	assert.Equal(t, StatusBarHeight, cfg.Pad.StatusBarHeight)
}
