package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SCEWIN_PATH", "")
	t.Setenv("NVRAM_FILE", "")
	t.Setenv("PRESET_FILE", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("SCEWIN_TIMEOUT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Contains(t, cfg.ScewinPath, DefaultScewinExe)
	assert.Equal(t, DefaultNvramName, cfg.NvramFile)
	assert.Empty(t, cfg.PresetFile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.ScewinTimeout)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SCEWIN_PATH", "/opt/ami/SCEWIN_64.exe")
	t.Setenv("NVRAM_FILE", "dump.txt")
	t.Setenv("PRESET_FILE", "my_presets.toml")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SCEWIN_TIMEOUT", "90s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/opt/ami/SCEWIN_64.exe", cfg.ScewinPath)
	assert.Equal(t, "dump.txt", cfg.NvramFile)
	assert.Equal(t, "my_presets.toml", cfg.PresetFile)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 90*time.Second, cfg.ScewinTimeout)
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	t.Setenv("SCEWIN_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}
