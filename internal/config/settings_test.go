package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsDefaultsWhenFileMissing(t *testing.T) {
	settings := LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Equal(t, "> ", settings.Prompt)
	assert.False(t, settings.ShowStats)
}

func TestLoadSettingsReadsYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prompt: \"lox> \"\nshow_stats: true\n"), 0o644))

	settings := LoadSettings(path)
	assert.Equal(t, "lox> ", settings.Prompt)
	assert.True(t, settings.ShowStats)
}

func TestLoadSettingsEnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prompt: \"lox> \"\n"), 0o644))

	t.Setenv("LOX_PROMPT", "$ ")
	settings := LoadSettings(path)
	assert.Equal(t, "$ ", settings.Prompt)
}

func TestLoadSettingsMalformedFileFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prompt: [unterminated"), 0o644))

	settings := LoadSettings(path)
	assert.Equal(t, "> ", settings.Prompt)
}
