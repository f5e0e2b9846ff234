package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/andresousadotpt/keynorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(content), 0644))
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "us", cfg.Layout)
	assert.False(t, cfg.Forward)
	assert.Empty(t, cfg.MuteKeys)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `config_version: 1
log_level: debug
layout: layouts/custom.yml
forward: true
grab: true
mute_keys: [f1, capslock]
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.ConfigVersion)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Forward)
	assert.True(t, cfg.Grab)
	assert.Equal(t, []string{"f1", "capslock"}, cfg.MuteKeys)
}

func TestMuteSet(t *testing.T) {
	cfg := &Config{MuteKeys: []string{"f1", "a", "space"}}
	set, err := cfg.MuteSet()
	require.NoError(t, err)
	assert.True(t, set[keynorm.Codes["f1"]])
	assert.True(t, set[keynorm.Code('A')])
	assert.True(t, set[keynorm.KeySpace])
	assert.False(t, set[keynorm.KeyEnter])

	cfg = &Config{MuteKeys: []string{"notakey"}}
	_, err = cfg.MuteSet()
	assert.ErrorContains(t, err, "unknown key name")
}

func TestResolveLayout(t *testing.T) {
	dir := t.TempDir()

	cfg := &Config{Layout: "us"}
	l, err := cfg.ResolveLayout(dir)
	require.NoError(t, err)
	assert.Equal(t, "us", l.Name())

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "layouts"), 0755))
	custom := "name: swapped\nkeys:\n  \"2\": {normal: \"2\", shifted: \"\\\"\"}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "layouts", "swapped.yml"), []byte(custom), 0644))

	cfg = &Config{Layout: "layouts/swapped.yml"}
	l, err = cfg.ResolveLayout(dir)
	require.NoError(t, err)
	assert.Equal(t, "swapped", l.Name())
	assert.Equal(t, '"', l.Char(keynorm.Code('2'), true))
}

func TestMigrateRenamesMutedKey(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `# daemon settings
log_level: info
muted: [f1]
`)

	require.NoError(t, migrateConfig(dir))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, latestConfigVersion, cfg.ConfigVersion)
	assert.Equal(t, []string{"f1"}, cfg.MuteKeys)

	// Comments survive the rewrite, and the original is backed up.
	data, err := os.ReadFile(filepath.Join(dir, "config.yml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "# daemon settings")
	assert.Contains(t, string(data), "mute_keys")
	assert.NotContains(t, string(data), "muted:")
	_, err = os.Stat(filepath.Join(dir, "config.yml.bak"))
	assert.NoError(t, err)
}

func TestMigrateUpToDate(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config_version: 1\nmute_keys: [f1]\n")

	require.NoError(t, migrateConfig(dir))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"f1"}, cfg.MuteKeys)
}

func TestSetConfigVersionCreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	require.NoError(t, setConfigVersion(path, 1))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.ConfigVersion)
}
