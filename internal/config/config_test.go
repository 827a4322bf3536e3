package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultAppConfig(), cfg)
}

func TestLoadFromMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vitals.yaml")
	require.NoError(t, os.WriteFile(path, []byte("update_ms: 500\nsort_key: memory\nreverse: true\n"), 0o644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.UpdateMS)
	assert.Equal(t, "memory", cfg.SortKey)
	assert.True(t, cfg.Reverse)
	assert.Equal(t, "default", cfg.Theme) // untouched key keeps its default
}

func TestLoadFromClampsUpdateMS(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vitals.yaml")
	require.NoError(t, os.WriteFile(path, []byte("update_ms: 0\n"), 0o644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.UpdateMS)
}

func TestLoadFromRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vitals.yaml")
	require.NoError(t, os.WriteFile(path, []byte("update_ms: [unterminated\n"), 0o644))

	_, err := LoadFrom(path)
	require.Error(t, err)
}
