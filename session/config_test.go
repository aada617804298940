package session

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigTOML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "murust.toml", `
prompt = ">> "
color = "never"
history = 8
store = "state/snapshots.db"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ">> ", cfg.Prompt)
	assert.Equal(t, ColorNever, cfg.Color)
	assert.Equal(t, 8, cfg.History)
	assert.Equal(t, 256, cfg.CacheSize, "unset keys keep their defaults")
	assert.True(t, cfg.Banner)
	assert.Equal(t, filepath.Join(dir, "state", "snapshots.db"), cfg.Store)
}

func TestLoadConfigYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "murust.yaml", "color: always\nbanner: false\nstore: \":memory:\"\ncache_size: 4\n")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ColorAlways, cfg.Color)
	assert.False(t, cfg.Banner)
	assert.Equal(t, ":memory:", cfg.Store)
	assert.Equal(t, 4, cfg.CacheSize)
	assert.Equal(t, "µRust # ", cfg.Prompt)

	empty := writeFile(t, dir, "empty.yml", "")
	cfg, err = LoadConfig(empty)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfig(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadConfig(writeFile(t, dir, "murust.json", "{}"))
	assert.ErrorContains(t, err, "unsupported format")

	_, err = LoadConfig(writeFile(t, dir, "bad.toml", `color = "sometimes"`))
	assert.ErrorContains(t, err, "color must be one of")

	_, err = LoadConfig(writeFile(t, dir, "neg.yaml", "history: -1\n"))
	assert.ErrorContains(t, err, "history must not be negative")

	_, err = LoadConfig(writeFile(t, dir, "broken.toml", "prompt = "))
	assert.Error(t, err)
}

func TestUseColor(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	assert.False(t, cfg.UseColor(&buf), "auto is off for non-files")
	cfg.Color = ColorAlways
	assert.True(t, cfg.UseColor(&buf))
	cfg.Color = ColorNever
	assert.False(t, cfg.UseColor(os.Stdout))
}
