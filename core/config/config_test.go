package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "localhost:9000", cfg.Storage.Endpoint)
	assert.True(t, cfg.Storage.UseSSL)
	assert.Equal(t, 30, cfg.Storage.TimeoutSeconds)
	assert.True(t, cfg.Splice.BlankLineBefore)
	assert.False(t, cfg.Splice.TrailingNewline)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("STORAGE_ENDPOINT", "minio.internal:9000")
	t.Setenv("STORAGE_USE_SSL", "false")
	t.Setenv("SPLICE_TRAILING_NEWLINE", "true")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "minio.internal:9000", cfg.Storage.Endpoint)
	assert.False(t, cfg.Storage.UseSSL)
	assert.True(t, cfg.Splice.TrailingNewline)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SPLICE_BLANK_LINE_BEFORE=false\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("SPLICE_BLANK_LINE_BEFORE") })

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.False(t, cfg.Splice.BlankLineBefore)
}
