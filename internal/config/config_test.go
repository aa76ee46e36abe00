package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultIndent, cfg.Format.Indent)
	assert.False(t, cfg.Format.SkipIdempotence)
	assert.False(t, cfg.Format.TolerateErrors)
	assert.Equal(t, uint64(16*1024*1024), cfg.MaxFileSizeBytes())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zeekfmt.yaml")
	content := "format:\n  indent: \"    \"\n  tolerate_errors: true\n  max_file_size: 1MiB\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "    ", cfg.Format.Indent)
	assert.True(t, cfg.Format.TolerateErrors)
	assert.Equal(t, uint64(1024*1024), cfg.MaxFileSizeBytes())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ZEEKFMT_FORMAT_SKIP_IDEMPOTENCE", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Format.SkipIdempotence)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidateRejectsBadIndent(t *testing.T) {
	cfg := Config{Format: FormatConfig{Indent: "ab", MaxFileSize: DefaultMaxFileSize}}
	require.ErrorIs(t, cfg.Validate(), ErrBadIndent)
}

func TestValidateRejectsBadMaxFileSize(t *testing.T) {
	cfg := Config{Format: FormatConfig{Indent: "\t", MaxFileSize: "lots"}}
	require.ErrorIs(t, cfg.Validate(), ErrBadMaxFileSize)
}

func TestValidateAcceptsEmptyIndent(t *testing.T) {
	cfg := Config{Format: FormatConfig{Indent: "", MaxFileSize: DefaultMaxFileSize}}
	require.NoError(t, cfg.Validate())
}
