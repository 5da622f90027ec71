package syslog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, LevelInfo, cfg.ConsoleLevel)
	assert.Equal(t, LevelNone, cfg.FileLevel)
	assert.Equal(t, "%f.log", cfg.FileName)
	assert.Equal(t, NoLimit, cfg.MaxFileSize)
	assert.Equal(t, NoLimit, cfg.MaxFiles)
	assert.False(t, cfg.Compression)
	assert.Equal(t, "gzip", cfg.CompressionCodec)
	assert.Equal(t, "stdout", cfg.ConsoleTarget)
	assert.NoError(t, cfg.Validate())

	cfg.FileName = "changed"
	assert.Equal(t, "%f.log", DefaultConfig().FileName, "defaults are copied")
}

func TestConfigClone(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Header = "h"

	clone := cfg.Clone()
	clone.Header = "other"

	assert.Equal(t, "h", cfg.Header)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"console level high", func(c *Config) { c.ConsoleLevel = 7 }, "console_level out of range"},
		{"file level negative", func(c *Config) { c.FileLevel = -1 }, "file_level out of range"},
		{"empty file name", func(c *Config) { c.FileName = " " }, "file_name cannot be empty"},
		{"negative size", func(c *Config) { c.MaxFileSize = -1 }, "file limits cannot be negative"},
		{"negative count", func(c *Config) { c.MaxFiles = -1 }, "file limits cannot be negative"},
		{"codec", func(c *Config) { c.CompressionCodec = "lz4" }, "invalid compression_codec"},
		{"console target", func(c *Config) { c.ConsoleTarget = "file" }, "invalid console_target"},
		{"console color", func(c *Config) { c.ConsoleColor = "rainbow" }, "invalid console_color"},
		{"stack depth", func(c *Config) { c.StackTraceDepth = 0 }, "stack_trace_depth must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	t.Run("all errors reported", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ConsoleTarget = "file"
		cfg.ConsoleColor = "rainbow"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "console_target")
		assert.Contains(t, err.Error(), "console_color")
	})
}

func TestNewConfigFromDefaults(t *testing.T) {
	cfg, err := NewConfigFromDefaults(map[string]any{
		"file_level":    "debug",
		"console_level": 2,
		"file_name":     "svc-%f.log",
		"max_files":     int64(4),
		"compression":   true,
	})
	require.NoError(t, err)

	assert.Equal(t, LevelDebug, cfg.FileLevel)
	assert.Equal(t, LevelError, cfg.ConsoleLevel)
	assert.Equal(t, "svc-%f.log", cfg.FileName)
	assert.Equal(t, int64(4), cfg.MaxFiles)
	assert.True(t, cfg.Compression)

	_, err = NewConfigFromDefaults(map[string]any{"nope": 1})
	assert.Error(t, err)

	_, err = NewConfigFromDefaults(map[string]any{"compression": "yes"})
	assert.Error(t, err)

	_, err = NewConfigFromDefaults(map[string]any{"file_level": "loud"})
	assert.ErrorIs(t, err, ErrUnknownLevel)
}

func TestNewConfigFromFile(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := NewConfigFromFile(filepath.Join(t.TempDir(), "absent.toml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("values from log table", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "log.toml")
		content := `
[log]
console_level = 5
file_level = 4
file_name = "app-%f.log"
max_file_size = 1048576
max_files = 7
compression = true
compression_codec = "zstd"
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		cfg, err := NewConfigFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, LevelDebug, cfg.ConsoleLevel)
		assert.Equal(t, LevelInfo, cfg.FileLevel)
		assert.Equal(t, "app-%f.log", cfg.FileName)
		assert.Equal(t, int64(1048576), cfg.MaxFileSize)
		assert.Equal(t, int64(7), cfg.MaxFiles)
		assert.True(t, cfg.Compression)
		assert.Equal(t, "zstd", cfg.CompressionCodec)
	})
}

func TestApplyOverride(t *testing.T) {
	logger, _, _ := newTestLogger(t)

	require.NoError(t, logger.ApplyOverride(
		"console_level=warnings",
		"file_level=5",
		"max_file_size=2048",
		"compression=true",
		"compression_codec=zstd",
		"header=# header",
	))

	cfg := logger.Config()
	assert.Equal(t, LevelWarn, cfg.ConsoleLevel)
	assert.Equal(t, LevelDebug, cfg.FileLevel)
	assert.Equal(t, int64(2048), cfg.MaxFileSize)
	assert.True(t, cfg.Compression)
	assert.Equal(t, "zstd", cfg.CompressionCodec)
	assert.Equal(t, "# header", cfg.Header)
	assert.Equal(t, LevelWarn, logger.ConsoleLogLevel())

	t.Run("errors are collected", func(t *testing.T) {
		err := logger.ApplyOverride("bogus=1", "max_files=many", "noequals")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "multiple configuration errors")
		assert.Contains(t, err.Error(), "unknown configuration key 'bogus'")
		assert.Contains(t, err.Error(), "max_files")
		assert.Contains(t, err.Error(), "expected key=value")
		assert.Equal(t, int64(2048), logger.Config().MaxFileSize, "nothing applied on error")
	})

	t.Run("invalid result rejected", func(t *testing.T) {
		err := logger.ApplyOverride("console_target=printer")
		require.Error(t, err)
		assert.Equal(t, "stdout", logger.Config().ConsoleTarget)
	})
}

func TestApplyConfigAnnouncesChanges(t *testing.T) {
	logger, fsys, console := newTestLogger(t)
	require.NoError(t, logger.SetConsoleLogLevel(LevelDebug))
	console.Reset()

	cfg := logger.Config()
	cfg.FileName = "logs/app.log"
	cfg.FileLevel = LevelInfo
	cfg.MaxFiles = 3
	require.NoError(t, logger.ApplyConfig(cfg))

	out := console.String()
	assert.Contains(t, out, "File log name set to: logs/app.log")
	assert.Contains(t, out, "Maximum number of log files set to: 3")
	assert.Contains(t, out, "File logging level set to: Informational")
	assert.NotContains(t, out, "Console logging level", "unchanged settings stay quiet")

	require.NoError(t, logger.Logf(LevelInfo, "to file"))
	assert.Contains(t, readFile(t, fsys, "logs/app.log"), "] to file\n")

	assert.Error(t, logger.ApplyConfig(nil))
}
