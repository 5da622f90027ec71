package syslog

import (
	"bytes"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	fsys := afero.NewMemMapFs()
	console := &bytes.Buffer{}

	logger, err := NewBuilder().
		Options(
			WithFileSystem(fsys),
			WithConsoleWriter(console),
			WithClock(func() time.Time { return testTime }),
		).
		ConsoleLevelString("warnings").
		FileLevelString("debug").
		FileName("logs/built.log").
		MaxFileSizeKB(4).
		MaxFiles(5).
		Compression(true).
		CompressionCodec("zstd").
		Header("# built").
		IncludeSourceLocation(true).
		StackTraceDepth(8).
		Build()
	require.NoError(t, err)
	t.Cleanup(func() { _ = logger.Shutdown() })

	cfg := logger.Config()
	assert.Equal(t, LevelWarn, cfg.ConsoleLevel)
	assert.Equal(t, LevelDebug, cfg.FileLevel)
	assert.Equal(t, int64(4*sizeMultiplier), cfg.MaxFileSize)
	assert.Equal(t, int64(5), cfg.MaxFiles)
	assert.Equal(t, "zstd", cfg.CompressionCodec)
	assert.Equal(t, int64(8), cfg.StackTraceDepth)

	require.NoError(t, logger.Logf(LevelInfo, "file only"))
	content := readFile(t, fsys, "logs/built.log")
	assert.Contains(t, content, "# built\n")
	assert.Contains(t, content, "file only\n")
	assert.NotContains(t, console.String(), "file only")
}

func TestBuilderMaxFileSizeMB(t *testing.T) {
	b := NewBuilder().MaxFileSizeMB(2)
	assert.Equal(t, int64(2*sizeMultiplier*sizeMultiplier), b.cfg.MaxFileSize)
}

func TestBuilderErrors(t *testing.T) {
	t.Run("unknown level keyword", func(t *testing.T) {
		_, err := NewBuilder().FileLevelString("chatty").ConsoleLevelString("info").Build()
		assert.ErrorIs(t, err, ErrUnknownLevel)
	})

	t.Run("invalid configuration", func(t *testing.T) {
		_, err := NewBuilder().
			Options(WithConsoleWriter(&bytes.Buffer{})).
			ConsoleColor("rainbow").
			Build()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "console_color")
	})
}
