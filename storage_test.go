package syslog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// selfLogRecorder collects the diagnostics a FileSink reports.
type selfLogRecorder struct {
	lines []string
}

func (r *selfLogRecorder) log(level int64, format string, args ...any) {
	r.lines = append(r.lines, fmt.Sprintf("%s: %s", LevelKeyword(level), fmt.Sprintf(format, args...)))
}

// newTestFileSink returns a sink on an in-memory filesystem accepting
// info and below, with its diagnostics recorded.
func newTestFileSink(opts ...FileSinkOption) (*FileSink, afero.Fs, *selfLogRecorder) {
	fsys := afero.NewMemMapFs()
	f := NewFileSink(append([]FileSinkOption{WithFs(fsys)}, opts...)...)
	rec := &selfLogRecorder{}
	f.attach(&nestGuard{}, &State{}, rec.log)
	f.SetLevel(LevelInfo)
	return f, fsys, rec
}

func infoEvent(when time.Time, text string) LogEvent {
	return LogEvent{When: when, Level: LevelInfo, Text: text}
}

func listFiles(t *testing.T, fsys afero.Fs, dir string) []string {
	t.Helper()
	entries, err := afero.ReadDir(fsys, dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

func TestFileSinkOpensOnDemand(t *testing.T) {
	f, fsys, rec := newTestFileSink()
	f.SetFileName("logs/app-%f.log")
	defer f.Close()

	assert.Empty(t, f.ActiveFileName())
	f.Log(LogEvent{When: testTime, Level: LevelDebug, Text: "too verbose\n"})
	assert.Empty(t, f.ActiveFileName(), "filtered events do not open a file")

	f.Log(infoEvent(testTime, "hello\n"))
	assert.Equal(t, "logs/app-2024-01-02_03h04m05.log", f.ActiveFileName())
	assert.Equal(t, "hello\n", readFile(t, fsys, f.ActiveFileName()))
	assert.Equal(t, []string{"debug: Created Log file [logs/app-2024-01-02_03h04m05.log]"}, rec.lines)
}

func TestFileSinkDisabledAtLevelNone(t *testing.T) {
	f, fsys, _ := newTestFileSink()
	f.SetLevel(LevelNone)

	f.Log(LogEvent{When: testTime, Level: LevelNone, Text: "x"})
	f.Log(infoEvent(testTime, "x"))

	assert.Empty(t, f.ActiveFileName())
	assert.Empty(t, listFiles(t, fsys, "/"))
}

func TestFileSinkHeader(t *testing.T) {
	f, fsys, _ := newTestFileSink()
	f.SetFileName("app.log")
	f.SetHeader("# service log v1")
	defer f.Close()

	f.Log(infoEvent(testTime, "first\n"))

	assert.Equal(t, "# service log v1\nfirst\n", readFile(t, fsys, "app.log"))
}

func TestFileSinkRotation(t *testing.T) {
	f, fsys, rec := newTestFileSink()
	f.SetFileName("logs/app-%h%m%s.log")
	f.SetMaxSize(100)

	msg := strings.Repeat("x", 59) + "\n"
	for i := 0; i < 3; i++ {
		f.Log(infoEvent(testTime.Add(time.Duration(i)*time.Second), msg))
	}
	f.Close()

	assert.Equal(t, []string{"app-030405.log", "app-030406.log"}, listFiles(t, fsys, "logs"))
	assert.Equal(t, msg+msg, readFile(t, fsys, "logs/app-030405.log"), "rotation follows the write that crosses the limit")
	assert.Equal(t, msg, readFile(t, fsys, "logs/app-030406.log"))
	assert.Equal(t, uint64(1), f.stats.TotalRotations.Load())
	assert.Contains(t, rec.lines, "debug: Closing Log file [logs/app-030405.log]")
}

func TestFileSinkRotationSameSecond(t *testing.T) {
	f, fsys, _ := newTestFileSink()
	f.SetFileName("app.log")
	f.SetMaxSize(10)

	f.Log(infoEvent(testTime, "0123456789\n"))
	f.Log(infoEvent(testTime, "abcdefghij\n"))
	f.Close()

	assert.Equal(t, []string{"app-1.log", "app-2.log", "app.log"}, listFiles(t, fsys, "/"))
	assert.Equal(t, "0123456789\n", readFile(t, fsys, "app.log"))
	assert.Equal(t, "abcdefghij\n", readFile(t, fsys, "app-1.log"))
	assert.Empty(t, readFile(t, fsys, "app-2.log"))
}

func TestFileSinkRotationDeferredInsideNest(t *testing.T) {
	f, _, _ := newTestFileSink()
	f.SetFileName("app.log")
	f.SetMaxSize(10)
	defer f.Close()

	f.nest.enter()
	f.Log(infoEvent(testTime, "a line longer than ten bytes"))
	f.nest.exit()
	assert.Equal(t, "app.log", f.ActiveFileName())
	assert.Zero(t, f.stats.TotalRotations.Load())

	f.Log(infoEvent(testTime, "\n"))
	assert.Equal(t, "app-1.log", f.ActiveFileName())
}

func TestFileSinkRetention(t *testing.T) {
	f, fsys, rec := newTestFileSink()
	f.SetFileName("logs/app.log")
	f.SetMaxSize(10)
	f.SetMaxFiles(3)

	for i := 0; i < 10; i++ {
		f.Log(infoEvent(testTime, fmt.Sprintf("message %02d\n", i)))
		assert.LessOrEqual(t, len(listFiles(t, fsys, "logs")), 3)
	}

	assert.Equal(t, []string{"app-10.log", "app-8.log", "app-9.log"}, listFiles(t, fsys, "logs"))
	assert.Equal(t, "message 08\n", readFile(t, fsys, "logs/app-8.log"))
	assert.Equal(t, "message 09\n", readFile(t, fsys, "logs/app-9.log"))
	assert.Equal(t, []string{"logs/app-8.log", "logs/app-9.log"}, f.OldFiles())
	assert.Equal(t, uint64(8), f.stats.TotalDeletions.Load())
	assert.Contains(t, rec.lines, "debug: Deleted old Log file [logs/app.log]")
	f.Close()
}

func TestFileSinkRetentionMissingFile(t *testing.T) {
	f, fsys, rec := newTestFileSink()
	f.SetFileName("app.log")
	f.SetMaxFiles(1)
	f.oldFiles = []string{"gone.log"}

	f.Log(infoEvent(testTime, "x\n"))
	defer f.Close()

	assert.Empty(t, f.OldFiles())
	assert.Equal(t, []string{"app.log"}, listFiles(t, fsys, "/"))
	for _, line := range rec.lines {
		assert.NotContains(t, line, "error:", "a missing old file is not an error")
	}
}

func TestFileSinkCompression(t *testing.T) {
	tests := []struct {
		name       string
		compressor Compressor
		ext        string
		decode     func(io.Reader) ([]byte, error)
	}{
		{"gzip", NewGzipCompressor(), ".gz", func(r io.Reader) ([]byte, error) {
			zr, err := gzip.NewReader(r)
			if err != nil {
				return nil, err
			}
			defer zr.Close()
			return io.ReadAll(zr)
		}},
		{"zstd", NewZstdCompressor(), ".zst", func(r io.Reader) ([]byte, error) {
			zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
			if err != nil {
				return nil, err
			}
			defer zr.Close()
			return io.ReadAll(zr)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, fsys, _ := newTestFileSink(WithCompressor(tt.compressor))
			f.SetFileName("app.log")
			f.SetCompression(true)
			f.SetMaxFiles(5)

			f.Log(infoEvent(testTime, "compress me\n"))
			f.Close()

			assert.Equal(t, []string{"app.log" + tt.ext}, listFiles(t, fsys, "/"))
			assert.Equal(t, []string{"app.log" + tt.ext}, f.OldFiles(), "retention tracks the compressed file")

			data, err := afero.ReadFile(fsys, "app.log"+tt.ext)
			require.NoError(t, err)
			plain, err := tt.decode(bytes.NewReader(data))
			require.NoError(t, err)
			assert.Equal(t, "compress me\n", string(plain))
			assert.Equal(t, uint64(1), f.stats.TotalCompressions.Load())
		})
	}
}

type failingCompressor struct{}

func (failingCompressor) Extension() string { return ".bad" }

func (failingCompressor) Compress(dst io.Writer, _ io.Reader) error {
	_, _ = dst.Write([]byte("partial"))
	return errors.New("codec exploded")
}

func TestFileSinkCompressionFailure(t *testing.T) {
	f, fsys, rec := newTestFileSink(WithCompressor(failingCompressor{}))
	f.SetFileName("app.log")
	f.SetCompression(true)
	f.SetMaxFiles(5)

	f.Log(infoEvent(testTime, "keep me\n"))
	f.Close()

	assert.Equal(t, []string{"app.log"}, listFiles(t, fsys, "/"), "partial artifact removed, original kept")
	assert.Equal(t, "keep me\n", readFile(t, fsys, "app.log"))
	assert.Equal(t, []string{"app.log"}, f.OldFiles())
	assert.Equal(t, uint64(1), f.stats.CompressionFailures.Load())
	assert.Contains(t, rec.lines, "error: Compressing Log file [app.log] failed: codec exploded")
}

func TestFileSinkStickyFailure(t *testing.T) {
	ro := afero.NewReadOnlyFs(afero.NewMemMapFs())
	f := NewFileSink(WithFs(ro))
	rec := &selfLogRecorder{}
	f.attach(&nestGuard{}, &State{}, rec.log)
	f.SetLevel(LevelInfo)
	f.SetFileName("app.log")

	for i := 0; i < 5; i++ {
		f.Log(infoEvent(testTime, "lost\n"))
	}

	assert.True(t, f.Failed())
	assert.Empty(t, f.ActiveFileName())
	assert.Equal(t, []string{"error: Failed to open Log file [app.log], logging to file is now disabled."}, rec.lines)
	assert.Equal(t, uint64(1), f.stats.OpenFailures.Load())

	f.SetFileName("other.log")
	assert.False(t, f.Failed(), "a new file name clears the latch")
	f.Log(infoEvent(testTime, "lost\n"))
	assert.Len(t, rec.lines, 2)
}

func TestFileSinkAddPreExistingFiles(t *testing.T) {
	f, fsys, _ := newTestFileSink()
	base := time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"logs/app-b.log", "logs/app-a.log", "logs/app-c.log", "logs/other.txt"} {
		require.NoError(t, afero.WriteFile(fsys, name, []byte("old"), 0644))
		mtime := base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, fsys.Chtimes(name, mtime, mtime))
	}
	require.NoError(t, fsys.MkdirAll("logs/app-dir.log", 0755))

	n := f.AddPreExistingFiles("logs/app-*.log")

	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"logs/app-b.log", "logs/app-a.log", "logs/app-c.log"}, f.OldFiles(), "oldest first")
	assert.Zero(t, f.AddPreExistingFiles("logs/"))

	t.Run("seeded files are pruned on open", func(t *testing.T) {
		f.SetFileName("logs/current.log")
		f.SetMaxFiles(2)
		f.Log(infoEvent(testTime, "new\n"))
		defer f.Close()

		assert.Equal(t, []string{"logs/app-c.log"}, f.OldFiles())
		assert.Equal(t, []string{"app-c.log", "current.log", "other.txt"}, listFiles(t, fsys, "logs"))
	})
}

type failingWriteFs struct {
	afero.Fs
}

func (w failingWriteFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	file, err := w.Fs.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return failingFile{file}, nil
}

type failingFile struct {
	afero.File
}

func (failingFile) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestFileSinkWriteFailure(t *testing.T) {
	f := NewFileSink(WithFs(failingWriteFs{afero.NewMemMapFs()}))
	rec := &selfLogRecorder{}
	f.attach(&nestGuard{}, &State{}, rec.log)
	f.SetLevel(LevelInfo)
	f.SetFileName("app.log")
	defer f.Close()

	f.Log(infoEvent(testTime, "x\n"))

	assert.Equal(t, uint64(1), f.stats.WriteFailures.Load())
	assert.Contains(t, rec.lines, "error: Error writing to Log file [app.log]: disk full")
}
