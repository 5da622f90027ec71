package syslog

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/bvarner/syslog/timefmt"
)

// FileSink writes events to a log file that is opened on demand, rolled
// over when it grows past a size limit, optionally compressed once closed,
// and pruned so that only a bounded number of files stay on disk.
//
// A FileSink is not safe for concurrent use; the owning Logger serializes
// every call.
type FileSink struct {
	fs         afero.Fs
	compressor Compressor

	level    int64
	pattern  string
	maxSize  int64
	maxFiles int64
	compress bool
	header   string

	file       afero.File
	w          *bufio.Writer
	activeName string
	written    int64
	openFailed bool
	closing    bool // diagnostics raised while closing never reopen a file
	oldFiles   []string
	lastBase   string // expanded name of the previous open, before dedup
	seq        int

	nest    *nestGuard
	stats   *State
	selfLog func(level int64, format string, args ...any)
}

// FileSinkOption configures a FileSink at construction.
type FileSinkOption func(*FileSink)

// WithFs sets the filesystem log files are created on.
func WithFs(fsys afero.Fs) FileSinkOption {
	return func(f *FileSink) {
		f.fs = fsys
	}
}

// WithCompressor sets the codec used when compression is enabled.
func WithCompressor(c Compressor) FileSinkOption {
	return func(f *FileSink) {
		f.compressor = c
	}
}

// NewFileSink returns a closed file sink with logging disabled (LevelNone),
// the "%f.log" name template and no size or count limits.
func NewFileSink(opts ...FileSinkOption) *FileSink {
	f := &FileSink{
		fs:         afero.NewOsFs(),
		compressor: NewGzipCompressor(),
		level:      LevelNone,
		pattern:    defaultFileName,
		maxSize:    NoLimit,
		maxFiles:   NoLimit,
		nest:       &nestGuard{},
		stats:      &State{},
		selfLog:    func(int64, string, ...any) {},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// attach routes the sink's diagnostics and counters through a Logger.
func (f *FileSink) attach(nest *nestGuard, stats *State, selfLog func(int64, string, ...any)) {
	f.nest = nest
	f.stats = stats
	f.selfLog = selfLog
}

func (f *FileSink) Level() int64           { return f.level }
func (f *FileSink) SetLevel(level int64)   { f.level = level }
func (f *FileSink) FileName() string       { return f.pattern }
func (f *FileSink) MaxSize() int64         { return f.maxSize }
func (f *FileSink) SetMaxSize(bytes int64) { f.maxSize = bytes }
func (f *FileSink) MaxFiles() int64        { return f.maxFiles }
func (f *FileSink) SetMaxFiles(n int64)    { f.maxFiles = n }
func (f *FileSink) Compression() bool      { return f.compress }
func (f *FileSink) SetCompression(on bool) { f.compress = on }

// SetFileName sets the name template of the next file to open and clears a
// previous open failure.
func (f *FileSink) SetFileName(pattern string) {
	f.pattern = pattern
	f.openFailed = false
	f.lastBase = ""
}

// SetCompressor sets the codec used when compression is enabled.
func (f *FileSink) SetCompressor(c Compressor) {
	f.compressor = c
}

// SetHeader sets a line written at the top of every new file.
func (f *FileSink) SetHeader(header string) {
	f.header = header
}

// ActiveFileName returns the path of the open file, or "" when closed.
func (f *FileSink) ActiveFileName() string {
	return f.activeName
}

// Failed reports whether an open failure has disabled the sink.
func (f *FileSink) Failed() bool {
	return f.openFailed
}

// OldFiles returns the closed files queued for retention, oldest first.
func (f *FileSink) OldFiles() []string {
	return append([]string(nil), f.oldFiles...)
}

// Log appends ev.Text to the current file, opening one if needed, and rolls
// the file over once it has reached the size limit.
func (f *FileSink) Log(ev LogEvent) {
	if f.level <= LevelNone || ev.Level > f.level {
		return
	}
	if f.file == nil && f.closing {
		return
	}
	if err := f.ensureOpen(ev); err != nil {
		return
	}

	n, err := f.w.WriteString(ev.Text)
	f.written += int64(n)
	if err == nil {
		err = f.w.Flush()
	}
	if err != nil {
		f.stats.WriteFailures.Add(1)
		if !f.nest.active() {
			f.nest.enter()
			f.selfLog(LevelError, "Error writing to Log file [%s]: %v", f.activeName, err)
			f.nest.exit()
		}
	}

	// Rotation is deferred while inside a preamble or an open/close so a
	// line is never split across files.
	if f.maxSize == NoLimit || f.nest.active() || f.file == nil {
		return
	}
	if f.written >= f.maxSize {
		f.closeFile()
		f.stats.TotalRotations.Add(1)
		_ = f.ensureOpen(ev)
	}
}

// Flush flushes buffered output of the open file.
func (f *FileSink) Flush() {
	if f.w != nil {
		_ = f.w.Flush()
	}
}

// Close closes the current file, compressing and queueing it per policy.
func (f *FileSink) Close() {
	f.closeFile()
}

// AddPreExistingFiles queues files matching the glob pattern for retention,
// oldest first, so that they count against the file limit. A pattern with
// no directory part is matched in ".". Returns the number of files added.
func (f *FileSink) AddPreExistingFiles(pattern string) int {
	dir, base := filepath.Split(pattern)
	if base == "" {
		return 0
	}
	if dir == "" {
		dir = "."
	}

	matches, err := afero.Glob(f.fs, filepath.Join(dir, base))
	if err != nil {
		return 0
	}

	type oldFile struct {
		path    string
		created int64
	}
	var found []oldFile
	for _, m := range matches {
		info, err := f.fs.Stat(m)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		found = append(found, oldFile{path: m, created: info.ModTime().UnixNano()})
	}
	sort.SliceStable(found, func(i, j int) bool { return found[i].created < found[j].created })

	for _, o := range found {
		f.oldFiles = append(f.oldFiles, o.path)
	}
	return len(found)
}

// ensureOpen opens a new file named after ev's timestamp if none is open.
// Once an open has failed it keeps failing until SetFileName is called.
func (f *FileSink) ensureOpen(ev LogEvent) error {
	if f.file != nil {
		return nil
	}
	if f.openFailed {
		return fmtErrorf("file logging disabled after open failure")
	}

	f.nest.enter()
	defer f.nest.exit()

	name := f.pattern
	if name == "" {
		name = defaultFileName
	}
	name = f.uniqueName(timefmt.FromTime(ev.When, timefmt.ZoneLocal).ExpandTokens(name))

	if dir := filepath.Dir(name); dir != "." {
		_ = f.fs.MkdirAll(dir, 0755)
	}
	file, err := f.fs.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		f.activeName = ""
		f.openFailed = true
		f.stats.OpenFailures.Add(1)
		f.selfLog(LevelError, "Failed to open Log file [%s], logging to file is now disabled.", name)
		return fmtErrorf("failed to open log file '%s': %w", name, err)
	}

	f.file = file
	f.w = bufio.NewWriter(file)
	f.activeName = name
	f.written = 0

	if f.header != "" {
		n, _ := f.w.WriteString(terminate(f.header))
		f.written += int64(n)
		_ = f.w.Flush()
	}

	f.selfLog(LevelDebug, "Created Log file [%s]", name)

	for f.maxFiles != NoLimit && int64(len(f.oldFiles)) >= f.maxFiles {
		old := f.oldFiles[0]
		f.oldFiles = f.oldFiles[1:]
		if err := f.fs.Remove(old); err == nil {
			f.stats.TotalDeletions.Add(1)
			f.selfLog(LevelDebug, "Deleted old Log file [%s]", old)
		} else if !errors.Is(err, fs.ErrNotExist) {
			f.selfLog(LevelError, "Error deleting old Log file [%s]: %v", old, err)
		}
	}
	return nil
}

// uniqueName numbers consecutive files that expand to the same name, as
// happens when a file rolls over within one second, so a rollover never
// truncates the file it just closed.
func (f *FileSink) uniqueName(name string) string {
	if name != f.lastBase {
		f.lastBase = name
		f.seq = 0
		return name
	}
	f.seq++
	ext := filepath.Ext(name)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(name, ext), f.seq, ext)
}

// closeFile closes the open file, compresses it when enabled and queues the
// resulting path for retention.
func (f *FileSink) closeFile() {
	if f.file == nil {
		return
	}

	f.nest.enter()
	f.closing = true
	defer func() {
		f.closing = false
		f.nest.exit()
	}()

	f.selfLog(LevelDebug, "Closing Log file [%s]", f.activeName)

	oldName := f.activeName
	f.activeName = ""
	_ = f.w.Flush()
	if err := f.file.Close(); err != nil {
		f.selfLog(LevelError, "Error closing Log file [%s]: %v", oldName, err)
	}
	f.file = nil
	f.w = nil
	f.written = 0

	if f.compress && f.compressor != nil {
		if compressed, ok := f.compressFile(oldName); ok {
			oldName = compressed
		}
	}

	if f.maxFiles != NoLimit {
		f.oldFiles = append(f.oldFiles, oldName)
	}
}

// compressFile replaces path by its compressed form. On failure the
// original is kept and any partial artifact removed.
func (f *FileSink) compressFile(path string) (string, bool) {
	target := path + f.compressor.Extension()

	in, err := f.fs.Open(path)
	if err != nil {
		f.stats.CompressionFailures.Add(1)
		f.selfLog(LevelError, "Could not reopen Log file [%s] to compress it: %v", path, err)
		return "", false
	}

	out, err := f.fs.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		_ = in.Close()
		f.stats.CompressionFailures.Add(1)
		f.selfLog(LevelError, "Could not open compressed Log file [%s]: %v", target, err)
		return "", false
	}

	err = f.compressor.Compress(out, in)
	err = combineErrors(err, out.Close())
	_ = in.Close()
	if err != nil {
		f.stats.CompressionFailures.Add(1)
		f.selfLog(LevelError, "Compressing Log file [%s] failed: %v", path, err)
		if rmErr := f.fs.Remove(target); rmErr != nil {
			f.selfLog(LevelError, "Error deleting compressed Log file [%s] after compression failed: %v", target, rmErr)
		}
		return "", false
	}

	if err := f.fs.Remove(path); err != nil {
		f.selfLog(LevelError, "Error deleting Log file [%s] after compressing it to [%s]: %v", path, target, err)
	}
	f.stats.TotalCompressions.Add(1)
	return target, true
}
