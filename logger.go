package syslog

import (
	"io"
	"os"
	"reflect"
	"slices"
	"sync"
	"time"

	"github.com/spf13/afero"
)

// Logger serializes log dispatch to a built-in file sink, a built-in
// console sink and any number of registered sinks. Every dispatch holds
// one lock for its whole duration, so output from concurrent callers is
// never interleaved.
//
// Sinks run with the lock held and must not call back into the Logger.
type Logger struct {
	mu    sync.Locker
	state State
	nest  nestGuard

	cfg     *Config
	file    *FileSink
	console *ConsoleSink
	sinks   []Sink

	stackTrace StackTraceProvider
	clock      func() time.Time
}

// LoggerOption configures a Logger at construction.
type LoggerOption func(*Logger)

// WithFileSystem creates log files on fsys instead of the OS filesystem.
func WithFileSystem(fsys afero.Fs) LoggerOption {
	return func(l *Logger) {
		l.file.fs = fsys
	}
}

// WithConsoleWriter sends console output to w.
func WithConsoleWriter(w io.Writer) LoggerOption {
	return func(l *Logger) {
		l.console.w = w
	}
}

// WithClock replaces time.Now as the event timestamp source.
func WithClock(clock func() time.Time) LoggerOption {
	return func(l *Logger) {
		l.clock = clock
	}
}

// WithStackTraceProvider replaces the runtime stack walker.
func WithStackTraceProvider(p StackTraceProvider) LoggerOption {
	return func(l *Logger) {
		l.stackTrace = p
	}
}

// WithoutLocking disables dispatch serialization for single-threaded programs.
func WithoutLocking() LoggerOption {
	return func(l *Logger) {
		l.mu = noopLocker{}
	}
}

// NewLogger creates a Logger with the default configuration: console at
// LevelInfo on stdout, file logging disabled.
func NewLogger(opts ...LoggerOption) *Logger {
	cfg := DefaultConfig()
	l := &Logger{
		mu:         &sync.Mutex{},
		cfg:        cfg,
		file:       NewFileSink(),
		console:    NewConsoleSink(os.Stdout, cfg.ConsoleLevel),
		stackTrace: NewRuntimeStackProvider(),
		clock:      time.Now,
	}
	l.state.LoggerStartTime.Store(time.Now())
	l.file.attach(&l.nest, &l.state, l.selfLog)

	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Dispatch formats a message and hands it, with its preamble, to the file
// sink, the console sink and then every registered sink. Sink failures are
// never reported; the only error is ErrLoggerClosed after Shutdown.
func (l *Logger) Dispatch(level int64, file, function string, line int, format string, args ...any) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state.ShutdownCalled.Load() {
		return ErrLoggerClosed
	}
	l.dispatchLocked(l.newEvent(level, file, function, line, terminate(formatMessage(format, args))), true)
	return nil
}

// Logf dispatches a message without source location.
func (l *Logger) Logf(level int64, format string, args ...any) error {
	return l.Dispatch(level, "", "", 0, format, args...)
}

// Raw dispatches text as is, without preamble or added newline.
func (l *Logger) Raw(level int64, format string, args ...any) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state.ShutdownCalled.Load() {
		return ErrLoggerClosed
	}
	l.dispatchLocked(l.newEvent(level, "", "", 0, formatMessage(format, args)), false)
	return nil
}

// Flush flushes the built-in sinks and every registered sink.
func (l *Logger) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state.ShutdownCalled.Load() {
		return ErrLoggerClosed
	}
	l.flushLocked()
	return nil
}

// RegisterSink adds s to the registry. Registering a sink twice is a no-op.
// Sinks are compared by identity, so s must be of a comparable type.
func (l *Logger) RegisterSink(s Sink) error {
	if s == nil {
		return ErrNilSink
	}
	if !reflect.TypeOf(s).Comparable() {
		return ErrUncomparableSink
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state.ShutdownCalled.Load() {
		return ErrLoggerClosed
	}
	if !slices.Contains(l.sinks, s) {
		l.sinks = append(l.sinks, s)
	}
	return nil
}

// UnregisterSink removes s without flushing it.
func (l *Logger) UnregisterSink(s Sink) error {
	if s == nil {
		return ErrNilSink
	}
	if !reflect.TypeOf(s).Comparable() {
		return ErrSinkNotFound
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	i := slices.Index(l.sinks, s)
	if i < 0 {
		return ErrSinkNotFound
	}
	l.sinks = slices.Delete(l.sinks, i, i+1)
	return nil
}

// ClearSinks removes every registered sink without flushing them.
func (l *Logger) ClearSinks() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	clear(l.sinks)
	l.sinks = l.sinks[:0]
	return nil
}

// Sinks returns the registered sinks in registration order.
func (l *Logger) Sinks() []Sink {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.sinks)
}

// Shutdown flushes every sink, closes the log file and rejects further
// dispatch. Calling it again is a no-op.
func (l *Logger) Shutdown() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state.ShutdownCalled.Load() {
		return nil
	}
	l.flushLocked()
	l.file.closeFile()
	l.state.ShutdownCalled.Store(true)
	return nil
}

// Stats returns a snapshot of the runtime counters.
func (l *Logger) Stats() Stats {
	return l.state.snapshot()
}

func (l *Logger) newEvent(level int64, file, function string, line int, text string) LogEvent {
	return LogEvent{
		When:           l.clock().Truncate(time.Microsecond),
		Level:          level,
		Text:           text,
		SourceFile:     file,
		SourceFunction: function,
		SourceLine:     line,
	}
}

// dispatchLocked fans ev out to every sink. Preambles are emitted with the
// nest guard held so the file sink does not rotate mid-line.
func (l *Logger) dispatchLocked(ev LogEvent, withPreamble bool) {
	l.state.TotalDispatched.Add(1)

	if withPreamble {
		pre := ev.WithText(Preamble(ev, l.cfg.IncludeSourceLocation))
		pre.preamble = true

		l.nest.enter()
		l.file.Log(pre)
		l.nest.exit()
		l.file.Log(ev)

		l.nest.enter()
		l.console.Log(pre)
		l.nest.exit()
		l.console.Log(ev)
	} else {
		l.file.Log(ev)
		l.console.Log(ev)
	}

	for _, s := range l.sinks {
		l.callSink(s, ev)
	}
}

// callSink isolates the pipeline from a panicking user sink.
func (l *Logger) callSink(s Sink, ev LogEvent) {
	defer func() {
		if r := recover(); r != nil {
			l.internalLog("sink %T panicked: %v\n", s, r)
		}
	}()
	s.Log(ev)
}

func (l *Logger) flushLocked() {
	l.file.Flush()
	l.console.Flush()
	for _, s := range l.sinks {
		s.Flush()
	}
}

// selfLog reports the logger's own activity through the pipeline. Callers
// already hold the lock.
func (l *Logger) selfLog(level int64, format string, args ...any) {
	l.dispatchLocked(l.newEvent(level, "", "", 0, terminate(formatMessage(format, args))), true)
}

// internalLog writes diagnostics that cannot go through the pipeline to
// stderr, when enabled.
func (l *Logger) internalLog(format string, args ...any) {
	if !l.cfg.InternalErrorsToStderr {
		return
	}
	writeInternal(os.Stderr, format, args...)
}

// ApplyConfig validates cfg and applies it to the built-in sinks. Settings
// that differ from the current ones are announced at debug level.
func (l *Logger) ApplyConfig(cfg *Config) error {
	if cfg == nil {
		return fmtErrorf("configuration cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	compressor, err := compressorFor(cfg.CompressionCodec)
	if err != nil {
		return err
	}
	next := cfg.Clone()

	return l.locked(func() {
		prev := l.cfg
		l.cfg = next

		if prev.ConsoleTarget != next.ConsoleTarget {
			if next.ConsoleTarget == "stderr" {
				l.console.w = os.Stderr
			} else {
				l.console.w = os.Stdout
			}
		}
		l.console.SetColor(next.ConsoleColor)
		l.file.SetCompressor(compressor)
		l.file.SetHeader(next.Header)

		if prev.ConsoleLevel != next.ConsoleLevel {
			l.console.SetLevel(next.ConsoleLevel)
			l.selfLog(LevelDebug, "Console logging level set to: %s", LevelName(next.ConsoleLevel))
		}
		if prev.FileName != next.FileName {
			l.file.SetFileName(next.FileName)
			l.selfLog(LevelDebug, "File log name set to: %s", next.FileName)
		}
		if prev.MaxFileSize != next.MaxFileSize {
			l.file.SetMaxSize(next.MaxFileSize)
			l.selfLog(LevelDebug, "File log maximum size set to: %d bytes.", next.MaxFileSize)
		}
		if prev.MaxFiles != next.MaxFiles {
			l.file.SetMaxFiles(next.MaxFiles)
			l.selfLog(LevelDebug, "Maximum number of log files set to: %d", next.MaxFiles)
		}
		if prev.Compression != next.Compression {
			l.file.SetCompression(next.Compression)
			if next.Compression {
				l.selfLog(LevelDebug, "File log compression enabled.")
			} else {
				l.selfLog(LevelDebug, "File log compression disabled.")
			}
		}
		if next.OldFilesPattern != "" && prev.OldFilesPattern != next.OldFilesPattern {
			n := l.file.AddPreExistingFiles(next.OldFilesPattern)
			l.selfLog(LevelDebug, "Old Log Files pattern set to: [%s] (%d files matched)", next.OldFilesPattern, n)
		}
		if prev.FileLevel != next.FileLevel {
			l.file.SetLevel(next.FileLevel)
			l.selfLog(LevelDebug, "File logging level set to: %s", LevelName(next.FileLevel))
		}
	})
}

// Config returns a copy of the current configuration.
func (l *Logger) Config() *Config {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cfg.Clone()
}
