package syslog

// Setters for the built-in sinks. Each takes the dispatch lock, so it is
// ordered with respect to concurrent logging, and announces the change at
// debug level.

// SetFileLogName sets the name template for the next log file. The
// template accepts the timefmt tokens, e.g. "app-%f.log". Setting a name
// re-enables file logging after an open failure.
func (l *Logger) SetFileLogName(name string) error {
	return l.locked(func() {
		l.file.SetFileName(name)
		l.cfg.FileName = name
		l.selfLog(LevelDebug, "File log name set to: %s", name)
	})
}

// SetOldLogFilesPattern queues existing files matching pattern for
// retention and returns how many matched.
func (l *Logger) SetOldLogFilesPattern(pattern string) (int, error) {
	var n int
	err := l.locked(func() {
		n = l.file.AddPreExistingFiles(pattern)
		l.cfg.OldFilesPattern = pattern
		l.selfLog(LevelDebug, "Old Log Files pattern set to: [%s] (%d files matched)", pattern, n)
	})
	return n, err
}

// SetFileLogMaxSize sets the size in bytes at which the log file rolls
// over, or NoLimit.
func (l *Logger) SetFileLogMaxSize(bytes int64) error {
	if bytes < 0 {
		return fmtErrorf("max_file_size cannot be negative: %d", bytes)
	}
	return l.locked(func() {
		l.file.SetMaxSize(bytes)
		l.cfg.MaxFileSize = bytes
		if bytes == NoLimit {
			l.selfLog(LevelDebug, "File log maximum size set to: (unlimited).")
		} else {
			l.selfLog(LevelDebug, "File log maximum size set to: %d bytes.", bytes)
		}
	})
}

// SetMaxNumLogFiles bounds how many log files, the open one included, are
// kept on disk, or NoLimit.
func (l *Logger) SetMaxNumLogFiles(n int64) error {
	if n < 0 {
		return fmtErrorf("max_files cannot be negative: %d", n)
	}
	return l.locked(func() {
		l.file.SetMaxFiles(n)
		l.cfg.MaxFiles = n
		if n == NoLimit {
			l.selfLog(LevelDebug, "Maximum number of log files set to: (unlimited).")
		} else {
			l.selfLog(LevelDebug, "Maximum number of log files set to: %d", n)
		}
	})
}

// SetFileLogCompression turns compression of closed log files on or off.
func (l *Logger) SetFileLogCompression(enable bool) error {
	return l.locked(func() {
		l.file.SetCompression(enable)
		l.cfg.Compression = enable
		if enable {
			l.selfLog(LevelDebug, "File log compression enabled.")
		} else {
			l.selfLog(LevelDebug, "File log compression disabled.")
		}
	})
}

// SetFileLogLevel sets the file threshold; LevelNone disables file logging.
func (l *Logger) SetFileLogLevel(level int64) error {
	return l.locked(func() {
		l.file.SetLevel(level)
		l.cfg.FileLevel = level
		l.selfLog(LevelDebug, "File logging level set to: %s", LevelName(level))
	})
}

// SetConsoleLogLevel sets the console threshold.
func (l *Logger) SetConsoleLogLevel(level int64) error {
	return l.locked(func() {
		l.console.SetLevel(level)
		l.cfg.ConsoleLevel = level
		l.selfLog(LevelDebug, "Console logging level set to: %s", LevelName(level))
	})
}

// CloseCurrentLogFile closes the log file now; the next accepted event
// opens a new one.
func (l *Logger) CloseCurrentLogFile() error {
	return l.locked(l.file.closeFile)
}

// ActiveLogFileName returns the path of the open log file, or "".
func (l *Logger) ActiveLogFileName() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.ActiveFileName()
}

func (l *Logger) FileLogLevel() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Level()
}

func (l *Logger) ConsoleLogLevel() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.console.Level()
}

// MaxLogLevel returns the most verbose level any built-in sink accepts.
func (l *Logger) MaxLogLevel() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return max(l.console.Level(), l.file.Level())
}

// locked runs fn with the lock held unless the logger is shut down.
func (l *Logger) locked(fn func()) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state.ShutdownCalled.Load() {
		return ErrLoggerClosed
	}
	fn()
	return nil
}
