package syslog

// Builder provides a fluent API for building logger configurations.
// It wraps a Config instance and provides chainable methods for setting values.
type Builder struct {
	cfg  *Config
	opts []LoggerOption
	err  error // Accumulate errors for deferred handling
}

// NewBuilder creates a new configuration builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// Build creates a new Logger instance with the specified configuration.
func (b *Builder) Build() (*Logger, error) {
	if b.err != nil {
		return nil, b.err
	}

	logger := NewLogger(b.opts...)

	// ApplyConfig handles validation
	if err := logger.ApplyConfig(b.cfg); err != nil {
		return nil, err
	}

	return logger, nil
}

// Options adds construction options such as WithFileSystem.
func (b *Builder) Options(opts ...LoggerOption) *Builder {
	b.opts = append(b.opts, opts...)
	return b
}

// ConsoleLevel sets the console threshold.
func (b *Builder) ConsoleLevel(level int64) *Builder {
	b.cfg.ConsoleLevel = level
	return b
}

// ConsoleLevelString sets the console threshold from a level keyword.
func (b *Builder) ConsoleLevelString(level string) *Builder {
	if b.err != nil {
		return b
	}
	levelVal, err := Level(level)
	if err != nil {
		b.err = err
		return b
	}
	b.cfg.ConsoleLevel = levelVal
	return b
}

// FileLevel sets the file threshold.
func (b *Builder) FileLevel(level int64) *Builder {
	b.cfg.FileLevel = level
	return b
}

// FileLevelString sets the file threshold from a level keyword.
func (b *Builder) FileLevelString(level string) *Builder {
	if b.err != nil {
		return b
	}
	levelVal, err := Level(level)
	if err != nil {
		b.err = err
		return b
	}
	b.cfg.FileLevel = levelVal
	return b
}

// FileName sets the log file name template.
func (b *Builder) FileName(name string) *Builder {
	b.cfg.FileName = name
	return b
}

// OldFilesPattern sets the glob of earlier log files to count for retention.
func (b *Builder) OldFilesPattern(pattern string) *Builder {
	b.cfg.OldFilesPattern = pattern
	return b
}

// MaxFileSize sets the rollover size in bytes.
func (b *Builder) MaxFileSize(bytes int64) *Builder {
	b.cfg.MaxFileSize = bytes
	return b
}

// MaxFileSizeKB sets the rollover size in kilobytes.
func (b *Builder) MaxFileSizeKB(size int64) *Builder {
	b.cfg.MaxFileSize = size * sizeMultiplier
	return b
}

// MaxFileSizeMB sets the rollover size in megabytes.
func (b *Builder) MaxFileSizeMB(size int64) *Builder {
	b.cfg.MaxFileSize = size * sizeMultiplier * sizeMultiplier
	return b
}

// MaxFiles sets how many log files are kept on disk.
func (b *Builder) MaxFiles(n int64) *Builder {
	b.cfg.MaxFiles = n
	return b
}

// Compression enables compression of closed log files.
func (b *Builder) Compression(enable bool) *Builder {
	b.cfg.Compression = enable
	return b
}

// CompressionCodec selects "gzip" or "zstd".
func (b *Builder) CompressionCodec(codec string) *Builder {
	b.cfg.CompressionCodec = codec
	return b
}

// Header sets the first line of every new log file.
func (b *Builder) Header(header string) *Builder {
	b.cfg.Header = header
	return b
}

// IncludeSourceLocation adds the location code to preambles.
func (b *Builder) IncludeSourceLocation(enable bool) *Builder {
	b.cfg.IncludeSourceLocation = enable
	return b
}

// ConsoleTarget sets "stdout" or "stderr".
func (b *Builder) ConsoleTarget(target string) *Builder {
	b.cfg.ConsoleTarget = target
	return b
}

// ConsoleColor sets "auto", "always" or "never".
func (b *Builder) ConsoleColor(mode string) *Builder {
	b.cfg.ConsoleColor = mode
	return b
}

// StackTraceDepth sets the default frame limit for stack traces.
func (b *Builder) StackTraceDepth(depth int64) *Builder {
	b.cfg.StackTraceDepth = depth
	return b
}

// InternalErrorsToStderr enables internal diagnostics on stderr.
func (b *Builder) InternalErrorsToStderr(enable bool) *Builder {
	b.cfg.InternalErrorsToStderr = enable
	return b
}
