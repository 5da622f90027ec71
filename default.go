package syslog

// Global instance for package-level functions
var defaultLogger = NewLogger()

// Default returns the process-wide Logger used by the package-level functions.
func Default() *Logger {
	return defaultLogger
}

// ApplyConfig applies cfg to the default logger.
func ApplyConfig(cfg *Config) error {
	return defaultLogger.ApplyConfig(cfg)
}

// ApplyOverride applies "key=value" overrides to the default logger.
func ApplyOverride(overrides ...string) error {
	return defaultLogger.ApplyOverride(overrides...)
}

// RegisterSink adds s to the default logger.
func RegisterSink(s Sink) error {
	return defaultLogger.RegisterSink(s)
}

// UnregisterSink removes s from the default logger.
func UnregisterSink(s Sink) error {
	return defaultLogger.UnregisterSink(s)
}

// ClearSinks removes all sinks registered with the default logger.
func ClearSinks() error {
	return defaultLogger.ClearSinks()
}

// Dispatch logs through the default logger with an explicit source location.
func Dispatch(level int64, file, function string, line int, format string, args ...any) error {
	return defaultLogger.Dispatch(level, file, function, line, format, args...)
}

// Logf logs through the default logger without source location.
func Logf(level int64, format string, args ...any) error {
	return defaultLogger.Logf(level, format, args...)
}

// Raw logs text through the default logger without preamble.
func Raw(level int64, format string, args ...any) error {
	return defaultLogger.Raw(level, format, args...)
}

// Flush flushes every sink of the default logger.
func Flush() error {
	return defaultLogger.Flush()
}

// Shutdown closes the default logger.
func Shutdown() error {
	return defaultLogger.Shutdown()
}

// Criticalf logs a message at critical level
func Criticalf(format string, args ...any) {
	defaultLogger.logCaller(1, LevelCritical, format, args)
}

// Errorf logs a message at error level
func Errorf(format string, args ...any) {
	defaultLogger.logCaller(1, LevelError, format, args)
}

// Warnf logs a message at warning level
func Warnf(format string, args ...any) {
	defaultLogger.logCaller(1, LevelWarn, format, args)
}

// Infof logs a message at info level
func Infof(format string, args ...any) {
	defaultLogger.logCaller(1, LevelInfo, format, args)
}

// Debugf logs a message at debug level
func Debugf(format string, args ...any) {
	defaultLogger.logCaller(1, LevelDebug, format, args)
}

// Tracef logs a message at trace level
func Tracef(format string, args ...any) {
	defaultLogger.logCaller(1, LevelTrace, format, args)
}

// LogStackTrace logs the caller's stack through the default logger.
func LogStackTrace(level int64, maxDepth int) error {
	return defaultLogger.LogStackTrace(level, maxDepth)
}

// SetFileLogName sets the default logger's file name template.
func SetFileLogName(name string) error {
	return defaultLogger.SetFileLogName(name)
}

// SetOldLogFilesPattern seeds the default logger's retention queue.
func SetOldLogFilesPattern(pattern string) (int, error) {
	return defaultLogger.SetOldLogFilesPattern(pattern)
}

// SetFileLogMaxSize sets the default logger's rollover size.
func SetFileLogMaxSize(bytes int64) error {
	return defaultLogger.SetFileLogMaxSize(bytes)
}

// SetMaxNumLogFiles sets the default logger's file count limit.
func SetMaxNumLogFiles(n int64) error {
	return defaultLogger.SetMaxNumLogFiles(n)
}

// SetFileLogCompression toggles compression for the default logger.
func SetFileLogCompression(enable bool) error {
	return defaultLogger.SetFileLogCompression(enable)
}

// SetFileLogLevel sets the default logger's file threshold.
func SetFileLogLevel(level int64) error {
	return defaultLogger.SetFileLogLevel(level)
}

// SetConsoleLogLevel sets the default logger's console threshold.
func SetConsoleLogLevel(level int64) error {
	return defaultLogger.SetConsoleLogLevel(level)
}

// CloseCurrentLogFile closes the default logger's open file.
func CloseCurrentLogFile() error {
	return defaultLogger.CloseCurrentLogFile()
}

// MaxLogLevel returns the most verbose level the default logger emits.
func MaxLogLevel() int64 {
	return defaultLogger.MaxLogLevel()
}
