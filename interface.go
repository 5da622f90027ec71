package syslog

// Level methods dispatch with the caller's file, function and line as the
// source location. Errors are dropped; use Dispatch to observe them.

// Criticalf logs a message at critical level.
func (l *Logger) Criticalf(format string, args ...any) {
	l.logCaller(1, LevelCritical, format, args)
}

// Errorf logs a message at error level.
func (l *Logger) Errorf(format string, args ...any) {
	l.logCaller(1, LevelError, format, args)
}

// Warnf logs a message at warning level.
func (l *Logger) Warnf(format string, args ...any) {
	l.logCaller(1, LevelWarn, format, args)
}

// Infof logs a message at info level.
func (l *Logger) Infof(format string, args ...any) {
	l.logCaller(1, LevelInfo, format, args)
}

// Debugf logs a message at debug level.
func (l *Logger) Debugf(format string, args ...any) {
	l.logCaller(1, LevelDebug, format, args)
}

// Tracef logs a message at trace level.
func (l *Logger) Tracef(format string, args ...any) {
	l.logCaller(1, LevelTrace, format, args)
}

// Dump logs label followed by a detailed rendering of v.
func (l *Logger) Dump(level int64, label string, v any) {
	l.logCaller(1, level, "%s: %s", []any{label, dumpValue(v)})
}

// logCaller dispatches with the location of the function skip frames
// above logCaller's caller.
func (l *Logger) logCaller(skip int, level int64, format string, args []any) {
	file, fn, line := callerLocation(skip + 1)
	_ = l.Dispatch(level, file, fn, line, format, args...)
}
