package syslog

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
)

var (
	ErrNilSink          = errors.New("syslog: sink is nil")
	ErrUncomparableSink = errors.New("syslog: sink type is not comparable, register a pointer")
	ErrSinkNotFound     = errors.New("syslog: sink not registered")
	ErrLoggerClosed     = errors.New("syslog: logger is shut down")
	ErrUnknownLevel     = errors.New("syslog: unknown level")
)

// LevelName returns the display name of level, or "???".
func LevelName(level int64) string {
	if level < 0 || level >= int64(len(levelNames)) {
		return "???"
	}
	return levelNames[level]
}

// LevelKeyword returns the config keyword of level, or "???".
func LevelKeyword(level int64) string {
	if level < 0 || level >= int64(len(levelKeywords)) {
		return "???"
	}
	return levelKeywords[level]
}

// Level converts a level keyword ("none", "critical", "errors", "warnings",
// "info", "debug", "trace") to its numeric constant.
func Level(keyword string) (int64, error) {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	for i, k := range levelKeywords {
		if kw == k {
			return int64(i), nil
		}
	}
	return -1, fmt.Errorf("%w: '%s' (use %s)", ErrUnknownLevel, keyword, strings.Join(levelKeywords, ", "))
}

// levelLetter is the first character of the level's display name.
func levelLetter(level int64) byte {
	return LevelName(level)[0]
}

// fmtErrorf wrapper
func fmtErrorf(format string, args ...any) error {
	if !strings.HasPrefix(format, "syslog: ") {
		format = "syslog: " + format
	}
	return fmt.Errorf(format, args...)
}

// combineErrors helper
func combineErrors(err1, err2 error) error {
	if err1 == nil {
		return err2
	}
	if err2 == nil {
		return err1
	}
	return fmt.Errorf("%v; %w", err1, err2)
}

// parseKeyValue splits a "key=value" string.
func parseKeyValue(arg string) (string, string, error) {
	parts := strings.SplitN(strings.TrimSpace(arg), "=", 2)
	if len(parts) != 2 {
		return "", "", fmtErrorf("invalid format in override string '%s', expected key=value", arg)
	}
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if key == "" {
		return "", "", fmtErrorf("key cannot be empty in override string '%s'", arg)
	}
	return key, value, nil
}

// callerLocation reports the file, short function name and line of the
// caller skip frames above callerLocation itself.
func callerLocation(skip int) (string, string, int) {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "", "", 0
	}
	fn := ""
	if f := runtime.FuncForPC(pc); f != nil {
		fn = shortFuncName(f.Name())
	}
	return file, fn, line
}

// writeInternal writes a "syslog: " prefixed diagnostic to w.
func writeInternal(w io.Writer, format string, args ...any) {
	if !strings.HasPrefix(format, "syslog: ") {
		format = "syslog: " + format
	}
	fmt.Fprintf(w, format, args...)
}
