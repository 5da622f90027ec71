package syslog

// Log levels, from least to most verbose. A sink emits events whose level
// is at or below its own threshold; LevelNone disables a sink.
const (
	LevelNone     int64 = 0
	LevelCritical int64 = 1
	LevelError    int64 = 2
	LevelWarn     int64 = 3
	LevelInfo     int64 = 4
	LevelDebug    int64 = 5
	LevelTrace    int64 = 6
)

// NoLimit disables the file size and file count limits.
const NoLimit int64 = 0

const (
	// defaultFileName expands to e.g. "2024-01-31_13h04m05.log".
	defaultFileName = "%f.log"
	// DefaultLineBufferSize is the capacity of a LineBuffer built with size <= 0.
	DefaultLineBufferSize = 2048
	// defaultStackTraceDepth bounds LogStackTrace when no depth is given.
	defaultStackTraceDepth = 64
)

var levelNames = []string{
	"None",
	"Critical Errors Only",
	"Errors Only",
	"Warnings and Errors Only",
	"Informational",
	"Debug",
	"Trace",
}

var levelKeywords = []string{
	"none",
	"critical",
	"errors",
	"warnings",
	"info",
	"debug",
	"trace",
}

// Size multiplier for KB, MB
const sizeMultiplier = 1000
