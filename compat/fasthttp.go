package compat

import (
	"fmt"
	"strings"

	"github.com/valyala/fasthttp"

	"github.com/bvarner/syslog"
)

var _ fasthttp.Logger = (*FastHTTPAdapter)(nil)

// FastHTTPAdapter exposes a syslog.Logger as a fasthttp Logger
type FastHTTPAdapter struct {
	logger        *syslog.Logger
	defaultLevel  int64
	levelDetector func(string) int64 // Function to detect log level from message
}

// NewFastHTTPAdapter creates a new fasthttp-compatible logger adapter
func NewFastHTTPAdapter(logger *syslog.Logger, opts ...FastHTTPOption) *FastHTTPAdapter {
	adapter := &FastHTTPAdapter{
		logger:        logger,
		defaultLevel:  syslog.LevelInfo,
		levelDetector: DetectLogLevel, // Default level detection
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// FastHTTPOption allows customizing adapter behavior
type FastHTTPOption func(*FastHTTPAdapter)

// WithDefaultLevel sets the default log level for Printf calls
func WithDefaultLevel(level int64) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.defaultLevel = level
	}
}

// WithLevelDetector sets a custom function to detect log level from message content
func WithLevelDetector(detector func(string) int64) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.levelDetector = detector
	}
}

// Printf implements fasthttp's Logger interface
func (a *FastHTTPAdapter) Printf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	// Detect log level from message content
	level := a.defaultLevel
	if a.levelDetector != nil {
		if detected := a.levelDetector(msg); detected != syslog.LevelNone {
			level = detected
		}
	}

	_ = a.logger.Logf(level, "fasthttp: %s", msg)
}

// DetectLogLevel attempts to detect log level from message content.
// It returns LevelNone when nothing matches, leaving the default in place.
func DetectLogLevel(msg string) int64 {
	msgLower := strings.ToLower(msg)

	if strings.Contains(msgLower, "fatal") ||
		strings.Contains(msgLower, "panic") {
		return syslog.LevelCritical
	}

	// Check for error indicators
	if strings.Contains(msgLower, "error") ||
		strings.Contains(msgLower, "failed") {
		return syslog.LevelError
	}

	// Check for warning indicators
	if strings.Contains(msgLower, "warn") ||
		strings.Contains(msgLower, "deprecated") {
		return syslog.LevelWarn
	}

	// Check for debug indicators
	if strings.Contains(msgLower, "debug") {
		return syslog.LevelDebug
	}
	if strings.Contains(msgLower, "trace") {
		return syslog.LevelTrace
	}

	return syslog.LevelNone
}
