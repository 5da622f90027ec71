package compat

import (
	"fmt"
	"os"

	"github.com/panjf2000/gnet/v2/pkg/logging"

	"github.com/bvarner/syslog"
)

var _ logging.Logger = (*GnetAdapter)(nil)

// GnetAdapter exposes a syslog.Logger as a gnet logging.Logger.
type GnetAdapter struct {
	logger       *syslog.Logger
	fatalHandler func(msg string) // Customizable fatal behavior
}

// NewGnetAdapter creates a new gnet-compatible logger adapter
func NewGnetAdapter(logger *syslog.Logger, opts ...GnetOption) *GnetAdapter {
	adapter := &GnetAdapter{
		logger: logger,
		fatalHandler: func(msg string) {
			os.Exit(1) // Default behavior matches gnet expectations
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// GnetOption allows customizing adapter behavior
type GnetOption func(*GnetAdapter)

// WithFatalHandler sets a custom fatal handler
func WithFatalHandler(handler func(string)) GnetOption {
	return func(a *GnetAdapter) {
		a.fatalHandler = handler
	}
}

// Debugf logs at debug level with printf-style formatting
func (a *GnetAdapter) Debugf(format string, args ...any) {
	a.log(syslog.LevelDebug, format, args)
}

// Infof logs at info level with printf-style formatting
func (a *GnetAdapter) Infof(format string, args ...any) {
	a.log(syslog.LevelInfo, format, args)
}

// Warnf logs at warn level with printf-style formatting
func (a *GnetAdapter) Warnf(format string, args ...any) {
	a.log(syslog.LevelWarn, format, args)
}

// Errorf logs at error level with printf-style formatting
func (a *GnetAdapter) Errorf(format string, args ...any) {
	a.log(syslog.LevelError, format, args)
}

// Fatalf logs at critical level, flushes the sinks and triggers the fatal handler
func (a *GnetAdapter) Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	_ = a.logger.Logf(syslog.LevelCritical, "gnet: %s", msg)

	// Ensure log is flushed before exit
	_ = a.logger.Flush()

	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}

func (a *GnetAdapter) log(level int64, format string, args []any) {
	_ = a.logger.Logf(level, "gnet: %s", fmt.Sprintf(format, args...))
}
