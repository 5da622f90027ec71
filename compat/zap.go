package compat

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bvarner/syslog"
	"github.com/bvarner/syslog/loccode"
)

var _ syslog.Sink = (*ZapSink)(nil)

// ZapSink forwards log events to a zap.Logger. Each event becomes one zap
// entry, so text logged in pieces with Raw should go through a
// syslog.LineBuffer first.
type ZapSink struct {
	logger *zap.Logger
}

// NewZapSink creates a sink writing to logger.
func NewZapSink(logger *zap.Logger) *ZapSink {
	return &ZapSink{logger: logger}
}

// Log writes ev as a zap entry, with the source location as fields.
func (z *ZapSink) Log(ev syslog.LogEvent) {
	if ev.IsPreamble() {
		return
	}
	ce := z.logger.Check(ZapLevel(ev.Level), strings.TrimSuffix(ev.Text, "\n"))
	if ce == nil {
		return
	}
	ce.Time = ev.When

	fields := []zap.Field{zap.String("level_name", syslog.LevelName(ev.Level))}
	if ev.SourceFile != "" {
		fields = append(fields,
			zap.String("file", filepath.Base(ev.SourceFile)),
			zap.Int("line", ev.SourceLine),
			zap.String("code", loccode.Code(ev.SourceFile, ev.SourceLine)),
		)
	}
	if ev.SourceFunction != "" {
		fields = append(fields, zap.String("function", ev.SourceFunction))
	}
	ce.Write(fields...)
}

// Flush syncs the zap logger.
func (z *ZapSink) Flush() {
	_ = z.logger.Sync()
}

// ZapLevel maps a syslog level to the closest zap level. Critical maps to
// error since zap's higher levels panic or exit.
func ZapLevel(level int64) zapcore.Level {
	switch {
	case level <= syslog.LevelError:
		return zapcore.ErrorLevel
	case level == syslog.LevelWarn:
		return zapcore.WarnLevel
	case level == syslog.LevelInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}
