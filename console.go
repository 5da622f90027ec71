package syslog

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// ConsoleSink writes events to a terminal or pipe.
type ConsoleSink struct {
	w      io.Writer
	level  int64
	styled *termenv.Output // nil unless preambles are colored
}

// NewConsoleSink returns a console sink writing to w at the given level,
// without color.
func NewConsoleSink(w io.Writer, level int64) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	return &ConsoleSink{w: w, level: level}
}

// Level returns the console threshold.
func (c *ConsoleSink) Level() int64 {
	return c.level
}

// SetLevel changes the console threshold.
func (c *ConsoleSink) SetLevel(level int64) {
	c.level = level
}

// SetColor selects preamble coloring: "always", "never", or "auto" which
// colors only when the writer is a terminal.
func (c *ConsoleSink) SetColor(mode string) {
	enable := false
	switch mode {
	case "always":
		enable = true
	case "auto":
		if f, ok := c.w.(*os.File); ok {
			enable = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
	}
	if enable {
		c.styled = termenv.NewOutput(c.w, termenv.WithProfile(termenv.ANSI))
	} else {
		c.styled = nil
	}
}

// Log writes ev.Text when ev.Level is within the console threshold.
func (c *ConsoleSink) Log(ev LogEvent) {
	if c.level <= LevelNone || ev.Level > c.level {
		return
	}
	text := ev.Text
	if c.styled != nil && ev.IsPreamble() {
		if color, ok := levelColor(ev.Level); ok {
			text = c.styled.String(text).Foreground(color).String()
		}
	}
	_, _ = io.WriteString(c.w, text)
}

// Flush syncs the writer when it supports it.
func (c *ConsoleSink) Flush() {
	if s, ok := c.w.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
}

func levelColor(level int64) (termenv.Color, bool) {
	switch level {
	case LevelCritical:
		return termenv.ANSIBrightRed, true
	case LevelError:
		return termenv.ANSIRed, true
	case LevelWarn:
		return termenv.ANSIYellow, true
	case LevelDebug, LevelTrace:
		return termenv.ANSIBrightBlack, true
	default:
		return nil, false
	}
}
