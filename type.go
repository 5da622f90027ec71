package syslog

import (
	"time"
)

// LogEvent is one dispatched message. It is passed by value and must not
// be retained by sinks beyond the Log call unless copied.
type LogEvent struct {
	When           time.Time // microsecond resolution
	Level          int64
	Text           string
	SourceFile     string
	SourceFunction string
	SourceLine     int

	preamble bool
}

// IsPreamble reports whether Text holds the preamble of a message rather
// than the message itself. Only the built-in sinks receive preamble events.
func (e LogEvent) IsPreamble() bool {
	return e.preamble
}

// WithText returns a copy of e carrying text.
func (e LogEvent) WithText(text string) LogEvent {
	e.Text = text
	return e
}

// Sink receives dispatched events. Calls are serialized by the Logger that
// owns the sink, so implementations need no locking of their own.
type Sink interface {
	Log(ev LogEvent)
	Flush()
}

// CallbackSink adapts a function to the Sink interface.
type CallbackSink struct {
	fn func(LogEvent)
}

// NewCallbackSink returns a sink that calls fn for every event.
func NewCallbackSink(fn func(LogEvent)) *CallbackSink {
	return &CallbackSink{fn: fn}
}

func (c *CallbackSink) Log(ev LogEvent) {
	if c.fn != nil {
		c.fn(ev)
	}
}

func (c *CallbackSink) Flush() {}

// nestGuard counts how deep the current goroutine is inside preamble
// emission or file open/close. Only touched with the Logger lock held.
type nestGuard struct {
	depth int
}

func (g *nestGuard) enter() { g.depth++ }

func (g *nestGuard) exit() { g.depth-- }

func (g *nestGuard) active() bool { return g.depth > 0 }
