package syslog

import (
	"bytes"
)

// LineBuffer collects arbitrarily split text and forwards only whole lines
// to a downstream sink, one event per line without the trailing newline.
// Each forwarded line carries the metadata of the event that completed it.
//
// When a single line outgrows the buffer it is forwarded in buffer-sized
// pieces rather than dropped.
type LineBuffer struct {
	next Sink
	buf  []byte
	last LogEvent
}

// NewLineBuffer wraps next with a line buffer of size bytes, or
// DefaultLineBufferSize when size <= 0.
func NewLineBuffer(next Sink, size int) *LineBuffer {
	if size <= 0 {
		size = DefaultLineBufferSize
	}
	return &LineBuffer{next: next, buf: make([]byte, 0, size)}
}

// Log appends ev.Text and forwards every line it completes.
func (b *LineBuffer) Log(ev LogEvent) {
	b.last = ev
	text := ev.Text
	for {
		room := cap(b.buf) - len(b.buf)
		chunk := text
		truncated := false
		if len(chunk) > room {
			chunk, truncated = chunk[:room], true
		}
		text = text[len(chunk):]
		b.buf = append(b.buf, chunk...)

		consumed := 0
		for {
			nl := bytes.IndexByte(b.buf[consumed:], '\n')
			if nl < 0 {
				break
			}
			b.emit(ev, b.buf[consumed:consumed+nl])
			consumed += nl + 1
		}

		if truncated && consumed == 0 {
			// Full buffer with no newline, forward what we have to make progress.
			b.emit(ev, b.buf)
			consumed = len(b.buf)
		}
		b.buf = b.buf[:copy(b.buf, b.buf[consumed:])]

		if !truncated {
			return
		}
	}
}

// Flush forwards any partial line and flushes the downstream sink.
func (b *LineBuffer) Flush() {
	if len(b.buf) > 0 {
		b.emit(b.last, b.buf)
		b.buf = b.buf[:0]
	}
	b.next.Flush()
}

// Pending returns the buffered text of the incomplete line.
func (b *LineBuffer) Pending() string {
	return string(b.buf)
}

func (b *LineBuffer) emit(ev LogEvent, line []byte) {
	b.next.Log(ev.WithText(string(line)))
}
