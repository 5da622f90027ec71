package syslog

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"
)

// StackTraceProvider captures the calling goroutine's stack as printable
// frames, innermost first.
type StackTraceProvider interface {
	Capture(maxDepth int) []string
}

// RuntimeStackProvider walks the stack with runtime.Callers.
type RuntimeStackProvider struct {
	// Skip is the number of frames above Capture's caller to leave out.
	Skip int
}

func NewRuntimeStackProvider() *RuntimeStackProvider {
	return &RuntimeStackProvider{}
}

// Capture returns up to maxDepth frames formatted as "function (file:line)",
// starting at the function that called Capture's caller.
func (p *RuntimeStackProvider) Capture(maxDepth int) []string {
	if maxDepth <= 0 {
		return nil
	}
	pc := make([]uintptr, maxDepth)
	n := runtime.Callers(3+p.Skip, pc) // runtime.Callers, Capture, and the capturing method
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pc[:n])
	trace := make([]string, 0, n)
	for {
		frame, more := frames.Next()
		trace = append(trace, fmt.Sprintf("%s (%s:%d)", shortFuncName(frame.Function), filepath.Base(frame.File), frame.Line))
		if !more || len(trace) >= maxDepth {
			break
		}
	}
	return trace
}

// LogStackTrace logs the caller's stack at level, one frame per line.
// maxDepth <= 0 uses the configured stack_trace_depth.
func (l *Logger) LogStackTrace(level int64, maxDepth int) error {
	if maxDepth <= 0 {
		maxDepth = int(l.Config().StackTraceDepth)
	}
	frames := l.stackTrace.Capture(maxDepth)

	return l.locked(func() {
		l.selfLog(level, "--Stack trace follows (%d frames):", len(frames))
		for _, f := range frames {
			l.selfLog(level, "  %s", f)
		}
		l.selfLog(level, "--End Stack trace")
	})
}

// StackTrace returns the caller's stack as text, one frame per line.
func (l *Logger) StackTrace(maxDepth int) string {
	if maxDepth <= 0 {
		maxDepth = int(l.Config().StackTraceDepth)
	}
	return strings.Join(l.stackTrace.Capture(maxDepth), "\n")
}

// shortFuncName strips the package path from a function name and names
// closures after their enclosing function.
func shortFuncName(name string) string {
	funcName := filepath.Base(name)
	parts := strings.Split(funcName, ".")
	lastPart := parts[len(parts)-1]
	if strings.HasPrefix(lastPart, "func") && len(lastPart) > 4 {
		isAnonymous := true
		for _, r := range lastPart[4:] {
			if !unicode.IsDigit(r) {
				isAnonymous = false
				break
			}
		}
		if isAnonymous {
			return fmt.Sprintf("(anonymous in %s)", strings.Join(parts[:len(parts)-1], "."))
		}
	}
	return funcName
}
