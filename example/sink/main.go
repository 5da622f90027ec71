package main

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/bvarner/syslog"
	"github.com/bvarner/syslog/compat"
)

// memorySink keeps the last lines it receives, e.g. for a status page.
type memorySink struct {
	mu    sync.Mutex
	lines []string
	max   int
}

func (m *memorySink) Log(ev syslog.LogEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	line := syslog.Preamble(ev, true) + strings.TrimSuffix(ev.Text, "\n")
	m.lines = append(m.lines, line)
	if len(m.lines) > m.max {
		m.lines = m.lines[1:]
	}
}

func (m *memorySink) Flush() {}

func main() {
	logger := syslog.NewLogger()
	defer logger.Shutdown()
	_ = logger.SetConsoleLogLevel(syslog.LevelNone)

	// The memory sink receives whole lines because a LineBuffer sits in front
	// of it and joins Raw fragments.
	recent := &memorySink{max: 5}
	if err := logger.RegisterSink(syslog.NewLineBuffer(recent, 0)); err != nil {
		panic(err)
	}

	// Events are also forwarded to zap as structured entries.
	zl, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	if err := logger.RegisterSink(compat.NewZapSink(zl)); err != nil {
		panic(err)
	}

	// A callback sink counts errors.
	var errorCount int
	_ = logger.RegisterSink(syslog.NewCallbackSink(func(ev syslog.LogEvent) {
		if ev.Level <= syslog.LevelError {
			errorCount++
		}
	}))

	logger.Infof("service starting")
	_ = logger.Raw(syslog.LevelInfo, "loading: ")
	_ = logger.Raw(syslog.LevelInfo, "config ")
	_ = logger.Raw(syslog.LevelInfo, "done\n")
	logger.Warnf("cache is cold")
	logger.Errorf("upstream returned %d", 503)
	_ = logger.Flush()

	fmt.Println("Recent lines:")
	recent.mu.Lock()
	for _, l := range recent.lines {
		fmt.Println("  " + l)
	}
	recent.mu.Unlock()
	fmt.Printf("Errors seen: %d\n", errorCount)
}
