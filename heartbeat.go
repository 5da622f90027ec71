package syslog

import (
	"fmt"
	"runtime"
)

// LogStats logs one line with the logger's counters and the process'
// memory and goroutine figures.
func (l *Logger) LogStats(level int64) error {
	s := l.Stats()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	line := fmt.Sprintf("type=stats uptime_hours=%.2f dispatched=%d rotations=%d deletions=%d compressions=%d "+
		"compression_failures=%d open_failures=%d write_failures=%d alloc_mb=%.2f num_goroutine=%d",
		s.Uptime.Hours(), s.Dispatched, s.Rotations, s.Deletions, s.Compressions,
		s.CompressionFailures, s.OpenFailures, s.WriteFailures,
		float64(memStats.Alloc)/(1024*1024), runtime.NumGoroutine())

	return l.Logf(level, "%s", line)
}
