package syslog

import (
	"sync"
	"sync/atomic"
	"time"
)

// State holds the runtime counters of a Logger. Counters are written with
// the dispatch lock held but may be read concurrently.
type State struct {
	ShutdownCalled  atomic.Bool
	LoggerStartTime atomic.Value // time.Time

	TotalDispatched     atomic.Uint64 // events dispatched, self-logs included
	TotalRotations      atomic.Uint64 // size-triggered file rollovers
	TotalDeletions      atomic.Uint64 // old files removed by retention
	TotalCompressions   atomic.Uint64 // closed files compressed successfully
	CompressionFailures atomic.Uint64
	OpenFailures        atomic.Uint64
	WriteFailures       atomic.Uint64
}

// Stats is a point-in-time copy of State.
type Stats struct {
	Uptime              time.Duration
	Dispatched          uint64
	Rotations           uint64
	Deletions           uint64
	Compressions        uint64
	CompressionFailures uint64
	OpenFailures        uint64
	WriteFailures       uint64
}

func (s *State) snapshot() Stats {
	var uptime time.Duration
	if start, ok := s.LoggerStartTime.Load().(time.Time); ok && !start.IsZero() {
		uptime = time.Since(start)
	}
	return Stats{
		Uptime:              uptime,
		Dispatched:          s.TotalDispatched.Load(),
		Rotations:           s.TotalRotations.Load(),
		Deletions:           s.TotalDeletions.Load(),
		Compressions:        s.TotalCompressions.Load(),
		CompressionFailures: s.CompressionFailures.Load(),
		OpenFailures:        s.OpenFailures.Load(),
		WriteFailures:       s.WriteFailures.Load(),
	}
}

// noopLocker replaces the dispatch mutex in single-threaded mode.
type noopLocker struct{}

func (noopLocker) Lock()   {}
func (noopLocker) Unlock() {}

var _ sync.Locker = noopLocker{}
