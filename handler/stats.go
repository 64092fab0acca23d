package handler

import (
	"sync/atomic"

	"github.com/philipp01105/catlog/core"
)

// Stats tracks per-sink write counters. All methods are safe for
// concurrent use.
type Stats struct {
	emitted [core.OffLevel]atomic.Uint64
	failed  atomic.Uint64
	opened  atomic.Uint64
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

// IncrementEmitted counts a successful write at level
func (s *Stats) IncrementEmitted(level core.Level) {
	if level.Valid() {
		s.emitted[level].Add(1)
	}
}

// IncrementFailed counts a write that returned an error
func (s *Stats) IncrementFailed() {
	s.failed.Add(1)
}

// IncrementOpened counts a handle acquisition
func (s *Stats) IncrementOpened() {
	s.opened.Add(1)
}

// GetEmitted returns the emitted count for a level
func (s *Stats) GetEmitted(level core.Level) uint64 {
	if !level.Valid() {
		return 0
	}
	return s.emitted[level].Load()
}

// GetTotalEmitted returns the emitted count across all levels
func (s *Stats) GetTotalEmitted() uint64 {
	var total uint64
	for i := range s.emitted {
		total += s.emitted[i].Load()
	}
	return total
}

// Reset resets all counters to zero
func (s *Stats) Reset() {
	for i := range s.emitted {
		s.emitted[i].Store(0)
	}
	s.failed.Store(0)
	s.opened.Store(0)
}

// Snapshot is a point-in-time copy of Stats
type Snapshot struct {
	Emitted      map[core.Level]uint64
	EmittedTotal uint64
	Failed       uint64
	Opened       uint64
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	snap := Snapshot{
		Emitted: make(map[core.Level]uint64, len(s.emitted)),
		Failed:  s.failed.Load(),
		Opened:  s.opened.Load(),
	}
	for i := range s.emitted {
		n := s.emitted[i].Load()
		snap.Emitted[core.Level(i)] = n
		snap.EmittedTotal += n
	}
	return snap
}
