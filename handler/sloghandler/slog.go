// Package sloghandler provides a sink that forwards events to a
// log/slog logger, one child logger per category.
package sloghandler

import (
	"context"
	"log/slog"

	"github.com/philipp01105/catlog/core"
	"github.com/philipp01105/catlog/handler"
)

// LevelTrace sits below slog.LevelDebug, mirroring the gap slog leaves
// between its own levels.
const LevelTrace = slog.LevelDebug - 4

// SlogSink opens slog child loggers.
type SlogSink struct {
	base  *slog.Logger
	stats *handler.Stats
}

// NewSlogSink wraps base. A nil base uses slog.Default.
func NewSlogSink(base *slog.Logger) *SlogSink {
	if base == nil {
		base = slog.Default()
	}
	return &SlogSink{base: base, stats: handler.NewStats()}
}

// Open returns a handle backed by base.With(subsystem, category)
func (s *SlogSink) Open(subsystem, category string) (handler.Handle, error) {
	s.stats.IncrementOpened()
	l := s.base.With(
		slog.String("subsystem", subsystem),
		slog.String("category", category),
	)
	return &slogHandle{logger: l, stats: s.stats}, nil
}

// Close does nothing
func (s *SlogSink) Close() error { return nil }

// Stats returns a snapshot of the current statistics
func (s *SlogSink) Stats() handler.Snapshot {
	return s.stats.GetSnapshot()
}

// Level maps a catlog level to slog
func Level(level core.Level) slog.Level {
	switch level {
	case core.TraceLevel:
		return LevelTrace
	case core.DebugLevel:
		return slog.LevelDebug
	case core.InfoLevel:
		return slog.LevelInfo
	case core.WarnLevel:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

type slogHandle struct {
	logger *slog.Logger
	stats  *handler.Stats
}

func (h *slogHandle) Emit(level core.Level, payload []byte) error {
	ctx := context.Background()
	lvl := Level(level)
	if !h.logger.Enabled(ctx, lvl) {
		return nil
	}
	h.logger.Log(ctx, lvl, string(payload))
	h.stats.IncrementEmitted(level)
	return nil
}

var (
	_ handler.Sink          = (*SlogSink)(nil)
	_ handler.StatsProvider = (*SlogSink)(nil)
)
