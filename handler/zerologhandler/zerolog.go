// Package zerologhandler provides a sink that forwards events to a
// zerolog logger, one child logger per category with "subsystem" and
// "category" fields.
package zerologhandler

import (
	"github.com/rs/zerolog"

	"github.com/philipp01105/catlog/core"
	"github.com/philipp01105/catlog/handler"
)

// ZerologSink opens zerolog child loggers.
type ZerologSink struct {
	base  zerolog.Logger
	stats *handler.Stats
}

// NewZerologSink wraps base.
func NewZerologSink(base zerolog.Logger) *ZerologSink {
	return &ZerologSink{base: base, stats: handler.NewStats()}
}

// Open returns a handle backed by a child of base.
func (s *ZerologSink) Open(subsystem, category string) (handler.Handle, error) {
	s.stats.IncrementOpened()
	l := s.base.With().
		Str("subsystem", subsystem).
		Str("category", category).
		Logger()
	return &zerologHandle{logger: l, stats: s.stats}, nil
}

// Close does nothing; zerolog writes synchronously.
func (s *ZerologSink) Close() error { return nil }

// Stats returns a snapshot of the current statistics
func (s *ZerologSink) Stats() handler.Snapshot {
	return s.stats.GetSnapshot()
}

// Level maps a catlog level to zerolog
func Level(level core.Level) zerolog.Level {
	switch level {
	case core.TraceLevel:
		return zerolog.TraceLevel
	case core.DebugLevel:
		return zerolog.DebugLevel
	case core.InfoLevel:
		return zerolog.InfoLevel
	case core.WarnLevel:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

type zerologHandle struct {
	logger zerolog.Logger
	stats  *handler.Stats
}

func (h *zerologHandle) Emit(level core.Level, payload []byte) error {
	if ev := h.logger.WithLevel(Level(level)); ev != nil {
		ev.Msg(string(payload))
		h.stats.IncrementEmitted(level)
	}
	return nil
}

var (
	_ handler.Sink          = (*ZerologSink)(nil)
	_ handler.StatsProvider = (*ZerologSink)(nil)
)
