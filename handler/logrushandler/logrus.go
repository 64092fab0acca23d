// Package logrushandler provides a sink that forwards events to a
// logrus logger through one *logrus.Entry per category.
package logrushandler

import (
	"github.com/sirupsen/logrus"

	"github.com/philipp01105/catlog/core"
	"github.com/philipp01105/catlog/handler"
)

// LogrusSink opens logrus entries carrying subsystem and category fields.
type LogrusSink struct {
	base  *logrus.Logger
	stats *handler.Stats
}

// NewLogrusSink wraps base. A nil base uses logrus.StandardLogger.
func NewLogrusSink(base *logrus.Logger) *LogrusSink {
	if base == nil {
		base = logrus.StandardLogger()
	}
	return &LogrusSink{base: base, stats: handler.NewStats()}
}

// Open returns a handle backed by a logrus entry
func (s *LogrusSink) Open(subsystem, category string) (handler.Handle, error) {
	s.stats.IncrementOpened()
	entry := s.base.WithFields(logrus.Fields{
		"subsystem": subsystem,
		"category":  category,
	})
	return &logrusHandle{entry: entry, stats: s.stats}, nil
}

// Close does nothing; the logrus logger's output belongs to the caller.
func (s *LogrusSink) Close() error { return nil }

// Stats returns a snapshot of the current statistics
func (s *LogrusSink) Stats() handler.Snapshot {
	return s.stats.GetSnapshot()
}

// Level maps a catlog level to logrus
func Level(level core.Level) logrus.Level {
	switch level {
	case core.TraceLevel:
		return logrus.TraceLevel
	case core.DebugLevel:
		return logrus.DebugLevel
	case core.InfoLevel:
		return logrus.InfoLevel
	case core.WarnLevel:
		return logrus.WarnLevel
	default:
		return logrus.ErrorLevel
	}
}

type logrusHandle struct {
	entry *logrus.Entry
	stats *handler.Stats
}

func (h *logrusHandle) Emit(level core.Level, payload []byte) error {
	lvl := Level(level)
	if !h.entry.Logger.IsLevelEnabled(lvl) {
		return nil
	}
	h.entry.Log(lvl, string(payload))
	h.stats.IncrementEmitted(level)
	return nil
}

var (
	_ handler.Sink          = (*LogrusSink)(nil)
	_ handler.StatsProvider = (*LogrusSink)(nil)
)
