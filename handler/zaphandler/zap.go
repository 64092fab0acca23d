// Package zaphandler provides a sink that forwards events to a zap
// logger. Each category gets a child logger named after it and carrying
// a "subsystem" field.
package zaphandler

import (
	"errors"
	"syscall"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/catlog/core"
	"github.com/philipp01105/catlog/handler"
)

// ZapSink opens zap child loggers.
type ZapSink struct {
	base  *zap.Logger
	stats *handler.Stats
}

// NewZapSink wraps base. A nil base uses zap.NewNop.
func NewZapSink(base *zap.Logger) *ZapSink {
	if base == nil {
		base = zap.NewNop()
	}
	return &ZapSink{base: base, stats: handler.NewStats()}
}

// Open returns a handle backed by base.Named(category).
func (s *ZapSink) Open(subsystem, category string) (handler.Handle, error) {
	s.stats.IncrementOpened()
	l := s.base
	if category != "" {
		l = l.Named(category)
	}
	if subsystem != "" {
		l = l.With(zap.String("subsystem", subsystem))
	}
	return &zapHandle{logger: l, stats: s.stats}, nil
}

// Close flushes the base logger. Sync errors from outputs that cannot be
// synced, such as a terminal or a pipe on stderr, are ignored.
func (s *ZapSink) Close() error {
	var err error
	for _, e := range multierr.Errors(s.base.Sync()) {
		if !unsyncable(e) {
			err = multierr.Append(err, e)
		}
	}
	return err
}

func unsyncable(err error) bool {
	return errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY)
}

// Stats returns a snapshot of the current statistics
func (s *ZapSink) Stats() handler.Snapshot {
	return s.stats.GetSnapshot()
}

// Level maps a catlog level to zap. zap has no trace level, so Trace
// maps to Debug.
func Level(level core.Level) zapcore.Level {
	switch level {
	case core.TraceLevel, core.DebugLevel:
		return zapcore.DebugLevel
	case core.InfoLevel:
		return zapcore.InfoLevel
	case core.WarnLevel:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

type zapHandle struct {
	logger *zap.Logger
	stats  *handler.Stats
}

func (h *zapHandle) Emit(level core.Level, payload []byte) error {
	if ce := h.logger.Check(Level(level), string(payload)); ce != nil {
		ce.Write()
		h.stats.IncrementEmitted(level)
	}
	return nil
}

var (
	_ handler.Sink          = (*ZapSink)(nil)
	_ handler.StatsProvider = (*ZapSink)(nil)
)
