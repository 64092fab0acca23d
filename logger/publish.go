package logger

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/philipp01105/catlog/core"
	"github.com/philipp01105/catlog/handler/consolehandler"
)

// slot holds a logger that can be set exactly once.
type slot struct {
	p atomic.Pointer[Logger]
}

func (s *slot) publish(l *Logger) error {
	if l == nil {
		return ErrNilLogger
	}
	if !s.p.CompareAndSwap(nil, l) {
		return ErrAlreadyPublished
	}
	return nil
}

func (s *slot) load() (*Logger, bool) {
	l := s.p.Load()
	return l, l != nil
}

var (
	global slot

	// fallback serves events logged before anything is published.
	fallback = sync.OnceValue(func() *Logger {
		return NewBuilder("").
			WithLevel(core.InfoLevel).
			WithSink(consolehandler.NewConsoleSink(consolehandler.ConsoleConfig{OmitSubsystem: true})).
			Build()
	})
)

// Publish makes l the process-wide logger. Only the first call succeeds;
// later calls return ErrAlreadyPublished and leave the published logger
// in place.
func Publish(l *Logger) error {
	return global.publish(l)
}

// Published returns the published logger, if there is one.
func Published() (*Logger, bool) {
	return global.load()
}

// Default returns the published logger, or a console logger on stderr
// at InfoLevel when nothing has been published yet.
func Default() *Logger {
	if l, ok := global.load(); ok {
		return l
	}
	return fallback()
}

// Package-level convenience functions using the default logger

// Log logs to category through the default logger
func Log(category string, level core.Level, msg string, fields ...core.Field) error {
	l := Default()
	if !l.filters.Enabled(category, level) {
		return nil
	}
	return l.emit(time.Now(), category, level, msg, fields, l.callerAt(1))
}

// Enabled reports whether the default logger would emit the event
func Enabled(category string, level core.Level) bool {
	return Default().Enabled(category, level)
}

// Category returns a category logger that always uses the current
// default logger, so it may be created before Publish.
func Category(name string) *CategoryLogger {
	return &CategoryLogger{name: name}
}
