package logger

import (
	"fmt"
	"time"

	"github.com/philipp01105/catlog/core"
)

// CategoryLogger logs to one category. Its level methods have no error
// result; failures go to the logger's error handler.
type CategoryLogger struct {
	logger *Logger // nil: whatever Default returns at call time
	name   string
}

// Category returns a logger bound to the named category.
func (l *Logger) Category(name string) *CategoryLogger {
	return &CategoryLogger{logger: l, name: name}
}

// Name returns the category name
func (c *CategoryLogger) Name() string {
	return c.name
}

func (c *CategoryLogger) target() *Logger {
	if c.logger != nil {
		return c.logger
	}
	return Default()
}

// Enabled reports whether an event at level would be emitted
func (c *CategoryLogger) Enabled(level core.Level) bool {
	return c.target().Enabled(c.name, level)
}

// Log logs at level and returns the error instead of reporting it
func (c *CategoryLogger) Log(level core.Level, msg string, fields ...core.Field) error {
	l := c.target()
	if !l.filters.Enabled(c.name, level) {
		return nil
	}
	return l.emit(time.Now(), c.name, level, msg, fields, l.callerAt(1))
}

func (c *CategoryLogger) logAt(level core.Level, msg string, fields []core.Field) {
	l := c.target()
	if !l.filters.Enabled(c.name, level) {
		return
	}
	l.report(l.emit(time.Now(), c.name, level, msg, fields, l.callerAt(2)))
}

func (c *CategoryLogger) logfAt(level core.Level, format string, args []interface{}) {
	l := c.target()
	if !l.filters.Enabled(c.name, level) {
		return
	}
	l.report(l.emit(time.Now(), c.name, level, fmt.Sprintf(format, args...), nil, l.callerAt(2)))
}

// Trace logs a trace message
func (c *CategoryLogger) Trace(msg string, fields ...core.Field) {
	c.logAt(core.TraceLevel, msg, fields)
}

// Debug logs a debug message
func (c *CategoryLogger) Debug(msg string, fields ...core.Field) {
	c.logAt(core.DebugLevel, msg, fields)
}

// Info logs an info message
func (c *CategoryLogger) Info(msg string, fields ...core.Field) {
	c.logAt(core.InfoLevel, msg, fields)
}

// Warn logs a warning message
func (c *CategoryLogger) Warn(msg string, fields ...core.Field) {
	c.logAt(core.WarnLevel, msg, fields)
}

// Error logs an error message
func (c *CategoryLogger) Error(msg string, fields ...core.Field) {
	c.logAt(core.ErrorLevel, msg, fields)
}

// Tracef logs a trace message with formatting
func (c *CategoryLogger) Tracef(format string, args ...interface{}) {
	c.logfAt(core.TraceLevel, format, args)
}

// Debugf logs a debug message with formatting
func (c *CategoryLogger) Debugf(format string, args ...interface{}) {
	c.logfAt(core.DebugLevel, format, args)
}

// Infof logs an info message with formatting
func (c *CategoryLogger) Infof(format string, args ...interface{}) {
	c.logfAt(core.InfoLevel, format, args)
}

// Warnf logs a warning message with formatting
func (c *CategoryLogger) Warnf(format string, args ...interface{}) {
	c.logfAt(core.WarnLevel, format, args)
}

// Errorf logs an error message with formatting
func (c *CategoryLogger) Errorf(format string, args ...interface{}) {
	c.logfAt(core.ErrorLevel, format, args)
}
