package logger

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"time"

	"github.com/philipp01105/catlog/core"
)

// SlogHandler is an adapter that implements slog.Handler on top of a
// Logger, sending every record to one category. The category's filter
// decides what slog's Enabled check lets through.
type SlogHandler struct {
	logger   *Logger
	category string
	attrs    []core.Field
	group    string
}

// NewSlogHandler creates a slog.Handler that logs to category.
func NewSlogHandler(l *Logger, category string) *SlogHandler {
	return &SlogHandler{logger: l, category: category}
}

// Slog returns a *slog.Logger that logs to category.
func (l *Logger) Slog(category string) *slog.Logger {
	return slog.New(NewSlogHandler(l, category))
}

// Enabled reports whether the handler handles records at the given level.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return s.logger.Enabled(s.category, slogLevelToCore(level))
}

// Handle converts the record's attributes to fields and emits it.
func (s *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	level := slogLevelToCore(record.Level)
	if !s.logger.Enabled(s.category, level) {
		return nil
	}

	fields := make([]core.Field, 0, len(s.attrs)+record.NumAttrs())
	fields = append(fields, s.attrs...)
	record.Attrs(func(a slog.Attr) bool {
		fields = appendAttr(fields, s.group, a)
		return true
	})

	t := record.Time
	if t.IsZero() {
		t = time.Now()
	}

	var caller core.CallerInfo
	if s.logger.includeCaller && record.PC != 0 {
		caller = callerFromPC(record.PC)
	}

	return s.logger.emit(t, s.category, level, record.Message, fields, caller)
}

// WithAttrs returns a new SlogHandler with additional attributes.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return s
	}
	newAttrs := make([]core.Field, len(s.attrs), len(s.attrs)+len(attrs))
	copy(newAttrs, s.attrs)
	for _, a := range attrs {
		newAttrs = appendAttr(newAttrs, s.group, a)
	}
	return &SlogHandler{
		logger:   s.logger,
		category: s.category,
		attrs:    newAttrs,
		group:    s.group,
	}
}

// WithGroup returns a new SlogHandler with the given group name.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	newGroup := name
	if s.group != "" {
		newGroup = s.group + "." + name
	}
	return &SlogHandler{
		logger:   s.logger,
		category: s.category,
		attrs:    s.attrs[:len(s.attrs):len(s.attrs)],
		group:    newGroup,
	}
}

// slogLevelToCore converts a slog.Level to a core.Level. Anything below
// slog.LevelDebug is trace.
func slogLevelToCore(level slog.Level) core.Level {
	switch {
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarnLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	case level >= slog.LevelDebug:
		return core.DebugLevel
	default:
		return core.TraceLevel
	}
}

// appendAttr converts a slog.Attr to fields, prepending the group prefix
// if present. Groups are flattened into dotted keys.
func appendAttr(dst []core.Field, group string, a slog.Attr) []core.Field {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return dst
	}

	key := a.Key
	if group != "" && key != "" {
		key = group + "." + a.Key
	} else if key == "" {
		key = group
	}

	switch a.Value.Kind() {
	case slog.KindString:
		return append(dst, core.Field{Key: key, Type: core.StringType, Str: a.Value.String()})
	case slog.KindInt64:
		return append(dst, core.Field{Key: key, Type: core.Int64Type, Int64: a.Value.Int64()})
	case slog.KindUint64:
		return append(dst, core.Field{Key: key, Type: core.Uint64Type, Int64: int64(a.Value.Uint64())})
	case slog.KindFloat64:
		return append(dst, core.Field{Key: key, Type: core.Float64Type, Float64: a.Value.Float64()})
	case slog.KindBool:
		return append(dst, Bool(key, a.Value.Bool()))
	case slog.KindTime:
		return append(dst, Time(key, a.Value.Time()))
	case slog.KindDuration:
		return append(dst, core.Field{Key: key, Type: core.DurationType, Int64: int64(a.Value.Duration())})
	case slog.KindGroup:
		for _, ga := range a.Value.Group() {
			dst = appendAttr(dst, key, ga)
		}
		return dst
	default:
		if err, ok := a.Value.Any().(error); ok {
			return append(dst, NamedErr(key, err))
		}
		return append(dst, core.Field{Key: key, Type: core.AnyType, Any: a.Value.Any()})
	}
}

func callerFromPC(pc uintptr) core.CallerInfo {
	frames := runtime.CallersFrames([]uintptr{pc})
	f, _ := frames.Next()
	if f.File == "" {
		return core.CallerInfo{}
	}
	return core.CallerInfo{
		File:      f.File,
		ShortFile: filepath.Base(f.File),
		Line:      f.Line,
		Function:  f.Function,
		Defined:   true,
	}
}

var _ slog.Handler = (*SlogHandler)(nil)
