package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/philipp01105/catlog/config"
	"github.com/philipp01105/catlog/core"
	"github.com/philipp01105/catlog/filter"
	"github.com/philipp01105/catlog/formatter"
	"github.com/philipp01105/catlog/handlecache"
	"github.com/philipp01105/catlog/handler"
	"github.com/philipp01105/catlog/handler/consolehandler"
)

var (
	// ErrAlreadyPublished is returned by every Publish after the first.
	ErrAlreadyPublished = errors.New("logger: a logger has already been published")
	// ErrConfigFrozen is returned when the filters of a built Logger are modified.
	ErrConfigFrozen = filter.ErrFrozen
	// ErrNilLogger is returned by Publish(nil).
	ErrNilLogger = errors.New("logger: nil logger")
)

// HandleError reports that the sink could not open the handle for a
// category. It is returned for that call only; the next event for the
// same category tries again.
type HandleError struct {
	Subsystem string
	Category  string
	Err       error
}

func (e *HandleError) Error() string {
	return fmt.Sprintf("logger: opening handle for %s/%s: %v", e.Subsystem, e.Category, e.Err)
}

func (e *HandleError) Unwrap() error { return e.Err }

// Logger routes events to per-category handles (immutable)
type Logger struct {
	subsystem     string
	filters       *filter.Table
	handles       *handlecache.Cache[handler.Handle]
	sink          handler.Sink
	formatter     formatter.Formatter
	bufFormatter  formatter.BufferFormatter
	fields        []core.Field
	includeCaller bool
	callerSkip    int
	onError       func(error)
}

// Builder provides a fluent API for building Logger instances
type Builder struct {
	subsystem     string
	filters       *filter.Table
	sink          handler.Sink
	formatter     formatter.Formatter
	fields        []core.Field
	includeCaller bool
	callerSkip    int
	onError       func(error)
	stderr        bool
	stderrWriter  io.Writer
	err           error
}

// NewBuilder creates a builder for subsystem. Until WithLevel says
// otherwise every category is enabled down to TraceLevel.
func NewBuilder(subsystem string) *Builder {
	return &Builder{
		subsystem:    subsystem,
		filters:      filter.New(core.TraceLevel),
		onError:      stderrErrorHandler,
		stderrWriter: os.Stderr,
	}
}

func stderrErrorHandler(err error) {
	fmt.Fprintf(os.Stderr, "catlog: %v\n", err)
}

func (b *Builder) fail(err error) {
	if err != nil && b.err == nil {
		b.err = err
	}
}

// WithLevel sets the threshold for categories no prefix rule matches
func (b *Builder) WithLevel(level core.Level) *Builder {
	b.fail(b.filters.SetDefault(level))
	return b
}

// WithCategoryLevel sets the threshold for every category starting with
// prefix. Calling it again for the same prefix replaces the level.
func (b *Builder) WithCategoryLevel(prefix string, level core.Level) *Builder {
	b.fail(b.filters.Set(prefix, level))
	return b
}

// WithSink sets the sink handles are opened from
func (b *Builder) WithSink(s handler.Sink) *Builder {
	b.sink = s
	return b
}

// WithFormatter sets the payload formatter
func (b *Builder) WithFormatter(f formatter.Formatter) *Builder {
	b.formatter = f
	return b
}

// WithCaller enables caller information
func (b *Builder) WithCaller(enabled bool) *Builder {
	b.includeCaller = enabled
	return b
}

// WithCallerSkip skips n additional frames when capturing the caller,
// for wrappers around the logger.
func (b *Builder) WithCallerSkip(n int) *Builder {
	b.callerSkip = n
	return b
}

// WithFields adds default fields to all log entries
func (b *Builder) WithFields(fields ...core.Field) *Builder {
	b.fields = append(b.fields, fields...)
	return b
}

// WithErrorHandler sets where errors from methods without an error
// result go. A nil fn restores the default, which prints to stderr.
func (b *Builder) WithErrorHandler(fn func(error)) *Builder {
	if fn == nil {
		fn = stderrErrorHandler
	}
	b.onError = fn
	return b
}

// WithStderr mirrors every event to a console sink on stderr.
func (b *Builder) WithStderr(enabled bool) *Builder {
	b.stderr = enabled
	return b
}

// WithConfig applies cfg on top of the builder. Its rules are applied
// in order, so a later rule for the same prefix wins.
func (b *Builder) WithConfig(cfg config.Config) *Builder {
	if err := cfg.Validate(); err != nil {
		b.fail(err)
		return b
	}
	if cfg.Subsystem != "" {
		b.subsystem = cfg.Subsystem
	}
	if cfg.Level != nil {
		b.WithLevel(*cfg.Level)
	}
	for _, r := range cfg.Categories {
		b.WithCategoryLevel(r.Prefix, r.Level)
	}
	if cfg.Stderr {
		b.stderr = true
	}
	return b
}

// FromEnv applies the directives in $CATLOG, if set.
func (b *Builder) FromEnv() *Builder {
	return b.FromEnvVar(config.DefaultEnvVar)
}

// FromEnvVar applies the directives in the named environment variable.
func (b *Builder) FromEnvVar(name string) *Builder {
	cfg, err := config.FromEnv(name)
	if err != nil {
		b.fail(err)
		return b
	}
	return b.WithConfig(cfg)
}

// Err returns the first configuration error, if any. Build ignores the
// setting that caused it.
func (b *Builder) Err() error {
	return b.err
}

// Build creates the Logger instance. The filters are copied and frozen,
// so later builder calls do not affect it. A configuration error is
// reported to the error handler.
func (b *Builder) Build() *Logger {
	if b.err != nil {
		b.onError(b.err)
	}

	table := b.filters.Clone()
	table.Freeze()

	sink := b.sink
	switch {
	case sink == nil:
		sink = consolehandler.NewConsoleSink(consolehandler.ConsoleConfig{Writer: b.stderrWriter})
	case b.stderr:
		sink = handler.NewMultiSink(sink, consolehandler.NewConsoleSink(consolehandler.ConsoleConfig{Writer: b.stderrWriter}))
	}

	f := b.formatter
	if f == nil {
		f = formatter.NewTextFormatter(formatter.Config{IncludeCaller: b.includeCaller})
	}
	bf, _ := f.(formatter.BufferFormatter)

	fields := make([]core.Field, len(b.fields))
	copy(fields, b.fields)

	subsystem := b.subsystem
	l := &Logger{
		subsystem:     subsystem,
		filters:       table,
		sink:          sink,
		formatter:     f,
		bufFormatter:  bf,
		fields:        fields,
		includeCaller: b.includeCaller,
		callerSkip:    b.callerSkip,
		onError:       b.onError,
	}
	l.handles = handlecache.New(func(category string) (handler.Handle, error) {
		return sink.Open(subsystem, category)
	})
	return l
}

// Init builds the logger and publishes it as the process-wide logger.
// Nothing is published when the configuration is invalid.
func (b *Builder) Init() error {
	if b.err != nil {
		return b.err
	}
	return Publish(b.Build())
}

// Subsystem returns the subsystem every handle is opened under
func (l *Logger) Subsystem() string {
	return l.subsystem
}

// Filters returns the frozen filter table. Set on it fails with
// ErrConfigFrozen.
func (l *Logger) Filters() *filter.Table {
	return l.filters
}

// Handles returns the number of categories with an open handle
func (l *Logger) Handles() int {
	return l.handles.Len()
}

// Sink returns the sink handles are opened from
func (l *Logger) Sink() handler.Sink {
	return l.sink
}

// With creates a new Logger with additional fields (immutable operation).
// The child shares the parent's filters and handles.
func (l *Logger) With(fields ...core.Field) *Logger {
	newFields := make([]core.Field, len(l.fields)+len(fields))
	copy(newFields, l.fields)
	copy(newFields[len(l.fields):], fields)

	child := *l
	child.fields = newFields
	return &child
}

// Enabled reports whether an event at level for category would be emitted.
func (l *Logger) Enabled(category string, level core.Level) bool {
	return l.filters.Enabled(category, level)
}

// Log emits msg for category if level passes the category's threshold.
// A filtered event touches nothing and returns nil. Otherwise the error
// is a *HandleError when the handle could not be opened, or the handle's
// own Emit error.
func (l *Logger) Log(category string, level core.Level, msg string, fields ...core.Field) error {
	// Level check before any allocation or handle lookup
	if !l.filters.Enabled(category, level) {
		return nil
	}
	return l.emit(time.Now(), category, level, msg, fields, l.callerAt(1))
}

// callerAt captures the caller skip frames above the function calling
// callerAt, when caller capture is on.
func (l *Logger) callerAt(skip int) core.CallerInfo {
	if !l.includeCaller {
		return core.CallerInfo{}
	}
	return core.GetCaller(skip + 1 + l.callerSkip)
}

// emit is the shared path behind every enabled event.
func (l *Logger) emit(t time.Time, category string, level core.Level, msg string, fields []core.Field, caller core.CallerInfo) error {
	h, err := l.handles.GetOrCreate(category)
	if err != nil {
		return &HandleError{Subsystem: l.subsystem, Category: category, Err: err}
	}

	entry := core.GetEntry()
	entry.Time = t
	entry.Level = level
	entry.Subsystem = l.subsystem
	entry.Category = category
	entry.Message = msg
	entry.Caller = caller

	// Add logger's default fields
	if len(l.fields) > 0 {
		entry.Fields = append(entry.Fields, l.fields...)
	}
	// Add provided fields
	if len(fields) > 0 {
		entry.Fields = append(entry.Fields, fields...)
	}

	if l.bufFormatter != nil {
		buf := formatter.GetBuffer()
		l.bufFormatter.FormatEntry(entry, buf)
		err = h.Emit(level, buf.Bytes())
		formatter.PutBuffer(buf)
	} else {
		var payload []byte
		payload, err = l.formatter.Format(entry)
		if err != nil {
			err = fmt.Errorf("logger: formatting %s event: %w", category, err)
		} else {
			err = h.Emit(level, payload)
		}
	}

	core.PutEntry(entry)
	return err
}

// report hands err to the error handler when it is not nil.
func (l *Logger) report(err error) {
	if err != nil {
		l.onError(err)
	}
}

// Close closes the logger's sink. Children created by With share it.
func (l *Logger) Close() error {
	if l.sink != nil {
		return l.sink.Close()
	}
	return nil
}
