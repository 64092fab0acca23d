package handler

import (
	"errors"
	"io"

	"github.com/philipp01105/catlog/core"
)

// ErrClosed is returned by handles whose sink has been closed.
var ErrClosed = errors.New("handler: sink closed")

// Handle is an output bound to one (subsystem, category) pair. A handle
// that holds a resource of its own may also implement io.Closer so it
// can be released before its sink is closed.
type Handle interface {
	// Emit writes one formatted payload at the given level. The payload
	// is only valid until Emit returns.
	Emit(level core.Level, payload []byte) error
}

// Sink creates handles and owns whatever resources they share.
type Sink interface {
	// Open acquires the handle for category within subsystem. It is
	// called at most once per category by the logger's handle cache.
	Open(subsystem, category string) (Handle, error)

	// Close releases the sink and every handle it opened
	Close() error
}

// CloseHandle releases h if it implements io.Closer and does nothing
// otherwise.
func CloseHandle(h Handle) error {
	if c, ok := h.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// StatsProvider is implemented by sinks that count their writes.
type StatsProvider interface {
	Stats() Snapshot
}

// HandleFunc adapts a function to the Handle interface.
type HandleFunc func(level core.Level, payload []byte) error

// Emit calls f(level, payload)
func (f HandleFunc) Emit(level core.Level, payload []byte) error {
	return f(level, payload)
}

// NopSink opens handles that discard everything.
type NopSink struct{}

// Open returns a discarding handle
func (NopSink) Open(string, string) (Handle, error) {
	return nopHandle{}, nil
}

// Close does nothing
func (NopSink) Close() error { return nil }

type nopHandle struct{}

func (nopHandle) Emit(core.Level, []byte) error { return nil }

var (
	_ Sink   = NopSink{}
	_ Handle = HandleFunc(nil)
)
