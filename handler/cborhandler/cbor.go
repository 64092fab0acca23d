package cborhandler

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"

	"github.com/philipp01105/catlog/core"
	"github.com/philipp01105/catlog/handler"
)

// CBORSink appends one CBOR Record per event to a single stream. It is
// safe for concurrent use from multiple goroutines.
type CBORSink struct {
	session string
	mu      sync.Mutex
	encoder *cbor.Encoder
	closer  io.Closer
	closed  bool
	stats   *handler.Stats
}

// NewCBORSink creates a sink encoding to w. Every record carries a
// session ID that is fresh for each sink.
func NewCBORSink(w io.Writer) *CBORSink {
	s := &CBORSink{
		session: uuid.New().String(),
		encoder: encMode.NewEncoder(w),
		stats:   handler.NewStats(),
	}
	if c, ok := w.(io.Closer); ok {
		s.closer = c
	}
	return s
}

// NewCBORFileSink creates a sink appending to the file at path. The file
// is created with permissions 0644 if it doesn't exist.
func NewCBORFileSink(path string) (*CBORSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return NewCBORSink(f), nil
}

// Session returns the ID stamped on every record of this sink.
func (s *CBORSink) Session() string {
	return s.session
}

// Open returns the handle for category
func (s *CBORSink) Open(subsystem, category string) (handler.Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, handler.ErrClosed
	}
	s.stats.IncrementOpened()
	return &cborHandle{sink: s, subsystem: subsystem, category: category}, nil
}

// Close closes the underlying writer when it is an io.Closer.
// It is safe to call Close multiple times.
func (s *CBORSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

// Stats returns a snapshot of the current statistics
func (s *CBORSink) Stats() handler.Snapshot {
	return s.stats.GetSnapshot()
}

type cborHandle struct {
	sink      *CBORSink
	subsystem string
	category  string
}

func (h *cborHandle) Emit(level core.Level, payload []byte) error {
	rec := Record{
		Session:   h.sink.session,
		Time:      time.Now(),
		Subsystem: h.subsystem,
		Category:  h.category,
		Level:     level,
		Payload:   string(payload),
	}

	s := h.sink
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return handler.ErrClosed
	}
	if err := s.encoder.Encode(rec); err != nil {
		s.stats.IncrementFailed()
		return err
	}
	s.stats.IncrementEmitted(level)
	return nil
}

var (
	_ handler.Sink          = (*CBORSink)(nil)
	_ handler.StatsProvider = (*CBORSink)(nil)
)
