package consolehandler

import (
	"bytes"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/philipp01105/catlog/core"
	"github.com/philipp01105/catlog/handler"
)

// isConcurrentSafeWriter returns true if the writer is known to be safe for
// concurrent Write calls, allowing the sink to skip write-level locking.
func isConcurrentSafeWriter(w io.Writer) bool {
	if w == io.Discard {
		return true
	}
	_, ok := w.(*os.File)
	return ok
}

// ConsoleConfig holds configuration for the console sink
type ConsoleConfig struct {
	// Writer to write to (default: os.Stderr)
	Writer io.Writer
	// Timestamp prefixes every line with the write time
	Timestamp bool
	// TimestampFormat for Timestamp (default: RFC3339Nano)
	TimestampFormat string
	// OmitSubsystem drops the subsystem column from each line
	OmitSubsystem bool
	// ConcurrentWriter indicates the Writer supports concurrent Write calls.
	// Automatically detected for io.Discard and *os.File.
	ConcurrentWriter bool
}

// applyConsoleDefaults fills in zero-value fields with defaults.
func applyConsoleDefaults(cfg *ConsoleConfig) {
	if cfg.Writer == nil {
		cfg.Writer = os.Stderr
	}
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = time.RFC3339Nano
	}
}

// ConsoleSink writes one line per event:
//
//	[time ]LEVEL subsystem payload
//
// Every handle shares the sink's writer; a line is always written with a
// single Write call.
type ConsoleSink struct {
	cfg            ConsoleConfig
	concurrentSafe bool
	mu             sync.Mutex // serializes writes for non-concurrent writers
	stats          *handler.Stats
	closed         atomic.Bool
}

// NewConsoleSink creates a new console sink
func NewConsoleSink(cfg ConsoleConfig) *ConsoleSink {
	applyConsoleDefaults(&cfg)
	return &ConsoleSink{
		cfg:            cfg,
		concurrentSafe: cfg.ConcurrentWriter || isConcurrentSafeWriter(cfg.Writer),
		stats:          handler.NewStats(),
	}
}

// Open returns the handle for category. Opening never fails while the
// sink is open.
func (s *ConsoleSink) Open(subsystem, category string) (handler.Handle, error) {
	if s.closed.Load() {
		return nil, handler.ErrClosed
	}
	s.stats.IncrementOpened()
	h := &consoleHandle{sink: s}
	if !s.cfg.OmitSubsystem && subsystem != "" {
		h.prefix = subsystem + " "
	}
	return h, nil
}

// Close marks the sink closed. The underlying writer is left open since
// it is usually stdout or stderr.
func (s *ConsoleSink) Close() error {
	s.closed.Store(true)
	return nil
}

// Stats returns a snapshot of the current statistics
func (s *ConsoleSink) Stats() handler.Snapshot {
	return s.stats.GetSnapshot()
}

// pre-padded level columns
var levelColumns = [...]string{
	core.TraceLevel: "TRACE ",
	core.DebugLevel: "DEBUG ",
	core.InfoLevel:  "INFO  ",
	core.WarnLevel:  "WARN  ",
	core.ErrorLevel: "ERROR ",
}

var linePool = sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func (s *ConsoleSink) write(prefix string, level core.Level, payload []byte) error {
	if s.closed.Load() {
		return handler.ErrClosed
	}

	buf := linePool.Get().(*bytes.Buffer)
	buf.Reset()
	if s.cfg.Timestamp {
		buf.Write(time.Now().AppendFormat(buf.AvailableBuffer(), s.cfg.TimestampFormat))
		buf.WriteByte(' ')
	}
	if level.Valid() {
		buf.WriteString(levelColumns[level])
	} else {
		buf.WriteString("????? ")
	}
	buf.WriteString(prefix)
	buf.Write(payload)
	buf.WriteByte('\n')

	var err error
	if s.concurrentSafe {
		_, err = s.cfg.Writer.Write(buf.Bytes())
	} else {
		s.mu.Lock()
		_, err = s.cfg.Writer.Write(buf.Bytes())
		s.mu.Unlock()
	}
	linePool.Put(buf)

	if err != nil {
		s.stats.IncrementFailed()
		return err
	}
	s.stats.IncrementEmitted(level)
	return nil
}

type consoleHandle struct {
	sink   *ConsoleSink
	prefix string
}

func (h *consoleHandle) Emit(level core.Level, payload []byte) error {
	return h.sink.write(h.prefix, level, payload)
}

var (
	_ handler.Sink          = (*ConsoleSink)(nil)
	_ handler.StatsProvider = (*ConsoleSink)(nil)
)
