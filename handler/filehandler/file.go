package filehandler

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/philipp01105/catlog/core"
	"github.com/philipp01105/catlog/handler"
)

// FileConfig holds configuration for the file sink
type FileConfig struct {
	// Dir is the root directory; files go to Dir/<subsystem>/<category>.log
	Dir string
	// Extension of each category file (default: ".log")
	Extension string
	// FileMode for newly created files (default: 0644)
	FileMode os.FileMode
	// SyncEveryWrite calls fsync after each line
	SyncEveryWrite bool
	// TimestampFormat of the leading time column (default: RFC3339Nano)
	TimestampFormat string
}

// applyFileDefaults fills in zero-value fields with defaults.
func applyFileDefaults(cfg *FileConfig) {
	if cfg.Extension == "" {
		cfg.Extension = ".log"
	}
	if cfg.FileMode == 0 {
		cfg.FileMode = 0644
	}
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = time.RFC3339Nano
	}
}

// FileSink keeps one append-only file per category.
type FileSink struct {
	cfg    FileConfig
	mu     sync.Mutex // guards files and closed
	files  []*fileHandle
	closed bool
	stats  *handler.Stats
}

// NewFileSink creates a file sink rooted at cfg.Dir. The directory is
// created if needed.
func NewFileSink(cfg FileConfig) (*FileSink, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("filehandler: empty directory")
	}
	applyFileDefaults(&cfg)
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("filehandler: create %s: %w", cfg.Dir, err)
	}
	return &FileSink{cfg: cfg, stats: handler.NewStats()}, nil
}

// Path returns the file a category is written to.
func (s *FileSink) Path(subsystem, category string) string {
	return filepath.Join(s.cfg.Dir, sanitize(subsystem), sanitize(category)+s.cfg.Extension)
}

// Open creates or appends to the category's file. Errors from the
// filesystem are returned as is.
func (s *FileSink) Open(subsystem, category string) (handler.Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, handler.ErrClosed
	}

	path := s.Path(subsystem, category)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, s.cfg.FileMode)
	if err != nil {
		return nil, err
	}

	h := &fileHandle{sink: s, file: f}
	s.files = append(s.files, h)
	s.stats.IncrementOpened()
	return h, nil
}

// Close syncs and closes every file opened by the sink
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	var err error
	for _, h := range s.files {
		err = multierr.Append(err, h.close())
	}
	s.files = nil
	return err
}

// Stats returns a snapshot of the current statistics
func (s *FileSink) Stats() handler.Snapshot {
	return s.stats.GetSnapshot()
}

type fileHandle struct {
	sink   *FileSink
	mu     sync.Mutex
	file   *os.File
	buf    bytes.Buffer
	closed bool
}

func (h *fileHandle) Emit(level core.Level, payload []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return handler.ErrClosed
	}

	h.buf.Reset()
	h.buf.Write(time.Now().AppendFormat(h.buf.AvailableBuffer(), h.sink.cfg.TimestampFormat))
	h.buf.WriteByte(' ')
	h.buf.WriteString(level.String())
	h.buf.WriteByte(' ')
	h.buf.Write(payload)
	h.buf.WriteByte('\n')

	if _, err := h.file.Write(h.buf.Bytes()); err != nil {
		h.sink.stats.IncrementFailed()
		return err
	}
	if h.sink.cfg.SyncEveryWrite {
		if err := h.file.Sync(); err != nil {
			h.sink.stats.IncrementFailed()
			return err
		}
	}
	h.sink.stats.IncrementEmitted(level)
	return nil
}

// Close releases the file ahead of the sink. Later Emits return
// handler.ErrClosed.
func (h *fileHandle) Close() error {
	s := h.sink
	s.mu.Lock()
	s.files = slices.DeleteFunc(s.files, func(f *fileHandle) bool { return f == h })
	s.mu.Unlock()
	return h.close()
}

func (h *fileHandle) close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true
	return multierr.Append(h.file.Sync(), h.file.Close())
}

// sanitize maps a subsystem or category name onto a single safe path
// element. Distinct names may map to the same file.
func sanitize(name string) string {
	if name == "" {
		return "_"
	}
	if name == "." || name == ".." {
		return strings.Repeat("_", len(name))
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == 0:
			return '_'
		case r < 0x20:
			return '_'
		}
		return r
	}, name)
}

var (
	_ handler.Sink          = (*FileSink)(nil)
	_ handler.StatsProvider = (*FileSink)(nil)
)
