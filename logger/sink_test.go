package logger

import (
	"sync"
	"sync/atomic"

	"github.com/philipp01105/catlog/core"
	"github.com/philipp01105/catlog/handler"
)

type record struct {
	Subsystem string
	Category  string
	Level     core.Level
	Payload   string
}

// recordingSink counts Open calls and keeps a copy of every payload.
type recordingSink struct {
	opens   atomic.Int64
	openErr error

	mu      sync.Mutex
	opened  []string
	records []record
	closed  bool
}

func (s *recordingSink) Open(subsystem, category string) (handler.Handle, error) {
	s.opens.Add(1)
	if s.openErr != nil {
		return nil, s.openErr
	}
	s.mu.Lock()
	s.opened = append(s.opened, category)
	s.mu.Unlock()
	return handler.HandleFunc(func(level core.Level, payload []byte) error {
		s.mu.Lock()
		s.records = append(s.records, record{subsystem, category, level, string(payload)})
		s.mu.Unlock()
		return nil
	}), nil
}

func (s *recordingSink) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

func (s *recordingSink) Records() []record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]record, len(s.records))
	copy(out, s.records)
	return out
}

func (s *recordingSink) Opened() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.opened))
	copy(out, s.opened)
	return out
}
