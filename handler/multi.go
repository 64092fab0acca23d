package handler

import (
	"go.uber.org/multierr"

	"github.com/philipp01105/catlog/core"
)

// MultiSink opens one handle per child sink and fans every payload out
// to all of them.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink creates a sink that writes to every child. Nil children
// are skipped.
func NewMultiSink(sinks ...Sink) *MultiSink {
	m := &MultiSink{sinks: make([]Sink, 0, len(sinks))}
	for _, s := range sinks {
		if s != nil {
			m.sinks = append(m.sinks, s)
		}
	}
	return m
}

// Open opens category on every child. If any child fails the handles
// the others opened are closed and the combined error is returned.
func (m *MultiSink) Open(subsystem, category string) (Handle, error) {
	handles := make(multiHandle, 0, len(m.sinks))
	var err error
	for _, s := range m.sinks {
		h, openErr := s.Open(subsystem, category)
		if openErr != nil {
			err = multierr.Append(err, openErr)
			continue
		}
		handles = append(handles, h)
	}
	if err != nil {
		return nil, multierr.Append(err, handles.Close())
	}
	return handles, nil
}

// Close closes every child and combines their errors
func (m *MultiSink) Close() error {
	var err error
	for _, s := range m.sinks {
		err = multierr.Append(err, s.Close())
	}
	return err
}

type multiHandle []Handle

// Close releases every child handle that can be released.
func (hs multiHandle) Close() error {
	var err error
	for _, h := range hs {
		err = multierr.Append(err, CloseHandle(h))
	}
	return err
}

// Emit writes to every child handle even when one of them fails.
func (hs multiHandle) Emit(level core.Level, payload []byte) error {
	var err error
	for _, h := range hs {
		err = multierr.Append(err, h.Emit(level, payload))
	}
	return err
}
