package formatter

import (
	"bytes"
	"sync"

	"github.com/philipp01105/catlog/core"
)

// Formatter defines the interface for payload formatters
type Formatter interface {
	// Format formats a log entry into a newly allocated payload
	Format(entry *core.Entry) ([]byte, error)
}

// BufferFormatter is an optional interface that formatters can implement
// to format directly into a caller-provided buffer, avoiding the copy
// Format has to make.
type BufferFormatter interface {
	// FormatEntry formats a log entry into the given buffer.
	FormatEntry(entry *core.Entry, buf *bytes.Buffer)
}

// Config holds common formatter configuration
type Config struct {
	// IncludeTime prefixes the payload with the entry time. Sinks that
	// stamp their own records usually leave this off.
	IncludeTime bool
	// IncludeLevel adds the level name to the payload
	IncludeLevel bool
	// IncludeCaller enables caller information in the payload
	IncludeCaller bool
	// TimestampFormat specifies the time format (empty for RFC3339)
	TimestampFormat string
}

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

// GetBuffer returns an empty pooled buffer.
func GetBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutBuffer returns buf to the pool. Buffers over 64 KiB are dropped.
func PutBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 {
		return
	}
	bufferPool.Put(buf)
}

// formatWith runs fill against a pooled buffer and returns a copy of the result.
func formatWith(entry *core.Entry, fill func(*core.Entry, *bytes.Buffer)) []byte {
	buf := GetBuffer()
	fill(entry, buf)
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	PutBuffer(buf)
	return result
}
