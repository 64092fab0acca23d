package cborhandler

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/catlog/core"
	"github.com/philipp01105/catlog/handler"
)

func TestCBORSink_RecordsDecode(t *testing.T) {
	var buf bytes.Buffer
	s := NewCBORSink(&buf)

	h, err := s.Open("com.example.test", "foo.bar")
	require.NoError(t, err)
	require.NoError(t, h.Emit(core.ErrorLevel, []byte("[foo.bar] boom")))
	require.NoError(t, h.Emit(core.InfoLevel, []byte("[foo.bar] hi")))

	recs, err := ReadAll(&buf)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "com.example.test", recs[0].Subsystem)
	assert.Equal(t, "foo.bar", recs[0].Category)
	assert.Equal(t, core.ErrorLevel, recs[0].Level)
	assert.Equal(t, "[foo.bar] boom", recs[0].Payload)
	assert.False(t, recs[0].Time.IsZero())
	assert.Equal(t, core.InfoLevel, recs[1].Level)

	_, err = uuid.Parse(recs[0].Session)
	assert.NoError(t, err)
	assert.Equal(t, s.Session(), recs[1].Session)
}

func TestCBORSink_SessionsDiffer(t *testing.T) {
	a, b := NewCBORSink(&bytes.Buffer{}), NewCBORSink(&bytes.Buffer{})
	assert.NotEqual(t, a.Session(), b.Session())
}

func TestCBORSink_ConcurrentEmit(t *testing.T) {
	var buf bytes.Buffer
	s := NewCBORSink(&buf)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h, err := s.Open("sub", "cat")
			assert.NoError(t, err)
			for i := 0; i < 50; i++ {
				assert.NoError(t, h.Emit(core.DebugLevel, []byte("payload")))
			}
		}()
	}
	wg.Wait()

	recs, err := ReadAll(&buf)
	require.NoError(t, err)
	assert.Len(t, recs, 400)
	assert.EqualValues(t, 400, s.Stats().EmittedTotal)
}

func TestCBORFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.cbor")
	s, err := NewCBORFileSink(path)
	require.NoError(t, err)

	h, err := s.Open("sub", "cat")
	require.NoError(t, err)
	require.NoError(t, h.Emit(core.WarnLevel, []byte("careful")))
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	assert.ErrorIs(t, h.Emit(core.WarnLevel, []byte("late")), handler.ErrClosed)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	recs, err := ReadAll(f)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "careful", recs[0].Payload)
}

func TestNewCBORFileSink_BadPath(t *testing.T) {
	_, err := NewCBORFileSink(filepath.Join(t.TempDir(), "missing", "events.cbor"))
	assert.Error(t, err)
}
