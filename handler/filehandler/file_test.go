package filehandler

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/catlog/core"
	"github.com/philipp01105/catlog/handler"
)

func TestFileSink_WritesPerCategory(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileSink(FileConfig{Dir: dir})
	require.NoError(t, err)

	db, err := s.Open("com.example", "db")
	require.NoError(t, err)
	net, err := s.Open("com.example", "net")
	require.NoError(t, err)

	require.NoError(t, db.Emit(core.WarnLevel, []byte("[db] slow")))
	require.NoError(t, net.Emit(core.InfoLevel, []byte("[net] up")))
	require.NoError(t, db.Emit(core.ErrorLevel, []byte("[db] down")))
	require.NoError(t, s.Close())

	data, err := os.ReadFile(filepath.Join(dir, "com.example", "db.log"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], " WARN [db] slow"), lines[0])
	assert.True(t, strings.HasSuffix(lines[1], " ERROR [db] down"), lines[1])

	data, err = os.ReadFile(s.Path("com.example", "net"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "INFO [net] up")

	snap := s.Stats()
	assert.EqualValues(t, 2, snap.Opened)
	assert.EqualValues(t, 3, snap.EmittedTotal)
}

func TestFileSink_AppendsAcrossSinks(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 2; i++ {
		s, err := NewFileSink(FileConfig{Dir: dir, SyncEveryWrite: true})
		require.NoError(t, err)
		h, err := s.Open("sub", "cat")
		require.NoError(t, err)
		require.NoError(t, h.Emit(core.InfoLevel, []byte("line")))
		require.NoError(t, s.Close())
	}

	data, err := os.ReadFile(filepath.Join(dir, "sub", "cat.log"))
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "INFO line\n"))
}

func TestFileSink_SanitizesNames(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileSink(FileConfig{Dir: dir})
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, filepath.Join(dir, "_", "a_b.log"), s.Path("", "a/b"))
	assert.Equal(t, filepath.Join(dir, "sub", "__.log"), s.Path("sub", ".."))

	h, err := s.Open("sub", "../escape")
	require.NoError(t, err)
	require.NoError(t, h.Emit(core.InfoLevel, []byte("x")))
	_, err = os.Stat(filepath.Join(dir, "sub", ".._escape.log"))
	assert.NoError(t, err)
}

func TestFileSink_OpenFailureIsReported(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileSink(FileConfig{Dir: dir})
	require.NoError(t, err)
	defer s.Close()

	// A regular file where the subsystem directory should be.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blocked"), nil, 0644))

	_, err = s.Open("blocked", "cat")
	assert.Error(t, err)
	assert.EqualValues(t, 0, s.Stats().Opened)
}

func TestFileSink_Closed(t *testing.T) {
	s, err := NewFileSink(FileConfig{Dir: t.TempDir()})
	require.NoError(t, err)
	h, err := s.Open("sub", "cat")
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	assert.True(t, errors.Is(h.Emit(core.InfoLevel, []byte("x")), handler.ErrClosed))
	_, err = s.Open("sub", "other")
	assert.ErrorIs(t, err, handler.ErrClosed)
}

func TestNewFileSink_EmptyDir(t *testing.T) {
	_, err := NewFileSink(FileConfig{})
	assert.Error(t, err)
}

type refusingSink struct{ err error }

func (s refusingSink) Open(string, string) (handler.Handle, error) { return nil, s.err }
func (s refusingSink) Close() error { return nil }

func TestFileSink_ReleasedWhenSiblingFails(t *testing.T) {
	s, err := NewFileSink(FileConfig{Dir: t.TempDir()})
	require.NoError(t, err)
	defer s.Close()

	errFull := errors.New("quota exceeded")
	multi := handler.NewMultiSink(s, refusingSink{err: errFull})
	for i := 0; i < 3; i++ {
		_, err := multi.Open("sub", "cat")
		require.ErrorIs(t, err, errFull)
	}

	s.mu.Lock()
	open := len(s.files)
	s.mu.Unlock()
	assert.Zero(t, open, "files of failed multi opens must be closed")
}

func TestFileSink_HandleClose(t *testing.T) {
	s, err := NewFileSink(FileConfig{Dir: t.TempDir()})
	require.NoError(t, err)

	keep, err := s.Open("sub", "keep")
	require.NoError(t, err)
	drop, err := s.Open("sub", "drop")
	require.NoError(t, err)

	require.NoError(t, handler.CloseHandle(drop))
	require.NoError(t, handler.CloseHandle(drop))
	assert.ErrorIs(t, drop.Emit(core.InfoLevel, []byte("x")), handler.ErrClosed)
	assert.NoError(t, keep.Emit(core.InfoLevel, []byte("x")))

	s.mu.Lock()
	assert.Len(t, s.files, 1)
	s.mu.Unlock()

	require.NoError(t, s.Close())
	assert.ErrorIs(t, keep.Emit(core.InfoLevel, []byte("x")), handler.ErrClosed)
}
