package zerologhandler

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/catlog/core"
)

func TestZerologSink_Fields(t *testing.T) {
	var buf bytes.Buffer
	s := NewZerologSink(zerolog.New(&buf).Level(zerolog.TraceLevel))

	h, err := s.Open("com.example.test", "foo.bar")
	require.NoError(t, err)
	require.NoError(t, h.Emit(core.TraceLevel, []byte("[foo.bar] detail")))

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "trace", line["level"])
	assert.Equal(t, "com.example.test", line["subsystem"])
	assert.Equal(t, "foo.bar", line["category"])
	assert.Equal(t, "[foo.bar] detail", line["message"])
}

func TestZerologSink_RespectsZerologLevel(t *testing.T) {
	var buf bytes.Buffer
	s := NewZerologSink(zerolog.New(&buf).Level(zerolog.ErrorLevel))

	h, err := s.Open("sub", "cat")
	require.NoError(t, err)
	require.NoError(t, h.Emit(core.WarnLevel, []byte("dropped")))

	assert.Zero(t, buf.Len())
	assert.Zero(t, s.Stats().EmittedTotal)
	assert.NoError(t, s.Close())
}

func TestLevel(t *testing.T) {
	assert.Equal(t, zerolog.TraceLevel, Level(core.TraceLevel))
	assert.Equal(t, zerolog.DebugLevel, Level(core.DebugLevel))
	assert.Equal(t, zerolog.InfoLevel, Level(core.InfoLevel))
	assert.Equal(t, zerolog.WarnLevel, Level(core.WarnLevel))
	assert.Equal(t, zerolog.ErrorLevel, Level(core.ErrorLevel))
}
