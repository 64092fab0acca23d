package logrushandler

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/catlog/core"
)

func newTestLogger(buf *bytes.Buffer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.Out = buf
	l.Formatter = &logrus.JSONFormatter{DisableTimestamp: true}
	l.Level = level
	return l
}

func TestLogrusSink_Fields(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogrusSink(newTestLogger(&buf, logrus.TraceLevel))

	h, err := s.Open("com.example.test", "foo.bar")
	require.NoError(t, err)
	require.NoError(t, h.Emit(core.WarnLevel, []byte("[foo.bar] careful")))

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warning", line["level"])
	assert.Equal(t, "com.example.test", line["subsystem"])
	assert.Equal(t, "foo.bar", line["category"])
	assert.Equal(t, "[foo.bar] careful", line["msg"])
	assert.EqualValues(t, 1, s.Stats().EmittedTotal)
}

func TestLogrusSink_RespectsLogrusLevel(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogrusSink(newTestLogger(&buf, logrus.ErrorLevel))

	h, err := s.Open("sub", "cat")
	require.NoError(t, err)
	require.NoError(t, h.Emit(core.DebugLevel, []byte("dropped")))

	assert.Zero(t, buf.Len())
	assert.Zero(t, s.Stats().EmittedTotal)
}

func TestLevel(t *testing.T) {
	assert.Equal(t, logrus.TraceLevel, Level(core.TraceLevel))
	assert.Equal(t, logrus.DebugLevel, Level(core.DebugLevel))
	assert.Equal(t, logrus.InfoLevel, Level(core.InfoLevel))
	assert.Equal(t, logrus.WarnLevel, Level(core.WarnLevel))
	assert.Equal(t, logrus.ErrorLevel, Level(core.ErrorLevel))
}
