package logger

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogHandler_Levels(t *testing.T) {
	tests := []struct {
		in   slog.Level
		want Level
	}{
		{slog.LevelDebug - 4, TraceLevel},
		{slog.LevelDebug, DebugLevel},
		{slog.LevelInfo, InfoLevel},
		{slog.LevelInfo + 2, InfoLevel},
		{slog.LevelWarn, WarnLevel},
		{slog.LevelError, ErrorLevel},
		{slog.LevelError + 4, ErrorLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, slogLevelToCore(tt.in))
		})
	}
}

func TestSlogHandler_Filtering(t *testing.T) {
	sink := &recordingSink{}
	log := NewBuilder("s").
		WithLevel(InfoLevel).
		WithCategoryLevel("db", ErrorLevel).
		WithSink(sink).
		Build()

	log.Slog("db").Warn("dropped")
	log.Slog("db").Error("kept")
	log.Slog("http").Info("served")
	log.Slog("http").Debug("dropped")

	assert.Equal(t, []record{
		{"s", "db", ErrorLevel, "[db] kept"},
		{"s", "http", InfoLevel, "[http] served"},
	}, sink.Records())

	assert.False(t, NewSlogHandler(log, "db").Enabled(context.Background(), slog.LevelWarn))
}

func TestSlogHandler_Attrs(t *testing.T) {
	sink := &recordingSink{}
	log := NewBuilder("s").WithSink(sink).Build()

	sl := log.Slog("app").
		With("service", "api").
		WithGroup("req").
		With(slog.Int("id", 7))

	sl.Info("done",
		slog.Duration("took", 2*time.Second),
		slog.Bool("ok", true),
		slog.Uint64("n", 3),
		slog.Group("user", slog.String("name", "ann"), slog.Int("age", 30)),
		slog.Any("err", errors.New("none")),
		slog.Attr{},
	)

	recs := sink.Records()
	require.Len(t, recs, 1)
	assert.Equal(t,
		"[app] done service=api req.id=7 req.took=2s req.ok=true req.n=3 req.user.name=ann req.user.age=30 req.err=none",
		recs[0].Payload)
}

func TestSlogHandler_Caller(t *testing.T) {
	sink := &recordingSink{}
	log := NewBuilder("s").WithSink(sink).WithCaller(true).Build()

	log.Slog("app").Info("here")

	recs := sink.Records()
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0].Payload, "slog_test.go:")
}
