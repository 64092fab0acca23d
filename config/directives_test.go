package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/catlog/core"
)

func TestParseDirectives(t *testing.T) {
	tests := []struct {
		name  string
		spec  string
		level *core.Level
		rules []Rule
	}{
		{name: "empty", spec: ""},
		{name: "default only", spec: "warn", level: LevelPtr(core.WarnLevel)},
		{
			name:  "default and rules",
			spec:  "info,foo=warn,foo.bar=trace",
			level: LevelPtr(core.InfoLevel),
			rules: []Rule{{"foo", core.WarnLevel}, {"foo.bar", core.TraceLevel}},
		},
		{
			name:  "bare prefix enables everything",
			spec:  "error,net",
			level: LevelPtr(core.ErrorLevel),
			rules: []Rule{{"net", core.TraceLevel}},
		},
		{
			name:  "whitespace and empty segments",
			spec:  " debug , , db = off ,",
			level: LevelPtr(core.DebugLevel),
			rules: []Rule{{"db", core.OffLevel}},
		},
		{
			name:  "last default wins",
			spec:  "info,error",
			level: LevelPtr(core.ErrorLevel),
		},
		{
			name:  "prefix keeps case",
			spec:  "Settings=WARN",
			rules: []Rule{{"Settings", core.WarnLevel}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseDirectives(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.level, cfg.Level)
			assert.Equal(t, tt.rules, cfg.Categories)
		})
	}
}

func TestParseDirectives_BadLevel(t *testing.T) {
	_, err := ParseDirectives("info,db=loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"db=loud"`)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("CATLOG_TEST_SPEC", "warn,db=trace")

	cfg, err := FromEnv("CATLOG_TEST_SPEC")
	require.NoError(t, err)
	assert.Equal(t, LevelPtr(core.WarnLevel), cfg.Level)
	assert.Equal(t, []Rule{{"db", core.TraceLevel}}, cfg.Categories)
}

func TestFromEnv_Unset(t *testing.T) {
	cfg, err := FromEnv("CATLOG_TEST_DEFINITELY_UNSET")
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}

func TestFromEnv_Invalid(t *testing.T) {
	t.Setenv("CATLOG_TEST_BAD", "db=shout")

	_, err := FromEnv("CATLOG_TEST_BAD")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CATLOG_TEST_BAD")
}
