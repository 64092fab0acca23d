package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/philipp01105/catlog/core"
)

// DefaultEnvVar is the variable FromEnv callers read by default.
const DefaultEnvVar = "CATLOG"

// ParseDirectives parses a comma separated filter spec such as
//
//	info,db=warn,db.pool=trace,net
//
// A bare level name sets the default level. "prefix=level" adds a rule.
// A bare word that is not a level enables everything under that prefix
// (a TraceLevel rule). Whitespace around each directive is ignored;
// prefixes are otherwise taken verbatim.
func ParseDirectives(spec string) (Config, error) {
	var cfg Config
	for _, d := range strings.Split(spec, ",") {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}

		prefix, levelName, hasLevel := strings.Cut(d, "=")
		if !hasLevel {
			if lvl, err := core.ParseLevel(d); err == nil {
				cfg.Level = LevelPtr(lvl)
			} else {
				cfg.Categories = append(cfg.Categories, Rule{Prefix: d, Level: core.TraceLevel})
			}
			continue
		}

		lvl, err := core.ParseLevel(levelName)
		if err != nil {
			return Config{}, fmt.Errorf("config: directive %q: %w", d, err)
		}
		cfg.Categories = append(cfg.Categories, Rule{Prefix: strings.TrimSpace(prefix), Level: lvl})
	}
	return cfg, nil
}

// FromEnv parses the directives held in the environment variable name.
// An unset variable yields an empty Config.
func FromEnv(name string) (Config, error) {
	spec, ok := os.LookupEnv(name)
	if !ok {
		return Config{}, nil
	}
	cfg, err := ParseDirectives(spec)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", name, err)
	}
	return cfg, nil
}
