package config

import (
	"fmt"

	"github.com/philipp01105/catlog/core"
)

// Rule sets the minimum level for every category starting with Prefix.
type Rule struct {
	Prefix string     `yaml:"prefix" toml:"prefix"`
	Level  core.Level `yaml:"level" toml:"level"`
}

// Config is the filter configuration a logger builder accepts. Zero
// values mean "leave the builder's setting alone".
type Config struct {
	// Subsystem scopes every handle the logger opens
	Subsystem string `yaml:"subsystem,omitempty" toml:"subsystem,omitempty"`
	// Level is the default threshold when no rule matches
	Level *core.Level `yaml:"level,omitempty" toml:"level,omitempty"`
	// Categories are prefix rules, applied in order
	Categories []Rule `yaml:"categories,omitempty" toml:"categories,omitempty"`
	// Stderr mirrors every event to standard error
	Stderr bool `yaml:"stderr,omitempty" toml:"stderr,omitempty"`
}

// Merge returns c overlaid with other: other's subsystem and level win
// when set, its rules are applied after c's, and Stderr is or-ed.
func (c Config) Merge(other Config) Config {
	out := Config{
		Subsystem:  c.Subsystem,
		Level:      c.Level,
		Categories: make([]Rule, 0, len(c.Categories)+len(other.Categories)),
		Stderr:     c.Stderr || other.Stderr,
	}
	if other.Subsystem != "" {
		out.Subsystem = other.Subsystem
	}
	if other.Level != nil {
		out.Level = other.Level
	}
	out.Categories = append(out.Categories, c.Categories...)
	out.Categories = append(out.Categories, other.Categories...)
	return out
}

// Validate checks that every level is a known level or OffLevel.
func (c Config) Validate() error {
	if c.Level != nil && !validThreshold(*c.Level) {
		return fmt.Errorf("config: invalid default level %d", *c.Level)
	}
	for _, r := range c.Categories {
		if !validThreshold(r.Level) {
			return fmt.Errorf("config: invalid level %d for prefix %q", r.Level, r.Prefix)
		}
	}
	return nil
}

func validThreshold(l core.Level) bool {
	return l.Valid() || l == core.OffLevel
}

// LevelPtr returns a pointer to l, for filling Config.Level.
func LevelPtr(l core.Level) *core.Level {
	return &l
}
