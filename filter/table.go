package filter

import (
	"errors"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/philipp01105/catlog/core"
)

// ErrFrozen is returned by every mutation of a frozen Table.
var ErrFrozen = errors.New("filter: table is frozen")

// Rule binds a category prefix to a minimum level.
type Rule struct {
	Prefix string
	Level  core.Level
}

// Table maps category prefixes to thresholds.
type Table struct {
	def      core.Level
	rules    []Rule // sorted by Compare on Prefix
	maxLevel core.Level
	frozen   atomic.Bool
}

// New returns an empty, mutable table whose default threshold is def.
func New(def core.Level) *Table {
	return &Table{def: def, maxLevel: def}
}

// Set inserts or overwrites the threshold for exactly prefix.
func (t *Table) Set(prefix string, level core.Level) error {
	if t.frozen.Load() {
		return ErrFrozen
	}
	i, found := slices.BinarySearchFunc(t.rules, prefix, func(r Rule, p string) int {
		return Compare(r.Prefix, p)
	})
	if found {
		t.rules[i].Level = level
	} else {
		t.rules = slices.Insert(t.rules, i, Rule{Prefix: prefix, Level: level})
	}
	t.recomputeMax()
	return nil
}

// SetDefault replaces the threshold used when no prefix matches.
func (t *Table) SetDefault(level core.Level) error {
	if t.frozen.Load() {
		return ErrFrozen
	}
	t.def = level
	t.recomputeMax()
	return nil
}

func (t *Table) recomputeMax() {
	m := t.def
	for _, r := range t.rules {
		if r.Level < m {
			m = r.Level
		}
	}
	t.maxLevel = m
}

// Resolve returns the threshold of the most specific rule matching
// category, or the default threshold when none does.
func (t *Table) Resolve(category string) core.Level {
	for _, r := range t.rules {
		if strings.HasPrefix(category, r.Prefix) {
			return r.Level
		}
	}
	return t.def
}

// Enabled reports whether an entry at level passes for category.
func (t *Table) Enabled(category string, level core.Level) bool {
	// Nothing below the most permissive threshold can pass anywhere.
	if level < t.maxLevel {
		return false
	}
	return level.Passes(t.Resolve(category))
}

// MaxLevel returns the most permissive threshold in the table, i.e. the
// lowest level that can pass for at least one category.
func (t *Table) MaxLevel() core.Level {
	return t.maxLevel
}

// Default returns the fallback threshold.
func (t *Table) Default() core.Level {
	return t.def
}

// Len returns the number of prefix rules.
func (t *Table) Len() int {
	return len(t.rules)
}

// Rules returns a copy of the rules in resolution order.
func (t *Table) Rules() []Rule {
	return slices.Clone(t.rules)
}

// Freeze makes the table read-only. It is idempotent.
func (t *Table) Freeze() {
	t.frozen.Store(true)
}

// Frozen reports whether Freeze has been called.
func (t *Table) Frozen() bool {
	return t.frozen.Load()
}

// Clone returns a mutable copy of t.
func (t *Table) Clone() *Table {
	return &Table{
		def:      t.def,
		rules:    slices.Clone(t.rules),
		maxLevel: t.maxLevel,
	}
}
