// Package filter resolves the minimum level that applies to a category.
//
// A Table maps category-name prefixes to thresholds and falls back to a
// default threshold when no prefix matches. Rules are kept sorted by
// Compare: longer prefixes first, equal lengths in reverse lexicographic
// order. Resolve walks the rules front to back and returns the first
// rule whose prefix the category starts with, which is therefore the
// most specific one.
//
// Matching is a literal, case-sensitive strings.HasPrefix test with no
// notion of segments, so the rule "foo" also covers "foobar".
//
// A Table is mutable until Freeze is called. After that every write
// fails with ErrFrozen and reads take no lock, which is what lets the
// dispatch hot path resolve thresholds without synchronization.
package filter
