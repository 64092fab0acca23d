// Package handler defines the boundary between the logger and the
// facilities that actually record events.
//
// A Sink is keyed by (subsystem, category): Open acquires one Handle
// per category and the logger caches it for its whole lifetime, so
// Open runs at most once per category. A Handle has a single method,
// Emit, which receives the level and the already formatted payload.
// Handles holding their own resource also implement io.Closer, and
// CloseHandle releases them early.
//
// Built-in sinks live in sub-packages:
//
//   - consolehandler writes lines to any io.Writer (default: stderr).
//   - filehandler keeps one append-only file per category.
//   - cborhandler streams CBOR records, one per event.
//   - zaphandler, zerologhandler, logrushandler and sloghandler forward
//     to an existing logger from those libraries, naming a child logger
//     after each category.
//
// MultiSink fans out to several sinks and combines their errors with
// multierr. NopSink discards everything. Sinks that count their writes
// implement StatsProvider.
package handler
