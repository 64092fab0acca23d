// Package consolehandler provides a sink that writes one text line per
// event to any io.Writer (default: os.Stderr).
//
// All handles opened from a ConsoleSink share its writer. Each line is
// assembled in a pooled buffer and written with a single Write call,
// under the sink's mutex unless the writer is known to be safe for
// concurrent use (io.Discard, *os.File, or ConcurrentWriter set).
package consolehandler
