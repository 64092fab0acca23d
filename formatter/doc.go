// Package formatter turns an entry that survived filtering into the
// single payload handed to a sink handle.
//
// Every payload embeds the category name and the literal message text
// so a reader can trace where an event came from. TextFormatter renders
// "[category] message key=value"; JSONFormatter renders one JSON object
// with "category" and "message" keys. Time, level, and caller are
// opt-in through Config because most sinks record those themselves.
//
// Formatters implement both Formatter, which returns a fresh []byte,
// and BufferFormatter, which writes into a caller buffer. The logger
// prefers BufferFormatter with a pooled buffer, so a payload is only
// valid until the handle's Emit returns.
//
// Payloads carry no trailing newline; line-oriented sinks add their own.
// Buffers larger than 64 KiB are not returned to the pool to prevent
// a single large log line from permanently inflating memory usage.
package formatter
