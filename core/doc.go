// Package core defines the shared types used across catlog.
//
// Level is the closed severity enumeration Trace < Debug < Info < Warn <
// Error. OffLevel sits above Error and is only used as a threshold that
// nothing passes. An entry at level L passes threshold T iff L >= T.
//
// Entry is the unit handed to formatters once an event has survived
// filtering. It carries the subsystem and category the event was logged
// under, so a formatter can embed the category in the payload. Entries
// are pooled via sync.Pool: the dispatch path gets one with GetEntry
// only after the level check and returns it with PutEntry once the
// payload has been produced.
//
// Field encodes values into fixed-size numeric fields (Int64, Float64)
// wherever possible so that common types like int, bool, and time.Time
// never escape to the heap. AppendValue renders a field into a caller
// buffer; the Any and Stringer kinds are fallbacks that may allocate.
package core
