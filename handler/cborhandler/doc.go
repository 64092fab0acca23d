// Package cborhandler provides a sink that writes every event as a CBOR
// record to one stream, typically a file.
//
// Records use integer map keys and RFC 3339 nanosecond timestamps.
// Each CBORSink stamps its records with a random session ID so streams
// appended to by several processes can be told apart. Decoder and
// ReadAll read a stream back.
package cborhandler
