// Package filehandler provides a sink that keeps one append-only file
// per category under Dir/<subsystem>/.
//
// Opening a handle creates the file, so it is the point where the
// filesystem can refuse (permissions, descriptor exhaustion). Each line
// is "time LEVEL payload". No rotation is performed.
package filehandler
