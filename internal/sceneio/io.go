// Package sceneio provides the pluggable I/O abstraction the dispatcher
// and importers consume: path existence plus a readable byte stream,
// with a default filesystem-backed implementation and an HTTP(S)-backed
// adapter for remote assets.
package sceneio

import "io"

// Stream offers sequential read, seek, tell and size over an opened
// resource.
type Stream interface {
	io.Reader
	io.Seeker
	io.Closer

	// Tell returns the current read offset.
	Tell() (int64, error)
	// Size returns the total byte length of the stream.
	Size() (int64, error)
}

// IO is the I/O abstraction consumed by the dispatcher and importers.
// Implementations may back onto the host filesystem, an archive index,
// an in-memory blob set, or a remote HTTP(S) endpoint.
type IO interface {
	// Exists reports whether path can be opened for reading.
	Exists(path string) bool
	// Open returns a readable Stream for path, or an error.
	Open(path string) (Stream, error)
}
