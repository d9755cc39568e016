// Package testutil provides shared fixtures for exercising the
// dispatcher and pipeline without touching the real filesystem or
// network: an in-memory sceneio.IO and a handful of canonical scene
// graphs.
package testutil

import (
	"bytes"
	"fmt"
	"io"

	"github.com/aurorafx/sceneimport/internal/sceneio"
)

// FakeIO is an in-memory sceneio.IO backed by a fixed file set. Every
// registered path opens independently, so concurrent Open calls on the
// same path each get their own read position.
type FakeIO struct {
	files map[string][]byte
}

// NewFakeIO returns a FakeIO with no files registered.
func NewFakeIO() *FakeIO {
	return &FakeIO{files: make(map[string][]byte)}
}

// WithFile registers content under path and returns the receiver, for
// chained construction.
func (f *FakeIO) WithFile(path string, content []byte) *FakeIO {
	f.files[path] = content
	return f
}

// WithTextFile is WithFile for string content.
func (f *FakeIO) WithTextFile(path string, content string) *FakeIO {
	return f.WithFile(path, []byte(content))
}

// Exists implements sceneio.IO.
func (f *FakeIO) Exists(path string) bool {
	_, ok := f.files[path]
	return ok
}

// Open implements sceneio.IO.
func (f *FakeIO) Open(path string) (sceneio.Stream, error) {
	content, ok := f.files[path]
	if !ok {
		return nil, fmt.Errorf("testutil: no such fixture file %q", path)
	}
	return &fakeStream{reader: bytes.NewReader(content), size: int64(len(content))}, nil
}

// fakeStream adapts a byte slice to sceneio.Stream.
type fakeStream struct {
	reader *bytes.Reader
	size   int64
}

func (s *fakeStream) Read(p []byte) (int, error) { return s.reader.Read(p) }

func (s *fakeStream) Seek(offset int64, whence int) (int64, error) {
	return s.reader.Seek(offset, whence)
}

func (s *fakeStream) Close() error { return nil }

func (s *fakeStream) Tell() (int64, error) {
	return s.reader.Seek(0, io.SeekCurrent)
}

func (s *fakeStream) Size() (int64, error) { return s.size, nil }

var _ sceneio.IO = (*FakeIO)(nil)
var _ sceneio.Stream = (*fakeStream)(nil)
