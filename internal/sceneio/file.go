package sceneio

import (
	"fmt"
	"os"
)

// FileIO is the default IO implementation, backing onto the host
// filesystem.
type FileIO struct{}

// NewFileIO returns the default filesystem-backed IO handle.
func NewFileIO() *FileIO {
	return &FileIO{}
}

// Exists implements IO.
func (f *FileIO) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Open implements IO.
func (f *FileIO) Open(path string) (Stream, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return &fileStream{file: file}, nil
}

// fileStream adapts *os.File to the Stream interface.
type fileStream struct {
	file *os.File
}

func (s *fileStream) Read(p []byte) (int, error) { return s.file.Read(p) }

func (s *fileStream) Seek(offset int64, whence int) (int64, error) {
	return s.file.Seek(offset, whence)
}

func (s *fileStream) Close() error { return s.file.Close() }

func (s *fileStream) Tell() (int64, error) {
	return s.file.Seek(0, os.SEEK_CUR)
}

func (s *fileStream) Size() (int64, error) {
	info, err := s.file.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

var _ IO = (*FileIO)(nil)
var _ Stream = (*fileStream)(nil)
