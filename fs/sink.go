// Package fs provides file-based output for converted documents.
package fs

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/fwojciec/notiondocx"
)

// Ensure FileSink implements notiondocx.Sink at compile time.
var _ notiondocx.Sink = (*FileSink)(nil)

// FileSink writes a document with atomic replace semantics.
// Bytes go to path.tmp; Commit moves the file into place and Abort
// removes it, so a failed conversion never leaves a partial file at path.
type FileSink struct {
	path string
	file *os.File
	done bool
}

// NewFileSink creates the temporary file for path, creating parent
// directories as needed.
func NewFileSink(path string) (*FileSink, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	s := &FileSink{path: path}
	f, err := os.Create(s.tempPath())
	if err != nil {
		return nil, err
	}
	s.file = f
	return s, nil
}

func (s *FileSink) tempPath() string {
	return s.path + ".tmp"
}

// Path returns the final path of the document.
func (s *FileSink) Path() string {
	return s.path
}

func (s *FileSink) Write(p []byte) (int, error) {
	if s.done {
		return 0, os.ErrClosed
	}
	return s.file.Write(p)
}

// Commit flushes the temporary file and renames it to the final path,
// replacing any existing file.
func (s *FileSink) Commit() error {
	if s.done {
		return os.ErrClosed
	}
	s.done = true

	if err := s.file.Sync(); err != nil {
		s.file.Close()
		os.Remove(s.tempPath())
		return err
	}
	if err := s.file.Close(); err != nil {
		os.Remove(s.tempPath())
		return err
	}
	return os.Rename(s.tempPath(), s.path)
}

// Abort discards the temporary file. It is a no-op after Commit.
func (s *FileSink) Abort() error {
	if s.done {
		return nil
	}
	s.done = true

	closeErr := s.file.Close()
	if err := os.Remove(s.tempPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return closeErr
}
