/*
NAME
  file.go

DESCRIPTION
  file.go provides a file-backed byte source for the c3d package: it
  opens a path on disk and exposes it as the io.ReadSeeker that
  c3d.Open requires, tracking open/close state the way AVFile does for
  media files.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package source provides a byte-source adapter for opening C3D files
// from disk.
package source

import (
	"fmt"
	"os"
	"sync"

	"github.com/ausocean/utils/logging"
)

// File is a disk-backed C3D byte source. It is not safe for concurrent
// use by multiple goroutines.
type File struct {
	f    *os.File
	path string
	log  logging.Logger
	mu   sync.Mutex
}

// NewFile returns a File that will open path on Open.
func NewFile(path string, l logging.Logger) *File {
	return &File{path: path, log: l}
}

// Open opens the underlying file for reading. It is idempotent; a
// second call on an already-open File is a no-op.
func (f *File) Open() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.f != nil {
		return nil
	}
	fh, err := os.Open(f.path)
	if err != nil {
		return fmt.Errorf("source: could not open c3d file: %w", err)
	}
	f.f = fh
	if f.log != nil {
		f.log.Info("source: opened c3d file", "path", f.path)
	}
	return nil
}

// Read implements io.Reader. Open must be called first.
func (f *File) Read(p []byte) (int, error) {
	if f.f == nil {
		return 0, fmt.Errorf("source: %s is not open", f.path)
	}
	return f.f.Read(p)
}

// Seek implements io.Seeker. Open must be called first.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	if f.f == nil {
		return 0, fmt.Errorf("source: %s is not open", f.path)
	}
	return f.f.Seek(offset, whence)
}

// Close closes the underlying file, if open.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.f == nil {
		return nil
	}
	err := f.f.Close()
	f.f = nil
	return err
}
