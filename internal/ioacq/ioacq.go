// Package ioacq memory-maps chart files for decoding and guarantees the
// mapping is released on every exit path — success, decode error, or panic
// recovery by the caller — rather than relying on the caller to remember a
// Close call in each branch.
//
// Grounded on saferwall-pe's use of edsrzf/mmap-go to map binary files for
// zero-copy parsing instead of reading them fully into a []byte first.
package ioacq

import (
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/vesseltrace/enc57/internal/encerr"
)

// File is a scoped, memory-mapped acquisition of one chart file. Bytes
// returns a read-only view directly over the mapping; Close unmaps and
// closes the underlying file descriptor.
type File struct {
	f   *os.File
	m   mmap.MMap
}

// Open memory-maps path read-only. The caller must call Close when done;
// failing to do so leaks the mapping and the file descriptor for the
// process lifetime.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, encerr.Wrap(encerr.IoError, "opening chart file", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, encerr.Wrap(encerr.IoError, "stat chart file", err)
	}
	if info.Size() == 0 {
		f.Close()
		return nil, encerr.New(encerr.IoError, "chart file is empty")
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, encerr.Wrap(encerr.IoError, "memory-mapping chart file", err)
	}

	return &File{f: f, m: m}, nil
}

// Bytes returns the file's full contents as a read-only view over the
// mapping. The slice is only valid until Close.
func (cf *File) Bytes() []byte { return cf.m }

// Close unmaps the file and releases its descriptor. Safe to call more than
// once.
func (cf *File) Close() error {
	if cf.m != nil {
		if err := cf.m.Unmap(); err != nil {
			cf.f.Close()
			return encerr.Wrap(encerr.IoError, "unmapping chart file", err)
		}
		cf.m = nil
	}
	return cf.f.Close()
}

// WithFile opens path, invokes fn with its mapped bytes, and closes the
// mapping on every return path from fn including a panic — the scoped
// acquisition pattern the public API (pkg/enc57.Load) is built on.
func WithFile(path string, fn func([]byte) error) error {
	cf, err := Open(path)
	if err != nil {
		return err
	}
	defer cf.Close()
	return fn(cf.Bytes())
}
