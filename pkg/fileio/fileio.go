// Package fileio maps bitmap files into memory for reading and writing.
//
// On unix systems [MapReadable] and [MapWritable] use mmap(2) through
// golang.org/x/sys/unix; elsewhere they fall back to reading the whole file
// and writing the buffer back on Close. Either way callers see a plain byte
// slice and must call [Mapping.Close] as soon as they are done with it:
//
//	m, err := fileio.MapReadable("in.bmp")
//	if err != nil {
//	    return err
//	}
//	g, err := bmp.Decode(m.Bytes())
//	m.Close()
//
// The slice returned by Bytes is invalid after Close.
package fileio

import (
	"github.com/matzehuels/bmpedit/pkg/errors"
)

// Mapping is a file's contents exposed as a byte slice.
type Mapping struct {
	path     string
	data     []byte
	writable bool
	mapped   bool // data came from mmap and must be unmapped
	closed   bool
}

// Path returns the file the mapping was created from.
func (m *Mapping) Path() string { return m.path }

// Bytes returns the mapped contents. Writes to a writable mapping reach the
// file no later than Close.
func (m *Mapping) Bytes() []byte { return m.data }

// Len returns the mapped length.
func (m *Mapping) Len() int { return len(m.data) }

// Writable reports whether the mapping was created by MapWritable.
func (m *Mapping) Writable() bool { return m.writable }

// Close flushes a writable mapping and releases it. Calling Close more than
// once is a no-op.
func (m *Mapping) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	err := m.release()
	m.data = nil
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "release %s", m.path)
	}
	return nil
}

// WithReadable maps path, calls fn with its contents and unmaps it again.
func WithReadable(path string, fn func(buf []byte) error) (err error) {
	m, err := MapReadable(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := m.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(m.Bytes())
}

// WithWritable creates or truncates path to size bytes, maps it, calls fn
// with the zero-filled buffer and flushes and unmaps it again.
func WithWritable(path string, size int, fn func(buf []byte) error) (err error) {
	m, err := MapWritable(path, size)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := m.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(m.Bytes())
}

func checkSize(path string, size int) error {
	if size < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cannot map %s with negative size %d", path, size)
	}
	return nil
}
