//go:build !unix

package fileio

import (
	"os"

	"github.com/matzehuels/bmpedit/pkg/errors"
)

// MapReadable reads the whole of path into memory.
func MapReadable(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read %s", path)
	}
	return &Mapping{path: path, data: data}, nil
}

// MapWritable creates or truncates path to size bytes and returns a
// zero-filled buffer that Close writes back to the file.
func MapWritable(path string, size int) (*Mapping, error) {
	if err := checkSize(path, size); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open %s", path)
	}
	defer f.Close()
	if err := f.Truncate(int64(size)); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "truncate %s to %d bytes", path, size)
	}
	return &Mapping{path: path, data: make([]byte, size), writable: true}, nil
}

func (m *Mapping) release() error {
	if !m.writable {
		return nil
	}
	return os.WriteFile(m.path, m.data, 0644)
}
