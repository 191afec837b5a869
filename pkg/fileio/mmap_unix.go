//go:build unix

package fileio

import (
	"math"
	"os"

	"golang.org/x/sys/unix"

	"github.com/matzehuels/bmpedit/pkg/errors"
)

// MapReadable opens path and maps its full contents read-only. The file
// descriptor is closed before returning; the mapping stays valid until
// Close.
func MapReadable(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open %s", path)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "stat %s", path)
	}
	if info.IsDir() {
		return nil, errors.New(errors.ErrCodeIO, "%s is a directory", path)
	}
	size := info.Size()
	if size > math.MaxInt {
		return nil, errors.New(errors.ErrCodeIO, "%s is too large to map (%d bytes)", path, size)
	}
	if size == 0 {
		// mmap rejects zero-length mappings.
		return &Mapping{path: path, data: []byte{}}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "mmap %s", path)
	}
	return &Mapping{path: path, data: data, mapped: true}, nil
}

// MapWritable creates path if needed, truncates it, extends it to size zero
// bytes and maps it read-write.
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
	if size == 0 {
		return &Mapping{path: path, data: []byte{}, writable: true}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "mmap %s", path)
	}
	return &Mapping{path: path, data: data, writable: true, mapped: true}, nil
}

func (m *Mapping) release() error {
	if !m.mapped {
		return nil
	}
	if m.writable {
		if err := unix.Msync(m.data, unix.MS_SYNC); err != nil {
			_ = unix.Munmap(m.data)
			return err
		}
	}
	return unix.Munmap(m.data)
}
