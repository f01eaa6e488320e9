//go:build unix

package region

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Mmap backs regions with private anonymous mappings.
type Mmap struct{}

func newMmap() Allocator { return Mmap{} }

func (Mmap) Acquire(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: invalid mapping size %d", ErrAllocationFailed, size)
	}
	b, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("%w: mmap %d bytes: %v", ErrAllocationFailed, size, err)
	}
	return b, nil
}

func (Mmap) Release(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	return unix.Munmap(b)
}

// MapFile maps size bytes of f read-only and passes them to fn. The mapping
// is removed before MapFile returns, so fn must copy what it keeps. f stays
// owned by the caller.
func MapFile(f *os.File, size int, fn func([]byte)) error {
	if size <= 0 {
		fn(nil)
		return nil
	}
	b, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		return fmt.Errorf("map file: %w", err)
	}
	fn(b)
	return unix.Munmap(b)
}
