// Package region hands out the contiguous byte regions that back the text
// store. Keeping acquisition behind an interface lets the store's shifting and
// line-scanning logic run the same over heap slices and anonymous mappings.
package region

import (
	"errors"
	"fmt"
	"strings"
)

// PageSize is the unit regions are quantized to by their callers.
const PageSize = 4096

var ErrAllocationFailed = errors.New("allocation failed")

// Allocator acquires and releases byte regions.
type Allocator interface {
	// Acquire returns a zeroed region of exactly size bytes.
	Acquire(size int) ([]byte, error)
	// Release returns a region obtained from Acquire. The slice must not be
	// used afterwards.
	Release(b []byte) error
}

// Heap allocates regions on the Go heap.
type Heap struct{}

func (Heap) Acquire(size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: negative size %d", ErrAllocationFailed, size)
	}
	return make([]byte, size), nil
}

func (Heap) Release([]byte) error { return nil }

// Limited fails any request larger than Max bytes. Max <= 0 means no limit.
type Limited struct {
	Allocator Allocator
	Max       int
}

func (l Limited) Acquire(size int) ([]byte, error) {
	if l.Max > 0 && size > l.Max {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrAllocationFailed, size, l.Max)
	}
	return l.inner().Acquire(size)
}

func (l Limited) Release(b []byte) error {
	return l.inner().Release(b)
}

func (l Limited) inner() Allocator {
	if l.Allocator == nil {
		return Heap{}
	}
	return l.Allocator
}

// ByName maps a configuration value to an allocator. An empty name selects
// the heap.
func ByName(name string) (Allocator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "heap":
		return Heap{}, nil
	case "mmap":
		return newMmap(), nil
	default:
		return nil, fmt.Errorf("unknown allocator %q", name)
	}
}

// RoundUp returns the smallest multiple of PageSize strictly greater than n.
// Zero rounds to one page.
func RoundUp(n int) int {
	if n <= 0 {
		return PageSize
	}
	return (n/PageSize + 1) * PageSize
}
