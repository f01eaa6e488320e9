//go:build !unix

package region

import (
	"io"
	"os"
)

func newMmap() Allocator { return Heap{} }

// MapFile reads size bytes from f where mappings are unavailable. f stays
// owned by the caller.
func MapFile(f *os.File, size int, fn func([]byte)) error {
	if size <= 0 {
		fn(nil)
		return nil
	}
	b := make([]byte, size)
	if _, err := io.ReadFull(f, b); err != nil {
		return err
	}
	fn(b)
	return nil
}
