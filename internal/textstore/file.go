package textstore

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kobzarvs/rawedit/internal/logger"
	"github.com/kobzarvs/rawedit/internal/region"
)

// Load reads path into a new store. A missing file yields an empty one-page
// store marked modified, so the first save creates it. Any other open or
// read failure is returned.
func Load(alloc region.Allocator, path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("new file", "path", path)
			return NewWithCapacity(alloc, region.PageSize)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("open %s: is a directory", path)
	}
	size := int(info.Size())
	if size == 0 {
		s, err := NewWithCapacity(alloc, region.PageSize)
		if err != nil {
			return nil, err
		}
		s.modified = false
		return s, nil
	}

	var s *Store
	var copyErr error
	err = region.MapFile(f, size, func(b []byte) {
		s, copyErr = FromBytes(alloc, b)
	})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if copyErr != nil {
		return nil, copyErr
	}
	logger.Info("file loaded", "path", path, "bytes", size)
	return s, nil
}

// Persist writes the store's bytes to path, creating or truncating it, and
// clears the modified flag on success.
func (s *Store) Persist(path string) (int, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	n, err := s.persistTo(f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close %s: %w", path, cerr)
	}
	if err != nil {
		return n, err
	}
	s.modified = false
	logger.Info("file saved", "path", path, "bytes", n)
	return n, nil
}

// persistTo writes [0, size) to w, retrying partial writes. A write that
// makes no progress ends the loop with io.ErrShortWrite.
func (s *Store) persistTo(w io.Writer) (int, error) {
	written := 0
	for written < s.size {
		n, err := w.Write(s.content[written:s.size])
		written += n
		if err != nil {
			return written, fmt.Errorf("write: %w", err)
		}
		if n == 0 {
			return written, fmt.Errorf("write: %w", io.ErrShortWrite)
		}
	}
	return written, nil
}
