// Package textstore holds the editable text as one contiguous byte region.
//
// Lines are found by scanning for '\n' from the start of the region on every
// lookup; no line index is kept. A line's content ends at the first NUL byte
// even when more bytes follow before the next newline.
package textstore

import (
	"errors"
	"fmt"

	"github.com/kobzarvs/rawedit/internal/logger"
	"github.com/kobzarvs/rawedit/internal/region"
)

var (
	// ErrInvalidOperation reports a position or line outside the store.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrBufferFull reports that the store could not grow.
	ErrBufferFull = errors.New("buffer is full")
)

type Store struct {
	alloc    region.Allocator
	content  []byte // len(content) is the capacity
	size     int
	modified bool
}

// New returns an empty store with no region. The first insertion acquires
// exactly one page.
func New(alloc region.Allocator) *Store {
	if alloc == nil {
		alloc = region.Heap{}
	}
	return &Store{alloc: alloc}
}

// NewWithCapacity returns an empty store backed by a region of capacity
// bytes. The store starts out modified: it has never been written anywhere.
func NewWithCapacity(alloc region.Allocator, capacity int) (*Store, error) {
	s := New(alloc)
	if capacity <= 0 {
		return s, nil
	}
	b, err := s.alloc.Acquire(capacity)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBufferFull, err)
	}
	s.content = b
	s.modified = true
	return s, nil
}

// FromBytes returns a store holding a copy of data, unmodified.
func FromBytes(alloc region.Allocator, data []byte) (*Store, error) {
	s := New(alloc)
	if len(data) == 0 {
		return s, nil
	}
	b, err := s.alloc.Acquire(len(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBufferFull, err)
	}
	copy(b, data)
	s.content = b
	s.size = len(data)
	return s, nil
}

func (s *Store) Size() int      { return s.size }
func (s *Store) Capacity() int  { return len(s.content) }
func (s *Store) Modified() bool { return s.modified }

// Bytes returns the bytes in use. The slice aliases the store and is only
// valid until the next edit.
func (s *Store) Bytes() []byte { return s.content[:s.size] }

// Release hands the region back to the allocator and empties the store.
func (s *Store) Release() error {
	if s.content == nil {
		return nil
	}
	err := s.alloc.Release(s.content)
	s.content = nil
	s.size = 0
	return err
}

func (s *Store) grow() error {
	oldCap := len(s.content)
	newCap := region.RoundUp(oldCap)
	b, err := s.alloc.Acquire(newCap)
	if err != nil {
		logger.Warn("store growth failed", "capacity", oldCap, "requested", newCap, "error", err)
		return fmt.Errorf("%w: %v", ErrBufferFull, err)
	}
	copy(b, s.content[:s.size])
	if s.content != nil {
		_ = s.alloc.Release(s.content)
	}
	s.content = b
	logger.Debug("store grown", "from", oldCap, "to", newCap)
	return nil
}

// InsertAt writes ch at byte offset pos, shifting [pos, size) right by one.
func (s *Store) InsertAt(pos int, ch byte) error {
	if pos < 0 || pos > s.size {
		return fmt.Errorf("%w: insert at %d with size %d", ErrInvalidOperation, pos, s.size)
	}
	if s.size == len(s.content) {
		if err := s.grow(); err != nil {
			return err
		}
	}
	copy(s.content[pos+1:s.size+1], s.content[pos:s.size])
	s.content[pos] = ch
	s.size++
	s.modified = true
	return nil
}

// DeleteAt removes the byte at pos, shifting (pos, size) left by one.
func (s *Store) DeleteAt(pos int) error {
	if s.size == 0 || pos < 0 || pos >= s.size {
		return fmt.Errorf("%w: delete at %d with size %d", ErrInvalidOperation, pos, s.size)
	}
	copy(s.content[pos:s.size-1], s.content[pos+1:s.size])
	s.size--
	s.modified = true
	return nil
}

// InsertChar inserts ch on line row at byte column col. A column past the
// end of the line appends to the line.
func (s *Store) InsertChar(row, col int, ch byte) error {
	start, ok := s.FindLineStart(row)
	if !ok {
		return fmt.Errorf("%w: no line %d", ErrInvalidOperation, row)
	}
	end, ok := s.FindLineEnd(row)
	if !ok {
		end = start
	}
	if col < 0 {
		col = 0
	}
	if col > end-start {
		col = end - start
	}
	return s.InsertAt(start+col, ch)
}

// InsertNewline splits line row at byte column col.
func (s *Store) InsertNewline(row, col int) error {
	return s.InsertChar(row, col, '\n')
}

// DeleteChar removes the byte at column col of line row. The column must lie
// inside the line.
func (s *Store) DeleteChar(row, col int) error {
	start, ok := s.FindLineStart(row)
	if !ok {
		return fmt.Errorf("%w: no line %d", ErrInvalidOperation, row)
	}
	end, ok := s.FindLineEnd(row)
	if !ok {
		end = start
	}
	if col < 0 || col >= end-start {
		return fmt.Errorf("%w: column %d outside line %d", ErrInvalidOperation, col, row)
	}
	return s.DeleteAt(start + col)
}

// BackspaceAt deletes the byte before (row, col). At column 0 it removes the
// newline ending the previous line, joining the two lines.
func (s *Store) BackspaceAt(row, col int) error {
	switch {
	case col > 0:
		return s.DeleteChar(row, col-1)
	case row > 0:
		end, ok := s.FindLineEnd(row - 1)
		if !ok {
			return fmt.Errorf("%w: no line %d", ErrInvalidOperation, row-1)
		}
		return s.DeleteAt(end)
	default:
		return fmt.Errorf("%w: nothing to delete at start of buffer", ErrInvalidOperation)
	}
}

// JoinNext removes the newline that ends line row.
func (s *Store) JoinNext(row int) error {
	end, ok := s.FindLineEnd(row)
	if !ok || end >= s.size {
		return fmt.Errorf("%w: line %d has no successor", ErrInvalidOperation, row)
	}
	return s.DeleteAt(end)
}
