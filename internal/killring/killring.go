// Package killring holds the single cut/copy buffer shared by kill, copy,
// cut and paste.
package killring

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/kobzarvs/rawedit/internal/logger"
)

// DefaultCapacity is one page.
const DefaultCapacity = 4096

var (
	ErrTooLarge = errors.New("text too large for kill-ring")
	ErrEmpty    = errors.New("kill-ring is empty")
)

// Mirror receives every copy and can supply text when the ring is empty.
type Mirror interface {
	Write(text string) error
	Read() (string, error)
}

// Ring is a fixed-capacity buffer. Each Copy replaces its content.
type Ring struct {
	buf    []byte
	size   int
	mirror Mirror
}

// New returns an empty ring. mirror may be nil.
func New(capacity int, mirror Mirror) *Ring {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ring{buf: make([]byte, capacity), mirror: mirror}
}

func (r *Ring) Capacity() int { return len(r.buf) }

// Content returns the ring's text. The slice is valid until the next Copy.
func (r *Ring) Content() []byte { return r.buf[:r.size] }

// Copy replaces the ring content with text.
func (r *Ring) Copy(text []byte) error {
	if len(text) > len(r.buf) {
		return fmt.Errorf("%w: %d bytes, capacity %d", ErrTooLarge, len(text), len(r.buf))
	}
	r.size = copy(r.buf, text)
	if r.mirror != nil {
		if err := r.mirror.Write(string(text)); err != nil {
			logger.Warn("clipboard write failed", "error", err)
		}
	}
	return nil
}

// Paste returns the text to insert: the ring content, or the mirror's
// text when the ring has never been filled.
func (r *Ring) Paste() ([]byte, error) {
	if r.size > 0 {
		return r.Content(), nil
	}
	if r.mirror == nil {
		return nil, ErrEmpty
	}
	text, err := r.mirror.Read()
	if err != nil {
		logger.Warn("clipboard read failed", "error", err)
		return nil, ErrEmpty
	}
	if text == "" {
		return nil, ErrEmpty
	}
	if len(text) > len(r.buf) {
		return nil, fmt.Errorf("%w: %d bytes, capacity %d", ErrTooLarge, len(text), len(r.buf))
	}
	r.size = copy(r.buf, text)
	return r.Content(), nil
}

var (
	clipboardWrite = clipboard.WriteAll
	clipboardRead  = clipboard.ReadAll
)

// SystemClipboard mirrors the ring to the desktop clipboard.
type SystemClipboard struct{}

func (SystemClipboard) Write(text string) error {
	if clipboard.Unsupported {
		return errors.New("system clipboard unsupported")
	}
	return clipboardWrite(text)
}

func (SystemClipboard) Read() (string, error) {
	if clipboard.Unsupported {
		return "", errors.New("system clipboard unsupported")
	}
	return clipboardRead()
}
