package search

import (
	"errors"
	"fmt"
)

// MaxQueryLen bounds the query length in bytes.
const MaxQueryLen = 255

var (
	ErrInactive      = errors.New("search is not active")
	ErrQueryTooLong  = errors.New("search query too long")
	ErrNoMatch       = errors.New("no match found")
	ErrNoMoreMatches = errors.New("no more matches")
)

// Session is one incremental search, from Begin until Accept or Cancel.
//
// The session never owns the cursor. Each method takes the caller's current
// position and returns the position the cursor should move to; on error the
// returned position is the one passed in.
type Session struct {
	active        bool
	reverse       bool
	caseSensitive bool
	defaultCase   bool
	query         []byte
	origin        Position
	match         Match
}

// NewSession returns an inactive session. caseSensitive is the mode each
// Begin starts in.
func NewSession(caseSensitive bool) *Session {
	return &Session{defaultCase: caseSensitive, query: make([]byte, 0, MaxQueryLen)}
}

func (s *Session) Active() bool        { return s.active }
func (s *Session) Reverse() bool       { return s.reverse }
func (s *Session) CaseSensitive() bool { return s.caseSensitive }
func (s *Session) Origin() Position    { return s.origin }
func (s *Session) Match() Match        { return s.match }
func (s *Session) Query() string       { return string(s.query) }

// Prompt is the text shown while the session is active.
func (s *Session) Prompt() string {
	dir := "Search"
	if s.reverse {
		dir = "Reverse search"
	}
	sens := "case-insensitive"
	if s.caseSensitive {
		sens = "case-sensitive"
	}
	return fmt.Sprintf("%s (%s): %s", dir, sens, s.query)
}

// Begin starts a session anchored at origin.
func (s *Session) Begin(origin Position, reverse bool) {
	s.active = true
	s.reverse = reverse
	s.caseSensitive = s.defaultCase
	s.query = s.query[:0]
	s.origin = origin
	s.match = Match{}
}

// AddByte appends ch to the query and re-derives the match.
func (s *Session) AddByte(t Text, at Position, ch byte) (Position, error) {
	if !s.active {
		return at, ErrInactive
	}
	if len(s.query) >= MaxQueryLen {
		return at, ErrQueryTooLong
	}
	s.query = append(s.query, ch)
	return s.update(t, at)
}

// RemoveByte drops the last query byte. Emptying the query returns to the
// origin.
func (s *Session) RemoveByte(t Text, at Position) (Position, error) {
	if !s.active {
		return at, ErrInactive
	}
	if len(s.query) == 0 {
		return at, nil
	}
	s.query = s.query[:len(s.query)-1]
	if len(s.query) == 0 {
		s.match = Match{}
		return s.origin, nil
	}
	if s.match.Len > len(s.query) {
		s.match.Len = len(s.query)
	}
	return s.update(t, at)
}

// update keeps the current match if the query still matches there and
// otherwise scans from at in the session's direction.
func (s *Session) update(t Text, at Position) (Position, error) {
	if s.match.Len > 0 {
		if line, ok := t.GetLine(s.match.Row); ok && matchAt(line, s.match.Col, s.query, s.caseSensitive) {
			s.match.Len = len(s.query)
			return s.match.Position(), nil
		}
	}
	return s.rescan(t, at)
}

func (s *Session) scan(t Text, from Position) (Match, bool) {
	if s.reverse {
		return Backward(t, s.query, s.caseSensitive, from)
	}
	return Forward(t, s.query, s.caseSensitive, from)
}

// rescan replaces the match with the first one found from at.
func (s *Session) rescan(t Text, at Position) (Position, error) {
	m, ok := s.scan(t, at)
	if !ok {
		s.match = Match{}
		return at, ErrNoMatch
	}
	s.match = m
	return m.Position(), nil
}

// ToggleCase flips case sensitivity. With a query present the match is
// dropped and found again from at.
func (s *Session) ToggleCase(t Text, at Position) (Position, error) {
	if !s.active {
		return at, ErrInactive
	}
	s.caseSensitive = !s.caseSensitive
	if len(s.query) == 0 {
		return at, nil
	}
	s.match = Match{}
	return s.rescan(t, at)
}

// SwitchDirection flips the direction without searching. It reports false
// and does nothing outside a session or with an empty query.
func (s *Session) SwitchDirection() bool {
	if !s.active || len(s.query) == 0 {
		return false
	}
	s.reverse = !s.reverse
	return true
}

// FindNext moves past the current match in the session's direction. With
// no current match the search starts at at. When nothing is found the
// previous match is kept and ErrNoMoreMatches is returned.
func (s *Session) FindNext(t Text, at Position) (Position, error) {
	if !s.active {
		return at, ErrInactive
	}
	if len(s.query) == 0 {
		return at, nil
	}
	from := at
	if s.match.Len > 0 {
		from = s.nextStart(t)
	}
	m, ok := s.scan(t, from)
	if !ok {
		return at, ErrNoMoreMatches
	}
	s.match = m
	return m.Position(), nil
}

func (s *Session) nextStart(t Text) Position {
	m := s.match
	if !s.reverse {
		return Position{Row: m.Row, Col: m.Col + m.Len}
	}
	switch {
	case m.Col > 0:
		return Position{Row: m.Row, Col: m.Col - 1}
	case m.Row > 0:
		line, _ := t.GetLine(m.Row - 1)
		return Position{Row: m.Row - 1, Col: len(line)}
	default:
		last := max(t.CountLines()-1, 0)
		line, _ := t.GetLine(last)
		return Position{Row: last, Col: len(line)}
	}
}

// Accept ends the session at the current position.
func (s *Session) Accept() {
	s.active = false
	s.match = Match{}
}

// Cancel ends the session and returns the origin.
func (s *Session) Cancel() Position {
	s.active = false
	s.match = Match{}
	return s.origin
}
