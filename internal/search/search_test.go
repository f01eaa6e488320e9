package search

import (
	"errors"
	"strings"
	"testing"

	"github.com/kobzarvs/rawedit/internal/region"
	"github.com/kobzarvs/rawedit/internal/textstore"
)

func newTestText(t *testing.T, content string) Text {
	t.Helper()
	s, err := textstore.FromBytes(region.Heap{}, []byte(content))
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	return s
}

func typeQuery(t *testing.T, s *Session, text Text, at Position, query string) (Position, error) {
	t.Helper()
	var err error
	for i := 0; i < len(query); i++ {
		at, err = s.AddByte(text, at, query[i])
	}
	return at, err
}

func assertMatch(t *testing.T, got Match, row, col, n int) {
	t.Helper()
	if got.Row != row || got.Col != col || got.Len != n {
		t.Fatalf("match = (%d,%d,%d), want (%d,%d,%d)", got.Row, got.Col, got.Len, row, col, n)
	}
}

func TestForwardFindsFirstOccurrence(t *testing.T) {
	text := newTestText(t, "First line\nSecond line\nThird line with search term\nFourth line\n")
	s := NewSession(false)
	s.Begin(Position{}, false)

	pos, err := typeQuery(t, s, text, Position{}, "search")
	if err != nil {
		t.Fatalf("AddByte: %v", err)
	}
	assertMatch(t, s.Match(), 2, 16, 6)
	if pos != (Position{Row: 2, Col: 16}) {
		t.Fatalf("position = %+v, want {2 16}", pos)
	}
}

func TestFindFunctions(t *testing.T) {
	content := "First line\nSecond search term\nThird line\nFourth search match\n"
	text := newTestText(t, content)
	q := []byte("search")

	m, ok := Forward(text, q, false, Position{})
	if !ok {
		t.Fatalf("Forward found nothing")
	}
	assertMatch(t, m, 1, 7, 6)

	m, _ = Forward(text, q, false, Position{Row: 1, Col: 13})
	assertMatch(t, m, 3, 7, 6)

	m, _ = Backward(text, q, false, Position{Row: 3, Col: len(content)})
	assertMatch(t, m, 3, 7, 6)

	m, _ = Backward(text, q, false, Position{Row: 3, Col: 7})
	assertMatch(t, m, 1, 7, 6)

	m, _ = Forward(text, q, false, Position{Row: 3, Col: 20})
	assertMatch(t, m, 1, 7, 6)

	m, _ = Backward(text, q, false, Position{})
	assertMatch(t, m, 3, 7, 6)
}

func TestCaseFolding(t *testing.T) {
	text := newTestText(t, "First line\nSecond SEARCH term\nThird line\nsearch match\n")
	q := []byte("search")

	m, _ := Forward(text, q, false, Position{})
	assertMatch(t, m, 1, 7, 6)

	m, _ = Forward(text, q, true, Position{})
	assertMatch(t, m, 3, 0, 6)

	m, _ = Forward(text, []byte("SeArCh"), false, Position{Row: 2})
	assertMatch(t, m, 3, 0, 6)
}

func TestEmptyQueryNeverMatches(t *testing.T) {
	text := newTestText(t, "abc")
	if _, ok := Forward(text, nil, false, Position{}); ok {
		t.Fatalf("Forward matched an empty query")
	}
	if _, ok := Backward(text, nil, false, Position{}); ok {
		t.Fatalf("Backward matched an empty query")
	}
}

func TestWraparoundWithSingleMatch(t *testing.T) {
	text := newTestText(t, "abc\nneedle here\nxyz")
	q := []byte("needle")

	m, ok := Forward(text, q, false, Position{Row: 1, Col: 6})
	if !ok {
		t.Fatalf("forward wrap found nothing")
	}
	assertMatch(t, m, 1, 0, 6)

	m, ok = Backward(text, q, false, Position{})
	if !ok {
		t.Fatalf("backward wrap found nothing")
	}
	assertMatch(t, m, 1, 0, 6)

	s := NewSession(false)
	s.Begin(Position{}, false)
	pos, _ := typeQuery(t, s, text, Position{}, "needle")
	pos, err := s.FindNext(text, pos)
	if err != nil {
		t.Fatalf("FindNext: %v", err)
	}
	if pos != (Position{Row: 1, Col: 0}) {
		t.Fatalf("FindNext = %+v, want {1 0}", pos)
	}
}

func TestReverseSessionStepsBackAndWraps(t *testing.T) {
	text := newTestText(t, "First term\nSearch here\nAnother search pattern\nLast search line\n")
	s := NewSession(false)
	start := Position{Row: 3, Col: 10}
	s.Begin(start, true)
	if !s.Active() || !s.Reverse() {
		t.Fatalf("session not active in reverse")
	}

	pos, err := typeQuery(t, s, text, start, "search")
	if err != nil {
		t.Fatalf("AddByte: %v", err)
	}
	assertMatch(t, s.Match(), 3, 5, 6)

	pos, _ = s.FindNext(text, pos)
	assertMatch(t, s.Match(), 2, 8, 6)

	pos, _ = s.FindNext(text, pos)
	assertMatch(t, s.Match(), 1, 0, 6)
	if pos != (Position{Row: 1, Col: 0}) {
		t.Fatalf("position = %+v, want {1 0}", pos)
	}

	if got := s.Cancel(); got != start {
		t.Fatalf("Cancel = %+v, want %+v", got, start)
	}
	if s.Active() || s.Match().Len != 0 {
		t.Fatalf("session still active after cancel")
	}
}

func TestStickyMatchSurvivesExtension(t *testing.T) {
	text := newTestText(t, "searXX\nx search")
	s := NewSession(false)
	start := Position{Row: 1, Col: 8}
	s.Begin(start, true)

	pos, _ := typeQuery(t, s, text, start, "sear")
	assertMatch(t, s.Match(), 1, 2, 4)

	pos, err := s.AddByte(text, pos, 'c')
	if err != nil {
		t.Fatalf("AddByte: %v", err)
	}
	assertMatch(t, s.Match(), 1, 2, 5)
	if pos != (Position{Row: 1, Col: 2}) {
		t.Fatalf("position = %+v, want {1 2}", pos)
	}
}

func TestFailedStickyCheckRescans(t *testing.T) {
	text := newTestText(t, "abx abc")
	s := NewSession(false)
	s.Begin(Position{}, false)

	pos, _ := typeQuery(t, s, text, Position{}, "ab")
	assertMatch(t, s.Match(), 0, 0, 2)

	pos, err := s.AddByte(text, pos, 'c')
	if err != nil {
		t.Fatalf("AddByte: %v", err)
	}
	assertMatch(t, s.Match(), 0, 4, 3)
	if pos != (Position{Row: 0, Col: 4}) {
		t.Fatalf("position = %+v, want {0 4}", pos)
	}
}

func TestNoMatchKeepsPosition(t *testing.T) {
	text := newTestText(t, "hello world")
	s := NewSession(false)
	at := Position{Row: 0, Col: 3}
	s.Begin(at, false)

	pos, err := typeQuery(t, s, text, at, "zz")
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("err = %v, want ErrNoMatch", err)
	}
	if pos != at || s.Match().Len != 0 {
		t.Fatalf("position = %+v, match = %+v", pos, s.Match())
	}

	pos, err = s.FindNext(text, pos)
	if !errors.Is(err, ErrNoMoreMatches) || pos != at {
		t.Fatalf("FindNext = %+v, %v; want %+v, ErrNoMoreMatches", pos, err, at)
	}
}

func TestRemoveByte(t *testing.T) {
	text := newTestText(t, "one two\nthree two")
	s := NewSession(false)
	origin := Position{Row: 0, Col: 1}
	s.Begin(origin, false)

	pos, _ := typeQuery(t, s, text, origin, "tw")
	assertMatch(t, s.Match(), 0, 4, 2)

	pos, err := s.RemoveByte(text, pos)
	if err != nil {
		t.Fatalf("RemoveByte: %v", err)
	}
	assertMatch(t, s.Match(), 0, 4, 1)
	if s.Query() != "t" {
		t.Fatalf("query = %q, want %q", s.Query(), "t")
	}

	pos, _ = s.RemoveByte(text, pos)
	if pos != origin {
		t.Fatalf("empty query position = %+v, want origin %+v", pos, origin)
	}
	if s.Match().Len != 0 || !s.Active() {
		t.Fatalf("match = %+v, active = %v", s.Match(), s.Active())
	}

	if again, err := s.RemoveByte(text, pos); err != nil || again != pos {
		t.Fatalf("RemoveByte on empty query = %+v, %v", again, err)
	}
}

func TestQueryLengthIsBounded(t *testing.T) {
	text := newTestText(t, strings.Repeat("a", 300))
	s := NewSession(false)
	s.Begin(Position{}, false)

	pos, err := typeQuery(t, s, text, Position{}, strings.Repeat("a", MaxQueryLen))
	if err != nil {
		t.Fatalf("AddByte: %v", err)
	}
	if _, err := s.AddByte(text, pos, 'a'); !errors.Is(err, ErrQueryTooLong) {
		t.Fatalf("err = %v, want ErrQueryTooLong", err)
	}
	if len(s.Query()) != MaxQueryLen {
		t.Fatalf("query length = %d, want %d", len(s.Query()), MaxQueryLen)
	}
}

func TestToggleCaseRescans(t *testing.T) {
	text := newTestText(t, "Foo foo")
	s := NewSession(false)
	s.Begin(Position{}, false)
	if s.CaseSensitive() {
		t.Fatalf("session should start case-insensitive")
	}

	pos, _ := typeQuery(t, s, text, Position{}, "foo")
	assertMatch(t, s.Match(), 0, 0, 3)

	pos, err := s.ToggleCase(text, pos)
	if err != nil {
		t.Fatalf("ToggleCase: %v", err)
	}
	if !s.CaseSensitive() {
		t.Fatalf("case sensitivity not toggled")
	}
	assertMatch(t, s.Match(), 0, 4, 3)
	if pos != (Position{Row: 0, Col: 4}) {
		t.Fatalf("position = %+v, want {0 4}", pos)
	}

	s.Begin(Position{}, false)
	if s.CaseSensitive() {
		t.Fatalf("Begin should restore the default sensitivity")
	}
}

func TestSwitchDirection(t *testing.T) {
	text := newTestText(t, "ab ab ab")
	s := NewSession(false)
	if s.SwitchDirection() {
		t.Fatalf("switched outside a session")
	}
	s.Begin(Position{}, false)
	if s.SwitchDirection() {
		t.Fatalf("switched with an empty query")
	}

	pos, _ := typeQuery(t, s, text, Position{Row: 0, Col: 3}, "ab")
	assertMatch(t, s.Match(), 0, 3, 2)
	if !s.SwitchDirection() || !s.Reverse() {
		t.Fatalf("direction not switched")
	}
	assertMatch(t, s.Match(), 0, 3, 2)

	if _, err := s.FindNext(text, pos); err != nil {
		t.Fatalf("FindNext: %v", err)
	}
	assertMatch(t, s.Match(), 0, 0, 2)
}

func TestAcceptKeepsPosition(t *testing.T) {
	text := newTestText(t, "alpha beta")
	s := NewSession(false)
	s.Begin(Position{}, false)
	pos, _ := typeQuery(t, s, text, Position{}, "beta")
	s.Accept()
	if s.Active() || s.Match().Len != 0 {
		t.Fatalf("session still active after accept")
	}
	if pos != (Position{Row: 0, Col: 6}) {
		t.Fatalf("position = %+v, want {0 6}", pos)
	}
	if _, err := s.AddByte(text, pos, 'x'); !errors.Is(err, ErrInactive) {
		t.Fatalf("AddByte after accept err = %v, want ErrInactive", err)
	}
}

func TestPrompt(t *testing.T) {
	s := NewSession(true)
	s.Begin(Position{}, true)
	text := newTestText(t, "x")
	_, _ = s.AddByte(text, Position{}, 'x')
	if got, want := s.Prompt(), "Reverse search (case-sensitive): x"; got != want {
		t.Fatalf("Prompt() = %q, want %q", got, want)
	}
}
