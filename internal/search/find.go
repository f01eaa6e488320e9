// Package search implements incremental substring search over lines of
// text, in either direction, wrapping around the ends of the buffer.
//
// Columns here are byte offsets within a line.
package search

// Text is the read side of the buffer being searched.
type Text interface {
	CountLines() int
	GetLine(row int) ([]byte, bool)
}

type Position struct {
	Row int
	Col int
}

// Match is a found occurrence. Len is 0 when there is none.
type Match struct {
	Row int
	Col int
	Len int
}

func (m Match) Position() Position { return Position{Row: m.Row, Col: m.Col} }

func fold(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 32
	}
	return c
}

// matchAt reports whether query occurs in line starting at pos.
func matchAt(line []byte, pos int, query []byte, caseSensitive bool) bool {
	if pos < 0 || pos+len(query) > len(line) {
		return false
	}
	for j, q := range query {
		c := line[pos+j]
		if caseSensitive {
			if c != q {
				return false
			}
		} else if fold(c) != fold(q) {
			return false
		}
	}
	return true
}

// Forward finds the first occurrence at or after from, then wraps to the
// top of the buffer and looks for one that ends at or before from.
func Forward(t Text, query []byte, caseSensitive bool, from Position) (Match, bool) {
	if len(query) == 0 {
		return Match{}, false
	}
	n := len(query)
	lines := t.CountLines()

	col := from.Col
	for row := from.Row; row < lines; row++ {
		if line, ok := t.GetLine(row); ok {
			for i := max(col, 0); i+n <= len(line); i++ {
				if matchAt(line, i, query, caseSensitive) {
					return Match{Row: row, Col: i, Len: n}, true
				}
			}
		}
		col = 0
	}

	for row := 0; row <= from.Row && row < lines; row++ {
		line, ok := t.GetLine(row)
		if !ok {
			continue
		}
		end := len(line)
		if row == from.Row {
			end = min(from.Col, len(line))
		}
		for i := 0; i+n <= end; i++ {
			if matchAt(line, i, query, caseSensitive) {
				return Match{Row: row, Col: i, Len: n}, true
			}
		}
	}
	return Match{}, false
}

// Backward finds the nearest occurrence ending at or before from, scanning
// toward the top, then wraps to the bottom and scans back down to an
// occurrence starting after from.
func Backward(t Text, query []byte, caseSensitive bool, from Position) (Match, bool) {
	if len(query) == 0 {
		return Match{}, false
	}
	n := len(query)

	if line, ok := t.GetLine(from.Row); ok {
		for i := from.Col - n; i >= 0; i-- {
			if matchAt(line, i, query, caseSensitive) {
				return Match{Row: from.Row, Col: i, Len: n}, true
			}
		}
	}
	for row := from.Row - 1; row >= 0; row-- {
		line, ok := t.GetLine(row)
		if !ok {
			continue
		}
		for i := len(line) - n; i >= 0; i-- {
			if matchAt(line, i, query, caseSensitive) {
				return Match{Row: row, Col: i, Len: n}, true
			}
		}
	}

	for row := t.CountLines() - 1; row >= from.Row && row >= 0; row-- {
		line, ok := t.GetLine(row)
		if !ok {
			continue
		}
		start := 0
		if row == from.Row {
			start = from.Col + 1
		}
		for i := len(line) - n; i >= start; i-- {
			if matchAt(line, i, query, caseSensitive) {
				return Match{Row: row, Col: i, Len: n}, true
			}
		}
	}
	return Match{}, false
}
