package textstore

// FindLineStart returns the offset of the first byte of line i. Line 0
// always exists, even in an empty store.
func (s *Store) FindLineStart(i int) (int, bool) {
	if i < 0 {
		return 0, false
	}
	if i == 0 {
		return 0, true
	}
	found := 0
	for pos := 0; pos < s.size; pos++ {
		if s.content[pos] == '\n' {
			found++
			if found == i {
				return pos + 1, true
			}
		}
	}
	return 0, false
}

// FindLineEnd returns the offset one past the last byte of line i, which is
// the position of its terminating newline, of the first NUL, or size.
func (s *Store) FindLineEnd(i int) (int, bool) {
	start, ok := s.FindLineStart(i)
	if !ok {
		return 0, false
	}
	for pos := start; pos < s.size; pos++ {
		if c := s.content[pos]; c == '\n' || c == 0 {
			return pos, true
		}
	}
	return s.size, true
}

// GetLine returns the content of line i without its newline. The slice
// aliases the store.
func (s *Store) GetLine(i int) ([]byte, bool) {
	start, ok := s.FindLineStart(i)
	if !ok {
		return nil, false
	}
	end, _ := s.FindLineEnd(i)
	return s.content[start:end:end], true
}

// LineLength is the display width of line i with tabs expanded to the next
// multiple of tab. Missing lines have length 0.
func (s *Store) LineLength(i, tab int) int {
	line, ok := s.GetLine(i)
	if !ok {
		return 0
	}
	return displayWidth(line, len(line), tab)
}

// CountLines is 1 plus the newlines before the first NUL, or 0 when empty.
func (s *Store) CountLines() int {
	if s.size == 0 {
		return 0
	}
	count := 1
	for _, c := range s.content[:s.size] {
		if c == 0 {
			break
		}
		if c == '\n' {
			count++
		}
	}
	return count
}

// ByteColumn maps a display column on line row to a byte offset within the
// line. A display column inside a tab maps to the tab itself; one past the
// end maps to the line length.
func (s *Store) ByteColumn(row, displayCol, tab int) int {
	line, ok := s.GetLine(row)
	if !ok {
		return 0
	}
	tab = normalizeTab(tab)
	col := 0
	for i, c := range line {
		w := 1
		if c == '\t' {
			w = tab - col%tab
		}
		if displayCol < col+w {
			return i
		}
		col += w
	}
	return len(line)
}

// DisplayColumn maps a byte offset on line row to its display column.
func (s *Store) DisplayColumn(row, byteCol, tab int) int {
	line, ok := s.GetLine(row)
	if !ok {
		return 0
	}
	return displayWidth(line, byteCol, tab)
}

func displayWidth(line []byte, n, tab int) int {
	tab = normalizeTab(tab)
	if n > len(line) {
		n = len(line)
	}
	width := 0
	for _, c := range line[:n] {
		if c == '\t' {
			width += tab - width%tab
			continue
		}
		width++
	}
	return width
}

func normalizeTab(tab int) int {
	if tab < 1 {
		return 1
	}
	return tab
}
