package view

func isWordByte(ch byte) bool {
	return ch >= '0' && ch <= '9' || ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z'
}

// wordStart walks back from col to the first byte of the word at or before
// it.
func wordStart(line []byte, col int) int {
	if len(line) == 0 {
		return 0
	}
	pos := min(col, len(line)-1)
	for pos > 0 && !isWordByte(line[pos]) {
		pos--
	}
	for pos > 0 && isWordByte(line[pos-1]) {
		pos--
	}
	return pos
}

// skipWord advances past any separators and then the word after them.
func skipWord(line []byte, col int) int {
	for col < len(line) && !isWordByte(line[col]) {
		col++
	}
	for col < len(line) && isWordByte(line[col]) {
		col++
	}
	return col
}

// WordForward moves to the end of the next word. At the end of a line it
// moves to the start of the next line.
func (c *Controller) WordForward() {
	if c.lines.CountLines() == 0 {
		return
	}
	last := c.lastRow()
	line, _ := c.lines.GetLine(c.fileRow)
	b := c.ByteCol()

	row, col := c.fileRow, b
	switch {
	case len(line) == 0 || b >= len(line):
		if c.fileRow < last {
			row, col = c.fileRow+1, 0
		}
	default:
		next := skipWord(line, b)
		if next >= len(line) && c.fileRow < last {
			row, col = c.fileRow+1, 0
		} else {
			col = next
		}
	}
	c.SetBytePosition(row, col)
}

// WordBackward moves to the start of the current or previous word. At the
// start of a line it moves to the last word of the previous non-empty line.
func (c *Controller) WordBackward() {
	if c.lines.CountLines() == 0 {
		return
	}
	line, _ := c.lines.GetLine(c.fileRow)
	b := c.ByteCol()

	if len(line) == 0 || b == 0 {
		for row := c.fileRow - 1; row >= 0; row-- {
			prev, ok := c.lines.GetLine(row)
			if ok && len(prev) > 0 {
				c.SetBytePosition(row, wordStart(prev, len(prev)-1))
				return
			}
		}
		return
	}

	col := min(b, len(line)-1)
	if isWordByte(line[col]) && (col == 0 || !isWordByte(line[col-1])) {
		if col > 0 {
			col = wordStart(line, col-1)
		}
	} else {
		col = wordStart(line, col)
	}
	c.SetBytePosition(c.fileRow, col)
}
