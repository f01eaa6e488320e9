// Package view tracks the cursor's file position and the scrolled window
// over it.
//
// File columns are display columns: a tab occupies the cells up to the next
// multiple of the tab width. Every motion leaves the cursor on the first
// cell of a character and then rescrolls so the cursor is visible.
package view

// Lines is the read side of the text the controller moves over.
type Lines interface {
	CountLines() int
	GetLine(row int) ([]byte, bool)
	LineLength(row, tab int) int
	ByteColumn(row, displayCol, tab int) int
	DisplayColumn(row, byteCol, tab int) int
}

// Window is the terminal size in cells. The bottom two rows belong to the
// status and message lines.
type Window struct {
	Rows int
	Cols int
}

// EditingRows is the number of rows available for text.
func (w Window) EditingRows() int {
	if w.Rows < 2 {
		return 0
	}
	return w.Rows - 2
}

type Controller struct {
	lines Lines
	win   Window
	tab   int

	fileRow, fileCol     int
	scrollRow, scrollCol int
	preferredCol         int
}

func New(lines Lines, win Window, tab int) *Controller {
	if tab < 1 {
		tab = 1
	}
	return &Controller{lines: lines, win: win, tab: tab}
}

// Reset points the controller at new text and returns it to the top left.
func (c *Controller) Reset(lines Lines) {
	c.lines = lines
	c.fileRow, c.fileCol = 0, 0
	c.scrollRow, c.scrollCol = 0, 0
	c.preferredCol = 0
}

func (c *Controller) Row() int          { return c.fileRow }
func (c *Controller) Col() int          { return c.fileCol }
func (c *Controller) ScrollRow() int    { return c.scrollRow }
func (c *Controller) ScrollCol() int    { return c.scrollCol }
func (c *Controller) PreferredCol() int { return c.preferredCol }
func (c *Controller) Window() Window    { return c.win }
func (c *Controller) TabWidth() int     { return c.tab }
func (c *Controller) EditingRows() int  { return c.win.EditingRows() }

// WindowRow and WindowCol are the cursor's on-screen coordinates.
func (c *Controller) WindowRow() int { return c.fileRow - c.scrollRow }
func (c *Controller) WindowCol() int { return c.fileCol - c.scrollCol }

// ByteCol is the cursor column as an offset into the current line.
func (c *Controller) ByteCol() int {
	return c.lines.ByteColumn(c.fileRow, c.fileCol, c.tab)
}

func (c *Controller) lastRow() int {
	if n := c.lines.CountLines(); n > 1 {
		return n - 1
	}
	return 0
}

func (c *Controller) lineLen(row int) int {
	return c.lines.LineLength(row, c.tab)
}

// snap clamps a display column to the line and moves it back to the start
// of the character under it.
func (c *Controller) snap(row, col int) int {
	if col < 0 {
		return 0
	}
	if n := c.lineLen(row); col > n {
		col = n
	}
	b := c.lines.ByteColumn(row, col, c.tab)
	return c.lines.DisplayColumn(row, b, c.tab)
}

// SetPosition moves to (row, col), clamping both, without changing the
// preferred column.
func (c *Controller) SetPosition(row, col int) {
	if row < 0 {
		row = 0
	}
	if last := c.lastRow(); row > last {
		row = last
	}
	c.fileRow = row
	c.fileCol = c.snap(row, col)
	c.Rescroll()
}

// SetPositionSticky is SetPosition that also makes col the preferred column.
func (c *Controller) SetPositionSticky(row, col int) {
	c.SetPosition(row, col)
	c.preferredCol = c.fileCol
}

// SetBytePosition moves to a byte offset within line row.
func (c *Controller) SetBytePosition(row, byteCol int) {
	c.SetPositionSticky(row, c.lines.DisplayColumn(row, byteCol, c.tab))
}

func (c *Controller) MoveUp() {
	if c.fileRow > 0 {
		c.fileRow--
		c.fileCol = c.snap(c.fileRow, c.preferredCol)
	}
	c.Rescroll()
}

func (c *Controller) MoveDown() {
	if c.fileRow < c.lastRow() {
		c.fileRow++
		c.fileCol = c.snap(c.fileRow, c.preferredCol)
	}
	c.Rescroll()
}

func (c *Controller) MoveLeft() {
	if b := c.ByteCol(); b > 0 {
		c.fileCol = c.lines.DisplayColumn(c.fileRow, b-1, c.tab)
	} else if c.fileRow > 0 {
		c.fileRow--
		c.fileCol = c.lineLen(c.fileRow)
	}
	c.preferredCol = c.fileCol
	c.Rescroll()
}

func (c *Controller) MoveRight() {
	if c.fileCol < c.lineLen(c.fileRow) {
		c.fileCol = c.lines.DisplayColumn(c.fileRow, c.ByteCol()+1, c.tab)
	} else if c.fileRow < c.lastRow() {
		c.fileRow++
		c.fileCol = 0
	}
	c.preferredCol = c.fileCol
	c.Rescroll()
}

func (c *Controller) MoveHome() {
	c.fileCol = 0
	c.preferredCol = 0
	c.Rescroll()
}

func (c *Controller) MoveEnd() {
	c.fileCol = c.lineLen(c.fileRow)
	c.preferredCol = c.fileCol
	c.Rescroll()
}

// PageUp moves cursor and window up by one screen of editing rows.
func (c *Controller) PageUp() {
	rows := c.EditingRows()
	c.scrollRow = max(c.scrollRow-rows, 0)
	c.fileRow = max(c.fileRow-rows, 0)
	c.fileCol = c.snap(c.fileRow, c.fileCol)
	c.Rescroll()
}

// PageDown moves cursor and window down by one screen of editing rows,
// stopping at the last line.
func (c *Controller) PageDown() {
	rows := c.EditingRows()
	last := c.lastRow()
	c.fileRow = min(c.fileRow+rows, last)
	c.scrollRow = min(c.scrollRow+rows, max(last-rows+1, 0))
	c.fileCol = c.snap(c.fileRow, c.fileCol)
	c.Rescroll()
}

func (c *Controller) GotoFirst() {
	c.fileRow, c.fileCol = 0, 0
	c.preferredCol = 0
	c.Rescroll()
}

func (c *Controller) GotoLast() {
	c.fileRow = c.lastRow()
	c.fileCol = c.lineLen(c.fileRow)
	c.preferredCol = c.fileCol
	c.Rescroll()
}

// Reflow adopts a new window size without moving the file position.
func (c *Controller) Reflow(win Window) {
	c.win = win
	c.Rescroll()
}

// Rescroll scrolls the minimum needed to bring the cursor into view.
func (c *Controller) Rescroll() {
	rows := max(c.EditingRows(), 1)
	switch {
	case c.fileRow < c.scrollRow:
		c.scrollRow = c.fileRow
	case c.fileRow >= c.scrollRow+rows:
		c.scrollRow = c.fileRow - rows + 1
	}

	cols := max(c.win.Cols, 1)
	switch {
	case c.fileCol < c.scrollCol:
		c.scrollCol = c.fileCol
	case c.fileCol >= c.scrollCol+cols:
		c.scrollCol = c.fileCol - cols + 1
	}
}
