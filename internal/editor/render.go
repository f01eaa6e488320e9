package editor

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/rawedit/internal/syntax"
	"github.com/kobzarvs/rawedit/internal/view"
)

// Render draws the visible text, the status line and the message line, and
// places the terminal cursor.
func (e *Editor) Render(s tcell.Screen) {
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}
	if win := (view.Window{Rows: h, Cols: w}); win != e.view.Window() {
		e.view.Reflow(win)
	}
	if e.highlight != nil && e.syntaxStale {
		if e.colouring() {
			e.highlight.Parse(e.store.Bytes())
		} else {
			e.highlight.Clear()
		}
		e.syntaxStale = false
	}

	s.SetStyle(e.styleMain)
	s.Clear()

	rows := e.view.EditingRows()
	for y := 0; y < rows; y++ {
		row := e.view.ScrollRow() + y
		line, ok := e.store.GetLine(row)
		if !ok {
			clearLine(s, y, w, e.styleMain)
			continue
		}
		e.drawLine(s, y, w, row, line)
	}

	statusY, msgY := h-2, h-1
	if statusY >= 0 {
		e.renderStatusline(s, w, statusY)
	}
	cx, cy := e.renderMessageLine(s, w, msgY)

	if e.mode == ModeEdit {
		cx, cy = e.view.WindowCol(), e.view.WindowRow()
		if cy < 0 || cy >= rows {
			s.HideCursor()
			s.Show()
			return
		}
	}
	if cx >= w {
		cx = w - 1
	}
	s.ShowCursor(cx, cy)
	s.Show()
}

func (e *Editor) drawLine(s tcell.Screen, y, w, row int, line []byte) {
	var classes []syntax.Class
	if e.colouring() {
		classes = e.highlight.Line(row, line)
	}
	selFrom, selTo := -1, -1
	if e.markActive {
		start, end, _, _ := e.selection()
		selFrom, selTo = e.selectionColumns(row, start, end, len(line))
	}
	match := e.search.Match()
	matchActive := e.search.Active() && match.Len > 0 && match.Row == row

	tab := e.tabWidth
	scroll := e.view.ScrollCol()
	col := 0
	for i, ch := range line {
		style := e.styleMain
		if classes != nil {
			style = e.styleClass[classes[i]]
		}
		switch {
		case matchActive && i >= match.Col && i < match.Col+match.Len:
			style = e.styleMatch
		case i >= selFrom && i < selTo:
			_, selBg, _ := e.styleSelection.Decompose()
			style = style.Background(selBg)
		}
		r, width := rune(ch), 1
		switch {
		case ch == '\t':
			r, width = ' ', tab-col%tab
		case ch < ' ' || ch > '~':
			r = '?'
		}
		for ; width > 0; width-- {
			if x := col - scroll; x >= 0 && x < w {
				s.SetContent(x, y, r, nil, style)
			}
			col++
		}
		if col-scroll >= w {
			break
		}
	}
	for x := max(col-scroll, 0); x < w; x++ {
		s.SetContent(x, y, ' ', nil, e.styleMain)
	}
}

// selectionColumns returns the byte range of line row covered by the region
// [start, end).
func (e *Editor) selectionColumns(row int, start, end Cursor, lineLen int) (int, int) {
	if row < start.Row || row > end.Row {
		return -1, -1
	}
	from, to := 0, lineLen
	if row == start.Row {
		from = start.Col
	}
	if row == end.Row {
		to = end.Col
	}
	return from, to
}

func (e *Editor) renderStatusline(s tcell.Screen, w, y int) {
	name := e.filename
	if name == "" {
		name = "[No Name]"
	} else {
		name = filepath.Base(name)
	}
	dirty := ""
	if e.store.Modified() {
		dirty = "*"
	}
	left := fmt.Sprintf(" %s%s L%d:C%d", name, dirty, e.view.Row(), e.view.Col())
	right := " " + e.mode.String() + " "
	if e.highlight != nil {
		right = fmt.Sprintf(" %s | %s ", e.highlight.Language(), e.mode)
	}
	if e.branch != "" {
		right = " " + e.branch + " |" + right
	}
	for x, r := range composeStatusLine(left, right, w) {
		s.SetContent(x, y, r, nil, e.styleStatus)
	}
}

// renderMessageLine draws the message line and returns where the cursor
// belongs when input is being typed into it.
func (e *Editor) renderMessageLine(s tcell.Screen, w, y int) (int, int) {
	clearLine(s, y, w, e.styleMain)
	style := e.styleMessage
	switch e.messageKind {
	case messageWarning:
		style = e.styleWarning
	case messageError:
		style = e.styleError
	}

	var text string
	switch e.mode {
	case ModeSearch:
		text = e.search.Prompt()
	case ModePrompt:
		text = e.promptLabel() + string(e.prompt)
	default:
		putString(s, 0, y, w, e.message, style)
		return 0, y
	}
	x := putString(s, 0, y, w, text, e.styleMessage)
	if e.message != "" {
		putString(s, x, y, w, "  "+e.message, style)
	}
	return x, y
}

// putString draws text from x and returns the column after it.
func putString(s tcell.Screen, x, y, w int, text string, style tcell.Style) int {
	for _, r := range text {
		if x >= w {
			break
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

func clearLine(s tcell.Screen, y, w int, style tcell.Style) {
	for x := 0; x < w; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}

func composeStatusLine(left, right string, width int) []rune {
	if width <= 0 {
		return nil
	}
	leftRunes := []rune(left)
	rightRunes := []rune(right)
	if len(leftRunes)+len(rightRunes) > width {
		if len(rightRunes) >= width {
			rightRunes = rightRunes[len(rightRunes)-width:]
			leftRunes = nil
		} else {
			leftRunes = leftRunes[:width-len(rightRunes)]
		}
	}
	line := make([]rune, 0, width)
	line = append(line, leftRunes...)
	line = append(line, []rune(strings.Repeat(" ", width-len(leftRunes)-len(rightRunes)))...)
	line = append(line, rightRunes...)
	return line
}

func parseColor(name string, fallback tcell.Color) tcell.Color {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	if strings.HasPrefix(name, "#") && len(name) == 7 {
		r, err1 := strconv.ParseInt(name[1:3], 16, 32)
		g, err2 := strconv.ParseInt(name[3:5], 16, 32)
		b, err3 := strconv.ParseInt(name[5:7], 16, 32)
		if err1 == nil && err2 == nil && err3 == nil {
			return tcell.NewRGBColor(int32(r), int32(g), int32(b))
		}
		return fallback
	}
	name = strings.ToLower(name)
	if name == "default" {
		return tcell.ColorDefault
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}
