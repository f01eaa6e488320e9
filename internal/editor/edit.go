package editor

import (
	"errors"
	"fmt"

	"github.com/kobzarvs/rawedit/internal/killring"
	"github.com/kobzarvs/rawedit/internal/logger"
)

func (e *Editor) insertChar(ch byte) {
	cur := e.Cursor()
	if err := e.store.InsertChar(cur.Row, cur.Col, ch); err != nil {
		e.reportEditError(err)
		return
	}
	e.edited()
	e.view.SetBytePosition(cur.Row, cur.Col+1)
}

func (e *Editor) insertNewline() {
	cur := e.Cursor()
	if err := e.store.InsertNewline(cur.Row, cur.Col); err != nil {
		e.reportEditError(err)
		return
	}
	e.edited()
	e.view.SetBytePosition(cur.Row+1, 0)
}

// openLine splits the line but leaves the cursor before the break.
func (e *Editor) openLine() {
	cur := e.Cursor()
	if err := e.store.InsertNewline(cur.Row, cur.Col); err != nil {
		e.reportEditError(err)
		return
	}
	e.edited()
	e.view.SetBytePosition(cur.Row, cur.Col)
}

func (e *Editor) backspace() {
	cur := e.Cursor()
	if cur.Row == 0 && cur.Col == 0 {
		return
	}
	prevLen := 0
	if cur.Col == 0 {
		line, _ := e.store.GetLine(cur.Row - 1)
		prevLen = len(line)
	}
	if err := e.store.BackspaceAt(cur.Row, cur.Col); err != nil {
		e.reportEditError(err)
		return
	}
	e.edited()
	if cur.Col > 0 {
		e.view.SetBytePosition(cur.Row, cur.Col-1)
	} else {
		e.view.SetBytePosition(cur.Row-1, prevLen)
	}
}

// deleteChar removes the byte under the cursor. At the end of a line it
// joins the next line.
func (e *Editor) deleteChar() {
	cur := e.Cursor()
	line, _ := e.store.GetLine(cur.Row)
	var err error
	switch {
	case cur.Col < len(line):
		err = e.store.DeleteChar(cur.Row, cur.Col)
	case cur.Row+1 < e.store.CountLines():
		err = e.store.JoinNext(cur.Row)
	default:
		return
	}
	if err != nil {
		e.reportEditError(err)
		return
	}
	e.edited()
	e.view.SetBytePosition(cur.Row, cur.Col)
}

// killLine moves the rest of the line into the kill ring. At the end of a
// line it removes the line break instead.
func (e *Editor) killLine() {
	cur := e.Cursor()
	line, ok := e.store.GetLine(cur.Row)
	if !ok || len(line) == 0 {
		e.setInfo("Line is empty")
		return
	}
	if cur.Col >= len(line) {
		if err := e.store.JoinNext(cur.Row); err != nil {
			e.setInfo("Already at end of buffer")
			return
		}
		e.edited()
		e.setInfo("Killed newline")
		return
	}
	if err := e.kill.Copy(line[cur.Col:]); err != nil {
		e.reportKillError(err, "Text too large for kill-ring")
		return
	}
	for n := len(line) - cur.Col; n > 0; n-- {
		if err := e.store.DeleteChar(cur.Row, cur.Col); err != nil {
			e.reportEditError(err)
			return
		}
	}
	e.edited()
	e.view.SetBytePosition(cur.Row, cur.Col)
	e.setInfo("Killed to end of line")
}

func (e *Editor) setMark() {
	e.markActive = true
	e.mark = e.Cursor()
	e.setInfo("Mark set")
}

func (e *Editor) clearMark() {
	if !e.markActive {
		return
	}
	e.markActive = false
	e.setInfo("Mark cleared")
}

// selection returns the marked region ordered by position, as byte offsets
// into the store.
func (e *Editor) selection() (start, end Cursor, from, to int) {
	start, end = e.mark, e.Cursor()
	if cursorLess(end, start) {
		start, end = end, start
	}
	return start, end, e.offset(start), e.offset(end)
}

// offset converts a byte-column position to a store offset, clamping the
// column to the line.
func (e *Editor) offset(c Cursor) int {
	lineStart, ok := e.store.FindLineStart(c.Row)
	if !ok {
		return e.store.Size()
	}
	line, _ := e.store.GetLine(c.Row)
	return lineStart + min(c.Col, len(line))
}

// copySelection puts the marked region in the kill ring. It reports whether
// the region was copied.
func (e *Editor) copySelection() bool {
	if !e.markActive {
		e.setInfo("No selection (mark not active)")
		return false
	}
	_, _, from, to := e.selection()
	if from == to {
		e.setInfo("Empty selection")
		return false
	}
	if err := e.kill.Copy(e.store.Bytes()[from:to]); err != nil {
		e.reportKillError(err, "Selection too large for kill-ring")
		return false
	}
	e.markActive = false
	e.setInfo("Copied selection to kill-ring")
	return true
}

func (e *Editor) cutSelection() {
	if !e.markActive {
		e.setInfo("No selection (mark not active)")
		return
	}
	start, _, from, to := e.selection()
	if !e.copySelection() {
		return
	}
	for n := to - from; n > 0; n-- {
		if err := e.store.DeleteAt(from); err != nil {
			e.reportEditError(err)
			break
		}
	}
	e.edited()
	e.view.SetBytePosition(start.Row, start.Col)
	if e.messageKind == messageInfo {
		e.setInfo("Cut selection to kill-ring")
	}
}

// paste inserts the kill ring at the cursor, leaving the cursor after the
// inserted text.
func (e *Editor) paste() {
	text, err := e.kill.Paste()
	if err != nil {
		e.reportKillError(err, "Text too large for kill-ring")
		return
	}
	cur := e.Cursor()
	defer func() {
		e.edited()
		e.view.SetBytePosition(cur.Row, cur.Col)
	}()
	for _, ch := range text {
		if ch == '\n' {
			if err := e.store.InsertNewline(cur.Row, cur.Col); err != nil {
				e.reportEditError(err)
				return
			}
			cur.Row++
			cur.Col = 0
			continue
		}
		if err := e.store.InsertChar(cur.Row, cur.Col, ch); err != nil {
			e.reportEditError(err)
			return
		}
		cur.Col++
	}
	e.setInfo("Pasted from kill-ring")
}

func (e *Editor) reportKillError(err error, tooLarge string) {
	switch {
	case errors.Is(err, killring.ErrEmpty):
		e.setInfo("Kill-ring is empty")
	case errors.Is(err, killring.ErrTooLarge):
		e.setError(tooLarge)
	default:
		e.setError(fmt.Sprintf("Kill-ring: %v", err))
	}
	logger.Debug("kill-ring", "error", err)
}
