package editor

import (
	"errors"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/rawedit/internal/logger"
	"github.com/kobzarvs/rawedit/internal/search"
)

func (e *Editor) position() search.Position {
	cur := e.Cursor()
	return search.Position{Row: cur.Row, Col: cur.Col}
}

func (e *Editor) moveTo(p search.Position) {
	e.view.SetBytePosition(p.Row, p.Col)
}

func (e *Editor) beginSearch(reverse bool) {
	e.search.Begin(e.position(), reverse)
	e.mode = ModeSearch
	e.message = ""
	logger.Debug("search begin", "reverse", reverse, "row", e.view.Row(), "col", e.view.ByteCol())
}

func (e *Editor) handleSearch(ev *tcell.EventKey) {
	if cmd, ok := e.keymap.search.bindings[keyString(ev)]; ok {
		e.searchCommand(cmd)
		return
	}
	ch, ok := printable(ev)
	if !ok {
		return
	}
	pos, err := e.search.AddByte(e.store, e.position(), ch)
	e.searchResult(pos, err)
}

func (e *Editor) searchCommand(cmd Command) {
	at := e.position()
	switch cmd {
	case CmdSearchForward, CmdSearchBackward:
		reverse := cmd == CmdSearchBackward
		if e.search.Reverse() != reverse {
			e.search.SwitchDirection()
			e.message = ""
			return
		}
		pos, err := e.search.FindNext(e.store, at)
		e.searchResult(pos, err)
	case CmdToggleCase:
		pos, err := e.search.ToggleCase(e.store, at)
		e.searchResult(pos, err)
	case CmdBackspace:
		pos, err := e.search.RemoveByte(e.store, at)
		e.searchResult(pos, err)
	case CmdAccept:
		e.search.Accept()
		e.mode = ModeEdit
		e.message = ""
		logger.Debug("search accept", "row", at.Row, "col", at.Col)
	case CmdCancel:
		e.moveTo(e.search.Cancel())
		e.mode = ModeEdit
		e.message = ""
		logger.Debug("search cancel", "row", e.view.Row(), "col", e.view.ByteCol())
	}
}

func (e *Editor) searchResult(pos search.Position, err error) {
	e.moveTo(pos)
	switch {
	case err == nil:
		e.message = ""
	case errors.Is(err, search.ErrNoMatch):
		e.setWarning("No match found")
	case errors.Is(err, search.ErrNoMoreMatches):
		e.setWarning("No more matches")
	case errors.Is(err, search.ErrQueryTooLong):
		e.setError("Search query too long")
	default:
		e.setError(err.Error())
	}
}
