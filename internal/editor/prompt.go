package editor

import (
	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/rawedit/internal/logger"
)

func (e *Editor) openPrompt(kind promptKind) {
	e.mode = ModePrompt
	e.promptFor = kind
	e.prompt = e.prompt[:0]
	e.message = ""
}

func (e *Editor) promptLabel() string {
	if e.promptFor == promptSave {
		return savePrompt
	}
	return openPrompt
}

func (e *Editor) handlePrompt(ev *tcell.EventKey) {
	if cmd, ok := e.keymap.prompt.bindings[keyString(ev)]; ok {
		switch cmd {
		case CmdBackspace:
			if n := len(e.prompt); n > 0 {
				e.prompt = e.prompt[:n-1]
			}
		case CmdAccept:
			e.acceptPrompt()
		case CmdCancel:
			e.mode = ModeEdit
			e.setInfo("Cancelled")
		}
		return
	}
	ch, ok := printable(ev)
	if !ok || len(e.prompt) >= maxFilenameLen {
		return
	}
	e.prompt = append(e.prompt, ch)
}

func (e *Editor) acceptPrompt() {
	e.mode = ModeEdit
	name := string(e.prompt)
	if name == "" {
		e.setWarning("No file name given")
		return
	}
	switch e.promptFor {
	case promptSave:
		e.setFilename(name)
		_ = e.Save()
	default:
		if err := e.Open(name); err != nil {
			logger.Debug("open failed", "path", name, "error", err)
		}
	}
}
