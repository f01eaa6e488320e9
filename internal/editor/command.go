package editor

// Command is one editor action a key can be bound to.
type Command int

const (
	CmdNone Command = iota
	CmdMoveUp
	CmdMoveDown
	CmdMoveLeft
	CmdMoveRight
	CmdLineStart
	CmdLineEnd
	CmdPageUp
	CmdPageDown
	CmdFileStart
	CmdFileEnd
	CmdWordForward
	CmdWordBackward
	CmdNewline
	CmdOpenLine
	CmdInsertTab
	CmdBackspace
	CmdDeleteChar
	CmdKillLine
	CmdSetMark
	CmdClearMark
	CmdCut
	CmdCopy
	CmdPaste
	CmdSearchForward
	CmdSearchBackward
	CmdToggleCase
	CmdAccept
	CmdCancel
	CmdSave
	CmdOpen
	CmdQuit
	CmdRefresh
)

var commandNames = map[string]Command{
	"move_up":         CmdMoveUp,
	"move_down":       CmdMoveDown,
	"move_left":       CmdMoveLeft,
	"move_right":      CmdMoveRight,
	"line_start":      CmdLineStart,
	"line_end":        CmdLineEnd,
	"page_up":         CmdPageUp,
	"page_down":       CmdPageDown,
	"file_start":      CmdFileStart,
	"file_end":        CmdFileEnd,
	"word_forward":    CmdWordForward,
	"word_backward":   CmdWordBackward,
	"newline":         CmdNewline,
	"open_line":       CmdOpenLine,
	"insert_tab":      CmdInsertTab,
	"backspace":       CmdBackspace,
	"delete_char":     CmdDeleteChar,
	"kill_line":       CmdKillLine,
	"set_mark":        CmdSetMark,
	"clear_mark":      CmdClearMark,
	"cut":             CmdCut,
	"copy":            CmdCopy,
	"paste":           CmdPaste,
	"search_forward":  CmdSearchForward,
	"search_backward": CmdSearchBackward,
	"toggle_case":     CmdToggleCase,
	"accept":          CmdAccept,
	"cancel":          CmdCancel,
	"save":            CmdSave,
	"open":            CmdOpen,
	"quit":            CmdQuit,
	"refresh":         CmdRefresh,
}

// ParseCommand maps a keymap command name to its Command.
func ParseCommand(name string) (Command, bool) {
	cmd, ok := commandNames[name]
	return cmd, ok
}

func (c Command) String() string {
	for name, cmd := range commandNames {
		if cmd == c {
			return name
		}
	}
	return "none"
}
