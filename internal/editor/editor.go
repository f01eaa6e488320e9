package editor

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/rawedit/internal/config"
	"github.com/kobzarvs/rawedit/internal/gitinfo"
	"github.com/kobzarvs/rawedit/internal/killring"
	"github.com/kobzarvs/rawedit/internal/logger"
	"github.com/kobzarvs/rawedit/internal/region"
	"github.com/kobzarvs/rawedit/internal/search"
	"github.com/kobzarvs/rawedit/internal/session"
	"github.com/kobzarvs/rawedit/internal/syntax"
	"github.com/kobzarvs/rawedit/internal/textstore"
	"github.com/kobzarvs/rawedit/internal/view"
)

type Mode int

const (
	ModeEdit Mode = iota
	ModeSearch
	ModePrompt
)

func (m Mode) String() string {
	switch m {
	case ModeSearch:
		return "SEARCH"
	case ModePrompt:
		return "PROMPT"
	default:
		return "EDIT"
	}
}

type messageKind int

const (
	messageInfo messageKind = iota
	messageWarning
	messageError
)

// promptKind says what the filename prompt is collecting for.
type promptKind int

const (
	promptOpen promptKind = iota
	promptSave
)

const (
	openPrompt = "Enter filename: "
	savePrompt = "Save as: "

	// maxFilenameLen bounds the prompt input in bytes.
	maxFilenameLen = 255

	// Buffers larger than this are edited without syntax colouring.
	maxHighlightBytes = 8 << 20
)

var errNoFilename = errors.New("no file name")

// defaultWindow is used until the first resize or render.
var defaultWindow = view.Window{Rows: 24, Cols: 80}

// Cursor is a position in byte columns.
type Cursor struct {
	Row int
	Col int
}

func cursorLess(a, b Cursor) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Col < b.Col
}

type Editor struct {
	alloc     region.Allocator
	store     *textstore.Store
	view      *view.Controller
	search    *search.Session
	kill      *killring.Ring
	highlight *syntax.Highlighter
	positions *session.Manager
	keymap    keymapSet
	tabWidth  int

	mode        Mode
	pending     string
	prompt      []byte
	promptFor   promptKind
	markActive  bool
	mark        Cursor
	filename    string
	branch      string
	message     string
	messageKind messageKind
	syntaxStale bool
	syntaxLimit int
	syncWanted  bool

	styleMain      tcell.Style
	styleStatus    tcell.Style
	styleMessage   tcell.Style
	styleWarning   tcell.Style
	styleError     tcell.Style
	styleSelection tcell.Style
	styleMatch     tcell.Style
	styleClass     [syntax.Delimiter + 1]tcell.Style
}

// New returns an editor over an empty one-page buffer. It fails only when
// that first region cannot be acquired.
func New(cfg config.Config, langs config.Languages, alloc region.Allocator) (*Editor, error) {
	if alloc == nil {
		alloc = region.Heap{}
	}
	st, err := textstore.NewWithCapacity(alloc, region.PageSize)
	if err != nil {
		return nil, fmt.Errorf("create buffer: %w", err)
	}
	tabWidth := cfg.Editor.TabWidth
	if tabWidth < 1 {
		tabWidth = 1
	}
	var mirror killring.Mirror
	if cfg.Editor.SystemClipboard {
		mirror = killring.SystemClipboard{}
	}
	e := &Editor{
		alloc:    alloc,
		store:    st,
		view:     view.New(st, defaultWindow, tabWidth),
		search:   search.NewSession(cfg.Editor.CaseSensitiveSearch),
		kill:     killring.New(cfg.Editor.KillRingCapacity, mirror),
		keymap:   newKeymapSet(cfg.Keymap),
		tabWidth: tabWidth,

		syntaxLimit: maxHighlightBytes,
	}
	if !cfg.Editor.NoSyntax {
		e.highlight = syntax.New(langs)
		e.syntaxStale = true
	}
	e.applyTheme(cfg.Theme)
	return e, nil
}

func (e *Editor) applyTheme(th config.Theme) {
	mainFg := parseColor(th.Foreground, tcell.ColorWhite)
	mainBg := parseColor(th.Background, tcell.ColorBlack)
	e.styleMain = tcell.StyleDefault.Foreground(mainFg).Background(mainBg)
	e.styleStatus = tcell.StyleDefault.
		Foreground(parseColor(th.StatuslineForeground, tcell.ColorBlack)).
		Background(parseColor(th.StatuslineBackground, tcell.ColorGray))
	e.styleMessage = e.styleMain.Foreground(parseColor(th.MessageForeground, mainFg))
	e.styleWarning = e.styleMain.Foreground(parseColor(th.WarningForeground, tcell.ColorYellow))
	e.styleError = e.styleMain.Foreground(parseColor(th.ErrorForeground, tcell.ColorRed))
	e.styleSelection = tcell.StyleDefault.
		Foreground(parseColor(th.SelectionForeground, mainFg)).
		Background(parseColor(th.SelectionBackground, tcell.ColorNavy))
	e.styleMatch = tcell.StyleDefault.
		Foreground(parseColor(th.SearchMatchForeground, tcell.ColorBlack)).
		Background(parseColor(th.SearchMatchBackground, tcell.ColorYellow))

	e.styleClass[syntax.Default] = e.styleMain
	e.styleClass[syntax.Comment] = e.styleMain.Foreground(parseColor(th.SyntaxComment, mainFg))
	e.styleClass[syntax.Keyword] = e.styleMain.Foreground(parseColor(th.SyntaxKeyword, mainFg))
	e.styleClass[syntax.String] = e.styleMain.Foreground(parseColor(th.SyntaxString, mainFg))
	e.styleClass[syntax.Number] = e.styleMain.Foreground(parseColor(th.SyntaxNumber, mainFg))
	e.styleClass[syntax.Delimiter] = e.styleMain.Foreground(parseColor(th.SyntaxDelimiter, mainFg))
}

func (e *Editor) Mode() Mode       { return e.mode }
func (e *Editor) Filename() string { return e.filename }
func (e *Editor) Message() string  { return e.message }
func (e *Editor) Modified() bool   { return e.store.Modified() }
func (e *Editor) Content() []byte  { return e.store.Bytes() }
func (e *Editor) MarkActive() bool { return e.markActive }
func (e *Editor) Cursor() Cursor   { return Cursor{Row: e.view.Row(), Col: e.view.ByteCol()} }

// View exposes the cursor and viewport.
func (e *Editor) View() *view.Controller { return e.view }

// ConsumeSync reports whether a full repaint was requested since the last
// call.
func (e *Editor) ConsumeSync() bool {
	want := e.syncWanted
	e.syncWanted = false
	return want
}

// SetSession makes the editor remember and restore cursor positions per
// file. It must be called before Open.
func (e *Editor) SetSession(m *session.Manager) { e.positions = m }

func (e *Editor) rememberPosition() {
	if e.positions == nil || e.filename == "" {
		return
	}
	abs, err := filepath.Abs(e.filename)
	if err != nil {
		return
	}
	e.positions.SetFileState(abs, session.FileState{CursorRow: e.view.Row(), CursorCol: e.view.Col()})
}

func (e *Editor) restorePosition() {
	if e.positions == nil {
		return
	}
	abs, err := filepath.Abs(e.filename)
	if err != nil {
		return
	}
	if st, ok := e.positions.GetFileState(abs); ok {
		e.view.SetPositionSticky(st.CursorRow, st.CursorCol)
	}
}

// setFilename names the buffer and refreshes what depends on the name.
func (e *Editor) setFilename(path string) {
	e.filename = path
	e.branch = ""
	if path != "" {
		e.branch = gitinfo.Branch(path)
	}
	if e.highlight != nil {
		e.highlight.SetFile(path)
		e.syntaxStale = true
	}
}

// Close releases the buffer region and the parser.
func (e *Editor) Close() {
	e.rememberPosition()
	if err := e.store.Release(); err != nil {
		logger.Warn("release buffer", "error", err)
	}
	if e.highlight != nil {
		e.highlight.Close()
	}
}

// Open replaces the buffer with path. A missing file becomes a new, empty
// buffer. On failure the current buffer is kept.
func (e *Editor) Open(path string) error {
	st, err := textstore.Load(e.alloc, path)
	if err != nil {
		e.setError(fmt.Sprintf("Error opening file: %v", err))
		return err
	}
	e.replaceStore(st, path)
	if st.Modified() {
		e.setInfo("New file created")
	} else {
		e.restorePosition()
		e.setInfo("File opened successfully")
	}
	logger.Info("file opened", "path", path, "bytes", st.Size(), "new", st.Modified())
	return nil
}

func (e *Editor) replaceStore(st *textstore.Store, path string) {
	e.rememberPosition()
	if e.store != nil {
		if err := e.store.Release(); err != nil {
			logger.Warn("release buffer", "error", err)
		}
	}
	e.store = st
	e.view.Reset(st)
	if e.search.Active() {
		e.search.Cancel()
	}
	e.markActive = false
	e.mode = ModeEdit
	e.setFilename(path)
	if e.highlight != nil && !e.colouring() {
		logger.Info("syntax colouring disabled", "path", path, "bytes", st.Size())
	}
}

// Save writes the buffer to its file.
func (e *Editor) Save() error {
	if e.filename == "" {
		e.setError("Error saving file: no file name")
		return errNoFilename
	}
	n, err := e.store.Persist(e.filename)
	if err != nil {
		e.setError(fmt.Sprintf("Error saving file: %v", err))
		return err
	}
	logger.Info("file saved", "path", e.filename, "bytes", n)
	e.setInfo("File saved successfully")
	return nil
}

// Resize adopts a new terminal size.
func (e *Editor) Resize(cols, rows int) {
	e.view.Reflow(view.Window{Rows: rows, Cols: cols})
}

// HandleEvent dispatches one terminal event and reports whether the editor
// should quit.
func (e *Editor) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return e.HandleKey(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		e.Resize(w, h)
		e.setInfo("Terminal resized")
	}
	return false
}

// HandleKey dispatches one key and reports whether the editor should quit.
func (e *Editor) HandleKey(ev *tcell.EventKey) bool {
	switch e.mode {
	case ModeSearch:
		e.handleSearch(ev)
		return false
	case ModePrompt:
		e.handlePrompt(ev)
		return false
	default:
		return e.handleEdit(ev)
	}
}

func (e *Editor) handleEdit(ev *tcell.EventKey) bool {
	key := keyString(ev)
	if e.pending != "" {
		chord := e.pending + " " + key
		e.pending = ""
		if cmd, ok := e.keymap.edit.bindings[chord]; ok {
			e.message = ""
			return e.exec(cmd)
		}
		e.setWarning(chord + " is undefined")
		return false
	}
	e.message = ""
	if e.keymap.edit.prefixes[key] {
		e.pending = key
		e.setInfo(key + "-")
		return false
	}
	if cmd, ok := e.keymap.edit.bindings[key]; ok {
		return e.exec(cmd)
	}
	if ch, ok := printable(ev); ok {
		e.insertChar(ch)
	}
	return false
}

func (e *Editor) exec(cmd Command) bool {
	switch cmd {
	case CmdMoveUp:
		e.view.MoveUp()
	case CmdMoveDown:
		e.view.MoveDown()
	case CmdMoveLeft:
		e.view.MoveLeft()
	case CmdMoveRight:
		e.view.MoveRight()
	case CmdLineStart:
		e.view.MoveHome()
	case CmdLineEnd:
		e.view.MoveEnd()
	case CmdPageUp:
		e.view.PageUp()
	case CmdPageDown:
		e.view.PageDown()
	case CmdFileStart:
		e.view.GotoFirst()
	case CmdFileEnd:
		e.view.GotoLast()
	case CmdWordForward:
		e.view.WordForward()
	case CmdWordBackward:
		e.view.WordBackward()
	case CmdNewline:
		e.insertNewline()
	case CmdOpenLine:
		e.openLine()
	case CmdInsertTab:
		e.insertChar('\t')
	case CmdBackspace:
		e.backspace()
	case CmdDeleteChar:
		e.deleteChar()
	case CmdKillLine:
		e.killLine()
	case CmdSetMark:
		e.setMark()
	case CmdClearMark:
		e.clearMark()
	case CmdCut:
		e.cutSelection()
	case CmdCopy:
		e.copySelection()
	case CmdPaste:
		e.paste()
	case CmdSearchForward:
		e.beginSearch(false)
	case CmdSearchBackward:
		e.beginSearch(true)
	case CmdSave:
		if e.filename == "" {
			e.openPrompt(promptSave)
			return false
		}
		_ = e.Save()
	case CmdOpen:
		e.openPrompt(promptOpen)
	case CmdRefresh:
		e.syncWanted = true
		e.view.Rescroll()
	case CmdQuit:
		logger.Info("quit", "path", e.filename, "modified", e.store.Modified())
		return true
	}
	return false
}

func (e *Editor) setInfo(msg string) {
	e.message = msg
	e.messageKind = messageInfo
}

func (e *Editor) setWarning(msg string) {
	e.message = msg
	e.messageKind = messageWarning
}

func (e *Editor) setError(msg string) {
	e.message = msg
	e.messageKind = messageError
	logger.Debug("command failed", "message", msg)
}

// reportEditError turns a store failure into a status message.
func (e *Editor) reportEditError(err error) {
	switch {
	case errors.Is(err, textstore.ErrBufferFull):
		e.setError("Buffer is full")
	default:
		e.setError("Invalid operation")
	}
	logger.Debug("edit rejected", "error", err)
}

// colouring reports whether the buffer is small enough to be highlighted.
func (e *Editor) colouring() bool {
	return e.highlight != nil && e.store.Size() <= e.syntaxLimit
}

func (e *Editor) edited() {
	e.syntaxStale = true
}
