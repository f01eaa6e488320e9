package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/kobzarvs/rawedit/internal/config"
	"github.com/kobzarvs/rawedit/internal/editor"
	"github.com/kobzarvs/rawedit/internal/logger"
	"github.com/kobzarvs/rawedit/internal/region"
	"github.com/kobzarvs/rawedit/internal/session"
)

var errNotTerminal = errors.New("stdin and stdout must be a terminal")

// App is the top-level runtime for rawedit.
type App struct {
	args []string
}

func New(args []string) *App {
	return &App{args: args}
}

func (a *App) Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	langs, err := config.LoadLanguages()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Editor.DebugLog); err != nil {
		fmt.Fprintln(os.Stderr, "rawedit: logging disabled:", err)
	} else {
		defer logger.Close()
	}

	alloc, err := region.ByName(cfg.Editor.Allocator)
	if err != nil {
		return err
	}
	if cfg.Editor.MaxBufferBytes > 0 {
		alloc = region.Limited{Allocator: alloc, Max: cfg.Editor.MaxBufferBytes}
	}

	var openPath string
	if len(a.args) > 0 {
		openPath = a.args[0]
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNotTerminal
	}
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()

	ed, err := editor.New(cfg, langs, alloc)
	if err != nil {
		logger.Error("startup failed", "error", err)
		return err
	}
	if sm, err := session.NewManager(); err != nil {
		logger.Warn("session unavailable", "error", err)
	} else {
		ed.SetSession(sm)
		defer func() {
			if err := sm.Save(); err != nil {
				logger.Warn("save session", "error", err)
			}
		}()
	}
	defer ed.Close()
	logger.Info("started", "allocator", cfg.Editor.Allocator, "file", openPath)

	if openPath != "" {
		// A failed open is reported on the message line; the empty buffer stays.
		_ = ed.Open(openPath)
	}

	ed.Render(s)
	for {
		ev := s.PollEvent()
		if ev == nil {
			return nil
		}
		if ed.HandleEvent(ev) {
			logger.Info("quit", "modified", ed.Modified())
			return nil
		}
		if _, ok := ev.(*tcell.EventResize); ok {
			s.Sync()
		}
		if ed.ConsumeSync() {
			s.Sync()
		}
		ed.Render(s)
	}
}
