package editor

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/rawedit/internal/config"
	"github.com/kobzarvs/rawedit/internal/logger"
)

// keymap is one mode's bindings. prefixes holds the first key of every
// two-key chord such as "ctrl+x ctrl+s".
type keymap struct {
	bindings map[string]Command
	prefixes map[string]bool
}

type keymapSet struct {
	edit   keymap
	search keymap
	prompt keymap
}

func newKeymapSet(km config.Keymap) keymapSet {
	return keymapSet{
		edit:   buildKeymap("edit", km.Edit),
		search: buildKeymap("search", km.Search),
		prompt: buildKeymap("prompt", km.Prompt),
	}
}

func buildKeymap(mode string, names map[string]string) keymap {
	m := keymap{
		bindings: make(map[string]Command, len(names)),
		prefixes: make(map[string]bool),
	}
	for key, name := range names {
		cmd, ok := ParseCommand(name)
		if !ok {
			logger.Warn("unknown command in keymap", "mode", mode, "key", key, "command", name)
			continue
		}
		key = strings.Join(strings.Fields(key), " ")
		m.bindings[key] = cmd
		if first, _, chord := strings.Cut(key, " "); chord {
			m.prefixes[first] = true
		}
	}
	return m
}

// keyString names ev the way keymaps do: "a", "ctrl+s", "alt+v", "pgdn".
func keyString(ev *tcell.EventKey) string {
	mod := ev.Modifiers()
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if mod&tcell.ModCtrl != 0 && r > 0 && r < ' ' {
			r += 'a' - 1
		}
		name := string(r)
		if r == ' ' {
			name = "space"
		}
		switch {
		case mod&tcell.ModCtrl != 0:
			return "ctrl+" + strings.ToLower(name)
		case mod&tcell.ModAlt != 0:
			return "alt+" + name
		}
		return name
	}
	// Tab, Backspace, Enter and Esc share codes with ctrl+i, ctrl+h, ctrl+m
	// and ctrl+[, so they are named before the ctrl keys.
	switch ev.Key() {
	case tcell.KeyCtrlSpace:
		return "ctrl+space"
	case tcell.KeyTab:
		return "tab"
	case tcell.KeyBacktab:
		return "shift+tab"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "backspace"
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyEscape:
		return "esc"
	}
	if name := ctrlKeyName(ev.Key()); name != "" {
		return name
	}
	var name string
	switch ev.Key() {
	case tcell.KeyUp:
		name = "up"
	case tcell.KeyDown:
		name = "down"
	case tcell.KeyLeft:
		name = "left"
	case tcell.KeyRight:
		name = "right"
	case tcell.KeyPgUp:
		name = "pgup"
	case tcell.KeyPgDn:
		name = "pgdn"
	case tcell.KeyHome:
		name = "home"
	case tcell.KeyEnd:
		name = "end"
	case tcell.KeyDelete:
		name = "del"
	default:
		return ""
	}
	if mod&tcell.ModAlt != 0 {
		return "alt+" + name
	}
	if mod&tcell.ModCtrl != 0 {
		return "ctrl+" + name
	}
	return name
}

func ctrlKeyName(key tcell.Key) string {
	switch key {
	case tcell.KeyCtrlA:
		return "ctrl+a"
	case tcell.KeyCtrlB:
		return "ctrl+b"
	case tcell.KeyCtrlC:
		return "ctrl+c"
	case tcell.KeyCtrlD:
		return "ctrl+d"
	case tcell.KeyCtrlE:
		return "ctrl+e"
	case tcell.KeyCtrlF:
		return "ctrl+f"
	case tcell.KeyCtrlG:
		return "ctrl+g"
	case tcell.KeyCtrlJ:
		return "ctrl+j"
	case tcell.KeyCtrlK:
		return "ctrl+k"
	case tcell.KeyCtrlL:
		return "ctrl+l"
	case tcell.KeyCtrlN:
		return "ctrl+n"
	case tcell.KeyCtrlO:
		return "ctrl+o"
	case tcell.KeyCtrlP:
		return "ctrl+p"
	case tcell.KeyCtrlQ:
		return "ctrl+q"
	case tcell.KeyCtrlR:
		return "ctrl+r"
	case tcell.KeyCtrlS:
		return "ctrl+s"
	case tcell.KeyCtrlT:
		return "ctrl+t"
	case tcell.KeyCtrlU:
		return "ctrl+u"
	case tcell.KeyCtrlV:
		return "ctrl+v"
	case tcell.KeyCtrlW:
		return "ctrl+w"
	case tcell.KeyCtrlX:
		return "ctrl+x"
	case tcell.KeyCtrlY:
		return "ctrl+y"
	case tcell.KeyCtrlZ:
		return "ctrl+z"
	}
	return ""
}

// printable reports the ASCII byte typed by ev, if it is a plain graphic
// character or space.
func printable(ev *tcell.EventKey) (byte, bool) {
	if ev.Key() != tcell.KeyRune || ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) != 0 {
		return 0, false
	}
	r := ev.Rune()
	if r < ' ' || r > '~' {
		return 0, false
	}
	return byte(r), true
}
