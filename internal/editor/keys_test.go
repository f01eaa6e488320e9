package editor

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/rawedit/internal/config"
)

func TestKeyString(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want string
	}{
		{keyRune('a'), "a"},
		{keyRune(' '), "space"},
		{keyAlt('v'), "alt+v"},
		{keyAlt('<'), "alt+<"},
		{key(tcell.KeyCtrlS), "ctrl+s"},
		{key(tcell.KeyCtrlX), "ctrl+x"},
		{key(tcell.KeyCtrlSpace), "ctrl+space"},
		{tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModCtrl), "ctrl+s"},
		{key(tcell.KeyTab), "tab"},
		{key(tcell.KeyEnter), "enter"},
		{key(tcell.KeyEscape), "esc"},
		{key(tcell.KeyBackspace2), "backspace"},
		{key(tcell.KeyPgDn), "pgdn"},
		{key(tcell.KeyDelete), "del"},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModAlt), "alt+left"},
	}
	for _, tt := range tests {
		if got := keyString(tt.ev); got != tt.want {
			t.Fatalf("keyString(%v) = %q, want %q", tt.ev.Name(), got, tt.want)
		}
	}
}

func TestPrintable(t *testing.T) {
	if ch, ok := printable(keyRune('~')); !ok || ch != '~' {
		t.Fatalf("printable('~') = %q, %v", ch, ok)
	}
	if _, ok := printable(keyAlt('x')); ok {
		t.Fatalf("alt+x should not be printable")
	}
	if _, ok := printable(keyRune('é')); ok {
		t.Fatalf("non-ASCII rune should not be printable")
	}
	if _, ok := printable(key(tcell.KeyEnter)); ok {
		t.Fatalf("enter should not be printable")
	}
}

func TestDefaultKeymapsParse(t *testing.T) {
	cfg := config.Default()
	for mode, m := range map[string]map[string]string{
		"edit":   cfg.Keymap.Edit,
		"search": cfg.Keymap.Search,
		"prompt": cfg.Keymap.Prompt,
	} {
		for key, name := range m {
			if _, ok := ParseCommand(name); !ok {
				t.Fatalf("%s keymap %q: unknown command %q", mode, key, name)
			}
		}
	}
}

func TestBuildKeymapChords(t *testing.T) {
	m := buildKeymap("edit", map[string]string{
		"ctrl+x  ctrl+s": "save",
		"ctrl+a":         "line_start",
		"ctrl+q":         "bogus",
	})
	if m.bindings["ctrl+x ctrl+s"] != CmdSave {
		t.Fatalf("chord binding = %v, want save", m.bindings["ctrl+x ctrl+s"])
	}
	if !m.prefixes["ctrl+x"] {
		t.Fatalf("ctrl+x should be a prefix")
	}
	if m.prefixes["ctrl+a"] {
		t.Fatalf("ctrl+a should not be a prefix")
	}
	if _, ok := m.bindings["ctrl+q"]; ok {
		t.Fatalf("unknown command should be skipped")
	}
}

func TestUserKeymapRebinds(t *testing.T) {
	cfg := config.Default()
	cfg.Editor.NoSyntax = true
	cfg.Keymap.Edit["ctrl+q"] = "quit"
	e := newTestEditorWith(t, cfg, "abc")
	if quit := press(e, key(tcell.KeyCtrlQ)); !quit {
		t.Fatalf("rebound ctrl+q should quit")
	}
}

func TestCommandString(t *testing.T) {
	if got := CmdKillLine.String(); got != "kill_line" {
		t.Fatalf("String = %q, want kill_line", got)
	}
	if got := CmdNone.String(); got != "none" {
		t.Fatalf("String = %q, want none", got)
	}
}
