package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestConfigDirEnv(t *testing.T) {
	t.Setenv("RAWEDIT_CONFIG_HOME", "/tmp/rawedit-config")
	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if dir != "/tmp/rawedit-config" {
		t.Fatalf("ConfigDir = %q, want %q", dir, "/tmp/rawedit-config")
	}

	t.Setenv("RAWEDIT_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err = ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if dir != "/tmp/xdg/rawedit" {
		t.Fatalf("ConfigDir = %q, want %q", dir, "/tmp/xdg/rawedit")
	}
}

func TestLoadMissingUsesDefaults(t *testing.T) {
	t.Setenv("RAWEDIT_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Editor.TabWidth != 4 {
		t.Fatalf("TabWidth = %d, want 4", cfg.Editor.TabWidth)
	}
	if cfg.Editor.Allocator != "heap" || cfg.Editor.KillRingCapacity != 4096 {
		t.Fatalf("Allocator/KillRingCapacity = %q/%d", cfg.Editor.Allocator, cfg.Editor.KillRingCapacity)
	}
	if cfg.Editor.CaseSensitiveSearch {
		t.Fatalf("search should default to case-insensitive")
	}
	if cfg.Keymap.Edit["ctrl+x ctrl+s"] != "save" {
		t.Fatalf("keymap ctrl+x ctrl+s = %q, want save", cfg.Keymap.Edit["ctrl+x ctrl+s"])
	}
}

func TestLoadWithThemeAndOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RAWEDIT_CONFIG_HOME", dir)

	writeFile(t, filepath.Join(dir, "theme", "test.toml"), `
foreground = "#111111"
background = "#222222"
statusline-foreground = "#333333"
`)

	writeFile(t, filepath.Join(dir, "config.toml"), `
[editor]
tab-width = 8
case-sensitive-search = true
allocator = "mmap"
kill-ring-capacity = 8192
max-buffer-bytes = 1048576
system-clipboard = true
no-syntax = true

[theme]
theme = "test"
background = "#444444"
search-background = "#123456"

[keymap.edit]
"ctrl+q" = "quit"
"ctrl+o" = ""

[keymap.search]
"ctrl+c" = "toggle_case"
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Editor.TabWidth != 8 {
		t.Fatalf("TabWidth = %d, want 8", cfg.Editor.TabWidth)
	}
	if !cfg.Editor.CaseSensitiveSearch || !cfg.Editor.SystemClipboard || !cfg.Editor.NoSyntax {
		t.Fatalf("boolean options not applied: %+v", cfg.Editor)
	}
	if cfg.Editor.Allocator != "mmap" {
		t.Fatalf("Allocator = %q, want mmap", cfg.Editor.Allocator)
	}
	if cfg.Editor.KillRingCapacity != 8192 {
		t.Fatalf("KillRingCapacity = %d, want 8192", cfg.Editor.KillRingCapacity)
	}
	if cfg.Editor.MaxBufferBytes != 1<<20 {
		t.Fatalf("MaxBufferBytes = %d, want %d", cfg.Editor.MaxBufferBytes, 1<<20)
	}
	if cfg.Theme.Foreground != "#111111" {
		t.Fatalf("Foreground = %q, want %q", cfg.Theme.Foreground, "#111111")
	}
	if cfg.Theme.Background != "#444444" {
		t.Fatalf("Background = %q, want user override %q", cfg.Theme.Background, "#444444")
	}
	if cfg.Theme.StatuslineForeground != "#333333" {
		t.Fatalf("StatuslineForeground = %q, want %q", cfg.Theme.StatuslineForeground, "#333333")
	}
	if cfg.Theme.SearchMatchBackground != "#123456" {
		t.Fatalf("SearchMatchBackground = %q, want %q", cfg.Theme.SearchMatchBackground, "#123456")
	}
	if cfg.Keymap.Edit["ctrl+q"] != "quit" {
		t.Fatalf("keymap ctrl+q = %q, want quit", cfg.Keymap.Edit["ctrl+q"])
	}
	if _, ok := cfg.Keymap.Edit["ctrl+o"]; ok {
		t.Fatalf("ctrl+o should be unbound")
	}
	if cfg.Keymap.Edit["ctrl+a"] != "line_start" {
		t.Fatalf("keymap ctrl+a = %q, want line_start", cfg.Keymap.Edit["ctrl+a"])
	}
	if cfg.Keymap.Search["ctrl+c"] != "toggle_case" {
		t.Fatalf("search keymap ctrl+c = %q", cfg.Keymap.Search["ctrl+c"])
	}
}

func TestLoadInvalidToml(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RAWEDIT_CONFIG_HOME", dir)
	writeFile(t, filepath.Join(dir, "config.toml"), "[editor\ntab-width = ")

	cfg, err := Load()
	if err == nil {
		t.Fatalf("Load should fail on malformed toml")
	}
	if cfg.Editor.TabWidth != 4 {
		t.Fatalf("defaults not returned alongside error")
	}
}

func TestLoadThemeWrapped(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RAWEDIT_CONFIG_HOME", dir)

	writeFile(t, filepath.Join(dir, "theme", "wrapped.toml"), `
[theme]
foreground = "#aaaaaa"
background = "#bbbbbb"
`)

	theme, err := LoadTheme("wrapped")
	if err != nil {
		t.Fatalf("LoadTheme error: %v", err)
	}
	if theme.Foreground != "#aaaaaa" {
		t.Fatalf("Foreground = %q, want %q", theme.Foreground, "#aaaaaa")
	}
	if theme.Background != "#bbbbbb" {
		t.Fatalf("Background = %q, want %q", theme.Background, "#bbbbbb")
	}
}

func TestLoadThemeMissing(t *testing.T) {
	t.Setenv("RAWEDIT_CONFIG_HOME", t.TempDir())
	if _, err := LoadTheme("nope"); err == nil {
		t.Fatalf("LoadTheme should fail for a missing theme")
	}
}
