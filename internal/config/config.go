package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Keymap maps key names such as "ctrl+s" or "ctrl+x ctrl+f" to command
// names, per input mode.
type Keymap struct {
	Edit   map[string]string `toml:"edit"`
	Search map[string]string `toml:"search"`
	Prompt map[string]string `toml:"prompt"`
}

type EditorOptions struct {
	TabWidth            int    `toml:"tab-width"`
	CaseSensitiveSearch bool   `toml:"case-sensitive-search"`
	Allocator           string `toml:"allocator"`
	KillRingCapacity    int    `toml:"kill-ring-capacity"`
	MaxBufferBytes      int    `toml:"max-buffer-bytes"`
	SystemClipboard     bool   `toml:"system-clipboard"`
	NoSyntax            bool   `toml:"no-syntax"`
	DebugLog            bool   `toml:"debug-log"`
}

type Theme struct {
	Theme                 string `toml:"theme"`
	Foreground            string `toml:"foreground"`
	Background            string `toml:"background"`
	StatuslineForeground  string `toml:"statusline-foreground"`
	StatuslineBackground  string `toml:"statusline-background"`
	MessageForeground     string `toml:"message-foreground"`
	WarningForeground     string `toml:"warning-foreground"`
	ErrorForeground       string `toml:"error-foreground"`
	SelectionForeground   string `toml:"selection-foreground"`
	SelectionBackground   string `toml:"selection-background"`
	SearchMatchForeground string `toml:"search-foreground"`
	SearchMatchBackground string `toml:"search-background"`
	SyntaxKeyword         string `toml:"syntax-keyword"`
	SyntaxString          string `toml:"syntax-string"`
	SyntaxComment         string `toml:"syntax-comment"`
	SyntaxNumber          string `toml:"syntax-number"`
	SyntaxDelimiter       string `toml:"syntax-delimiter"`
}

type Config struct {
	Editor EditorOptions `toml:"editor"`
	Theme  Theme         `toml:"theme"`
	Keymap Keymap        `toml:"keymap"`
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			TabWidth:         4,
			Allocator:        "heap",
			KillRingCapacity: 4096,
		},
		Theme: Theme{
			Foreground:            "#B3B1AD",
			Background:            "#0A0E14",
			StatuslineForeground:  "#0A0E14",
			StatuslineBackground:  "#B3B1AD",
			MessageForeground:     "#B3B1AD",
			WarningForeground:     "#FFD700",
			ErrorForeground:       "#FF3333",
			SelectionForeground:   "#B3B1AD",
			SelectionBackground:   "#27425A",
			SearchMatchForeground: "#000000",
			SearchMatchBackground: "#FFD700",
			SyntaxKeyword:         "#FFA759",
			SyntaxString:          "#BAE67E",
			SyntaxComment:         "#5C6773",
			SyntaxNumber:          "#D4BFFF",
			SyntaxDelimiter:       "#5CCFE6",
		},
		Keymap: Keymap{
			Edit: map[string]string{
				"up":            "move_up",
				"down":          "move_down",
				"left":          "move_left",
				"right":         "move_right",
				"ctrl+p":        "move_up",
				"ctrl+n":        "move_down",
				"ctrl+b":        "move_left",
				"ctrl+f":        "move_right",
				"home":          "line_start",
				"end":           "line_end",
				"ctrl+a":        "line_start",
				"ctrl+e":        "line_end",
				"pgup":          "page_up",
				"pgdn":          "page_down",
				"alt+v":         "page_up",
				"ctrl+v":        "page_down",
				"alt+<":         "file_start",
				"alt+>":         "file_end",
				"alt+f":         "word_forward",
				"alt+b":         "word_backward",
				"enter":         "newline",
				"tab":           "insert_tab",
				"backspace":     "backspace",
				"del":           "delete_char",
				"ctrl+d":        "delete_char",
				"ctrl+o":        "open_line",
				"ctrl+k":        "kill_line",
				"ctrl+space":    "set_mark",
				"ctrl+w":        "cut",
				"alt+w":         "copy",
				"ctrl+y":        "paste",
				"ctrl+g":        "clear_mark",
				"esc":           "clear_mark",
				"ctrl+l":        "refresh",
				"ctrl+s":        "search_forward",
				"ctrl+r":        "search_backward",
				"ctrl+x ctrl+s": "save",
				"ctrl+x ctrl+f": "open",
				"ctrl+x ctrl+c": "quit",
			},
			Search: map[string]string{
				"ctrl+s":    "search_forward",
				"ctrl+r":    "search_backward",
				"alt+c":     "toggle_case",
				"backspace": "backspace",
				"enter":     "accept",
				"esc":       "cancel",
				"ctrl+g":    "cancel",
			},
			Prompt: map[string]string{
				"backspace": "backspace",
				"enter":     "accept",
				"esc":       "cancel",
				"ctrl+g":    "cancel",
			},
		},
	}
}

func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	if _, err := toml.Decode(string(data), &userCfg); err != nil {
		return cfg, err
	}

	if userCfg.Editor.TabWidth > 0 {
		cfg.Editor.TabWidth = userCfg.Editor.TabWidth
	}
	if userCfg.Editor.CaseSensitiveSearch {
		cfg.Editor.CaseSensitiveSearch = true
	}
	if userCfg.Editor.Allocator != "" {
		cfg.Editor.Allocator = userCfg.Editor.Allocator
	}
	if userCfg.Editor.KillRingCapacity > 0 {
		cfg.Editor.KillRingCapacity = userCfg.Editor.KillRingCapacity
	}
	if userCfg.Editor.MaxBufferBytes > 0 {
		cfg.Editor.MaxBufferBytes = userCfg.Editor.MaxBufferBytes
	}
	if userCfg.Editor.SystemClipboard {
		cfg.Editor.SystemClipboard = true
	}
	if userCfg.Editor.NoSyntax {
		cfg.Editor.NoSyntax = true
	}
	if userCfg.Editor.DebugLog {
		cfg.Editor.DebugLog = true
	}

	if userCfg.Theme.Theme != "" {
		cfg.Theme.Theme = userCfg.Theme.Theme
	}
	if cfg.Theme.Theme != "" {
		theme, err := LoadTheme(cfg.Theme.Theme)
		if err != nil {
			return cfg, err
		}
		mergeTheme(&cfg.Theme, theme)
	}
	mergeTheme(&cfg.Theme, userCfg.Theme)

	mergeKeys(cfg.Keymap.Edit, userCfg.Keymap.Edit)
	mergeKeys(cfg.Keymap.Search, userCfg.Keymap.Search)
	mergeKeys(cfg.Keymap.Prompt, userCfg.Keymap.Prompt)

	return cfg, nil
}

// mergeKeys copies src into dst. Binding a key to "" removes it.
func mergeKeys(dst, src map[string]string) {
	for k, v := range src {
		if v == "" {
			delete(dst, k)
			continue
		}
		dst[k] = v
	}
}

func mergeTheme(dst *Theme, src Theme) {
	if src.Foreground != "" {
		dst.Foreground = src.Foreground
	}
	if src.Background != "" {
		dst.Background = src.Background
	}
	if src.StatuslineForeground != "" {
		dst.StatuslineForeground = src.StatuslineForeground
	}
	if src.StatuslineBackground != "" {
		dst.StatuslineBackground = src.StatuslineBackground
	}
	if src.MessageForeground != "" {
		dst.MessageForeground = src.MessageForeground
	}
	if src.WarningForeground != "" {
		dst.WarningForeground = src.WarningForeground
	}
	if src.ErrorForeground != "" {
		dst.ErrorForeground = src.ErrorForeground
	}
	if src.SelectionForeground != "" {
		dst.SelectionForeground = src.SelectionForeground
	}
	if src.SelectionBackground != "" {
		dst.SelectionBackground = src.SelectionBackground
	}
	if src.SearchMatchForeground != "" {
		dst.SearchMatchForeground = src.SearchMatchForeground
	}
	if src.SearchMatchBackground != "" {
		dst.SearchMatchBackground = src.SearchMatchBackground
	}
	if src.SyntaxKeyword != "" {
		dst.SyntaxKeyword = src.SyntaxKeyword
	}
	if src.SyntaxString != "" {
		dst.SyntaxString = src.SyntaxString
	}
	if src.SyntaxComment != "" {
		dst.SyntaxComment = src.SyntaxComment
	}
	if src.SyntaxNumber != "" {
		dst.SyntaxNumber = src.SyntaxNumber
	}
	if src.SyntaxDelimiter != "" {
		dst.SyntaxDelimiter = src.SyntaxDelimiter
	}
}

func ThemePath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "theme", name+".toml"), nil
}

// LoadTheme reads a theme file, either flat or wrapped in a [theme] table.
func LoadTheme(name string) (Theme, error) {
	path, err := ThemePath(name)
	if err != nil {
		return Theme{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}
	var wrap struct {
		Theme *Theme `toml:"theme"`
	}
	if _, err := toml.Decode(string(data), &wrap); err == nil && wrap.Theme != nil {
		return *wrap.Theme, nil
	}
	var t Theme
	if _, err := toml.Decode(string(data), &t); err != nil {
		return Theme{}, err
	}
	return t, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("RAWEDIT_CONFIG_HOME"); v != "" {
		return filepath.Clean(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "rawedit"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "rawedit"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
