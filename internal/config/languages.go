package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Language ties a syntax grammar name to the file names it applies to.
// A file type matches an extension ("go", ".go") or a whole base name.
type Language struct {
	Name      string   `toml:"name"`
	FileTypes []string `toml:"file-types"`
}

type Languages struct {
	Languages []Language `toml:"language"`
}

// DefaultLanguages is the built-in table. INI-style configuration files are
// read with the TOML grammar.
func DefaultLanguages() Languages {
	return Languages{
		Languages: []Language{
			{Name: "c", FileTypes: []string{"c", "h"}},
			{Name: "rust", FileTypes: []string{"rs"}},
			{Name: "toml", FileTypes: []string{"toml", "ini", "conf", "cfg"}},
			{Name: "go", FileTypes: []string{"go"}},
			{Name: "bash", FileTypes: []string{"sh", "bash", ".bashrc", ".profile"}},
			{Name: "yaml", FileTypes: []string{"yaml", "yml"}},
			{Name: "json", FileTypes: []string{"json"}},
		},
	}
}

func (l Languages) Match(path string) *Language {
	base := filepath.Base(path)
	baseLower := strings.ToLower(base)
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(base), "."))
	for i := range l.Languages {
		lang := &l.Languages[i]
		for _, ft := range lang.FileTypes {
			ftLower := strings.ToLower(ft)
			if ftLower == baseLower || (ext != "" && ftLower == ext) {
				return lang
			}
			if strings.HasPrefix(ftLower, ".") && ext != "" && strings.TrimPrefix(ftLower, ".") == ext {
				return lang
			}
		}
	}
	return nil
}

// LoadLanguages returns the built-in table with entries from
// languages.toml placed in front, so user file types win.
func LoadLanguages() (Languages, error) {
	langs := DefaultLanguages()
	path, err := LanguagesPath()
	if err != nil {
		return langs, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return langs, nil
		}
		return langs, err
	}

	var user Languages
	if _, err := toml.Decode(string(data), &user); err != nil {
		return langs, err
	}
	langs.Languages = append(user.Languages, langs.Languages...)
	return langs, nil
}

func LanguagesPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "languages.toml"), nil
}
