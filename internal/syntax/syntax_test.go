package syntax

import (
	"strings"
	"testing"

	"github.com/kobzarvs/rawedit/internal/config"
)

func newTestHighlighter(t *testing.T, path, src string) (*Highlighter, []string) {
	t.Helper()
	h := New(config.DefaultLanguages())
	t.Cleanup(h.Close)
	h.SetFile(path)
	h.Parse([]byte(src))
	return h, strings.Split(src, "\n")
}

func assertClasses(t *testing.T, got []Class, from, to int, want Class) {
	t.Helper()
	for i := from; i < to; i++ {
		if got[i] != want {
			t.Fatalf("class[%d] = %v, want %v (all: %v)", i, got[i], want, got)
		}
	}
}

func TestGoHighlighting(t *testing.T) {
	h, lines := newTestHighlighter(t, "main.go", "package main\n\n// note\nvar s = \"hi\"\nvar n = 42\n")
	if h.Language() != "go" {
		t.Fatalf("Language = %q, want go", h.Language())
	}

	got := h.Line(0, []byte(lines[0]))
	assertClasses(t, got, 0, 7, Keyword)
	assertClasses(t, got, 8, 12, Default)

	got = h.Line(2, []byte(lines[2]))
	assertClasses(t, got, 0, len(lines[2]), Comment)

	got = h.Line(3, []byte(lines[3]))
	assertClasses(t, got, 0, 3, Keyword)
	assertClasses(t, got, 6, 7, Delimiter)
	assertClasses(t, got, 8, 12, String)

	got = h.Line(4, []byte(lines[4]))
	assertClasses(t, got, 8, 10, Number)
}

func TestConfigFilesUseTomlGrammar(t *testing.T) {
	h, lines := newTestHighlighter(t, "app.ini", "# settings\n[server]\nport = 8080\nname = \"x\"\n")
	if h.Language() != "toml" {
		t.Fatalf("Language = %q, want toml", h.Language())
	}

	got := h.Line(0, []byte(lines[0]))
	assertClasses(t, got, 0, len(lines[0]), Comment)

	got = h.Line(1, []byte(lines[1]))
	assertClasses(t, got, 0, 1, Delimiter)
	assertClasses(t, got, 1, 7, Keyword)

	got = h.Line(2, []byte(lines[2]))
	assertClasses(t, got, 5, 6, Delimiter)
	assertClasses(t, got, 7, 11, Number)

	got = h.Line(3, []byte(lines[3]))
	assertClasses(t, got, 7, 10, String)
}

func TestCHighlighting(t *testing.T) {
	h, lines := newTestHighlighter(t, "main.c", "int main(void) { return 0; } // hi\n")
	got := h.Line(0, []byte(lines[0]))
	assertClasses(t, got, 0, 3, Keyword)
	assertClasses(t, got, 8, 9, Delimiter)
	assertClasses(t, got, 17, 23, Keyword)
	assertClasses(t, got, 24, 25, Number)
	assertClasses(t, got, 29, 34, Comment)
}

func TestRustHighlighting(t *testing.T) {
	h, lines := newTestHighlighter(t, "lib.rs", "fn main() { let x = 1; }\n")
	got := h.Line(0, []byte(lines[0]))
	assertClasses(t, got, 0, 2, Keyword)
	assertClasses(t, got, 12, 15, Keyword)
	assertClasses(t, got, 20, 21, Number)
	assertClasses(t, got, 21, 22, Delimiter)
}

func TestJSONHighlighting(t *testing.T) {
	line := `{"a": 1, "b": "s", "c": true}`
	h, _ := newTestHighlighter(t, "data.json", line)
	got := h.Line(0, []byte(line))
	assertClasses(t, got, 0, 1, Delimiter)
	assertClasses(t, got, 1, 4, Keyword)
	assertClasses(t, got, 6, 7, Number)
	assertClasses(t, got, 14, 17, String)
	assertClasses(t, got, 24, 28, Keyword)
}

func TestPlainTextMarksDelimiters(t *testing.T) {
	h, _ := newTestHighlighter(t, "notes.txt", "f(x); 12")
	if h.Language() != "text" {
		t.Fatalf("Language = %q, want text", h.Language())
	}
	got := h.Line(0, []byte("f(x); 12"))
	want := []Class{Default, Delimiter, Default, Delimiter, Delimiter, Default, Default, Default}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("class[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLineBeyondSource(t *testing.T) {
	h, _ := newTestHighlighter(t, "main.go", "package main\n")
	got := h.Line(10, []byte("var"))
	assertClasses(t, got, 0, 3, Default)
}

func TestClassString(t *testing.T) {
	tests := map[Class]string{
		Default:   "default",
		Comment:   "comment",
		Keyword:   "keyword",
		String:    "string",
		Number:    "number",
		Delimiter: "delimiter",
	}
	for c, want := range tests {
		if got := c.String(); got != want {
			t.Fatalf("Class(%d).String() = %q, want %q", c, got, want)
		}
	}
}
