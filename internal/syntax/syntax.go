// Package syntax classifies the bytes of a line for colouring. Source files
// in a known language are parsed with tree-sitter and classified through
// highlight queries; everything else only gets its delimiters marked.
package syntax

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/bash"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/toml"
	"github.com/smacker/go-tree-sitter/yaml"

	"github.com/kobzarvs/rawedit/internal/config"
	"github.com/kobzarvs/rawedit/internal/logger"
)

type Class uint8

const (
	Default Class = iota
	Comment
	Keyword
	String
	Number
	Delimiter
)

func (c Class) String() string {
	switch c {
	case Comment:
		return "comment"
	case Keyword:
		return "keyword"
	case String:
		return "string"
	case Number:
		return "number"
	case Delimiter:
		return "delimiter"
	default:
		return "default"
	}
}

// classForCapture maps highlight query capture names to classes.
func classForCapture(name string) Class {
	switch name {
	case "comment":
		return Comment
	case "keyword", "type", "constant":
		return Keyword
	case "string":
		return String
	case "number":
		return Number
	case "punctuation":
		return Delimiter
	default:
		return Default
	}
}

func isDelimiter(ch byte) bool {
	switch ch {
	case '(', ')', '[', ']', '{', '}', '<', '>', '"', '\'', '`', ';', ',', ':', '.', '?', '=':
		return true
	}
	return false
}

type grammar struct {
	lang  *sitter.Language
	query string
}

var grammars = map[string]grammar{
	"c":    {c.GetLanguage(), cHighlightQuery},
	"rust": {rust.GetLanguage(), rustHighlightQuery},
	"go":   {golang.GetLanguage(), goHighlightQuery},
	"toml": {toml.GetLanguage(), tomlHighlightQuery},
	"yaml": {yaml.GetLanguage(), yamlHighlightQuery},
	"bash": {bash.GetLanguage(), bashHighlightQuery},
}

// Highlighter holds the parse of one buffer.
type Highlighter struct {
	langs   config.Languages
	lang    string
	parsers map[string]*sitter.Parser
	queries map[string]*sitter.Query
	tree    *sitter.Tree
	source  []byte
}

func New(langs config.Languages) *Highlighter {
	return &Highlighter{
		langs:   langs,
		parsers: make(map[string]*sitter.Parser),
		queries: make(map[string]*sitter.Query),
	}
}

// Detect returns the language name configured for path, or "" for plain
// text.
func (h *Highlighter) Detect(path string) string {
	if lang := h.langs.Match(path); lang != nil {
		return lang.Name
	}
	return ""
}

// SetFile selects the language for path and drops any previous parse.
func (h *Highlighter) SetFile(path string) {
	h.lang = h.Detect(path)
	h.dropTree()
	h.source = nil
	logger.Debug("syntax language", "path", path, "language", h.Language())
}

func (h *Highlighter) Language() string {
	if h.lang == "" {
		return "text"
	}
	return h.lang
}

// Parse reparses the whole buffer. src is copied.
func (h *Highlighter) Parse(src []byte) {
	h.source = append(h.source[:0], src...)
	g, ok := grammars[h.lang]
	if !ok {
		return
	}
	parser := h.parsers[h.lang]
	if parser == nil {
		parser = sitter.NewParser()
		parser.SetLanguage(g.lang)
		h.parsers[h.lang] = parser
	}
	tree, err := parser.ParseCtx(context.Background(), nil, h.source)
	if err != nil {
		logger.Warn("syntax parse failed", "language", h.lang, "error", err)
		h.dropTree()
		return
	}
	h.dropTree()
	h.tree = tree
}

func (h *Highlighter) query() *sitter.Query {
	if q, ok := h.queries[h.lang]; ok {
		return q
	}
	g, ok := grammars[h.lang]
	if !ok {
		return nil
	}
	q, err := sitter.NewQuery([]byte(g.query), g.lang)
	if err != nil {
		logger.Warn("highlight query rejected", "language", h.lang, "error", err)
		q = nil
	}
	h.queries[h.lang] = q
	return q
}

// Line classifies the bytes of line, which is row of the last parsed
// source.
func (h *Highlighter) Line(row int, line []byte) []Class {
	out := make([]Class, len(line))
	switch {
	case h.lang == "json":
		classifyJSON(line, out)
	case h.tree != nil:
		if q := h.query(); q != nil {
			for _, sp := range queryHighlights(q, h.tree, h.source, row, row)[row] {
				cls := classForCapture(sp.Kind)
				if cls == Default {
					continue
				}
				for i := max(sp.StartCol, 0); i < sp.EndCol && i < len(out); i++ {
					out[i] = cls
				}
			}
		}
	}
	for i, ch := range line {
		if out[i] == Default && isDelimiter(ch) {
			out[i] = Delimiter
		}
	}
	return out
}

// Clear forgets the last parse. Line then marks delimiters only.
func (h *Highlighter) Clear() {
	h.dropTree()
	h.source = nil
}

// Parsed reports whether a syntax tree is held.
func (h *Highlighter) Parsed() bool { return h.tree != nil }

func (h *Highlighter) dropTree() {
	if h.tree != nil {
		h.tree.Close()
		h.tree = nil
	}
}

// Close releases parsers, queries and the current tree.
func (h *Highlighter) Close() {
	h.dropTree()
	for name, p := range h.parsers {
		p.Close()
		delete(h.parsers, name)
	}
	for name, q := range h.queries {
		if q != nil {
			q.Close()
		}
		delete(h.queries, name)
	}
}
