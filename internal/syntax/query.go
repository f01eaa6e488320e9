package syntax

import (
	"math"

	sitter "github.com/smacker/go-tree-sitter"
)

type span struct {
	StartCol int
	EndCol   int
	Kind     string
}

// queryHighlights runs query over rows [startLine, endLine] and returns the
// captured byte spans per row.
func queryHighlights(query *sitter.Query, tree *sitter.Tree, source []byte, startLine, endLine int) map[int][]span {
	if query == nil || tree == nil {
		return nil
	}
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.SetPointRange(
		sitter.Point{Row: uint32(startLine), Column: 0},
		sitter.Point{Row: uint32(endLine + 1), Column: 0},
	)
	cursor.Exec(query, tree.RootNode())

	out := make(map[int][]span)
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		match = cursor.FilterPredicates(match, source)
		if match == nil {
			continue
		}
		for _, capture := range match.Captures {
			kind := query.CaptureNameForId(capture.Index)
			start := capture.Node.StartPoint()
			end := capture.Node.EndPoint()
			startRow, endRow := int(start.Row), int(end.Row)
			for row := max(startRow, startLine); row <= min(endRow, endLine); row++ {
				sp := span{StartCol: 0, EndCol: math.MaxInt32, Kind: kind}
				if row == startRow {
					sp.StartCol = int(start.Column)
				}
				if row == endRow {
					sp.EndCol = int(end.Column)
				}
				out[row] = append(out[row], sp)
			}
		}
	}
	return out
}

const cHighlightQuery = `
((comment) @comment)
((string_literal) @string)
((char_literal) @string)
((system_lib_string) @string)
((number_literal) @number)
((primitive_type) @type)
((true) @constant)
((false) @constant)
[
  "break" "case" "const" "continue" "default" "do" "else" "enum" "extern"
  "for" "goto" "if" "return" "sizeof" "static" "struct" "switch" "typedef"
  "union" "volatile" "while" "#include" "#define"
] @keyword
["(" ")" "[" "]" "{" "}" ";" ","] @punctuation
`

const rustHighlightQuery = `
((line_comment) @comment)
((block_comment) @comment)
((string_literal) @string)
((raw_string_literal) @string)
((char_literal) @string)
((integer_literal) @number)
((float_literal) @number)
((boolean_literal) @constant)
((primitive_type) @type)
((mutable_specifier) @keyword)
((self) @keyword)
[
  "as" "break" "const" "continue" "else" "enum" "fn" "for" "if" "impl"
  "in" "let" "loop" "match" "mod" "pub" "return" "static" "struct" "trait"
  "type" "unsafe" "use" "where" "while"
] @keyword
["(" ")" "[" "]" "{" "}" ";" ","] @punctuation
`

const goHighlightQuery = `
((comment) @comment)
((interpreted_string_literal) @string)
((raw_string_literal) @string)
((rune_literal) @string)
((int_literal) @number)
((float_literal) @number)
((imaginary_literal) @number)
[
  "break" "case" "chan" "const" "continue" "default" "defer" "else"
  "fallthrough" "for" "func" "go" "goto" "if" "import" "interface"
  "map" "package" "range" "return" "select" "struct" "switch"
  "type" "var"
] @keyword
((nil) @constant)
((true) @constant)
((false) @constant)
((iota) @constant)
((identifier) @type (#match? @type "^(bool|byte|rune|string|int|int8|int16|int32|int64|uint|uint8|uint16|uint32|uint64|uintptr|float32|float64|error|any)$"))
((type_identifier) @type)
["." "," ";" ":" "(" ")" "[" "]" "{" "}"] @punctuation
`

const yamlHighlightQuery = `
((comment) @comment)
((double_quote_scalar) @string)
((single_quote_scalar) @string)
((integer_scalar) @number)
((float_scalar) @number)
((null_scalar) @constant)
((boolean_scalar) @constant)
((block_mapping_pair key: (_) @keyword))
((anchor_name) @keyword)
((alias_name) @keyword)
["," ":" "-" "[" "]" "{" "}"] @punctuation
`

const tomlHighlightQuery = `
((comment) @comment)
((string) @string)
((integer) @number)
((float) @number)
((boolean) @constant)
((local_date) @string)
((local_time) @string)
((local_date_time) @string)
((offset_date_time) @string)
((table (bare_key) @type))
((table (quoted_key) @type))
((table (dotted_key) @type))
((table_array_element (bare_key) @type))
((table_array_element (quoted_key) @type))
((table_array_element (dotted_key) @type))
["=" "." "," "[" "]" "[[" "]]" "{" "}"] @punctuation
`

const bashHighlightQuery = `
((comment) @comment)
((string) @string)
((raw_string) @string)
((heredoc_body) @string)
((number) @number)
[
  "if" "then" "else" "elif" "fi" "case" "esac" "for" "while" "until"
  "do" "done" "in" "function" "select"
  "local" "export" "readonly" "declare" "typeset" "unset"
] @keyword
`
