package syntax

import (
	"regexp"
	"strings"
)

// JSON has no bundled grammar; it is classified per line with regular
// expressions.
var (
	jsonString  = regexp.MustCompile(`"(?:[^"\\]|\\.)*"`)
	jsonNumber  = regexp.MustCompile(`-?\d+(?:\.\d+)?(?:[eE][+-]?\d+)?`)
	jsonLiteral = regexp.MustCompile(`\b(true|false|null)\b`)
)

func classifyJSON(line []byte, out []Class) {
	fill := func(loc []int, cls Class) {
		for i := loc[0]; i < loc[1]; i++ {
			out[i] = cls
		}
	}
	outsideString := func(start int) bool {
		before := string(line[:start])
		return (strings.Count(before, `"`)-strings.Count(before, `\"`))%2 == 0
	}

	for _, loc := range jsonString.FindAllIndex(line, -1) {
		rest := strings.TrimLeft(string(line[loc[1]:]), " \t")
		if strings.HasPrefix(rest, ":") {
			fill(loc, Keyword)
		} else {
			fill(loc, String)
		}
	}
	for _, loc := range jsonNumber.FindAllIndex(line, -1) {
		if outsideString(loc[0]) {
			fill(loc, Number)
		}
	}
	for _, loc := range jsonLiteral.FindAllIndex(line, -1) {
		if outsideString(loc[0]) {
			fill(loc, Keyword)
		}
	}
}
