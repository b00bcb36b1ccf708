package parser

import (
	"strings"

	"github.com/dshills/seed/pkg/values"
)

// physicalLine is one non-blank, non-comment source line: its indent
// depth (in columns), its content (indent stripped, trailing comment
// stripped), its 1-based line number, and the 1-based column its
// content starts at.
type physicalLine struct {
	indent  int
	content string
	lineNo  int
	col     int
}

// preprocessLines implements phase (a) of spec §4.1's two-phase
// algorithm: split the source into lines, record each line's indent
// depth, and drop blank lines and comment-only lines. Trailing "//"
// comments are stripped from otherwise meaningful lines too.
func preprocessLines(src string) ([]physicalLine, error) {
	var out []physicalLine
	rawLines := strings.Split(src, "\n")
	for i, raw := range rawLines {
		lineNo := i + 1
		line := strings.TrimRight(raw, "\r")

		indent, rest, err := splitIndent(line, lineNo)
		if err != nil {
			return nil, err
		}

		rest = stripComment(rest)
		rest = strings.TrimRight(rest, " \t")
		if rest == "" {
			continue
		}

		out = append(out, physicalLine{
			indent:  indent,
			content: rest,
			lineNo:  lineNo,
			col:     indent + 1,
		})
	}
	return out, nil
}

// splitIndent counts leading spaces, rejecting tabs (spec §4.1: "Mixing
// tabs with spaces is disallowed" — in practice this implementation
// disallows tabs entirely, since a tab-only indent has no well-defined
// column width to reconcile with a space-indented sibling).
func splitIndent(line string, lineNo int) (int, string, error) {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	if n < len(line) && line[n] == '\t' {
		return 0, "", newSyntaxError(ErrInvalidIndentation, values.Span{Line: lineNo, Column: n + 1},
			"tabs are not allowed in indentation")
	}
	return n, line[n:], nil
}

func stripComment(s string) string {
	inString := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			if i == 0 || s[i-1] != '\\' {
				inString = !inString
			}
		case '/':
			if !inString && i+1 < len(s) && s[i+1] == '/' {
				return s[:i]
			}
		}
	}
	return s
}
