package parser

import (
	"strings"

	"github.com/dshills/seed/pkg/values"
)

// splitIntoItems groups a run of lines deeper than parentIndent into
// items (a header line plus its own nested lines), enforcing that every
// item at this level shares exactly the same indent -- the indent
// established by the first item (spec §4.1's indentation contract).
// It returns the items found and how many lines of all were consumed.
func splitIntoItems(all []physicalLine, parentIndent int) ([][]physicalLine, int, error) {
	if len(all) == 0 || all[0].indent <= parentIndent {
		return nil, 0, nil
	}
	blockIndent := all[0].indent

	var items [][]physicalLine
	i := 0
	for i < len(all) && all[i].indent > parentIndent {
		if all[i].indent != blockIndent {
			return nil, 0, newSyntaxError(ErrInvalidIndentation, spanOf(all[i]),
				"expected indentation of %d columns, found %d", blockIndent, all[i].indent)
		}
		j := i + 1
		for j < len(all) && all[j].indent > blockIndent {
			j++
		}
		items = append(items, all[i:j])
		i = j
	}
	return items, i, nil
}

func spanOf(l physicalLine) values.Span {
	return values.Span{Line: l.lineNo, Column: l.col}
}

// splitHeaderColon finds the first colon outside of a string literal
// and splits the line's content there. ok is false if no colon exists.
func splitHeaderColon(content string) (left, right string, colonIdx int, ok bool) {
	inString := false
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '"':
			if i == 0 || content[i-1] != '\\' {
				inString = !inString
			}
		case ':':
			if !inString {
				return content[:i], content[i+1:], i, true
			}
		}
	}
	return content, "", -1, false
}

func trimmedEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}
