// Package values defines the leaf value types shared by every later stage
// of the compiler: identifiers, lengths, colors, token paths, and the
// source-position span carried on every AST node.
package values

import "fmt"

// Span is a byte range plus 1-based line/column into the source text.
// Every AST node carries one so diagnostics can point back at the exact
// text that produced it.
type Span struct {
	StartByte int
	EndByte   int
	Line      int
	Column    int
}

// String renders a span as "line:column".
func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// Zero reports whether the span was never set.
func (s Span) Zero() bool {
	return s == Span{}
}
