package parser

import (
	"fmt"

	"github.com/dshills/seed/pkg/values"
)

// ErrorKind closes the parser's error taxonomy (spec §4.1).
type ErrorKind int

const (
	ErrUnexpectedToken ErrorKind = iota
	ErrInvalidIndentation
	ErrUnterminatedString
	ErrInvalidNumber
	ErrInvalidColor
	ErrUnknownElementType
	ErrUnexpectedEOF
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnexpectedToken:
		return "UnexpectedToken"
	case ErrInvalidIndentation:
		return "InvalidIndentation"
	case ErrUnterminatedString:
		return "UnterminatedString"
	case ErrInvalidNumber:
		return "InvalidNumber"
	case ErrInvalidColor:
		return "InvalidColor"
	case ErrUnknownElementType:
		return "UnknownElementType"
	case ErrUnexpectedEOF:
		return "UnexpectedEof"
	default:
		return "Unknown"
	}
}

// SyntaxError is the parser's single error type: every case carries a
// kind, a human message, and a line/column (spec §4.1, §7).
type SyntaxError struct {
	Kind    ErrorKind
	Message string
	Line    int
	Column  int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at %d:%d: %s", e.Kind, e.Line, e.Column, e.Message)
}

func newSyntaxError(kind ErrorKind, span values.Span, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Line:    span.Line,
		Column:  span.Column,
	}
}

// RenderCaret renders src's offending line with a caret pointing at the
// error's column, for CLI diagnostics. The core compiler never calls
// this itself; only cmd/seedc does.
func RenderCaret(src string, err *SyntaxError) string {
	lines := splitLines(src)
	if err.Line < 1 || err.Line > len(lines) {
		return err.Error()
	}
	line := lines[err.Line-1]
	col := err.Column
	if col < 1 {
		col = 1
	}
	if col > len(line)+1 {
		col = len(line) + 1
	}
	caret := ""
	for i := 1; i < col; i++ {
		caret += " "
	}
	caret += "^"
	return fmt.Sprintf("%s\n%s\n%s", err.Error(), line, caret)
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}
