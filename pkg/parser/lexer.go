package parser

import (
	"strconv"
	"strings"

	"github.com/dshills/seed/pkg/values"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokLength
	tokColor
	tokString
	tokBool
	tokTokenRef
	tokColon
	tokEquals
	tokLT
	tokLE
	tokGT
	tokGE
	tokAt
	tokLParen
	tokRParen
	tokComma
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokDot
)

// token is a single lexeme within one source line, along with its
// 1-based column so the parser can build spans.
type token struct {
	kind    tokenKind
	text    string // raw text for Ident; decoded value for String
	num     float64
	unit    values.Unit
	color   values.Color
	boolean bool
	path    values.TokenPath
	col     int
}

var lengthUnits = []values.Unit{
	values.UnitRem, // check longer suffixes first
	values.UnitPercent,
	values.UnitPixel,
	values.UnitPoint,
	values.UnitMillimeter,
	values.UnitCentimeter,
	values.UnitInch,
	values.UnitEm,
}

// lineLexer tokenizes the content of a single logical line (already
// stripped of its leading indent and any trailing comment). Lookahead
// is single-line per spec §4.1's algorithmic note.
type lineLexer struct {
	src     string
	pos     int // byte offset into src
	col     int // 1-based column of src[0] in the original source line
	lineNo  int
}

func newLineLexer(src string, startCol, lineNo int) *lineLexer {
	return &lineLexer{src: src, col: startCol, lineNo: lineNo}
}

func (l *lineLexer) columnAt(offset int) int {
	return l.col + offset
}

func isIdentStart(r byte) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentCont(r byte) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9') || r == '-'
}

func isDigit(r byte) bool {
	return r >= '0' && r <= '9'
}

func (l *lineLexer) skipSpace() {
	for l.pos < len(l.src) && (l.src[l.pos] == ' ' || l.src[l.pos] == '\t') {
		l.pos++
	}
}

// tokenize consumes the entire line and returns its token stream.
func (l *lineLexer) tokenize() ([]token, error) {
	var out []token
	for {
		l.skipSpace()
		if l.pos >= len(l.src) {
			break
		}
		tk, err := l.next()
		if err != nil {
			return nil, err
		}
		out = append(out, tk)
	}
	return out, nil
}

func (l *lineLexer) next() (token, error) {
	start := l.pos
	c := l.src[l.pos]

	switch {
	case c == ':':
		l.pos++
		return token{kind: tokColon, col: l.columnAt(start)}, nil
	case c == '=':
		l.pos++
		return token{kind: tokEquals, col: l.columnAt(start)}, nil
	case c == '@':
		l.pos++
		return token{kind: tokAt, col: l.columnAt(start)}, nil
	case c == '(':
		l.pos++
		return token{kind: tokLParen, col: l.columnAt(start)}, nil
	case c == ')':
		l.pos++
		return token{kind: tokRParen, col: l.columnAt(start)}, nil
	case c == ',':
		l.pos++
		return token{kind: tokComma, col: l.columnAt(start)}, nil
	case c == '<':
		l.pos++
		if l.pos < len(l.src) && l.src[l.pos] == '=' {
			l.pos++
			return token{kind: tokLE, col: l.columnAt(start)}, nil
		}
		return token{kind: tokLT, col: l.columnAt(start)}, nil
	case c == '>':
		l.pos++
		if l.pos < len(l.src) && l.src[l.pos] == '=' {
			l.pos++
			return token{kind: tokGE, col: l.columnAt(start)}, nil
		}
		return token{kind: tokGT, col: l.columnAt(start)}, nil
	case c == '#':
		return l.lexColor(start)
	case c == '"':
		return l.lexString(start)
	case c == '$':
		return l.lexTokenRef(start)
	case c == '*':
		l.pos++
		return token{kind: tokStar, col: l.columnAt(start)}, nil
	case c == '/':
		l.pos++
		return token{kind: tokSlash, col: l.columnAt(start)}, nil
	case c == '.':
		l.pos++
		return token{kind: tokDot, col: l.columnAt(start)}, nil
	case c == '+', c == '-', isDigit(c):
		// '+'/'-' only begins a Number/Length lexeme per spec §4.1
		// ("optional sign, digits, optional fraction"); otherwise it is
		// the binary arithmetic operator.
		if (c == '+' || c == '-') && !l.startsNumber(l.pos+1) {
			l.pos++
			kind := tokPlus
			if c == '-' {
				kind = tokMinus
			}
			return token{kind: kind, col: l.columnAt(start)}, nil
		}
		return l.lexNumberOrLength(start)
	case isIdentStart(c):
		return l.lexIdentOrBool(start)
	default:
		return token{}, newSyntaxError(ErrUnexpectedToken, values.Span{Line: l.lineNo, Column: l.columnAt(start)},
			"unexpected character %q", c)
	}
}

func (l *lineLexer) startsNumber(pos int) bool {
	return pos < len(l.src) && isDigit(l.src[pos])
}

func (l *lineLexer) lexNumberOrLength(start int) (token, error) {
	p := l.pos
	if l.src[p] == '+' || l.src[p] == '-' {
		p++
	}
	digitsStart := p
	for p < len(l.src) && isDigit(l.src[p]) {
		p++
	}
	if p == digitsStart {
		return token{}, newSyntaxError(ErrInvalidNumber, values.Span{Line: l.lineNo, Column: l.columnAt(start)},
			"expected digits")
	}
	if p < len(l.src) && l.src[p] == '.' {
		p++
		fracStart := p
		for p < len(l.src) && isDigit(l.src[p]) {
			p++
		}
		if p == fracStart {
			return token{}, newSyntaxError(ErrInvalidNumber, values.Span{Line: l.lineNo, Column: l.columnAt(start)},
				"expected digits after decimal point")
		}
	}
	numText := l.src[l.pos:p]
	num, err := strconv.ParseFloat(numText, 64)
	if err != nil {
		return token{}, newSyntaxError(ErrInvalidNumber, values.Span{Line: l.lineNo, Column: l.columnAt(start)},
			"invalid number %q", numText)
	}

	// A unit suffix immediately following (no whitespace) makes this a
	// Length lexeme (spec §4.1).
	for _, u := range lengthUnits {
		us := string(u)
		if strings.HasPrefix(l.src[p:], us) {
			after := p + len(us)
			if after >= len(l.src) || !isIdentCont(l.src[after]) {
				l.pos = after
				return token{kind: tokLength, num: num, unit: u, col: l.columnAt(start)}, nil
			}
		}
	}

	l.pos = p
	return token{kind: tokNumber, num: num, col: l.columnAt(start)}, nil
}

func (l *lineLexer) lexColor(start int) (token, error) {
	p := l.pos + 1
	hexStart := p
	for p < len(l.src) && isHexDigit(l.src[p]) {
		p++
	}
	n := p - hexStart
	if n != 6 && n != 8 {
		return token{}, newSyntaxError(ErrInvalidColor, values.Span{Line: l.lineNo, Column: l.columnAt(start)},
			"color must have 6 or 8 hex digits, got %d", n)
	}
	text := l.src[l.pos:p]
	color, err := values.ParseColor(text)
	if err != nil {
		return token{}, newSyntaxError(ErrInvalidColor, values.Span{Line: l.lineNo, Column: l.columnAt(start)}, "%s", err)
	}
	l.pos = p
	return token{kind: tokColor, color: color, col: l.columnAt(start)}, nil
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func (l *lineLexer) lexString(start int) (token, error) {
	p := l.pos + 1
	var sb strings.Builder
	for {
		if p >= len(l.src) {
			return token{}, newSyntaxError(ErrUnterminatedString, values.Span{Line: l.lineNo, Column: l.columnAt(start)},
				"unterminated string literal")
		}
		c := l.src[p]
		if c == '"' {
			p++
			break
		}
		if c == '\\' {
			p++
			if p >= len(l.src) {
				return token{}, newSyntaxError(ErrUnterminatedString, values.Span{Line: l.lineNo, Column: l.columnAt(start)},
					"unterminated escape sequence")
			}
			switch l.src[p] {
			case '\\':
				sb.WriteByte('\\')
			case '"':
				sb.WriteByte('"')
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				return token{}, newSyntaxError(ErrUnterminatedString, values.Span{Line: l.lineNo, Column: l.columnAt(start)},
					"invalid escape sequence \\%c", l.src[p])
			}
			p++
			continue
		}
		sb.WriteByte(c)
		p++
	}
	l.pos = p
	return token{kind: tokString, text: sb.String(), col: l.columnAt(start)}, nil
}

func (l *lineLexer) lexTokenRef(start int) (token, error) {
	p := l.pos + 1
	identStart := p
	for p < len(l.src) && (isIdentCont(l.src[p]) || l.src[p] == '.') {
		p++
	}
	if p == identStart {
		return token{}, newSyntaxError(ErrUnexpectedToken, values.Span{Line: l.lineNo, Column: l.columnAt(start)},
			"expected identifier path after '$'")
	}
	dotted := l.src[identStart:p]
	path, err := values.ParseTokenPath(dotted)
	if err != nil {
		return token{}, newSyntaxError(ErrUnexpectedToken, values.Span{Line: l.lineNo, Column: l.columnAt(start)}, "%s", err)
	}
	l.pos = p
	return token{kind: tokTokenRef, path: path, col: l.columnAt(start)}, nil
}

func (l *lineLexer) lexIdentOrBool(start int) (token, error) {
	p := l.pos
	for p < len(l.src) && isIdentCont(l.src[p]) {
		p++
	}
	text := l.src[l.pos:p]
	l.pos = p
	if text == "true" {
		return token{kind: tokBool, boolean: true, col: l.columnAt(start)}, nil
	}
	if text == "false" {
		return token{kind: tokBool, boolean: false, col: l.columnAt(start)}, nil
	}
	return token{kind: tokIdent, text: text, col: l.columnAt(start)}, nil
}
