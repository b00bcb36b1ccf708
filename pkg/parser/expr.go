package parser

import (
	"github.com/dshills/seed/pkg/ast"
	"github.com/dshills/seed/pkg/values"
)

// exprParser walks a flat token slice (already lexed from one source
// line) with single-token lookahead, matching spec §4.1's recursive-
// descent contract.
type exprParser struct {
	toks   []token
	pos    int
	lineNo int
}

func (p *exprParser) atEnd() bool { return p.pos >= len(p.toks) }

func (p *exprParser) peek() (token, bool) {
	if p.atEnd() {
		return token{}, false
	}
	return p.toks[p.pos], true
}

func (p *exprParser) span() values.Span {
	if p.atEnd() {
		if len(p.toks) == 0 {
			return values.Span{Line: p.lineNo}
		}
		return values.Span{Line: p.lineNo, Column: p.toks[len(p.toks)-1].col}
	}
	return values.Span{Line: p.lineNo, Column: p.toks[p.pos].col}
}

func (p *exprParser) errHere(format string, args ...any) error {
	return newSyntaxError(ErrUnexpectedToken, p.span(), format, args...)
}

// parseExpression parses the '+'/'-' precedence level.
func (p *exprParser) parseExpression() (*ast.Expression, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		tk, ok := p.peek()
		if !ok || (tk.kind != tokPlus && tk.kind != tokMinus) {
			return left, nil
		}
		op := ast.OpAdd
		if tk.kind == tokMinus {
			op = ast.OpSub
		}
		p.pos++
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &ast.Expression{Kind: ast.ExprBinary, Op: op, Left: left, Right: right, Span: left.Span}
	}
}

// parseTerm parses the '*'/'/' precedence level.
func (p *exprParser) parseTerm() (*ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tk, ok := p.peek()
		if !ok || (tk.kind != tokStar && tk.kind != tokSlash) {
			return left, nil
		}
		op := ast.OpMul
		if tk.kind == tokSlash {
			op = ast.OpDiv
		}
		p.pos++
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.Expression{Kind: ast.ExprBinary, Op: op, Left: left, Right: right, Span: left.Span}
	}
}

func (p *exprParser) parseUnary() (*ast.Expression, error) {
	tk, ok := p.peek()
	if ok && tk.kind == tokMinus {
		p.pos++
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		zero := &ast.Expression{Kind: ast.ExprLiteral, Literal: ast.PropertyValue{Kind: ast.ValueNumber, NumberVal: 0}, Span: values.Span{Line: p.lineNo, Column: tk.col}}
		return &ast.Expression{Kind: ast.ExprBinary, Op: ast.OpSub, Left: zero, Right: operand, Span: zero.Span}, nil
	}
	return p.parsePrimary()
}

func (p *exprParser) parsePrimary() (*ast.Expression, error) {
	tk, ok := p.peek()
	if !ok {
		return nil, newSyntaxError(ErrUnexpectedEOF, p.span(), "expected expression")
	}
	span := values.Span{Line: p.lineNo, Column: tk.col}

	switch tk.kind {
	case tokNumber:
		p.pos++
		return &ast.Expression{Kind: ast.ExprLiteral, Literal: ast.PropertyValue{Kind: ast.ValueNumber, NumberVal: tk.num}, Span: span}, nil
	case tokLength:
		p.pos++
		return &ast.Expression{Kind: ast.ExprLiteral, Literal: ast.PropertyValue{Kind: ast.ValueLength, LengthVal: values.Length{Magnitude: tk.num, Unit: tk.unit}}, Span: span}, nil
	case tokColor:
		p.pos++
		return &ast.Expression{Kind: ast.ExprLiteral, Literal: ast.PropertyValue{Kind: ast.ValueColor, ColorVal: tk.color}, Span: span}, nil
	case tokString:
		p.pos++
		return &ast.Expression{Kind: ast.ExprLiteral, Literal: ast.PropertyValue{Kind: ast.ValueString, StringVal: tk.text}, Span: span}, nil
	case tokBool:
		p.pos++
		return &ast.Expression{Kind: ast.ExprLiteral, Literal: ast.PropertyValue{Kind: ast.ValueBoolean, BooleanVal: tk.boolean}, Span: span}, nil
	case tokTokenRef:
		p.pos++
		return &ast.Expression{Kind: ast.ExprTokenRef, TokenPath: tk.path, Span: span}, nil
	case tokLParen:
		p.pos++
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return inner, nil
	case tokIdent:
		return p.parseIdentExpr(span)
	default:
		return nil, p.errHere("expected expression")
	}
}

// parseIdentExpr handles the two identifier-led expression forms:
// a function call ("name(arg, ...)") and a property-of reference
// ("ElementRef.property", including the "Parent"/"Previous"/"Next"
// keywords).
func (p *exprParser) parseIdentExpr(span values.Span) (*ast.Expression, error) {
	name := p.toks[p.pos].text
	p.pos++

	if tk, ok := p.peek(); ok && tk.kind == tokLParen {
		p.pos++
		var args []*ast.Expression
		if tk2, ok := p.peek(); !ok || tk2.kind != tokRParen {
			for {
				arg, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				tk3, ok := p.peek()
				if !ok {
					return nil, newSyntaxError(ErrUnexpectedEOF, p.span(), "expected ',' or ')' in call arguments")
				}
				if tk3.kind == tokComma {
					p.pos++
					continue
				}
				break
			}
		}
		if err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return &ast.Expression{Kind: ast.ExprCall, CallName: name, CallArgs: args, Span: span}, nil
	}

	ref, err := elementRefFromIdent(name, span)
	if err != nil {
		return nil, err
	}
	if err := p.expect(tokDot, "'.'"); err != nil {
		return nil, err
	}
	propTk, ok := p.peek()
	if !ok || propTk.kind != tokIdent {
		return nil, p.errHere("expected property name after '.'")
	}
	p.pos++
	return &ast.Expression{Kind: ast.ExprPropertyOf, PropertyOfTarget: ref, PropertyOfName: values.Identifier(propTk.text), Span: span}, nil
}

func (p *exprParser) expect(kind tokenKind, desc string) error {
	tk, ok := p.peek()
	if !ok {
		return newSyntaxError(ErrUnexpectedEOF, p.span(), "expected %s", desc)
	}
	if tk.kind != kind {
		return p.errHere("expected %s", desc)
	}
	p.pos++
	return nil
}

func elementRefFromIdent(name string, span values.Span) (*ast.ElementRef, error) {
	switch name {
	case "Parent":
		return &ast.ElementRef{Kind: ast.RefParent, Span: span}, nil
	case "Previous":
		return &ast.ElementRef{Kind: ast.RefPrevious, Span: span}, nil
	case "Next":
		return &ast.ElementRef{Kind: ast.RefNext, Span: span}, nil
	default:
		if !values.ValidIdentifier(name) {
			return nil, newSyntaxError(ErrUnexpectedToken, span, "invalid element reference %q", name)
		}
		return &ast.ElementRef{Kind: ast.RefNamed, Name: name, Span: span}, nil
	}
}
