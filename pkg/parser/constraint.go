package parser

import (
	"github.com/dshills/seed/pkg/ast"
	"github.com/dshills/seed/pkg/values"
)

var edgeNames = map[string]ast.Edge{
	"left":    ast.EdgeLeft,
	"right":   ast.EdgeRight,
	"top":     ast.EdgeTop,
	"bottom":  ast.EdgeBottom,
	"centerX": ast.EdgeCenterX,
	"centerY": ast.EdgeCenterY,
}

var relativeNames = map[string]ast.RelativeKind{
	"above":    ast.RelativeAbove,
	"below":    ast.RelativeBelow,
	"leftOf":   ast.RelativeLeftOf,
	"left-of":  ast.RelativeLeftOf,
	"rightOf":  ast.RelativeRightOf,
	"right-of": ast.RelativeRightOf,
}

// parseConstraintLine parses one "- expression" item's content (the
// text after the leading "-" and its following space has already been
// stripped by the caller) into a Constraint (spec §4.1's constraint
// grammar).
func parseConstraintLine(content string, lineNo, startCol int) (ast.Constraint, error) {
	lex := newLineLexer(content, startCol, lineNo)
	toks, err := lex.tokenize()
	if err != nil {
		return ast.Constraint{}, err
	}
	if len(toks) == 0 {
		return ast.Constraint{}, newSyntaxError(ErrUnexpectedEOF, values.Span{Line: lineNo, Column: startCol}, "empty constraint")
	}

	span := values.Span{Line: lineNo, Column: toks[0].col}
	priority := ast.PriorityRequired
	if n := len(toks); n >= 2 && toks[n-2].kind == tokAt {
		if toks[n-1].kind != tokIdent {
			return ast.Constraint{}, newSyntaxError(ErrUnexpectedToken, values.Span{Line: lineNo, Column: toks[n-1].col}, "expected priority name after '@'")
		}
		pr, ok := ast.ParsePriority(toks[n-1].text)
		if !ok {
			return ast.Constraint{}, newSyntaxError(ErrUnexpectedToken, values.Span{Line: lineNo, Column: toks[n-1].col}, "unknown priority %q", toks[n-1].text)
		}
		priority = pr
		toks = toks[:n-2]
	}
	if len(toks) == 0 {
		return ast.Constraint{}, newSyntaxError(ErrUnexpectedEOF, span, "empty constraint")
	}

	p := &exprParser{toks: toks, lineNo: lineNo}

	first, _ := p.peek()
	if first.kind == tokIdent {
		if rel, ok := relativeNames[first.text]; ok {
			return parseRelativeConstraint(p, rel, priority, span)
		}
		if edge, ok := edgeNames[first.text]; ok {
			if len(p.toks) > p.pos+1 && p.toks[p.pos+1].kind == tokIdent && p.toks[p.pos+1].text == "align" {
				return parseAlignmentConstraint(p, edge, priority, span)
			}
		}
	}
	return parsePropertyConstraint(p, priority, span)
}

func parsePropertyConstraint(p *exprParser, priority ast.Priority, span values.Span) (ast.Constraint, error) {
	nameTk, ok := p.peek()
	if !ok || nameTk.kind != tokIdent {
		return ast.Constraint{}, p.errHere("expected property name")
	}
	p.pos++

	opTk, ok := p.peek()
	if !ok {
		return ast.Constraint{}, newSyntaxError(ErrUnexpectedEOF, p.span(), "expected '=' or a comparison operator")
	}

	var kind ast.ConstraintKind
	var op ast.CompareOp
	switch opTk.kind {
	case tokEquals:
		kind = ast.ConstraintEquality
	case tokLT:
		kind, op = ast.ConstraintInequality, ast.OpLess
	case tokLE:
		kind, op = ast.ConstraintInequality, ast.OpLessEqual
	case tokGT:
		kind, op = ast.ConstraintInequality, ast.OpGreater
	case tokGE:
		kind, op = ast.ConstraintInequality, ast.OpGreaterEqual
	default:
		return ast.Constraint{}, p.errHere("expected '=', '<', '<=', '>', or '>='")
	}
	p.pos++

	expr, err := p.parseExpression()
	if err != nil {
		return ast.Constraint{}, err
	}
	if !p.atEnd() {
		return ast.Constraint{}, p.errHere("unexpected trailing tokens in constraint")
	}

	return ast.Constraint{
		Kind:     kind,
		Priority: priority,
		Property: values.Identifier(nameTk.text),
		Op:       op,
		Expr:     expr,
		Span:     span,
	}, nil
}

func parseAlignmentConstraint(p *exprParser, edge ast.Edge, priority ast.Priority, span values.Span) (ast.Constraint, error) {
	p.pos += 2 // edge, "align"
	target, err := p.parseElementRefToken()
	if err != nil {
		return ast.Constraint{}, err
	}

	c := ast.Constraint{Kind: ast.ConstraintAlignment, Priority: priority, Edge: edge, Target: target, Span: span}
	if tk, ok := p.peek(); ok {
		if tk.kind != tokIdent {
			return ast.Constraint{}, p.errHere("expected a trailing edge name")
		}
		targetEdge, ok := edgeNames[tk.text]
		if !ok {
			return ast.Constraint{}, p.errHere("unknown edge %q", tk.text)
		}
		p.pos++
		c.TargetEdge = targetEdge
		c.HasTargetEdge = true
	}
	if !p.atEnd() {
		return ast.Constraint{}, p.errHere("unexpected trailing tokens in alignment constraint")
	}
	return c, nil
}

func parseRelativeConstraint(p *exprParser, rel ast.RelativeKind, priority ast.Priority, span values.Span) (ast.Constraint, error) {
	p.pos++ // the relative verb
	target, err := p.parseElementRefToken()
	if err != nil {
		return ast.Constraint{}, err
	}

	c := ast.Constraint{Kind: ast.ConstraintRelative, Priority: priority, Relation: rel, Target: target, Span: span}
	if tk, ok := p.peek(); ok && tk.kind == tokComma {
		p.pos++
		gapName, ok := p.peek()
		if !ok || gapName.kind != tokIdent || gapName.text != "gap" {
			return ast.Constraint{}, p.errHere("expected 'gap' after ','")
		}
		p.pos++
		if err := p.expect(tokColon, "':'"); err != nil {
			return ast.Constraint{}, err
		}
		gapTk, ok := p.peek()
		if !ok || gapTk.kind != tokLength {
			return ast.Constraint{}, p.errHere("expected a length for 'gap'")
		}
		p.pos++
		c.Gap = values.Length{Magnitude: gapTk.num, Unit: gapTk.unit}
		c.HasGap = true
	}
	if !p.atEnd() {
		return ast.Constraint{}, p.errHere("unexpected trailing tokens in relative constraint")
	}
	return c, nil
}

// parseElementRefToken consumes a single identifier token and resolves
// it to an ElementRef (Parent/Previous/Next/Named).
func (p *exprParser) parseElementRefToken() (*ast.ElementRef, error) {
	tk, ok := p.peek()
	if !ok || tk.kind != tokIdent {
		return nil, p.errHere("expected an element reference")
	}
	p.pos++
	return elementRefFromIdent(tk.text, values.Span{Line: p.lineNo, Column: tk.col})
}
