package tokens

import (
	"github.com/dshills/seed/pkg/ast"
)

// Resolve implements spec §4.2's resolve_tokens(doc, tokens) -> doc' |
// ResolveError: it replaces every TokenRef in doc with the concrete
// value m names, leaving doc untouched (value semantics, spec §3.5).
func Resolve(doc *ast.Document, m Map) (*ast.Document, error) {
	out := doc.Clone()
	for i := range out.Elements {
		if err := resolveElement(&out.Elements[i], m); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func resolveElement(el *ast.Element, m Map) error {
	for i := range el.Properties {
		if err := resolveProperty(&el.Properties[i], m); err != nil {
			return err
		}
	}
	for i := range el.Constraints {
		if err := resolveConstraint(&el.Constraints[i], m); err != nil {
			return err
		}
	}
	for i := range el.Children {
		if err := resolveElement(&el.Children[i], m); err != nil {
			return err
		}
	}
	return nil
}

func resolveConstraint(c *ast.Constraint, m Map) error {
	if c.Expr != nil {
		resolved, err := resolveExpr(c.Expr, m, false)
		if err != nil {
			return err
		}
		*c.Expr = *resolved
	}
	return nil
}

func resolveProperty(p *ast.Property, m Map) error {
	if p.Value.Kind != ast.ValueTokenRef {
		return nil
	}
	v, ok := m[p.Value.TokenPath.String()]
	if !ok {
		return &UndefinedToken{Path: p.Value.TokenPath, Span: p.Span}
	}
	if string(p.Name) == "content" {
		p.Value = ast.PropertyValue{Kind: ast.ValueString, StringVal: v.Stringify()}
		return nil
	}
	p.Value = valueToProperty(v)
	return nil
}

func valueToProperty(v Value) ast.PropertyValue {
	switch v.Kind {
	case ValueColor:
		return ast.PropertyValue{Kind: ast.ValueColor, ColorVal: v.Color}
	case ValueLength:
		return ast.PropertyValue{Kind: ast.ValueLength, LengthVal: v.Length}
	case ValueNumber:
		return ast.PropertyValue{Kind: ast.ValueNumber, NumberVal: v.Number}
	default:
		return ast.PropertyValue{Kind: ast.ValueString, StringVal: v.String}
	}
}

// resolveExpr walks an expression tree, replacing ExprTokenRef nodes
// with literals. numericContext is true when e is a direct operand of
// an arithmetic binary operator or an argument of a function call, in
// which case the token must carry a
// Number or Length (spec §4.2: "expression operand where a number/
// length is needed the token must carry a Number/Length").
func resolveExpr(e *ast.Expression, m Map, numericContext bool) (*ast.Expression, error) {
	switch e.Kind {
	case ast.ExprTokenRef:
		v, ok := m[e.TokenPath.String()]
		if !ok {
			return nil, &UndefinedToken{Path: e.TokenPath, Span: e.Span}
		}
		if numericContext && v.Kind != ValueNumber && v.Kind != ValueLength {
			return nil, &InvalidPropertyValue{Path: e.TokenPath, Span: e.Span, Want: "Number or Length", Got: kindName(v.Kind)}
		}
		return &ast.Expression{Kind: ast.ExprLiteral, Literal: valueToProperty(v), Span: e.Span}, nil
	case ast.ExprBinary:
		left, err := resolveExpr(e.Left, m, true)
		if err != nil {
			return nil, err
		}
		right, err := resolveExpr(e.Right, m, true)
		if err != nil {
			return nil, err
		}
		out := *e
		out.Left, out.Right = left, right
		return &out, nil
	case ast.ExprCall:
		args := make([]*ast.Expression, len(e.CallArgs))
		for i, a := range e.CallArgs {
			resolved, err := resolveExpr(a, m, true)
			if err != nil {
				return nil, err
			}
			args[i] = resolved
		}
		out := *e
		out.CallArgs = args
		return &out, nil
	default:
		return e, nil
	}
}

func kindName(k ValueKind) string {
	switch k {
	case ValueColor:
		return "Color"
	case ValueLength:
		return "Length"
	case ValueNumber:
		return "Number"
	default:
		return "String"
	}
}
