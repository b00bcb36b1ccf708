package layout

import (
	"fmt"

	"github.com/dshills/seed/pkg/ast"
	"github.com/dshills/seed/pkg/constraints"
	"github.com/dshills/seed/pkg/values"
)

// buildSystem lowers every element's explicit constraints (spec §4.5
// "Semantics to preserve") plus the auto-layout/text-measurement
// suggestions from step 2/3 into a constraints.System, ready for
// constraints.Solve.
func buildSystem(t *Tree, suggestions map[NodeID]Bounds) (constraints.System, error) {
	var sys constraints.System

	var walkErr error
	t.Walk(func(n *Node) {
		if walkErr != nil {
			return
		}
		for _, c := range n.Source.Constraints {
			lowered, err := lowerConstraint(t, n.ID, c)
			if err != nil {
				walkErr = err
				return
			}
			sys.Constraints = append(sys.Constraints, lowered...)
		}
	})
	if walkErr != nil {
		return constraints.System{}, walkErr
	}

	for id, b := range suggestions {
		sys.Add(suggestionConstraint(id, "x", b.X))
		sys.Add(suggestionConstraint(id, "y", b.Y))
		sys.Add(suggestionConstraint(id, "width", b.W))
		sys.Add(suggestionConstraint(id, "height", b.H))
	}
	return sys, nil
}

func suggestionConstraint(id NodeID, prop string, value float64) constraints.Constraint {
	return constraints.Constraint{
		Expr:     constraints.Expr{Terms: []constraints.Term{{Var: constraints.Var{Node: string(id), Property: prop}, Coef: 1}}, Const: -value},
		Relation: constraints.RelEqual,
		Priority: constraints.Weak,
		Label:    fmt.Sprintf("auto-layout suggestion %s.%s = %g", id, prop, value),
	}
}

func lowerConstraint(t *Tree, self NodeID, c ast.Constraint) ([]constraints.Constraint, error) {
	priority := constraints.Priority(c.Priority)
	if priority == 0 {
		priority = constraints.Required
	}

	switch c.Kind {
	case ast.ConstraintEquality:
		rhs, err := lowerExpr(t, self, c.Expr)
		if err != nil {
			return nil, err
		}
		expr := negate(rhs)
		expr.Terms = append(expr.Terms, constraints.Term{Var: selfVar(self, string(c.Property)), Coef: 1})
		return []constraints.Constraint{{Expr: expr, Relation: constraints.RelEqual, Priority: priority, Label: string(c.Property) + " = <expr>"}}, nil

	case ast.ConstraintInequality:
		rhs, err := lowerExpr(t, self, c.Expr)
		if err != nil {
			return nil, err
		}
		expr := negate(rhs)
		expr.Terms = append(expr.Terms, constraints.Term{Var: selfVar(self, string(c.Property)), Coef: 1})
		rel := constraints.RelLessEqual
		if c.Op == ast.OpGreater || c.Op == ast.OpGreaterEqual {
			rel = constraints.RelGreaterEqual
		}
		return []constraints.Constraint{{Expr: expr, Relation: rel, Priority: priority, Label: string(c.Property) + " " + string(c.Op) + " <expr>"}}, nil

	case ast.ConstraintAlignment:
		target, err := resolveTarget(t, self, c.Target)
		if err != nil {
			return nil, err
		}
		targetEdge := c.Edge
		if c.HasTargetEdge {
			targetEdge = c.TargetEdge
		}
		expr := sub(edgeExpr(self, c.Edge), edgeExpr(target, targetEdge))
		return []constraints.Constraint{{Expr: expr, Relation: constraints.RelEqual, Priority: priority, Label: string(c.Edge) + " align"}}, nil

	case ast.ConstraintRelative:
		target, err := resolveTarget(t, self, c.Target)
		if err != nil {
			return nil, err
		}
		gap := 0.0
		if c.HasGap {
			px, err := c.Gap.ToPixels(values.Context{})
			if err != nil {
				return nil, &InvalidPropertyValue{Node: string(self), Prop: "gap", Span: c.Span, Wrapped: err}
			}
			gap = px
		}
		return lowerRelative(self, target, c.Relation, gap, priority), nil

	default:
		return nil, fmt.Errorf("layout: unknown constraint kind %d", c.Kind)
	}
}

func lowerRelative(self, target NodeID, rel ast.RelativeKind, gap float64, priority constraints.Priority) []constraints.Constraint {
	selfX, selfY := selfVar(self, "x"), selfVar(self, "y")
	selfW, selfH := selfVar(self, "width"), selfVar(self, "height")
	targetX, targetY := selfVar(target, "x"), selfVar(target, "y")
	targetW, targetH := selfVar(target, "width"), selfVar(target, "height")

	mainAxis := constraints.Constraint{Relation: constraints.RelEqual, Priority: priority}
	crossAxis := constraints.Constraint{Relation: constraints.RelEqual, Priority: priority}

	switch rel {
	case ast.RelativeBelow:
		// self.y - target.y - target.height - gap = 0
		mainAxis.Expr = constraints.Expr{Terms: []constraints.Term{
			{Var: selfY, Coef: 1}, {Var: targetY, Coef: -1}, {Var: targetH, Coef: -1},
		}, Const: -gap}
		mainAxis.Label = "below"
		crossAxis.Expr = constraints.Expr{Terms: []constraints.Term{{Var: selfX, Coef: 1}, {Var: targetX, Coef: -1}}}
	case ast.RelativeAbove:
		// self.y + self.height - target.y + gap = 0
		mainAxis.Expr = constraints.Expr{Terms: []constraints.Term{
			{Var: selfY, Coef: 1}, {Var: selfH, Coef: 1}, {Var: targetY, Coef: -1},
		}, Const: gap}
		mainAxis.Label = "above"
		crossAxis.Expr = constraints.Expr{Terms: []constraints.Term{{Var: selfX, Coef: 1}, {Var: targetX, Coef: -1}}}
	case ast.RelativeLeftOf:
		// self.x + self.width - target.x + gap = 0
		mainAxis.Expr = constraints.Expr{Terms: []constraints.Term{
			{Var: selfX, Coef: 1}, {Var: selfW, Coef: 1}, {Var: targetX, Coef: -1},
		}, Const: gap}
		mainAxis.Label = "leftOf"
		crossAxis.Expr = constraints.Expr{Terms: []constraints.Term{{Var: selfY, Coef: 1}, {Var: targetY, Coef: -1}}}
	case ast.RelativeRightOf:
		// self.x - target.x - target.width - gap = 0
		mainAxis.Expr = constraints.Expr{Terms: []constraints.Term{
			{Var: selfX, Coef: 1}, {Var: targetX, Coef: -1}, {Var: targetW, Coef: -1},
		}, Const: -gap}
		mainAxis.Label = "rightOf"
		crossAxis.Expr = constraints.Expr{Terms: []constraints.Term{{Var: selfY, Coef: 1}, {Var: targetY, Coef: -1}}}
	}
	crossAxis.Label = "relative cross-axis alignment"
	return []constraints.Constraint{mainAxis, crossAxis}
}

func edgeExpr(node NodeID, edge ast.Edge) constraints.Expr {
	x, y := selfVar(node, "x"), selfVar(node, "y")
	w, h := selfVar(node, "width"), selfVar(node, "height")
	switch edge {
	case ast.EdgeLeft:
		return constraints.Expr{Terms: []constraints.Term{{Var: x, Coef: 1}}}
	case ast.EdgeRight:
		return constraints.Expr{Terms: []constraints.Term{{Var: x, Coef: 1}, {Var: w, Coef: 1}}}
	case ast.EdgeTop:
		return constraints.Expr{Terms: []constraints.Term{{Var: y, Coef: 1}}}
	case ast.EdgeBottom:
		return constraints.Expr{Terms: []constraints.Term{{Var: y, Coef: 1}, {Var: h, Coef: 1}}}
	case ast.EdgeCenterX:
		return constraints.Expr{Terms: []constraints.Term{{Var: x, Coef: 1}, {Var: w, Coef: 0.5}}}
	case ast.EdgeCenterY:
		return constraints.Expr{Terms: []constraints.Term{{Var: y, Coef: 1}, {Var: h, Coef: 0.5}}}
	default:
		return constraints.Expr{Terms: []constraints.Term{{Var: x, Coef: 1}}}
	}
}

// lowerExpr converts an ast.Expression to a linear constraints.Expr.
// PropertyOf references resolve through t; function calls must be
// constant-foldable (spec §4.5: the solver's tableau is linear).
func lowerExpr(t *Tree, self NodeID, e *ast.Expression) (constraints.Expr, error) {
	if e == nil {
		return constraints.Expr{}, nil
	}
	switch e.Kind {
	case ast.ExprLiteral:
		v, ok, err := foldConstant(e)
		if err != nil {
			return constraints.Expr{}, &InvalidPropertyValue{Node: string(self), Span: e.Span, Wrapped: err}
		}
		if !ok {
			return constraints.Expr{}, &UnsupportedExpression{Node: string(self), Span: e.Span}
		}
		return constraints.Expr{Const: v}, nil

	case ast.ExprPropertyOf:
		target, err := resolveTarget(t, self, e.PropertyOfTarget)
		if err != nil {
			return constraints.Expr{}, err
		}
		return constraints.Expr{Terms: []constraints.Term{{Var: selfVar(target, string(e.PropertyOfName)), Coef: 1}}}, nil

	case ast.ExprBinary:
		left, err := lowerExpr(t, self, e.Left)
		if err != nil {
			return constraints.Expr{}, err
		}
		right, err := lowerExpr(t, self, e.Right)
		if err != nil {
			return constraints.Expr{}, err
		}
		switch e.Op {
		case ast.OpAdd:
			return add(left, right), nil
		case ast.OpSub:
			return sub(left, right), nil
		case ast.OpMul:
			return scaleProduct(left, right, e)
		case ast.OpDiv:
			if len(right.Terms) != 0 {
				return constraints.Expr{}, &UnsupportedExpression{Node: string(self), Span: e.Span}
			}
			if right.Const == 0 {
				return constraints.Expr{}, fmt.Errorf("layout: division by zero at %s", e.Span)
			}
			return scale(left, 1/right.Const), nil
		default:
			return constraints.Expr{}, &UnsupportedExpression{Node: string(self), Span: e.Span}
		}

	case ast.ExprCall:
		v, ok, err := foldConstant(e)
		if err != nil {
			return constraints.Expr{}, err
		}
		if !ok {
			return constraints.Expr{}, &UnsupportedExpression{Node: string(self), Span: e.Span}
		}
		return constraints.Expr{Const: v}, nil

	default:
		return constraints.Expr{}, &UnsupportedExpression{Node: string(self), Span: e.Span}
	}
}

func scaleProduct(left, right constraints.Expr, e *ast.Expression) (constraints.Expr, error) {
	switch {
	case len(left.Terms) == 0:
		return scale(right, left.Const), nil
	case len(right.Terms) == 0:
		return scale(left, right.Const), nil
	default:
		return constraints.Expr{}, &UnsupportedExpression{Span: e.Span}
	}
}

func selfVar(node NodeID, prop string) constraints.Var {
	return constraints.Var{Node: string(node), Property: prop}
}

func add(a, b constraints.Expr) constraints.Expr {
	out := constraints.Expr{Terms: append(append([]constraints.Term(nil), a.Terms...), b.Terms...), Const: a.Const + b.Const}
	return out
}

func sub(a, b constraints.Expr) constraints.Expr {
	return add(a, negate(b))
}

func negate(e constraints.Expr) constraints.Expr {
	return scale(e, -1)
}

func scale(e constraints.Expr, k float64) constraints.Expr {
	terms := make([]constraints.Term, len(e.Terms))
	for i, t := range e.Terms {
		terms[i] = constraints.Term{Var: t.Var, Coef: t.Coef * k}
	}
	return constraints.Expr{Terms: terms, Const: e.Const * k}
}

// resolveTarget turns an ElementRef into a concrete NodeID: a resolved
// ref carries a Path, and an unresolved RefParent follows self's Parent
// link.
func resolveTarget(t *Tree, self NodeID, ref *ast.ElementRef) (NodeID, error) {
	if ref == nil {
		return self, nil
	}
	switch ref.Kind {
	case ast.RefParent:
		n := t.Node(self)
		if !n.HasParent {
			return "", fmt.Errorf("layout: %s has no parent to reference", self)
		}
		return n.Parent, nil
	case ast.RefResolved:
		id, ok := t.NodeForPath(ref.Path)
		if !ok {
			return "", fmt.Errorf("layout: reference at %s resolves to an unknown element", ref.Span)
		}
		return id, nil
	default:
		return "", fmt.Errorf("layout: element reference at %s was never resolved", ref.Span)
	}
}
