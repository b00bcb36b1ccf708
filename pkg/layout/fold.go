package layout

import (
	"fmt"
	"math"

	"github.com/dshills/seed/pkg/ast"
	"github.com/dshills/seed/pkg/values"
)

// foldConstant evaluates e to a plain number when it contains no
// PropertyOf references (and therefore needs no other element's
// geometry to evaluate). It is used to recover an element's
// already-authored size before the solver runs, so auto-layout
// containers can size around children that already pin their own
// width/height (spec §4.6 step 2).
func foldConstant(e *ast.Expression) (float64, bool, error) {
	if e == nil {
		return 0, false, nil
	}
	switch e.Kind {
	case ast.ExprLiteral:
		switch e.Literal.Kind {
		case ast.ValueNumber:
			return e.Literal.NumberVal, true, nil
		case ast.ValueLength:
			px, err := e.Literal.LengthVal.ToPixels(values.Context{})
			if err != nil {
				return 0, false, err
			}
			return px, true, nil
		default:
			return 0, false, nil
		}
	case ast.ExprBinary:
		l, lok, err := foldConstant(e.Left)
		if err != nil || !lok {
			return 0, false, err
		}
		r, rok, err := foldConstant(e.Right)
		if err != nil || !rok {
			return 0, false, err
		}
		switch e.Op {
		case ast.OpAdd:
			return l + r, true, nil
		case ast.OpSub:
			return l - r, true, nil
		case ast.OpMul:
			return l * r, true, nil
		case ast.OpDiv:
			if r == 0 {
				return 0, false, fmt.Errorf("layout: division by zero in constant expression")
			}
			return l / r, true, nil
		default:
			return 0, false, nil
		}
	case ast.ExprCall:
		args := make([]float64, 0, len(e.CallArgs))
		for _, a := range e.CallArgs {
			v, ok, err := foldConstant(a)
			if err != nil || !ok {
				return 0, false, err
			}
			args = append(args, v)
		}
		return foldCall(e.CallName, args)
	default:
		return 0, false, nil
	}
}

// foldCall evaluates the small set of deterministic functions spec
// §3.2's "function call" grammar production allows, when every
// argument is already constant (see layout.UnsupportedExpression for
// the alternative).
func foldCall(name string, args []float64) (float64, bool, error) {
	switch name {
	case "min":
		if len(args) == 0 {
			return 0, false, nil
		}
		v := args[0]
		for _, a := range args[1:] {
			v = math.Min(v, a)
		}
		return v, true, nil
	case "max":
		if len(args) == 0 {
			return 0, false, nil
		}
		v := args[0]
		for _, a := range args[1:] {
			v = math.Max(v, a)
		}
		return v, true, nil
	case "abs":
		if len(args) != 1 {
			return 0, false, nil
		}
		return math.Abs(args[0]), true, nil
	default:
		return 0, false, nil
	}
}

// explicitLength looks for an equality constraint of any priority
// pinning prop to a constant-foldable expression, returning the value
// authored directly on el rather than derived from its children. The
// first such constraint in declaration order wins.
func explicitLength(el *ast.Element, prop string) (float64, bool, error) {
	for _, c := range el.Constraints {
		if c.Kind != ast.ConstraintEquality || string(c.Property) != prop {
			continue
		}
		v, ok, err := foldConstant(c.Expr)
		if err != nil {
			return 0, false, err
		}
		if ok {
			return v, true, nil
		}
	}
	return 0, false, nil
}
