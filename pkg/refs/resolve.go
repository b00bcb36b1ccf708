package refs

import (
	"github.com/dshills/seed/pkg/ast"
)

// scope describes one ancestor level available to a Named lookup that
// falls through past the immediate parent: its sibling list (and the
// path prefix locating them), plus whether that level's own owning
// element was itself named.
type scope struct {
	siblings      []ast.Element
	prefix        []int
	parentPath    []int
	hasParent     bool
	parentName    string
	hasParentName bool
}

// Resolve implements spec §4.3's resolve_references(doc) -> doc' |
// ResolveError.
func Resolve(doc *ast.Document) (*ast.Document, error) {
	out := doc.Clone()
	if err := resolveSiblings(out.Elements, nil, nil, false, "", false, nil); err != nil {
		return nil, err
	}
	return out, nil
}

func resolveSiblings(siblings []ast.Element, prefix, parentPath []int, hasParent bool, parentName string, hasParentName bool, enclosing []scope) error {
	childEnclosing := append(append([]scope{}, enclosing...), scope{
		siblings: siblings, prefix: prefix,
		parentPath: parentPath, hasParent: hasParent,
		parentName: parentName, hasParentName: hasParentName,
	})

	for i := range siblings {
		el := &siblings[i]
		path := appendIdx(prefix, i)

		for ci := range el.Constraints {
			c := &el.Constraints[ci]
			if c.Target != nil {
				if err := resolveRef(c.Target, i, siblings, prefix, parentPath, hasParent, parentName, hasParentName, enclosing); err != nil {
					return err
				}
			}
			if err := resolveExpr(c.Expr, i, siblings, prefix, parentPath, hasParent, parentName, hasParentName, enclosing); err != nil {
				return err
			}
		}

		if err := resolveSiblings(el.Children, path, path, true, el.Name, el.HasName(), childEnclosing); err != nil {
			return err
		}
	}
	return nil
}

func resolveExpr(e *ast.Expression, selfIndex int, siblings []ast.Element, prefix, parentPath []int, hasParent bool, parentName string, hasParentName bool, enclosing []scope) error {
	if e == nil {
		return nil
	}
	switch e.Kind {
	case ast.ExprPropertyOf:
		if err := resolveRef(e.PropertyOfTarget, selfIndex, siblings, prefix, parentPath, hasParent, parentName, hasParentName, enclosing); err != nil {
			return err
		}
	case ast.ExprBinary:
		if err := resolveExpr(e.Left, selfIndex, siblings, prefix, parentPath, hasParent, parentName, hasParentName, enclosing); err != nil {
			return err
		}
		if err := resolveExpr(e.Right, selfIndex, siblings, prefix, parentPath, hasParent, parentName, hasParentName, enclosing); err != nil {
			return err
		}
	case ast.ExprCall:
		for _, a := range e.CallArgs {
			if err := resolveExpr(a, selfIndex, siblings, prefix, parentPath, hasParent, parentName, hasParentName, enclosing); err != nil {
				return err
			}
		}
	}
	return nil
}

func resolveRef(ref *ast.ElementRef, selfIndex int, siblings []ast.Element, prefix, parentPath []int, hasParent bool, parentName string, hasParentName bool, enclosing []scope) error {
	switch ref.Kind {
	case ast.RefParent:
		if !hasParent {
			return &InvalidElementReference{Reason: "Parent has no enclosing element at the document root", Span: ref.Span}
		}
		ref.Kind, ref.Path = ast.RefResolved, parentPath
		return nil

	case ast.RefPrevious:
		if selfIndex == 0 {
			return &InvalidElementReference{Reason: "Previous has no sibling before the first child", Span: ref.Span}
		}
		ref.Kind, ref.Path = ast.RefResolved, appendIdx(prefix, selfIndex-1)
		return nil

	case ast.RefNext:
		if selfIndex >= len(siblings)-1 {
			return &InvalidElementReference{Reason: "Next has no sibling after the last child", Span: ref.Span}
		}
		ref.Kind, ref.Path = ast.RefResolved, appendIdx(prefix, selfIndex+1)
		return nil

	case ast.RefNamed:
		if path, ok := searchNamedSiblings(ref.Name, siblings, prefix, selfIndex); ok {
			ref.Kind, ref.Path = ast.RefResolved, path
			return nil
		}
		if hasParentName && parentName == ref.Name {
			ref.Kind, ref.Path = ast.RefResolved, parentPath
			return nil
		}
		for i := len(enclosing) - 1; i >= 0; i-- {
			s := enclosing[i]
			if path, ok := searchNamedScope(ref.Name, s.siblings, s.prefix); ok {
				ref.Kind, ref.Path = ast.RefResolved, path
				return nil
			}
			if s.hasParentName && s.parentName == ref.Name {
				ref.Kind, ref.Path = ast.RefResolved, s.parentPath
				return nil
			}
		}
		return &UndefinedElement{Name: ref.Name, Span: ref.Span}

	case ast.RefResolved:
		return nil // already resolved (defensive; the parser never emits this)

	default:
		return &InvalidElementReference{Reason: "unknown element reference kind", Span: ref.Span}
	}
}

// searchNamedSiblings implements spec §4.3's "nearest sibling (searched
// forward then backward)" rule relative to selfIndex.
func searchNamedSiblings(name string, siblings []ast.Element, prefix []int, selfIndex int) ([]int, bool) {
	for i := selfIndex + 1; i < len(siblings); i++ {
		if siblings[i].HasName() && siblings[i].Name == name {
			return appendIdx(prefix, i), true
		}
	}
	for i := selfIndex - 1; i >= 0; i-- {
		if siblings[i].HasName() && siblings[i].Name == name {
			return appendIdx(prefix, i), true
		}
	}
	return nil, false
}

// searchNamedScope scans an enclosing (non-owning) sibling list in
// document order; there is no "self" position to search outward from.
func searchNamedScope(name string, siblings []ast.Element, prefix []int) ([]int, bool) {
	for i := range siblings {
		if siblings[i].HasName() && siblings[i].Name == name {
			return appendIdx(prefix, i), true
		}
	}
	return nil, false
}

func appendIdx(prefix []int, i int) []int {
	out := make([]int, len(prefix)+1)
	copy(out, prefix)
	out[len(prefix)] = i
	return out
}
