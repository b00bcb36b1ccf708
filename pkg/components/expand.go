package components

import (
	"github.com/dshills/seed/pkg/ast"
	"github.com/dshills/seed/pkg/tokens"
)

// Expand implements spec §4.4's expand(doc, registry) -> doc' |
// ExpandError, replacing every Component instance in doc with a copy
// of its definition's template. tmap supplies the token map that step
// 3 of the algorithm re-runs against each produced copy.
func Expand(doc *ast.Document, registry *ast.Registry, tmap tokens.Map) (*ast.Document, error) {
	out := doc.Clone()
	expanded, err := expandList(out.Elements, registry, tmap, 0)
	if err != nil {
		return nil, err
	}
	out.Elements = expanded
	return out, nil
}

func expandList(els []ast.Element, registry *ast.Registry, tmap tokens.Map, depth int) ([]ast.Element, error) {
	out := make([]ast.Element, len(els))
	for i, el := range els {
		expanded, err := expandElement(el, registry, tmap, depth)
		if err != nil {
			return nil, err
		}
		out[i] = expanded
	}
	return out, nil
}

func expandElement(el ast.Element, registry *ast.Registry, tmap tokens.Map, depth int) (ast.Element, error) {
	if el.Kind != ast.KindComponent {
		children, err := expandList(el.Children, registry, tmap, depth)
		if err != nil {
			return ast.Element{}, err
		}
		el.Children = children
		return el, nil
	}

	if depth >= DefaultMaxDepth {
		return ast.Element{}, &MaxDepthExceeded{Name: el.ComponentName, Span: el.Span, Limit: DefaultMaxDepth}
	}

	def, ok := registry.Lookup(el.ComponentName)
	if !ok {
		return ast.Element{}, &UndefinedComponent{Name: el.ComponentName, Span: el.Span}
	}
	if len(def.Template) != 1 {
		return ast.Element{}, &InvalidComponentTemplate{Name: el.ComponentName, Span: def.Span}
	}

	propValues, err := bindProps(el, def)
	if err != nil {
		return ast.Element{}, err
	}

	copyEl := def.Template[0].Clone()
	substitutePropRefs(&copyEl, propValues)
	injectSlots(&copyEl, el.Children)

	if el.HasName() {
		copyEl.Name = el.Name
	}
	copyEl.SlotFill = el.SlotFill

	resolvedDoc, err := tokens.Resolve(&ast.Document{Elements: []ast.Element{copyEl}}, tmap)
	if err != nil {
		return ast.Element{}, err
	}
	copyEl = resolvedDoc.Elements[0]

	// Recurse: the produced copy may itself be (or contain) further
	// Component instances (spec §4.4 step 1: "Recurse into the produced
	// copy, expanding any nested components").
	if copyEl.Kind == ast.KindComponent {
		return expandElement(copyEl, registry, tmap, depth+1)
	}
	children, err := expandList(copyEl.Children, registry, tmap, depth+1)
	if err != nil {
		return ast.Element{}, err
	}
	copyEl.Children = children
	return copyEl, nil
}

// bindProps validates the instance's supplied props against the
// definition and returns the resolved name -> value table (supplied or
// defaulted) used for PropRef substitution.
func bindProps(instance ast.Element, def *ast.ComponentDefinition) (map[string]ast.PropertyValue, error) {
	supplied := make(map[string]ast.PropertyValue, len(instance.Properties))
	for _, p := range instance.Properties {
		supplied[string(p.Name)] = p.Value
	}

	vals := make(map[string]ast.PropertyValue, len(def.Props))
	for _, pd := range def.Props {
		name := string(pd.Name)
		v, hasValue := supplied[name]
		switch {
		case hasValue:
			if !pd.Type.Assignable(v.Kind) {
				return nil, &InvalidPropType{Component: def.Name, Prop: name, Want: pd.Type.String(), Got: v.Kind.String(), Span: instance.Span}
			}
			vals[name] = v
		case pd.Required:
			return nil, &MissingRequiredProp{Component: def.Name, Prop: name, Span: instance.Span}
		case pd.Default != nil:
			vals[name] = *pd.Default
		}
	}
	return vals, nil
}

// substitutePropRefs walks el's subtree replacing a single-segment
// TokenRef whose path matches a bound prop name with that prop's value
// (DESIGN.md's PropRef decision: the parser never emits a literal
// PropRef, so the expander is what disambiguates a "$name" reference
// inside a template body).
func substitutePropRefs(el *ast.Element, vals map[string]ast.PropertyValue) {
	for i := range el.Properties {
		if v, ok := propRefValue(el.Properties[i].Value, vals); ok {
			el.Properties[i].Value = v
		}
	}
	for i := range el.Constraints {
		substitutePropRefsInExpr(el.Constraints[i].Expr, vals)
	}
	for i := range el.Children {
		substitutePropRefs(&el.Children[i], vals)
	}
}

func substitutePropRefsInExpr(e *ast.Expression, vals map[string]ast.PropertyValue) {
	if e == nil {
		return
	}
	if e.Kind == ast.ExprTokenRef {
		if v, ok := propRefValue(ast.PropertyValue{Kind: ast.ValueTokenRef, TokenPath: e.TokenPath}, vals); ok {
			e.Kind, e.Literal, e.TokenPath = ast.ExprLiteral, v, nil
		}
		return
	}
	substitutePropRefsInExpr(e.Left, vals)
	substitutePropRefsInExpr(e.Right, vals)
	for _, a := range e.CallArgs {
		substitutePropRefsInExpr(a, vals)
	}
}

func propRefValue(v ast.PropertyValue, vals map[string]ast.PropertyValue) (ast.PropertyValue, bool) {
	if v.Kind != ast.ValueTokenRef || len(v.TokenPath) != 1 {
		return ast.PropertyValue{}, false
	}
	bound, ok := vals[v.TokenPath[0]]
	if !ok {
		return ast.PropertyValue{}, false
	}
	return bound, true
}

// injectSlots replaces every Slot element in root's subtree with the
// instance children assigned to it, grouped by their SlotFill name
// ("" is the default slot); a slot with no matching children keeps its
// own (fallback) content.
func injectSlots(root *ast.Element, instanceChildren []ast.Element) {
	groups := make(map[string][]ast.Element)
	for _, c := range instanceChildren {
		groups[c.SlotFill] = append(groups[c.SlotFill], c)
	}
	root.Children = injectSlotList(root.Children, groups)
}

func injectSlotList(list []ast.Element, groups map[string][]ast.Element) []ast.Element {
	var out []ast.Element
	for _, el := range list {
		if el.Kind == ast.KindSlot {
			if matched, ok := groups[el.SlotName]; ok && len(matched) > 0 {
				for _, m := range matched {
					out = append(out, m.Clone())
				}
			} else {
				out = append(out, injectSlotList(el.Children, groups)...)
			}
			continue
		}
		el.Children = injectSlotList(el.Children, groups)
		out = append(out, el)
	}
	return out
}
