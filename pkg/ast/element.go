package ast

import "github.com/dshills/seed/pkg/values"

// ElementKind discriminates the closed set of element variants (spec
// §3.2). New kinds are added by extending this enum, never by runtime
// registration (spec §9 "Dynamic dispatch").
type ElementKind int

const (
	KindFrame ElementKind = iota
	KindText
	KindPart
	KindComponent
	KindSlot
)

func (k ElementKind) String() string {
	switch k {
	case KindFrame:
		return "Frame"
	case KindText:
		return "Text"
	case KindPart:
		return "Part"
	case KindComponent:
		return "Component"
	case KindSlot:
		return "Slot"
	default:
		return "Unknown"
	}
}

// Element is a single node of the unresolved/partially-resolved AST.
// Every element carries an optional name, a property list, a constraint
// list (meaningful for Frame/Text/Part/Component), a child list
// (meaningful for Frame/Part/Component), and a span.
type Element struct {
	Kind        ElementKind
	Name        string // empty means unnamed
	Properties  []Property
	Constraints []Constraint
	Children    []Element
	Span        values.Span

	// ComponentName is set only when Kind == KindComponent: the name of
	// the ComponentDefinition to instantiate.
	ComponentName string

	// SlotName is set only when Kind == KindSlot: "" is the default
	// (unnamed) slot.
	SlotName string

	// SlotFill names the slot this element's content should be routed
	// into when it appears as a child of a Component instance (driven
	// by a "slot:" property). Empty means the default slot.
	SlotFill string
}

// HasName reports whether the element was given an explicit name.
func (e *Element) HasName() bool {
	return e.Name != ""
}

// Clone deep-copies an element and its subtree.
func (e Element) Clone() Element {
	out := e
	out.Properties = make([]Property, len(e.Properties))
	for i, p := range e.Properties {
		out.Properties[i] = p.Clone()
	}
	out.Constraints = make([]Constraint, len(e.Constraints))
	for i, c := range e.Constraints {
		out.Constraints[i] = c.Clone()
	}
	out.Children = make([]Element, len(e.Children))
	for i, c := range e.Children {
		out.Children[i] = c.Clone()
	}
	return out
}
