package ast

import "github.com/dshills/seed/pkg/values"

// PropType is the declared type of a component prop (spec §3.2).
type PropType int

const (
	PropTypeColor PropType = iota
	PropTypeLength
	PropTypeNumber
	PropTypeString
	PropTypeBoolean
	PropTypeAny
)

func (t PropType) String() string {
	switch t {
	case PropTypeColor:
		return "Color"
	case PropTypeLength:
		return "Length"
	case PropTypeNumber:
		return "Number"
	case PropTypeString:
		return "String"
	case PropTypeBoolean:
		return "Boolean"
	case PropTypeAny:
		return "Any"
	default:
		return "Unknown"
	}
}

// Assignable reports whether a value of PropertyValueKind vk may be
// assigned to a prop declared with type t (spec §4.4: "Color->Color,
// Length->Length, Number->Number, String->String, Boolean->Boolean,
// anything->Any").
func (t PropType) Assignable(vk PropertyValueKind) bool {
	if t == PropTypeAny {
		return true
	}
	switch t {
	case PropTypeColor:
		return vk == ValueColor
	case PropTypeLength:
		return vk == ValueLength
	case PropTypeNumber:
		return vk == ValueNumber
	case PropTypeString:
		return vk == ValueString || vk == ValueEnum
	case PropTypeBoolean:
		return vk == ValueBoolean
	default:
		return false
	}
}

// PropDefinition is a single prop declared by a ComponentDefinition.
type PropDefinition struct {
	Name     values.Identifier
	Type     PropType
	Required bool
	Default  *PropertyValue
	Span     values.Span
}

// SlotDefinition is a named placeholder inside a component template.
// An empty Name is the default (unnamed) slot.
type SlotDefinition struct {
	Name string
	Span values.Span
}

// ComponentDefinition is a reusable template: a name, its declared
// props and slots, and the element tree instantiated per use.
type ComponentDefinition struct {
	Name     string
	Props    []PropDefinition
	Slots    []SlotDefinition
	Template []Element
	Span     values.Span
}

// Clone deep-copies the definition, including its template subtree.
func (c *ComponentDefinition) Clone() *ComponentDefinition {
	if c == nil {
		return nil
	}
	out := &ComponentDefinition{Name: c.Name, Span: c.Span}
	out.Props = make([]PropDefinition, len(c.Props))
	for i, p := range c.Props {
		out.Props[i] = p
		if p.Default != nil {
			d := p.Default.Clone()
			out.Props[i].Default = &d
		}
	}
	out.Slots = append([]SlotDefinition(nil), c.Slots...)
	out.Template = make([]Element, len(c.Template))
	for i, e := range c.Template {
		out.Template[i] = e.Clone()
	}
	return out
}

// PropDefinitionByName finds a prop declaration by name.
func (c *ComponentDefinition) PropDefinitionByName(name string) (PropDefinition, bool) {
	for _, p := range c.Props {
		if string(p.Name) == name {
			return p, true
		}
	}
	return PropDefinition{}, false
}

// SlotDefinitionByName finds a slot declaration by name ("" for the
// default slot).
func (c *ComponentDefinition) SlotDefinitionByName(name string) (SlotDefinition, bool) {
	for _, s := range c.Slots {
		if s.Name == name {
			return s, true
		}
	}
	return SlotDefinition{}, false
}

// Registry is a read-only, name-keyed collection of component
// definitions, created before compilation and shared across concurrent
// compiles (spec §3.5, §5).
type Registry struct {
	defs  map[string]*ComponentDefinition
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*ComponentDefinition)}
}

// Register adds a definition to the registry. Registration happens once
// before any compile; the registry is read-only during compilation.
func (r *Registry) Register(def *ComponentDefinition) {
	if _, exists := r.defs[def.Name]; !exists {
		r.order = append(r.order, def.Name)
	}
	r.defs[def.Name] = def
}

// Lookup returns the definition registered under name, if any.
func (r *Registry) Lookup(name string) (*ComponentDefinition, bool) {
	def, ok := r.defs[name]
	return def, ok
}

// Names returns the registered component names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}
