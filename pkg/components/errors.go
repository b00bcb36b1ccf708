// Package components expands Component instantiations into deep
// copies of their definition's template, substituting props and
// injecting slot content (spec §4.4).
package components

import (
	"fmt"

	"github.com/dshills/seed/pkg/values"
)

// UndefinedComponent is returned when a Component instance names a
// definition absent from the registry.
type UndefinedComponent struct {
	Name string
	Span values.Span
}

func (e *UndefinedComponent) Error() string {
	return fmt.Sprintf("undefined component %q at %s", e.Name, e.Span)
}

// MissingRequiredProp is returned when a required prop is not supplied
// by an instance.
type MissingRequiredProp struct {
	Component string
	Prop      string
	Span      values.Span
}

func (e *MissingRequiredProp) Error() string {
	return fmt.Sprintf("component %q at %s: missing required prop %q", e.Component, e.Span, e.Prop)
}

// InvalidPropType is returned when a supplied prop's value kind is not
// assignable to its declared type.
type InvalidPropType struct {
	Component string
	Prop      string
	Want      string
	Got       string
	Span      values.Span
}

func (e *InvalidPropType) Error() string {
	return fmt.Sprintf("component %q at %s: prop %q wants %s, got %s", e.Component, e.Span, e.Prop, e.Want, e.Got)
}

// MaxDepthExceeded is returned when expanding a (possibly cyclic)
// component graph exceeds the configured instantiation depth.
type MaxDepthExceeded struct {
	Name  string
	Span  values.Span
	Limit int
}

func (e *MaxDepthExceeded) Error() string {
	return fmt.Sprintf("component %q at %s: exceeded maximum instantiation depth of %d", e.Name, e.Span, e.Limit)
}

// InvalidComponentTemplate is returned when a definition's template
// does not have exactly one root element, a restriction this
// implementation places on ComponentDefinition.Template so that an
// instantiation always replaces its Component element 1:1, keeping the
// sibling positions reference resolution already computed stable
// (see DESIGN.md).
type InvalidComponentTemplate struct {
	Name string
	Span values.Span
}

func (e *InvalidComponentTemplate) Error() string {
	return fmt.Sprintf("component %q at %s: template must have exactly one root element", e.Name, e.Span)
}

// DefaultMaxDepth is the instantiation-depth limit spec §4.4/§5 name as
// the default (64).
const DefaultMaxDepth = 64
