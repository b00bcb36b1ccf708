// Package ast defines the document tree the parser produces and every
// later stage transforms. A Document is owned value-by-value: each
// pipeline stage consumes one and returns a new one: no stage mutates
// its input in place (spec §3.5).
package ast

import (
	"github.com/dshills/seed/pkg/values"
)

// Profile names the target rendering domain of a document.
type Profile string

const (
	Profile2D Profile = "2D"
	Profile3D Profile = "3D"
)

// Meta is the optional meta block of a document.
type Meta struct {
	Profile Profile
	Version string
}

// Document is the root of the AST: an optional meta block, an optional
// raw token block (consumed by the token resolver), and an ordered
// sequence of top-level elements.
type Document struct {
	Meta       *Meta
	Tokens     []TokenDef
	Elements   []Element
	Components map[string]*ComponentDefinition
	Span       values.Span
}

// Clone produces a deep copy of the document so later stages never
// mutate a shared tree. Every stage in the pipeline returns a Clone'd
// and then transformed value.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{Span: d.Span}
	if d.Meta != nil {
		m := *d.Meta
		out.Meta = &m
	}
	out.Tokens = make([]TokenDef, len(d.Tokens))
	copy(out.Tokens, d.Tokens)
	out.Elements = make([]Element, len(d.Elements))
	for i, e := range d.Elements {
		out.Elements[i] = e.Clone()
	}
	if d.Components != nil {
		out.Components = make(map[string]*ComponentDefinition, len(d.Components))
		for name, def := range d.Components {
			out.Components[name] = def.Clone()
		}
	}
	return out
}

// ElementAt follows a resolved-reference path (as produced by
// pkg/refs) down from the document root and returns the element it
// names. Path[0] indexes Elements; each subsequent entry indexes the
// previous element's Children.
func (d *Document) ElementAt(path []int) (*Element, bool) {
	if len(path) == 0 || d == nil {
		return nil, false
	}
	if path[0] < 0 || path[0] >= len(d.Elements) {
		return nil, false
	}
	el := &d.Elements[path[0]]
	for _, idx := range path[1:] {
		if idx < 0 || idx >= len(el.Children) {
			return nil, false
		}
		el = &el.Children[idx]
	}
	return el, true
}

// TokenDef is a single entry of the document's raw token block, before
// resolution. The resolved, flattened form is tokens.Map.
type TokenDef struct {
	Path  values.TokenPath
	Value TokenValue
	Span  values.Span
}

// TokenValueKind discriminates the cases of TokenValue.
type TokenValueKind int

const (
	TokenColor TokenValueKind = iota
	TokenLength
	TokenNumber
	TokenString
	TokenReference
)

// TokenValue is a tagged variant over the value a token definition can
// carry: one of Color, Length, Number, String, or a Reference to
// another token path (resolved transitively, spec §4.2).
type TokenValue struct {
	Kind      TokenValueKind
	Color     values.Color
	Length    values.Length
	Number    float64
	String    string
	Reference values.TokenPath
}
