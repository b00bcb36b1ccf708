package ast

import "github.com/dshills/seed/pkg/values"

// Priority is a constraint's strength in the solver's priority lattice
// (spec §3.2). Higher values win.
type Priority int

const (
	PriorityWeak     Priority = 1
	PriorityLow      Priority = 250
	PriorityMedium   Priority = 500
	PriorityHigh     Priority = 750
	PriorityRequired Priority = 1000
)

// ParsePriority maps a priority suffix identifier ("weak", "low",
// "medium", "high", "required") to its Priority value.
func ParsePriority(name string) (Priority, bool) {
	switch name {
	case "weak":
		return PriorityWeak, true
	case "low":
		return PriorityLow, true
	case "medium":
		return PriorityMedium, true
	case "high":
		return PriorityHigh, true
	case "required":
		return PriorityRequired, true
	default:
		return 0, false
	}
}

// CompareOp is an inequality comparison operator.
type CompareOp string

const (
	OpLess         CompareOp = "<"
	OpLessEqual    CompareOp = "<="
	OpGreater      CompareOp = ">"
	OpGreaterEqual CompareOp = ">="
)

// Edge names one of the six edges/centerlines a constraint can
// reference.
type Edge string

const (
	EdgeLeft    Edge = "left"
	EdgeRight   Edge = "right"
	EdgeTop     Edge = "top"
	EdgeBottom  Edge = "bottom"
	EdgeCenterX Edge = "centerX"
	EdgeCenterY Edge = "centerY"
)

// RelativeKind is one of the four relative-placement verbs.
type RelativeKind string

const (
	RelativeAbove   RelativeKind = "above"
	RelativeBelow   RelativeKind = "below"
	RelativeLeftOf  RelativeKind = "leftOf"
	RelativeRightOf RelativeKind = "rightOf"
)

// ConstraintKind discriminates the four constraint grammar productions
// (spec §3.2, §4.1).
type ConstraintKind int

const (
	ConstraintEquality ConstraintKind = iota
	ConstraintInequality
	ConstraintAlignment
	ConstraintRelative
)

// Constraint is a single parsed constraint line.
type Constraint struct {
	Kind     ConstraintKind
	Priority Priority
	Span     values.Span

	// ConstraintEquality / ConstraintInequality
	Property values.Identifier
	Op       CompareOp // valid for ConstraintInequality
	Expr     *Expression

	// ConstraintAlignment
	Edge          Edge
	Target        *ElementRef
	TargetEdge    Edge
	HasTargetEdge bool

	// ConstraintRelative
	Relation RelativeKind
	Gap      values.Length
	HasGap   bool
}

// Clone deep-copies the constraint.
func (c Constraint) Clone() Constraint {
	out := c
	out.Expr = c.Expr.Clone()
	out.Target = c.Target.Clone()
	return out
}
