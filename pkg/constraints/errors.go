package constraints

import "fmt"

// ConflictingRequired is returned when two Required constraints pin the
// same variable to two different constant values without any simplex
// iteration being necessary to see the contradiction — the cheap,
// common case of spec §8.2's "required constraint equal to its own
// negation".
type ConflictingRequired struct {
	Var    Var
	First  float64
	Second float64
}

func (e *ConflictingRequired) Error() string {
	return fmt.Sprintf("conflicting required constraints on %s.%s: %g and %g", e.Var.Node, e.Var.Property, e.First, e.Second)
}

// Unsatisfiable is returned when no assignment satisfies every Required
// constraint, discovered by the simplex failing to drive a hard row's
// artificial variable to zero.
type Unsatisfiable struct {
	Detail string
}

func (e *Unsatisfiable) Error() string {
	return fmt.Sprintf("unsatisfiable constraint system: %s", e.Detail)
}

// UnknownProperty is returned by a caller-side validation pass (e.g.
// pkg/layout) when a constraint names a property the target element
// kind does not recognize; the solver itself is property-name agnostic,
// but surfaces this type so callers share one error vocabulary.
type UnknownProperty struct {
	Property string
	Node     string
}

func (e *UnknownProperty) Error() string {
	return fmt.Sprintf("unknown property %q on %s", e.Property, e.Node)
}
