package constraints

import "sort"

// Var names a single solver variable: a node identifier (an element's
// layout id, assigned by pkg/layout) paired with a property name
// ("x", "y", "width", "height", or any user-declared property).
type Var struct {
	Node     string
	Property string
}

// Priority is a constraint's strength in the solver's priority lattice
// (spec §3.2). Required constraints must hold exactly; lower
// priorities are traded off against each other through the objective.
type Priority int

const (
	Weak     Priority = 1
	Low      Priority = 250
	Medium   Priority = 500
	High     Priority = 750
	Required Priority = 1000
)

// Term is one coefficient*variable addend of a linear expression.
type Term struct {
	Var  Var
	Coef float64
}

// Expr is a linear expression: the sum of its Terms plus Const.
type Expr struct {
	Terms []Term
	Const float64
}

// Add returns a new expression with term appended.
func (e Expr) Add(v Var, coef float64) Expr {
	out := Expr{Terms: append(append([]Term(nil), e.Terms...), Term{Var: v, Coef: coef}), Const: e.Const}
	return out
}

// Relation is the comparison a Constraint's expression is held against
// zero.
type Relation int

const (
	// RelEqual requires Expr == 0.
	RelEqual Relation = iota
	// RelLessEqual requires Expr <= 0.
	RelLessEqual
	// RelGreaterEqual requires Expr >= 0.
	RelGreaterEqual
)

// Constraint is a single row of the system: a linear expression held
// to a relation against zero, at a given strength.
type Constraint struct {
	Expr     Expr
	Relation Relation
	Priority Priority

	// Label is an optional human-readable description used only in
	// error messages (e.g. "width = 120px" or "B below A").
	Label string
}

// System is an unordered collection of constraints to solve together.
type System struct {
	Constraints []Constraint
}

// Add appends c to the system.
func (s *System) Add(c Constraint) {
	s.Constraints = append(s.Constraints, c)
}

// Solution maps each variable referenced by the system to its solved
// value.
type Solution map[Var]float64

// Get returns the solved value for v, or 0 if v was never referenced
// by any constraint (an unconstrained variable the caller must size by
// other means, per spec §4.5 "Variables never referenced by any
// constraint default to values chosen by auto-layout").
func (s Solution) Get(v Var) (float64, bool) {
	val, ok := s[v]
	return val, ok
}

// variables returns every Var referenced by the system, sorted for
// deterministic column ordering regardless of constraint insertion
// order (spec §4.5: "the same solution given the same input regardless
// of insertion order").
func (s *System) variables() []Var {
	seen := make(map[Var]bool)
	var out []Var
	for _, c := range s.Constraints {
		for _, t := range c.Expr.Terms {
			if !seen[t.Var] {
				seen[t.Var] = true
				out = append(out, t.Var)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Node != out[j].Node {
			return out[i].Node < out[j].Node
		}
		return out[i].Property < out[j].Property
	})
	return out
}
