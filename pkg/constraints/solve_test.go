package constraints_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dshills/seed/pkg/constraints"
)

func eq(v constraints.Var, value float64, priority constraints.Priority, label string) constraints.Constraint {
	return constraints.Constraint{
		Expr:     constraints.Expr{Terms: []constraints.Term{{Var: v, Coef: 1}}, Const: -value},
		Relation: constraints.RelEqual,
		Priority: priority,
		Label:    label,
	}
}

func TestSolveSimpleRequiredEqualities(t *testing.T) {
	width := constraints.Var{Node: "button", Property: "width"}
	height := constraints.Var{Node: "button", Property: "height"}

	var sys constraints.System
	sys.Add(eq(width, 120, constraints.Required, "width = 120px"))
	sys.Add(eq(height, 40, constraints.Required, "height = 40px"))

	sol, err := constraints.Solve(sys)
	require.NoError(t, err)
	assert.InDelta(t, 120, sol[width], 1e-6)
	assert.InDelta(t, 40, sol[height], 1e-6)
}

// Scenario E from spec §8.3: a higher-priority preference wins over a
// conflicting lower-priority one on the same variable.
func TestSolvePriorityResolvesConflict(t *testing.T) {
	width := constraints.Var{Node: "frame", Property: "width"}

	var sys constraints.System
	sys.Add(eq(width, 100, constraints.Medium, "width = 100px @medium"))
	sys.Add(eq(width, 200, constraints.High, "width = 200px @high"))

	sol, err := constraints.Solve(sys)
	require.NoError(t, err)
	assert.InDelta(t, 200, sol[width], 1e-6)
}

// Relative layout, spec Scenario F: B below A with a gap lowers to two
// equalities on element edges.
func TestSolveRelativeBelow(t *testing.T) {
	ax := constraints.Var{Node: "A", Property: "x"}
	ay := constraints.Var{Node: "A", Property: "y"}
	aw := constraints.Var{Node: "A", Property: "width"}
	ah := constraints.Var{Node: "A", Property: "height"}
	bx := constraints.Var{Node: "B", Property: "x"}
	by := constraints.Var{Node: "B", Property: "y"}
	bw := constraints.Var{Node: "B", Property: "width"}
	bh := constraints.Var{Node: "B", Property: "height"}

	var sys constraints.System
	sys.Add(eq(ax, 0, constraints.Required, "A.x = 0"))
	sys.Add(eq(ay, 0, constraints.Required, "A.y = 0"))
	sys.Add(eq(aw, 100, constraints.Required, "A.width = 100"))
	sys.Add(eq(ah, 40, constraints.Required, "A.height = 40"))
	sys.Add(eq(bw, 100, constraints.Required, "B.width = 100"))
	sys.Add(eq(bh, 40, constraints.Required, "B.height = 40"))
	// B.x = A.x; B.y = A.y + A.height + 10
	sys.Add(constraints.Constraint{
		Expr: constraints.Expr{Terms: []constraints.Term{
			{Var: bx, Coef: 1}, {Var: ax, Coef: -1},
		}},
		Relation: constraints.RelEqual,
		Priority: constraints.Required,
		Label:    "B.x = A.x",
	})
	sys.Add(constraints.Constraint{
		Expr: constraints.Expr{Terms: []constraints.Term{
			{Var: by, Coef: 1}, {Var: ay, Coef: -1}, {Var: ah, Coef: -1},
		}, Const: -10},
		Relation: constraints.RelEqual,
		Priority: constraints.Required,
		Label:    "B.y = A.y + A.height + 10",
	})

	sol, err := constraints.Solve(sys)
	require.NoError(t, err)
	assert.InDelta(t, 0, sol[bx], 1e-6)
	assert.InDelta(t, 50, sol[by], 1e-6)
	assert.InDelta(t, 100, sol[bw], 1e-6)
	assert.InDelta(t, 40, sol[bh], 1e-6)
}

func TestSolveConflictingRequiredDetectedWithoutSimplex(t *testing.T) {
	width := constraints.Var{Node: "frame", Property: "width"}

	var sys constraints.System
	sys.Add(eq(width, 100, constraints.Required, "width = 100px"))
	sys.Add(eq(width, 200, constraints.Required, "width = 200px"))

	_, err := constraints.Solve(sys)
	require.Error(t, err)
	_, ok := err.(*constraints.ConflictingRequired)
	assert.True(t, ok)
}

// spec §8.2: "A required constraint equal to its own negation raises
// Unsatisfiable, not panic." Here width <= 10 and width >= 20 can never
// both hold.
func TestSolveContradictoryInequalityIsUnsatisfiable(t *testing.T) {
	width := constraints.Var{Node: "frame", Property: "width"}

	var sys constraints.System
	sys.Add(constraints.Constraint{
		Expr:     constraints.Expr{Terms: []constraints.Term{{Var: width, Coef: 1}}, Const: -10},
		Relation: constraints.RelLessEqual,
		Priority: constraints.Required,
	})
	sys.Add(constraints.Constraint{
		Expr:     constraints.Expr{Terms: []constraints.Term{{Var: width, Coef: 1}}, Const: -20},
		Relation: constraints.RelGreaterEqual,
		Priority: constraints.Required,
	})

	_, err := constraints.Solve(sys)
	require.Error(t, err)
	assert.IsType(t, &constraints.Unsatisfiable{}, err)
}

// spec §8.1: constraint determinism over reordered, equal-as-multiset
// constraint sets.
func TestSolveDeterministicUnderReordering(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w1 := rapid.Float64Range(10, 500).Draw(rt, "w1")
		w2 := rapid.Float64Range(10, 500).Draw(rt, "w2")
		width := constraints.Var{Node: "frame", Property: "width"}

		build := func(order []int) constraints.System {
			all := []constraints.Constraint{
				eq(width, w1, constraints.Medium, "w1"),
				eq(width, w2, constraints.High, "w2"),
			}
			var sys constraints.System
			for _, i := range order {
				sys.Add(all[i])
			}
			return sys
		}

		forward, err := constraints.Solve(build([]int{0, 1}))
		require.NoError(rt, err)
		reversed, err := constraints.Solve(build([]int{1, 0}))
		require.NoError(rt, err)

		assert.InDelta(rt, forward[width], reversed[width], 1e-6)
	})
}
