package constraints

import "math"

// bigM is the Big-M penalty assigned to every row's artificial
// variable. It must dominate any achievable sum of priority-weighted
// error variables (max weight Required=1000) for the element counts
// this compiler targets (spec §5: "callers compiling adversarial
// inputs should set their own upper bound on element count").
const bigM = 1e9

const epsilon = 1e-7

// maxIterations bounds the simplex pivot loop defensively. Bland's
// anti-cycling rule guarantees termination in a finite number of
// pivots, but floating-point tableaus can still stall; exceeding this
// is reported as Unsatisfiable rather than looping forever.
const maxIterations = 20000

// column records what a tableau column represents, used only to
// decode the final solution and to identify artificial columns for
// the post-solve feasibility check.
type columnKind int

const (
	colDecisionPlus columnKind = iota
	colDecisionMinus
	colSlack
	colError
	colArtificial
)

type column struct {
	kind     columnKind
	varIndex int // valid for colDecisionPlus/colDecisionMinus
	row      int // the row this slack/error/artificial column belongs to
	required bool
}

// Solve implements spec §4.5's solve(system) -> Solution | ConstraintError.
// Required constraints are enforced as hard rows; lower priorities are
// lowered to weighted error variables whose sum the objective minimizes.
func Solve(sys System) (Solution, error) {
	if conflict := checkDirectConflicts(sys); conflict != nil {
		return nil, conflict
	}
	if len(sys.Constraints) == 0 {
		return Solution{}, nil
	}

	vars := sys.variables()
	varIndex := make(map[Var]int, len(vars))
	for i, v := range vars {
		varIndex[v] = i
	}

	nRows := len(sys.Constraints)
	cols := make([]column, 2*len(vars))
	for i := range vars {
		cols[2*i] = column{kind: colDecisionPlus, varIndex: i}
		cols[2*i+1] = column{kind: colDecisionMinus, varIndex: i}
	}

	type rowBuild struct {
		coef map[int]float64 // column index -> coefficient, built incrementally
		rhs  float64
	}
	rows := make([]rowBuild, nRows)
	cost := map[int]float64{} // column index -> objective coefficient
	required := make([]bool, nRows)

	addCol := func(kind columnKind, row int) int {
		idx := len(cols)
		cols = append(cols, column{kind: kind, row: row})
		return idx
	}

	for ri, c := range sys.Constraints {
		coef := make(map[int]float64)
		for _, t := range c.Expr.Terms {
			vi := varIndex[t.Var]
			coef[2*vi] += t.Coef
			coef[2*vi+1] -= t.Coef
		}
		rhs := -c.Expr.Const
		isRequired := c.Priority >= Required
		required[ri] = isRequired

		switch c.Relation {
		case RelEqual:
			if !isRequired {
				ep := addCol(colError, ri)
				em := addCol(colError, ri)
				coef[ep] = -1
				coef[em] = 1
				cost[ep] = float64(c.Priority)
				cost[em] = float64(c.Priority)
			}
		case RelLessEqual:
			if isRequired {
				s := addCol(colSlack, ri)
				coef[s] = 1
			} else {
				e := addCol(colError, ri)
				s := addCol(colSlack, ri)
				coef[e] = -1
				coef[s] = 1
				cost[e] = float64(c.Priority)
			}
		case RelGreaterEqual:
			if isRequired {
				s := addCol(colSlack, ri)
				coef[s] = -1
			} else {
				e := addCol(colError, ri)
				s := addCol(colSlack, ri)
				coef[e] = 1
				coef[s] = -1
				cost[e] = float64(c.Priority)
			}
		}

		if rhs < 0 {
			for k, v := range coef {
				coef[k] = -v
			}
			rhs = -rhs
		}

		a := addCol(colArtificial, ri)
		coef[a] = 1
		cost[a] = bigM
		rows[ri] = rowBuild{coef: coef, rhs: rhs}
	}

	numCols := len(cols)
	tableau := make([][]float64, nRows)
	for i := range tableau {
		tableau[i] = make([]float64, numCols+1)
		for colIdx, v := range rows[i].coef {
			tableau[i][colIdx] = v
		}
		tableau[i][numCols] = rows[i].rhs
	}

	costVec := make([]float64, numCols)
	for colIdx, w := range cost {
		costVec[colIdx] = w
	}

	basis := make([]int, nRows)
	for i, c := range cols {
		if c.kind == colArtificial {
			basis[c.row] = i
		}
	}

	reduced := make([]float64, numCols)
	recomputeReduced := func() {
		for j := 0; j < numCols; j++ {
			z := 0.0
			for i := 0; i < nRows; i++ {
				z += costVec[basis[i]] * tableau[i][j]
			}
			reduced[j] = costVec[j] - z
		}
	}
	recomputeReduced()

	for iter := 0; iter < maxIterations; iter++ {
		enter := -1
		for j := 0; j < numCols; j++ {
			if reduced[j] < -epsilon {
				enter = j // Bland's rule: lowest-indexed improving column
				break
			}
		}
		if enter == -1 {
			break
		}

		leave := -1
		bestRatio := math.Inf(1)
		for i := 0; i < nRows; i++ {
			if tableau[i][enter] <= epsilon {
				continue
			}
			ratio := tableau[i][numCols] / tableau[i][enter]
			if ratio < bestRatio-epsilon || (ratio < bestRatio+epsilon && (leave == -1 || basis[i] < basis[leave])) {
				bestRatio = ratio
				leave = i
			}
		}
		if leave == -1 {
			return nil, &Unsatisfiable{Detail: "constraint system is unbounded"}
		}

		pivot(tableau, leave, enter)
		basis[leave] = enter
		recomputeReduced()
	}

	for i := 0; i < nRows; i++ {
		if !required[i] {
			continue
		}
		if cols[basis[i]].kind == colArtificial && tableau[i][numCols] > epsilon {
			return nil, &Unsatisfiable{Detail: describeRow(sys.Constraints[i])}
		}
	}
	for j, c := range cols {
		if c.kind != colArtificial || !required[c.row] {
			continue
		}
		val := columnValue(tableau, basis, numCols, j)
		if val > epsilon {
			return nil, &Unsatisfiable{Detail: describeRow(sys.Constraints[c.row])}
		}
	}

	solution := make(Solution, len(vars))
	for i, v := range vars {
		plus := columnValue(tableau, basis, numCols, 2*i)
		minus := columnValue(tableau, basis, numCols, 2*i+1)
		solution[v] = plus - minus
	}
	return solution, nil
}

// pivot performs a Gauss-Jordan elimination step making tableau[row][col]
// the unit pivot and zeroing col in every other row.
func pivot(tableau [][]float64, row, col int) {
	width := len(tableau[row])
	p := tableau[row][col]
	for j := 0; j < width; j++ {
		tableau[row][j] /= p
	}
	for i := range tableau {
		if i == row {
			continue
		}
		factor := tableau[i][col]
		if factor == 0 {
			continue
		}
		for j := 0; j < width; j++ {
			tableau[i][j] -= factor * tableau[row][j]
		}
	}
}

// columnValue returns the current value of column j: the RHS of its
// basic row if it is basic, 0 otherwise.
func columnValue(tableau [][]float64, basis []int, rhsCol, j int) float64 {
	for i, b := range basis {
		if b == j {
			return tableau[i][rhsCol]
		}
	}
	return 0
}

// checkDirectConflicts catches the cheap, common contradiction of two
// Required equalities pinning the same single variable to different
// constants (spec §8.2), without running the simplex at all.
func checkDirectConflicts(sys System) error {
	pinned := map[Var]float64{}
	for _, c := range sys.Constraints {
		if c.Priority < Required || c.Relation != RelEqual || len(c.Expr.Terms) != 1 {
			continue
		}
		t := c.Expr.Terms[0]
		if t.Coef == 0 {
			continue
		}
		value := -c.Expr.Const / t.Coef
		if prev, ok := pinned[t.Var]; ok {
			if math.Abs(prev-value) > epsilon {
				return &ConflictingRequired{Var: t.Var, First: prev, Second: value}
			}
			continue
		}
		pinned[t.Var] = value
	}
	return nil
}

func describeRow(c Constraint) string {
	if c.Label != "" {
		return c.Label + " cannot be satisfied alongside the system's other required constraints"
	}
	return "a required constraint cannot be satisfied alongside the system's other required constraints"
}
