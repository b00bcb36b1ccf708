package layout

import (
	"sort"
	"strings"

	"github.com/dshills/seed/pkg/ast"
	"github.com/dshills/seed/pkg/constraints"
)

// ComputeLayout runs the full pipeline described in spec §4.6 against a
// fully resolved, token-flattened, component-expanded document: build the
// arena, compute auto-layout suggestions, lower every explicit constraint,
// solve, and finalize absolute bounds. doc is read-only; ComputeLayout
// never mutates it.
func ComputeLayout(doc *ast.Document, opts Options) (*Tree, error) {
	t := build(doc)

	suggestions, err := autoLayout(t, opts)
	if err != nil {
		return nil, err
	}

	sys, err := buildSystem(t, suggestions)
	if err != nil {
		return nil, err
	}

	solution, err := constraints.Solve(sys)
	if err != nil {
		return nil, err
	}

	applySolution(t, solution, suggestions)
	finalize(t)
	return t, nil
}

// applySolution copies the solver's output into each node's Local
// bounds, falling back to the auto-layout suggestion for any
// variable the system never referenced (spec §4.5).
func applySolution(t *Tree, sol constraints.Solution, suggestions map[NodeID]Bounds) {
	t.Walk(func(n *Node) {
		fallback := suggestions[n.ID]
		n.Local = Bounds{
			X: resolved(sol, n.ID, "x", fallback.X),
			Y: resolved(sol, n.ID, "y", fallback.Y),
			W: resolved(sol, n.ID, "width", fallback.W),
			H: resolved(sol, n.ID, "height", fallback.H),
		}
	})
}

func resolved(sol constraints.Solution, id NodeID, prop string, fallback float64) float64 {
	if v, ok := sol.Get(constraints.Var{Node: string(id), Property: prop}); ok {
		return v
	}
	return fallback
}

// finalize computes every node's Absolute bounds as a pre-order pass
// (parent.Absolute + Local, spec §4.6 step 4) and reduces the tree's
// content bounds to the union of every root's absolute bounds (step 5).
func finalize(t *Tree) {
	var roots []Bounds
	for _, r := range t.Roots() {
		finalizeNode(t, r, Bounds{})
		roots = append(roots, t.Node(r).Absolute)
	}
	t.content = union(roots)
}

func finalizeNode(t *Tree, id NodeID, parentAbsolute Bounds) {
	n := t.Node(id)
	n.Absolute = Bounds{
		X: parentAbsolute.X + n.Local.X,
		Y: parentAbsolute.Y + n.Local.Y,
		W: n.Local.W,
		H: n.Local.H,
	}
	for _, c := range n.Children {
		finalizeNode(t, c, n.Absolute)
	}
}

func union(boxes []Bounds) Bounds {
	if len(boxes) == 0 {
		return Bounds{}
	}
	minX, minY := boxes[0].X, boxes[0].Y
	maxX, maxY := boxes[0].X+boxes[0].W, boxes[0].Y+boxes[0].H
	for _, b := range boxes[1:] {
		minX = minf(minX, b.X)
		minY = minf(minY, b.Y)
		maxX = maxf(maxX, b.X+b.W)
		maxY = maxf(maxY, b.Y+b.H)
	}
	return Bounds{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Hit is one layout node struck by a point, ordered front-to-back (the
// topmost node first: spec §4.6's "deepest, then last in document order
// at that depth").
type Hit struct {
	ID     NodeID
	Bounds Bounds

	// order is this hit's position in traversal order (children before
	// their parent, later siblings after earlier ones); used only to
	// break depth ties in document order, per spec §4.6.
	order int
}

// HitTest returns every visible node whose absolute bounds contain
// (x, y), topmost first. A node with ClipChildren stops descent into
// its children once the point falls outside its own bounds, since
// nothing a clipped container draws outside itself is reachable (spec
// §4.6's clip semantics carried into hit-testing).
func HitTest(t *Tree, x, y float64) []Hit {
	var hits []Hit
	order := 0
	for _, r := range t.Roots() {
		hitTestNode(t, r, x, y, &order, &hits)
	}
	sort.SliceStable(hits, func(i, j int) bool {
		di, dj := nodeDepth(hits[i].ID), nodeDepth(hits[j].ID)
		if di != dj {
			return di > dj
		}
		return hits[i].order > hits[j].order
	})
	return hits
}

// HitTop implements spec §4.6's hit_test(x, y) contract directly: the
// single topmost visible node containing the point, or false if none
// does (spec §8.1's hit-test-inversion law compares against this).
func HitTop(t *Tree, x, y float64) (NodeID, bool) {
	hits := HitTest(t, x, y)
	if len(hits) == 0 {
		return "", false
	}
	return hits[0].ID, true
}

// nodeDepth counts path segments in a dotted NodeID ("0.1.2" -> 3)
// rather than comparing raw string length, which breaks once any
// sibling index reaches two digits.
func nodeDepth(id NodeID) int {
	if id == "" {
		return 0
	}
	return strings.Count(string(id), ".") + 1
}

// hitTestNode visits children before their own node (spec §4.6:
// "children are tested before their parent"), and numbers hits in that
// traversal order so later-drawn siblings can outrank earlier ones at
// the same depth.
func hitTestNode(t *Tree, id NodeID, x, y float64, order *int, out *[]Hit) {
	n := t.Node(id)
	if !n.Visible {
		return
	}
	inside := contains(n.Absolute, x, y)
	if n.ClipChildren && !inside {
		return
	}
	for _, c := range n.Children {
		hitTestNode(t, c, x, y, order, out)
	}
	if inside {
		*out = append(*out, Hit{ID: id, Bounds: n.Absolute, order: *order})
		*order++
	}
}

func contains(b Bounds, x, y float64) bool {
	return x >= b.X && x <= b.X+b.W && y >= b.Y && y <= b.Y+b.H
}
