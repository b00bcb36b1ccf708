package layout

import (
	"strconv"
	"strings"

	"github.com/dshills/seed/pkg/ast"
)

// NodeID is a layout node's stable identifier: the dotted child-index
// path from the document root (spec §9's "Cyclic back-references" note
// — the same Path the reference resolver already computed). It doubles
// as the Node field of the constraint variables the solver sees.
type NodeID string

func pathID(path []int) NodeID {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = strconv.Itoa(p)
	}
	return NodeID(strings.Join(parts, "."))
}

// Bounds is an axis-aligned rectangle: x, y, width, height.
type Bounds struct {
	X, Y, W, H float64
}

// Node is one element of the layout arena (spec §3.3).
type Node struct {
	ID     NodeID
	Name   string
	Kind   ast.ElementKind
	Path   []int
	Source *ast.Element // read-only view into the resolved/expanded document

	Local    Bounds
	Absolute Bounds

	Parent    NodeID
	HasParent bool
	Children  []NodeID

	Visible      bool
	Opacity      float64
	ClipChildren bool

	// Text carries the measured extents of a Text element (zero value
	// for every other kind).
	Text TextMetrics
}

// Tree is the arena owning every node produced by a single compilation
// (spec §3.3): stable ids, preserved root order, and a path -> id index.
type Tree struct {
	nodes   map[NodeID]*Node
	roots   []NodeID
	content Bounds
}

// newTree creates an empty arena.
func newTree() *Tree {
	return &Tree{nodes: make(map[NodeID]*Node)}
}

// Roots returns the root node ids in source order.
func (t *Tree) Roots() []NodeID {
	return append([]NodeID(nil), t.roots...)
}

// Node returns the node for id, or nil if id is unknown.
func (t *Tree) Node(id NodeID) *Node {
	return t.nodes[id]
}

// NodeForPath returns the layout node id for an element's child-index
// path from the document root, the bridge spec §4.3's DESIGN.md note
// promises between a resolved ElementRef.Path and a concrete node id.
func (t *Tree) NodeForPath(path []int) (NodeID, bool) {
	id := pathID(path)
	if _, ok := t.nodes[id]; !ok {
		return "", false
	}
	return id, true
}

// ContentBounds returns the union of every root node's absolute bounds
// (spec §4.6 step 5's "content_bounds reduction").
func (t *Tree) ContentBounds() Bounds {
	return t.content
}

// Walk visits every node in the tree in document (pre-order) order.
func (t *Tree) Walk(visit func(*Node)) {
	var walk func(id NodeID)
	walk = func(id NodeID) {
		n := t.nodes[id]
		visit(n)
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, r := range t.roots {
		walk(r)
	}
}
