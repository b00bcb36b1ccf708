package layout

import (
	"github.com/dshills/seed/pkg/ast"
	"github.com/dshills/seed/pkg/values"
)

// Mode is a container's auto-layout strategy (spec §4.6 step 2).
type Mode string

const (
	ModeRow      Mode = "row"
	ModeColumn   Mode = "column"
	ModeGrid     Mode = "grid"
	ModeAbsolute Mode = "absolute"
)

func layoutMode(el *ast.Element) (Mode, error) {
	v := enumProperty(el, "layout", string(ModeAbsolute))
	switch Mode(v) {
	case ModeRow, ModeColumn, ModeGrid, ModeAbsolute:
		return Mode(v), nil
	default:
		return "", &InvalidLayoutMode{Reason: "unrecognized layout mode " + v}
	}
}

// autoLayout computes a weak-priority suggestion (x, y, w, h) for
// every node in t, sizing auto-layout containers around their
// children bottom-up and positioning those children top-down (spec
// §4.6 steps 2-3). Text nodes are measured with opts.metrics().
// Suggestions are handed to the solver as Weak constraints, so any
// explicit author constraint of higher priority overrides them.
func autoLayout(t *Tree, opts Options) (map[NodeID]Bounds, error) {
	if err := validateModes(t); err != nil {
		return nil, err
	}
	b := &autoLayoutBuilder{tree: t, opts: opts, sizes: make(map[NodeID]Bounds)}
	for _, r := range t.Roots() {
		if _, err := b.size(r); err != nil {
			return nil, err
		}
	}
	suggestions := make(map[NodeID]Bounds, len(b.sizes))
	for _, r := range t.Roots() {
		w, h := b.sizes[r].W, b.sizes[r].H
		if w == 0 && h == 0 {
			if mode, _ := layoutMode(t.Node(r).Source); mode == ModeAbsolute {
				w, h = opts.ViewportWidth, opts.ViewportHeight
			}
		}
		suggestions[r] = Bounds{X: 0, Y: 0, W: w, H: h}
		b.position(r, suggestions)
	}
	return suggestions, nil
}

// validateModes rejects nonsensical layout combinations before any
// sizing happens (spec §4.6: "InvalidLayoutMode for nonsensical
// combinations (e.g., explicit child position in a row)"): a child of
// a row/column/grid container is positioned by the container, so an
// explicit equality constraint on its x or y contradicts the mode.
func validateModes(t *Tree) error {
	var err error
	t.Walk(func(n *Node) {
		if err != nil || n.Kind == ast.KindText {
			return
		}
		mode, merr := layoutMode(n.Source)
		if merr != nil {
			if ilm, ok := merr.(*InvalidLayoutMode); ok {
				ilm.Node = string(n.ID)
			}
			err = merr
			return
		}
		if mode == ModeAbsolute {
			return
		}
		for _, childID := range n.Children {
			child := t.Node(childID)
			for _, c := range child.Source.Constraints {
				if c.Kind != ast.ConstraintEquality {
					continue
				}
				if p := string(c.Property); p == "x" || p == "y" {
					err = &InvalidLayoutMode{
						Node:   string(childID),
						Reason: "explicit " + p + " position inside a " + string(mode) + " container",
					}
					return
				}
			}
		}
	})
	return err
}

type autoLayoutBuilder struct {
	tree  *Tree
	opts  Options
	sizes map[NodeID]Bounds
}

// size computes the intrinsic (w, h) of id, memoized, recursing into
// children first (spec §4.6 step 2's bottom-up contract).
func (b *autoLayoutBuilder) size(id NodeID) (Bounds, error) {
	if v, ok := b.sizes[id]; ok {
		return v, nil
	}
	n := b.tree.Node(id)
	el := n.Source

	var w, h float64
	var err error
	switch n.Kind {
	case ast.KindText:
		n.Text = measureText(el, b.opts)
		w, h = n.Text.Width, n.Text.Height
	default:
		mode, merr := layoutMode(el)
		if merr != nil {
			return Bounds{}, merr
		}
		switch mode {
		case ModeRow, ModeColumn:
			w, h, err = b.sizeStack(id, mode)
		case ModeGrid:
			w, h, err = b.sizeGrid(id)
		default:
			w, h = 0, 0
		}
	}
	if err != nil {
		return Bounds{}, err
	}

	if ew, ok, ferr := explicitLength(el, "width"); ferr != nil {
		return Bounds{}, b.sizingError(n, "width", ferr)
	} else if ok {
		w = ew
	}
	if eh, ok, ferr := explicitLength(el, "height"); ferr != nil {
		return Bounds{}, b.sizingError(n, "height", ferr)
	} else if ok {
		h = eh
	}

	result := Bounds{W: w, H: h}
	b.sizes[id] = result
	return result, nil
}

// sizingError classifies a percent/em/rem-without-context failure
// during bottom-up intrinsic sizing. Inside a content-sized container
// it is a genuine circular dependency — the parent's size is being
// computed from this child's, while the child asks for a fraction of
// the parent's (spec §4.6 "LayoutError::CycleDetected"). Everywhere
// else the value simply has no context to convert against, which is
// InvalidPropertyValue per spec §8.2.
func (b *autoLayoutBuilder) sizingError(n *Node, prop string, err error) error {
	if err != values.ErrNoContext {
		return err
	}
	if n.HasParent {
		parent := b.tree.Node(n.Parent)
		if mode, merr := layoutMode(parent.Source); merr == nil && mode != ModeAbsolute {
			return &CycleDetected{Cycle: []string{
				string(n.Parent) + "." + prop,
				string(n.ID) + "." + prop,
				string(n.Parent) + "." + prop,
			}}
		}
	}
	return &InvalidPropertyValue{Node: string(n.ID), Prop: prop, Wrapped: err}
}

func (b *autoLayoutBuilder) sizeStack(id NodeID, mode Mode) (float64, float64, error) {
	n := b.tree.Node(id)
	el := n.Source
	gap, _, err := lengthPixels(el, "gap", 0)
	if err != nil {
		return 0, 0, &InvalidPropertyValue{Node: string(id), Prop: "gap", Wrapped: err}
	}
	padding, _, err := lengthPixels(el, "padding", 0)
	if err != nil {
		return 0, 0, &InvalidPropertyValue{Node: string(id), Prop: "padding", Wrapped: err}
	}

	var main, cross float64
	for i, child := range n.Children {
		cs, err := b.size(child)
		if err != nil {
			return 0, 0, err
		}
		if i > 0 {
			main += gap
		}
		if mode == ModeRow {
			main += cs.W
			cross = maxf(cross, cs.H)
		} else {
			main += cs.H
			cross = maxf(cross, cs.W)
		}
	}
	main += 2 * padding
	cross += 2 * padding

	if mode == ModeRow {
		return main, cross, nil
	}
	return cross, main, nil
}

func (b *autoLayoutBuilder) sizeGrid(id NodeID) (float64, float64, error) {
	n := b.tree.Node(id)
	el := n.Source
	columns := int(numberProperty(el, "columns", 1))
	if columns < 1 {
		columns = 1
	}
	gap, _, err := lengthPixels(el, "gap", 0)
	if err != nil {
		return 0, 0, &InvalidPropertyValue{Node: string(id), Prop: "gap", Wrapped: err}
	}
	padding, _, err := lengthPixels(el, "padding", 0)
	if err != nil {
		return 0, 0, &InvalidPropertyValue{Node: string(id), Prop: "padding", Wrapped: err}
	}

	colWidths := make([]float64, columns)
	rows := (len(n.Children) + columns - 1) / columns
	if rows < 1 {
		rows = 1
	}
	rowHeights := make([]float64, rows)

	for i, child := range n.Children {
		cs, err := b.size(child)
		if err != nil {
			return 0, 0, err
		}
		col, row := i%columns, i/columns
		colWidths[col] = maxf(colWidths[col], cs.W)
		rowHeights[row] = maxf(rowHeights[row], cs.H)
	}

	width := 2 * padding
	for i, cw := range colWidths {
		width += cw
		if i > 0 {
			width += gap
		}
	}
	height := 2 * padding
	for i, rh := range rowHeights {
		height += rh
		if i > 0 {
			height += gap
		}
	}
	return width, height, nil
}

// position assigns a (x, y) suggestion to each child of id, recursing
// into every child's own subtree (spec §4.6 step 2's row/column/grid
// placement rules).
func (b *autoLayoutBuilder) position(id NodeID, suggestions map[NodeID]Bounds) {
	n := b.tree.Node(id)
	el := n.Source
	mode, err := layoutMode(el)
	if err != nil {
		mode = ModeAbsolute
	}
	gap, _, _ := lengthPixels(el, "gap", 0)
	padding, _, _ := lengthPixels(el, "padding", 0)

	switch mode {
	case ModeRow, ModeColumn:
		offset := padding
		for _, child := range n.Children {
			cs := b.sizes[child]
			var x, y float64
			if mode == ModeRow {
				x, y = offset, padding
				offset += cs.W + gap
			} else {
				x, y = padding, offset
				offset += cs.H + gap
			}
			suggestions[child] = Bounds{X: x, Y: y, W: cs.W, H: cs.H}
			b.position(child, suggestions)
		}
	case ModeGrid:
		columns := int(numberProperty(el, "columns", 1))
		if columns < 1 {
			columns = 1
		}
		colWidths, rowHeights := b.gridTracks(id, columns, gap, padding)
		for i, child := range n.Children {
			col, row := i%columns, i/columns
			x := padding
			for c := 0; c < col; c++ {
				x += colWidths[c] + gap
			}
			y := padding
			for r := 0; r < row; r++ {
				y += rowHeights[r] + gap
			}
			cs := b.sizes[child]
			suggestions[child] = Bounds{X: x, Y: y, W: cs.W, H: cs.H}
			b.position(child, suggestions)
		}
	default:
		for _, child := range n.Children {
			cs := b.sizes[child]
			suggestions[child] = Bounds{X: 0, Y: 0, W: cs.W, H: cs.H}
			b.position(child, suggestions)
		}
	}
}

func (b *autoLayoutBuilder) gridTracks(id NodeID, columns int, gap, padding float64) ([]float64, []float64) {
	n := b.tree.Node(id)
	rows := (len(n.Children) + columns - 1) / columns
	if rows < 1 {
		rows = 1
	}
	colWidths := make([]float64, columns)
	rowHeights := make([]float64, rows)
	for i, child := range n.Children {
		cs := b.sizes[child]
		col, row := i%columns, i/columns
		colWidths[col] = maxf(colWidths[col], cs.W)
		rowHeights[row] = maxf(rowHeights[row], cs.H)
	}
	return colWidths, rowHeights
}

func measureText(el *ast.Element, opts Options) TextMetrics {
	content := stringProperty(el, "content", "")
	fontSize := numberProperty(el, "fontSize", opts.DefaultFontSize)
	lineHeight := numberProperty(el, "lineHeight", opts.DefaultLineHeight)
	letterSpacing := numberProperty(el, "letterSpacing", 0)
	maxWidth, _, _ := lengthPixels(el, "maxWidth", 0)

	return opts.metrics().Measure(TextRequest{
		Content:       content,
		FontSize:      fontSize,
		LineHeight:    lineHeight,
		LetterSpacing: letterSpacing,
		MaxWidth:      maxWidth,
	})
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
