package scene

import (
	"github.com/dshills/seed/pkg/ast"
	"github.com/dshills/seed/pkg/layout"
	"github.com/dshills/seed/pkg/values"
)

// Build walks t and emits the flattened command stream spec §4.7
// describes. Invisible nodes (visible=false or opacity<=0) are
// skipped along with their entire subtree. Opacity and clip changes
// are emitted as paired SetOpacity/PushClip-PopClip commands so a
// back-end's save/restore scopes nest exactly around the subtree they
// apply to.
func Build(t *layout.Tree) (*Scene, error) {
	b := &builder{tree: t, opacity: []float64{1}}
	for _, r := range t.Roots() {
		b.visit(r)
	}
	return &Scene{Commands: b.commands}, nil
}

type builder struct {
	tree     *layout.Tree
	commands []Command
	opacity  []float64 // stack of cumulative opacity multipliers
}

func (b *builder) emit(c Command) {
	b.commands = append(b.commands, c)
}

func (b *builder) visit(id layout.NodeID) {
	n := b.tree.Node(id)
	if !n.Visible || n.Opacity <= 0 {
		return
	}

	effective := b.opacity[len(b.opacity)-1] * n.Opacity
	pushedOpacity := effective != b.opacity[len(b.opacity)-1]
	if pushedOpacity {
		b.emit(Command{Kind: KindSetOpacity, Node: string(id), Opacity: effective})
		b.opacity = append(b.opacity, effective)
	}

	b.drawSelf(id, n)

	pushedClip := n.ClipChildren && len(n.Children) > 0
	if pushedClip {
		b.emit(Command{Kind: KindPushClip, Node: string(id), Bounds: toRect(n.Absolute)})
	}
	for _, c := range n.Children {
		b.visit(c)
	}
	if pushedClip {
		b.emit(Command{Kind: KindPopClip, Node: string(id)})
	}

	if pushedOpacity {
		b.opacity = b.opacity[:len(b.opacity)-1]
		b.emit(Command{Kind: KindSetOpacity, Node: string(id), Opacity: b.opacity[len(b.opacity)-1]})
	}
}

func (b *builder) drawSelf(id layout.NodeID, n *layout.Node) {
	el := n.Source
	switch n.Kind {
	case ast.KindText:
		b.drawText(id, n, el)
	case ast.KindFrame, ast.KindPart:
		b.drawShadow(id, n, el)
		b.drawBox(id, n, el)
	default:
		// Component and Slot elements never survive to a solved layout
		// tree: components are expanded in place (spec §4.4) and slots
		// are replaced by their fill content, so there is nothing left
		// here to draw.
	}
}

func (b *builder) drawBox(id layout.NodeID, n *layout.Node, el *ast.Element) {
	rect := toRect(n.Absolute)
	fill, hasFill := colorProperty(el, "fill")
	stroke, hasStroke := colorProperty(el, "stroke")
	strokeWidth := lengthProperty(el, "strokeWidth", 0)
	radius := lengthProperty(el, "cornerRadius", 0)

	cmd := Command{
		Node: string(id), Bounds: rect,
		Fill: fill, HasFill: hasFill,
		Stroke: stroke, HasStroke: hasStroke, StrokeWidth: strokeWidth,
	}
	switch shapeProperty(el) {
	case shapeEllipse:
		cmd.Kind = KindEllipse
	case shapePath:
		cmd.Kind = KindPath
		cmd.Points = rectPoints(rect)
		cmd.Closed = true
	default:
		if radius > 0 {
			cmd.Kind = KindRoundedRect
			cmd.CornerRadius = radius
		} else {
			cmd.Kind = KindRect
		}
	}
	b.emit(cmd)
}

type shape int

const (
	shapeBox shape = iota
	shapeEllipse
	shapePath
)

// shapeProperty reads the optional "shape" enum a Frame/Part can carry
// (rect, the default, draws as Rect/RoundedRect; ellipse and path pick
// the matching render command). Nothing in the element model produces
// an arbitrary multi-point path, so "path" always renders the node's
// own rectangle as a closed four-point polygon — enough to exercise
// scene.KindPath's contract without inventing vector-path authoring.
func shapeProperty(el *ast.Element) shape {
	switch enumProperty(el, "shape", "rect") {
	case "ellipse":
		return shapeEllipse
	case "path":
		return shapePath
	default:
		return shapeBox
	}
}

func rectPoints(r Rect) []Point {
	return []Point{
		{X: r.X, Y: r.Y},
		{X: r.X + r.W, Y: r.Y},
		{X: r.X + r.W, Y: r.Y + r.H},
		{X: r.X, Y: r.Y + r.H},
	}
}

func (b *builder) drawShadow(id layout.NodeID, n *layout.Node, el *ast.Element) {
	shadowColor, ok := colorProperty(el, "shadowColor")
	if !ok {
		return
	}
	blend := BlendMode(enumProperty(el, "shadowBlend", string(BlendNormal)))
	switch blend {
	case BlendNormal, BlendMultiply, BlendScreen:
	default:
		blend = BlendNormal
	}
	b.emit(Command{
		Kind: KindShadow, Node: string(id), Bounds: toRect(n.Absolute),
		ShadowColor: shadowColor,
		OffsetX:     lengthProperty(el, "shadowOffsetX", 0),
		OffsetY:     lengthProperty(el, "shadowOffsetY", 0),
		Blur:        lengthProperty(el, "shadowBlur", 0),
		Blend:       blend,
	})
}

func (b *builder) drawText(id layout.NodeID, n *layout.Node, el *ast.Element) {
	fill, hasFill := colorProperty(el, "fill")
	if !hasFill {
		fill, hasFill = values.Color{A: 1}, true
	}
	b.emit(Command{
		Kind: KindText, Node: string(id), Bounds: toRect(n.Absolute),
		Fill: fill, HasFill: hasFill,
		Content:    stringProperty(el, "content", ""),
		FontSize:   numberProperty(el, "fontSize", 16),
		LineHeight: numberProperty(el, "lineHeight", 1.2),
		Baseline:   n.Text.Baseline,
	})
}

func toRect(b layout.Bounds) Rect {
	return Rect{X: b.X, Y: b.Y, W: b.W, H: b.H}
}
