package layout

import "github.com/dshills/seed/pkg/ast"

// build walks a fully resolved and expanded document, allocating one
// layout node per element and recording parent/children links (spec
// §4.6 step 1). No sizing or positioning happens here.
func build(doc *ast.Document) *Tree {
	t := newTree()
	for i := range doc.Elements {
		t.roots = append(t.roots, buildElement(t, &doc.Elements[i], nil, i, "", false))
	}
	return t
}

func buildElement(t *Tree, el *ast.Element, prefix []int, index int, parent NodeID, hasParent bool) NodeID {
	path := append(append([]int(nil), prefix...), index)
	id := pathID(path)

	n := &Node{
		ID:           id,
		Name:         el.Name,
		Kind:         el.Kind,
		Path:         path,
		Source:       el,
		Parent:       parent,
		HasParent:    hasParent,
		Visible:      boolProperty(el, "visible", true),
		Opacity:      clamp01(numberProperty(el, "opacity", 1)),
		ClipChildren: boolProperty(el, "clip", false),
	}
	t.nodes[id] = n

	for i := range el.Children {
		childID := buildElement(t, &el.Children[i], path, i, id, true)
		n.Children = append(n.Children, childID)
	}
	return id
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
