package refs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/seed/pkg/ast"
	"github.com/dshills/seed/pkg/parser"
	"github.com/dshills/seed/pkg/refs"
)

func TestResolvePrevious(t *testing.T) {
	src := "Frame A:\n" +
		"  constraints:\n" +
		"    - width = 10px\n" +
		"Frame B:\n" +
		"  constraints:\n" +
		"    - left-of Previous\n"

	doc, err := parser.Parse(src)
	require.NoError(t, err)

	resolved, err := refs.Resolve(doc)
	require.NoError(t, err)

	target := resolved.Elements[1].Constraints[0].Target
	require.NotNil(t, target)
	assert.Equal(t, ast.RefResolved, target.Kind)
	assert.Equal(t, []int{0}, target.Path)

	el, ok := resolved.ElementAt(target.Path)
	require.True(t, ok)
	assert.Equal(t, "A", el.Name)
}

func TestResolvePreviousAtFirstChildIsInvalid(t *testing.T) {
	doc, err := parser.Parse("Frame A:\n  constraints:\n    - above Previous\n")
	require.NoError(t, err)
	_, err = refs.Resolve(doc)
	require.Error(t, err)
	_, ok := err.(*refs.InvalidElementReference)
	assert.True(t, ok)
}

func TestResolveParentAtRootIsInvalid(t *testing.T) {
	doc, err := parser.Parse("Frame A:\n  constraints:\n    - centerX align Parent\n")
	require.NoError(t, err)
	_, err = refs.Resolve(doc)
	require.Error(t, err)
	_, ok := err.(*refs.InvalidElementReference)
	assert.True(t, ok)
}

func TestResolveNamedSiblingForwardThenBackward(t *testing.T) {
	src := "Frame Outer:\n" +
		"  Frame A:\n" +
		"    constraints:\n" +
		"      - width = 10px\n" +
		"  Frame Mid:\n" +
		"    constraints:\n" +
		"      - below A\n" +
		"  Frame Z:\n" +
		"    constraints:\n" +
		"      - width = 5px\n"

	doc, err := parser.Parse(src)
	require.NoError(t, err)
	resolved, err := refs.Resolve(doc)
	require.NoError(t, err)

	mid := resolved.Elements[0].Children[1]
	target := mid.Constraints[0].Target
	assert.Equal(t, []int{0, 0}, target.Path)
}

func TestResolveNamedFallsBackToEnclosingScope(t *testing.T) {
	src := "Frame Header:\n" +
		"  constraints:\n" +
		"    - width = 100px\n" +
		"Frame Body:\n" +
		"  Frame Inner:\n" +
		"    constraints:\n" +
		"      - below Header\n"

	doc, err := parser.Parse(src)
	require.NoError(t, err)
	resolved, err := refs.Resolve(doc)
	require.NoError(t, err)

	inner := resolved.Elements[1].Children[0]
	target := inner.Constraints[0].Target
	require.NotNil(t, target)
	assert.Equal(t, ast.RefResolved, target.Kind)
	assert.Equal(t, []int{0}, target.Path)
}

func TestResolveUndefinedNamedElement(t *testing.T) {
	doc, err := parser.Parse("Frame A:\n  constraints:\n    - below Ghost\n")
	require.NoError(t, err)
	_, err = refs.Resolve(doc)
	require.Error(t, err)
	_, ok := err.(*refs.UndefinedElement)
	assert.True(t, ok)
}
