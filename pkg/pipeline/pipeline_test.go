package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/seed/pkg/ast"
	"github.com/dshills/seed/pkg/layout"
	"github.com/dshills/seed/pkg/pipeline"
	"github.com/dshills/seed/pkg/scene"
	"github.com/dshills/seed/pkg/tokens"
	"github.com/dshills/seed/pkg/values"
)

// Scenario A from spec §8.3: a frame with explicit constraints.
func TestCompileScenarioA(t *testing.T) {
	src := "Frame Button:\n" +
		"  fill: #3B82F6\n" +
		"  constraints:\n" +
		"    - width = 120px\n" +
		"    - height = 40px\n"

	res, err := pipeline.Compile(src, nil, ast.NewRegistry(), layout.DefaultOptions())
	require.NoError(t, err)

	roots := res.Layout.Roots()
	require.Len(t, roots, 1)
	node := res.Layout.Node(roots[0])
	assert.Equal(t, layout.Bounds{X: 0, Y: 0, W: 120, H: 40}, node.Local)
	assert.Equal(t, node.Local, node.Absolute)

	require.Len(t, res.Scene.Commands, 1)
	cmd := res.Scene.Commands[0]
	assert.Equal(t, scene.KindRect, cmd.Kind)
	assert.InDelta(t, 0.231, cmd.Fill.R, 1.0/255)
	assert.InDelta(t, 0.510, cmd.Fill.G, 1.0/255)
	assert.InDelta(t, 0.965, cmd.Fill.B, 1.0/255)
}

// Scenario B from spec §8.3: token resolution leaves no TokenRef behind.
func TestCompileScenarioB(t *testing.T) {
	src := "Frame:\n" +
		"  fill: $colors.primary\n" +
		"  constraints:\n" +
		"    - width = 10px\n" +
		"    - height = 10px\n"

	tmap, err := tokens.Flatten([]ast.TokenDef{
		{Path: values.TokenPath{"colors", "primary"}, Value: ast.TokenValue{Kind: ast.TokenColor, Color: mustColor(t, "#FF0000")}},
	})
	require.NoError(t, err)

	res, err := pipeline.Compile(src, tmap, ast.NewRegistry(), layout.DefaultOptions())
	require.NoError(t, err)

	fill, ok := res.Document.Elements[0].Properties[0].Value, true
	require.True(t, ok)
	assert.Equal(t, ast.ValueColor, fill.Kind)
	assert.Equal(t, "#FF0000", fill.ColorVal.Hex())
}

// A document's own tokens: block is flattened and layered over the
// caller's map before resolution, so inline tokens both extend and
// shadow the pack the document is compiled against.
func TestCompileInlineTokenBlock(t *testing.T) {
	src := "tokens:\n" +
		"  colors.primary: #00FF00\n" +
		"  colors.accent: $colors.primary\n" +
		"Frame:\n" +
		"  fill: $colors.accent\n" +
		"  stroke: $colors.pack\n" +
		"  constraints:\n" +
		"    - width = 10px\n" +
		"    - height = 10px\n"

	pack := tokens.Map{
		"colors.primary": {Kind: tokens.ValueColor, Color: mustColor(t, "#FF0000")},
		"colors.pack":    {Kind: tokens.ValueColor, Color: mustColor(t, "#0000FF")},
	}

	res, err := pipeline.Compile(src, pack, ast.NewRegistry(), layout.DefaultOptions())
	require.NoError(t, err)

	el := res.Document.Elements[0]
	fill, ok := propByName(el, "fill")
	require.True(t, ok)
	assert.Equal(t, "#00FF00", fill.ColorVal.Hex())
	stroke, ok := propByName(el, "stroke")
	require.True(t, ok)
	assert.Equal(t, "#0000FF", stroke.ColorVal.Hex())
}

// Scenario C from spec §8.3: a component with a default prop expands
// to a plain Frame; no Component element survives.
func TestCompileScenarioC(t *testing.T) {
	registry := ast.NewRegistry()
	registry.Register(&ast.ComponentDefinition{
		Name: "Card",
		Props: []ast.PropDefinition{
			{Name: "title", Type: ast.PropTypeString, Required: true},
			{Name: "padding", Type: ast.PropTypeLength, Default: &ast.PropertyValue{
				Kind: ast.ValueLength, LengthVal: values.Length{Magnitude: 16, Unit: values.UnitPixel},
			}},
		},
		Template: []ast.Element{{
			Kind: ast.KindFrame,
			Properties: []ast.Property{
				{Name: "padding", Value: ast.PropertyValue{Kind: ast.ValueTokenRef, TokenPath: values.TokenPath{"padding"}}},
			},
			Constraints: []ast.Constraint{
				equalityPx(t, "width", 200),
				equalityPx(t, "height", 100),
			},
		}},
	})

	src := "Card:\n" +
		"  title: \"Hello\"\n"

	res, err := pipeline.Compile(src, nil, registry, layout.DefaultOptions())
	require.NoError(t, err)

	require.Len(t, res.Document.Elements, 1)
	el := res.Document.Elements[0]
	assert.Equal(t, ast.KindFrame, el.Kind)
	padding, ok := propByName(el, "padding")
	require.True(t, ok)
	assert.Equal(t, "16px", padding.LengthVal.Canonical())
}

// Scenario D from spec §8.3: a circular token reference is reported
// with the full cycle, at the point the map is flattened, before any
// document is even parsed.
func TestCompileScenarioD_CircularTokenReference(t *testing.T) {
	_, err := tokens.Flatten([]ast.TokenDef{
		{Path: values.TokenPath{"a"}, Value: ast.TokenValue{Kind: ast.TokenReference, Reference: values.TokenPath{"b"}}},
		{Path: values.TokenPath{"b"}, Value: ast.TokenValue{Kind: ast.TokenReference, Reference: values.TokenPath{"a"}}},
	})
	require.Error(t, err)
	var cyc *tokens.CircularTokenReference
	require.ErrorAs(t, err, &cyc)
}

// Scenario E from spec §8.3: a higher-priority constraint wins.
func TestCompileScenarioE_PriorityResolvesConflict(t *testing.T) {
	src := "Frame:\n" +
		"  constraints:\n" +
		"    - width = 100px @medium\n" +
		"    - width = 200px @high\n" +
		"    - height = 10px\n"

	res, err := pipeline.Compile(src, nil, ast.NewRegistry(), layout.DefaultOptions())
	require.NoError(t, err)
	node := res.Layout.Node(res.Layout.Roots()[0])
	assert.Equal(t, 200.0, node.Local.W)
}

// Scenario F from spec §8.3: a relative "below" constraint positions a
// sibling beneath another's bottom edge plus gap.
func TestCompileScenarioF_RelativeBelow(t *testing.T) {
	src := "Frame A:\n" +
		"  constraints:\n" +
		"    - width = 100px\n" +
		"    - height = 40px\n" +
		"    - x = 0px\n" +
		"    - y = 0px\n" +
		"Frame B:\n" +
		"  constraints:\n" +
		"    - below A, gap: 10px\n" +
		"    - width = 100px\n" +
		"    - height = 40px\n"

	res, err := pipeline.Compile(src, nil, ast.NewRegistry(), layout.DefaultOptions())
	require.NoError(t, err)
	roots := res.Layout.Roots()
	require.Len(t, roots, 2)
	b := res.Layout.Node(roots[1])
	assert.Equal(t, layout.Bounds{X: 0, Y: 50, W: 100, H: 40}, b.Absolute)
}

// Two required constraints pinning the same property to different
// constants are a CompileError wrapping constraints.ConflictingRequired,
// never a panic (spec §8.2).
func TestCompileUnsatisfiableRequiredConflict(t *testing.T) {
	src := "Frame:\n" +
		"  constraints:\n" +
		"    - width = 100px\n" +
		"    - width = 200px\n" +
		"    - height = 10px\n"

	_, err := pipeline.Compile(src, nil, ast.NewRegistry(), layout.DefaultOptions())
	require.Error(t, err)
	var ce *pipeline.CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, pipeline.StageLayout, ce.Stage)
}

// A syntax error surfaces as a CompileError tagged StageParse.
func TestCompileSyntaxErrorTaggedStageParse(t *testing.T) {
	_, err := pipeline.Compile("Frame:\n\tfill: #000000\n", nil, ast.NewRegistry(), layout.DefaultOptions())
	require.Error(t, err)
	var ce *pipeline.CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, pipeline.StageParse, ce.Stage)
}

func mustColor(t *testing.T, hex string) values.Color {
	t.Helper()
	c, err := values.ParseColor(hex)
	require.NoError(t, err)
	return c
}

func equalityPx(t *testing.T, prop string, px float64) ast.Constraint {
	t.Helper()
	return ast.Constraint{
		Kind:     ast.ConstraintEquality,
		Priority: ast.PriorityRequired,
		Property: values.Identifier(prop),
		Expr: &ast.Expression{
			Kind:    ast.ExprLiteral,
			Literal: ast.PropertyValue{Kind: ast.ValueLength, LengthVal: values.Length{Magnitude: px, Unit: values.UnitPixel}},
		},
	}
}

func propByName(el ast.Element, name string) (ast.PropertyValue, bool) {
	for _, p := range el.Properties {
		if string(p.Name) == name {
			return p.Value, true
		}
	}
	return ast.PropertyValue{}, false
}
