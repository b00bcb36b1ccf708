package tokens_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dshills/seed/pkg/ast"
	"github.com/dshills/seed/pkg/parser"
	"github.com/dshills/seed/pkg/tokens"
	"github.com/dshills/seed/pkg/values"
)

// Scenario B from spec §8.3.
func TestResolveScenarioB(t *testing.T) {
	defs := []ast.TokenDef{
		{Path: values.TokenPath{"colors", "primary"}, Value: ast.TokenValue{Kind: ast.TokenColor, Color: mustColor(t, "#FF0000")}},
	}
	m, err := tokens.Flatten(defs)
	require.NoError(t, err)

	doc, err := parser.Parse("Frame:\n  fill: $colors.primary\n  constraints:\n    - width = 10px\n    - height = 10px\n")
	require.NoError(t, err)

	resolved, err := tokens.Resolve(doc, m)
	require.NoError(t, err)

	fill := resolved.Elements[0].Properties[0]
	assert.Equal(t, ast.ValueColor, fill.Value.Kind)
	assert.InDelta(t, 1.0, fill.Value.ColorVal.R, 1.0/255)
	assertNoTokenRefs(t, resolved)
}

// Scenario D from spec §8.3.
func TestFlattenScenarioD_CircularReference(t *testing.T) {
	defs := []ast.TokenDef{
		{Path: values.TokenPath{"a"}, Value: ast.TokenValue{Kind: ast.TokenReference, Reference: values.TokenPath{"b"}}},
		{Path: values.TokenPath{"b"}, Value: ast.TokenValue{Kind: ast.TokenReference, Reference: values.TokenPath{"a"}}},
	}
	_, err := tokens.Flatten(defs)
	require.Error(t, err)
	circ, ok := err.(*tokens.CircularTokenReference)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "a"}, circ.Cycle)
}

func TestResolveUndefinedToken(t *testing.T) {
	doc, err := parser.Parse("Frame:\n  fill: $missing\n")
	require.NoError(t, err)
	_, err = tokens.Resolve(doc, tokens.Map{})
	require.Error(t, err)
	_, ok := err.(*tokens.UndefinedToken)
	assert.True(t, ok)
}

func TestResolveContentPositionStringifies(t *testing.T) {
	defs := []ast.TokenDef{
		{Path: values.TokenPath{"spacing", "gap"}, Value: ast.TokenValue{Kind: ast.TokenLength, Length: values.Length{Magnitude: 8, Unit: values.UnitPixel}}},
	}
	m, err := tokens.Flatten(defs)
	require.NoError(t, err)

	doc, err := parser.Parse("Text:\n  content: $spacing.gap\n")
	require.NoError(t, err)

	resolved, err := tokens.Resolve(doc, m)
	require.NoError(t, err)
	assert.Equal(t, ast.ValueString, resolved.Elements[0].Properties[0].Value.Kind)
	assert.Equal(t, "8px", resolved.Elements[0].Properties[0].Value.StringVal)
}

// A missing path at the end of a multi-hop reference chain is reported
// by its own name, not by the name of an intermediate (valid) token.
func TestFlattenDeepChainReportsMissingPath(t *testing.T) {
	defs := []ast.TokenDef{
		{Path: values.TokenPath{"a"}, Value: ast.TokenValue{Kind: ast.TokenReference, Reference: values.TokenPath{"b"}}},
		{Path: values.TokenPath{"b"}, Value: ast.TokenValue{Kind: ast.TokenReference, Reference: values.TokenPath{"c"}}},
	}
	_, err := tokens.Flatten(defs)
	require.Error(t, err)
	var undef *tokens.UndefinedToken
	require.ErrorAs(t, err, &undef)
	assert.Equal(t, "c", undef.Path.String())
}

// FlattenOver lets a def reference a path only the base map defines,
// and layers the flattened defs over that base.
func TestFlattenOverFallsBackToBase(t *testing.T) {
	base := tokens.Map{
		"colors.brand": {Kind: tokens.ValueColor, Color: mustColor(t, "#336699")},
	}
	defs := []ast.TokenDef{
		{Path: values.TokenPath{"colors", "accent"}, Value: ast.TokenValue{Kind: ast.TokenReference, Reference: values.TokenPath{"colors", "brand"}}},
		{Path: values.TokenPath{"colors", "brand"}, Value: ast.TokenValue{Kind: ast.TokenColor, Color: mustColor(t, "#FF0000")}},
	}

	m, err := tokens.FlattenOver(defs, base)
	require.NoError(t, err)

	// The def shadows the base entry of the same path, and the alias
	// resolves against the defs first.
	assert.Equal(t, "#FF0000", m["colors.brand"].Color.Hex())
	assert.Equal(t, "#FF0000", m["colors.accent"].Color.Hex())

	onlyAlias := []ast.TokenDef{
		{Path: values.TokenPath{"colors", "accent"}, Value: ast.TokenValue{Kind: ast.TokenReference, Reference: values.TokenPath{"colors", "brand"}}},
	}
	m2, err := tokens.FlattenOver(onlyAlias, base)
	require.NoError(t, err)
	assert.Equal(t, "#336699", m2["colors.accent"].Color.Hex())
	assert.Equal(t, "#336699", m2["colors.brand"].Color.Hex())
}

func TestMergeOverridesWinOverBase(t *testing.T) {
	base := tokens.Map{"colors.primary": {Kind: tokens.ValueString, String: "base"}}
	override := tokens.Map{"colors.primary": {Kind: tokens.ValueString, String: "override"}}
	merged := tokens.Merge(base, override)
	assert.Equal(t, "override", merged["colors.primary"].String)
}

// Token resolution is a fixed point (spec §8.1): resolving an
// already-resolved document again yields the identical document, since
// no TokenRef survives a first pass.
func TestResolveIsFixedPoint(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		hex := rapid.SampledFrom([]string{"#112233", "#AABBCC", "#000000"}).Draw(rt, "hex")
		defs := []ast.TokenDef{
			{Path: values.TokenPath{"c"}, Value: ast.TokenValue{Kind: ast.TokenColor, Color: mustColor(t, hex)}},
		}
		m, err := tokens.Flatten(defs)
		require.NoError(rt, err)

		doc, err := parser.Parse("Frame:\n  fill: $c\n")
		require.NoError(rt, err)

		once, err := tokens.Resolve(doc, m)
		require.NoError(rt, err)
		twice, err := tokens.Resolve(once, m)
		require.NoError(rt, err)

		assert.Equal(rt, once.Elements[0].Properties[0].Value, twice.Elements[0].Properties[0].Value)
	})
}

func mustColor(t *testing.T, hex string) values.Color {
	t.Helper()
	c, err := values.ParseColor(hex)
	require.NoError(t, err)
	return c
}

func assertNoTokenRefs(t *testing.T, doc *ast.Document) {
	t.Helper()
	var walk func(el ast.Element)
	walk = func(el ast.Element) {
		for _, p := range el.Properties {
			assert.NotEqual(t, ast.ValueTokenRef, p.Value.Kind)
		}
		for _, c := range el.Children {
			walk(c)
		}
	}
	for _, el := range doc.Elements {
		walk(el)
	}
}
