package components_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dshills/seed/pkg/ast"
	"github.com/dshills/seed/pkg/components"
	"github.com/dshills/seed/pkg/parser"
	"github.com/dshills/seed/pkg/tokens"
	"github.com/dshills/seed/pkg/values"
)

// chainRegistry builds k component definitions Comp0..Comp(k-1), each
// instantiating the next, terminating in a plain Frame. Expanding
// "Comp0:" walks this chain one instantiation per recursion depth.
func chainRegistry(t require.TestingT, k int) *ast.Registry {
	reg := ast.NewRegistry()
	for i := 0; i < k; i++ {
		var body string
		if i == k-1 {
			body = "Frame:\n  constraints:\n    - width = 1px\n"
		} else {
			body = fmt.Sprintf("Comp%d:\n", i+1)
		}
		template, err := parser.ParseElements(body)
		require.NoError(t, err)
		reg.Register(&ast.ComponentDefinition{Name: fmt.Sprintf("Comp%d", i), Template: template})
	}
	return reg
}

// Component expansion terminates (spec §8.1): any non-cyclic component
// chain within the 64-deep limit expands successfully.
func TestExpandTerminationLaw_WithinDepthSucceeds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		k := rapid.IntRange(1, components.DefaultMaxDepth).Draw(rt, "k")
		reg := chainRegistry(rt, k)
		doc, err := parser.Parse("Comp0:\n")
		require.NoError(rt, err)

		out, err := components.Expand(doc, reg, tokens.Map{})
		require.NoError(rt, err)
		assertNoComponents(rt, out)
	})
}

// ...and a chain one deeper than the limit fails with MaxDepthExceeded
// rather than completing or hanging.
func TestExpandTerminationLaw_BeyondDepthFails(t *testing.T) {
	reg := chainRegistry(t, components.DefaultMaxDepth+1)
	doc, err := parser.Parse("Comp0:\n")
	require.NoError(t, err)

	_, err = components.Expand(doc, reg, tokens.Map{})
	require.Error(t, err)
	_, ok := err.(*components.MaxDepthExceeded)
	assert.True(t, ok)
}

func cardRegistry(t *testing.T) *ast.Registry {
	t.Helper()
	template, err := parser.ParseElements("Frame:\n  width: 200px\n  height: 100px\n  padding: $padding\n")
	require.NoError(t, err)

	def := &ast.ComponentDefinition{
		Name: "Card",
		Props: []ast.PropDefinition{
			{Name: "title", Type: ast.PropTypeString, Required: true},
			{Name: "padding", Type: ast.PropTypeLength, Default: &ast.PropertyValue{Kind: ast.ValueLength, LengthVal: values.Length{Magnitude: 16, Unit: values.UnitPixel}}},
		},
		Template: template,
	}
	reg := ast.NewRegistry()
	reg.Register(def)
	return reg
}

// Scenario C from spec §8.3.
func TestExpandScenarioC_DefaultProp(t *testing.T) {
	doc, err := parser.Parse("Card:\n  title: \"Hello\"\n")
	require.NoError(t, err)

	out, err := components.Expand(doc, cardRegistry(t), tokens.Map{})
	require.NoError(t, err)
	require.Len(t, out.Elements, 1)

	frame := out.Elements[0]
	assert.Equal(t, ast.KindFrame, frame.Kind)
	assertNoComponents(t, out)

	props := propsByName(frame)
	require.Contains(t, props, "padding")
	assert.Equal(t, ast.ValueLength, props["padding"].Kind)
	assert.Equal(t, 16.0, props["padding"].LengthVal.Magnitude)
	assert.Equal(t, 200.0, props["width"].LengthVal.Magnitude)
}

func TestExpandMissingRequiredProp(t *testing.T) {
	doc, err := parser.Parse("Card:\n  padding: 4px\n")
	require.NoError(t, err)
	_, err = components.Expand(doc, cardRegistry(t), tokens.Map{})
	require.Error(t, err)
	_, ok := err.(*components.MissingRequiredProp)
	assert.True(t, ok)
}

func TestExpandInvalidPropType(t *testing.T) {
	doc, err := parser.Parse("Card:\n  title: \"Hello\"\n  padding: \"not a length\"\n")
	require.NoError(t, err)
	_, err = components.Expand(doc, cardRegistry(t), tokens.Map{})
	require.Error(t, err)
	_, ok := err.(*components.InvalidPropType)
	assert.True(t, ok)
}

func TestExpandUndefinedComponent(t *testing.T) {
	doc, err := parser.Parse("Mystery:\n  title: \"Hi\"\n")
	require.NoError(t, err)
	_, err = components.Expand(doc, ast.NewRegistry(), tokens.Map{})
	require.Error(t, err)
	_, ok := err.(*components.UndefinedComponent)
	assert.True(t, ok)
}

func TestExpandSlotInjectionDefaultAndNamed(t *testing.T) {
	template, err := parser.ParseElements("Frame:\n  Slot:\n  Slot footer:\n")
	require.NoError(t, err)
	def := &ast.ComponentDefinition{
		Name:     "Panel",
		Slots:    []ast.SlotDefinition{{Name: ""}, {Name: "footer"}},
		Template: template,
	}
	reg := ast.NewRegistry()
	reg.Register(def)

	doc, err := parser.Parse("Panel:\n  Text Body:\n    content: \"hi\"\n  Text Foot:\n    content: \"bye\"\n    slot: footer\n")
	require.NoError(t, err)

	out, err := components.Expand(doc, reg, tokens.Map{})
	require.NoError(t, err)

	frame := out.Elements[0]
	require.Len(t, frame.Children, 2)
	assert.Equal(t, "Body", frame.Children[0].Name)
	assert.Equal(t, "Foot", frame.Children[1].Name)
}

func TestExpandMaxDepthExceeded(t *testing.T) {
	reg := ast.NewRegistry()
	selfTemplate, err := parser.ParseElements("Loop:\n")
	require.NoError(t, err)
	reg.Register(&ast.ComponentDefinition{Name: "Loop", Template: selfTemplate})

	doc, err := parser.Parse("Loop:\n")
	require.NoError(t, err)

	_, err = components.Expand(doc, reg, tokens.Map{})
	require.Error(t, err)
	_, ok := err.(*components.MaxDepthExceeded)
	assert.True(t, ok)
}

func assertNoComponents(t assert.TestingT, doc *ast.Document) {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	var walk func(el ast.Element)
	walk = func(el ast.Element) {
		assert.NotEqual(t, ast.KindComponent, el.Kind)
		for _, c := range el.Children {
			walk(c)
		}
	}
	for _, el := range doc.Elements {
		walk(el)
	}
}

func propsByName(el ast.Element) map[string]ast.PropertyValue {
	out := make(map[string]ast.PropertyValue, len(el.Properties))
	for _, p := range el.Properties {
		out[string(p.Name)] = p.Value
	}
	return out
}
