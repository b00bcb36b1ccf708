package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/seed/pkg/ast"
	"github.com/dshills/seed/pkg/values"
)

func TestDocumentCloneIndependence(t *testing.T) {
	doc := &ast.Document{
		Elements: []ast.Element{
			{
				Kind: ast.KindFrame,
				Name: "Button",
				Properties: []ast.Property{
					{Name: "fill", Value: ast.PropertyValue{Kind: ast.ValueColor, ColorVal: values.Opaque(0, 0, 0)}},
				},
			},
		},
	}

	clone := doc.Clone()
	clone.Elements[0].Name = "Changed"
	clone.Elements[0].Properties[0].Value.ColorVal.R = 1

	assert.Equal(t, "Button", doc.Elements[0].Name)
	assert.Equal(t, 0.0, doc.Elements[0].Properties[0].Value.ColorVal.R)
	assert.Equal(t, "Changed", clone.Elements[0].Name)
}

func TestPropTypeAssignable(t *testing.T) {
	assert.True(t, ast.PropTypeColor.Assignable(ast.ValueColor))
	assert.False(t, ast.PropTypeColor.Assignable(ast.ValueLength))
	assert.True(t, ast.PropTypeAny.Assignable(ast.ValueBoolean))
}
