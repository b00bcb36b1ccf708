package scene

import (
	"github.com/dshills/seed/pkg/ast"
	"github.com/dshills/seed/pkg/values"
)

func property(el *ast.Element, name string) (ast.PropertyValue, bool) {
	for _, p := range el.Properties {
		if string(p.Name) == name {
			return p.Value, true
		}
	}
	return ast.PropertyValue{}, false
}

func colorProperty(el *ast.Element, name string) (values.Color, bool) {
	v, ok := property(el, name)
	if !ok || v.Kind != ast.ValueColor {
		return values.Color{}, false
	}
	return v.ColorVal, true
}

func numberProperty(el *ast.Element, name string, def float64) float64 {
	v, ok := property(el, name)
	if !ok || v.Kind != ast.ValueNumber {
		return def
	}
	return v.NumberVal
}

func lengthProperty(el *ast.Element, name string, def float64) float64 {
	v, ok := property(el, name)
	if !ok || v.Kind != ast.ValueLength {
		return def
	}
	px, err := v.LengthVal.ToPixels(values.Context{})
	if err != nil {
		return def
	}
	return px
}

func enumProperty(el *ast.Element, name, def string) string {
	v, ok := property(el, name)
	if !ok || v.Kind != ast.ValueEnum {
		return def
	}
	return v.EnumVal
}

func stringProperty(el *ast.Element, name, def string) string {
	v, ok := property(el, name)
	if !ok || v.Kind != ast.ValueString {
		return def
	}
	return v.StringVal
}

func boolProperty(el *ast.Element, name string) bool {
	v, ok := property(el, name)
	return ok && v.Kind == ast.ValueBoolean && v.BooleanVal
}
