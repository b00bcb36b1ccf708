package layout

import (
	"github.com/dshills/seed/pkg/ast"
	"github.com/dshills/seed/pkg/values"
)

// property finds a named property on el.
func property(el *ast.Element, name string) (ast.PropertyValue, bool) {
	for _, p := range el.Properties {
		if string(p.Name) == name {
			return p.Value, true
		}
	}
	return ast.PropertyValue{}, false
}

func boolProperty(el *ast.Element, name string, def bool) bool {
	v, ok := property(el, name)
	if !ok || v.Kind != ast.ValueBoolean {
		return def
	}
	return v.BooleanVal
}

func numberProperty(el *ast.Element, name string, def float64) float64 {
	v, ok := property(el, name)
	if !ok || v.Kind != ast.ValueNumber {
		return def
	}
	return v.NumberVal
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

// lengthPixels reads a Length-valued property (gap, padding, and
// similar auto-layout controls, which are never %/em/rem in practice)
// and converts it to pixels with no parent or font context, returning
// def if the property is absent. A %, em, or rem value used here fails
// loudly rather than silently, per spec §9's open-question mandate.
func lengthPixels(el *ast.Element, name string, def float64) (float64, bool, error) {
	v, ok := property(el, name)
	if !ok || v.Kind != ast.ValueLength {
		return def, false, nil
	}
	px, err := v.LengthVal.ToPixels(values.Context{})
	if err != nil {
		return 0, true, err
	}
	return px, true, nil
}
