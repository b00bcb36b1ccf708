package tokens

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dshills/seed/pkg/ast"
	"github.com/dshills/seed/pkg/values"
)

// ValueKind discriminates the four concrete kinds a resolved token can
// carry (spec §4.2: "a flat map of path -> (Color | Length | Number |
// String)").
type ValueKind int

const (
	ValueColor ValueKind = iota
	ValueLength
	ValueNumber
	ValueString
)

// Value is one flattened, concrete token value.
type Value struct {
	Kind   ValueKind
	Color  values.Color
	Length values.Length
	Number float64
	String string
}

// Stringify renders v the way a token referenced from a text-content
// position is rendered (spec §4.2).
func (v Value) Stringify() string {
	switch v.Kind {
	case ValueColor:
		return v.Color.Hex()
	case ValueLength:
		return v.Length.Canonical()
	case ValueNumber:
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	case ValueString:
		return v.String
	default:
		return ""
	}
}

// Map is the flattened path -> Value table produced by Flatten.
type Map map[string]Value

// Merge layers overrides on top of base, returning a new Map; base is
// left untouched. Used to compose multiple token packs (SPEC_FULL.md
// "SUPPLEMENTED FEATURES").
func Merge(base, overrides Map) Map {
	out := make(Map, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// Flatten resolves token-to-token references transitively, producing a
// flat Map with no Reference values remaining. Cycles are reported as
// CircularTokenReference; a reference to a path absent from defs is
// UndefinedToken.
func Flatten(defs []ast.TokenDef) (Map, error) {
	return FlattenOver(defs, nil)
}

// FlattenOver resolves defs the way Flatten does, but a reference whose
// path no def declares may fall back to base. The result layers the
// flattened defs over base, so a document's own tokens: block can both
// extend and shadow a caller-supplied pack.
func FlattenOver(defs []ast.TokenDef, base Map) (Map, error) {
	byPath := make(map[string]ast.TokenDef, len(defs))
	order := make([]string, 0, len(defs))
	for _, d := range defs {
		key := d.Path.String()
		if _, exists := byPath[key]; !exists {
			order = append(order, key)
		}
		byPath[key] = d
	}
	sort.Strings(order) // deterministic resolution order regardless of declaration order

	out := make(Map, len(defs))
	resolving := map[string]bool{}
	var stack []string

	// refSpan is the span of the definition that referenced key, so a
	// missing path is reported at the site that asked for it.
	var resolve func(key string, refSpan values.Span) (Value, error)
	resolve = func(key string, refSpan values.Span) (Value, error) {
		if v, ok := out[key]; ok {
			return v, nil
		}
		if resolving[key] {
			cycle := append(append([]string{}, stack...), key)
			return Value{}, &CircularTokenReference{Cycle: cycle}
		}
		def, ok := byPath[key]
		if !ok {
			if v, inBase := base[key]; inBase {
				return v, nil
			}
			return Value{}, &UndefinedToken{Path: values.TokenPath(strings.Split(key, ".")), Span: refSpan}
		}

		resolving[key] = true
		stack = append(stack, key)
		defer func() {
			resolving[key] = false
			stack = stack[:len(stack)-1]
		}()

		var v Value
		switch def.Value.Kind {
		case ast.TokenColor:
			v = Value{Kind: ValueColor, Color: def.Value.Color}
		case ast.TokenLength:
			v = Value{Kind: ValueLength, Length: def.Value.Length}
		case ast.TokenNumber:
			v = Value{Kind: ValueNumber, Number: def.Value.Number}
		case ast.TokenString:
			v = Value{Kind: ValueString, String: def.Value.String}
		case ast.TokenReference:
			// Errors propagate unchanged: an UndefinedToken from deeper
			// in a reference chain names the path that is actually
			// missing, not this frame's own (perfectly valid) target.
			refVal, err := resolve(def.Value.Reference.String(), def.Span)
			if err != nil {
				return Value{}, err
			}
			v = refVal
		default:
			return Value{}, fmt.Errorf("token %q: unknown value kind", key)
		}

		out[key] = v
		return v, nil
	}

	for _, key := range order {
		if _, err := resolve(key, byPath[key].Span); err != nil {
			return nil, err
		}
	}
	return Merge(base, out), nil
}
