package parser

import (
	"strings"

	"github.com/dshills/seed/pkg/ast"
	"github.com/dshills/seed/pkg/values"
)

// Parse implements spec §4.1's parse(text) -> Document | ParseError
// contract: indentation-significant, line-oriented recursive descent
// over the whole document grammar (meta?, tokens?, element*).
func Parse(src string) (*ast.Document, error) {
	lines, err := preprocessLines(src)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return &ast.Document{}, nil
	}

	items, consumed, err := splitIntoItems(lines, -1)
	if err != nil {
		return nil, err
	}
	if consumed != len(lines) {
		extra := lines[consumed]
		return nil, newSyntaxError(ErrInvalidIndentation, spanOf(extra), "unexpected indentation")
	}

	doc := &ast.Document{}
	idx := 0

	if idx < len(items) && headerKeyword(items[idx]) == "meta" {
		meta, err := parseMetaBlock(items[idx])
		if err != nil {
			return nil, err
		}
		doc.Meta = &meta
		idx++
	}
	if idx < len(items) && headerKeyword(items[idx]) == "tokens" {
		defs, err := parseTokensBlock(items[idx])
		if err != nil {
			return nil, err
		}
		doc.Tokens = defs
		idx++
	}
	for ; idx < len(items); idx++ {
		if kw := headerKeyword(items[idx]); kw == "meta" || kw == "tokens" {
			return nil, newSyntaxError(ErrUnexpectedToken, spanOf(items[idx][0]), "%q block must appear before any element", kw)
		}
		el, err := parseElementItem(items[idx])
		if err != nil {
			return nil, err
		}
		doc.Elements = append(doc.Elements, el)
	}

	return doc, nil
}

// ParseElements parses a bare sequence of elements with no surrounding
// meta/tokens blocks, for use by callers (such as a component-template
// loader) that re-enter the block grammar on a sub-document fragment.
func ParseElements(src string) ([]ast.Element, error) {
	lines, err := preprocessLines(src)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, nil
	}
	items, consumed, err := splitIntoItems(lines, -1)
	if err != nil {
		return nil, err
	}
	if consumed != len(lines) {
		extra := lines[consumed]
		return nil, newSyntaxError(ErrInvalidIndentation, spanOf(extra), "unexpected indentation")
	}

	var elements []ast.Element
	for _, item := range items {
		el, err := parseElementItem(item)
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
	}
	return elements, nil
}

// ParseTokenValue parses a single token-value lexeme, the right-hand
// side of a "path: value" line inside a tokens: block (color, length,
// number, string, or "$"-prefixed reference). Exported for hosts that
// build a TokenMap from a file format other than seed source, such as
// pkg/tokenpack's YAML pack loader.
func ParseTokenValue(text string) (ast.TokenValue, error) {
	return parseTokenValue(text, 1, 1)
}

// ParsePropertyValue parses a single property-value lexeme the way a
// "name: value" property line's right-hand side is parsed. Exported
// for hosts that build component definitions (props' declared
// defaults) from a file format other than seed source.
func ParsePropertyValue(text string) (ast.PropertyValue, error) {
	tk, err := singlePropertyToken(text, 1, 1)
	if err != nil {
		return ast.PropertyValue{}, err
	}
	return propertyValueFromToken(tk, 1, 1)
}

// headerKeyword returns the item's header text when it is a bare
// "keyword:" block header (nothing follows the colon on that line);
// otherwise it returns "".
func headerKeyword(item []physicalLine) string {
	left, right, _, ok := splitHeaderColon(item[0].content)
	if !ok || !trimmedEmpty(right) {
		return ""
	}
	return strings.TrimSpace(left)
}

func parseMetaBlock(item []physicalLine) (ast.Meta, error) {
	fields, _, err := splitIntoItems(item[1:], item[0].indent)
	if err != nil {
		return ast.Meta{}, err
	}
	var meta ast.Meta
	for _, f := range fields {
		if len(f) > 1 {
			return ast.Meta{}, newSyntaxError(ErrUnexpectedToken, spanOf(f[1]), "meta fields cannot contain a nested block")
		}
		left, right, colonIdx, ok := splitHeaderColon(f[0].content)
		if !ok {
			return ast.Meta{}, newSyntaxError(ErrUnexpectedToken, spanOf(f[0]), "expected 'name: value' in meta block")
		}
		name := strings.TrimSpace(left)
		valCol := f[0].col + colonIdx + 1
		switch name {
		case "profile":
			switch strings.TrimSpace(right) {
			case "2D":
				meta.Profile = ast.Profile2D
			case "3D":
				meta.Profile = ast.Profile3D
			default:
				return ast.Meta{}, newSyntaxError(ErrUnexpectedToken, values.Span{Line: f[0].lineNo, Column: valCol},
					"profile must be '2D' or '3D'")
			}
		case "version":
			tk, err := singlePropertyToken(right, f[0].lineNo, valCol)
			if err != nil {
				return ast.Meta{}, err
			}
			if tk.kind != tokString {
				return ast.Meta{}, newSyntaxError(ErrUnexpectedToken, values.Span{Line: f[0].lineNo, Column: valCol}, "version must be a string")
			}
			meta.Version = tk.text
		default:
			return ast.Meta{}, newSyntaxError(ErrUnexpectedToken, spanOf(f[0]), "unknown meta field %q", name)
		}
	}
	return meta, nil
}

func parseTokensBlock(item []physicalLine) ([]ast.TokenDef, error) {
	entries, _, err := splitIntoItems(item[1:], item[0].indent)
	if err != nil {
		return nil, err
	}
	var defs []ast.TokenDef
	for _, e := range entries {
		if len(e) > 1 {
			return nil, newSyntaxError(ErrUnexpectedToken, spanOf(e[1]), "token definitions cannot contain a nested block")
		}
		left, right, colonIdx, ok := splitHeaderColon(e[0].content)
		if !ok {
			return nil, newSyntaxError(ErrUnexpectedToken, spanOf(e[0]), "expected 'path: value' in tokens block")
		}
		path, err := values.ParseTokenPath(strings.TrimSpace(left))
		if err != nil {
			return nil, newSyntaxError(ErrUnexpectedToken, spanOf(e[0]), "%s", err)
		}
		valCol := e[0].col + colonIdx + 1
		tv, err := parseTokenValue(right, e[0].lineNo, valCol)
		if err != nil {
			return nil, err
		}
		defs = append(defs, ast.TokenDef{Path: path, Value: tv, Span: spanOf(e[0])})
	}
	return defs, nil
}

func parseTokenValue(text string, lineNo, col int) (ast.TokenValue, error) {
	tk, err := singlePropertyToken(text, lineNo, col)
	if err != nil {
		return ast.TokenValue{}, err
	}
	switch tk.kind {
	case tokColor:
		return ast.TokenValue{Kind: ast.TokenColor, Color: tk.color}, nil
	case tokLength:
		return ast.TokenValue{Kind: ast.TokenLength, Length: values.Length{Magnitude: tk.num, Unit: tk.unit}}, nil
	case tokNumber:
		return ast.TokenValue{Kind: ast.TokenNumber, Number: tk.num}, nil
	case tokString:
		return ast.TokenValue{Kind: ast.TokenString, String: tk.text}, nil
	case tokTokenRef:
		return ast.TokenValue{Kind: ast.TokenReference, Reference: tk.path}, nil
	default:
		return ast.TokenValue{}, newSyntaxError(ErrUnexpectedToken, values.Span{Line: lineNo, Column: col},
			"a token value must be a color, length, number, string, or token reference")
	}
}

// singlePropertyToken lexes text expecting exactly one token (the body
// of a "name: value" line), per spec §4.1's single-valued property
// grammar.
func singlePropertyToken(text string, lineNo, col int) (token, error) {
	lex := newLineLexer(text, col, lineNo)
	toks, err := lex.tokenize()
	if err != nil {
		return token{}, err
	}
	if len(toks) == 0 {
		return token{}, newSyntaxError(ErrUnexpectedEOF, values.Span{Line: lineNo, Column: col}, "expected a value")
	}
	if len(toks) > 1 {
		return token{}, newSyntaxError(ErrUnexpectedToken, values.Span{Line: lineNo, Column: toks[1].col}, "unexpected trailing tokens")
	}
	return toks[0], nil
}

var elementKeywords = map[string]ast.ElementKind{
	"Frame": ast.KindFrame,
	"Text":  ast.KindText,
	"Part":  ast.KindPart,
	"Slot":  ast.KindSlot,
}

func parseElementItem(item []physicalLine) (ast.Element, error) {
	header := item[0]
	left, right, _, ok := splitHeaderColon(header.content)
	if !ok {
		return ast.Element{}, newSyntaxError(ErrUnexpectedToken, spanOf(header), "expected ':' after element header")
	}
	if !trimmedEmpty(right) {
		return ast.Element{}, newSyntaxError(ErrUnexpectedToken, spanOf(header), "an element header cannot have a trailing value")
	}

	lex := newLineLexer(strings.TrimRight(left, " \t"), header.col, header.lineNo)
	toks, err := lex.tokenize()
	if err != nil {
		return ast.Element{}, err
	}
	if len(toks) == 0 {
		return ast.Element{}, newSyntaxError(ErrUnexpectedEOF, spanOf(header), "expected an element type")
	}
	if toks[0].kind != tokIdent {
		return ast.Element{}, newSyntaxError(ErrUnexpectedToken, values.Span{Line: header.lineNo, Column: toks[0].col}, "expected an element type")
	}
	if len(toks) > 2 {
		return ast.Element{}, newSyntaxError(ErrUnexpectedToken, values.Span{Line: header.lineNo, Column: toks[2].col}, "unexpected trailing token in element header")
	}

	el := ast.Element{Span: spanOf(header)}
	if kind, builtin := elementKeywords[toks[0].text]; builtin {
		el.Kind = kind
	} else {
		el.Kind = ast.KindComponent
		el.ComponentName = toks[0].text
	}

	if len(toks) == 2 {
		if toks[1].kind != tokIdent {
			return ast.Element{}, newSyntaxError(ErrUnexpectedToken, values.Span{Line: header.lineNo, Column: toks[1].col}, "expected a name")
		}
		if el.Kind == ast.KindSlot {
			el.SlotName = toks[1].text
		} else {
			el.Name = toks[1].text
		}
	}

	members, _, err := splitIntoItems(item[1:], header.indent)
	if err != nil {
		return ast.Element{}, err
	}
	for _, m := range members {
		mLeft, mRight, colonIdx, ok := splitHeaderColon(m[0].content)
		if !ok {
			return ast.Element{}, newSyntaxError(ErrUnexpectedToken, spanOf(m[0]), "expected ':' in element member")
		}

		if !trimmedEmpty(mRight) {
			if len(m) > 1 {
				return ast.Element{}, newSyntaxError(ErrUnexpectedToken, spanOf(m[1]), "a property cannot contain a nested block")
			}
			valCol := m[0].col + colonIdx + 1
			prop, err := parsePropertyLine(mLeft, mRight, m[0].lineNo, valCol, m[0])
			if err != nil {
				return ast.Element{}, err
			}
			el.Properties = append(el.Properties, prop)
			if string(prop.Name) == "slot" && prop.Value.Kind == ast.ValueEnum {
				el.SlotFill = prop.Value.EnumVal
			}
			continue
		}

		keyword := strings.TrimSpace(mLeft)
		if keyword == "constraints" {
			constraints, err := parseConstraintsBlock(m)
			if err != nil {
				return ast.Element{}, err
			}
			el.Constraints = append(el.Constraints, constraints...)
			continue
		}

		child, err := parseElementItem(m)
		if err != nil {
			return ast.Element{}, err
		}
		el.Children = append(el.Children, child)
	}

	return el, nil
}

func parsePropertyLine(left, right string, lineNo, valCol int, header physicalLine) (ast.Property, error) {
	name := strings.TrimSpace(left)
	if !values.ValidIdentifier(name) {
		return ast.Property{}, newSyntaxError(ErrUnexpectedToken, spanOf(header), "invalid property name %q", name)
	}
	tk, err := singlePropertyToken(right, lineNo, valCol)
	if err != nil {
		return ast.Property{}, err
	}
	pv, err := propertyValueFromToken(tk, lineNo, valCol)
	if err != nil {
		return ast.Property{}, err
	}
	return ast.Property{Name: values.Identifier(name), Value: pv, Span: spanOf(header)}, nil
}

func propertyValueFromToken(tk token, lineNo, col int) (ast.PropertyValue, error) {
	switch tk.kind {
	case tokColor:
		return ast.PropertyValue{Kind: ast.ValueColor, ColorVal: tk.color}, nil
	case tokLength:
		return ast.PropertyValue{Kind: ast.ValueLength, LengthVal: values.Length{Magnitude: tk.num, Unit: tk.unit}}, nil
	case tokNumber:
		return ast.PropertyValue{Kind: ast.ValueNumber, NumberVal: tk.num}, nil
	case tokString:
		return ast.PropertyValue{Kind: ast.ValueString, StringVal: tk.text}, nil
	case tokBool:
		return ast.PropertyValue{Kind: ast.ValueBoolean, BooleanVal: tk.boolean}, nil
	case tokTokenRef:
		return ast.PropertyValue{Kind: ast.ValueTokenRef, TokenPath: tk.path}, nil
	case tokIdent:
		return ast.PropertyValue{Kind: ast.ValueEnum, EnumVal: tk.text}, nil
	default:
		return ast.PropertyValue{}, newSyntaxError(ErrUnexpectedToken, values.Span{Line: lineNo, Column: col}, "invalid property value")
	}
}

func parseConstraintsBlock(item []physicalLine) ([]ast.Constraint, error) {
	entries, _, err := splitIntoItems(item[1:], item[0].indent)
	if err != nil {
		return nil, err
	}
	var constraints []ast.Constraint
	for _, e := range entries {
		if len(e) > 1 {
			return nil, newSyntaxError(ErrUnexpectedToken, spanOf(e[1]), "a constraint cannot contain a nested block")
		}
		line := e[0]
		if !strings.HasPrefix(line.content, "-") {
			return nil, newSyntaxError(ErrUnexpectedToken, spanOf(line), "expected '-' to start a constraint item")
		}
		rest := line.content[1:]
		offset := 1
		for len(rest) > 0 && rest[0] == ' ' {
			rest = rest[1:]
			offset++
		}
		c, err := parseConstraintLine(rest, line.lineNo, line.col+offset)
		if err != nil {
			return nil, err
		}
		constraints = append(constraints, c)
	}
	return constraints, nil
}
