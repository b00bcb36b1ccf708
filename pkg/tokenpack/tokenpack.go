// Package tokenpack loads design-token and component-registry packs
// from YAML files. This is ambient configuration, not part of the
// core (spec §6.3: "no network, filesystem, or environment state is
// consulted by the core") — callers load a pack once, up front, and
// pass the resulting tokens.Map / ast.Registry into pkg/pipeline as
// read-only compile inputs (spec §3.5, §5).
package tokenpack

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/seed/pkg/ast"
	"github.com/dshills/seed/pkg/parser"
	"github.com/dshills/seed/pkg/tokens"
	"github.com/dshills/seed/pkg/values"
)

// TokenFile is the on-disk shape of a token pack: a flat mapping from
// dotted path to a token-value lexeme, parsed with the same grammar
// as a source document's tokens: block (spec §6.1's token-value
// production), so "#RRGGBB", "16px", "42", "\"text\"", and "$a.b" all
// mean what they mean in seed source.
type TokenFile struct {
	Tokens map[string]string `yaml:"tokens"`
}

// LoadTokens reads and flattens a token pack file into a tokens.Map.
func LoadTokens(path string) (tokens.Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading token pack: %w", err)
	}
	return ParseTokens(data)
}

// ParseTokens flattens a token pack already read into memory, useful
// for tests and for packs embedded in another format.
func ParseTokens(data []byte) (tokens.Map, error) {
	var file TokenFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing token pack YAML: %w", err)
	}

	defs := make([]ast.TokenDef, 0, len(file.Tokens))
	paths := make([]string, 0, len(file.Tokens))
	for p := range file.Tokens {
		paths = append(paths, p)
	}
	sort.Strings(paths) // deterministic even though map order is iteration-random

	for _, p := range paths {
		path, err := values.ParseTokenPath(p)
		if err != nil {
			return nil, fmt.Errorf("token pack: %w", err)
		}
		tv, err := tokenValue(file.Tokens[p])
		if err != nil {
			return nil, fmt.Errorf("token pack: path %q: %w", p, err)
		}
		defs = append(defs, ast.TokenDef{Path: path, Value: tv})
	}

	m, err := tokens.Flatten(defs)
	if err != nil {
		return nil, fmt.Errorf("token pack: %w", err)
	}
	return m, nil
}

// tokenValue parses one pack scalar with the seed token-value grammar.
// YAML has already consumed any surrounding quotes, so a scalar that
// does not begin one of the grammar's typed lexemes (#color, $ref, a
// signed number/length, or an explicit "quoted" string) is taken as a
// plain String value rather than rejected.
func tokenValue(raw string) (ast.TokenValue, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ast.TokenValue{Kind: ast.TokenString}, nil
	}
	switch c := trimmed[0]; {
	case c == '#' || c == '$' || c == '"' || c == '+' || c == '-' || (c >= '0' && c <= '9'):
		return parser.ParseTokenValue(trimmed)
	default:
		return ast.TokenValue{Kind: ast.TokenString, String: trimmed}, nil
	}
}

// ComponentFile is the on-disk shape of a component registry pack: one
// entry per definition, with props/slots declared structurally and
// Template given as literal seed markup (the element grammar itself
// has no production for defining a ComponentDefinition, only for
// instantiating one — spec §6.1's `component` rule is instance syntax
// — so a definition's body is parsed via parser.ParseElements the same
// way a CLI or test harness would construct one programmatically).
type ComponentFile struct {
	Components []ComponentEntry `yaml:"components"`
}

// ComponentEntry is one ComponentDefinition in source form.
type ComponentEntry struct {
	Name     string      `yaml:"name"`
	Props    []PropEntry `yaml:"props"`
	Slots    []string    `yaml:"slots"`
	Template string      `yaml:"template"`
}

// PropEntry is one PropDefinition in source form.
type PropEntry struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Required bool   `yaml:"required"`
	Default  string `yaml:"default"`
}

var propTypes = map[string]ast.PropType{
	"Color":   ast.PropTypeColor,
	"Length":  ast.PropTypeLength,
	"Number":  ast.PropTypeNumber,
	"String":  ast.PropTypeString,
	"Boolean": ast.PropTypeBoolean,
	"Any":     ast.PropTypeAny,
}

// LoadComponents reads and builds an ast.Registry from a component
// pack file.
func LoadComponents(path string) (*ast.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading component pack: %w", err)
	}
	return ParseComponents(data)
}

// ParseComponents builds an ast.Registry from a component pack already
// read into memory.
func ParseComponents(data []byte) (*ast.Registry, error) {
	var file ComponentFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing component pack YAML: %w", err)
	}

	registry := ast.NewRegistry()
	for _, entry := range file.Components {
		def, err := buildDefinition(entry)
		if err != nil {
			return nil, fmt.Errorf("component pack: component %q: %w", entry.Name, err)
		}
		registry.Register(def)
	}
	return registry, nil
}

func buildDefinition(entry ComponentEntry) (*ast.ComponentDefinition, error) {
	elements, err := parser.ParseElements(entry.Template)
	if err != nil {
		return nil, fmt.Errorf("template: %w", err)
	}
	if len(elements) != 1 {
		return nil, fmt.Errorf("template must have exactly one root element, got %d", len(elements))
	}

	props := make([]ast.PropDefinition, 0, len(entry.Props))
	for _, p := range entry.Props {
		pt, ok := propTypes[p.Type]
		if !ok {
			return nil, fmt.Errorf("prop %q: unknown type %q", p.Name, p.Type)
		}
		pd := ast.PropDefinition{Name: values.Identifier(p.Name), Type: pt, Required: p.Required}
		if p.Default != "" {
			dv, err := parser.ParsePropertyValue(p.Default)
			if err != nil {
				return nil, fmt.Errorf("prop %q: default: %w", p.Name, err)
			}
			pd.Default = &dv
		}
		props = append(props, pd)
	}

	slots := make([]ast.SlotDefinition, 0, len(entry.Slots))
	for _, s := range entry.Slots {
		slots = append(slots, ast.SlotDefinition{Name: s})
	}

	return &ast.ComponentDefinition{
		Name:     entry.Name,
		Props:    props,
		Slots:    slots,
		Template: elements,
	}, nil
}
