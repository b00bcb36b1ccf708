package parser_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/seed/pkg/ast"
	"github.com/dshills/seed/pkg/parser"
	"github.com/dshills/seed/pkg/values"
)

// ignoreSpan drops every Span field from a go-cmp comparison, regardless
// of which AST type carries it, so two documents can be compared for
// structural equality "modulo spans" (spec §8.1's parse idempotence law).
var ignoreSpan = cmp.FilterPath(func(p cmp.Path) bool {
	f, ok := p.Last().(cmp.StructField)
	return ok && f.Name() == "Span"
}, cmp.Ignore())

// TestParseIdempotentUnderFormatting checks spec §8.1's "parse idempotence
// under formatting" law directly: two sources that differ only in
// incidental whitespace and comments must parse to structurally equal
// Documents once Span positions (which necessarily shift) are ignored.
func TestParseIdempotentUnderFormatting(t *testing.T) {
	compact := "Frame Button:\n" +
		"  fill: #3B82F6\n" +
		"  constraints:\n" +
		"    - width = 120px\n" +
		"    - height = 40px\n"

	reformatted := "// a leading comment shifts every later span\n" +
		"\n" +
		"Frame Button:\n" +
		"  fill: #3B82F6\n" +
		"\n" +
		"  constraints:\n" +
		"    - width = 120px\n" +
		"    - height = 40px\n" +
		"// trailing comment\n"

	docA, err := parser.Parse(compact)
	require.NoError(t, err)
	docB, err := parser.Parse(reformatted)
	require.NoError(t, err)

	if diff := cmp.Diff(docA.Elements, docB.Elements, ignoreSpan); diff != "" {
		t.Fatalf("documents differ (modulo spans): %s", diff)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	doc, err := parser.Parse("")
	require.NoError(t, err)
	assert.Empty(t, doc.Elements)
}

func TestParseCommentOnlyDocument(t *testing.T) {
	doc, err := parser.Parse("// just a comment\n  // another, indented\n")
	require.NoError(t, err)
	assert.Empty(t, doc.Elements)
}

// Scenario A from spec §8.3: a simple frame with explicit constraints.
func TestParseScenarioA_SimpleFrame(t *testing.T) {
	src := "Frame Button:\n" +
		"  fill: #3B82F6\n" +
		"  constraints:\n" +
		"    - width = 120px\n" +
		"    - height = 40px\n"

	doc, err := parser.Parse(src)
	require.NoError(t, err)
	require.Len(t, doc.Elements, 1)

	el := doc.Elements[0]
	assert.Equal(t, ast.KindFrame, el.Kind)
	assert.Equal(t, "Button", el.Name)
	require.Len(t, el.Properties, 1)
	assert.Equal(t, values.Identifier("fill"), el.Properties[0].Name)
	assert.Equal(t, ast.ValueColor, el.Properties[0].Value.Kind)

	require.Len(t, el.Constraints, 2)
	assert.Equal(t, ast.ConstraintEquality, el.Constraints[0].Kind)
	assert.Equal(t, values.Identifier("width"), el.Constraints[0].Property)
	assert.Equal(t, ast.PriorityRequired, el.Constraints[0].Priority)
	require.NotNil(t, el.Constraints[0].Expr)
	assert.Equal(t, ast.ValueLength, el.Constraints[0].Expr.Literal.Kind)
	assert.Equal(t, 120.0, el.Constraints[0].Expr.Literal.LengthVal.Magnitude)
	assert.Equal(t, values.UnitPixel, el.Constraints[0].Expr.Literal.LengthVal.Unit)
}

// Scenario B from spec §8.3: an unresolved token reference is preserved
// verbatim by the parser (resolution happens in a later stage).
func TestParseScenarioB_TokenReferencePreserved(t *testing.T) {
	src := "Frame:\n" +
		"  fill: $colors.primary\n" +
		"  constraints:\n" +
		"    - width = 10px\n" +
		"    - height = 10px\n"

	doc, err := parser.Parse(src)
	require.NoError(t, err)
	require.Len(t, doc.Elements, 1)

	fill := doc.Elements[0].Properties[0]
	require.Equal(t, ast.ValueTokenRef, fill.Value.Kind)
	assert.Equal(t, values.TokenPath{"colors", "primary"}, fill.Value.TokenPath)
}

// Scenario C from spec §8.3: component instantiation syntax.
func TestParseScenarioC_ComponentInstance(t *testing.T) {
	doc, err := parser.Parse("Card:\n  title: \"Hello\"\n")
	require.NoError(t, err)
	require.Len(t, doc.Elements, 1)

	el := doc.Elements[0]
	assert.Equal(t, ast.KindComponent, el.Kind)
	assert.Equal(t, "Card", el.ComponentName)
	require.Len(t, el.Properties, 1)
	assert.Equal(t, values.Identifier("title"), el.Properties[0].Name)
	assert.Equal(t, "Hello", el.Properties[0].Value.StringVal)
}

// Scenario E from spec §8.3: priority suffixes on constraints.
func TestParseScenarioE_ConstraintPriority(t *testing.T) {
	doc, err := parser.Parse("Frame:\n" +
		"  constraints:\n" +
		"    - width = 100px @medium\n" +
		"    - width = 200px @high\n")
	require.NoError(t, err)

	cs := doc.Elements[0].Constraints
	require.Len(t, cs, 2)
	assert.Equal(t, ast.PriorityMedium, cs[0].Priority)
	assert.Equal(t, ast.PriorityHigh, cs[1].Priority)
}

// Scenario F from spec §8.3: relative constraint with a gap clause.
func TestParseScenarioF_RelativeConstraint(t *testing.T) {
	doc, err := parser.Parse("Frame B:\n" +
		"  constraints:\n" +
		"    - below A, gap: 10px\n" +
		"    - width = 100px\n" +
		"    - height = 40px\n")
	require.NoError(t, err)

	c := doc.Elements[0].Constraints[0]
	assert.Equal(t, ast.ConstraintRelative, c.Kind)
	assert.Equal(t, ast.RelativeBelow, c.Relation)
	require.NotNil(t, c.Target)
	assert.Equal(t, ast.RefNamed, c.Target.Kind)
	assert.Equal(t, "A", c.Target.Name)
	require.True(t, c.HasGap)
	assert.Equal(t, 10.0, c.Gap.Magnitude)
}

func TestParseNestedChildrenAndSlots(t *testing.T) {
	src := "Frame Card:\n" +
		"  Text Title:\n" +
		"    content: \"Hi\"\n" +
		"  Slot body:\n"

	doc, err := parser.Parse(src)
	require.NoError(t, err)
	require.Len(t, doc.Elements, 1)

	card := doc.Elements[0]
	require.Len(t, card.Children, 2)
	assert.Equal(t, ast.KindText, card.Children[0].Kind)
	assert.Equal(t, "Title", card.Children[0].Name)
	assert.Equal(t, ast.KindSlot, card.Children[1].Kind)
	assert.Equal(t, "body", card.Children[1].SlotName)
}

func TestParseMetaAndTokensBlocks(t *testing.T) {
	src := "meta:\n" +
		"  profile: 3D\n" +
		"  version: \"1.0\"\n" +
		"tokens:\n" +
		"  colors.primary: #FF0000\n" +
		"  spacing.gap: 8px\n" +
		"Frame:\n" +
		"  constraints:\n" +
		"    - width = 1px\n"

	doc, err := parser.Parse(src)
	require.NoError(t, err)
	require.NotNil(t, doc.Meta)
	assert.Equal(t, ast.Profile3D, doc.Meta.Profile)
	assert.Equal(t, "1.0", doc.Meta.Version)

	require.Len(t, doc.Tokens, 2)
	assert.Equal(t, values.TokenPath{"colors", "primary"}, doc.Tokens[0].Path)
	assert.Equal(t, ast.TokenColor, doc.Tokens[0].Value.Kind)
	assert.Equal(t, values.TokenPath{"spacing", "gap"}, doc.Tokens[1].Path)
	assert.Equal(t, ast.TokenLength, doc.Tokens[1].Value.Kind)
}

func TestParseInvalidIndentationMismatchedSiblings(t *testing.T) {
	src := "Frame Outer:\n" +
		"  Text A:\n" +
		"    content: \"a\"\n" +
		"   Text B:\n" + // 3 spaces: neither the block indent (2) nor deeper
		"    content: \"b\"\n"

	_, err := parser.Parse(src)
	require.Error(t, err)
	synErr, ok := err.(*parser.SyntaxError)
	require.True(t, ok)
	assert.Equal(t, parser.ErrInvalidIndentation, synErr.Kind)
}

func TestParseTabsInIndentationRejected(t *testing.T) {
	_, err := parser.Parse("Frame:\n\t\tfill: #000000\n")
	require.Error(t, err)
	synErr, ok := err.(*parser.SyntaxError)
	require.True(t, ok)
	assert.Equal(t, parser.ErrInvalidIndentation, synErr.Kind)
}

func TestParseUnterminatedStringReportsLineAndColumn(t *testing.T) {
	_, err := parser.Parse("Text:\n  content: \"unterminated\n")
	require.Error(t, err)
	synErr, ok := err.(*parser.SyntaxError)
	require.True(t, ok)
	assert.Equal(t, parser.ErrUnterminatedString, synErr.Kind)
	assert.Equal(t, 2, synErr.Line)
}

func TestParseConstraintMissingDashIsUnexpectedToken(t *testing.T) {
	src := "Frame:\n" +
		"  constraints:\n" +
		"    width = 10px\n"

	_, err := parser.Parse(src)
	require.Error(t, err)
	synErr, ok := err.(*parser.SyntaxError)
	require.True(t, ok)
	assert.Equal(t, parser.ErrUnexpectedToken, synErr.Kind)
}

func TestParseElements_TemplateBodyFragment(t *testing.T) {
	els, err := parser.ParseElements("Frame:\n  width: 200px\n  height: 100px\n  padding: $padding\n")
	require.NoError(t, err)
	require.Len(t, els, 1)
	assert.Equal(t, ast.KindFrame, els[0].Kind)
	require.Len(t, els[0].Properties, 3)
}

func TestRenderCaretPointsAtColumn(t *testing.T) {
	_, err := parser.Parse("Frame:\n  fill: #zz\n")
	require.Error(t, err)
	synErr, ok := err.(*parser.SyntaxError)
	require.True(t, ok)

	rendered := parser.RenderCaret("Frame:\n  fill: #zz\n", synErr)
	assert.Contains(t, rendered, "^")
	assert.Contains(t, rendered, "fill: #zz")
}
