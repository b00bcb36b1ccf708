package tokenpack_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/seed/pkg/tokenpack"
	"github.com/dshills/seed/pkg/tokens"
)

func TestParseTokensFlattensReferencesAndTypes(t *testing.T) {
	yaml := []byte(`
tokens:
  colors.primary: "#3B82F6"
  colors.accent: $colors.primary
  spacing.small: 8px
  app.count: "3"
  app.name: "Seed"
`)

	m, err := tokenpack.ParseTokens(yaml)
	require.NoError(t, err)

	assert.Equal(t, tokens.ValueColor, m["colors.primary"].Kind)
	assert.Equal(t, "#3B82F6", m["colors.primary"].Color.Hex())
	assert.Equal(t, m["colors.primary"], m["colors.accent"])
	assert.Equal(t, tokens.ValueLength, m["spacing.small"].Kind)
	assert.Equal(t, "8px", m["spacing.small"].Length.Canonical())
	assert.Equal(t, tokens.ValueString, m["app.name"].Kind)
	assert.Equal(t, "Seed", m["app.name"].String)
}

func TestParseTokensCircularReferenceErrors(t *testing.T) {
	yaml := []byte(`
tokens:
  a: $b
  b: $a
`)
	_, err := tokenpack.ParseTokens(yaml)
	require.Error(t, err)
	var cyc *tokens.CircularTokenReference
	require.ErrorAs(t, err, &cyc)
}

func TestParseComponentsBuildsRegistry(t *testing.T) {
	yaml := []byte(`
components:
  - name: Card
    props:
      - name: title
        type: String
        required: true
      - name: padding
        type: Length
        default: 16px
    slots:
      - ""
    template: |
      Frame:
        padding: $padding
        constraints:
          - width = 200px
          - height = 100px
`)

	registry, err := tokenpack.ParseComponents(yaml)
	require.NoError(t, err)

	def, ok := registry.Lookup("Card")
	require.True(t, ok)
	require.Len(t, def.Template, 1)

	padding, ok := def.PropDefinitionByName("padding")
	require.True(t, ok)
	require.NotNil(t, padding.Default)
	assert.Equal(t, "16px", padding.Default.LengthVal.Canonical())
}

func TestParseComponentsRejectsMultiRootTemplate(t *testing.T) {
	yaml := []byte(`
components:
  - name: Bad
    template: |
      Frame:
        width: 1px
      Frame:
        width: 2px
`)
	_, err := tokenpack.ParseComponents(yaml)
	require.Error(t, err)
}
