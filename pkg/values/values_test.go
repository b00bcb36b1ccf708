package values_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/seed/pkg/values"
)

func TestValidIdentifier(t *testing.T) {
	assert.True(t, values.ValidIdentifier("Button"))
	assert.True(t, values.ValidIdentifier("_private"))
	assert.True(t, values.ValidIdentifier("a-b_c9"))
	assert.False(t, values.ValidIdentifier(""))
	assert.False(t, values.ValidIdentifier("9start"))
	assert.False(t, values.ValidIdentifier("-start"))
}

func TestParseTokenPath(t *testing.T) {
	p, err := values.ParseTokenPath("colors.primary")
	require.NoError(t, err)
	assert.Equal(t, values.TokenPath{"colors", "primary"}, p)
	assert.Equal(t, "colors.primary", p.String())

	_, err = values.ParseTokenPath("colors..primary")
	assert.Error(t, err)
}

func TestLengthToPixels(t *testing.T) {
	l := values.Length{Magnitude: 1, Unit: values.UnitInch}
	px, err := l.ToPixels(values.Context{})
	require.NoError(t, err)
	assert.InDelta(t, 96.0, px, 1e-9)

	pct := values.Length{Magnitude: 50, Unit: values.UnitPercent}
	_, err = pct.ToPixels(values.Context{})
	assert.ErrorIs(t, err, values.ErrNoContext)

	px, err = pct.ToPixels(values.Context{HasParent: true, ParentPixels: 200})
	require.NoError(t, err)
	assert.InDelta(t, 100.0, px, 1e-9)
}

func TestColorRoundTrip(t *testing.T) {
	c, err := values.ParseColor("#3B82F6")
	require.NoError(t, err)
	assert.InDelta(t, 0.231, c.R, 0.005)
	assert.InDelta(t, 0.510, c.G, 0.005)
	assert.InDelta(t, 0.965, c.B, 0.005)
	assert.Equal(t, "#3B82F6", c.Hex())
}
