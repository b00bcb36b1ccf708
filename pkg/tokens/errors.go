// Package tokens resolves design-token references against a flattened
// TokenMap: it replaces every TokenRef occurrence in a Document with
// the concrete value it names, transitively following token-to-token
// references first (spec §4.2).
package tokens

import (
	"fmt"
	"strings"

	"github.com/dshills/seed/pkg/values"
)

// UndefinedToken is returned when a TokenRef names a path absent from
// the supplied Map.
type UndefinedToken struct {
	Path values.TokenPath
	Span values.Span
}

func (e *UndefinedToken) Error() string {
	return fmt.Sprintf("undefined token %q at %s", e.Path.String(), e.Span)
}

// CircularTokenReference is returned when flattening the token map
// itself discovers a cycle among token-to-token references.
type CircularTokenReference struct {
	Cycle []string
}

func (e *CircularTokenReference) Error() string {
	return fmt.Sprintf("circular token reference: %s", strings.Join(e.Cycle, " -> "))
}

// InvalidPropertyValue is returned when a token's value kind cannot be
// used at the position its reference occupies (e.g. a Color token
// substituted where an expression expects a Number).
type InvalidPropertyValue struct {
	Path values.TokenPath
	Span values.Span
	Want string
	Got  string
}

func (e *InvalidPropertyValue) Error() string {
	return fmt.Sprintf("token %q at %s: expected %s, got %s", e.Path.String(), e.Span, e.Want, e.Got)
}
