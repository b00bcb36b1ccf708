// Package refs binds every ElementRef that appears in constraints and
// expressions to a concrete element within its scope (spec §4.3).
package refs

import (
	"fmt"

	"github.com/dshills/seed/pkg/values"
)

// UndefinedElement is returned when a Named reference cannot be found
// anywhere in its search scope.
type UndefinedElement struct {
	Name string
	Span values.Span
}

func (e *UndefinedElement) Error() string {
	return fmt.Sprintf("undefined element %q at %s", e.Name, e.Span)
}

// InvalidElementReference is returned for a structurally invalid
// reference: Parent at the document root, Previous on the first child,
// Next on the last child.
type InvalidElementReference struct {
	Reason string
	Span   values.Span
}

func (e *InvalidElementReference) Error() string {
	return fmt.Sprintf("invalid element reference at %s: %s", e.Span, e.Reason)
}
