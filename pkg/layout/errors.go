package layout

import (
	"fmt"

	"github.com/dshills/seed/pkg/values"
)

// CycleDetected is returned when a layout-mode dependency is recursive
// (A's intrinsic size depends on B's, which depends on A's).
type CycleDetected struct {
	Cycle []string
}

func (e *CycleDetected) Error() string {
	return fmt.Sprintf("layout cycle detected: %v", e.Cycle)
}

// InvalidLayoutMode is returned for a nonsensical layout combination,
// e.g. an explicit child position constraint inside a row/column
// container, or an unrecognized "layout" property value.
type InvalidLayoutMode struct {
	Node   string
	Reason string
}

func (e *InvalidLayoutMode) Error() string {
	return fmt.Sprintf("invalid layout mode on %s: %s", e.Node, e.Reason)
}

// InvalidPropertyValue is returned when a property's value cannot be
// used at the point layout needs it: most commonly a %, em, or rem
// Length converted without the context it requires (spec §9's open
// question: always an explicit error, never a silent zero).
type InvalidPropertyValue struct {
	Node    string
	Prop    string
	Span    values.Span
	Wrapped error
}

func (e *InvalidPropertyValue) Error() string {
	return fmt.Sprintf("invalid value for %s.%s at %s: %v", e.Node, e.Prop, e.Span, e.Wrapped)
}

func (e *InvalidPropertyValue) Unwrap() error {
	return e.Wrapped
}

// UnsupportedExpression is returned when a constraint expression uses a
// function call whose arguments cannot be folded to constants; the
// solver's tableau is strictly linear (spec §4.5), so a non-constant
// function call has no well-defined lowering.
type UnsupportedExpression struct {
	Node string
	Span values.Span
}

func (e *UnsupportedExpression) Error() string {
	return fmt.Sprintf("unsupported expression on %s at %s: function calls must be constant-foldable", e.Node, e.Span)
}
