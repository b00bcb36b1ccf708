package values

import (
	"errors"
	"fmt"
	"strconv"
)

// Unit is one of the length units recognized by the source grammar.
type Unit string

const (
	UnitPixel     Unit = "px"
	UnitPoint     Unit = "pt"
	UnitMillimeter Unit = "mm"
	UnitCentimeter Unit = "cm"
	UnitInch      Unit = "in"
	UnitPercent   Unit = "%"
	UnitEm        Unit = "em"
	UnitRem       Unit = "rem"
)

// referenceDPI is the pixel density used to convert absolute physical
// units to pixels (spec §3.1: "96 DPI reference").
const referenceDPI = 96.0

// ErrNoContext is returned by ToPixels when a relative unit (%, em, rem)
// is converted without the context it needs. Per spec §9's open-question
// mandate, this is always an explicit error, never a silent zero.
var ErrNoContext = errors.New("length: unit requires context to convert to pixels")

// Length is a magnitude paired with a unit.
type Length struct {
	Magnitude float64
	Unit      Unit
}

// ValidUnit reports whether u is one of the recognized units.
func ValidUnit(u Unit) bool {
	switch u {
	case UnitPixel, UnitPoint, UnitMillimeter, UnitCentimeter, UnitInch, UnitPercent, UnitEm, UnitRem:
		return true
	default:
		return false
	}
}

// Context supplies the information a relative length needs to resolve
// to an absolute pixel value.
type Context struct {
	// ParentPixels is the parent's pixel value along the relevant axis,
	// required to resolve a Percent length. Ignored otherwise.
	ParentPixels float64
	HasParent    bool

	// FontSizePixels is the font context required to resolve Em/Rem.
	FontSizePixels float64
	HasFont        bool
}

// ToPixels converts the length to pixels. Absolute units (px, pt, mm,
// cm, in) convert unconditionally using the 96dpi reference. Percent
// requires ctx.HasParent; Em/Rem require ctx.HasFont. A relative unit
// converted without the context it needs returns ErrNoContext rather
// than a silent zero.
func (l Length) ToPixels(ctx Context) (float64, error) {
	switch l.Unit {
	case UnitPixel:
		return l.Magnitude, nil
	case UnitPoint:
		return l.Magnitude * referenceDPI / 72.0, nil
	case UnitMillimeter:
		return l.Magnitude * referenceDPI / 25.4, nil
	case UnitCentimeter:
		return l.Magnitude * referenceDPI / 2.54, nil
	case UnitInch:
		return l.Magnitude * referenceDPI, nil
	case UnitPercent:
		if !ctx.HasParent {
			return 0, ErrNoContext
		}
		return l.Magnitude / 100.0 * ctx.ParentPixels, nil
	case UnitEm, UnitRem:
		if !ctx.HasFont {
			return 0, ErrNoContext
		}
		return l.Magnitude * ctx.FontSizePixels, nil
	default:
		return 0, fmt.Errorf("length: unknown unit %q", l.Unit)
	}
}

// Canonical renders the length in its source "value+unit" form, used
// when a length is stringified into a text-content position (spec §4.2).
func (l Length) Canonical() string {
	return strconv.FormatFloat(l.Magnitude, 'g', -1, 64) + string(l.Unit)
}
