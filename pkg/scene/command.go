package scene

import "github.com/dshills/seed/pkg/values"

// Kind discriminates the closed set of render commands spec §4.7 names.
type Kind int

const (
	KindRect Kind = iota
	KindRoundedRect
	KindEllipse
	KindPath
	KindText
	KindShadow
	KindPushClip
	KindPopClip
	KindSetOpacity
)

func (k Kind) String() string {
	switch k {
	case KindRect:
		return "Rect"
	case KindRoundedRect:
		return "RoundedRect"
	case KindEllipse:
		return "Ellipse"
	case KindPath:
		return "Path"
	case KindText:
		return "Text"
	case KindShadow:
		return "Shadow"
	case KindPushClip:
		return "PushClip"
	case KindPopClip:
		return "PopClip"
	case KindSetOpacity:
		return "SetOpacity"
	default:
		return "Unknown"
	}
}

// BlendMode is the compositing rule carried on a Shadow command.
// Unknown modes are treated as BlendNormal.
type BlendMode string

const (
	BlendNormal   BlendMode = "normal"
	BlendMultiply BlendMode = "multiply"
	BlendScreen   BlendMode = "screen"
)

// Point is a single path vertex.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in absolute scene coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Command is one entry of a Scene's flattened stream. Fields outside a
// command's Kind are zero-valued and meaningless.
type Command struct {
	Kind Kind

	// Node is the layout node id that produced this command, useful for
	// back-ends that need to correlate a command with its source
	// element (e.g. for picking/debugging overlays).
	Node string

	// Rect/RoundedRect/Ellipse/Shadow/PushClip
	Bounds Rect

	// RoundedRect
	CornerRadius float64

	// Rect/RoundedRect/Ellipse/Path
	Fill    values.Color
	HasFill bool

	Stroke      values.Color
	HasStroke   bool
	StrokeWidth float64

	// Path
	Points []Point
	Closed bool

	// Text
	Content    string
	FontSize   float64
	LineHeight float64
	Baseline   float64

	// Shadow
	ShadowColor  values.Color
	OffsetX      float64
	OffsetY      float64
	Blur         float64
	Blend        BlendMode

	// SetOpacity
	Opacity float64
}

// Scene is the ordered command stream spec §4.7 requires.
type Scene struct {
	Commands []Command
}
