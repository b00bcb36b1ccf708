// Package export renders a compiled scene.Scene to SVG. It sits outside
// the compiler proper (nothing here feeds back into pkg/pipeline): a
// host picks a back-end for Result.Scene the way it likes, and this
// package is the one worked example, built the way the teacher's own
// pkg/export/svg.go walks a graph and draws it with ajstarks/svgo.
package export

import (
	"bytes"
	"fmt"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/dshills/seed/pkg/scene"
)

// Options configures SVG rendering.
type Options struct {
	Width  int
	Height int
}

// DefaultOptions mirrors the viewport a layout.Options.DefaultOptions
// document was computed against.
func DefaultOptions() Options {
	return Options{Width: 1024, Height: 768}
}

// Render walks sc.Commands in order and writes an SVG document. The
// command stream already carries cumulative opacity and clip bounds
// (pkg/scene/build.go), so this walk is a straight translation: no
// layout or compositing decision is made here.
func Render(sc *scene.Scene, opts Options) ([]byte, error) {
	if sc == nil {
		return nil, fmt.Errorf("export: nil scene")
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("export: width and height must be positive, got %dx%d", opts.Width, opts.Height)
	}

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(opts.Width, opts.Height)

	w := &walker{canvas: canvas, opacity: 1}
	for _, cmd := range sc.Commands {
		w.apply(cmd)
	}

	canvas.End()
	return buf.Bytes(), nil
}

// RenderToFile is the os.WriteFile-backed convenience the teacher's
// SaveSVGToFile offers, kept under the same 0644 permissions.
func RenderToFile(sc *scene.Scene, path string, opts Options) error {
	data, err := Render(sc, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// walker tracks the running state a flat command stream folds in:
// the current cumulative opacity (applied to every shape drawn until
// the next SetOpacity changes it) and the innermost active clip rect.
// ajstarks/svgo's group/clip-path methods (Gstyle, Def, ClipPath) have
// no precedent anywhere in the retrieved corpus, so rather than guess
// at an ungrounded API, clipping here is approximated by skipping any
// shape whose bounds don't intersect the active clip rect at all —
// close enough for a worked example, not a substitute for a real
// renderer's scissor test.
type walker struct {
	canvas  *svg.SVG
	opacity float64
	clips   []scene.Rect
}

func (w *walker) apply(cmd scene.Command) {
	switch cmd.Kind {
	case scene.KindSetOpacity:
		w.opacity = cmd.Opacity
	case scene.KindPushClip:
		w.clips = append(w.clips, cmd.Bounds)
	case scene.KindPopClip:
		if len(w.clips) > 0 {
			w.clips = w.clips[:len(w.clips)-1]
		}
	case scene.KindRect, scene.KindRoundedRect, scene.KindEllipse, scene.KindPath:
		if w.clipped(cmd.Bounds) {
			return
		}
		w.drawBox(cmd)
	case scene.KindText:
		if w.clipped(cmd.Bounds) {
			return
		}
		w.drawText(cmd)
	case scene.KindShadow:
		if w.clipped(cmd.Bounds) {
			return
		}
		w.drawShadow(cmd)
	}
}

func (w *walker) clipped(b scene.Rect) bool {
	if len(w.clips) == 0 {
		return false
	}
	c := w.clips[len(w.clips)-1]
	return b.X+b.W < c.X || b.X > c.X+c.W || b.Y+b.H < c.Y || b.Y > c.Y+c.H
}

func (w *walker) drawBox(cmd scene.Command) {
	style := w.boxStyle(cmd)
	x, y := int(cmd.Bounds.X), int(cmd.Bounds.Y)
	width, height := int(cmd.Bounds.W), int(cmd.Bounds.H)

	switch cmd.Kind {
	case scene.KindEllipse:
		rx, ry := width/2, height/2
		w.canvas.Ellipse(x+rx, y+ry, rx, ry, style)
	case scene.KindPath:
		xs := make([]int, len(cmd.Points))
		ys := make([]int, len(cmd.Points))
		for i, p := range cmd.Points {
			xs[i] = int(p.X)
			ys[i] = int(p.Y)
		}
		w.canvas.Polygon(xs, ys, style)
	case scene.KindRoundedRect:
		w.canvas.Roundrect(x, y, width, height, int(cmd.CornerRadius), int(cmd.CornerRadius), style)
	default:
		w.canvas.Rect(x, y, width, height, style)
	}
}

func (w *walker) boxStyle(cmd scene.Command) string {
	style := fmt.Sprintf("opacity:%.3f", w.opacity)
	if cmd.HasFill {
		style += fmt.Sprintf(";fill:%s", cmd.Fill.Hex())
	} else {
		style += ";fill:none"
	}
	if cmd.HasStroke {
		style += fmt.Sprintf(";stroke:%s;stroke-width:%g", cmd.Stroke.Hex(), cmd.StrokeWidth)
	}
	return style
}

func (w *walker) drawText(cmd scene.Command) {
	style := fmt.Sprintf("opacity:%.3f;font-size:%gpx", w.opacity, cmd.FontSize)
	if cmd.HasFill {
		style += fmt.Sprintf(";fill:%s", cmd.Fill.Hex())
	}
	baselineY := int(cmd.Bounds.Y + cmd.Baseline)
	w.canvas.Text(int(cmd.Bounds.X), baselineY, cmd.Content, style)
}

// drawShadow has no native SVG blur primitive in the teacher's own
// usage of ajstarks/svgo, so a shadow is approximated as an offset,
// blur-free rect at reduced opacity — visually crude, but it keeps
// the one-command-per-command walk honest about what it draws.
func (w *walker) drawShadow(cmd scene.Command) {
	alpha := w.opacity * 0.35
	style := fmt.Sprintf("opacity:%.3f;fill:%s", alpha, cmd.ShadowColor.Hex())
	x := int(cmd.Bounds.X + cmd.OffsetX)
	y := int(cmd.Bounds.Y + cmd.OffsetY)
	w.canvas.Rect(x, y, int(cmd.Bounds.W), int(cmd.Bounds.H), style)
}
