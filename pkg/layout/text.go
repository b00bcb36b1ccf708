package layout

import "strings"

// TextRequest is the input to a FontMetrics measurement: the string to
// measure plus the typographic context it is measured under.
type TextRequest struct {
	Content       string
	FontSize      float64
	LineHeight    float64 // multiplier, e.g. 1.2
	LetterSpacing float64
	MaxWidth      float64 // 0 means unconstrained (no wrapping)
}

// TextMetrics is the result of measuring a text run: its bounding box
// plus the baseline offset from its top (SPEC_FULL.md's supplemented
// feature, carried from the original seed-layout/src/text.rs).
type TextMetrics struct {
	Width    float64
	Height   float64
	Baseline float64
}

// FontMetrics measures text. The default implementation,
// HeuristicMetrics, approximates glyph widths without a real font; a
// back-end needing pixel-exact output injects its own implementation
// via Options.Metrics (spec §9).
type FontMetrics interface {
	Measure(req TextRequest) TextMetrics
}

// HeuristicMetrics approximates text extents with a proportional-width
// model (spec §4.6 step 3: "average glyph width = 0.55 x font-size +
// letter-spacing"), word-wrapped greedily when MaxWidth is set.
type HeuristicMetrics struct{}

func (HeuristicMetrics) Measure(req TextRequest) TextMetrics {
	if req.LineHeight <= 0 {
		req.LineHeight = 1.2
	}
	glyphWidth := 0.55*req.FontSize + req.LetterSpacing
	lineHeightPx := req.FontSize * req.LineHeight

	lines := wrapGreedy(req.Content, glyphWidth, req.MaxWidth)
	if len(lines) == 0 {
		lines = []string{""}
	}

	maxWidth := 0.0
	for _, l := range lines {
		w := float64(len([]rune(l))) * glyphWidth
		if w > maxWidth {
			maxWidth = w
		}
	}
	if req.MaxWidth > 0 && maxWidth > req.MaxWidth {
		maxWidth = req.MaxWidth
	}

	height := float64(len(lines)) * lineHeightPx
	// Baseline sits one ascent below the top of the first line; the
	// heuristic approximates ascent as 80% of the font size.
	baseline := req.FontSize * 0.8

	return TextMetrics{Width: maxWidth, Height: height, Baseline: baseline}
}

// wrapGreedy breaks content into lines no wider than maxWidth (0 means
// unconstrained), breaking only at word boundaries and never splitting
// a single overlong word.
func wrapGreedy(content string, glyphWidth, maxWidth float64) []string {
	if maxWidth <= 0 {
		return strings.Split(content, "\n")
	}
	maxRunes := int(maxWidth / glyphWidth)
	if maxRunes < 1 {
		maxRunes = 1
	}

	var lines []string
	for _, paragraph := range strings.Split(content, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		var cur strings.Builder
		curLen := 0
		for _, w := range words {
			wl := len([]rune(w))
			sep := 0
			if curLen > 0 {
				sep = 1
			}
			if curLen > 0 && curLen+sep+wl > maxRunes {
				lines = append(lines, cur.String())
				cur.Reset()
				curLen = 0
				sep = 0
			}
			if curLen > 0 {
				cur.WriteByte(' ')
			}
			cur.WriteString(w)
			curLen += sep + wl
		}
		lines = append(lines, cur.String())
	}
	return lines
}
