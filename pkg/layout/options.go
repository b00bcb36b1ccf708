package layout

// Options configures a single compute_layout call (spec §6.3's
// LayoutOptions).
type Options struct {
	ViewportWidth     float64
	ViewportHeight    float64
	DefaultFontSize   float64
	DefaultLineHeight float64

	// Metrics measures Text elements. If nil, HeuristicMetrics is used
	// (spec §9's "the software text metric is a heuristic" open
	// question, resolved by making the collaborator injectable).
	Metrics FontMetrics
}

// DefaultOptions returns the spec §6.3 defaults: 1024x768 viewport,
// 16px font, 1.2x line height.
func DefaultOptions() Options {
	return Options{
		ViewportWidth:     1024,
		ViewportHeight:    768,
		DefaultFontSize:   16,
		DefaultLineHeight: 1.2,
	}
}

func (o Options) metrics() FontMetrics {
	if o.Metrics != nil {
		return o.Metrics
	}
	return HeuristicMetrics{}
}
