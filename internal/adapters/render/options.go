package render

// Option applies a configuration option to the SVGRenderer.
type Option func(*SVGRenderer)

// WithSize sets the canvas edge length in pixels for ray wheels.
func WithSize(px int) Option {
	return func(r *SVGRenderer) {
		if px >= minSize {
			r.size = px
		}
	}
}

// WithScoringSize sets the canvas edge length for the scoring-areas wheel,
// which carries more text.
func WithScoringSize(px int) Option {
	return func(r *SVGRenderer) {
		if px >= minSize {
			r.scoringSize = px
		}
	}
}

// WithFontFamily sets the CSS font family for all text.
func WithFontFamily(family string) Option {
	return func(r *SVGRenderer) {
		if family != "" {
			r.fontFamily = family
		}
	}
}
