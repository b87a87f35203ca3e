// Package wheel builds drawable wagon-wheel figures from delivery sets.
//
// A Figure is a renderer-neutral list of polar primitives. Angles are in
// render-frame degrees (0° east, anti-clockwise), radii are fractions of the
// boundary circle.
package wheel

// Kind identifies one of the three wagon wheels.
type Kind string

// Wheel kinds.
const (
	KindBoundaries   Kind = "boundaries"
	KindCaughtOut    Kind = "caught-out"
	KindScoringAreas Kind = "scoring-areas"
)

// Kinds lists every wheel in page order.
func Kinds() []Kind {
	return []Kind{KindBoundaries, KindCaughtOut, KindScoringAreas}
}

// ParseKind returns the Kind named by s.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Style is a stroke or fill description understood by renderers.
type Style struct {
	Color   string  `json:"color"`
	Width   float64 `json:"width"`
	Opacity float64 `json:"opacity"`
}

// Ray is a radial line at Angle from radius From to To.
type Ray struct {
	Angle float64 `json:"angle"`
	From  float64 `json:"from"`
	To    float64 `json:"to"`
	Style Style   `json:"style"`
}

// Circle is a circle centred on the origin.
type Circle struct {
	Radius float64 `json:"radius"`
	Stroke Style   `json:"stroke"`
	Fill   Style   `json:"fill"`
}

// Label is centred text at a polar position.
type Label struct {
	Angle  float64  `json:"angle"`
	Radius float64  `json:"radius"`
	Lines  []string `json:"lines"`
	Color  string   `json:"color"`
	Size   int      `json:"size"`
}

// LegendEntry is one swatch in the legend.
type LegendEntry struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}

// Figure is one complete wagon wheel.
type Figure struct {
	Kind     Kind          `json:"kind"`
	Title    string        `json:"title,omitempty"`
	Limit    float64       `json:"limit"` // outermost radius shown
	Boundary Circle        `json:"boundary"`
	Rays     []Ray         `json:"rays"`
	Labels   []Label       `json:"labels,omitempty"`
	Legend   []LegendEntry `json:"legend,omitempty"`
}
