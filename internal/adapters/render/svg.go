// Package render draws wagon-wheel figures as SVG documents.
package render

import (
	"bytes"
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/okian/crease/internal/domain/wheel"
)

// Canvas defaults in pixels.
const (
	defaultSize        = 600
	defaultScoringSize = 800
	minSize            = 200
	titleBand          = 30
	legendSwatch       = 12
	legendLineHeight   = 18
	legendPadding      = 12
	legendFontSize     = 12
	titleFontSize      = 14
	lineSpacingFactor  = 1.2
)

// SVGRenderer turns figures into standalone SVG documents.
type SVGRenderer struct {
	size        int
	scoringSize int
	fontFamily  string
}

// NewSVGRenderer creates a renderer with configuration options.
func NewSVGRenderer(opts ...Option) *SVGRenderer {
	r := &SVGRenderer{
		size:        defaultSize,
		scoringSize: defaultScoringSize,
		fontFamily:  "Helvetica,Arial,sans-serif",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ContentType is the media type of the rendered document.
func (r *SVGRenderer) ContentType() string {
	return "image/svg+xml"
}

// Bytes renders fig into a new buffer.
func (r *SVGRenderer) Bytes(fig wheel.Figure) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, fig); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Render writes fig to w as an SVG document.
func (r *SVGRenderer) Render(w io.Writer, fig wheel.Figure) error {
	if fig.Limit <= 0 {
		return fmt.Errorf("%w: %s", ErrEmptyFigure, fig.Kind)
	}
	ew := &errWriter{w: w}
	size := r.size
	if fig.Kind == wheel.KindScoringAreas {
		size = r.scoringSize
	}
	p := newPlane(size, fig.Limit)
	height := size + titleBand + legendBand(len(fig.Legend))

	canvas := svg.New(ew)
	canvas.Start(size, height)
	canvas.Title(string(fig.Kind))
	canvas.Rect(0, 0, size, height, "fill:white")
	canvas.Gstyle("font-family:" + r.fontFamily)

	if fig.Title != "" {
		canvas.Text(size/2, titleBand-10, fig.Title,
			fmt.Sprintf("text-anchor:middle;font-size:%dpx;fill:#333333", titleFontSize))
	}

	// Shift the polar plane below the title band.
	canvas.Translate(0, titleBand)
	drawBoundary(canvas, p, fig.Boundary)
	for _, ray := range fig.Rays {
		x1, y1 := p.point(ray.Angle, ray.From)
		x2, y2 := p.point(ray.Angle, ray.To)
		canvas.Line(x1, y1, x2, y2, strokeStyle(ray.Style))
	}
	for _, l := range fig.Labels {
		drawLabel(canvas, p, l)
	}
	canvas.Gend()

	drawLegend(canvas, size, titleBand+size, fig.Legend)
	canvas.Gend()
	canvas.End()

	if ew.err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, ew.err)
	}
	return nil
}

// plane maps polar figure coordinates onto the square canvas.
type plane struct {
	cx, cy float64
	scale  float64 // pixels per unit radius
}

func newPlane(size int, limit float64) plane {
	half := float64(size) / 2
	return plane{cx: half, cy: half, scale: half / limit}
}

// point converts a render-frame angle (degrees, 0 east, anti-clockwise) and
// radius into canvas pixels. Canvas y grows downwards.
func (p plane) point(angleDeg, r float64) (int, int) {
	rad := angleDeg * math.Pi / 180
	x := p.cx + r*p.scale*math.Cos(rad)
	y := p.cy - r*p.scale*math.Sin(rad)
	return int(math.Round(x)), int(math.Round(y))
}

func (p plane) radius(r float64) int {
	return int(math.Round(r * p.scale))
}

func drawBoundary(canvas *svg.SVG, p plane, c wheel.Circle) {
	if c.Radius <= 0 {
		return
	}
	x, y := p.point(0, 0)
	style := fmt.Sprintf("fill:%s;fill-opacity:%.2f;%s", c.Fill.Color, c.Fill.Opacity, strokeStyle(c.Stroke))
	canvas.Circle(x, y, p.radius(c.Radius), style)
}

func drawLabel(canvas *svg.SVG, p plane, l wheel.Label) {
	if len(l.Lines) == 0 {
		return
	}
	x, y := p.point(l.Angle, l.Radius)
	spacing := int(math.Round(float64(l.Size) * lineSpacingFactor))
	// Centre the block vertically on the anchor point.
	top := y - (len(l.Lines)-1)*spacing/2 + l.Size/3
	canvas.Textlines(x, top, l.Lines, l.Size, spacing, l.Color, "middle")
}

// legendBand is the height reserved under the polar plane for n legend rows.
func legendBand(n int) int {
	if n == 0 {
		return 0
	}
	return n*legendLineHeight + legendPadding
}

// drawLegend stacks the entries in the band that starts at top.
func drawLegend(canvas *svg.SVG, size, top int, entries []wheel.LegendEntry) {
	if len(entries) == 0 {
		return
	}
	x := size - 90
	y := top + legendPadding/2
	for i, e := range entries {
		row := y + i*legendLineHeight
		canvas.Rect(x, row, legendSwatch, legendSwatch, "fill:"+e.Color)
		canvas.Text(x+legendSwatch+6, row+legendSwatch-1, e.Text,
			fmt.Sprintf("font-size:%dpx;fill:#333333", legendFontSize))
	}
}

func strokeStyle(s wheel.Style) string {
	return fmt.Sprintf("stroke:%s;stroke-width:%.1f;stroke-opacity:%.2f;stroke-linecap:round", s.Color, s.Width, s.Opacity)
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(b []byte) (int, error) {
	if e.err != nil {
		return len(b), nil
	}
	n, err := e.w.Write(b)
	if err != nil {
		e.err = err
	}
	return n, err
}
