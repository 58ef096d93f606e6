// Package layout is the drawing-instruction model shared by the page
// builders and the renderers. Builders only append ops; renderers execute
// them, so layout arithmetic stays testable without a PDF engine.
package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Color is an opaque RGB color.
type Color struct {
	R, G, B uint8
}

// RGB builds a Color.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b} }

// Hex parses "#rrggbb" (or "rrggbb"); invalid input yields black.
func Hex(s string) Color {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return Color{}
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

// String renders the color as "#rrggbb".
func (c Color) String() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

// Align is the horizontal text alignment inside a text box.
type Align string

const (
	AlignLeft   Align = "L"
	AlignCenter Align = "C"
	AlignRight  Align = "R"
)

// Point is a 2D coordinate in millimetres from the top-left page corner.
type Point struct {
	X, Y float64
}

// Op is a single drawing instruction.
type Op interface {
	isOp()
}

// Rect draws a rectangle. A nil Fill or Stroke disables that part.
type Rect struct {
	X, Y, W, H float64
	Fill       *Color
	Stroke     *Color
	LineWidth  float64
	Radius     float64
}

// Line draws a straight segment. A non-empty Dash draws it dashed.
type Line struct {
	X1, Y1, X2, Y2 float64
	Color          Color
	Width          float64
	Dash           []float64
}

// Text draws a single line of text vertically centred inside its box.
type Text struct {
	X, Y, W, H float64
	Content    string
	Size       float64
	Bold       bool
	Color      Color
	Align      Align
}

// Polyline draws connected segments.
type Polyline struct {
	Points []Point
	Color  Color
	Width  float64
}

// Polygon fills a closed shape. Alpha in (0,1) draws it translucent.
type Polygon struct {
	Points []Point
	Fill   Color
	Alpha  float64
}

// Circle fills a circle.
type Circle struct {
	X, Y, R float64
	Fill    Color
}

// Wedge fills a pie slice (Inner == 0) or a donut segment. Angles are in
// degrees, 0 at twelve o'clock, growing clockwise.
type Wedge struct {
	CX, CY       float64
	R, Inner     float64
	Start, Sweep float64
	Fill         Color
}

// Image places an encoded raster image.
type Image struct {
	X, Y, W, H float64
	Name       string
	Format     string
	Data       []byte
}

func (Rect) isOp()     {}
func (Line) isOp()     {}
func (Text) isOp()     {}
func (Polyline) isOp() {}
func (Polygon) isOp()  {}
func (Circle) isOp()   {}
func (Wedge) isOp()    {}
func (Image) isOp()    {}

// Points returns the outline of the wedge as a polygon, approximating arcs
// with segments of at most maxStep degrees.
func (w Wedge) Points(maxStep float64) []Point {
	if maxStep <= 0 {
		maxStep = 5
	}
	steps := int(math.Ceil(math.Abs(w.Sweep) / maxStep))
	if steps < 1 {
		steps = 1
	}
	pts := make([]Point, 0, 2*steps+2)
	for i := 0; i <= steps; i++ {
		pts = append(pts, ArcPoint(w.CX, w.CY, w.R, w.Start+w.Sweep*float64(i)/float64(steps)))
	}
	if w.Inner <= 0 {
		return append(pts, Point{X: w.CX, Y: w.CY})
	}
	for i := steps; i >= 0; i-- {
		pts = append(pts, ArcPoint(w.CX, w.CY, w.Inner, w.Start+w.Sweep*float64(i)/float64(steps)))
	}
	return pts
}

// ArcPoint returns the point at angle deg (0 = top, clockwise) on a circle.
func ArcPoint(cx, cy, r, deg float64) Point {
	rad := deg * math.Pi / 180
	return Point{X: cx + r*math.Sin(rad), Y: cy - r*math.Cos(rad)}
}

// TextWidth estimates the rendered width in millimetres of s in a
// Helvetica-like font of the given point size.
func TextWidth(s string, size float64, bold bool) float64 {
	const ptToMM = 0.3528
	factor := 0.5
	if bold {
		factor = 0.54
	}
	return float64(len([]rune(s))) * size * ptToMM * factor
}

// Truncate shortens s with an ellipsis until it fits width.
func Truncate(s string, width, size float64, bold bool) string {
	if TextWidth(s, size, bold) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 1 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "…"
		if TextWidth(candidate, size, bold) <= width {
			return candidate
		}
	}
	return string(runes)
}
