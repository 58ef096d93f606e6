// Package svg renders report charts as inline SVG for the HTML pipeline.
package svg

import (
	"fmt"
	"math"
	"strings"

	"github.com/sr-consultoria/farmreport/internal/chart"
)

// Series is one named set of values.
type Series struct {
	Label  string
	Values []float64
	Color  string
}

// Slice is one wedge of a donut or one horizontal bar.
type Slice struct {
	Label string
	Value float64
	Color string
}

// LineOpts customises the line chart renderer.
type LineOpts struct {
	Title       string
	Description string
	AxisColor   string
	GridColor   string
	Padding     float64
	ShowDots    bool
	TickCount   int
	// Limit draws a dashed reference line when non-nil.
	Limit      *float64
	LimitLabel string
	Format     func(float64) string
}

// BarOpts customises the bar chart renderer.
type BarOpts struct {
	Title       string
	Description string
	AxisColor   string
	GridColor   string
	Padding     float64
	TickCount   int
	Stacked     bool
	Format      func(float64) string
}

// DonutOpts customises the donut renderer.
type DonutOpts struct {
	Title       string
	Description string
	// Hole is the inner radius ratio; zero draws a full pie.
	Hole   float64
	Format func(float64) string
}

// Defaults for the report charts.
const (
	DefaultWidth   = 720
	DefaultHeight  = 260
	DefaultPadding = 36.0
	DefaultTicks   = 5
)

func fallback(value, defaultValue string) string {
	if strings.TrimSpace(value) == "" {
		return defaultValue
	}
	return value
}

func seriesColor(i int, s string) string {
	if s != "" {
		return s
	}
	return chart.ColorAt(i, nil).String()
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func makeID(base, suffix string) string {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, strings.ToLower(strings.TrimSpace(base)))
	cleaned = strings.Trim(cleaned, "-")
	if cleaned == "" {
		cleaned = "chart"
	}
	return fmt.Sprintf("%s-%s", cleaned, suffix)
}

func header(b *strings.Builder, width, height int, title, desc, kind string) {
	titleID := makeID(title, kind+"-title")
	descID := makeID(title, kind+"-desc")
	fmt.Fprintf(b, "<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %d %d\" role=\"img\" aria-labelledby=\"%s %s\" font-family=\"Helvetica, Arial, sans-serif\">", width, height, titleID, descID)
	fmt.Fprintf(b, "<title id=\"%s\">%s</title>", titleID, esc(fallback(title, "Gráfico")))
	fmt.Fprintf(b, "<desc id=\"%s\">%s</desc>", descID, esc(fallback(desc, title)))
}

func grid(b *strings.Builder, scale chart.Scale, left, right float64, ticks int, axisColor, gridColor string, format func(float64) string) {
	for _, v := range scale.Ticks(ticks) {
		y := scale.Map(v)
		fmt.Fprintf(b, "<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"0.5\" stroke-dasharray=\"2,4\" aria-hidden=\"true\"></line>", left, y, right, y, gridColor)
		fmt.Fprintf(b, "<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"end\">%s</text>", left-6, y+4, axisColor, esc(format(v)))
	}
	zero := scale.Zero()
	fmt.Fprintf(b, "<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"1\"></line>", left, zero, right, zero, axisColor)
}

func legend(b *strings.Builder, x, y float64, series []Series, axisColor string) {
	for i, s := range series {
		fmt.Fprintf(b, "<rect x=\"%.2f\" y=\"%.2f\" width=\"10\" height=\"10\" rx=\"2\" fill=\"%s\"></rect>", x, y-8, seriesColor(i, s.Color))
		fmt.Fprintf(b, "<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"start\">%s</text>", x+14, y, axisColor, esc(s.Label))
		x += 24 + float64(len([]rune(s.Label)))*5.5
	}
}
