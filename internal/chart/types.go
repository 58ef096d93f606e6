// Package chart lays out bar, line, horizontal bar and donut charts as
// layout ops inside a box on a page.
package chart

import (
	"github.com/sr-consultoria/farmreport/internal/format"
	"github.com/sr-consultoria/farmreport/internal/layout"
)

// Dataset is one named series.
type Dataset struct {
	Label  string
	Values []float64
	Color  *layout.Color
}

// Data is a labelled multi-series chart payload.
type Data struct {
	Labels   []string
	Datasets []Dataset
}

// Slice is one wedge or bar of a distribution chart.
type Slice struct {
	Label string
	Value float64
	Color *layout.Color
}

// Threshold draws a dashed reference line, e.g. a covenant limit.
type Threshold struct {
	Value float64
	Label string
	Color layout.Color
}

// Options tune a single chart.
type Options struct {
	ShowValues  bool
	ShowLegend  bool
	ShowDots    bool
	ValueFormat func(float64) string
	AxisFormat  func(float64) string
	// Domain fixes the value axis for metrics with a known range.
	Domain     *[2]float64
	Thresholds []Threshold
	// DonutRatio is the inner radius as a fraction of the outer one.
	DonutRatio float64
	Ticks      int
}

// Box positions a chart on the page.
type Box struct {
	X, Y, W, H float64
	Title      string
	Options    Options
}

// Palette is the default series color cycle.
var Palette = []layout.Color{
	layout.Hex("#1b5e20"),
	layout.Hex("#f9a825"),
	layout.Hex("#1565c0"),
	layout.Hex("#6d4c41"),
	layout.Hex("#43a047"),
	layout.Hex("#ef6c00"),
	layout.Hex("#00838f"),
	layout.Hex("#8e24aa"),
	layout.Hex("#c62828"),
	layout.Hex("#9e9d24"),
}

var (
	colorText       = layout.Hex("#263238")
	colorMuted      = layout.Hex("#78909c")
	colorGrid       = layout.Hex("#dfe5e8")
	colorAxis       = layout.Hex("#90a4ae")
	colorBackground = layout.Hex("#ffffff")
	colorBorder     = layout.Hex("#e0e6e8")
)

// ColorAt returns the palette color for index i, or override when set.
func ColorAt(i int, override *layout.Color) layout.Color {
	if override != nil {
		return *override
	}
	return Palette[i%len(Palette)]
}

func (o Options) valueFormat() func(float64) string {
	if o.ValueFormat != nil {
		return o.ValueFormat
	}
	return format.Compact
}

func (o Options) axisFormat() func(float64) string {
	if o.AxisFormat != nil {
		return o.AxisFormat
	}
	return format.Compact
}

func (o Options) ticks() int {
	if o.Ticks > 0 {
		return o.Ticks
	}
	return 5
}
