package chart

import (
	"math"

	"github.com/sr-consultoria/farmreport/internal/layout"
)

const (
	titleHeight  = 7.0
	legendHeight = 5.0
	axisWidth    = 16.0
	axisHeight   = 7.0
	padding      = 3.0
)

// plot is the inner drawing area left after title, legend and axes.
type plot struct {
	X, Y, W, H float64
}

func (p plot) bottom() float64 { return p.Y + p.H }

// frame draws the card and title and returns the remaining area.
func frame(page *layout.Page, box Box) plot {
	bg, border := colorBackground, colorBorder
	page.Add(layout.Rect{X: box.X, Y: box.Y, W: box.W, H: box.H, Fill: &bg, Stroke: &border, LineWidth: 0.2, Radius: 2})
	top := box.Y + padding
	if box.Title != "" {
		page.Label(box.X+padding, top, box.W-2*padding, titleHeight-2, layout.Truncate(box.Title, box.W-2*padding, 10, true), 10, true, colorText, layout.AlignLeft)
		top += titleHeight
	}
	return plot{X: box.X + padding, Y: top, W: box.W - 2*padding, H: box.Y + box.H - padding - top}
}

// valueAxis draws horizontal gridlines with tick labels on the left.
func valueAxis(page *layout.Page, area plot, scale Scale, opts Options) {
	format := opts.axisFormat()
	for _, tick := range scale.Ticks(opts.ticks()) {
		y := scale.Map(tick)
		page.Add(layout.Line{X1: area.X, Y1: y, X2: area.X + area.W, Y2: y, Color: colorGrid, Width: 0.15})
		page.Label(area.X-axisWidth, y-2, axisWidth-1.5, 4, format(tick), 6.5, false, colorMuted, layout.AlignRight)
	}
	zero := scale.Zero()
	page.Add(layout.Line{X1: area.X, Y1: zero, X2: area.X + area.W, Y2: zero, Color: colorAxis, Width: 0.3})
}

func thresholds(page *layout.Page, area plot, scale Scale, opts Options) {
	for _, t := range opts.Thresholds {
		if t.Value < scale.Min || t.Value > scale.Max {
			continue
		}
		y := scale.Map(t.Value)
		page.Add(layout.Line{X1: area.X, Y1: y, X2: area.X + area.W, Y2: y, Color: t.Color, Width: 0.35, Dash: []float64{1.5, 1}})
		if t.Label != "" {
			page.Label(area.X+area.W-40, y-4.5, 40, 4, t.Label, 6.5, true, t.Color, layout.AlignRight)
		}
	}
}

// categoryArea reserves room for the legend, value axis and category labels.
func categoryArea(page *layout.Page, area plot, datasets []Dataset, opts Options) plot {
	if opts.ShowLegend && len(datasets) > 0 {
		items := make([]LegendItem, len(datasets))
		for i, ds := range datasets {
			items[i] = LegendItem{Label: ds.Label, Color: ColorAt(i, ds.Color)}
		}
		h := Legend(page, area.X, area.Y, area.W, items)
		area.Y += h
		area.H -= h
	}
	area.X += axisWidth
	area.W -= axisWidth
	area.H -= axisHeight
	area.Y += 2
	area.H -= 2
	return area
}

func valueScale(area plot, datasets []Dataset, opts Options, stacked bool) Scale {
	var lo, hi float64
	if stacked {
		lo, hi = stackedBounds(datasets)
	} else {
		lo, hi = bounds(datasets)
	}
	for _, t := range opts.Thresholds {
		if t.Value > hi {
			hi = t.Value
		}
		if t.Value < lo {
			lo = t.Value
		}
	}
	if opts.Domain != nil {
		if lo >= opts.Domain[0] && hi <= opts.Domain[1] {
			return NewScale(opts.Domain[0], opts.Domain[1], area.bottom(), area.Y)
		}
		// values outside the range widen it
		lo, hi = math.Min(lo, opts.Domain[0]), math.Max(hi, opts.Domain[1])
	}
	return NiceScale(lo, hi, area.bottom(), area.Y, opts.ticks())
}

func categoryLabels(page *layout.Page, area plot, labels []string, band float64) {
	for i, label := range labels {
		x := area.X + band*float64(i)
		page.Label(x, area.bottom()+1, band, 4, layout.Truncate(label, band, 7, false), 7, false, colorText, layout.AlignCenter)
	}
}

func stackedBounds(datasets []Dataset) (float64, float64) {
	n := 0
	for _, ds := range datasets {
		if len(ds.Values) > n {
			n = len(ds.Values)
		}
	}
	lo, hi := 0.0, 0.0
	for i := 0; i < n; i++ {
		pos, neg := 0.0, 0.0
		for _, ds := range datasets {
			if i >= len(ds.Values) {
				continue
			}
			if v := ds.Values[i]; v >= 0 {
				pos += v
			} else {
				neg += v
			}
		}
		if pos > hi {
			hi = pos
		}
		if neg < lo {
			lo = neg
		}
	}
	return lo, hi
}
