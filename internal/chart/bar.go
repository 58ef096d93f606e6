package chart

import (
	"math"

	"github.com/sr-consultoria/farmreport/internal/layout"
)

// Bar draws grouped vertical bars, one group per label.
func Bar(page *layout.Page, box Box, data Data) {
	area := frame(page, box)
	if len(data.Labels) == 0 || len(data.Datasets) == 0 {
		emptyState(page, area)
		return
	}
	area = categoryArea(page, area, data.Datasets, box.Options)
	scale := valueScale(area, data.Datasets, box.Options, false)
	valueAxis(page, area, scale, box.Options)

	band := area.W / float64(len(data.Labels))
	groupW := band * 0.7
	barW := groupW / float64(len(data.Datasets))
	format := box.Options.valueFormat()
	zero := scale.Zero()
	for i := range data.Labels {
		groupX := area.X + band*float64(i) + (band-groupW)/2
		for j, ds := range data.Datasets {
			if i >= len(ds.Values) {
				continue
			}
			v := ds.Values[i]
			y := scale.Map(v)
			top, h := math.Min(y, zero), math.Abs(zero-y)
			color := ColorAt(j, ds.Color)
			x := groupX + barW*float64(j)
			page.Add(layout.Rect{X: x + 0.3, Y: top, W: barW - 0.6, H: h, Fill: &color})
			if box.Options.ShowValues {
				labelY := top - 4
				if v < 0 {
					labelY = top + h
				}
				page.Label(x-2, labelY, barW+4, 4, format(v), 6, false, colorText, layout.AlignCenter)
			}
		}
	}
	thresholds(page, area, scale, box.Options)
	categoryLabels(page, area, data.Labels, band)
}

// StackedBar draws one bar per label with datasets stacked on top of each
// other; negative values stack downward from zero.
func StackedBar(page *layout.Page, box Box, data Data) {
	area := frame(page, box)
	if len(data.Labels) == 0 || len(data.Datasets) == 0 {
		emptyState(page, area)
		return
	}
	area = categoryArea(page, area, data.Datasets, box.Options)
	scale := valueScale(area, data.Datasets, box.Options, true)
	valueAxis(page, area, scale, box.Options)

	band := area.W / float64(len(data.Labels))
	barW := band * 0.55
	format := box.Options.valueFormat()
	for i := range data.Labels {
		x := area.X + band*float64(i) + (band-barW)/2
		pos, neg := 0.0, 0.0
		for j, ds := range data.Datasets {
			if i >= len(ds.Values) || ds.Values[i] == 0 {
				continue
			}
			v := ds.Values[i]
			var from, to float64
			if v > 0 {
				from, to = pos, pos+v
				pos = to
			} else {
				from, to = neg, neg+v
				neg = to
			}
			y1, y2 := scale.Map(from), scale.Map(to)
			color := ColorAt(j, ds.Color)
			page.Add(layout.Rect{X: x, Y: math.Min(y1, y2), W: barW, H: math.Abs(y2 - y1), Fill: &color})
		}
		if box.Options.ShowValues && pos != 0 {
			page.Label(x-3, scale.Map(pos)-4, barW+6, 4, format(pos), 6, true, colorText, layout.AlignCenter)
		}
	}
	thresholds(page, area, scale, box.Options)
	categoryLabels(page, area, data.Labels, band)
}

func emptyState(page *layout.Page, area plot) {
	page.Label(area.X, area.Y+area.H/2-3, area.W, 6, "Sem dados", 8, false, colorMuted, layout.AlignCenter)
}
