package chart

import (
	"math"

	"github.com/sr-consultoria/farmreport/internal/format"
	"github.com/sr-consultoria/farmreport/internal/layout"
)

// Angle is the start and sweep of one slice in degrees.
type Angle struct {
	Start, Sweep float64
}

// SliceAngles converts values into consecutive wedges starting at twelve
// o'clock. Negative values count as zero; an all-zero input yields
// zero-sweep wedges.
func SliceAngles(values []float64) []Angle {
	total := 0.0
	for _, v := range values {
		if v > 0 {
			total += v
		}
	}
	out := make([]Angle, len(values))
	start := 0.0
	for i, v := range values {
		sweep := 0.0
		if total > 0 && v > 0 {
			sweep = v / total * 360
		}
		out[i] = Angle{Start: start, Sweep: sweep}
		start += sweep
	}
	return out
}

// Donut draws a ring chart with a percentage legend to its right.
func Donut(page *layout.Page, box Box, slices []Slice) {
	if box.Options.DonutRatio <= 0 {
		box.Options.DonutRatio = 0.58
	}
	wheel(page, box, slices)
}

// Pie draws a full pie with a percentage legend to its right.
func Pie(page *layout.Page, box Box, slices []Slice) {
	box.Options.DonutRatio = 0
	wheel(page, box, slices)
}

func wheel(page *layout.Page, box Box, slices []Slice) {
	area := frame(page, box)
	values := make([]float64, len(slices))
	total := 0.0
	for i, s := range slices {
		values[i] = s.Value
		if s.Value > 0 {
			total += s.Value
		}
	}
	if total <= 0 {
		emptyState(page, area)
		return
	}
	r := math.Min(area.H, area.W*0.5) / 2
	cx, cy := area.X+r+2, area.Y+area.H/2
	inner := r * box.Options.DonutRatio
	for i, a := range SliceAngles(values) {
		if a.Sweep <= 0 {
			continue
		}
		page.Add(layout.Wedge{CX: cx, CY: cy, R: r, Inner: inner, Start: a.Start, Sweep: a.Sweep, Fill: ColorAt(i, slices[i].Color)})
	}
	if inner > 0 {
		page.Label(cx-inner, cy-3, 2*inner, 6, box.Options.valueFormat()(total), 8, true, colorText, layout.AlignCenter)
	}

	items := make([]LegendItem, len(slices))
	for i, s := range slices {
		pct := 0.0
		if s.Value > 0 {
			pct = s.Value / total * 100
		}
		items[i] = LegendItem{Label: s.Label, Value: format.Percent(pct, 1), Color: ColorAt(i, s.Color)}
	}
	legendX := cx + r + 6
	VerticalLegend(page, legendX, area.Y+math.Max(0, area.H/2-float64(len(items))*2.5), area.X+area.W-legendX, items)
}
