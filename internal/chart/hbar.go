package chart

import (
	"math"

	"github.com/sr-consultoria/farmreport/internal/layout"
)

// HorizontalBar draws one bar per slice, largest first as given, with the
// label on the left and the formatted value at the bar end.
func HorizontalBar(page *layout.Page, box Box, slices []Slice) {
	area := frame(page, box)
	if len(slices) == 0 {
		emptyState(page, area)
		return
	}
	labelW := math.Min(area.W*0.3, 45)
	valueW := 22.0
	barArea := area.W - labelW - valueW
	rowH := math.Min(area.H/float64(len(slices)), 9)

	maxVal := 0.0
	for _, s := range slices {
		maxVal = math.Max(maxVal, math.Abs(s.Value))
	}
	scale := NewScale(0, maxVal, area.X+labelW, area.X+labelW+barArea)
	format := box.Options.valueFormat()
	for i, s := range slices {
		y := area.Y + rowH*float64(i)
		color := ColorAt(i, s.Color)
		page.Label(area.X, y, labelW-2, rowH, layout.Truncate(s.Label, labelW-2, 7, false), 7, false, colorText, layout.AlignLeft)
		w := scale.Map(math.Abs(s.Value)) - scale.From
		if w > 0 {
			page.Add(layout.Rect{X: scale.From, Y: y + rowH*0.2, W: w, H: rowH * 0.6, Fill: &color, Radius: 0.8})
		}
		page.Label(scale.From+w+1, y, valueW, rowH, format(s.Value), 7, true, colorText, layout.AlignLeft)
	}
}
