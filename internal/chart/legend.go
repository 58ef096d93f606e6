package chart

import "github.com/sr-consultoria/farmreport/internal/layout"

// LegendItem is one swatch of a legend. Value is an optional right-hand text.
type LegendItem struct {
	Label string
	Value string
	Color layout.Color
}

// Legend lays items out left to right, wrapping at width, and returns the
// height used.
func Legend(page *layout.Page, x, y, width float64, items []LegendItem) float64 {
	const size, rowH, swatch = 7.0, legendHeight, 2.5
	cx, cy := x, y
	for _, item := range items {
		w := swatch + 1.5 + layout.TextWidth(item.Label, size, false) + 5
		if cx > x && cx+w > x+width {
			cx = x
			cy += rowH
		}
		color := item.Color
		page.Add(layout.Rect{X: cx, Y: cy + (rowH-swatch)/2, W: swatch, H: swatch, Fill: &color, Radius: 0.5})
		page.Label(cx+swatch+1.5, cy, w-swatch-1.5, rowH, item.Label, size, false, colorText, layout.AlignLeft)
		cx += w
	}
	return cy + rowH - y
}

// VerticalLegend stacks items one per row with their values right aligned.
func VerticalLegend(page *layout.Page, x, y, width float64, items []LegendItem) float64 {
	const size, rowH, swatch = 7.0, 5.0, 2.5
	for i, item := range items {
		ry := y + rowH*float64(i)
		color := item.Color
		page.Add(layout.Rect{X: x, Y: ry + (rowH-swatch)/2, W: swatch, H: swatch, Fill: &color, Radius: 0.5})
		valueW := 0.0
		if item.Value != "" {
			valueW = 16
			page.Label(x+width-valueW, ry, valueW, rowH, item.Value, size, true, colorText, layout.AlignRight)
		}
		labelW := width - swatch - 1.5 - valueW
		page.Label(x+swatch+1.5, ry, labelW, rowH, layout.Truncate(item.Label, labelW, size, false), size, false, colorText, layout.AlignLeft)
	}
	return rowH * float64(len(items))
}
