package chart

import "github.com/sr-consultoria/farmreport/internal/layout"

// Line draws one polyline per dataset with points centred in each label band.
func Line(page *layout.Page, box Box, data Data) {
	area := frame(page, box)
	if len(data.Labels) == 0 || len(data.Datasets) == 0 {
		emptyState(page, area)
		return
	}
	area = categoryArea(page, area, data.Datasets, box.Options)
	scale := valueScale(area, data.Datasets, box.Options, false)
	valueAxis(page, area, scale, box.Options)
	thresholds(page, area, scale, box.Options)

	band := area.W / float64(len(data.Labels))
	format := box.Options.valueFormat()
	for j, ds := range data.Datasets {
		color := ColorAt(j, ds.Color)
		points := make([]layout.Point, 0, len(ds.Values))
		for i, v := range ds.Values {
			if i >= len(data.Labels) {
				break
			}
			points = append(points, layout.Point{X: area.X + band*(float64(i)+0.5), Y: scale.Map(v)})
		}
		if len(points) > 1 {
			page.Add(layout.Polyline{Points: points, Color: color, Width: 0.6})
		}
		for i, p := range points {
			if box.Options.ShowDots || len(points) == 1 {
				page.Add(layout.Circle{X: p.X, Y: p.Y, R: 0.9, Fill: color})
			}
			if box.Options.ShowValues {
				page.Label(p.X-band/2, p.Y-5, band, 4, format(ds.Values[i]), 6, false, color, layout.AlignCenter)
			}
		}
	}
	categoryLabels(page, area, data.Labels, band)
}
