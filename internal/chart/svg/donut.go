package svg

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/sr-consultoria/farmreport/internal/chart"
	"github.com/sr-consultoria/farmreport/internal/format"
	"github.com/sr-consultoria/farmreport/internal/layout"
)

// Donut renders a ring (or pie) chart with a percentage legend on the right.
func Donut(width, height int, slices []Slice, opts DonutOpts) (template.HTML, error) {
	if len(slices) == 0 {
		return "", fmt.Errorf("svg: slices required")
	}
	if width <= 0 {
		width = 480
	}
	if height <= 0 {
		height = DefaultHeight
	}
	values := make([]float64, len(slices))
	total := 0.0
	for i, s := range slices {
		values[i] = s.Value
		if s.Value > 0 {
			total += s.Value
		}
	}
	if total <= 0 {
		return "", fmt.Errorf("svg: slices must have a positive total")
	}

	r := float64(height)/2 - 12
	cx, cy := r+12, float64(height)/2
	inner := r * opts.Hole

	var b strings.Builder
	header(&b, width, height, opts.Title, opts.Description, "donut")
	for i, a := range chart.SliceAngles(values) {
		if a.Sweep <= 0 {
			continue
		}
		color := seriesColor(i, slices[i].Color)
		if a.Sweep >= 359.999 {
			fmt.Fprintf(&b, "<circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=\"%s\"></circle>", cx, cy, r, color)
			continue
		}
		fmt.Fprintf(&b, "<path d=\"%s\" fill=\"%s\" stroke=\"#ffffff\" stroke-width=\"1\"><title>%s</title></path>", wedgePath(cx, cy, r, inner, a), color, esc(slices[i].Label))
	}
	if inner > 0 {
		fmt.Fprintf(&b, "<circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=\"#ffffff\"></circle>", cx, cy, inner)
		valueFormat := opts.Format
		if valueFormat == nil {
			valueFormat = format.Compact
		}
		fmt.Fprintf(&b, "<text x=\"%.2f\" y=\"%.2f\" fill=\"#263238\" font-size=\"14\" font-weight=\"bold\" text-anchor=\"middle\">%s</text>", cx, cy+5, esc(valueFormat(total)))
	}

	legendX := cx + r + 24
	legendY := cy - float64(len(slices))*10 + 10
	for i, s := range slices {
		y := legendY + float64(i)*20
		pct := 0.0
		if s.Value > 0 {
			pct = s.Value / total * 100
		}
		fmt.Fprintf(&b, "<rect x=\"%.2f\" y=\"%.2f\" width=\"10\" height=\"10\" rx=\"2\" fill=\"%s\"></rect>", legendX, y-9, seriesColor(i, s.Color))
		fmt.Fprintf(&b, "<text x=\"%.2f\" y=\"%.2f\" fill=\"#263238\" font-size=\"11\">%s <tspan font-weight=\"bold\">%s</tspan></text>", legendX+16, y, esc(s.Label), esc(format.Percent(pct, 1)))
	}
	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}

func wedgePath(cx, cy, r, inner float64, a chart.Angle) string {
	large := 0
	if a.Sweep > 180 {
		large = 1
	}
	start := layout.ArcPoint(cx, cy, r, a.Start)
	end := layout.ArcPoint(cx, cy, r, a.Start+a.Sweep)
	if inner <= 0 {
		return fmt.Sprintf("M%.2f %.2f L%.2f %.2f A%.2f %.2f 0 %d 1 %.2f %.2f Z", cx, cy, start.X, start.Y, r, r, large, end.X, end.Y)
	}
	innerEnd := layout.ArcPoint(cx, cy, inner, a.Start+a.Sweep)
	innerStart := layout.ArcPoint(cx, cy, inner, a.Start)
	return fmt.Sprintf("M%.2f %.2f A%.2f %.2f 0 %d 1 %.2f %.2f L%.2f %.2f A%.2f %.2f 0 %d 0 %.2f %.2f Z",
		start.X, start.Y, r, r, large, end.X, end.Y, innerEnd.X, innerEnd.Y, inner, inner, large, innerStart.X, innerStart.Y)
}
