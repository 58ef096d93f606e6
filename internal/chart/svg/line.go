package svg

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/sr-consultoria/farmreport/internal/chart"
	"github.com/sr-consultoria/farmreport/internal/format"
)

// Line renders a multi-series SVG line chart for the given labels.
func Line(width, height int, labels []string, series []Series, opts LineOpts) (template.HTML, error) {
	if len(series) == 0 {
		return "", fmt.Errorf("svg: series required")
	}
	for _, s := range series {
		if len(s.Values) != len(labels) {
			return "", fmt.Errorf("svg: labels length must match series %q", s.Label)
		}
	}
	if len(labels) == 0 {
		return "", fmt.Errorf("svg: labels required")
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	padding := opts.Padding
	if padding <= 0 {
		padding = DefaultPadding
	}
	tickCount := opts.TickCount
	if tickCount <= 0 {
		tickCount = DefaultTicks
	}
	axisFormat := opts.Format
	if axisFormat == nil {
		axisFormat = format.Compact
	}
	axisColor := fallback(opts.AxisColor, "#475569")
	gridColor := fallback(opts.GridColor, "#cbd5e1")

	left := padding + 20
	chartWidth := float64(width) - left - padding
	chartHeight := float64(height) - 2*padding
	if chartWidth <= 0 || chartHeight <= 0 {
		return "", fmt.Errorf("svg: viewport too small")
	}

	minVal, maxVal := seriesBounds(series, false)
	if opts.Limit != nil {
		if *opts.Limit > maxVal {
			maxVal = *opts.Limit
		}
		if *opts.Limit < minVal {
			minVal = *opts.Limit
		}
	}
	scale := chart.NiceScale(minVal, maxVal, padding+chartHeight, padding, tickCount)

	step := chartWidth / float64(len(labels))
	xAt := func(i int) float64 { return left + step*(float64(i)+0.5) }

	var b strings.Builder
	header(&b, width, height, opts.Title, opts.Description, "line")
	grid(&b, scale, left, left+chartWidth, tickCount, axisColor, gridColor, axisFormat)

	if opts.Limit != nil {
		y := scale.Map(*opts.Limit)
		fmt.Fprintf(&b, "<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"#c62828\" stroke-width=\"1.2\" stroke-dasharray=\"6,4\"></line>", left, y, left+chartWidth, y)
		if opts.LimitLabel != "" {
			fmt.Fprintf(&b, "<text x=\"%.2f\" y=\"%.2f\" fill=\"#c62828\" font-size=\"10\" text-anchor=\"end\">%s</text>", left+chartWidth, y-4, esc(opts.LimitLabel))
		}
	}

	for j, s := range series {
		color := seriesColor(j, s.Color)
		var path strings.Builder
		for i, value := range s.Values {
			cmd := "L"
			if i == 0 {
				cmd = "M"
			}
			fmt.Fprintf(&path, "%s%.2f %.2f ", cmd, xAt(i), scale.Map(value))
		}
		fmt.Fprintf(&b, "<path d=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"2\" stroke-linejoin=\"round\" stroke-linecap=\"round\"></path>", strings.TrimSpace(path.String()), color)
		if opts.ShowDots || len(s.Values) == 1 {
			for i, value := range s.Values {
				fmt.Fprintf(&b, "<circle cx=\"%.2f\" cy=\"%.2f\" r=\"3\" fill=\"%s\"></circle>", xAt(i), scale.Map(value), color)
			}
		}
	}

	for i, label := range labels {
		fmt.Fprintf(&b, "<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"middle\">%s</text>", xAt(i), padding+chartHeight+14, axisColor, esc(label))
	}

	legendY := padding - 14
	if legendY < 12 {
		legendY = 12
	}
	legend(&b, left, legendY, series, axisColor)

	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}
