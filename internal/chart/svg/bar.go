package svg

import (
	"fmt"
	"html/template"
	"math"
	"strings"

	"github.com/sr-consultoria/farmreport/internal/chart"
	"github.com/sr-consultoria/farmreport/internal/format"
)

// Bars renders grouped (or stacked) vertical bars, one group per label.
func Bars(width, height int, labels []string, series []Series, opts BarOpts) (template.HTML, error) {
	if len(series) == 0 {
		return "", fmt.Errorf("svg: at least one series required")
	}
	if len(labels) == 0 {
		return "", fmt.Errorf("svg: labels required")
	}
	for _, s := range series {
		if len(s.Values) != len(labels) {
			return "", fmt.Errorf("svg: series %q length must match labels", s.Label)
		}
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
	valueFormat := opts.Format
	if valueFormat == nil {
		valueFormat = format.Compact
	}
	axisColor := fallback(opts.AxisColor, "#475569")
	gridColor := fallback(opts.GridColor, "#cbd5e1")

	left := padding + 20
	chartWidth := float64(width) - left - padding
	chartHeight := float64(height) - 2*padding
	if chartWidth <= 0 || chartHeight <= 0 {
		return "", fmt.Errorf("svg: viewport too small")
	}

	minVal, maxVal := seriesBounds(series, opts.Stacked)
	scale := chart.NiceScale(minVal, maxVal, padding+chartHeight, padding, tickCount)

	var b strings.Builder
	header(&b, width, height, opts.Title, opts.Description, "bar")
	grid(&b, scale, left, left+chartWidth, tickCount, axisColor, gridColor, format.Compact)

	groupWidth := chartWidth / float64(len(labels))
	for i, label := range labels {
		baseX := left + float64(i)*groupWidth
		if opts.Stacked {
			barWidth := groupWidth * 0.55
			x := baseX + (groupWidth-barWidth)/2
			pos, neg := 0.0, 0.0
			for j, s := range series {
				v := s.Values[i]
				var from, to float64
				if v >= 0 {
					from, to = pos, pos+v
					pos = to
				} else {
					from, to = neg, neg+v
					neg = to
				}
				y1, y2 := scale.Map(from), scale.Map(to)
				fmt.Fprintf(&b, "<rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" fill=\"%s\" aria-label=\"%s %s\"></rect>", x, math.Min(y1, y2), barWidth, math.Abs(y2-y1), seriesColor(j, s.Color), esc(s.Label), esc(label))
			}
			if pos != 0 {
				fmt.Fprintf(&b, "<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"9\" font-weight=\"bold\" text-anchor=\"middle\">%s</text>", x+barWidth/2, scale.Map(pos)-4, axisColor, esc(valueFormat(pos)))
			}
		} else {
			groupInner := groupWidth * 0.7
			barWidth := groupInner / float64(len(series))
			for j, s := range series {
				v := s.Values[i]
				y, h := scale.Map(math.Max(v, 0)), math.Abs(scale.Map(v)-scale.Zero())
				x := baseX + (groupWidth-groupInner)/2 + float64(j)*barWidth
				fmt.Fprintf(&b, "<rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" fill=\"%s\" aria-label=\"%s %s\"></rect>", x+1, y, barWidth-2, h, seriesColor(j, s.Color), esc(s.Label), esc(label))
			}
		}
		center := baseX + groupWidth/2
		fmt.Fprintf(&b, "<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"middle\">%s</text>", center, padding+chartHeight+14, axisColor, esc(label))
	}

	legendY := padding - 14
	if legendY < 12 {
		legendY = 12
	}
	legend(&b, left, legendY, series, axisColor)

	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}

// HorizontalBars renders one bar per slice in the given order.
func HorizontalBars(width int, slices []Slice, opts BarOpts) (template.HTML, error) {
	if len(slices) == 0 {
		return "", fmt.Errorf("svg: slices required")
	}
	if width <= 0 {
		width = DefaultWidth
	}
	valueFormat := opts.Format
	if valueFormat == nil {
		valueFormat = format.Compact
	}
	axisColor := fallback(opts.AxisColor, "#475569")
	const rowH, labelW, valueW = 26.0, 170.0, 80.0
	height := int(rowH*float64(len(slices))) + 16

	maxVal := 0.0
	for _, s := range slices {
		maxVal = math.Max(maxVal, math.Abs(s.Value))
	}
	scale := chart.NewScale(0, maxVal, labelW, float64(width)-valueW)

	var b strings.Builder
	header(&b, width, height, opts.Title, opts.Description, "hbar")
	for i, s := range slices {
		y := 8 + rowH*float64(i)
		w := scale.Map(math.Abs(s.Value)) - scale.From
		fmt.Fprintf(&b, "<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"11\" text-anchor=\"end\">%s</text>", labelW-8, y+rowH/2+4, axisColor, esc(s.Label))
		fmt.Fprintf(&b, "<rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" rx=\"3\" fill=\"%s\"></rect>", labelW, y+rowH*0.2, w, rowH*0.6, seriesColor(i, s.Color))
		fmt.Fprintf(&b, "<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"11\" font-weight=\"bold\">%s</text>", labelW+w+6, y+rowH/2+4, axisColor, esc(valueFormat(s.Value)))
	}
	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}

func seriesBounds(series []Series, stacked bool) (float64, float64) {
	minVal, maxVal := 0.0, 0.0
	n := 0
	for _, s := range series {
		if len(s.Values) > n {
			n = len(s.Values)
		}
	}
	for i := 0; i < n; i++ {
		pos, neg := 0.0, 0.0
		for _, s := range series {
			if i >= len(s.Values) {
				continue
			}
			v := s.Values[i]
			if !stacked {
				minVal, maxVal = math.Min(minVal, v), math.Max(maxVal, v)
				continue
			}
			if v >= 0 {
				pos += v
			} else {
				neg += v
			}
		}
		if stacked {
			minVal, maxVal = math.Min(minVal, neg), math.Max(maxVal, pos)
		}
	}
	if almostEqual(maxVal, minVal) {
		maxVal = minVal + 1
	}
	return minVal, maxVal
}

func esc(s string) string { return template.HTMLEscapeString(s) }
