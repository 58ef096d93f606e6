package htmlreport

import (
	"encoding/json"
	"html/template"

	"github.com/sr-consultoria/farmreport/internal/chart"
	"github.com/sr-consultoria/farmreport/internal/chart/svg"
	"github.com/sr-consultoria/farmreport/internal/pages"
)

// chartAreaWidth is the usable width of an A4 landscape page in CSS pixels.
const chartAreaWidth = 1040

func (b *Builder) renderChart(cv *chartView, spec pages.ChartSpec, width int) error {
	if chartEmpty(spec) {
		cv.Empty = true
		return nil
	}
	if b.engine == EngineChartJS {
		raw, err := json.Marshal(chartJSConfig(spec))
		if err != nil {
			return err
		}
		cv.Config = string(raw)
		return nil
	}
	out, err := svgChart(spec, width, cv.Height)
	if err != nil {
		return err
	}
	cv.SVG = out
	return nil
}

func chartEmpty(spec pages.ChartSpec) bool {
	switch spec.Kind {
	case pages.ChartDonut, pages.ChartHorizontalBar:
		for _, s := range spec.Slices {
			if s.Value != 0 {
				return false
			}
		}
		return true
	}
	return len(spec.Data.Labels) == 0 || len(spec.Data.Datasets) == 0
}

func svgChart(spec pages.ChartSpec, width, height int) (template.HTML, error) {
	opts := spec.ChartOptions()
	switch spec.Kind {
	case pages.ChartBar, pages.ChartStackedBar:
		return svg.Bars(width, height, spec.Data.Labels, seriesOf(spec.Data), svg.BarOpts{
			Title:   spec.Title,
			Stacked: spec.Kind == pages.ChartStackedBar,
			Format:  opts.ValueFormat,
		})
	case pages.ChartLine:
		lo := svg.LineOpts{Title: spec.Title, ShowDots: opts.ShowDots, Format: opts.ValueFormat}
		if len(opts.Thresholds) > 0 {
			limit := opts.Thresholds[0].Value
			lo.Limit = &limit
			lo.LimitLabel = opts.Thresholds[0].Label
		}
		return svg.Line(width, height, spec.Data.Labels, seriesOf(spec.Data), lo)
	case pages.ChartDonut:
		return svg.Donut(width, height, slicesOf(spec.Slices), svg.DonutOpts{Title: spec.Title, Hole: 0.58, Format: opts.ValueFormat})
	case pages.ChartHorizontalBar:
		return svg.HorizontalBars(width, slicesOf(spec.Slices), svg.BarOpts{Title: spec.Title, Format: opts.ValueFormat})
	}
	return "", nil
}

func seriesOf(d chart.Data) []svg.Series {
	out := make([]svg.Series, len(d.Datasets))
	for i, ds := range d.Datasets {
		out[i] = svg.Series{Label: ds.Label, Values: ds.Values}
		if ds.Color != nil {
			out[i].Color = ds.Color.String()
		}
	}
	return out
}

func slicesOf(slices []chart.Slice) []svg.Slice {
	out := make([]svg.Slice, len(slices))
	for i, s := range slices {
		out[i] = svg.Slice{Label: s.Label, Value: s.Value}
		if s.Color != nil {
			out[i].Color = s.Color.String()
		}
	}
	return out
}

// chartJSConfig builds a Chart.js configuration. The "unit" key is read and
// removed by the page script, which installs the matching formatters.
func chartJSConfig(spec pages.ChartSpec) map[string]any {
	opts := spec.Options
	legend := opts.ShowLegend || spec.Kind == pages.ChartDonut
	cfg := map[string]any{
		"unit": string(spec.Unit),
		"options": map[string]any{
			"responsive":          true,
			"maintainAspectRatio": false,
			"animation":           false,
			"plugins": map[string]any{
				"legend": map[string]any{"display": legend, "position": "bottom"},
			},
		},
	}
	options := cfg["options"].(map[string]any)

	switch spec.Kind {
	case pages.ChartDonut, pages.ChartHorizontalBar:
		labels := make([]string, len(spec.Slices))
		values := make([]float64, len(spec.Slices))
		colors := make([]string, len(spec.Slices))
		for i, s := range spec.Slices {
			labels[i], values[i] = s.Label, s.Value
			colors[i] = chart.ColorAt(i, s.Color).String()
		}
		cfg["data"] = map[string]any{
			"labels":   labels,
			"datasets": []map[string]any{{"data": values, "backgroundColor": colors}},
		}
		if spec.Kind == pages.ChartDonut {
			cfg["type"] = "doughnut"
			options["cutout"] = "58%"
		} else {
			cfg["type"] = "bar"
			options["indexAxis"] = "y"
			options["scales"] = map[string]any{"x": map[string]any{"beginAtZero": true, "format": true}}
		}
		return cfg
	}

	datasets := make([]map[string]any, 0, len(spec.Data.Datasets)+len(opts.Thresholds))
	for i, ds := range spec.Data.Datasets {
		color := chart.ColorAt(i, ds.Color).String()
		entry := map[string]any{"label": ds.Label, "data": ds.Values, "backgroundColor": color, "borderColor": color}
		if spec.Kind == pages.ChartLine {
			entry["fill"] = false
			entry["tension"] = 0.25
			entry["pointRadius"] = 0
			if opts.ShowDots {
				entry["pointRadius"] = 3
			}
		}
		datasets = append(datasets, entry)
	}
	for _, t := range opts.Thresholds {
		values := make([]float64, len(spec.Data.Labels))
		for i := range values {
			values[i] = t.Value
		}
		datasets = append(datasets, map[string]any{
			"type": "line", "label": t.Label, "data": values,
			"borderColor": t.Color.String(), "borderDash": []int{6, 4}, "borderWidth": 1,
			"pointRadius": 0, "fill": false,
		})
	}
	cfg["data"] = map[string]any{"labels": spec.Data.Labels, "datasets": datasets}

	y := map[string]any{"format": true}
	if opts.Domain != nil {
		y["suggestedMin"], y["suggestedMax"] = opts.Domain[0], opts.Domain[1]
	} else {
		y["beginAtZero"] = true
	}
	x := map[string]any{}
	stacked := spec.Kind == pages.ChartStackedBar
	if stacked {
		x["stacked"], y["stacked"] = true, true
	}
	options["scales"] = map[string]any{"x": x, "y": y}
	if spec.Kind == pages.ChartLine {
		cfg["type"] = "line"
	} else {
		cfg["type"] = "bar"
	}
	return cfg
}
