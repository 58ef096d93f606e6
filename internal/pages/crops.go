package pages

import (
	"fmt"

	"github.com/sr-consultoria/farmreport/internal/chart"
	"github.com/sr-consultoria/farmreport/internal/format"
	"github.com/sr-consultoria/farmreport/internal/layout"
	"github.com/sr-consultoria/farmreport/internal/reportdata"
	"github.com/sr-consultoria/farmreport/internal/table"
)

// PlantingArea lays out planted hectares per crop and safra.
func PlantingArea(doc *layout.Document, env Env, data *reportdata.ReportData) error {
	return layoutSection(doc, env, data, PlantingAreaContent)
}

// PlantingAreaContent computes the planted area growth, the stacked area per
// crop and the crop/system table.
func PlantingAreaContent(env Env, data *reportdata.ReportData) (*Content, error) {
	p := data.PlantingArea
	if p == nil {
		return nil, nil
	}
	c := &Content{Section: reportdata.SectionPlantingArea}
	crops := reportdata.CropNames(p.Seasons)

	if n := len(p.Seasons); n > 0 {
		first, last := seasonTotal(p.Seasons[0]), seasonTotal(p.Seasons[n-1])
		c.KPIs = []KPI{
			{Label: "Área plantada " + p.Seasons[0].Safra, Value: format.Hectares(first)},
			{Label: "Área plantada " + p.Seasons[n-1].Safra, Value: format.Hectares(last)},
			growthKPI(env, "Crescimento no período", first, last),
			{Label: "Culturas", Value: fmt.Sprint(len(crops))},
		}
	}
	c.Rows = []ChartRow{{Height: 72, Charts: []ChartSpec{{
		Kind: ChartStackedBar, Title: "Área plantada por cultura (ha)", Unit: UnitHectares,
		Data:    cropChartData(p.Seasons, crops),
		Options: chart.Options{ShowValues: true, ShowLegend: true},
	}}}}

	safras := reportdata.Safras(p.Seasons)
	details := p.Details
	if len(details) == 0 {
		details = detailsFromSeasons(p.Seasons, crops)
	}
	cols := []table.Column{
		{Header: "Cultura", Field: "crop", Weight: 1.6},
		{Header: "Sistema", Field: "system", Weight: 1.2},
		{Header: "Ciclo", Field: "cycle", Weight: 1.1},
	}
	cols = append(cols, safraColumns(safras, table.Hectares, 0)...)
	rows := make([]table.Row, 0, len(details)+1)
	for _, d := range details {
		rows = append(rows, table.Row{Values: detailValues(d, safras)})
	}
	total := map[string]any{"crop": "Total"}
	for _, s := range p.Seasons {
		total[s.Safra] = seasonTotal(s)
	}
	rows = append(rows, table.Row{Kind: table.Total, Values: total})
	c.Tables = []table.Table{{Title: "Área por cultura e safra", Columns: cols, Rows: rows}}
	return c, nil
}

// Productivity lays out yields per crop and safra.
func Productivity(doc *layout.Document, env Env, data *reportdata.ReportData) error {
	return layoutSection(doc, env, data, ProductivityContent)
}

// ProductivityContent computes yields grouped by crop with one bar per safra.
func ProductivityContent(_ Env, data *reportdata.ReportData) (*Content, error) {
	p := data.Productivity
	if p == nil {
		return nil, nil
	}
	c := &Content{Section: reportdata.SectionProductivity}
	crops := reportdata.CropNames(p.Seasons)
	safras := reportdata.Safras(p.Seasons)

	units := map[string]string{}
	for _, d := range p.Details {
		units[d.Crop] = d.Unit
	}
	labels := make([]string, len(crops))
	for i, crop := range crops {
		labels[i] = crop
		if u := units[crop]; u != "" {
			labels[i] = fmt.Sprintf("%s (%s)", crop, u)
		}
	}
	datasets := make([]chart.Dataset, len(p.Seasons))
	for i, s := range p.Seasons {
		values := make([]float64, len(crops))
		for j, crop := range crops {
			values[j] = s.Crops[crop]
		}
		datasets[i] = chart.Dataset{Label: s.Safra, Values: values}
	}
	c.Rows = []ChartRow{{Height: 80, Charts: []ChartSpec{{
		Kind: ChartBar, Title: "Produtividade por cultura", Unit: UnitNumber,
		Data:    chart.Data{Labels: labels, Datasets: datasets},
		Options: chart.Options{ShowValues: true, ShowLegend: true},
	}}}}

	details := p.Details
	if len(details) == 0 {
		details = detailsFromSeasons(p.Seasons, crops)
	}
	cols := []table.Column{
		{Header: "Cultura", Field: "crop", Weight: 1.6},
		{Header: "Sistema", Field: "system", Weight: 1.2},
		{Header: "Unidade", Field: "unit", Weight: 0.9, Align: layout.AlignCenter},
	}
	cols = append(cols, safraColumns(safras, table.Number, 1)...)
	rows := make([]table.Row, 0, len(details))
	for _, d := range details {
		rows = append(rows, table.Row{Values: detailValues(d, safras)})
	}
	c.Tables = []table.Table{{Title: "Produtividade por safra", Columns: cols, Rows: rows}}
	return c, nil
}

// Revenue lays out projected gross revenue by crop.
func Revenue(doc *layout.Document, env Env, data *reportdata.ReportData) error {
	return layoutSection(doc, env, data, RevenueContent)
}

// RevenueContent computes revenue growth, the crop mix of the last safra and
// the revenue table.
func RevenueContent(env Env, data *reportdata.ReportData) (*Content, error) {
	r := data.Revenue
	if r == nil {
		return nil, nil
	}
	c := &Content{Section: reportdata.SectionRevenue}
	crops := reportdata.CropNames(r.Seasons)
	safras := reportdata.Safras(r.Seasons)

	charts := []ChartSpec{{
		Kind: ChartStackedBar, Title: "Receita por cultura", Unit: UnitCurrency, Weight: 62,
		Data:    cropChartData(r.Seasons, crops),
		Options: chart.Options{ShowValues: true, ShowLegend: true},
	}}
	if n := len(r.Seasons); n > 0 {
		first, last := seasonTotal(r.Seasons[0]), r.Seasons[n-1]
		lastTotal := seasonTotal(last)
		c.KPIs = []KPI{
			{Label: "Receita " + r.Seasons[0].Safra, Value: format.CompactCurrency(first)},
			{Label: "Receita " + last.Safra, Value: format.CompactCurrency(lastTotal), Tone: tone(env.Theme.Primary)},
			growthKPI(env, "Crescimento no período", first, lastTotal),
		}
		if len(crops) > 0 && lastTotal > 0 {
			main := crops[0]
			c.KPIs = append(c.KPIs, KPI{Label: "Principal cultura", Value: main, Note: format.Percent(last.Crops[main]/lastTotal*100, 1) + " da receita em " + last.Safra})
		}
		slices := make([]chart.Slice, len(crops))
		for i, crop := range crops {
			slices[i] = chart.Slice{Label: crop, Value: last.Crops[crop]}
		}
		charts = append(charts, ChartSpec{Kind: ChartDonut, Title: "Participação " + last.Safra, Unit: UnitCurrency, Weight: 38, Slices: slices})
	}
	c.Rows = []ChartRow{{Height: 72, Charts: charts}}

	cols := append([]table.Column{{Header: "Cultura", Field: "crop", Weight: 1.8}}, safraColumns(safras, table.Currency, 0)...)
	rows := make([]table.Row, 0, len(crops)+1)
	for _, crop := range crops {
		values := map[string]any{"crop": crop}
		for _, s := range r.Seasons {
			values[s.Safra] = s.Crops[crop]
		}
		rows = append(rows, table.Row{Values: values})
	}
	total := map[string]any{"crop": "Total"}
	for _, s := range r.Seasons {
		total[s.Safra] = seasonTotal(s)
	}
	rows = append(rows, table.Row{Kind: table.Total, Values: total})
	c.Tables = []table.Table{{Title: "Receita por cultura e safra", Columns: cols, Rows: rows}}
	return c, nil
}

func cropChartData(seasons []reportdata.CropSeason, crops []string) chart.Data {
	data := chart.Data{Labels: reportdata.Safras(seasons)}
	for _, c := range crops {
		values := make([]float64, len(seasons))
		for i, s := range seasons {
			values[i] = s.Crops[c]
		}
		data.Datasets = append(data.Datasets, chart.Dataset{Label: c, Values: values})
	}
	return data
}

func seasonTotal(s reportdata.CropSeason) float64 {
	if s.Total != 0 {
		return s.Total
	}
	total := 0.0
	for _, v := range s.Crops {
		total += v
	}
	return total
}

func detailsFromSeasons(seasons []reportdata.CropSeason, crops []string) []reportdata.CropDetail {
	out := make([]reportdata.CropDetail, len(crops))
	for i, c := range crops {
		values := make(map[string]float64, len(seasons))
		for _, s := range seasons {
			values[s.Safra] = s.Crops[c]
		}
		out[i] = reportdata.CropDetail{Crop: c, Values: values}
	}
	return out
}

func detailValues(d reportdata.CropDetail, safras []string) map[string]any {
	values := map[string]any{"crop": d.Crop, "system": d.System, "cycle": d.Cycle, "unit": d.Unit}
	for _, s := range safras {
		if v, ok := d.Values[s]; ok {
			values[s] = v
		}
	}
	return values
}

func safraColumns(safras []string, f table.Format, decimals int) []table.Column {
	cols := make([]table.Column, len(safras))
	for i, s := range safras {
		cols[i] = table.Column{Header: s, Field: s, Format: f, Decimals: decimals}
	}
	return cols
}

func growthKPI(env Env, label string, first, last float64) KPI {
	if first == 0 {
		return KPI{Label: label, Value: "-"}
	}
	g := (last - first) / first * 100
	k := KPI{Label: label, Value: format.Percent(g, 1)}
	if g >= 0 {
		k.Value = "+" + k.Value
		k.Tone = tone(env.Theme.Positive)
	} else {
		k.Tone = tone(env.Theme.Negative)
	}
	return k
}
