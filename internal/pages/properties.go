package pages

import (
	"fmt"
	"sort"

	"github.com/sr-consultoria/farmreport/internal/chart"
	"github.com/sr-consultoria/farmreport/internal/format"
	"github.com/sr-consultoria/farmreport/internal/layout"
	"github.com/sr-consultoria/farmreport/internal/reportdata"
	"github.com/sr-consultoria/farmreport/internal/table"
)

const maxPropertyBars = 6

// Properties lays out the portfolio summary.
func Properties(doc *layout.Document, env Env, data *reportdata.ReportData) error {
	return layoutSection(doc, env, data, PropertiesContent)
}

// PropertiesContent computes the portfolio KPIs, the area split, the value
// by property and the property table.
func PropertiesContent(env Env, data *reportdata.ReportData) (*Content, error) {
	p := data.Properties
	if p == nil {
		return nil, nil
	}
	cultivatedPct := 0.0
	if p.TotalArea > 0 {
		cultivatedPct = p.CultivatedArea / p.TotalArea * 100
	}
	c := &Content{Section: reportdata.SectionProperties}
	c.KPIs = []KPI{
		{Label: "Propriedades", Value: fmt.Sprint(p.TotalProperties), Note: fmt.Sprintf("%d próprias · %d arrendadas", p.OwnedProperties, p.LeasedProperties)},
		{Label: "Área total", Value: format.Hectares(p.TotalArea)},
		{Label: "Área própria", Value: format.Hectares(p.OwnedArea)},
		{Label: "Área arrendada", Value: format.Hectares(p.LeasedArea)},
		{Label: "Área cultivada", Value: format.Hectares(p.CultivatedArea), Note: format.Percent(cultivatedPct, 1) + " da área total"},
		{Label: "Valor patrimonial", Value: format.CompactCurrency(p.TotalValue), Tone: tone(env.Theme.Primary)},
	}
	c.Rows = []ChartRow{{Height: 62, Charts: []ChartSpec{
		{Kind: ChartDonut, Title: "Distribuição da área", Unit: UnitHectares, Slices: []chart.Slice{
			{Label: "Própria", Value: p.OwnedArea, Color: tone(env.Theme.Secondary)},
			{Label: "Arrendada", Value: p.LeasedArea, Color: tone(env.Theme.Accent)},
		}},
		{Kind: ChartHorizontalBar, Title: "Valor por propriedade", Unit: UnitCurrency, Slices: propertyValues(p.Properties)},
	}}}

	rows := make([]table.Row, 0, len(p.Properties)+1)
	for _, prop := range p.Properties {
		rows = append(rows, table.Row{Values: map[string]any{
			"name":       prop.Name,
			"city":       location(prop),
			"ownership":  ownershipLabel(prop.Ownership),
			"area":       prop.Area,
			"cultivated": prop.CultivatedArea,
			"value":      prop.Value,
		}})
	}
	rows = append(rows, table.Row{Kind: table.Total, Values: map[string]any{
		"name":       "Total",
		"area":       p.TotalArea,
		"cultivated": p.CultivatedArea,
		"value":      p.TotalValue,
	}})
	c.Tables = []table.Table{{
		Title: "Relação de propriedades",
		Columns: []table.Column{
			{Header: "Propriedade", Field: "name", Weight: 2.4},
			{Header: "Município", Field: "city", Weight: 2},
			{Header: "Condição", Field: "ownership", Weight: 1.1, Align: layout.AlignCenter},
			{Header: "Área", Field: "area", Format: table.Hectares, Weight: 1.2},
			{Header: "Área cultivada", Field: "cultivated", Format: table.Hectares, Weight: 1.2},
			{Header: "Valor", Field: "value", Format: table.Currency, Weight: 1.5},
		},
		Rows: rows,
	}}
	return c, nil
}

func propertyValues(props []reportdata.PropertySummary) []chart.Slice {
	sorted := append([]reportdata.PropertySummary(nil), props...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Value > sorted[j].Value })
	out := make([]chart.Slice, 0, len(sorted))
	for _, p := range sorted {
		if p.Value <= 0 {
			continue
		}
		out = append(out, chart.Slice{Label: p.Name, Value: p.Value})
		if len(out) == maxPropertyBars {
			break
		}
	}
	return out
}

func location(p reportdata.PropertySummary) string {
	switch {
	case p.City != "" && p.State != "":
		return p.City + "/" + p.State
	case p.City != "":
		return p.City
	default:
		return p.State
	}
}

func ownershipLabel(o reportdata.Ownership) string {
	switch o {
	case reportdata.OwnershipOwned:
		return "Própria"
	case reportdata.OwnershipLeased:
		return "Arrendada"
	default:
		return string(o)
	}
}
