package pages

import (
	"fmt"

	"github.com/sr-consultoria/farmreport/internal/chart"
	"github.com/sr-consultoria/farmreport/internal/format"
	"github.com/sr-consultoria/farmreport/internal/layout"
	"github.com/sr-consultoria/farmreport/internal/reportdata"
	"github.com/sr-consultoria/farmreport/internal/table"
)

// ChartKind selects how a ChartSpec is drawn.
type ChartKind string

const (
	ChartBar           ChartKind = "bar"
	ChartStackedBar    ChartKind = "stacked"
	ChartLine          ChartKind = "line"
	ChartDonut         ChartKind = "donut"
	ChartHorizontalBar ChartKind = "hbar"
)

// Unit names how chart values are printed. Both the canvas and the HTML
// pipelines derive their formatters from it.
type Unit string

const (
	UnitCurrency Unit = "currency"
	UnitHectares Unit = "hectares"
	UnitNumber   Unit = "number"
	UnitRatio    Unit = "ratio"
	UnitPercent  Unit = "percent"
	// UnitNone hides values, e.g. for donuts of unlabelled shares.
	UnitNone Unit = "none"
)

// Format returns the value formatter of the unit.
func (u Unit) Format() func(float64) string {
	switch u {
	case UnitCurrency:
		return format.CompactCurrency
	case UnitHectares:
		return func(v float64) string { return format.Number(v, 0) }
	case UnitNumber:
		return func(v float64) string { return format.Number(v, 0) }
	case UnitRatio:
		return format.Ratio
	case UnitPercent:
		return pct1
	case UnitNone:
		return func(float64) string { return "" }
	}
	return format.Compact
}

// AxisFormat returns the tick formatter of the unit.
func (u Unit) AxisFormat() func(float64) string {
	switch u {
	case UnitRatio:
		return format.Ratio
	case UnitPercent:
		return pct0
	}
	return format.Compact
}

// ChartSpec is an engine independent chart: Data feeds bar and line kinds,
// Slices feeds donuts and horizontal bars.
type ChartSpec struct {
	Kind    ChartKind
	Title   string
	Unit    Unit
	Data    chart.Data
	Slices  []chart.Slice
	Options chart.Options
	// Weight is the share of the row width, relative to its siblings.
	Weight float64
}

// ChartRow is a band of charts sharing one height.
type ChartRow struct {
	Height float64
	Charts []ChartSpec
}

// Content is everything a section shows, independent of the output format.
type Content struct {
	Section reportdata.Section
	KPIs    []KPI
	Rows    []ChartRow
	Tables  []table.Table
}

// ContentFunc computes a section. It returns nil when the section's data is
// absent.
type ContentFunc func(env Env, data *reportdata.ReportData) (*Content, error)

// Contents maps every optional section to its content function.
var Contents = map[reportdata.Section]ContentFunc{
	reportdata.SectionProperties:          PropertiesContent,
	reportdata.SectionPlantingArea:        PlantingAreaContent,
	reportdata.SectionProductivity:        ProductivityContent,
	reportdata.SectionRevenue:             RevenueContent,
	reportdata.SectionFinancialEvolution:  FinancialEvolutionContent,
	reportdata.SectionLiabilities:         LiabilitiesContent,
	reportdata.SectionEconomicIndicators:  EconomicIndicatorsContent,
	reportdata.SectionLiabilitiesAnalysis: LiabilitiesAnalysisContent,
	reportdata.SectionInvestments:         InvestmentsContent,
	reportdata.SectionCashFlow:            CashFlowContent,
	reportdata.SectionDRE:                 DREContent,
	reportdata.SectionBalanceSheet:        BalanceSheetContent,
}

// SectionContent computes one section by name.
func SectionContent(section reportdata.Section, env Env, data *reportdata.ReportData) (*Content, error) {
	fn, ok := Contents[section]
	if !ok {
		return nil, fmt.Errorf("pages: unknown section %q", section)
	}
	return fn(env, data)
}

// ChartOptions fills the formatters implied by the unit.
func (s ChartSpec) ChartOptions() chart.Options {
	opts := s.Options
	if opts.ValueFormat == nil {
		opts.ValueFormat = s.Unit.Format()
	}
	if opts.AxisFormat == nil {
		opts.AxisFormat = s.Unit.AxisFormat()
	}
	return opts
}

// Draw lays a section out: title, KPI cards, chart rows, then tables.
func Draw(doc *layout.Document, env Env, data *reportdata.ReportData, c *Content) {
	start(doc, env, data, c.Section)
	Cards(doc, env, c.KPIs)
	for _, r := range c.Rows {
		drawRow(doc, r)
	}
	for _, t := range c.Tables {
		table.Draw(doc, t)
	}
}

func layoutSection(doc *layout.Document, env Env, data *reportdata.ReportData, fn ContentFunc) error {
	c, err := fn(env, data)
	if err != nil || c == nil {
		return err
	}
	Draw(doc, env, data, c)
	return nil
}

func drawRow(doc *layout.Document, r ChartRow) {
	if len(r.Charts) == 0 {
		return
	}
	doc.Ensure(r.Height)
	total := 0.0
	for _, c := range r.Charts {
		total += weight(c)
	}
	avail := doc.ContentWidth() - gap*float64(len(r.Charts)-1)
	page := doc.Current()
	x, y := doc.Margins.Left, doc.Y()
	for _, c := range r.Charts {
		w := avail * weight(c) / total
		box := chart.Box{X: x, Y: y, W: w, H: r.Height, Title: c.Title, Options: c.ChartOptions()}
		switch c.Kind {
		case ChartBar:
			chart.Bar(page, box, c.Data)
		case ChartStackedBar:
			chart.StackedBar(page, box, c.Data)
		case ChartLine:
			chart.Line(page, box, c.Data)
		case ChartDonut:
			chart.Donut(page, box, c.Slices)
		case ChartHorizontalBar:
			chart.HorizontalBar(page, box, c.Slices)
		}
		x += w + gap
	}
	doc.Advance(r.Height + gap)
}

func weight(c ChartSpec) float64 {
	if c.Weight <= 0 {
		return 1
	}
	return c.Weight
}
