package pages

import (
	"strconv"

	"github.com/sr-consultoria/farmreport/internal/chart"
	"github.com/sr-consultoria/farmreport/internal/format"
	"github.com/sr-consultoria/farmreport/internal/layout"
	"github.com/sr-consultoria/farmreport/internal/reportdata"
	"github.com/sr-consultoria/farmreport/internal/table"
)

// FinancialEvolution lays out revenue, cost, EBITDA and net profit per safra.
func FinancialEvolution(doc *layout.Document, env Env, data *reportdata.ReportData) error {
	return layoutSection(doc, env, data, FinancialEvolutionContent)
}

// FinancialEvolutionContent computes the P&L series with margins.
func FinancialEvolutionContent(env Env, data *reportdata.ReportData) (*Content, error) {
	f := data.FinancialEvolution
	if f == nil {
		return nil, nil
	}
	c := &Content{Section: reportdata.SectionFinancialEvolution}

	n := len(f.Seasons)
	labels := make([]string, n)
	revenue, cost, ebitda, profit := make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
	ebitdaMargin, netMargin := make([]float64, n), make([]float64, n)
	for i, s := range f.Seasons {
		labels[i] = s.Safra
		revenue[i], cost[i], ebitda[i], profit[i] = s.Revenue, s.Cost, s.EBITDA, s.NetProfit
		ebitdaMargin[i] = margin(s.EBITDA, s.Revenue)
		netMargin[i] = margin(s.NetProfit, s.Revenue)
	}

	if n > 0 {
		last := f.Seasons[n-1]
		c.KPIs = []KPI{
			{Label: "Receita " + last.Safra, Value: format.CompactCurrency(last.Revenue)},
			{Label: "Custo " + last.Safra, Value: format.CompactCurrency(last.Cost)},
			{Label: "EBITDA " + last.Safra, Value: format.CompactCurrency(last.EBITDA), Note: "Margem " + format.Percent(ebitdaMargin[n-1], 1), Tone: tone(env.Theme.Primary)},
			{Label: "Lucro líquido " + last.Safra, Value: format.CompactCurrency(last.NetProfit), Note: "Margem " + format.Percent(netMargin[n-1], 1), Tone: signTone(env, last.NetProfit)},
		}
	}

	c.Rows = []ChartRow{{Height: 70, Charts: []ChartSpec{
		{Kind: ChartBar, Title: "Receita x Custo", Unit: UnitCurrency,
			Options: chart.Options{ShowLegend: true, ShowValues: true},
			Data: chart.Data{Labels: labels, Datasets: []chart.Dataset{
				{Label: "Receita", Values: revenue, Color: tone(env.Theme.Secondary)},
				{Label: "Custo", Values: cost, Color: tone(env.Theme.Accent)},
			}}},
		{Kind: ChartLine, Title: "EBITDA e lucro líquido", Unit: UnitCurrency,
			Options: chart.Options{ShowLegend: true, ShowDots: true, ShowValues: true},
			Data: chart.Data{Labels: labels, Datasets: []chart.Dataset{
				{Label: "EBITDA", Values: ebitda, Color: tone(env.Theme.Primary)},
				{Label: "Lucro líquido", Values: profit, Color: tone(env.Theme.Accent)},
			}}},
	}}}

	cols := append([]table.Column{{Header: "Indicador", Field: "label", Weight: 1.8}}, safraColumns(labels, table.Currency, 0)...)
	series := []struct {
		label  string
		values []float64
		kind   table.RowKind
		format table.Format
	}{
		{"Receita", revenue, table.Normal, table.Currency},
		{"Custo", cost, table.Normal, table.Currency},
		{"EBITDA", ebitda, table.Subtotal, table.Currency},
		{"Margem EBITDA", ebitdaMargin, table.Normal, table.Percent},
		{"Lucro líquido", profit, table.Total, table.Currency},
		{"Margem líquida", netMargin, table.Normal, table.Percent},
	}
	rows := make([]table.Row, 0, len(series))
	for _, s := range series {
		values := map[string]any{"label": s.label}
		for i, l := range labels {
			if s.format == table.Percent {
				values[l] = format.Percent(s.values[i], 1)
			} else {
				values[l] = s.values[i]
			}
		}
		rows = append(rows, table.Row{Kind: s.kind, Values: values})
	}
	c.Tables = []table.Table{{Title: "Resultado por safra", Columns: cols, Rows: rows}}
	return c, nil
}

// Liabilities lays out the current debt position.
func Liabilities(doc *layout.Document, env Env, data *reportdata.ReportData) error {
	return layoutSection(doc, env, data, LiabilitiesContent)
}

// LiabilitiesContent computes the debt split by category and bank and its
// evolution.
func LiabilitiesContent(env Env, data *reportdata.ReportData) (*Content, error) {
	l := data.Liabilities
	if l == nil {
		return nil, nil
	}
	c := &Content{Section: reportdata.SectionLiabilities}
	c.KPIs = []KPI{
		{Label: "Dívida total", Value: format.CompactCurrency(l.TotalDebt), Tone: tone(env.Theme.Negative)},
		{Label: "Bancária", Value: format.CompactCurrency(l.BankDebt), Note: share(l.BankDebt, l.TotalDebt)},
		{Label: "Terras", Value: format.CompactCurrency(l.LandDebt), Note: share(l.LandDebt, l.TotalDebt)},
		{Label: "Fornecedores", Value: format.CompactCurrency(l.SupplierDebt), Note: share(l.SupplierDebt, l.TotalDebt)},
		{Label: "Caixa", Value: format.CompactCurrency(l.Cash), Tone: tone(env.Theme.Positive)},
		{Label: "Dívida líquida", Value: format.CompactCurrency(l.NetDebt()), Tone: signTone(env, -l.NetDebt())},
	}
	c.Rows = []ChartRow{{Height: 66, Charts: []ChartSpec{
		{Kind: ChartDonut, Title: "Dívida por categoria", Unit: UnitNone, Slices: shareSlices(l.ByCategory)},
		{Kind: ChartHorizontalBar, Title: "Dívida por instituição", Unit: UnitCurrency, Slices: shareSlices(l.ByBank)},
	}}}

	if len(l.Evolution) > 0 {
		labels := make([]string, len(l.Evolution))
		bank, land, supplier := make([]float64, len(labels)), make([]float64, len(labels)), make([]float64, len(labels))
		for i, e := range l.Evolution {
			labels[i] = e.Safra
			bank[i], land[i], supplier[i] = e.BankDebt, e.LandDebt, e.SupplierDebt
		}
		c.Rows = append(c.Rows, ChartRow{Height: 62, Charts: []ChartSpec{{
			Kind: ChartStackedBar, Title: "Evolução do endividamento", Unit: UnitCurrency,
			Options: chart.Options{ShowLegend: true, ShowValues: true},
			Data: chart.Data{Labels: labels, Datasets: []chart.Dataset{
				{Label: "Bancária", Values: bank},
				{Label: "Terras", Values: land},
				{Label: "Fornecedores", Values: supplier},
			}},
		}}})
	}
	return c, nil
}

// EconomicIndicators lays out the leverage ratio series.
func EconomicIndicators(doc *layout.Document, env Env, data *reportdata.ReportData) error {
	return layoutSection(doc, env, data, EconomicIndicatorsContent)
}

// EconomicIndicatorsContent computes the leverage ratios against their alert
// thresholds.
func EconomicIndicatorsContent(env Env, data *reportdata.ReportData) (*Content, error) {
	e := data.EconomicIndicators
	if e == nil {
		return nil, nil
	}
	c := &Content{Section: reportdata.SectionEconomicIndicators}

	n := len(e.Seasons)
	labels := make([]string, n)
	dRev, ndRev, dEbitda, ndEbitda, dAssets := make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
	for i, s := range e.Seasons {
		labels[i] = s.Safra
		dRev[i], ndRev[i] = s.DebtToRevenue, s.NetDebtToRevenue
		dEbitda[i], ndEbitda[i] = s.DebtToEBITDA, s.NetDebtToEBITDA
		dAssets[i] = s.DebtToAssets * 100
	}

	domain := [2]float64{0, 100}
	c.Rows = []ChartRow{{Height: 70, Charts: []ChartSpec{
		{Kind: ChartLine, Title: "Dívida / Receita", Unit: UnitRatio,
			Options: chart.Options{ShowLegend: true, ShowDots: true, ShowValues: true,
				Thresholds: []chart.Threshold{{Value: 1, Label: "Alerta 1,0x", Color: env.Theme.Accent}}},
			Data: chart.Data{Labels: labels, Datasets: []chart.Dataset{{Label: "Dívida", Values: dRev}, {Label: "Dívida líquida", Values: ndRev}}}},
		{Kind: ChartLine, Title: "Dívida / EBITDA", Unit: UnitRatio,
			Options: chart.Options{ShowLegend: true, ShowDots: true, ShowValues: true,
				Thresholds: []chart.Threshold{{Value: 3, Label: "Limite 3,0x", Color: env.Theme.Negative}}},
			Data: chart.Data{Labels: labels, Datasets: []chart.Dataset{{Label: "Dívida", Values: dEbitda}, {Label: "Dívida líquida", Values: ndEbitda}}}},
		{Kind: ChartBar, Title: "Dívida / Ativos", Unit: UnitPercent,
			Options: chart.Options{ShowValues: true, Domain: &domain},
			Data:    chart.Data{Labels: labels, Datasets: []chart.Dataset{{Label: "Dívida / Ativos", Values: dAssets}}}},
	}}}

	cols := append([]table.Column{{Header: "Indicador", Field: "label", Weight: 2}}, safraColumns(labels, table.Text, 0)...)
	indicator := func(label string, values []float64, f func(float64) string) table.Row {
		cells := map[string]any{"label": label}
		for i, l := range labels {
			cells[l] = f(values[i])
		}
		return table.Row{Values: cells}
	}
	c.Tables = []table.Table{{Title: "Indicadores de endividamento", Columns: cols, Rows: []table.Row{
		indicator("Dívida / Receita", dRev, format.Ratio),
		indicator("Dívida líquida / Receita", ndRev, format.Ratio),
		indicator("Dívida / EBITDA", dEbitda, format.Ratio),
		indicator("Dívida líquida / EBITDA", ndEbitda, format.Ratio),
		indicator("Dívida / Ativos", dAssets, pct1),
	}}}
	return c, nil
}

// LiabilitiesAnalysis lays out debt composition and the ratios derived from
// it per safra.
func LiabilitiesAnalysis(doc *layout.Document, env Env, data *reportdata.ReportData) error {
	return layoutSection(doc, env, data, LiabilitiesAnalysisContent)
}

// LiabilitiesAnalysisContent computes debt composition, net debt and the
// derived ratios per safra.
func LiabilitiesAnalysisContent(env Env, data *reportdata.ReportData) (*Content, error) {
	a := data.LiabilitiesAnalysis
	if a == nil {
		return nil, nil
	}
	c := &Content{Section: reportdata.SectionLiabilitiesAnalysis}

	n := len(a.Seasons)
	labels := make([]string, n)
	bank, land, supplier, net := make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
	for i, s := range a.Seasons {
		labels[i] = s.Safra
		bank[i], land[i], supplier[i], net[i] = s.BankDebt, s.LandDebt, s.SupplierDebt, s.NetDebt()
	}
	c.Rows = []ChartRow{{Height: 70, Charts: []ChartSpec{
		{Kind: ChartStackedBar, Title: "Composição da dívida", Unit: UnitCurrency,
			Options: chart.Options{ShowLegend: true, ShowValues: true},
			Data: chart.Data{Labels: labels, Datasets: []chart.Dataset{
				{Label: "Bancária", Values: bank},
				{Label: "Terras", Values: land},
				{Label: "Fornecedores", Values: supplier},
			}}},
		{Kind: ChartLine, Title: "Dívida líquida", Unit: UnitCurrency,
			Options: chart.Options{ShowDots: true, ShowValues: true},
			Data:    chart.Data{Labels: labels, Datasets: []chart.Dataset{{Label: "Dívida líquida", Values: net, Color: tone(env.Theme.Negative)}}}},
	}}}

	cols := append([]table.Column{{Header: "Indicador", Field: "label", Weight: 2}}, safraColumns(labels, table.Text, 0)...)
	metrics := []struct {
		label string
		kind  table.RowKind
		value func(reportdata.DebtAnalysisSeason) string
	}{
		{"Dívida bancária", table.Normal, func(s reportdata.DebtAnalysisSeason) string { return format.Currency(s.BankDebt) }},
		{"Dívida de terras", table.Normal, func(s reportdata.DebtAnalysisSeason) string { return format.Currency(s.LandDebt) }},
		{"Fornecedores", table.Normal, func(s reportdata.DebtAnalysisSeason) string { return format.Currency(s.SupplierDebt) }},
		{"Dívida total", table.Subtotal, func(s reportdata.DebtAnalysisSeason) string { return format.Currency(s.TotalDebt()) }},
		{"Caixa", table.Normal, func(s reportdata.DebtAnalysisSeason) string { return format.Currency(s.Cash) }},
		{"Dívida líquida", table.Total, func(s reportdata.DebtAnalysisSeason) string { return format.Currency(s.NetDebt()) }},
		{"Dívida / Receita", table.Normal, func(s reportdata.DebtAnalysisSeason) string { return ratio(s.TotalDebt(), s.Revenue) }},
		{"Dívida / EBITDA", table.Normal, func(s reportdata.DebtAnalysisSeason) string { return ratio(s.TotalDebt(), s.EBITDA) }},
		{"Dívida líquida / EBITDA", table.Normal, func(s reportdata.DebtAnalysisSeason) string { return ratio(s.NetDebt(), s.EBITDA) }},
		{"Dívida / Ativos", table.Normal, func(s reportdata.DebtAnalysisSeason) string {
			if s.Assets == 0 {
				return "-"
			}
			return format.Percent(s.TotalDebt()/s.Assets*100, 1)
		}},
	}
	rows := make([]table.Row, 0, len(metrics))
	for _, m := range metrics {
		values := map[string]any{"label": m.label}
		for _, s := range a.Seasons {
			values[s.Safra] = m.value(s)
		}
		rows = append(rows, table.Row{Kind: m.kind, Values: values})
	}
	c.Tables = []table.Table{{Title: "Análise por safra", Columns: cols, Rows: rows}}
	return c, nil
}

// Investments lays out realized and projected capex.
func Investments(doc *layout.Document, env Env, data *reportdata.ReportData) error {
	return layoutSection(doc, env, data, InvestmentsContent)
}

// InvestmentsContent computes capex by year and by category.
func InvestmentsContent(env Env, data *reportdata.ReportData) (*Content, error) {
	inv := data.Investments
	if inv == nil {
		return nil, nil
	}
	c := &Content{Section: reportdata.SectionInvestments}
	c.KPIs = []KPI{
		{Label: "Total realizado", Value: format.CompactCurrency(inv.TotalRealized()), Tone: tone(env.Theme.Primary)},
		{Label: "Total projetado", Value: format.CompactCurrency(inv.TotalProjected()), Tone: tone(env.Theme.Accent)},
		{Label: "Média anual realizada", Value: format.CompactCurrency(inv.AverageRealized())},
		{Label: "Média anual projetada", Value: format.CompactCurrency(inv.AverageProjected())},
	}

	labels := make([]string, len(inv.Years))
	realized, projected := make([]float64, len(labels)), make([]float64, len(labels))
	for i, y := range inv.Years {
		labels[i] = strconv.Itoa(y.Year)
		if y.Realized {
			realized[i] = y.Value
		} else {
			projected[i] = y.Value
		}
	}
	c.Rows = []ChartRow{{Height: 80, Charts: []ChartSpec{
		{Kind: ChartStackedBar, Title: "Investimentos por ano", Unit: UnitCurrency, Weight: 60,
			Options: chart.Options{ShowLegend: true, ShowValues: true},
			Data: chart.Data{Labels: labels, Datasets: []chart.Dataset{
				{Label: "Realizado", Values: realized, Color: tone(env.Theme.Secondary)},
				{Label: "Projetado", Values: projected, Color: tone(env.Theme.Accent)},
			}}},
		{Kind: ChartDonut, Title: "Por categoria", Unit: UnitCurrency, Weight: 40, Slices: shareSlices(inv.Categories)},
	}}}

	if len(inv.Categories) > 0 {
		pcts := inv.CategoryPercentages()
		rows := make([]table.Row, 0, len(inv.Categories)+1)
		total := 0.0
		for i, cat := range inv.Categories {
			total += cat.Value
			rows = append(rows, table.Row{Values: map[string]any{"category": cat.Label, "value": cat.Value, "share": pcts[i].Value}})
		}
		rows = append(rows, table.Row{Kind: table.Total, Values: map[string]any{"category": "Total", "value": total, "share": 100.0}})
		c.Tables = []table.Table{{Title: "Investimentos por categoria", Columns: []table.Column{
			{Header: "Categoria", Field: "category", Weight: 2},
			{Header: "Valor", Field: "value", Format: table.Currency},
			{Header: "Participação", Field: "share", Format: table.Percent, Decimals: 1},
		}, Rows: rows}}
	}
	return c, nil
}

func shareSlices(shares []reportdata.Share) []chart.Slice {
	out := make([]chart.Slice, len(shares))
	for i, s := range shares {
		out[i] = chart.Slice{Label: s.Label, Value: s.Value}
	}
	return out
}

func margin(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}

func share(part, whole float64) string {
	if whole == 0 {
		return ""
	}
	return format.Percent(part/whole*100, 1) + " do total"
}

func ratio(num, den float64) string {
	if den == 0 {
		return "-"
	}
	return format.Ratio(num / den)
}

func signTone(env Env, v float64) *layout.Color {
	if v < 0 {
		return tone(env.Theme.Negative)
	}
	return tone(env.Theme.Positive)
}

func pct0(v float64) string { return format.Percent(v, 0) }
func pct1(v float64) string { return format.Percent(v, 1) }
