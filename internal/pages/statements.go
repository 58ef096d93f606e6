package pages

import (
	"fmt"

	"github.com/sr-consultoria/farmreport/internal/chart"
	"github.com/sr-consultoria/farmreport/internal/layout"
	"github.com/sr-consultoria/farmreport/internal/reportdata"
	"github.com/sr-consultoria/farmreport/internal/table"
)

// seriesSpec selects a keyed statement line for the section chart.
type seriesSpec struct {
	key   string
	label string
}

// CashFlow lays out the projected cash flow statement.
func CashFlow(doc *layout.Document, env Env, data *reportdata.ReportData) error {
	return layoutSection(doc, env, data, CashFlowContent)
}

// CashFlowContent computes the cash flow charts and statement table.
func CashFlowContent(env Env, data *reportdata.ReportData) (*Content, error) {
	if data.CashFlow == nil {
		return nil, nil
	}
	return statementContent(env, reportdata.SectionCashFlow, data.CashFlow.Statement, "Fluxos por safra", []seriesSpec{
		{reportdata.KeyCashOperating, "Operacional"},
		{reportdata.KeyCashInvesting, "Investimentos"},
		{reportdata.KeyCashFinancing, "Financiamentos"},
	}, &seriesSpec{reportdata.KeyCashClosing, "Saldo final de caixa"})
}

// DRE lays out the projected income statement.
func DRE(doc *layout.Document, env Env, data *reportdata.ReportData) error {
	return layoutSection(doc, env, data, DREContent)
}

// DREContent computes the income statement chart and table.
func DREContent(env Env, data *reportdata.ReportData) (*Content, error) {
	if data.DRE == nil {
		return nil, nil
	}
	return statementContent(env, reportdata.SectionDRE, data.DRE.Statement, "Resultado por safra", []seriesSpec{
		{reportdata.KeyNetRevenue, "Receita líquida"},
		{reportdata.KeyEBITDA, "EBITDA"},
		{reportdata.KeyNetProfit, "Lucro líquido"},
	}, nil)
}

// BalanceSheet lays out the projected balance sheet.
func BalanceSheet(doc *layout.Document, env Env, data *reportdata.ReportData) error {
	return layoutSection(doc, env, data, BalanceSheetContent)
}

// BalanceSheetContent computes the balance sheet chart and table.
func BalanceSheetContent(env Env, data *reportdata.ReportData) (*Content, error) {
	if data.BalanceSheet == nil {
		return nil, nil
	}
	return statementContent(env, reportdata.SectionBalanceSheet, data.BalanceSheet.Statement, "Estrutura patrimonial", []seriesSpec{
		{reportdata.KeyTotalAssets, "Ativo total"},
		{reportdata.KeyTotalLiability, "Passivo total"},
		{reportdata.KeyEquity, "Patrimônio líquido"},
	}, nil)
}

// statementContent charts the keyed lines that exist, plus an optional
// line chart, above the full statement table.
func statementContent(env Env, section reportdata.Section, st reportdata.Statement, chartTitle string, bars []seriesSpec, line *seriesSpec) (*Content, error) {
	if len(st.Safras) == 0 {
		return nil, fmt.Errorf("pages: %s: %w", section, ErrEmptyStatement)
	}
	c := &Content{Section: section}

	barData := chart.Data{Labels: st.Safras}
	for _, spec := range bars {
		if values, ok := st.Series(spec.key); ok {
			barData.Datasets = append(barData.Datasets, chart.Dataset{Label: spec.label, Values: values})
		}
	}
	var charts []ChartSpec
	if len(barData.Datasets) > 0 {
		charts = append(charts, ChartSpec{Kind: ChartBar, Title: chartTitle, Unit: UnitCurrency, Weight: 60,
			Options: chart.Options{ShowLegend: true, ShowValues: true}, Data: barData})
	}
	if line != nil {
		if values, ok := st.Series(line.key); ok {
			charts = append(charts, ChartSpec{Kind: ChartLine, Title: line.label, Unit: UnitCurrency, Weight: 40,
				Options: chart.Options{ShowDots: true, ShowValues: true},
				Data:    chart.Data{Labels: st.Safras, Datasets: []chart.Dataset{{Label: line.label, Values: values, Color: tone(env.Theme.Primary)}}}})
		}
	}
	if len(charts) > 0 {
		c.Rows = []ChartRow{{Height: 64, Charts: charts}}
	}
	c.Tables = []table.Table{StatementTable(section.Title(), st)}
	return c, nil
}

// StatementTable converts a statement into a table with one column per
// safra. Nested lines are indented; header lines without values render as
// group rows.
func StatementTable(title string, st reportdata.Statement) table.Table {
	cols := append([]table.Column{{Header: "Conta", Field: "label", Weight: 2.6}}, safraColumns(st.Safras, table.Currency, 0)...)
	flat := st.Flatten()
	rows := make([]table.Row, 0, len(flat))
	for _, l := range flat {
		values := map[string]any{"label": l.Label}
		for _, s := range st.Safras {
			if v, ok := l.Values[s]; ok {
				values[s] = v
			}
		}
		rows = append(rows, table.Row{Kind: rowKind(l.Kind), Indent: l.Depth, Values: values})
	}
	return table.Table{Title: title, Columns: cols, Rows: rows}
}

func rowKind(k reportdata.LineKind) table.RowKind {
	switch k {
	case reportdata.LineSubtotal:
		return table.Subtotal
	case reportdata.LineTotal:
		return table.Total
	case reportdata.LineHeader:
		return table.Group
	default:
		return table.Normal
	}
}
