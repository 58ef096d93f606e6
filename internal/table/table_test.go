package table

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sr-consultoria/farmreport/internal/layout"
)

func newDoc() *layout.Document {
	doc := layout.NewDocument(layout.A4Landscape, layout.Margins{Top: 20, Right: 12, Bottom: 15, Left: 12})
	doc.AddPage("dre")
	return doc
}

func headerTexts(p *layout.Page, n int) []string {
	texts := p.Texts()
	if len(texts) < n {
		return texts
	}
	return texts[:n]
}

func TestDrawRepeatsHeaderOnEveryPage(t *testing.T) {
	doc := newDoc()
	cols := []Column{{Header: "Conta", Weight: 3}, {Header: "2024/25"}, {Header: "2025/26"}}
	var rows []Row
	for i := 0; i < 60; i++ {
		rows = append(rows, Row{Cells: []string{fmt.Sprintf("Linha %d", i), "1", "2"}})
	}

	pages := Draw(doc, Table{Columns: cols, Rows: rows})

	require.Len(t, pages, 3)
	assert.Equal(t, 3, doc.PageCount())
	for _, p := range pages {
		assert.Equal(t, []string{"Conta", "2024/25", "2025/26"}, headerTexts(p, 3))
		assert.Equal(t, "dre", p.Section)
	}
}

func TestDrawKeepsRowsInOrder(t *testing.T) {
	doc := newDoc()
	Draw(doc, Table{
		Title:   "DRE",
		Columns: []Column{{Header: "Conta"}, {Header: "Valor"}},
		Rows: []Row{
			{Cells: []string{"Receita", "R$ 10"}},
			{Cells: []string{"Lucro", "R$ 2"}, Kind: Total},
		},
	})
	assert.Equal(t, []string{"DRE", "Conta", "Valor", "Receita", "R$ 10", "Lucro", "R$ 2"}, doc.Current().Texts())
}

func TestTotalRowIsFilled(t *testing.T) {
	doc := newDoc()
	Draw(doc, Table{
		Columns: []Column{{Header: "Conta"}, {Header: "Valor"}},
		Rows:    []Row{{Cells: []string{"Total", "1"}, Kind: Total}},
	})
	fills := 0
	for _, op := range doc.Current().Ops {
		if r, ok := op.(layout.Rect); ok && r.Fill != nil && *r.Fill == DefaultStyle.Total {
			fills++
		}
	}
	assert.Equal(t, 1, fills)
}

func TestColumnWidthsSplitByWeight(t *testing.T) {
	ws := columnWidths([]Column{{Weight: 2}, {}, {Weight: 1}}, 100)
	assert.InDelta(t, 50, ws[0], 1e-9)
	assert.InDelta(t, 25, ws[1], 1e-9)
	assert.InDelta(t, 25, ws[2], 1e-9)
}

func TestHeight(t *testing.T) {
	h := Height(Table{Title: "x", Rows: make([]Row, 4)})
	assert.InDelta(t, 6*5+7+4, h, 1e-9)
}

func TestRowValuesFormattedByColumn(t *testing.T) {
	cols := []Column{
		{Header: "Item", Field: "name"},
		{Header: "Valor", Field: "value", Format: Currency, Decimals: 2},
		{Header: "Área", Field: "area", Format: Hectares},
		{Header: "Part.", Field: "share", Format: Percent, Decimals: 1},
	}
	row := Row{Values: map[string]any{"name": "Trator", "value": 25000.0, "area": 1234.5, "share": 12.5}}
	got := make([]string, len(cols))
	for i, c := range cols {
		got[i] = row.Cell(c, i)
	}
	assert.Equal(t, []string{"Trator", "R$ 25.000,00", "1.234,5 ha", "12,5%"}, got)
	assert.Equal(t, "", Row{Values: map[string]any{}}.Cell(cols[1], 1))
}
