// Package table lays out paginated tables with repeated headers.
package table

import (
	"fmt"
	"strings"

	"github.com/sr-consultoria/farmreport/internal/format"
	"github.com/sr-consultoria/farmreport/internal/layout"
)

// RowKind selects the styling of a row.
type RowKind int

const (
	Normal RowKind = iota
	Subtotal
	Total
	Group
)

// Format selects how a raw value is turned into cell text.
type Format string

const (
	Text     Format = "text"
	Currency Format = "currency"
	Number   Format = "number"
	Percent  Format = "percent"
	Hectares Format = "hectares"
)

// Column describes one column. Weight is relative to the other columns.
// Field names the key read from Row.Values.
type Column struct {
	Header   string
	Field    string
	Weight   float64
	Align    layout.Align
	Format   Format
	Decimals int
}

// Row is one line of cells. Cells holds preformatted text by column index;
// Values holds raw values by column field and wins when both are set.
// Indent shifts the first cell right.
type Row struct {
	Cells  []string
	Values map[string]any
	Kind   RowKind
	Indent int
}

// Cell returns the text of column i in row.
func (r Row) Cell(col Column, i int) string {
	if r.Values != nil && col.Field != "" {
		if v, ok := r.Values[col.Field]; ok {
			return formatValue(v, col)
		}
		return ""
	}
	if i < len(r.Cells) {
		return r.Cells[i]
	}
	return ""
}

// Style holds the table palette and metrics.
type Style struct {
	HeaderFill layout.Color
	HeaderText layout.Color
	Zebra      layout.Color
	Text       layout.Color
	Subtotal   layout.Color
	Total      layout.Color
	TotalText  layout.Color
	Border     layout.Color
	FontSize   float64
	RowHeight  float64
}

// DefaultStyle is the report table style.
var DefaultStyle = Style{
	HeaderFill: layout.Hex("#1b5e20"),
	HeaderText: layout.Hex("#ffffff"),
	Zebra:      layout.Hex("#f3f6f4"),
	Text:       layout.Hex("#263238"),
	Subtotal:   layout.Hex("#dcedc8"),
	Total:      layout.Hex("#2e7d32"),
	TotalText:  layout.Hex("#ffffff"),
	Border:     layout.Hex("#cfd8dc"),
	FontSize:   7.5,
	RowHeight:  6,
}

// Table is a titled grid of rows.
type Table struct {
	Title   string
	Columns []Column
	Rows    []Row
	Style   *Style
}

// Draw lays the table out at the document cursor, starting continuation
// pages whenever the next row does not fit. Every page the table touches
// starts with the same header row. It returns the pages drawn on.
func Draw(doc *layout.Document, t Table) []*layout.Page {
	style := DefaultStyle
	if t.Style != nil {
		style = *t.Style
	}
	x := doc.Margins.Left
	widths := columnWidths(t.Columns, doc.ContentWidth())
	titleH := 0.0
	if t.Title != "" {
		titleH = 7
	}

	doc.Ensure(titleH + 2*style.RowHeight)
	page := doc.Current()
	pages := []*layout.Page{page}
	if t.Title != "" {
		page.Label(x, doc.Y(), doc.ContentWidth(), titleH-1, t.Title, 9.5, true, style.Text, layout.AlignLeft)
		doc.Advance(titleH)
	}
	drawHeader(doc, page, x, widths, t.Columns, style)

	zebra := false
	for _, row := range t.Rows {
		if doc.Ensure(style.RowHeight) {
			page = doc.Current()
			pages = append(pages, page)
			drawHeader(doc, page, x, widths, t.Columns, style)
			zebra = false
		}
		drawRow(page, x, doc.Y(), widths, t.Columns, row, style, zebra)
		if row.Kind == Normal {
			zebra = !zebra
		}
		doc.Advance(style.RowHeight)
	}
	bottom := doc.Y()
	border := style.Border
	page.Add(layout.Line{X1: x, Y1: bottom, X2: x + sum(widths), Y2: bottom, Color: border, Width: 0.2})
	doc.Advance(4)
	return pages
}

// Height returns the vertical space the table needs without page breaks.
func Height(t Table) float64 {
	style := DefaultStyle
	if t.Style != nil {
		style = *t.Style
	}
	h := style.RowHeight * float64(len(t.Rows)+1)
	if t.Title != "" {
		h += 7
	}
	return h + 4
}

func drawHeader(doc *layout.Document, page *layout.Page, x float64, widths []float64, cols []Column, style Style) {
	y := doc.Y()
	page.FillRect(x, y, sum(widths), style.RowHeight, style.HeaderFill)
	cx := x
	for i, col := range cols {
		page.Label(cx+1.5, y, widths[i]-3, style.RowHeight, layout.Truncate(col.Header, widths[i]-3, style.FontSize, true), style.FontSize, true, style.HeaderText, HeaderAlign(col, i))
		cx += widths[i]
	}
	doc.Advance(style.RowHeight)
}

func drawRow(page *layout.Page, x, y float64, widths []float64, cols []Column, row Row, style Style, zebra bool) {
	text := style.Text
	bold := false
	switch row.Kind {
	case Subtotal:
		page.FillRect(x, y, sum(widths), style.RowHeight, style.Subtotal)
		bold = true
	case Total:
		page.FillRect(x, y, sum(widths), style.RowHeight, style.Total)
		text, bold = style.TotalText, true
	case Group:
		bold = true
	default:
		if zebra {
			page.FillRect(x, y, sum(widths), style.RowHeight, style.Zebra)
		}
	}
	cx := x
	for i := range cols {
		cell := row.Cell(cols[i], i)
		if cell == "" {
			cx += widths[i]
			continue
		}
		pad := 1.5
		if i == 0 && row.Indent > 0 {
			pad += 3 * float64(row.Indent)
		}
		w := widths[i] - pad - 1.5
		page.Label(cx+pad, y, w, style.RowHeight, layout.Truncate(cell, w, style.FontSize, bold), style.FontSize, bold, text, CellAlign(cols[i], i, cell))
		cx += widths[i]
	}
}

func columnWidths(cols []Column, total float64) []float64 {
	weights := 0.0
	for _, c := range cols {
		weights += weight(c)
	}
	out := make([]float64, len(cols))
	for i, c := range cols {
		out[i] = total * weight(c) / weights
	}
	return out
}

func weight(c Column) float64 {
	if c.Weight <= 0 {
		return 1
	}
	return c.Weight
}

// HeaderAlign is the header alignment of column i: the first column is
// left aligned, the others right aligned unless the column says otherwise.
func HeaderAlign(c Column, i int) layout.Align {
	if c.Align != "" {
		return c.Align
	}
	if i == 0 {
		return layout.AlignLeft
	}
	return layout.AlignRight
}

// CellAlign is the alignment of a body cell; empty cells stay left.
func CellAlign(c Column, i int, cell string) layout.Align {
	if c.Align != "" {
		return c.Align
	}
	if i == 0 || strings.TrimSpace(cell) == "" {
		return layout.AlignLeft
	}
	return layout.AlignRight
}

func sum(ws []float64) float64 {
	total := 0.0
	for _, w := range ws {
		total += w
	}
	return total
}

func formatValue(v any, col Column) string {
	var f float64
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return n
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case fmt.Stringer:
		return n.String()
	default:
		return fmt.Sprint(v)
	}
	switch col.Format {
	case Currency:
		return format.CurrencyDecimals(f, col.Decimals)
	case Percent:
		return format.Percent(f, col.Decimals)
	case Hectares:
		return format.Hectares(f)
	default:
		return format.Number(f, col.Decimals)
	}
}
