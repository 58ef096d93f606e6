package htmlreport

import (
	"fmt"
	"html/template"

	"github.com/sr-consultoria/farmreport/internal/layout"
	"github.com/sr-consultoria/farmreport/internal/pages"
	"github.com/sr-consultoria/farmreport/internal/table"
)

type document struct {
	Title        string
	Organization string
	Date         string
	LongDate     string
	SectionCount int
	Logo         template.URL
	ChartJS      bool
	ChartJSURL   string
	Theme        theme
	Sections     []sectionView
}

// sectionPage pairs a section with the document chrome it is drawn in.
type sectionPage struct {
	Doc     document
	Section sectionView
}

type theme struct {
	Primary   template.CSS
	Secondary template.CSS
	Accent    template.CSS
	Text      template.CSS
	Muted     template.CSS
	Light     template.CSS
	Card      template.CSS
}

func themeOf(t pages.Theme) theme {
	return theme{
		Primary:   css(t.Primary),
		Secondary: css(t.Secondary),
		Accent:    css(t.Accent),
		Text:      css(t.Text),
		Muted:     css(t.Muted),
		Light:     css(t.Light),
		Card:      css(t.Card),
	}
}

type sectionView struct {
	ID     string
	Title  string
	KPIs   []kpiView
	Rows   []rowView
	Tables []tableView
}

type kpiView struct {
	Label string
	Value string
	Note  string
	Color template.CSS
}

type rowView struct {
	Charts []chartView
}

type chartView struct {
	ID     string
	Title  string
	Flex   template.CSS
	Height int
	SVG    template.HTML
	Config string
	Empty  bool
}

type tableView struct {
	Title   string
	Headers []cellView
	Rows    []tableRowView
}

type cellView struct {
	Text  string
	Align string
	Pad   template.CSS
}

type tableRowView struct {
	Class string
	Cells []cellView
}

func (b *Builder) section(index int, c *pages.Content) (sectionView, error) {
	view := sectionView{ID: string(c.Section), Title: c.Section.Title()}
	for _, k := range c.KPIs {
		kv := kpiView{Label: k.Label, Value: k.Value, Note: k.Note}
		if k.Tone != nil {
			kv.Color = css(*k.Tone)
		}
		view.KPIs = append(view.KPIs, kv)
	}
	for r, row := range c.Rows {
		rv := rowView{}
		total := 0.0
		for _, spec := range row.Charts {
			total += weightOf(spec)
		}
		for i, spec := range row.Charts {
			share := weightOf(spec) / total
			cv := chartView{
				ID:     fmt.Sprintf("chart-%d-%d-%d", index, r, i),
				Title:  spec.Title,
				Flex:   template.CSS(fmt.Sprintf("%.4f", share)),
				Height: pixels(row.Height),
			}
			if err := b.renderChart(&cv, spec, int(chartAreaWidth*share)); err != nil {
				return sectionView{}, err
			}
			rv.Charts = append(rv.Charts, cv)
		}
		view.Rows = append(view.Rows, rv)
	}
	for _, t := range c.Tables {
		view.Tables = append(view.Tables, tableOf(t))
	}
	return view, nil
}

func tableOf(t table.Table) tableView {
	tv := tableView{Title: t.Title}
	for i, col := range t.Columns {
		tv.Headers = append(tv.Headers, cellView{Text: col.Header, Align: alignClass(table.HeaderAlign(col, i))})
	}
	for _, row := range t.Rows {
		rv := tableRowView{Class: rowClass(row.Kind)}
		for i, col := range t.Columns {
			text := row.Cell(col, i)
			cell := cellView{Text: text, Align: alignClass(table.CellAlign(col, i, text))}
			if i == 0 && row.Indent > 0 {
				cell.Pad = template.CSS(fmt.Sprintf("%dpx", 8+row.Indent*14))
			}
			rv.Cells = append(rv.Cells, cell)
		}
		tv.Rows = append(tv.Rows, rv)
	}
	return tv
}

func rowClass(k table.RowKind) string {
	switch k {
	case table.Subtotal:
		return "subtotal"
	case table.Total:
		return "total"
	case table.Group:
		return "group"
	}
	return ""
}

func alignClass(a layout.Align) string {
	switch a {
	case layout.AlignCenter:
		return "center"
	case layout.AlignRight:
		return "right"
	}
	return "left"
}

func css(c layout.Color) template.CSS { return template.CSS(c.String()) }

func weightOf(spec pages.ChartSpec) float64 {
	if spec.Weight <= 0 {
		return 1
	}
	return spec.Weight
}

// pixels converts a canvas row height in millimetres to CSS pixels.
func pixels(mm float64) int { return int(mm * 3.4) }
