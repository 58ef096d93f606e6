package pages

import (
	"fmt"

	"github.com/sr-consultoria/farmreport/internal/layout"
	"github.com/sr-consultoria/farmreport/internal/reportdata"
)

const (
	headerHeight = 16.0
	cardHeight   = 20.0
	gap          = 4.0
)

var months = [...]string{"janeiro", "fevereiro", "março", "abril", "maio", "junho", "julho", "agosto", "setembro", "outubro", "novembro", "dezembro"}

// Cover draws the title page. It is always the first page.
func Cover(doc *layout.Document, env Env, data *reportdata.ReportData) error {
	doc.SetDecorator(nil)
	page := doc.AddPage("cover")
	t := env.Theme
	w, h := doc.Size.W, doc.Size.H

	page.FillRect(0, 0, w, h, t.Primary)
	page.FillRect(0, h*0.62, w, h*0.38, t.Secondary)
	page.FillRect(0, h*0.62, w, 1.5, t.Accent)

	if env.Logo != nil {
		page.FillRect(w/2-32, 22, 64, 40, t.White)
		page.Add(layout.Image{X: w/2 - 28, Y: 25, W: 56, H: 34, Name: "logo", Format: env.Logo.Format, Data: env.Logo.Data})
	}
	page.Label(20, 75, w-40, 14, data.Title(), 26, true, t.White, layout.AlignCenter)
	page.Label(20, 92, w-40, 10, data.OrganizationName, 16, false, t.White, layout.AlignCenter)

	sections := data.PresentSections()
	page.Label(20, h*0.62+12, w-40, 8, fmt.Sprintf("%d seções analisadas", len(sections)), 11, false, t.Light, layout.AlignCenter)
	page.Label(20, h*0.62+22, w-40, 8, LongDate(data), 11, false, t.White, layout.AlignCenter)
	page.Label(20, h-18, w-40, 6, "SR Consultoria", 9, true, t.Light, layout.AlignCenter)
	return nil
}

// Header returns the decorator drawing the band on top of content pages.
func Header(env Env, data *reportdata.ReportData) layout.PageDecorator {
	return func(doc *layout.Document, page *layout.Page) float64 {
		t := env.Theme
		w := doc.Size.W
		page.FillRect(0, 0, w, headerHeight, t.Primary)
		page.FillRect(0, headerHeight, w, 0.8, t.Accent)
		x := doc.Margins.Left
		if env.Logo != nil {
			page.FillRect(x-1, 2, 26, 12, t.White)
			page.Add(layout.Image{X: x, Y: 3, W: 24, H: 10, Name: "logo", Format: env.Logo.Format, Data: env.Logo.Data})
			x += 30
		}
		page.Label(x, 3, w/2, 6, data.Title(), 11, true, t.White, layout.AlignLeft)
		page.Label(x, 9, w/2, 5, data.OrganizationName, 8, false, t.Light, layout.AlignLeft)
		page.Label(w/2, 3, w/2-doc.Margins.Right, 6, reportdata.Section(page.Section).Title(), 9, true, t.White, layout.AlignRight)
		page.Label(w/2, 9, w/2-doc.Margins.Right, 5, ShortDate(data), 8, false, t.Light, layout.AlignRight)
		return headerHeight + 6
	}
}

// Footer numbers every page except the cover as "Página X de Y".
func Footer(doc *layout.Document, env Env, data *reportdata.ReportData) {
	total := doc.PageCount()
	y := doc.Size.H - doc.Margins.Bottom + 4
	for _, page := range doc.Pages {
		if page.Section == "cover" {
			continue
		}
		page.Add(layout.Line{X1: doc.Margins.Left, Y1: y - 1, X2: doc.Size.W - doc.Margins.Right, Y2: y - 1, Color: env.Theme.Light, Width: 0.3})
		page.Label(doc.Margins.Left, y, doc.ContentWidth()/2, 5, data.OrganizationName, 7, false, env.Theme.Muted, layout.AlignLeft)
		page.Label(doc.Size.W/2, y, doc.Size.W/2-doc.Margins.Right, 5, fmt.Sprintf("Página %d de %d", page.Number, total), 7, false, env.Theme.Muted, layout.AlignRight)
	}
}

// start opens the first page of a section and prints its title.
func start(doc *layout.Document, env Env, data *reportdata.ReportData, section reportdata.Section) *layout.Page {
	doc.SetDecorator(Header(env, data))
	page := doc.AddPage(string(section))
	sectionTitle(doc, env, section.Title())
	return page
}

func sectionTitle(doc *layout.Document, env Env, title string) {
	page := doc.Current()
	x, y := doc.Margins.Left, doc.Y()
	page.FillRect(x, y, 1.5, 8, env.Theme.Accent)
	page.Label(x+4, y, doc.ContentWidth()-4, 8, title, 14, true, env.Theme.Primary, layout.AlignLeft)
	doc.Advance(11)
}

// KPI is one headline number.
type KPI struct {
	Label string
	Value string
	Note  string
	Tone  *layout.Color
}

// Cards draws a row of KPI cards across the content width.
func Cards(doc *layout.Document, env Env, kpis []KPI) {
	if len(kpis) == 0 {
		return
	}
	doc.Ensure(cardHeight)
	page := doc.Current()
	t := env.Theme
	width := (doc.ContentWidth() - gap*float64(len(kpis)-1)) / float64(len(kpis))
	y := doc.Y()
	for i, k := range kpis {
		x := doc.Margins.Left + float64(i)*(width+gap)
		fill, border := t.Card, t.Light
		page.Add(layout.Rect{X: x, Y: y, W: width, H: cardHeight, Fill: &fill, Stroke: &border, LineWidth: 0.3, Radius: 1.5})
		page.FillRect(x, y, 1.2, cardHeight, t.Secondary)
		page.Label(x+4, y+2, width-6, 5, layout.Truncate(k.Label, width-6, 7.5, false), 7.5, false, t.Muted, layout.AlignLeft)
		tone := t.Text
		if k.Tone != nil {
			tone = *k.Tone
		}
		page.Label(x+4, y+7.5, width-6, 7, layout.Truncate(k.Value, width-6, 12, true), 12, true, tone, layout.AlignLeft)
		if k.Note != "" {
			page.Label(x+4, y+14, width-6, 4.5, layout.Truncate(k.Note, width-6, 6.5, false), 6.5, false, t.Muted, layout.AlignLeft)
		}
	}
	doc.Advance(cardHeight + gap)
}

// ShortDate formats the generation date as dd/mm/yyyy.
func ShortDate(data *reportdata.ReportData) string {
	if data.GeneratedAt.IsZero() {
		return ""
	}
	return data.GeneratedAt.Format("02/01/2006")
}

// LongDate spells the generation date out in Portuguese.
func LongDate(data *reportdata.ReportData) string {
	if data.GeneratedAt.IsZero() {
		return ""
	}
	d := data.GeneratedAt
	return fmt.Sprintf("%d de %s de %d", d.Day(), months[d.Month()-1], d.Year())
}

func tone(c layout.Color) *layout.Color { return &c }
