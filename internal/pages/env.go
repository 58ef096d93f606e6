// Package pages computes the layout of every report page. Builders append
// drawing ops to a layout.Document and never touch a rendering engine.
package pages

import (
	"errors"
	"fmt"

	"github.com/sr-consultoria/farmreport/internal/layout"
	"github.com/sr-consultoria/farmreport/internal/reportdata"
)

// ErrEmptyStatement is returned for a statement section without safras.
var ErrEmptyStatement = errors.New("pages: statement has no safras")

// Logo is an encoded image shown on the cover and page headers.
type Logo struct {
	Data   []byte
	Format string
}

// Theme is the report palette.
type Theme struct {
	Primary   layout.Color
	Secondary layout.Color
	Accent    layout.Color
	Text      layout.Color
	Muted     layout.Color
	Light     layout.Color
	Card      layout.Color
	Positive  layout.Color
	Negative  layout.Color
	White     layout.Color
}

// DefaultTheme is the consultancy's green palette.
var DefaultTheme = Theme{
	Primary:   layout.Hex("#1b5e20"),
	Secondary: layout.Hex("#2e7d32"),
	Accent:    layout.Hex("#f9a825"),
	Text:      layout.Hex("#263238"),
	Muted:     layout.Hex("#78909c"),
	Light:     layout.Hex("#e8f5e9"),
	Card:      layout.Hex("#f5f8f6"),
	Positive:  layout.Hex("#2e7d32"),
	Negative:  layout.Hex("#c62828"),
	White:     layout.Hex("#ffffff"),
}

// Env carries what builders share besides the document: the palette and the
// optional logo.
type Env struct {
	Theme Theme
	Logo  *Logo
}

// NewEnv returns an Env with the default theme.
func NewEnv(logo *Logo) Env {
	return Env{Theme: DefaultTheme, Logo: logo}
}

// Builder lays out one section. It must return nil without adding pages
// when its data is absent.
type Builder func(doc *layout.Document, env Env, data *reportdata.ReportData) error

// Builders maps every optional section to its builder.
var Builders = map[reportdata.Section]Builder{
	reportdata.SectionProperties:          Properties,
	reportdata.SectionPlantingArea:        PlantingArea,
	reportdata.SectionProductivity:        Productivity,
	reportdata.SectionRevenue:             Revenue,
	reportdata.SectionFinancialEvolution:  FinancialEvolution,
	reportdata.SectionLiabilities:         Liabilities,
	reportdata.SectionEconomicIndicators:  EconomicIndicators,
	reportdata.SectionLiabilitiesAnalysis: LiabilitiesAnalysis,
	reportdata.SectionInvestments:         Investments,
	reportdata.SectionCashFlow:            CashFlow,
	reportdata.SectionDRE:                 DRE,
	reportdata.SectionBalanceSheet:        BalanceSheet,
}

// Margins used by every report page.
var Margins = layout.Margins{Top: 12, Right: 12, Bottom: 14, Left: 12}

// NewDocument returns an empty A4 landscape document with report margins.
func NewDocument(data *reportdata.ReportData) *layout.Document {
	doc := layout.NewDocument(layout.A4Landscape, Margins)
	if data != nil {
		doc.Metadata["title"] = data.Title()
		doc.Metadata["author"] = data.OrganizationName
		doc.Metadata["subject"] = fmt.Sprintf("%s - %s", data.Title(), data.OrganizationName)
	}
	return doc
}
