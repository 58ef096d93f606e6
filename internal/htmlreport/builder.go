// Package htmlreport renders the report as a standalone HTML document, the
// input of the headless browser rasterizers.
package htmlreport

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"time"

	"github.com/sr-consultoria/farmreport/internal/pages"
	"github.com/sr-consultoria/farmreport/internal/reportdata"
	"github.com/sr-consultoria/farmreport/web"
)

// ChartEngine selects how charts are drawn in the page.
type ChartEngine string

const (
	// EngineSVG inlines server rendered SVG.
	EngineSVG ChartEngine = "svg"
	// EngineChartJS draws charts in the browser with Chart.js.
	EngineChartJS ChartEngine = "chartjs"
)

// DefaultChartJSURL is the Chart.js bundle loaded by the chartjs engine.
const DefaultChartJSURL = "https://cdn.jsdelivr.net/npm/chart.js@4.4.1/dist/chart.umd.min.js"

// LogoSource yields the logo once per report. A nil logo is allowed.
type LogoSource interface {
	Logo() *pages.Logo
}

// Config wires the builder.
type Config struct {
	Engine     ChartEngine
	ChartJSURL string
	Logo       LogoSource
	Logger     *slog.Logger
}

// Builder renders report HTML from the embedded templates.
type Builder struct {
	tmpl       *template.Template
	engine     ChartEngine
	chartJSURL string
	logo       LogoSource
	logger     *slog.Logger
	now        func() time.Time
}

// ParseEngine validates an engine name; empty selects svg.
func ParseEngine(raw string) (ChartEngine, error) {
	switch ChartEngine(strings.ToLower(strings.TrimSpace(raw))) {
	case "", EngineSVG:
		return EngineSVG, nil
	case EngineChartJS:
		return EngineChartJS, nil
	}
	return "", fmt.Errorf("htmlreport: unknown chart engine %q", raw)
}

// NewBuilder parses the embedded templates.
func NewBuilder(cfg Config) (*Builder, error) {
	engine, err := ParseEngine(string(cfg.Engine))
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"sectionCtx": func(doc document, s sectionView) sectionPage { return sectionPage{Doc: doc, Section: s} },
	}).ParseFS(web.Templates, "templates/report/*.html")
	if err != nil {
		return nil, fmt.Errorf("htmlreport: parse templates: %w", err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	url := cfg.ChartJSURL
	if url == "" {
		url = DefaultChartJSURL
	}
	return &Builder{tmpl: tmpl, engine: engine, chartJSURL: url, logo: cfg.Logo, logger: logger, now: time.Now}, nil
}

// WithNow overrides the clock for deterministic tests.
func (b *Builder) WithNow(now func() time.Time) {
	if now != nil {
		b.now = now
	}
}

// Engine reports the configured chart engine.
func (b *Builder) Engine() ChartEngine { return b.engine }

// Build validates data and renders the document: a cover followed by one
// page per present section, in the canvas report order.
func (b *Builder) Build(ctx context.Context, data *reportdata.ReportData) (string, error) {
	if err := reportdata.Validate(data); err != nil {
		return "", err
	}
	if data.GeneratedAt.IsZero() {
		stamped := *data
		stamped.GeneratedAt = b.now()
		data = &stamped
	}

	var logo *pages.Logo
	if b.logo != nil {
		logo = b.logo.Logo()
	}
	env := pages.NewEnv(logo)
	doc := document{
		Title:        data.Title(),
		Organization: data.OrganizationName,
		Date:         pages.ShortDate(data),
		LongDate:     pages.LongDate(data),
		Logo:         logoURL(logo),
		ChartJS:      b.engine == EngineChartJS,
		ChartJSURL:   b.chartJSURL,
		Theme:        themeOf(env.Theme),
	}
	for i, section := range data.PresentSections() {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		content, err := pages.SectionContent(section, env, data)
		if err != nil {
			return "", fmt.Errorf("htmlreport: %s: %w", section, err)
		}
		if content == nil {
			continue
		}
		view, err := b.section(i, content)
		if err != nil {
			return "", fmt.Errorf("htmlreport: %s: %w", section, err)
		}
		doc.Sections = append(doc.Sections, view)
	}
	doc.SectionCount = len(doc.Sections)

	var buf bytes.Buffer
	if err := b.tmpl.ExecuteTemplate(&buf, "report.html", doc); err != nil {
		return "", fmt.Errorf("htmlreport: execute: %w", err)
	}
	return buf.String(), nil
}

func logoURL(logo *pages.Logo) template.URL {
	if logo == nil || len(logo.Data) == 0 {
		return ""
	}
	mime := "image/png"
	switch logo.Format {
	case "JPG":
		mime = "image/jpeg"
	case "GIF":
		mime = "image/gif"
	}
	return template.URL("data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(logo.Data))
}
