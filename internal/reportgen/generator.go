// Package reportgen orchestrates report generation: validation, page
// layout, rendering, caching and the background job.
package reportgen

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sr-consultoria/farmreport/internal/layout"
	"github.com/sr-consultoria/farmreport/internal/pages"
	"github.com/sr-consultoria/farmreport/internal/pdf"
	"github.com/sr-consultoria/farmreport/internal/reportdata"
)

// DefaultLogoPath is used when no logo path is configured.
const DefaultLogoPath = "public/logosr.png"

// GeneratorConfig wires the canvas pipeline.
type GeneratorConfig struct {
	LogoPath string
	Logger   *slog.Logger
}

// Generator lays out and renders the canvas report.
type Generator struct {
	logoPath string
	logger   *slog.Logger
	renderer *pdf.Renderer
	now      func() time.Time
}

// NewGenerator constructs a Generator.
func NewGenerator(cfg GeneratorConfig) *Generator {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	path := strings.TrimSpace(cfg.LogoPath)
	if path == "" {
		path = DefaultLogoPath
	}
	return &Generator{logoPath: path, logger: logger, renderer: pdf.NewRenderer(logger), now: time.Now}
}

// WithNow overrides the clock for deterministic tests.
func (g *Generator) WithNow(now func() time.Time) {
	if now != nil {
		g.now = now
	}
}

// Layout validates data and computes every page. The cover is always
// present; each other section is added only when its data is. Builder
// errors abort the whole report.
func (g *Generator) Layout(ctx context.Context, data *reportdata.ReportData) (*layout.Document, error) {
	if err := reportdata.Validate(data); err != nil {
		return nil, err
	}
	if data.GeneratedAt.IsZero() {
		stamped := *data
		stamped.GeneratedAt = g.now()
		data = &stamped
	}

	doc := pages.NewDocument(data)
	env := pages.NewEnv(g.Logo())
	if err := pages.Cover(doc, env, data); err != nil {
		return nil, fmt.Errorf("reportgen: cover: %w", err)
	}
	for _, section := range data.PresentSections() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		build, ok := pages.Builders[section]
		if !ok {
			return nil, fmt.Errorf("reportgen: no builder for section %s", section)
		}
		if err := build(doc, env, data); err != nil {
			return nil, fmt.Errorf("reportgen: %s: %w", section, err)
		}
	}
	pages.Footer(doc, env, data)
	return doc, nil
}

// Render encodes a laid out document as PDF.
func (g *Generator) Render(doc *layout.Document) ([]byte, error) {
	return g.renderer.Render(doc)
}

// Generate returns the canvas PDF for data.
func (g *Generator) Generate(ctx context.Context, data *reportdata.ReportData) ([]byte, error) {
	doc, err := g.Layout(ctx, data)
	if err != nil {
		return nil, err
	}
	return g.Render(doc)
}

// Logo reads the logo file; callers invoke it once per report. A missing or
// unreadable file is logged and the report continues without an image.
func (g *Generator) Logo() *pages.Logo {
	raw, err := os.ReadFile(g.logoPath)
	if err != nil {
		g.logger.Warn("report logo unavailable", slog.String("path", g.logoPath), slog.Any("error", err))
		return nil
	}
	format, ok := imageFormat(g.logoPath, raw)
	if !ok {
		g.logger.Warn("report logo has unsupported format", slog.String("path", g.logoPath))
		return nil
	}
	return &pages.Logo{Data: raw, Format: format}
}

var (
	pngMagic  = []byte{0x89, 'P', 'N', 'G'}
	jpegMagic = []byte{0xFF, 0xD8, 0xFF}
)

func imageFormat(path string, raw []byte) (string, bool) {
	switch {
	case bytes.HasPrefix(raw, pngMagic):
		return "PNG", true
	case bytes.HasPrefix(raw, jpegMagic):
		return "JPG", true
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gif":
		return "GIF", true
	}
	return "", false
}
