package htmlreport

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sr-consultoria/farmreport/internal/pages"
	"github.com/sr-consultoria/farmreport/internal/reportdata"
)

var fixedNow = time.Date(2025, time.March, 7, 10, 0, 0, 0, time.UTC)

type staticLogo struct {
	logo  *pages.Logo
	calls int
}

func (s *staticLogo) Logo() *pages.Logo {
	s.calls++
	return s.logo
}

func newBuilder(t *testing.T, engine ChartEngine, logo LogoSource) *Builder {
	t.Helper()
	b, err := NewBuilder(Config{Engine: engine, Logo: logo})
	require.NoError(t, err)
	b.WithNow(func() time.Time { return fixedNow })
	return b
}

func TestBuildSectionOrderMatchesCanvas(t *testing.T) {
	data := reportdata.Sample(fixedNow)
	html, err := newBuilder(t, EngineSVG, nil).Build(context.Background(), data)
	require.NoError(t, err)

	last := -1
	for _, s := range data.PresentSections() {
		idx := strings.Index(html, `data-section="`+string(s)+`"`)
		require.GreaterOrEqual(t, idx, 0, "missing section %s", s)
		assert.Greater(t, idx, last, "section %s out of order", s)
		last = idx
	}
	assert.Contains(t, html, "<svg")
	assert.NotContains(t, html, "<canvas")
}

func TestBuildSkipsAbsentSections(t *testing.T) {
	full := reportdata.Sample(fixedNow)
	data := &reportdata.ReportData{OrganizationName: full.OrganizationName, Properties: full.Properties}
	html, err := newBuilder(t, EngineSVG, nil).Build(context.Background(), data)
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(html, "data-section="))
	assert.Contains(t, html, `data-section="`+string(reportdata.SectionProperties)+`"`)
	assert.Contains(t, html, "1 seções analisadas")
	assert.Contains(t, html, "7 de março de 2025")
}

func TestBuildEmitsReadinessSignal(t *testing.T) {
	for _, engine := range []ChartEngine{EngineSVG, EngineChartJS} {
		t.Run(string(engine), func(t *testing.T) {
			html, err := newBuilder(t, engine, nil).Build(context.Background(), reportdata.Sample(fixedNow))
			require.NoError(t, err)
			assert.Contains(t, html, "window.__chartsReady = true")
			assert.Contains(t, html, "data-charts-ready")
		})
	}
}

func TestBuildChartJSEmbedsConfigs(t *testing.T) {
	html, err := newBuilder(t, EngineChartJS, nil).Build(context.Background(), reportdata.Sample(fixedNow))
	require.NoError(t, err)
	assert.Contains(t, html, DefaultChartJSURL)
	assert.Contains(t, html, "<canvas")
	assert.Contains(t, html, "doughnut")
	assert.Contains(t, html, "afterRender")
	assert.Contains(t, html, "data-charts-error")
}

func TestBuildInlinesLogoOnce(t *testing.T) {
	src := &staticLogo{logo: &pages.Logo{Data: []byte{0x89, 'P', 'N', 'G'}, Format: "PNG"}}
	html, err := newBuilder(t, EngineSVG, src).Build(context.Background(), reportdata.Sample(fixedNow))
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls)
	assert.Contains(t, html, "data:image/png;base64,")
}

func TestBuildRejectsInvalidData(t *testing.T) {
	_, err := newBuilder(t, EngineSVG, nil).Build(context.Background(), &reportdata.ReportData{})
	require.ErrorIs(t, err, reportdata.ErrInvalid)
}

func TestBuildHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newBuilder(t, EngineSVG, nil).Build(ctx, reportdata.Sample(fixedNow))
	require.ErrorIs(t, err, context.Canceled)
}

func TestParseEngine(t *testing.T) {
	e, err := ParseEngine(" ChartJS ")
	require.NoError(t, err)
	assert.Equal(t, EngineChartJS, e)

	e, err = ParseEngine("")
	require.NoError(t, err)
	assert.Equal(t, EngineSVG, e)

	_, err = ParseEngine("d3")
	require.Error(t, err)
}

func TestChartJSConfigDonut(t *testing.T) {
	cfg := chartJSConfig(pages.ChartSpec{Kind: pages.ChartDonut, Unit: pages.UnitCurrency})
	assert.Equal(t, "doughnut", cfg["type"])
	assert.Equal(t, "currency", cfg["unit"])
	options := cfg["options"].(map[string]any)
	assert.Equal(t, "58%", options["cutout"])
}
