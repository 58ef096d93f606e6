package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sr-consultoria/farmreport/internal/layout"
	"github.com/sr-consultoria/farmreport/internal/pages"
	"github.com/sr-consultoria/farmreport/internal/reportdata"
)

func TestRenderEmptyDocument(t *testing.T) {
	_, err := NewRenderer(nil).Render(layout.NewDocument(layout.A4Landscape, layout.Margins{}))
	require.ErrorIs(t, err, ErrEmptyDocument)
}

func TestRenderEveryOp(t *testing.T) {
	doc := layout.NewDocument(layout.A4Landscape, layout.Margins{Top: 10, Bottom: 10, Left: 10, Right: 10})
	doc.Metadata["title"] = "Relatório"
	page := doc.AddPage("test")
	fill, stroke := layout.Hex("#1b5e20"), layout.Hex("#000000")
	page.Add(
		layout.Rect{X: 10, Y: 10, W: 50, H: 20, Fill: &fill, Stroke: &stroke, LineWidth: 0.3, Radius: 2},
		layout.Rect{X: 70, Y: 10, W: 50, H: 20, Fill: &fill},
		layout.Line{X1: 10, Y1: 40, X2: 200, Y2: 40, Color: stroke, Width: 0.3, Dash: []float64{1, 1}},
		layout.Text{X: 10, Y: 50, W: 80, H: 6, Content: "Ação, produção e área média", Size: 10, Bold: true, Color: stroke, Align: layout.AlignRight},
		layout.Polyline{Points: []layout.Point{{X: 10, Y: 80}, {X: 40, Y: 70}, {X: 70, Y: 90}}, Color: fill, Width: 0.5},
		layout.Polygon{Points: []layout.Point{{X: 100, Y: 80}, {X: 120, Y: 70}, {X: 140, Y: 90}}, Fill: fill, Alpha: 0.3},
		layout.Circle{X: 150, Y: 100, R: 3, Fill: fill},
		layout.Wedge{CX: 200, CY: 120, R: 20, Inner: 10, Start: 0, Sweep: 216, Fill: fill},
	)

	out, err := NewRenderer(nil).Render(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRenderSkipsBrokenImage(t *testing.T) {
	doc := layout.NewDocument(layout.A4Landscape, layout.Margins{})
	page := doc.AddPage("cover")
	page.Add(layout.Image{X: 10, Y: 10, W: 20, H: 10, Name: "logo", Format: "PNG", Data: []byte("not a png")})
	page.Add(layout.Image{X: 10, Y: 30, W: 20, H: 10, Name: "logo", Format: "PNG", Data: []byte("not a png")})

	out, err := NewRenderer(nil).Render(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRenderSampleReport(t *testing.T) {
	data := reportdata.Sample(time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC))
	doc := pages.NewDocument(data)
	env := pages.NewEnv(nil)
	require.NoError(t, pages.Cover(doc, env, data))
	for _, s := range reportdata.SectionOrder {
		require.NoError(t, pages.Builders[s](doc, env, data))
	}
	pages.Footer(doc, env, data)

	out, err := NewRenderer(nil).Render(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Greater(t, len(out), 10_000)
}
