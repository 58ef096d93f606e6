package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDocumentEnsureBreaksPage(t *testing.T) {
	doc := NewDocument(A4Landscape, Margins{Top: 10, Right: 10, Bottom: 15, Left: 10})
	decorated := 0
	doc.SetDecorator(func(d *Document, p *Page) float64 {
		decorated++
		p.FillRect(0, 0, d.Size.W, 20, RGB(30, 58, 95))
		return 25
	})
	doc.AddPage("dre")
	require.Equal(t, 25.0, doc.Y())
	require.False(t, doc.Ensure(100))

	doc.SetY(190)
	require.True(t, doc.Ensure(10))
	require.Equal(t, 2, doc.PageCount())
	require.Equal(t, "dre", doc.Current().Section)
	require.Equal(t, 2, decorated)
	require.Equal(t, 25.0, doc.Y())
}

func TestHex(t *testing.T) {
	require.Equal(t, RGB(0x1e, 0x3a, 0x5f), Hex("#1e3a5f"))
	require.Equal(t, "#1e3a5f", Hex("1E3A5F").String())
	require.Equal(t, Color{}, Hex("nope"))
}

func TestWedgePointsFollowArc(t *testing.T) {
	w := Wedge{CX: 50, CY: 50, R: 10, Start: 0, Sweep: 90}
	pts := w.Points(45)
	require.Len(t, pts, 4)
	require.InDelta(t, 50, pts[0].X, 1e-9)
	require.InDelta(t, 40, pts[0].Y, 1e-9)
	require.InDelta(t, 60, pts[2].X, 1e-9)
	require.InDelta(t, 50, pts[2].Y, 1e-9)
	require.Equal(t, Point{X: 50, Y: 50}, pts[3])

	donut := Wedge{CX: 0, CY: 0, R: 10, Inner: 5, Start: 0, Sweep: 180}
	dp := donut.Points(90)
	require.Len(t, dp, 6)
	require.InDelta(t, 5, math.Hypot(dp[5].X, dp[5].Y), 1e-9)
}

func TestTruncate(t *testing.T) {
	s := Truncate("Banco Nacional de Desenvolvimento", 20, 8, false)
	require.LessOrEqual(t, TextWidth(s, 8, false), 20.0)
	require.Contains(t, s, "…")
	require.Equal(t, "Soja", Truncate("Soja", 20, 8, false))
}
