package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sr-consultoria/farmreport/internal/layout"
)

func TestSliceAngles(t *testing.T) {
	angles := SliceAngles([]float64{60, 40})
	require.Len(t, angles, 2)
	assert.InDelta(t, 0, angles[0].Start, 1e-9)
	assert.InDelta(t, 216, angles[0].Sweep, 1e-9)
	assert.InDelta(t, 216, angles[1].Start, 1e-9)
	assert.InDelta(t, 144, angles[1].Sweep, 1e-9)
	assert.InDelta(t, 360, angles[0].Sweep+angles[1].Sweep, 1e-9)
}

func TestSliceAnglesZeroTotal(t *testing.T) {
	for _, a := range SliceAngles([]float64{0, 0, -3}) {
		assert.Zero(t, a.Sweep)
	}
}

func TestScaleZeroRange(t *testing.T) {
	s := NewScale(5, 5, 100, 0)
	assert.Equal(t, 0.0, s.Min)
	assert.Equal(t, 5.0, s.Max)
	assert.InDelta(t, 100, s.Map(0), 1e-9)
	assert.InDelta(t, 0, s.Map(5), 1e-9)

	flat := NewScale(0, 0, 100, 0)
	assert.Greater(t, flat.Max, flat.Min)
	assert.InDelta(t, 100, flat.Zero(), 1e-9)
}

func TestNiceScaleRoundsOutward(t *testing.T) {
	s := NiceScale(-120, 870, 100, 0, 5)
	assert.LessOrEqual(t, s.Min, -120.0)
	assert.GreaterOrEqual(t, s.Max, 870.0)
	ticks := s.Ticks(5)
	require.Len(t, ticks, 6)
	assert.Equal(t, s.Min, ticks[0])
	assert.Equal(t, s.Max, ticks[5])
}

func TestDonutDrawsWedgesAndPercentages(t *testing.T) {
	page := &layout.Page{}
	Donut(page, Box{X: 10, Y: 10, W: 120, H: 70, Title: "Dívida por categoria"}, []Slice{
		{Label: "Custeio", Value: 60},
		{Label: "Investimentos", Value: 40},
	})

	var wedges []layout.Wedge
	for _, op := range page.Ops {
		if w, ok := op.(layout.Wedge); ok {
			wedges = append(wedges, w)
		}
	}
	require.Len(t, wedges, 2)
	assert.InDelta(t, 216, wedges[0].Sweep, 1e-9)
	assert.InDelta(t, 144, wedges[1].Sweep, 1e-9)
	assert.Greater(t, wedges[0].Inner, 0.0)

	texts := page.Texts()
	assert.Contains(t, texts, "Dívida por categoria")
	assert.Contains(t, texts, "60,0%")
	assert.Contains(t, texts, "40,0%")
}

func TestPieHasNoHole(t *testing.T) {
	page := &layout.Page{}
	Pie(page, Box{X: 0, Y: 0, W: 100, H: 60}, []Slice{{Label: "A", Value: 1}})
	for _, op := range page.Ops {
		if w, ok := op.(layout.Wedge); ok {
			assert.Zero(t, w.Inner)
			assert.InDelta(t, 360, w.Sweep, 1e-9)
		}
	}
}

func TestBarEmptyData(t *testing.T) {
	page := &layout.Page{}
	Bar(page, Box{X: 0, Y: 0, W: 100, H: 60, Title: "Receita"}, Data{})
	assert.Contains(t, page.Texts(), "Sem dados")
}

func TestBarDrawsOneRectPerValue(t *testing.T) {
	page := &layout.Page{}
	Bar(page, Box{X: 0, Y: 0, W: 200, H: 80, Options: Options{ShowValues: true}}, Data{
		Labels: []string{"2023/24", "2024/25"},
		Datasets: []Dataset{
			{Label: "Receita", Values: []float64{100, 120}},
			{Label: "Custo", Values: []float64{-80, 90}},
		},
	})

	// card background + 4 bars
	rects := 0
	for _, op := range page.Ops {
		if _, ok := op.(layout.Rect); ok {
			rects++
		}
	}
	assert.Equal(t, 5, rects)
	assert.Contains(t, page.Texts(), "2023/24")
	assert.Contains(t, page.Texts(), "-80")
}

func TestBarWidensFixedDomainToFitData(t *testing.T) {
	page := &layout.Page{}
	box := Box{X: 0, Y: 50, W: 120, H: 60, Options: Options{Domain: &[2]float64{0, 100}}}
	Bar(page, box, Data{
		Labels:   []string{"Dívida/Ativos"},
		Datasets: []Dataset{{Label: "%", Values: []float64{180}}},
	})

	for _, op := range page.Ops {
		r, ok := op.(layout.Rect)
		if !ok {
			continue
		}
		assert.GreaterOrEqual(t, r.Y, box.Y)
		assert.LessOrEqual(t, r.Y+r.H, box.Y+box.H+1e-9)
	}
}

func TestStackedBarTotals(t *testing.T) {
	page := &layout.Page{}
	StackedBar(page, Box{X: 0, Y: 0, W: 200, H: 80, Options: Options{ShowValues: true, ShowLegend: true}}, Data{
		Labels: []string{"2024/25"},
		Datasets: []Dataset{
			{Label: "Bancos", Values: []float64{1500}},
			{Label: "Terras", Values: []float64{500}},
		},
	})
	texts := page.Texts()
	assert.Contains(t, texts, "2k")
	assert.Contains(t, texts, "Bancos")
	assert.Contains(t, texts, "Terras")
}

func TestLineThresholdDrawnDashed(t *testing.T) {
	page := &layout.Page{}
	Line(page, Box{X: 0, Y: 0, W: 200, H: 80, Options: Options{
		Thresholds: []Threshold{{Value: 3, Label: "Limite 3,0x", Color: layout.Hex("#c62828")}},
	}}, Data{
		Labels:   []string{"a", "b", "c"},
		Datasets: []Dataset{{Label: "Dívida/EBITDA", Values: []float64{1, 2, 2.5}}},
	})
	dashed := 0
	for _, op := range page.Ops {
		if l, ok := op.(layout.Line); ok && len(l.Dash) > 0 {
			dashed++
		}
	}
	assert.Equal(t, 1, dashed)
	assert.Contains(t, page.Texts(), "Limite 3,0x")
}

func TestHorizontalBarOrder(t *testing.T) {
	page := &layout.Page{}
	HorizontalBar(page, Box{X: 0, Y: 0, W: 150, H: 40}, []Slice{
		{Label: "Banco do Brasil", Value: 3_000_000},
		{Label: "Sicredi", Value: 1_000_000},
	})
	texts := page.Texts()
	require.Len(t, texts, 4)
	assert.Equal(t, "Banco do Brasil", texts[0])
	assert.Equal(t, "3M", texts[1])
	assert.Equal(t, "Sicredi", texts[2])
}
