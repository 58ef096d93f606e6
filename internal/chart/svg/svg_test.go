package svg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBarsProducesSVG(t *testing.T) {
	html, err := Bars(420, 220, []string{"2023/24", "2024/25"}, []Series{
		{Label: "Receita", Values: []float64{500, 600}},
		{Label: "Custo", Values: []float64{300, 320}},
	}, BarOpts{Title: "Receita x Custo"})
	require.NoError(t, err)
	output := string(html)
	assert.True(t, strings.HasPrefix(output, "<svg"))
	assert.Equal(t, 4, strings.Count(output, "aria-label=\""))
	assert.Contains(t, output, "Receita")
	assert.Contains(t, output, "2024/25")
}

func TestBarsValidation(t *testing.T) {
	_, err := Bars(420, 220, nil, []Series{{Label: "a", Values: []float64{1}}}, BarOpts{})
	require.Error(t, err)
	_, err = Bars(420, 220, []string{"x", "y"}, []Series{{Label: "a", Values: []float64{1}}}, BarOpts{})
	require.Error(t, err)
	_, err = Bars(10, 10, []string{"x"}, []Series{{Label: "a", Values: []float64{1}}}, BarOpts{})
	require.Error(t, err)
}

func TestStackedBarsShowsTotal(t *testing.T) {
	html, err := Bars(420, 220, []string{"2024/25"}, []Series{
		{Label: "Bancos", Values: []float64{1500}},
		{Label: "Terras", Values: []float64{500}},
	}, BarOpts{Stacked: true})
	require.NoError(t, err)
	assert.Contains(t, string(html), ">2k<")
}

func TestLineHandlesFlatSeries(t *testing.T) {
	limit := 3.0
	html, err := Line(0, 0, []string{"a", "b", "c"}, []Series{{Label: "Dívida/EBITDA", Values: []float64{0, 0, 0}}}, LineOpts{
		Title:      "Alavancagem",
		Limit:      &limit,
		LimitLabel: "Limite",
	})
	require.NoError(t, err)
	output := string(html)
	assert.Contains(t, output, "<path")
	assert.Contains(t, output, "stroke-dasharray=\"6,4\"")
	assert.NotContains(t, output, "NaN")
}

func TestDonutPercentages(t *testing.T) {
	html, err := Donut(480, 240, []Slice{{Label: "Custeio", Value: 60}, {Label: "Investimentos", Value: 40}}, DonutOpts{Hole: 0.6})
	require.NoError(t, err)
	output := string(html)
	assert.Equal(t, 2, strings.Count(output, "<path"))
	assert.Contains(t, output, "60,0%")
	assert.Contains(t, output, "40,0%")
}

func TestDonutRejectsZeroTotal(t *testing.T) {
	_, err := Donut(480, 240, []Slice{{Label: "a", Value: 0}}, DonutOpts{})
	require.Error(t, err)
}

func TestHorizontalBars(t *testing.T) {
	html, err := HorizontalBars(600, []Slice{{Label: "Banco do Brasil", Value: 3_000_000}}, BarOpts{})
	require.NoError(t, err)
	assert.Contains(t, string(html), "Banco do Brasil")
	assert.Contains(t, string(html), ">3M<")
}
