package reportdata

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSampleIsValid(t *testing.T) {
	require.NoError(t, Validate(Sample(time.Now())))
}

func TestValidateRequiresOrganization(t *testing.T) {
	data := &ReportData{}
	err := Validate(data)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalid))
	require.Contains(t, err.Error(), "OrganizationName")
}

func TestValidateDetectsMissingSeasonKey(t *testing.T) {
	data := Sample(time.Now())
	delete(data.DRE.Lines[0].Values, "2025/26")

	err := Validate(data)
	require.Error(t, err)
	var alignment *SeasonAlignmentError
	require.True(t, errors.As(err, &alignment))
	require.Equal(t, "dre", alignment.Section)
	require.Equal(t, "Receita bruta", alignment.Line)
	require.Equal(t, []string{"2025/26"}, alignment.Missing)
	require.True(t, errors.Is(err, ErrInvalid))
}

func TestValidateDetectsNestedExtraKey(t *testing.T) {
	data := Sample(time.Now())
	data.CashFlow.Lines[0].Children[1].Values["2030/31"] = 1

	err := Validate(data)
	var alignment *SeasonAlignmentError
	require.True(t, errors.As(err, &alignment))
	require.Equal(t, "cashFlow", alignment.Section)
	require.Equal(t, []string{"2030/31"}, alignment.Extra)
}

func TestValidateDetectsSafraOrderMismatch(t *testing.T) {
	data := Sample(time.Now())
	safras := append([]string(nil), data.BalanceSheet.Safras...)
	safras[0], safras[1] = safras[1], safras[0]
	data.BalanceSheet.Safras = safras

	err := Validate(data)
	require.Error(t, err)
	require.Contains(t, err.Error(), "balanceSheet safras")
}

func TestValidateCropDetailsRejectsUnknownSeason(t *testing.T) {
	data := Sample(time.Now())
	data.PlantingArea.Details[0].Values["1999/00"] = 10

	err := Validate(data)
	var alignment *SeasonAlignmentError
	require.True(t, errors.As(err, &alignment))
	require.Equal(t, "plantingArea", alignment.Section)
}

func TestStatementSeries(t *testing.T) {
	data := Sample(time.Now())
	series, ok := data.DRE.Series(KeyNetProfit)
	require.True(t, ok)
	require.Equal(t, []float64{9_800_000, 12_100_000, 13_400_000, 15_700_000}, series)

	_, ok = data.DRE.Series("missing")
	require.False(t, ok)

	flat := data.CashFlow.Flatten()
	require.Equal(t, 1, flat[1].Depth)
}

func TestInvestmentsAggregates(t *testing.T) {
	inv := Sample(time.Now()).Investments
	require.InDelta(t, 19_700_000, inv.TotalRealized(), 1e-6)
	require.InDelta(t, 11_500_000, inv.TotalProjected(), 1e-6)
	require.InDelta(t, 5_750_000, inv.AverageProjected(), 1e-6)

	sum := 0.0
	for _, s := range inv.CategoryPercentages() {
		sum += s.Value
	}
	require.InDelta(t, 100, sum, 1e-9)

	require.Equal(t, []Share{{Label: "a"}}, Percentages([]Share{{Label: "a"}}))
}

func TestPresentSectionsFollowDocumentOrder(t *testing.T) {
	d := &ReportData{OrganizationName: "x", DRE: &DREData{}, Properties: &PropertiesStats{}}
	require.Equal(t, []Section{SectionProperties, SectionDRE}, d.PresentSections())
	require.Len(t, Sample(time.Now()).PresentSections(), len(SectionOrder))
}

func TestCropNamesOrderedByTotal(t *testing.T) {
	names := CropNames([]CropSeason{
		{Safra: "a", Crops: map[string]float64{"Milho": 10, "Soja": 30}},
		{Safra: "b", Crops: map[string]float64{"Algodão": 10, "Soja": 30}},
	})
	require.Equal(t, []string{"Soja", "Algodão", "Milho"}, names)
}
