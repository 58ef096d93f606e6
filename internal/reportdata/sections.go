package reportdata

import "sort"

// Section identifies an optional report section.
type Section string

const (
	SectionProperties          Section = "properties"
	SectionPlantingArea        Section = "plantingArea"
	SectionProductivity        Section = "productivity"
	SectionRevenue             Section = "revenue"
	SectionFinancialEvolution  Section = "financialEvolution"
	SectionLiabilities         Section = "liabilities"
	SectionEconomicIndicators  Section = "economicIndicators"
	SectionLiabilitiesAnalysis Section = "liabilitiesAnalysis"
	SectionInvestments         Section = "investments"
	SectionCashFlow            Section = "cashFlow"
	SectionDRE                 Section = "dre"
	SectionBalanceSheet        Section = "balanceSheet"
)

// SectionOrder is the fixed document order after the cover.
var SectionOrder = []Section{
	SectionProperties,
	SectionPlantingArea,
	SectionProductivity,
	SectionRevenue,
	SectionFinancialEvolution,
	SectionLiabilities,
	SectionEconomicIndicators,
	SectionLiabilitiesAnalysis,
	SectionInvestments,
	SectionCashFlow,
	SectionDRE,
	SectionBalanceSheet,
}

var sectionTitles = map[Section]string{
	SectionProperties:          "Propriedades",
	SectionPlantingArea:        "Área Plantada",
	SectionProductivity:        "Produtividade",
	SectionRevenue:             "Receita Projetada",
	SectionFinancialEvolution:  "Evolução Financeira",
	SectionLiabilities:         "Endividamento",
	SectionEconomicIndicators:  "Indicadores Econômicos",
	SectionLiabilitiesAnalysis: "Análise do Passivo",
	SectionInvestments:         "Investimentos",
	SectionCashFlow:            "Fluxo de Caixa Projetado",
	SectionDRE:                 "DRE Projetada",
	SectionBalanceSheet:        "Balanço Patrimonial Projetado",
}

// Title is the heading printed for the section.
func (s Section) Title() string {
	if t, ok := sectionTitles[s]; ok {
		return t
	}
	return string(s)
}

// Has reports whether the section's data is present.
func (d *ReportData) Has(s Section) bool {
	if d == nil {
		return false
	}
	switch s {
	case SectionProperties:
		return d.Properties != nil
	case SectionPlantingArea:
		return d.PlantingArea != nil
	case SectionProductivity:
		return d.Productivity != nil
	case SectionRevenue:
		return d.Revenue != nil
	case SectionFinancialEvolution:
		return d.FinancialEvolution != nil
	case SectionLiabilities:
		return d.Liabilities != nil
	case SectionEconomicIndicators:
		return d.EconomicIndicators != nil
	case SectionLiabilitiesAnalysis:
		return d.LiabilitiesAnalysis != nil
	case SectionInvestments:
		return d.Investments != nil
	case SectionCashFlow:
		return d.CashFlow != nil
	case SectionDRE:
		return d.DRE != nil
	case SectionBalanceSheet:
		return d.BalanceSheet != nil
	}
	return false
}

// PresentSections lists the sections with data, in document order.
func (d *ReportData) PresentSections() []Section {
	var out []Section
	for _, s := range SectionOrder {
		if d.Has(s) {
			out = append(out, s)
		}
	}
	return out
}

// CropNames returns the union of crop names across seasons, ordered by their
// summed value (largest first) and then by name.
func CropNames(seasons []CropSeason) []string {
	totals := map[string]float64{}
	var names []string
	for _, s := range seasons {
		for crop, v := range s.Crops {
			if _, seen := totals[crop]; !seen {
				names = append(names, crop)
			}
			totals[crop] += v
		}
	}
	sortByTotal(names, totals)
	return names
}

// Safras returns the season labels of a crop series in order.
func Safras(seasons []CropSeason) []string {
	out := make([]string, len(seasons))
	for i, s := range seasons {
		out[i] = s.Safra
	}
	return out
}

func sortByTotal(names []string, totals map[string]float64) {
	sort.SliceStable(names, func(i, j int) bool {
		if totals[names[i]] != totals[names[j]] {
			return totals[names[i]] > totals[names[j]]
		}
		return names[i] < names[j]
	})
}
