package reportdata

import "time"

// Sample returns a complete report for a mid-sized grain producer. It backs
// the CLI --sample flag and the renderer tests.
func Sample(now time.Time) *ReportData {
	safras := []string{"2023/24", "2024/25", "2025/26", "2026/27"}
	return &ReportData{
		OrganizationID:   "org-demo",
		OrganizationName: "Fazendas Boa Vista",
		GeneratedAt:      now,
		Properties: &PropertiesStats{
			TotalProperties:  3,
			OwnedProperties:  2,
			LeasedProperties: 1,
			TotalArea:        5400,
			OwnedArea:        3900,
			LeasedArea:       1500,
			CultivatedArea:   4800,
			TotalValue:       187_500_000,
			Properties: []PropertySummary{
				{Name: "Fazenda Boa Vista", City: "Sorriso", State: "MT", Ownership: OwnershipOwned, Area: 2500, CultivatedArea: 2300, Value: 112_500_000},
				{Name: "Fazenda Santa Rita", City: "Lucas do Rio Verde", State: "MT", Ownership: OwnershipOwned, Area: 1400, CultivatedArea: 1200, Value: 75_000_000},
				{Name: "Sítio Três Irmãos", City: "Sinop", State: "MT", Ownership: OwnershipLeased, Area: 1500, CultivatedArea: 1300},
			},
		},
		PlantingArea: &PlantingAreaData{
			Seasons: []CropSeason{
				{Safra: safras[0], Crops: map[string]float64{"Soja": 4200, "Milho 2ª": 2600, "Algodão": 400}, Total: 7200},
				{Safra: safras[1], Crops: map[string]float64{"Soja": 4300, "Milho 2ª": 2800, "Algodão": 500}, Total: 7600},
				{Safra: safras[2], Crops: map[string]float64{"Soja": 4500, "Milho 2ª": 3000, "Algodão": 500}, Total: 8000},
				{Safra: safras[3], Crops: map[string]float64{"Soja": 4600, "Milho 2ª": 3100, "Algodão": 600}, Total: 8300},
			},
			Details: []CropDetail{
				{Crop: "Soja", System: "Sequeiro", Cycle: "1ª safra", Values: map[string]float64{safras[0]: 4200, safras[1]: 4300, safras[2]: 4500, safras[3]: 4600}},
				{Crop: "Milho 2ª", System: "Sequeiro", Cycle: "2ª safra", Values: map[string]float64{safras[0]: 2600, safras[1]: 2800, safras[2]: 3000, safras[3]: 3100}},
				{Crop: "Algodão", System: "Irrigado", Cycle: "2ª safra", Values: map[string]float64{safras[0]: 400, safras[1]: 500, safras[2]: 500, safras[3]: 600}},
			},
		},
		Productivity: &ProductivityData{
			Seasons: []CropSeason{
				{Safra: safras[0], Crops: map[string]float64{"Soja": 62, "Milho 2ª": 110, "Algodão": 290}},
				{Safra: safras[1], Crops: map[string]float64{"Soja": 64, "Milho 2ª": 115, "Algodão": 295}},
				{Safra: safras[2], Crops: map[string]float64{"Soja": 65, "Milho 2ª": 118, "Algodão": 300}},
				{Safra: safras[3], Crops: map[string]float64{"Soja": 66, "Milho 2ª": 120, "Algodão": 305}},
			},
			Details: []CropDetail{
				{Crop: "Soja", Unit: "sc/ha", Values: map[string]float64{safras[0]: 62, safras[1]: 64, safras[2]: 65, safras[3]: 66}},
				{Crop: "Milho 2ª", Unit: "sc/ha", Values: map[string]float64{safras[0]: 110, safras[1]: 115, safras[2]: 118, safras[3]: 120}},
				{Crop: "Algodão", Unit: "@/ha", Values: map[string]float64{safras[0]: 290, safras[1]: 295, safras[2]: 300, safras[3]: 305}},
			},
		},
		Revenue: &RevenueData{
			Seasons: []CropSeason{
				{Safra: safras[0], Crops: map[string]float64{"Soja": 32_500_000, "Milho 2ª": 14_300_000, "Algodão": 17_400_000}, Total: 64_200_000},
				{Safra: safras[1], Crops: map[string]float64{"Soja": 34_900_000, "Milho 2ª": 16_100_000, "Algodão": 22_100_000}, Total: 73_100_000},
				{Safra: safras[2], Crops: map[string]float64{"Soja": 37_000_000, "Milho 2ª": 17_700_000, "Algodão": 22_500_000}, Total: 77_200_000},
				{Safra: safras[3], Crops: map[string]float64{"Soja": 38_500_000, "Milho 2ª": 18_600_000, "Algodão": 27_400_000}, Total: 84_500_000},
			},
		},
		FinancialEvolution: &FinancialEvolutionData{
			Seasons: []FinancialSeason{
				{Safra: safras[0], Revenue: 64_200_000, Cost: 45_100_000, EBITDA: 17_300_000, NetProfit: 9_800_000},
				{Safra: safras[1], Revenue: 73_100_000, Cost: 50_400_000, EBITDA: 20_600_000, NetProfit: 12_100_000},
				{Safra: safras[2], Revenue: 77_200_000, Cost: 52_900_000, EBITDA: 22_000_000, NetProfit: 13_400_000},
				{Safra: safras[3], Revenue: 84_500_000, Cost: 57_100_000, EBITDA: 24_900_000, NetProfit: 15_700_000},
			},
		},
		Liabilities: &LiabilitiesData{
			TotalDebt:    58_000_000,
			BankDebt:     41_000_000,
			LandDebt:     12_000_000,
			SupplierDebt: 5_000_000,
			Cash:         9_500_000,
			ByBank: []Share{
				{Label: "Banco do Brasil", Value: 18_000_000},
				{Label: "Bradesco", Value: 11_000_000},
				{Label: "Sicredi", Value: 8_000_000},
				{Label: "Rabobank", Value: 4_000_000},
			},
			ByCategory: []Share{{Label: "Custeio", Value: 60}, {Label: "Investimentos", Value: 40}},
			Evolution: []DebtSeason{
				{Safra: safras[0], BankDebt: 41_000_000, LandDebt: 12_000_000, SupplierDebt: 5_000_000, Cash: 9_500_000},
				{Safra: safras[1], BankDebt: 37_000_000, LandDebt: 9_000_000, SupplierDebt: 4_500_000, Cash: 11_000_000},
				{Safra: safras[2], BankDebt: 32_000_000, LandDebt: 6_000_000, SupplierDebt: 4_000_000, Cash: 13_000_000},
				{Safra: safras[3], BankDebt: 27_000_000, LandDebt: 3_000_000, SupplierDebt: 4_000_000, Cash: 15_500_000},
			},
		},
		EconomicIndicators: &EconomicIndicatorsData{
			Seasons: []IndicatorSeason{
				{Safra: safras[0], DebtToRevenue: 0.90, DebtToEBITDA: 3.35, NetDebtToRevenue: 0.76, NetDebtToEBITDA: 2.80, DebtToAssets: 0.29},
				{Safra: safras[1], DebtToRevenue: 0.69, DebtToEBITDA: 2.45, NetDebtToRevenue: 0.54, NetDebtToEBITDA: 1.92, DebtToAssets: 0.24},
				{Safra: safras[2], DebtToRevenue: 0.54, DebtToEBITDA: 1.91, NetDebtToRevenue: 0.38, NetDebtToEBITDA: 1.32, DebtToAssets: 0.20},
				{Safra: safras[3], DebtToRevenue: 0.40, DebtToEBITDA: 1.37, NetDebtToRevenue: 0.22, NetDebtToEBITDA: 0.74, DebtToAssets: 0.15},
			},
		},
		LiabilitiesAnalysis: &LiabilitiesAnalysisData{
			Seasons: []DebtAnalysisSeason{
				{Safra: safras[0], BankDebt: 41_000_000, LandDebt: 12_000_000, SupplierDebt: 5_000_000, Cash: 9_500_000, Revenue: 64_200_000, EBITDA: 17_300_000, Assets: 201_000_000},
				{Safra: safras[1], BankDebt: 37_000_000, LandDebt: 9_000_000, SupplierDebt: 4_500_000, Cash: 11_000_000, Revenue: 73_100_000, EBITDA: 20_600_000, Assets: 209_000_000},
				{Safra: safras[2], BankDebt: 32_000_000, LandDebt: 6_000_000, SupplierDebt: 4_000_000, Cash: 13_000_000, Revenue: 77_200_000, EBITDA: 22_000_000, Assets: 214_000_000},
				{Safra: safras[3], BankDebt: 27_000_000, LandDebt: 3_000_000, SupplierDebt: 4_000_000, Cash: 15_500_000, Revenue: 84_500_000, EBITDA: 24_900_000, Assets: 226_000_000},
			},
		},
		Investments: &InvestmentsData{
			Years: []InvestmentYear{
				{Year: 2022, Value: 6_400_000, Realized: true},
				{Year: 2023, Value: 8_100_000, Realized: true},
				{Year: 2024, Value: 5_200_000, Realized: true},
				{Year: 2025, Value: 7_000_000},
				{Year: 2026, Value: 4_500_000},
			},
			Categories: []Share{
				{Label: "Máquinas", Value: 14_000_000},
				{Label: "Benfeitorias", Value: 6_500_000},
				{Label: "Solo", Value: 4_200_000},
				{Label: "Tecnologia", Value: 1_500_000},
			},
		},
		CashFlow: &CashFlowProjectionData{Statement: Statement{
			Safras: safras,
			Lines: []StatementLine{
				{Key: KeyCashOperating, Label: "Fluxo operacional", Kind: LineSubtotal, Values: seasonValues(safras, 15_900_000, 18_700_000, 20_100_000, 22_800_000), Children: []StatementLine{
					{Label: "Recebimentos", Values: seasonValues(safras, 64_200_000, 73_100_000, 77_200_000, 84_500_000)},
					{Label: "Desembolsos de custeio", Values: seasonValues(safras, -48_300_000, -54_400_000, -57_100_000, -61_700_000)},
				}},
				{Key: KeyCashInvesting, Label: "Fluxo de investimentos", Kind: LineSubtotal, Values: seasonValues(safras, -5_200_000, -7_000_000, -4_500_000, -3_000_000)},
				{Key: KeyCashFinancing, Label: "Fluxo de financiamentos", Kind: LineSubtotal, Values: seasonValues(safras, -9_200_000, -10_200_000, -13_600_000, -17_300_000)},
				{Key: KeyCashClosing, Label: "Saldo final de caixa", Kind: LineTotal, Values: seasonValues(safras, 9_500_000, 11_000_000, 13_000_000, 15_500_000)},
			},
		}},
		DRE: &DREData{Statement: Statement{
			Safras: safras,
			Lines: []StatementLine{
				{Key: KeyGrossRevenue, Label: "Receita bruta", Kind: LineSubtotal, Values: seasonValues(safras, 64_200_000, 73_100_000, 77_200_000, 84_500_000)},
				{Label: "Impostos sobre vendas", Values: seasonValues(safras, -1_300_000, -1_500_000, -1_500_000, -1_700_000)},
				{Key: KeyNetRevenue, Label: "Receita líquida", Kind: LineSubtotal, Values: seasonValues(safras, 62_900_000, 71_600_000, 75_700_000, 82_800_000)},
				{Label: "Custos de produção", Values: seasonValues(safras, -45_600_000, -51_000_000, -53_700_000, -57_900_000)},
				{Key: KeyEBITDA, Label: "EBITDA", Kind: LineSubtotal, Values: seasonValues(safras, 17_300_000, 20_600_000, 22_000_000, 24_900_000)},
				{Label: "Despesas financeiras", Values: seasonValues(safras, -5_100_000, -5_700_000, -5_500_000, -5_100_000)},
				{Label: "Depreciação e IR", Values: seasonValues(safras, -2_400_000, -2_800_000, -3_100_000, -4_100_000)},
				{Key: KeyNetProfit, Label: "Lucro líquido", Kind: LineTotal, Values: seasonValues(safras, 9_800_000, 12_100_000, 13_400_000, 15_700_000)},
			},
		}},
		BalanceSheet: &BalanceSheetData{Statement: Statement{
			Safras: safras,
			Lines: []StatementLine{
				{Key: KeyTotalAssets, Label: "Ativo total", Kind: LineTotal, Values: seasonValues(safras, 201_000_000, 209_000_000, 214_000_000, 226_000_000), Children: []StatementLine{
					{Label: "Ativo circulante", Values: seasonValues(safras, 28_000_000, 31_000_000, 33_000_000, 38_000_000)},
					{Label: "Ativo não circulante", Values: seasonValues(safras, 173_000_000, 178_000_000, 181_000_000, 188_000_000)},
				}},
				{Key: KeyTotalLiability, Label: "Passivo total", Kind: LineSubtotal, Values: seasonValues(safras, 58_000_000, 50_500_000, 42_000_000, 34_000_000)},
				{Key: KeyEquity, Label: "Patrimônio líquido", Kind: LineTotal, Values: seasonValues(safras, 143_000_000, 158_500_000, 172_000_000, 192_000_000)},
			},
		}},
	}
}

func seasonValues(safras []string, values ...float64) map[string]float64 {
	out := make(map[string]float64, len(safras))
	for i, s := range safras {
		if i < len(values) {
			out[s] = values[i]
		}
	}
	return out
}
