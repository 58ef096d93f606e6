// Package reportdata defines the immutable aggregate consumed by every report
// page builder.
package reportdata

import "time"

// ReportData is the fully computed snapshot a report is rendered from.
// Sections left nil are skipped by the renderers.
type ReportData struct {
	OrganizationID   string    `json:"organizationId"`
	OrganizationName string    `json:"organizationName" validate:"required"`
	ReportTitle      string    `json:"reportTitle,omitempty"`
	GeneratedAt      time.Time `json:"generatedAt"`

	Properties          *PropertiesStats         `json:"propertiesStats,omitempty" validate:"omitempty"`
	PlantingArea        *PlantingAreaData        `json:"plantingAreaData,omitempty" validate:"omitempty"`
	Productivity        *ProductivityData        `json:"productivityData,omitempty" validate:"omitempty"`
	Revenue             *RevenueData             `json:"revenueData,omitempty" validate:"omitempty"`
	FinancialEvolution  *FinancialEvolutionData  `json:"financialEvolutionData,omitempty" validate:"omitempty"`
	Liabilities         *LiabilitiesData         `json:"liabilitiesData,omitempty" validate:"omitempty"`
	EconomicIndicators  *EconomicIndicatorsData  `json:"economicIndicatorsData,omitempty"`
	LiabilitiesAnalysis *LiabilitiesAnalysisData `json:"liabilitiesAnalysisData,omitempty"`
	Investments         *InvestmentsData         `json:"investmentsData,omitempty" validate:"omitempty"`
	CashFlow            *CashFlowProjectionData  `json:"cashFlowProjectionData,omitempty"`
	DRE                 *DREData                 `json:"dreData,omitempty"`
	BalanceSheet        *BalanceSheetData        `json:"balanceSheetData,omitempty"`
}

// Title returns the report title, defaulting to the standard name.
func (d *ReportData) Title() string {
	if d == nil || d.ReportTitle == "" {
		return "Relatório de Análise Financeira"
	}
	return d.ReportTitle
}

// Ownership classifies how a property is held.
type Ownership string

const (
	OwnershipOwned  Ownership = "PROPRIO"
	OwnershipLeased Ownership = "ARRENDADO"
)

// PropertiesStats summarises the farm portfolio.
type PropertiesStats struct {
	TotalProperties  int               `json:"totalProperties" validate:"gte=0"`
	OwnedProperties  int               `json:"ownedProperties" validate:"gte=0"`
	LeasedProperties int               `json:"leasedProperties" validate:"gte=0"`
	TotalArea        float64           `json:"totalArea" validate:"gte=0"`
	OwnedArea        float64           `json:"ownedArea" validate:"gte=0"`
	LeasedArea       float64           `json:"leasedArea" validate:"gte=0"`
	CultivatedArea   float64           `json:"cultivatedArea" validate:"gte=0"`
	TotalValue       float64           `json:"totalValue"`
	Properties       []PropertySummary `json:"properties" validate:"dive"`
}

// PropertySummary is one row of the properties table.
type PropertySummary struct {
	Name           string    `json:"name" validate:"required"`
	City           string    `json:"city"`
	State          string    `json:"state"`
	Ownership      Ownership `json:"ownership"`
	Area           float64   `json:"area" validate:"gte=0"`
	CultivatedArea float64   `json:"cultivatedArea" validate:"gte=0"`
	Value          float64   `json:"value"`
}

// CropSeason is a per-crop breakdown for one harvest season (safra).
type CropSeason struct {
	Safra string             `json:"safra" validate:"required"`
	Crops map[string]float64 `json:"crops"`
	Total float64            `json:"total"`
}

// CropDetail is a crop/system row with one value per safra.
type CropDetail struct {
	Crop   string             `json:"crop"`
	System string             `json:"system,omitempty"`
	Cycle  string             `json:"cycle,omitempty"`
	Unit   string             `json:"unit,omitempty"`
	Values map[string]float64 `json:"values"`
}

// PlantingAreaData holds planted hectares per crop and season.
type PlantingAreaData struct {
	Seasons []CropSeason `json:"seasons" validate:"dive"`
	Details []CropDetail `json:"details"`
}

// ProductivityData holds yields (usually sc/ha) per crop and season.
type ProductivityData struct {
	Seasons []CropSeason `json:"seasons" validate:"dive"`
	Details []CropDetail `json:"details"`
}

// RevenueData holds gross revenue per crop and season.
type RevenueData struct {
	Seasons []CropSeason `json:"seasons" validate:"dive"`
}

// FinancialSeason is a P&L snapshot for one safra.
type FinancialSeason struct {
	Safra     string  `json:"safra" validate:"required"`
	Revenue   float64 `json:"revenue"`
	Cost      float64 `json:"cost"`
	EBITDA    float64 `json:"ebitda"`
	NetProfit float64 `json:"netProfit"`
}

// FinancialEvolutionData is the P&L series across safras.
type FinancialEvolutionData struct {
	Seasons []FinancialSeason `json:"seasons" validate:"dive"`
}

// Share is a labelled slice of a distribution.
type Share struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// DebtSeason is the debt composition at the end of one safra.
type DebtSeason struct {
	Safra        string  `json:"safra"`
	BankDebt     float64 `json:"bankDebt"`
	LandDebt     float64 `json:"landDebt"`
	SupplierDebt float64 `json:"supplierDebt"`
	Cash         float64 `json:"cash"`
}

// Total is the gross debt of the season.
func (d DebtSeason) Total() float64 { return d.BankDebt + d.LandDebt + d.SupplierDebt }

// Net is gross debt minus cash.
func (d DebtSeason) Net() float64 { return d.Total() - d.Cash }

// LiabilitiesData describes the current debt position.
type LiabilitiesData struct {
	TotalDebt    float64      `json:"totalDebt"`
	BankDebt     float64      `json:"bankDebt"`
	LandDebt     float64      `json:"landDebt"`
	SupplierDebt float64      `json:"supplierDebt"`
	Cash         float64      `json:"cash"`
	ByBank       []Share      `json:"byBank"`
	ByCategory   []Share      `json:"byCategory"`
	Evolution    []DebtSeason `json:"evolution"`
}

// NetDebt is total debt minus cash.
func (l *LiabilitiesData) NetDebt() float64 { return l.TotalDebt - l.Cash }

// IndicatorSeason carries the leverage ratios of one safra.
type IndicatorSeason struct {
	Safra            string  `json:"safra"`
	DebtToRevenue    float64 `json:"debtToRevenue"`
	DebtToEBITDA     float64 `json:"debtToEbitda"`
	NetDebtToRevenue float64 `json:"netDebtToRevenue"`
	NetDebtToEBITDA  float64 `json:"netDebtToEbitda"`
	DebtToAssets     float64 `json:"debtToAssets"`
}

// EconomicIndicatorsData is the leverage ratio time series.
type EconomicIndicatorsData struct {
	Seasons []IndicatorSeason `json:"seasons"`
}

// DebtAnalysisSeason is the raw material for the liabilities analysis page.
type DebtAnalysisSeason struct {
	Safra        string  `json:"safra"`
	BankDebt     float64 `json:"bankDebt"`
	LandDebt     float64 `json:"landDebt"`
	SupplierDebt float64 `json:"supplierDebt"`
	Cash         float64 `json:"cash"`
	Revenue      float64 `json:"revenue"`
	EBITDA       float64 `json:"ebitda"`
	Assets       float64 `json:"assets"`
}

// TotalDebt sums the debt components.
func (d DebtAnalysisSeason) TotalDebt() float64 { return d.BankDebt + d.LandDebt + d.SupplierDebt }

// NetDebt is total debt minus cash.
func (d DebtAnalysisSeason) NetDebt() float64 { return d.TotalDebt() - d.Cash }

// LiabilitiesAnalysisData is the debt composition over time.
type LiabilitiesAnalysisData struct {
	Seasons []DebtAnalysisSeason `json:"seasons"`
}
