package reportdata

// InvestmentYear is the capex of a single year.
type InvestmentYear struct {
	Year     int     `json:"year" validate:"gte=1900"`
	Value    float64 `json:"value"`
	Realized bool    `json:"realized"`
}

// InvestmentsData is capex by year and by category.
type InvestmentsData struct {
	Years      []InvestmentYear `json:"years" validate:"dive"`
	Categories []Share          `json:"categories"`
}

// TotalRealized sums the realized years.
func (d *InvestmentsData) TotalRealized() float64 {
	total, _ := d.sum(true)
	return total
}

// TotalProjected sums the projected years.
func (d *InvestmentsData) TotalProjected() float64 {
	total, _ := d.sum(false)
	return total
}

// AverageRealized is the mean capex of realized years.
func (d *InvestmentsData) AverageRealized() float64 {
	total, n := d.sum(true)
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

// AverageProjected is the mean capex of projected years.
func (d *InvestmentsData) AverageProjected() float64 {
	total, n := d.sum(false)
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

// CategoryPercentages returns each category's share of the category total,
// in percent. An all-zero distribution yields zeros.
func (d *InvestmentsData) CategoryPercentages() []Share {
	return Percentages(d.Categories)
}

func (d *InvestmentsData) sum(realized bool) (float64, int) {
	if d == nil {
		return 0, 0
	}
	total := 0.0
	n := 0
	for _, y := range d.Years {
		if y.Realized == realized {
			total += y.Value
			n++
		}
	}
	return total, n
}

// Percentages converts absolute shares into percent of their sum.
func Percentages(shares []Share) []Share {
	total := 0.0
	for _, s := range shares {
		total += s.Value
	}
	out := make([]Share, len(shares))
	for i, s := range shares {
		out[i] = Share{Label: s.Label}
		if total != 0 {
			out[i].Value = s.Value / total * 100
		}
	}
	return out
}
