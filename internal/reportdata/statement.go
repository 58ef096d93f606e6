package reportdata

// LineKind controls how a statement line is styled.
type LineKind string

const (
	LineItem     LineKind = "item"
	LineSubtotal LineKind = "subtotal"
	LineTotal    LineKind = "total"
	LineHeader   LineKind = "header"
)

// StatementLine is one line item with a value per safra. Children are nested
// line items rendered indented below their parent.
type StatementLine struct {
	Key      string             `json:"key,omitempty"`
	Label    string             `json:"label"`
	Kind     LineKind           `json:"kind,omitempty"`
	Values   map[string]float64 `json:"values"`
	Children []StatementLine    `json:"children,omitempty"`
}

// Statement is a projected financial statement keyed by safra.
type Statement struct {
	Safras []string        `json:"safras"`
	Lines  []StatementLine `json:"lines"`
}

// CashFlowProjectionData is the projected cash flow statement.
type CashFlowProjectionData struct {
	Statement
}

// DREData is the projected income statement (Demonstração do Resultado).
type DREData struct {
	Statement
}

// BalanceSheetData is the projected balance sheet.
type BalanceSheetData struct {
	Statement
}

// FlatLine is a statement line with its nesting depth.
type FlatLine struct {
	StatementLine
	Depth int
}

// Flatten walks the lines depth first.
func (s Statement) Flatten() []FlatLine {
	out := make([]FlatLine, 0, len(s.Lines))
	var walk func(lines []StatementLine, depth int)
	walk = func(lines []StatementLine, depth int) {
		for _, l := range lines {
			out = append(out, FlatLine{StatementLine: l, Depth: depth})
			walk(l.Children, depth+1)
		}
	}
	walk(s.Lines, 0)
	return out
}

// Find returns the first line with the given key at any depth.
func (s Statement) Find(key string) (StatementLine, bool) {
	for _, l := range s.Flatten() {
		if l.Key == key {
			return l.StatementLine, true
		}
	}
	return StatementLine{}, false
}

// Series returns the values of the keyed line in safra order.
func (s Statement) Series(key string) ([]float64, bool) {
	line, ok := s.Find(key)
	if !ok {
		return nil, false
	}
	out := make([]float64, len(s.Safras))
	for i, safra := range s.Safras {
		out[i] = line.Values[safra]
	}
	return out, true
}

// Well-known line keys used by the chart blocks of the statement pages.
const (
	KeyCashOperating  = "fluxo_operacional"
	KeyCashInvesting  = "fluxo_investimentos"
	KeyCashFinancing  = "fluxo_financiamentos"
	KeyCashClosing    = "saldo_final"
	KeyGrossRevenue   = "receita_bruta"
	KeyNetRevenue     = "receita_liquida"
	KeyEBITDA         = "ebitda"
	KeyNetProfit      = "lucro_liquido"
	KeyTotalAssets    = "ativo_total"
	KeyTotalLiability = "passivo_total"
	KeyEquity         = "patrimonio_liquido"
)
