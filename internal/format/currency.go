package format

// Currency formats v as whole reais: Currency(1234.4) == "R$ 1.234".
func Currency(v float64) string {
	return CurrencyDecimals(v, 0)
}

// CurrencyDecimals formats v as reais with the given precision.
func CurrencyDecimals(v float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	abs, negative := split(v, decimals)
	out := CurrencySymbol + " " + Number(abs, decimals)
	if negative {
		return "-" + out
	}
	return out
}

// CompactCurrency formats v with a k/M/B suffix: CompactCurrency(1234567) ==
// "R$ 1.2M". Values below one thousand fall back to Currency.
func CompactCurrency(v float64) string {
	if v > -1000 && v < 1000 {
		return Currency(v)
	}
	out := Compact(v)
	if out[0] == '-' {
		return "-" + CurrencySymbol + " " + out[1:]
	}
	return CurrencySymbol + " " + out
}
