// Package format renders monetary and numeric values the way Brazilian
// agribusiness reports expect them (R$, "." thousands, "," decimals).
package format

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencySymbol prefixes every monetary value.
const CurrencySymbol = "R$"

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Number formats v with pt-BR separators and a fixed number of decimals.
func Number(v float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	abs, negative := split(v, decimals)
	out := printer.Sprintf(fmt.Sprintf("%%.%df", decimals), abs)
	if negative {
		return "-" + out
	}
	return out
}

// Percent formats v (already expressed in percent units) as "12,5%".
func Percent(v float64, decimals int) string {
	return Number(v, decimals) + "%"
}

// Hectares formats an area with one decimal and the "ha" unit.
func Hectares(v float64) string {
	return Number(v, 1) + " ha"
}

// Ratio formats a leverage multiple such as "2,35x".
func Ratio(v float64) string {
	return Number(v, 2) + "x"
}

// Compact abbreviates large magnitudes using k/M/B suffixes. The decimal
// point follows the short-scale convention used in chart labels ("1.2M").
func Compact(v float64) string {
	abs := math.Abs(v)
	sign := ""
	if v < 0 {
		sign = "-"
	}
	switch {
	case abs >= 1_000_000_000:
		return sign + trimZero(abs/1_000_000_000) + "B"
	case abs >= 1_000_000:
		return sign + trimZero(abs/1_000_000) + "M"
	case abs >= 1_000:
		return sign + trimZero(abs/1_000) + "k"
	default:
		return Number(v, 0)
	}
}

// split rounds the magnitude at the requested precision and reports whether a
// minus sign must be printed. Values that round to zero never carry a sign.
func split(v float64, decimals int) (float64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	pow := math.Pow(10, float64(decimals))
	abs := math.Round(math.Abs(v)*pow) / pow
	return abs, v < 0 && abs != 0
}

func trimZero(v float64) string {
	s := fmt.Sprintf("%.1f", math.Floor(v*10)/10)
	return strings.TrimSuffix(s, ".0")
}
