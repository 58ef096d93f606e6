package format

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var (
	// ErrEmpty is returned when the input carries no digits at all.
	ErrEmpty = errors.New("format: empty value")
	// ErrInvalidNumber is returned for text that cannot be read as a number.
	ErrInvalidNumber = errors.New("format: invalid number")
)

// ParseMonetary reads leniently formatted money or quantities such as
// "R$ 25.000,00", "25000.50", "1,234.56" or "-3.500". When both separators
// appear the right-most one is the decimal separator. A single "." followed by
// exactly three digits is read as a thousands separator.
func ParseMonetary(raw string) (float64, error) {
	d, err := ParseDecimal(raw)
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}

// ParseDecimal is ParseMonetary returning an exact decimal.
func ParseDecimal(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "\ufeff")
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = strings.ReplaceAll(s, CurrencySymbol, "")
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '%' {
			return -1
		}
		return r
	}, s)
	if strings.HasPrefix(s, "-") {
		negative = !negative
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	if s == "" {
		return decimal.Zero, ErrEmpty
	}
	normalized, err := normalizeSeparators(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", err, raw)
	}
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidNumber, raw)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

func normalizeSeparators(s string) (string, error) {
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '.' && r != ',' {
			return "", ErrInvalidNumber
		}
	}
	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			return strings.Replace(strings.ReplaceAll(s, ".", ""), ",", ".", 1), checkSingle(s, ',')
		}
		return strings.ReplaceAll(s, ",", ""), checkSingle(s, '.')
	case lastComma >= 0:
		if strings.Count(s, ",") > 1 {
			return strings.ReplaceAll(s, ",", ""), nil
		}
		return strings.Replace(s, ",", ".", 1), nil
	case lastDot >= 0:
		if strings.Count(s, ".") > 1 || len(s)-lastDot-1 == 3 {
			return strings.ReplaceAll(s, ".", ""), nil
		}
		return s, nil
	default:
		return s, nil
	}
}

// checkSingle rejects inputs where the decimal separator appears twice.
func checkSingle(s string, sep rune) error {
	if strings.Count(s, string(sep)) > 1 {
		return ErrInvalidNumber
	}
	return nil
}
