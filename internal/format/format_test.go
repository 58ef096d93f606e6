package format

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCurrency(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "R$ 0"},
		{1234, "R$ 1.234"},
		{1234567, "R$ 1.234.567"},
		{-1234, "-R$ 1.234"},
		{-0.2, "R$ 0"},
	}
	for _, tc := range cases {
		if got := Currency(tc.in); got != tc.want {
			t.Fatalf("Currency(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCurrencyDecimals(t *testing.T) {
	require.Equal(t, "R$ 25.000,00", CurrencyDecimals(25000, 2))
	require.Equal(t, "-R$ 1.234,57", CurrencyDecimals(-1234.567, 2))
}

func TestCompactCurrency(t *testing.T) {
	require.Equal(t, "R$ 1.2M", CompactCurrency(1234567))
	require.Equal(t, "-R$ 1.2M", CompactCurrency(-1234567))
	require.Equal(t, "R$ 3B", CompactCurrency(3_000_000_000))
	require.Equal(t, "R$ 45.5k", CompactCurrency(45_500))
	require.Equal(t, "R$ 999", CompactCurrency(999))
}

func TestPercentAndNumber(t *testing.T) {
	require.Equal(t, "12,5%", Percent(12.5, 1))
	require.Equal(t, "1.234,5 ha", Hectares(1234.5))
	require.Equal(t, "2,35x", Ratio(2.345))
	require.Equal(t, "0", Number(math.NaN(), 0))
}

func TestParseMonetary(t *testing.T) {
	cases := map[string]float64{
		"25.000,00":       25000,
		"R$ 25.000,00":    25000,
		"1,234.56":        1234.56,
		"25000.50":        25000.5,
		"-3.500":          -3500,
		"(1.000,00)":      -1000,
		"12,5%":           12.5,
		"1.234.567":       1234567,
		"R$ 1.234.567,89": 1234567.89,
	}
	for in, want := range cases {
		got, err := ParseMonetary(in)
		require.NoError(t, err, in)
		require.InDelta(t, want, got, 1e-9, in)
	}
}

func TestParseMonetaryErrors(t *testing.T) {
	_, err := ParseMonetary("   ")
	require.True(t, errors.Is(err, ErrEmpty))

	_, err = ParseMonetary("abc")
	require.True(t, errors.Is(err, ErrInvalidNumber))

	_, err = ParseMonetary("1,234,5.6,7")
	require.Error(t, err)
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 1, 12.34, 999.99, 25000, 1234567.89, -98765.43} {
		got, err := ParseMonetary(CurrencyDecimals(v, 2))
		require.NoError(t, err)
		require.InDelta(t, v, got, 0.005)
	}
}
