package assets

import (
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// numeric encodes a decimal exactly as a PostgreSQL numeric.
func numeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

// decimalScan scans a numeric column into a decimal. NULL reads as zero.
type decimalScan struct {
	dst *decimal.Decimal
}

func scanDecimal(dst *decimal.Decimal) *decimalScan { return &decimalScan{dst: dst} }

func (s *decimalScan) ScanNumeric(v pgtype.Numeric) error {
	if !v.Valid || v.Int == nil {
		*s.dst = decimal.Zero
		return nil
	}
	*s.dst = decimal.NewFromBigInt(v.Int, v.Exp)
	return nil
}
