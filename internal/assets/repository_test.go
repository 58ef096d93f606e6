package assets

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sr-consultoria/farmreport/internal/platform/httpx"
)

func TestTablesMatchValues(t *testing.T) {
	for kind, tbl := range tables {
		asset, err := New(kind)
		require.NoError(t, err)
		asset.prepare(uuid.New(), orgID, time.Now())
		assert.Len(t, tbl.values(asset), len(tbl.columns), "kind %s", kind)
	}
}

func TestMapError(t *testing.T) {
	dup := mapError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_equipment"})
	require.ErrorIs(t, dup, httpx.ErrDuplicate)
	assert.Contains(t, dup.Error(), "uq_equipment")

	require.ErrorIs(t, mapError(&pgconn.PgError{Code: "23514"}), httpx.ErrValidation)

	other := errors.New("conn reset")
	assert.Same(t, other, mapError(other))
}

func TestNumericRoundTrip(t *testing.T) {
	in := decimal.RequireFromString("25000.75")
	var out decimal.Decimal
	require.NoError(t, scanDecimal(&out).ScanNumeric(numeric(in)))
	assert.True(t, in.Equal(out))

	require.NoError(t, scanDecimal(&out).ScanNumeric(pgtype.Numeric{}))
	assert.True(t, out.IsZero())
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Land ")
	require.NoError(t, err)
	assert.Equal(t, KindLand, k)
	_, err = ParseKind("cattle")
	require.ErrorIs(t, err, ErrUnknownKind)
}
