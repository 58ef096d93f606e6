package assets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sr-consultoria/farmreport/internal/platform/db"
	"github.com/sr-consultoria/farmreport/internal/platform/httpx"
)

// Repository persists asset registers.
type Repository interface {
	List(ctx context.Context, org uuid.UUID, kind Kind) ([]Asset, error)
	Insert(ctx context.Context, asset Asset) error
	Delete(ctx context.Context, org uuid.UUID, kind Kind, id uuid.UUID) error
	Import(ctx context.Context, org uuid.UUID, kind Kind, batch []Asset) (int64, error)
	Investments(ctx context.Context, org uuid.UUID) ([]Investment, error)
}

// DB is the subset of *pgxpool.Pool the repository needs.
type DB interface {
	db.TxBeginner
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// table describes how one register maps to its SQL table.
type table struct {
	name    string
	columns []string
	values  func(Asset) []any
	scan    func(pgx.Rows) (Asset, error)
}

var tables = map[Kind]table{
	KindEquipment: {
		name:    "equipment",
		columns: []string{"id", "organization_id", "name", "brand", "model", "manufacture_year", "quantity", "unit_value", "total_value", "alienated", "created_at"},
		values: func(a Asset) []any {
			e := a.(*Equipment)
			return []any{e.ID, e.OrganizationID, e.Name, e.Brand, e.Model, e.ManufactureYear, e.Quantity, numeric(e.UnitValue), numeric(e.TotalValue), e.Alienated, e.CreatedAt}
		},
		scan: func(rows pgx.Rows) (Asset, error) {
			var e Equipment
			err := rows.Scan(&e.ID, &e.OrganizationID, &e.Name, &e.Brand, &e.Model, &e.ManufactureYear, &e.Quantity, scanDecimal(&e.UnitValue), scanDecimal(&e.TotalValue), &e.Alienated, &e.CreatedAt)
			return &e, err
		},
	},
	KindLand: {
		name:    "land_acquisitions",
		columns: []string{"id", "organization_id", "farm_name", "year", "hectares", "sacks", "type", "total_value", "created_at"},
		values: func(a Asset) []any {
			l := a.(*LandAcquisition)
			return []any{l.ID, l.OrganizationID, l.FarmName, l.Year, numeric(l.Hectares), numeric(l.Sacks), string(l.Type), numeric(l.TotalValue), l.CreatedAt}
		},
		scan: func(rows pgx.Rows) (Asset, error) {
			var l LandAcquisition
			err := rows.Scan(&l.ID, &l.OrganizationID, &l.FarmName, &l.Year, scanDecimal(&l.Hectares), scanDecimal(&l.Sacks), &l.Type, scanDecimal(&l.TotalValue), &l.CreatedAt)
			return &l, err
		},
	},
	KindInvestments: {
		name:    "investments",
		columns: []string{"id", "organization_id", "category", "year", "quantity", "unit_value", "total_value", "type", "created_at"},
		values: func(a Asset) []any {
			i := a.(*Investment)
			return []any{i.ID, i.OrganizationID, i.Category, i.Year, i.Quantity, numeric(i.UnitValue), numeric(i.TotalValue), string(i.Type), i.CreatedAt}
		},
		scan: func(rows pgx.Rows) (Asset, error) {
			var i Investment
			err := rows.Scan(&i.ID, &i.OrganizationID, &i.Category, &i.Year, &i.Quantity, scanDecimal(&i.UnitValue), scanDecimal(&i.TotalValue), &i.Type, &i.CreatedAt)
			return &i, err
		},
	},
	KindSales: {
		name:    "asset_sales",
		columns: []string{"id", "organization_id", "category", "description", "year", "quantity", "unit_value", "total_value", "type", "created_at"},
		values: func(a Asset) []any {
			s := a.(*AssetSale)
			return []any{s.ID, s.OrganizationID, s.Category, s.Description, s.Year, s.Quantity, numeric(s.UnitValue), numeric(s.TotalValue), string(s.Type), s.CreatedAt}
		},
		scan: func(rows pgx.Rows) (Asset, error) {
			var s AssetSale
			err := rows.Scan(&s.ID, &s.OrganizationID, &s.Category, &s.Description, &s.Year, &s.Quantity, scanDecimal(&s.UnitValue), scanDecimal(&s.TotalValue), &s.Type, &s.CreatedAt)
			return &s, err
		},
	},
}

type repository struct {
	db DB
}

// NewRepository creates a PostgreSQL backed repository.
func NewRepository(pool DB) Repository {
	return &repository{db: pool}
}

func tableOf(kind Kind) (table, error) {
	t, ok := tables[kind]
	if !ok {
		return table{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return t, nil
}

func (r *repository) List(ctx context.Context, org uuid.UUID, kind Kind) ([]Asset, error) {
	t, err := tableOf(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE organization_id = $1 ORDER BY created_at, id`,
		strings.Join(t.columns, ", "), t.name)
	rows, err := r.db.Query(ctx, query, org)
	if err != nil {
		return nil, fmt.Errorf("assets: list %s: %w", kind, err)
	}
	defer rows.Close()

	var out []Asset
	for rows.Next() {
		a, err := t.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("assets: scan %s: %w", kind, err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *repository) Insert(ctx context.Context, asset Asset) error {
	t, err := tableOf(asset.Kind())
	if err != nil {
		return err
	}
	placeholders := make([]string, len(t.columns))
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		t.name, strings.Join(t.columns, ", "), strings.Join(placeholders, ", "))
	if _, err := r.db.Exec(ctx, query, t.values(asset)...); err != nil {
		return mapError(err)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, org uuid.UUID, kind Kind, id uuid.UUID) error {
	t, err := tableOf(kind)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE organization_id = $1 AND id = $2`, t.name), org, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s %s", httpx.ErrNotFound, kind, id)
	}
	return nil
}

// Import copies the batch in one transaction; either every row lands or
// none does.
func (r *repository) Import(ctx context.Context, org uuid.UUID, kind Kind, batch []Asset) (int64, error) {
	t, err := tableOf(kind)
	if err != nil {
		return 0, err
	}
	var copied int64
	err = db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		n, err := tx.CopyFrom(ctx, pgx.Identifier{t.name}, t.columns,
			pgx.CopyFromSlice(len(batch), func(i int) ([]any, error) {
				if _, owner := batch[i].Identity(); owner != org {
					return nil, fmt.Errorf("assets: row %d belongs to another organization", i)
				}
				return t.values(batch[i]), nil
			}))
		copied = n
		return err
	})
	if err != nil {
		return 0, mapError(err)
	}
	return copied, nil
}

func (r *repository) Investments(ctx context.Context, org uuid.UUID) ([]Investment, error) {
	list, err := r.List(ctx, org, KindInvestments)
	if err != nil {
		return nil, err
	}
	out := make([]Investment, 0, len(list))
	for _, a := range list {
		out = append(out, *a.(*Investment))
	}
	return out, nil
}

// mapError translates constraint violations into domain errors.
func mapError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%w: %s", httpx.ErrDuplicate, pgErr.ConstraintName)
		case "23514", "23502":
			return fmt.Errorf("%w: %s", httpx.ErrValidation, pgErr.Message)
		}
	}
	return err
}
