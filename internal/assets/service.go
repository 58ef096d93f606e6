package assets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sr-consultoria/farmreport/internal/csvimport"
	"github.com/sr-consultoria/farmreport/internal/platform/httpx"
	"github.com/sr-consultoria/farmreport/internal/reportdata"
)

// ImportError carries every row problem of a rejected import.
type ImportError struct {
	Errors []csvimport.ValidationError
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("assets: import rejected with %d errors", len(e.Errors))
}

func (e *ImportError) Unwrap() error { return httpx.ErrValidation }

// FieldError is a single invalid field of a submitted entry.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// EntryError rejects a single submitted entry.
type EntryError struct {
	Fields []FieldError
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("assets: %d invalid fields", len(e.Fields))
}

func (e *EntryError) Unwrap() error { return httpx.ErrValidation }

// ImportResult summarises an accepted import.
type ImportResult struct {
	Kind     Kind  `json:"kind"`
	Imported int64 `json:"imported"`
}

// Service validates entries and delegates persistence.
type Service struct {
	repo     Repository
	validate *validator.Validate
	logger   *slog.Logger
	now      func() time.Time
	newID    func() uuid.UUID
}

// NewService constructs the asset service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterTagNameFunc(jsonName)
	return &Service{repo: repo, validate: v, logger: logger, now: time.Now, newID: uuid.New}
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

// List returns every entry of a register.
func (s *Service) List(ctx context.Context, org uuid.UUID, kind Kind) ([]Asset, error) {
	return s.repo.List(ctx, org, kind)
}

// Create decodes, validates and stores one entry.
func (s *Service) Create(ctx context.Context, org uuid.UUID, kind Kind, body []byte) (Asset, error) {
	asset, err := New(kind)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(asset); err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrBadRequest, err)
	}
	asset.prepare(s.newID(), org, s.now().UTC())
	if fields := s.check(asset); len(fields) > 0 {
		return nil, &EntryError{Fields: fields}
	}
	if err := s.repo.Insert(ctx, asset); err != nil {
		return nil, err
	}
	s.logger.Info("asset created", slog.String("kind", string(kind)), slog.String("org", org.String()))
	return asset, nil
}

// Delete removes one entry.
func (s *Service) Delete(ctx context.Context, org uuid.UUID, kind Kind, id uuid.UUID) error {
	return s.repo.Delete(ctx, org, kind, id)
}

// Import parses a spreadsheet and stores all rows as one batch. Any invalid
// row rejects the whole file with an *ImportError.
func (s *Service) Import(ctx context.Context, org uuid.UUID, kind Kind, r io.Reader) (ImportResult, error) {
	schema, ok := Schemas[kind]
	if !ok {
		return ImportResult{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	parsed, err := csvimport.Parse(r, schema)
	if err != nil {
		if errors.Is(err, csvimport.ErrEmptyFile) || errors.Is(err, csvimport.ErrTooManyRows) {
			return ImportResult{}, fmt.Errorf("%w: %v", httpx.ErrBadRequest, err)
		}
		return ImportResult{}, err
	}

	problems := parsed.Errors
	now := s.now().UTC()
	batch := make([]Asset, 0, len(parsed.Records))
	for _, rec := range parsed.Records {
		asset := fromRecord(kind, rec)
		asset.prepare(s.newID(), org, now)
		for _, f := range s.check(asset) {
			problems = append(problems, csvimport.ValidationError{Row: rec.Row, Field: f.Field, Message: f.Message})
		}
		batch = append(batch, asset)
	}
	if len(problems) > 0 {
		sort.SliceStable(problems, func(i, j int) bool { return problems[i].Row < problems[j].Row })
		return ImportResult{}, &ImportError{Errors: problems}
	}
	if len(batch) == 0 {
		return ImportResult{}, fmt.Errorf("%w: no rows", httpx.ErrBadRequest)
	}

	n, err := s.repo.Import(ctx, org, kind, batch)
	if err != nil {
		return ImportResult{}, err
	}
	s.logger.Info("assets imported",
		slog.String("kind", string(kind)),
		slog.String("org", org.String()),
		slog.Int64("rows", n),
	)
	return ImportResult{Kind: kind, Imported: n}, nil
}

// InvestmentsSummary aggregates the investment register into the report's
// capex section. A year with any realized entry counts as realized and its
// planned entries are dropped; categories sum realized entries only.
func (s *Service) InvestmentsSummary(ctx context.Context, org uuid.UUID) (*reportdata.InvestmentsData, error) {
	list, err := s.repo.Investments(ctx, org)
	if err != nil {
		return nil, err
	}
	return Summarize(list), nil
}

// Summarize is the pure aggregation behind InvestmentsSummary.
func Summarize(list []Investment) *reportdata.InvestmentsData {
	type bucket struct {
		realized, planned decimal.Decimal
		hasRealized       bool
	}
	years := map[int]*bucket{}
	categories := map[string]decimal.Decimal{}
	for _, inv := range list {
		b, ok := years[inv.Year]
		if !ok {
			b = &bucket{}
			years[inv.Year] = b
		}
		if inv.Type == Realized {
			b.realized = b.realized.Add(inv.TotalValue)
			b.hasRealized = true
			categories[inv.Category] = categories[inv.Category].Add(inv.TotalValue)
			continue
		}
		b.planned = b.planned.Add(inv.TotalValue)
	}

	out := &reportdata.InvestmentsData{}
	for year, b := range years {
		y := reportdata.InvestmentYear{Year: year, Value: b.planned.InexactFloat64()}
		if b.hasRealized {
			y.Value, y.Realized = b.realized.InexactFloat64(), true
		}
		out.Years = append(out.Years, y)
	}
	sort.Slice(out.Years, func(i, j int) bool { return out.Years[i].Year < out.Years[j].Year })

	for label, v := range categories {
		out.Categories = append(out.Categories, reportdata.Share{Label: label, Value: v.InexactFloat64()})
	}
	sort.Slice(out.Categories, func(i, j int) bool {
		a, b := out.Categories[i], out.Categories[j]
		if a.Value != b.Value {
			return a.Value > b.Value
		}
		return a.Label < b.Label
	})
	return out
}

func (s *Service) check(asset Asset) []FieldError {
	err := s.validate.Struct(asset)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "-", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "campo obrigatório"
	case "oneof":
		return "valor deve ser um de: " + fe.Param()
	case "gte", "gt":
		return "valor abaixo do mínimo " + fe.Param()
	case "lte":
		return "valor acima do máximo " + fe.Param()
	case "max":
		return "texto maior que " + fe.Param() + " caracteres"
	}
	return "valor inválido"
}
