// Package assets manages the farm asset registers (equipment, land
// acquisitions, investments and asset sales) that feed the report.
package assets

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind names an asset register.
type Kind string

const (
	KindEquipment   Kind = "equipment"
	KindLand        Kind = "land"
	KindInvestments Kind = "investments"
	KindSales       Kind = "sales"
)

// Kinds lists every register.
var Kinds = []Kind{KindEquipment, KindLand, KindInvestments, KindSales}

// ErrUnknownKind is returned for an unsupported register name.
var ErrUnknownKind = errors.New("assets: unknown kind")

// ParseKind validates a register name.
func ParseKind(raw string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, raw)
}

// LandType distinguishes purchases from partnerships.
type LandType string

const (
	LandPurchase    LandType = "COMPRA"
	LandPartnership LandType = "PARCERIA"
)

// PlanType marks realized or planned movements.
type PlanType string

const (
	Realized PlanType = "REALIZADO"
	Planned  PlanType = "PLANEJADO"
)

// Asset is implemented by every register entry.
type Asset interface {
	Kind() Kind
	Identity() (id, org uuid.UUID)
	// prepare assigns identity and derives the total value.
	prepare(id, org uuid.UUID, now time.Time)
}

// Equipment is a machine or implement owned by the farm.
type Equipment struct {
	ID              uuid.UUID       `json:"id"`
	OrganizationID  uuid.UUID       `json:"organizationId"`
	Name            string          `json:"name" validate:"required,max=200"`
	Brand           string          `json:"brand" validate:"max=120"`
	Model           string          `json:"model" validate:"max=120"`
	ManufactureYear int             `json:"manufactureYear" validate:"omitempty,gte=1900,lte=2100"`
	Quantity        int             `json:"quantity" validate:"gte=1"`
	UnitValue       decimal.Decimal `json:"unitValue" validate:"gte=0"`
	TotalValue      decimal.Decimal `json:"totalValue" validate:"gte=0"`
	Alienated       bool            `json:"alienated"`
	CreatedAt       time.Time       `json:"createdAt"`
}

func (e *Equipment) Kind() Kind                       { return KindEquipment }
func (e *Equipment) Identity() (uuid.UUID, uuid.UUID) { return e.ID, e.OrganizationID }

func (e *Equipment) prepare(id, org uuid.UUID, now time.Time) {
	e.ID, e.OrganizationID, e.CreatedAt = id, org, now
	e.TotalValue = totalOf(e.TotalValue, e.Quantity, e.UnitValue)
}

// LandAcquisition is a land purchase or partnership, optionally priced in
// sacks of soybean.
type LandAcquisition struct {
	ID             uuid.UUID       `json:"id"`
	OrganizationID uuid.UUID       `json:"organizationId"`
	FarmName       string          `json:"farmName" validate:"required,max=200"`
	Year           int             `json:"year" validate:"gte=1900,lte=2100"`
	Hectares       decimal.Decimal `json:"hectares" validate:"gt=0"`
	Sacks          decimal.Decimal `json:"sacks" validate:"gte=0"`
	Type           LandType        `json:"type" validate:"oneof=COMPRA PARCERIA"`
	TotalValue     decimal.Decimal `json:"totalValue" validate:"gte=0"`
	CreatedAt      time.Time       `json:"createdAt"`
}

func (l *LandAcquisition) Kind() Kind                       { return KindLand }
func (l *LandAcquisition) Identity() (uuid.UUID, uuid.UUID) { return l.ID, l.OrganizationID }

func (l *LandAcquisition) prepare(id, org uuid.UUID, now time.Time) {
	l.ID, l.OrganizationID, l.CreatedAt = id, org, now
}

// Investment is a capex line, realized or planned.
type Investment struct {
	ID             uuid.UUID       `json:"id"`
	OrganizationID uuid.UUID       `json:"organizationId"`
	Category       string          `json:"category" validate:"required,max=120"`
	Year           int             `json:"year" validate:"gte=1900,lte=2100"`
	Quantity       int             `json:"quantity" validate:"gte=1"`
	UnitValue      decimal.Decimal `json:"unitValue" validate:"gte=0"`
	TotalValue     decimal.Decimal `json:"totalValue" validate:"gte=0"`
	Type           PlanType        `json:"type" validate:"oneof=REALIZADO PLANEJADO"`
	CreatedAt      time.Time       `json:"createdAt"`
}

func (i *Investment) Kind() Kind                       { return KindInvestments }
func (i *Investment) Identity() (uuid.UUID, uuid.UUID) { return i.ID, i.OrganizationID }

func (i *Investment) prepare(id, org uuid.UUID, now time.Time) {
	i.ID, i.OrganizationID, i.CreatedAt = id, org, now
	i.TotalValue = totalOf(i.TotalValue, i.Quantity, i.UnitValue)
}

// AssetSale is a disposal of farm assets.
type AssetSale struct {
	ID             uuid.UUID       `json:"id"`
	OrganizationID uuid.UUID       `json:"organizationId"`
	Category       string          `json:"category" validate:"required,max=120"`
	Description    string          `json:"description" validate:"max=500"`
	Year           int             `json:"year" validate:"gte=1900,lte=2100"`
	Quantity       int             `json:"quantity" validate:"gte=1"`
	UnitValue      decimal.Decimal `json:"unitValue" validate:"gte=0"`
	TotalValue     decimal.Decimal `json:"totalValue" validate:"gte=0"`
	Type           PlanType        `json:"type" validate:"oneof=REALIZADO PLANEJADO"`
	CreatedAt      time.Time       `json:"createdAt"`
}

func (s *AssetSale) Kind() Kind                       { return KindSales }
func (s *AssetSale) Identity() (uuid.UUID, uuid.UUID) { return s.ID, s.OrganizationID }

func (s *AssetSale) prepare(id, org uuid.UUID, now time.Time) {
	s.ID, s.OrganizationID, s.CreatedAt = id, org, now
	s.TotalValue = totalOf(s.TotalValue, s.Quantity, s.UnitValue)
}

// totalOf keeps an explicit total and otherwise derives quantity * unit.
func totalOf(total decimal.Decimal, qty int, unit decimal.Decimal) decimal.Decimal {
	if !total.IsZero() {
		return total
	}
	return unit.Mul(decimal.NewFromInt(int64(qty)))
}

// New returns an empty entry of the given kind.
func New(kind Kind) (Asset, error) {
	switch kind {
	case KindEquipment:
		return &Equipment{}, nil
	case KindLand:
		return &LandAcquisition{}, nil
	case KindInvestments:
		return &Investment{}, nil
	case KindSales:
		return &AssetSale{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}
