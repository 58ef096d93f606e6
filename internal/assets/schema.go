package assets

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sr-consultoria/farmreport/internal/csvimport"
)

// Schemas map spreadsheet headers to register fields.
var Schemas = map[Kind]csvimport.Schema{
	KindEquipment: {Fields: []csvimport.Field{
		{Name: "name", Aliases: []string{"equipamento", "nome", "descricao"}, Required: true},
		{Name: "brand", Aliases: []string{"marca"}},
		{Name: "model", Aliases: []string{"modelo"}},
		{Name: "manufacture_year", Aliases: []string{"ano", "ano_fabricacao", "ano de fabricação"}, Type: csvimport.Integer},
		{Name: "quantity", Aliases: []string{"quantidade", "qtd", "qtde"}, Type: csvimport.Integer, Required: true},
		{Name: "unit_value", Aliases: []string{"valor_unitario", "valor unitário", "valor"}, Type: csvimport.Decimal, Required: true},
		{Name: "total_value", Aliases: []string{"valor_total", "total"}, Type: csvimport.Decimal},
		{Name: "alienated", Aliases: []string{"alienado", "alienacao"}, Type: csvimport.Bool},
	}},
	KindLand: {Fields: []csvimport.Field{
		{Name: "farm_name", Aliases: []string{"fazenda", "nome_fazenda", "propriedade"}, Required: true},
		{Name: "year", Aliases: []string{"ano"}, Type: csvimport.Integer, Required: true},
		{Name: "hectares", Aliases: []string{"area", "área", "ha"}, Type: csvimport.Decimal, Required: true},
		{Name: "sacks", Aliases: []string{"sacas"}, Type: csvimport.Decimal},
		{Name: "type", Aliases: []string{"tipo"}, Required: true},
		{Name: "total_value", Aliases: []string{"valor_total", "valor", "total"}, Type: csvimport.Decimal, Required: true},
	}},
	KindInvestments: {Fields: planFields("categoria")},
	KindSales: {Fields: append(planFields("categoria"),
		csvimport.Field{Name: "description", Aliases: []string{"descricao", "descrição"}},
	)},
}

func planFields(category string) []csvimport.Field {
	return []csvimport.Field{
		{Name: "category", Aliases: []string{category}, Required: true},
		{Name: "year", Aliases: []string{"ano"}, Type: csvimport.Integer, Required: true},
		{Name: "quantity", Aliases: []string{"quantidade", "qtd", "qtde"}, Type: csvimport.Integer, Required: true},
		{Name: "unit_value", Aliases: []string{"valor_unitario", "valor unitário", "valor"}, Type: csvimport.Decimal, Required: true},
		{Name: "total_value", Aliases: []string{"valor_total", "total"}, Type: csvimport.Decimal},
		{Name: "type", Aliases: []string{"tipo", "situacao"}},
	}
}

// fromRecord converts a parsed row into an entry of kind.
func fromRecord(kind Kind, rec csvimport.Record) Asset {
	dec := func(field string) decimal.Decimal {
		d, _ := rec.Decimal(field)
		return d
	}
	switch kind {
	case KindEquipment:
		return &Equipment{
			Name:            rec.String("name"),
			Brand:           rec.String("brand"),
			Model:           rec.String("model"),
			ManufactureYear: rec.Int("manufacture_year"),
			Quantity:        rec.Int("quantity"),
			UnitValue:       dec("unit_value"),
			TotalValue:      dec("total_value"),
			Alienated:       rec.Bool("alienated"),
		}
	case KindLand:
		return &LandAcquisition{
			FarmName:   rec.String("farm_name"),
			Year:       rec.Int("year"),
			Hectares:   dec("hectares"),
			Sacks:      dec("sacks"),
			Type:       LandType(strings.ToUpper(rec.String("type"))),
			TotalValue: dec("total_value"),
		}
	case KindInvestments:
		return &Investment{
			Category:   rec.String("category"),
			Year:       rec.Int("year"),
			Quantity:   rec.Int("quantity"),
			UnitValue:  dec("unit_value"),
			TotalValue: dec("total_value"),
			Type:       planType(rec.String("type")),
		}
	case KindSales:
		return &AssetSale{
			Category:    rec.String("category"),
			Description: rec.String("description"),
			Year:        rec.Int("year"),
			Quantity:    rec.Int("quantity"),
			UnitValue:   dec("unit_value"),
			TotalValue:  dec("total_value"),
			Type:        planType(rec.String("type")),
		}
	}
	return nil
}

// planType defaults a blank column to realized.
func planType(raw string) PlanType {
	if strings.TrimSpace(raw) == "" {
		return Realized
	}
	return PlanType(strings.ToUpper(csvimport.NormalizeHeader(raw)))
}
