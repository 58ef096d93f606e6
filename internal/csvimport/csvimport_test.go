package csvimport

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var equipmentSchema = Schema{Fields: []Field{
	{Name: "name", Aliases: []string{"equipamento", "nome"}, Required: true},
	{Name: "quantity", Aliases: []string{"quantidade", "qtd"}, Type: Integer, Required: true},
	{Name: "unit_value", Aliases: []string{"valor_unitario", "Valor Unitário (R$)"}, Type: Decimal, Required: true},
	{Name: "alienated", Aliases: []string{"alienado"}, Type: Bool},
}}

func TestParseBrazilianMoney(t *testing.T) {
	in := "equipamento;quantidade;valor_unitario\nTrator;2;25.000,00\n"
	res, err := Parse(strings.NewReader(in), equipmentSchema)
	require.NoError(t, err)
	require.True(t, res.Valid(), "%v", res.Errors)
	assert.Equal(t, ';', res.Delimiter)
	require.Len(t, res.Records, 1)

	v, ok := res.Records[0].Decimal("unit_value")
	require.True(t, ok)
	assert.Equal(t, 25000.0, v.InexactFloat64())
	assert.Equal(t, 2, res.Records[0].Int("quantity"))
	assert.Equal(t, 2, res.Records[0].Row)
}

func TestParseMissingRequiredField(t *testing.T) {
	in := "equipamento;quantidade;valor_unitario\n;1;10,00\n"
	res, err := Parse(strings.NewReader(in), equipmentSchema)
	require.NoError(t, err)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, ValidationError{Row: 2, Field: "name", Message: "campo obrigatório"}, res.Errors[0])
	assert.Empty(t, res.Records)
}

func TestParseAccentedHeadersAndBOM(t *testing.T) {
	in := "\ufeffNome,Qtd,\"Valor Unitário (R$)\",Alienado\n\"Colheitadeira, 2020\",1,\"1.234,50\",sim\n"
	res, err := Parse(strings.NewReader(in), equipmentSchema)
	require.NoError(t, err)
	require.True(t, res.Valid(), "%v", res.Errors)
	assert.Equal(t, ',', res.Delimiter)
	rec := res.Records[0]
	assert.Equal(t, "Colheitadeira, 2020", rec.String("name"))
	v, _ := rec.Decimal("unit_value")
	assert.Equal(t, "1234.5", v.String())
	assert.True(t, rec.Bool("alienated"))
}

func TestParseRejectsOutOfRangeIntegers(t *testing.T) {
	in := "nome;qtd;valor_unitario\nA;99999999999;10\nB;-2147483649;10\nC;2147483647;10\n"
	res, err := Parse(strings.NewReader(in), equipmentSchema)
	require.NoError(t, err)
	require.Len(t, res.Errors, 2)
	for i, row := range []int{2, 3} {
		assert.Equal(t, row, res.Errors[i].Row)
		assert.Equal(t, "quantity", res.Errors[i].Field)
		assert.Contains(t, res.Errors[i].Message, "fora do intervalo")
	}
	require.Len(t, res.Records, 1)
	assert.Equal(t, 2147483647, res.Records[0].Int("quantity"))
}

func TestParseCollectsAllRowErrors(t *testing.T) {
	in := "nome;qtd;valor_unitario;alienado\nA;x;10;nao\nB;1;abc;talvez\n\nC;3;5;\n"
	res, err := Parse(strings.NewReader(in), equipmentSchema)
	require.NoError(t, err)
	require.Len(t, res.Errors, 3)
	assert.Equal(t, 2, res.Errors[0].Row)
	assert.Equal(t, "quantity", res.Errors[0].Field)
	assert.Equal(t, 3, res.Errors[1].Row)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "C", res.Records[0].String("name"))
	assert.Equal(t, 5, res.Records[0].Row)
}

func TestParseMissingRequiredColumn(t *testing.T) {
	res, err := Parse(strings.NewReader("nome;qtd\nA;1\n"), equipmentSchema)
	require.NoError(t, err)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "unit_value", res.Errors[0].Field)
	assert.Equal(t, 1, res.Errors[0].Row)
}

func TestParseEmptyAndOversized(t *testing.T) {
	_, err := Parse(strings.NewReader("  \n"), equipmentSchema)
	require.ErrorIs(t, err, ErrEmptyFile)

	schema := equipmentSchema
	schema.MaxRows = 1
	_, err = Parse(strings.NewReader("nome;qtd;valor_unitario\nA;1;1\nB;1;1\n"), schema)
	require.ErrorIs(t, err, ErrTooManyRows)
}

func TestDetectDelimiter(t *testing.T) {
	assert.Equal(t, ';', DetectDelimiter("a;b;c"))
	assert.Equal(t, ',', DetectDelimiter("a,b,c"))
	assert.Equal(t, '\t', DetectDelimiter("a\tb"))
	assert.Equal(t, ';', DetectDelimiter(`"a,b";c;d`))
	assert.Equal(t, ',', DetectDelimiter("single"))
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "valor_unitario_r", NormalizeHeader("Valor Unitário (R$)"))
	assert.Equal(t, "ano_de_fabricacao", NormalizeHeader("  Ano de Fabricação "))
	assert.Equal(t, "hectares", NormalizeHeader("HECTARES"))
}
