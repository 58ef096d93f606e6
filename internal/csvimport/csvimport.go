// Package csvimport reads delimited asset spreadsheets exported by the
// consultants: it detects the delimiter, maps free-form Portuguese headers to
// fields and validates every row without stopping at the first problem.
package csvimport

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/sr-consultoria/farmreport/internal/format"
)

var (
	// ErrEmptyFile is returned when the input has no header line.
	ErrEmptyFile = errors.New("csvimport: empty file")
	// ErrTooManyRows is returned when the input exceeds Schema.MaxRows.
	ErrTooManyRows = errors.New("csvimport: too many rows")
)

// DefaultMaxRows bounds a single import.
const DefaultMaxRows = 10000

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// FieldType selects how a cell is parsed.
type FieldType int

// Cell types.
const (
	Text FieldType = iota
	Integer
	Decimal
	Bool
)

// Field describes one target field and the headers that may carry it.
type Field struct {
	Name     string
	Aliases  []string
	Type     FieldType
	Required bool
}

// Schema lists the fields of one asset kind.
type Schema struct {
	Fields  []Field
	MaxRows int
}

// ValidationError locates a problem in the input. Row is the 1-based line
// number in the file, the header being row 1.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("row %d: %s: %s", e.Row, e.Field, e.Message)
}

// Record is one valid row. Values hold string, int, decimal.Decimal or bool
// according to the field type; absent optional fields are omitted.
type Record struct {
	Row    int
	Values map[string]any
}

// String returns a text value or "".
func (r Record) String(field string) string {
	s, _ := r.Values[field].(string)
	return s
}

// Int returns an integer value or 0.
func (r Record) Int(field string) int {
	n, _ := r.Values[field].(int)
	return n
}

// Decimal returns a decimal value and whether it was present.
func (r Record) Decimal(field string) (decimal.Decimal, bool) {
	d, ok := r.Values[field].(decimal.Decimal)
	return d, ok
}

// Bool returns a flag value or false.
func (r Record) Bool(field string) bool {
	b, _ := r.Values[field].(bool)
	return b
}

// Result carries the valid records and every row error found.
type Result struct {
	Delimiter rune
	Records   []Record
	Errors    []ValidationError
}

// Valid reports whether the whole file passed validation.
func (r *Result) Valid() bool { return len(r.Errors) == 0 }

// Parse reads the whole input. Structural failures (empty input, unreadable
// CSV, too many rows) are returned as errors; data problems are collected in
// Result.Errors.
func Parse(r io.Reader, schema Schema) (*Result, error) {
	br := bufio.NewReader(r)
	if bom, _ := br.Peek(len(byteOrderMark)); bytes.Equal(bom, byteOrderMark) {
		_, _ = br.Discard(len(byteOrderMark))
	}
	head, err := br.Peek(br.Size())
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("csvimport: read: %w", err)
	}
	if len(bytes.TrimSpace(head)) == 0 {
		return nil, ErrEmptyFile
	}

	res := &Result{Delimiter: DetectDelimiter(firstLine(head))}
	reader := csv.NewReader(br)
	reader.Comma = res.Delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyFile
		}
		return nil, fmt.Errorf("csvimport: header: %w", err)
	}
	columns, missing := mapHeader(header, schema)
	for _, f := range missing {
		res.Errors = append(res.Errors, ValidationError{Row: 1, Field: f, Message: "coluna obrigatória ausente"})
	}
	if len(missing) > 0 {
		return res, nil
	}

	maxRows := schema.MaxRows
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}
	rows := 0
	for {
		cells, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				res.Errors = append(res.Errors, ValidationError{Row: perr.Line, Field: "-", Message: perr.Err.Error()})
				continue
			}
			return nil, fmt.Errorf("csvimport: read: %w", err)
		}
		if blank(cells) {
			continue
		}
		line, _ := reader.FieldPos(0)
		rows++
		if rows > maxRows {
			return nil, fmt.Errorf("%w: limit %d", ErrTooManyRows, maxRows)
		}
		rec, errs := parseRow(line, cells, columns, schema)
		if len(errs) > 0 {
			res.Errors = append(res.Errors, errs...)
			continue
		}
		res.Records = append(res.Records, rec)
	}
	return res, nil
}

func firstLine(b []byte) string {
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// DetectDelimiter picks ';', '\t' or ',' by counting them outside quotes in
// the header line. Ties and headers without any fall back to ','.
func DetectDelimiter(header string) rune {
	counts := map[rune]int{}
	quoted := false
	for _, r := range header {
		switch r {
		case '"':
			quoted = !quoted
		case ';', ',', '\t':
			if !quoted {
				counts[r]++
			}
		}
	}
	best, n := ',', counts[',']
	for _, r := range []rune{';', '\t'} {
		if counts[r] > n {
			best, n = r, counts[r]
		}
	}
	return best
}

// NormalizeHeader folds case, accents and punctuation so that "Valor
// Unitário (R$)" and "valor_unitario_r" compare equal.
func NormalizeHeader(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	var b strings.Builder
	underscore := false
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			underscore = false
			continue
		}
		if !underscore && b.Len() > 0 {
			b.WriteByte('_')
			underscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// mapHeader returns the column index per field name and the required fields
// with no matching column. The first matching column wins.
func mapHeader(header []string, schema Schema) (map[string]int, []string) {
	lookup := map[string]string{}
	for _, f := range schema.Fields {
		lookup[NormalizeHeader(f.Name)] = f.Name
		for _, a := range f.Aliases {
			lookup[NormalizeHeader(a)] = f.Name
		}
	}
	columns := map[string]int{}
	for i, h := range header {
		name, ok := lookup[NormalizeHeader(h)]
		if !ok {
			continue
		}
		if _, seen := columns[name]; !seen {
			columns[name] = i
		}
	}
	var missing []string
	for _, f := range schema.Fields {
		if _, ok := columns[f.Name]; !ok && f.Required {
			missing = append(missing, f.Name)
		}
	}
	return columns, missing
}

func parseRow(line int, cells []string, columns map[string]int, schema Schema) (Record, []ValidationError) {
	rec := Record{Row: line, Values: map[string]any{}}
	var errs []ValidationError
	for _, f := range schema.Fields {
		idx, ok := columns[f.Name]
		raw := ""
		if ok && idx < len(cells) {
			raw = strings.TrimSpace(cells[idx])
		}
		if raw == "" {
			if f.Required {
				errs = append(errs, ValidationError{Row: line, Field: f.Name, Message: "campo obrigatório"})
			}
			continue
		}
		v, err := parseCell(f.Type, raw)
		if err != nil {
			errs = append(errs, ValidationError{Row: line, Field: f.Name, Message: err.Error()})
			continue
		}
		rec.Values[f.Name] = v
	}
	return rec, errs
}

var (
	minInt = decimal.NewFromInt(math.MinInt32)
	maxInt = decimal.NewFromInt(math.MaxInt32)
)

func parseCell(t FieldType, raw string) (any, error) {
	switch t {
	case Integer:
		d, err := format.ParseDecimal(raw)
		if err != nil || !d.Equal(d.Truncate(0)) {
			return nil, fmt.Errorf("número inteiro inválido: %q", raw)
		}
		if d.LessThan(minInt) || d.GreaterThan(maxInt) {
			return nil, fmt.Errorf("número inteiro fora do intervalo: %q", raw)
		}
		return int(d.IntPart()), nil
	case Decimal:
		d, err := format.ParseDecimal(raw)
		if err != nil {
			return nil, fmt.Errorf("valor numérico inválido: %q", raw)
		}
		return d, nil
	case Bool:
		return parseBool(raw)
	}
	return raw, nil
}

func parseBool(raw string) (bool, error) {
	switch NormalizeHeader(raw) {
	case "sim", "s", "x", "yes", "y":
		return true, nil
	case "nao", "n", "no":
		return false, nil
	}
	b, err := strconv.ParseBool(strings.ToLower(raw))
	if err != nil {
		return false, fmt.Errorf("valor sim/não inválido: %q", raw)
	}
	return b, nil
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
