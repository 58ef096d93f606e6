package reportdata

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid wraps every validation failure so callers can map it to a
// client error with errors.Is.
var ErrInvalid = errors.New("reportdata: invalid report data")

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// SeasonAlignmentError reports a per-season map whose key set differs from
// the safras declared for its section.
type SeasonAlignmentError struct {
	Section string
	Line    string
	Missing []string
	Extra   []string
}

func (e *SeasonAlignmentError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "reportdata: %s", e.Section)
	if e.Line != "" {
		fmt.Fprintf(&b, " line %q", e.Line)
	}
	b.WriteString(" is not aligned with the section safras")
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, "; missing %s", strings.Join(e.Missing, ", "))
	}
	if len(e.Extra) > 0 {
		fmt.Fprintf(&b, "; unexpected %s", strings.Join(e.Extra, ", "))
	}
	return b.String()
}

func (e *SeasonAlignmentError) Unwrap() error { return ErrInvalid }

// Validate checks struct rules and the safra alignment of every per-season
// map. All problems are reported together through errors.Join.
func Validate(d *ReportData) error {
	if d == nil {
		return fmt.Errorf("%w: nil report", ErrInvalid)
	}
	var errs []error
	if err := structValidator().Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				errs = append(errs, fmt.Errorf("%w: field %s failed %q", ErrInvalid, fe.Namespace(), fe.Tag()))
			}
		} else {
			errs = append(errs, fmt.Errorf("%w: %v", ErrInvalid, err))
		}
	}
	errs = append(errs, validateStatements(d)...)
	if d.PlantingArea != nil {
		errs = append(errs, validateCropDetails("plantingArea", d.PlantingArea.Seasons, d.PlantingArea.Details)...)
	}
	if d.Productivity != nil {
		errs = append(errs, validateCropDetails("productivity", d.Productivity.Seasons, d.Productivity.Details)...)
	}
	return errors.Join(errs...)
}

type namedStatement struct {
	name string
	st   Statement
}

func presentStatements(d *ReportData) []namedStatement {
	var out []namedStatement
	if d.CashFlow != nil {
		out = append(out, namedStatement{"cashFlow", d.CashFlow.Statement})
	}
	if d.DRE != nil {
		out = append(out, namedStatement{"dre", d.DRE.Statement})
	}
	if d.BalanceSheet != nil {
		out = append(out, namedStatement{"balanceSheet", d.BalanceSheet.Statement})
	}
	return out
}

func validateStatements(d *ReportData) []error {
	statements := presentStatements(d)
	if len(statements) == 0 {
		return nil
	}
	var errs []error
	ref := statements[0]
	if len(ref.st.Safras) == 0 {
		errs = append(errs, fmt.Errorf("%w: %s declares no safras", ErrInvalid, ref.name))
	}
	if dup := duplicates(ref.st.Safras); len(dup) > 0 {
		errs = append(errs, fmt.Errorf("%w: %s repeats safras %s", ErrInvalid, ref.name, strings.Join(dup, ", ")))
	}
	for _, other := range statements[1:] {
		if !equalOrdered(ref.st.Safras, other.st.Safras) {
			errs = append(errs, fmt.Errorf("%w: %s safras [%s] differ from %s safras [%s]",
				ErrInvalid, other.name, strings.Join(other.st.Safras, ", "), ref.name, strings.Join(ref.st.Safras, ", ")))
		}
	}
	for _, ns := range statements {
		expected := toSet(ns.st.Safras)
		for _, line := range ns.st.Flatten() {
			if line.Kind == LineHeader && len(line.Values) == 0 {
				continue
			}
			missing, extra := diffKeys(expected, line.Values)
			if len(missing) > 0 || len(extra) > 0 {
				errs = append(errs, &SeasonAlignmentError{Section: ns.name, Line: line.Label, Missing: missing, Extra: extra})
			}
		}
	}
	return errs
}

// validateCropDetails rejects detail rows that reference a safra the section
// does not list. Missing safras are allowed: a crop need not be planted every
// season.
func validateCropDetails(section string, seasons []CropSeason, details []CropDetail) []error {
	expected := make(map[string]struct{}, len(seasons))
	for _, s := range seasons {
		expected[s.Safra] = struct{}{}
	}
	var errs []error
	for _, d := range details {
		_, extra := diffKeys(expected, d.Values)
		if len(extra) > 0 {
			errs = append(errs, &SeasonAlignmentError{Section: section, Line: d.Crop, Extra: extra})
		}
	}
	return errs
}

func diffKeys(expected map[string]struct{}, values map[string]float64) (missing, extra []string) {
	for k := range expected {
		if _, ok := values[k]; !ok {
			missing = append(missing, k)
		}
	}
	for k := range values {
		if _, ok := expected[k]; !ok {
			extra = append(extra, k)
		}
	}
	sort.Strings(missing)
	sort.Strings(extra)
	return missing, extra
}

func toSet(keys []string) map[string]struct{} {
	out := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		out[k] = struct{}{}
	}
	return out
}

func duplicates(keys []string) []string {
	seen := make(map[string]int, len(keys))
	var out []string
	for _, k := range keys {
		seen[k]++
		if seen[k] == 2 {
			out = append(out, k)
		}
	}
	return out
}

func equalOrdered(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
