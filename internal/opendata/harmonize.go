package opendata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/edunomics/superintendent/internal/simulation"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
)

// Record is one row of a loosely structured data source. Nested objects are
// addressed with dotted keys, e.g. "academicOutcome.math".
type Record map[string]any

// Field patterns in order of preference. Patterns are matched case insensitive
// against the flattened keys of a record.
var (
	nameFields       = []string{"school_name", "institution_name", "name"}
	spendingFields   = []string{"total_expenditure_per_pupil", "per_pupil_spending", "ppe", "spendingperpupil", "*per_pupil*"}
	povertyFields    = []string{"economically_disadvantaged_pct", "free_reduced_lunch_rate", "povertyrate", "*disadvantaged*", "*free_reduced*"}
	mathFields       = []string{"math_proficiency_rate", "math_prof_rate", "percent_proficient_math", "academicoutcome.math", "*math*"}
	elaFields        = []string{"ela_proficiency_rate", "ela_prof_rate", "percent_proficient_ela", "academicoutcome.ela", "*ela*"}
	enrollmentFields = []string{"enrollment", "student_count", "*enrollment*"}
	typeFields       = []string{"type", "school_type"}
	principalFields  = []string{"principal", "principal_name"}
	seniorFields     = []string{"staffing.senior"}
	juniorFields     = []string{"staffing.junior"}
)

const (
	defaultFinanceSpending = 15000
	defaultSpending        = 16000
	defaultPoverty         = 0.5
	defaultScore           = 50
	defaultEnrollment      = 500
	pupilsPerTeacher       = 15
	seniorShare            = 0.7
	unknownPrincipal       = "TBD"
)

// ParseRecords reads a JSON array of records or an object with a "results" array.
func ParseRecords(data []byte) ([]Record, error) {
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '[' {
		var list []Record
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, err
		}
		return list, nil
	}

	var wrapped struct {
		Results []Record `json:"results"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.Results, nil
}

type finance struct {
	spending float64
	poverty  float64
}

// Harmonize joins finance and assessment records by school name into schools.
//
// Assessment records define the roster, records without a name are skipped.
// Proficiency rates in the range 0 to 1 are scaled to percentages. Schools without
// staffing figures get an estimate from a 15:1 pupil to teacher ratio.
func Harmonize(financeRecords, assessmentRecords []Record) []simulation.School {
	finances := make(map[string]finance, len(financeRecords))
	for _, r := range financeRecords {
		flat := r.flatten()

		name, ok := flat.text(nameFields)
		if !ok {
			name = "Unknown School"
		}

		finances[normalizeName(name)] = finance{
			spending: flat.numberOr(spendingFields, defaultFinanceSpending),
			poverty:  rate(flat.numberOr(povertyFields, defaultPoverty)),
		}
	}

	schools := make([]simulation.School, 0, len(assessmentRecords))
	for i, r := range assessmentRecords {
		flat := r.flatten()

		name, ok := flat.text(nameFields)
		if !ok {
			continue
		}

		f, ok := finances[normalizeName(name)]
		if !ok {
			f = finance{spending: defaultSpending, poverty: defaultPoverty}
		}

		enrollment := int(flat.numberOr(enrollmentFields, defaultEnrollment))
		school := simulation.School{
			ID:               fmt.Sprintf("s_%d", i),
			Name:             name,
			Type:             schoolType(flat, name),
			Enrollment:       enrollment,
			SpendingPerPupil: decimal.NewFromFloat(f.spending).Round(2),
			AcademicOutcome: simulation.AcademicScores{
				Math: percentage(flat.numberOr(mathFields, defaultScore)),
				ELA:  percentage(flat.numberOr(elaFields, defaultScore)),
			},
			PovertyRate: f.poverty,
			Principal:   unknownPrincipal,
			Staffing:    estimateStaffing(enrollment),
		}

		if principal, ok := flat.text(principalFields); ok {
			school.Principal = principal
		}

		senior, seniorOK := flat.number(seniorFields)
		junior, juniorOK := flat.number(juniorFields)
		if seniorOK && juniorOK && senior+junior > 0 {
			school.Staffing = simulation.Staffing{Senior: int(senior), Junior: int(junior)}
		}

		schools = append(schools, school)
	}

	return schools
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func schoolType(flat Record, name string) simulation.SchoolType {
	if t, ok := flat.text(typeFields); ok {
		switch st := simulation.SchoolType(t); st {
		case simulation.SchoolHigh, simulation.SchoolMiddle, simulation.SchoolElementary:
			return st
		}
	}

	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "high"), strings.Contains(lower, "secondary"):
		return simulation.SchoolHigh
	case strings.Contains(lower, "middle"), strings.Contains(lower, "junior"):
		return simulation.SchoolMiddle
	}
	return simulation.SchoolElementary
}

func estimateStaffing(enrollment int) simulation.Staffing {
	total := enrollment / pupilsPerTeacher
	senior := int(math.Floor(float64(total) * seniorShare))
	return simulation.Staffing{Senior: senior, Junior: total - senior}
}

// percentage scales a 0 to 1 rate to a rounded percentage.
func percentage(v float64) int {
	if v <= 1 {
		v *= 100
	}
	return int(math.Round(v))
}

// rate scales a percentage to a 0 to 1 rate.
func rate(v float64) float64 {
	if v > 1 {
		return v / 100
	}
	return v
}

func (r Record) flatten() Record {
	flat := Record{}
	var walk func(prefix string, v any)
	walk = func(prefix string, v any) {
		if nested, ok := v.(map[string]any); ok {
			for k, inner := range nested {
				walk(prefix+"."+strings.ToLower(k), inner)
			}
			return
		}
		flat[prefix] = v
	}

	for k, v := range r {
		walk(strings.ToLower(k), v)
	}
	return flat
}

// lookup offers the values of matching keys to convert, pattern by pattern, until one is accepted.
func (r Record) lookup(patterns []string, convert func(any) bool) {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, p := range patterns {
		for _, k := range keys {
			if glob.Glob(p, k) && convert(r[k]) {
				return
			}
		}
	}
}

func (r Record) text(patterns []string) (string, bool) {
	var found string
	r.lookup(patterns, func(v any) bool {
		s, ok := v.(string)
		s = strings.TrimSpace(s)
		if !ok || s == "" {
			return false
		}
		found = s
		return true
	})
	return found, found != ""
}

func (r Record) number(patterns []string) (float64, bool) {
	var (
		found float64
		ok    bool
	)
	r.lookup(patterns, func(v any) bool {
		switch n := v.(type) {
		case float64:
			found, ok = n, true
		case json.Number:
			f, err := n.Float64()
			found, ok = f, err == nil
		case string:
			f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(n), "%"), 64)
			found, ok = f, err == nil
		}
		return ok
	})
	return found, ok
}

func (r Record) numberOr(patterns []string, fallback float64) float64 {
	if v, ok := r.number(patterns); ok {
		return v
	}
	return fallback
}
