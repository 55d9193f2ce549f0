// Package filter selects observations by dimension values.
//
// Matching is conjunctive across dimensions and disjunctive within one: a row
// passes when every restricted dimension accepts it, and a restricted
// dimension accepts any of its listed values. A nil slice leaves a dimension
// unrestricted; a non-nil empty slice matches nothing. Apply never mutates
// its input and preserves input order, so applying the same filter twice is
// the same as applying it once.
package filter

import (
	"strings"

	"golang.org/x/text/cases"

	model "github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/model"
)

// Filter restricts observations per dimension. The zero value matches
// every row.
type Filter struct {
	// YearFrom and YearTo bound the year inclusively; zero means unbounded.
	YearFrom int
	YearTo   int

	// Years restricts to an explicit year set. Nil means unrestricted.
	Years []int

	// Events, Cohorts, Brands and Types restrict their dimensions by exact
	// value. Nil means unrestricted; empty non-nil means match nothing.
	Events  []string
	Cohorts []string
	Brands  []string
	Types   []model.BrandType

	// BrandQuery keeps rows whose brand name contains the query,
	// case-insensitively (Unicode fold). Empty means unrestricted.
	BrandQuery string

	// MaxRank keeps rows with Rank <= MaxRank when positive.
	MaxRank int
}

// Apply returns the rows accepted by f, in input order. The input slice is
// never mutated; the result is always a fresh slice.
func Apply(rows []model.Observation, f Filter) []model.Observation {
	out := make([]model.Observation, 0, len(rows))
	for _, o := range rows {
		if f.Match(o) {
			out = append(out, o)
		}
	}
	return out
}

// Match reports whether a single observation passes the filter.
func (f Filter) Match(o model.Observation) bool {
	if f.YearFrom != 0 && o.Year < f.YearFrom {
		return false
	}
	if f.YearTo != 0 && o.Year > f.YearTo {
		return false
	}
	if f.Years != nil && !containsInt(f.Years, o.Year) {
		return false
	}
	if f.Events != nil && !containsString(f.Events, o.Event) {
		return false
	}
	if f.Cohorts != nil && !containsString(f.Cohorts, o.Cohort) {
		return false
	}
	if f.Brands != nil && !containsString(f.Brands, o.Brand) {
		return false
	}
	if f.Types != nil && !containsType(f.Types, o.Type) {
		return false
	}
	if f.BrandQuery != "" && !ContainsFold(o.Brand, f.BrandQuery) {
		return false
	}
	if f.MaxRank > 0 && o.Rank > f.MaxRank {
		return false
	}
	return true
}

// ContainsFold reports whether s contains substr under Unicode case folding.
// A fresh Caser is built per call; Casers carry transform state and must not
// be shared between goroutines.
func ContainsFold(s, substr string) bool {
	caser := cases.Fold()
	return strings.Contains(caser.String(s), caser.String(substr))
}

func containsInt(vals []int, v int) bool {
	for _, x := range vals {
		if x == v {
			return true
		}
	}
	return false
}

func containsString(vals []string, v string) bool {
	for _, x := range vals {
		if x == v {
			return true
		}
	}
	return false
}

func containsType(vals []model.BrandType, v model.BrandType) bool {
	for _, x := range vals {
		if x == v {
			return true
		}
	}
	return false
}
