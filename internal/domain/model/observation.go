// Package model contains domain models passed between layers.
package model

// BrandType classifies a brand's origin.
type BrandType string

// Brand origin classes. Anything the source does not know lands in Other.
const (
	Domestic      BrandType = "domestic"
	International BrandType = "international"
	Other         BrandType = "other"
)

// ParseBrandType maps a raw type string onto a known BrandType.
// Unknown or empty strings are Other, never an error.
func ParseBrandType(s string) BrandType {
	switch BrandType(s) {
	case Domestic:
		return Domestic
	case International:
		return International
	default:
		return Other
	}
}

// Observation is one brand's placement in one ranked table: a single
// (year, event, cohort) cell of the dataset.
type Observation struct {
	Year   int       // race year, e.g. 2024
	Event  string    // race event name, e.g. "上海马拉松"
	Cohort string    // runner cohort the table was computed over
	Rank   int       // placement in the table, 1 is best
	Brand  string    // shoe brand name
	Share  float64   // market share as a fraction in [0,1]
	Type   BrandType // brand origin, joined from brand metadata at load
}

// SharePct reports the share as a percentage. The dataset stores fractions;
// percentages are always derived at the edge, never stored.
func (o Observation) SharePct() float64 {
	return o.Share * 100
}

// BrandMeta carries per-brand metadata from the dataset document.
type BrandMeta struct {
	Type BrandType // parsed origin class
	Note string    // free-text remark carried through from the source
}
