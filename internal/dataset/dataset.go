// Package dataset loads the marathon shoe-share document into an
// immutable in-memory table and answers simple lookups over it.
package dataset

import (
	"sort"

	model "github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/model"
)

// Table is the loaded dataset. It is read-only after construction:
// accessors hand out shared or copied views, and nothing in this
// package mutates a Table once Load has returned it.
type Table struct {
	records  []model.Observation
	meta     map[string]model.BrandMeta
	fallback model.BrandType
	years    []int
	events   []string
	cohorts  []string
	names    []string
}

// Records returns every observation in document order. The slice is a
// shared read-only view; callers must not modify it.
func (t *Table) Records() []model.Observation {
	return t.records
}

// Brands returns a copy of the brand metadata map.
func (t *Table) Brands() map[string]model.BrandMeta {
	out := make(map[string]model.BrandMeta, len(t.meta))
	for name, m := range t.meta {
		out[name] = m
	}
	return out
}

// Meta returns the metadata for one brand. The boolean reports whether
// the document listed the brand at all.
func (t *Table) Meta(brand string) (model.BrandMeta, bool) {
	m, ok := t.meta[brand]
	return m, ok
}

// TypeOf returns the joined brand type for a brand name, the load
// fallback (Other unless overridden) when the brand has no metadata.
func (t *Table) TypeOf(brand string) model.BrandType {
	if m, ok := t.meta[brand]; ok {
		return m.Type
	}
	return t.fallback
}

// Years returns the distinct years with observations, ascending.
func (t *Table) Years() []int {
	out := make([]int, len(t.years))
	copy(out, t.years)
	return out
}

// Events returns the distinct event names, sorted.
func (t *Table) Events() []string {
	out := make([]string, len(t.events))
	copy(out, t.events)
	return out
}

// Cohorts returns the distinct cohort names, sorted.
func (t *Table) Cohorts() []string {
	out := make([]string, len(t.cohorts))
	copy(out, t.cohorts)
	return out
}

// BrandNames returns the distinct brands that appear in at least one
// observation, sorted. Brands listed only in metadata are excluded.
func (t *Table) BrandNames() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Len returns the number of observations.
func (t *Table) Len() int {
	return len(t.records)
}

// build assembles a Table from a decoded document, joining brand types
// onto each observation.
func build(doc rawDocument, cfg loadConfig) *Table {
	meta := make(map[string]model.BrandMeta, len(doc.Brands))
	for name, b := range doc.Brands {
		meta[name] = model.BrandMeta{Type: model.ParseBrandType(b.Type), Note: b.Note}
	}

	records := make([]model.Observation, 0, len(doc.Records))
	yearSet := make(map[int]struct{})
	eventSet := make(map[string]struct{})
	cohortSet := make(map[string]struct{})
	nameSet := make(map[string]struct{})

	for _, r := range doc.Records {
		typ := cfg.fallbackType
		if m, ok := meta[r.Brand]; ok {
			typ = m.Type
		}
		records = append(records, model.Observation{
			Year:   r.Year,
			Event:  r.Event,
			Cohort: r.Cohort,
			Rank:   r.Rank,
			Brand:  r.Brand,
			Share:  r.Share,
			Type:   typ,
		})
		yearSet[r.Year] = struct{}{}
		eventSet[r.Event] = struct{}{}
		cohortSet[r.Cohort] = struct{}{}
		nameSet[r.Brand] = struct{}{}
	}

	return &Table{
		records:  records,
		meta:     meta,
		fallback: cfg.fallbackType,
		years:    sortedInts(yearSet),
		events:   sortedStrings(eventSet),
		cohorts:  sortedStrings(cohortSet),
		names:    sortedStrings(nameSet),
	}
}

func sortedInts(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

func sortedStrings(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
