// Package types contains common types used across the application
package types

import (
	"fmt"
	"strconv"

	model "github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/model"
)

// Row is one line of the browseable results table, the shape the records
// API and the export writers both consume.
type Row struct {
	Year      int     `json:"year"`
	Event     string  `json:"event"`
	Cohort    string  `json:"cohort"`
	Rank      int     `json:"rank"`
	Brand     string  `json:"brand"`
	BrandType string  `json:"brand_type"`
	SharePct  float64 `json:"share_pct"`
}

// FromObservation converts a stored observation into a display row,
// deriving the share percentage.
func FromObservation(o model.Observation) Row {
	return Row{
		Year:      o.Year,
		Event:     o.Event,
		Cohort:    o.Cohort,
		Rank:      o.Rank,
		Brand:     o.Brand,
		BrandType: string(o.Type),
		SharePct:  o.SharePct(),
	}
}

// Headers returns the display column names in table order.
func Headers() []string {
	return []string{"年份", "赛事", "组别", "排名", "品牌", "类型", "份额"}
}

// Cells renders the row as display strings in Headers order. Share is
// formatted as a percentage with one decimal, matching the browse table.
func (r Row) Cells() []string {
	return []string{
		strconv.Itoa(r.Year),
		r.Event,
		r.Cohort,
		strconv.Itoa(r.Rank),
		r.Brand,
		r.BrandType,
		fmt.Sprintf("%.1f%%", r.SharePct),
	}
}

// Values returns the row as typed values in Headers order, for writers
// that keep numbers as numbers (spreadsheet cells).
func (r Row) Values() []any {
	return []any{
		r.Year,
		r.Event,
		r.Cohort,
		r.Rank,
		r.Brand,
		r.BrandType,
		r.SharePct,
	}
}
