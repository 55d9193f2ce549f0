// Package datagen produces synthetic but plausible marathon shoe-share
// datasets in the exact document shape the analysis service loads.
package datagen

import (
	"time"

	"github.com/zhuangxuhong/marathon-shoe-analysis/internal/dataset"
)

// DefaultOutPath mirrors where the analysis service looks for its data.
const DefaultOutPath = dataset.DefaultPath

// Config holds the generator's knobs, bound to CLI flags in cmd/gen-dataset.
type Config struct {
	OutPath string // where the dataset document lands
	Seed    int64  // rng seed; identical seeds produce identical documents
	Years   int    // consecutive years starting at the base year
	Events  int    // events drawn from the event pool
	Cohorts int    // cohorts drawn from the cohort pool
	Brands  int    // brands drawn from the brand pool
	Verbose bool   // debug-level logging
}

// Stats tracks one generation run.
type Stats struct {
	Tables    int
	Records   int
	Brands    int
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// Document is the dataset file shape the analysis service loads. The
// loader ignores the meta block; it exists for provenance.
type Document struct {
	Meta    Meta             `json:"meta"`
	Records []Record         `json:"records"`
	Brands  map[string]Brand `json:"brands"`
}

// Record is one ranked table row.
type Record struct {
	Year   int     `json:"year"`
	Event  string  `json:"event"`
	Cohort string  `json:"cohort"`
	Rank   int     `json:"rank"`
	Brand  string  `json:"brand"`
	Share  float64 `json:"share"`
}

// Brand is one brand metadata entry.
type Brand struct {
	Type string `json:"type"`
	Note string `json:"note"`
}

// Meta records provenance for a generated document. RunID is derived
// from the seed, so reruns with one seed stay byte-identical.
type Meta struct {
	RunID string `json:"run_id"`
	Seed  int64  `json:"seed"`
}
