// Package aggregate groups observations and reduces metrics over the groups.
package aggregate

import (
	"fmt"
	"math"
	"sort"

	model "github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/model"
)

// Key names a grouping dimension.
type Key string

// Grouping dimensions.
const (
	ByYear   Key = "year"
	ByBrand  Key = "brand"
	ByEvent  Key = "event"
	ByCohort Key = "cohort"
	ByType   Key = "brand_type"
)

// Metric names the observation field being aggregated.
type Metric string

// Aggregatable metrics.
const (
	MetricRank  Metric = "rank"
	MetricShare Metric = "share"
)

// Op names a reduction over a group's metric values.
type Op string

// Reductions. Stddev is the sample standard deviation; a single-value group
// has stddev 0, not NaN.
const (
	OpMean   Op = "mean"
	OpMin    Op = "min"
	OpMax    Op = "max"
	OpStdDev Op = "stddev"
	OpSum    Op = "sum"
	OpCount  Op = "count"
)

// Group is one output row of GroupBy. Only the fields named by the grouping
// keys are populated; Count always holds the number of source rows.
type Group struct {
	Year   int
	Brand  string
	Event  string
	Cohort string
	Type   model.BrandType

	Value float64
	Count int
}

type groupKey struct {
	year   int
	brand  string
	event  string
	cohort string
	btype  model.BrandType
}

// GroupBy partitions rows by the requested keys and reduces the metric with
// op inside each partition. Empty input yields an empty result, never an
// error. Output is sorted by year, brand, event, cohort and type for
// deterministic iteration.
func GroupBy(rows []model.Observation, keys []Key, metric Metric, op Op) ([]Group, error) {
	if err := checkKeys(keys); err != nil {
		return nil, err
	}
	if metric != MetricRank && metric != MetricShare {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
	}

	buckets := make(map[groupKey][]float64)
	for _, o := range rows {
		k := makeKey(o, keys)
		buckets[k] = append(buckets[k], metricValue(o, metric))
	}

	out := make([]Group, 0, len(buckets))
	for k, vals := range buckets {
		v, err := reduce(vals, op)
		if err != nil {
			return nil, err
		}
		out = append(out, Group{
			Year:   k.year,
			Brand:  k.brand,
			Event:  k.event,
			Cohort: k.cohort,
			Type:   k.btype,
			Value:  v,
			Count:  len(vals),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Brand != b.Brand {
			return a.Brand < b.Brand
		}
		if a.Event != b.Event {
			return a.Event < b.Event
		}
		if a.Cohort != b.Cohort {
			return a.Cohort < b.Cohort
		}
		return a.Type < b.Type
	})
	return out, nil
}

// Values extracts the metric column from rows in input order.
func Values(rows []model.Observation, metric Metric) []float64 {
	out := make([]float64, len(rows))
	for i, o := range rows {
		out[i] = metricValue(o, metric)
	}
	return out
}

func metricValue(o model.Observation, metric Metric) float64 {
	if metric == MetricRank {
		return float64(o.Rank)
	}
	return o.Share
}

func makeKey(o model.Observation, keys []Key) groupKey {
	var k groupKey
	for _, key := range keys {
		switch key {
		case ByYear:
			k.year = o.Year
		case ByBrand:
			k.brand = o.Brand
		case ByEvent:
			k.event = o.Event
		case ByCohort:
			k.cohort = o.Cohort
		case ByType:
			k.btype = o.Type
		}
	}
	return k
}

func checkKeys(keys []Key) error {
	for _, key := range keys {
		switch key {
		case ByYear, ByBrand, ByEvent, ByCohort, ByType:
		default:
			return fmt.Errorf("%w: %q", ErrUnknownKey, key)
		}
	}
	return nil
}

func reduce(vals []float64, op Op) (float64, error) {
	switch op {
	case OpMean:
		return Mean(vals), nil
	case OpMin:
		return Min(vals), nil
	case OpMax:
		return Max(vals), nil
	case OpStdDev:
		return StdDev(vals), nil
	case OpSum:
		return Sum(vals), nil
	case OpCount:
		return float64(len(vals)), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOp, op)
	}
}

// Sum adds the values; an empty slice sums to 0.
func Sum(vals []float64) float64 {
	var s float64
	for _, v := range vals {
		s += v
	}
	return s
}

// Mean averages the values; an empty slice has mean 0.
func Mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	return Sum(vals) / float64(len(vals))
}

// Min returns the smallest value, or 0 for an empty slice.
func Min(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// Max returns the largest value, or 0 for an empty slice.
func Max(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// StdDev returns the sample standard deviation (n-1 denominator). Slices
// with fewer than two values have stddev 0.
func StdDev(vals []float64) float64 {
	n := len(vals)
	if n < 2 {
		return 0
	}
	mean := Mean(vals)
	var ss float64
	for _, v := range vals {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1))
}
