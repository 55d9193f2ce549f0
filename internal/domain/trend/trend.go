// Package trend summarizes the first-to-last movement of a yearly series.
package trend

import (
	"fmt"
	"sort"

	rank "github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/rank"
)

// Direction classifies the sign of a series delta.
type Direction string

// Directions. The delta is last minus first; on a rank series a negative
// delta therefore means improvement, which is the caller's reading to make.
const (
	Up   Direction = "up"
	Down Direction = "down"
	Flat Direction = "flat"
)

// Point is one year's value in a series.
type Point struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// Summary reports the first-to-last movement and the extrema of a series.
type Summary struct {
	FirstYear int     `json:"first_year"`
	LastYear  int     `json:"last_year"`
	First     float64 `json:"first"`
	Last      float64 `json:"last"`

	// Delta is Last - First. PctChange is Delta/First*100 and only
	// meaningful when PctDefined is true; a series starting at zero has no
	// defined percentage change.
	Delta      float64   `json:"delta"`
	PctChange  float64   `json:"pct_change"`
	PctDefined bool      `json:"pct_defined"`
	Direction  Direction `json:"direction"`

	// Best and Worst are taken over the whole series under the requested
	// orientation, resolving ties to the earliest year and then to input
	// order.
	Best  Point `json:"best"`
	Worst Point `json:"worst"`
}

// Summarize reduces a yearly series to a Summary. The series needs at least
// two distinct years; anything less reports ErrInsufficientData. Input order
// is not assumed: points are sorted by year, stably, before summarizing.
//
// lowerIsBetter selects the orientation for Best and Worst: true for rank
// series, false for share series.
func Summarize(points []Point, lowerIsBetter bool) (Summary, error) {
	if distinctYears(points) < 2 {
		return Summary{}, fmt.Errorf("%w: need at least 2 distinct years, have %d",
			ErrInsufficientData, distinctYears(points))
	}

	sorted := make([]Point, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Year < sorted[j].Year })

	first := sorted[0]
	last := sorted[len(sorted)-1]

	s := Summary{
		FirstYear: first.Year,
		LastYear:  last.Year,
		First:     first.Value,
		Last:      last.Value,
		Delta:     last.Value - first.Value,
	}
	if first.Value != 0 {
		s.PctChange = s.Delta / first.Value * 100
		s.PctDefined = true
	}
	switch {
	case s.Delta > 0:
		s.Direction = Up
	case s.Delta < 0:
		s.Direction = Down
	default:
		s.Direction = Flat
	}

	values := make([]float64, len(sorted))
	for i, p := range sorted {
		values[i] = p.Value
	}
	s.Best = sorted[rank.Best(values, lowerIsBetter)]
	s.Worst = sorted[rank.Worst(values, lowerIsBetter)]

	return s, nil
}

func distinctYears(points []Point) int {
	years := make(map[int]struct{}, len(points))
	for _, p := range points {
		years[p.Year] = struct{}{}
	}
	return len(years)
}
