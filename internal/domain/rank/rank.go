// Package rank assigns competition ranks to metric values.
package rank

import (
	"sort"
)

// Competition assigns competition ("min") ranks to values: tied values share
// the lowest rank of their block, and the next distinct value is offset by
// the tie count, so two leaders are ranked 1,1 and the runner-up 3. The
// returned slice is aligned with the input: ranks[i] ranks values[i].
//
// asc selects the orientation: true means smaller values are better (rank
// metrics), false means larger values are better (share metrics).
func Competition(values []float64, asc bool) []int {
	n := len(values)
	ranks := make([]int, n)
	if n == 0 {
		return ranks
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		if asc {
			return values[idx[a]] < values[idx[b]]
		}
		return values[idx[a]] > values[idx[b]]
	})

	currentRank := 1
	for i := 0; i < n; {
		sameValueCount := 1
		for j := i + 1; j < n && values[idx[j]] == values[idx[i]]; j++ {
			sameValueCount++
		}
		for k := i; k < i+sameValueCount; k++ {
			ranks[idx[k]] = currentRank
		}
		currentRank += sameValueCount
		i += sameValueCount
	}
	return ranks
}

// Best returns the index holding the best value under the orientation,
// preferring the earliest index on ties. It returns -1 for empty input.
func Best(values []float64, asc bool) int {
	best := -1
	for i, v := range values {
		if best == -1 {
			best = i
			continue
		}
		if (asc && v < values[best]) || (!asc && v > values[best]) {
			best = i
		}
	}
	return best
}

// Worst returns the index holding the worst value under the orientation,
// preferring the earliest index on ties. It returns -1 for empty input.
func Worst(values []float64, asc bool) int {
	return Best(values, !asc)
}
