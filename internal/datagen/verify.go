package datagen

import (
	"fmt"
	"sort"
)

// maxTableShare caps one table's summed share fractions.
const maxTableShare = 1.0

// Verify checks every (year, event, cohort) table in doc: ranks must
// form a contiguous permutation starting at one, and shares must sum
// to at most one. The first violation is returned wrapped in ErrVerify.
func Verify(doc *Document) error {
	type tableKey struct {
		year   int
		event  string
		cohort string
	}

	tables := make(map[tableKey][]Record)
	for _, r := range doc.Records {
		k := tableKey{r.Year, r.Event, r.Cohort}
		tables[k] = append(tables[k], r)
	}
	if len(tables) == 0 {
		return fmt.Errorf("%w: document has no records", ErrVerify)
	}

	for k, rows := range tables {
		ranks := make([]int, len(rows))
		var shareSum float64
		for i, r := range rows {
			ranks[i] = r.Rank
			shareSum += r.Share
		}

		sort.Ints(ranks)
		for i, rank := range ranks {
			if rank != i+1 {
				return fmt.Errorf("%w: table %d/%s/%s ranks are not a 1..%d permutation",
					ErrVerify, k.year, k.event, k.cohort, len(rows))
			}
		}
		if shareSum > maxTableShare {
			return fmt.Errorf("%w: table %d/%s/%s share sum %.4f exceeds %.0f",
				ErrVerify, k.year, k.event, k.cohort, shareSum, maxTableShare)
		}
	}
	return nil
}
