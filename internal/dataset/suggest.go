package dataset

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"

	"github.com/zhuangxuhong/marathon-shoe-analysis/pkg/metrics"
)

// SuggestBrands returns up to limit brand names matching query, meant
// for search-box completion. Case-folded substring matches come first,
// then near-miss names ordered by edit distance. The result is purely
// advisory and never feeds back into filtering.
func (t *Table) SuggestBrands(query string, limit int) []string {
	metrics.RecordSuggestQuery()

	query = strings.TrimSpace(query)
	if query == "" || limit <= 0 {
		return nil
	}

	// Casers carry transform state and must not be shared between goroutines.
	caser := cases.Fold()
	folded := caser.String(query)
	cutoff := allowedDistance(utf8.RuneCountInString(folded))

	type nearMiss struct {
		name string
		dist int
	}

	var direct []string
	var near []nearMiss
	for _, name := range t.names {
		foldedName := caser.String(name)
		if strings.Contains(foldedName, folded) {
			direct = append(direct, name)
			continue
		}
		if d := levenshtein.ComputeDistance(foldedName, folded); d <= cutoff {
			near = append(near, nearMiss{name: name, dist: d})
		}
	}

	// names is sorted, so equal-distance near misses stay in name order.
	sort.SliceStable(near, func(i, j int) bool { return near[i].dist < near[j].dist })

	out := direct
	for _, n := range near {
		out = append(out, n.name)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// allowedDistance scales the fuzzy cutoff with query length so that
// short queries, CJK brand names in particular, do not pull in
// unrelated two-rune names.
func allowedDistance(runes int) int {
	if runes < 4 {
		return 1
	}
	return 2
}
