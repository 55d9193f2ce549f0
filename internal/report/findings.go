// Package report builds the analysis texts behind the dashboard: per-cohort
// brand findings, comparison verdicts, and a markdown report with an HTML
// rendering. Everything here is pure presentation over the domain engines.
package report

import (
	"sort"

	model "github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/model"
)

// CohortFinding summarizes one brand's movement within one cohort between
// its first and last recorded rows. RankChange is first minus last, so a
// positive value means the brand climbed the table.
type CohortFinding struct {
	Cohort      string  `json:"cohort"`
	FirstYear   int     `json:"first_year"`
	LastYear    int     `json:"last_year"`
	FirstRank   int     `json:"first_rank"`
	LastRank    int     `json:"last_rank"`
	RankChange  int     `json:"rank_change"`
	FirstShare  float64 `json:"first_share_pct"`
	LastShare   float64 `json:"last_share_pct"`
	ShareChange float64 `json:"share_change_pct"`
	BestYear    int     `json:"best_year"`
	BestRank    int     `json:"best_rank"`
	BestEvent   string  `json:"best_event"`
	WorstYear   int     `json:"worst_year"`
	WorstRank   int     `json:"worst_rank"`
	WorstEvent  string  `json:"worst_event"`
}

// BrandFindings builds one finding per cohort from rows already reduced
// to a single brand. Cohorts appear in first-appearance order; cohorts
// with fewer than two rows are skipped, since there is no movement to
// report. Extrema take the earliest row on ties.
func BrandFindings(rows []model.Observation) []CohortFinding {
	var order []string
	byCohort := make(map[string][]model.Observation)
	for _, o := range rows {
		if _, ok := byCohort[o.Cohort]; !ok {
			order = append(order, o.Cohort)
		}
		byCohort[o.Cohort] = append(byCohort[o.Cohort], o)
	}

	findings := make([]CohortFinding, 0, len(order))
	for _, cohort := range order {
		cohortRows := byCohort[cohort]
		if len(cohortRows) < 2 {
			continue
		}

		sorted := make([]model.Observation, len(cohortRows))
		copy(sorted, cohortRows)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Year < sorted[j].Year })

		first := sorted[0]
		last := sorted[len(sorted)-1]
		best, worst := first, first
		for _, o := range sorted[1:] {
			if o.Rank < best.Rank {
				best = o
			}
			if o.Rank > worst.Rank {
				worst = o
			}
		}

		findings = append(findings, CohortFinding{
			Cohort:      cohort,
			FirstYear:   first.Year,
			LastYear:    last.Year,
			FirstRank:   first.Rank,
			LastRank:    last.Rank,
			RankChange:  first.Rank - last.Rank,
			FirstShare:  first.SharePct(),
			LastShare:   last.SharePct(),
			ShareChange: last.SharePct() - first.SharePct(),
			BestYear:    best.Year,
			BestRank:    best.Rank,
			BestEvent:   best.Event,
			WorstYear:   worst.Year,
			WorstRank:   worst.Rank,
			WorstEvent:  worst.Event,
		})
	}
	return findings
}
