// Package compare scores brands against each other on five 0-100 factors.
package compare

import (
	"math"
	"sort"

	aggregate "github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/aggregate"
	filter "github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/filter"
	model "github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/model"
	trend "github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/trend"
)

// Factor formula constants. Each factor lands in [0,100] after clamping.
const (
	maxScore        = 100
	rankPenalty     = 5 // rank factor: 100 - avg_rank*5
	shareMultiplier = 5 // share factor: avg_share_pct*5
	bestRankPenalty = 8 // best-rank factor: 100 - best_rank*8
	stddevPenalty   = 5 // stability factor: 100 - stddev_rank*5
)

// Stats are the per-brand aggregates the factor scores derive from.
type Stats struct {
	Brand       string  `json:"brand"`
	Rows        int     `json:"rows"`
	AvgRank     float64 `json:"avg_rank"`
	BestRank    int     `json:"best_rank"`
	WorstRank   int     `json:"worst_rank"`
	AvgSharePct float64 `json:"avg_share_pct"`
	StdDevRank  float64 `json:"stddev_rank"`
	Events      int     `json:"events"`
}

// Scores holds the five factor scores, each clamped to [0,100].
type Scores struct {
	Rank      float64 `json:"rank"`
	Share     float64 `json:"share"`
	BestRank  float64 `json:"best_rank"`
	Stability float64 `json:"stability"`
	Coverage  float64 `json:"coverage"`
}

// Report is one brand's comparison line: aggregates, factor scores, and the
// yearly series behind the trend directions.
type Report struct {
	Stats

	Scores Scores `json:"scores"`

	// RankTrend and ShareTrend are the arithmetic directions of the yearly
	// mean series (delta = last - first). A falling rank series means the
	// brand improved; that reading belongs to the presentation layer.
	RankTrend  trend.Direction `json:"rank_trend"`
	ShareTrend trend.Direction `json:"share_trend"`

	RankSeries     []trend.Point `json:"rank_series"`
	SharePctSeries []trend.Point `json:"share_pct_series"`
}

// Describe aggregates one brand's rows. ok is false when the brand has no
// rows, which callers treat as "skip this brand", never as an error.
func Describe(rows []model.Observation, brand string) (Stats, bool) {
	brandRows := filter.Apply(rows, filter.Filter{Brands: []string{brand}})
	if len(brandRows) == 0 {
		return Stats{}, false
	}

	ranks := aggregate.Values(brandRows, aggregate.MetricRank)
	shares := aggregate.Values(brandRows, aggregate.MetricShare)

	return Stats{
		Brand:       brand,
		Rows:        len(brandRows),
		AvgRank:     aggregate.Mean(ranks),
		BestRank:    int(aggregate.Min(ranks)),
		WorstRank:   int(aggregate.Max(ranks)),
		AvgSharePct: aggregate.Mean(shares) * 100,
		StdDevRank:  aggregate.StdDev(ranks),
		Events:      distinctEvents(brandRows),
	}, true
}

// Factors computes the five factor scores from a brand's aggregates.
// totalEvents is the distinct event count of the whole dataset, not of the
// filtered selection; coverage measures reach against everything raced.
func Factors(st Stats, totalEvents int) Scores {
	s := Scores{
		Rank:      clamp(maxScore - st.AvgRank*rankPenalty),
		Share:     clamp(st.AvgSharePct * shareMultiplier),
		BestRank:  clamp(maxScore - float64(st.BestRank)*bestRankPenalty),
		Stability: clamp(maxScore - st.StdDevRank*stddevPenalty),
	}
	if totalEvents > 0 {
		s.Coverage = clamp(float64(st.Events) / float64(totalEvents) * maxScore)
	}
	return s
}

// Brands builds a comparison report for the named brands over the given
// rows. Brands with no rows are skipped. The result is ordered by average
// rank ascending, ties keeping the caller's brand order.
func Brands(rows []model.Observation, brands []string, totalEvents int) []Report {
	reports := make([]Report, 0, len(brands))
	for _, brand := range brands {
		st, ok := Describe(rows, brand)
		if !ok {
			continue
		}

		brandRows := filter.Apply(rows, filter.Filter{Brands: []string{brand}})
		r := Report{
			Stats:          st,
			Scores:         Factors(st, totalEvents),
			RankTrend:      trend.Flat,
			ShareTrend:     trend.Flat,
			RankSeries:     yearlyMeans(brandRows, aggregate.MetricRank, 1),
			SharePctSeries: yearlyMeans(brandRows, aggregate.MetricShare, 100),
		}
		if s, err := trend.Summarize(r.RankSeries, true); err == nil {
			r.RankTrend = s.Direction
		}
		if s, err := trend.Summarize(r.SharePctSeries, false); err == nil {
			r.ShareTrend = s.Direction
		}
		reports = append(reports, r)
	}

	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].AvgRank < reports[j].AvgRank
	})
	return reports
}

// yearlyMeans reduces rows to a per-year mean series, scaled for
// presentation (1 for ranks, 100 to turn share fractions into percent).
func yearlyMeans(rows []model.Observation, metric aggregate.Metric, scale float64) []trend.Point {
	groups, err := aggregate.GroupBy(rows, []aggregate.Key{aggregate.ByYear}, metric, aggregate.OpMean)
	if err != nil {
		return nil
	}
	pts := make([]trend.Point, len(groups))
	for i, g := range groups {
		pts[i] = trend.Point{Year: g.Year, Value: g.Value * scale}
	}
	return pts
}

func distinctEvents(rows []model.Observation) int {
	events := make(map[string]struct{}, len(rows))
	for _, o := range rows {
		events[o.Event] = struct{}{}
	}
	return len(events)
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(maxScore, v))
}
