package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/zhuangxuhong/marathon-shoe-analysis/internal/dataset"
	"github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/aggregate"
	"github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/compare"
	"github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/filter"
	"github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/model"
	"github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/trend"
	"github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/types"
	"github.com/zhuangxuhong/marathon-shoe-analysis/internal/report"
	"github.com/zhuangxuhong/marathon-shoe-analysis/pkg/metrics"
)

// Query kind labels used by the metrics pipeline.
const (
	kindOverview     = "overview"
	kindBrandProfile = "brand_profile"
	kindTypeShare    = "type_share"
	kindCompare      = "compare"
	kindRecords      = "records"
	kindExport       = "export"
	kindReport       = "report"
	kindBrands       = "brands"
)

const (
	sharePctScale    = 100.0
	minCompareBrands = 2
)

// Overview assembles the landing-page numbers: the focus brand's latest
// placements, the domestic share headline, the winningest brand and the
// long-run trend series.
func (s *Service) Overview(ctx context.Context) (*types.Overview, error) {
	defer observe(kindOverview)()

	table, err := s.data()
	if err != nil {
		metrics.RecordQueryError(kindOverview, "not_started")
		return nil, err
	}

	rows := table.Records()
	ov := &types.Overview{
		Dataset:    datasetInfo(table),
		FocusBrand: s.focusBrand,
	}

	years := table.Years()
	if len(years) == 0 {
		return ov, nil
	}
	latest := years[len(years)-1]
	ov.LatestYear = latest

	// The focus brand's best rank per cohort in the latest year.
	focusLatest := filter.Apply(rows, filter.Filter{
		Brands: []string{s.focusBrand},
		Years:  []int{latest},
	})
	byCohort, err := aggregate.GroupBy(focusLatest,
		[]aggregate.Key{aggregate.ByCohort}, aggregate.MetricRank, aggregate.OpMin)
	if err != nil {
		return nil, fmt.Errorf("failed to group focus ranks: %w", err)
	}
	for _, g := range byCohort {
		ov.FocusRanks = append(ov.FocusRanks, types.CohortRank{Cohort: g.Cohort, Rank: int(g.Value)})
	}

	latestRows := filter.Apply(rows, filter.Filter{Years: []int{latest}})
	if ov.DomesticSharePct, err = tableSharePct(latestRows, model.Domestic); err != nil {
		return nil, err
	}

	ov.TopWinner = topWinner(rows)

	focusRows := filter.Apply(rows, filter.Filter{Brands: []string{s.focusBrand}})
	if ov.FocusRankTrend, err = cohortSeries(focusRows, aggregate.MetricRank, 1); err != nil {
		return nil, err
	}
	if ov.TypeShareTrend, err = typeShareByCohort(rows, table.Cohorts()); err != nil {
		return nil, err
	}

	metrics.RecordQueryRows(kindOverview, len(rows))
	return ov, nil
}

// BrandProfile assembles the detail page for one brand: extremes,
// averages, per-cohort series, the event heatmap, trend summaries and
// the per-cohort findings.
func (s *Service) BrandProfile(ctx context.Context, name string) (*types.BrandProfile, error) {
	defer observe(kindBrandProfile)()

	table, err := s.data()
	if err != nil {
		metrics.RecordQueryError(kindBrandProfile, "not_started")
		return nil, err
	}

	rows := filter.Apply(table.Records(), filter.Filter{Brands: []string{name}})
	if len(rows) == 0 {
		metrics.RecordQueryError(kindBrandProfile, "unknown_brand")
		return nil, fmt.Errorf("%w: %s", ErrUnknownBrand, name)
	}

	p := &types.BrandProfile{
		Brand: name,
		Type:  string(table.TypeOf(name)),
	}
	if meta, ok := table.Meta(name); ok {
		p.Note = meta.Note
	}

	// Extremes keep the first occurrence in table order.
	best, worst := rows[0], rows[0]
	var rankSum, shareSum float64
	for _, o := range rows {
		if o.Rank < best.Rank {
			best = o
		}
		if o.Rank > worst.Rank {
			worst = o
		}
		rankSum += float64(o.Rank)
		shareSum += o.SharePct()
	}
	p.Best = types.ExtremeRank{Rank: best.Rank, Event: best.Event, Year: best.Year}
	p.Worst = types.ExtremeRank{Rank: worst.Rank, Event: worst.Event, Year: worst.Year}
	p.AvgRank = rankSum / float64(len(rows))
	p.AvgSharePct = shareSum / float64(len(rows))

	if p.RankTrend, err = cohortSeries(rows, aggregate.MetricRank, 1); err != nil {
		return nil, err
	}
	if p.ShareTrend, err = cohortSeries(rows, aggregate.MetricShare, sharePctScale); err != nil {
		return nil, err
	}
	if p.RankHeatmap, err = rankHeatmap(rows); err != nil {
		return nil, err
	}

	rankPoints, err := yearlyMeanPoints(rows, aggregate.MetricRank, 1)
	if err != nil {
		return nil, err
	}
	sharePoints, err := yearlyMeanPoints(rows, aggregate.MetricShare, sharePctScale)
	if err != nil {
		return nil, err
	}
	p.RankSummary = summarize(kindBrandProfile, rankPoints, true)
	p.ShareSummary = summarize(kindBrandProfile, sharePoints, false)

	p.Findings = report.BrandFindings(rows)

	metrics.RecordQueryRows(kindBrandProfile, len(rows))
	return p, nil
}

// TypeShare assembles the domestic-versus-international page: share
// series per cohort and overall, top-placement counts and the
// representative brand rank lines.
func (s *Service) TypeShare(ctx context.Context) (*types.TypeShare, error) {
	defer observe(kindTypeShare)()

	table, err := s.data()
	if err != nil {
		metrics.RecordQueryError(kindTypeShare, "not_started")
		return nil, err
	}
	rows := table.Records()

	ts := &types.TypeShare{TopRankCutoff: s.topRankCutoff}

	if ts.SharesByCohort, err = typeShareByCohort(rows, table.Cohorts()); err != nil {
		return nil, err
	}
	if ts.DomesticOverall, err = typeShareSeries(rows, model.Domestic); err != nil {
		return nil, err
	}
	if ts.InternationalOverall, err = typeShareSeries(rows, model.International); err != nil {
		return nil, err
	}
	ts.DomesticSummary = summarize(kindTypeShare, ts.DomesticOverall, false)

	ts.TopCounts = topCounts(rows, s.topRankCutoff)

	if ts.Representative.Domestic, err = brandSeries(rows, s.domesticBrands); err != nil {
		return nil, err
	}
	if ts.Representative.International, err = brandSeries(rows, s.internationalBrands); err != nil {
		return nil, err
	}

	metrics.RecordQueryRows(kindTypeShare, len(rows))
	return ts, nil
}

// Compare ranks the requested brands against each other. Requests are
// deduplicated first; brands without any data are dropped from the
// result rather than failing the whole comparison.
func (s *Service) Compare(ctx context.Context, brands []string) (*types.Comparison, error) {
	defer observe(kindCompare)()

	table, err := s.data()
	if err != nil {
		metrics.RecordQueryError(kindCompare, "not_started")
		return nil, err
	}

	requested := dedupeBrands(brands)
	if len(requested) < minCompareBrands {
		metrics.RecordQueryError(kindCompare, "too_few_brands")
		return nil, fmt.Errorf("%w: need at least %d distinct brands, got %d",
			ErrBadCompare, minCompareBrands, len(requested))
	}
	if len(requested) > s.maxCompareBrands {
		metrics.RecordQueryError(kindCompare, "too_many_brands")
		return nil, fmt.Errorf("%w: at most %d brands per comparison, got %d",
			ErrBadCompare, s.maxCompareBrands, len(requested))
	}

	reports := compare.Brands(table.Records(), requested, len(table.Events()))
	cmp := &types.Comparison{
		Brands:     requested,
		Reports:    reports,
		Conclusion: report.Verdict(reports),
	}

	metrics.RecordQueryRows(kindCompare, len(reports))
	return cmp, nil
}

// datasetInfo summarizes the table's dimensions.
func datasetInfo(t *dataset.Table) types.DatasetInfo {
	info := types.DatasetInfo{
		Records: t.Len(),
		Brands:  len(t.BrandNames()),
		Events:  t.Events(),
		Cohorts: t.Cohorts(),
		Years:   t.Years(),
	}
	if len(info.Years) > 0 {
		info.FirstYear = info.Years[0]
		info.LastYear = info.Years[len(info.Years)-1]
	}
	return info
}

// tableSharePct averages the per-table summed share of one brand type
// and scales it to a percentage. Averaging over (event, cohort) tables
// keeps the value comparable to a single table's 0..100 range.
func tableSharePct(rows []model.Observation, t model.BrandType) (float64, error) {
	typed := filter.Apply(rows, filter.Filter{Types: []model.BrandType{t}})
	groups, err := aggregate.GroupBy(typed,
		[]aggregate.Key{aggregate.ByEvent, aggregate.ByCohort}, aggregate.MetricShare, aggregate.OpSum)
	if err != nil || len(groups) == 0 {
		return 0, err
	}

	var sum float64
	for _, g := range groups {
		sum += g.Value
	}
	return sum / float64(len(groups)) * sharePctScale, nil
}

// topWinner finds the brand with the most first places. Ties resolve to
// the lexicographically smallest name so the result is stable.
func topWinner(rows []model.Observation) types.TopWinner {
	wins := make(map[string]int)
	for _, o := range rows {
		if o.Rank == 1 {
			wins[o.Brand]++
		}
	}

	var best types.TopWinner
	for brand, n := range wins {
		if n > best.Wins || (n == best.Wins && (best.Brand == "" || brand < best.Brand)) {
			best = types.TopWinner{Brand: brand, Wins: n}
		}
	}
	return best
}

// cohortSeries builds one mean-value series per cohort, scaled by scale.
func cohortSeries(rows []model.Observation, metric aggregate.Metric, scale float64) ([]types.Series, error) {
	groups, err := aggregate.GroupBy(rows,
		[]aggregate.Key{aggregate.ByYear, aggregate.ByCohort}, metric, aggregate.OpMean)
	if err != nil {
		return nil, err
	}

	idx := make(map[string]int)
	var out []types.Series
	for _, g := range groups {
		i, ok := idx[g.Cohort]
		if !ok {
			i = len(out)
			idx[g.Cohort] = i
			out = append(out, types.Series{Name: g.Cohort})
		}
		out[i].Points = append(out[i].Points, trend.Point{Year: g.Year, Value: g.Value * scale})
	}
	return out, nil
}

// typeShareByCohort builds the share trend per cohort and brand type.
func typeShareByCohort(rows []model.Observation, cohorts []string) ([]types.TypeShareSeries, error) {
	var out []types.TypeShareSeries
	for _, cohort := range cohorts {
		cohortRows := filter.Apply(rows, filter.Filter{Cohorts: []string{cohort}})
		for _, t := range []model.BrandType{model.Domestic, model.International} {
			points, err := typeShareSeries(cohortRows, t)
			if err != nil {
				return nil, err
			}
			if len(points) == 0 {
				continue
			}
			out = append(out, types.TypeShareSeries{Cohort: cohort, Type: string(t), Points: points})
		}
	}
	return out, nil
}

// typeShareSeries produces the yearly percentage series for one brand
// type, averaging per-table sums within each year.
func typeShareSeries(rows []model.Observation, t model.BrandType) ([]trend.Point, error) {
	typed := filter.Apply(rows, filter.Filter{Types: []model.BrandType{t}})
	groups, err := aggregate.GroupBy(typed,
		[]aggregate.Key{aggregate.ByYear, aggregate.ByEvent, aggregate.ByCohort},
		aggregate.MetricShare, aggregate.OpSum)
	if err != nil {
		return nil, err
	}

	sums := make(map[int]float64)
	counts := make(map[int]int)
	var yearOrder []int
	for _, g := range groups {
		if counts[g.Year] == 0 {
			yearOrder = append(yearOrder, g.Year)
		}
		sums[g.Year] += g.Value
		counts[g.Year]++
	}

	points := make([]trend.Point, 0, len(yearOrder))
	for _, y := range yearOrder {
		points = append(points, trend.Point{Year: y, Value: sums[y] / float64(counts[y]) * sharePctScale})
	}
	return points, nil
}

// yearlyMeanPoints reduces rows to a yearly mean series for metric.
func yearlyMeanPoints(rows []model.Observation, metric aggregate.Metric, scale float64) ([]trend.Point, error) {
	groups, err := aggregate.GroupBy(rows, []aggregate.Key{aggregate.ByYear}, metric, aggregate.OpMean)
	if err != nil {
		return nil, err
	}

	points := make([]trend.Point, len(groups))
	for i, g := range groups {
		points[i] = trend.Point{Year: g.Year, Value: g.Value * scale}
	}
	return points, nil
}

// summarize wraps trend.Summarize, converting the insufficient-data case
// into a nil summary plus a metrics tick instead of a request failure.
func summarize(kind string, points []trend.Point, lowerIsBetter bool) *trend.Summary {
	sum, err := trend.Summarize(points, lowerIsBetter)
	if err != nil {
		metrics.RecordInsufficientData(kind)
		return nil
	}
	return &sum
}

// rankHeatmap pivots mean rank by event and year. Only observed cells
// are emitted, events in sorted order with years ascending inside.
func rankHeatmap(rows []model.Observation) ([]types.HeatCell, error) {
	groups, err := aggregate.GroupBy(rows,
		[]aggregate.Key{aggregate.ByEvent, aggregate.ByYear}, aggregate.MetricRank, aggregate.OpMean)
	if err != nil {
		return nil, err
	}

	cells := make([]types.HeatCell, len(groups))
	for i, g := range groups {
		cells[i] = types.HeatCell{Event: g.Event, Year: g.Year, Rank: g.Value}
	}
	sort.SliceStable(cells, func(i, j int) bool {
		if cells[i].Event != cells[j].Event {
			return cells[i].Event < cells[j].Event
		}
		return cells[i].Year < cells[j].Year
	})
	return cells, nil
}

// topCounts tallies placements at or better than the cutoff per year
// for each brand type.
func topCounts(rows []model.Observation, cutoff int) []types.TopCounts {
	top := filter.Apply(rows, filter.Filter{MaxRank: cutoff})

	out := make([]types.TopCounts, 0, 2)
	for _, t := range []model.BrandType{model.Domestic, model.International} {
		typed := filter.Apply(top, filter.Filter{Types: []model.BrandType{t}})
		counts := make(map[int]int)
		for _, o := range typed {
			counts[o.Year]++
		}
		if len(counts) == 0 {
			continue
		}

		years := make([]int, 0, len(counts))
		for y := range counts {
			years = append(years, y)
		}
		sort.Ints(years)

		points := make([]trend.Point, len(years))
		for i, y := range years {
			points[i] = trend.Point{Year: y, Value: float64(counts[y])}
		}
		out = append(out, types.TopCounts{Type: string(t), Points: points})
	}
	return out
}

// brandSeries builds one mean-rank series per listed brand, skipping
// brands without data.
func brandSeries(rows []model.Observation, brands []string) ([]types.Series, error) {
	out := make([]types.Series, 0, len(brands))
	for _, b := range brands {
		points, err := yearlyMeanPoints(
			filter.Apply(rows, filter.Filter{Brands: []string{b}}), aggregate.MetricRank, 1)
		if err != nil {
			return nil, err
		}
		if len(points) == 0 {
			continue
		}
		out = append(out, types.Series{Name: b, Points: points})
	}
	return out, nil
}

// dedupeBrands trims and deduplicates while keeping request order.
func dedupeBrands(brands []string) []string {
	seen := make(map[string]struct{}, len(brands))
	out := make([]string, 0, len(brands))
	for _, b := range brands {
		b = strings.TrimSpace(b)
		if b == "" {
			continue
		}
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		out = append(out, b)
	}
	return out
}
