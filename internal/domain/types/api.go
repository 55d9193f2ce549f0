package types

import (
	"github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/compare"
	"github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/trend"
	"github.com/zhuangxuhong/marathon-shoe-analysis/internal/report"
)

// Series is one named line of yearly points.
type Series struct {
	Name   string        `json:"name"`
	Points []trend.Point `json:"points"`
}

// DatasetInfo summarizes the loaded dataset for the sidebar header.
type DatasetInfo struct {
	Records   int      `json:"records"`
	Brands    int      `json:"brands"`
	Events    []string `json:"events"`
	Cohorts   []string `json:"cohorts"`
	Years     []int    `json:"years"`
	FirstYear int      `json:"first_year"`
	LastYear  int      `json:"last_year"`
}

// CohortRank is the focus brand's best rank within one cohort.
type CohortRank struct {
	Cohort string `json:"cohort"`
	Rank   int    `json:"rank"`
}

// TopWinner is the brand with the most first places across the dataset.
type TopWinner struct {
	Brand string `json:"brand"`
	Wins  int    `json:"wins"`
}

// TypeShareSeries is a share-by-year line for one brand type in one
// cohort. Values are percentages of a single table's field, averaged
// over the tables of that year.
type TypeShareSeries struct {
	Cohort string        `json:"cohort"`
	Type   string        `json:"type"`
	Points []trend.Point `json:"points"`
}

// Overview is the landing-page payload.
type Overview struct {
	Dataset          DatasetInfo       `json:"dataset"`
	LatestYear       int               `json:"latest_year"`
	FocusBrand       string            `json:"focus_brand"`
	FocusRanks       []CohortRank      `json:"focus_ranks"`
	DomesticSharePct float64           `json:"domestic_share_pct"`
	TopWinner        TopWinner         `json:"top_winner"`
	FocusRankTrend   []Series          `json:"focus_rank_trend"`
	TypeShareTrend   []TypeShareSeries `json:"type_share_trend"`
}

// ExtremeRank pins a best or worst placement to its event and year.
type ExtremeRank struct {
	Rank  int    `json:"rank"`
	Event string `json:"event"`
	Year  int    `json:"year"`
}

// HeatCell is one event-by-year mean rank of the detail heatmap.
type HeatCell struct {
	Event string  `json:"event"`
	Year  int     `json:"year"`
	Rank  float64 `json:"rank"`
}

// BrandProfile is the brand-detail payload. Trend summaries are nil
// when the brand has fewer than two distinct years of data.
type BrandProfile struct {
	Brand        string                 `json:"brand"`
	Type         string                 `json:"type"`
	Note         string                 `json:"note,omitempty"`
	Best         ExtremeRank            `json:"best"`
	Worst        ExtremeRank            `json:"worst"`
	AvgRank      float64                `json:"avg_rank"`
	AvgSharePct  float64                `json:"avg_share_pct"`
	RankTrend    []Series               `json:"rank_trend"`
	ShareTrend   []Series               `json:"share_trend"`
	RankHeatmap  []HeatCell             `json:"rank_heatmap"`
	RankSummary  *trend.Summary         `json:"rank_summary,omitempty"`
	ShareSummary *trend.Summary         `json:"share_summary,omitempty"`
	Findings     []report.CohortFinding `json:"findings"`
}

// TopCounts counts top placements per year for one brand type. Point
// values carry the counts.
type TopCounts struct {
	Type   string        `json:"type"`
	Points []trend.Point `json:"points"`
}

// RepresentativeSeries holds mean-rank lines for the configured
// representative brands on each side.
type RepresentativeSeries struct {
	Domestic      []Series `json:"domestic"`
	International []Series `json:"international"`
}

// TypeShare is the domestic-versus-international payload.
type TypeShare struct {
	SharesByCohort       []TypeShareSeries    `json:"shares_by_cohort"`
	DomesticOverall      []trend.Point        `json:"domestic_overall"`
	InternationalOverall []trend.Point        `json:"international_overall"`
	DomesticSummary      *trend.Summary       `json:"domestic_summary,omitempty"`
	TopRankCutoff        int                  `json:"top_rank_cutoff"`
	TopCounts            []TopCounts          `json:"top_counts"`
	Representative       RepresentativeSeries `json:"representative"`
}

// Comparison is the brand-comparison payload. Reports are sorted by
// average rank, best first; requested brands without data are dropped.
type Comparison struct {
	Brands     []string         `json:"brands"`
	Reports    []compare.Report `json:"reports"`
	Conclusion string           `json:"conclusion"`
}

// RecordQuery narrows the browseable table. Zero fields leave their
// dimension unrestricted. Types values are parsed leniently; unknown
// strings read as the other class.
type RecordQuery struct {
	YearFrom int
	YearTo   int
	Years    []int
	Events   []string
	Cohorts  []string
	Brands   []string
	Types    []string
	Query    string
	MaxRank  int
	Limit    int
}

// RecordsPage is the data-browse payload. Total counts the rows
// matching the filter; Count is what remained after the limit.
type RecordsPage struct {
	Total   int   `json:"total"`
	Count   int   `json:"count"`
	Records []Row `json:"records"`
}

// BrandInfo is one entry of the brand universe.
type BrandInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Note string `json:"note,omitempty"`
}

// ReportDoc is a rendered brand insight report.
type ReportDoc struct {
	Brand    string `json:"brand"`
	Markdown string `json:"markdown"`
	HTML     string `json:"html"`
}
