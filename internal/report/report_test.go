package report_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	compare "github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/compare"
	model "github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/model"
	trend "github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/trend"
	report "github.com/zhuangxuhong/marathon-shoe-analysis/internal/report"
)

func brandRows() []model.Observation {
	return []model.Observation{
		{Year: 2021, Event: "上海马拉松", Cohort: "破3选手", Rank: 2, Brand: "乔丹", Share: 0.18, Type: model.Domestic},
		{Year: 2023, Event: "北京马拉松", Cohort: "破3选手", Rank: 4, Brand: "乔丹", Share: 0.12, Type: model.Domestic},
		{Year: 2025, Event: "上海马拉松", Cohort: "破3选手", Rank: 5, Brand: "乔丹", Share: 0.09, Type: model.Domestic},
		{Year: 2021, Event: "上海马拉松", Cohort: "全体跑者", Rank: 3, Brand: "乔丹", Share: 0.12, Type: model.Domestic},
		{Year: 2025, Event: "上海马拉松", Cohort: "全体跑者", Rank: 3, Brand: "乔丹", Share: 0.15, Type: model.Domestic},
		{Year: 2024, Event: "北京马拉松", Cohort: "大众跑者", Rank: 6, Brand: "乔丹", Share: 0.05, Type: model.Domestic},
	}
}

func TestBrandFindings(t *testing.T) {
	findings := report.BrandFindings(brandRows())

	// 大众跑者 has a single row, so only two cohorts survive, in
	// first-appearance order.
	require.Len(t, findings, 2)
	assert.Equal(t, "破3选手", findings[0].Cohort)
	assert.Equal(t, "全体跑者", findings[1].Cohort)

	sub3 := findings[0]
	assert.Equal(t, 2021, sub3.FirstYear)
	assert.Equal(t, 2025, sub3.LastYear)
	assert.Equal(t, 2, sub3.FirstRank)
	assert.Equal(t, 5, sub3.LastRank)
	assert.Equal(t, -3, sub3.RankChange, "2 minus 5: the brand slid three places")
	assert.InDelta(t, 18.0, sub3.FirstShare, 1e-9)
	assert.InDelta(t, 9.0, sub3.LastShare, 1e-9)
	assert.InDelta(t, -9.0, sub3.ShareChange, 1e-9)
	assert.Equal(t, 2021, sub3.BestYear)
	assert.Equal(t, "上海马拉松", sub3.BestEvent)
	assert.Equal(t, 2, sub3.BestRank)
	assert.Equal(t, 2025, sub3.WorstYear)
	assert.Equal(t, 5, sub3.WorstRank)

	// All ranks tie in 全体跑者, so best and worst both resolve to the
	// earliest row.
	all := findings[1]
	assert.Equal(t, 0, all.RankChange)
	assert.Equal(t, 2021, all.BestYear)
	assert.Equal(t, 2021, all.WorstYear)
	assert.InDelta(t, 3.0, all.ShareChange, 1e-9)
}

func TestBrandFindings_Empty(t *testing.T) {
	assert.Empty(t, report.BrandFindings(nil))
}

func TestBrandReport(t *testing.T) {
	st := compare.Stats{
		Brand: "乔丹", Rows: 6, AvgRank: 2.3, BestRank: 1,
		WorstRank: 5, AvgSharePct: 18.0, Events: 4,
	}
	md := report.BrandReport("乔丹", st, report.BrandFindings(brandRows()))

	assert.True(t, strings.HasPrefix(md, "# 乔丹 品牌分析报告\n"))
	assert.Contains(t, md, "| 平均排名 | 第2.3名 |")
	assert.Contains(t, md, "| 覆盖赛事 | 4场 |")
	assert.Contains(t, md, "### 破3选手")
	assert.Contains(t, md, "- 排名：第2名(2021)→第5名(2025)，下降3名")
	assert.Contains(t, md, "- 份额：18.0%→9.0%，下降9.0%")
	assert.Contains(t, md, "- 最佳：上海马拉松 2021年 第2名")
	assert.Contains(t, md, "- 排名：第3名(2021)→第3名(2025)，持平")
	assert.Contains(t, md, "增长3.0%")
}

func TestBrandReport_NoFindings(t *testing.T) {
	md := report.BrandReport("HOKA", compare.Stats{Brand: "HOKA", Rows: 1}, nil)
	assert.Contains(t, md, "数据不足")
}

func TestVerdict(t *testing.T) {
	reports := []compare.Report{
		{Stats: compare.Stats{Brand: "乔丹", AvgRank: 2.3, AvgSharePct: 18.0}, RankTrend: trend.Down},
		{Stats: compare.Stats{Brand: "Nike", AvgRank: 3.1, AvgSharePct: 21.0}, RankTrend: trend.Flat},
		{Stats: compare.Stats{Brand: "特步", AvgRank: 4.0, AvgSharePct: 9.0}, RankTrend: trend.Up},
	}

	verdict := report.Verdict(reports)
	assert.Contains(t, verdict, "**乔丹**表现最佳，平均第2.3名，份额18.0%")
	assert.Contains(t, verdict, "**特步**相对较弱，平均第4.0名")
	assert.Contains(t, verdict, "乔丹排名呈上升趋势",
		"a falling rank series reads as climbing the table")
	assert.NotContains(t, verdict, "特步排名呈上升趋势")
}

func TestVerdict_Empty(t *testing.T) {
	assert.Equal(t, "所选品牌暂无可对比的数据。", report.Verdict(nil))
}

func TestVerdict_SingleBrand(t *testing.T) {
	verdict := report.Verdict([]compare.Report{
		{Stats: compare.Stats{Brand: "乔丹", AvgRank: 2.0, AvgSharePct: 15.0}},
	})
	assert.Contains(t, verdict, "表现最佳")
	assert.NotContains(t, verdict, "相对较弱")
}

func TestRenderHTML(t *testing.T) {
	md := "# 标题\n\n| 指标 | 数值 |\n| --- | --- |\n| 平均排名 | 第2.3名 |\n\n**粗体**\n"

	html, err := report.RenderHTML(md)
	require.NoError(t, err)
	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<strong>粗体</strong>")
}

func TestRenderHTML_Empty(t *testing.T) {
	html, err := report.RenderHTML("")
	require.NoError(t, err)
	assert.Empty(t, html)
}
