package report

import (
	"fmt"
	"math"
	"strings"

	compare "github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/compare"
	trend "github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/trend"
)

// BrandReport renders the full markdown report for one brand: a headline
// stats table, then one section per cohort finding.
func BrandReport(brand string, st compare.Stats, findings []CohortFinding) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s 品牌分析报告\n\n", brand)

	b.WriteString("## 总体表现\n\n")
	b.WriteString("| 指标 | 数值 |\n")
	b.WriteString("| --- | --- |\n")
	fmt.Fprintf(&b, "| 平均排名 | 第%.1f名 |\n", st.AvgRank)
	fmt.Fprintf(&b, "| 最佳排名 | 第%d名 |\n", st.BestRank)
	fmt.Fprintf(&b, "| 最差排名 | 第%d名 |\n", st.WorstRank)
	fmt.Fprintf(&b, "| 平均份额 | %.1f%% |\n", st.AvgSharePct)
	fmt.Fprintf(&b, "| 覆盖赛事 | %d场 |\n", st.Events)
	fmt.Fprintf(&b, "| 成绩记录 | %d条 |\n", st.Rows)
	b.WriteString("\n## 各人群表现\n\n")

	if len(findings) == 0 {
		b.WriteString("数据不足，无法生成人群分析。\n")
		return b.String()
	}

	for _, f := range findings {
		fmt.Fprintf(&b, "### %s\n\n", f.Cohort)
		if f.RankChange == 0 {
			fmt.Fprintf(&b, "- 排名：第%d名(%d)→第%d名(%d)，持平\n",
				f.FirstRank, f.FirstYear, f.LastRank, f.LastYear)
		} else {
			fmt.Fprintf(&b, "- 排名：第%d名(%d)→第%d名(%d)，%s%d名\n",
				f.FirstRank, f.FirstYear, f.LastRank, f.LastYear,
				rankWord(f.RankChange), intAbs(f.RankChange))
		}
		if f.ShareChange == 0 {
			fmt.Fprintf(&b, "- 份额：%.1f%%→%.1f%%，持平\n", f.FirstShare, f.LastShare)
		} else {
			fmt.Fprintf(&b, "- 份额：%.1f%%→%.1f%%，%s%.1f%%\n",
				f.FirstShare, f.LastShare, shareWord(f.ShareChange), math.Abs(f.ShareChange))
		}
		fmt.Fprintf(&b, "- 最佳：%s %d年 第%d名\n", f.BestEvent, f.BestYear, f.BestRank)
		fmt.Fprintf(&b, "- 最差：%s %d年 第%d名\n\n", f.WorstEvent, f.WorstYear, f.WorstRank)
	}
	return b.String()
}

// Verdict writes the comparison conclusion: who leads, who trails, and
// which brands are climbing.
func Verdict(reports []compare.Report) string {
	if len(reports) == 0 {
		return "所选品牌暂无可对比的数据。"
	}

	var b strings.Builder
	best := reports[0]
	fmt.Fprintf(&b, "**%s**表现最佳，平均第%.1f名，份额%.1f%%。",
		best.Brand, best.AvgRank, best.AvgSharePct)
	if len(reports) > 1 {
		worst := reports[len(reports)-1]
		fmt.Fprintf(&b, "**%s**相对较弱，平均第%.1f名。", worst.Brand, worst.AvgRank)
	}

	// A falling rank number is a climb up the table.
	var climbing []string
	for _, r := range reports {
		if r.RankTrend == trend.Down {
			climbing = append(climbing, r.Brand)
		}
	}
	if len(climbing) > 0 {
		fmt.Fprintf(&b, "%s排名呈上升趋势。", strings.Join(climbing, "、"))
	}
	return b.String()
}

func rankWord(change int) string {
	if change > 0 {
		return "上升"
	}
	return "下降"
}

func shareWord(change float64) string {
	if change > 0 {
		return "增长"
	}
	return "下降"
}

func intAbs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
