package compare_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	compare "github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/compare"
	model "github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/model"
	trend "github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/trend"
)

func sampleRows() []model.Observation {
	return []model.Observation{
		{Year: 2021, Event: "上海马拉松", Cohort: "破3选手", Rank: 2, Brand: "乔丹", Share: 0.18, Type: model.Domestic},
		{Year: 2021, Event: "北京马拉松", Cohort: "破3选手", Rank: 4, Brand: "乔丹", Share: 0.12, Type: model.Domestic},
		{Year: 2023, Event: "上海马拉松", Cohort: "破3选手", Rank: 1, Brand: "乔丹", Share: 0.24, Type: model.Domestic},
		{Year: 2021, Event: "上海马拉松", Cohort: "破3选手", Rank: 1, Brand: "Nike", Share: 0.40, Type: model.International},
		{Year: 2023, Event: "上海马拉松", Cohort: "破3选手", Rank: 2, Brand: "Nike", Share: 0.32, Type: model.International},
		{Year: 2021, Event: "无锡马拉松", Cohort: "破3选手", Rank: 9, Brand: "特步", Share: 0.05, Type: model.Domestic},
	}
}

func TestDescribe(t *testing.T) {
	Convey("Given brand aggregation", t, func() {
		rows := sampleRows()

		Convey("When describing a brand with rows", func() {
			st, ok := compare.Describe(rows, "乔丹")

			Convey("Then the aggregates should be exact", func() {
				So(ok, ShouldBeTrue)
				So(st.Brand, ShouldEqual, "乔丹")
				So(st.Rows, ShouldEqual, 3)
				So(st.AvgRank, ShouldAlmostEqual, (2.0+4.0+1.0)/3.0, 1e-9)
				So(st.BestRank, ShouldEqual, 1)
				So(st.WorstRank, ShouldEqual, 4)
				So(st.AvgSharePct, ShouldAlmostEqual, 18.0, 1e-9)
				So(st.Events, ShouldEqual, 2)
			})
		})

		Convey("When describing a brand with no rows", func() {
			_, ok := compare.Describe(rows, "Puma")

			Convey("Then ok should be false instead of an error", func() {
				So(ok, ShouldBeFalse)
			})
		})
	})
}

func TestFactors(t *testing.T) {
	Convey("Given the five factor formulas", t, func() {
		Convey("When aggregates are in normal ranges", func() {
			st := compare.Stats{
				AvgRank:     4,
				BestRank:    2,
				AvgSharePct: 12,
				StdDevRank:  1.5,
				Events:      3,
			}
			s := compare.Factors(st, 6)

			Convey("Then each factor should follow its formula", func() {
				So(s.Rank, ShouldAlmostEqual, 80, 1e-9)      // 100 - 4*5
				So(s.Share, ShouldAlmostEqual, 60, 1e-9)     // 12*5
				So(s.BestRank, ShouldAlmostEqual, 84, 1e-9)  // 100 - 2*8
				So(s.Stability, ShouldAlmostEqual, 92.5, 1e-9) // 100 - 1.5*5
				So(s.Coverage, ShouldAlmostEqual, 50, 1e-9)  // 3/6*100
			})
		})

		Convey("When aggregates would push factors outside the range", func() {
			st := compare.Stats{
				AvgRank:     40,  // rank factor would be -100
				BestRank:    30,  // best factor would be -140
				AvgSharePct: 90,  // share factor would be 450
				StdDevRank:  50,  // stability would be -150
				Events:      12,
			}
			s := compare.Factors(st, 6) // coverage would be 200

			Convey("Then every factor is clamped into [0,100]", func() {
				for _, v := range []float64{s.Rank, s.Share, s.BestRank, s.Stability, s.Coverage} {
					So(v, ShouldBeBetweenOrEqual, 0, 100)
				}
				So(s.Rank, ShouldEqual, 0)
				So(s.Share, ShouldEqual, 100)
				So(s.BestRank, ShouldEqual, 0)
				So(s.Stability, ShouldEqual, 0)
				So(s.Coverage, ShouldEqual, 100)
			})
		})

		Convey("When a brand has a single observation", func() {
			rows := []model.Observation{
				{Year: 2024, Event: "上海马拉松", Cohort: "破3选手", Rank: 3, Brand: "安踏", Share: 0.10, Type: model.Domestic},
			}
			st, ok := compare.Describe(rows, "安踏")
			s := compare.Factors(st, 1)

			Convey("Then the stability factor is a full 100, not NaN", func() {
				So(ok, ShouldBeTrue)
				So(st.StdDevRank, ShouldEqual, 0)
				So(s.Stability, ShouldEqual, 100)
			})
		})

		Convey("When the dataset has no events at all", func() {
			s := compare.Factors(compare.Stats{Events: 2}, 0)

			Convey("Then coverage degrades to zero instead of dividing by zero", func() {
				So(s.Coverage, ShouldEqual, 0)
			})
		})
	})
}

func TestBrands(t *testing.T) {
	Convey("Given a comparison across brands", t, func() {
		rows := sampleRows()

		Convey("When comparing brands including one with no rows", func() {
			reports := compare.Brands(rows, []string{"乔丹", "Puma", "Nike", "特步"}, 3)

			Convey("Then the absent brand is skipped", func() {
				So(len(reports), ShouldEqual, 3)
				for _, r := range reports {
					So(r.Brand, ShouldNotEqual, "Puma")
				}
			})

			Convey("Then reports are ordered by average rank ascending", func() {
				So(reports[0].Brand, ShouldEqual, "Nike") // avg 1.5
				So(reports[1].Brand, ShouldEqual, "乔丹")  // avg 2.33
				So(reports[2].Brand, ShouldEqual, "特步")  // avg 9
			})

			Convey("Then factor scores stay within bounds for every brand", func() {
				for _, r := range reports {
					for _, v := range []float64{r.Scores.Rank, r.Scores.Share, r.Scores.BestRank, r.Scores.Stability, r.Scores.Coverage} {
						So(v, ShouldBeBetweenOrEqual, 0, 100)
					}
				}
			})

			Convey("Then trend directions come from the yearly mean series", func() {
				// 乔丹 mean rank 3 (2021) -> 1 (2023): falling numbers.
				So(reports[1].RankTrend, ShouldEqual, trend.Down)
				// 乔丹 mean share 15% -> 24%: rising.
				So(reports[1].ShareTrend, ShouldEqual, trend.Up)
				// 特步 appears in a single year: no movement to report.
				So(reports[2].RankTrend, ShouldEqual, trend.Flat)
				So(reports[2].ShareTrend, ShouldEqual, trend.Flat)
			})

			Convey("Then the yearly series are exposed for charting", func() {
				So(len(reports[1].RankSeries), ShouldEqual, 2)
				So(reports[1].RankSeries[0].Year, ShouldEqual, 2021)
				So(reports[1].RankSeries[0].Value, ShouldAlmostEqual, 3.0, 1e-9)
				So(reports[1].SharePctSeries[1].Value, ShouldAlmostEqual, 24.0, 1e-9)
			})
		})

		Convey("When no requested brand has rows", func() {
			reports := compare.Brands(rows, []string{"Puma", "Brooks"}, 3)

			Convey("Then the report is empty, not an error", func() {
				So(reports, ShouldBeEmpty)
			})
		})

		Convey("When a share halves from 0.50 to 0.30 across the window", func() {
			decline := []model.Observation{
				{Year: 2021, Event: "上海马拉松", Cohort: "破3选手", Rank: 1, Brand: "X", Share: 0.50, Type: model.Other},
				{Year: 2025, Event: "上海马拉松", Cohort: "破3选手", Rank: 3, Brand: "X", Share: 0.30, Type: model.Other},
			}
			reports := compare.Brands(decline, []string{"X"}, 1)

			Convey("Then the share trend reads down with a -20 point delta", func() {
				So(len(reports), ShouldEqual, 1)
				So(reports[0].ShareTrend, ShouldEqual, trend.Down)
				s, err := trend.Summarize(reports[0].SharePctSeries, false)
				So(err, ShouldBeNil)
				So(s.Delta, ShouldAlmostEqual, -20, 1e-9)
				So(s.PctChange, ShouldAlmostEqual, -40, 1e-9)
			})
		})
	})
}
