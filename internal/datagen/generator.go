package datagen

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/google/uuid"

	"github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/model"
)

// baseYear anchors the generated year range; -years extends forward.
const baseYear = 2021

// Shape constants for the synthetic tables. A table's summed share stays
// in [minTotalShare, minTotalShare+totalShareSpan], strictly below one.
const (
	minTotalShare  = 0.82
	totalShareSpan = 0.13
	jitterBase     = 0.85
	jitterSpan     = 0.30
	maxYearlyDrift = 0.08
	minScore       = 0.01
)

type brandSpec struct {
	name string
	typ  model.BrandType
	note string
}

// Pools the generator draws from. Flag values are validated against
// their lengths, so growing a pool widens the accepted flag range.
//
//nolint:gochecknoglobals // immutable generation pools
var (
	eventPool = []string{
		"上海马拉松", "北京马拉松", "广州马拉松", "杭州马拉松",
		"武汉马拉松", "成都马拉松", "厦门马拉松", "深圳马拉松",
	}

	cohortPool = []string{"全体跑者", "破3选手", "破330选手", "大众跑者"}

	brandPool = []brandSpec{
		{"乔丹", model.Domestic, "飞影系列"},
		{"特步", model.Domestic, "160X 竞速系列"},
		{"李宁", model.Domestic, "飞电系列"},
		{"安踏", model.Domestic, "C202 系列"},
		{"鸿星尔克", model.Domestic, "芷境系列"},
		{"361°", model.Domestic, "飞燃系列"},
		{"匹克", model.Domestic, "UP30 系列"},
		{"多威", model.Domestic, "征途系列"},
		{"Nike", model.International, "Vaporfly / Alphafly"},
		{"Adidas", model.International, "Adizero Adios Pro"},
		{"ASICS", model.International, "Metaspeed 系列"},
		{"Saucony", model.International, "啡鹏系列"},
		{"HOKA", model.International, "Rocket X 系列"},
		{"New Balance", model.International, "FuelCell 系列"},
		{"Puma", model.International, "Fast-R 系列"},
		{"Mizuno", model.International, "Wave Rebellion"},
	}
)

// brandStrength drives a brand's ranks and shares. base sets where the
// brand starts, drift moves it year over year so trends emerge.
type brandStrength struct {
	spec  brandSpec
	base  float64
	drift float64
}

// generate builds the full document for cfg. All randomness flows from
// one seeded source, so equal configs produce equal documents.
func generate(cfg *Config) *Document {
	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // reproducibility wants the seeded generator

	brands := selectBrands(cfg.Brands)
	strengths := make([]brandStrength, len(brands))
	for i, b := range brands {
		strengths[i] = brandStrength{
			spec:  b,
			base:  0.4 + 0.6*rng.Float64(),
			drift: -maxYearlyDrift + 2*maxYearlyDrift*rng.Float64(),
		}
	}

	doc := &Document{
		Meta:   Meta{RunID: runID(cfg.Seed), Seed: cfg.Seed},
		Brands: make(map[string]Brand, len(brands)),
	}
	for _, b := range brands {
		doc.Brands[b.name] = Brand{Type: string(b.typ), Note: b.note}
	}

	for y := 0; y < cfg.Years; y++ {
		year := baseYear + y
		for _, event := range eventPool[:cfg.Events] {
			for _, cohort := range cohortPool[:cfg.Cohorts] {
				doc.Records = append(doc.Records, rankedTable(rng, strengths, year, event, cohort)...)
			}
		}
	}
	return doc
}

// rankedTable produces one (year, event, cohort) table. Ranks come from
// sorting per-brand scores, so they always form a 1..N permutation, and
// shares are scores normalized against a total below one.
func rankedTable(rng *rand.Rand, strengths []brandStrength, year int, event, cohort string) []Record {
	type scored struct {
		spec  brandSpec
		score float64
	}

	table := make([]scored, len(strengths))
	var total float64
	for i, s := range strengths {
		yearsOut := float64(year - baseYear)
		score := s.base * (1 + s.drift*yearsOut) * (jitterBase + jitterSpan*rng.Float64())
		if score < minScore {
			score = minScore
		}
		table[i] = scored{spec: s.spec, score: score}
		total += score
	}

	sort.SliceStable(table, func(i, j int) bool {
		return table[i].score > table[j].score
	})

	tableShare := minTotalShare + totalShareSpan*rng.Float64()
	records := make([]Record, len(table))
	for i, sb := range table {
		records[i] = Record{
			Year:   year,
			Event:  event,
			Cohort: cohort,
			Rank:   i + 1,
			Brand:  sb.spec.name,
			Share:  roundShare(sb.score / total * tableShare),
		}
	}
	return records
}

// selectBrands draws n brands from the pool, alternating origin classes
// so every generated dataset mixes domestic and international names.
func selectBrands(n int) []brandSpec {
	var domestic, international []brandSpec
	for _, b := range brandPool {
		if b.typ == model.Domestic {
			domestic = append(domestic, b)
		} else {
			international = append(international, b)
		}
	}

	out := make([]brandSpec, 0, n)
	for i := 0; len(out) < n; i++ {
		if i < len(domestic) {
			out = append(out, domestic[i])
		}
		if len(out) < n && i < len(international) {
			out = append(out, international[i])
		}
		if i >= len(domestic) && i >= len(international) {
			break
		}
	}
	return out
}

// runID derives a stable UUID from the seed, keeping the provenance tag
// inside the reproducibility guarantee.
func runID(seed int64) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("marathon-dataset-%d", seed))).String()
}

// roundShare trims shares to four decimals so documents stay readable.
func roundShare(v float64) float64 {
	return math.Round(v*10000) / 10000
}
