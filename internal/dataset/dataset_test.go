package dataset

import (
	"context"
	"errors"
	"reflect"
	"testing"

	model "github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/model"
	"github.com/zhuangxuhong/marathon-shoe-analysis/pkg/logger"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func TestLoad_Valid(t *testing.T) {
	ctx := context.Background()
	table, err := Load(ctx, "testdata/valid.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := table.Len(); got != 11 {
		t.Errorf("expected 11 records, got %d", got)
	}
	if got := table.Years(); !reflect.DeepEqual(got, []int{2023, 2024}) {
		t.Errorf("unexpected years: %v", got)
	}
	if got := table.Events(); !reflect.DeepEqual(got, []string{"上海马拉松", "北京马拉松"}) {
		t.Errorf("unexpected events: %v", got)
	}
	if got := table.Cohorts(); !reflect.DeepEqual(got, []string{"全体跑者", "破三选手"}) {
		t.Errorf("unexpected cohorts: %v", got)
	}
	wantNames := []string{"Nike", "Saucony", "乔丹", "安踏", "特步", "鸿星尔克"}
	if got := table.BrandNames(); !reflect.DeepEqual(got, wantNames) {
		t.Errorf("unexpected brand names: %v", got)
	}

	// Document order survives the load.
	first := table.Records()[0]
	if first.Year != 2023 || first.Brand != "Nike" || first.Rank != 1 {
		t.Errorf("unexpected first record: %+v", first)
	}
	if first.Share != 0.30 {
		t.Errorf("expected share 0.30, got %f", first.Share)
	}
}

func TestLoad_BrandTypeJoin(t *testing.T) {
	table, err := Load(context.Background(), "testdata/valid.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 安踏 carries a nonstandard type string in metadata and 鸿星尔克 has
	// no metadata entry at all; both must land in Other.
	cases := []struct {
		brand string
		want  model.BrandType
	}{
		{"Nike", model.International},
		{"乔丹", model.Domestic},
		{"特步", model.Domestic},
		{"安踏", model.Other},
		{"鸿星尔克", model.Other},
		{"Saucony", model.International},
	}
	joined := make(map[string]model.BrandType)
	for _, o := range table.Records() {
		joined[o.Brand] = o.Type
	}
	for _, tc := range cases {
		if got := joined[tc.brand]; got != tc.want {
			t.Errorf("brand %s: expected type %s, got %s", tc.brand, tc.want, got)
		}
	}

	if got := table.TypeOf("鸿星尔克"); got != model.Other {
		t.Errorf("expected other for unlisted brand, got %s", got)
	}

	// Metadata-only brands are visible through Meta but never listed
	// among brand names, since they have no observations.
	if _, ok := table.Meta("HOKA"); !ok {
		t.Error("expected HOKA metadata to be present")
	}
	for _, name := range table.BrandNames() {
		if name == "HOKA" {
			t.Error("metadata-only brand should not appear in brand names")
		}
	}
}

func TestLoad_FallbackTypeOption(t *testing.T) {
	table, err := Load(context.Background(), "testdata/valid.json",
		WithFallbackType(model.International))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, o := range table.Records() {
		if o.Brand == "鸿星尔克" && o.Type != model.International {
			t.Errorf("expected fallback type on unlisted brand, got %s", o.Type)
		}
	}
	if got := table.TypeOf("鸿星尔克"); got != model.International {
		t.Errorf("expected fallback type from TypeOf, got %s", got)
	}
	// Listed brands keep their own type.
	if got := table.TypeOf("乔丹"); got != model.Domestic {
		t.Errorf("expected domestic, got %s", got)
	}
}

func TestLoad_Errors(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name string
		path string
		want error
	}{
		{"missing file", "testdata/does_not_exist.json", ErrNotFound},
		{"malformed json", "testdata/malformed.json", ErrDecode},
		{"missing records key", "testdata/missing_records.json", ErrSchema},
		{"invalid record fields", "testdata/bad_record.json", ErrSchema},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(ctx, tc.path)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, ErrLoad) {
				t.Errorf("expected ErrLoad in chain, got %v", err)
			}
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v in chain, got %v", tc.want, err)
			}
		})
	}
}

func TestLoad_EmptyRecords(t *testing.T) {
	table, err := Load(context.Background(), "testdata/empty_records.json")
	if err != nil {
		t.Fatalf("expected an empty dataset to load, got %v", err)
	}
	if table.Len() != 0 {
		t.Errorf("expected 0 records, got %d", table.Len())
	}
	if got := table.Years(); len(got) != 0 {
		t.Errorf("expected no years, got %v", got)
	}
	if got := table.SuggestBrands("乔", 5); len(got) != 0 {
		t.Errorf("expected no suggestions, got %v", got)
	}
}

func TestDefault_Memoized(t *testing.T) {
	t.Setenv("MARATHON_DATA_PATH", "testdata/valid.json")
	ctx := context.Background()

	a, err := Default(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Default(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Error("expected repeated Default calls to return the same table")
	}
}

func TestTable_BrandsReturnsCopy(t *testing.T) {
	table, err := Load(context.Background(), "testdata/valid.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := table.Brands()
	delete(m, "乔丹")
	if _, ok := table.Meta("乔丹"); !ok {
		t.Error("mutating the Brands copy must not affect the table")
	}
}

func TestSuggestBrands(t *testing.T) {
	table, err := Load(context.Background(), "testdata/valid.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		name  string
		query string
		limit int
		want  []string
	}{
		{"case-folded substring", "nik", 8, []string{"Nike"}},
		{"cjk substring", "乔", 8, []string{"乔丹"}},
		{"typo within edit distance", "Nkie", 8, []string{"Nike"}},
		{"short cjk query stays exact", "特步", 8, []string{"特步"}},
		{"shared letter matches several", "n", 8, []string{"Nike", "Saucony"}},
		{"limit caps the result", "n", 1, []string{"Nike"}},
		{"no match", "hoka", 8, nil},
		{"empty query", "", 8, nil},
		{"whitespace query", "   ", 8, nil},
		{"zero limit", "nik", 0, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := table.SuggestBrands(tc.query, tc.limit)
			if len(got) == 0 && len(tc.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("query %q: expected %v, got %v", tc.query, tc.want, got)
			}
		})
	}
}
