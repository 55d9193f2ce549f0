package service

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/compare"
	"github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/filter"
	"github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/model"
	"github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/types"
	"github.com/zhuangxuhong/marathon-shoe-analysis/internal/export"
	"github.com/zhuangxuhong/marathon-shoe-analysis/internal/report"
	"github.com/zhuangxuhong/marathon-shoe-analysis/pkg/metrics"
)

// Brands returns the brand universe with types and notes.
func (s *Service) Brands(ctx context.Context) ([]types.BrandInfo, error) {
	defer observe(kindBrands)()

	table, err := s.data()
	if err != nil {
		metrics.RecordQueryError(kindBrands, "not_started")
		return nil, err
	}

	names := table.BrandNames()
	out := make([]types.BrandInfo, 0, len(names))
	for _, name := range names {
		info := types.BrandInfo{Name: name, Type: string(table.TypeOf(name))}
		if meta, ok := table.Meta(name); ok {
			info.Note = meta.Note
		}
		out = append(out, info)
	}

	metrics.RecordQueryRows(kindBrands, len(out))
	return out, nil
}

// SuggestBrands proposes brand names for a partial or misspelled query.
func (s *Service) SuggestBrands(ctx context.Context, query string) ([]string, error) {
	table, err := s.data()
	if err != nil {
		return nil, err
	}
	return table.SuggestBrands(query, s.maxSuggestions), nil
}

// Records answers the data-browse query: filtered rows ordered newest
// year first, then event, cohort and rank ascending.
func (s *Service) Records(ctx context.Context, q types.RecordQuery) (*types.RecordsPage, error) {
	defer observe(kindRecords)()

	table, err := s.data()
	if err != nil {
		metrics.RecordQueryError(kindRecords, "not_started")
		return nil, err
	}

	rows := browseRows(table.Records(), q)
	page := &types.RecordsPage{Total: len(rows)}
	if q.Limit > 0 && len(rows) > q.Limit {
		rows = rows[:q.Limit]
	}

	page.Count = len(rows)
	page.Records = make([]types.Row, len(rows))
	for i, o := range rows {
		page.Records[i] = types.FromObservation(o)
	}

	metrics.RecordQueryRows(kindRecords, page.Count)
	return page, nil
}

// ExportRecords streams the browse table to w in the requested format.
func (s *Service) ExportRecords(ctx context.Context, q types.RecordQuery, format string, w io.Writer) error {
	defer observe(kindExport)()

	table, err := s.data()
	if err != nil {
		metrics.RecordQueryError(kindExport, "not_started")
		return err
	}

	rows := browseRows(table.Records(), q)
	if q.Limit > 0 && len(rows) > q.Limit {
		rows = rows[:q.Limit]
	}
	if len(rows) > s.maxExportRows {
		metrics.RecordQueryError(kindExport, "too_large")
		return fmt.Errorf("%w: %d rows exceed the configured cap of %d",
			ErrExportTooLarge, len(rows), s.maxExportRows)
	}

	switch format {
	case export.FormatCSV:
		cells := make([][]string, len(rows))
		for i, o := range rows {
			cells[i] = types.FromObservation(o).Cells()
		}
		if err := export.WriteCSV(w, types.Headers(), cells); err != nil {
			return err
		}
	case export.FormatXLSX:
		values := make([][]any, len(rows))
		for i, o := range rows {
			values[i] = types.FromObservation(o).Values()
		}
		if err := export.WriteXLSX(w, export.DefaultSheet, types.Headers(), values); err != nil {
			return err
		}
	default:
		metrics.RecordQueryError(kindExport, "bad_format")
		return fmt.Errorf("%w: %q", ErrBadFormat, format)
	}

	metrics.RecordQueryRows(kindExport, len(rows))
	return nil
}

// BrandReport renders the markdown insight report for one brand along
// with its HTML form.
func (s *Service) BrandReport(ctx context.Context, name string) (*types.ReportDoc, error) {
	defer observe(kindReport)()

	table, err := s.data()
	if err != nil {
		metrics.RecordQueryError(kindReport, "not_started")
		return nil, err
	}

	rows := table.Records()
	st, ok := compare.Describe(rows, name)
	if !ok {
		metrics.RecordQueryError(kindReport, "unknown_brand")
		return nil, fmt.Errorf("%w: %s", ErrUnknownBrand, name)
	}

	brandRows := filter.Apply(rows, filter.Filter{Brands: []string{name}})
	md := report.BrandReport(name, st, report.BrandFindings(brandRows))
	html, err := report.RenderHTML(md)
	if err != nil {
		metrics.RecordQueryError(kindReport, "render")
		return nil, err
	}

	metrics.RecordQueryRows(kindReport, len(brandRows))
	return &types.ReportDoc{Brand: name, Markdown: md, HTML: html}, nil
}

// browseRows filters and orders observations for the browse table.
func browseRows(rows []model.Observation, q types.RecordQuery) []model.Observation {
	out := filter.Apply(rows, toFilter(q))
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		if a.Event != b.Event {
			return a.Event < b.Event
		}
		if a.Cohort != b.Cohort {
			return a.Cohort < b.Cohort
		}
		return a.Rank < b.Rank
	})
	return out
}

// toFilter maps the query onto the filter engine's terms, preserving
// the nil-versus-empty distinction of every dimension.
func toFilter(q types.RecordQuery) filter.Filter {
	f := filter.Filter{
		YearFrom:   q.YearFrom,
		YearTo:     q.YearTo,
		Years:      q.Years,
		Events:     q.Events,
		Cohorts:    q.Cohorts,
		Brands:     q.Brands,
		BrandQuery: q.Query,
		MaxRank:    q.MaxRank,
	}
	if q.Types != nil {
		f.Types = make([]model.BrandType, len(q.Types))
		for i, t := range q.Types {
			f.Types[i] = model.ParseBrandType(t)
		}
	}
	return f
}
