// Package export renders result tables to downloadable formats. The
// writers never mutate their input; row order is the caller's.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/zhuangxuhong/marathon-shoe-analysis/pkg/metrics"
)

// utf8BOM makes spreadsheet tools detect the encoding; without it Excel
// renders the CJK headers as mojibake.
const utf8BOM = "\xef\xbb\xbf"

// DefaultSheet names the worksheet when the caller passes none.
const DefaultSheet = "数据"

// Wire format names, also used as metric labels.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

const columnWidth = 16

// WriteCSV writes a UTF-8 CSV document with a leading byte order mark,
// then the header row, then one line per row.
func WriteCSV(w io.Writer, headers []string, rows [][]string) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		metrics.RecordExportError(FormatCSV)
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		metrics.RecordExportError(FormatCSV)
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			metrics.RecordExportError(FormatCSV)
			return fmt.Errorf("%w: %w", ErrWrite, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		metrics.RecordExportError(FormatCSV)
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	metrics.RecordExport(FormatCSV, len(rows))
	return nil
}

// WriteXLSX writes a single-sheet workbook: a bold header row, then one
// row per record with numeric cells kept numeric.
func WriteXLSX(w io.Writer, sheet string, headers []string, rows [][]any) error {
	if sheet == "" {
		sheet = DefaultSheet
	}

	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck // in-memory workbook, nothing to release

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return xlsxErr(err)
	}

	headerCells := make([]any, len(headers))
	for i, h := range headers {
		headerCells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerCells); err != nil {
		return xlsxErr(err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return xlsxErr(err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return xlsxErr(err)
		}
	}

	if len(headers) > 0 {
		bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return xlsxErr(err)
		}
		lastHeader, err := excelize.CoordinatesToCellName(len(headers), 1)
		if err != nil {
			return xlsxErr(err)
		}
		if err := f.SetCellStyle(sheet, "A1", lastHeader, bold); err != nil {
			return xlsxErr(err)
		}
		for i := range headers {
			col, err := excelize.ColumnNumberToName(i + 1)
			if err != nil {
				return xlsxErr(err)
			}
			if err := f.SetColWidth(sheet, col, col, columnWidth); err != nil {
				return xlsxErr(err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return xlsxErr(err)
	}

	metrics.RecordExport(FormatXLSX, len(rows))
	return nil
}

func xlsxErr(err error) error {
	metrics.RecordExportError(FormatXLSX)
	return fmt.Errorf("%w: %w", ErrWrite, err)
}
