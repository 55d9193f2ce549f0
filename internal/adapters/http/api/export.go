// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/types"
	"github.com/zhuangxuhong/marathon-shoe-analysis/internal/export"
)

// Download content types and filenames per format.
const (
	csvContentType  = "text/csv; charset=utf-8"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	csvFilename     = "marathon_records.csv"
	xlsxFilename    = "marathon_records.xlsx"
)

// ExportDependencies defines the interface for export queries.
type ExportDependencies interface {
	ExportRecords(ctx context.Context, q types.RecordQuery, format string, w io.Writer) error
}

// ExportHandler handles browse-table download requests.
type ExportHandler struct {
	deps ExportDependencies
}

// NewExportHandler creates a new export handler.
func NewExportHandler(deps ExportDependencies) *ExportHandler {
	return &ExportHandler{deps: deps}
}

// HandleExport handles GET /api/records/export?format=csv|xlsx requests,
// accepting the same filter parameters as /api/records. The document is
// rendered into memory first so failures still map onto error statuses.
func (h *ExportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q, err := parseRecordQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	format := strings.TrimSpace(r.URL.Query().Get("format"))
	if format == "" {
		format = export.FormatCSV
	}

	var buf bytes.Buffer
	if err := h.deps.ExportRecords(r.Context(), q, format, &buf); err != nil {
		writeServiceError(w, err)
		return
	}

	contentType, filename := csvContentType, csvFilename
	if format == export.FormatXLSX {
		contentType, filename = xlsxContentType, xlsxFilename
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = w.Write(buf.Bytes())
}
