// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/types"
)

// RecordsDependencies defines the interface for data browse queries.
type RecordsDependencies interface {
	Records(ctx context.Context, q types.RecordQuery) (*types.RecordsPage, error)
}

// RecordsHandler handles data browse requests.
type RecordsHandler struct {
	deps RecordsDependencies
}

// NewRecordsHandler creates a new records handler.
func NewRecordsHandler(deps RecordsDependencies) *RecordsHandler {
	return &RecordsHandler{deps: deps}
}

// HandleListRecords handles GET /api/records requests with the filter
// parameters year_from, year_to, years, events, cohorts, brands, types,
// q, max_rank and limit.
func (h *RecordsHandler) HandleListRecords(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q, err := parseRecordQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	page, err := h.deps.Records(r.Context(), q)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}
