// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/types"
)

// ReportDependencies defines the interface for insight report queries.
type ReportDependencies interface {
	BrandReport(ctx context.Context, name string) (*types.ReportDoc, error)
}

// ReportHandler handles brand insight report requests.
type ReportHandler struct {
	deps ReportDependencies
}

// NewReportHandler creates a new report handler.
func NewReportHandler(deps ReportDependencies) *ReportHandler {
	return &ReportHandler{deps: deps}
}

// HandleGetReport handles GET /api/report/brand/{name} requests.
func (h *ReportHandler) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /api/report/brand/
	name := strings.TrimPrefix(r.URL.Path, "/api/report/brand/")
	if name == "" || strings.Contains(name, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	doc, err := h.deps.BrandReport(r.Context(), name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}
