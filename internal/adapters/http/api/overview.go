// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/types"
)

// OverviewDependencies defines the interface for overview queries.
type OverviewDependencies interface {
	Overview(ctx context.Context) (*types.Overview, error)
}

// OverviewHandler handles landing-page overview requests.
type OverviewHandler struct {
	deps OverviewDependencies
}

// NewOverviewHandler creates a new overview handler.
func NewOverviewHandler(deps OverviewDependencies) *OverviewHandler {
	return &OverviewHandler{deps: deps}
}

// HandleOverview handles GET /api/overview requests.
func (h *OverviewHandler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	ov, err := h.deps.Overview(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ov)
}
