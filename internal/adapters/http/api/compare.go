// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/types"
)

// CompareDependencies defines the interface for comparison queries.
type CompareDependencies interface {
	Compare(ctx context.Context, brands []string) (*types.Comparison, error)
}

// CompareHandler handles brand comparison requests.
type CompareHandler struct {
	deps CompareDependencies
}

// NewCompareHandler creates a new compare handler.
func NewCompareHandler(deps CompareDependencies) *CompareHandler {
	return &CompareHandler{deps: deps}
}

// HandleCompare handles GET /api/compare?brands=a,b,c requests. The brands
// parameter may repeat or hold a comma-separated list; both forms combine.
func (h *CompareHandler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	var brands []string
	for _, v := range r.URL.Query()["brands"] {
		for _, b := range strings.Split(v, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brands = append(brands, b)
			}
		}
	}
	if len(brands) == 0 {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	cmp, err := h.deps.Compare(r.Context(), brands)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cmp)
}
