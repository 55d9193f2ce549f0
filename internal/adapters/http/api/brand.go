// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/types"
)

// BrandDependencies defines the interface for brand detail queries.
type BrandDependencies interface {
	BrandProfile(ctx context.Context, name string) (*types.BrandProfile, error)
}

// BrandHandler handles brand detail requests.
type BrandHandler struct {
	deps BrandDependencies
}

// NewBrandHandler creates a new brand handler.
func NewBrandHandler(deps BrandDependencies) *BrandHandler {
	return &BrandHandler{deps: deps}
}

// HandleGetBrand handles GET /api/brand/{name} requests.
func (h *BrandHandler) HandleGetBrand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /api/brand/
	name := strings.TrimPrefix(r.URL.Path, "/api/brand/")
	if name == "" || strings.Contains(name, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	profile, err := h.deps.BrandProfile(r.Context(), name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
