// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/types"
)

// BrandListDependencies defines the interface for brand universe queries.
type BrandListDependencies interface {
	Brands(ctx context.Context) ([]types.BrandInfo, error)
	SuggestBrands(ctx context.Context, query string) ([]string, error)
}

// BrandsHandler handles brand universe and suggestion requests.
type BrandsHandler struct {
	deps BrandListDependencies
}

// NewBrandsHandler creates a new brands handler.
func NewBrandsHandler(deps BrandListDependencies) *BrandsHandler {
	return &BrandsHandler{deps: deps}
}

// HandleListBrands handles GET /api/brands requests.
func (h *BrandsHandler) HandleListBrands(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	brands, err := h.deps.Brands(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, brands)
}

// HandleSuggest handles GET /api/brands/suggest?q= requests.
func (h *BrandsHandler) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	names, err := h.deps.SuggestBrands(r.Context(), q)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}
