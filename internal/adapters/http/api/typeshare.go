// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/types"
)

// TypeShareDependencies defines the interface for type-share queries.
type TypeShareDependencies interface {
	TypeShare(ctx context.Context) (*types.TypeShare, error)
}

// TypeShareHandler handles domestic-versus-international requests.
type TypeShareHandler struct {
	deps TypeShareDependencies
}

// NewTypeShareHandler creates a new type-share handler.
func NewTypeShareHandler(deps TypeShareDependencies) *TypeShareHandler {
	return &TypeShareHandler{deps: deps}
}

// HandleTypeShare handles GET /api/type-share requests.
func (h *TypeShareHandler) HandleTypeShare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	ts, err := h.deps.TypeShare(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ts)
}
