package api

import (
	"errors"
	"net/http"

	service "github.com/zhuangxuhong/marathon-shoe-analysis/internal/app"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
)

// serviceStatus translates service sentinels into a status code and a
// machine-readable error code. Anything unrecognized is a 500.
func serviceStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable, "not_ready"
	case errors.Is(err, service.ErrUnknownBrand):
		return http.StatusNotFound, "unknown_brand"
	case errors.Is(err, service.ErrBadCompare):
		return http.StatusBadRequest, "bad_compare"
	case errors.Is(err, service.ErrBadFormat):
		return http.StatusBadRequest, "bad_format"
	case errors.Is(err, service.ErrExportTooLarge):
		return http.StatusBadRequest, "too_large"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
