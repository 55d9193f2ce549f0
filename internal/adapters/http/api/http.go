// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Overview(ctx context.Context) (*types.Overview, error)
	Brands(ctx context.Context) ([]types.BrandInfo, error)
	SuggestBrands(ctx context.Context, query string) ([]string, error)
	BrandProfile(ctx context.Context, name string) (*types.BrandProfile, error)
	TypeShare(ctx context.Context) (*types.TypeShare, error)
	Compare(ctx context.Context, brands []string) (*types.Comparison, error)
	Records(ctx context.Context, q types.RecordQuery) (*types.RecordsPage, error)
	ExportRecords(ctx context.Context, q types.RecordQuery, format string, w io.Writer) error
	BrandReport(ctx context.Context, name string) (*types.ReportDoc, error)
}

// Server wires HTTP routes for the analysis API.
type Server struct {
	healthHandler    *HealthHandler
	metricsHandler   *MetricsHandler
	statsHandler     *StatsHandler
	overviewHandler  *OverviewHandler
	brandsHandler    *BrandsHandler
	brandHandler     *BrandHandler
	typeShareHandler *TypeShareHandler
	compareHandler   *CompareHandler
	recordsHandler   *RecordsHandler
	exportHandler    *ExportHandler
	reportHandler    *ReportHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		metricsHandler:   NewMetricsHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		overviewHandler:  NewOverviewHandler(deps),
		brandsHandler:    NewBrandsHandler(deps),
		brandHandler:     NewBrandHandler(deps),
		typeShareHandler: NewTypeShareHandler(deps),
		compareHandler:   NewCompareHandler(deps),
		recordsHandler:   NewRecordsHandler(deps),
		exportHandler:    NewExportHandler(deps),
		reportHandler:    NewReportHandler(deps),
		dashboardHandler: newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.metricsHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)

	mux.HandleFunc("/api/overview", MetricsMiddleware(s.overviewHandler.HandleOverview, "overview"))
	mux.HandleFunc("/api/brands", MetricsMiddleware(s.brandsHandler.HandleListBrands, "brands"))
	mux.HandleFunc("/api/brands/suggest", MetricsMiddleware(s.brandsHandler.HandleSuggest, "suggest"))
	mux.HandleFunc("/api/brand/", MetricsMiddleware(s.brandHandler.HandleGetBrand, "brand"))
	mux.HandleFunc("/api/type-share", MetricsMiddleware(s.typeShareHandler.HandleTypeShare, "type_share"))
	mux.HandleFunc("/api/compare", MetricsMiddleware(s.compareHandler.HandleCompare, "compare"))
	mux.HandleFunc("/api/records", MetricsMiddleware(s.recordsHandler.HandleListRecords, "records"))
	mux.HandleFunc("/api/records/export", MetricsMiddleware(s.exportHandler.HandleExport, "export"))
	mux.HandleFunc("/api/report/brand/", MetricsMiddleware(s.reportHandler.HandleGetReport, "report"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError maps a service failure onto its HTTP shape.
func writeServiceError(w http.ResponseWriter, err error) {
	status, code := serviceStatus(err)
	writeError(w, status, code, err)
}
