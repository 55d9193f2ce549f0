// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/zhuangxuhong/marathon-shoe-analysis/internal/dataset"
	"github.com/zhuangxuhong/marathon-shoe-analysis/pkg/logger"
	"github.com/zhuangxuhong/marathon-shoe-analysis/pkg/metrics"
)

// Service answers the analysis queries over one loaded dataset. The
// dataset is immutable after Start, so queries need no locking beyond
// the lifecycle flag.
type Service struct {
	mu sync.RWMutex

	// Core state
	table *dataset.Table

	// Configuration
	dataPath            string
	focusBrand          string
	domesticBrands      []string
	internationalBrands []string
	maxCompareBrands    int
	maxSuggestions      int
	maxExportRows       int
	topRankCutoff       int

	// State
	started   bool
	startedAt time.Time

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDataPath sets the dataset document path.
func WithDataPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.dataPath = path
		}
	}
}

// WithFocusBrand sets the brand highlighted on the overview.
func WithFocusBrand(brand string) Option {
	return func(s *Service) {
		if brand != "" {
			s.focusBrand = brand
		}
	}
}

// WithDomesticBrands sets the representative domestic brand list.
func WithDomesticBrands(brands []string) Option {
	return func(s *Service) {
		if len(brands) > 0 {
			s.domesticBrands = brands
		}
	}
}

// WithInternationalBrands sets the representative international brand list.
func WithInternationalBrands(brands []string) Option {
	return func(s *Service) {
		if len(brands) > 0 {
			s.internationalBrands = brands
		}
	}
}

// WithMaxCompareBrands caps the number of brands in one comparison.
func WithMaxCompareBrands(limit int) Option {
	return func(s *Service) {
		if limit >= minCompareBrands {
			s.maxCompareBrands = limit
		}
	}
}

// WithMaxSuggestions caps the suggestion result size.
func WithMaxSuggestions(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxSuggestions = limit
		}
	}
}

// WithMaxExportRows caps the size of a single export download.
func WithMaxExportRows(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxExportRows = limit
		}
	}
}

// WithTopRankCutoff sets the rank threshold counted as a top placement.
func WithTopRankCutoff(cutoff int) Option {
	return func(s *Service) {
		if cutoff > 0 {
			s.topRankCutoff = cutoff
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dataPath:            dataset.DefaultPath,
		focusBrand:          "乔丹",
		domesticBrands:      []string{"特步", "李宁", "安踏", "鸿星尔克", "乔丹"},
		internationalBrands: []string{"Nike", "Adidas", "ASICS", "Saucony", "HOKA"},
		maxCompareBrands:    5,
		maxSuggestions:      8,
		maxExportRows:       100_000,
		topRankCutoff:       10,
		logger:              nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the dataset and marks the service ready. It fails fast
// when the document is missing or malformed.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting analysis service...")

	table, err := dataset.Load(ctx, s.dataPath)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	s.table = table

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "analysis service started",
		logger.String("dataPath", s.dataPath),
		logger.String("focusBrand", s.focusBrand),
		logger.Int("records", table.Len()),
		logger.Int("brands", len(table.BrandNames())),
		logger.Int("years", len(table.Years())),
	)

	return nil
}

// Stop marks the service stopped. The dataset is read-only, so there
// is nothing to flush.
func (s *Service) Stop(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(ctx, "analysis service stopped")
}

// data returns the loaded table or ErrNotStarted.
func (s *Service) data() (*dataset.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started || s.table == nil {
		return nil, ErrNotStarted
	}
	return s.table, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":    s.started,
		"focusBrand": s.focusBrand,
	}

	if s.started {
		stats["records"] = s.table.Len()
		stats["brands"] = len(s.table.BrandNames())
		stats["events"] = len(s.table.Events())
		stats["years"] = len(s.table.Years())
		stats["uptimeSeconds"] = time.Since(s.startedAt).Seconds()

		var mem runtime.MemStats
		runtime.ReadMemStats(&mem)
		stats["goroutines"] = runtime.NumGoroutine()
		stats["heapBytes"] = mem.HeapAlloc

		// Update metrics
		metrics.UpdateSystemMemoryUsage(mem.HeapAlloc)
		metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
	}

	return stats
}

// observe ticks the query counter for kind and returns the deferred
// latency observation.
func observe(kind string) func() {
	metrics.RecordQuery(kind)
	start := time.Now()
	return func() {
		metrics.RecordQueryLatency(kind, float64(time.Since(start).Microseconds())/1000.0)
	}
}
