package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/zhuangxuhong/marathon-shoe-analysis/pkg/logger"
	"github.com/zhuangxuhong/marathon-shoe-analysis/pkg/metrics"
)

// DefaultPath is where Default looks for the dataset when the
// MARATHON_DATA_PATH environment variable is unset.
const DefaultPath = "data/marathon_shoes.json"

var validate = validator.New() //nolint:gochecknoglobals // shared validator instance

//nolint:gochecknoglobals // process-wide memoized dataset, loaded at most once
var (
	defaultOnce  sync.Once
	defaultTable *Table
	defaultErr   error
)

// rawRecord mirrors one element of the document's "records" array.
type rawRecord struct {
	Year   int     `json:"year"   validate:"gte=1900,lte=2100"`
	Event  string  `json:"event"  validate:"required"`
	Cohort string  `json:"cohort" validate:"required"`
	Rank   int     `json:"rank"   validate:"gte=1"`
	Brand  string  `json:"brand"  validate:"required"`
	Share  float64 `json:"share"  validate:"gte=0,lte=1"`
}

// rawBrand mirrors one entry of the document's "brands" map.
type rawBrand struct {
	Type string `json:"type"`
	Note string `json:"note"`
}

// rawDocument mirrors the dataset file as a whole. The required tags
// distinguish a missing key (nil) from an explicitly empty collection.
type rawDocument struct {
	Records []rawRecord         `json:"records" validate:"required,dive"`
	Brands  map[string]rawBrand `json:"brands"  validate:"required"`
}

// Load reads, validates, and joins the dataset document at path.
// Every failure wraps ErrLoad plus a more specific sentinel; there are
// no partial loads. The returned Table is read-only.
func Load(ctx context.Context, path string, opts ...Option) (*Table, error) {
	start := time.Now()

	cfg := newLoadConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		metrics.RecordDatasetLoadError()
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w: %s", ErrLoad, ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	var doc rawDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		metrics.RecordDatasetLoadError()
		return nil, fmt.Errorf("%w: %w: %w", ErrLoad, ErrDecode, err)
	}

	if err := validate.Struct(&doc); err != nil {
		metrics.RecordDatasetLoadError()
		return nil, fmt.Errorf("%w: %w: %w", ErrLoad, ErrSchema, err)
	}

	table := build(doc, *cfg)

	logger.Named("dataset").Info(ctx, "dataset loaded",
		logger.String("path", path),
		logger.Int("records", table.Len()),
		logger.Int("brands", len(table.names)),
		logger.Int("events", len(table.events)),
		logger.Int("years", len(table.years)),
		logger.Duration("elapsed", time.Since(start)),
	)

	metrics.RecordDatasetLoad(float64(time.Since(start).Milliseconds()))
	metrics.SetDatasetInfo(table.Len(), len(table.names), len(table.events), len(table.years))

	return table, nil
}

// Default loads the dataset at most once per process and returns the
// same Table (or the same error) on every call. The path comes from
// MARATHON_DATA_PATH, falling back to DefaultPath.
func Default(ctx context.Context) (*Table, error) {
	defaultOnce.Do(func() {
		path := os.Getenv("MARATHON_DATA_PATH")
		if path == "" {
			path = DefaultPath
		}
		defaultTable, defaultErr = Load(ctx, path)
	})
	return defaultTable, defaultErr
}
