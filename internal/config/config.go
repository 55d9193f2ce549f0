// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...Option) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's sentinel errors.
package config

import (
	"context"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr" validate:"required"`

	// DataPath points at the dataset JSON document.
	DataPath string `koanf:"data_path" validate:"required"`

	// FocusBrand is the brand highlighted on the overview page.
	FocusBrand string `koanf:"focus_brand" validate:"required"`

	// DomesticBrands lists the representative domestic brands used on the
	// domestic-vs-international page.
	DomesticBrands []string `koanf:"domestic_brands"`

	// InternationalBrands lists the representative international brands.
	InternationalBrands []string `koanf:"international_brands"`

	// MaxCompareBrands caps the number of brands in one comparison request.
	MaxCompareBrands int `koanf:"max_compare_brands" validate:"gte=2,lte=10"`

	// MaxSuggestions caps GET /api/brands/suggest results.
	MaxSuggestions int `koanf:"max_suggestions" validate:"gte=1"`

	// MaxExportRows caps the size of a single export download.
	MaxExportRows int `koanf:"max_export_rows" validate:"gte=1"`

	// TopRankCutoff is the rank threshold counted as a top placement.
	TopRankCutoff int `koanf:"top_rank_cutoff" validate:"gte=1"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use and currently
// unused.
func New(_ context.Context) *Config {
	c := &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		DataPath:            "data/marathon_shoes.json",
		FocusBrand:          "乔丹",
		DomesticBrands:      []string{"特步", "李宁", "安踏", "鸿星尔克", "乔丹"},
		InternationalBrands: []string{"Nike", "Adidas", "ASICS", "Saucony", "HOKA"},
		MaxCompareBrands:    5,
		MaxSuggestions:      8,
		MaxExportRows:       100_000,
		TopRankCutoff:       10,
	}
	return c
}
