package datagen

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zhuangxuhong/marathon-shoe-analysis/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0o750
	filePermission      = 0o600
)

// Run executes one complete generation: validate, generate, verify, write.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}
	log := logger.Named("datagen")

	log.Info(ctx, "starting dataset generation",
		logger.String("out", config.OutPath),
		logger.Any("seed", config.Seed),
		logger.Int("years", config.Years),
		logger.Int("events", config.Events),
		logger.Int("cohorts", config.Cohorts),
		logger.Int("brands", config.Brands),
		logger.Any("verbose", config.Verbose))

	// Step 1: Validate the configuration against the pools
	if err := validateConfig(config); err != nil {
		return err
	}

	// Step 2: Generate the document
	doc := generate(config)
	stats.Tables = config.Years * config.Events * config.Cohorts
	stats.Records = len(doc.Records)
	stats.Brands = len(doc.Brands)

	// Step 3: Verify table invariants before anything touches disk
	if err := Verify(doc); err != nil {
		return err
	}

	// Step 4: Write the document
	if err := writeDocument(config.OutPath, doc); err != nil {
		return err
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	log.Info(ctx, "dataset written",
		logger.String("out", config.OutPath),
		logger.String("runID", doc.Meta.RunID),
		logger.Int("tables", stats.Tables),
		logger.Int("records", stats.Records),
		logger.Int("brands", stats.Brands),
		logger.Duration("elapsed", stats.Duration))
	return nil
}

// validateConfig bounds every knob against the generation pools.
func validateConfig(config *Config) error {
	const (
		maxYears  = 30
		minBrands = 2
	)

	switch {
	case config.OutPath == "":
		return fmt.Errorf("%w: output path is empty", ErrConfig)
	case config.Years < 1 || config.Years > maxYears:
		return fmt.Errorf("%w: years must be between 1 and %d, got %d", ErrConfig, maxYears, config.Years)
	case config.Events < 1 || config.Events > len(eventPool):
		return fmt.Errorf("%w: events must be between 1 and %d, got %d", ErrConfig, len(eventPool), config.Events)
	case config.Cohorts < 1 || config.Cohorts > len(cohortPool):
		return fmt.Errorf("%w: cohorts must be between 1 and %d, got %d", ErrConfig, len(cohortPool), config.Cohorts)
	case config.Brands < minBrands || config.Brands > len(brandPool):
		return fmt.Errorf("%w: brands must be between %d and %d, got %d", ErrConfig, minBrands, len(brandPool), config.Brands)
	}
	return nil
}

// writeDocument writes doc as indented JSON, creating the directory if
// needed. Object keys marshal sorted, so output is reproducible.
func writeDocument(path string, doc *Document) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("%w: failed to create directory: %w", ErrWrite, err)
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to marshal document: %w", ErrWrite, err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, filePermission); err != nil {
		return fmt.Errorf("%w: failed to write file: %w", ErrWrite, err)
	}
	return nil
}
