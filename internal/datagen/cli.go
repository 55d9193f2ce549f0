package datagen

import (
	"fmt"
	"os"

	"github.com/zhuangxuhong/marathon-shoe-analysis/pkg/logger"
)

// SetupLogging initializes the process logger, raising the level to
// debug when verbose is set.
func SetupLogging(verbose bool) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		if err := logger.SetLevelString("debug"); err != nil {
			return fmt.Errorf("failed to set log level: %w", err)
		}
	}
	return nil
}

// ShowHelp prints usage information for the dataset generator.
func ShowHelp() {
	os.Stdout.WriteString(`Marathon Dataset Generator
==========================

Generates a synthetic marathon shoe-share dataset in the document format
the analysis service loads.

Usage:
  go run cmd/gen-dataset/main.go [options]

Options:
  -out string
        Output path for the dataset document (default "data/marathon_shoes.json")
  -seed int
        Random seed; the same seed reproduces the same document (default 1)
  -years int
        Number of consecutive years starting at 2021 (default 5)
  -events int
        Number of marathon events (default 4)
  -cohorts int
        Number of runner cohorts (default 2)
  -brands int
        Number of shoe brands (default 10)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Generate with default settings
  go run cmd/gen-dataset/main.go

  # Bigger dataset with a fixed seed
  go run cmd/gen-dataset/main.go -years 8 -events 6 -brands 14 -seed 42

  # Generate into a custom location
  go run cmd/gen-dataset/main.go -out testdata/demo.json
`)
}
