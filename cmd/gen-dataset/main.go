package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/zhuangxuhong/marathon-shoe-analysis/internal/datagen"
)

// Default configuration constants.
const (
	defaultSeed       = 1
	defaultYears      = 5
	defaultEvents     = 4
	defaultCohorts    = 2
	defaultBrands     = 10
	defaultGenTimeout = 1 * time.Minute
)

func main() {
	var (
		out     = flag.String("out", datagen.DefaultOutPath, "Output path for the dataset document")
		seed    = flag.Int64("seed", defaultSeed, "Random seed; the same seed reproduces the same document")
		years   = flag.Int("years", defaultYears, "Number of consecutive years starting at 2021")
		events  = flag.Int("events", defaultEvents, "Number of marathon events")
		cohorts = flag.Int("cohorts", defaultCohorts, "Number of runner cohorts")
		brands  = flag.Int("brands", defaultBrands, "Number of shoe brands")
		verbose = flag.Bool("verbose", false, "Enable verbose logging")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		datagen.ShowHelp()
		return
	}

	// Setup logging
	if err := datagen.SetupLogging(*verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultGenTimeout)
	defer cancel()

	// Create generator configuration
	config := &datagen.Config{
		OutPath: *out,
		Seed:    *seed,
		Years:   *years,
		Events:  *events,
		Cohorts: *cohorts,
		Brands:  *brands,
		Verbose: *verbose,
	}

	// Run the generator
	if err := datagen.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Generation failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
