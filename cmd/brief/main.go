// Package main produces a one-shot forecast report: it loads the latest
// payload, reconstructs the view model, and writes summary artifacts
// without starting the long-running service.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"goldboard/internal/config"
	"goldboard/internal/domain"
	"goldboard/internal/ingest"
	"goldboard/internal/pipeline"
	"goldboard/internal/reporting"
	"goldboard/internal/synthetic"
	"goldboard/internal/viewmodel"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (optional)")
	outputDir := flag.String("output-dir", "docs", "Directory for generated report files")
	writeMarkdown := flag.Bool("markdown", false, "Write forecast_summary.md to the output directory")
	writeCSV := flag.Bool("csv", false, "Write backtest.csv to the output directory")
	seed := flag.Int64("seed", 0, "RNG seed for synthetic fallback (0 = time-based)")
	flag.Parse()

	logger := log.New(os.Stderr, "", log.LstdFlags)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("invalid config: %v", err)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	store := viewmodel.NewStore()
	pipe := pipeline.New(pipeline.Options{
		Resolver: ingest.NewResolver(buildSources(cfg), logger),
		Store:    store,
		RNG:      rand.New(rand.NewSource(rngSeed)),
		Logger:   logger,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if err := pipe.Load(ctx); err != nil {
		logger.Fatalf("load: %v", err)
	}

	vm, ok := store.ViewModel()
	if !ok {
		logger.Fatalf("no view model after load")
	}

	report := reporting.FromViewModel(vm, synthetic.ModelAccuracies, time.Now())
	fmt.Print(reporting.RenderBrief(report))

	if *writeMarkdown || *writeCSV {
		if err := os.MkdirAll(*outputDir, 0o755); err != nil {
			logger.Fatalf("create output dir: %v", err)
		}
	}
	if *writeMarkdown {
		path := filepath.Join(*outputDir, "forecast_summary.md")
		if err := os.WriteFile(path, []byte(reporting.RenderMarkdown(report)), 0o644); err != nil {
			logger.Fatalf("write %s: %v", path, err)
		}
		logger.Printf("wrote %s", path)
	}
	if *writeCSV {
		path := filepath.Join(*outputDir, "backtest.csv")
		if err := os.WriteFile(path, []byte(reporting.RenderCSV(vm.Backtest)), 0o644); err != nil {
			logger.Fatalf("write %s: %v", path, err)
		}
		logger.Printf("wrote %s", path)
	}
}

func buildSources(cfg *config.Config) []ingest.PayloadSource {
	opts := []ingest.HTTPOption{}
	if cfg.Sources.APIKey != "" {
		opts = append(opts, ingest.WithAPIKey(cfg.Sources.APIKey))
	}
	return []ingest.PayloadSource{
		ingest.NewHTTPSource(domain.SourceCombined, cfg.Sources.BaseURL, cfg.Sources.CombinedPath, opts...),
		ingest.NewHTTPSource(domain.SourcePredictions, cfg.Sources.BaseURL, cfg.Sources.PredictionsPath, opts...),
		ingest.NewHTTPSource(domain.SourceSample, cfg.Sources.BaseURL, cfg.Sources.SamplePath, opts...),
	}
}
