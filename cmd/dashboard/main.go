// Package main runs the dashboard service: initial payload load, periodic
// simulated refresh, and the read-only rendering API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"goldboard/internal/config"
	"goldboard/internal/domain"
	"goldboard/internal/ingest"
	"goldboard/internal/pipeline"
	"goldboard/internal/refresh"
	"goldboard/internal/server"
	"goldboard/internal/viewmodel"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (optional)")
	seed := flag.Int64("seed", 0, "RNG seed for simulation noise (0 = time-based)")
	flag.Parse()

	logger := log.New(os.Stderr, "", log.LstdFlags)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("invalid config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("received signal %v, shutting down...", sig)
		cancel()
	}()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(rngSeed))

	store := viewmodel.NewStore()
	pipe := pipeline.New(pipeline.Options{
		Resolver: ingest.NewResolver(buildSources(cfg), logger),
		Store:    store,
		RNG:      rng,
		Logger:   logger,
	})

	// Initial load. Total source failure already falls back to synthetic
	// data inside the pipeline; anything else is logged once and the
	// service keeps running in a non-blocking state (the API answers 503
	// until data exists).
	loadCtx, loadCancel := context.WithTimeout(ctx, 2*time.Minute)
	if err := pipe.Load(loadCtx); err != nil {
		logger.Printf("initialization failed: %v (continuing without data)", err)
	}
	loadCancel()

	if cfg.Refresh.Enabled {
		scheduler := refresh.New(refresh.Options{
			Store:  store,
			RNG:    rng,
			Period: cfg.Refresh.Period,
			Logger: logger,
		})
		go func() {
			if err := scheduler.Run(ctx); err != nil {
				logger.Printf("refresh scheduler: %v", err)
			}
		}()
	}

	if !cfg.Server.Enabled {
		logger.Printf("server disabled, idling until signal")
		<-ctx.Done()
		return
	}

	srv := server.New(store, logger)
	httpSrv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Router(cfg.Server.AllowOrigins),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			logger.Printf("server shutdown: %v", err)
		}
	}()

	logger.Printf("serving dashboard API on %s (seed %d)", cfg.Server.Addr, rngSeed)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

// buildSources assembles the priority-ordered source list from config.
func buildSources(cfg *config.Config) []ingest.PayloadSource {
	client := &http.Client{Timeout: cfg.Sources.Timeout}

	opts := []ingest.HTTPOption{ingest.WithHTTPClient(client)}
	if cfg.Sources.APIKey != "" {
		opts = append(opts, ingest.WithAPIKey(cfg.Sources.APIKey))
	}

	return []ingest.PayloadSource{
		ingest.NewHTTPSource(domain.SourceCombined, cfg.Sources.BaseURL, cfg.Sources.CombinedPath, opts...),
		ingest.NewHTTPSource(domain.SourcePredictions, cfg.Sources.BaseURL, cfg.Sources.PredictionsPath, opts...),
		ingest.NewHTTPSource(domain.SourceSample, cfg.Sources.BaseURL, cfg.Sources.SamplePath, opts...),
	}
}
