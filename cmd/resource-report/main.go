package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/opsvista/ocp-resource-report/internal/config"
	"github.com/opsvista/ocp-resource-report/internal/fetcher"
	"github.com/opsvista/ocp-resource-report/internal/normalize"
	"github.com/opsvista/ocp-resource-report/internal/pipeline"
	"github.com/opsvista/ocp-resource-report/internal/report"
	"github.com/opsvista/ocp-resource-report/internal/scheduler"
	"github.com/opsvista/ocp-resource-report/internal/storage"
)

func main() {
	schedule := flag.Bool("schedule", false, "Run continuously, generating the report on the configured weekly schedule")
	flag.Parse()

	log.Println("Starting OCP resource report...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var store *storage.Storage
	if cfg.HistoryDBPath != "" {
		store, err = storage.New(cfg.HistoryDBPath)
		if err != nil {
			log.Fatalf("Failed to initialize run history: %v", err)
		}
		defer store.Close()
	}

	fetch, err := buildFetcher(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize fetcher: %v", err)
	}

	pipe := pipeline.New(
		fetch,
		normalize.New(cfg.NamespacesExclude),
		report.NewBuilder(cfg.OutputDir),
		store,
		cfg.ClusterName,
		cfg.FetchTimeout,
		cfg.PDFSummary,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *schedule {
		sched := scheduler.New(pipe, store, scheduler.Config{
			ReportDay:      cfg.ReportDay,
			ReportTime:     cfg.ReportTime,
			RetentionWeeks: cfg.RetentionWeeks,
		})
		if err := sched.Start(ctx); err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}

		log.Println("Resource report scheduler is running. Press Ctrl+C to stop.")

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Received shutdown signal")
		sched.Stop()
		return
	}

	if _, err := pipe.Run(ctx); err != nil {
		log.Fatalf("Report generation failed: %v", err)
	}
}

func buildFetcher(cfg *config.Config) (fetcher.Fetcher, error) {
	if cfg.FetchMode == config.FetchModeAPI {
		return fetcher.NewAPIFetcher()
	}
	return fetcher.NewCLIFetcher(cfg.OCBinary), nil
}
