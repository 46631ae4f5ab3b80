// Package main - Scheduled report daemon.
// Runs the report on a cron schedule, skipping a trigger while the
// previous run is still active so runs never overlap.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"smartmedia-cost/adapters/storage"
	"smartmedia-cost/core/report"
	"smartmedia-cost/internal/config"
	"smartmedia-cost/internal/logging"
	"smartmedia-cost/internal/setup"
)

func main() {
	cfgFile := flag.String("config", "", "config file path")
	flag.Parse()

	if *cfgFile != "" {
		cfg, err := config.Load(*cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}
	cfg := config.Get()

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
	defer logging.Sync()

	db, err := storage.Open(cfg.Database)
	if err != nil {
		logging.Fatal("opening database", zap.Error(err))
	}
	defer db.Close()

	if err := db.EnsureSchema(context.Background()); err != nil {
		logging.Fatal("ensuring schema", zap.Error(err))
	}

	runner := report.NewRunner(
		setup.RunnerConfig(cfg),
		setup.PricingSource(cfg),
		setup.PresetSource(cfg),
		storage.NewMediaRepository(db),
		storage.NewReportRepository(db),
	)

	var running atomic.Bool
	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.Report.Schedule, func() {
		if !running.CompareAndSwap(false, true) {
			logging.Warn("previous report run still active, skipping trigger")
			return
		}
		defer running.Store(false)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		if _, err := runner.Run(ctx); err != nil {
			logging.Error("report run failed", zap.Error(err))
		}
	})
	if err != nil {
		logging.Fatal("invalid report schedule", zap.String("schedule", cfg.Report.Schedule), zap.Error(err))
	}

	logging.Info("report daemon started", zap.String("schedule", cfg.Report.Schedule))
	scheduler.Start()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logging.Info("shutting down")
	<-scheduler.Stop().Done()
}
