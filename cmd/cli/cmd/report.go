// Package cmd - report command
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"smartmedia-cost/adapters/storage"
	"smartmedia-cost/core/report"
	"smartmedia-cost/internal/config"
	"smartmedia-cost/internal/setup"
)

var reportTimeout time.Duration

// reportCmd runs one report generation pass
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run one cost report generation pass",
	Long: `Generate the conversion cost report once.

Reads media metadata and conversion records from the database, prices
them against the regional schedule, and atomically replaces the report
overview table and scalar report values.

The run is a no-op when API credentials are not configured.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().DurationVar(&reportTimeout, "timeout", 10*time.Minute, "maximum run duration")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()

	db, err := storage.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		return err
	}

	runner := report.NewRunner(
		setup.RunnerConfig(cfg),
		setup.PricingSource(cfg),
		setup.PresetSource(cfg),
		storage.NewMediaRepository(db),
		storage.NewReportRepository(db),
	)

	result, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	if result.Skipped {
		fmt.Println("API credentials not configured, nothing to do.")
		return nil
	}

	fmt.Printf("Overview rows written: %d\n", result.Rows)
	fmt.Printf("Estimated conversion cost: %s\n", result.Estimate.ScalarValue())
	fmt.Printf("Unique media objects: %d\n", result.Counters.UniqueMedia)
	fmt.Printf("Metadata processed: %d\n", result.Counters.MetadataProcessed)
	fmt.Printf("Converted files: %d\n", result.Counters.Converted)
	fmt.Printf("Elapsed: %s\n", result.Elapsed)
	return nil
}

