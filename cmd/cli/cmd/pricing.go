// Package cmd - pricing command
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	pricingadapter "smartmedia-cost/adapters/pricing"
	corepricing "smartmedia-cost/core/pricing"
	"smartmedia-cost/core/types"
	"smartmedia-cost/internal/config"
)

var (
	pricingRegion   string
	pricingProvider string
)

// pricingCmd prints the unit-price schedule for a region
var pricingCmd = &cobra.Command{
	Use:   "pricing",
	Short: "Show the pricing schedule for a region",
	Long: `Print the per-minute unit prices used for cost estimation.

Examples:
  smartmedia-cost pricing
  smartmedia-cost pricing --region eu-west-1`,
	RunE: runPricing,
}

func init() {
	pricingCmd.Flags().StringVarP(&pricingRegion, "region", "r", "", "pricing region (defaults to the configured region)")
	pricingCmd.Flags().StringVarP(&pricingProvider, "provider", "p", pricingadapter.ProviderAWSETS, "pricing source provider")
}

func runPricing(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	region := pricingRegion
	if region == "" {
		region = cfg.API.Region
	}

	registry := pricingadapter.Default()
	if cfg.Report.PricingDir != "" {
		registry.Register("file", pricingadapter.NewFileSource(cfg.Report.PricingDir))
	}

	source, err := registry.Get(pricingProvider)
	if err != nil {
		return err
	}

	schedule, err := source.FetchPricing(context.Background(), region)
	if err != nil {
		return err
	}

	fmt.Printf("Pricing schedule for %s (per minute)\n\n", schedule.Region())
	fmt.Println("Transcoding:")
	for _, tier := range []types.Tier{types.TierHD, types.TierSD, types.TierAudio} {
		fmt.Printf("  %-6s $%s\n", tier, schedule.TranscodeRate(tier))
	}
	fmt.Println("Enrichment:")
	for _, feature := range corepricing.Features {
		fmt.Printf("  %-20s $%s\n", feature, schedule.DetectionRate(feature))
	}
	fmt.Printf("Transcription:\n  %-20s $%s\n", "speech_to_text", schedule.TranscriptionRate())
	return nil
}
