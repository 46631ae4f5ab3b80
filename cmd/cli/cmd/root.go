// Package cmd provides the CLI commands for smartmedia-cost.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"smartmedia-cost/internal/config"
	"smartmedia-cost/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "smartmedia-cost",
	Short: "Compute conversion cost reports for the media pipeline",
	Long: `smartmedia-cost computes cost estimates and usage statistics for the
media transcoding pipeline and persists them for reporting.

It reads media metadata and conversion records, prices them against the
regional schedule, and writes the per-file overview table plus scalar
report values.

Examples:
  smartmedia-cost report
  smartmedia-cost report --config /etc/smartmedia/cost.json
  smartmedia-cost pricing --region us-east-1`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.smartmedia-cost.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(pricingCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	// Initialize logging
	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("smartmedia-cost version 0.1.0")
	},
}
