// Package setup wires configuration onto the report runner's
// collaborators. Shared by the CLI and the report daemon.
package setup

import (
	presetadapter "smartmedia-cost/adapters/preset"
	pricingadapter "smartmedia-cost/adapters/pricing"
	corepreset "smartmedia-cost/core/preset"
	corepricing "smartmedia-cost/core/pricing"
	"smartmedia-cost/core/report"
	"smartmedia-cost/core/types"
	"smartmedia-cost/internal/config"
)

// RunnerConfig maps application configuration onto one run's settings
func RunnerConfig(cfg *config.Config) report.RunnerConfig {
	return report.RunnerConfig{
		APIConfigured: cfg.API.Configured(),
		Region:        cfg.API.Region,
		Settings: report.Settings{
			ProactiveConversion: cfg.Report.ProactiveConversion,
			Lookback:            cfg.Report.LookbackSeconds,
			HDMinHeight:         cfg.Report.HDMinHeight,
			SDHeight:            cfg.Report.SDHeight,
			AudioHeight:         cfg.Report.AudioHeight,
			DefaultEnrichment: types.EnrichmentSelection{
				FaceDetection:     cfg.Enrichment.FaceDetection,
				ContentModeration: cfg.Enrichment.ContentModeration,
				LabelDetection:    cfg.Enrichment.LabelDetection,
				PersonTracking:    cfg.Enrichment.PersonTracking,
				Transcription:     cfg.Enrichment.Transcription,
			},
		},
	}
}

// PricingSource selects the configured pricing schedule source
func PricingSource(cfg *config.Config) corepricing.Source {
	if cfg.Report.PricingDir != "" {
		return pricingadapter.NewFileSource(cfg.Report.PricingDir)
	}
	return pricingadapter.NewTableSource()
}

// PresetSource selects the configured preset catalog source
func PresetSource(cfg *config.Config) corepreset.Source {
	if cfg.Report.PresetFile != "" {
		return presetadapter.NewFileSource(cfg.Report.PresetFile)
	}
	return presetadapter.NewStaticSource(DefaultCatalog)
}

// DefaultCatalog is the built-in preset catalog used when no catalog
// file is configured.
var DefaultCatalog = corepreset.Catalog{
	{ID: "1351620000001-000010", Name: "System preset: Generic 720p", Height: 720, Container: "mp4"},
	{ID: "1351620000001-000020", Name: "System preset: Generic 480p", Height: 480, Container: "mp4"},
	{ID: "1351620000001-300010", Name: "System preset: Audio MP3 - 320k", Height: 0, Container: "mp3"},
}
