// Package report - Overview and forward-estimate aggregation
package report

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"

	"smartmedia-cost/core/cost"
	"smartmedia-cost/core/preset"
	"smartmedia-cost/core/types"
	interrors "smartmedia-cost/internal/errors"
)

// Settings holds the aggregation parameters taken from configuration
type Settings struct {
	// ProactiveConversion enables the forward-looking estimate
	ProactiveConversion bool

	// Lookback is how far back unconverted media is considered
	Lookback int64 // seconds

	// HDMinHeight is the minimum height billed at the HD tier
	HDMinHeight int

	// SDHeight is the representative height for the SD bucket
	SDHeight int

	// AudioHeight is the representative height for the audio bucket
	AudioHeight int

	// DefaultEnrichment is the enrichment selection assumed for media
	// that has no conversion record yet
	DefaultEnrichment types.EnrichmentSelection
}

// Aggregator classifies media records into cost buckets and drives the
// calculator to produce report output. It holds no mutable state and is
// safe to reuse within a run.
type Aggregator struct {
	calc     *cost.Calculator
	catalog  preset.Catalog
	settings Settings
}

// NewAggregator creates an aggregator over one calculator and catalog
func NewAggregator(calc *cost.Calculator, catalog preset.Catalog, settings Settings) *Aggregator {
	return &Aggregator{
		calc:     calc,
		catalog:  catalog,
		settings: settings,
	}
}

// round3 rounds a duration to the 3 decimal places shown in the report
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// BuildOverview produces one overview row per joined record. The rows
// report actual incurred cost: only enrichment passes that completed
// contribute. A record with neither audio nor video streams is a
// data-integrity violation and fails the whole run. An empty record set
// yields an empty result, never an error.
func (a *Aggregator) BuildOverview(records []OverviewRecord) ([]types.OverviewRow, error) {
	rows := make([]types.OverviewRow, 0, len(records))

	for _, rec := range records {
		mediaType, err := rec.Media.Type()
		if err != nil {
			return nil, err
		}

		rowCost, err := a.conversionCost(rec)
		if err != nil {
			return nil, err
		}

		rows = append(rows, types.OverviewRow{
			ContentHash:   rec.Media.ContentHash,
			Type:          mediaType,
			Format:        rec.Media.Container,
			Resolution:    rec.Media.Resolution(),
			Duration:      round3(rec.Media.Duration),
			Size:          rec.Media.Size,
			Cost:          rowCost,
			Status:        types.StatusLabel(rec.Conversion.Status),
			Instances:     rec.Instances,
			TimeCreated:   rec.Conversion.TimeCreated,
			TimeCompleted: rec.Conversion.TimeCompleted,
		})
	}

	return rows, nil
}

// conversionCost computes the incurred cost of one conversion record,
// nil when no presets are configured and cost cannot be calculated.
func (a *Aggregator) conversionCost(rec OverviewRecord) (*decimal.Decimal, error) {
	selected := a.catalog.Filter(rec.Conversion.PresetIDs)

	transcode, err := a.calc.TranscodeCostForPresets(
		selected,
		rec.Media.Duration,
		rec.Media.VideoStreams,
		rec.Media.AudioStreams,
	)
	if err != nil {
		if errors.Is(err, cost.ErrNoPresets) {
			return nil, nil
		}
		return nil, err
	}

	flags := rec.Conversion.EnrichmentFlags()
	total := transcode.
		Add(a.calc.DetectionCost(flags, rec.Media.Duration)).
		Add(a.calc.TranscriptionCost(flags.Transcription, rec.Media.Duration)).
		Round(3)
	return &total, nil
}

// ForwardEstimate projects the cost of converting media that has no
// conversion record yet, bucketed into HD, SD and audio-only durations.
// Returns a zero estimate immediately when proactive conversion is
// disabled, and a non-calculable estimate when no presets exist.
func (a *Aggregator) ForwardEstimate(unconverted []types.MediaAttributes) (types.Estimate, error) {
	if !a.settings.ProactiveConversion {
		return types.Estimate{Calculable: true}, nil
	}

	if !a.calc.HasPresets() {
		return types.Estimate{Calculable: false}, nil
	}

	var hdDuration, sdDuration, audioDuration float64
	for _, m := range unconverted {
		switch {
		case m.VideoStreams > 0 && m.Height >= a.settings.HDMinHeight:
			hdDuration += m.Duration
		case m.VideoStreams > 0 && m.Height > 0:
			sdDuration += m.Duration
		case m.Height <= 0 && m.AudioStreams > 0:
			audioDuration += m.Duration
		}
	}

	// Every bucket goes through transcode costing, the audio bucket at
	// its representative height constant, with one video and one audio
	// stream assumed. Callers depend on these reported totals.
	hd, err := a.bucketEstimate(a.settings.HDMinHeight, hdDuration)
	if err != nil {
		return types.Estimate{}, err
	}
	sd, err := a.bucketEstimate(a.settings.SDHeight, sdDuration)
	if err != nil {
		return types.Estimate{}, err
	}
	audio, err := a.bucketEstimate(a.settings.AudioHeight, audioDuration)
	if err != nil {
		return types.Estimate{}, err
	}

	return types.Estimate{
		HD:         hd,
		SD:         sd,
		Audio:      audio,
		Total:      hd.Cost.Add(sd.Cost).Add(audio.Cost),
		Calculable: true,
	}, nil
}

// bucketEstimate costs one bucket's summed duration at a representative
// height, using the configured default enrichment selection since no
// conversion record exists yet to read actual settings from.
func (a *Aggregator) bucketEstimate(height int, durationSeconds float64) (types.BucketEstimate, error) {
	transcode, err := a.calc.TranscodeCost(height, durationSeconds, 1, 1)
	if err != nil {
		return types.BucketEstimate{}, interrors.Pricing("forward estimate transcode cost", err)
	}

	total := transcode.
		Add(a.calc.DetectionCost(a.settings.DefaultEnrichment, durationSeconds)).
		Add(a.calc.TranscriptionCost(a.settings.DefaultEnrichment.Transcription, durationSeconds))

	return types.BucketEstimate{
		Duration: durationSeconds,
		Cost:     total,
	}, nil
}
