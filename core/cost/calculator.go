// Package cost provides the pure cost calculation engine.
// It turns media attributes, a pricing schedule, a preset selection and
// an enrichment selection into monetary amounts. No hidden state: every
// operation is a function of its arguments and the immutable schedule.
package cost

import (
	"github.com/shopspring/decimal"

	"smartmedia-cost/core/preset"
	"smartmedia-cost/core/pricing"
	"smartmedia-cost/core/types"
	"smartmedia-cost/internal/errors"
)

// ErrNoPresets signals that no transcoding presets are configured and
// transcode cost cannot be calculated. Callers must surface this as a
// distinct "cannot calculate" outcome, never as a zero cost.
var ErrNoPresets = errors.New(errors.TypePricing, "no transcoding presets configured, cost cannot be calculated")

var sixty = decimal.NewFromInt(60)

// Calculator computes costs against one pricing schedule and the
// configured preset catalog. Amounts keep full decimal precision;
// rounding happens only at the point of presentation.
type Calculator struct {
	schedule    *pricing.Schedule
	catalog     preset.Catalog
	hdMinHeight int
}

// NewCalculator creates a calculator for a schedule and preset catalog
func NewCalculator(schedule *pricing.Schedule, catalog preset.Catalog, hdMinHeight int) *Calculator {
	return &Calculator{
		schedule:    schedule,
		catalog:     catalog,
		hdMinHeight: hdMinHeight,
	}
}

// HasPresets reports whether at least one usable preset is configured.
// It gates all transcode costing: without presets there is no pricing
// basis and "cannot calculate" must be propagated instead of a number.
func (c *Calculator) HasPresets() bool {
	return !c.catalog.Empty()
}

// minutes converts a duration in seconds to billing minutes. Partial
// minutes bill pro-rata.
func minutes(durationSeconds float64) decimal.Decimal {
	return decimal.NewFromFloat(durationSeconds).Div(sixty)
}

// tierBillable reports whether a tier incurs cost for the given stream
// counts. Video tiers bill only when a video stream exists: audio-only
// content is never charged video transcoding, regardless of duration.
func tierBillable(tier types.Tier, videoStreams, audioStreams int) bool {
	if tier == types.TierAudio {
		return audioStreams > 0
	}
	return videoStreams > 0
}

// TranscodeCost computes the transcode cost for a single resolution,
// billing the tier matching the given height. Returns ErrNoPresets when
// no presets are configured.
func (c *Calculator) TranscodeCost(height int, durationSeconds float64, videoStreams, audioStreams int) (decimal.Decimal, error) {
	if !c.HasPresets() {
		return decimal.Zero, ErrNoPresets
	}

	tier := types.TierForHeight(height, c.hdMinHeight)
	if !tierBillable(tier, videoStreams, audioStreams) {
		return decimal.Zero, nil
	}

	return minutes(durationSeconds).Mul(c.schedule.TranscodeRate(tier)), nil
}

// TranscodeCostForPresets computes the transcode cost of a conversion
// that produced the selected presets. Each distinct pricing tier among
// the selection bills once; duplicate presets in the same tier never
// double-count.
func (c *Calculator) TranscodeCostForPresets(selected preset.Catalog, durationSeconds float64, videoStreams, audioStreams int) (decimal.Decimal, error) {
	if !c.HasPresets() {
		return decimal.Zero, ErrNoPresets
	}

	total := decimal.Zero
	mins := minutes(durationSeconds)
	for _, tier := range selected.Tiers(c.hdMinHeight) {
		if !tierBillable(tier, videoStreams, audioStreams) {
			continue
		}
		total = total.Add(mins.Mul(c.schedule.TranscodeRate(tier)))
	}
	return total, nil
}

// DetectionCost computes the enrichment analysis cost: each enabled
// feature bills duration-in-minutes at its own rate, disabled features
// contribute exactly zero.
func (c *Calculator) DetectionCost(flags types.EnrichmentSelection, durationSeconds float64) decimal.Decimal {
	enabled := map[pricing.Feature]bool{
		pricing.FeatureFaceDetection:     flags.FaceDetection,
		pricing.FeatureContentModeration: flags.ContentModeration,
		pricing.FeatureLabelDetection:    flags.LabelDetection,
		pricing.FeaturePersonTracking:    flags.PersonTracking,
	}

	total := decimal.Zero
	mins := minutes(durationSeconds)
	for _, feature := range pricing.Features {
		if !enabled[feature] {
			continue
		}
		total = total.Add(mins.Mul(c.schedule.DetectionRate(feature)))
	}
	return total
}

// TranscriptionCost computes the speech transcription cost, zero when
// transcription is not selected.
func (c *Calculator) TranscriptionCost(enabled bool, durationSeconds float64) decimal.Decimal {
	if !enabled {
		return decimal.Zero
	}
	return minutes(durationSeconds).Mul(c.schedule.TranscriptionRate())
}
