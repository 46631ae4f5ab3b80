// Package pricing provides immutable per-region pricing schedules for
// media transcoding, enrichment analysis, and transcription.
package pricing

import (
	"context"

	"github.com/shopspring/decimal"

	"smartmedia-cost/core/types"
)

// Feature identifies a billable enrichment analysis pass
type Feature string

const (
	// FeatureFaceDetection is face detection analysis
	FeatureFaceDetection Feature = "face_detection"

	// FeatureContentModeration is content moderation analysis
	FeatureContentModeration Feature = "content_moderation"

	// FeatureLabelDetection is label detection analysis
	FeatureLabelDetection Feature = "label_detection"

	// FeaturePersonTracking is person tracking analysis
	FeaturePersonTracking Feature = "person_tracking"
)

// Features lists all billable enrichment features
var Features = []Feature{
	FeatureFaceDetection,
	FeatureContentModeration,
	FeatureLabelDetection,
	FeaturePersonTracking,
}

// Schedule is an immutable unit-price table for one region.
// All rates are per minute of media duration. A schedule is fetched at
// most once per report run and never mutated after construction.
type Schedule struct {
	region        string
	transcode     map[types.Tier]decimal.Decimal
	detection     map[Feature]decimal.Decimal
	transcription decimal.Decimal
}

// NewSchedule creates a schedule, copying the rate tables so later
// mutation of the inputs cannot leak into the schedule.
func NewSchedule(region string, transcode map[types.Tier]decimal.Decimal, detection map[Feature]decimal.Decimal, transcription decimal.Decimal) *Schedule {
	t := make(map[types.Tier]decimal.Decimal, len(transcode))
	for tier, rate := range transcode {
		t[tier] = rate
	}
	d := make(map[Feature]decimal.Decimal, len(detection))
	for feature, rate := range detection {
		d[feature] = rate
	}
	return &Schedule{
		region:        region,
		transcode:     t,
		detection:     d,
		transcription: transcription,
	}
}

// Region returns the region this schedule was fetched for
func (s *Schedule) Region() string {
	return s.region
}

// TranscodeRate returns the per-minute transcode rate for a tier.
// Missing tiers rate as zero.
func (s *Schedule) TranscodeRate(tier types.Tier) decimal.Decimal {
	return s.transcode[tier]
}

// DetectionRate returns the per-minute rate for an enrichment feature
func (s *Schedule) DetectionRate(feature Feature) decimal.Decimal {
	return s.detection[feature]
}

// TranscriptionRate returns the per-minute transcription rate
func (s *Schedule) TranscriptionRate() decimal.Decimal {
	return s.transcription
}

// Source fetches the current pricing schedule for a region. Transient
// failures propagate to the caller; no retry happens at this layer.
type Source interface {
	// FetchPricing retrieves the unit-price table for a region
	FetchPricing(ctx context.Context, region string) (*Schedule, error)
}
