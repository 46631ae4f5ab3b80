// Package types - Report output types
package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Scalar report keys persisted by the report run
const (
	// KeyTotalCost is the forward-looking total conversion cost estimate
	KeyTotalCost = "totalcost"

	// KeyUniqueMedia is the number of distinct multimedia objects
	KeyUniqueMedia = "uniquemultimediaobjects"

	// KeyMetadataProcessed is the number of objects with extracted metadata
	KeyMetadataProcessed = "metadataprocessedfiles"

	// KeyConverted is the number of objects with a finished conversion
	KeyConverted = "convertedfiles"

	// KeyLastRun is the completion timestamp of the last report run
	KeyLastRun = "lastreportrun"
)

// NotCalculable is the report value rendered when no transcoding presets
// are configured and cost cannot be computed. Distinct from a zero cost.
const NotCalculable = "N/A"

// OverviewRow is one per-file summary row of the report overview table.
// The whole table is replaced atomically on every run.
type OverviewRow struct {
	// ContentHash identifies the media object
	ContentHash string `json:"contenthash" db:"contenthash"`

	// Type is the media type label
	Type MediaType `json:"type" db:"mediatype"`

	// Format is the container format
	Format string `json:"format" db:"format"`

	// Resolution is the display resolution, empty for audio
	Resolution string `json:"resolution" db:"resolution"`

	// Duration is the media duration in seconds, rounded to 3 decimals
	Duration float64 `json:"duration" db:"duration"`

	// Size is the file size in bytes
	Size int64 `json:"size" db:"filesize"`

	// Cost is the incurred conversion cost rounded to 3 decimals,
	// nil when no presets are configured and cost cannot be calculated
	Cost *decimal.Decimal `json:"cost" db:"cost"`

	// Status is the human conversion status label
	Status string `json:"status" db:"status"`

	// Instances is how many file rows share this content hash
	Instances int `json:"instances" db:"files"`

	// TimeCreated is when the conversion record was created
	TimeCreated time.Time `json:"timecreated" db:"timecreated"`

	// TimeCompleted is when the conversion finished, zero if not yet
	TimeCompleted time.Time `json:"timecompleted" db:"timecompleted"`
}

// BucketEstimate is the forward-looking estimate for one resolution bucket
type BucketEstimate struct {
	// Duration is the summed duration in seconds of unconverted media
	Duration float64 `json:"duration"`

	// Cost is the projected conversion cost for the bucket
	Cost decimal.Decimal `json:"cost"`
}

// Estimate is the forward-looking total cost estimate over media that has
// no conversion record yet.
type Estimate struct {
	// HD is the bucket for video at or above the HD threshold
	HD BucketEstimate `json:"hd"`

	// SD is the bucket for video below the HD threshold
	SD BucketEstimate `json:"sd"`

	// Audio is the bucket for audio-only media
	Audio BucketEstimate `json:"audio"`

	// Total is the sum of all bucket costs
	Total decimal.Decimal `json:"total"`

	// Calculable is false when no presets are configured; the estimate
	// must then be rendered as NotCalculable, never as a number
	Calculable bool `json:"calculable"`
}

// ScalarValue renders the estimate total for scalar persistence
func (e Estimate) ScalarValue() string {
	if !e.Calculable {
		return NotCalculable
	}
	return e.Total.Round(3).String()
}

// UsageCounters are the scalar usage statistics published by a run
type UsageCounters struct {
	// UniqueMedia is the count of distinct multimedia objects
	UniqueMedia int64 `json:"unique_media"`

	// MetadataProcessed is the count of objects with extracted metadata
	MetadataProcessed int64 `json:"metadata_processed"`

	// Converted is the count of objects with a finished conversion
	Converted int64 `json:"converted"`
}
