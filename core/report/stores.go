// Package report builds the media conversion cost report: per-file
// overview rows, the forward-looking cost estimate, and scalar usage
// counters. Storage, pricing and preset acquisition are collaborators
// behind the interfaces defined here.
package report

import (
	"context"
	"time"

	"smartmedia-cost/core/types"
)

// OverviewRecord is one joined metadata + conversion record, keyed by
// content hash, as produced by the media store.
type OverviewRecord struct {
	// Media is the extracted media metadata
	Media types.MediaAttributes

	// Conversion is the matching conversion record
	Conversion types.ConversionRecord

	// Instances is how many file rows share this content hash,
	// excluding draft-area rows and directory placeholders
	Instances int
}

// MediaStore reads media and conversion records. All results are
// read-only snapshots; this package never mutates source records.
type MediaStore interface {
	// OverviewRecords returns one record per distinct content hash that
	// has at least one stream and a matching conversion record
	OverviewRecords(ctx context.Context) ([]OverviewRecord, error)

	// UnconvertedMedia returns the most recent non-draft file row per
	// content hash that has no conversion record yet and was created
	// after the given cutoff
	UnconvertedMedia(ctx context.Context, since time.Time) ([]types.MediaAttributes, error)

	// Counters returns the scalar usage statistics
	Counters(ctx context.Context) (types.UsageCounters, error)
}

// ReportStore persists report output. Both operations are atomic with
// respect to concurrent readers: a failure rolls back and leaves the
// previously persisted state intact.
type ReportStore interface {
	// ReplaceOverview atomically replaces the whole overview table
	ReplaceOverview(ctx context.Context, rows []types.OverviewRow) error

	// UpsertScalar writes a named report value, keeping at most one row
	// per key
	UpsertScalar(ctx context.Context, key, value string) error
}
