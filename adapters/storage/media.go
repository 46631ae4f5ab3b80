// Package storage - Media and conversion record queries
package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"smartmedia-cost/core/report"
	"smartmedia-cost/core/types"
	"smartmedia-cost/internal/errors"
)

// MediaRepository implements report.MediaStore over the media metadata,
// conversion and file tables written by the upstream pipeline. All
// queries are read-only.
type MediaRepository struct {
	db *DB
}

// NewMediaRepository creates a media repository
func NewMediaRepository(db *DB) *MediaRepository {
	return &MediaRepository{db: db}
}

// overviewRow is the scan target for the overview join
type overviewRow struct {
	ContentHash         string         `db:"contenthash"`
	Duration            float64        `db:"duration"`
	Width               int            `db:"width"`
	Height              int            `db:"height"`
	VideoStreams        int            `db:"videostreams"`
	AudioStreams        int            `db:"audiostreams"`
	Size                int64          `db:"filesize"`
	Container           string         `db:"container"`
	MetadataCreated     time.Time      `db:"metadatacreated"`
	Status              int            `db:"status"`
	PresetIDs           pq.StringArray `db:"preset_ids"`
	TranscoderStatus    int            `db:"transcoder_status"`
	FaceStatus          int            `db:"face_status"`
	ModerationStatus    int            `db:"moderation_status"`
	LabelStatus         int            `db:"label_status"`
	PersonStatus        int            `db:"person_status"`
	TranscriptionStatus int            `db:"transcription_status"`
	ConvCreated         time.Time      `db:"timecreated"`
	ConvCompleted       sql.NullTime   `db:"timecompleted"`
	Instances           int            `db:"files"`
}

// overviewQuery joins metadata with conversion records per distinct
// content hash and counts file instances, excluding draft-area rows and
// directory placeholders. Rows are ordered so repeated runs over
// unchanged data produce identical output.
const overviewQuery = `
SELECT d.contenthash,
       d.duration,
       d.width,
       d.height,
       d.videostreams,
       d.audiostreams,
       d.filesize,
       d.container,
       d.timecreated AS metadatacreated,
       c.status,
       c.preset_ids,
       c.transcoder_status,
       c.face_status,
       c.moderation_status,
       c.label_status,
       c.person_status,
       c.transcription_status,
       c.timecreated,
       c.timecompleted,
       COALESCE(fc.files, 0) AS files
  FROM media_data d
  JOIN media_conversions c ON c.contenthash = d.contenthash
  LEFT JOIN (
       SELECT contenthash, COUNT(*) AS files
         FROM files
        WHERE filearea <> 'draft'
          AND filename <> '.'
        GROUP BY contenthash
       ) fc ON fc.contenthash = d.contenthash
 ORDER BY d.contenthash`

// OverviewRecords returns the joined metadata + conversion records
func (r *MediaRepository) OverviewRecords(ctx context.Context) ([]report.OverviewRecord, error) {
	var rows []overviewRow
	if err := r.db.conn.SelectContext(ctx, &rows, overviewQuery); err != nil {
		return nil, errors.Storage("querying overview records", err)
	}

	records := make([]report.OverviewRecord, 0, len(rows))
	for _, row := range rows {
		var completed time.Time
		if row.ConvCompleted.Valid {
			completed = row.ConvCompleted.Time
		}
		records = append(records, report.OverviewRecord{
			Media: types.MediaAttributes{
				ContentHash:  row.ContentHash,
				Duration:     row.Duration,
				Width:        row.Width,
				Height:       row.Height,
				VideoStreams: row.VideoStreams,
				AudioStreams: row.AudioStreams,
				Size:         row.Size,
				Container:    row.Container,
				TimeCreated:  row.MetadataCreated,
			},
			Conversion: types.ConversionRecord{
				ContentHash:         row.ContentHash,
				Status:              row.Status,
				PresetIDs:           row.PresetIDs,
				TranscoderStatus:    row.TranscoderStatus,
				FaceStatus:          row.FaceStatus,
				ModerationStatus:    row.ModerationStatus,
				LabelStatus:         row.LabelStatus,
				PersonStatus:        row.PersonStatus,
				TranscriptionStatus: row.TranscriptionStatus,
				TimeCreated:         row.ConvCreated,
				TimeCompleted:       completed,
			},
			Instances: row.Instances,
		})
	}
	return records, nil
}

// unconvertedQuery selects metadata for content hashes that have no
// conversion record and whose newest non-draft file row was created
// after the cutoff. Converted hashes never appear here, so estimate
// buckets cannot double-count media already in the conversion table.
const unconvertedQuery = `
SELECT d.contenthash,
       d.duration,
       d.width,
       d.height,
       d.videostreams,
       d.audiostreams,
       d.filesize,
       d.container,
       d.timecreated AS metadatacreated
  FROM media_data d
 WHERE NOT EXISTS (
       SELECT 1 FROM media_conversions c
        WHERE c.contenthash = d.contenthash
       )
   AND (
       SELECT MAX(f.timecreated)
         FROM files f
        WHERE f.contenthash = d.contenthash
          AND f.filearea <> 'draft'
          AND f.filename <> '.'
       ) >= $1
 ORDER BY d.contenthash`

// unconvertedRow is the scan target for the unconverted media query
type unconvertedRow struct {
	ContentHash     string    `db:"contenthash"`
	Duration        float64   `db:"duration"`
	Width           int       `db:"width"`
	Height          int       `db:"height"`
	VideoStreams    int       `db:"videostreams"`
	AudioStreams    int       `db:"audiostreams"`
	Size            int64     `db:"filesize"`
	Container       string    `db:"container"`
	MetadataCreated time.Time `db:"metadatacreated"`
}

// UnconvertedMedia returns media awaiting conversion, created after since
func (r *MediaRepository) UnconvertedMedia(ctx context.Context, since time.Time) ([]types.MediaAttributes, error) {
	var rows []unconvertedRow
	if err := r.db.conn.SelectContext(ctx, &rows, unconvertedQuery, since); err != nil {
		return nil, errors.Storage("querying unconverted media", err)
	}

	media := make([]types.MediaAttributes, 0, len(rows))
	for _, row := range rows {
		media = append(media, types.MediaAttributes{
			ContentHash:  row.ContentHash,
			Duration:     row.Duration,
			Width:        row.Width,
			Height:       row.Height,
			VideoStreams: row.VideoStreams,
			AudioStreams: row.AudioStreams,
			Size:         row.Size,
			Container:    row.Container,
			TimeCreated:  row.MetadataCreated,
		})
	}
	return media, nil
}

// Counters returns the scalar usage statistics
func (r *MediaRepository) Counters(ctx context.Context) (types.UsageCounters, error) {
	var counters types.UsageCounters

	uniqueQuery := `
		SELECT COUNT(DISTINCT contenthash) FROM files
		 WHERE filearea <> 'draft'
		   AND filename <> '.'
		   AND (mimetype LIKE 'video/%' OR mimetype LIKE 'audio/%')`
	if err := r.db.conn.GetContext(ctx, &counters.UniqueMedia, uniqueQuery); err != nil {
		return types.UsageCounters{}, errors.Storage("counting unique media", err)
	}

	if err := r.db.conn.GetContext(ctx, &counters.MetadataProcessed,
		`SELECT COUNT(*) FROM media_data`); err != nil {
		return types.UsageCounters{}, errors.Storage("counting processed metadata", err)
	}

	if err := r.db.conn.GetContext(ctx, &counters.Converted,
		`SELECT COUNT(*) FROM media_conversions WHERE status = $1`,
		types.StatusFinished); err != nil {
		return types.UsageCounters{}, errors.Storage("counting conversions", err)
	}

	return counters, nil
}
