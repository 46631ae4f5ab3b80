// Package storage - Report output persistence
package storage

import (
	"context"
	"database/sql"

	"smartmedia-cost/core/types"
	"smartmedia-cost/internal/errors"
)

// ReportRepository implements report.ReportStore. Both writes are
// transactional: readers never observe a half-replaced table, and a
// failure leaves the previously persisted state untouched.
type ReportRepository struct {
	db *DB
}

// NewReportRepository creates a report repository
func NewReportRepository(db *DB) *ReportRepository {
	return &ReportRepository{db: db}
}

const insertOverviewQuery = `
INSERT INTO report_overview (
	contenthash, mediatype, format, resolution, duration,
	filesize, cost, status, files, timecreated, timecompleted
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

// ReplaceOverview atomically replaces the overview table with rows.
// Delete-all plus bulk insert in one transaction; rollback on any
// failure.
func (r *ReportRepository) ReplaceOverview(ctx context.Context, rows []types.OverviewRow) error {
	tx, err := r.db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Storage("beginning overview transaction", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM report_overview`); err != nil {
		return errors.Storage("clearing overview table", err)
	}

	stmt, err := tx.PreparexContext(ctx, insertOverviewQuery)
	if err != nil {
		return errors.Storage("preparing overview insert", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		var cost interface{}
		if row.Cost != nil {
			cost = row.Cost.Round(3).String()
		}
		var completed sql.NullTime
		if !row.TimeCompleted.IsZero() {
			completed = sql.NullTime{Time: row.TimeCompleted, Valid: true}
		}

		if _, err := stmt.ExecContext(ctx,
			row.ContentHash,
			string(row.Type),
			row.Format,
			row.Resolution,
			row.Duration,
			row.Size,
			cost,
			row.Status,
			row.Instances,
			row.TimeCreated,
			completed,
		); err != nil {
			return errors.Storage("inserting overview row", err).
				WithContext("contenthash", row.ContentHash)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Storage("committing overview replace", err)
	}
	return nil
}

// UpsertScalar writes one named report value, idempotent by key
func (r *ReportRepository) UpsertScalar(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO report_values (name, value, timemodified)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE
		SET value = EXCLUDED.value, timemodified = now()`

	if _, err := r.db.conn.ExecContext(ctx, query, key, value); err != nil {
		return errors.Storage("upserting report value", err).
			WithContext("name", key)
	}
	return nil
}

// GetScalar reads one named report value, empty string when absent
func (r *ReportRepository) GetScalar(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.conn.GetContext(ctx, &value,
		`SELECT value FROM report_values WHERE name = $1`, key)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", errors.Storage("reading report value", err).
			WithContext("name", key)
	}
	return value, nil
}
