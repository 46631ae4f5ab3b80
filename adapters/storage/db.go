// Package storage implements the media and report stores on PostgreSQL.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver

	"smartmedia-cost/internal/config"
)

// DB wraps the database connection pool
type DB struct {
	conn *sqlx.DB
}

// Open connects to PostgreSQL using the configured settings
func Open(cfg config.DatabaseConfig) (*DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.Name, cfg.User, cfg.Password, cfg.SSLMode,
	)

	conn, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(5 * time.Minute)

	return &DB{conn: conn}, nil
}

// Close closes the connection pool
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping checks if the database is reachable
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// EnsureSchema creates the report output tables if they do not exist.
// The media metadata, conversion and file tables are owned by the
// upstream pipeline; only report output is bootstrapped here.
func (db *DB) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS report_overview (
			contenthash   TEXT PRIMARY KEY,
			mediatype     TEXT NOT NULL,
			format        TEXT NOT NULL DEFAULT '',
			resolution    TEXT NOT NULL DEFAULT '',
			duration      DOUBLE PRECISION NOT NULL DEFAULT 0,
			filesize      BIGINT NOT NULL DEFAULT 0,
			cost          NUMERIC(12,3),
			status        TEXT NOT NULL,
			files         INTEGER NOT NULL DEFAULT 0,
			timecreated   TIMESTAMPTZ NOT NULL,
			timecompleted TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS report_values (
			name         TEXT PRIMARY KEY,
			value        TEXT NOT NULL,
			timemodified TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
