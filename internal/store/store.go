// Package store persists fetched daily series in a local SQLite database so
// a restart does not refetch decades of period-of-record data from the USDA
// API. It sits beneath the in-memory series cache; the analytics engine
// itself never touches storage.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/chrissnell/snowtracker/internal/analytics"
)

const schema = `
CREATE TABLE IF NOT EXISTS observations (
	station    TEXT NOT NULL,
	date       TEXT NOT NULL,
	value      REAL,
	PRIMARY KEY (station, date)
);
CREATE TABLE IF NOT EXISTS series_meta (
	station    TEXT PRIMARY KEY,
	fetched_at TEXT NOT NULL
);
`

// Store wraps the SQLite observations database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the SQLite database at dbPath.
// Use ":memory:" for an ephemeral store.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSeries replaces a station's stored series atomically. Missing
// observations persist as NULL values so they round-trip as missing, not
// zero.
func (s *Store) SaveSeries(ctx context.Context, stationID string, series []analytics.DailyObservation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM observations WHERE station = ?`, stationID); err != nil {
		return fmt.Errorf("failed to clear previous series: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO observations (station, date, value) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, obs := range series {
		var value interface{}
		if obs.Valid {
			value = obs.Value
		}
		if _, err := stmt.ExecContext(ctx, stationID, obs.Date.UTC().Format("2006-01-02"), value); err != nil {
			return fmt.Errorf("failed to insert observation: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO series_meta (station, fetched_at) VALUES (?, ?)
		 ON CONFLICT (station) DO UPDATE SET fetched_at = excluded.fetched_at`,
		stationID, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to record fetch time: %w", err)
	}

	return tx.Commit()
}

// LoadSeries returns a station's stored series in date order, or nil when
// the station has never been stored.
func (s *Store) LoadSeries(ctx context.Context, stationID string) ([]analytics.DailyObservation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT date, value FROM observations WHERE station = ? ORDER BY date`, stationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query series: %w", err)
	}
	defer rows.Close()

	var series []analytics.DailyObservation
	for rows.Next() {
		var dateStr string
		var value sql.NullFloat64
		if err := rows.Scan(&dateStr, &value); err != nil {
			return nil, fmt.Errorf("failed to scan observation: %w", err)
		}
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored date %q: %w", dateStr, err)
		}
		obs := analytics.DailyObservation{Date: date.UTC()}
		if value.Valid {
			obs.Value = value.Float64
			obs.Valid = true
		}
		series = append(series, obs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return series, nil
}

// FetchedAt returns when a station's series was last stored, or the zero
// time if never.
func (s *Store) FetchedAt(ctx context.Context, stationID string) (time.Time, error) {
	var fetchedStr string
	err := s.db.QueryRowContext(ctx,
		`SELECT fetched_at FROM series_meta WHERE station = ?`, stationID).Scan(&fetchedStr)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query fetch time: %w", err)
	}
	return time.Parse(time.RFC3339, fetchedStr)
}
