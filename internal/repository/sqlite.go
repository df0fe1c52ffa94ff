package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// timeLayout is fixed width so that text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000Z"

type SQLiteDB struct {
	db *sql.DB
}

var (
	_ ReportRepository    = (*SQLiteDB)(nil)
	_ DependentRepository = (*SQLiteDB)(nil)
)

func NewSQLiteDB(path string) (*SQLiteDB, error) {
	if path != ":memory:" && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("error creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	// One connection: sqlite serializes writers anyway, and every
	// connection to ":memory:" would otherwise get its own empty database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteDB{
		db: db,
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error while migrating to database: %w", err)
	}

	return s, nil
}

func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS disaster_reports (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			category TEXT NOT NULL,
			severity TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			latitude TEXT NOT NULL,
			longitude TEXT NOT NULL,
			location_name TEXT NOT NULL,
			region TEXT NOT NULL,
			photo_url TEXT,
			photo_urls TEXT,
			reporter_name TEXT NOT NULL,
			reporter_contact TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'Pending',
			report_type TEXT NOT NULL DEFAULT 'disaster',
			verified_by TEXT,
			verified_at TEXT,
			affected_residents INTEGER DEFAULT 0,
			urgent_needs TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS evacuation_centers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			disaster_report_id INTEGER NOT NULL REFERENCES disaster_reports(id),
			name TEXT NOT NULL,
			address TEXT NOT NULL,
			capacity INTEGER NOT NULL,
			current_occupancy INTEGER DEFAULT 0,
			contact TEXT NOT NULL,
			latitude TEXT NOT NULL,
			longitude TEXT NOT NULL,
			created_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS infrastructure_status (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			disaster_report_id INTEGER NOT NULL REFERENCES disaster_reports(id),
			infrastructure_type TEXT NOT NULL,
			status TEXT NOT NULL,
			description TEXT NOT NULL,
			created_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS community_sentiments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			disaster_report_id INTEGER NOT NULL REFERENCES disaster_reports(id),
			sentiment TEXT NOT NULL,
			comment TEXT NOT NULL,
			submitted_by TEXT NOT NULL,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_reports_created_at ON disaster_reports(created_at);
		CREATE INDEX IF NOT EXISTS idx_reports_location ON disaster_reports(location_name, category, severity);
		CREATE INDEX IF NOT EXISTS idx_centers_report_id ON evacuation_centers(disaster_report_id);
		CREATE INDEX IF NOT EXISTS idx_infra_report_id ON infrastructure_status(disaster_report_id);
		CREATE INDEX IF NOT EXISTS idx_sentiments_report_id ON community_sentiments(disaster_report_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteDB) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("error parsing timestamp %q: %w", s, err)
	}
	return t, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

type scanner interface {
	Scan(dest ...any) error
}
