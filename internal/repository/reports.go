package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mr1hm/go-disaster-reports/internal/models"
)

const reportColumns = `id, category, severity, report_type, title, description, latitude, longitude,
	location_name, region, photo_url, photo_urls, reporter_name, reporter_contact, status,
	verified_by, verified_at, affected_residents, urgent_needs, created_at, updated_at`

func (s *SQLiteDB) ListReports(ctx context.Context, f Filter) ([]models.DisasterReport, error) {
	query := "SELECT " + reportColumns + " FROM disaster_reports"

	var (
		conds []string
		args  []any
	)
	if f.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, f.Category)
	}
	if f.Severity != "" {
		conds = append(conds, "severity = ?")
		args = append(args, f.Severity)
	}
	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, f.Status)
	}
	if f.ReportType != "" {
		conds = append(conds, "report_type = ?")
		args = append(args, f.ReportType)
	}
	if f.Region != "" {
		conds = append(conds, `region LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(f.Region)+"%")
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying reports: %w", err)
	}
	defer rows.Close()

	var reports []models.DisasterReport
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reports: %w", err)
	}
	return reports, nil
}

func (s *SQLiteDB) GetReport(ctx context.Context, id int64) (*models.DisasterReport, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+reportColumns+" FROM disaster_reports WHERE id = ?", id)
	return scanReportRow(row)
}

func (s *SQLiteDB) InsertReport(ctx context.Context, r *models.DisasterReport) error {
	photos, err := encodePhotos(r.PhotoURLs)
	if err != nil {
		return err
	}

	var verifiedAt sql.NullString
	if r.VerifiedAt != nil {
		verifiedAt = sql.NullString{String: formatTime(*r.VerifiedAt), Valid: true}
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO disaster_reports (category, severity, report_type, title, description, latitude, longitude,
			location_name, region, photo_url, photo_urls, reporter_name, reporter_contact, status,
			verified_by, verified_at, affected_residents, urgent_needs, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(r.Category), string(r.Severity), string(r.ReportType), r.Title, r.Description, r.Latitude, r.Longitude,
		r.LocationName, r.Region, nullString(r.PhotoURL), photos, r.ReporterName, r.ReporterContact, string(r.Status),
		nullString(r.VerifiedBy), verifiedAt, r.AffectedResidents, nullString(r.UrgentNeeds),
		formatTime(r.CreatedAt), formatTime(r.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("error inserting report: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("error reading report id: %w", err)
	}
	r.ID = id
	return nil
}

// UpdateReport writes only the fields present in p, in a single statement.
func (s *SQLiteDB) UpdateReport(ctx context.Context, id int64, p models.ReportPatch, updatedAt time.Time) (*models.DisasterReport, error) {
	var (
		sets []string
		args []any
	)
	set := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}

	if p.Category != nil {
		set("category", string(*p.Category))
	}
	if p.Severity != nil {
		set("severity", string(*p.Severity))
	}
	if p.ReportType != nil {
		set("report_type", string(*p.ReportType))
	}
	if p.Title != nil {
		set("title", *p.Title)
	}
	if p.Description != nil {
		set("description", *p.Description)
	}
	if p.Latitude != nil {
		set("latitude", *p.Latitude)
	}
	if p.Longitude != nil {
		set("longitude", *p.Longitude)
	}
	if p.LocationName != nil {
		set("location_name", *p.LocationName)
	}
	if p.Region != nil {
		set("region", *p.Region)
	}
	if p.PhotoURL.Set {
		set("photo_url", nullString(p.PhotoURL.Value))
	}
	if p.PhotoURLs != nil {
		photos, err := encodePhotos(*p.PhotoURLs)
		if err != nil {
			return nil, err
		}
		set("photo_urls", photos)
	}
	if p.ReporterName != nil {
		set("reporter_name", *p.ReporterName)
	}
	if p.ReporterContact != nil {
		set("reporter_contact", *p.ReporterContact)
	}
	if p.AffectedResidents != nil {
		set("affected_residents", *p.AffectedResidents)
	}
	if p.UrgentNeeds.Set {
		set("urgent_needs", nullString(p.UrgentNeeds.Value))
	}
	set("updated_at", formatTime(updatedAt))
	args = append(args, id)

	row := s.db.QueryRowContext(ctx,
		"UPDATE disaster_reports SET "+strings.Join(sets, ", ")+" WHERE id = ? RETURNING "+reportColumns,
		args...,
	)
	return scanReportRow(row)
}

// SetVerification records a verification decision. The status, the audit
// fields and updated_at change in one statement.
func (s *SQLiteDB) SetVerification(ctx context.Context, id int64, v models.Verification) (*models.DisasterReport, error) {
	at := formatTime(v.At)
	row := s.db.QueryRowContext(ctx, `
		UPDATE disaster_reports
		SET status = ?, verified_by = ?, verified_at = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+reportColumns,
		string(v.Status), v.By, at, at, id,
	)
	return scanReportRow(row)
}

// DeleteReport succeeds whether or not the report exists.
func (s *SQLiteDB) DeleteReport(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM disaster_reports WHERE id = ?", id); err != nil {
		return fmt.Errorf("error deleting report %d: %w", id, err)
	}
	return nil
}

func scanReportRow(row *sql.Row) (*models.DisasterReport, error) {
	r, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return r, err
}

func scanReport(sc scanner) (*models.DisasterReport, error) {
	var (
		r                    models.DisasterReport
		photoURL, photoURLs  sql.NullString
		verifiedBy           sql.NullString
		verifiedAt           sql.NullString
		urgentNeeds          sql.NullString
		affected             sql.NullInt64
		createdAt, updatedAt string
	)

	err := sc.Scan(
		&r.ID, &r.Category, &r.Severity, &r.ReportType, &r.Title, &r.Description, &r.Latitude, &r.Longitude,
		&r.LocationName, &r.Region, &photoURL, &photoURLs, &r.ReporterName, &r.ReporterContact, &r.Status,
		&verifiedBy, &verifiedAt, &affected, &urgentNeeds, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("error scanning report: %w", err)
	}

	r.PhotoURL = stringPtr(photoURL)
	r.VerifiedBy = stringPtr(verifiedBy)
	r.UrgentNeeds = stringPtr(urgentNeeds)
	r.AffectedResidents = int(affected.Int64)

	if photoURLs.Valid && photoURLs.String != "" {
		if err := json.Unmarshal([]byte(photoURLs.String), &r.PhotoURLs); err != nil {
			return nil, fmt.Errorf("error decoding photo_urls of report %d: %w", r.ID, err)
		}
	}
	if verifiedAt.Valid {
		t, err := parseTime(verifiedAt.String)
		if err != nil {
			return nil, err
		}
		r.VerifiedAt = &t
	}
	if r.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if r.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	return &r, nil
}

func encodePhotos(urls []string) (sql.NullString, error) {
	if urls == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(urls)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("error encoding photo_urls: %w", err)
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
