package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mr1hm/go-disaster-reports/internal/models"
)

// byReport appends an optional disaster_report_id condition to query.
func byReport(query string, reportID *int64) (string, []any) {
	if reportID == nil {
		return query, nil
	}
	return query + " WHERE disaster_report_id = ?", []any{*reportID}
}

func (s *SQLiteDB) ListEvacuationCenters(ctx context.Context, reportID *int64) ([]models.EvacuationCenter, error) {
	query, args := byReport(`SELECT id, disaster_report_id, name, address, capacity, current_occupancy,
		contact, latitude, longitude, created_at FROM evacuation_centers`, reportID)

	rows, err := s.db.QueryContext(ctx, query+" ORDER BY id", args...)
	if err != nil {
		return nil, fmt.Errorf("error querying evacuation centers: %w", err)
	}
	defer rows.Close()

	centers := []models.EvacuationCenter{}
	for rows.Next() {
		var (
			c         models.EvacuationCenter
			occupancy sql.NullInt64
			createdAt string
		)
		if err := rows.Scan(&c.ID, &c.DisasterReportID, &c.Name, &c.Address, &c.Capacity, &occupancy,
			&c.Contact, &c.Latitude, &c.Longitude, &createdAt); err != nil {
			return nil, fmt.Errorf("error scanning evacuation center: %w", err)
		}
		c.CurrentOccupancy = int(occupancy.Int64)
		if c.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		centers = append(centers, c)
	}
	return centers, rows.Err()
}

func (s *SQLiteDB) ListInfrastructure(ctx context.Context, reportID *int64) ([]models.InfrastructureStatus, error) {
	query, args := byReport(`SELECT id, disaster_report_id, infrastructure_type, status, description, created_at
		FROM infrastructure_status`, reportID)

	rows, err := s.db.QueryContext(ctx, query+" ORDER BY id", args...)
	if err != nil {
		return nil, fmt.Errorf("error querying infrastructure status: %w", err)
	}
	defer rows.Close()

	statuses := []models.InfrastructureStatus{}
	for rows.Next() {
		var (
			st        models.InfrastructureStatus
			createdAt string
		)
		if err := rows.Scan(&st.ID, &st.DisasterReportID, &st.InfrastructureType, &st.Status,
			&st.Description, &createdAt); err != nil {
			return nil, fmt.Errorf("error scanning infrastructure status: %w", err)
		}
		if st.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		statuses = append(statuses, st)
	}
	return statuses, rows.Err()
}

// ListSentiments returns the newest sentiments first.
func (s *SQLiteDB) ListSentiments(ctx context.Context, reportID *int64) ([]models.CommunitySentiment, error) {
	query, args := byReport(`SELECT id, disaster_report_id, sentiment, comment, submitted_by, created_at
		FROM community_sentiments`, reportID)

	rows, err := s.db.QueryContext(ctx, query+" ORDER BY created_at DESC, id DESC", args...)
	if err != nil {
		return nil, fmt.Errorf("error querying community sentiments: %w", err)
	}
	defer rows.Close()

	sentiments := []models.CommunitySentiment{}
	for rows.Next() {
		var (
			cs        models.CommunitySentiment
			createdAt string
		)
		if err := rows.Scan(&cs.ID, &cs.DisasterReportID, &cs.Sentiment, &cs.Comment, &cs.SubmittedBy, &createdAt); err != nil {
			return nil, fmt.Errorf("error scanning community sentiment: %w", err)
		}
		if cs.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		sentiments = append(sentiments, cs)
	}
	return sentiments, rows.Err()
}

func (s *SQLiteDB) InsertEvacuationCenter(ctx context.Context, c *models.EvacuationCenter) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO evacuation_centers (disaster_report_id, name, address, capacity, current_occupancy,
			contact, latitude, longitude, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.DisasterReportID, c.Name, c.Address, c.Capacity, c.CurrentOccupancy,
		c.Contact, c.Latitude, c.Longitude, formatTime(c.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("error inserting evacuation center: %w", err)
	}
	c.ID, err = res.LastInsertId()
	return err
}

func (s *SQLiteDB) InsertInfrastructure(ctx context.Context, st *models.InfrastructureStatus) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO infrastructure_status (disaster_report_id, infrastructure_type, status, description, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		st.DisasterReportID, string(st.InfrastructureType), string(st.Status), st.Description, formatTime(st.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("error inserting infrastructure status: %w", err)
	}
	st.ID, err = res.LastInsertId()
	return err
}

func (s *SQLiteDB) InsertSentiment(ctx context.Context, cs *models.CommunitySentiment) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO community_sentiments (disaster_report_id, sentiment, comment, submitted_by, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		cs.DisasterReportID, string(cs.Sentiment), cs.Comment, cs.SubmittedBy, formatTime(cs.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("error inserting community sentiment: %w", err)
	}
	cs.ID, err = res.LastInsertId()
	return err
}
