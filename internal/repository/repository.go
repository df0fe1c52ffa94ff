package repository

import (
	"context"
	"errors"
	"time"

	"github.com/mr1hm/go-disaster-reports/internal/models"
)

var ErrNotFound = errors.New("not found")

// Filter restricts a report listing. Empty fields match everything; Region is
// a substring match, the rest are exact.
type Filter struct {
	Category   string
	Severity   string
	Status     string
	ReportType string
	Region     string
}

type ReportRepository interface {
	ListReports(ctx context.Context, f Filter) ([]models.DisasterReport, error)
	GetReport(ctx context.Context, id int64) (*models.DisasterReport, error)
	InsertReport(ctx context.Context, r *models.DisasterReport) error
	UpdateReport(ctx context.Context, id int64, p models.ReportPatch, updatedAt time.Time) (*models.DisasterReport, error)
	SetVerification(ctx context.Context, id int64, v models.Verification) (*models.DisasterReport, error)
	DeleteReport(ctx context.Context, id int64) error
}

// DependentRepository stores records owned by a report. A nil reportID lists
// across all reports.
type DependentRepository interface {
	ListEvacuationCenters(ctx context.Context, reportID *int64) ([]models.EvacuationCenter, error)
	ListInfrastructure(ctx context.Context, reportID *int64) ([]models.InfrastructureStatus, error)
	ListSentiments(ctx context.Context, reportID *int64) ([]models.CommunitySentiment, error)
	InsertEvacuationCenter(ctx context.Context, c *models.EvacuationCenter) error
	InsertInfrastructure(ctx context.Context, s *models.InfrastructureStatus) error
	InsertSentiment(ctx context.Context, s *models.CommunitySentiment) error
}
