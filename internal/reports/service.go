package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mr1hm/go-disaster-reports/internal/models"
	"github.com/mr1hm/go-disaster-reports/internal/repository"
)

// FilterAll is the filter value meaning "no restriction".
const FilterAll = "all"

type Service struct {
	reports    repository.ReportRepository
	dependents repository.DependentRepository
	validate   *validator.Validate
	clock      func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now, mostly for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

func NewService(reports repository.ReportRepository, dependents repository.DependentRepository, opts ...Option) *Service {
	s := &Service{
		reports:    reports,
		dependents: dependents,
		validate:   newValidator(),
		clock:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// now is truncated to the stored precision so returned values match what a
// later read yields.
func (s *Service) now() time.Time {
	return s.clock().UTC().Truncate(time.Millisecond)
}

// List returns the reports matching f, newest first, each annotated with the
// number of reports in the same result set that share its location,
// category and severity.
func (s *Service) List(ctx context.Context, f repository.Filter) ([]models.EnrichedReport, error) {
	f.Category = normalize(f.Category)
	f.Severity = normalize(f.Severity)
	f.Status = normalize(f.Status)
	f.ReportType = normalize(f.ReportType)

	rows, err := s.reports.ListReports(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("error listing reports: %w", err)
	}
	return CountDuplicates(rows), nil
}

func normalize(v string) string {
	if v == FilterAll {
		return ""
	}
	return v
}

// CountDuplicates attaches reportCount to every row. Counting only sees rows,
// so the count for one report changes with the filter that produced rows.
func CountDuplicates(rows []models.DisasterReport) []models.EnrichedReport {
	counts := make(map[models.DuplicateKey]int, len(rows))
	for i := range rows {
		counts[rows[i].DuplicateKey()]++
	}

	enriched := make([]models.EnrichedReport, len(rows))
	for i, r := range rows {
		enriched[i] = models.EnrichedReport{
			DisasterReport: r,
			ReportCount:    counts[r.DuplicateKey()],
		}
	}
	return enriched
}

func (s *Service) Get(ctx context.Context, id int64) (*models.DisasterReport, error) {
	r, err := s.reports.GetReport(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting report %d: %w", id, err)
	}
	return r, nil
}

// Create stores a new Pending report.
func (s *Service) Create(ctx context.Context, in models.ReportInput) (*models.DisasterReport, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}

	reportType := in.ReportType
	if reportType == "" {
		reportType = models.ReportTypeDisaster
	}

	now := s.now()
	r := &models.DisasterReport{
		Category:          in.Category,
		Severity:          in.Severity,
		ReportType:        reportType,
		Title:             in.Title,
		Description:       in.Description,
		Latitude:          in.Latitude,
		Longitude:         in.Longitude,
		LocationName:      in.LocationName,
		Region:            in.Region,
		PhotoURL:          in.PhotoURL,
		PhotoURLs:         in.PhotoURLs,
		ReporterName:      in.ReporterName,
		ReporterContact:   in.ReporterContact,
		Status:            models.StatusPending,
		AffectedResidents: in.AffectedResidents,
		UrgentNeeds:       in.UrgentNeeds,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.reports.InsertReport(ctx, r); err != nil {
		return nil, fmt.Errorf("error creating report: %w", err)
	}
	return r, nil
}

func (s *Service) Update(ctx context.Context, id int64, p models.ReportPatch) (*models.DisasterReport, error) {
	if err := s.check(p); err != nil {
		return nil, err
	}

	r, err := s.reports.UpdateReport(ctx, id, p, s.now())
	if err != nil {
		return nil, fmt.Errorf("error updating report %d: %w", id, err)
	}
	return r, nil
}

// Delete removes a report. Missing reports are not an error.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.reports.DeleteReport(ctx, id); err != nil {
		return fmt.Errorf("error deleting report %d: %w", id, err)
	}
	return nil
}

func (s *Service) Stats(ctx context.Context) (*models.Stats, error) {
	rows, err := s.reports.ListReports(ctx, repository.Filter{})
	if err != nil {
		return nil, fmt.Errorf("error loading reports for stats: %w", err)
	}
	return Summarize(rows), nil
}

// Summarize aggregates rows. Severity, report type and status buckets are
// always present; category buckets only for observed values.
func Summarize(rows []models.DisasterReport) *models.Stats {
	st := &models.Stats{
		BySeverity:   make(map[models.Severity]int, len(models.Severities)),
		ByCategory:   make(map[models.Category]int),
		ByReportType: make(map[models.ReportType]int, len(models.ReportTypes)),
		ByStatus:     make(map[models.Status]int, len(models.Statuses)),
	}
	for _, sev := range models.Severities {
		st.BySeverity[sev] = 0
	}
	for _, rt := range models.ReportTypes {
		st.ByReportType[rt] = 0
	}
	for _, status := range models.Statuses {
		st.ByStatus[status] = 0
	}

	for _, r := range rows {
		st.TotalReports++
		st.TotalAffected += r.AffectedResidents
		st.ByCategory[r.Category]++
		if _, ok := st.BySeverity[r.Severity]; ok {
			st.BySeverity[r.Severity]++
		}
		if _, ok := st.ByReportType[r.ReportType]; ok {
			st.ByReportType[r.ReportType]++
		}
		if _, ok := st.ByStatus[r.Status]; ok {
			st.ByStatus[r.Status]++
		}
	}
	return st
}

// Details loads a report together with its dependent records.
func (s *Service) Details(ctx context.Context, id int64) (*models.ReportDetails, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	d := &models.ReportDetails{Report: *r}
	if d.EvacuationCenters, err = s.ListEvacuationCenters(ctx, &id); err != nil {
		return nil, err
	}
	if d.Infrastructure, err = s.ListInfrastructure(ctx, &id); err != nil {
		return nil, err
	}
	if d.Sentiments, err = s.ListSentiments(ctx, &id); err != nil {
		return nil, err
	}
	return d, nil
}
