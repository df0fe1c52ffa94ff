package reports

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/mr1hm/go-disaster-reports/internal/models"
	"github.com/mr1hm/go-disaster-reports/internal/repository"
)

// fakeStore implements both repositories in memory.
type fakeStore struct {
	reports    []models.DisasterReport
	centers    []models.EvacuationCenter
	infra      []models.InfrastructureStatus
	sentiments []models.CommunitySentiment
	nextID     int64
	writes     int
	err        error
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) find(id int64) int {
	return slices.IndexFunc(f.reports, func(r models.DisasterReport) bool { return r.ID == id })
}

func (f *fakeStore) ListReports(ctx context.Context, opts repository.Filter) ([]models.DisasterReport, error) {
	if f.err != nil {
		return nil, f.err
	}

	var results []models.DisasterReport
	for _, r := range f.reports {
		if opts.Category != "" && string(r.Category) != opts.Category {
			continue
		}
		if opts.Severity != "" && string(r.Severity) != opts.Severity {
			continue
		}
		if opts.Status != "" && string(r.Status) != opts.Status {
			continue
		}
		if opts.ReportType != "" && string(r.ReportType) != opts.ReportType {
			continue
		}
		if opts.Region != "" && !strings.Contains(strings.ToLower(r.Region), strings.ToLower(opts.Region)) {
			continue
		}
		results = append(results, r)
	}

	slices.SortFunc(results, func(a, b models.DisasterReport) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return results, nil
}

func (f *fakeStore) GetReport(ctx context.Context, id int64) (*models.DisasterReport, error) {
	if f.err != nil {
		return nil, f.err
	}
	i := f.find(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	r := f.reports[i]
	return &r, nil
}

func (f *fakeStore) InsertReport(ctx context.Context, r *models.DisasterReport) error {
	if f.err != nil {
		return f.err
	}
	f.writes++
	r.ID = f.id()
	f.reports = append(f.reports, *r)
	return nil
}

func (f *fakeStore) UpdateReport(ctx context.Context, id int64, p models.ReportPatch, updatedAt time.Time) (*models.DisasterReport, error) {
	i := f.find(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	f.writes++
	p.Apply(&f.reports[i])
	f.reports[i].UpdatedAt = updatedAt
	r := f.reports[i]
	return &r, nil
}

func (f *fakeStore) SetVerification(ctx context.Context, id int64, v models.Verification) (*models.DisasterReport, error) {
	i := f.find(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	f.writes++
	by, at := v.By, v.At
	f.reports[i].Status = v.Status
	f.reports[i].VerifiedBy = &by
	f.reports[i].VerifiedAt = &at
	f.reports[i].UpdatedAt = at
	r := f.reports[i]
	return &r, nil
}

func (f *fakeStore) DeleteReport(ctx context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	if i := f.find(id); i >= 0 {
		f.writes++
		f.reports = slices.Delete(f.reports, i, i+1)
	}
	return nil
}

func (f *fakeStore) ListEvacuationCenters(ctx context.Context, reportID *int64) ([]models.EvacuationCenter, error) {
	return scoped(f.centers, reportID, func(c models.EvacuationCenter) int64 { return c.DisasterReportID }), f.err
}

func (f *fakeStore) ListInfrastructure(ctx context.Context, reportID *int64) ([]models.InfrastructureStatus, error) {
	return scoped(f.infra, reportID, func(s models.InfrastructureStatus) int64 { return s.DisasterReportID }), f.err
}

func (f *fakeStore) ListSentiments(ctx context.Context, reportID *int64) ([]models.CommunitySentiment, error) {
	out := scoped(f.sentiments, reportID, func(s models.CommunitySentiment) int64 { return s.DisasterReportID })
	slices.SortFunc(out, func(a, b models.CommunitySentiment) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, f.err
}

func (f *fakeStore) InsertEvacuationCenter(ctx context.Context, c *models.EvacuationCenter) error {
	c.ID = f.id()
	f.centers = append(f.centers, *c)
	return f.err
}

func (f *fakeStore) InsertInfrastructure(ctx context.Context, s *models.InfrastructureStatus) error {
	s.ID = f.id()
	f.infra = append(f.infra, *s)
	return f.err
}

func (f *fakeStore) InsertSentiment(ctx context.Context, s *models.CommunitySentiment) error {
	if f.err != nil {
		return f.err
	}
	s.ID = f.id()
	f.sentiments = append(f.sentiments, *s)
	return nil
}

func scoped[T any](items []T, reportID *int64, owner func(T) int64) []T {
	out := []T{}
	for _, it := range items {
		if reportID == nil || owner(it) == *reportID {
			out = append(out, it)
		}
	}
	return out
}

var errStorage = errors.New("disk I/O error")
