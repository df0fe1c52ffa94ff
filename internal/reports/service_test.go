package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/mr1hm/go-disaster-reports/internal/models"
	"github.com/mr1hm/go-disaster-reports/internal/repository"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// steppingClock advances by one minute on every call.
func steppingClock(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

var start = time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)

func newTestService(store *fakeStore) *Service {
	return NewService(store, store, WithClock(steppingClock(start)))
}

func input(location string, category models.Category, severity models.Severity) models.ReportInput {
	return models.ReportInput{
		Category:        category,
		Severity:        severity,
		Title:           "Banjir " + location,
		Description:     "Water level rising",
		Latitude:        "-6.2250",
		Longitude:       "106.8650",
		LocationName:    location,
		Region:          "DKI Jakarta",
		ReporterName:    "Sari",
		ReporterContact: "0812-0000",
	}
}

func mustCreate(t *testing.T, svc *Service, in models.ReportInput) *models.DisasterReport {
	t.Helper()
	r, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	return r
}

func TestCreate_DefaultsAndTimestamps(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)
	ctx := context.Background()

	in := input("Kampung Melayu", models.CategoryFlood, models.SeverityCritical)
	in.AffectedResidents = 300
	created := mustCreate(t, svc, in)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, got.Status)
	assert.Equal(t, models.ReportTypeDisaster, got.ReportType)
	assert.Equal(t, in.Title, got.Title)
	assert.Equal(t, in.LocationName, got.LocationName)
	assert.Equal(t, 300, got.AffectedResidents)
	assert.False(t, got.CreatedAt.IsZero())
	assert.True(t, got.CreatedAt.Equal(got.UpdatedAt))
	assert.Nil(t, got.VerifiedBy)
	assert.Nil(t, got.VerifiedAt)
}

func TestCreate_KeepsExplicitReportType(t *testing.T) {
	svc := newTestService(&fakeStore{})

	in := input("Cipayung", models.CategoryFlood, models.SeverityAlert)
	in.ReportType = models.ReportTypeNeeds
	r := mustCreate(t, svc, in)

	assert.Equal(t, models.ReportTypeNeeds, r.ReportType)
}

func TestCreate_RejectsUnknownEnumsAndMissingFields(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	in := input("X", "hurricane", "Severe")
	in.ReportType = "rumour"
	in.ReporterContact = ""
	in.AffectedResidents = -1

	_, err := svc.Create(context.Background(), in)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "category")
	assert.Contains(t, ve.Fields, "severity")
	assert.Contains(t, ve.Fields, "reportType")
	assert.Contains(t, ve.Fields, "reporterContact")
	assert.Contains(t, ve.Fields, "affectedResidents")
	assert.Zero(t, store.writes)
}

func TestList_CountsDuplicatesWithinResult(t *testing.T) {
	svc := newTestService(&fakeStore{})
	ctx := context.Background()

	a := mustCreate(t, svc, input("X", models.CategoryFlood, models.SeverityCritical))
	b := mustCreate(t, svc, input("X", models.CategoryFlood, models.SeverityCritical))
	c := mustCreate(t, svc, input("Y", models.CategoryFlood, models.SeverityCritical))

	list, err := svc.List(ctx, repository.Filter{})
	require.NoError(t, err)
	require.Len(t, list, 3)

	counts := map[int64]int{}
	for _, r := range list {
		counts[r.ID] = r.ReportCount
	}
	assert.Equal(t, 2, counts[a.ID])
	assert.Equal(t, 2, counts[b.ID])
	assert.Equal(t, 1, counts[c.ID])

	// newest first
	assert.Equal(t, c.ID, list[0].ID)
	assert.Equal(t, a.ID, list[2].ID)
}

func TestList_CountIsScopedToFilter(t *testing.T) {
	svc := newTestService(&fakeStore{})
	ctx := context.Background()

	mustCreate(t, svc, input("X", models.CategoryFlood, models.SeverityCritical))
	mustCreate(t, svc, input("X", models.CategoryFlood, models.SeverityCritical))
	emergency := input("X", models.CategoryFlood, models.SeverityEmergency)
	emergency.Region = "Jawa Barat"
	mustCreate(t, svc, emergency)

	list, err := svc.List(ctx, repository.Filter{Severity: "Emergency"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.SeverityEmergency, list[0].Severity)
	assert.Equal(t, 1, list[0].ReportCount)

	// A region filter that only catches one of the Critical pair changes its count.
	second := input("X", models.CategoryFlood, models.SeverityCritical)
	second.Region = "Jawa Barat"
	mustCreate(t, svc, second)

	list, err = svc.List(ctx, repository.Filter{Region: "Barat", Severity: "Critical"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].ReportCount)

	list, err = svc.List(ctx, repository.Filter{Severity: "Critical"})
	require.NoError(t, err)
	for _, r := range list {
		assert.Equal(t, 3, r.ReportCount)
	}
}

func TestList_AllSentinelMatchesEverything(t *testing.T) {
	svc := newTestService(&fakeStore{})
	ctx := context.Background()

	mustCreate(t, svc, input("X", models.CategoryFlood, models.SeverityCritical))
	mustCreate(t, svc, input("Y", models.CategoryFire, models.SeverityNormal))

	list, err := svc.List(ctx, repository.Filter{Category: "all", Severity: "all", Status: "all", ReportType: "all"})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = svc.List(ctx, repository.Filter{Category: "fire"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.CategoryFire, list[0].Category)
}

func TestList_EmptyResultIsNotNil(t *testing.T) {
	svc := newTestService(&fakeStore{})

	list, err := svc.List(context.Background(), repository.Filter{})
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestList_StorageError(t *testing.T) {
	svc := newTestService(&fakeStore{err: errStorage})

	_, err := svc.List(context.Background(), repository.Filter{})
	assert.ErrorIs(t, err, errStorage)
}

func TestGet_NotFound(t *testing.T) {
	svc := newTestService(&fakeStore{})

	_, err := svc.Get(context.Background(), 7)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdate_MergesSuppliedFields(t *testing.T) {
	svc := newTestService(&fakeStore{})
	ctx := context.Background()

	r := mustCreate(t, svc, input("X", models.CategoryFlood, models.SeverityCritical))

	title := "Flood receding"
	sev := models.SeverityAlert
	updated, err := svc.Update(ctx, r.ID, models.ReportPatch{Title: &title, Severity: &sev})
	require.NoError(t, err)

	assert.Equal(t, title, updated.Title)
	assert.Equal(t, models.SeverityAlert, updated.Severity)
	assert.Equal(t, r.Description, updated.Description)
	assert.True(t, updated.UpdatedAt.After(r.UpdatedAt))
	assert.True(t, updated.CreatedAt.Equal(r.CreatedAt))
}

func TestUpdate_Validation(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)
	r := mustCreate(t, svc, input("X", models.CategoryFlood, models.SeverityCritical))
	writes := store.writes

	bad := models.Category("meteor")
	empty := ""
	_, err := svc.Update(context.Background(), r.ID, models.ReportPatch{Category: &bad, Title: &empty})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "category")
	assert.Contains(t, ve.Fields, "title")
	assert.Equal(t, writes, store.writes)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newTestService(&fakeStore{})
	title := "x"

	_, err := svc.Update(context.Background(), 99, models.ReportPatch{Title: &title})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc := newTestService(&fakeStore{})
	ctx := context.Background()

	r := mustCreate(t, svc, input("X", models.CategoryFlood, models.SeverityCritical))
	require.NoError(t, svc.Delete(ctx, r.ID))

	_, err := svc.Get(ctx, r.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.NoError(t, svc.Delete(ctx, r.ID))
}

func TestStats(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)
	ctx := context.Background()

	one := input("X", models.CategoryFlood, models.SeverityCritical)
	one.AffectedResidents = 100
	two := input("Y", models.CategoryFlood, models.SeverityEmergency)
	two.AffectedResidents = 50
	two.ReportType = models.ReportTypeInfrastructure
	three := input("Z", models.CategoryVolcano, models.SeverityCritical)

	mustCreate(t, svc, one)
	r := mustCreate(t, svc, two)
	mustCreate(t, svc, three)
	_, err := svc.Verify(ctx, r.ID, models.StatusVerified, "Alice")
	require.NoError(t, err)

	st, err := svc.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, st.TotalReports)
	assert.Equal(t, 150, st.TotalAffected)
	assert.Equal(t, map[models.Severity]int{"Emergency": 1, "Critical": 2, "Alert": 0, "Normal": 0}, st.BySeverity)
	assert.Equal(t, map[models.Category]int{"flood": 2, "volcano": 1}, st.ByCategory)
	assert.Equal(t, map[models.ReportType]int{"disaster": 2, "infrastructure": 1, "needs": 0}, st.ByReportType)
	assert.Equal(t, map[models.Status]int{"Pending": 2, "Verified": 1, "Rejected": 0}, st.ByStatus)

	sum := func(m map[models.Severity]int) (n int) {
		for _, v := range m {
			n += v
		}
		return n
	}
	assert.Equal(t, st.TotalReports, sum(st.BySeverity))
}

func TestStats_Empty(t *testing.T) {
	svc := newTestService(&fakeStore{})

	st, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, st.TotalReports)
	assert.Len(t, st.BySeverity, 4)
	assert.Len(t, st.ByStatus, 3)
	assert.Empty(t, st.ByCategory)
}

func TestDetails(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)
	ctx := context.Background()

	r := mustCreate(t, svc, input("X", models.CategoryFlood, models.SeverityCritical))
	other := mustCreate(t, svc, input("Y", models.CategoryFlood, models.SeverityCritical))
	store.centers = []models.EvacuationCenter{
		{ID: 1, DisasterReportID: r.ID, Name: "GOR", Capacity: 10, CurrentOccupancy: 12},
		{ID: 2, DisasterReportID: other.ID, Name: "SD"},
	}
	store.infra = []models.InfrastructureStatus{{ID: 1, DisasterReportID: r.ID, InfrastructureType: models.InfraBridge}}

	d, err := svc.Details(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.ID, d.Report.ID)
	require.Len(t, d.EvacuationCenters, 1)
	assert.Equal(t, "GOR", d.EvacuationCenters[0].Name)
	assert.Len(t, d.Infrastructure, 1)
	assert.Empty(t, d.Sentiments)

	_, err = svc.Details(ctx, 404)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
