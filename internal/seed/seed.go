// Package seed loads demonstration data into an empty database.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mr1hm/go-disaster-reports/internal/models"
	"github.com/mr1hm/go-disaster-reports/internal/repository"
)

//go:embed data/seed.yaml
var defaultData []byte

// Data is a seed file. Child records point at reports through Ref, since
// report ids are only known after insertion.
type Data struct {
	Reports           []Report           `yaml:"reports"`
	EvacuationCenters []EvacuationCenter `yaml:"evacuationCenters"`
	Infrastructure    []Infrastructure   `yaml:"infrastructure"`
	Sentiments        []Sentiment        `yaml:"sentiments"`
}

type Report struct {
	Ref               string     `yaml:"ref"`
	Category          string     `yaml:"category"`
	Severity          string     `yaml:"severity"`
	ReportType        string     `yaml:"reportType"`
	Title             string     `yaml:"title"`
	Description       string     `yaml:"description"`
	Latitude          string     `yaml:"latitude"`
	Longitude         string     `yaml:"longitude"`
	LocationName      string     `yaml:"locationName"`
	Region            string     `yaml:"region"`
	PhotoURLs         []string   `yaml:"photoUrls"`
	ReporterName      string     `yaml:"reporterName"`
	ReporterContact   string     `yaml:"reporterContact"`
	Status            string     `yaml:"status"`
	VerifiedBy        string     `yaml:"verifiedBy"`
	VerifiedAt        *time.Time `yaml:"verifiedAt"`
	AffectedResidents int        `yaml:"affectedResidents"`
	UrgentNeeds       string     `yaml:"urgentNeeds"`
	CreatedAt         time.Time  `yaml:"createdAt"`
}

type EvacuationCenter struct {
	Report           string    `yaml:"report"`
	Name             string    `yaml:"name"`
	Address          string    `yaml:"address"`
	Capacity         int       `yaml:"capacity"`
	CurrentOccupancy int       `yaml:"currentOccupancy"`
	Contact          string    `yaml:"contact"`
	Latitude         string    `yaml:"latitude"`
	Longitude        string    `yaml:"longitude"`
	CreatedAt        time.Time `yaml:"createdAt"`
}

type Infrastructure struct {
	Report      string    `yaml:"report"`
	Type        string    `yaml:"type"`
	Status      string    `yaml:"status"`
	Description string    `yaml:"description"`
	CreatedAt   time.Time `yaml:"createdAt"`
}

type Sentiment struct {
	Report      string    `yaml:"report"`
	Sentiment   string    `yaml:"sentiment"`
	Comment     string    `yaml:"comment"`
	SubmittedBy string    `yaml:"submittedBy"`
	CreatedAt   time.Time `yaml:"createdAt"`
}

// Summary counts inserted rows.
type Summary struct {
	Reports           int
	EvacuationCenters int
	Infrastructure    int
	Sentiments        int
}

// Default returns the bundled seed set.
func Default() (*Data, error) {
	return Parse(defaultData)
}

func Parse(raw []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("error parsing seed data: %w", err)
	}
	if err := d.validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

func (d *Data) validate() error {
	refs := make(map[string]bool, len(d.Reports))
	for i, r := range d.Reports {
		if r.Ref == "" {
			return fmt.Errorf("report %d: ref is required", i)
		}
		if refs[r.Ref] {
			return fmt.Errorf("report %q: duplicate ref", r.Ref)
		}
		refs[r.Ref] = true

		if !models.Category(r.Category).Valid() {
			return fmt.Errorf("report %q: unknown category %q", r.Ref, r.Category)
		}
		if !models.Severity(r.Severity).Valid() {
			return fmt.Errorf("report %q: unknown severity %q", r.Ref, r.Severity)
		}
		if r.ReportType != "" && !models.ReportType(r.ReportType).Valid() {
			return fmt.Errorf("report %q: unknown report type %q", r.Ref, r.ReportType)
		}
		status := models.Status(r.Status)
		if r.Status != "" && !status.Valid() {
			return fmt.Errorf("report %q: unknown status %q", r.Ref, r.Status)
		}
		decided := status.Decided()
		if decided != (r.VerifiedBy != "") || decided != (r.VerifiedAt != nil) {
			return fmt.Errorf("report %q: verifiedBy and verifiedAt must be set exactly when status is Verified or Rejected", r.Ref)
		}
		if r.CreatedAt.IsZero() {
			return fmt.Errorf("report %q: createdAt is required", r.Ref)
		}
	}

	for _, c := range d.EvacuationCenters {
		if !refs[c.Report] {
			return fmt.Errorf("evacuation center %q: unknown report %q", c.Name, c.Report)
		}
	}
	for _, s := range d.Infrastructure {
		if !refs[s.Report] {
			return fmt.Errorf("infrastructure %q: unknown report %q", s.Type, s.Report)
		}
		if !models.InfraType(s.Type).Valid() || !models.InfraCondition(s.Status).Valid() {
			return fmt.Errorf("infrastructure for %q: unknown type/status %q/%q", s.Report, s.Type, s.Status)
		}
	}
	for _, s := range d.Sentiments {
		if !refs[s.Report] {
			return fmt.Errorf("sentiment by %q: unknown report %q", s.SubmittedBy, s.Report)
		}
		if !models.Sentiment(s.Sentiment).Valid() {
			return fmt.Errorf("sentiment by %q: unknown sentiment %q", s.SubmittedBy, s.Sentiment)
		}
	}
	return nil
}

// Load inserts d, reports first. It is not transactional: a failure leaves
// the rows inserted so far in place.
func Load(ctx context.Context, reports repository.ReportRepository, deps repository.DependentRepository, d *Data) (Summary, error) {
	var sum Summary
	ids := make(map[string]int64, len(d.Reports))

	for _, in := range d.Reports {
		r := toReport(in)
		if err := reports.InsertReport(ctx, r); err != nil {
			return sum, fmt.Errorf("error seeding report %q: %w", in.Ref, err)
		}
		ids[in.Ref] = r.ID
		sum.Reports++
	}

	for _, in := range d.EvacuationCenters {
		c := &models.EvacuationCenter{
			DisasterReportID: ids[in.Report],
			Name:             in.Name,
			Address:          in.Address,
			Capacity:         in.Capacity,
			CurrentOccupancy: in.CurrentOccupancy,
			Contact:          in.Contact,
			Latitude:         in.Latitude,
			Longitude:        in.Longitude,
			CreatedAt:        in.CreatedAt,
		}
		if err := deps.InsertEvacuationCenter(ctx, c); err != nil {
			return sum, fmt.Errorf("error seeding evacuation center %q: %w", in.Name, err)
		}
		sum.EvacuationCenters++
	}

	for _, in := range d.Infrastructure {
		s := &models.InfrastructureStatus{
			DisasterReportID:   ids[in.Report],
			InfrastructureType: models.InfraType(in.Type),
			Status:             models.InfraCondition(in.Status),
			Description:        in.Description,
			CreatedAt:          in.CreatedAt,
		}
		if err := deps.InsertInfrastructure(ctx, s); err != nil {
			return sum, fmt.Errorf("error seeding infrastructure for %q: %w", in.Report, err)
		}
		sum.Infrastructure++
	}

	for _, in := range d.Sentiments {
		s := &models.CommunitySentiment{
			DisasterReportID: ids[in.Report],
			Sentiment:        models.Sentiment(in.Sentiment),
			Comment:          in.Comment,
			SubmittedBy:      in.SubmittedBy,
			CreatedAt:        in.CreatedAt,
		}
		if err := deps.InsertSentiment(ctx, s); err != nil {
			return sum, fmt.Errorf("error seeding sentiment for %q: %w", in.Report, err)
		}
		sum.Sentiments++
	}

	return sum, nil
}

func toReport(in Report) *models.DisasterReport {
	r := &models.DisasterReport{
		Category:          models.Category(in.Category),
		Severity:          models.Severity(in.Severity),
		ReportType:        models.ReportType(in.ReportType),
		Title:             in.Title,
		Description:       in.Description,
		Latitude:          in.Latitude,
		Longitude:         in.Longitude,
		LocationName:      in.LocationName,
		Region:            in.Region,
		PhotoURLs:         in.PhotoURLs,
		ReporterName:      in.ReporterName,
		ReporterContact:   in.ReporterContact,
		Status:            models.Status(in.Status),
		AffectedResidents: in.AffectedResidents,
		CreatedAt:         in.CreatedAt,
		UpdatedAt:         in.CreatedAt,
	}
	if r.ReportType == "" {
		r.ReportType = models.ReportTypeDisaster
	}
	if r.Status == "" {
		r.Status = models.StatusPending
	}
	if in.UrgentNeeds != "" {
		needs := in.UrgentNeeds
		r.UrgentNeeds = &needs
	}
	if r.Status.Decided() {
		by := in.VerifiedBy
		r.VerifiedBy = &by
		r.VerifiedAt = in.VerifiedAt
		r.UpdatedAt = *in.VerifiedAt
	}
	return r
}
