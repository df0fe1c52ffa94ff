package models

import "time"

type DisasterReport struct {
	ID                int64      `json:"id"`
	Category          Category   `json:"category"`
	Severity          Severity   `json:"severity"`
	ReportType        ReportType `json:"reportType"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Latitude          string     `json:"latitude"` // decimal string, as submitted
	Longitude         string     `json:"longitude"`
	LocationName      string     `json:"locationName"`
	Region            string     `json:"region"`
	PhotoURL          *string    `json:"photoUrl"`
	PhotoURLs         []string   `json:"photoUrls"`
	ReporterName      string     `json:"reporterName"`
	ReporterContact   string     `json:"reporterContact"`
	Status            Status     `json:"status"`
	VerifiedBy        *string    `json:"verifiedBy"`
	VerifiedAt        *time.Time `json:"verifiedAt"`
	AffectedResidents int        `json:"affectedResidents"`
	UrgentNeeds       *string    `json:"urgentNeeds"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// DisplayPhotos returns the photos to show for a report. The ordered list
// wins over the single legacy URL when both are present.
func (r *DisasterReport) DisplayPhotos() []string {
	if len(r.PhotoURLs) > 0 {
		return r.PhotoURLs
	}
	if r.PhotoURL != nil && *r.PhotoURL != "" {
		return []string{*r.PhotoURL}
	}
	return nil
}

// DuplicateKey identifies reports that describe the same incident.
type DuplicateKey struct {
	LocationName string
	Category     Category
	Severity     Severity
}

func (r *DisasterReport) DuplicateKey() DuplicateKey {
	return DuplicateKey{
		LocationName: r.LocationName,
		Category:     r.Category,
		Severity:     r.Severity,
	}
}

type EnrichedReport struct {
	DisasterReport
	ReportCount int `json:"reportCount"`
}

// ReportInput is the body of a create request. Lifecycle fields are not part
// of it: new reports always start out Pending.
type ReportInput struct {
	Category          Category   `json:"category" validate:"required,category"`
	Severity          Severity   `json:"severity" validate:"required,severity"`
	ReportType        ReportType `json:"reportType" validate:"omitempty,reporttype"`
	Title             string     `json:"title" validate:"required"`
	Description       string     `json:"description" validate:"required"`
	Latitude          string     `json:"latitude" validate:"required"`
	Longitude         string     `json:"longitude" validate:"required"`
	LocationName      string     `json:"locationName" validate:"required"`
	Region            string     `json:"region" validate:"required"`
	PhotoURL          *string    `json:"photoUrl"`
	PhotoURLs         []string   `json:"photoUrls"`
	ReporterName      string     `json:"reporterName" validate:"required"`
	ReporterContact   string     `json:"reporterContact" validate:"required"`
	AffectedResidents int        `json:"affectedResidents" validate:"min=0"`
	UrgentNeeds       *string    `json:"urgentNeeds"`
}

// ReportPatch is a partial update. Nil fields are left untouched; the
// nullable fields can also be cleared with an explicit null.
type ReportPatch struct {
	Category          *Category      `json:"category" validate:"omitempty,category"`
	Severity          *Severity      `json:"severity" validate:"omitempty,severity"`
	ReportType        *ReportType    `json:"reportType" validate:"omitempty,reporttype"`
	Title             *string        `json:"title" validate:"omitempty,min=1"`
	Description       *string        `json:"description" validate:"omitempty,min=1"`
	Latitude          *string        `json:"latitude" validate:"omitempty,min=1"`
	Longitude         *string        `json:"longitude" validate:"omitempty,min=1"`
	LocationName      *string        `json:"locationName" validate:"omitempty,min=1"`
	Region            *string        `json:"region" validate:"omitempty,min=1"`
	PhotoURL          NullableString `json:"photoUrl"`
	PhotoURLs         *[]string      `json:"photoUrls"`
	ReporterName      *string        `json:"reporterName" validate:"omitempty,min=1"`
	ReporterContact   *string        `json:"reporterContact" validate:"omitempty,min=1"`
	AffectedResidents *int           `json:"affectedResidents" validate:"omitempty,min=0"`
	UrgentNeeds       NullableString `json:"urgentNeeds"`
}

// Apply merges the supplied fields over r.
func (p *ReportPatch) Apply(r *DisasterReport) {
	if p.Category != nil {
		r.Category = *p.Category
	}
	if p.Severity != nil {
		r.Severity = *p.Severity
	}
	if p.ReportType != nil {
		r.ReportType = *p.ReportType
	}
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.Latitude != nil {
		r.Latitude = *p.Latitude
	}
	if p.Longitude != nil {
		r.Longitude = *p.Longitude
	}
	if p.LocationName != nil {
		r.LocationName = *p.LocationName
	}
	if p.Region != nil {
		r.Region = *p.Region
	}
	if p.PhotoURL.Set {
		r.PhotoURL = p.PhotoURL.Value
	}
	if p.PhotoURLs != nil {
		r.PhotoURLs = *p.PhotoURLs
	}
	if p.ReporterName != nil {
		r.ReporterName = *p.ReporterName
	}
	if p.ReporterContact != nil {
		r.ReporterContact = *p.ReporterContact
	}
	if p.AffectedResidents != nil {
		r.AffectedResidents = *p.AffectedResidents
	}
	if p.UrgentNeeds.Set {
		r.UrgentNeeds = p.UrgentNeeds.Value
	}
}

type Stats struct {
	TotalReports  int                `json:"totalReports"`
	TotalAffected int                `json:"totalAffected"`
	BySeverity    map[Severity]int   `json:"bySeverity"`
	ByCategory    map[Category]int   `json:"byCategory"`
	ByReportType  map[ReportType]int `json:"byReportType"`
	ByStatus      map[Status]int     `json:"byStatus"`
}

// ReportDetails bundles a report with everything recorded against it.
type ReportDetails struct {
	Report            DisasterReport         `json:"report"`
	EvacuationCenters []EvacuationCenter     `json:"evacuationCenters"`
	Infrastructure    []InfrastructureStatus `json:"infrastructure"`
	Sentiments        []CommunitySentiment   `json:"sentiments"`
}
