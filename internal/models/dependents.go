package models

import "time"

// EvacuationCenter is a shelter opened for a reported disaster. Occupancy is
// allowed to exceed capacity.
type EvacuationCenter struct {
	ID               int64     `json:"id"`
	DisasterReportID int64     `json:"disasterReportId"`
	Name             string    `json:"name"`
	Address          string    `json:"address"`
	Capacity         int       `json:"capacity"`
	CurrentOccupancy int       `json:"currentOccupancy"`
	Contact          string    `json:"contact"`
	Latitude         string    `json:"latitude"`
	Longitude        string    `json:"longitude"`
	CreatedAt        time.Time `json:"createdAt"`
}

type InfrastructureStatus struct {
	ID                 int64          `json:"id"`
	DisasterReportID   int64          `json:"disasterReportId"`
	InfrastructureType InfraType      `json:"infrastructureType"`
	Status             InfraCondition `json:"status"`
	Description        string         `json:"description"`
	CreatedAt          time.Time      `json:"createdAt"`
}

type CommunitySentiment struct {
	ID               int64     `json:"id"`
	DisasterReportID int64     `json:"disasterReportId"`
	Sentiment        Sentiment `json:"sentiment"`
	Comment          string    `json:"comment"`
	SubmittedBy      string    `json:"submittedBy"`
	CreatedAt        time.Time `json:"createdAt"`
}

type SentimentInput struct {
	DisasterReportID int64     `json:"disasterReportId" validate:"required,gt=0"`
	Sentiment        Sentiment `json:"sentiment" validate:"required,sentiment"`
	Comment          string    `json:"comment" validate:"required"`
	SubmittedBy      string    `json:"submittedBy" validate:"required"`
}

// Verification is the audit record of a verification decision. Status, By
// and At are always written together.
type Verification struct {
	Status Status
	By     string
	At     time.Time
}
