package reports

import (
	"context"
	"fmt"

	"github.com/mr1hm/go-disaster-reports/internal/models"
)

func (s *Service) ListEvacuationCenters(ctx context.Context, reportID *int64) ([]models.EvacuationCenter, error) {
	centers, err := s.dependents.ListEvacuationCenters(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("error listing evacuation centers: %w", err)
	}
	return centers, nil
}

func (s *Service) ListInfrastructure(ctx context.Context, reportID *int64) ([]models.InfrastructureStatus, error) {
	statuses, err := s.dependents.ListInfrastructure(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("error listing infrastructure status: %w", err)
	}
	return statuses, nil
}

// ListSentiments returns the newest sentiments first.
func (s *Service) ListSentiments(ctx context.Context, reportID *int64) ([]models.CommunitySentiment, error) {
	sentiments, err := s.dependents.ListSentiments(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("error listing community sentiments: %w", err)
	}
	return sentiments, nil
}

func (s *Service) CreateSentiment(ctx context.Context, in models.SentimentInput) (*models.CommunitySentiment, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}

	cs := &models.CommunitySentiment{
		DisasterReportID: in.DisasterReportID,
		Sentiment:        in.Sentiment,
		Comment:          in.Comment,
		SubmittedBy:      in.SubmittedBy,
		CreatedAt:        s.now(),
	}
	if err := s.dependents.InsertSentiment(ctx, cs); err != nil {
		return nil, fmt.Errorf("error creating community sentiment: %w", err)
	}
	return cs, nil
}
