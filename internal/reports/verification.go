package reports

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mr1hm/go-disaster-reports/internal/models"
)

// Decide validates a verification decision and returns the record to store.
//
// Reports start Pending; Verified and Rejected are terminal but may be
// decided again, which overwrites the previous decision. Nothing moves a
// report back to Pending. Every current state accepts a decision, so the
// outcome depends only on the target.
func Decide(to models.Status, by string, at time.Time) (models.Verification, error) {
	if !to.Decided() {
		return models.Verification{}, invalid("status", "must be Verified or Rejected")
	}
	by = strings.TrimSpace(by)
	if by == "" {
		return models.Verification{}, invalid("verifiedBy", "is required")
	}
	return models.Verification{Status: to, By: by, At: at}, nil
}

// Verify records an admin decision on a report.
func (s *Service) Verify(ctx context.Context, id int64, to models.Status, by string) (*models.DisasterReport, error) {
	v, err := Decide(to, by, s.now())
	if err != nil {
		return nil, err
	}

	r, err := s.reports.SetVerification(ctx, id, v)
	if err != nil {
		return nil, fmt.Errorf("error verifying report %d: %w", id, err)
	}
	return r, nil
}
