package queries

import (
	"context"
	"log/slog"
	"strings"

	"backstage/contexts/campaign-ops/engagement-service/domain/entities"
	"backstage/contexts/campaign-ops/engagement-service/ports"
)

type ListSubmissionsUseCase struct {
	Engagements ports.EngagementRepository
	Submissions ports.SubmissionRepository
	Logger      *slog.Logger
}

// Execute lists an engagement's submissions newest first; the head of the
// list is the authoritative one for display.
func (uc ListSubmissionsUseCase) Execute(ctx context.Context, engagementID string) ([]entities.ContentSubmission, error) {
	engagement, err := uc.Engagements.GetEngagement(ctx, strings.TrimSpace(engagementID))
	if err != nil {
		return nil, err
	}
	return uc.Submissions.ListSubmissionsByEngagement(ctx, engagement.EngagementID)
}
