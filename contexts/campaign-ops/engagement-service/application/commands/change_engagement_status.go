package commands

import (
	"context"
	"log/slog"
	"strings"

	application "backstage/contexts/campaign-ops/engagement-service/application"
	"backstage/contexts/campaign-ops/engagement-service/domain/entities"
	domainerrors "backstage/contexts/campaign-ops/engagement-service/domain/errors"
	"backstage/contexts/campaign-ops/engagement-service/ports"
)

type ChangeEngagementStatusCommand struct {
	Actor        Actor
	EngagementID string
	Status       string
}

type ChangeEngagementStatusUseCase struct {
	Campaigns   ports.CampaignRepository
	Engagements ports.EngagementRepository
	Audit       ports.AuditRecorder
	Clock       ports.Clock
	Logger      *slog.Logger
}

// Execute sets the engagement status. Any of the defined states may be the
// target (operators can jump straight to posted); unknown values are
// rejected. Posting never creates a ledger entry here; payout creation is a
// separate explicit operation, so a retried status edit cannot double-post.
func (uc ChangeEngagementStatusUseCase) Execute(ctx context.Context, cmd ChangeEngagementStatusCommand) (entities.Engagement, error) {
	target := entities.EngagementStatus(strings.TrimSpace(cmd.Status))
	if !entities.IsSupportedEngagementStatus(target) {
		return entities.Engagement{}, domainerrors.ErrUnknownEngagementStatus
	}

	engagement, err := uc.Engagements.GetEngagement(ctx, strings.TrimSpace(cmd.EngagementID))
	if err != nil {
		return entities.Engagement{}, err
	}
	campaign, err := uc.Campaigns.GetCampaign(ctx, engagement.CampaignID)
	if err != nil {
		return entities.Engagement{}, err
	}
	if campaign.IsCompleted() {
		return entities.Engagement{}, domainerrors.ErrCampaignCompleted
	}

	from := engagement.Status
	if from == target {
		return engagement, nil
	}

	engagement.Status = target
	engagement.UpdatedAt = uc.Clock.Now().UTC()
	if err := uc.Engagements.UpdateEngagement(ctx, engagement); err != nil {
		return entities.Engagement{}, err
	}
	recordAudit(ctx, uc.Audit, uc.Logger, cmd.Actor, ports.AuditEntry{
		Action:     "status_change",
		EntityType: "CampaignInfluencer",
		EntityID:   engagement.EngagementID,
		OldValue:   statusSnapshot(from),
		NewValue:   statusSnapshot(target),
	})

	application.ResolveLogger(uc.Logger).Info("engagement status changed",
		"event", "engagement_status_changed",
		"module", "campaign-ops/engagement-service",
		"layer", "application",
		"engagement_id", engagement.EngagementID,
		"campaign_id", engagement.CampaignID,
		"from_status", string(from),
		"to_status", string(target),
	)
	return engagement, nil
}
