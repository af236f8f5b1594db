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

type CloneEngagementCommand struct {
	Actor        Actor
	EngagementID string
}

type CloneEngagementUseCase struct {
	Campaigns   ports.CampaignRepository
	Engagements ports.EngagementRepository
	Audit       ports.AuditRecorder
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

// Execute copies an engagement onto its own campaign with a fresh id and
// assigned status. The campaign total is re-read and recomputed before the
// conditional write so a concurrent clone cannot lose the update.
func (uc CloneEngagementUseCase) Execute(ctx context.Context, cmd CloneEngagementCommand) (entities.Engagement, error) {
	source, err := uc.Engagements.GetEngagement(ctx, strings.TrimSpace(cmd.EngagementID))
	if err != nil {
		return entities.Engagement{}, err
	}
	campaign, err := uc.Campaigns.GetCampaign(ctx, source.CampaignID)
	if err != nil {
		return entities.Engagement{}, err
	}
	if campaign.IsCompleted() {
		return entities.Engagement{}, domainerrors.ErrCampaignCompleted
	}

	now := uc.Clock.Now().UTC()
	engagementID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Engagement{}, err
	}

	clone := entities.Engagement{
		EngagementID: engagementID,
		CampaignID:   source.CampaignID,
		InfluencerID: source.InfluencerID,
		Price:        source.Price,
		Deliverables: source.Deliverables,
		Status:       entities.EngagementStatusAssigned,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.Engagements.CreateEngagement(ctx, clone); err != nil {
		return entities.Engagement{}, err
	}

	// re-read so the total reflects every engagement, not a stale sum
	engagements, err := uc.Engagements.ListEngagementsByCampaign(ctx, campaign.CampaignID)
	if err != nil {
		return entities.Engagement{}, err
	}
	total := entities.CampaignTotal(engagements)
	// write only the total; approved and status belong to other flows
	if err := uc.Campaigns.UpdateCampaignTotal(ctx, campaign.CampaignID, total, now); err != nil {
		return entities.Engagement{}, err
	}
	campaign, err = uc.Campaigns.GetCampaign(ctx, campaign.CampaignID)
	if err != nil {
		return entities.Engagement{}, err
	}

	recordAudit(ctx, uc.Audit, uc.Logger, cmd.Actor, ports.AuditEntry{
		Action:     "clone",
		EntityType: "CampaignInfluencer",
		EntityID:   clone.EngagementID,
		NewValue:   engagementSnapshot(clone),
	})
	recordAudit(ctx, uc.Audit, uc.Logger, cmd.Actor, ports.AuditEntry{
		Action:     "update",
		EntityType: "Campaign",
		EntityID:   campaign.CampaignID,
		EntityName: campaign.Name,
		NewValue:   campaignSnapshot(campaign),
	})

	application.ResolveLogger(uc.Logger).Info("engagement cloned",
		"event", "engagement_cloned",
		"module", "campaign-ops/engagement-service",
		"layer", "application",
		"engagement_id", clone.EngagementID,
		"source_engagement_id", source.EngagementID,
		"campaign_id", campaign.CampaignID,
		"total_amount", campaign.TotalAmount,
	)
	return clone, nil
}
