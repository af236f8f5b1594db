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

type EngagementInput struct {
	InfluencerID string
	Price        float64
	Deliverables string
}

type CreateCampaignCommand struct {
	Actor       Actor
	BrandID     string
	Name        string
	Engagements []EngagementInput
}

type CreateCampaignUseCase struct {
	Campaigns    ports.CampaignRepository
	Capabilities ports.CapabilityResolver
	Audit        ports.AuditRecorder
	Clock        ports.Clock
	IDGen        ports.IDGenerator
	Logger       *slog.Logger
}

type CreateCampaignResult struct {
	Campaign    entities.Campaign
	Engagements []entities.Engagement
}

// Execute creates a draft campaign together with its engagements. The
// campaign total is derived from the engagement prices.
func (uc CreateCampaignUseCase) Execute(ctx context.Context, cmd CreateCampaignCommand) (CreateCampaignResult, error) {
	if uc.Capabilities == nil || !uc.Capabilities.HasCapability(cmd.Actor.Role, CapabilityCampaignCreate) {
		return CreateCampaignResult{}, domainerrors.ErrUnauthorized
	}
	if len(cmd.Engagements) == 0 {
		return CreateCampaignResult{}, domainerrors.ErrInvalidCampaignInput
	}

	now := uc.Clock.Now().UTC()
	campaignID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return CreateCampaignResult{}, err
	}

	engagements := make([]entities.Engagement, 0, len(cmd.Engagements))
	for _, item := range cmd.Engagements {
		if strings.TrimSpace(item.InfluencerID) == "" || item.Price < 0 {
			return CreateCampaignResult{}, domainerrors.ErrInvalidEngagementInput
		}
		engagementID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return CreateCampaignResult{}, err
		}
		engagements = append(engagements, entities.Engagement{
			EngagementID: engagementID,
			CampaignID:   campaignID,
			InfluencerID: strings.TrimSpace(item.InfluencerID),
			Price:        item.Price,
			Deliverables: strings.TrimSpace(item.Deliverables),
			Status:       entities.EngagementStatusAssigned,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	campaign := entities.Campaign{
		CampaignID:  campaignID,
		BrandID:     strings.TrimSpace(cmd.BrandID),
		Name:        strings.TrimSpace(cmd.Name),
		TotalAmount: entities.CampaignTotal(engagements),
		Status:      entities.CampaignStatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if !campaign.ValidateBasics() {
		return CreateCampaignResult{}, domainerrors.ErrInvalidCampaignInput
	}

	if err := uc.Campaigns.CreateCampaign(ctx, campaign, engagements); err != nil {
		return CreateCampaignResult{}, err
	}
	recordAudit(ctx, uc.Audit, uc.Logger, cmd.Actor, ports.AuditEntry{
		Action:     "create",
		EntityType: "Campaign",
		EntityID:   campaign.CampaignID,
		EntityName: campaign.Name,
		NewValue:   campaignSnapshot(campaign),
	})

	application.ResolveLogger(uc.Logger).Info("campaign created",
		"event", "campaign_created",
		"module", "campaign-ops/engagement-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"brand_id", campaign.BrandID,
		"engagements", len(engagements),
		"total_amount", campaign.TotalAmount,
	)
	return CreateCampaignResult{Campaign: campaign, Engagements: engagements}, nil
}
