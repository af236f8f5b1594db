package queries

import (
	"context"
	"log/slog"
	"strings"

	"backstage/contexts/campaign-ops/engagement-service/domain/entities"
	"backstage/contexts/campaign-ops/engagement-service/ports"
)

type GetCampaignUseCase struct {
	Campaigns   ports.CampaignRepository
	Engagements ports.EngagementRepository
	Logger      *slog.Logger
}

type GetCampaignResult struct {
	Campaign    entities.Campaign
	Engagements []entities.Engagement
}

func (uc GetCampaignUseCase) Execute(ctx context.Context, campaignID string) (GetCampaignResult, error) {
	campaign, err := uc.Campaigns.GetCampaign(ctx, strings.TrimSpace(campaignID))
	if err != nil {
		return GetCampaignResult{}, err
	}
	engagements, err := uc.Engagements.ListEngagementsByCampaign(ctx, campaign.CampaignID)
	if err != nil {
		return GetCampaignResult{}, err
	}
	return GetCampaignResult{Campaign: campaign, Engagements: engagements}, nil
}
