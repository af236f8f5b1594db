package queries

import (
	"context"
	"log/slog"
	"strings"

	"backstage/contexts/campaign-ops/engagement-service/domain/entities"
	domainerrors "backstage/contexts/campaign-ops/engagement-service/domain/errors"
	"backstage/contexts/campaign-ops/engagement-service/ports"
)

type ListCampaignsQuery struct {
	BrandID string
	Status  string
}

type ListCampaignsUseCase struct {
	Campaigns ports.CampaignRepository
	Logger    *slog.Logger
}

func (uc ListCampaignsUseCase) Execute(ctx context.Context, query ListCampaignsQuery) ([]entities.Campaign, error) {
	status := entities.CampaignStatus(strings.TrimSpace(query.Status))
	if status != "" && !entities.IsSupportedCampaignStatus(status) {
		return nil, domainerrors.ErrInvalidCampaignInput
	}
	return uc.Campaigns.ListCampaigns(ctx, ports.CampaignFilter{
		BrandID: strings.TrimSpace(query.BrandID),
		Status:  status,
	})
}
