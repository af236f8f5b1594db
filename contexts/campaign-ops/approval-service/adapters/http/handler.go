package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"backstage/contexts/campaign-ops/approval-service/application"
	"backstage/contexts/campaign-ops/approval-service/domain/entities"
	"backstage/contexts/campaign-ops/approval-service/ports"
	httptransport "backstage/contexts/campaign-ops/approval-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) ApproveCampaignHandler(
	ctx context.Context,
	actor application.Actor,
	campaignID string,
	req httptransport.ApproveCampaignRequest,
) (httptransport.ApproveCampaignResponse, error) {
	campaign, err := h.Service.ApproveCampaign(ctx, actor, application.ApproveCampaignInput{
		CampaignID: campaignID,
		Note:       req.Note,
	})
	if err != nil {
		return httptransport.ApproveCampaignResponse{}, err
	}
	return httptransport.ApproveCampaignResponse{Campaign: mapCampaign(campaign)}, nil
}

func (h Handler) CreateChainHandler(
	ctx context.Context,
	actor application.Actor,
	req httptransport.CreateChainRequest,
) (httptransport.ApprovalChainResponse, error) {
	chain, err := h.Service.CreateChain(ctx, actor, application.ChainInput{
		EntityType:    req.EntityType,
		Threshold:     req.Threshold,
		RequiredRoles: req.RequiredRoles,
	})
	if err != nil {
		return httptransport.ApprovalChainResponse{}, err
	}
	return httptransport.ApprovalChainResponse{Chain: mapChain(chain)}, nil
}

func (h Handler) DeleteChainHandler(ctx context.Context, actor application.Actor, chainID string) error {
	return h.Service.DeleteChain(ctx, actor, chainID)
}

func (h Handler) ListChainsHandler(ctx context.Context) (httptransport.ListApprovalChainsResponse, error) {
	items, err := h.Service.ListChains(ctx)
	if err != nil {
		return httptransport.ListApprovalChainsResponse{}, err
	}
	result := make([]httptransport.ApprovalChainDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapChain(item))
	}
	return httptransport.ListApprovalChainsResponse{Items: result}, nil
}

func mapCampaign(view ports.CampaignView) httptransport.CampaignApprovalDTO {
	return httptransport.CampaignApprovalDTO{
		CampaignID:   view.CampaignID,
		Name:         view.Name,
		TotalAmount:  view.TotalAmount,
		Status:       view.Status,
		Approved:     view.Approved,
		ApprovalNote: view.ApprovalNote,
	}
}

func mapChain(item entities.ApprovalChain) httptransport.ApprovalChainDTO {
	return httptransport.ApprovalChainDTO{
		ChainID:       item.ChainID,
		EntityType:    item.EntityType,
		Threshold:     item.Threshold,
		RequiredRoles: item.RequiredRoles,
		Active:        item.Active,
		CreatedAt:     item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
