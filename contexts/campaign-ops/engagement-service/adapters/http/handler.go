package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"backstage/contexts/campaign-ops/engagement-service/application/commands"
	"backstage/contexts/campaign-ops/engagement-service/application/queries"
	"backstage/contexts/campaign-ops/engagement-service/domain/entities"
	httptransport "backstage/contexts/campaign-ops/engagement-service/transport/http"
)

type Handler struct {
	CreateCampaign   commands.CreateCampaignUseCase
	ChangeStatus     commands.ChangeEngagementStatusUseCase
	CloneEngagement  commands.CloneEngagementUseCase
	CreateSubmission commands.CreateSubmissionUseCase
	ReviewSubmission commands.ReviewSubmissionUseCase
	GetCampaign      queries.GetCampaignUseCase
	ListCampaigns    queries.ListCampaignsUseCase
	ListSubmissions  queries.ListSubmissionsUseCase
	Logger           *slog.Logger
}

func (h Handler) CreateCampaignHandler(
	ctx context.Context,
	actor commands.Actor,
	req httptransport.CreateCampaignRequest,
) (httptransport.CampaignResponse, error) {
	engagements := make([]commands.EngagementInput, 0, len(req.Engagements))
	for _, item := range req.Engagements {
		engagements = append(engagements, commands.EngagementInput{
			InfluencerID: item.InfluencerID,
			Price:        item.Price,
			Deliverables: item.Deliverables,
		})
	}
	result, err := h.CreateCampaign.Execute(ctx, commands.CreateCampaignCommand{
		Actor:       actor,
		BrandID:     req.BrandID,
		Name:        req.Name,
		Engagements: engagements,
	})
	if err != nil {
		return httptransport.CampaignResponse{}, err
	}
	return mapCampaignResponse(result.Campaign, result.Engagements), nil
}

func (h Handler) GetCampaignHandler(ctx context.Context, campaignID string) (httptransport.CampaignResponse, error) {
	result, err := h.GetCampaign.Execute(ctx, campaignID)
	if err != nil {
		return httptransport.CampaignResponse{}, err
	}
	return mapCampaignResponse(result.Campaign, result.Engagements), nil
}

func (h Handler) ListCampaignsHandler(
	ctx context.Context,
	brandID string,
	status string,
) (httptransport.ListCampaignsResponse, error) {
	items, err := h.ListCampaigns.Execute(ctx, queries.ListCampaignsQuery{
		BrandID: brandID,
		Status:  status,
	})
	if err != nil {
		return httptransport.ListCampaignsResponse{}, err
	}
	result := make([]httptransport.CampaignDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapCampaign(item))
	}
	return httptransport.ListCampaignsResponse{Items: result}, nil
}

func (h Handler) ChangeEngagementStatusHandler(
	ctx context.Context,
	actor commands.Actor,
	engagementID string,
	req httptransport.ChangeEngagementStatusRequest,
) (httptransport.EngagementResponse, error) {
	engagement, err := h.ChangeStatus.Execute(ctx, commands.ChangeEngagementStatusCommand{
		Actor:        actor,
		EngagementID: engagementID,
		Status:       req.Status,
	})
	if err != nil {
		return httptransport.EngagementResponse{}, err
	}
	return httptransport.EngagementResponse{Engagement: mapEngagement(engagement)}, nil
}

func (h Handler) CloneEngagementHandler(
	ctx context.Context,
	actor commands.Actor,
	engagementID string,
) (httptransport.EngagementResponse, error) {
	engagement, err := h.CloneEngagement.Execute(ctx, commands.CloneEngagementCommand{
		Actor:        actor,
		EngagementID: engagementID,
	})
	if err != nil {
		return httptransport.EngagementResponse{}, err
	}
	return httptransport.EngagementResponse{Engagement: mapEngagement(engagement)}, nil
}

func (h Handler) CreateSubmissionHandler(
	ctx context.Context,
	actor commands.Actor,
	engagementID string,
	req httptransport.CreateSubmissionRequest,
) (httptransport.SubmissionResponse, error) {
	result, err := h.CreateSubmission.Execute(ctx, commands.CreateSubmissionCommand{
		Actor:        actor,
		EngagementID: engagementID,
		FileRef:      req.FileRef,
	})
	if err != nil {
		return httptransport.SubmissionResponse{}, err
	}
	return httptransport.SubmissionResponse{
		Submission: mapSubmission(result.Submission),
		Engagement: mapEngagement(result.Engagement),
	}, nil
}

func (h Handler) ReviewSubmissionHandler(
	ctx context.Context,
	actor commands.Actor,
	submissionID string,
	req httptransport.ReviewSubmissionRequest,
) (httptransport.SubmissionResponse, error) {
	result, err := h.ReviewSubmission.Execute(ctx, commands.ReviewSubmissionCommand{
		Actor:        actor,
		SubmissionID: submissionID,
		Decision:     req.Decision,
		Feedback:     req.Feedback,
	})
	if err != nil {
		return httptransport.SubmissionResponse{}, err
	}
	return httptransport.SubmissionResponse{
		Submission: mapSubmission(result.Submission),
		Engagement: mapEngagement(result.Engagement),
	}, nil
}

func (h Handler) ListSubmissionsHandler(ctx context.Context, engagementID string) (httptransport.ListSubmissionsResponse, error) {
	items, err := h.ListSubmissions.Execute(ctx, engagementID)
	if err != nil {
		return httptransport.ListSubmissionsResponse{}, err
	}
	result := make([]httptransport.ContentSubmissionDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapSubmission(item))
	}
	return httptransport.ListSubmissionsResponse{Items: result}, nil
}

func mapCampaignResponse(campaign entities.Campaign, engagements []entities.Engagement) httptransport.CampaignResponse {
	items := make([]httptransport.EngagementDTO, 0, len(engagements))
	for _, item := range engagements {
		items = append(items, mapEngagement(item))
	}
	return httptransport.CampaignResponse{
		Campaign:    mapCampaign(campaign),
		Engagements: items,
	}
}

func mapCampaign(item entities.Campaign) httptransport.CampaignDTO {
	return httptransport.CampaignDTO{
		CampaignID:   item.CampaignID,
		BrandID:      item.BrandID,
		Name:         item.Name,
		TotalAmount:  item.TotalAmount,
		Status:       string(item.Status),
		Approved:     item.Approved,
		ApprovalNote: item.ApprovalNote,
		CreatedAt:    item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func mapEngagement(item entities.Engagement) httptransport.EngagementDTO {
	return httptransport.EngagementDTO{
		EngagementID: item.EngagementID,
		CampaignID:   item.CampaignID,
		InfluencerID: item.InfluencerID,
		Price:        item.Price,
		Deliverables: item.Deliverables,
		Status:       string(item.Status),
		CreatedAt:    item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func mapSubmission(item entities.ContentSubmission) httptransport.ContentSubmissionDTO {
	dto := httptransport.ContentSubmissionDTO{
		SubmissionID: item.SubmissionID,
		EngagementID: item.EngagementID,
		FileRef:      item.FileRef,
		Status:       string(item.Status),
		Feedback:     item.Feedback,
		SubmittedAt:  item.SubmittedAt.UTC().Format(time.RFC3339),
		ReviewedBy:   item.ReviewedBy,
	}
	if item.ReviewedAt != nil {
		dto.ReviewedAt = item.ReviewedAt.UTC().Format(time.RFC3339)
	}
	return dto
}
