package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	approvalservice "backstage/contexts/campaign-ops/approval-service"
	approvalapp "backstage/contexts/campaign-ops/approval-service/application"
	approvalerrors "backstage/contexts/campaign-ops/approval-service/domain/errors"
	approvalports "backstage/contexts/campaign-ops/approval-service/ports"
	approvalhttp "backstage/contexts/campaign-ops/approval-service/transport/http"
	engagementservice "backstage/contexts/campaign-ops/engagement-service"
	engagementmemory "backstage/contexts/campaign-ops/engagement-service/adapters/memory"
	"backstage/contexts/campaign-ops/engagement-service/application/commands"
	engagementhttp "backstage/contexts/campaign-ops/engagement-service/transport/http"
	settlementledger "backstage/contexts/finance-core/settlement-ledger"
	ledgerapp "backstage/contexts/finance-core/settlement-ledger/application"
	ledgerhttp "backstage/contexts/finance-core/settlement-ledger/transport/http"
)

type campaignGateway struct {
	store *engagementmemory.Store
}

func (g campaignGateway) GetCampaign(ctx context.Context, campaignID string) (approvalports.CampaignView, error) {
	campaign, err := g.store.GetCampaign(ctx, campaignID)
	if err != nil {
		return approvalports.CampaignView{}, approvalerrors.ErrCampaignNotFound
	}
	return approvalports.CampaignView{
		CampaignID:   campaign.CampaignID,
		BrandID:      campaign.BrandID,
		Name:         campaign.Name,
		TotalAmount:  campaign.TotalAmount,
		Status:       string(campaign.Status),
		Approved:     campaign.Approved,
		ApprovalNote: campaign.ApprovalNote,
	}, nil
}

func (g campaignGateway) MarkApproved(ctx context.Context, campaignID string, note string, approvedAt time.Time) error {
	campaign, err := g.store.GetCampaign(ctx, campaignID)
	if err != nil {
		return approvalerrors.ErrCampaignNotFound
	}
	campaign.Approved = true
	campaign.ApprovalNote = note
	campaign.UpdatedAt = approvedAt
	return g.store.UpdateCampaign(ctx, campaign)
}

func TestCampaignLifecycleFromAssignmentToPosted(t *testing.T) {
	engagement := engagementservice.NewInMemoryModule(nil, nil)
	approval := approvalservice.NewInMemoryModule(campaignGateway{store: engagement.Store}, nil)

	admin := commands.Actor{ActorID: "admin-1", Role: "admin"}
	created, err := engagement.Handler.CreateCampaignHandler(context.Background(), admin, engagementhttp.CreateCampaignRequest{
		BrandID: "brand-1",
		Name:    "Spring Launch",
		Engagements: []engagementhttp.EngagementRequest{
			{InfluencerID: "inf-1", Price: 3000, Deliverables: "1 reel"},
			{InfluencerID: "inf-2", Price: 2000},
		},
	})
	if err != nil {
		t.Fatalf("create campaign failed: %v", err)
	}
	if created.Campaign.TotalAmount != 5000 {
		t.Fatalf("expected total 5000, got %v", created.Campaign.TotalAmount)
	}

	approved, err := approval.Handler.ApproveCampaignHandler(
		context.Background(),
		approvalapp.Actor{ActorID: "admin-1", Role: "admin"},
		created.Campaign.CampaignID,
		approvalhttp.ApproveCampaignRequest{Note: "budget confirmed"},
	)
	if err != nil {
		t.Fatalf("approve campaign failed: %v", err)
	}
	if !approved.Campaign.Approved {
		t.Fatalf("expected approved campaign")
	}

	engagementID := created.Engagements[0].EngagementID
	submitted, err := engagement.Handler.CreateSubmissionHandler(context.Background(), admin, engagementID, engagementhttp.CreateSubmissionRequest{
		FileRef: "s3://content/v1.mp4",
	})
	if err != nil {
		t.Fatalf("submission failed: %v", err)
	}
	if submitted.Engagement.Status != "content_submitted" {
		t.Fatalf("expected content_submitted, got %s", submitted.Engagement.Status)
	}

	reviewed, err := engagement.Handler.ReviewSubmissionHandler(context.Background(), admin, submitted.Submission.SubmissionID, engagementhttp.ReviewSubmissionRequest{
		Decision: "approved",
	})
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if reviewed.Engagement.Status != "approved" {
		t.Fatalf("expected approved engagement, got %s", reviewed.Engagement.Status)
	}

	posted, err := engagement.Handler.ChangeEngagementStatusHandler(context.Background(), admin, engagementID, engagementhttp.ChangeEngagementStatusRequest{
		Status: "posted",
	})
	if err != nil {
		t.Fatalf("status change failed: %v", err)
	}
	if posted.Engagement.Status != "posted" {
		t.Fatalf("expected posted, got %s", posted.Engagement.Status)
	}
}

func TestApprovalChainGatesHighValueCampaigns(t *testing.T) {
	engagement := engagementservice.NewInMemoryModule(nil, nil)
	approval := approvalservice.NewInMemoryModule(campaignGateway{store: engagement.Store}, nil)

	created, err := engagement.Handler.CreateCampaignHandler(context.Background(), commands.Actor{ActorID: "admin-1", Role: "admin"}, engagementhttp.CreateCampaignRequest{
		BrandID: "brand-1",
		Name:    "Flagship Deal",
		Engagements: []engagementhttp.EngagementRequest{
			{InfluencerID: "inf-1", Price: 150000},
		},
	})
	if err != nil {
		t.Fatalf("create campaign failed: %v", err)
	}

	superAdmin := approvalapp.Actor{ActorID: "su-1", Role: "super_admin"}
	if _, err := approval.Handler.CreateChainHandler(context.Background(), superAdmin, approvalhttp.CreateChainRequest{
		EntityType:    "Campaign",
		Threshold:     100000,
		RequiredRoles: []string{"super_admin"},
	}); err != nil {
		t.Fatalf("create chain failed: %v", err)
	}

	_, err = approval.Handler.ApproveCampaignHandler(
		context.Background(),
		approvalapp.Actor{ActorID: "admin-1", Role: "admin"},
		created.Campaign.CampaignID,
		approvalhttp.ApproveCampaignRequest{},
	)
	if !errors.Is(err, approvalerrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for admin, got %v", err)
	}

	approved, err := approval.Handler.ApproveCampaignHandler(
		context.Background(),
		superAdmin,
		created.Campaign.CampaignID,
		approvalhttp.ApproveCampaignRequest{},
	)
	if err != nil {
		t.Fatalf("super_admin approve failed: %v", err)
	}
	if !approved.Campaign.Approved {
		t.Fatalf("expected approved campaign")
	}
}

func TestManualTransactionSettlementPair(t *testing.T) {
	ledger := settlementledger.NewInMemoryModule(nil, nil)

	admin := ledgerapp.Actor{ActorID: "admin-1", Role: "admin"}
	created, err := ledger.Handler.CreateManualTransactionHandler(context.Background(), admin, ledgerhttp.ManualTransactionRequest{
		InfluencerID:   "inf-1",
		InfluencerName: "Creator One",
		BrandID:        "brand-1",
		BrandName:      "Acme",
		TotalAmount:    10000,
		PayoutAmount:   7000,
	})
	if err != nil {
		t.Fatalf("create manual transaction failed: %v", err)
	}
	if created.Transaction.Profit != 3000 || created.Transaction.Margin != 30 {
		t.Fatalf("unexpected derived amounts: %+v", created.Transaction)
	}
	if len(created.Payments) != 2 {
		t.Fatalf("expected a payment pair, got %d", len(created.Payments))
	}

	if err := ledger.Handler.DeleteManualTransactionHandler(context.Background(), admin, created.Transaction.TransactionID); err != nil {
		t.Fatalf("delete manual transaction failed: %v", err)
	}
	remaining, err := ledger.Handler.ListPaymentsHandler(context.Background(), "", "", "")
	if err != nil {
		t.Fatalf("list payments failed: %v", err)
	}
	if len(remaining.Items) != 0 {
		t.Fatalf("expected settlement pair removed, got %d payments", len(remaining.Items))
	}
}
