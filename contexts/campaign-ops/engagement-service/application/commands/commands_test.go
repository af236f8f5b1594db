package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"backstage/contexts/campaign-ops/engagement-service/adapters/memory"
	"backstage/contexts/campaign-ops/engagement-service/domain/entities"
	domainerrors "backstage/contexts/campaign-ops/engagement-service/domain/errors"
	"backstage/internal/shared/capabilities"
)

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time { return f.now }

func adminActor() Actor {
	return Actor{ActorID: "admin-1", Role: "admin"}
}

func testClock() fixedClock {
	return fixedClock{now: time.Date(2026, time.April, 2, 10, 0, 0, 0, time.UTC)}
}

func createTestCampaign(t *testing.T, store *memory.Store, prices ...float64) CreateCampaignResult {
	t.Helper()

	uc := CreateCampaignUseCase{
		Campaigns:    store,
		Capabilities: capabilities.NewDefaultResolver(),
		Audit:        store,
		Clock:        testClock(),
		IDGen:        store,
	}
	engagements := make([]EngagementInput, 0, len(prices))
	for _, price := range prices {
		engagements = append(engagements, EngagementInput{
			InfluencerID: "inf-1",
			Price:        price,
		})
	}
	result, err := uc.Execute(context.Background(), CreateCampaignCommand{
		Actor:       adminActor(),
		BrandID:     "brand-1",
		Name:        "Spring Launch",
		Engagements: engagements,
	})
	if err != nil {
		t.Fatalf("create campaign failed: %v", err)
	}
	return result
}

func TestCreateCampaignDerivesTotalFromEngagements(t *testing.T) {
	store := memory.NewStore(nil)
	result := createTestCampaign(t, store, 3000, 2000)

	if result.Campaign.TotalAmount != 5000 {
		t.Fatalf("expected total 5000, got %v", result.Campaign.TotalAmount)
	}
	if result.Campaign.Status != entities.CampaignStatusDraft {
		t.Fatalf("expected draft status, got %s", result.Campaign.Status)
	}
	if result.Campaign.Approved {
		t.Fatalf("new campaign must not be approved")
	}
	for _, engagement := range result.Engagements {
		if engagement.Status != entities.EngagementStatusAssigned {
			t.Fatalf("expected assigned engagement, got %s", engagement.Status)
		}
	}
}

func TestCreateCampaignRequiresCapability(t *testing.T) {
	store := memory.NewStore(nil)
	uc := CreateCampaignUseCase{
		Campaigns:    store,
		Capabilities: capabilities.NewDefaultResolver(),
		Audit:        store,
		Clock:        testClock(),
		IDGen:        store,
	}

	_, err := uc.Execute(context.Background(), CreateCampaignCommand{
		Actor:   Actor{ActorID: "viewer-1", Role: "viewer"},
		BrandID: "brand-1",
		Name:    "Spring Launch",
		Engagements: []EngagementInput{
			{InfluencerID: "inf-1", Price: 100},
		},
	})
	if !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestCreateCampaignRequiresEngagements(t *testing.T) {
	store := memory.NewStore(nil)
	uc := CreateCampaignUseCase{
		Campaigns:    store,
		Capabilities: capabilities.NewDefaultResolver(),
		Audit:        store,
		Clock:        testClock(),
		IDGen:        store,
	}

	_, err := uc.Execute(context.Background(), CreateCampaignCommand{
		Actor:   adminActor(),
		BrandID: "brand-1",
		Name:    "Spring Launch",
	})
	if !errors.Is(err, domainerrors.ErrInvalidCampaignInput) {
		t.Fatalf("expected ErrInvalidCampaignInput, got %v", err)
	}
}

func TestChangeEngagementStatusRejectsUnknownValue(t *testing.T) {
	store := memory.NewStore(nil)
	created := createTestCampaign(t, store, 1000)

	uc := ChangeEngagementStatusUseCase{
		Campaigns:   store,
		Engagements: store,
		Audit:       store,
		Clock:       testClock(),
	}
	_, err := uc.Execute(context.Background(), ChangeEngagementStatusCommand{
		Actor:        adminActor(),
		EngagementID: created.Engagements[0].EngagementID,
		Status:       "archived",
	})
	if !errors.Is(err, domainerrors.ErrUnknownEngagementStatus) {
		t.Fatalf("expected ErrUnknownEngagementStatus, got %v", err)
	}
}

func TestChangeEngagementStatusAllowsDirectJumpToPosted(t *testing.T) {
	store := memory.NewStore(nil)
	created := createTestCampaign(t, store, 1000)

	uc := ChangeEngagementStatusUseCase{
		Campaigns:   store,
		Engagements: store,
		Audit:       store,
		Clock:       testClock(),
	}
	engagement, err := uc.Execute(context.Background(), ChangeEngagementStatusCommand{
		Actor:        adminActor(),
		EngagementID: created.Engagements[0].EngagementID,
		Status:       "posted",
	})
	if err != nil {
		t.Fatalf("status change failed: %v", err)
	}
	if engagement.Status != entities.EngagementStatusPosted {
		t.Fatalf("expected posted, got %s", engagement.Status)
	}
}

func TestChangeEngagementStatusRejectsCompletedCampaign(t *testing.T) {
	store := memory.NewStore(nil)
	created := createTestCampaign(t, store, 1000)

	campaign := created.Campaign
	campaign.Status = entities.CampaignStatusCompleted
	if err := store.UpdateCampaign(context.Background(), campaign); err != nil {
		t.Fatalf("seed update failed: %v", err)
	}

	uc := ChangeEngagementStatusUseCase{
		Campaigns:   store,
		Engagements: store,
		Audit:       store,
		Clock:       testClock(),
	}
	_, err := uc.Execute(context.Background(), ChangeEngagementStatusCommand{
		Actor:        adminActor(),
		EngagementID: created.Engagements[0].EngagementID,
		Status:       "approved",
	})
	if !errors.Is(err, domainerrors.ErrCampaignCompleted) {
		t.Fatalf("expected ErrCampaignCompleted, got %v", err)
	}
}

func TestCreateSubmissionAdvancesAssignedEngagement(t *testing.T) {
	store := memory.NewStore(nil)
	created := createTestCampaign(t, store, 1000)

	uc := CreateSubmissionUseCase{
		Engagements: store,
		Submissions: store,
		Audit:       store,
		Clock:       testClock(),
		IDGen:       store,
	}
	result, err := uc.Execute(context.Background(), CreateSubmissionCommand{
		Actor:        adminActor(),
		EngagementID: created.Engagements[0].EngagementID,
		FileRef:      "s3://content/v1.mp4",
	})
	if err != nil {
		t.Fatalf("submission failed: %v", err)
	}
	if result.Submission.Status != entities.SubmissionStatusPending {
		t.Fatalf("expected pending submission, got %s", result.Submission.Status)
	}
	if result.Engagement.Status != entities.EngagementStatusContentSubmitted {
		t.Fatalf("expected content_submitted, got %s", result.Engagement.Status)
	}
}

func TestCreateSubmissionRejectsClosedEngagement(t *testing.T) {
	store := memory.NewStore(nil)
	created := createTestCampaign(t, store, 1000)

	engagement := created.Engagements[0]
	engagement.Status = entities.EngagementStatusPosted
	if err := store.UpdateEngagement(context.Background(), engagement); err != nil {
		t.Fatalf("seed update failed: %v", err)
	}

	uc := CreateSubmissionUseCase{
		Engagements: store,
		Submissions: store,
		Audit:       store,
		Clock:       testClock(),
		IDGen:       store,
	}
	_, err := uc.Execute(context.Background(), CreateSubmissionCommand{
		Actor:        adminActor(),
		EngagementID: engagement.EngagementID,
		FileRef:      "s3://content/v1.mp4",
	})
	if !errors.Is(err, domainerrors.ErrEngagementClosed) {
		t.Fatalf("expected ErrEngagementClosed, got %v", err)
	}
}

func TestReviewApprovalAdvancesEngagement(t *testing.T) {
	store := memory.NewStore(nil)
	created := createTestCampaign(t, store, 1000)

	submit := CreateSubmissionUseCase{
		Engagements: store,
		Submissions: store,
		Audit:       store,
		Clock:       testClock(),
		IDGen:       store,
	}
	submitted, err := submit.Execute(context.Background(), CreateSubmissionCommand{
		Actor:        adminActor(),
		EngagementID: created.Engagements[0].EngagementID,
		FileRef:      "s3://content/v1.mp4",
	})
	if err != nil {
		t.Fatalf("submission failed: %v", err)
	}

	review := ReviewSubmissionUseCase{
		Engagements: store,
		Submissions: store,
		Audit:       store,
		Clock:       testClock(),
	}
	result, err := review.Execute(context.Background(), ReviewSubmissionCommand{
		Actor:        adminActor(),
		SubmissionID: submitted.Submission.SubmissionID,
		Decision:     "approved",
		Feedback:     "looks great",
	})
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if result.Submission.Status != entities.SubmissionStatusApproved {
		t.Fatalf("expected approved submission, got %s", result.Submission.Status)
	}
	if result.Engagement.Status != entities.EngagementStatusApproved {
		t.Fatalf("expected approved engagement, got %s", result.Engagement.Status)
	}
	if result.Submission.ReviewedAt == nil || result.Submission.ReviewedBy != "admin-1" {
		t.Fatalf("expected review metadata, got %+v", result.Submission)
	}
}

func TestReviewRejectionKeepsEngagementOpenForResubmission(t *testing.T) {
	store := memory.NewStore(nil)
	created := createTestCampaign(t, store, 1000)

	submit := CreateSubmissionUseCase{
		Engagements: store,
		Submissions: store,
		Audit:       store,
		Clock:       testClock(),
		IDGen:       store,
	}
	first, err := submit.Execute(context.Background(), CreateSubmissionCommand{
		Actor:        adminActor(),
		EngagementID: created.Engagements[0].EngagementID,
		FileRef:      "s3://content/v1.mp4",
	})
	if err != nil {
		t.Fatalf("submission failed: %v", err)
	}

	review := ReviewSubmissionUseCase{
		Engagements: store,
		Submissions: store,
		Audit:       store,
		Clock:       testClock(),
	}
	rejected, err := review.Execute(context.Background(), ReviewSubmissionCommand{
		Actor:        adminActor(),
		SubmissionID: first.Submission.SubmissionID,
		Decision:     "rejected",
		Feedback:     "wrong aspect ratio",
	})
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if rejected.Engagement.Status != entities.EngagementStatusContentSubmitted {
		t.Fatalf("rejection must not move the engagement, got %s", rejected.Engagement.Status)
	}

	second, err := submit.Execute(context.Background(), CreateSubmissionCommand{
		Actor:        adminActor(),
		EngagementID: created.Engagements[0].EngagementID,
		FileRef:      "s3://content/v2.mp4",
	})
	if err != nil {
		t.Fatalf("resubmission failed: %v", err)
	}
	if second.Engagement.Status != entities.EngagementStatusContentSubmitted {
		t.Fatalf("resubmission must not move the engagement, got %s", second.Engagement.Status)
	}
}

func TestReviewRequiresPendingSubmission(t *testing.T) {
	store := memory.NewStore(nil)
	created := createTestCampaign(t, store, 1000)

	submit := CreateSubmissionUseCase{
		Engagements: store,
		Submissions: store,
		Audit:       store,
		Clock:       testClock(),
		IDGen:       store,
	}
	submitted, err := submit.Execute(context.Background(), CreateSubmissionCommand{
		Actor:        adminActor(),
		EngagementID: created.Engagements[0].EngagementID,
		FileRef:      "s3://content/v1.mp4",
	})
	if err != nil {
		t.Fatalf("submission failed: %v", err)
	}

	review := ReviewSubmissionUseCase{
		Engagements: store,
		Submissions: store,
		Audit:       store,
		Clock:       testClock(),
	}
	if _, err := review.Execute(context.Background(), ReviewSubmissionCommand{
		Actor:        adminActor(),
		SubmissionID: submitted.Submission.SubmissionID,
		Decision:     "approved",
	}); err != nil {
		t.Fatalf("first review failed: %v", err)
	}

	_, err = review.Execute(context.Background(), ReviewSubmissionCommand{
		Actor:        adminActor(),
		SubmissionID: submitted.Submission.SubmissionID,
		Decision:     "rejected",
	})
	if !errors.Is(err, domainerrors.ErrSubmissionAlreadyDecided) {
		t.Fatalf("expected ErrSubmissionAlreadyDecided, got %v", err)
	}
}

func TestCloneEngagementRecomputesCampaignTotal(t *testing.T) {
	store := memory.NewStore(nil)
	created := createTestCampaign(t, store, 3000, 2000)

	uc := CloneEngagementUseCase{
		Campaigns:   store,
		Engagements: store,
		Audit:       store,
		Clock:       testClock(),
		IDGen:       store,
	}
	clone, err := uc.Execute(context.Background(), CloneEngagementCommand{
		Actor:        adminActor(),
		EngagementID: created.Engagements[0].EngagementID,
	})
	if err != nil {
		t.Fatalf("clone failed: %v", err)
	}
	if clone.Status != entities.EngagementStatusAssigned {
		t.Fatalf("clone must start assigned, got %s", clone.Status)
	}
	if clone.EngagementID == created.Engagements[0].EngagementID {
		t.Fatalf("clone must get a fresh id")
	}

	campaign, err := store.GetCampaign(context.Background(), created.Campaign.CampaignID)
	if err != nil {
		t.Fatalf("get campaign failed: %v", err)
	}
	if campaign.TotalAmount != 8000 {
		t.Fatalf("expected recomputed total 8000, got %v", campaign.TotalAmount)
	}
}

// approvingEngagementRepo marks the campaign approved while the clone flow
// is listing engagements, simulating an approval landing mid-operation.
type approvingEngagementRepo struct {
	*memory.Store
	campaignID string
}

func (r approvingEngagementRepo) ListEngagementsByCampaign(ctx context.Context, campaignID string) ([]entities.Engagement, error) {
	campaign, err := r.Store.GetCampaign(ctx, r.campaignID)
	if err == nil && !campaign.Approved {
		campaign.Approved = true
		campaign.ApprovalNote = "budget confirmed"
		if err := r.Store.UpdateCampaign(ctx, campaign); err != nil {
			return nil, err
		}
	}
	return r.Store.ListEngagementsByCampaign(ctx, campaignID)
}

func TestCloneEngagementPreservesConcurrentApproval(t *testing.T) {
	store := memory.NewStore(nil)
	created := createTestCampaign(t, store, 3000, 2000)

	uc := CloneEngagementUseCase{
		Campaigns:   store,
		Engagements: approvingEngagementRepo{Store: store, campaignID: created.Campaign.CampaignID},
		Audit:       store,
		Clock:       testClock(),
		IDGen:       store,
	}
	if _, err := uc.Execute(context.Background(), CloneEngagementCommand{
		Actor:        adminActor(),
		EngagementID: created.Engagements[0].EngagementID,
	}); err != nil {
		t.Fatalf("clone failed: %v", err)
	}

	campaign, err := store.GetCampaign(context.Background(), created.Campaign.CampaignID)
	if err != nil {
		t.Fatalf("get campaign failed: %v", err)
	}
	if !campaign.Approved {
		t.Fatalf("clone must not revert an approval that landed mid-flow")
	}
	if campaign.TotalAmount != 8000 {
		t.Fatalf("expected recomputed total 8000, got %v", campaign.TotalAmount)
	}
}

func TestStatusChangeMirrorsAuditEntry(t *testing.T) {
	store := memory.NewStore(nil)
	created := createTestCampaign(t, store, 1000)

	uc := ChangeEngagementStatusUseCase{
		Campaigns:   store,
		Engagements: store,
		Audit:       store,
		Clock:       testClock(),
	}
	if _, err := uc.Execute(context.Background(), ChangeEngagementStatusCommand{
		Actor:        adminActor(),
		EngagementID: created.Engagements[0].EngagementID,
		Status:       "approved",
	}); err != nil {
		t.Fatalf("status change failed: %v", err)
	}

	var found bool
	for _, entry := range store.AuditEntries() {
		if entry.Action == "status_change" && entry.EntityType == "CampaignInfluencer" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a CampaignInfluencer status_change audit entry")
	}
}
