package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"backstage/contexts/campaign-ops/approval-service/adapters/memory"
	domainerrors "backstage/contexts/campaign-ops/approval-service/domain/errors"
	"backstage/contexts/campaign-ops/approval-service/ports"
	"backstage/internal/shared/capabilities"
)

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time { return f.now }

func newTestService(store *memory.Store) Service {
	return Service{
		Campaigns:    store,
		Chains:       store,
		Capabilities: capabilities.NewDefaultResolver(),
		Audit:        store,
		Clock:        fixedClock{now: time.Date(2026, time.April, 2, 10, 0, 0, 0, time.UTC)},
		IDGen:        store,
	}
}

func seedCampaign(store *memory.Store, campaignID string, total float64) {
	store.RegisterCampaign(ports.CampaignView{
		CampaignID:  campaignID,
		BrandID:     "brand-1",
		Name:        "Spring Launch",
		TotalAmount: total,
		Status:      "draft",
	})
}

func superAdminChain(threshold float64) ChainInput {
	return ChainInput{
		EntityType:    "Campaign",
		Threshold:     threshold,
		RequiredRoles: []string{"super_admin"},
	}
}

func TestApproveCampaignWithoutChainUsesCapability(t *testing.T) {
	store := memory.NewStore()
	seedCampaign(store, "cmp-1", 50000)
	svc := newTestService(store)

	campaign, err := svc.ApproveCampaign(context.Background(), Actor{ActorID: "admin-1", Role: "admin"}, ApproveCampaignInput{
		CampaignID: "cmp-1",
		Note:       "budget confirmed",
	})
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if !campaign.Approved || campaign.ApprovalNote != "budget confirmed" {
		t.Fatalf("unexpected campaign state: %+v", campaign)
	}
}

func TestApproveCampaignWithoutCapabilityFails(t *testing.T) {
	store := memory.NewStore()
	seedCampaign(store, "cmp-1", 50000)
	svc := newTestService(store)

	_, err := svc.ApproveCampaign(context.Background(), Actor{ActorID: "mgr-1", Role: "manager"}, ApproveCampaignInput{CampaignID: "cmp-1"})
	if !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestApproveCampaignBelowThresholdBypassesChain(t *testing.T) {
	store := memory.NewStore()
	seedCampaign(store, "cmp-1", 50000)
	svc := newTestService(store)

	if _, err := svc.CreateChain(context.Background(), Actor{ActorID: "su-1", Role: "super_admin"}, superAdminChain(100000)); err != nil {
		t.Fatalf("create chain failed: %v", err)
	}

	campaign, err := svc.ApproveCampaign(context.Background(), Actor{ActorID: "admin-1", Role: "admin"}, ApproveCampaignInput{CampaignID: "cmp-1"})
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if !campaign.Approved {
		t.Fatalf("campaign not approved")
	}
}

func TestApproveCampaignAtThresholdRequiresChainRole(t *testing.T) {
	store := memory.NewStore()
	seedCampaign(store, "cmp-1", 150000)
	svc := newTestService(store)

	if _, err := svc.CreateChain(context.Background(), Actor{ActorID: "su-1", Role: "super_admin"}, superAdminChain(100000)); err != nil {
		t.Fatalf("create chain failed: %v", err)
	}

	_, err := svc.ApproveCampaign(context.Background(), Actor{ActorID: "admin-1", Role: "admin"}, ApproveCampaignInput{CampaignID: "cmp-1"})
	if !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for admin at threshold, got %v", err)
	}

	campaign, err := svc.ApproveCampaign(context.Background(), Actor{ActorID: "su-1", Role: "super_admin"}, ApproveCampaignInput{CampaignID: "cmp-1"})
	if err != nil {
		t.Fatalf("super_admin approve failed: %v", err)
	}
	if !campaign.Approved {
		t.Fatalf("campaign not approved")
	}
}

func TestApproveCampaignIsIdempotent(t *testing.T) {
	store := memory.NewStore()
	seedCampaign(store, "cmp-1", 50000)
	svc := newTestService(store)
	actor := Actor{ActorID: "admin-1", Role: "admin"}

	if _, err := svc.ApproveCampaign(context.Background(), actor, ApproveCampaignInput{CampaignID: "cmp-1", Note: "first"}); err != nil {
		t.Fatalf("first approve failed: %v", err)
	}
	audited := len(store.AuditEntries())

	campaign, err := svc.ApproveCampaign(context.Background(), actor, ApproveCampaignInput{CampaignID: "cmp-1", Note: "second"})
	if err != nil {
		t.Fatalf("second approve failed: %v", err)
	}
	if campaign.ApprovalNote != "first" {
		t.Fatalf("no-op approve must not rewrite the note, got %q", campaign.ApprovalNote)
	}
	if len(store.AuditEntries()) != audited {
		t.Fatalf("no-op approve must not add audit entries")
	}
}

func TestApproveCampaignUnknownCampaign(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(store)

	_, err := svc.ApproveCampaign(context.Background(), Actor{ActorID: "admin-1", Role: "admin"}, ApproveCampaignInput{CampaignID: "missing"})
	if !errors.Is(err, domainerrors.ErrCampaignNotFound) {
		t.Fatalf("expected ErrCampaignNotFound, got %v", err)
	}
}

func TestCreateChainRequiresManageCapability(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(store)

	_, err := svc.CreateChain(context.Background(), Actor{ActorID: "admin-1", Role: "admin"}, superAdminChain(100000))
	if !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestCreateChainRejectsSecondActiveChain(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(store)
	actor := Actor{ActorID: "su-1", Role: "super_admin"}

	if _, err := svc.CreateChain(context.Background(), actor, superAdminChain(100000)); err != nil {
		t.Fatalf("create chain failed: %v", err)
	}
	_, err := svc.CreateChain(context.Background(), actor, superAdminChain(200000))
	if !errors.Is(err, domainerrors.ErrChainExists) {
		t.Fatalf("expected ErrChainExists, got %v", err)
	}
}

func TestCreateChainValidatesInput(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(store)
	actor := Actor{ActorID: "su-1", Role: "super_admin"}

	_, err := svc.CreateChain(context.Background(), actor, ChainInput{EntityType: "Campaign", Threshold: 100000})
	if !errors.Is(err, domainerrors.ErrInvalidChainInput) {
		t.Fatalf("expected ErrInvalidChainInput without roles, got %v", err)
	}

	_, err = svc.CreateChain(context.Background(), actor, ChainInput{EntityType: "Campaign", Threshold: -1, RequiredRoles: []string{"super_admin"}})
	if !errors.Is(err, domainerrors.ErrInvalidChainInput) {
		t.Fatalf("expected ErrInvalidChainInput for negative threshold, got %v", err)
	}
}

func TestDeleteChainReopensEntityType(t *testing.T) {
	store := memory.NewStore()
	seedCampaign(store, "cmp-1", 150000)
	svc := newTestService(store)
	actor := Actor{ActorID: "su-1", Role: "super_admin"}

	chain, err := svc.CreateChain(context.Background(), actor, superAdminChain(100000))
	if err != nil {
		t.Fatalf("create chain failed: %v", err)
	}
	if err := svc.DeleteChain(context.Background(), actor, chain.ChainID); err != nil {
		t.Fatalf("delete chain failed: %v", err)
	}

	campaign, err := svc.ApproveCampaign(context.Background(), Actor{ActorID: "admin-1", Role: "admin"}, ApproveCampaignInput{CampaignID: "cmp-1"})
	if err != nil {
		t.Fatalf("approve after delete failed: %v", err)
	}
	if !campaign.Approved {
		t.Fatalf("campaign not approved")
	}
}

func TestDeleteChainNotFound(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(store)

	err := svc.DeleteChain(context.Background(), Actor{ActorID: "su-1", Role: "super_admin"}, "missing")
	if !errors.Is(err, domainerrors.ErrChainNotFound) {
		t.Fatalf("expected ErrChainNotFound, got %v", err)
	}
}
