package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"backstage/contexts/finance-core/settlement-ledger/adapters/memory"
	"backstage/contexts/finance-core/settlement-ledger/domain/entities"
	domainerrors "backstage/contexts/finance-core/settlement-ledger/domain/errors"
)

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time { return f.now }

func newTestService(store *memory.Store) Service {
	return Service{
		Transactions: store,
		Payments:     store,
		Campaigns:    store,
		Audit:        store,
		Clock:        fixedClock{now: time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)},
		IDGen:        store,
	}
}

func testActor() Actor {
	return Actor{ActorID: "admin-1", Role: "admin"}
}

func TestCreateManualTransactionDerivesProfitAndMargin(t *testing.T) {
	store := memory.NewStore(nil)
	service := newTestService(store)

	result, err := service.CreateManualTransaction(context.Background(), testActor(), ManualTransactionInput{
		InfluencerID:   "inf-1",
		InfluencerName: "Creator One",
		BrandID:        "brand-1",
		BrandName:      "Acme",
		TotalAmount:    10000,
		PayoutAmount:   7000,
		Notes:          "march collab",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if result.Transaction.Profit != 3000 {
		t.Fatalf("expected profit 3000, got %v", result.Transaction.Profit)
	}
	if result.Transaction.Margin != 30 {
		t.Fatalf("expected margin 30, got %v", result.Transaction.Margin)
	}
	if len(result.Payments) != 2 {
		t.Fatalf("expected 2 payments, got %d", len(result.Payments))
	}

	byType := map[entities.PaymentType]entities.Payment{}
	for _, payment := range result.Payments {
		byType[payment.Type] = payment
	}
	brand := byType[entities.PaymentTypeBrandPayment]
	payout := byType[entities.PaymentTypeInfluencerPayout]
	if brand.Amount != 10000 || brand.Status != entities.PaymentStatusPaid || brand.PaidDate == nil {
		t.Fatalf("unexpected brand payment: %+v", brand)
	}
	if payout.Amount != 7000 || payout.Status != entities.PaymentStatusPending {
		t.Fatalf("unexpected payout payment: %+v", payout)
	}
	if brand.InfluencerID != "inf-1" || payout.InfluencerID != "inf-1" {
		t.Fatalf("expected influencer id on both payments")
	}
}

func TestCreateManualTransactionZeroTotalHasZeroMargin(t *testing.T) {
	store := memory.NewStore(nil)
	service := newTestService(store)

	result, err := service.CreateManualTransaction(context.Background(), testActor(), ManualTransactionInput{
		InfluencerName: "Creator One",
		BrandName:      "Acme",
		TotalAmount:    0,
		PayoutAmount:   0,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if result.Transaction.Margin != 0 {
		t.Fatalf("expected margin 0 for zero total, got %v", result.Transaction.Margin)
	}
}

func TestUpdateManualTransactionRewritesBothPayments(t *testing.T) {
	store := memory.NewStore(nil)
	service := newTestService(store)

	created, err := service.CreateManualTransaction(context.Background(), testActor(), ManualTransactionInput{
		InfluencerName: "Creator One",
		BrandName:      "Acme",
		TotalAmount:    10000,
		PayoutAmount:   7000,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := service.UpdateManualTransaction(context.Background(), testActor(), created.Transaction.TransactionID, ManualTransactionInput{
		InfluencerName: "Creator One",
		BrandName:      "Acme",
		TotalAmount:    12000,
		PayoutAmount:   7000,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Transaction.Profit != 5000 {
		t.Fatalf("expected profit 5000, got %v", updated.Transaction.Profit)
	}
	if updated.Transaction.Margin != 41.67 {
		t.Fatalf("expected margin 41.67, got %v", updated.Transaction.Margin)
	}
	if len(updated.Payments) != 2 {
		t.Fatalf("edit changed payment count: %d", len(updated.Payments))
	}

	byType := map[entities.PaymentType]entities.Payment{}
	for _, payment := range updated.Payments {
		byType[payment.Type] = payment
	}
	if byType[entities.PaymentTypeBrandPayment].Amount != 12000 {
		t.Fatalf("brand payment not forced to new total: %v", byType[entities.PaymentTypeBrandPayment].Amount)
	}
	if byType[entities.PaymentTypeInfluencerPayout].Amount != 7000 {
		t.Fatalf("payout not forced to new payout: %v", byType[entities.PaymentTypeInfluencerPayout].Amount)
	}
}

func TestUpdateManualTransactionNotFound(t *testing.T) {
	store := memory.NewStore(nil)
	service := newTestService(store)

	_, err := service.UpdateManualTransaction(context.Background(), testActor(), "missing", ManualTransactionInput{
		InfluencerName: "Creator One",
		BrandName:      "Acme",
		TotalAmount:    100,
	})
	if !errors.Is(err, domainerrors.ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}
}

func TestDeleteManualTransactionRemovesBothPayments(t *testing.T) {
	store := memory.NewStore(nil)
	service := newTestService(store)

	created, err := service.CreateManualTransaction(context.Background(), testActor(), ManualTransactionInput{
		InfluencerName: "Creator One",
		BrandName:      "Acme",
		TotalAmount:    10000,
		PayoutAmount:   7000,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := service.DeleteManualTransaction(context.Background(), testActor(), created.Transaction.TransactionID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	for _, payment := range created.Payments {
		if _, err := store.GetPayment(context.Background(), payment.PaymentID); !errors.Is(err, domainerrors.ErrPaymentNotFound) {
			t.Fatalf("expected orphan payment %s to be gone, got %v", payment.PaymentID, err)
		}
	}
	if _, err := service.GetManualTransaction(context.Background(), created.Transaction.TransactionID); !errors.Is(err, domainerrors.ErrTransactionNotFound) {
		t.Fatalf("expected transaction gone, got %v", err)
	}
}

func TestCreatePaymentRecomputesBalance(t *testing.T) {
	store := memory.NewStore([]string{"camp-1"})
	service := newTestService(store)

	payment, err := service.CreatePayment(context.Background(), testActor(), PaymentInput{
		CampaignID: "camp-1",
		Type:       "brand_payment",
		Amount:     5000,
		Advance:    1500,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if payment.Balance != 3500 {
		t.Fatalf("expected balance 3500, got %v", payment.Balance)
	}
}

func TestCreatePaymentRejectsUnknownCampaign(t *testing.T) {
	store := memory.NewStore(nil)
	service := newTestService(store)

	_, err := service.CreatePayment(context.Background(), testActor(), PaymentInput{
		CampaignID: "camp-missing",
		Type:       "brand_payment",
		Amount:     5000,
	})
	if !errors.Is(err, domainerrors.ErrCampaignNotFound) {
		t.Fatalf("expected ErrCampaignNotFound, got %v", err)
	}
}

func TestCreatePaymentRejectsAdvanceOverAmount(t *testing.T) {
	store := memory.NewStore([]string{"camp-1"})
	service := newTestService(store)

	_, err := service.CreatePayment(context.Background(), testActor(), PaymentInput{
		CampaignID: "camp-1",
		Type:       "brand_payment",
		Amount:     1000,
		Advance:    2000,
	})
	if !errors.Is(err, domainerrors.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestPairChildPaymentsRejectStandaloneEdits(t *testing.T) {
	store := memory.NewStore(nil)
	service := newTestService(store)

	created, err := service.CreateManualTransaction(context.Background(), testActor(), ManualTransactionInput{
		InfluencerName: "Creator One",
		BrandName:      "Acme",
		TotalAmount:    10000,
		PayoutAmount:   7000,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	child := created.Payments[0]
	if _, err := service.UpdatePayment(context.Background(), testActor(), child.PaymentID, PaymentUpdateInput{Amount: 999}); !errors.Is(err, domainerrors.ErrPaymentManaged) {
		t.Fatalf("expected ErrPaymentManaged on update, got %v", err)
	}
	if err := service.DeletePayment(context.Background(), testActor(), child.PaymentID); !errors.Is(err, domainerrors.ErrPaymentManaged) {
		t.Fatalf("expected ErrPaymentManaged on delete, got %v", err)
	}
}

func TestLedgerMutationsMirrorAuditEntries(t *testing.T) {
	store := memory.NewStore(nil)
	service := newTestService(store)

	_, err := service.CreateManualTransaction(context.Background(), testActor(), ManualTransactionInput{
		InfluencerName: "Creator One",
		BrandName:      "Acme",
		TotalAmount:    10000,
		PayoutAmount:   7000,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	entries := store.AuditEntries()
	if len(entries) == 0 {
		t.Fatalf("expected audit entries after create")
	}
	if entries[0].EntityType != "ManualTransaction" {
		t.Fatalf("unexpected audit entity type %q", entries[0].EntityType)
	}
	if entries[0].ActorID != "admin-1" {
		t.Fatalf("unexpected audit actor %q", entries[0].ActorID)
	}
}
