package application

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"backstage/contexts/finance-core/settlement-ledger/domain/entities"
	domainerrors "backstage/contexts/finance-core/settlement-ledger/domain/errors"
	"backstage/contexts/finance-core/settlement-ledger/ports"
)

type Actor struct {
	ActorID       string
	Role          string
	OriginAddress string
	OriginAgent   string
}

type ManualTransactionInput struct {
	InfluencerID   string
	InfluencerName string
	BrandID        string
	BrandName      string
	TotalAmount    float64
	PayoutAmount   float64
	Notes          string
}

type PaymentInput struct {
	CampaignID   string
	Type         string
	Amount       float64
	Advance      float64
	Status       string
	DueDate      *time.Time
	InfluencerID string
	Notes        string
}

type PaymentUpdateInput struct {
	Amount  float64
	Advance float64
	Status  string
	DueDate *time.Time
	Notes   string
}

type ManualTransactionResult struct {
	Transaction entities.ManualTransaction
	Payments    []entities.Payment
}

type Service struct {
	Transactions ports.TransactionRepository
	Payments     ports.PaymentRepository
	Campaigns    ports.CampaignDirectory
	Audit        ports.AuditRecorder
	Clock        ports.Clock
	IDGen        ports.IDGenerator
	Logger       *slog.Logger
}

// CreateManualTransaction writes the transaction row plus its brand payment
// and influencer payout as one atomic unit. Profit and margin are derived
// here and never accepted from the caller.
func (s Service) CreateManualTransaction(
	ctx context.Context,
	actor Actor,
	input ManualTransactionInput,
) (ManualTransactionResult, error) {
	if err := validateManualTransactionInput(input); err != nil {
		return ManualTransactionResult{}, err
	}

	now := s.Clock.Now().UTC()
	transactionID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ManualTransactionResult{}, err
	}

	tx := entities.ManualTransaction{
		TransactionID:  transactionID,
		InfluencerID:   strings.TrimSpace(input.InfluencerID),
		InfluencerName: strings.TrimSpace(input.InfluencerName),
		BrandID:        strings.TrimSpace(input.BrandID),
		BrandName:      strings.TrimSpace(input.BrandName),
		TotalAmount:    input.TotalAmount,
		PayoutAmount:   input.PayoutAmount,
		Notes:          strings.TrimSpace(input.Notes),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	tx.Recompute()

	brandPaymentID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ManualTransactionResult{}, err
	}
	payoutID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ManualTransactionResult{}, err
	}

	paidDate := now
	payments := []entities.Payment{
		{
			PaymentID:     brandPaymentID,
			TransactionID: tx.TransactionID,
			Type:          entities.PaymentTypeBrandPayment,
			Amount:        tx.TotalAmount,
			Balance:       tx.TotalAmount,
			Status:        entities.PaymentStatusPaid,
			PaidDate:      &paidDate,
			InfluencerID:  tx.InfluencerID,
			Notes:         "brand payment for manual transaction from " + tx.BrandName,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			PaymentID:     payoutID,
			TransactionID: tx.TransactionID,
			Type:          entities.PaymentTypeInfluencerPayout,
			Amount:        tx.PayoutAmount,
			Balance:       tx.PayoutAmount,
			Status:        entities.PaymentStatusPending,
			InfluencerID:  tx.InfluencerID,
			Notes:         "influencer payout for manual transaction to " + tx.InfluencerName,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	}

	if err := s.Transactions.CreateManualTransaction(ctx, tx, payments); err != nil {
		return ManualTransactionResult{}, err
	}
	s.recordAudit(ctx, actor, ports.AuditEntry{
		Action:     "create",
		EntityType: "ManualTransaction",
		EntityID:   tx.TransactionID,
		EntityName: tx.InfluencerName,
		NewValue:   transactionSnapshot(tx),
	})

	ResolveLogger(s.Logger).Info("manual transaction created",
		"event", "manual_transaction_created",
		"module", "finance-core/settlement-ledger",
		"layer", "application",
		"transaction_id", tx.TransactionID,
		"total_amount", tx.TotalAmount,
		"payout_amount", tx.PayoutAmount,
		"margin", tx.Margin,
	)
	return ManualTransactionResult{Transaction: tx, Payments: payments}, nil
}

// UpdateManualTransaction recomputes profit/margin from the new amounts and
// rewrites the transaction and both child payments in one atomic unit. The
// pair is never resized.
func (s Service) UpdateManualTransaction(
	ctx context.Context,
	actor Actor,
	transactionID string,
	input ManualTransactionInput,
) (ManualTransactionResult, error) {
	if err := validateManualTransactionInput(input); err != nil {
		return ManualTransactionResult{}, err
	}

	existing, err := s.Transactions.GetManualTransaction(ctx, strings.TrimSpace(transactionID))
	if err != nil {
		return ManualTransactionResult{}, err
	}
	children, err := s.Payments.ListPaymentsByTransaction(ctx, existing.TransactionID)
	if err != nil {
		return ManualTransactionResult{}, err
	}
	if len(children) != 2 {
		return ManualTransactionResult{}, domainerrors.ErrPairIncomplete
	}

	now := s.Clock.Now().UTC()
	before := existing

	updated := existing
	updated.InfluencerID = strings.TrimSpace(input.InfluencerID)
	updated.InfluencerName = strings.TrimSpace(input.InfluencerName)
	updated.BrandID = strings.TrimSpace(input.BrandID)
	updated.BrandName = strings.TrimSpace(input.BrandName)
	updated.TotalAmount = input.TotalAmount
	updated.PayoutAmount = input.PayoutAmount
	updated.Notes = strings.TrimSpace(input.Notes)
	updated.UpdatedAt = now
	updated.Recompute()

	payments := make([]entities.Payment, 0, len(children))
	for _, child := range children {
		child.InfluencerID = updated.InfluencerID
		child.UpdatedAt = now
		switch child.Type {
		case entities.PaymentTypeBrandPayment:
			child.Amount = updated.TotalAmount
			child.Balance = updated.TotalAmount
			child.Notes = "brand payment updated with manual transaction " + updated.TransactionID
		case entities.PaymentTypeInfluencerPayout:
			child.Amount = updated.PayoutAmount
			child.Balance = updated.PayoutAmount
			child.Notes = "influencer payout updated with manual transaction " + updated.TransactionID
		}
		payments = append(payments, child)
	}

	if err := s.Transactions.UpdateManualTransaction(ctx, updated, payments); err != nil {
		return ManualTransactionResult{}, err
	}
	s.recordAudit(ctx, actor, ports.AuditEntry{
		Action:     "update",
		EntityType: "ManualTransaction",
		EntityID:   updated.TransactionID,
		EntityName: updated.InfluencerName,
		OldValue:   transactionSnapshot(before),
		NewValue:   transactionSnapshot(updated),
	})

	ResolveLogger(s.Logger).Info("manual transaction updated",
		"event", "manual_transaction_updated",
		"module", "finance-core/settlement-ledger",
		"layer", "application",
		"transaction_id", updated.TransactionID,
		"total_amount", updated.TotalAmount,
		"payout_amount", updated.PayoutAmount,
		"margin", updated.Margin,
	)
	return ManualTransactionResult{Transaction: updated, Payments: payments}, nil
}

// DeleteManualTransaction removes the transaction and both child payments as
// a single unit.
func (s Service) DeleteManualTransaction(ctx context.Context, actor Actor, transactionID string) error {
	existing, err := s.Transactions.GetManualTransaction(ctx, strings.TrimSpace(transactionID))
	if err != nil {
		return err
	}
	if err := s.Transactions.DeleteManualTransaction(ctx, existing.TransactionID); err != nil {
		return err
	}
	s.recordAudit(ctx, actor, ports.AuditEntry{
		Action:     "delete",
		EntityType: "ManualTransaction",
		EntityID:   existing.TransactionID,
		EntityName: existing.InfluencerName,
		OldValue:   transactionSnapshot(existing),
	})

	ResolveLogger(s.Logger).Info("manual transaction deleted",
		"event", "manual_transaction_deleted",
		"module", "finance-core/settlement-ledger",
		"layer", "application",
		"transaction_id", existing.TransactionID,
	)
	return nil
}

// CreatePayment writes a standalone payment against a real campaign. Balance
// is recomputed server-side from amount and advance; client-supplied balances
// are ignored.
func (s Service) CreatePayment(ctx context.Context, actor Actor, input PaymentInput) (entities.Payment, error) {
	campaignID := strings.TrimSpace(input.CampaignID)
	if campaignID == "" {
		return entities.Payment{}, domainerrors.ErrInvalidInput
	}
	exists, err := s.Campaigns.CampaignExists(ctx, campaignID)
	if err != nil {
		return entities.Payment{}, err
	}
	if !exists {
		return entities.Payment{}, domainerrors.ErrCampaignNotFound
	}

	paymentType := entities.PaymentType(strings.TrimSpace(input.Type))
	if !entities.IsSupportedPaymentType(paymentType) {
		return entities.Payment{}, domainerrors.ErrInvalidPaymentType
	}
	status := entities.PaymentStatus(strings.TrimSpace(input.Status))
	if status == "" {
		status = entities.PaymentStatusPending
	}
	if !entities.IsSupportedPaymentStatus(status) {
		return entities.Payment{}, domainerrors.ErrInvalidPaymentStatus
	}
	if input.Amount < 0 || input.Advance < 0 || input.Advance > input.Amount {
		return entities.Payment{}, domainerrors.ErrInvalidAmount
	}

	now := s.Clock.Now().UTC()
	paymentID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Payment{}, err
	}

	payment := entities.Payment{
		PaymentID:    paymentID,
		CampaignID:   campaignID,
		Type:         paymentType,
		Amount:       input.Amount,
		Advance:      input.Advance,
		Balance:      input.Amount - input.Advance,
		Status:       status,
		DueDate:      input.DueDate,
		InfluencerID: strings.TrimSpace(input.InfluencerID),
		Notes:        strings.TrimSpace(input.Notes),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if status == entities.PaymentStatusPaid {
		payment.PaidDate = &now
	}
	if err := s.Payments.CreatePayment(ctx, payment); err != nil {
		return entities.Payment{}, err
	}
	s.recordAudit(ctx, actor, ports.AuditEntry{
		Action:     "create",
		EntityType: "Payment",
		EntityID:   payment.PaymentID,
		NewValue:   paymentSnapshot(payment),
	})

	ResolveLogger(s.Logger).Info("payment created",
		"event", "payment_created",
		"module", "finance-core/settlement-ledger",
		"layer", "application",
		"payment_id", payment.PaymentID,
		"campaign_id", payment.CampaignID,
		"type", string(payment.Type),
		"amount", payment.Amount,
	)
	return payment, nil
}

// UpdatePayment edits a standalone payment. Payments owned by a manual
// transaction are rejected here; the pair moves only through its transaction.
func (s Service) UpdatePayment(
	ctx context.Context,
	actor Actor,
	paymentID string,
	input PaymentUpdateInput,
) (entities.Payment, error) {
	existing, err := s.Payments.GetPayment(ctx, strings.TrimSpace(paymentID))
	if err != nil {
		return entities.Payment{}, err
	}
	if existing.IsManaged() {
		return entities.Payment{}, domainerrors.ErrPaymentManaged
	}

	status := entities.PaymentStatus(strings.TrimSpace(input.Status))
	if status == "" {
		status = existing.Status
	}
	if !entities.IsSupportedPaymentStatus(status) {
		return entities.Payment{}, domainerrors.ErrInvalidPaymentStatus
	}
	if input.Amount < 0 || input.Advance < 0 || input.Advance > input.Amount {
		return entities.Payment{}, domainerrors.ErrInvalidAmount
	}

	now := s.Clock.Now().UTC()
	before := existing

	updated := existing
	updated.Amount = input.Amount
	updated.Advance = input.Advance
	updated.Balance = input.Amount - input.Advance
	updated.Status = status
	updated.DueDate = input.DueDate
	updated.Notes = strings.TrimSpace(input.Notes)
	updated.UpdatedAt = now
	if status == entities.PaymentStatusPaid && existing.PaidDate == nil {
		updated.PaidDate = &now
	}
	if err := s.Payments.UpdatePayment(ctx, updated); err != nil {
		return entities.Payment{}, err
	}
	s.recordAudit(ctx, actor, ports.AuditEntry{
		Action:     "update",
		EntityType: "Payment",
		EntityID:   updated.PaymentID,
		OldValue:   paymentSnapshot(before),
		NewValue:   paymentSnapshot(updated),
	})

	ResolveLogger(s.Logger).Info("payment updated",
		"event", "payment_updated",
		"module", "finance-core/settlement-ledger",
		"layer", "application",
		"payment_id", updated.PaymentID,
		"status", string(updated.Status),
	)
	return updated, nil
}

func (s Service) DeletePayment(ctx context.Context, actor Actor, paymentID string) error {
	existing, err := s.Payments.GetPayment(ctx, strings.TrimSpace(paymentID))
	if err != nil {
		return err
	}
	if existing.IsManaged() {
		return domainerrors.ErrPaymentManaged
	}
	if err := s.Payments.DeletePayment(ctx, existing.PaymentID); err != nil {
		return err
	}
	s.recordAudit(ctx, actor, ports.AuditEntry{
		Action:     "delete",
		EntityType: "Payment",
		EntityID:   existing.PaymentID,
		OldValue:   paymentSnapshot(existing),
	})

	ResolveLogger(s.Logger).Info("payment deleted",
		"event", "payment_deleted",
		"module", "finance-core/settlement-ledger",
		"layer", "application",
		"payment_id", existing.PaymentID,
	)
	return nil
}

func (s Service) GetManualTransaction(ctx context.Context, transactionID string) (ManualTransactionResult, error) {
	tx, err := s.Transactions.GetManualTransaction(ctx, strings.TrimSpace(transactionID))
	if err != nil {
		return ManualTransactionResult{}, err
	}
	payments, err := s.Payments.ListPaymentsByTransaction(ctx, tx.TransactionID)
	if err != nil {
		return ManualTransactionResult{}, err
	}
	return ManualTransactionResult{Transaction: tx, Payments: payments}, nil
}

func (s Service) ListManualTransactions(ctx context.Context) ([]entities.ManualTransaction, error) {
	return s.Transactions.ListManualTransactions(ctx)
}

func (s Service) ListPayments(ctx context.Context, filter ports.PaymentFilter) ([]entities.Payment, error) {
	if filter.Status != "" && !entities.IsSupportedPaymentStatus(filter.Status) {
		return nil, domainerrors.ErrInvalidPaymentStatus
	}
	if filter.Type != "" && !entities.IsSupportedPaymentType(filter.Type) {
		return nil, domainerrors.ErrInvalidPaymentType
	}
	return s.Payments.ListPayments(ctx, filter)
}

// recordAudit mirrors a ledger mutation into the activity log. Failures are
// surfaced to operational logging only; the mutation already succeeded.
func (s Service) recordAudit(ctx context.Context, actor Actor, entry ports.AuditEntry) {
	if s.Audit == nil {
		return
	}
	entry.ActorID = strings.TrimSpace(actor.ActorID)
	entry.OriginAddress = strings.TrimSpace(actor.OriginAddress)
	entry.OriginAgent = strings.TrimSpace(actor.OriginAgent)
	if err := s.Audit.Record(ctx, entry); err != nil {
		ResolveLogger(s.Logger).Warn("audit record failed",
			"event", "audit_record_failed",
			"module", "finance-core/settlement-ledger",
			"layer", "application",
			"entity_type", entry.EntityType,
			"entity_id", entry.EntityID,
			"error", err,
		)
	}
}

func validateManualTransactionInput(input ManualTransactionInput) error {
	if strings.TrimSpace(input.InfluencerName) == "" || strings.TrimSpace(input.BrandName) == "" {
		return domainerrors.ErrInvalidInput
	}
	if input.TotalAmount < 0 || input.PayoutAmount < 0 {
		return domainerrors.ErrInvalidAmount
	}
	return nil
}

func transactionSnapshot(tx entities.ManualTransaction) []byte {
	raw, _ := json.Marshal(map[string]any{
		"transaction_id":  tx.TransactionID,
		"influencer_id":   tx.InfluencerID,
		"influencer_name": tx.InfluencerName,
		"brand_id":        tx.BrandID,
		"brand_name":      tx.BrandName,
		"total_amount":    tx.TotalAmount,
		"payout_amount":   tx.PayoutAmount,
		"profit":          tx.Profit,
		"margin":          tx.Margin,
		"notes":           tx.Notes,
	})
	return raw
}

func paymentSnapshot(payment entities.Payment) []byte {
	raw, _ := json.Marshal(map[string]any{
		"payment_id":     payment.PaymentID,
		"campaign_id":    payment.CampaignID,
		"transaction_id": payment.TransactionID,
		"type":           string(payment.Type),
		"amount":         payment.Amount,
		"advance":        payment.Advance,
		"balance":        payment.Balance,
		"status":         string(payment.Status),
		"influencer_id":  payment.InfluencerID,
		"notes":          payment.Notes,
	})
	return raw
}
