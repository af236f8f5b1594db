package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"backstage/contexts/finance-core/settlement-ledger/application"
	"backstage/contexts/finance-core/settlement-ledger/domain/entities"
	domainerrors "backstage/contexts/finance-core/settlement-ledger/domain/errors"
	"backstage/contexts/finance-core/settlement-ledger/ports"
	httptransport "backstage/contexts/finance-core/settlement-ledger/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateManualTransactionHandler(
	ctx context.Context,
	actor application.Actor,
	req httptransport.ManualTransactionRequest,
) (httptransport.ManualTransactionResponse, error) {
	result, err := h.Service.CreateManualTransaction(ctx, actor, manualTransactionInput(req))
	if err != nil {
		return httptransport.ManualTransactionResponse{}, err
	}
	return mapManualTransactionResult(result), nil
}

func (h Handler) UpdateManualTransactionHandler(
	ctx context.Context,
	actor application.Actor,
	transactionID string,
	req httptransport.ManualTransactionRequest,
) (httptransport.ManualTransactionResponse, error) {
	result, err := h.Service.UpdateManualTransaction(ctx, actor, transactionID, manualTransactionInput(req))
	if err != nil {
		return httptransport.ManualTransactionResponse{}, err
	}
	return mapManualTransactionResult(result), nil
}

func (h Handler) DeleteManualTransactionHandler(
	ctx context.Context,
	actor application.Actor,
	transactionID string,
) error {
	return h.Service.DeleteManualTransaction(ctx, actor, transactionID)
}

func (h Handler) GetManualTransactionHandler(
	ctx context.Context,
	transactionID string,
) (httptransport.ManualTransactionResponse, error) {
	result, err := h.Service.GetManualTransaction(ctx, transactionID)
	if err != nil {
		return httptransport.ManualTransactionResponse{}, err
	}
	return mapManualTransactionResult(result), nil
}

func (h Handler) ListManualTransactionsHandler(ctx context.Context) (httptransport.ListManualTransactionsResponse, error) {
	items, err := h.Service.ListManualTransactions(ctx)
	if err != nil {
		return httptransport.ListManualTransactionsResponse{}, err
	}
	result := make([]httptransport.ManualTransactionDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapManualTransaction(item))
	}
	return httptransport.ListManualTransactionsResponse{Items: result}, nil
}

func (h Handler) CreatePaymentHandler(
	ctx context.Context,
	actor application.Actor,
	req httptransport.CreatePaymentRequest,
) (httptransport.PaymentResponse, error) {
	dueDate, err := parseOptionalDate(req.DueDate)
	if err != nil {
		return httptransport.PaymentResponse{}, domainerrors.ErrInvalidInput
	}
	payment, err := h.Service.CreatePayment(ctx, actor, application.PaymentInput{
		CampaignID:   req.CampaignID,
		Type:         req.Type,
		Amount:       req.Amount,
		Advance:      req.Advance,
		Status:       req.Status,
		DueDate:      dueDate,
		InfluencerID: req.InfluencerID,
		Notes:        req.Notes,
	})
	if err != nil {
		return httptransport.PaymentResponse{}, err
	}
	return httptransport.PaymentResponse{Payment: mapPayment(payment)}, nil
}

func (h Handler) UpdatePaymentHandler(
	ctx context.Context,
	actor application.Actor,
	paymentID string,
	req httptransport.UpdatePaymentRequest,
) (httptransport.PaymentResponse, error) {
	dueDate, err := parseOptionalDate(req.DueDate)
	if err != nil {
		return httptransport.PaymentResponse{}, domainerrors.ErrInvalidInput
	}
	payment, err := h.Service.UpdatePayment(ctx, actor, paymentID, application.PaymentUpdateInput{
		Amount:  req.Amount,
		Advance: req.Advance,
		Status:  req.Status,
		DueDate: dueDate,
		Notes:   req.Notes,
	})
	if err != nil {
		return httptransport.PaymentResponse{}, err
	}
	return httptransport.PaymentResponse{Payment: mapPayment(payment)}, nil
}

func (h Handler) DeletePaymentHandler(ctx context.Context, actor application.Actor, paymentID string) error {
	return h.Service.DeletePayment(ctx, actor, paymentID)
}

func (h Handler) ListPaymentsHandler(
	ctx context.Context,
	campaignID string,
	status string,
	paymentType string,
) (httptransport.ListPaymentsResponse, error) {
	items, err := h.Service.ListPayments(ctx, ports.PaymentFilter{
		CampaignID: campaignID,
		Status:     entities.PaymentStatus(strings.TrimSpace(status)),
		Type:       entities.PaymentType(strings.TrimSpace(paymentType)),
	})
	if err != nil {
		return httptransport.ListPaymentsResponse{}, err
	}
	result := make([]httptransport.PaymentDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapPayment(item))
	}
	return httptransport.ListPaymentsResponse{Items: result}, nil
}

func manualTransactionInput(req httptransport.ManualTransactionRequest) application.ManualTransactionInput {
	return application.ManualTransactionInput{
		InfluencerID:   req.InfluencerID,
		InfluencerName: req.InfluencerName,
		BrandID:        req.BrandID,
		BrandName:      req.BrandName,
		TotalAmount:    req.TotalAmount,
		PayoutAmount:   req.PayoutAmount,
		Notes:          req.Notes,
	}
}

func mapManualTransactionResult(result application.ManualTransactionResult) httptransport.ManualTransactionResponse {
	payments := make([]httptransport.PaymentDTO, 0, len(result.Payments))
	for _, payment := range result.Payments {
		payments = append(payments, mapPayment(payment))
	}
	return httptransport.ManualTransactionResponse{
		Transaction: mapManualTransaction(result.Transaction),
		Payments:    payments,
	}
}

func mapManualTransaction(item entities.ManualTransaction) httptransport.ManualTransactionDTO {
	return httptransport.ManualTransactionDTO{
		TransactionID:  item.TransactionID,
		InfluencerID:   item.InfluencerID,
		InfluencerName: item.InfluencerName,
		BrandID:        item.BrandID,
		BrandName:      item.BrandName,
		TotalAmount:    item.TotalAmount,
		PayoutAmount:   item.PayoutAmount,
		Profit:         item.Profit,
		Margin:         item.Margin,
		Notes:          item.Notes,
		CreatedAt:      item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func mapPayment(item entities.Payment) httptransport.PaymentDTO {
	dto := httptransport.PaymentDTO{
		PaymentID:     item.PaymentID,
		CampaignID:    item.CampaignID,
		TransactionID: item.TransactionID,
		Type:          string(item.Type),
		Amount:        item.Amount,
		Advance:       item.Advance,
		Balance:       item.Balance,
		Status:        string(item.Status),
		InfluencerID:  item.InfluencerID,
		Notes:         item.Notes,
		CreatedAt:     item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     item.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if item.DueDate != nil {
		dto.DueDate = item.DueDate.UTC().Format(time.RFC3339)
	}
	if item.PaidDate != nil {
		dto.PaidDate = item.PaidDate.UTC().Format(time.RFC3339)
	}
	return dto
}

func parseOptionalDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	utc := parsed.UTC()
	return &utc, nil
}
