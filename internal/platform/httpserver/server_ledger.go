package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"backstage/contexts/finance-core/settlement-ledger/application"
	ledgererrors "backstage/contexts/finance-core/settlement-ledger/domain/errors"
	ledgerhttp "backstage/contexts/finance-core/settlement-ledger/transport/http"
)

func writeLedgerError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, ledgerhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeLedgerDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledgererrors.ErrUnauthorized):
		writeLedgerError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, ledgererrors.ErrTransactionNotFound),
		errors.Is(err, ledgererrors.ErrPaymentNotFound),
		errors.Is(err, ledgererrors.ErrCampaignNotFound):
		writeLedgerError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ledgererrors.ErrInvalidAmount),
		errors.Is(err, ledgererrors.ErrInvalidPaymentType),
		errors.Is(err, ledgererrors.ErrInvalidPaymentStatus),
		errors.Is(err, ledgererrors.ErrInvalidInput):
		writeLedgerError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, ledgererrors.ErrPaymentManaged),
		errors.Is(err, ledgererrors.ErrPairIncomplete):
		writeLedgerError(w, http.StatusConflict, "conflict", err.Error())
	default:
		writeLedgerError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func requireLedgerAuthorization(w http.ResponseWriter, r *http.Request) bool {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		writeLedgerError(w, http.StatusUnauthorized, "unauthorized", "Authorization bearer token is required")
		return false
	}
	return true
}

func requireLedgerActor(w http.ResponseWriter, r *http.Request) (application.Actor, bool) {
	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if userID == "" {
		writeLedgerError(w, http.StatusUnauthorized, "user_required", "X-User-Id header is required")
		return application.Actor{}, false
	}
	return application.Actor{
		ActorID:       userID,
		Role:          strings.TrimSpace(r.Header.Get("X-User-Role")),
		OriginAddress: resolveClientIP(r),
		OriginAgent:   r.UserAgent(),
	}, true
}

func (s *Server) handleCreateManualTransaction(w http.ResponseWriter, r *http.Request) {
	if !requireLedgerAuthorization(w, r) {
		return
	}
	actor, ok := requireLedgerActor(w, r)
	if !ok {
		return
	}
	var req ledgerhttp.ManualTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLedgerError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.ledger.Handler.CreateManualTransactionHandler(r.Context(), actor, req)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListManualTransactions(w http.ResponseWriter, r *http.Request) {
	resp, err := s.ledger.Handler.ListManualTransactionsHandler(r.Context())
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetManualTransaction(w http.ResponseWriter, r *http.Request) {
	resp, err := s.ledger.Handler.GetManualTransactionHandler(r.Context(), r.PathValue("transaction_id"))
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateManualTransaction(w http.ResponseWriter, r *http.Request) {
	if !requireLedgerAuthorization(w, r) {
		return
	}
	actor, ok := requireLedgerActor(w, r)
	if !ok {
		return
	}
	var req ledgerhttp.ManualTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLedgerError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.ledger.Handler.UpdateManualTransactionHandler(
		r.Context(),
		actor,
		r.PathValue("transaction_id"),
		req,
	)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteManualTransaction(w http.ResponseWriter, r *http.Request) {
	if !requireLedgerAuthorization(w, r) {
		return
	}
	actor, ok := requireLedgerActor(w, r)
	if !ok {
		return
	}
	if err := s.ledger.Handler.DeleteManualTransactionHandler(r.Context(), actor, r.PathValue("transaction_id")); err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreatePayment(w http.ResponseWriter, r *http.Request) {
	if !requireLedgerAuthorization(w, r) {
		return
	}
	actor, ok := requireLedgerActor(w, r)
	if !ok {
		return
	}
	var req ledgerhttp.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLedgerError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.ledger.Handler.CreatePaymentHandler(r.Context(), actor, req)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListPayments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	resp, err := s.ledger.Handler.ListPaymentsHandler(
		r.Context(),
		query.Get("campaign_id"),
		query.Get("status"),
		query.Get("type"),
	)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdatePayment(w http.ResponseWriter, r *http.Request) {
	if !requireLedgerAuthorization(w, r) {
		return
	}
	actor, ok := requireLedgerActor(w, r)
	if !ok {
		return
	}
	var req ledgerhttp.UpdatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLedgerError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.ledger.Handler.UpdatePaymentHandler(
		r.Context(),
		actor,
		r.PathValue("payment_id"),
		req,
	)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeletePayment(w http.ResponseWriter, r *http.Request) {
	if !requireLedgerAuthorization(w, r) {
		return
	}
	actor, ok := requireLedgerActor(w, r)
	if !ok {
		return
	}
	if err := s.ledger.Handler.DeletePaymentHandler(r.Context(), actor, r.PathValue("payment_id")); err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
