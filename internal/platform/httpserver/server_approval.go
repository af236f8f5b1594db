package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"backstage/contexts/campaign-ops/approval-service/application"
	approvalerrors "backstage/contexts/campaign-ops/approval-service/domain/errors"
	approvalhttp "backstage/contexts/campaign-ops/approval-service/transport/http"
)

func writeApprovalError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, approvalhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeApprovalDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, approvalerrors.ErrUnauthorized):
		writeApprovalError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, approvalerrors.ErrCampaignNotFound),
		errors.Is(err, approvalerrors.ErrChainNotFound):
		writeApprovalError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, approvalerrors.ErrChainExists):
		writeApprovalError(w, http.StatusConflict, "chain_exists", err.Error())
	case errors.Is(err, approvalerrors.ErrInvalidChainInput):
		writeApprovalError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeApprovalError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func requireApprovalAuthorization(w http.ResponseWriter, r *http.Request) bool {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		writeApprovalError(w, http.StatusUnauthorized, "unauthorized", "Authorization bearer token is required")
		return false
	}
	return true
}

func requireApprovalActor(w http.ResponseWriter, r *http.Request) (application.Actor, bool) {
	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if userID == "" {
		writeApprovalError(w, http.StatusUnauthorized, "user_required", "X-User-Id header is required")
		return application.Actor{}, false
	}
	return application.Actor{
		ActorID:       userID,
		Role:          strings.TrimSpace(r.Header.Get("X-User-Role")),
		OriginAddress: resolveClientIP(r),
		OriginAgent:   r.UserAgent(),
	}, true
}

func (s *Server) handleApproveCampaign(w http.ResponseWriter, r *http.Request) {
	if !requireApprovalAuthorization(w, r) {
		return
	}
	actor, ok := requireApprovalActor(w, r)
	if !ok {
		return
	}
	// the note body is optional
	var req approvalhttp.ApproveCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeApprovalError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.approval.Handler.ApproveCampaignHandler(
		r.Context(),
		actor,
		r.PathValue("campaign_id"),
		req,
	)
	if err != nil {
		writeApprovalDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListApprovalChains(w http.ResponseWriter, r *http.Request) {
	resp, err := s.approval.Handler.ListChainsHandler(r.Context())
	if err != nil {
		writeApprovalDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateApprovalChain(w http.ResponseWriter, r *http.Request) {
	if !requireApprovalAuthorization(w, r) {
		return
	}
	actor, ok := requireApprovalActor(w, r)
	if !ok {
		return
	}
	var req approvalhttp.CreateChainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeApprovalError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.approval.Handler.CreateChainHandler(r.Context(), actor, req)
	if err != nil {
		writeApprovalDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleDeleteApprovalChain(w http.ResponseWriter, r *http.Request) {
	if !requireApprovalAuthorization(w, r) {
		return
	}
	actor, ok := requireApprovalActor(w, r)
	if !ok {
		return
	}
	if err := s.approval.Handler.DeleteChainHandler(r.Context(), actor, r.PathValue("chain_id")); err != nil {
		writeApprovalDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
