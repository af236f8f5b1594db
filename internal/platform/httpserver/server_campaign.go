package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"backstage/contexts/campaign-ops/engagement-service/application/commands"
	campaignerrors "backstage/contexts/campaign-ops/engagement-service/domain/errors"
	campaignhttp "backstage/contexts/campaign-ops/engagement-service/transport/http"
)

func writeCampaignError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, campaignhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeCampaignDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, campaignerrors.ErrUnauthorized):
		writeCampaignError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, campaignerrors.ErrCampaignNotFound),
		errors.Is(err, campaignerrors.ErrEngagementNotFound),
		errors.Is(err, campaignerrors.ErrSubmissionNotFound):
		writeCampaignError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, campaignerrors.ErrInvalidCampaignInput),
		errors.Is(err, campaignerrors.ErrInvalidEngagementInput),
		errors.Is(err, campaignerrors.ErrInvalidSubmissionInput),
		errors.Is(err, campaignerrors.ErrUnknownEngagementStatus),
		errors.Is(err, campaignerrors.ErrUnknownReviewDecision):
		writeCampaignError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, campaignerrors.ErrCampaignCompleted),
		errors.Is(err, campaignerrors.ErrEngagementClosed),
		errors.Is(err, campaignerrors.ErrSubmissionAlreadyDecided):
		writeCampaignError(w, http.StatusConflict, "conflict", err.Error())
	default:
		writeCampaignError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func requireCampaignAuthorization(w http.ResponseWriter, r *http.Request) bool {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		writeCampaignError(w, http.StatusUnauthorized, "unauthorized", "Authorization bearer token is required")
		return false
	}
	return true
}

func requireCampaignActor(w http.ResponseWriter, r *http.Request) (commands.Actor, bool) {
	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if userID == "" {
		writeCampaignError(w, http.StatusUnauthorized, "user_required", "X-User-Id header is required")
		return commands.Actor{}, false
	}
	return commands.Actor{
		ActorID:       userID,
		Role:          strings.TrimSpace(r.Header.Get("X-User-Role")),
		OriginAddress: resolveClientIP(r),
		OriginAgent:   r.UserAgent(),
	}, true
}

func (s *Server) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	if !requireCampaignAuthorization(w, r) {
		return
	}
	actor, ok := requireCampaignActor(w, r)
	if !ok {
		return
	}
	var req campaignhttp.CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCampaignError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.engagement.Handler.CreateCampaignHandler(r.Context(), actor, req)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	resp, err := s.engagement.Handler.ListCampaignsHandler(
		r.Context(),
		query.Get("brand_id"),
		query.Get("status"),
	)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	resp, err := s.engagement.Handler.GetCampaignHandler(r.Context(), r.PathValue("campaign_id"))
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleChangeEngagementStatus(w http.ResponseWriter, r *http.Request) {
	if !requireCampaignAuthorization(w, r) {
		return
	}
	actor, ok := requireCampaignActor(w, r)
	if !ok {
		return
	}
	var req campaignhttp.ChangeEngagementStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCampaignError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.engagement.Handler.ChangeEngagementStatusHandler(
		r.Context(),
		actor,
		r.PathValue("engagement_id"),
		req,
	)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCloneEngagement(w http.ResponseWriter, r *http.Request) {
	if !requireCampaignAuthorization(w, r) {
		return
	}
	actor, ok := requireCampaignActor(w, r)
	if !ok {
		return
	}
	resp, err := s.engagement.Handler.CloneEngagementHandler(
		r.Context(),
		actor,
		r.PathValue("engagement_id"),
	)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleCreateSubmission(w http.ResponseWriter, r *http.Request) {
	if !requireCampaignAuthorization(w, r) {
		return
	}
	actor, ok := requireCampaignActor(w, r)
	if !ok {
		return
	}
	var req campaignhttp.CreateSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCampaignError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.engagement.Handler.CreateSubmissionHandler(
		r.Context(),
		actor,
		req.EngagementID,
		req,
	)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleReviewSubmission(w http.ResponseWriter, r *http.Request) {
	if !requireCampaignAuthorization(w, r) {
		return
	}
	actor, ok := requireCampaignActor(w, r)
	if !ok {
		return
	}
	var req campaignhttp.ReviewSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCampaignError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.engagement.Handler.ReviewSubmissionHandler(
		r.Context(),
		actor,
		r.PathValue("submission_id"),
		req,
	)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	resp, err := s.engagement.Handler.ListSubmissionsHandler(r.Context(), r.PathValue("engagement_id"))
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
