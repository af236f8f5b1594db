package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	activitylogservice "backstage/contexts/audit-trail/activity-log-service"
	approvalservice "backstage/contexts/campaign-ops/approval-service"
	engagementservice "backstage/contexts/campaign-ops/engagement-service"
	settlementledger "backstage/contexts/finance-core/settlement-ledger"

	httpSwagger "github.com/swaggo/http-swagger"
)

type Server struct {
	mux        *http.ServeMux
	logger     *slog.Logger
	addr       string
	engagement engagementservice.Module
	approval   approvalservice.Module
	ledger     settlementledger.Module
	activity   activitylogservice.Module
}

func New(
	engagement engagementservice.Module,
	approval approvalservice.Module,
	ledger settlementledger.Module,
	activity activitylogservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:        http.NewServeMux(),
		logger:     logger,
		addr:       addr,
		engagement: engagement,
		approval:   approval,
		ledger:     ledger,
		activity:   activity,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /campaigns", s.handleCreateCampaign)
	s.mux.HandleFunc("GET /campaigns", s.handleListCampaigns)
	s.mux.HandleFunc("GET /campaigns/{campaign_id}", s.handleGetCampaign)
	s.mux.HandleFunc("POST /campaigns/{campaign_id}/approve", s.handleApproveCampaign)

	s.mux.HandleFunc("PATCH /engagements/{engagement_id}/status", s.handleChangeEngagementStatus)
	s.mux.HandleFunc("POST /engagements/{engagement_id}/clone", s.handleCloneEngagement)
	s.mux.HandleFunc("GET /engagements/{engagement_id}/content-submissions", s.handleListSubmissions)

	s.mux.HandleFunc("POST /content-submissions", s.handleCreateSubmission)
	s.mux.HandleFunc("PATCH /content-submissions/{submission_id}", s.handleReviewSubmission)

	s.mux.HandleFunc("POST /manual-transactions", s.handleCreateManualTransaction)
	s.mux.HandleFunc("GET /manual-transactions", s.handleListManualTransactions)
	s.mux.HandleFunc("GET /manual-transactions/{transaction_id}", s.handleGetManualTransaction)
	s.mux.HandleFunc("PUT /manual-transactions/{transaction_id}", s.handleUpdateManualTransaction)
	s.mux.HandleFunc("DELETE /manual-transactions/{transaction_id}", s.handleDeleteManualTransaction)

	s.mux.HandleFunc("POST /payments", s.handleCreatePayment)
	s.mux.HandleFunc("GET /payments", s.handleListPayments)
	s.mux.HandleFunc("PUT /payments/{payment_id}", s.handleUpdatePayment)
	s.mux.HandleFunc("DELETE /payments/{payment_id}", s.handleDeletePayment)

	s.mux.HandleFunc("GET /activity-logs", s.handleListActivityLogs)

	s.mux.HandleFunc("GET /approval-chains", s.handleListApprovalChains)
	s.mux.HandleFunc("POST /approval-chains", s.handleCreateApprovalChain)
	s.mux.HandleFunc("DELETE /approval-chains/{chain_id}", s.handleDeleteApprovalChain)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func resolveClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	return r.RemoteAddr
}
