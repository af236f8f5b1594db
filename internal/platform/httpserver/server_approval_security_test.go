package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestApproveCampaignRequiresAuthorization(t *testing.T) {
	server := newTestServer()
	campaignID, _ := createCampaignOverHTTP(t, server)

	req := httptest.NewRequest(http.MethodPost, "/campaigns/"+campaignID+"/approve", nil)
	req.Header.Set("X-User-Id", "admin-1")
	req.Header.Set("X-User-Role", "admin")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestApproveCampaignRequiresActorHeader(t *testing.T) {
	server := newTestServer()
	campaignID, _ := createCampaignOverHTTP(t, server)

	req := httptest.NewRequest(http.MethodPost, "/campaigns/"+campaignID+"/approve", nil)
	req.Header.Set("Authorization", "Bearer token")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestApproveCampaignForbiddenForManager(t *testing.T) {
	server := newTestServer()
	campaignID, _ := createCampaignOverHTTP(t, server)

	req := httptest.NewRequest(http.MethodPost, "/campaigns/"+campaignID+"/approve", nil)
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("X-User-Id", "mgr-1")
	req.Header.Set("X-User-Role", "manager")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestApproveCampaignMarksCampaignApproved(t *testing.T) {
	server := newTestServer()
	campaignID, _ := createCampaignOverHTTP(t, server)

	body := []byte(`{"note":"budget confirmed"}`)
	req := httptest.NewRequest(http.MethodPost, "/campaigns/"+campaignID+"/approve", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("X-User-Id", "admin-1")
	req.Header.Set("X-User-Role", "admin")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var payload struct {
		Campaign struct {
			Approved     bool   `json:"approved"`
			ApprovalNote string `json:"approval_note"`
		} `json:"campaign"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !payload.Campaign.Approved || payload.Campaign.ApprovalNote != "budget confirmed" {
		t.Fatalf("unexpected approval payload: %+v", payload.Campaign)
	}
}

func TestApprovalChainGateBlocksAdminAtThreshold(t *testing.T) {
	server := newTestServer()
	campaignID, _ := createCampaignOverHTTP(t, server)

	chainBody := []byte(`{"entity_type":"Campaign","threshold":4000,"required_roles":["super_admin"]}`)
	req := httptest.NewRequest(http.MethodPost, "/approval-chains", bytes.NewReader(chainBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("X-User-Id", "su-1")
	req.Header.Set("X-User-Role", "super_admin")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	// campaign total is 5000, at or above the 4000 threshold
	req = httptest.NewRequest(http.MethodPost, "/campaigns/"+campaignID+"/approve", nil)
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("X-User-Id", "admin-1")
	req.Header.Set("X-User-Role", "admin")

	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for admin above threshold, got %d body=%s", rr.Code, rr.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/campaigns/"+campaignID+"/approve", nil)
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("X-User-Id", "su-1")
	req.Header.Set("X-User-Role", "super_admin")

	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for super_admin, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestApprovalChainCreateForbiddenForAdmin(t *testing.T) {
	server := newTestServer()

	chainBody := []byte(`{"entity_type":"Campaign","threshold":100000,"required_roles":["super_admin"]}`)
	req := httptest.NewRequest(http.MethodPost, "/approval-chains", bytes.NewReader(chainBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("X-User-Id", "admin-1")
	req.Header.Set("X-User-Role", "admin")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestApprovalChainDeleteNotFound(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodDelete, "/approval-chains/missing", nil)
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("X-User-Id", "su-1")
	req.Header.Set("X-User-Role", "super_admin")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}
