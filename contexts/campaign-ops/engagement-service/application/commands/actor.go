package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	application "backstage/contexts/campaign-ops/engagement-service/application"
	"backstage/contexts/campaign-ops/engagement-service/domain/entities"
	"backstage/contexts/campaign-ops/engagement-service/ports"
)

const (
	CapabilityCampaignCreate = "campaign:create"
)

type Actor struct {
	ActorID       string
	Role          string
	OriginAddress string
	OriginAgent   string
}

// recordAudit mirrors a mutation into the activity log. The primary mutation
// has already committed; a failed audit write is logged and swallowed.
func recordAudit(
	ctx context.Context,
	audit ports.AuditRecorder,
	logger *slog.Logger,
	actor Actor,
	entry ports.AuditEntry,
) {
	if audit == nil {
		return
	}
	entry.ActorID = strings.TrimSpace(actor.ActorID)
	entry.OriginAddress = strings.TrimSpace(actor.OriginAddress)
	entry.OriginAgent = strings.TrimSpace(actor.OriginAgent)
	if err := audit.Record(ctx, entry); err != nil {
		application.ResolveLogger(logger).Warn("audit record failed",
			"event", "audit_record_failed",
			"module", "campaign-ops/engagement-service",
			"layer", "application",
			"entity_type", entry.EntityType,
			"entity_id", entry.EntityID,
			"error", err,
		)
	}
}

func campaignSnapshot(campaign entities.Campaign) []byte {
	raw, _ := json.Marshal(map[string]any{
		"campaign_id":   campaign.CampaignID,
		"brand_id":      campaign.BrandID,
		"name":          campaign.Name,
		"total_amount":  campaign.TotalAmount,
		"status":        string(campaign.Status),
		"approved":      campaign.Approved,
		"approval_note": campaign.ApprovalNote,
	})
	return raw
}

func engagementSnapshot(engagement entities.Engagement) []byte {
	raw, _ := json.Marshal(map[string]any{
		"engagement_id": engagement.EngagementID,
		"campaign_id":   engagement.CampaignID,
		"influencer_id": engagement.InfluencerID,
		"price":         engagement.Price,
		"deliverables":  engagement.Deliverables,
		"status":        string(engagement.Status),
	})
	return raw
}

func statusSnapshot(status entities.EngagementStatus) []byte {
	raw, _ := json.Marshal(map[string]any{"status": string(status)})
	return raw
}

func submissionSnapshot(submission entities.ContentSubmission) []byte {
	raw, _ := json.Marshal(map[string]any{
		"submission_id": submission.SubmissionID,
		"engagement_id": submission.EngagementID,
		"file_ref":      submission.FileRef,
		"status":        string(submission.Status),
		"feedback":      submission.Feedback,
	})
	return raw
}
