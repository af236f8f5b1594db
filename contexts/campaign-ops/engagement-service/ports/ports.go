package ports

import (
	"context"
	"time"

	"backstage/contexts/campaign-ops/engagement-service/domain/entities"
)

type CampaignFilter struct {
	BrandID string
	Status  entities.CampaignStatus
}

type CampaignRepository interface {
	// CreateCampaign writes the campaign and all of its engagements as one
	// atomic unit.
	CreateCampaign(ctx context.Context, campaign entities.Campaign, engagements []entities.Engagement) error
	UpdateCampaign(ctx context.Context, campaign entities.Campaign) error
	// UpdateCampaignTotal writes only the recomputed total so a concurrent
	// approval cannot be overwritten by a stale campaign row.
	UpdateCampaignTotal(ctx context.Context, campaignID string, total float64, updatedAt time.Time) error
	GetCampaign(ctx context.Context, campaignID string) (entities.Campaign, error)
	ListCampaigns(ctx context.Context, filter CampaignFilter) ([]entities.Campaign, error)
}

type EngagementRepository interface {
	CreateEngagement(ctx context.Context, engagement entities.Engagement) error
	UpdateEngagement(ctx context.Context, engagement entities.Engagement) error
	GetEngagement(ctx context.Context, engagementID string) (entities.Engagement, error)
	ListEngagementsByCampaign(ctx context.Context, campaignID string) ([]entities.Engagement, error)
}

type SubmissionRepository interface {
	CreateSubmission(ctx context.Context, submission entities.ContentSubmission) error
	UpdateSubmission(ctx context.Context, submission entities.ContentSubmission) error
	GetSubmission(ctx context.Context, submissionID string) (entities.ContentSubmission, error)
	// ListSubmissionsByEngagement returns submissions newest first.
	ListSubmissionsByEngagement(ctx context.Context, engagementID string) ([]entities.ContentSubmission, error)
}

// CapabilityResolver maps a role onto held capabilities. Injected so the
// static role table can be swapped in tests.
type CapabilityResolver interface {
	HasCapability(role string, capability string) bool
}

type AuditEntry struct {
	ActorID       string
	Action        string
	EntityType    string
	EntityID      string
	EntityName    string
	OldValue      []byte
	NewValue      []byte
	OriginAddress string
	OriginAgent   string
}

// AuditRecorder mirrors mutations into the activity log, best effort.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
