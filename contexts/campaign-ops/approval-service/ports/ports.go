package ports

import (
	"context"
	"time"

	"backstage/contexts/campaign-ops/approval-service/domain/entities"
)

// CampaignView is the slice of a campaign the approval gate needs. The
// campaign itself is owned by the engagement service.
type CampaignView struct {
	CampaignID   string
	BrandID      string
	Name         string
	TotalAmount  float64
	Status       string
	Approved     bool
	ApprovalNote string
}

// CampaignGateway reads and marks campaigns across the context boundary.
// MarkApproved sets approved=true and the note; it never touches status.
type CampaignGateway interface {
	GetCampaign(ctx context.Context, campaignID string) (CampaignView, error)
	MarkApproved(ctx context.Context, campaignID string, note string, approvedAt time.Time) error
}

type ChainRepository interface {
	CreateChain(ctx context.Context, chain entities.ApprovalChain) error
	DeleteChain(ctx context.Context, chainID string) error
	ListChains(ctx context.Context) ([]entities.ApprovalChain, error)
	// FindActiveChain returns ErrChainNotFound when no active chain exists
	// for the entity type.
	FindActiveChain(ctx context.Context, entityType string) (entities.ApprovalChain, error)
}

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

type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
