package application

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"backstage/contexts/campaign-ops/approval-service/domain/entities"
	domainerrors "backstage/contexts/campaign-ops/approval-service/domain/errors"
	"backstage/contexts/campaign-ops/approval-service/ports"
)

const (
	CapabilityCampaignApprove     = "campaign:approve"
	CapabilityApprovalChainManage = "approval_chain:manage"

	campaignEntityType = "Campaign"
)

type Actor struct {
	ActorID       string
	Role          string
	OriginAddress string
	OriginAgent   string
}

type ApproveCampaignInput struct {
	CampaignID string
	Note       string
}

type ChainInput struct {
	EntityType    string
	Threshold     float64
	RequiredRoles []string
}

type Service struct {
	Campaigns    ports.CampaignGateway
	Chains       ports.ChainRepository
	Capabilities ports.CapabilityResolver
	Audit        ports.AuditRecorder
	Clock        ports.Clock
	IDGen        ports.IDGenerator
	Logger       *slog.Logger
}

// ApproveCampaign decides whether the campaign may carry approved=true.
// With no active chain for campaigns, the campaign:approve capability is
// enough. With a chain, campaigns at or above the threshold need the
// actor's role to be one of the chain's required roles; campaigns below
// the threshold bypass the chain and fall back to the capability check.
// Approving an already-approved campaign is a no-op success.
func (s Service) ApproveCampaign(ctx context.Context, actor Actor, input ApproveCampaignInput) (ports.CampaignView, error) {
	campaign, err := s.Campaigns.GetCampaign(ctx, strings.TrimSpace(input.CampaignID))
	if err != nil {
		return ports.CampaignView{}, err
	}
	if campaign.Approved {
		ResolveLogger(s.Logger).Info("campaign already approved",
			"event", "campaign_approval_noop",
			"module", "campaign-ops/approval-service",
			"layer", "application",
			"campaign_id", campaign.CampaignID,
		)
		return campaign, nil
	}

	if err := s.authorizeApproval(ctx, actor, campaign); err != nil {
		return ports.CampaignView{}, err
	}

	now := s.Clock.Now().UTC()
	note := strings.TrimSpace(input.Note)
	if err := s.Campaigns.MarkApproved(ctx, campaign.CampaignID, note, now); err != nil {
		return ports.CampaignView{}, err
	}

	before := campaign
	campaign.Approved = true
	campaign.ApprovalNote = note
	s.recordAudit(ctx, actor, ports.AuditEntry{
		Action:     "approve",
		EntityType: campaignEntityType,
		EntityID:   campaign.CampaignID,
		EntityName: campaign.Name,
		OldValue:   approvalSnapshot(before),
		NewValue:   approvalSnapshot(campaign),
	})

	ResolveLogger(s.Logger).Info("campaign approved",
		"event", "campaign_approved",
		"module", "campaign-ops/approval-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"total_amount", campaign.TotalAmount,
		"actor_role", actor.Role,
	)
	return campaign, nil
}

func (s Service) authorizeApproval(ctx context.Context, actor Actor, campaign ports.CampaignView) error {
	chain, err := s.Chains.FindActiveChain(ctx, campaignEntityType)
	if errors.Is(err, domainerrors.ErrChainNotFound) {
		return s.requireCapability(actor, CapabilityCampaignApprove)
	}
	if err != nil {
		return err
	}
	if !chain.AppliesTo(campaign.TotalAmount) {
		return s.requireCapability(actor, CapabilityCampaignApprove)
	}
	if !chain.RequiresRole(actor.Role) {
		return domainerrors.ErrUnauthorized
	}
	return nil
}

func (s Service) CreateChain(ctx context.Context, actor Actor, input ChainInput) (entities.ApprovalChain, error) {
	if err := s.requireCapability(actor, CapabilityApprovalChainManage); err != nil {
		return entities.ApprovalChain{}, err
	}

	roles := make([]string, 0, len(input.RequiredRoles))
	for _, role := range input.RequiredRoles {
		if trimmed := strings.TrimSpace(role); trimmed != "" {
			roles = append(roles, trimmed)
		}
	}
	now := s.Clock.Now().UTC()
	chainID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.ApprovalChain{}, err
	}
	chain := entities.ApprovalChain{
		ChainID:       chainID,
		EntityType:    strings.TrimSpace(input.EntityType),
		Threshold:     input.Threshold,
		RequiredRoles: roles,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if !chain.ValidateBasics() {
		return entities.ApprovalChain{}, domainerrors.ErrInvalidChainInput
	}

	// one active chain per entity type, settled here rather than at read time
	if _, err := s.Chains.FindActiveChain(ctx, chain.EntityType); err == nil {
		return entities.ApprovalChain{}, domainerrors.ErrChainExists
	} else if !errors.Is(err, domainerrors.ErrChainNotFound) {
		return entities.ApprovalChain{}, err
	}

	if err := s.Chains.CreateChain(ctx, chain); err != nil {
		return entities.ApprovalChain{}, err
	}
	s.recordAudit(ctx, actor, ports.AuditEntry{
		Action:     "create",
		EntityType: "ApprovalChain",
		EntityID:   chain.ChainID,
		NewValue:   chainSnapshot(chain),
	})

	ResolveLogger(s.Logger).Info("approval chain created",
		"event", "approval_chain_created",
		"module", "campaign-ops/approval-service",
		"layer", "application",
		"chain_id", chain.ChainID,
		"entity_type", chain.EntityType,
		"threshold", chain.Threshold,
	)
	return chain, nil
}

func (s Service) DeleteChain(ctx context.Context, actor Actor, chainID string) error {
	if err := s.requireCapability(actor, CapabilityApprovalChainManage); err != nil {
		return err
	}

	chains, err := s.Chains.ListChains(ctx)
	if err != nil {
		return err
	}
	var existing *entities.ApprovalChain
	for i := range chains {
		if chains[i].ChainID == strings.TrimSpace(chainID) {
			existing = &chains[i]
			break
		}
	}
	if existing == nil {
		return domainerrors.ErrChainNotFound
	}

	if err := s.Chains.DeleteChain(ctx, existing.ChainID); err != nil {
		return err
	}
	s.recordAudit(ctx, actor, ports.AuditEntry{
		Action:     "delete",
		EntityType: "ApprovalChain",
		EntityID:   existing.ChainID,
		OldValue:   chainSnapshot(*existing),
	})

	ResolveLogger(s.Logger).Info("approval chain deleted",
		"event", "approval_chain_deleted",
		"module", "campaign-ops/approval-service",
		"layer", "application",
		"chain_id", existing.ChainID,
		"entity_type", existing.EntityType,
	)
	return nil
}

func (s Service) ListChains(ctx context.Context) ([]entities.ApprovalChain, error) {
	return s.Chains.ListChains(ctx)
}

func (s Service) requireCapability(actor Actor, capability string) error {
	if s.Capabilities == nil || !s.Capabilities.HasCapability(actor.Role, capability) {
		return domainerrors.ErrUnauthorized
	}
	return nil
}

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
			"module", "campaign-ops/approval-service",
			"layer", "application",
			"entity_type", entry.EntityType,
			"entity_id", entry.EntityID,
			"error", err,
		)
	}
}

func approvalSnapshot(campaign ports.CampaignView) []byte {
	raw, _ := json.Marshal(map[string]any{
		"campaign_id":   campaign.CampaignID,
		"total_amount":  campaign.TotalAmount,
		"approved":      campaign.Approved,
		"approval_note": campaign.ApprovalNote,
	})
	return raw
}

func chainSnapshot(chain entities.ApprovalChain) []byte {
	raw, _ := json.Marshal(map[string]any{
		"chain_id":       chain.ChainID,
		"entity_type":    chain.EntityType,
		"threshold":      chain.Threshold,
		"required_roles": chain.RequiredRoles,
		"active":         chain.Active,
	})
	return raw
}
