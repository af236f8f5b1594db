package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"backstage/contexts/campaign-ops/approval-service/domain/entities"
	domainerrors "backstage/contexts/campaign-ops/approval-service/domain/errors"
	"backstage/contexts/campaign-ops/approval-service/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	chains    map[string]entities.ApprovalChain
	campaigns map[string]ports.CampaignView
	audit     []ports.AuditEntry
}

func NewStore() *Store {
	return &Store{
		chains:    make(map[string]entities.ApprovalChain),
		campaigns: make(map[string]ports.CampaignView),
		audit:     make([]ports.AuditEntry, 0),
	}
}

// RegisterCampaign seeds a campaign view for standalone use. When the
// module is wired into the full application the gateway reads the
// engagement service's store instead.
func (s *Store) RegisterCampaign(view ports.CampaignView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.campaigns[view.CampaignID] = view
}

func (s *Store) GetCampaign(_ context.Context, campaignID string) (ports.CampaignView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	view, exists := s.campaigns[strings.TrimSpace(campaignID)]
	if !exists {
		return ports.CampaignView{}, domainerrors.ErrCampaignNotFound
	}
	return view, nil
}

func (s *Store) MarkApproved(_ context.Context, campaignID string, note string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	view, exists := s.campaigns[strings.TrimSpace(campaignID)]
	if !exists {
		return domainerrors.ErrCampaignNotFound
	}
	view.Approved = true
	view.ApprovalNote = note
	s.campaigns[view.CampaignID] = view
	return nil
}

func (s *Store) CreateChain(_ context.Context, chain entities.ApprovalChain) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.chains[chain.ChainID]; exists {
		return domainerrors.ErrChainExists
	}
	// mirror the unique index on entity_type: the write itself rejects a
	// second active chain, not just the service's pre-check
	for _, existing := range s.chains {
		if existing.Active && existing.EntityType == chain.EntityType {
			return domainerrors.ErrChainExists
		}
	}
	s.chains[chain.ChainID] = chain
	return nil
}

func (s *Store) DeleteChain(_ context.Context, chainID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.chains[chainID]; !exists {
		return domainerrors.ErrChainNotFound
	}
	delete(s.chains, chainID)
	return nil
}

func (s *Store) ListChains(_ context.Context) ([]entities.ApprovalChain, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.ApprovalChain, 0, len(s.chains))
	for _, chain := range s.chains {
		items = append(items, chain)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) FindActiveChain(_ context.Context, entityType string) (entities.ApprovalChain, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, chain := range s.chains {
		if chain.Active && chain.EntityType == strings.TrimSpace(entityType) {
			return chain, nil
		}
	}
	return entities.ApprovalChain{}, domainerrors.ErrChainNotFound
}

func (s *Store) Record(_ context.Context, entry ports.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audit = append(s.audit, entry)
	return nil
}

// AuditEntries exposes the mirrored audit trail for tests.
func (s *Store) AuditEntries() []ports.AuditEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ports.AuditEntry(nil), s.audit...)
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
