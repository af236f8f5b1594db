package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"backstage/contexts/campaign-ops/engagement-service/domain/entities"
	domainerrors "backstage/contexts/campaign-ops/engagement-service/domain/errors"
	"backstage/contexts/campaign-ops/engagement-service/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	campaigns   map[string]entities.Campaign
	engagements map[string]entities.Engagement
	submissions map[string]entities.ContentSubmission
	audit       []ports.AuditEntry
}

func NewStore(seed []entities.Campaign) *Store {
	campaigns := make(map[string]entities.Campaign, len(seed))
	for _, item := range seed {
		campaigns[item.CampaignID] = item
	}
	return &Store{
		campaigns:   campaigns,
		engagements: make(map[string]entities.Engagement),
		submissions: make(map[string]entities.ContentSubmission),
		audit:       make([]ports.AuditEntry, 0),
	}
}

func (s *Store) CreateCampaign(
	_ context.Context,
	campaign entities.Campaign,
	engagements []entities.Engagement,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.campaigns[campaign.CampaignID]; exists {
		return domainerrors.ErrInvalidCampaignInput
	}
	s.campaigns[campaign.CampaignID] = campaign
	for _, engagement := range engagements {
		s.engagements[engagement.EngagementID] = engagement
	}
	return nil
}

func (s *Store) UpdateCampaign(_ context.Context, campaign entities.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.campaigns[campaign.CampaignID]; !exists {
		return domainerrors.ErrCampaignNotFound
	}
	s.campaigns[campaign.CampaignID] = campaign
	return nil
}

func (s *Store) UpdateCampaignTotal(_ context.Context, campaignID string, total float64, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	campaign, exists := s.campaigns[campaignID]
	if !exists {
		return domainerrors.ErrCampaignNotFound
	}
	campaign.TotalAmount = total
	campaign.UpdatedAt = updatedAt
	s.campaigns[campaignID] = campaign
	return nil
}

func (s *Store) GetCampaign(_ context.Context, campaignID string) (entities.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.campaigns[strings.TrimSpace(campaignID)]
	if !exists {
		return entities.Campaign{}, domainerrors.ErrCampaignNotFound
	}
	return item, nil
}

func (s *Store) ListCampaigns(_ context.Context, filter ports.CampaignFilter) ([]entities.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Campaign, 0, len(s.campaigns))
	for _, campaign := range s.campaigns {
		if strings.TrimSpace(filter.BrandID) != "" && campaign.BrandID != strings.TrimSpace(filter.BrandID) {
			continue
		}
		if filter.Status != "" && campaign.Status != filter.Status {
			continue
		}
		items = append(items, campaign)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) CreateEngagement(_ context.Context, engagement entities.Engagement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.engagements[engagement.EngagementID]; exists {
		return domainerrors.ErrInvalidEngagementInput
	}
	if _, exists := s.campaigns[engagement.CampaignID]; !exists {
		return domainerrors.ErrCampaignNotFound
	}
	s.engagements[engagement.EngagementID] = engagement
	return nil
}

func (s *Store) UpdateEngagement(_ context.Context, engagement entities.Engagement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.engagements[engagement.EngagementID]; !exists {
		return domainerrors.ErrEngagementNotFound
	}
	s.engagements[engagement.EngagementID] = engagement
	return nil
}

func (s *Store) GetEngagement(_ context.Context, engagementID string) (entities.Engagement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.engagements[strings.TrimSpace(engagementID)]
	if !exists {
		return entities.Engagement{}, domainerrors.ErrEngagementNotFound
	}
	return item, nil
}

func (s *Store) ListEngagementsByCampaign(_ context.Context, campaignID string) ([]entities.Engagement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Engagement, 0)
	for _, engagement := range s.engagements {
		if engagement.CampaignID == strings.TrimSpace(campaignID) {
			items = append(items, engagement)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) CreateSubmission(_ context.Context, submission entities.ContentSubmission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.submissions[submission.SubmissionID]; exists {
		return domainerrors.ErrInvalidSubmissionInput
	}
	if _, exists := s.engagements[submission.EngagementID]; !exists {
		return domainerrors.ErrEngagementNotFound
	}
	s.submissions[submission.SubmissionID] = submission
	return nil
}

func (s *Store) UpdateSubmission(_ context.Context, submission entities.ContentSubmission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.submissions[submission.SubmissionID]; !exists {
		return domainerrors.ErrSubmissionNotFound
	}
	s.submissions[submission.SubmissionID] = submission
	return nil
}

func (s *Store) GetSubmission(_ context.Context, submissionID string) (entities.ContentSubmission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.submissions[strings.TrimSpace(submissionID)]
	if !exists {
		return entities.ContentSubmission{}, domainerrors.ErrSubmissionNotFound
	}
	return item, nil
}

func (s *Store) ListSubmissionsByEngagement(_ context.Context, engagementID string) ([]entities.ContentSubmission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.ContentSubmission, 0)
	for _, submission := range s.submissions {
		if submission.EngagementID == strings.TrimSpace(engagementID) {
			items = append(items, submission)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].SubmittedAt.After(items[j].SubmittedAt)
	})
	return items, nil
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
