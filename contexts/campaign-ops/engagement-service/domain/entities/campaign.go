package entities

import (
	"strings"
	"time"
)

type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusCompleted CampaignStatus = "completed"
)

// Campaign is a brand's engagement container. TotalAmount always equals the
// sum of its engagement prices; it is recomputed whenever engagements change,
// never accepted from a caller. Approved is mutated only by the approval
// gate. A completed campaign is immutable.
type Campaign struct {
	CampaignID   string
	BrandID      string
	Name         string
	TotalAmount  float64
	Status       CampaignStatus
	Approved     bool
	ApprovalNote string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (c Campaign) IsCompleted() bool {
	return c.Status == CampaignStatusCompleted
}

func (c Campaign) ValidateBasics() bool {
	name := strings.TrimSpace(c.Name)
	return name != "" && len(name) <= 200 && strings.TrimSpace(c.BrandID) != ""
}

func IsSupportedCampaignStatus(value CampaignStatus) bool {
	switch value {
	case CampaignStatusDraft, CampaignStatusActive, CampaignStatusCompleted:
		return true
	default:
		return false
	}
}

// CampaignTotal derives the campaign total from its engagements.
func CampaignTotal(engagements []Engagement) float64 {
	total := 0.0
	for _, item := range engagements {
		total += item.Price
	}
	return total
}
