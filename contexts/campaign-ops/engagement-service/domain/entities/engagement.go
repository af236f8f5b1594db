package entities

import "time"

type EngagementStatus string

const (
	EngagementStatusAssigned         EngagementStatus = "assigned"
	EngagementStatusContentSubmitted EngagementStatus = "content_submitted"
	EngagementStatusApproved         EngagementStatus = "approved"
	EngagementStatusPosted           EngagementStatus = "posted"
)

// Engagement is one influencer's assignment within one campaign. The status
// field is operator-settable to any defined state (the flow is assigned →
// content_submitted → approved → posted, but direct jumps are allowed);
// unknown values are rejected. Posted is terminal and does not itself create
// any ledger entry; payout posting is a separate, explicit operation.
type Engagement struct {
	EngagementID string
	CampaignID   string
	InfluencerID string
	Price        float64
	Deliverables string
	Status       EngagementStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (e Engagement) IsPosted() bool {
	return e.Status == EngagementStatusPosted
}

// AcceptsSubmissions reports whether a new content submission may be filed.
// Resubmission after rejection keeps the engagement in content_submitted.
func (e Engagement) AcceptsSubmissions() bool {
	return e.Status == EngagementStatusAssigned || e.Status == EngagementStatusContentSubmitted
}

func IsSupportedEngagementStatus(value EngagementStatus) bool {
	switch value {
	case EngagementStatusAssigned, EngagementStatusContentSubmitted,
		EngagementStatusApproved, EngagementStatusPosted:
		return true
	default:
		return false
	}
}
