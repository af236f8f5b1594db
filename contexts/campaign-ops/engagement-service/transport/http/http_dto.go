package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type EngagementRequest struct {
	InfluencerID string  `json:"influencer_id"`
	Price        float64 `json:"price"`
	Deliverables string  `json:"deliverables,omitempty"`
}

type CreateCampaignRequest struct {
	BrandID     string              `json:"brand_id"`
	Name        string              `json:"name"`
	Engagements []EngagementRequest `json:"engagements"`
}

type CampaignDTO struct {
	CampaignID   string  `json:"campaign_id"`
	BrandID      string  `json:"brand_id"`
	Name         string  `json:"name"`
	TotalAmount  float64 `json:"total_amount"`
	Status       string  `json:"status"`
	Approved     bool    `json:"approved"`
	ApprovalNote string  `json:"approval_note,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

type EngagementDTO struct {
	EngagementID string  `json:"engagement_id"`
	CampaignID   string  `json:"campaign_id"`
	InfluencerID string  `json:"influencer_id"`
	Price        float64 `json:"price"`
	Deliverables string  `json:"deliverables,omitempty"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

type CampaignResponse struct {
	Campaign    CampaignDTO     `json:"campaign"`
	Engagements []EngagementDTO `json:"engagements"`
}

type ListCampaignsResponse struct {
	Items []CampaignDTO `json:"items"`
}

type ChangeEngagementStatusRequest struct {
	Status string `json:"status"`
}

type EngagementResponse struct {
	Engagement EngagementDTO `json:"engagement"`
}

type CreateSubmissionRequest struct {
	EngagementID string `json:"engagement_id"`
	FileRef      string `json:"file_ref"`
}

type ReviewSubmissionRequest struct {
	Decision string `json:"decision"`
	Feedback string `json:"feedback,omitempty"`
}

type ContentSubmissionDTO struct {
	SubmissionID string `json:"submission_id"`
	EngagementID string `json:"engagement_id"`
	FileRef      string `json:"file_ref"`
	Status       string `json:"status"`
	Feedback     string `json:"feedback,omitempty"`
	SubmittedAt  string `json:"submitted_at"`
	ReviewedAt   string `json:"reviewed_at,omitempty"`
	ReviewedBy   string `json:"reviewed_by,omitempty"`
}

type SubmissionResponse struct {
	Submission ContentSubmissionDTO `json:"submission"`
	Engagement EngagementDTO        `json:"engagement"`
}

type ListSubmissionsResponse struct {
	Items []ContentSubmissionDTO `json:"items"`
}
