package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ApproveCampaignRequest struct {
	Note string `json:"note,omitempty"`
}

type CampaignApprovalDTO struct {
	CampaignID   string  `json:"campaign_id"`
	Name         string  `json:"name"`
	TotalAmount  float64 `json:"total_amount"`
	Status       string  `json:"status"`
	Approved     bool    `json:"approved"`
	ApprovalNote string  `json:"approval_note,omitempty"`
}

type ApproveCampaignResponse struct {
	Campaign CampaignApprovalDTO `json:"campaign"`
}

type CreateChainRequest struct {
	EntityType    string   `json:"entity_type"`
	Threshold     float64  `json:"threshold"`
	RequiredRoles []string `json:"required_roles"`
}

type ApprovalChainDTO struct {
	ChainID       string   `json:"chain_id"`
	EntityType    string   `json:"entity_type"`
	Threshold     float64  `json:"threshold"`
	RequiredRoles []string `json:"required_roles"`
	Active        bool     `json:"active"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}

type ApprovalChainResponse struct {
	Chain ApprovalChainDTO `json:"chain"`
}

type ListApprovalChainsResponse struct {
	Items []ApprovalChainDTO `json:"items"`
}
