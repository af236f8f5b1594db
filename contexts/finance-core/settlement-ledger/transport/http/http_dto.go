package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ManualTransactionRequest struct {
	InfluencerID   string  `json:"influencer_id,omitempty"`
	InfluencerName string  `json:"influencer_name"`
	BrandID        string  `json:"brand_id,omitempty"`
	BrandName      string  `json:"brand_name"`
	TotalAmount    float64 `json:"total_amount"`
	PayoutAmount   float64 `json:"payout_amount"`
	Notes          string  `json:"notes,omitempty"`
}

type ManualTransactionDTO struct {
	TransactionID  string  `json:"transaction_id"`
	InfluencerID   string  `json:"influencer_id,omitempty"`
	InfluencerName string  `json:"influencer_name"`
	BrandID        string  `json:"brand_id,omitempty"`
	BrandName      string  `json:"brand_name"`
	TotalAmount    float64 `json:"total_amount"`
	PayoutAmount   float64 `json:"payout_amount"`
	Profit         float64 `json:"profit"`
	Margin         float64 `json:"margin"`
	Notes          string  `json:"notes,omitempty"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

type PaymentDTO struct {
	PaymentID     string  `json:"payment_id"`
	CampaignID    string  `json:"campaign_id,omitempty"`
	TransactionID string  `json:"transaction_id,omitempty"`
	Type          string  `json:"type"`
	Amount        float64 `json:"amount"`
	Advance       float64 `json:"advance"`
	Balance       float64 `json:"balance"`
	Status        string  `json:"status"`
	DueDate       string  `json:"due_date,omitempty"`
	PaidDate      string  `json:"paid_date,omitempty"`
	InfluencerID  string  `json:"influencer_id,omitempty"`
	Notes         string  `json:"notes,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

type ManualTransactionResponse struct {
	Transaction ManualTransactionDTO `json:"transaction"`
	Payments    []PaymentDTO         `json:"payments"`
}

type ListManualTransactionsResponse struct {
	Items []ManualTransactionDTO `json:"items"`
}

type CreatePaymentRequest struct {
	CampaignID   string  `json:"campaign_id"`
	Type         string  `json:"type"`
	Amount       float64 `json:"amount"`
	Advance      float64 `json:"advance,omitempty"`
	Status       string  `json:"status,omitempty"`
	DueDate      string  `json:"due_date,omitempty"`
	InfluencerID string  `json:"influencer_id,omitempty"`
	Notes        string  `json:"notes,omitempty"`
}

type UpdatePaymentRequest struct {
	Amount  float64 `json:"amount"`
	Advance float64 `json:"advance,omitempty"`
	Status  string  `json:"status,omitempty"`
	DueDate string  `json:"due_date,omitempty"`
	Notes   string  `json:"notes,omitempty"`
}

type PaymentResponse struct {
	Payment PaymentDTO `json:"payment"`
}

type ListPaymentsResponse struct {
	Items []PaymentDTO `json:"items"`
}
