package entities

import "time"

type PaymentType string
type PaymentStatus string

const (
	PaymentTypeBrandPayment     PaymentType = "brand_payment"
	PaymentTypeInfluencerPayout PaymentType = "influencer_payout"

	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusHold    PaymentStatus = "hold"
)

// Payment is one ledger row. Payments created by a ManualTransaction carry
// its TransactionID and are only ever written as a pair through it.
type Payment struct {
	PaymentID     string
	CampaignID    string
	TransactionID string
	Type          PaymentType
	Amount        float64
	Advance       float64
	Balance       float64
	Status        PaymentStatus
	DueDate       *time.Time
	PaidDate      *time.Time
	InfluencerID  string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (p Payment) IsManaged() bool {
	return p.TransactionID != ""
}

func IsSupportedPaymentType(value PaymentType) bool {
	switch value {
	case PaymentTypeBrandPayment, PaymentTypeInfluencerPayout:
		return true
	default:
		return false
	}
}

func IsSupportedPaymentStatus(value PaymentStatus) bool {
	switch value {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusHold:
		return true
	default:
		return false
	}
}
