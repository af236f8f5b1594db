package entities

import (
	"math"
	"time"
)

// ManualTransaction is a hand-entered financial event. It always owns exactly
// two child payments: a brand payment for TotalAmount and an influencer
// payout for PayoutAmount. InfluencerName/BrandName are denormalized display
// copies and may drift from the live records; that is deliberate.
type ManualTransaction struct {
	TransactionID  string
	InfluencerID   string
	InfluencerName string
	BrandID        string
	BrandName      string
	TotalAmount    float64
	PayoutAmount   float64
	Profit         float64
	Margin         float64
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Recompute derives Profit and Margin from the current amounts. Derived
// values are never carried over from a previous edit.
func (t *ManualTransaction) Recompute() {
	t.Profit = round2(t.TotalAmount - t.PayoutAmount)
	if t.TotalAmount == 0 {
		t.Margin = 0
		return
	}
	t.Margin = round2(t.Profit / t.TotalAmount * 100)
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
