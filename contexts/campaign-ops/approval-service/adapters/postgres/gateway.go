package postgresadapter

import (
	"context"
	"errors"
	"time"

	domainerrors "backstage/contexts/campaign-ops/approval-service/domain/errors"
	"backstage/contexts/campaign-ops/approval-service/ports"

	"gorm.io/gorm"
)

type campaignRow struct {
	CampaignID   string  `gorm:"column:campaign_id;primaryKey"`
	BrandID      string  `gorm:"column:brand_id"`
	Name         string  `gorm:"column:name"`
	TotalAmount  float64 `gorm:"column:total_amount"`
	Status       string  `gorm:"column:status"`
	Approved     bool    `gorm:"column:approved"`
	ApprovalNote string  `gorm:"column:approval_note"`
}

func (campaignRow) TableName() string {
	return "campaigns"
}

// CampaignGateway reads the campaigns table owned by the engagement
// service. Approval only ever flips approved and the note.
type CampaignGateway struct {
	db *gorm.DB
}

func NewCampaignGateway(db *gorm.DB) *CampaignGateway {
	return &CampaignGateway{db: db}
}

func (g *CampaignGateway) GetCampaign(ctx context.Context, campaignID string) (ports.CampaignView, error) {
	var row campaignRow
	err := g.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.CampaignView{}, domainerrors.ErrCampaignNotFound
	}
	if err != nil {
		return ports.CampaignView{}, err
	}
	return ports.CampaignView{
		CampaignID:   row.CampaignID,
		BrandID:      row.BrandID,
		Name:         row.Name,
		TotalAmount:  row.TotalAmount,
		Status:       row.Status,
		Approved:     row.Approved,
		ApprovalNote: row.ApprovalNote,
	}, nil
}

func (g *CampaignGateway) MarkApproved(ctx context.Context, campaignID string, note string, approvedAt time.Time) error {
	result := g.db.WithContext(ctx).
		Model(&campaignRow{}).
		Where("campaign_id = ?", campaignID).
		Updates(map[string]any{
			"approved":      true,
			"approval_note": note,
			"updated_at":    approvedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCampaignNotFound
	}
	return nil
}
