package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"backstage/contexts/campaign-ops/engagement-service/domain/entities"
	domainerrors "backstage/contexts/campaign-ops/engagement-service/domain/errors"
	"backstage/contexts/campaign-ops/engagement-service/ports"

	"gorm.io/gorm"
)

type campaignModel struct {
	CampaignID   string  `gorm:"column:campaign_id;primaryKey"`
	BrandID      string  `gorm:"column:brand_id;index"`
	Name         string  `gorm:"column:name"`
	TotalAmount  float64 `gorm:"column:total_amount"`
	Status       string  `gorm:"column:status;index"`
	Approved     bool    `gorm:"column:approved"`
	ApprovalNote string  `gorm:"column:approval_note"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (campaignModel) TableName() string {
	return "campaigns"
}

type engagementModel struct {
	EngagementID string  `gorm:"column:engagement_id;primaryKey"`
	CampaignID   string  `gorm:"column:campaign_id;index"`
	InfluencerID string  `gorm:"column:influencer_id;index"`
	Price        float64 `gorm:"column:price"`
	Deliverables string  `gorm:"column:deliverables"`
	Status       string  `gorm:"column:status;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (engagementModel) TableName() string {
	return "campaign_influencers"
}

type submissionModel struct {
	SubmissionID string `gorm:"column:submission_id;primaryKey"`
	EngagementID string `gorm:"column:engagement_id;index"`
	FileRef      string `gorm:"column:file_ref"`
	Status       string `gorm:"column:status"`
	Feedback     string `gorm:"column:feedback"`
	SubmittedAt  time.Time
	ReviewedAt   *time.Time
	ReviewedBy   string `gorm:"column:reviewed_by"`
}

func (submissionModel) TableName() string {
	return "content_submissions"
}

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&campaignModel{}, &engagementModel{}, &submissionModel{})
}

func (r *Repository) CreateCampaign(
	ctx context.Context,
	campaign entities.Campaign,
	engagements []entities.Engagement,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(campaignFromEntity(campaign)).Error; err != nil {
			return err
		}
		for _, engagement := range engagements {
			if err := tx.Create(engagementFromEntity(engagement)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repository) UpdateCampaign(ctx context.Context, campaign entities.Campaign) error {
	result := r.db.WithContext(ctx).
		Model(&campaignModel{}).
		Where("campaign_id = ?", campaign.CampaignID).
		Updates(map[string]any{
			"brand_id":      campaign.BrandID,
			"name":          campaign.Name,
			"total_amount":  campaign.TotalAmount,
			"status":        string(campaign.Status),
			"approved":      campaign.Approved,
			"approval_note": campaign.ApprovalNote,
			"updated_at":    campaign.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCampaignNotFound
	}
	return nil
}

func (r *Repository) UpdateCampaignTotal(ctx context.Context, campaignID string, total float64, updatedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&campaignModel{}).
		Where("campaign_id = ?", campaignID).
		Updates(map[string]any{
			"total_amount": total,
			"updated_at":   updatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCampaignNotFound
	}
	return nil
}

func (r *Repository) GetCampaign(ctx context.Context, campaignID string) (entities.Campaign, error) {
	var model campaignModel
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Campaign{}, domainerrors.ErrCampaignNotFound
	}
	if err != nil {
		return entities.Campaign{}, err
	}
	return model.toEntity(), nil
}

func (r *Repository) ListCampaigns(ctx context.Context, filter ports.CampaignFilter) ([]entities.Campaign, error) {
	query := r.db.WithContext(ctx).Model(&campaignModel{})
	if filter.BrandID != "" {
		query = query.Where("brand_id = ?", filter.BrandID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	var models []campaignModel
	if err := query.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Campaign, 0, len(models))
	for _, model := range models {
		items = append(items, model.toEntity())
	}
	return items, nil
}

func (r *Repository) CreateEngagement(ctx context.Context, engagement entities.Engagement) error {
	return r.db.WithContext(ctx).Create(engagementFromEntity(engagement)).Error
}

func (r *Repository) UpdateEngagement(ctx context.Context, engagement entities.Engagement) error {
	result := r.db.WithContext(ctx).
		Model(&engagementModel{}).
		Where("engagement_id = ?", engagement.EngagementID).
		Updates(map[string]any{
			"influencer_id": engagement.InfluencerID,
			"price":         engagement.Price,
			"deliverables":  engagement.Deliverables,
			"status":        string(engagement.Status),
			"updated_at":    engagement.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrEngagementNotFound
	}
	return nil
}

func (r *Repository) GetEngagement(ctx context.Context, engagementID string) (entities.Engagement, error) {
	var model engagementModel
	err := r.db.WithContext(ctx).
		Where("engagement_id = ?", engagementID).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Engagement{}, domainerrors.ErrEngagementNotFound
	}
	if err != nil {
		return entities.Engagement{}, err
	}
	return model.toEntity(), nil
}

func (r *Repository) ListEngagementsByCampaign(ctx context.Context, campaignID string) ([]entities.Engagement, error) {
	var models []engagementModel
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Engagement, 0, len(models))
	for _, model := range models {
		items = append(items, model.toEntity())
	}
	return items, nil
}

func (r *Repository) CreateSubmission(ctx context.Context, submission entities.ContentSubmission) error {
	return r.db.WithContext(ctx).Create(submissionFromEntity(submission)).Error
}

func (r *Repository) UpdateSubmission(ctx context.Context, submission entities.ContentSubmission) error {
	result := r.db.WithContext(ctx).
		Model(&submissionModel{}).
		Where("submission_id = ?", submission.SubmissionID).
		Updates(map[string]any{
			"status":      string(submission.Status),
			"feedback":    submission.Feedback,
			"reviewed_at": submission.ReviewedAt,
			"reviewed_by": submission.ReviewedBy,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrSubmissionNotFound
	}
	return nil
}

func (r *Repository) GetSubmission(ctx context.Context, submissionID string) (entities.ContentSubmission, error) {
	var model submissionModel
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.ContentSubmission{}, domainerrors.ErrSubmissionNotFound
	}
	if err != nil {
		return entities.ContentSubmission{}, err
	}
	return model.toEntity(), nil
}

func (r *Repository) ListSubmissionsByEngagement(ctx context.Context, engagementID string) ([]entities.ContentSubmission, error) {
	var models []submissionModel
	err := r.db.WithContext(ctx).
		Where("engagement_id = ?", engagementID).
		Order("submitted_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.ContentSubmission, 0, len(models))
	for _, model := range models {
		items = append(items, model.toEntity())
	}
	return items, nil
}

func campaignFromEntity(item entities.Campaign) *campaignModel {
	return &campaignModel{
		CampaignID:   item.CampaignID,
		BrandID:      item.BrandID,
		Name:         item.Name,
		TotalAmount:  item.TotalAmount,
		Status:       string(item.Status),
		Approved:     item.Approved,
		ApprovalNote: item.ApprovalNote,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

func (m campaignModel) toEntity() entities.Campaign {
	return entities.Campaign{
		CampaignID:   m.CampaignID,
		BrandID:      m.BrandID,
		Name:         m.Name,
		TotalAmount:  m.TotalAmount,
		Status:       entities.CampaignStatus(m.Status),
		Approved:     m.Approved,
		ApprovalNote: m.ApprovalNote,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func engagementFromEntity(item entities.Engagement) *engagementModel {
	return &engagementModel{
		EngagementID: item.EngagementID,
		CampaignID:   item.CampaignID,
		InfluencerID: item.InfluencerID,
		Price:        item.Price,
		Deliverables: item.Deliverables,
		Status:       string(item.Status),
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

func (m engagementModel) toEntity() entities.Engagement {
	return entities.Engagement{
		EngagementID: m.EngagementID,
		CampaignID:   m.CampaignID,
		InfluencerID: m.InfluencerID,
		Price:        m.Price,
		Deliverables: m.Deliverables,
		Status:       entities.EngagementStatus(m.Status),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func submissionFromEntity(item entities.ContentSubmission) *submissionModel {
	return &submissionModel{
		SubmissionID: item.SubmissionID,
		EngagementID: item.EngagementID,
		FileRef:      item.FileRef,
		Status:       string(item.Status),
		Feedback:     item.Feedback,
		SubmittedAt:  item.SubmittedAt,
		ReviewedAt:   item.ReviewedAt,
		ReviewedBy:   item.ReviewedBy,
	}
}

func (m submissionModel) toEntity() entities.ContentSubmission {
	return entities.ContentSubmission{
		SubmissionID: m.SubmissionID,
		EngagementID: m.EngagementID,
		FileRef:      m.FileRef,
		Status:       entities.SubmissionStatus(m.Status),
		Feedback:     m.Feedback,
		SubmittedAt:  m.SubmittedAt,
		ReviewedAt:   m.ReviewedAt,
		ReviewedBy:   m.ReviewedBy,
	}
}
