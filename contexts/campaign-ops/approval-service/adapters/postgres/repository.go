package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"backstage/contexts/campaign-ops/approval-service/domain/entities"
	domainerrors "backstage/contexts/campaign-ops/approval-service/domain/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type approvalChainModel struct {
	ChainID       string   `gorm:"column:chain_id;primaryKey"`
	// chains are deleted rather than deactivated, so one row per entity
	// type is the single-active-chain rule
	EntityType    string   `gorm:"column:entity_type;uniqueIndex"`
	Threshold     float64  `gorm:"column:threshold"`
	RequiredRoles []string `gorm:"column:required_roles;type:text[]"`
	Active        bool     `gorm:"column:active"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (approvalChainModel) TableName() string {
	return "approval_chains"
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
	return r.db.AutoMigrate(&approvalChainModel{})
}

func (r *Repository) CreateChain(ctx context.Context, chain entities.ApprovalChain) error {
	err := r.db.WithContext(ctx).Create(chainFromEntity(chain)).Error
	if isUniqueViolation(err) {
		return domainerrors.ErrChainExists
	}
	return err
}

func (r *Repository) DeleteChain(ctx context.Context, chainID string) error {
	result := r.db.WithContext(ctx).
		Where("chain_id = ?", chainID).
		Delete(&approvalChainModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrChainNotFound
	}
	return nil
}

func (r *Repository) ListChains(ctx context.Context) ([]entities.ApprovalChain, error) {
	var models []approvalChainModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.ApprovalChain, 0, len(models))
	for _, model := range models {
		items = append(items, model.toEntity())
	}
	return items, nil
}

func (r *Repository) FindActiveChain(ctx context.Context, entityType string) (entities.ApprovalChain, error) {
	var model approvalChainModel
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND active = ?", entityType, true).
		Order("created_at DESC").
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.ApprovalChain{}, domainerrors.ErrChainNotFound
	}
	if err != nil {
		return entities.ApprovalChain{}, err
	}
	return model.toEntity(), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func chainFromEntity(item entities.ApprovalChain) *approvalChainModel {
	return &approvalChainModel{
		ChainID:       item.ChainID,
		EntityType:    item.EntityType,
		Threshold:     item.Threshold,
		RequiredRoles: item.RequiredRoles,
		Active:        item.Active,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
}

func (m approvalChainModel) toEntity() entities.ApprovalChain {
	return entities.ApprovalChain{
		ChainID:       m.ChainID,
		EntityType:    m.EntityType,
		Threshold:     m.Threshold,
		RequiredRoles: m.RequiredRoles,
		Active:        m.Active,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
