package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"backstage/contexts/audit-trail/activity-log-service/domain/entities"
	domainerrors "backstage/contexts/audit-trail/activity-log-service/domain/errors"
	"backstage/contexts/audit-trail/activity-log-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

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
	return r.db.AutoMigrate(&activityLogModel{})
}

func (r *Repository) AppendLog(ctx context.Context, entry entities.ActivityLog) error {
	row := activityLogModel{
		LogID:         strings.TrimSpace(entry.LogID),
		ActorID:       strings.TrimSpace(entry.ActorID),
		Action:        strings.TrimSpace(entry.Action),
		EntityType:    strings.TrimSpace(entry.EntityType),
		EntityID:      strings.TrimSpace(entry.EntityID),
		EntityName:    strings.TrimSpace(entry.EntityName),
		OldValue:      append([]byte(nil), entry.OldValue...),
		NewValue:      append([]byte(nil), entry.NewValue...),
		OriginAddress: strings.TrimSpace(entry.OriginAddress),
		OriginAgent:   strings.TrimSpace(entry.OriginAgent),
		CreatedAt:     entry.CreatedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidLogEntry
		}
		return err
	}
	return nil
}

func (r *Repository) ListLogs(ctx context.Context, filter ports.LogFilter) ([]entities.ActivityLog, error) {
	tx := r.db.WithContext(ctx).Model(&activityLogModel{})
	if strings.TrimSpace(filter.EntityType) != "" {
		tx = tx.Where("entity_type = ?", strings.TrimSpace(filter.EntityType))
	}
	if strings.TrimSpace(filter.EntityID) != "" {
		tx = tx.Where("entity_id = ?", strings.TrimSpace(filter.EntityID))
	}
	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}

	var rows []activityLogModel
	if err := tx.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]entities.ActivityLog, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type activityLogModel struct {
	LogID         string    `gorm:"column:log_id;primaryKey"`
	ActorID       string    `gorm:"column:actor_id"`
	Action        string    `gorm:"column:action"`
	EntityType    string    `gorm:"column:entity_type"`
	EntityID      string    `gorm:"column:entity_id"`
	EntityName    string    `gorm:"column:entity_name"`
	OldValue      []byte    `gorm:"column:old_value;type:jsonb"`
	NewValue      []byte    `gorm:"column:new_value;type:jsonb"`
	OriginAddress string    `gorm:"column:origin_address"`
	OriginAgent   string    `gorm:"column:origin_agent"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (activityLogModel) TableName() string {
	return "activity_logs"
}

func (m activityLogModel) toEntity() entities.ActivityLog {
	return entities.ActivityLog{
		LogID:         m.LogID,
		ActorID:       m.ActorID,
		Action:        m.Action,
		EntityType:    m.EntityType,
		EntityID:      m.EntityID,
		EntityName:    m.EntityName,
		OldValue:      append([]byte(nil), m.OldValue...),
		NewValue:      append([]byte(nil), m.NewValue...),
		OriginAddress: m.OriginAddress,
		OriginAgent:   m.OriginAgent,
		CreatedAt:     m.CreatedAt.UTC(),
	}
}
