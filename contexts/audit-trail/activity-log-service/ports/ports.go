package ports

import (
	"context"
	"time"

	"backstage/contexts/audit-trail/activity-log-service/domain/entities"
)

type LogFilter struct {
	EntityType string
	EntityID   string
	Limit      int
}

type Repository interface {
	AppendLog(ctx context.Context, entry entities.ActivityLog) error
	ListLogs(ctx context.Context, filter LogFilter) ([]entities.ActivityLog, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
