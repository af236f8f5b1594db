package application

import (
	"context"
	"log/slog"
	"strings"

	"backstage/contexts/audit-trail/activity-log-service/domain/entities"
	domainerrors "backstage/contexts/audit-trail/activity-log-service/domain/errors"
	"backstage/contexts/audit-trail/activity-log-service/ports"
)

const (
	defaultLogPageSize = 50
	maxLogPageSize     = 200
)

type RecordInput struct {
	ActorID       string
	Action        string
	EntityType    string
	EntityID      string
	EntityName    string
	OldValue      []byte
	NewValue      []byte
	OriginAddress string
	OriginAgent   string
}

type Service struct {
	Repo   ports.Repository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

// Record appends one change record. Snapshots pass through untouched.
func (s Service) Record(ctx context.Context, input RecordInput) (entities.ActivityLog, error) {
	if strings.TrimSpace(input.Action) == "" || strings.TrimSpace(input.EntityType) == "" {
		return entities.ActivityLog{}, domainerrors.ErrInvalidLogEntry
	}

	logID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.ActivityLog{}, err
	}
	entry := entities.ActivityLog{
		LogID:         logID,
		ActorID:       strings.TrimSpace(input.ActorID),
		Action:        strings.TrimSpace(input.Action),
		EntityType:    strings.TrimSpace(input.EntityType),
		EntityID:      strings.TrimSpace(input.EntityID),
		EntityName:    strings.TrimSpace(input.EntityName),
		OldValue:      append([]byte(nil), input.OldValue...),
		NewValue:      append([]byte(nil), input.NewValue...),
		OriginAddress: strings.TrimSpace(input.OriginAddress),
		OriginAgent:   strings.TrimSpace(input.OriginAgent),
		CreatedAt:     s.Clock.Now().UTC(),
	}
	if err := s.Repo.AppendLog(ctx, entry); err != nil {
		return entities.ActivityLog{}, err
	}

	ResolveLogger(s.Logger).Info("activity recorded",
		"event", "activity_recorded",
		"module", "audit-trail/activity-log-service",
		"layer", "application",
		"log_id", entry.LogID,
		"entity_type", entry.EntityType,
		"entity_id", entry.EntityID,
		"action", entry.Action,
	)
	return entry, nil
}

// Query returns records newest first with a bounded page size.
func (s Service) Query(ctx context.Context, filter ports.LogFilter) ([]entities.ActivityLog, error) {
	if filter.Limit < 0 {
		return nil, domainerrors.ErrInvalidQuery
	}
	if filter.Limit == 0 {
		filter.Limit = defaultLogPageSize
	}
	if filter.Limit > maxLogPageSize {
		filter.Limit = maxLogPageSize
	}
	filter.EntityType = strings.TrimSpace(filter.EntityType)
	filter.EntityID = strings.TrimSpace(filter.EntityID)
	return s.Repo.ListLogs(ctx, filter)
}
