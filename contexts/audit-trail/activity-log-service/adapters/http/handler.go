package httpadapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"backstage/contexts/audit-trail/activity-log-service/application"
	"backstage/contexts/audit-trail/activity-log-service/domain/entities"
	"backstage/contexts/audit-trail/activity-log-service/ports"
	httptransport "backstage/contexts/audit-trail/activity-log-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) ListLogsHandler(
	ctx context.Context,
	entityType string,
	entityID string,
	limit int,
) (httptransport.ListActivityLogsResponse, error) {
	items, err := h.Service.Query(ctx, ports.LogFilter{
		EntityType: entityType,
		EntityID:   entityID,
		Limit:      limit,
	})
	if err != nil {
		return httptransport.ListActivityLogsResponse{}, err
	}

	result := make([]httptransport.ActivityLogDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapActivityLog(item))
	}
	return httptransport.ListActivityLogsResponse{Items: result}, nil
}

func mapActivityLog(item entities.ActivityLog) httptransport.ActivityLogDTO {
	return httptransport.ActivityLogDTO{
		LogID:         item.LogID,
		ActorID:       item.ActorID,
		Action:        item.Action,
		EntityType:    item.EntityType,
		EntityID:      item.EntityID,
		EntityName:    item.EntityName,
		OldValue:      json.RawMessage(item.OldValue),
		NewValue:      json.RawMessage(item.NewValue),
		OriginAddress: item.OriginAddress,
		OriginAgent:   item.OriginAgent,
		CreatedAt:     item.CreatedAt.UTC().Format(time.RFC3339),
	}
}
