package http

import "encoding/json"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ActivityLogDTO struct {
	LogID         string          `json:"log_id"`
	ActorID       string          `json:"actor_id,omitempty"`
	Action        string          `json:"action"`
	EntityType    string          `json:"entity_type"`
	EntityID      string          `json:"entity_id,omitempty"`
	EntityName    string          `json:"entity_name,omitempty"`
	OldValue      json.RawMessage `json:"old_value,omitempty"`
	NewValue      json.RawMessage `json:"new_value,omitempty"`
	OriginAddress string          `json:"origin_address,omitempty"`
	OriginAgent   string          `json:"origin_agent,omitempty"`
	CreatedAt     string          `json:"created_at"`
}

type ListActivityLogsResponse struct {
	Items []ActivityLogDTO `json:"items"`
}
