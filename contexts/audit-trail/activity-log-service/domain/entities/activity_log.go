package entities

import "time"

// ActivityLog is one append-only change record. OldValue/NewValue hold
// opaque serialized snapshots of the entity before and after the mutation;
// the recorder never interprets them.
type ActivityLog struct {
	LogID         string
	ActorID       string
	Action        string
	EntityType    string
	EntityID      string
	EntityName    string
	OldValue      []byte
	NewValue      []byte
	OriginAddress string
	OriginAgent   string
	CreatedAt     time.Time
}
