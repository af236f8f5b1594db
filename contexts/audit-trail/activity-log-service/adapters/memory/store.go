package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"backstage/contexts/audit-trail/activity-log-service/domain/entities"
	"backstage/contexts/audit-trail/activity-log-service/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu   sync.RWMutex
	logs []entities.ActivityLog
}

func NewStore() *Store {
	return &Store{logs: make([]entities.ActivityLog, 0)}
}

func (s *Store) AppendLog(_ context.Context, entry entities.ActivityLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logs = append(s.logs, entry)
	return nil
}

func (s *Store) ListLogs(_ context.Context, filter ports.LogFilter) ([]entities.ActivityLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.ActivityLog, 0, len(s.logs))
	// appended in arrival order, walk backwards for newest first
	for i := len(s.logs) - 1; i >= 0; i-- {
		entry := s.logs[i]
		if filter.EntityType != "" && entry.EntityType != filter.EntityType {
			continue
		}
		if filter.EntityID != "" && entry.EntityID != filter.EntityID {
			continue
		}
		items = append(items, entry)
		if filter.Limit > 0 && len(items) >= filter.Limit {
			break
		}
	}
	return items, nil
}

// CountLogs reports how many records match, used by tests asserting audit
// side effects.
func (s *Store) CountLogs(entityType string, entityID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, entry := range s.logs {
		if entityType != "" && entry.EntityType != strings.TrimSpace(entityType) {
			continue
		}
		if entityID != "" && entry.EntityID != strings.TrimSpace(entityID) {
			continue
		}
		count++
	}
	return count
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
