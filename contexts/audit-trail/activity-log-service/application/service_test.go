package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"backstage/contexts/audit-trail/activity-log-service/adapters/memory"
	domainerrors "backstage/contexts/audit-trail/activity-log-service/domain/errors"
	"backstage/contexts/audit-trail/activity-log-service/ports"
)

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time { return f.now }

type seqIDGenerator struct {
	next int
}

func (g *seqIDGenerator) NewID(_ context.Context) (string, error) {
	g.next++
	return fmt.Sprintf("log-%d", g.next), nil
}

func newTestService(store *memory.Store) Service {
	return Service{
		Repo:  store,
		Clock: fixedClock{now: time.Date(2026, time.April, 2, 10, 0, 0, 0, time.UTC)},
		IDGen: &seqIDGenerator{},
	}
}

func TestRecordRejectsMissingActionOrEntityType(t *testing.T) {
	svc := newTestService(memory.NewStore())

	_, err := svc.Record(context.Background(), RecordInput{EntityType: "Campaign"})
	if !errors.Is(err, domainerrors.ErrInvalidLogEntry) {
		t.Fatalf("expected ErrInvalidLogEntry without action, got %v", err)
	}

	_, err = svc.Record(context.Background(), RecordInput{Action: "create"})
	if !errors.Is(err, domainerrors.ErrInvalidLogEntry) {
		t.Fatalf("expected ErrInvalidLogEntry without entity type, got %v", err)
	}
}

func TestRecordTrimsAndStampsEntry(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(store)

	entry, err := svc.Record(context.Background(), RecordInput{
		ActorID:       " admin-1 ",
		Action:        " create ",
		EntityType:    "Campaign",
		EntityID:      "cmp-1",
		NewValue:      []byte(`{"name":"Spring Launch"}`),
		OriginAddress: "203.0.113.7",
		OriginAgent:   "backoffice/1.0",
	})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if entry.LogID == "" {
		t.Fatalf("expected generated log id")
	}
	if entry.ActorID != "admin-1" || entry.Action != "create" {
		t.Fatalf("expected trimmed fields, got %+v", entry)
	}
	if entry.CreatedAt.IsZero() {
		t.Fatalf("expected created_at stamp")
	}
	if store.CountLogs("Campaign", "cmp-1") != 1 {
		t.Fatalf("entry not persisted")
	}
}

func TestQueryReturnsNewestFirstWithFilters(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(store)

	for i := 0; i < 3; i++ {
		if _, err := svc.Record(context.Background(), RecordInput{
			Action:     "update",
			EntityType: "Payment",
			EntityID:   "pay-1",
		}); err != nil {
			t.Fatalf("record failed: %v", err)
		}
	}
	if _, err := svc.Record(context.Background(), RecordInput{
		Action:     "create",
		EntityType: "Campaign",
		EntityID:   "cmp-1",
	}); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	logs, err := svc.Query(context.Background(), ports.LogFilter{EntityType: "Payment", EntityID: "pay-1"})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("expected 3 payment logs, got %d", len(logs))
	}
	if logs[0].LogID != "log-3" {
		t.Fatalf("expected newest entry first, got %s", logs[0].LogID)
	}
}

func TestQueryBoundsPageSize(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(store)

	for i := 0; i < 60; i++ {
		if _, err := svc.Record(context.Background(), RecordInput{
			Action:     "update",
			EntityType: "Payment",
		}); err != nil {
			t.Fatalf("record failed: %v", err)
		}
	}

	logs, err := svc.Query(context.Background(), ports.LogFilter{})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(logs) != 50 {
		t.Fatalf("expected default page of 50, got %d", len(logs))
	}

	logs, err = svc.Query(context.Background(), ports.LogFilter{Limit: 1000})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(logs) != 60 {
		t.Fatalf("expected capped query to return all 60, got %d", len(logs))
	}

	if _, err := svc.Query(context.Background(), ports.LogFilter{Limit: -1}); !errors.Is(err, domainerrors.ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery, got %v", err)
	}
}
