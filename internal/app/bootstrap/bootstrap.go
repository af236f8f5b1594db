package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	activitylogservice "backstage/contexts/audit-trail/activity-log-service"
	activitypostgres "backstage/contexts/audit-trail/activity-log-service/adapters/postgres"
	activityapp "backstage/contexts/audit-trail/activity-log-service/application"
	approvalservice "backstage/contexts/campaign-ops/approval-service"
	approvalpostgres "backstage/contexts/campaign-ops/approval-service/adapters/postgres"
	approvalports "backstage/contexts/campaign-ops/approval-service/ports"
	engagementservice "backstage/contexts/campaign-ops/engagement-service"
	engagementpostgres "backstage/contexts/campaign-ops/engagement-service/adapters/postgres"
	engagementports "backstage/contexts/campaign-ops/engagement-service/ports"
	settlementledger "backstage/contexts/finance-core/settlement-ledger"
	ledgerpostgres "backstage/contexts/finance-core/settlement-ledger/adapters/postgres"
	ledgerports "backstage/contexts/finance-core/settlement-ledger/ports"
	"backstage/internal/platform/config"
	"backstage/internal/platform/db"
	"backstage/internal/platform/httpserver"
	"backstage/internal/shared/capabilities"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	activityRepo := activitypostgres.NewRepository(pg.DB, logger)
	activityModule := activitylogservice.NewModule(activitylogservice.Dependencies{
		Repo:   activityRepo,
		Clock:  activitypostgres.SystemClock{},
		IDGen:  activitypostgres.UUIDGenerator{},
		Logger: logger,
	})

	resolver := capabilities.NewDefaultResolver()

	engagementRepo := engagementpostgres.NewRepository(pg.DB, logger)
	engagementModule := engagementservice.NewModule(engagementservice.Dependencies{
		Campaigns:    engagementRepo,
		Engagements:  engagementRepo,
		Submissions:  engagementRepo,
		Capabilities: resolver,
		Audit:        engagementAuditBridge{recorder: activityModule.Recorder},
		Clock:        engagementpostgres.SystemClock{},
		IDGen:        engagementpostgres.UUIDGenerator{},
		Logger:       logger,
	})

	approvalRepo := approvalpostgres.NewRepository(pg.DB, logger)
	approvalModule := approvalservice.NewModule(approvalservice.Dependencies{
		Campaigns:    approvalpostgres.NewCampaignGateway(pg.DB),
		Chains:       approvalRepo,
		Capabilities: resolver,
		Audit:        approvalAuditBridge{recorder: activityModule.Recorder},
		Clock:        approvalpostgres.SystemClock{},
		IDGen:        approvalpostgres.UUIDGenerator{},
		Logger:       logger,
	})

	ledgerRepo := ledgerpostgres.NewRepository(pg.DB, logger)
	ledgerModule := settlementledger.NewModule(settlementledger.Dependencies{
		Transactions: ledgerRepo,
		Payments:     ledgerRepo,
		Campaigns:    ledgerRepo,
		Audit:        ledgerAuditBridge{recorder: activityModule.Recorder},
		Clock:        ledgerpostgres.SystemClock{},
		IDGen:        ledgerpostgres.UUIDGenerator{},
		Logger:       logger,
	})

	if cfg.AutoMigrate {
		for _, migrate := range []func() error{
			activityRepo.AutoMigrate,
			engagementRepo.AutoMigrate,
			approvalRepo.AutoMigrate,
			ledgerRepo.AutoMigrate,
		} {
			if err := migrate(); err != nil {
				_ = pg.Close()
				return nil, err
			}
		}
	}

	server := httpserver.New(
		engagementModule,
		approvalModule,
		ledgerModule,
		activityModule,
		logger,
		normalizeAddr(cfg.HTTPPort),
	)
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

// The audit bridges funnel each context's mirror entries into the
// activity log without the contexts importing each other.

type engagementAuditBridge struct {
	recorder activityapp.Service
}

func (b engagementAuditBridge) Record(ctx context.Context, entry engagementports.AuditEntry) error {
	_, err := b.recorder.Record(ctx, activityapp.RecordInput{
		ActorID:       entry.ActorID,
		Action:        entry.Action,
		EntityType:    entry.EntityType,
		EntityID:      entry.EntityID,
		EntityName:    entry.EntityName,
		OldValue:      entry.OldValue,
		NewValue:      entry.NewValue,
		OriginAddress: entry.OriginAddress,
		OriginAgent:   entry.OriginAgent,
	})
	return err
}

type approvalAuditBridge struct {
	recorder activityapp.Service
}

func (b approvalAuditBridge) Record(ctx context.Context, entry approvalports.AuditEntry) error {
	_, err := b.recorder.Record(ctx, activityapp.RecordInput{
		ActorID:       entry.ActorID,
		Action:        entry.Action,
		EntityType:    entry.EntityType,
		EntityID:      entry.EntityID,
		EntityName:    entry.EntityName,
		OldValue:      entry.OldValue,
		NewValue:      entry.NewValue,
		OriginAddress: entry.OriginAddress,
		OriginAgent:   entry.OriginAgent,
	})
	return err
}

type ledgerAuditBridge struct {
	recorder activityapp.Service
}

func (b ledgerAuditBridge) Record(ctx context.Context, entry ledgerports.AuditEntry) error {
	_, err := b.recorder.Record(ctx, activityapp.RecordInput{
		ActorID:       entry.ActorID,
		Action:        entry.Action,
		EntityType:    entry.EntityType,
		EntityID:      entry.EntityID,
		EntityName:    entry.EntityName,
		OldValue:      entry.OldValue,
		NewValue:      entry.NewValue,
		OriginAddress: entry.OriginAddress,
		OriginAgent:   entry.OriginAgent,
	})
	return err
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
