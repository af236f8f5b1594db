package settlementledger

import (
	"log/slog"

	httpadapter "backstage/contexts/finance-core/settlement-ledger/adapters/http"
	"backstage/contexts/finance-core/settlement-ledger/adapters/memory"
	"backstage/contexts/finance-core/settlement-ledger/application"
	"backstage/contexts/finance-core/settlement-ledger/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Transactions ports.TransactionRepository
	Payments     ports.PaymentRepository
	Campaigns    ports.CampaignDirectory
	Audit        ports.AuditRecorder
	Clock        ports.Clock
	IDGen        ports.IDGenerator
	Logger       *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Transactions: deps.Transactions,
		Payments:     deps.Payments,
		Campaigns:    deps.Campaigns,
		Audit:        deps.Audit,
		Clock:        deps.Clock,
		IDGen:        deps.IDGen,
		Logger:       deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}
}

func NewInMemoryModule(knownCampaigns []string, logger *slog.Logger) Module {
	store := memory.NewStore(knownCampaigns)
	module := NewModule(Dependencies{
		Transactions: store,
		Payments:     store,
		Campaigns:    store,
		Audit:        store,
		Clock:        store,
		IDGen:        store,
		Logger:       logger,
	})
	module.Store = store
	return module
}
