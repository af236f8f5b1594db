package approvalservice

import (
	"log/slog"

	httpadapter "backstage/contexts/campaign-ops/approval-service/adapters/http"
	"backstage/contexts/campaign-ops/approval-service/adapters/memory"
	"backstage/contexts/campaign-ops/approval-service/application"
	"backstage/contexts/campaign-ops/approval-service/ports"
	"backstage/internal/shared/capabilities"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Campaigns    ports.CampaignGateway
	Chains       ports.ChainRepository
	Capabilities ports.CapabilityResolver
	Audit        ports.AuditRecorder
	Clock        ports.Clock
	IDGen        ports.IDGenerator
	Logger       *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Campaigns:    deps.Campaigns,
		Chains:       deps.Chains,
		Capabilities: deps.Capabilities,
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

// NewInMemoryModule wires the module against its own store. The campaign
// gateway may be overridden to point at the engagement service's store;
// when nil, the local store's seeded views are used.
func NewInMemoryModule(gateway ports.CampaignGateway, logger *slog.Logger) Module {
	store := memory.NewStore()
	if gateway == nil {
		gateway = store
	}
	module := NewModule(Dependencies{
		Campaigns:    gateway,
		Chains:       store,
		Capabilities: capabilities.NewDefaultResolver(),
		Audit:        store,
		Clock:        store,
		IDGen:        store,
		Logger:       logger,
	})
	module.Store = store
	return module
}
