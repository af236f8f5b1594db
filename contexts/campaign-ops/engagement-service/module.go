package engagementservice

import (
	"log/slog"

	httpadapter "backstage/contexts/campaign-ops/engagement-service/adapters/http"
	"backstage/contexts/campaign-ops/engagement-service/adapters/memory"
	"backstage/contexts/campaign-ops/engagement-service/application/commands"
	"backstage/contexts/campaign-ops/engagement-service/application/queries"
	"backstage/contexts/campaign-ops/engagement-service/domain/entities"
	"backstage/contexts/campaign-ops/engagement-service/ports"
	"backstage/internal/shared/capabilities"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Campaigns    ports.CampaignRepository
	Engagements  ports.EngagementRepository
	Submissions  ports.SubmissionRepository
	Capabilities ports.CapabilityResolver
	Audit        ports.AuditRecorder
	Clock        ports.Clock
	IDGen        ports.IDGenerator
	Logger       *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			CreateCampaign: commands.CreateCampaignUseCase{
				Campaigns:    deps.Campaigns,
				Capabilities: deps.Capabilities,
				Audit:        deps.Audit,
				Clock:        deps.Clock,
				IDGen:        deps.IDGen,
				Logger:       deps.Logger,
			},
			ChangeStatus: commands.ChangeEngagementStatusUseCase{
				Campaigns:   deps.Campaigns,
				Engagements: deps.Engagements,
				Audit:       deps.Audit,
				Clock:       deps.Clock,
				Logger:      deps.Logger,
			},
			CloneEngagement: commands.CloneEngagementUseCase{
				Campaigns:   deps.Campaigns,
				Engagements: deps.Engagements,
				Audit:       deps.Audit,
				Clock:       deps.Clock,
				IDGen:       deps.IDGen,
				Logger:      deps.Logger,
			},
			CreateSubmission: commands.CreateSubmissionUseCase{
				Engagements: deps.Engagements,
				Submissions: deps.Submissions,
				Audit:       deps.Audit,
				Clock:       deps.Clock,
				IDGen:       deps.IDGen,
				Logger:      deps.Logger,
			},
			ReviewSubmission: commands.ReviewSubmissionUseCase{
				Engagements: deps.Engagements,
				Submissions: deps.Submissions,
				Audit:       deps.Audit,
				Clock:       deps.Clock,
				Logger:      deps.Logger,
			},
			GetCampaign: queries.GetCampaignUseCase{
				Campaigns:   deps.Campaigns,
				Engagements: deps.Engagements,
				Logger:      deps.Logger,
			},
			ListCampaigns: queries.ListCampaignsUseCase{
				Campaigns: deps.Campaigns,
				Logger:    deps.Logger,
			},
			ListSubmissions: queries.ListSubmissionsUseCase{
				Engagements: deps.Engagements,
				Submissions: deps.Submissions,
				Logger:      deps.Logger,
			},
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Campaign, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Campaigns:    store,
		Engagements:  store,
		Submissions:  store,
		Capabilities: capabilities.NewDefaultResolver(),
		Audit:        store,
		Clock:        store,
		IDGen:        store,
		Logger:       logger,
	})
	module.Store = store
	return module
}
