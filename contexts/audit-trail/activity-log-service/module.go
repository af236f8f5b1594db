package activitylogservice

import (
	"log/slog"

	httpadapter "backstage/contexts/audit-trail/activity-log-service/adapters/http"
	"backstage/contexts/audit-trail/activity-log-service/adapters/memory"
	"backstage/contexts/audit-trail/activity-log-service/application"
	"backstage/contexts/audit-trail/activity-log-service/ports"
)

type Module struct {
	Handler  httpadapter.Handler
	Recorder application.Service
	Store    *memory.Store
}

type Dependencies struct {
	Repo   ports.Repository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:   deps.Repo,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Recorder: service,
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repo:   store,
		Clock:  memory.SystemClock{},
		IDGen:  memory.UUIDGenerator{},
		Logger: logger,
	})
	module.Store = store
	return module
}
