package dashboardservice

import (
	"log/slog"

	httpadapter "meridian/contexts/collaboration/dashboard-service/adapters/http"
	"meridian/contexts/collaboration/dashboard-service/adapters/memory"
	"meridian/contexts/collaboration/dashboard-service/application"
	"meridian/contexts/collaboration/dashboard-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Invitations ports.InvitationSource
	Progress    ports.ProgressSource
	Campaigns   ports.CampaignSource
	Clock       ports.Clock
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Invitations: deps.Invitations,
		Progress:    deps.Progress,
		Campaigns:   deps.Campaigns,
		Clock:       deps.Clock,
		Logger:      deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Invitations: store,
		Progress:    store,
		Campaigns:   store,
		Clock:       store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
