package campaignservice

import (
	"log/slog"

	httpadapter "meridian/contexts/collaboration/campaign-service/adapters/http"
	"meridian/contexts/collaboration/campaign-service/adapters/memory"
	"meridian/contexts/collaboration/campaign-service/application/commands"
	"meridian/contexts/collaboration/campaign-service/application/queries"
	"meridian/contexts/collaboration/campaign-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Queries queries.QueryUseCase
	Store   *memory.Store
}

type Dependencies struct {
	Repository   ports.Repository
	Access       ports.AccessChecker
	Deliverables ports.DeliverableWriter
	Clock        ports.Clock
	IDGenerator  ports.IDGenerator
	Logger       *slog.Logger
}

func NewModule(deps Dependencies) Module {
	campaignQueries := queries.QueryUseCase{
		Campaigns: deps.Repository,
		Logger:    deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Create: commands.CreateCampaignUseCase{
				Campaigns: deps.Repository,
				Access:    deps.Access,
				Clock:     deps.Clock,
				IDGen:     deps.IDGenerator,
				Logger:    deps.Logger,
			},
			ChangeStatus: commands.ChangeStatusUseCase{
				Campaigns: deps.Repository,
				Access:    deps.Access,
				Clock:     deps.Clock,
				IDGen:     deps.IDGenerator,
				Logger:    deps.Logger,
			},
			DefineDeliverables: commands.DefineDeliverablesUseCase{
				Campaigns:    deps.Repository,
				Access:       deps.Access,
				Deliverables: deps.Deliverables,
				Logger:       deps.Logger,
			},
			Queries: campaignQueries,
			Logger:  deps.Logger,
		},
		Queries: campaignQueries,
	}
}

func NewInMemoryModule(access ports.AccessChecker, deliverables ports.DeliverableWriter, logger *slog.Logger) Module {
	store := memory.NewStore(nil)
	module := NewModule(Dependencies{
		Repository:   store,
		Access:       access,
		Deliverables: deliverables,
		Clock:        store,
		IDGenerator:  store,
		Logger:       logger,
	})
	module.Store = store
	return module
}
