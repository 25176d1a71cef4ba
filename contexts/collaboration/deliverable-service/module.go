package deliverableservice

import (
	"log/slog"

	httpadapter "meridian/contexts/collaboration/deliverable-service/adapters/http"
	"meridian/contexts/collaboration/deliverable-service/adapters/memory"
	"meridian/contexts/collaboration/deliverable-service/application/commands"
	"meridian/contexts/collaboration/deliverable-service/application/queries"
	"meridian/contexts/collaboration/deliverable-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository  ports.Repository
	Invitations ports.InvitationChecker
	Campaigns   ports.CampaignChecker
	Access      ports.AccessChecker
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Submit: commands.SubmitDeliverableUseCase{
				Repository:  deps.Repository,
				Invitations: deps.Invitations,
				Campaigns:   deps.Campaigns,
				Clock:       deps.Clock,
				IDGen:       deps.IDGenerator,
				Logger:      deps.Logger,
			},
			Review: commands.ReviewSubmissionUseCase{
				Repository: deps.Repository,
				Access:     deps.Access,
				Clock:      deps.Clock,
				IDGen:      deps.IDGenerator,
				Logger:     deps.Logger,
			},
			Queries: queries.QueryUseCase{
				Repository: deps.Repository,
				Logger:     deps.Logger,
			},
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(
	invitations ports.InvitationChecker,
	campaigns ports.CampaignChecker,
	access ports.AccessChecker,
	logger *slog.Logger,
) Module {
	store := memory.NewStore(nil)
	module := NewModule(Dependencies{
		Repository:  store,
		Invitations: invitations,
		Campaigns:   campaigns,
		Access:      access,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
