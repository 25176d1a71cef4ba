package accessservice

import (
	"log/slog"

	httpadapter "meridian/contexts/identity-access/access-service/adapters/http"
	"meridian/contexts/identity-access/access-service/adapters/memory"
	"meridian/contexts/identity-access/access-service/application/commands"
	"meridian/contexts/identity-access/access-service/application/queries"
	"meridian/contexts/identity-access/access-service/domain/entities"
	"meridian/contexts/identity-access/access-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Resolve queries.ResolveAccessUseCase
	Store   *memory.Store
}

type Dependencies struct {
	Repository  ports.Repository
	Invitations ports.InvitationProvider
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	resolve := queries.ResolveAccessUseCase{
		Repository:  deps.Repository,
		Invitations: deps.Invitations,
		Clock:       deps.Clock,
		Logger:      deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Resolve: resolve,
			Memberships: queries.ListMembershipsUseCase{
				Repository: deps.Repository,
				Logger:     deps.Logger,
			},
			AssignManager: commands.AssignManagerUseCase{
				Repository: deps.Repository,
				Clock:      deps.Clock,
				IDGen:      deps.IDGenerator,
				Logger:     deps.Logger,
			},
			RevokeManager: commands.RevokeManagerUseCase{
				Repository: deps.Repository,
				Clock:      deps.Clock,
				IDGen:      deps.IDGenerator,
				Logger:     deps.Logger,
			},
			AddMembership: commands.AddMembershipUseCase{
				Repository: deps.Repository,
				Clock:      deps.Clock,
				IDGen:      deps.IDGenerator,
				Logger:     deps.Logger,
			},
			Logger: deps.Logger,
		},
		Resolve: resolve,
	}
}

func NewInMemoryModule(
	brands []entities.Brand,
	globalAdmins []string,
	invitations ports.InvitationProvider,
	logger *slog.Logger,
) Module {
	store := memory.NewStore(brands, globalAdmins)
	module := NewModule(Dependencies{
		Repository:  store,
		Invitations: invitations,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
