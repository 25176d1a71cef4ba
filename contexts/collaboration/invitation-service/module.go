package invitationservice

import (
	"log/slog"

	httpadapter "meridian/contexts/collaboration/invitation-service/adapters/http"
	"meridian/contexts/collaboration/invitation-service/adapters/memory"
	"meridian/contexts/collaboration/invitation-service/application/commands"
	"meridian/contexts/collaboration/invitation-service/application/queries"
	"meridian/contexts/collaboration/invitation-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Expire  commands.ExpireUseCase
	Store   *memory.Store
}

type Dependencies struct {
	Repository      ports.Repository
	Access          ports.AccessChecker
	Clock           ports.Clock
	IDGenerator     ports.IDGenerator
	TrackingBaseURL string
	Logger          *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			InviteCreator: commands.InviteCreatorUseCase{
				Invitations: deps.Repository,
				Access:      deps.Access,
				Clock:       deps.Clock,
				IDGen:       deps.IDGenerator,
				Logger:      deps.Logger,
			},
			Negotiate: commands.NegotiateUseCase{
				Invitations: deps.Repository,
				Clock:       deps.Clock,
				IDGen:       deps.IDGenerator,
				Logger:      deps.Logger,
			},
			CounterOffer: commands.CounterOfferUseCase{
				Invitations: deps.Repository,
				Access:      deps.Access,
				Clock:       deps.Clock,
				IDGen:       deps.IDGenerator,
				Logger:      deps.Logger,
			},
			Accept: commands.AcceptUseCase{
				Invitations:     deps.Repository,
				Access:          deps.Access,
				Clock:           deps.Clock,
				IDGen:           deps.IDGenerator,
				TrackingBaseURL: deps.TrackingBaseURL,
				Logger:          deps.Logger,
			},
			Decline: commands.DeclineUseCase{
				Invitations: deps.Repository,
				Clock:       deps.Clock,
				IDGen:       deps.IDGenerator,
				Logger:      deps.Logger,
			},
			Withdraw: commands.WithdrawUseCase{
				Invitations: deps.Repository,
				Access:      deps.Access,
				Clock:       deps.Clock,
				IDGen:       deps.IDGenerator,
				Logger:      deps.Logger,
			},
			Queries: queries.QueryUseCase{
				Invitations: deps.Repository,
				Logger:      deps.Logger,
			},
			Logger: deps.Logger,
		},
		Expire: commands.ExpireUseCase{
			Invitations: deps.Repository,
			Clock:       deps.Clock,
			IDGen:       deps.IDGenerator,
			Logger:      deps.Logger,
		},
	}
}

func NewInMemoryModule(access ports.AccessChecker, trackingBaseURL string, logger *slog.Logger) Module {
	store := memory.NewStore(nil)
	module := NewModule(Dependencies{
		Repository:      store,
		Access:          access,
		Clock:           store,
		IDGenerator:     store,
		TrackingBaseURL: trackingBaseURL,
		Logger:          logger,
	})
	module.Store = store
	return module
}
