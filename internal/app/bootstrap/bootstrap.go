package bootstrap

import (
	"log/slog"

	campaignservice "meridian/contexts/collaboration/campaign-service"
	campaignpostgres "meridian/contexts/collaboration/campaign-service/adapters/postgres"
	dashboardservice "meridian/contexts/collaboration/dashboard-service"
	deliverableservice "meridian/contexts/collaboration/deliverable-service"
	deliverablepostgres "meridian/contexts/collaboration/deliverable-service/adapters/postgres"
	deliverablequeries "meridian/contexts/collaboration/deliverable-service/application/queries"
	invitationservice "meridian/contexts/collaboration/invitation-service"
	invitationpostgres "meridian/contexts/collaboration/invitation-service/adapters/postgres"
	invitationqueries "meridian/contexts/collaboration/invitation-service/application/queries"
	accessservice "meridian/contexts/identity-access/access-service"
	accessentities "meridian/contexts/identity-access/access-service/domain/entities"
	accesspostgres "meridian/contexts/identity-access/access-service/adapters/postgres"
	"meridian/internal/platform/config"
	"meridian/internal/platform/db"
	"meridian/internal/platform/httpserver"
)

// Modules is the wired set of service modules sharing one composition.
type Modules struct {
	Campaigns    campaignservice.Module
	Invitations  invitationservice.Module
	Deliverables deliverableservice.Module
	Access       accessservice.Module
	Dashboard    dashboardservice.Module
}

// API is the composed HTTP process.
type API struct {
	Server   *httpserver.Server
	Modules  Modules
	Postgres *db.Postgres
}

func BuildAPI(cfg config.Config, logger *slog.Logger) (*API, error) {
	if logger == nil {
		logger = slog.Default()
	}

	pg, err := db.Connect(cfg.PostgresDSN, db.Options{
		PingTimeout:  cfg.DBPingTimeout,
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
	})
	if err != nil {
		return nil, err
	}

	modules := buildPostgresComponents(pg, cfg, logger).modules
	server := httpserver.New(
		modules.Campaigns,
		modules.Invitations,
		modules.Deliverables,
		modules.Access,
		modules.Dashboard,
		logger,
		":"+cfg.HTTPPort,
	)
	return &API{
		Server:   server,
		Modules:  modules,
		Postgres: pg,
	}, nil
}

func (a *API) Close() error {
	return a.Postgres.Close()
}

// postgresComponents keeps the repository handles next to the wired
// modules; the worker needs the repositories for its outbox relays.
type postgresComponents struct {
	modules Modules

	campaignRepo    *campaignpostgres.Repository
	invitationRepo  *invitationpostgres.Repository
	deliverableRepo *deliverablepostgres.Repository
	accessRepo      *accesspostgres.Repository
}

func buildPostgresComponents(pg *db.Postgres, cfg config.Config, logger *slog.Logger) postgresComponents {
	campaignRepo := campaignpostgres.NewRepository(pg.DB, logger)
	invitationRepo := invitationpostgres.NewRepository(pg.DB, logger)
	deliverableRepo := deliverablepostgres.NewRepository(pg.DB, logger)
	accessRepo := accesspostgres.NewRepository(pg.DB, logger)

	accessModule := accessservice.NewModule(accessservice.Dependencies{
		Repository:  accessRepo,
		Invitations: invitationRepo,
		Clock:       accesspostgres.SystemClock{},
		IDGenerator: accesspostgres.UUIDGenerator{},
		Logger:      logger,
	})

	campaignModule := campaignservice.NewModule(campaignservice.Dependencies{
		Repository:   campaignRepo,
		Access:       campaignAccessBinding{resolve: accessModule.Resolve},
		Deliverables: deliverableWriterBinding{repository: deliverableRepo},
		Clock:        campaignpostgres.SystemClock{},
		IDGenerator:  campaignpostgres.UUIDGenerator{},
		Logger:       logger,
	})

	invitationModule := invitationservice.NewModule(invitationservice.Dependencies{
		Repository:      invitationRepo,
		Access:          invitationAccessBinding{resolve: accessModule.Resolve},
		Clock:           invitationpostgres.SystemClock{},
		IDGenerator:     invitationpostgres.UUIDGenerator{},
		TrackingBaseURL: cfg.TrackingBaseURL,
		Logger:          logger,
	})

	deliverableModule := deliverableservice.NewModule(deliverableservice.Dependencies{
		Repository:  deliverableRepo,
		Invitations: invitationRepo,
		Campaigns:   campaignStatusBinding{queries: campaignModule.Queries},
		Access:      deliverableAccessBinding{resolve: accessModule.Resolve},
		Clock:       deliverablepostgres.SystemClock{},
		IDGenerator: deliverablepostgres.UUIDGenerator{},
		Logger:      logger,
	})

	dashboardModule := dashboardservice.NewModule(dashboardservice.Dependencies{
		Invitations: dashboardInvitationBinding{queries: invitationqueries.QueryUseCase{Invitations: invitationRepo, Logger: logger}},
		Progress:    dashboardProgressBinding{queries: deliverablequeries.QueryUseCase{Repository: deliverableRepo, Logger: logger}},
		Campaigns:   dashboardCampaignBinding{queries: campaignModule.Queries},
		Logger:      logger,
	})

	return postgresComponents{
		modules: Modules{
			Campaigns:    campaignModule,
			Invitations:  invitationModule,
			Deliverables: deliverableModule,
			Access:       accessModule,
			Dashboard:    dashboardModule,
		},
		campaignRepo:    campaignRepo,
		invitationRepo:  invitationRepo,
		deliverableRepo: deliverableRepo,
		accessRepo:      accessRepo,
	}
}

// NewInMemoryModules wires the full module graph over memory adapters. Used
// by tests and local development without postgres.
func NewInMemoryModules(
	brands []accessentities.Brand,
	globalAdmins []string,
	trackingBaseURL string,
	logger *slog.Logger,
) Modules {
	invitationModule := invitationservice.NewInMemoryModule(nil, trackingBaseURL, logger)
	accessModule := accessservice.NewInMemoryModule(brands, globalAdmins, invitationModule.Store, logger)

	// Rebuild the invitation module against the real access resolver now
	// that the access store exists.
	invitationModule = invitationservice.NewModule(invitationservice.Dependencies{
		Repository:      invitationModule.Store,
		Access:          invitationAccessBinding{resolve: accessModule.Resolve},
		Clock:           invitationModule.Store,
		IDGenerator:     invitationModule.Store,
		TrackingBaseURL: trackingBaseURL,
		Logger:          logger,
	})

	campaignModule := campaignservice.NewInMemoryModule(
		campaignAccessBinding{resolve: accessModule.Resolve},
		nil,
		logger,
	)
	deliverableModule := deliverableservice.NewInMemoryModule(
		invitationModule.Store,
		campaignStatusBinding{queries: campaignModule.Queries},
		deliverableAccessBinding{resolve: accessModule.Resolve},
		logger,
	)

	// Rebuild the campaign module with the deliverable writer bound.
	campaignModule = rebindCampaignDeliverables(campaignModule, deliverableModule, accessModule, logger)

	dashboardModule := dashboardservice.NewModule(dashboardservice.Dependencies{
		Invitations: dashboardInvitationBinding{queries: invitationqueries.QueryUseCase{Invitations: invitationModule.Store, Logger: logger}},
		Progress:    dashboardProgressBinding{queries: deliverablequeries.QueryUseCase{Repository: deliverableModule.Store, Logger: logger}},
		Campaigns:   dashboardCampaignBinding{queries: campaignModule.Queries},
		Logger:      logger,
	})

	return Modules{
		Campaigns:    campaignModule,
		Invitations:  invitationModule,
		Deliverables: deliverableModule,
		Access:       accessModule,
		Dashboard:    dashboardModule,
	}
}

func rebindCampaignDeliverables(
	campaignModule campaignservice.Module,
	deliverableModule deliverableservice.Module,
	accessModule accessservice.Module,
	logger *slog.Logger,
) campaignservice.Module {
	store := campaignModule.Store
	rebuilt := campaignservice.NewModule(campaignservice.Dependencies{
		Repository:   store,
		Access:       campaignAccessBinding{resolve: accessModule.Resolve},
		Deliverables: deliverableWriterBinding{repository: deliverableModule.Store},
		Clock:        store,
		IDGenerator:  store,
		Logger:       logger,
	})
	rebuilt.Store = store
	return rebuilt
}
