package bootstrap

import (
	"context"
	"log/slog"
	"time"

	campaignpostgres "meridian/contexts/collaboration/campaign-service/adapters/postgres"
	campaignworkers "meridian/contexts/collaboration/campaign-service/application/workers"
	dashboardapplication "meridian/contexts/collaboration/dashboard-service/application"
	deliverablepostgres "meridian/contexts/collaboration/deliverable-service/adapters/postgres"
	deliverableworkers "meridian/contexts/collaboration/deliverable-service/application/workers"
	invitationpostgres "meridian/contexts/collaboration/invitation-service/adapters/postgres"
	invitationworkers "meridian/contexts/collaboration/invitation-service/application/workers"
	accesspostgres "meridian/contexts/identity-access/access-service/adapters/postgres"
	accessworkers "meridian/contexts/identity-access/access-service/application/workers"
	"meridian/internal/platform/changefeed"
	"meridian/internal/platform/config"
	"meridian/internal/platform/db"
	"meridian/internal/platform/messaging"
)

type namedRunner struct {
	name string
	run  func(ctx context.Context) error
}

// WorkerApp hosts the background side of the system: outbox relays feeding
// the bus, the invitation expirer, the change feed router, and the dashboard
// refreshers.
type WorkerApp struct {
	Bus       *messaging.Bus
	Feed      *changefeed.Router
	Refresher *dashboardapplication.Refresher
	Modules   Modules

	cfg      config.Config
	logger   *slog.Logger
	runners  []namedRunner
	postgres *db.Postgres
}

func BuildWorker(cfg config.Config, logger *slog.Logger) (*WorkerApp, error) {
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

	components := buildPostgresComponents(pg, cfg, logger)
	bus := messaging.NewBus(logger)
	feed := changefeed.NewRouter(logger)
	refresher := dashboardapplication.NewRefresher(components.modules.Dashboard.Service, feed, logger)

	app := &WorkerApp{
		Bus:       bus,
		Feed:      feed,
		Refresher: refresher,
		Modules:   components.modules,
		cfg:       cfg,
		logger:    logger,
		postgres:  pg,
	}

	if cfg.EnableOutboxRelay {
		app.runners = append(app.runners,
			namedRunner{name: "campaign_outbox_relay", run: campaignworkers.OutboxRelay{
				Outbox:    components.campaignRepo,
				Publisher: bus,
				Clock:     campaignpostgres.SystemClock{},
				BatchSize: cfg.OutboxBatchSize,
				Logger:    logger,
			}.RunOnce},
			namedRunner{name: "invitation_outbox_relay", run: invitationworkers.OutboxRelay{
				Outbox:    components.invitationRepo,
				Publisher: bus,
				Clock:     invitationpostgres.SystemClock{},
				BatchSize: cfg.OutboxBatchSize,
				Logger:    logger,
			}.RunOnce},
			namedRunner{name: "deliverable_outbox_relay", run: deliverableworkers.OutboxRelay{
				Outbox:    components.deliverableRepo,
				Publisher: bus,
				Clock:     deliverablepostgres.SystemClock{},
				BatchSize: cfg.OutboxBatchSize,
				Logger:    logger,
			}.RunOnce},
			namedRunner{name: "access_outbox_relay", run: accessworkers.OutboxRelay{
				Outbox:    components.accessRepo,
				Publisher: bus,
				Clock:     accesspostgres.SystemClock{},
				BatchSize: cfg.OutboxBatchSize,
				Logger:    logger,
			}.RunOnce},
		)
	}
	if cfg.EnableInvitationExpirer {
		app.runners = append(app.runners, namedRunner{
			name: "invitation_expirer",
			run: invitationworkers.InvitationExpirer{
				Invitations: components.invitationRepo,
				Expire:      components.modules.Invitations.Expire,
				Clock:       invitationpostgres.SystemClock{},
				BatchSize:   cfg.ExpirerBatchSize,
				Logger:      logger,
			}.RunOnce,
		})
	}
	return app, nil
}

// WatchBrand mounts a warm negotiation queue snapshot for one brand.
func (w *WorkerApp) WatchBrand(ctx context.Context, brandID string) error {
	return w.Refresher.WatchBrand(ctx, brandID)
}

// WatchCreator mounts a warm inbox snapshot for one creator.
func (w *WorkerApp) WatchCreator(ctx context.Context, creatorID string) error {
	return w.Refresher.WatchCreator(ctx, creatorID)
}

// Run drives the relay and expirer cycle until the context is cancelled.
func (w *WorkerApp) Run(ctx context.Context) error {
	if w.cfg.EnableChangeFeed {
		if err := w.Bus.Subscribe(ctx, messaging.TopicAll, "changefeed-router", w.Feed.Consume); err != nil {
			return err
		}
	}

	interval := w.cfg.WorkerPollInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.logger.Info("worker started",
		"event", "worker_started",
		"module", "internal/app/bootstrap",
		"layer", "worker",
		"poll_interval", interval.String(),
		"runner_count", len(w.runners),
	)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			for _, runner := range w.runners {
				if err := runner.run(ctx); err != nil {
					w.logger.Error("worker runner cycle failed",
						"event", "worker_runner_failed",
						"module", "internal/app/bootstrap",
						"layer", "worker",
						"runner", runner.name,
						"error", err.Error(),
					)
				}
			}
		}
	}
}

func (w *WorkerApp) Close() error {
	w.Refresher.Close()
	return w.postgres.Close()
}
