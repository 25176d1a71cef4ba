package application

import (
	"context"
	"log/slog"
	"sync"

	"meridian/contexts/collaboration/dashboard-service/ports"
	"meridian/internal/platform/changefeed"
)

// Refresher keeps warm dashboard snapshots behind the change feed. Each
// watched brand or creator holds one long-lived subscription; every signal
// triggers a full re-derivation from the owning services, so the snapshot
// can lag but never drift.
type Refresher struct {
	Service Service
	Feed    *changefeed.Router
	Logger  *slog.Logger

	mu      sync.RWMutex
	queues  map[string]ports.NegotiationQueue
	inboxes map[string]ports.CreatorInbox
	subs    []*changefeed.Subscription
}

func NewRefresher(service Service, feed *changefeed.Router, logger *slog.Logger) *Refresher {
	return &Refresher{
		Service: service,
		Feed:    feed,
		Logger:  logger,
		queues:  make(map[string]ports.NegotiationQueue),
		inboxes: make(map[string]ports.CreatorInbox),
	}
}

// WatchBrand primes the brand's queue snapshot and re-derives it on every
// brand-channel signal.
func (r *Refresher) WatchBrand(ctx context.Context, brandID string) error {
	if err := r.refreshQueue(ctx, brandID); err != nil {
		return err
	}
	sub, err := r.Feed.Subscribe(changefeed.ScopeBrand, brandID)
	if err != nil {
		return err
	}
	sub.SetHandler(func(changefeed.Signal) {
		if err := r.refreshQueue(context.Background(), brandID); err != nil && r.Logger != nil {
			r.Logger.Error("negotiation queue refresh failed",
				"event", "dashboard_queue_refresh_failed",
				"module", "collaboration/dashboard-service",
				"layer", "application",
				"brand_id", brandID,
				"error", err.Error(),
			)
		}
	})

	r.mu.Lock()
	r.subs = append(r.subs, sub)
	r.mu.Unlock()
	return nil
}

// WatchCreator primes the creator's inbox snapshot and re-derives it on
// every creator-channel signal.
func (r *Refresher) WatchCreator(ctx context.Context, creatorID string) error {
	if err := r.refreshInbox(ctx, creatorID); err != nil {
		return err
	}
	sub, err := r.Feed.Subscribe(changefeed.ScopeCreator, creatorID)
	if err != nil {
		return err
	}
	sub.SetHandler(func(changefeed.Signal) {
		if err := r.refreshInbox(context.Background(), creatorID); err != nil && r.Logger != nil {
			r.Logger.Error("creator inbox refresh failed",
				"event", "dashboard_inbox_refresh_failed",
				"module", "collaboration/dashboard-service",
				"layer", "application",
				"creator_id", creatorID,
				"error", err.Error(),
			)
		}
	})

	r.mu.Lock()
	r.subs = append(r.subs, sub)
	r.mu.Unlock()
	return nil
}

func (r *Refresher) QueueSnapshot(brandID string) (ports.NegotiationQueue, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	queue, ok := r.queues[brandID]
	return queue, ok
}

func (r *Refresher) InboxSnapshot(creatorID string) (ports.CreatorInbox, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inbox, ok := r.inboxes[creatorID]
	return inbox, ok
}

func (r *Refresher) Close() {
	r.mu.Lock()
	subs := r.subs
	r.subs = nil
	r.mu.Unlock()

	for _, sub := range subs {
		sub.Close()
	}
}

func (r *Refresher) refreshQueue(ctx context.Context, brandID string) error {
	queue, err := r.Service.BrandNegotiationQueue(ctx, brandID)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.queues[brandID] = queue
	r.mu.Unlock()
	return nil
}

func (r *Refresher) refreshInbox(ctx context.Context, creatorID string) error {
	inbox, err := r.Service.CreatorInbox(ctx, creatorID)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.inboxes[creatorID] = inbox
	r.mu.Unlock()
	return nil
}
