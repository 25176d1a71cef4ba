package changefeed

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"meridian/internal/shared/events"
)

// Scope selects which logical channel a subscription listens on.
type Scope string

const (
	ScopeCampaign Scope = "campaign"
	ScopeBrand    Scope = "brand"
	ScopeCreator  Scope = "creator"
)

// Signal is a payload-free invalidation notice. Consumers must re-query
// authoritative state; nothing in the signal is a source of truth beyond
// "something changed for this predicate".
type Signal struct {
	Table      string
	CampaignID string
	BrandID    string
	CreatorID  string
}

// Handler receives coalesced signals for one subscription.
type Handler func(Signal)

var ErrEmptyKey = errors.New("changefeed subscription key is required")

// Router multiplexes store change events onto a small number of long-lived
// logical channels: per-campaign, per-brand, and per-creator. Delivery is
// at-least-once, unordered between tables, and deduplicated per logical
// channel while a consumer is busy.
type Router struct {
	mu     sync.RWMutex
	subs   map[Scope]map[string]map[*Subscription]struct{}
	logger *slog.Logger
}

func NewRouter(logger *slog.Logger) *Router {
	return &Router{
		subs: map[Scope]map[string]map[*Subscription]struct{}{
			ScopeCampaign: {},
			ScopeBrand:    {},
			ScopeCreator:  {},
		},
		logger: logger,
	}
}

// Subscribe opens a channel for one (scope, key) pair. The returned
// subscription starts without a handler; attach one with SetHandler.
func (r *Router) Subscribe(scope Scope, key string) (*Subscription, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}

	sub := &Subscription{
		router:  r,
		scope:   scope,
		key:     key,
		pending: make(map[string]Signal),
		notify:  make(chan struct{}, 1),
		done:    make(chan struct{}),
	}

	r.mu.Lock()
	bucket, ok := r.subs[scope]
	if !ok {
		bucket = make(map[string]map[*Subscription]struct{})
		r.subs[scope] = bucket
	}
	if bucket[key] == nil {
		bucket[key] = make(map[*Subscription]struct{})
	}
	bucket[key][sub] = struct{}{}
	r.mu.Unlock()

	go sub.loop()
	return sub, nil
}

// Consume translates a bus event into channel signals. It is registered as a
// bus subscriber on the full stream.
func (r *Router) Consume(_ context.Context, event events.Envelope) error {
	var scope events.ScopeFields
	if len(event.Data) > 0 {
		if err := json.Unmarshal(event.Data, &scope); err != nil {
			if r.logger != nil {
				r.logger.Error("change event payload decode failed",
					"event", "changefeed_decode_failed",
					"module", "internal/platform/changefeed",
					"layer", "platform",
					"event_id", event.EventID,
					"event_type", event.EventType,
					"error", err.Error(),
				)
			}
			return err
		}
	}

	signal := Signal{
		Table:      tableFor(event.EntityType),
		CampaignID: scope.CampaignID,
		BrandID:    scope.BrandID,
		CreatorID:  scope.CreatorID,
	}
	r.fanOut(signal)

	// Negotiation state is denormalized onto the invitation row, so a
	// negotiation change always invalidates invitation readers too.
	if signal.Table == "negotiations" {
		invitation := signal
		invitation.Table = "invitations"
		r.fanOut(invitation)
	}
	return nil
}

func (r *Router) fanOut(signal Signal) {
	r.mu.RLock()
	targets := make([]*Subscription, 0, 4)
	if signal.CampaignID != "" {
		for sub := range r.subs[ScopeCampaign][signal.CampaignID] {
			targets = append(targets, sub)
		}
	}
	if signal.BrandID != "" {
		for sub := range r.subs[ScopeBrand][signal.BrandID] {
			targets = append(targets, sub)
		}
	}
	if signal.CreatorID != "" {
		for sub := range r.subs[ScopeCreator][signal.CreatorID] {
			targets = append(targets, sub)
		}
	}
	r.mu.RUnlock()

	for _, sub := range targets {
		sub.deliver(signal)
	}
}

func (r *Router) unsubscribe(sub *Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket := r.subs[sub.scope][sub.key]
	if bucket == nil {
		return
	}
	delete(bucket, sub)
	if len(bucket) == 0 {
		delete(r.subs[sub.scope], sub.key)
	}
}

func tableFor(entityType string) string {
	switch entityType {
	case "invitation":
		return "invitations"
	case "negotiation":
		return "negotiations"
	case "tracking_link":
		return "tracking_links"
	case "submission":
		return "submissions"
	case "review":
		return "reviews"
	case "campaign":
		return "campaigns"
	case "assignment":
		return "assignments"
	case "membership":
		return "memberships"
	default:
		return entityType
	}
}
