package changefeed

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"meridian/internal/shared/events"
)

func invitationEvent(t *testing.T, campaignID, brandID, creatorID string) events.Envelope {
	t.Helper()
	payload, err := json.Marshal(events.ScopeFields{
		CampaignID: campaignID,
		BrandID:    brandID,
		CreatorID:  creatorID,
	})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return events.Envelope{
		EventID:    "evt-1",
		EventType:  "invitation.accepted",
		EntityType: "invitation",
		EntityID:   "inv-1",
		OccurredAt: time.Now().UTC(),
		Data:       payload,
	}
}

func waitSignal(t *testing.T, ch <-chan Signal) Signal {
	t.Helper()
	select {
	case signal := <-ch:
		return signal
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for signal")
		return Signal{}
	}
}

func TestBrandAndCampaignChannelsBothReceiveInvitationChange(t *testing.T) {
	router := NewRouter(nil)

	campaignSub, err := router.Subscribe(ScopeCampaign, "camp-1")
	if err != nil {
		t.Fatalf("subscribe campaign: %v", err)
	}
	defer campaignSub.Close()
	brandSub, err := router.Subscribe(ScopeBrand, "brand-1")
	if err != nil {
		t.Fatalf("subscribe brand: %v", err)
	}
	defer brandSub.Close()

	campaignSignals := make(chan Signal, 4)
	brandSignals := make(chan Signal, 4)
	campaignSub.SetHandler(func(s Signal) { campaignSignals <- s })
	brandSub.SetHandler(func(s Signal) { brandSignals <- s })

	if err := router.Consume(context.Background(), invitationEvent(t, "camp-1", "brand-1", "creator-1")); err != nil {
		t.Fatalf("consume: %v", err)
	}

	got := waitSignal(t, campaignSignals)
	if got.Table != "invitations" || got.CampaignID != "camp-1" {
		t.Fatalf("unexpected campaign signal: %+v", got)
	}
	got = waitSignal(t, brandSignals)
	if got.Table != "invitations" || got.BrandID != "brand-1" {
		t.Fatalf("unexpected brand signal: %+v", got)
	}
}

func TestNegotiationChangeAlsoInvalidatesInvitations(t *testing.T) {
	router := NewRouter(nil)

	sub, err := router.Subscribe(ScopeCreator, "creator-1")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer sub.Close()

	signals := make(chan Signal, 4)
	sub.SetHandler(func(s Signal) { signals <- s })

	payload, _ := json.Marshal(events.ScopeFields{CampaignID: "camp-1", BrandID: "brand-1", CreatorID: "creator-1"})
	event := events.Envelope{
		EventID:    "evt-2",
		EventType:  "negotiation.countered",
		EntityType: "negotiation",
		EntityID:   "inv-1",
		Data:       payload,
	}
	if err := router.Consume(context.Background(), event); err != nil {
		t.Fatalf("consume: %v", err)
	}

	tables := map[string]bool{}
	tables[waitSignal(t, signals).Table] = true
	tables[waitSignal(t, signals).Table] = true
	if !tables["negotiations"] || !tables["invitations"] {
		t.Fatalf("expected negotiation and invitation signals, got %v", tables)
	}
}

func TestHandlerSwapDoesNotResubscribe(t *testing.T) {
	router := NewRouter(nil)

	sub, err := router.Subscribe(ScopeCampaign, "camp-1")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer sub.Close()

	// Signal arrives before any handler is attached; it must be held, not
	// dropped, and delivered to whichever handler is current.
	if err := router.Consume(context.Background(), invitationEvent(t, "camp-1", "brand-1", "creator-1")); err != nil {
		t.Fatalf("consume: %v", err)
	}

	first := make(chan Signal, 1)
	sub.SetHandler(func(s Signal) { first <- s })
	waitSignal(t, first)

	second := make(chan Signal, 1)
	sub.SetHandler(func(s Signal) { second <- s })
	if err := router.Consume(context.Background(), invitationEvent(t, "camp-1", "brand-1", "creator-1")); err != nil {
		t.Fatalf("consume: %v", err)
	}
	waitSignal(t, second)

	select {
	case s := <-first:
		t.Fatalf("old handler received signal after swap: %+v", s)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSubscribeRequiresKey(t *testing.T) {
	router := NewRouter(nil)
	if _, err := router.Subscribe(ScopeBrand, ""); err == nil {
		t.Fatal("expected error for empty key")
	}
}

func TestClosedSubscriptionReceivesNothing(t *testing.T) {
	router := NewRouter(nil)

	sub, err := router.Subscribe(ScopeCampaign, "camp-1")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	signals := make(chan Signal, 1)
	sub.SetHandler(func(s Signal) { signals <- s })
	sub.Close()

	if err := router.Consume(context.Background(), invitationEvent(t, "camp-1", "brand-1", "creator-1")); err != nil {
		t.Fatalf("consume: %v", err)
	}
	select {
	case s := <-signals:
		t.Fatalf("closed subscription received signal: %+v", s)
	case <-time.After(50 * time.Millisecond):
	}
}
