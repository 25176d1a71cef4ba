package application

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"meridian/contexts/collaboration/dashboard-service/adapters/memory"
	domainerrors "meridian/contexts/collaboration/dashboard-service/domain/errors"
	"meridian/contexts/collaboration/dashboard-service/ports"
	"meridian/internal/platform/changefeed"
	"meridian/internal/shared/events"
)

func seedStore() *memory.Store {
	store := memory.NewStore()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	store.SeedCampaign(ports.CampaignView{CampaignID: "camp-1", Title: "Spring launch", Status: "active"})
	store.SeedInvitation(ports.InvitationView{
		InvitationID:  "inv-1",
		CampaignID:    "camp-1",
		BrandID:       "brand-1",
		CreatorID:     "creator-1",
		Status:        "pending",
		OfferedPayout: 500,
		UpdatedAt:     base,
	})
	delta := 100.0
	store.SeedInvitation(ports.InvitationView{
		InvitationID:    "inv-2",
		CampaignID:      "camp-1",
		BrandID:         "brand-1",
		CreatorID:       "creator-2",
		Status:          "negotiating",
		OfferedPayout:   400,
		NegotiatedDelta: &delta,
		UpdatedAt:       base.Add(time.Hour),
	})
	store.SeedInvitation(ports.InvitationView{
		InvitationID:  "inv-3",
		CampaignID:    "camp-1",
		BrandID:       "brand-1",
		CreatorID:     "creator-3",
		Status:        "accepted",
		OfferedPayout: 600,
		UpdatedAt:     base.Add(2 * time.Hour),
	})
	store.SeedInvitation(ports.InvitationView{
		InvitationID:  "inv-4",
		CampaignID:    "camp-2",
		BrandID:       "brand-2",
		CreatorID:     "creator-1",
		Status:        "pending",
		OfferedPayout: 300,
		UpdatedAt:     base.Add(3 * time.Hour),
	})
	store.SeedProgress("camp-1", "creator-3", ports.ProgressView{
		Items: []ports.DeliverableProgressView{
			{DeliverableID: "del-1", Title: "Unboxing video", State: "approved"},
			{DeliverableID: "del-2", Title: "Story mention", State: "submitted"},
		},
	})
	return store
}

func newService(store *memory.Store) Service {
	return Service{
		Invitations: store,
		Progress:    store,
		Campaigns:   store,
		Clock:       store,
	}
}

func TestBrandNegotiationQueue(t *testing.T) {
	svc := newService(seedStore())

	queue, err := svc.BrandNegotiationQueue(context.Background(), "brand-1")
	if err != nil {
		t.Fatalf("queue failed: %v", err)
	}
	if queue.PendingCount != 1 || queue.NegotiatingCount != 1 {
		t.Fatalf("unexpected counts pending=%d negotiating=%d", queue.PendingCount, queue.NegotiatingCount)
	}
	// Accepted invitations do not need brand attention.
	if len(queue.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(queue.Entries))
	}
	// Newest movement first.
	if queue.Entries[0].InvitationID != "inv-2" || queue.Entries[1].InvitationID != "inv-1" {
		t.Fatalf("unexpected order %s, %s", queue.Entries[0].InvitationID, queue.Entries[1].InvitationID)
	}

	if _, err := svc.BrandNegotiationQueue(context.Background(), " "); !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
}

func TestCreatorInboxDerivesProgressForAcceptedOnly(t *testing.T) {
	svc := newService(seedStore())

	inbox, err := svc.CreatorInbox(context.Background(), "creator-3")
	if err != nil {
		t.Fatalf("inbox failed: %v", err)
	}
	if len(inbox.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(inbox.Entries))
	}
	entry := inbox.Entries[0]
	if entry.CampaignTitle != "Spring launch" {
		t.Fatalf("expected campaign title, got %q", entry.CampaignTitle)
	}
	if entry.Progress == nil || len(entry.Progress.Items) != 2 {
		t.Fatalf("expected progress for accepted invitation, got %+v", entry.Progress)
	}
	if entry.Progress.AllApproved {
		t.Fatal("one submitted deliverable must block all-approved")
	}

	pendingOnly, err := svc.CreatorInbox(context.Background(), "creator-1")
	if err != nil {
		t.Fatalf("inbox failed: %v", err)
	}
	if len(pendingOnly.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(pendingOnly.Entries))
	}
	for _, item := range pendingOnly.Entries {
		if item.Progress != nil {
			t.Fatalf("pending invitation must carry no progress, got %+v", item.Progress)
		}
	}
}

func invitationChange(t *testing.T, campaignID, brandID, creatorID string) events.Envelope {
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
		EventType:  "invitation.negotiated",
		EntityType: "invitation",
		EntityID:   "inv-1",
		OccurredAt: time.Now().UTC(),
		Data:       payload,
	}
}

func TestRefresherRebuildsOnSignal(t *testing.T) {
	store := seedStore()
	feed := changefeed.NewRouter(nil)
	refresher := NewRefresher(newService(store), feed, nil)
	defer refresher.Close()

	if err := refresher.WatchBrand(context.Background(), "brand-1"); err != nil {
		t.Fatalf("watch brand failed: %v", err)
	}
	queue, ok := refresher.QueueSnapshot("brand-1")
	if !ok || queue.PendingCount != 1 {
		t.Fatalf("expected primed snapshot, got ok=%v queue=%+v", ok, queue)
	}

	// A new pending invitation lands; the brand-channel signal must trigger
	// a re-derivation.
	store.SeedInvitation(ports.InvitationView{
		InvitationID:  "inv-5",
		CampaignID:    "camp-1",
		BrandID:       "brand-1",
		CreatorID:     "creator-4",
		Status:        "pending",
		OfferedPayout: 450,
		UpdatedAt:     time.Now().UTC(),
	})
	if err := feed.Consume(context.Background(), invitationChange(t, "camp-1", "brand-1", "creator-4")); err != nil {
		t.Fatalf("consume failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		queue, _ = refresher.QueueSnapshot("brand-1")
		if queue.PendingCount == 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("snapshot never refreshed, queue=%+v", queue)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestRefresherWatchCreator(t *testing.T) {
	store := seedStore()
	feed := changefeed.NewRouter(nil)
	refresher := NewRefresher(newService(store), feed, nil)
	defer refresher.Close()

	if err := refresher.WatchCreator(context.Background(), "creator-3"); err != nil {
		t.Fatalf("watch creator failed: %v", err)
	}
	inbox, ok := refresher.InboxSnapshot("creator-3")
	if !ok || len(inbox.Entries) != 1 {
		t.Fatalf("expected primed inbox, got ok=%v inbox=%+v", ok, inbox)
	}

	store.SeedProgress("camp-1", "creator-3", ports.ProgressView{
		Items: []ports.DeliverableProgressView{
			{DeliverableID: "del-1", Title: "Unboxing video", State: "approved"},
			{DeliverableID: "del-2", Title: "Story mention", State: "approved"},
		},
		AllApproved: true,
	})
	if err := feed.Consume(context.Background(), invitationChange(t, "camp-1", "brand-1", "creator-3")); err != nil {
		t.Fatalf("consume failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		inbox, _ = refresher.InboxSnapshot("creator-3")
		if len(inbox.Entries) == 1 && inbox.Entries[0].Progress != nil && inbox.Entries[0].Progress.AllApproved {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("inbox never refreshed, inbox=%+v", inbox)
		}
		time.Sleep(10 * time.Millisecond)
	}
}
