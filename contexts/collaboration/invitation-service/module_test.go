package invitationservice_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	invitationservice "meridian/contexts/collaboration/invitation-service"
	"meridian/contexts/collaboration/invitation-service/application/commands"
	"meridian/contexts/collaboration/invitation-service/application/workers"
	"meridian/contexts/collaboration/invitation-service/domain/entities"
	domainerrors "meridian/contexts/collaboration/invitation-service/domain/errors"
	"meridian/contexts/collaboration/invitation-service/ports"
	httptransport "meridian/contexts/collaboration/invitation-service/transport/http"
)

// stubAccess resolves a fixed access decision per principal.
type stubAccess struct {
	decisions map[string]ports.CampaignAccess
}

func (s stubAccess) ResolveCampaignAccess(_ context.Context, principalID, _, _ string) (ports.CampaignAccess, error) {
	return s.decisions[principalID], nil
}

func newTestModule() invitationservice.Module {
	access := stubAccess{decisions: map[string]ports.CampaignAccess{
		"owner-1":   {Role: "brand_owner", IsOwner: true, CanAccessCampaign: true},
		"manager-1": {Role: "campaign_manager", CanAccessCampaign: true},
		"manager-2": {Role: "campaign_manager", CanAccessCampaign: false},
		"finance-1": {Role: "finance", CanAccessCampaign: true},
	}}
	return invitationservice.NewInMemoryModule(access, "https://links.example.com", nil)
}

func inviteRequest(payout float64) httptransport.InviteCreatorRequest {
	return httptransport.InviteCreatorRequest{
		BrandID:       "brand-1",
		CreatorID:     "creator-1",
		OfferedPayout: payout,
		Deliverables: []httptransport.DeliverableSpecDTO{
			{Index: 0, Title: "Unboxing video", Type: "video"},
			{Index: 1, Title: "Story mention", Type: "story"},
		},
	}
}

func TestInvitationNegotiationLifecycle(t *testing.T) {
	module := newTestModule()
	ctx := context.Background()

	created, err := module.Handler.InviteCreatorHandler(ctx, "owner-1", "campaign-1", inviteRequest(500))
	if err != nil {
		t.Fatalf("invite failed: %v", err)
	}
	if created.Invitation.Status != string(entities.InvitationStatusPending) {
		t.Fatalf("expected pending invitation, got %s", created.Invitation.Status)
	}
	if created.Invitation.BasePayout != 500 || created.Invitation.OfferedPayout != 500 {
		t.Fatalf("unexpected payout snapshot: base=%v offered=%v", created.Invitation.BasePayout, created.Invitation.OfferedPayout)
	}

	invitationID := created.Invitation.InvitationID

	negotiated, err := module.Handler.NegotiateHandler(ctx, "creator-1", invitationID, httptransport.NegotiateRequest{Delta: 100})
	if err != nil {
		t.Fatalf("negotiate failed: %v", err)
	}
	if negotiated.Invitation.Status != string(entities.InvitationStatusNegotiating) {
		t.Fatalf("expected negotiating, got %s", negotiated.Invitation.Status)
	}
	if negotiated.Invitation.NegotiatedDelta == nil || *negotiated.Invitation.NegotiatedDelta != 100 {
		t.Fatalf("expected negotiated delta 100, got %v", negotiated.Invitation.NegotiatedDelta)
	}

	countered, err := module.Handler.CounterOfferHandler(ctx, "manager-1", invitationID, httptransport.CounterOfferRequest{OfferedPayout: 550})
	if err != nil {
		t.Fatalf("counter offer failed: %v", err)
	}
	if countered.Invitation.OfferedPayout != 550 {
		t.Fatalf("expected offered payout 550, got %v", countered.Invitation.OfferedPayout)
	}

	accepted, err := module.Handler.AcceptHandler(ctx, "creator-1", invitationID)
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if accepted.Invitation.Status != string(entities.InvitationStatusAccepted) {
		t.Fatalf("expected accepted, got %s", accepted.Invitation.Status)
	}
	if accepted.Invitation.OfferedPayout != 550 {
		t.Fatalf("creator accept takes the standing offer, got %v", accepted.Invitation.OfferedPayout)
	}
	if accepted.Invitation.NegotiatedDelta != nil {
		t.Fatalf("expected delta cleared on accept, got %v", *accepted.Invitation.NegotiatedDelta)
	}
	if accepted.Invitation.RespondedAt == "" {
		t.Fatal("expected responded_at to be set")
	}
	if len(accepted.TrackingLink.Code) != 12 {
		t.Fatalf("expected 12-char tracking code, got %q", accepted.TrackingLink.Code)
	}
	if !strings.HasPrefix(accepted.TrackingLink.URL, "https://links.example.com/t/") {
		t.Fatalf("unexpected tracking url %q", accepted.TrackingLink.URL)
	}

	links, err := module.Handler.ListTrackingLinksHandler(ctx, "campaign-1", "creator-1")
	if err != nil {
		t.Fatalf("list tracking links failed: %v", err)
	}
	if len(links.Items) != 1 || links.Items[0].InvitationID != invitationID {
		t.Fatalf("expected one link for the accepted invitation, got %+v", links.Items)
	}
}

func TestBrandAcceptFoldsNegotiatedDelta(t *testing.T) {
	module := newTestModule()
	ctx := context.Background()

	created, err := module.Handler.InviteCreatorHandler(ctx, "owner-1", "campaign-1", inviteRequest(500))
	if err != nil {
		t.Fatalf("invite failed: %v", err)
	}
	invitationID := created.Invitation.InvitationID

	if _, err := module.Handler.NegotiateHandler(ctx, "creator-1", invitationID, httptransport.NegotiateRequest{Delta: 100}); err != nil {
		t.Fatalf("negotiate failed: %v", err)
	}

	accepted, err := module.Handler.AcceptHandler(ctx, "owner-1", invitationID)
	if err != nil {
		t.Fatalf("brand accept failed: %v", err)
	}
	if accepted.Invitation.OfferedPayout != 600 {
		t.Fatalf("brand accept folds the creator's delta into the payout, got %v", accepted.Invitation.OfferedPayout)
	}
	if accepted.Invitation.NegotiatedDelta != nil {
		t.Fatal("expected delta cleared after fold")
	}
}

func TestDuplicateLiveInvitationRejected(t *testing.T) {
	module := newTestModule()
	ctx := context.Background()

	if _, err := module.Handler.InviteCreatorHandler(ctx, "owner-1", "campaign-1", inviteRequest(500)); err != nil {
		t.Fatalf("invite failed: %v", err)
	}
	_, err := module.Handler.InviteCreatorHandler(ctx, "owner-1", "campaign-1", inviteRequest(700))
	if !errors.Is(err, domainerrors.ErrDuplicateInvitation) {
		t.Fatalf("expected duplicate invitation error, got %v", err)
	}
}

func TestReinviteAfterDeclineAllowed(t *testing.T) {
	module := newTestModule()
	ctx := context.Background()

	created, err := module.Handler.InviteCreatorHandler(ctx, "owner-1", "campaign-1", inviteRequest(500))
	if err != nil {
		t.Fatalf("invite failed: %v", err)
	}
	if _, err := module.Handler.DeclineHandler(ctx, "creator-1", created.Invitation.InvitationID); err != nil {
		t.Fatalf("decline failed: %v", err)
	}
	if _, err := module.Handler.InviteCreatorHandler(ctx, "owner-1", "campaign-1", inviteRequest(650)); err != nil {
		t.Fatalf("re-invite after decline should succeed, got %v", err)
	}
}

func TestTerminalStateAbsorbs(t *testing.T) {
	module := newTestModule()
	ctx := context.Background()

	created, err := module.Handler.InviteCreatorHandler(ctx, "owner-1", "campaign-1", inviteRequest(500))
	if err != nil {
		t.Fatalf("invite failed: %v", err)
	}
	invitationID := created.Invitation.InvitationID

	if _, err := module.Handler.DeclineHandler(ctx, "creator-1", invitationID); err != nil {
		t.Fatalf("decline failed: %v", err)
	}

	if _, err := module.Handler.AcceptHandler(ctx, "creator-1", invitationID); !errors.Is(err, domainerrors.ErrInvalidStatusTransition) {
		t.Fatalf("accept after decline: expected invalid transition, got %v", err)
	}
	if _, err := module.Handler.NegotiateHandler(ctx, "creator-1", invitationID, httptransport.NegotiateRequest{Delta: 50}); !errors.Is(err, domainerrors.ErrInvalidStatusTransition) {
		t.Fatalf("negotiate after decline: expected invalid transition, got %v", err)
	}
	if _, err := module.Handler.WithdrawHandler(ctx, "owner-1", invitationID); !errors.Is(err, domainerrors.ErrInvalidStatusTransition) {
		t.Fatalf("withdraw after decline: expected invalid transition, got %v", err)
	}
}

func TestActorAuthorization(t *testing.T) {
	module := newTestModule()
	ctx := context.Background()

	// Finance resolves campaign access but cannot operate invitations.
	_, err := module.Handler.InviteCreatorHandler(ctx, "finance-1", "campaign-1", inviteRequest(500))
	if !errors.Is(err, domainerrors.ErrUnauthorizedActor) {
		t.Fatalf("finance invite: expected unauthorized, got %v", err)
	}

	// Campaign manager without campaign access is denied too.
	_, err = module.Handler.InviteCreatorHandler(ctx, "manager-2", "campaign-1", inviteRequest(500))
	if !errors.Is(err, domainerrors.ErrUnauthorizedActor) {
		t.Fatalf("unassigned manager invite: expected unauthorized, got %v", err)
	}

	created, err := module.Handler.InviteCreatorHandler(ctx, "owner-1", "campaign-1", inviteRequest(500))
	if err != nil {
		t.Fatalf("invite failed: %v", err)
	}
	invitationID := created.Invitation.InvitationID

	// Only the invited creator can negotiate or decline.
	if _, err := module.Handler.NegotiateHandler(ctx, "creator-2", invitationID, httptransport.NegotiateRequest{Delta: 100}); !errors.Is(err, domainerrors.ErrUnauthorizedActor) {
		t.Fatalf("foreign creator negotiate: expected unauthorized, got %v", err)
	}
	if _, err := module.Handler.DeclineHandler(ctx, "creator-2", invitationID); !errors.Is(err, domainerrors.ErrUnauthorizedActor) {
		t.Fatalf("foreign creator decline: expected unauthorized, got %v", err)
	}

	// Counter offers are brand-side only.
	if _, err := module.Handler.NegotiateHandler(ctx, "creator-1", invitationID, httptransport.NegotiateRequest{Delta: 100}); err != nil {
		t.Fatalf("negotiate failed: %v", err)
	}
	if _, err := module.Handler.CounterOfferHandler(ctx, "creator-1", invitationID, httptransport.CounterOfferRequest{OfferedPayout: 550}); !errors.Is(err, domainerrors.ErrUnauthorizedActor) {
		t.Fatalf("creator counter offer: expected unauthorized, got %v", err)
	}
}

func TestStaleGuardReturnsConflict(t *testing.T) {
	module := newTestModule()
	ctx := context.Background()

	created, err := module.Handler.InviteCreatorHandler(ctx, "owner-1", "campaign-1", inviteRequest(500))
	if err != nil {
		t.Fatalf("invite failed: %v", err)
	}
	item, err := module.Store.GetInvitation(ctx, created.Invitation.InvitationID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	// A writer that read the row before someone else flipped it must lose.
	if _, err := module.Handler.NegotiateHandler(ctx, "creator-1", item.InvitationID, httptransport.NegotiateRequest{Delta: 100}); err != nil {
		t.Fatalf("negotiate failed: %v", err)
	}
	stale := item
	stale.Status = entities.InvitationStatusWithdrawn
	stale.Version++
	err = module.Store.UpdateInvitationIf(ctx, stale, item.Version, nil)
	if !errors.Is(err, domainerrors.ErrTransitionConflict) {
		t.Fatalf("expected transition conflict, got %v", err)
	}
}

// snapshotRepository pins GetInvitation to one read so two use case runs see
// the same prior state, the way two concurrent request handlers would.
type snapshotRepository struct {
	ports.Repository
	snapshot entities.Invitation
}

func (r snapshotRepository) GetInvitation(_ context.Context, _ string) (entities.Invitation, error) {
	return r.snapshot, nil
}

func TestRacingCounterOffersOneWins(t *testing.T) {
	module := newTestModule()
	ctx := context.Background()

	created, err := module.Handler.InviteCreatorHandler(ctx, "owner-1", "campaign-1", inviteRequest(500))
	if err != nil {
		t.Fatalf("invite failed: %v", err)
	}
	invitationID := created.Invitation.InvitationID
	if _, err := module.Handler.NegotiateHandler(ctx, "creator-1", invitationID, httptransport.NegotiateRequest{Delta: 100}); err != nil {
		t.Fatalf("negotiate failed: %v", err)
	}
	snapshot, err := module.Store.GetInvitation(ctx, invitationID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	// Both counter-offers leave the status at negotiating; the guard has to
	// catch the race anyway.
	uc := commands.CounterOfferUseCase{
		Invitations: snapshotRepository{Repository: module.Store, snapshot: snapshot},
		Access: stubAccess{decisions: map[string]ports.CampaignAccess{
			"owner-1": {Role: "brand_owner", IsOwner: true, CanAccessCampaign: true},
		}},
		Clock: module.Store,
		IDGen: module.Store,
	}
	_, err1 := uc.Execute(ctx, commands.CounterOfferCommand{InvitationID: invitationID, ActorID: "owner-1", OfferedPayout: 550})
	_, err2 := uc.Execute(ctx, commands.CounterOfferCommand{InvitationID: invitationID, ActorID: "owner-1", OfferedPayout: 600})

	if err1 != nil {
		t.Fatalf("first counter offer should win, got %v", err1)
	}
	if !errors.Is(err2, domainerrors.ErrTransitionConflict) {
		t.Fatalf("second counter offer should conflict, got %v", err2)
	}
	final, err := module.Store.GetInvitation(ctx, invitationID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if final.OfferedPayout != 550 {
		t.Fatalf("losing write overwrote the offer: got %v, want 550", final.OfferedPayout)
	}
	if final.Status != entities.InvitationStatusNegotiating {
		t.Fatalf("expected negotiating, got %s", final.Status)
	}
}

func TestExpirerSweepsPastDuePending(t *testing.T) {
	module := newTestModule()
	ctx := context.Background()

	past := time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)
	expiring := inviteRequest(500)
	expiring.ExpiresAt = past
	created, err := module.Handler.InviteCreatorHandler(ctx, "owner-1", "campaign-1", expiring)
	if err != nil {
		t.Fatalf("invite failed: %v", err)
	}

	// A negotiating invitation with a past expiry must survive the sweep.
	negotiating := inviteRequest(400)
	negotiating.CreatorID = "creator-2"
	negotiating.ExpiresAt = past
	other, err := module.Handler.InviteCreatorHandler(ctx, "owner-1", "campaign-1", negotiating)
	if err != nil {
		t.Fatalf("second invite failed: %v", err)
	}
	if _, err := module.Handler.NegotiateHandler(ctx, "creator-2", other.Invitation.InvitationID, httptransport.NegotiateRequest{Delta: 50}); err != nil {
		t.Fatalf("negotiate failed: %v", err)
	}

	expirer := workers.InvitationExpirer{
		Invitations: module.Store,
		Expire:      module.Expire,
		Clock:       module.Store,
		BatchSize:   10,
	}
	if err := expirer.RunOnce(ctx); err != nil {
		t.Fatalf("expirer run failed: %v", err)
	}

	swept, err := module.Store.GetInvitation(ctx, created.Invitation.InvitationID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if swept.Status != entities.InvitationStatusExpired {
		t.Fatalf("expected expired, got %s", swept.Status)
	}
	kept, err := module.Store.GetInvitation(ctx, other.Invitation.InvitationID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if kept.Status != entities.InvitationStatusNegotiating {
		t.Fatalf("negotiating invitation should not expire, got %s", kept.Status)
	}
}

func TestCreatorInvitationLookup(t *testing.T) {
	module := newTestModule()
	ctx := context.Background()

	_, found, err := module.Handler.Queries.GetInvitationForCreator(ctx, "campaign-1", "creator-1")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if found {
		t.Fatal("expected no invitation before invite")
	}

	created, err := module.Handler.InviteCreatorHandler(ctx, "owner-1", "campaign-1", inviteRequest(500))
	if err != nil {
		t.Fatalf("invite failed: %v", err)
	}
	item, found, err := module.Handler.Queries.GetInvitationForCreator(ctx, "campaign-1", "creator-1")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if !found || item.InvitationID != created.Invitation.InvitationID {
		t.Fatalf("expected the created invitation, got found=%v item=%+v", found, item)
	}
}
