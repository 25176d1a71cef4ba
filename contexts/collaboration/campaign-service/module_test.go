package campaignservice_test

import (
	"context"
	"errors"
	"testing"

	campaignservice "meridian/contexts/collaboration/campaign-service"
	"meridian/contexts/collaboration/campaign-service/domain/entities"
	domainerrors "meridian/contexts/collaboration/campaign-service/domain/errors"
	"meridian/contexts/collaboration/campaign-service/ports"
	httptransport "meridian/contexts/collaboration/campaign-service/transport/http"
)

type stubAccess struct {
	decisions map[string]ports.CampaignAccess
}

func (s stubAccess) ResolveCampaignAccess(_ context.Context, principalID, _, _ string) (ports.CampaignAccess, error) {
	return s.decisions[principalID], nil
}

// stubDeliverableWriter records checklist writes per campaign.
type stubDeliverableWriter struct {
	written map[string][]ports.DeliverableDefinition
}

func (s *stubDeliverableWriter) WriteDeliverables(_ context.Context, campaignID string, definitions []ports.DeliverableDefinition) error {
	if s.written == nil {
		s.written = make(map[string][]ports.DeliverableDefinition)
	}
	s.written[campaignID] = append([]ports.DeliverableDefinition(nil), definitions...)
	return nil
}

func newTestModule() (campaignservice.Module, *stubDeliverableWriter) {
	access := stubAccess{decisions: map[string]ports.CampaignAccess{
		"owner-1":   {Role: "brand_owner", IsOwner: true, CanAccessCampaign: true},
		"agency-1":  {Role: "agency_admin", CanAccessCampaign: true},
		"manager-1": {Role: "campaign_manager", CanAccessCampaign: true},
		"manager-2": {Role: "campaign_manager", CanAccessCampaign: false},
		"finance-1": {Role: "finance", CanAccessCampaign: true},
	}}
	writer := &stubDeliverableWriter{}
	return campaignservice.NewInMemoryModule(access, writer, nil), writer
}

func createRequest() httptransport.CreateCampaignRequest {
	return httptransport.CreateCampaignRequest{
		BrandID:     "brand-1",
		Title:       "Spring launch",
		Description: "Creator push for the spring collection",
		BudgetTotal: 25000,
	}
}

func definitions() httptransport.DefineDeliverablesRequest {
	return httptransport.DefineDeliverablesRequest{
		Deliverables: []httptransport.DeliverableDefinitionDTO{
			{Index: 0, Title: "Unboxing video", Type: "video"},
			{Index: 1, Title: "Story mention", Type: "story"},
		},
	}
}

func TestCampaignLifecycleChain(t *testing.T) {
	module, _ := newTestModule()
	ctx := context.Background()

	created, err := module.Handler.CreateCampaignHandler(ctx, "owner-1", createRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Campaign.Status != string(entities.CampaignStatusDraft) {
		t.Fatalf("expected draft, got %s", created.Campaign.Status)
	}
	campaignID := created.Campaign.CampaignID

	steps := []entities.CampaignStatus{
		entities.CampaignStatusDiscovery,
		entities.CampaignStatusActive,
		entities.CampaignStatusReviewing,
		entities.CampaignStatusCompleted,
	}
	var last httptransport.CampaignResponse
	for _, step := range steps {
		last, err = module.Handler.ChangeStatusHandler(ctx, "owner-1", campaignID, httptransport.ChangeStatusRequest{ToStatus: string(step)})
		if err != nil {
			t.Fatalf("transition to %s failed: %v", step, err)
		}
	}
	if last.Campaign.LaunchedAt == "" {
		t.Fatal("expected launched_at stamped on activation")
	}
	if last.Campaign.CompletedAt == "" {
		t.Fatal("expected completed_at stamped on completion")
	}

	history, err := module.Handler.ListStateHistoryHandler(ctx, campaignID)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(history.Items) != len(steps) {
		t.Fatalf("expected %d history rows, got %d", len(steps), len(history.Items))
	}
	if history.Items[0].FromStatus != string(entities.CampaignStatusDraft) ||
		history.Items[0].ToStatus != string(entities.CampaignStatusDiscovery) {
		t.Fatalf("unexpected first history row %+v", history.Items[0])
	}
}

func TestSkippingStatesRejected(t *testing.T) {
	module, _ := newTestModule()
	ctx := context.Background()

	created, err := module.Handler.CreateCampaignHandler(ctx, "owner-1", createRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = module.Handler.ChangeStatusHandler(ctx, "owner-1", created.Campaign.CampaignID, httptransport.ChangeStatusRequest{ToStatus: "active"})
	if !errors.Is(err, domainerrors.ErrInvalidStateTransition) {
		t.Fatalf("draft to active: expected invalid transition, got %v", err)
	}
	_, err = module.Handler.ChangeStatusHandler(ctx, "owner-1", created.Campaign.CampaignID, httptransport.ChangeStatusRequest{ToStatus: "archived"})
	if !errors.Is(err, domainerrors.ErrInvalidStateTransition) {
		t.Fatalf("unknown status: expected invalid transition, got %v", err)
	}
}

func TestCancelFromAnyNonTerminalState(t *testing.T) {
	module, _ := newTestModule()
	ctx := context.Background()

	created, err := module.Handler.CreateCampaignHandler(ctx, "owner-1", createRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	campaignID := created.Campaign.CampaignID

	for _, step := range []string{"discovery", "active"} {
		if _, err := module.Handler.ChangeStatusHandler(ctx, "owner-1", campaignID, httptransport.ChangeStatusRequest{ToStatus: step}); err != nil {
			t.Fatalf("transition to %s failed: %v", step, err)
		}
	}

	cancelled, err := module.Handler.ChangeStatusHandler(ctx, "owner-1", campaignID, httptransport.ChangeStatusRequest{ToStatus: "cancelled", Reason: "budget pulled"})
	if err != nil {
		t.Fatalf("cancel from active failed: %v", err)
	}
	if cancelled.Campaign.Status != string(entities.CampaignStatusCancelled) {
		t.Fatalf("expected cancelled, got %s", cancelled.Campaign.Status)
	}

	// Terminal states absorb everything, including another cancel.
	_, err = module.Handler.ChangeStatusHandler(ctx, "owner-1", campaignID, httptransport.ChangeStatusRequest{ToStatus: "cancelled"})
	if !errors.Is(err, domainerrors.ErrInvalidStateTransition) {
		t.Fatalf("cancel after cancel: expected invalid transition, got %v", err)
	}
	_, err = module.Handler.ChangeStatusHandler(ctx, "owner-1", campaignID, httptransport.ChangeStatusRequest{ToStatus: "discovery"})
	if !errors.Is(err, domainerrors.ErrInvalidStateTransition) {
		t.Fatalf("reopen after cancel: expected invalid transition, got %v", err)
	}
}

func TestDeliverableChecklistLocksAfterSetup(t *testing.T) {
	module, writer := newTestModule()
	ctx := context.Background()

	created, err := module.Handler.CreateCampaignHandler(ctx, "owner-1", createRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	campaignID := created.Campaign.CampaignID

	if err := module.Handler.DefineDeliverablesHandler(ctx, "owner-1", campaignID, definitions()); err != nil {
		t.Fatalf("define in draft failed: %v", err)
	}
	if len(writer.written[campaignID]) != 2 {
		t.Fatalf("expected 2 definitions written, got %d", len(writer.written[campaignID]))
	}

	if _, err := module.Handler.ChangeStatusHandler(ctx, "owner-1", campaignID, httptransport.ChangeStatusRequest{ToStatus: "discovery"}); err != nil {
		t.Fatalf("transition failed: %v", err)
	}
	if err := module.Handler.DefineDeliverablesHandler(ctx, "owner-1", campaignID, definitions()); err != nil {
		t.Fatalf("define in discovery failed: %v", err)
	}

	if _, err := module.Handler.ChangeStatusHandler(ctx, "owner-1", campaignID, httptransport.ChangeStatusRequest{ToStatus: "active"}); err != nil {
		t.Fatalf("transition failed: %v", err)
	}
	err = module.Handler.DefineDeliverablesHandler(ctx, "owner-1", campaignID, definitions())
	if !errors.Is(err, domainerrors.ErrDeliverablesLocked) {
		t.Fatalf("define after launch: expected locked, got %v", err)
	}
}

func TestDefineDeliverablesValidation(t *testing.T) {
	module, _ := newTestModule()
	ctx := context.Background()

	created, err := module.Handler.CreateCampaignHandler(ctx, "owner-1", createRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	campaignID := created.Campaign.CampaignID

	err = module.Handler.DefineDeliverablesHandler(ctx, "owner-1", campaignID, httptransport.DefineDeliverablesRequest{})
	if !errors.Is(err, domainerrors.ErrInvalidCampaignInput) {
		t.Fatalf("empty checklist: expected invalid input, got %v", err)
	}
	err = module.Handler.DefineDeliverablesHandler(ctx, "owner-1", campaignID, httptransport.DefineDeliverablesRequest{
		Deliverables: []httptransport.DeliverableDefinitionDTO{{Index: 0, Title: "", Type: "video"}},
	})
	if !errors.Is(err, domainerrors.ErrInvalidCampaignInput) {
		t.Fatalf("blank title: expected invalid input, got %v", err)
	}
}

func TestActorAuthorization(t *testing.T) {
	module, _ := newTestModule()
	ctx := context.Background()

	// Campaign managers cannot create campaigns even when assigned elsewhere.
	_, err := module.Handler.CreateCampaignHandler(ctx, "manager-1", createRequest())
	if !errors.Is(err, domainerrors.ErrUnauthorizedActor) {
		t.Fatalf("manager create: expected unauthorized, got %v", err)
	}

	created, err := module.Handler.CreateCampaignHandler(ctx, "agency-1", createRequest())
	if err != nil {
		t.Fatalf("agency admin create failed: %v", err)
	}
	campaignID := created.Campaign.CampaignID

	// Assigned managers can run the lifecycle.
	if _, err := module.Handler.ChangeStatusHandler(ctx, "manager-1", campaignID, httptransport.ChangeStatusRequest{ToStatus: "discovery"}); err != nil {
		t.Fatalf("assigned manager transition failed: %v", err)
	}

	// Unassigned managers and finance cannot.
	_, err = module.Handler.ChangeStatusHandler(ctx, "manager-2", campaignID, httptransport.ChangeStatusRequest{ToStatus: "active"})
	if !errors.Is(err, domainerrors.ErrUnauthorizedActor) {
		t.Fatalf("unassigned manager transition: expected unauthorized, got %v", err)
	}
	_, err = module.Handler.ChangeStatusHandler(ctx, "finance-1", campaignID, httptransport.ChangeStatusRequest{ToStatus: "active"})
	if !errors.Is(err, domainerrors.ErrUnauthorizedActor) {
		t.Fatalf("finance transition: expected unauthorized, got %v", err)
	}
	err = module.Handler.DefineDeliverablesHandler(ctx, "finance-1", campaignID, definitions())
	if !errors.Is(err, domainerrors.ErrUnauthorizedActor) {
		t.Fatalf("finance define: expected unauthorized, got %v", err)
	}
}

func TestAcceptingDeliverablesQuery(t *testing.T) {
	module, _ := newTestModule()
	ctx := context.Background()

	created, err := module.Handler.CreateCampaignHandler(ctx, "owner-1", createRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	campaignID := created.Campaign.CampaignID

	accepting, err := module.Queries.IsAcceptingDeliverables(ctx, campaignID)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if accepting {
		t.Fatal("draft campaign must not accept deliverables")
	}

	for _, step := range []string{"discovery", "active"} {
		if _, err := module.Handler.ChangeStatusHandler(ctx, "owner-1", campaignID, httptransport.ChangeStatusRequest{ToStatus: step}); err != nil {
			t.Fatalf("transition to %s failed: %v", step, err)
		}
	}
	accepting, err = module.Queries.IsAcceptingDeliverables(ctx, campaignID)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if !accepting {
		t.Fatal("active campaign must accept deliverables")
	}

	if _, err := module.Queries.IsAcceptingDeliverables(ctx, "missing"); !errors.Is(err, domainerrors.ErrCampaignNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListCampaignsFilters(t *testing.T) {
	module, _ := newTestModule()
	ctx := context.Background()

	first, err := module.Handler.CreateCampaignHandler(ctx, "owner-1", createRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	other := createRequest()
	other.BrandID = "brand-2"
	other.Title = "Other brand push"
	if _, err := module.Handler.CreateCampaignHandler(ctx, "owner-1", other); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := module.Handler.ChangeStatusHandler(ctx, "owner-1", first.Campaign.CampaignID, httptransport.ChangeStatusRequest{ToStatus: "discovery"}); err != nil {
		t.Fatalf("transition failed: %v", err)
	}

	byBrand, err := module.Handler.ListCampaignsHandler(ctx, "brand-1", "")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(byBrand.Items) != 1 || byBrand.Items[0].CampaignID != first.Campaign.CampaignID {
		t.Fatalf("expected only the brand-1 campaign, got %+v", byBrand.Items)
	}

	byStatus, err := module.Handler.ListCampaignsHandler(ctx, "", "discovery")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(byStatus.Items) != 1 || byStatus.Items[0].Status != "discovery" {
		t.Fatalf("expected one discovery campaign, got %+v", byStatus.Items)
	}
}
