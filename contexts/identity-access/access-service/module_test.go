package accessservice_test

import (
	"context"
	"errors"
	"testing"

	accessservice "meridian/contexts/identity-access/access-service"
	"meridian/contexts/identity-access/access-service/application/queries"
	"meridian/contexts/identity-access/access-service/domain/entities"
	domainerrors "meridian/contexts/identity-access/access-service/domain/errors"
	httptransport "meridian/contexts/identity-access/access-service/transport/http"
)

type stubInvitations struct {
	invited map[string]bool
}

func (s stubInvitations) HasInvitation(_ context.Context, campaignID, creatorID string) (bool, error) {
	return s.invited[campaignID+"/"+creatorID], nil
}

func newTestModule() accessservice.Module {
	return accessservice.NewInMemoryModule(
		[]entities.Brand{{BrandID: "brand-1", OwnerUserID: "owner-1", Name: "Northwind"}},
		[]string{"admin-1"},
		stubInvitations{invited: map[string]bool{"campaign-1/creator-1": true}},
		nil,
	)
}

func resolve(t *testing.T, module accessservice.Module, principalID, brandID, campaignID string) entities.AccessDecision {
	t.Helper()
	decision, err := module.Resolve.Execute(context.Background(), queries.ResolveAccessQuery{
		PrincipalID: principalID,
		BrandID:     brandID,
		CampaignID:  campaignID,
	})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	return decision
}

func TestResolveAccessChain(t *testing.T) {
	module := newTestModule()
	ctx := context.Background()

	// Global admin overrides everything, even unknown brands.
	decision := resolve(t, module, "admin-1", "brand-9", "campaign-9")
	if !decision.IsAdmin || !decision.CanAccessCampaign || decision.Reason != entities.ReasonGlobalAdmin {
		t.Fatalf("unexpected admin decision %+v", decision)
	}

	// Brand owner.
	decision = resolve(t, module, "owner-1", "brand-1", "campaign-1")
	if !decision.IsOwner || !decision.CanAccessCampaign || decision.Reason != entities.ReasonBrandOwner {
		t.Fatalf("unexpected owner decision %+v", decision)
	}

	// Memberships: agency_admin and finance resolve brand-wide.
	for _, seed := range []struct {
		userID string
		role   entities.MembershipRole
		reason string
	}{
		{"agency-1", entities.RoleAgencyAdmin, entities.ReasonAgencyAdmin},
		{"finance-1", entities.RoleFinance, entities.ReasonFinanceScope},
	} {
		_, err := module.Handler.AddMembershipHandler(ctx, "owner-1", "brand-1", httptransport.AddMembershipRequest{
			UserID: seed.userID,
			Role:   string(seed.role),
		})
		if err != nil {
			t.Fatalf("add membership failed: %v", err)
		}
		decision = resolve(t, module, seed.userID, "brand-1", "campaign-1")
		if !decision.CanAccessCampaign || decision.Reason != seed.reason {
			t.Fatalf("unexpected %s decision %+v", seed.role, decision)
		}
	}

	// Unknown principal with an invitation falls through to creator access.
	decision = resolve(t, module, "creator-1", "brand-1", "campaign-1")
	if !decision.CanAccessCampaign || decision.Role != "creator" || decision.Reason != entities.ReasonCreatorInvited {
		t.Fatalf("unexpected creator decision %+v", decision)
	}

	// Nobody at all: negative decision, nil error.
	decision = resolve(t, module, "stranger-1", "brand-1", "campaign-1")
	if decision.CanAccessCampaign || decision.Reason != entities.ReasonNoAccess {
		t.Fatalf("expected negative decision, got %+v", decision)
	}
}

func TestCampaignManagerRequiresAssignment(t *testing.T) {
	module := newTestModule()
	ctx := context.Background()

	_, err := module.Handler.AddMembershipHandler(ctx, "owner-1", "brand-1", httptransport.AddMembershipRequest{
		UserID: "manager-1",
		Role:   "campaign_manager",
	})
	if err != nil {
		t.Fatalf("add membership failed: %v", err)
	}

	decision := resolve(t, module, "manager-1", "brand-1", "campaign-1")
	if decision.CanAccessCampaign || decision.Reason != entities.ReasonManagerUnassigned {
		t.Fatalf("unassigned manager must be denied, got %+v", decision)
	}

	_, err = module.Handler.AssignManagerHandler(ctx, "owner-1", httptransport.AssignManagerRequest{
		BrandID:    "brand-1",
		CampaignID: "campaign-1",
		UserID:     "manager-1",
	})
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	decision = resolve(t, module, "manager-1", "brand-1", "campaign-1")
	if !decision.CanAccessCampaign || decision.Reason != entities.ReasonManagerAssigned {
		t.Fatalf("assigned manager must be allowed, got %+v", decision)
	}

	// The assignment is per campaign.
	decision = resolve(t, module, "manager-1", "brand-1", "campaign-2")
	if decision.CanAccessCampaign {
		t.Fatalf("assignment must not leak to other campaigns, got %+v", decision)
	}

	if err := module.Handler.RevokeManagerHandler(ctx, "owner-1", httptransport.RevokeManagerRequest{
		BrandID:    "brand-1",
		CampaignID: "campaign-1",
		UserID:     "manager-1",
	}); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	decision = resolve(t, module, "manager-1", "brand-1", "campaign-1")
	if decision.CanAccessCampaign {
		t.Fatalf("revoked manager must be denied, got %+v", decision)
	}
}

func TestAssignManagerGuards(t *testing.T) {
	module := newTestModule()
	ctx := context.Background()

	// Assignee must hold the campaign_manager role first.
	_, err := module.Handler.AssignManagerHandler(ctx, "owner-1", httptransport.AssignManagerRequest{
		BrandID:    "brand-1",
		CampaignID: "campaign-1",
		UserID:     "manager-1",
	})
	if !errors.Is(err, domainerrors.ErrManagerRoleRequired) {
		t.Fatalf("expected manager-role-required, got %v", err)
	}

	_, err = module.Handler.AddMembershipHandler(ctx, "owner-1", "brand-1", httptransport.AddMembershipRequest{
		UserID: "manager-1",
		Role:   "campaign_manager",
	})
	if err != nil {
		t.Fatalf("add membership failed: %v", err)
	}

	// Non-operators cannot mutate access records.
	_, err = module.Handler.AssignManagerHandler(ctx, "manager-1", httptransport.AssignManagerRequest{
		BrandID:    "brand-1",
		CampaignID: "campaign-1",
		UserID:     "manager-1",
	})
	if !errors.Is(err, domainerrors.ErrUnauthorizedActor) {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	// Assigning twice is idempotent.
	first, err := module.Handler.AssignManagerHandler(ctx, "owner-1", httptransport.AssignManagerRequest{
		BrandID:    "brand-1",
		CampaignID: "campaign-1",
		UserID:     "manager-1",
	})
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	second, err := module.Handler.AssignManagerHandler(ctx, "owner-1", httptransport.AssignManagerRequest{
		BrandID:    "brand-1",
		CampaignID: "campaign-1",
		UserID:     "manager-1",
	})
	if err != nil {
		t.Fatalf("replayed assign failed: %v", err)
	}
	if first.Assignment.CreatedAt != second.Assignment.CreatedAt {
		t.Fatalf("expected idempotent assignment, got %+v and %+v", first.Assignment, second.Assignment)
	}
}

func TestDefaultBrandMaintenance(t *testing.T) {
	module := newTestModule()
	ctx := context.Background()

	_, err := module.Handler.AddMembershipHandler(ctx, "admin-1", "brand-1", httptransport.AddMembershipRequest{
		UserID:    "user-1",
		Role:      "finance",
		IsDefault: true,
	})
	if err != nil {
		t.Fatalf("add membership failed: %v", err)
	}

	defaultBrand, found, err := module.Handler.Memberships.DefaultBrand(ctx, "user-1")
	if err != nil || !found || defaultBrand != "brand-1" {
		t.Fatalf("expected default brand-1, got %q found=%v err=%v", defaultBrand, found, err)
	}

	// A new default clears the old one.
	_, err = module.Handler.AddMembershipHandler(ctx, "admin-1", "brand-2", httptransport.AddMembershipRequest{
		UserID:    "user-1",
		Role:      "finance",
		IsDefault: true,
	})
	if err != nil {
		t.Fatalf("second membership failed: %v", err)
	}
	memberships, err := module.Handler.Memberships.ListForUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	defaults := 0
	for _, membership := range memberships {
		if membership.IsDefault {
			defaults++
			if membership.BrandID != "brand-2" {
				t.Fatalf("wrong default brand %+v", membership)
			}
		}
	}
	if defaults != 1 {
		t.Fatalf("expected exactly one default membership, got %d", defaults)
	}
}
