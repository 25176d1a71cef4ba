package bootstrap

import (
	"context"
	"time"

	campaignports "meridian/contexts/collaboration/campaign-service/ports"
	dashboardports "meridian/contexts/collaboration/dashboard-service/ports"
	deliverableentities "meridian/contexts/collaboration/deliverable-service/domain/entities"
	deliverablequeries "meridian/contexts/collaboration/deliverable-service/application/queries"
	deliverableports "meridian/contexts/collaboration/deliverable-service/ports"
	invitationqueries "meridian/contexts/collaboration/invitation-service/application/queries"
	invitationentities "meridian/contexts/collaboration/invitation-service/domain/entities"
	invitationports "meridian/contexts/collaboration/invitation-service/ports"
	campaignqueries "meridian/contexts/collaboration/campaign-service/application/queries"
	accessqueries "meridian/contexts/identity-access/access-service/application/queries"

	"github.com/google/uuid"
)

// The glue adapters below are the only place one context reaches into
// another. Each consumer declares its own narrow port; the composition root
// binds it here.

type campaignAccessBinding struct {
	resolve accessqueries.ResolveAccessUseCase
}

func (b campaignAccessBinding) ResolveCampaignAccess(ctx context.Context, principalID, brandID, campaignID string) (campaignports.CampaignAccess, error) {
	decision, err := b.resolve.Execute(ctx, accessqueries.ResolveAccessQuery{
		PrincipalID: principalID,
		BrandID:     brandID,
		CampaignID:  campaignID,
	})
	if err != nil {
		return campaignports.CampaignAccess{}, err
	}
	return campaignports.CampaignAccess{
		Role:              decision.Role,
		CanAccessCampaign: decision.CanAccessCampaign,
		IsOwner:           decision.IsOwner,
		IsAdmin:           decision.IsAdmin,
	}, nil
}

type invitationAccessBinding struct {
	resolve accessqueries.ResolveAccessUseCase
}

func (b invitationAccessBinding) ResolveCampaignAccess(ctx context.Context, principalID, brandID, campaignID string) (invitationports.CampaignAccess, error) {
	decision, err := b.resolve.Execute(ctx, accessqueries.ResolveAccessQuery{
		PrincipalID: principalID,
		BrandID:     brandID,
		CampaignID:  campaignID,
	})
	if err != nil {
		return invitationports.CampaignAccess{}, err
	}
	return invitationports.CampaignAccess{
		Role:              decision.Role,
		CanAccessCampaign: decision.CanAccessCampaign,
		IsOwner:           decision.IsOwner,
		IsAdmin:           decision.IsAdmin,
	}, nil
}

type deliverableAccessBinding struct {
	resolve accessqueries.ResolveAccessUseCase
}

func (b deliverableAccessBinding) ResolveCampaignAccess(ctx context.Context, principalID, brandID, campaignID string) (deliverableports.CampaignAccess, error) {
	decision, err := b.resolve.Execute(ctx, accessqueries.ResolveAccessQuery{
		PrincipalID: principalID,
		BrandID:     brandID,
		CampaignID:  campaignID,
	})
	if err != nil {
		return deliverableports.CampaignAccess{}, err
	}
	return deliverableports.CampaignAccess{
		Role:              decision.Role,
		CanAccessCampaign: decision.CanAccessCampaign,
		IsOwner:           decision.IsOwner,
		IsAdmin:           decision.IsAdmin,
	}, nil
}

// deliverableWriterBinding turns the campaign service's checklist
// definitions into deliverable rows owned by the deliverable service.
type deliverableWriterBinding struct {
	repository deliverableports.Repository
}

func (b deliverableWriterBinding) WriteDeliverables(ctx context.Context, campaignID string, definitions []campaignports.DeliverableDefinition) error {
	now := time.Now().UTC()
	rows := make([]deliverableentities.Deliverable, 0, len(definitions))
	for _, definition := range definitions {
		rows = append(rows, deliverableentities.Deliverable{
			DeliverableID:    uuid.NewString(),
			CampaignID:       campaignID,
			DeliverableIndex: definition.Index,
			Title:            definition.Title,
			Type:             definition.Type,
			CreatedAt:        now,
		})
	}
	return b.repository.CreateDeliverables(ctx, rows)
}

type campaignStatusBinding struct {
	queries campaignqueries.QueryUseCase
}

func (b campaignStatusBinding) IsAcceptingDeliverables(ctx context.Context, campaignID string) (bool, error) {
	return b.queries.IsAcceptingDeliverables(ctx, campaignID)
}

type dashboardInvitationBinding struct {
	queries invitationqueries.QueryUseCase
}

func (b dashboardInvitationBinding) ListByBrand(ctx context.Context, brandID string) ([]dashboardports.InvitationView, error) {
	items, err := b.queries.ListInvitations(ctx, invitationqueries.ListInvitationsQuery{BrandID: brandID})
	if err != nil {
		return nil, err
	}
	return mapInvitationViews(items), nil
}

func (b dashboardInvitationBinding) ListByCreator(ctx context.Context, creatorID string) ([]dashboardports.InvitationView, error) {
	items, err := b.queries.ListInvitations(ctx, invitationqueries.ListInvitationsQuery{CreatorID: creatorID})
	if err != nil {
		return nil, err
	}
	return mapInvitationViews(items), nil
}

func mapInvitationViews(items []invitationentities.Invitation) []dashboardports.InvitationView {
	views := make([]dashboardports.InvitationView, 0, len(items))
	for _, item := range items {
		views = append(views, dashboardports.InvitationView{
			InvitationID:    item.InvitationID,
			CampaignID:      item.CampaignID,
			BrandID:         item.BrandID,
			CreatorID:       item.CreatorID,
			Status:          string(item.Status),
			OfferedPayout:   item.OfferedPayout,
			NegotiatedDelta: item.NegotiatedDelta,
			UpdatedAt:       item.UpdatedAt,
		})
	}
	return views
}

type dashboardProgressBinding struct {
	queries deliverablequeries.QueryUseCase
}

func (b dashboardProgressBinding) GetProgress(ctx context.Context, campaignID, creatorID string) (dashboardports.ProgressView, error) {
	statuses, err := b.queries.GetDeliverableStatuses(ctx, campaignID, creatorID)
	if err != nil {
		return dashboardports.ProgressView{}, err
	}
	allApproved, err := b.queries.AllDeliverablesApproved(ctx, campaignID, creatorID)
	if err != nil {
		return dashboardports.ProgressView{}, err
	}

	view := dashboardports.ProgressView{AllApproved: allApproved}
	for _, status := range statuses {
		view.Items = append(view.Items, dashboardports.DeliverableProgressView{
			DeliverableID: status.Deliverable.DeliverableID,
			Title:         status.Deliverable.Title,
			State:         string(status.State),
		})
	}
	return view, nil
}

type dashboardCampaignBinding struct {
	queries campaignqueries.QueryUseCase
}

func (b dashboardCampaignBinding) GetCampaign(ctx context.Context, campaignID string) (dashboardports.CampaignView, error) {
	campaign, err := b.queries.GetCampaign(ctx, campaignID)
	if err != nil {
		return dashboardports.CampaignView{}, err
	}
	return dashboardports.CampaignView{
		CampaignID: campaign.CampaignID,
		Title:      campaign.Title,
		Status:     string(campaign.Status),
	}, nil
}
