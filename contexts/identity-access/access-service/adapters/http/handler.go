package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"meridian/contexts/identity-access/access-service/application/commands"
	"meridian/contexts/identity-access/access-service/application/queries"
	"meridian/contexts/identity-access/access-service/domain/entities"
	httptransport "meridian/contexts/identity-access/access-service/transport/http"
)

type Handler struct {
	Resolve       queries.ResolveAccessUseCase
	Memberships   queries.ListMembershipsUseCase
	AssignManager commands.AssignManagerUseCase
	RevokeManager commands.RevokeManagerUseCase
	AddMembership commands.AddMembershipUseCase
	Logger        *slog.Logger
}

func (h Handler) ResolveAccessHandler(ctx context.Context, principalID, brandID, campaignID string) (httptransport.AccessDecisionResponse, error) {
	decision, err := h.Resolve.Execute(ctx, queries.ResolveAccessQuery{
		PrincipalID: principalID,
		BrandID:     brandID,
		CampaignID:  campaignID,
	})
	if err != nil {
		return httptransport.AccessDecisionResponse{}, err
	}
	return httptransport.AccessDecisionResponse{Decision: httptransport.AccessDecisionDTO{
		Role:              decision.Role,
		CanAccessCampaign: decision.CanAccessCampaign,
		IsOwner:           decision.IsOwner,
		IsAdmin:           decision.IsAdmin,
		Reason:            decision.Reason,
		CheckedAt:         decision.CheckedAt.Format(time.RFC3339),
	}}, nil
}

func (h Handler) AssignManagerHandler(ctx context.Context, actorID string, req httptransport.AssignManagerRequest) (httptransport.AssignmentResponse, error) {
	assignment, err := h.AssignManager.Execute(ctx, commands.AssignManagerCommand{
		ActorID:    actorID,
		BrandID:    req.BrandID,
		CampaignID: req.CampaignID,
		UserID:     req.UserID,
	})
	if err != nil {
		return httptransport.AssignmentResponse{}, err
	}
	return httptransport.AssignmentResponse{Assignment: httptransport.AssignmentDTO{
		CampaignID: assignment.CampaignID,
		UserID:     assignment.UserID,
		AssignedBy: assignment.AssignedBy,
		CreatedAt:  assignment.CreatedAt.Format(time.RFC3339),
	}}, nil
}

func (h Handler) RevokeManagerHandler(ctx context.Context, actorID string, req httptransport.RevokeManagerRequest) error {
	return h.RevokeManager.Execute(ctx, commands.RevokeManagerCommand{
		ActorID:    actorID,
		BrandID:    req.BrandID,
		CampaignID: req.CampaignID,
		UserID:     req.UserID,
	})
}

func (h Handler) AddMembershipHandler(ctx context.Context, actorID, brandID string, req httptransport.AddMembershipRequest) (httptransport.MembershipResponse, error) {
	membership, err := h.AddMembership.Execute(ctx, commands.AddMembershipCommand{
		ActorID:   actorID,
		BrandID:   brandID,
		UserID:    req.UserID,
		Role:      entities.MembershipRole(req.Role),
		IsDefault: req.IsDefault,
	})
	if err != nil {
		return httptransport.MembershipResponse{}, err
	}
	return httptransport.MembershipResponse{Membership: mapMembership(membership)}, nil
}

func (h Handler) ListMembershipsHandler(ctx context.Context, brandID string) (httptransport.ListMembershipsResponse, error) {
	items, err := h.Memberships.ListForBrand(ctx, brandID)
	if err != nil {
		return httptransport.ListMembershipsResponse{}, err
	}
	result := make([]httptransport.MembershipDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapMembership(item))
	}
	return httptransport.ListMembershipsResponse{Items: result}, nil
}

func mapMembership(item entities.BrandMembership) httptransport.MembershipDTO {
	return httptransport.MembershipDTO{
		BrandID:   item.BrandID,
		UserID:    item.UserID,
		Role:      string(item.Role),
		IsDefault: item.IsDefault,
		CreatedAt: item.CreatedAt.Format(time.RFC3339),
	}
}
