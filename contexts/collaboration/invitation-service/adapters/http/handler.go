package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"meridian/contexts/collaboration/invitation-service/application/commands"
	"meridian/contexts/collaboration/invitation-service/application/queries"
	"meridian/contexts/collaboration/invitation-service/domain/entities"
	domainerrors "meridian/contexts/collaboration/invitation-service/domain/errors"
	httptransport "meridian/contexts/collaboration/invitation-service/transport/http"
)

type Handler struct {
	InviteCreator commands.InviteCreatorUseCase
	Negotiate     commands.NegotiateUseCase
	CounterOffer  commands.CounterOfferUseCase
	Accept        commands.AcceptUseCase
	Decline       commands.DeclineUseCase
	Withdraw      commands.WithdrawUseCase
	Queries       queries.QueryUseCase
	Logger        *slog.Logger
}

func (h Handler) InviteCreatorHandler(
	ctx context.Context,
	actorID string,
	campaignID string,
	req httptransport.InviteCreatorRequest,
) (httptransport.InvitationResponse, error) {
	deliverables := make([]entities.DeliverableSpec, 0, len(req.Deliverables))
	for _, item := range req.Deliverables {
		deliverables = append(deliverables, entities.DeliverableSpec{
			Index: item.Index,
			Title: item.Title,
			Type:  item.Type,
		})
	}

	timelineStart, err := parseOptionalTime(req.TimelineStart)
	if err != nil {
		return httptransport.InvitationResponse{}, domainerrors.ErrInvalidInvitationInput
	}
	timelineEnd, err := parseOptionalTime(req.TimelineEnd)
	if err != nil {
		return httptransport.InvitationResponse{}, domainerrors.ErrInvalidInvitationInput
	}
	expiresAt, err := parseOptionalTime(req.ExpiresAt)
	if err != nil {
		return httptransport.InvitationResponse{}, domainerrors.ErrInvalidInvitationInput
	}

	item, err := h.InviteCreator.Execute(ctx, commands.InviteCreatorCommand{
		ActorID:             actorID,
		BrandID:             req.BrandID,
		CampaignID:          campaignID,
		CreatorID:           req.CreatorID,
		OfferedPayout:       req.OfferedPayout,
		Deliverables:        deliverables,
		TimelineStart:       timelineStart,
		TimelineEnd:         timelineEnd,
		SpecialRequirements: req.SpecialRequirements,
		ExpiresAt:           expiresAt,
	})
	if err != nil {
		return httptransport.InvitationResponse{}, err
	}
	return httptransport.InvitationResponse{Invitation: mapInvitation(item)}, nil
}

func (h Handler) NegotiateHandler(
	ctx context.Context,
	actorID string,
	invitationID string,
	req httptransport.NegotiateRequest,
) (httptransport.InvitationResponse, error) {
	item, err := h.Negotiate.Execute(ctx, commands.NegotiateCommand{
		InvitationID: invitationID,
		ActorID:      actorID,
		Delta:        req.Delta,
	})
	if err != nil {
		return httptransport.InvitationResponse{}, err
	}
	return httptransport.InvitationResponse{Invitation: mapInvitation(item)}, nil
}

func (h Handler) CounterOfferHandler(
	ctx context.Context,
	actorID string,
	invitationID string,
	req httptransport.CounterOfferRequest,
) (httptransport.InvitationResponse, error) {
	item, err := h.CounterOffer.Execute(ctx, commands.CounterOfferCommand{
		InvitationID:  invitationID,
		ActorID:       actorID,
		OfferedPayout: req.OfferedPayout,
	})
	if err != nil {
		return httptransport.InvitationResponse{}, err
	}
	return httptransport.InvitationResponse{Invitation: mapInvitation(item)}, nil
}

func (h Handler) AcceptHandler(ctx context.Context, actorID, invitationID string) (httptransport.AcceptInvitationResponse, error) {
	result, err := h.Accept.Execute(ctx, commands.AcceptCommand{
		InvitationID: invitationID,
		ActorID:      actorID,
	})
	if err != nil {
		return httptransport.AcceptInvitationResponse{}, err
	}
	return httptransport.AcceptInvitationResponse{
		Invitation:   mapInvitation(result.Invitation),
		TrackingLink: mapTrackingLink(result.Link),
	}, nil
}

func (h Handler) DeclineHandler(ctx context.Context, actorID, invitationID string) (httptransport.InvitationResponse, error) {
	item, err := h.Decline.Execute(ctx, commands.DeclineCommand{
		InvitationID: invitationID,
		ActorID:      actorID,
	})
	if err != nil {
		return httptransport.InvitationResponse{}, err
	}
	return httptransport.InvitationResponse{Invitation: mapInvitation(item)}, nil
}

func (h Handler) WithdrawHandler(ctx context.Context, actorID, invitationID string) (httptransport.InvitationResponse, error) {
	item, err := h.Withdraw.Execute(ctx, commands.WithdrawCommand{
		InvitationID: invitationID,
		ActorID:      actorID,
	})
	if err != nil {
		return httptransport.InvitationResponse{}, err
	}
	return httptransport.InvitationResponse{Invitation: mapInvitation(item)}, nil
}

func (h Handler) GetInvitationHandler(ctx context.Context, invitationID string) (httptransport.InvitationResponse, error) {
	item, err := h.Queries.GetInvitation(ctx, invitationID)
	if err != nil {
		return httptransport.InvitationResponse{}, err
	}
	return httptransport.InvitationResponse{Invitation: mapInvitation(item)}, nil
}

func (h Handler) ListInvitationsHandler(
	ctx context.Context,
	brandID, campaignID, creatorID, status string,
) (httptransport.ListInvitationsResponse, error) {
	items, err := h.Queries.ListInvitations(ctx, queries.ListInvitationsQuery{
		BrandID:    brandID,
		CampaignID: campaignID,
		CreatorID:  creatorID,
		Status:     status,
	})
	if err != nil {
		return httptransport.ListInvitationsResponse{}, err
	}
	result := make([]httptransport.InvitationDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapInvitation(item))
	}
	return httptransport.ListInvitationsResponse{Items: result}, nil
}

func (h Handler) ListTrackingLinksHandler(ctx context.Context, campaignID, creatorID string) (httptransport.ListTrackingLinksResponse, error) {
	items, err := h.Queries.ListTrackingLinks(ctx, campaignID, creatorID)
	if err != nil {
		return httptransport.ListTrackingLinksResponse{}, err
	}
	result := make([]httptransport.TrackingLinkDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapTrackingLink(item))
	}
	return httptransport.ListTrackingLinksResponse{Items: result}, nil
}

func mapInvitation(item entities.Invitation) httptransport.InvitationDTO {
	deliverables := make([]httptransport.DeliverableSpecDTO, 0, len(item.Deliverables))
	for _, spec := range item.Deliverables {
		deliverables = append(deliverables, httptransport.DeliverableSpecDTO{
			Index: spec.Index,
			Title: spec.Title,
			Type:  spec.Type,
		})
	}
	dto := httptransport.InvitationDTO{
		InvitationID:        item.InvitationID,
		CampaignID:          item.CampaignID,
		BrandID:             item.BrandID,
		CreatorID:           item.CreatorID,
		Status:              string(item.Status),
		BasePayout:          item.BasePayout,
		OfferedPayout:       item.OfferedPayout,
		NegotiatedDelta:     item.NegotiatedDelta,
		Deliverables:        deliverables,
		SpecialRequirements: item.SpecialRequirements,
		CreatedAt:           item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           item.UpdatedAt.Format(time.RFC3339),
	}
	dto.TimelineStart = formatOptionalTime(item.TimelineStart)
	dto.TimelineEnd = formatOptionalTime(item.TimelineEnd)
	dto.ExpiresAt = formatOptionalTime(item.ExpiresAt)
	dto.RespondedAt = formatOptionalTime(item.RespondedAt)
	return dto
}

func mapTrackingLink(item entities.TrackingLink) httptransport.TrackingLinkDTO {
	return httptransport.TrackingLinkDTO{
		LinkID:       item.LinkID,
		CampaignID:   item.CampaignID,
		CreatorID:    item.CreatorID,
		InvitationID: item.InvitationID,
		Code:         item.Code,
		URL:          item.URL,
		CreatedAt:    item.CreatedAt.Format(time.RFC3339),
	}
}

func parseOptionalTime(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	utc := parsed.UTC()
	return &utc, nil
}

func formatOptionalTime(value *time.Time) string {
	if value == nil {
		return ""
	}
	return value.Format(time.RFC3339)
}
