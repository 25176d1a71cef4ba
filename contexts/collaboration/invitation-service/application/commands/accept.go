package commands

import (
	"context"
	"log/slog"
	"strings"

	application "meridian/contexts/collaboration/invitation-service/application"
	"meridian/contexts/collaboration/invitation-service/domain/entities"
	domainerrors "meridian/contexts/collaboration/invitation-service/domain/errors"
	"meridian/contexts/collaboration/invitation-service/ports"
)

type AcceptCommand struct {
	InvitationID string
	ActorID      string
}

type AcceptResult struct {
	Invitation entities.Invitation
	Link       entities.TrackingLink
}

// AcceptUseCase closes the negotiation. Either side may accept: the creator
// takes the brand's standing offer, the brand takes the creator's proposed
// terms (folding the delta into the payout). The tracking link is generated
// in the same transaction as the status flip.
type AcceptUseCase struct {
	Invitations     ports.Repository
	Access          ports.AccessChecker
	Clock           ports.Clock
	IDGen           ports.IDGenerator
	TrackingBaseURL string
	Logger          *slog.Logger
}

func (uc AcceptUseCase) Execute(ctx context.Context, cmd AcceptCommand) (AcceptResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	invitation, err := uc.Invitations.GetInvitation(ctx, strings.TrimSpace(cmd.InvitationID))
	if err != nil {
		return AcceptResult{}, err
	}

	actorID := strings.TrimSpace(cmd.ActorID)
	byCreator := actorID != "" && actorID == invitation.CreatorID
	if !byCreator {
		access, err := uc.Access.ResolveCampaignAccess(ctx, actorID, invitation.BrandID, invitation.CampaignID)
		if err != nil {
			return AcceptResult{}, err
		}
		if !canOperate(access) {
			return AcceptResult{}, domainerrors.ErrUnauthorizedActor
		}
	}
	if !invitation.CanTransitionTo(entities.InvitationStatusAccepted) {
		return AcceptResult{}, domainerrors.ErrInvalidStatusTransition
	}

	now := uc.Clock.Now().UTC()
	expected := invitation.Version
	if !byCreator && invitation.NegotiatedDelta != nil {
		invitation.OfferedPayout += *invitation.NegotiatedDelta
	}
	invitation.NegotiatedDelta = nil
	invitation.Status = entities.InvitationStatusAccepted
	invitation.UpdatedAt = now
	invitation.RespondedAt = &now
	invitation.Version++

	linkID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return AcceptResult{}, err
	}
	code := entities.TrackingCode(linkID)
	link := entities.TrackingLink{
		LinkID:       linkID,
		CampaignID:   invitation.CampaignID,
		CreatorID:    invitation.CreatorID,
		InvitationID: invitation.InvitationID,
		Code:         code,
		URL:          entities.TrackingURL(uc.TrackingBaseURL, code),
		CreatedAt:    now,
	}

	acceptedEventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return AcceptResult{}, err
	}
	acceptedEvent, err := newInvitationEnvelope(acceptedEventID, "invitation.accepted", invitation, now)
	if err != nil {
		return AcceptResult{}, err
	}
	linkEventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return AcceptResult{}, err
	}
	linkEvent, err := newTrackingLinkEnvelope(linkEventID, link, invitation.BrandID, now)
	if err != nil {
		return AcceptResult{}, err
	}

	if err := uc.Invitations.AcceptInvitationWithLink(
		ctx,
		invitation,
		expected,
		link,
		[]ports.EventEnvelope{acceptedEvent, linkEvent},
	); err != nil {
		return AcceptResult{}, err
	}

	logger.Info("invitation accepted",
		"event", "invitation_accepted",
		"module", "collaboration/invitation-service",
		"layer", "application",
		"invitation_id", invitation.InvitationID,
		"campaign_id", invitation.CampaignID,
		"creator_id", invitation.CreatorID,
		"accepted_by_creator", byCreator,
		"final_payout", invitation.OfferedPayout,
		"link_id", link.LinkID,
	)
	return AcceptResult{Invitation: invitation, Link: link}, nil
}
