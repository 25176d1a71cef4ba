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

type CounterOfferCommand struct {
	InvitationID  string
	ActorID       string
	OfferedPayout float64
}

// CounterOfferUseCase updates the brand's standing offer while negotiation
// is open. Negotiation has no round limit; the optimistic guard is what
// keeps two racing counter-offers from silently overwriting each other.
type CounterOfferUseCase struct {
	Invitations ports.Repository
	Access      ports.AccessChecker
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

func (uc CounterOfferUseCase) Execute(ctx context.Context, cmd CounterOfferCommand) (entities.Invitation, error) {
	logger := application.ResolveLogger(uc.Logger)

	invitation, err := uc.Invitations.GetInvitation(ctx, strings.TrimSpace(cmd.InvitationID))
	if err != nil {
		return entities.Invitation{}, err
	}

	access, err := uc.Access.ResolveCampaignAccess(ctx, strings.TrimSpace(cmd.ActorID), invitation.BrandID, invitation.CampaignID)
	if err != nil {
		return entities.Invitation{}, err
	}
	if !canOperate(access) {
		return entities.Invitation{}, domainerrors.ErrUnauthorizedActor
	}
	if invitation.Status != entities.InvitationStatusNegotiating {
		return entities.Invitation{}, domainerrors.ErrInvalidStatusTransition
	}
	if cmd.OfferedPayout <= 0 {
		return entities.Invitation{}, domainerrors.ErrInvalidInvitationInput
	}

	now := uc.Clock.Now().UTC()
	expected := invitation.Version
	invitation.OfferedPayout = cmd.OfferedPayout
	invitation.UpdatedAt = now
	invitation.Version++

	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Invitation{}, err
	}
	event, err := newNegotiationEnvelope(eventID, "negotiation.countered", invitation, now)
	if err != nil {
		return entities.Invitation{}, err
	}
	if err := uc.Invitations.UpdateInvitationIf(ctx, invitation, expected, []ports.EventEnvelope{event}); err != nil {
		return entities.Invitation{}, err
	}

	logger.Info("counter offer recorded",
		"event", "negotiation_countered",
		"module", "collaboration/invitation-service",
		"layer", "application",
		"invitation_id", invitation.InvitationID,
		"campaign_id", invitation.CampaignID,
		"offered_payout", invitation.OfferedPayout,
	)
	return invitation, nil
}
