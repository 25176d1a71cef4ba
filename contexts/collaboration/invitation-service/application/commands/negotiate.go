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

type NegotiateCommand struct {
	InvitationID string
	ActorID      string
	Delta        float64
}

// NegotiateUseCase moves a pending invitation into negotiation with the
// creator's proposed payout adjustment.
type NegotiateUseCase struct {
	Invitations ports.Repository
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

func (uc NegotiateUseCase) Execute(ctx context.Context, cmd NegotiateCommand) (entities.Invitation, error) {
	logger := application.ResolveLogger(uc.Logger)

	invitation, err := uc.Invitations.GetInvitation(ctx, strings.TrimSpace(cmd.InvitationID))
	if err != nil {
		return entities.Invitation{}, err
	}
	if strings.TrimSpace(cmd.ActorID) == "" || invitation.CreatorID != strings.TrimSpace(cmd.ActorID) {
		return entities.Invitation{}, domainerrors.ErrUnauthorizedActor
	}
	if invitation.Status != entities.InvitationStatusPending ||
		!invitation.CanTransitionTo(entities.InvitationStatusNegotiating) {
		return entities.Invitation{}, domainerrors.ErrInvalidStatusTransition
	}

	now := uc.Clock.Now().UTC()
	expected := invitation.Version
	delta := cmd.Delta
	invitation.Status = entities.InvitationStatusNegotiating
	invitation.NegotiatedDelta = &delta
	invitation.UpdatedAt = now
	invitation.Version++

	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Invitation{}, err
	}
	event, err := newNegotiationEnvelope(eventID, "negotiation.opened", invitation, now)
	if err != nil {
		return entities.Invitation{}, err
	}
	if err := uc.Invitations.UpdateInvitationIf(ctx, invitation, expected, []ports.EventEnvelope{event}); err != nil {
		return entities.Invitation{}, err
	}

	logger.Info("negotiation opened",
		"event", "negotiation_opened",
		"module", "collaboration/invitation-service",
		"layer", "application",
		"invitation_id", invitation.InvitationID,
		"campaign_id", invitation.CampaignID,
		"creator_id", invitation.CreatorID,
		"negotiated_delta", delta,
	)
	return invitation, nil
}
