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

type DeclineCommand struct {
	InvitationID string
	ActorID      string
}

type DeclineUseCase struct {
	Invitations ports.Repository
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

func (uc DeclineUseCase) Execute(ctx context.Context, cmd DeclineCommand) (entities.Invitation, error) {
	logger := application.ResolveLogger(uc.Logger)

	invitation, err := uc.Invitations.GetInvitation(ctx, strings.TrimSpace(cmd.InvitationID))
	if err != nil {
		return entities.Invitation{}, err
	}
	if strings.TrimSpace(cmd.ActorID) == "" || invitation.CreatorID != strings.TrimSpace(cmd.ActorID) {
		return entities.Invitation{}, domainerrors.ErrUnauthorizedActor
	}
	if !invitation.CanTransitionTo(entities.InvitationStatusDeclined) {
		return entities.Invitation{}, domainerrors.ErrInvalidStatusTransition
	}

	now := uc.Clock.Now().UTC()
	expected := invitation.Version
	invitation.Status = entities.InvitationStatusDeclined
	invitation.NegotiatedDelta = nil
	invitation.UpdatedAt = now
	invitation.RespondedAt = &now
	invitation.Version++

	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Invitation{}, err
	}
	event, err := newInvitationEnvelope(eventID, "invitation.declined", invitation, now)
	if err != nil {
		return entities.Invitation{}, err
	}
	if err := uc.Invitations.UpdateInvitationIf(ctx, invitation, expected, []ports.EventEnvelope{event}); err != nil {
		return entities.Invitation{}, err
	}

	logger.Info("invitation declined",
		"event", "invitation_declined",
		"module", "collaboration/invitation-service",
		"layer", "application",
		"invitation_id", invitation.InvitationID,
		"campaign_id", invitation.CampaignID,
		"creator_id", invitation.CreatorID,
	)
	return invitation, nil
}
