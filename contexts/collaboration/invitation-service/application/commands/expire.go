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

type ExpireCommand struct {
	InvitationID string
}

// ExpireUseCase is the time-based transition driven by the worker. Only
// offers still sitting in pending expire; an open negotiation does not.
type ExpireUseCase struct {
	Invitations ports.Repository
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

func (uc ExpireUseCase) Execute(ctx context.Context, cmd ExpireCommand) (entities.Invitation, error) {
	logger := application.ResolveLogger(uc.Logger)

	invitation, err := uc.Invitations.GetInvitation(ctx, strings.TrimSpace(cmd.InvitationID))
	if err != nil {
		return entities.Invitation{}, err
	}
	if !invitation.CanTransitionTo(entities.InvitationStatusExpired) {
		return entities.Invitation{}, domainerrors.ErrInvalidStatusTransition
	}

	now := uc.Clock.Now().UTC()
	expected := invitation.Version
	invitation.Status = entities.InvitationStatusExpired
	invitation.NegotiatedDelta = nil
	invitation.UpdatedAt = now
	invitation.Version++

	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Invitation{}, err
	}
	event, err := newInvitationEnvelope(eventID, "invitation.expired", invitation, now)
	if err != nil {
		return entities.Invitation{}, err
	}
	if err := uc.Invitations.UpdateInvitationIf(ctx, invitation, expected, []ports.EventEnvelope{event}); err != nil {
		return entities.Invitation{}, err
	}

	logger.Info("invitation expired",
		"event", "invitation_expired",
		"module", "collaboration/invitation-service",
		"layer", "application",
		"invitation_id", invitation.InvitationID,
		"campaign_id", invitation.CampaignID,
		"creator_id", invitation.CreatorID,
	)
	return invitation, nil
}
