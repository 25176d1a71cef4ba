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

type WithdrawCommand struct {
	InvitationID string
	ActorID      string
}

type WithdrawUseCase struct {
	Invitations ports.Repository
	Access      ports.AccessChecker
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

func (uc WithdrawUseCase) Execute(ctx context.Context, cmd WithdrawCommand) (entities.Invitation, error) {
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
	if !invitation.CanTransitionTo(entities.InvitationStatusWithdrawn) {
		return entities.Invitation{}, domainerrors.ErrInvalidStatusTransition
	}

	now := uc.Clock.Now().UTC()
	expected := invitation.Version
	invitation.Status = entities.InvitationStatusWithdrawn
	invitation.NegotiatedDelta = nil
	invitation.UpdatedAt = now
	invitation.Version++

	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Invitation{}, err
	}
	event, err := newInvitationEnvelope(eventID, "invitation.withdrawn", invitation, now)
	if err != nil {
		return entities.Invitation{}, err
	}
	if err := uc.Invitations.UpdateInvitationIf(ctx, invitation, expected, []ports.EventEnvelope{event}); err != nil {
		return entities.Invitation{}, err
	}

	logger.Info("invitation withdrawn",
		"event", "invitation_withdrawn",
		"module", "collaboration/invitation-service",
		"layer", "application",
		"invitation_id", invitation.InvitationID,
		"campaign_id", invitation.CampaignID,
		"creator_id", invitation.CreatorID,
	)
	return invitation, nil
}
