package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "meridian/contexts/collaboration/invitation-service/application"
	"meridian/contexts/collaboration/invitation-service/domain/entities"
	domainerrors "meridian/contexts/collaboration/invitation-service/domain/errors"
	"meridian/contexts/collaboration/invitation-service/ports"
)

type InviteCreatorCommand struct {
	ActorID             string
	BrandID             string
	CampaignID          string
	CreatorID           string
	OfferedPayout       float64
	Deliverables        []entities.DeliverableSpec
	TimelineStart       *time.Time
	TimelineEnd         *time.Time
	SpecialRequirements string
	ExpiresAt           *time.Time
}

type InviteCreatorUseCase struct {
	Invitations ports.Repository
	Access      ports.AccessChecker
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

func (uc InviteCreatorUseCase) Execute(ctx context.Context, cmd InviteCreatorCommand) (entities.Invitation, error) {
	logger := application.ResolveLogger(uc.Logger)

	access, err := uc.Access.ResolveCampaignAccess(ctx, strings.TrimSpace(cmd.ActorID), strings.TrimSpace(cmd.BrandID), strings.TrimSpace(cmd.CampaignID))
	if err != nil {
		return entities.Invitation{}, err
	}
	if !canOperate(access) {
		return entities.Invitation{}, domainerrors.ErrUnauthorizedActor
	}

	now := uc.Clock.Now().UTC()
	invitationID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Invitation{}, err
	}

	invitation := entities.Invitation{
		InvitationID:        invitationID,
		CampaignID:          strings.TrimSpace(cmd.CampaignID),
		BrandID:             strings.TrimSpace(cmd.BrandID),
		CreatorID:           strings.TrimSpace(cmd.CreatorID),
		Status:              entities.InvitationStatusPending,
		BasePayout:          cmd.OfferedPayout,
		OfferedPayout:       cmd.OfferedPayout,
		Deliverables:        append([]entities.DeliverableSpec(nil), cmd.Deliverables...),
		TimelineStart:       cmd.TimelineStart,
		TimelineEnd:         cmd.TimelineEnd,
		SpecialRequirements: strings.TrimSpace(cmd.SpecialRequirements),
		ExpiresAt:           cmd.ExpiresAt,
		Version:             1,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if !invitation.ValidateCreate() {
		return entities.Invitation{}, domainerrors.ErrInvalidInvitationInput
	}

	if live, err := uc.Invitations.HasLiveInvitation(ctx, invitation.CampaignID, invitation.CreatorID); err != nil {
		return entities.Invitation{}, err
	} else if live {
		return entities.Invitation{}, domainerrors.ErrDuplicateInvitation
	}

	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Invitation{}, err
	}
	event, err := newInvitationEnvelope(eventID, "invitation.created", invitation, now)
	if err != nil {
		return entities.Invitation{}, err
	}
	if err := uc.Invitations.CreateInvitationWithOutbox(ctx, invitation, event); err != nil {
		return entities.Invitation{}, err
	}

	logger.Info("creator invited",
		"event", "invitation_created",
		"module", "collaboration/invitation-service",
		"layer", "application",
		"invitation_id", invitation.InvitationID,
		"campaign_id", invitation.CampaignID,
		"creator_id", invitation.CreatorID,
		"offered_payout", invitation.OfferedPayout,
	)
	return invitation, nil
}
