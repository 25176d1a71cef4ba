package queries

import (
	"context"
	"log/slog"
	"strings"

	"meridian/contexts/collaboration/invitation-service/domain/entities"
	"meridian/contexts/collaboration/invitation-service/ports"
)

type ListInvitationsQuery struct {
	BrandID    string
	CampaignID string
	CreatorID  string
	Status     string
}

type QueryUseCase struct {
	Invitations ports.Repository
	Logger      *slog.Logger
}

func (uc QueryUseCase) GetInvitation(ctx context.Context, invitationID string) (entities.Invitation, error) {
	return uc.Invitations.GetInvitation(ctx, strings.TrimSpace(invitationID))
}

// GetInvitationForCreator is the creator-facing read: it reports absence as
// a boolean rather than an error so callers can render an empty state.
func (uc QueryUseCase) GetInvitationForCreator(ctx context.Context, campaignID, creatorID string) (entities.Invitation, bool, error) {
	return uc.Invitations.GetInvitationForCreator(ctx, strings.TrimSpace(campaignID), strings.TrimSpace(creatorID))
}

func (uc QueryUseCase) ListInvitations(ctx context.Context, query ListInvitationsQuery) ([]entities.Invitation, error) {
	return uc.Invitations.ListInvitations(ctx, ports.InvitationFilter{
		BrandID:    strings.TrimSpace(query.BrandID),
		CampaignID: strings.TrimSpace(query.CampaignID),
		CreatorID:  strings.TrimSpace(query.CreatorID),
		Status:     entities.InvitationStatus(strings.TrimSpace(query.Status)),
	})
}

func (uc QueryUseCase) ListTrackingLinks(ctx context.Context, campaignID, creatorID string) ([]entities.TrackingLink, error) {
	return uc.Invitations.ListTrackingLinks(ctx, strings.TrimSpace(campaignID), strings.TrimSpace(creatorID))
}
