package commands

import (
	"context"
	"log/slog"
	"strings"

	application "meridian/contexts/collaboration/campaign-service/application"
	"meridian/contexts/collaboration/campaign-service/domain/entities"
	domainerrors "meridian/contexts/collaboration/campaign-service/domain/errors"
	"meridian/contexts/collaboration/campaign-service/ports"
)

type ChangeStatusCommand struct {
	CampaignID string
	ActorID    string
	ToStatus   entities.CampaignStatus
	Reason     string
}

// ChangeStatusUseCase moves a campaign along its lifecycle and appends the
// audit history row in the same transaction as the status write.
type ChangeStatusUseCase struct {
	Campaigns ports.Repository
	Access    ports.AccessChecker
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func (uc ChangeStatusUseCase) Execute(ctx context.Context, cmd ChangeStatusCommand) (entities.Campaign, error) {
	logger := application.ResolveLogger(uc.Logger)

	if !entities.IsSupportedCampaignStatus(cmd.ToStatus) {
		return entities.Campaign{}, domainerrors.ErrInvalidStateTransition
	}
	campaign, err := uc.Campaigns.GetCampaign(ctx, strings.TrimSpace(cmd.CampaignID))
	if err != nil {
		return entities.Campaign{}, err
	}

	access, err := uc.Access.ResolveCampaignAccess(ctx, strings.TrimSpace(cmd.ActorID), campaign.BrandID, campaign.CampaignID)
	if err != nil {
		return entities.Campaign{}, err
	}
	if !canOperate(access) {
		return entities.Campaign{}, domainerrors.ErrUnauthorizedActor
	}
	if !campaign.CanTransitionTo(cmd.ToStatus) {
		return entities.Campaign{}, domainerrors.ErrInvalidStateTransition
	}

	now := uc.Clock.Now().UTC()
	from := campaign.Status
	campaign.Status = cmd.ToStatus
	campaign.UpdatedAt = now
	switch cmd.ToStatus {
	case entities.CampaignStatusActive:
		campaign.LaunchedAt = &now
	case entities.CampaignStatusCompleted:
		campaign.CompletedAt = &now
	}

	historyID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Campaign{}, err
	}
	history := entities.StateHistory{
		HistoryID:    historyID,
		CampaignID:   campaign.CampaignID,
		FromStatus:   from,
		ToStatus:     campaign.Status,
		ChangedBy:    strings.TrimSpace(cmd.ActorID),
		ChangeReason: strings.TrimSpace(cmd.Reason),
		CreatedAt:    now,
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Campaign{}, err
	}
	event, err := newEnvelope(eventID, "campaign.status_changed", campaign.CampaignID, now, map[string]any{
		"campaign_id": campaign.CampaignID,
		"brand_id":    campaign.BrandID,
		"from_status": string(from),
		"to_status":   string(campaign.Status),
	})
	if err != nil {
		return entities.Campaign{}, err
	}
	if err := uc.Campaigns.UpdateCampaignStatus(ctx, campaign, history, event); err != nil {
		return entities.Campaign{}, err
	}

	logger.Info("campaign status changed",
		"event", "campaign_status_changed",
		"module", "collaboration/campaign-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"from_status", string(from),
		"to_status", string(campaign.Status),
	)
	return campaign, nil
}
