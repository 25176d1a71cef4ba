package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "meridian/contexts/collaboration/campaign-service/application"
	"meridian/contexts/collaboration/campaign-service/domain/entities"
	domainerrors "meridian/contexts/collaboration/campaign-service/domain/errors"
	"meridian/contexts/collaboration/campaign-service/ports"
)

type CreateCampaignCommand struct {
	ActorID       string
	BrandID       string
	Title         string
	Description   string
	BudgetTotal   float64
	TimelineStart *time.Time
	TimelineEnd   *time.Time
}

type CreateCampaignUseCase struct {
	Campaigns ports.Repository
	Access    ports.AccessChecker
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func (uc CreateCampaignUseCase) Execute(ctx context.Context, cmd CreateCampaignCommand) (entities.Campaign, error) {
	logger := application.ResolveLogger(uc.Logger)

	brandID := strings.TrimSpace(cmd.BrandID)
	access, err := uc.Access.ResolveCampaignAccess(ctx, strings.TrimSpace(cmd.ActorID), brandID, "")
	if err != nil {
		return entities.Campaign{}, err
	}
	if !access.IsAdmin && !access.IsOwner && access.Role != "agency_admin" {
		return entities.Campaign{}, domainerrors.ErrUnauthorizedActor
	}

	now := uc.Clock.Now().UTC()
	campaignID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Campaign{}, err
	}
	campaign := entities.Campaign{
		CampaignID:    campaignID,
		BrandID:       brandID,
		Title:         strings.TrimSpace(cmd.Title),
		Description:   strings.TrimSpace(cmd.Description),
		Status:        entities.CampaignStatusDraft,
		BudgetTotal:   cmd.BudgetTotal,
		TimelineStart: cmd.TimelineStart,
		TimelineEnd:   cmd.TimelineEnd,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if !campaign.ValidateCreate() {
		return entities.Campaign{}, domainerrors.ErrInvalidCampaignInput
	}

	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Campaign{}, err
	}
	event, err := newEnvelope(eventID, "campaign.created", campaign.CampaignID, now, map[string]any{
		"campaign_id": campaign.CampaignID,
		"brand_id":    campaign.BrandID,
		"title":       campaign.Title,
		"status":      string(campaign.Status),
	})
	if err != nil {
		return entities.Campaign{}, err
	}
	if err := uc.Campaigns.CreateCampaignWithOutbox(ctx, campaign, event); err != nil {
		return entities.Campaign{}, err
	}

	logger.Info("campaign created",
		"event", "campaign_created",
		"module", "collaboration/campaign-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"brand_id", campaign.BrandID,
	)
	return campaign, nil
}
