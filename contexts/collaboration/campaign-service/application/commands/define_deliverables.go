package commands

import (
	"context"
	"log/slog"
	"strings"

	application "meridian/contexts/collaboration/campaign-service/application"
	domainerrors "meridian/contexts/collaboration/campaign-service/domain/errors"
	"meridian/contexts/collaboration/campaign-service/ports"
)

type DefineDeliverablesCommand struct {
	CampaignID   string
	ActorID      string
	Deliverables []ports.DeliverableDefinition
}

// DefineDeliverablesUseCase writes the campaign's deliverable checklist
// while the campaign is still in setup. After launch the checklist is
// immutable: creators negotiate and submit against a fixed list.
type DefineDeliverablesUseCase struct {
	Campaigns    ports.Repository
	Access       ports.AccessChecker
	Deliverables ports.DeliverableWriter
	Logger       *slog.Logger
}

func (uc DefineDeliverablesUseCase) Execute(ctx context.Context, cmd DefineDeliverablesCommand) error {
	logger := application.ResolveLogger(uc.Logger)

	campaign, err := uc.Campaigns.GetCampaign(ctx, strings.TrimSpace(cmd.CampaignID))
	if err != nil {
		return err
	}
	access, err := uc.Access.ResolveCampaignAccess(ctx, strings.TrimSpace(cmd.ActorID), campaign.BrandID, campaign.CampaignID)
	if err != nil {
		return err
	}
	if !canOperate(access) {
		return domainerrors.ErrUnauthorizedActor
	}
	if !campaign.CanDefineDeliverables() {
		return domainerrors.ErrDeliverablesLocked
	}
	if len(cmd.Deliverables) == 0 {
		return domainerrors.ErrInvalidCampaignInput
	}
	for _, definition := range cmd.Deliverables {
		if strings.TrimSpace(definition.Title) == "" || strings.TrimSpace(definition.Type) == "" {
			return domainerrors.ErrInvalidCampaignInput
		}
	}

	if err := uc.Deliverables.WriteDeliverables(ctx, campaign.CampaignID, cmd.Deliverables); err != nil {
		return err
	}

	logger.Info("deliverables defined",
		"event", "campaign_deliverables_defined",
		"module", "collaboration/campaign-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"deliverable_count", len(cmd.Deliverables),
	)
	return nil
}
