package queries

import (
	"context"
	"log/slog"
	"strings"

	"meridian/contexts/collaboration/campaign-service/domain/entities"
	"meridian/contexts/collaboration/campaign-service/ports"
)

type ListCampaignsQuery struct {
	BrandID string
	Status  string
}

type QueryUseCase struct {
	Campaigns ports.Repository
	Logger    *slog.Logger
}

func (uc QueryUseCase) GetCampaign(ctx context.Context, campaignID string) (entities.Campaign, error) {
	return uc.Campaigns.GetCampaign(ctx, strings.TrimSpace(campaignID))
}

func (uc QueryUseCase) ListCampaigns(ctx context.Context, query ListCampaignsQuery) ([]entities.Campaign, error) {
	return uc.Campaigns.ListCampaigns(ctx, ports.CampaignFilter{
		BrandID: strings.TrimSpace(query.BrandID),
		Status:  entities.CampaignStatus(strings.TrimSpace(query.Status)),
	})
}

func (uc QueryUseCase) ListStateHistory(ctx context.Context, campaignID string) ([]entities.StateHistory, error) {
	return uc.Campaigns.ListStateHistory(ctx, strings.TrimSpace(campaignID))
}

// IsAcceptingDeliverables backs the deliverable service's cross-context
// precondition check.
func (uc QueryUseCase) IsAcceptingDeliverables(ctx context.Context, campaignID string) (bool, error) {
	campaign, err := uc.Campaigns.GetCampaign(ctx, strings.TrimSpace(campaignID))
	if err != nil {
		return false, err
	}
	return entities.IsAcceptingDeliverables(campaign.Status), nil
}
