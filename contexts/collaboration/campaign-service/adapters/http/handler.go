package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"meridian/contexts/collaboration/campaign-service/application/commands"
	"meridian/contexts/collaboration/campaign-service/application/queries"
	"meridian/contexts/collaboration/campaign-service/domain/entities"
	domainerrors "meridian/contexts/collaboration/campaign-service/domain/errors"
	"meridian/contexts/collaboration/campaign-service/ports"
	httptransport "meridian/contexts/collaboration/campaign-service/transport/http"
)

type Handler struct {
	Create             commands.CreateCampaignUseCase
	ChangeStatus       commands.ChangeStatusUseCase
	DefineDeliverables commands.DefineDeliverablesUseCase
	Queries            queries.QueryUseCase
	Logger             *slog.Logger
}

func (h Handler) CreateCampaignHandler(
	ctx context.Context,
	actorID string,
	req httptransport.CreateCampaignRequest,
) (httptransport.CampaignResponse, error) {
	timelineStart, err := parseOptionalTime(req.TimelineStart)
	if err != nil {
		return httptransport.CampaignResponse{}, domainerrors.ErrInvalidCampaignInput
	}
	timelineEnd, err := parseOptionalTime(req.TimelineEnd)
	if err != nil {
		return httptransport.CampaignResponse{}, domainerrors.ErrInvalidCampaignInput
	}

	item, err := h.Create.Execute(ctx, commands.CreateCampaignCommand{
		ActorID:       actorID,
		BrandID:       req.BrandID,
		Title:         req.Title,
		Description:   req.Description,
		BudgetTotal:   req.BudgetTotal,
		TimelineStart: timelineStart,
		TimelineEnd:   timelineEnd,
	})
	if err != nil {
		return httptransport.CampaignResponse{}, err
	}
	return httptransport.CampaignResponse{Campaign: mapCampaign(item)}, nil
}

func (h Handler) ChangeStatusHandler(
	ctx context.Context,
	actorID string,
	campaignID string,
	req httptransport.ChangeStatusRequest,
) (httptransport.CampaignResponse, error) {
	item, err := h.ChangeStatus.Execute(ctx, commands.ChangeStatusCommand{
		CampaignID: campaignID,
		ActorID:    actorID,
		ToStatus:   entities.CampaignStatus(req.ToStatus),
		Reason:     req.Reason,
	})
	if err != nil {
		return httptransport.CampaignResponse{}, err
	}
	return httptransport.CampaignResponse{Campaign: mapCampaign(item)}, nil
}

func (h Handler) DefineDeliverablesHandler(
	ctx context.Context,
	actorID string,
	campaignID string,
	req httptransport.DefineDeliverablesRequest,
) error {
	definitions := make([]ports.DeliverableDefinition, 0, len(req.Deliverables))
	for _, item := range req.Deliverables {
		definitions = append(definitions, ports.DeliverableDefinition{
			Index: item.Index,
			Title: item.Title,
			Type:  item.Type,
		})
	}
	return h.DefineDeliverables.Execute(ctx, commands.DefineDeliverablesCommand{
		CampaignID:   campaignID,
		ActorID:      actorID,
		Deliverables: definitions,
	})
}

func (h Handler) GetCampaignHandler(ctx context.Context, campaignID string) (httptransport.CampaignResponse, error) {
	item, err := h.Queries.GetCampaign(ctx, campaignID)
	if err != nil {
		return httptransport.CampaignResponse{}, err
	}
	return httptransport.CampaignResponse{Campaign: mapCampaign(item)}, nil
}

func (h Handler) ListCampaignsHandler(ctx context.Context, brandID, status string) (httptransport.ListCampaignsResponse, error) {
	items, err := h.Queries.ListCampaigns(ctx, queries.ListCampaignsQuery{
		BrandID: brandID,
		Status:  status,
	})
	if err != nil {
		return httptransport.ListCampaignsResponse{}, err
	}
	result := make([]httptransport.CampaignDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapCampaign(item))
	}
	return httptransport.ListCampaignsResponse{Items: result}, nil
}

func (h Handler) ListStateHistoryHandler(ctx context.Context, campaignID string) (httptransport.ListStateHistoryResponse, error) {
	items, err := h.Queries.ListStateHistory(ctx, campaignID)
	if err != nil {
		return httptransport.ListStateHistoryResponse{}, err
	}
	result := make([]httptransport.StateHistoryDTO, 0, len(items))
	for _, item := range items {
		result = append(result, httptransport.StateHistoryDTO{
			HistoryID:    item.HistoryID,
			CampaignID:   item.CampaignID,
			FromStatus:   string(item.FromStatus),
			ToStatus:     string(item.ToStatus),
			ChangedBy:    item.ChangedBy,
			ChangeReason: item.ChangeReason,
			CreatedAt:    item.CreatedAt.Format(time.RFC3339),
		})
	}
	return httptransport.ListStateHistoryResponse{Items: result}, nil
}

func mapCampaign(item entities.Campaign) httptransport.CampaignDTO {
	dto := httptransport.CampaignDTO{
		CampaignID:     item.CampaignID,
		BrandID:        item.BrandID,
		Title:          item.Title,
		Description:    item.Description,
		Status:         string(item.Status),
		BudgetTotal:    item.BudgetTotal,
		BudgetReserved: item.BudgetReserved,
		BudgetSpent:    item.BudgetSpent,
		CreatedAt:      item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      item.UpdatedAt.Format(time.RFC3339),
	}
	dto.TimelineStart = formatOptionalTime(item.TimelineStart)
	dto.TimelineEnd = formatOptionalTime(item.TimelineEnd)
	dto.LaunchedAt = formatOptionalTime(item.LaunchedAt)
	dto.CompletedAt = formatOptionalTime(item.CompletedAt)
	return dto
}

func parseOptionalTime(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	utc := parsed.UTC()
	return &utc, nil
}

func formatOptionalTime(value *time.Time) string {
	if value == nil {
		return ""
	}
	return value.Format(time.RFC3339)
}
