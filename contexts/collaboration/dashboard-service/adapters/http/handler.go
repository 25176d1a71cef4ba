package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"meridian/contexts/collaboration/dashboard-service/application"
	"meridian/contexts/collaboration/dashboard-service/ports"
	httptransport "meridian/contexts/collaboration/dashboard-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) NegotiationQueueHandler(ctx context.Context, brandID string) (httptransport.NegotiationQueueResponse, error) {
	queue, err := h.Service.BrandNegotiationQueue(ctx, brandID)
	if err != nil {
		return httptransport.NegotiationQueueResponse{}, err
	}

	entries := make([]httptransport.QueueEntryDTO, 0, len(queue.Entries))
	for _, item := range queue.Entries {
		entries = append(entries, httptransport.QueueEntryDTO{
			InvitationID:    item.InvitationID,
			CampaignID:      item.CampaignID,
			CreatorID:       item.CreatorID,
			Status:          item.Status,
			OfferedPayout:   item.OfferedPayout,
			NegotiatedDelta: item.NegotiatedDelta,
			UpdatedAt:       item.UpdatedAt.Format(time.RFC3339),
		})
	}
	return httptransport.NegotiationQueueResponse{
		BrandID:          queue.BrandID,
		PendingCount:     queue.PendingCount,
		NegotiatingCount: queue.NegotiatingCount,
		Entries:          entries,
		GeneratedAt:      queue.GeneratedAt.Format(time.RFC3339),
	}, nil
}

func (h Handler) CreatorInboxHandler(ctx context.Context, creatorID string) (httptransport.CreatorInboxResponse, error) {
	inbox, err := h.Service.CreatorInbox(ctx, creatorID)
	if err != nil {
		return httptransport.CreatorInboxResponse{}, err
	}

	entries := make([]httptransport.InboxEntryDTO, 0, len(inbox.Entries))
	for _, entry := range inbox.Entries {
		dto := httptransport.InboxEntryDTO{
			InvitationID:    entry.Invitation.InvitationID,
			CampaignID:      entry.Invitation.CampaignID,
			CampaignTitle:   entry.CampaignTitle,
			BrandID:         entry.Invitation.BrandID,
			Status:          entry.Invitation.Status,
			OfferedPayout:   entry.Invitation.OfferedPayout,
			NegotiatedDelta: entry.Invitation.NegotiatedDelta,
			UpdatedAt:       entry.Invitation.UpdatedAt.Format(time.RFC3339),
		}
		dto.Progress = mapProgress(entry.Progress)
		entries = append(entries, dto)
	}
	return httptransport.CreatorInboxResponse{
		CreatorID:   inbox.CreatorID,
		Entries:     entries,
		GeneratedAt: inbox.GeneratedAt.Format(time.RFC3339),
	}, nil
}

func mapProgress(view *ports.ProgressView) *httptransport.ProgressDTO {
	if view == nil {
		return nil
	}
	items := make([]httptransport.DeliverableProgressDTO, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, httptransport.DeliverableProgressDTO{
			DeliverableID: item.DeliverableID,
			Title:         item.Title,
			State:         item.State,
		})
	}
	return &httptransport.ProgressDTO{
		Items:       items,
		AllApproved: view.AllApproved,
	}
}
