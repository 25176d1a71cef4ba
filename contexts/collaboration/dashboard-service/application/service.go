package application

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	domainerrors "meridian/contexts/collaboration/dashboard-service/domain/errors"
	"meridian/contexts/collaboration/dashboard-service/ports"
)

// Service recomputes dashboard read models by re-querying the owning
// services. Nothing here is stored; every call derives from authoritative
// state, which is what makes invalidation-only change signals sufficient.
type Service struct {
	Invitations ports.InvitationSource
	Progress    ports.ProgressSource
	Campaigns   ports.CampaignSource
	Clock       ports.Clock
	Logger      *slog.Logger
}

func (s Service) BrandNegotiationQueue(ctx context.Context, brandID string) (ports.NegotiationQueue, error) {
	brandID = strings.TrimSpace(brandID)
	if brandID == "" {
		return ports.NegotiationQueue{}, domainerrors.ErrInvalidRequest
	}

	items, err := s.Invitations.ListByBrand(ctx, brandID)
	if err != nil {
		return ports.NegotiationQueue{}, err
	}

	queue := ports.NegotiationQueue{
		BrandID:     brandID,
		GeneratedAt: s.now(),
	}
	for _, item := range items {
		switch item.Status {
		case "pending":
			queue.PendingCount++
		case "negotiating":
			queue.NegotiatingCount++
		default:
			continue
		}
		queue.Entries = append(queue.Entries, item)
	}
	sort.SliceStable(queue.Entries, func(i, j int) bool {
		return queue.Entries[i].UpdatedAt.After(queue.Entries[j].UpdatedAt)
	})
	return queue, nil
}

func (s Service) CreatorInbox(ctx context.Context, creatorID string) (ports.CreatorInbox, error) {
	creatorID = strings.TrimSpace(creatorID)
	if creatorID == "" {
		return ports.CreatorInbox{}, domainerrors.ErrInvalidRequest
	}

	items, err := s.Invitations.ListByCreator(ctx, creatorID)
	if err != nil {
		return ports.CreatorInbox{}, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].UpdatedAt.After(items[j].UpdatedAt)
	})

	inbox := ports.CreatorInbox{
		CreatorID:   creatorID,
		GeneratedAt: s.now(),
	}
	for _, item := range items {
		entry := ports.InboxEntry{Invitation: item}
		if s.Campaigns != nil {
			campaign, err := s.Campaigns.GetCampaign(ctx, item.CampaignID)
			if err == nil {
				entry.CampaignTitle = campaign.Title
			}
		}
		if item.Status == "accepted" && s.Progress != nil {
			progress, err := s.Progress.GetProgress(ctx, item.CampaignID, creatorID)
			if err != nil {
				return ports.CreatorInbox{}, err
			}
			entry.Progress = &progress
		}
		inbox.Entries = append(inbox.Entries, entry)
	}
	return inbox, nil
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
