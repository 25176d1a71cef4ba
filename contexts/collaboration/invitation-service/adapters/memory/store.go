package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"meridian/contexts/collaboration/invitation-service/domain/entities"
	domainerrors "meridian/contexts/collaboration/invitation-service/domain/errors"
	"meridian/contexts/collaboration/invitation-service/ports"
	"meridian/internal/shared/outbox"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	invitations map[string]entities.Invitation
	links       map[string]entities.TrackingLink
	outbox      []outbox.Message
}

func NewStore(seed []entities.Invitation) *Store {
	invitations := make(map[string]entities.Invitation, len(seed))
	for _, item := range seed {
		invitations[item.InvitationID] = item
	}
	return &Store{
		invitations: invitations,
		links:       make(map[string]entities.TrackingLink),
	}
}

func (s *Store) CreateInvitationWithOutbox(_ context.Context, invitation entities.Invitation, event ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.invitations {
		if existing.CampaignID == invitation.CampaignID &&
			existing.CreatorID == invitation.CreatorID &&
			existing.IsLive() {
			return domainerrors.ErrDuplicateInvitation
		}
	}
	s.invitations[invitation.InvitationID] = invitation
	return s.appendOutboxLocked(event)
}

func (s *Store) UpdateInvitationIf(
	_ context.Context,
	invitation entities.Invitation,
	expectedVersion int64,
	events []ports.EventEnvelope,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, exists := s.invitations[invitation.InvitationID]
	if !exists {
		return domainerrors.ErrInvitationNotFound
	}
	if stored.Version != expectedVersion {
		return domainerrors.ErrTransitionConflict
	}
	s.invitations[invitation.InvitationID] = invitation
	for _, event := range events {
		if err := s.appendOutboxLocked(event); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) AcceptInvitationWithLink(
	_ context.Context,
	invitation entities.Invitation,
	expectedVersion int64,
	link entities.TrackingLink,
	events []ports.EventEnvelope,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, exists := s.invitations[invitation.InvitationID]
	if !exists {
		return domainerrors.ErrInvitationNotFound
	}
	if stored.Version != expectedVersion {
		return domainerrors.ErrTransitionConflict
	}
	s.invitations[invitation.InvitationID] = invitation
	s.links[link.LinkID] = link
	for _, event := range events {
		if err := s.appendOutboxLocked(event); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) GetInvitation(_ context.Context, invitationID string) (entities.Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.invitations[strings.TrimSpace(invitationID)]
	if !exists {
		return entities.Invitation{}, domainerrors.ErrInvitationNotFound
	}
	return item, nil
}

func (s *Store) GetInvitationForCreator(_ context.Context, campaignID, creatorID string) (entities.Invitation, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest entities.Invitation
	found := false
	for _, item := range s.invitations {
		if item.CampaignID != campaignID || item.CreatorID != creatorID {
			continue
		}
		if !found || item.CreatedAt.After(latest.CreatedAt) {
			latest = item
			found = true
		}
	}
	return latest, found, nil
}

func (s *Store) ListInvitations(_ context.Context, filter ports.InvitationFilter) ([]entities.Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Invitation, 0, len(s.invitations))
	for _, item := range s.invitations {
		if filter.BrandID != "" && item.BrandID != filter.BrandID {
			continue
		}
		if filter.CampaignID != "" && item.CampaignID != filter.CampaignID {
			continue
		}
		if filter.CreatorID != "" && item.CreatorID != filter.CreatorID {
			continue
		}
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].UpdatedAt.After(items[j].UpdatedAt)
	})
	return items, nil
}

func (s *Store) HasLiveInvitation(_ context.Context, campaignID, creatorID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.invitations {
		if item.CampaignID == campaignID && item.CreatorID == creatorID && item.IsLive() {
			return true, nil
		}
	}
	return false, nil
}

// HasInvitation serves the access service's creator fallback: any invitation
// at all, regardless of status, grants the creator-facing campaign view.
func (s *Store) HasInvitation(_ context.Context, campaignID, creatorID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.invitations {
		if item.CampaignID == campaignID && item.CreatorID == creatorID {
			return true, nil
		}
	}
	return false, nil
}

// HasAcceptedInvitation serves the deliverable service's submit precondition.
func (s *Store) HasAcceptedInvitation(_ context.Context, campaignID, creatorID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.invitations {
		if item.CampaignID == campaignID &&
			item.CreatorID == creatorID &&
			item.Status == entities.InvitationStatusAccepted {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) ListExpirablePending(_ context.Context, now time.Time, limit int) ([]entities.Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Invitation, 0)
	for _, item := range s.invitations {
		if item.Status != entities.InvitationStatusPending || item.ExpiresAt == nil {
			continue
		}
		if item.ExpiresAt.After(now) {
			continue
		}
		items = append(items, item)
		if len(items) >= limit {
			break
		}
	}
	return items, nil
}

func (s *Store) ListTrackingLinks(_ context.Context, campaignID, creatorID string) ([]entities.TrackingLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.TrackingLink, 0)
	for _, item := range s.links {
		if campaignID != "" && item.CampaignID != campaignID {
			continue
		}
		if creatorID != "" && item.CreatorID != creatorID {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]outbox.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]outbox.Message, 0, limit)
	for _, row := range s.outbox {
		if row.Status != outbox.StatusPending {
			continue
		}
		items = append(items, row)
		if len(items) >= limit {
			break
		}
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, publishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.outbox {
		if s.outbox[i].OutboxID == outboxID {
			at := publishedAt.UTC()
			s.outbox[i].Status = outbox.StatusPublished
			s.outbox[i].PublishedAt = &at
			return nil
		}
	}
	return nil
}

func (s *Store) appendOutboxLocked(event ports.EventEnvelope) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	s.outbox = append(s.outbox, outbox.Message{
		OutboxID:     uuid.NewString(),
		EventType:    event.EventType,
		PartitionKey: event.PartitionKey,
		Payload:      payload,
		Status:       outbox.StatusPending,
		CreatedAt:    event.OccurredAt,
	})
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
