package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"meridian/contexts/collaboration/campaign-service/domain/entities"
	domainerrors "meridian/contexts/collaboration/campaign-service/domain/errors"
	"meridian/contexts/collaboration/campaign-service/ports"
	"meridian/internal/shared/outbox"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	campaigns map[string]entities.Campaign
	history   map[string][]entities.StateHistory
	outbox    []outbox.Message
}

func NewStore(seed []entities.Campaign) *Store {
	campaigns := make(map[string]entities.Campaign, len(seed))
	for _, item := range seed {
		campaigns[item.CampaignID] = item
	}
	return &Store{
		campaigns: campaigns,
		history:   make(map[string][]entities.StateHistory),
	}
}

func (s *Store) CreateCampaignWithOutbox(_ context.Context, campaign entities.Campaign, event ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.campaigns[campaign.CampaignID] = campaign
	return s.appendOutboxLocked(event)
}

func (s *Store) UpdateCampaignStatus(_ context.Context, campaign entities.Campaign, history entities.StateHistory, event ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.campaigns[campaign.CampaignID]; !exists {
		return domainerrors.ErrCampaignNotFound
	}
	s.campaigns[campaign.CampaignID] = campaign
	s.history[campaign.CampaignID] = append(s.history[campaign.CampaignID], history)
	return s.appendOutboxLocked(event)
}

func (s *Store) GetCampaign(_ context.Context, campaignID string) (entities.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.campaigns[strings.TrimSpace(campaignID)]
	if !exists {
		return entities.Campaign{}, domainerrors.ErrCampaignNotFound
	}
	return item, nil
}

func (s *Store) ListCampaigns(_ context.Context, filter ports.CampaignFilter) ([]entities.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Campaign, 0, len(s.campaigns))
	for _, item := range s.campaigns {
		if filter.BrandID != "" && item.BrandID != filter.BrandID {
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

func (s *Store) ListStateHistory(_ context.Context, campaignID string) ([]entities.StateHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]entities.StateHistory(nil), s.history[strings.TrimSpace(campaignID)]...), nil
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
