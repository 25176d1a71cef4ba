package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"meridian/contexts/identity-access/access-service/domain/entities"
	domainerrors "meridian/contexts/identity-access/access-service/domain/errors"
	"meridian/contexts/identity-access/access-service/ports"
	"meridian/internal/shared/outbox"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	brands       map[string]entities.Brand
	globalAdmins map[string]bool
	memberships  map[string]entities.BrandMembership
	assignments  map[string]entities.ManagerAssignment
	outbox       []outbox.Message
}

func NewStore(brands []entities.Brand, globalAdmins []string) *Store {
	brandIndex := make(map[string]entities.Brand, len(brands))
	for _, brand := range brands {
		brandIndex[brand.BrandID] = brand
	}
	admins := make(map[string]bool, len(globalAdmins))
	for _, userID := range globalAdmins {
		admins[userID] = true
	}
	return &Store{
		brands:       brandIndex,
		globalAdmins: admins,
		memberships:  make(map[string]entities.BrandMembership),
		assignments:  make(map[string]entities.ManagerAssignment),
	}
}

func membershipKey(brandID, userID string) string {
	return brandID + "/" + userID
}

func assignmentKey(campaignID, userID string) string {
	return campaignID + "/" + userID
}

func (s *Store) GetBrand(_ context.Context, brandID string) (entities.Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	brand, exists := s.brands[strings.TrimSpace(brandID)]
	if !exists {
		return entities.Brand{}, domainerrors.ErrBrandNotFound
	}
	return brand, nil
}

func (s *Store) IsGlobalAdmin(_ context.Context, userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.globalAdmins[strings.TrimSpace(userID)], nil
}

func (s *Store) GetMembership(_ context.Context, brandID, userID string) (entities.BrandMembership, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	membership, exists := s.memberships[membershipKey(strings.TrimSpace(brandID), strings.TrimSpace(userID))]
	return membership, exists, nil
}

func (s *Store) ListMemberships(_ context.Context, brandID string) ([]entities.BrandMembership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.BrandMembership, 0)
	for _, membership := range s.memberships {
		if membership.BrandID == brandID {
			items = append(items, membership)
		}
	}
	sortMemberships(items)
	return items, nil
}

func (s *Store) ListMembershipsForUser(_ context.Context, userID string) ([]entities.BrandMembership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.BrandMembership, 0)
	for _, membership := range s.memberships {
		if membership.UserID == userID {
			items = append(items, membership)
		}
	}
	sortMemberships(items)
	return items, nil
}

func (s *Store) GetAssignment(_ context.Context, campaignID, userID string) (entities.ManagerAssignment, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	assignment, exists := s.assignments[assignmentKey(strings.TrimSpace(campaignID), strings.TrimSpace(userID))]
	return assignment, exists, nil
}

func (s *Store) ListAssignments(_ context.Context, campaignID string) ([]entities.ManagerAssignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.ManagerAssignment, 0)
	for _, assignment := range s.assignments {
		if assignment.CampaignID == campaignID {
			items = append(items, assignment)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) CreateAssignmentWithOutbox(_ context.Context, assignment entities.ManagerAssignment, event ports.EventEnvelope) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := assignmentKey(assignment.CampaignID, assignment.UserID)
	if _, exists := s.assignments[key]; exists {
		return false, nil
	}
	s.assignments[key] = assignment
	return true, s.appendOutboxLocked(event)
}

func (s *Store) DeleteAssignmentWithOutbox(_ context.Context, campaignID, userID string, event ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := assignmentKey(campaignID, userID)
	if _, exists := s.assignments[key]; !exists {
		return domainerrors.ErrAssignmentNotFound
	}
	delete(s.assignments, key)
	return s.appendOutboxLocked(event)
}

func (s *Store) UpsertMembershipWithOutbox(_ context.Context, membership entities.BrandMembership, event ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if membership.IsDefault {
		for key, existing := range s.memberships {
			if existing.UserID == membership.UserID && existing.IsDefault {
				existing.IsDefault = false
				s.memberships[key] = existing
			}
		}
	}
	s.memberships[membershipKey(membership.BrandID, membership.UserID)] = membership
	return s.appendOutboxLocked(event)
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

func sortMemberships(items []entities.BrandMembership) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
