package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"meridian/contexts/collaboration/deliverable-service/domain/entities"
	domainerrors "meridian/contexts/collaboration/deliverable-service/domain/errors"
	"meridian/contexts/collaboration/deliverable-service/ports"
	"meridian/internal/shared/outbox"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	deliverables map[string]entities.Deliverable
	submissions  map[string]entities.Submission
	reviews      map[string][]entities.Review
	outbox       []outbox.Message
}

func NewStore(seed []entities.Deliverable) *Store {
	deliverables := make(map[string]entities.Deliverable, len(seed))
	for _, item := range seed {
		deliverables[item.DeliverableID] = item
	}
	return &Store{
		deliverables: deliverables,
		submissions:  make(map[string]entities.Submission),
		reviews:      make(map[string][]entities.Review),
	}
}

func (s *Store) CreateDeliverables(_ context.Context, deliverables []entities.Deliverable) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range deliverables {
		s.deliverables[item.DeliverableID] = item
	}
	return nil
}

func (s *Store) CreateSubmissionWithOutbox(_ context.Context, submission entities.Submission, event ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.submissions[submission.SubmissionID] = submission
	return s.appendOutboxLocked(event)
}

func (s *Store) CreateReviewWithOutbox(_ context.Context, review entities.Review, events []ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.submissions[review.SubmissionID]; !exists {
		return domainerrors.ErrSubmissionNotFound
	}
	s.reviews[review.SubmissionID] = append(s.reviews[review.SubmissionID], review)
	for _, event := range events {
		if err := s.appendOutboxLocked(event); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) GetSubmission(_ context.Context, submissionID string) (entities.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.submissions[strings.TrimSpace(submissionID)]
	if !exists {
		return entities.Submission{}, domainerrors.ErrSubmissionNotFound
	}
	return item, nil
}

func (s *Store) ListDeliverables(_ context.Context, campaignID string) ([]entities.Deliverable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Deliverable, 0)
	for _, item := range s.deliverables {
		if item.CampaignID == campaignID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].DeliverableIndex < items[j].DeliverableIndex
	})
	return items, nil
}

func (s *Store) ListSubmissions(_ context.Context, campaignID, creatorID string) ([]entities.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Submission, 0)
	for _, item := range s.submissions {
		if campaignID != "" && item.CampaignID != campaignID {
			continue
		}
		if creatorID != "" && item.CreatorID != creatorID {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].SubmittedAt.Before(items[j].SubmittedAt)
	})
	return items, nil
}

func (s *Store) ListSubmissionsForDeliverable(_ context.Context, deliverableID, creatorID string) ([]entities.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Submission, 0)
	for _, item := range s.submissions {
		if item.DeliverableID != deliverableID {
			continue
		}
		if creatorID != "" && item.CreatorID != creatorID {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].SubmittedAt.Before(items[j].SubmittedAt)
	})
	return items, nil
}

func (s *Store) ListReviews(_ context.Context, submissionID string) ([]entities.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]entities.Review(nil), s.reviews[strings.TrimSpace(submissionID)]...), nil
}

func (s *Store) ListReviewsForCreator(_ context.Context, campaignID, creatorID string) (map[string][]entities.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string][]entities.Review)
	for submissionID, reviews := range s.reviews {
		submission, exists := s.submissions[submissionID]
		if !exists || submission.CampaignID != campaignID || submission.CreatorID != creatorID {
			continue
		}
		result[submissionID] = append([]entities.Review(nil), reviews...)
	}
	return result, nil
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
