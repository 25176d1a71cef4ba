package memory

import (
	"context"
	"sync"
	"time"

	"meridian/contexts/collaboration/dashboard-service/ports"
)

// Store is a seedable in-memory stand-in for the cross-context sources the
// dashboard reads from.
type Store struct {
	mu sync.RWMutex

	invitations []ports.InvitationView
	progress    map[string]ports.ProgressView
	campaigns   map[string]ports.CampaignView
}

func NewStore() *Store {
	return &Store{
		progress:  make(map[string]ports.ProgressView),
		campaigns: make(map[string]ports.CampaignView),
	}
}

func (s *Store) SeedInvitation(item ports.InvitationView) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.invitations {
		if s.invitations[i].InvitationID == item.InvitationID {
			s.invitations[i] = item
			return
		}
	}
	s.invitations = append(s.invitations, item)
}

func (s *Store) SeedProgress(campaignID, creatorID string, view ports.ProgressView) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.progress[progressKey(campaignID, creatorID)] = view
}

func (s *Store) SeedCampaign(view ports.CampaignView) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.campaigns[view.CampaignID] = view
}

func (s *Store) ListByBrand(_ context.Context, brandID string) ([]ports.InvitationView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.InvitationView, 0, len(s.invitations))
	for _, item := range s.invitations {
		if item.BrandID == brandID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (s *Store) ListByCreator(_ context.Context, creatorID string) ([]ports.InvitationView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.InvitationView, 0, len(s.invitations))
	for _, item := range s.invitations {
		if item.CreatorID == creatorID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (s *Store) GetProgress(_ context.Context, campaignID, creatorID string) (ports.ProgressView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.progress[progressKey(campaignID, creatorID)], nil
}

func (s *Store) GetCampaign(_ context.Context, campaignID string) (ports.CampaignView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.campaigns[campaignID], nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func progressKey(campaignID, creatorID string) string {
	return campaignID + "|" + creatorID
}
