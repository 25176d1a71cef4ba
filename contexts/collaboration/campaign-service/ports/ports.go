package ports

import (
	"context"
	"time"

	"meridian/contexts/collaboration/campaign-service/domain/entities"
	"meridian/internal/shared/events"
	"meridian/internal/shared/outbox"
)

type EventEnvelope = events.Envelope

type CampaignFilter struct {
	BrandID string
	Status  entities.CampaignStatus
}

type Repository interface {
	CreateCampaignWithOutbox(ctx context.Context, campaign entities.Campaign, event EventEnvelope) error

	// UpdateCampaignStatus writes the campaign, appends the state history
	// row and the outbox event in one transaction.
	UpdateCampaignStatus(ctx context.Context, campaign entities.Campaign, history entities.StateHistory, event EventEnvelope) error

	GetCampaign(ctx context.Context, campaignID string) (entities.Campaign, error)
	ListCampaigns(ctx context.Context, filter CampaignFilter) ([]entities.Campaign, error)
	ListStateHistory(ctx context.Context, campaignID string) ([]entities.StateHistory, error)
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]outbox.Message, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

// DeliverableDefinition is what the brand defines on the campaign; the
// deliverable service owns the stored checklist.
type DeliverableDefinition struct {
	Index int
	Title string
	Type  string
}

// DeliverableWriter pushes the locked checklist into the deliverable
// service's store. Bound by the composition root.
type DeliverableWriter interface {
	WriteDeliverables(ctx context.Context, campaignID string, definitions []DeliverableDefinition) error
}

type CampaignAccess struct {
	Role              string
	CanAccessCampaign bool
	IsOwner           bool
	IsAdmin           bool
}

type AccessChecker interface {
	ResolveCampaignAccess(ctx context.Context, principalID, brandID, campaignID string) (CampaignAccess, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
