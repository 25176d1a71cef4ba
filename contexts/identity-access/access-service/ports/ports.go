package ports

import (
	"context"
	"time"

	"meridian/contexts/identity-access/access-service/domain/entities"
	"meridian/internal/shared/events"
	"meridian/internal/shared/outbox"
)

type EventEnvelope = events.Envelope

type Repository interface {
	GetBrand(ctx context.Context, brandID string) (entities.Brand, error)
	IsGlobalAdmin(ctx context.Context, userID string) (bool, error)

	GetMembership(ctx context.Context, brandID, userID string) (entities.BrandMembership, bool, error)
	ListMemberships(ctx context.Context, brandID string) ([]entities.BrandMembership, error)
	ListMembershipsForUser(ctx context.Context, userID string) ([]entities.BrandMembership, error)

	GetAssignment(ctx context.Context, campaignID, userID string) (entities.ManagerAssignment, bool, error)
	ListAssignments(ctx context.Context, campaignID string) ([]entities.ManagerAssignment, error)

	// CreateAssignmentWithOutbox inserts the assignment and its event
	// atomically. Inserting an already-present pair is a no-op reported via
	// the returned bool so callers stay idempotent.
	CreateAssignmentWithOutbox(ctx context.Context, assignment entities.ManagerAssignment, event EventEnvelope) (bool, error)
	DeleteAssignmentWithOutbox(ctx context.Context, campaignID, userID string, event EventEnvelope) error

	// UpsertMembershipWithOutbox writes the membership and, when IsDefault
	// is set, clears the user's previous default in the same transaction.
	UpsertMembershipWithOutbox(ctx context.Context, membership entities.BrandMembership, event EventEnvelope) error
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]outbox.Message, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

// InvitationProvider is the cross-context read into the invitation service
// backing the creator fallback.
type InvitationProvider interface {
	HasInvitation(ctx context.Context, campaignID, creatorID string) (bool, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
