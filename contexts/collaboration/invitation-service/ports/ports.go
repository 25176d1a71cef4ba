package ports

import (
	"context"
	"time"

	"meridian/contexts/collaboration/invitation-service/domain/entities"
	"meridian/internal/shared/events"
	"meridian/internal/shared/outbox"
)

type EventEnvelope = events.Envelope

type InvitationFilter struct {
	BrandID    string
	CampaignID string
	CreatorID  string
	Status     entities.InvitationStatus
}

type Repository interface {
	// CreateInvitationWithOutbox must atomically persist the invitation and
	// its outbox event.
	CreateInvitationWithOutbox(ctx context.Context, invitation entities.Invitation, event EventEnvelope) error

	// UpdateInvitationIf applies the update only when the stored version still
	// equals expectedVersion (the version the caller read); a mismatch returns
	// ErrTransitionConflict. The outbox events commit in the same transaction.
	UpdateInvitationIf(
		ctx context.Context,
		invitation entities.Invitation,
		expectedVersion int64,
		events []EventEnvelope,
	) error

	// AcceptInvitationWithLink is UpdateInvitationIf plus the tracking link
	// insert, all in one transaction. Accepting without a link is not a
	// representable state.
	AcceptInvitationWithLink(
		ctx context.Context,
		invitation entities.Invitation,
		expectedVersion int64,
		link entities.TrackingLink,
		events []EventEnvelope,
	) error

	GetInvitation(ctx context.Context, invitationID string) (entities.Invitation, error)
	GetInvitationForCreator(ctx context.Context, campaignID, creatorID string) (entities.Invitation, bool, error)
	ListInvitations(ctx context.Context, filter InvitationFilter) ([]entities.Invitation, error)
	HasLiveInvitation(ctx context.Context, campaignID, creatorID string) (bool, error)
	ListExpirablePending(ctx context.Context, now time.Time, limit int) ([]entities.Invitation, error)

	ListTrackingLinks(ctx context.Context, campaignID, creatorID string) ([]entities.TrackingLink, error)
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]outbox.Message, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

// CampaignAccess is the slice of an access decision this service acts on.
type CampaignAccess struct {
	Role              string
	CanAccessCampaign bool
	IsOwner           bool
	IsAdmin           bool
}

// AccessChecker resolves a principal's effective access for a brand/campaign
// pair. Bound to the access service by the composition root.
type AccessChecker interface {
	ResolveCampaignAccess(ctx context.Context, principalID, brandID, campaignID string) (CampaignAccess, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
