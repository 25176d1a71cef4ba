package ports

import (
	"context"
	"time"

	"meridian/contexts/collaboration/deliverable-service/domain/entities"
	"meridian/internal/shared/events"
	"meridian/internal/shared/outbox"
)

type EventEnvelope = events.Envelope

type Repository interface {
	// CreateSubmissionWithOutbox appends a submission row and its outbox
	// event atomically. Submissions are never updated afterwards.
	CreateSubmissionWithOutbox(ctx context.Context, submission entities.Submission, event EventEnvelope) error

	// CreateReviewWithOutbox appends a review row plus zero or more outbox
	// events in one transaction.
	CreateReviewWithOutbox(ctx context.Context, review entities.Review, events []EventEnvelope) error

	CreateDeliverables(ctx context.Context, deliverables []entities.Deliverable) error

	GetSubmission(ctx context.Context, submissionID string) (entities.Submission, error)
	ListDeliverables(ctx context.Context, campaignID string) ([]entities.Deliverable, error)
	ListSubmissions(ctx context.Context, campaignID, creatorID string) ([]entities.Submission, error)
	ListSubmissionsForDeliverable(ctx context.Context, deliverableID, creatorID string) ([]entities.Submission, error)
	ListReviews(ctx context.Context, submissionID string) ([]entities.Review, error)
	ListReviewsForCreator(ctx context.Context, campaignID, creatorID string) (map[string][]entities.Review, error)
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]outbox.Message, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

// InvitationChecker asks the invitation service whether the creator holds
// an accepted invitation for the campaign. Bound by the composition root.
type InvitationChecker interface {
	HasAcceptedInvitation(ctx context.Context, campaignID, creatorID string) (bool, error)
}

// CampaignChecker asks the campaign service whether the campaign currently
// accepts deliverable submissions.
type CampaignChecker interface {
	IsAcceptingDeliverables(ctx context.Context, campaignID string) (bool, error)
}

// CampaignAccess mirrors the slice of an access decision this service needs.
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
