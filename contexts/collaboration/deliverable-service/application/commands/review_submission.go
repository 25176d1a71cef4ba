package commands

import (
	"context"
	"log/slog"
	"strings"

	application "meridian/contexts/collaboration/deliverable-service/application"
	"meridian/contexts/collaboration/deliverable-service/domain/entities"
	domainerrors "meridian/contexts/collaboration/deliverable-service/domain/errors"
	"meridian/contexts/collaboration/deliverable-service/domain/services"
	"meridian/contexts/collaboration/deliverable-service/ports"
)

type ReviewSubmissionCommand struct {
	SubmissionID string
	ActorID      string
	BrandID      string
	Action       entities.ReviewAction
	Feedback     string
}

// ReviewSubmissionUseCase appends an immutable review verdict. When the new
// review flips the creator's campaign checklist to fully approved, the
// payment-eligibility event goes out in the same transaction.
type ReviewSubmissionUseCase struct {
	Repository ports.Repository
	Access     ports.AccessChecker
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc ReviewSubmissionUseCase) Execute(ctx context.Context, cmd ReviewSubmissionCommand) (entities.Review, error) {
	logger := application.ResolveLogger(uc.Logger)

	if !entities.IsSupportedReviewAction(cmd.Action) {
		return entities.Review{}, domainerrors.ErrInvalidReviewAction
	}
	submission, err := uc.Repository.GetSubmission(ctx, strings.TrimSpace(cmd.SubmissionID))
	if err != nil {
		return entities.Review{}, err
	}

	access, err := uc.Access.ResolveCampaignAccess(ctx, strings.TrimSpace(cmd.ActorID), strings.TrimSpace(cmd.BrandID), submission.CampaignID)
	if err != nil {
		return entities.Review{}, err
	}
	if !canReview(access) {
		return entities.Review{}, domainerrors.ErrUnauthorizedActor
	}

	approvedBefore, err := uc.allApproved(ctx, submission.CampaignID, submission.CreatorID, entities.Review{})
	if err != nil {
		return entities.Review{}, err
	}

	now := uc.Clock.Now().UTC()
	reviewID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Review{}, err
	}
	review := entities.Review{
		ReviewID:     reviewID,
		SubmissionID: submission.SubmissionID,
		Action:       cmd.Action,
		Feedback:     strings.TrimSpace(cmd.Feedback),
		ReviewerID:   strings.TrimSpace(cmd.ActorID),
		CreatedAt:    now,
	}

	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Review{}, err
	}
	reviewEvent, err := newEnvelope(eventID, "submission.reviewed", "review", review.ReviewID, now, map[string]any{
		"review_id":      review.ReviewID,
		"submission_id":  submission.SubmissionID,
		"campaign_id":    submission.CampaignID,
		"brand_id":       strings.TrimSpace(cmd.BrandID),
		"creator_id":     submission.CreatorID,
		"deliverable_id": submission.DeliverableID,
		"action":         string(review.Action),
	})
	if err != nil {
		return entities.Review{}, err
	}
	events := []ports.EventEnvelope{reviewEvent}

	if cmd.Action == entities.ReviewActionApproved && !approvedBefore {
		approvedAfter, err := uc.allApproved(ctx, submission.CampaignID, submission.CreatorID, review)
		if err != nil {
			return entities.Review{}, err
		}
		if approvedAfter {
			flipEventID, err := uc.IDGen.NewID(ctx)
			if err != nil {
				return entities.Review{}, err
			}
			flipEvent, err := newEnvelope(flipEventID, "deliverables.all_approved", "submission", submission.SubmissionID, now, map[string]any{
				"campaign_id": submission.CampaignID,
				"brand_id":    strings.TrimSpace(cmd.BrandID),
				"creator_id":  submission.CreatorID,
			})
			if err != nil {
				return entities.Review{}, err
			}
			events = append(events, flipEvent)
		}
	}

	if err := uc.Repository.CreateReviewWithOutbox(ctx, review, events); err != nil {
		return entities.Review{}, err
	}

	logger.Info("submission reviewed",
		"event", "submission_reviewed",
		"module", "collaboration/deliverable-service",
		"layer", "application",
		"review_id", review.ReviewID,
		"submission_id", submission.SubmissionID,
		"campaign_id", submission.CampaignID,
		"action", string(review.Action),
		"all_approved", len(events) > 1,
	)
	return review, nil
}

// allApproved folds the creator's full checklist, optionally with one
// not-yet-persisted review applied on top.
func (uc ReviewSubmissionUseCase) allApproved(ctx context.Context, campaignID, creatorID string, extra entities.Review) (bool, error) {
	deliverables, err := uc.Repository.ListDeliverables(ctx, campaignID)
	if err != nil {
		return false, err
	}
	submissions, err := uc.Repository.ListSubmissions(ctx, campaignID, creatorID)
	if err != nil {
		return false, err
	}
	reviews, err := uc.Repository.ListReviewsForCreator(ctx, campaignID, creatorID)
	if err != nil {
		return false, err
	}
	if extra.ReviewID != "" {
		merged := make(map[string][]entities.Review, len(reviews))
		for key, value := range reviews {
			merged[key] = value
		}
		merged[extra.SubmissionID] = append(append([]entities.Review(nil), merged[extra.SubmissionID]...), extra)
		reviews = merged
	}

	byDeliverable := make(map[string][]entities.Submission, len(deliverables))
	for _, submission := range submissions {
		byDeliverable[submission.DeliverableID] = append(byDeliverable[submission.DeliverableID], submission)
	}
	return services.AllDeliverablesApproved(deliverables, byDeliverable, reviews), nil
}

// canReview mirrors the brand-side operator rule used across collaboration
// services. Finance resolves access but does not review content.
func canReview(access ports.CampaignAccess) bool {
	if access.IsAdmin || access.IsOwner {
		return true
	}
	switch access.Role {
	case "agency_admin":
		return true
	case "campaign_manager":
		return access.CanAccessCampaign
	default:
		return false
	}
}
