package queries

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"meridian/contexts/collaboration/deliverable-service/domain/entities"
	"meridian/contexts/collaboration/deliverable-service/domain/services"
	"meridian/contexts/collaboration/deliverable-service/ports"
)

// DeliverableProgress is the derived per-deliverable view: the checklist
// item plus the folded state of the creator's latest submission.
type DeliverableProgress struct {
	Deliverable        entities.Deliverable
	State              services.DeliverableState
	LatestSubmissionID string
	SubmissionCount    int
}

type QueryUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (uc QueryUseCase) GetDeliverableStatuses(ctx context.Context, campaignID, creatorID string) ([]DeliverableProgress, error) {
	campaignID = strings.TrimSpace(campaignID)
	creatorID = strings.TrimSpace(creatorID)

	deliverables, err := uc.Repository.ListDeliverables(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	submissions, err := uc.Repository.ListSubmissions(ctx, campaignID, creatorID)
	if err != nil {
		return nil, err
	}
	reviews, err := uc.Repository.ListReviewsForCreator(ctx, campaignID, creatorID)
	if err != nil {
		return nil, err
	}

	byDeliverable := make(map[string][]entities.Submission, len(deliverables))
	for _, submission := range submissions {
		byDeliverable[submission.DeliverableID] = append(byDeliverable[submission.DeliverableID], submission)
	}

	progress := make([]DeliverableProgress, 0, len(deliverables))
	for _, deliverable := range deliverables {
		items := byDeliverable[deliverable.DeliverableID]
		entry := DeliverableProgress{
			Deliverable:     deliverable,
			State:           services.DeliverableStatus(items, reviews),
			SubmissionCount: len(items),
		}
		var latestAt time.Time
		for _, submission := range items {
			if entry.LatestSubmissionID == "" || submission.SubmittedAt.After(latestAt) {
				entry.LatestSubmissionID = submission.SubmissionID
				latestAt = submission.SubmittedAt
			}
		}
		progress = append(progress, entry)
	}
	sort.Slice(progress, func(i, j int) bool {
		return progress[i].Deliverable.DeliverableIndex < progress[j].Deliverable.DeliverableIndex
	})
	return progress, nil
}

func (uc QueryUseCase) AllDeliverablesApproved(ctx context.Context, campaignID, creatorID string) (bool, error) {
	progress, err := uc.GetDeliverableStatuses(ctx, campaignID, creatorID)
	if err != nil {
		return false, err
	}
	if len(progress) == 0 {
		return false, nil
	}
	for _, entry := range progress {
		if entry.State != services.StateApproved {
			return false, nil
		}
	}
	return true, nil
}

func (uc QueryUseCase) ListSubmissions(ctx context.Context, campaignID, creatorID string) ([]entities.Submission, error) {
	return uc.Repository.ListSubmissions(ctx, strings.TrimSpace(campaignID), strings.TrimSpace(creatorID))
}

func (uc QueryUseCase) ListReviews(ctx context.Context, submissionID string) ([]entities.Review, error) {
	reviews, err := uc.Repository.ListReviews(ctx, strings.TrimSpace(submissionID))
	if err != nil {
		return nil, err
	}
	return services.SortReviews(reviews), nil
}
