package services

import (
	"sort"

	"meridian/contexts/collaboration/deliverable-service/domain/entities"
)

type DeliverableState string

const (
	StateNoneSubmitted     DeliverableState = "none_submitted"
	StateSubmitted         DeliverableState = "submitted"
	StateApproved          DeliverableState = "approved"
	StateRevisionRequested DeliverableState = "revision_requested"
	StateRejected          DeliverableState = "rejected"
)

// SubmissionStatus folds a submission's review log. The latest review wins;
// an unreviewed submission is simply submitted. Same-instant reviews break
// the tie on ReviewID so the fold is deterministic regardless of slice order.
func SubmissionStatus(reviews []entities.Review) DeliverableState {
	if len(reviews) == 0 {
		return StateSubmitted
	}
	latest := reviews[0]
	for _, review := range reviews[1:] {
		if review.CreatedAt.After(latest.CreatedAt) ||
			(review.CreatedAt.Equal(latest.CreatedAt) && review.ReviewID > latest.ReviewID) {
			latest = review
		}
	}
	switch latest.Action {
	case entities.ReviewActionApproved:
		return StateApproved
	case entities.ReviewActionRejected:
		return StateRejected
	case entities.ReviewActionRevisionRequested:
		return StateRevisionRequested
	default:
		return StateSubmitted
	}
}

// DeliverableStatus derives a deliverable's state from its submission
// history: the latest submission's folded status, or none_submitted when
// the creator has not uploaded anything yet.
func DeliverableStatus(submissions []entities.Submission, reviewsBySubmission map[string][]entities.Review) DeliverableState {
	latest, ok := latestSubmission(submissions)
	if !ok {
		return StateNoneSubmitted
	}
	return SubmissionStatus(reviewsBySubmission[latest.SubmissionID])
}

// AllDeliverablesApproved reports whether every deliverable of the campaign
// has a latest submission folding to approved for this creator. A campaign
// with no deliverables defined is never approved as a whole.
func AllDeliverablesApproved(
	deliverables []entities.Deliverable,
	submissionsByDeliverable map[string][]entities.Submission,
	reviewsBySubmission map[string][]entities.Review,
) bool {
	if len(deliverables) == 0 {
		return false
	}
	for _, deliverable := range deliverables {
		state := DeliverableStatus(submissionsByDeliverable[deliverable.DeliverableID], reviewsBySubmission)
		if state != StateApproved {
			return false
		}
	}
	return true
}

// SortReviews orders a review log oldest first. Folds do not require order
// but transport payloads do.
func SortReviews(reviews []entities.Review) []entities.Review {
	sorted := append([]entities.Review(nil), reviews...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})
	return sorted
}

func latestSubmission(submissions []entities.Submission) (entities.Submission, bool) {
	if len(submissions) == 0 {
		return entities.Submission{}, false
	}
	latest := submissions[0]
	for _, item := range submissions[1:] {
		if item.SubmittedAt.After(latest.SubmittedAt) ||
			(item.SubmittedAt.Equal(latest.SubmittedAt) && item.SubmissionID > latest.SubmissionID) {
			latest = item
		}
	}
	return latest, true
}
