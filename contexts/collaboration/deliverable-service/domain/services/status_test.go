package services_test

import (
	"testing"
	"time"

	"meridian/contexts/collaboration/deliverable-service/domain/entities"
	"meridian/contexts/collaboration/deliverable-service/domain/services"
)

func reviewAt(action entities.ReviewAction, at time.Time) entities.Review {
	return entities.Review{
		ReviewID:     "review-" + at.Format("150405"),
		SubmissionID: "submission-1",
		Action:       action,
		CreatedAt:    at,
	}
}

func TestSubmissionStatusFold(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if got := services.SubmissionStatus(nil); got != services.StateSubmitted {
		t.Fatalf("empty log should fold to submitted, got %s", got)
	}

	reviews := []entities.Review{
		reviewAt(entities.ReviewActionRevisionRequested, base),
		reviewAt(entities.ReviewActionApproved, base.Add(time.Hour)),
	}
	if got := services.SubmissionStatus(reviews); got != services.StateApproved {
		t.Fatalf("latest review should win, got %s", got)
	}

	// Order in the slice must not matter.
	reversed := []entities.Review{reviews[1], reviews[0]}
	if got := services.SubmissionStatus(reversed); got != services.StateApproved {
		t.Fatalf("fold must be order independent, got %s", got)
	}

	rejected := append(reviews, reviewAt(entities.ReviewActionRejected, base.Add(2*time.Hour)))
	if got := services.SubmissionStatus(rejected); got != services.StateRejected {
		t.Fatalf("rejection after approval should fold to rejected, got %s", got)
	}
}

func TestSubmissionStatusSameInstantTieBreak(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tied := []entities.Review{
		{ReviewID: "review-a", SubmissionID: "submission-1", Action: entities.ReviewActionRejected, CreatedAt: at},
		{ReviewID: "review-b", SubmissionID: "submission-1", Action: entities.ReviewActionApproved, CreatedAt: at},
	}

	// Equal timestamps resolve on ReviewID, in either slice order.
	if got := services.SubmissionStatus(tied); got != services.StateApproved {
		t.Fatalf("tie should resolve to the higher review id, got %s", got)
	}
	reversed := []entities.Review{tied[1], tied[0]}
	if got := services.SubmissionStatus(reversed); got != services.StateApproved {
		t.Fatalf("tie break must be order independent, got %s", got)
	}
}

func TestDeliverableStatusUsesLatestSubmission(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if got := services.DeliverableStatus(nil, nil); got != services.StateNoneSubmitted {
		t.Fatalf("no submissions should fold to none_submitted, got %s", got)
	}

	submissions := []entities.Submission{
		{SubmissionID: "submission-1", SubmittedAt: base},
		{SubmissionID: "submission-2", SubmittedAt: base.Add(time.Hour)},
	}
	reviews := map[string][]entities.Review{
		"submission-1": {reviewAt(entities.ReviewActionRejected, base.Add(30 * time.Minute))},
	}
	// The rejected first attempt is superseded by the unreviewed revision.
	if got := services.DeliverableStatus(submissions, reviews); got != services.StateSubmitted {
		t.Fatalf("latest submission governs, got %s", got)
	}
}

func TestAllDeliverablesApproved(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	deliverables := []entities.Deliverable{
		{DeliverableID: "deliverable-1", DeliverableIndex: 0},
		{DeliverableID: "deliverable-2", DeliverableIndex: 1},
	}
	submissions := map[string][]entities.Submission{
		"deliverable-1": {{SubmissionID: "submission-1", DeliverableID: "deliverable-1", SubmittedAt: base}},
		"deliverable-2": {{SubmissionID: "submission-2", DeliverableID: "deliverable-2", SubmittedAt: base}},
	}
	reviews := map[string][]entities.Review{
		"submission-1": {{ReviewID: "r1", SubmissionID: "submission-1", Action: entities.ReviewActionApproved, CreatedAt: base.Add(time.Hour)}},
	}

	if services.AllDeliverablesApproved(deliverables, submissions, reviews) {
		t.Fatal("one unreviewed deliverable must block full approval")
	}

	reviews["submission-2"] = []entities.Review{
		{ReviewID: "r2", SubmissionID: "submission-2", Action: entities.ReviewActionApproved, CreatedAt: base.Add(time.Hour)},
	}
	if !services.AllDeliverablesApproved(deliverables, submissions, reviews) {
		t.Fatal("expected full approval once every latest submission is approved")
	}

	if services.AllDeliverablesApproved(nil, nil, nil) {
		t.Fatal("a campaign with no deliverables is never fully approved")
	}
}
