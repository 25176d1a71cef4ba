package deliverableservice_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	deliverableservice "meridian/contexts/collaboration/deliverable-service"
	"meridian/contexts/collaboration/deliverable-service/domain/entities"
	domainerrors "meridian/contexts/collaboration/deliverable-service/domain/errors"
	"meridian/contexts/collaboration/deliverable-service/ports"
	httptransport "meridian/contexts/collaboration/deliverable-service/transport/http"
)

type stubInvitations struct {
	accepted map[string]bool
}

func (s stubInvitations) HasAcceptedInvitation(_ context.Context, campaignID, creatorID string) (bool, error) {
	return s.accepted[campaignID+"/"+creatorID], nil
}

type stubCampaigns struct {
	accepting map[string]bool
}

func (s stubCampaigns) IsAcceptingDeliverables(_ context.Context, campaignID string) (bool, error) {
	return s.accepting[campaignID], nil
}

type stubAccess struct {
	decisions map[string]ports.CampaignAccess
}

func (s stubAccess) ResolveCampaignAccess(_ context.Context, principalID, _, _ string) (ports.CampaignAccess, error) {
	return s.decisions[principalID], nil
}

func newTestModule(t *testing.T) deliverableservice.Module {
	t.Helper()
	module := deliverableservice.NewInMemoryModule(
		stubInvitations{accepted: map[string]bool{
			"campaign-1/creator-1": true,
			"campaign-3/creator-1": true,
		}},
		stubCampaigns{accepting: map[string]bool{"campaign-1": true}},
		stubAccess{decisions: map[string]ports.CampaignAccess{
			"owner-1":   {Role: "brand_owner", IsOwner: true, CanAccessCampaign: true},
			"finance-1": {Role: "finance", CanAccessCampaign: true},
		}},
		nil,
	)
	now := time.Now().UTC()
	err := module.Store.CreateDeliverables(context.Background(), []entities.Deliverable{
		{DeliverableID: "deliverable-1", CampaignID: "campaign-1", DeliverableIndex: 0, Title: "Unboxing video", Type: "video", CreatedAt: now},
		{DeliverableID: "deliverable-2", CampaignID: "campaign-1", DeliverableIndex: 1, Title: "Story mention", Type: "story", CreatedAt: now},
	})
	if err != nil {
		t.Fatalf("seeding deliverables failed: %v", err)
	}
	return module
}

func submitRequest(deliverableID string) httptransport.SubmitDeliverableRequest {
	return httptransport.SubmitDeliverableRequest{
		BrandID:       "brand-1",
		DeliverableID: deliverableID,
		SubmissionURL: "https://cdn.example.com/upload.mp4",
	}
}

func TestSubmitPreconditions(t *testing.T) {
	module := newTestModule(t)
	ctx := context.Background()

	// No accepted invitation for this creator.
	_, err := module.Handler.SubmitDeliverableHandler(ctx, "creator-2", "campaign-1", submitRequest("deliverable-1"))
	if !errors.Is(err, domainerrors.ErrNoAcceptedInvitation) {
		t.Fatalf("expected no-accepted-invitation error, got %v", err)
	}

	// Accepted invitation but the campaign is not accepting deliverables.
	_, err = module.Handler.SubmitDeliverableHandler(ctx, "creator-1", "campaign-3", submitRequest("deliverable-1"))
	if !errors.Is(err, domainerrors.ErrCampaignNotAccepting) {
		t.Fatalf("expected campaign-not-accepting error, got %v", err)
	}

	// Unknown deliverable id.
	_, err = module.Handler.SubmitDeliverableHandler(ctx, "creator-1", "campaign-1", submitRequest("deliverable-9"))
	if !errors.Is(err, domainerrors.ErrDeliverableNotFound) {
		t.Fatalf("expected deliverable-not-found, got %v", err)
	}

	created, err := module.Handler.SubmitDeliverableHandler(ctx, "creator-1", "campaign-1", submitRequest("deliverable-1"))
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if created.Submission.SubmissionID == "" || created.Submission.DeliverableID != "deliverable-1" {
		t.Fatalf("unexpected submission %+v", created.Submission)
	}
}

func TestReviewCycleAndDerivedStatus(t *testing.T) {
	module := newTestModule(t)
	ctx := context.Background()

	first, err := module.Handler.SubmitDeliverableHandler(ctx, "creator-1", "campaign-1", submitRequest("deliverable-1"))
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	progress, err := module.Handler.DeliverableProgressHandler(ctx, "campaign-1", "creator-1")
	if err != nil {
		t.Fatalf("progress failed: %v", err)
	}
	if progress.Items[0].State != "submitted" || progress.Items[1].State != "none_submitted" {
		t.Fatalf("unexpected derived states %+v", progress.Items)
	}

	// Revision request folds the deliverable back to revision_requested.
	_, err = module.Handler.ReviewSubmissionHandler(ctx, "owner-1", first.Submission.SubmissionID, httptransport.ReviewSubmissionRequest{
		BrandID:  "brand-1",
		Action:   "revision_requested",
		Feedback: "tighten the intro",
	})
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}
	progress, err = module.Handler.DeliverableProgressHandler(ctx, "campaign-1", "creator-1")
	if err != nil {
		t.Fatalf("progress failed: %v", err)
	}
	if progress.Items[0].State != "revision_requested" {
		t.Fatalf("expected revision_requested, got %s", progress.Items[0].State)
	}

	// A fresh submission supersedes the old verdict.
	second, err := module.Handler.SubmitDeliverableHandler(ctx, "creator-1", "campaign-1", submitRequest("deliverable-1"))
	if err != nil {
		t.Fatalf("resubmit failed: %v", err)
	}
	progress, err = module.Handler.DeliverableProgressHandler(ctx, "campaign-1", "creator-1")
	if err != nil {
		t.Fatalf("progress failed: %v", err)
	}
	if progress.Items[0].State != "submitted" || progress.Items[0].SubmissionCount != 2 {
		t.Fatalf("revision should append, got %+v", progress.Items[0])
	}
	if progress.Items[0].LatestSubmissionID != second.Submission.SubmissionID {
		t.Fatalf("latest submission id mismatch: %s", progress.Items[0].LatestSubmissionID)
	}

	reviews, err := module.Handler.ListReviewsHandler(ctx, first.Submission.SubmissionID)
	if err != nil {
		t.Fatalf("list reviews failed: %v", err)
	}
	if len(reviews.Items) != 1 || reviews.Items[0].Action != "revision_requested" {
		t.Fatalf("review log should be append-only and intact, got %+v", reviews.Items)
	}
}

func TestAllApprovedFlipEmitsEventOnce(t *testing.T) {
	module := newTestModule(t)
	ctx := context.Background()

	firstSub, err := module.Handler.SubmitDeliverableHandler(ctx, "creator-1", "campaign-1", submitRequest("deliverable-1"))
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	secondSub, err := module.Handler.SubmitDeliverableHandler(ctx, "creator-1", "campaign-1", submitRequest("deliverable-2"))
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	approve := func(submissionID string) {
		t.Helper()
		_, err := module.Handler.ReviewSubmissionHandler(ctx, "owner-1", submissionID, httptransport.ReviewSubmissionRequest{
			BrandID: "brand-1",
			Action:  "approved",
		})
		if err != nil {
			t.Fatalf("approve failed: %v", err)
		}
	}

	approve(firstSub.Submission.SubmissionID)
	if countOutboxEvents(t, module, "deliverables.all_approved") != 0 {
		t.Fatal("partial approval must not emit the all-approved event")
	}

	approve(secondSub.Submission.SubmissionID)
	if countOutboxEvents(t, module, "deliverables.all_approved") != 1 {
		t.Fatal("expected exactly one all-approved event after the flip")
	}

	// A redundant approval after the flip must not re-emit.
	approve(secondSub.Submission.SubmissionID)
	if countOutboxEvents(t, module, "deliverables.all_approved") != 1 {
		t.Fatal("already-approved checklist must not emit again")
	}

	allApproved, err := module.Handler.Queries.AllDeliverablesApproved(ctx, "campaign-1", "creator-1")
	if err != nil {
		t.Fatalf("all-approved query failed: %v", err)
	}
	if !allApproved {
		t.Fatal("expected derived all-approved to be true")
	}
}

func TestReviewAuthorizationAndValidation(t *testing.T) {
	module := newTestModule(t)
	ctx := context.Background()

	created, err := module.Handler.SubmitDeliverableHandler(ctx, "creator-1", "campaign-1", submitRequest("deliverable-1"))
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	_, err = module.Handler.ReviewSubmissionHandler(ctx, "finance-1", created.Submission.SubmissionID, httptransport.ReviewSubmissionRequest{
		BrandID: "brand-1",
		Action:  "approved",
	})
	if !errors.Is(err, domainerrors.ErrUnauthorizedActor) {
		t.Fatalf("finance review: expected unauthorized, got %v", err)
	}

	_, err = module.Handler.ReviewSubmissionHandler(ctx, "owner-1", created.Submission.SubmissionID, httptransport.ReviewSubmissionRequest{
		BrandID: "brand-1",
		Action:  "maybe",
	})
	if !errors.Is(err, domainerrors.ErrInvalidReviewAction) {
		t.Fatalf("expected invalid review action, got %v", err)
	}

	_, err = module.Handler.ReviewSubmissionHandler(ctx, "owner-1", "submission-missing", httptransport.ReviewSubmissionRequest{
		BrandID: "brand-1",
		Action:  "approved",
	})
	if !errors.Is(err, domainerrors.ErrSubmissionNotFound) {
		t.Fatalf("expected submission not found, got %v", err)
	}
}

func countOutboxEvents(t *testing.T, module deliverableservice.Module, eventType string) int {
	t.Helper()
	pending, err := module.Store.ListPendingOutbox(context.Background(), 100)
	if err != nil {
		t.Fatalf("list outbox failed: %v", err)
	}
	count := 0
	for _, row := range pending {
		if row.EventType == eventType {
			var payload map[string]any
			if err := json.Unmarshal(row.Payload, &payload); err != nil {
				t.Fatalf("outbox payload decode failed: %v", err)
			}
			count++
		}
	}
	return count
}
