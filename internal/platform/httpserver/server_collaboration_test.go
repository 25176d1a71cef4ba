package httpserver_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	campaignhttp "meridian/contexts/collaboration/campaign-service/transport/http"
	dashboardhttp "meridian/contexts/collaboration/dashboard-service/transport/http"
	deliverablehttp "meridian/contexts/collaboration/deliverable-service/transport/http"
	invitationhttp "meridian/contexts/collaboration/invitation-service/transport/http"
	accessentities "meridian/contexts/identity-access/access-service/domain/entities"
	"meridian/internal/app/bootstrap"
	"meridian/internal/platform/httpserver"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	modules := bootstrap.NewInMemoryModules(
		[]accessentities.Brand{{BrandID: "brand-1", OwnerUserID: "owner-1", Name: "Northwind"}},
		nil,
		"https://links.example.com",
		logger,
	)
	server := httpserver.New(
		modules.Campaigns,
		modules.Invitations,
		modules.Deliverables,
		modules.Access,
		modules.Dashboard,
		logger,
		"",
	)
	return server.Handler()
}

func call(t *testing.T, handler http.Handler, method, target, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(recorder.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", recorder.Body.String(), err)
	}
	return out
}

func TestCollaborationFlowOverHTTP(t *testing.T) {
	handler := newTestHandler(t)

	// Brand owner sets up the campaign and its checklist while still in draft.
	rec := call(t, handler, http.MethodPost, "/v1/campaigns", "owner-1", campaignhttp.CreateCampaignRequest{
		BrandID:     "brand-1",
		Title:       "Autumn collection",
		BudgetTotal: 40000,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create campaign: got %d body %s", rec.Code, rec.Body.String())
	}
	campaign := decodeBody[campaignhttp.CampaignResponse](t, rec).Campaign
	if campaign.Status != "draft" {
		t.Fatalf("new campaign status = %q", campaign.Status)
	}
	campaignID := campaign.CampaignID

	rec = call(t, handler, http.MethodPut, "/v1/campaigns/"+campaignID+"/deliverables", "owner-1", campaignhttp.DefineDeliverablesRequest{
		Deliverables: []campaignhttp.DeliverableDefinitionDTO{
			{Index: 0, Title: "Launch video", Type: "video"},
		},
	})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("define deliverables: got %d body %s", rec.Code, rec.Body.String())
	}

	rec = call(t, handler, http.MethodPost, "/v1/campaigns/"+campaignID+"/status", "owner-1", campaignhttp.ChangeStatusRequest{ToStatus: "discovery"})
	if rec.Code != http.StatusOK {
		t.Fatalf("move to discovery: got %d body %s", rec.Code, rec.Body.String())
	}

	// Two invitations: creator-1 accepts, creator-2 opens a negotiation.
	invite := func(creatorID string) string {
		rec := call(t, handler, http.MethodPost, "/v1/campaigns/"+campaignID+"/invitations", "owner-1", invitationhttp.InviteCreatorRequest{
			BrandID:       "brand-1",
			CreatorID:     creatorID,
			OfferedPayout: 900,
			Deliverables: []invitationhttp.DeliverableSpecDTO{
				{Index: 0, Title: "Launch video", Type: "video"},
			},
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("invite %s: got %d body %s", creatorID, rec.Code, rec.Body.String())
		}
		return decodeBody[invitationhttp.InvitationResponse](t, rec).Invitation.InvitationID
	}
	acceptedInvitation := invite("creator-1")
	negotiatingInvitation := invite("creator-2")

	rec = call(t, handler, http.MethodPost, "/v1/invitations/"+acceptedInvitation+"/accept", "creator-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("accept invitation: got %d body %s", rec.Code, rec.Body.String())
	}
	accepted := decodeBody[invitationhttp.AcceptInvitationResponse](t, rec)
	if accepted.Invitation.Status != "accepted" {
		t.Fatalf("invitation status = %q", accepted.Invitation.Status)
	}
	if !strings.HasPrefix(accepted.TrackingLink.URL, "https://links.example.com/") {
		t.Fatalf("tracking link URL = %q", accepted.TrackingLink.URL)
	}

	rec = call(t, handler, http.MethodPost, "/v1/invitations/"+negotiatingInvitation+"/negotiate", "creator-2", invitationhttp.NegotiateRequest{Delta: 150})
	if rec.Code != http.StatusOK {
		t.Fatalf("negotiate: got %d body %s", rec.Code, rec.Body.String())
	}

	rec = call(t, handler, http.MethodPost, "/v1/campaigns/"+campaignID+"/status", "owner-1", campaignhttp.ChangeStatusRequest{ToStatus: "active"})
	if rec.Code != http.StatusOK {
		t.Fatalf("move to active: got %d body %s", rec.Code, rec.Body.String())
	}

	// Creator submits against the checklist and the owner approves.
	rec = call(t, handler, http.MethodGet, "/v1/campaigns/"+campaignID+"/creators/creator-1/progress", "creator-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("progress before submit: got %d body %s", rec.Code, rec.Body.String())
	}
	progress := decodeBody[deliverablehttp.DeliverableProgressResponse](t, rec)
	if len(progress.Items) != 1 || progress.Items[0].State != "none_submitted" {
		t.Fatalf("unexpected initial progress: %+v", progress)
	}
	deliverableID := progress.Items[0].DeliverableID

	rec = call(t, handler, http.MethodPost, "/v1/campaigns/"+campaignID+"/submissions", "creator-1", deliverablehttp.SubmitDeliverableRequest{
		BrandID:       "brand-1",
		DeliverableID: deliverableID,
		SubmissionURL: "https://cdn.example.com/launch.mp4",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit deliverable: got %d body %s", rec.Code, rec.Body.String())
	}
	submission := decodeBody[deliverablehttp.SubmissionResponse](t, rec).Submission

	rec = call(t, handler, http.MethodPost, "/v1/submissions/"+submission.SubmissionID+"/reviews", "owner-1", deliverablehttp.ReviewSubmissionRequest{
		BrandID: "brand-1",
		Action:  "approved",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("review submission: got %d body %s", rec.Code, rec.Body.String())
	}

	rec = call(t, handler, http.MethodGet, "/v1/campaigns/"+campaignID+"/creators/creator-1/progress", "owner-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("progress after review: got %d body %s", rec.Code, rec.Body.String())
	}
	progress = decodeBody[deliverablehttp.DeliverableProgressResponse](t, rec)
	if !progress.AllApproved || progress.Items[0].State != "approved" {
		t.Fatalf("unexpected final progress: %+v", progress)
	}

	// Projections reflect the same state.
	rec = call(t, handler, http.MethodGet, "/v1/brands/brand-1/negotiation-queue", "owner-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("negotiation queue: got %d body %s", rec.Code, rec.Body.String())
	}
	queue := decodeBody[dashboardhttp.NegotiationQueueResponse](t, rec)
	if queue.PendingCount != 0 || queue.NegotiatingCount != 1 || len(queue.Entries) != 1 {
		t.Fatalf("unexpected queue: %+v", queue)
	}
	if queue.Entries[0].InvitationID != negotiatingInvitation {
		t.Fatalf("queue entry = %q", queue.Entries[0].InvitationID)
	}

	rec = call(t, handler, http.MethodGet, "/v1/creators/creator-1/inbox", "creator-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("creator inbox: got %d body %s", rec.Code, rec.Body.String())
	}
	inbox := decodeBody[dashboardhttp.CreatorInboxResponse](t, rec)
	if len(inbox.Entries) != 1 {
		t.Fatalf("inbox entries = %d", len(inbox.Entries))
	}
	entry := inbox.Entries[0]
	if entry.Status != "accepted" || entry.CampaignTitle != "Autumn collection" {
		t.Fatalf("unexpected inbox entry: %+v", entry)
	}
	if entry.Progress == nil || !entry.Progress.AllApproved {
		t.Fatalf("inbox progress not derived: %+v", entry.Progress)
	}
}

func TestMissingPrincipalRejected(t *testing.T) {
	handler := newTestHandler(t)

	rec := call(t, handler, http.MethodPost, "/v1/campaigns", "", campaignhttp.CreateCampaignRequest{
		BrandID:     "brand-1",
		Title:       "No principal",
		BudgetTotal: 100,
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want 401", rec.Code)
	}
}

func TestNonMemberCannotCreateCampaign(t *testing.T) {
	handler := newTestHandler(t)

	rec := call(t, handler, http.MethodPost, "/v1/campaigns", "stranger-1", campaignhttp.CreateCampaignRequest{
		BrandID:     "brand-1",
		Title:       "Hijack attempt",
		BudgetTotal: 100,
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("got %d body %s, want 403", rec.Code, rec.Body.String())
	}
}

func TestSubmitWithoutAcceptedInvitationRejected(t *testing.T) {
	handler := newTestHandler(t)

	rec := call(t, handler, http.MethodPost, "/v1/campaigns", "owner-1", campaignhttp.CreateCampaignRequest{
		BrandID:     "brand-1",
		Title:       "Gated campaign",
		BudgetTotal: 5000,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create campaign: got %d body %s", rec.Code, rec.Body.String())
	}
	campaignID := decodeBody[campaignhttp.CampaignResponse](t, rec).Campaign.CampaignID

	rec = call(t, handler, http.MethodPost, "/v1/campaigns/"+campaignID+"/submissions", "creator-9", deliverablehttp.SubmitDeliverableRequest{
		BrandID:       "brand-1",
		DeliverableID: "deliverable-1",
		SubmissionURL: "https://cdn.example.com/clip.mp4",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("got %d body %s, want 422", rec.Code, rec.Body.String())
	}
}
