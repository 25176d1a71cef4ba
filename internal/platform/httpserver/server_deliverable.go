package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	deliverableerrors "meridian/contexts/collaboration/deliverable-service/domain/errors"
	deliverablehttp "meridian/contexts/collaboration/deliverable-service/transport/http"
)

func (s *Server) registerDeliverableRoutes() {
	s.mux.HandleFunc("POST /v1/campaigns/{campaign_id}/submissions", s.handleSubmitDeliverable)
	s.mux.HandleFunc("GET /v1/submissions", s.handleListSubmissions)
	s.mux.HandleFunc("POST /v1/submissions/{submission_id}/reviews", s.handleReviewSubmission)
	s.mux.HandleFunc("GET /v1/submissions/{submission_id}/reviews", s.handleListReviews)
	s.mux.HandleFunc("GET /v1/campaigns/{campaign_id}/creators/{creator_id}/progress", s.handleDeliverableProgress)
}

func (s *Server) handleSubmitDeliverable(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireDeliverableUser(w, r)
	if !ok {
		return
	}
	var req deliverablehttp.SubmitDeliverableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDeliverableError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.deliverables.Handler.SubmitDeliverableHandler(r.Context(), actorID, r.PathValue("campaign_id"), req)
	if err != nil {
		writeDeliverableDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	resp, err := s.deliverables.Handler.ListSubmissionsHandler(r.Context(), query.Get("campaign_id"), query.Get("creator_id"))
	if err != nil {
		writeDeliverableDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReviewSubmission(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireDeliverableUser(w, r)
	if !ok {
		return
	}
	var req deliverablehttp.ReviewSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDeliverableError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.deliverables.Handler.ReviewSubmissionHandler(r.Context(), actorID, r.PathValue("submission_id"), req)
	if err != nil {
		writeDeliverableDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	resp, err := s.deliverables.Handler.ListReviewsHandler(r.Context(), r.PathValue("submission_id"))
	if err != nil {
		writeDeliverableDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeliverableProgress(w http.ResponseWriter, r *http.Request) {
	resp, err := s.deliverables.Handler.DeliverableProgressHandler(
		r.Context(),
		r.PathValue("campaign_id"),
		r.PathValue("creator_id"),
	)
	if err != nil {
		writeDeliverableDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func requireDeliverableUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	actorID := principalID(r)
	if actorID == "" {
		writeDeliverableError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return "", false
	}
	return actorID, true
}

func writeDeliverableDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, deliverableerrors.ErrDeliverableNotFound),
		errors.Is(err, deliverableerrors.ErrSubmissionNotFound):
		writeDeliverableError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, deliverableerrors.ErrNoAcceptedInvitation):
		writeDeliverableError(w, http.StatusUnprocessableEntity, "no_accepted_invitation", err.Error())
	case errors.Is(err, deliverableerrors.ErrCampaignNotAccepting):
		writeDeliverableError(w, http.StatusUnprocessableEntity, "campaign_not_accepting", err.Error())
	case errors.Is(err, deliverableerrors.ErrUnauthorizedActor):
		writeDeliverableError(w, http.StatusForbidden, "unauthorized_actor", err.Error())
	case errors.Is(err, deliverableerrors.ErrInvalidReviewAction):
		writeDeliverableError(w, http.StatusBadRequest, "invalid_review_action", err.Error())
	case errors.Is(err, deliverableerrors.ErrInvalidSubmissionInput):
		writeDeliverableError(w, http.StatusBadRequest, "invalid_submission_input", err.Error())
	default:
		writeDeliverableError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeDeliverableError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, deliverablehttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
