package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	invitationerrors "meridian/contexts/collaboration/invitation-service/domain/errors"
	invitationhttp "meridian/contexts/collaboration/invitation-service/transport/http"
)

func (s *Server) registerInvitationRoutes() {
	s.mux.HandleFunc("POST /v1/campaigns/{campaign_id}/invitations", s.handleInviteCreator)
	s.mux.HandleFunc("GET /v1/invitations", s.handleListInvitations)
	s.mux.HandleFunc("GET /v1/invitations/{invitation_id}", s.handleGetInvitation)
	s.mux.HandleFunc("POST /v1/invitations/{invitation_id}/negotiate", s.handleNegotiate)
	s.mux.HandleFunc("POST /v1/invitations/{invitation_id}/counter-offer", s.handleCounterOffer)
	s.mux.HandleFunc("POST /v1/invitations/{invitation_id}/accept", s.handleAcceptInvitation)
	s.mux.HandleFunc("POST /v1/invitations/{invitation_id}/decline", s.handleDeclineInvitation)
	s.mux.HandleFunc("POST /v1/invitations/{invitation_id}/withdraw", s.handleWithdrawInvitation)
	s.mux.HandleFunc("GET /v1/campaigns/{campaign_id}/tracking-links", s.handleListTrackingLinks)
}

func (s *Server) handleInviteCreator(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireInvitationUser(w, r)
	if !ok {
		return
	}
	var req invitationhttp.InviteCreatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvitationError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.invitations.Handler.InviteCreatorHandler(r.Context(), actorID, r.PathValue("campaign_id"), req)
	if err != nil {
		writeInvitationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListInvitations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	resp, err := s.invitations.Handler.ListInvitationsHandler(
		r.Context(),
		query.Get("brand_id"),
		query.Get("campaign_id"),
		query.Get("creator_id"),
		query.Get("status"),
	)
	if err != nil {
		writeInvitationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetInvitation(w http.ResponseWriter, r *http.Request) {
	resp, err := s.invitations.Handler.GetInvitationHandler(r.Context(), r.PathValue("invitation_id"))
	if err != nil {
		writeInvitationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleNegotiate(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireInvitationUser(w, r)
	if !ok {
		return
	}
	var req invitationhttp.NegotiateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvitationError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.invitations.Handler.NegotiateHandler(r.Context(), actorID, r.PathValue("invitation_id"), req)
	if err != nil {
		writeInvitationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCounterOffer(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireInvitationUser(w, r)
	if !ok {
		return
	}
	var req invitationhttp.CounterOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvitationError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.invitations.Handler.CounterOfferHandler(r.Context(), actorID, r.PathValue("invitation_id"), req)
	if err != nil {
		writeInvitationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAcceptInvitation(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireInvitationUser(w, r)
	if !ok {
		return
	}
	resp, err := s.invitations.Handler.AcceptHandler(r.Context(), actorID, r.PathValue("invitation_id"))
	if err != nil {
		writeInvitationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeclineInvitation(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireInvitationUser(w, r)
	if !ok {
		return
	}
	resp, err := s.invitations.Handler.DeclineHandler(r.Context(), actorID, r.PathValue("invitation_id"))
	if err != nil {
		writeInvitationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWithdrawInvitation(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireInvitationUser(w, r)
	if !ok {
		return
	}
	resp, err := s.invitations.Handler.WithdrawHandler(r.Context(), actorID, r.PathValue("invitation_id"))
	if err != nil {
		writeInvitationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListTrackingLinks(w http.ResponseWriter, r *http.Request) {
	resp, err := s.invitations.Handler.ListTrackingLinksHandler(
		r.Context(),
		r.PathValue("campaign_id"),
		r.URL.Query().Get("creator_id"),
	)
	if err != nil {
		writeInvitationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func requireInvitationUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	actorID := principalID(r)
	if actorID == "" {
		writeInvitationError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return "", false
	}
	return actorID, true
}

func writeInvitationDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, invitationerrors.ErrInvitationNotFound),
		errors.Is(err, invitationerrors.ErrTrackingLinkNotFound):
		writeInvitationError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, invitationerrors.ErrInvalidStatusTransition):
		writeInvitationError(w, http.StatusConflict, "invalid_status_transition", err.Error())
	case errors.Is(err, invitationerrors.ErrTransitionConflict):
		writeInvitationError(w, http.StatusConflict, "transition_conflict", err.Error())
	case errors.Is(err, invitationerrors.ErrDuplicateInvitation):
		writeInvitationError(w, http.StatusConflict, "duplicate_invitation", err.Error())
	case errors.Is(err, invitationerrors.ErrUnauthorizedActor):
		writeInvitationError(w, http.StatusForbidden, "unauthorized_actor", err.Error())
	case errors.Is(err, invitationerrors.ErrInvalidInvitationInput):
		writeInvitationError(w, http.StatusBadRequest, "invalid_invitation_input", err.Error())
	default:
		writeInvitationError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeInvitationError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, invitationhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
