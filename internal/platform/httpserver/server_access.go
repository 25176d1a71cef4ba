package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	accesserrors "meridian/contexts/identity-access/access-service/domain/errors"
	accesshttp "meridian/contexts/identity-access/access-service/transport/http"
)

func (s *Server) registerAccessRoutes() {
	s.mux.HandleFunc("GET /v1/access/resolve", s.handleResolveAccess)
	s.mux.HandleFunc("POST /v1/campaigns/{campaign_id}/managers", s.handleAssignManager)
	s.mux.HandleFunc("DELETE /v1/campaigns/{campaign_id}/managers/{user_id}", s.handleRevokeManager)
	s.mux.HandleFunc("POST /v1/brands/{brand_id}/memberships", s.handleAddMembership)
	s.mux.HandleFunc("GET /v1/brands/{brand_id}/memberships", s.handleListMemberships)
}

func (s *Server) handleResolveAccess(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireAccessUser(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()
	resp, err := s.access.Handler.ResolveAccessHandler(r.Context(), actorID, query.Get("brand_id"), query.Get("campaign_id"))
	if err != nil {
		writeAccessDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAssignManager(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireAccessUser(w, r)
	if !ok {
		return
	}
	var req accesshttp.AssignManagerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAccessError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	req.CampaignID = r.PathValue("campaign_id")
	resp, err := s.access.Handler.AssignManagerHandler(r.Context(), actorID, req)
	if err != nil {
		writeAccessDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleRevokeManager(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireAccessUser(w, r)
	if !ok {
		return
	}
	req := accesshttp.RevokeManagerRequest{
		BrandID:    r.URL.Query().Get("brand_id"),
		CampaignID: r.PathValue("campaign_id"),
		UserID:     r.PathValue("user_id"),
	}
	if err := s.access.Handler.RevokeManagerHandler(r.Context(), actorID, req); err != nil {
		writeAccessDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddMembership(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireAccessUser(w, r)
	if !ok {
		return
	}
	var req accesshttp.AddMembershipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAccessError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.access.Handler.AddMembershipHandler(r.Context(), actorID, r.PathValue("brand_id"), req)
	if err != nil {
		writeAccessDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListMemberships(w http.ResponseWriter, r *http.Request) {
	resp, err := s.access.Handler.ListMembershipsHandler(r.Context(), r.PathValue("brand_id"))
	if err != nil {
		writeAccessDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func requireAccessUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	actorID := principalID(r)
	if actorID == "" {
		writeAccessError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return "", false
	}
	return actorID, true
}

func writeAccessDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, accesserrors.ErrBrandNotFound),
		errors.Is(err, accesserrors.ErrMembershipNotFound),
		errors.Is(err, accesserrors.ErrAssignmentNotFound):
		writeAccessError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, accesserrors.ErrUnauthorizedActor):
		writeAccessError(w, http.StatusForbidden, "unauthorized_actor", err.Error())
	case errors.Is(err, accesserrors.ErrManagerRoleRequired):
		writeAccessError(w, http.StatusUnprocessableEntity, "manager_role_required", err.Error())
	case errors.Is(err, accesserrors.ErrInvalidAccessInput):
		writeAccessError(w, http.StatusBadRequest, "invalid_access_input", err.Error())
	default:
		writeAccessError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeAccessError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, accesshttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
