package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	campaignerrors "meridian/contexts/collaboration/campaign-service/domain/errors"
	campaignhttp "meridian/contexts/collaboration/campaign-service/transport/http"
)

func (s *Server) registerCampaignRoutes() {
	s.mux.HandleFunc("POST /v1/campaigns", s.handleCreateCampaign)
	s.mux.HandleFunc("GET /v1/campaigns", s.handleListCampaigns)
	s.mux.HandleFunc("GET /v1/campaigns/{campaign_id}", s.handleGetCampaign)
	s.mux.HandleFunc("POST /v1/campaigns/{campaign_id}/status", s.handleChangeCampaignStatus)
	s.mux.HandleFunc("PUT /v1/campaigns/{campaign_id}/deliverables", s.handleDefineDeliverables)
	s.mux.HandleFunc("GET /v1/campaigns/{campaign_id}/history", s.handleCampaignHistory)
}

func (s *Server) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireCampaignUser(w, r)
	if !ok {
		return
	}
	var req campaignhttp.CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCampaignError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.campaigns.Handler.CreateCampaignHandler(r.Context(), actorID, req)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	resp, err := s.campaigns.Handler.ListCampaignsHandler(r.Context(), query.Get("brand_id"), query.Get("status"))
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	resp, err := s.campaigns.Handler.GetCampaignHandler(r.Context(), r.PathValue("campaign_id"))
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleChangeCampaignStatus(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireCampaignUser(w, r)
	if !ok {
		return
	}
	var req campaignhttp.ChangeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCampaignError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.campaigns.Handler.ChangeStatusHandler(r.Context(), actorID, r.PathValue("campaign_id"), req)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDefineDeliverables(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireCampaignUser(w, r)
	if !ok {
		return
	}
	var req campaignhttp.DefineDeliverablesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCampaignError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.campaigns.Handler.DefineDeliverablesHandler(r.Context(), actorID, r.PathValue("campaign_id"), req); err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCampaignHistory(w http.ResponseWriter, r *http.Request) {
	resp, err := s.campaigns.Handler.ListStateHistoryHandler(r.Context(), r.PathValue("campaign_id"))
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func requireCampaignUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	actorID := principalID(r)
	if actorID == "" {
		writeCampaignError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return "", false
	}
	return actorID, true
}

func writeCampaignDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, campaignerrors.ErrCampaignNotFound):
		writeCampaignError(w, http.StatusNotFound, "campaign_not_found", err.Error())
	case errors.Is(err, campaignerrors.ErrInvalidStateTransition):
		writeCampaignError(w, http.StatusConflict, "invalid_state_transition", err.Error())
	case errors.Is(err, campaignerrors.ErrDeliverablesLocked):
		writeCampaignError(w, http.StatusConflict, "deliverables_locked", err.Error())
	case errors.Is(err, campaignerrors.ErrUnauthorizedActor):
		writeCampaignError(w, http.StatusForbidden, "unauthorized_actor", err.Error())
	case errors.Is(err, campaignerrors.ErrInvalidCampaignInput):
		writeCampaignError(w, http.StatusBadRequest, "invalid_campaign_input", err.Error())
	default:
		writeCampaignError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeCampaignError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, campaignhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
