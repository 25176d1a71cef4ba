package httpserver

import (
	"errors"
	"net/http"

	dashboarderrors "meridian/contexts/collaboration/dashboard-service/domain/errors"
	dashboardhttp "meridian/contexts/collaboration/dashboard-service/transport/http"
)

func (s *Server) registerDashboardRoutes() {
	s.mux.HandleFunc("GET /v1/brands/{brand_id}/negotiation-queue", s.handleNegotiationQueue)
	s.mux.HandleFunc("GET /v1/creators/{creator_id}/inbox", s.handleCreatorInbox)
}

func (s *Server) handleNegotiationQueue(w http.ResponseWriter, r *http.Request) {
	resp, err := s.dashboard.Handler.NegotiationQueueHandler(r.Context(), r.PathValue("brand_id"))
	if err != nil {
		writeDashboardDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreatorInbox(w http.ResponseWriter, r *http.Request) {
	resp, err := s.dashboard.Handler.CreatorInboxHandler(r.Context(), r.PathValue("creator_id"))
	if err != nil {
		writeDashboardDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeDashboardDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dashboarderrors.ErrInvalidRequest):
		writeDashboardError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeDashboardError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeDashboardError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, dashboardhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
