package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	campaignservice "meridian/contexts/collaboration/campaign-service"
	dashboardservice "meridian/contexts/collaboration/dashboard-service"
	deliverableservice "meridian/contexts/collaboration/deliverable-service"
	invitationservice "meridian/contexts/collaboration/invitation-service"
	accessservice "meridian/contexts/identity-access/access-service"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "meridian/internal/platform/httpserver/docs"
)

type Server struct {
	mux    *http.ServeMux
	logger *slog.Logger
	addr   string

	campaigns    campaignservice.Module
	invitations  invitationservice.Module
	deliverables deliverableservice.Module
	access       accessservice.Module
	dashboard    dashboardservice.Module
}

func New(
	campaigns campaignservice.Module,
	invitations invitationservice.Module,
	deliverables deliverableservice.Module,
	access accessservice.Module,
	dashboard dashboardservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:          http.NewServeMux(),
		logger:       logger,
		addr:         addr,
		campaigns:    campaigns,
		invitations:  invitations,
		deliverables: deliverables,
		access:       access,
		dashboard:    dashboard,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the mux for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.registerCampaignRoutes()
	s.registerInvitationRoutes()
	s.registerDeliverableRoutes()
	s.registerAccessRoutes()
	s.registerDashboardRoutes()
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func principalID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-User-Id"))
}
