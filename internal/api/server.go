package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"lectern/internal/config"
	"lectern/internal/logging"
	"lectern/internal/notifications"
	"lectern/internal/objects"
	"lectern/internal/services"
	"lectern/internal/versioning"
	"lectern/internal/workflows"
)

// Server exposes the repository API over HTTP.
type Server struct {
	bind       string
	token      string
	purlBase   string
	logger     *slog.Logger
	store      *objects.Store
	versioning *versioning.Service
	workflows  workflows.Service
	notifier   notifications.Notifier

	listener net.Listener
	server   *http.Server
}

// NewServer wires the API routes to the lifecycle service and store.
func NewServer(cfg *config.Config, store *objects.Store, vs *versioning.Service, wf workflows.Service, notifier notifications.Notifier, logger *slog.Logger) *Server {
	srv := &Server{
		bind:       strings.TrimSpace(cfg.Paths.APIBind),
		token:      strings.TrimSpace(cfg.Paths.APIToken),
		purlBase:   cfg.Purl.BaseURL,
		logger:     logging.WithComponent(logger, "api"),
		store:      store,
		versioning: vs,
		workflows:  wf,
		notifier:   notifier,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/objects", srv.auth(srv.handleRegister))
	mux.HandleFunc("GET /api/objects/{druid}", srv.auth(srv.handleGetObject))
	mux.HandleFunc("GET /api/objects/{druid}/versions", srv.auth(srv.handleListVersions))
	mux.HandleFunc("GET /api/objects/{druid}/versions/status", srv.auth(srv.handleVersionStatus))
	mux.HandleFunc("POST /api/objects/{druid}/versions/open", srv.auth(srv.handleOpenVersion))
	mux.HandleFunc("POST /api/objects/{druid}/versions/close", srv.auth(srv.handleCloseVersion))
	mux.HandleFunc("GET /api/objects/{druid}/user_versions", srv.auth(srv.handleListUserVersions))
	mux.HandleFunc("POST /api/objects/{druid}/user_versions", srv.auth(srv.handleCreateUserVersion))
	mux.HandleFunc("POST /api/objects/{druid}/user_versions/{n}/move", srv.auth(srv.handleMoveUserVersion))
	mux.HandleFunc("POST /api/objects/{druid}/user_versions/{n}/withdraw", srv.auth(srv.handleWithdrawUserVersion))
	mux.HandleFunc("POST /api/objects/{druid}/user_versions/{n}/restore", srv.auth(srv.handleRestoreUserVersion))
	mux.HandleFunc("GET /api/objects/{druid}/metadata/mods", srv.auth(srv.handleMods))
	mux.HandleFunc("GET /api/objects/{druid}/metadata/marc856", srv.auth(srv.handleMarc856))

	srv.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start begins serving and shuts the listener down when ctx is canceled.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Stop shuts the server down outside of context cancellation.
func (s *Server) Stop() {
	if s == nil {
		return
	}
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

// Addr reports the bound listener address, useful when binding to port 0.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// auth validates bearer tokens. An empty configured token disables
// authentication.
func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	if s.token == "" {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") || strings.TrimPrefix(header, "Bearer ") != s.token {
			s.writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps classified errors onto HTTP statuses.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	s.writeError(w, services.HTTPStatus(err), err.Error())
}

// ifMatch extracts the caller's lock token. A missing header means "latest".
func ifMatch(r *http.Request) string {
	return strings.Trim(strings.TrimSpace(r.Header.Get("If-Match")), `"`)
}
