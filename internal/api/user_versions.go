package api

import (
	"encoding/json"
	"net/http"
	"strconv"
)

func (s *Server) handleListUserVersions(w http.ResponseWriter, r *http.Request) {
	list, err := s.versioning.UserVersions(r.Context(), r.PathValue("druid"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	out := make([]UserVersionResponse, 0, len(list))
	for _, uv := range list {
		out = append(out, fromUserVersion(uv))
	}
	s.writeJSON(w, http.StatusOK, map[string][]UserVersionResponse{"userVersions": out})
}

func (s *Server) handleCreateUserVersion(w http.ResponseWriter, r *http.Request) {
	var req UserVersionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	uv, token, err := s.versioning.CreateUserVersion(r.Context(), r.PathValue("druid"), ifMatch(r), req.Version)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.Header().Set("ETag", etag(token))
	s.writeJSON(w, http.StatusCreated, fromUserVersion(uv))
}

func (s *Server) handleMoveUserVersion(w http.ResponseWriter, r *http.Request) {
	userVersion, ok := s.userVersionNumber(w, r)
	if !ok {
		return
	}
	var req UserVersionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	druid := r.PathValue("druid")
	token, err := s.versioning.MoveUserVersion(r.Context(), druid, ifMatch(r), userVersion, req.Version)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.respondUserVersion(w, r, druid, userVersion, token)
}

func (s *Server) handleWithdrawUserVersion(w http.ResponseWriter, r *http.Request) {
	userVersion, ok := s.userVersionNumber(w, r)
	if !ok {
		return
	}
	druid := r.PathValue("druid")
	token, err := s.versioning.WithdrawUserVersion(r.Context(), druid, ifMatch(r), userVersion)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.respondUserVersion(w, r, druid, userVersion, token)
}

func (s *Server) handleRestoreUserVersion(w http.ResponseWriter, r *http.Request) {
	userVersion, ok := s.userVersionNumber(w, r)
	if !ok {
		return
	}
	druid := r.PathValue("druid")
	token, err := s.versioning.RestoreUserVersion(r.Context(), druid, ifMatch(r), userVersion)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.respondUserVersion(w, r, druid, userVersion, token)
}

func (s *Server) userVersionNumber(w http.ResponseWriter, r *http.Request) (int, bool) {
	n, err := strconv.Atoi(r.PathValue("n"))
	if err != nil || n < 1 {
		s.writeError(w, http.StatusBadRequest, "invalid user version number")
		return 0, false
	}
	return n, true
}

func (s *Server) respondUserVersion(w http.ResponseWriter, r *http.Request, druid string, userVersion int, token string) {
	uv, err := s.store.GetUserVersion(r.Context(), druid, userVersion)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.Header().Set("ETag", etag(token))
	s.writeJSON(w, http.StatusOK, fromUserVersion(uv))
}
