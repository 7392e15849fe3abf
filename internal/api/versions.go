package api

import (
	"encoding/json"
	"net/http"

	"lectern/internal/versioning"
)

func (s *Server) handleListVersions(w http.ResponseWriter, r *http.Request) {
	versions, err := s.versioning.Versions(r.Context(), r.PathValue("druid"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	out := make([]VersionResponse, 0, len(versions))
	for _, v := range versions {
		out = append(out, fromVersion(v))
	}
	s.writeJSON(w, http.StatusOK, map[string][]VersionResponse{"versions": out})
}

func (s *Server) handleVersionStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.versioning.Status(r.Context(), r.PathValue("druid"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleOpenVersion(w http.ResponseWriter, r *http.Request) {
	var req OpenVersionRequest
	if r.Body != nil {
		// The body is optional; decode errors on an empty body are ignored.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	version, token, err := s.versioning.Open(r.Context(), r.PathValue("druid"), ifMatch(r), versioning.OpenParams{
		Description: req.Description,
	})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.Header().Set("ETag", etag(token))
	s.writeJSON(w, http.StatusCreated, fromVersion(version))
}

func (s *Server) handleCloseVersion(w http.ResponseWriter, r *http.Request) {
	druid := r.PathValue("druid")
	token, err := s.versioning.Close(r.Context(), druid, ifMatch(r))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	status, err := s.versioning.Status(r.Context(), druid)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.Header().Set("ETag", etag(token))
	s.writeJSON(w, http.StatusOK, status)
}
