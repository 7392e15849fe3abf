package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"lectern/internal/logging"
	"lectern/internal/objects"
	"lectern/internal/purl"
)

// handleRegister mints a new repository object with version 1 open and
// notifies Goobi when enabled. Notification failures are logged but do not
// fail the registration.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := purl.Validate(req.Druid); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Label) == "" {
		s.writeError(w, http.StatusBadRequest, "label is required")
		return
	}
	objectType := strings.TrimSpace(req.ObjectType)
	if objectType == "" {
		objectType = "object"
	}

	obj, err := s.store.CreateObject(r.Context(), objects.Registration{
		Druid:           purl.Normalize(req.Druid),
		SourceID:        strings.TrimSpace(req.SourceID),
		ObjectType:      objectType,
		Label:           req.Label,
		CocinaVersion:   req.CocinaVersion,
		DescriptionJSON: string(req.Description),
		StructuralJSON:  string(req.Structural),
	})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	if err := s.notifier.ObjectRegistered(r.Context(), obj); err != nil {
		s.logger.Warn("registration notification failed",
			logging.String(logging.FieldDruid, obj.Druid),
			logging.Error(err),
		)
	}

	w.Header().Set("ETag", etag(obj.LockToken))
	s.writeJSON(w, http.StatusCreated, fromObject(obj))
}

// handleGetObject returns the object with its lock token as the ETag.
func (s *Server) handleGetObject(w http.ResponseWriter, r *http.Request) {
	obj, err := s.store.GetObject(r.Context(), r.PathValue("druid"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.Header().Set("ETag", etag(obj.LockToken))
	s.writeJSON(w, http.StatusOK, fromObject(obj))
}

func etag(token string) string {
	return `"` + token + `"`
}
