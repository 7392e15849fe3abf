package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"lectern/internal/cocina"
	"lectern/internal/marc"
	"lectern/internal/mods"
	"lectern/internal/purl"
	"lectern/internal/services"
)

// handleMods renders the head version's descriptive metadata as MODS.
func (s *Server) handleMods(w http.ResponseWriter, r *http.Request) {
	druid := r.PathValue("druid")
	obj, err := s.store.GetObject(r.Context(), druid)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	version, err := s.store.GetVersion(r.Context(), druid, obj.HeadVersion)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	var desc cocina.Description
	if strings.TrimSpace(version.DescriptionJSON) != "" {
		if err := json.Unmarshal([]byte(version.DescriptionJSON), &desc); err != nil {
			s.writeServiceError(w, services.Wrap(services.ErrValidation, "api", "mods", druid+" stored description", err))
			return
		}
	}

	document := mods.TransformString(&desc, purl.URLFor(s.purlBase, druid))
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(document))
}

// handleMarc856 exports the catalog link field, consulting release tags for
// the released flag.
func (s *Server) handleMarc856(w http.ResponseWriter, r *http.Request) {
	druid := r.PathValue("druid")
	if _, err := s.store.GetObject(r.Context(), druid); err != nil {
		s.writeServiceError(w, err)
		return
	}
	tags, err := s.workflows.ReleaseTags(r.Context(), druid)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	field := marc.NewField856(purl.URLFor(s.purlBase, druid), marc.ReleasedToSearchworks(tags))
	s.writeJSON(w, http.StatusOK, map[string]any{
		"druid":    druid,
		"field856": field.String(),
		"released": field.Released,
	})
}
