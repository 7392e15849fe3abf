package versioning

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"lectern/internal/cocina"
	"lectern/internal/logging"
	"lectern/internal/objects"
	"lectern/internal/services"
	"lectern/internal/workflows"
)

// Service drives the version lifecycle of repository objects.
type Service struct {
	store     *objects.Store
	workflows workflows.Service
	logger    *slog.Logger
}

// NewService wires the lifecycle state machine to its store and workflow
// dependencies.
func NewService(store *objects.Store, wf workflows.Service, logger *slog.Logger) *Service {
	return &Service{
		store:     store,
		workflows: wf,
		logger:    logging.WithComponent(logger, "versioning"),
	}
}

// OpenParams carries optional metadata for a newly opened version.
type OpenParams struct {
	Description string
}

// Status summarizes the lifecycle position of an object.
type Status struct {
	Druid        string `json:"druid"`
	Version      int    `json:"version"`
	Open         bool   `json:"open"`
	Accessioning bool   `json:"accessioning"`
	Openable     bool   `json:"openable"`
}

// Open starts a new draft version numbered head+1, copying the descriptive
// and structural metadata forward from the latest closed version. It
// conflicts when a draft is already open or accessioning is running.
func (s *Service) Open(ctx context.Context, druid, token string, params OpenParams) (*objects.Version, string, error) {
	obj, err := s.store.GetObject(ctx, druid)
	if err != nil {
		return nil, "", err
	}

	open, err := s.store.OpenVersion(ctx, druid)
	if err != nil {
		return nil, "", err
	}
	if open != nil {
		return nil, "", services.Wrap(services.ErrConflict, "versioning", "open", fmt.Sprintf("%s is already open for versioning", druid), nil)
	}

	accessioning, err := s.workflows.AccessioningInProgress(ctx, druid)
	if err != nil {
		return nil, "", err
	}
	if accessioning {
		return nil, "", services.Wrap(services.ErrConflict, "versioning", "open", fmt.Sprintf("%s is being accessioned", druid), nil)
	}

	latest, err := s.store.GetVersion(ctx, druid, obj.HeadVersion)
	if err != nil {
		return nil, "", err
	}

	description := strings.TrimSpace(params.Description)
	if description == "" {
		description = "version opened"
	}
	version, newToken, err := s.store.CreateVersion(ctx, druid, token, objects.VersionParams{
		Label:           latest.Label,
		Description:     description,
		CocinaVersion:   latest.CocinaVersion,
		DescriptionJSON: latest.DescriptionJSON,
		StructuralJSON:  latest.StructuralJSON,
	})
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("version opened",
		logging.String(logging.FieldDruid, druid),
		logging.Int("version", version.Version),
	)
	return version, newToken, nil
}

// Close finalizes the open draft. The stored descriptive metadata must pass
// strict validation; on failure the draft stays open and the error carries
// the offending document.
func (s *Service) Close(ctx context.Context, druid, token string) (string, error) {
	open, err := s.store.OpenVersion(ctx, druid)
	if err != nil {
		return "", err
	}
	if open == nil {
		return "", services.Wrap(services.ErrConflict, "versioning", "close", fmt.Sprintf("%s is not open for versioning", druid), nil)
	}

	if err := validateDescription(open.DescriptionJSON); err != nil {
		return "", services.Wrap(services.ErrValidation, "versioning", "close", fmt.Sprintf("%s v%d description", druid, open.Version), err)
	}

	newToken, err := s.store.CloseOpenVersion(ctx, druid, token)
	if err != nil {
		return "", err
	}

	s.logger.Info("version closed",
		logging.String(logging.FieldDruid, druid),
		logging.Int("version", open.Version),
	)
	return newToken, nil
}

// CanOpen reports whether a new version could be opened right now: at least
// one closed version exists, nothing is open, and accessioning is idle.
func (s *Service) CanOpen(ctx context.Context, druid string) (bool, error) {
	status, err := s.Status(ctx, druid)
	if err != nil {
		return false, err
	}
	return status.Openable, nil
}

// Status reports the object's lifecycle position in one call.
func (s *Service) Status(ctx context.Context, druid string) (Status, error) {
	obj, err := s.store.GetObject(ctx, druid)
	if err != nil {
		return Status{}, err
	}

	open, err := s.store.OpenVersion(ctx, druid)
	if err != nil {
		return Status{}, err
	}

	accessioning, err := s.workflows.AccessioningInProgress(ctx, druid)
	if err != nil {
		return Status{}, err
	}

	hasClosed := false
	versions, err := s.store.ListVersions(ctx, druid)
	if err != nil {
		return Status{}, err
	}
	for _, v := range versions {
		if !v.Open() {
			hasClosed = true
			break
		}
	}

	return Status{
		Druid:        obj.Druid,
		Version:      obj.HeadVersion,
		Open:         open != nil,
		Accessioning: accessioning,
		Openable:     hasClosed && open == nil && !accessioning,
	}, nil
}

// Versions lists every version of the object in ascending order.
func (s *Service) Versions(ctx context.Context, druid string) ([]*objects.Version, error) {
	if _, err := s.store.GetObject(ctx, druid); err != nil {
		return nil, err
	}
	return s.store.ListVersions(ctx, druid)
}

// validateDescription applies the strict one-of gate to the stored document.
func validateDescription(descriptionJSON string) error {
	if strings.TrimSpace(descriptionJSON) == "" {
		return nil
	}
	var desc cocina.Description
	if err := json.Unmarshal([]byte(descriptionJSON), &desc); err != nil {
		return fmt.Errorf("parse description: %w", err)
	}
	return desc.Validate()
}
