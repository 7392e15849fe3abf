package main

import (
	"context"
	"encoding/json"
	"strings"

	"lectern/internal/client"
	"lectern/internal/cocina"
	"lectern/internal/config"
	"lectern/internal/logging"
	"lectern/internal/marc"
	"lectern/internal/mods"
	"lectern/internal/notifications"
	"lectern/internal/objects"
	"lectern/internal/purl"
	"lectern/internal/services"
	"lectern/internal/versioning"
	"lectern/internal/workflows"
)

// repository is the command-facing surface shared by the HTTP client and
// direct database access.
type repository interface {
	Register(ctx context.Context, reg client.Registration) (*client.Object, string, error)
	Object(ctx context.Context, druid string) (*client.Object, string, error)
	Versions(ctx context.Context, druid string) ([]client.Version, error)
	VersionStatus(ctx context.Context, druid string) (*client.VersionStatus, error)
	OpenVersion(ctx context.Context, druid, token, description string) (*client.Version, string, error)
	CloseVersion(ctx context.Context, druid, token string) (*client.VersionStatus, string, error)
	UserVersions(ctx context.Context, druid string) ([]client.UserVersion, error)
	CreateUserVersion(ctx context.Context, druid, token string, version int) (*client.UserVersion, string, error)
	MoveUserVersion(ctx context.Context, druid, token string, userVersion, version int) (*client.UserVersion, string, error)
	WithdrawUserVersion(ctx context.Context, druid, token string, userVersion int) (*client.UserVersion, string, error)
	RestoreUserVersion(ctx context.Context, druid, token string, userVersion int) (*client.UserVersion, string, error)
	Mods(ctx context.Context, druid string) (string, error)
	Marc856(ctx context.Context, druid string) (field string, released bool, err error)
	Close() error
}

type remoteRepository struct {
	client *client.Client
}

func (r *remoteRepository) Register(ctx context.Context, reg client.Registration) (*client.Object, string, error) {
	return r.client.Register(ctx, reg)
}

func (r *remoteRepository) Object(ctx context.Context, druid string) (*client.Object, string, error) {
	return r.client.Object(ctx, druid)
}

func (r *remoteRepository) Versions(ctx context.Context, druid string) ([]client.Version, error) {
	return r.client.Versions(ctx, druid)
}

func (r *remoteRepository) VersionStatus(ctx context.Context, druid string) (*client.VersionStatus, error) {
	return r.client.VersionStatus(ctx, druid)
}

func (r *remoteRepository) OpenVersion(ctx context.Context, druid, token, description string) (*client.Version, string, error) {
	return r.client.OpenVersion(ctx, druid, token, description)
}

func (r *remoteRepository) CloseVersion(ctx context.Context, druid, token string) (*client.VersionStatus, string, error) {
	return r.client.CloseVersion(ctx, druid, token)
}

func (r *remoteRepository) UserVersions(ctx context.Context, druid string) ([]client.UserVersion, error) {
	return r.client.UserVersions(ctx, druid)
}

func (r *remoteRepository) CreateUserVersion(ctx context.Context, druid, token string, version int) (*client.UserVersion, string, error) {
	return r.client.CreateUserVersion(ctx, druid, token, version)
}

func (r *remoteRepository) MoveUserVersion(ctx context.Context, druid, token string, userVersion, version int) (*client.UserVersion, string, error) {
	return r.client.MoveUserVersion(ctx, druid, token, userVersion, version)
}

func (r *remoteRepository) WithdrawUserVersion(ctx context.Context, druid, token string, userVersion int) (*client.UserVersion, string, error) {
	return r.client.WithdrawUserVersion(ctx, druid, token, userVersion)
}

func (r *remoteRepository) RestoreUserVersion(ctx context.Context, druid, token string, userVersion int) (*client.UserVersion, string, error) {
	return r.client.RestoreUserVersion(ctx, druid, token, userVersion)
}

func (r *remoteRepository) Mods(ctx context.Context, druid string) (string, error) {
	return r.client.Mods(ctx, druid)
}

func (r *remoteRepository) Marc856(ctx context.Context, druid string) (string, bool, error) {
	return r.client.Marc856(ctx, druid)
}

func (r *remoteRepository) Close() error { return nil }

// localRepository works directly against the object database with the same
// semantics the server exposes.
type localRepository struct {
	cfg        *config.Config
	store      *objects.Store
	versioning *versioning.Service
	workflows  workflows.Service
	notifier   notifications.Notifier
}

func openLocalRepository(cfg *config.Config) (*localRepository, error) {
	store, err := objects.Open(cfg)
	if err != nil {
		return nil, err
	}
	logger := logging.NewNop()
	wf := workflows.NewService(cfg)
	return &localRepository{
		cfg:        cfg,
		store:      store,
		versioning: versioning.NewService(store, wf, logger),
		workflows:  wf,
		notifier:   notifications.NewGoobiNotifier(cfg, logger),
	}, nil
}

func (r *localRepository) Register(ctx context.Context, reg client.Registration) (*client.Object, string, error) {
	if err := purl.Validate(reg.Druid); err != nil {
		return nil, "", services.Wrap(services.ErrValidation, "cli", "register", err.Error(), nil)
	}
	objectType := strings.TrimSpace(reg.ObjectType)
	if objectType == "" {
		objectType = "object"
	}

	obj, err := r.store.CreateObject(ctx, objects.Registration{
		Druid:           purl.Normalize(reg.Druid),
		SourceID:        strings.TrimSpace(reg.SourceID),
		ObjectType:      objectType,
		Label:           reg.Label,
		CocinaVersion:   reg.CocinaVersion,
		DescriptionJSON: string(reg.Description),
		StructuralJSON:  string(reg.Structural),
	})
	if err != nil {
		return nil, "", err
	}
	// Notification failures do not undo the registration.
	_ = r.notifier.ObjectRegistered(ctx, obj)
	return objectView(obj), obj.LockToken, nil
}

func (r *localRepository) Object(ctx context.Context, druid string) (*client.Object, string, error) {
	obj, err := r.store.GetObject(ctx, druid)
	if err != nil {
		return nil, "", err
	}
	return objectView(obj), obj.LockToken, nil
}

func (r *localRepository) Versions(ctx context.Context, druid string) ([]client.Version, error) {
	versions, err := r.versioning.Versions(ctx, druid)
	if err != nil {
		return nil, err
	}
	out := make([]client.Version, 0, len(versions))
	for _, v := range versions {
		out = append(out, versionView(v))
	}
	return out, nil
}

func (r *localRepository) VersionStatus(ctx context.Context, druid string) (*client.VersionStatus, error) {
	status, err := r.versioning.Status(ctx, druid)
	if err != nil {
		return nil, err
	}
	return statusView(status), nil
}

func (r *localRepository) OpenVersion(ctx context.Context, druid, token, description string) (*client.Version, string, error) {
	version, newToken, err := r.versioning.Open(ctx, druid, token, versioning.OpenParams{Description: description})
	if err != nil {
		return nil, "", err
	}
	view := versionView(version)
	return &view, newToken, nil
}

func (r *localRepository) CloseVersion(ctx context.Context, druid, token string) (*client.VersionStatus, string, error) {
	newToken, err := r.versioning.Close(ctx, druid, token)
	if err != nil {
		return nil, "", err
	}
	status, err := r.versioning.Status(ctx, druid)
	if err != nil {
		return nil, "", err
	}
	return statusView(status), newToken, nil
}

func (r *localRepository) UserVersions(ctx context.Context, druid string) ([]client.UserVersion, error) {
	list, err := r.versioning.UserVersions(ctx, druid)
	if err != nil {
		return nil, err
	}
	out := make([]client.UserVersion, 0, len(list))
	for _, uv := range list {
		out = append(out, userVersionView(uv))
	}
	return out, nil
}

func (r *localRepository) CreateUserVersion(ctx context.Context, druid, token string, version int) (*client.UserVersion, string, error) {
	uv, newToken, err := r.versioning.CreateUserVersion(ctx, druid, token, version)
	if err != nil {
		return nil, "", err
	}
	view := userVersionView(uv)
	return &view, newToken, nil
}

func (r *localRepository) MoveUserVersion(ctx context.Context, druid, token string, userVersion, version int) (*client.UserVersion, string, error) {
	newToken, err := r.versioning.MoveUserVersion(ctx, druid, token, userVersion, version)
	if err != nil {
		return nil, "", err
	}
	return r.userVersion(ctx, druid, userVersion, newToken)
}

func (r *localRepository) WithdrawUserVersion(ctx context.Context, druid, token string, userVersion int) (*client.UserVersion, string, error) {
	newToken, err := r.versioning.WithdrawUserVersion(ctx, druid, token, userVersion)
	if err != nil {
		return nil, "", err
	}
	return r.userVersion(ctx, druid, userVersion, newToken)
}

func (r *localRepository) RestoreUserVersion(ctx context.Context, druid, token string, userVersion int) (*client.UserVersion, string, error) {
	newToken, err := r.versioning.RestoreUserVersion(ctx, druid, token, userVersion)
	if err != nil {
		return nil, "", err
	}
	return r.userVersion(ctx, druid, userVersion, newToken)
}

func (r *localRepository) userVersion(ctx context.Context, druid string, userVersion int, token string) (*client.UserVersion, string, error) {
	uv, err := r.store.GetUserVersion(ctx, druid, userVersion)
	if err != nil {
		return nil, "", err
	}
	view := userVersionView(uv)
	return &view, token, nil
}

func (r *localRepository) Mods(ctx context.Context, druid string) (string, error) {
	obj, err := r.store.GetObject(ctx, druid)
	if err != nil {
		return "", err
	}
	version, err := r.store.GetVersion(ctx, druid, obj.HeadVersion)
	if err != nil {
		return "", err
	}

	var desc cocina.Description
	if strings.TrimSpace(version.DescriptionJSON) != "" {
		if err := json.Unmarshal([]byte(version.DescriptionJSON), &desc); err != nil {
			return "", services.Wrap(services.ErrValidation, "cli", "mods", druid+" stored description", err)
		}
	}
	return mods.TransformString(&desc, purl.URLFor(r.cfg.Purl.BaseURL, druid)), nil
}

func (r *localRepository) Marc856(ctx context.Context, druid string) (string, bool, error) {
	if _, err := r.store.GetObject(ctx, druid); err != nil {
		return "", false, err
	}
	tags, err := r.workflows.ReleaseTags(ctx, druid)
	if err != nil {
		return "", false, err
	}
	field := marc.NewField856(purl.URLFor(r.cfg.Purl.BaseURL, druid), marc.ReleasedToSearchworks(tags))
	return field.String(), field.Released, nil
}

func (r *localRepository) Close() error {
	return r.store.Close()
}

func objectView(obj *objects.RepositoryObject) *client.Object {
	return &client.Object{
		Druid:       obj.Druid,
		SourceID:    obj.SourceID,
		ObjectType:  obj.ObjectType,
		Label:       obj.Label,
		HeadVersion: obj.HeadVersion,
		CreatedAt:   obj.CreatedAt,
		UpdatedAt:   obj.UpdatedAt,
	}
}

func versionView(v *objects.Version) client.Version {
	return client.Version{
		Version:     v.Version,
		Label:       v.Label,
		Description: v.Description,
		Open:        v.Open(),
		CreatedAt:   v.CreatedAt,
		ClosedAt:    v.ClosedAt,
	}
}

func userVersionView(uv *objects.UserVersion) client.UserVersion {
	return client.UserVersion{
		UserVersion: uv.UserVersion,
		Version:     uv.Version,
		Withdrawn:   uv.Withdrawn,
	}
}

func statusView(status versioning.Status) *client.VersionStatus {
	return &client.VersionStatus{
		Druid:        status.Druid,
		Version:      status.Version,
		Open:         status.Open,
		Accessioning: status.Accessioning,
		Openable:     status.Openable,
	}
}
