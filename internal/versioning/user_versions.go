package versioning

import (
	"context"

	"lectern/internal/logging"
	"lectern/internal/objects"
)

// CreateUserVersion mints the next public user version pointing at a closed
// repository version.
func (s *Service) CreateUserVersion(ctx context.Context, druid, token string, version int) (*objects.UserVersion, string, error) {
	uv, newToken, err := s.store.CreateUserVersion(ctx, druid, token, version)
	if err != nil {
		return nil, "", err
	}
	s.logger.Info("user version created",
		logging.String(logging.FieldDruid, druid),
		logging.Int("user_version", uv.UserVersion),
		logging.Int("version", uv.Version),
	)
	return uv, newToken, nil
}

// MoveUserVersion repoints an existing user version at another closed
// repository version.
func (s *Service) MoveUserVersion(ctx context.Context, druid, token string, userVersion, version int) (string, error) {
	newToken, err := s.store.MoveUserVersion(ctx, druid, token, userVersion, version)
	if err != nil {
		return "", err
	}
	s.logger.Info("user version moved",
		logging.String(logging.FieldDruid, druid),
		logging.Int("user_version", userVersion),
		logging.Int("version", version),
	)
	return newToken, nil
}

// WithdrawUserVersion hides a user version from public view. Withdrawal is
// reversible via Restore.
func (s *Service) WithdrawUserVersion(ctx context.Context, druid, token string, userVersion int) (string, error) {
	return s.setWithdrawn(ctx, druid, token, userVersion, true)
}

// RestoreUserVersion reinstates a withdrawn user version.
func (s *Service) RestoreUserVersion(ctx context.Context, druid, token string, userVersion int) (string, error) {
	return s.setWithdrawn(ctx, druid, token, userVersion, false)
}

func (s *Service) setWithdrawn(ctx context.Context, druid, token string, userVersion int, withdrawn bool) (string, error) {
	newToken, err := s.store.SetUserVersionWithdrawn(ctx, druid, token, userVersion, withdrawn)
	if err != nil {
		return "", err
	}
	s.logger.Info("user version withdrawal changed",
		logging.String(logging.FieldDruid, druid),
		logging.Int("user_version", userVersion),
		logging.Bool("withdrawn", withdrawn),
	)
	return newToken, nil
}

// UserVersions lists the public user versions of an object.
func (s *Service) UserVersions(ctx context.Context, druid string) ([]*objects.UserVersion, error) {
	if _, err := s.store.GetObject(ctx, druid); err != nil {
		return nil, err
	}
	return s.store.ListUserVersions(ctx, druid)
}
