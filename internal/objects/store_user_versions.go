package objects

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lectern/internal/services"
)

// CreateUserVersion mints the next user version pointing at a closed
// repository version.
func (s *Store) CreateUserVersion(ctx context.Context, druid, token string, version int) (*UserVersion, string, error) {
	var created int
	newToken, err := s.withLock(ctx, druid, token, func(tx execer, obj *RepositoryObject) error {
		if err := s.requireClosedVersion(ctx, tx, druid, version); err != nil {
			return err
		}

		var max sql.NullInt64
		row := tx.QueryRowContext(ctx, `SELECT MAX(user_version) FROM user_versions WHERE druid = ?`, druid)
		if err := row.Scan(&max); err != nil {
			return fmt.Errorf("max user version: %w", err)
		}
		next := int(max.Int64) + 1

		timestamp := time.Now().UTC().Format(time.RFC3339Nano)
		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO user_versions (druid, user_version, version, withdrawn, created_at, updated_at)
             VALUES (?, ?, ?, 0, ?, ?)`,
			druid, next, version, timestamp, timestamp,
		)
		if err != nil {
			return fmt.Errorf("insert user version: %w", err)
		}
		created = next
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	uv, err := s.GetUserVersion(ctx, druid, created)
	if err != nil {
		return nil, "", err
	}
	return uv, newToken, nil
}

// MoveUserVersion repoints an existing user version at a different closed
// repository version.
func (s *Store) MoveUserVersion(ctx context.Context, druid, token string, userVersion, version int) (string, error) {
	return s.withLock(ctx, druid, token, func(tx execer, obj *RepositoryObject) error {
		if err := s.requireClosedVersion(ctx, tx, druid, version); err != nil {
			return err
		}
		res, err := tx.ExecContext(
			ctx,
			`UPDATE user_versions SET version = ?, updated_at = ? WHERE druid = ? AND user_version = ?`,
			version,
			time.Now().UTC().Format(time.RFC3339Nano),
			druid,
			userVersion,
		)
		if err != nil {
			return fmt.Errorf("move user version: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			return services.Wrap(services.ErrNotFound, "objects", "move user version", fmt.Sprintf("%s user version %d", druid, userVersion), nil)
		}
		return nil
	})
}

// SetUserVersionWithdrawn toggles the withdrawn flag. Withdrawal is
// reversible.
func (s *Store) SetUserVersionWithdrawn(ctx context.Context, druid, token string, userVersion int, withdrawn bool) (string, error) {
	return s.withLock(ctx, druid, token, func(tx execer, obj *RepositoryObject) error {
		flag := 0
		if withdrawn {
			flag = 1
		}
		res, err := tx.ExecContext(
			ctx,
			`UPDATE user_versions SET withdrawn = ?, updated_at = ? WHERE druid = ? AND user_version = ?`,
			flag,
			time.Now().UTC().Format(time.RFC3339Nano),
			druid,
			userVersion,
		)
		if err != nil {
			return fmt.Errorf("set user version withdrawn: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			return services.Wrap(services.ErrNotFound, "objects", "withdraw user version", fmt.Sprintf("%s user version %d", druid, userVersion), nil)
		}
		return nil
	})
}

// GetUserVersion fetches one user version.
func (s *Store) GetUserVersion(ctx context.Context, druid string, userVersion int) (*UserVersion, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userVersionColumns+` FROM user_versions WHERE druid = ? AND user_version = ?`, druid, userVersion)
	uv, err := scanUserVersion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, services.Wrap(services.ErrNotFound, "objects", "get user version", fmt.Sprintf("%s user version %d", druid, userVersion), nil)
	}
	if err != nil {
		return nil, fmt.Errorf("get user version: %w", err)
	}
	return uv, nil
}

// ListUserVersions returns every user version of an object in ascending
// order.
func (s *Store) ListUserVersions(ctx context.Context, druid string) ([]*UserVersion, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+userVersionColumns+` FROM user_versions WHERE druid = ? ORDER BY user_version`, druid)
	if err != nil {
		return nil, fmt.Errorf("list user versions: %w", err)
	}
	defer rows.Close()

	var versions []*UserVersion
	for rows.Next() {
		uv, err := scanUserVersion(rows)
		if err != nil {
			return nil, err
		}
		versions = append(versions, uv)
	}
	return versions, rows.Err()
}

// requireClosedVersion rejects pointers at missing or still-open versions.
func (s *Store) requireClosedVersion(ctx context.Context, tx execer, druid string, version int) error {
	var closed sql.NullString
	row := tx.QueryRowContext(ctx, `SELECT closed_at FROM object_versions WHERE druid = ? AND version = ?`, druid, version)
	if err := row.Scan(&closed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return services.Wrap(services.ErrNotFound, "objects", "user version", fmt.Sprintf("%s v%d", druid, version), nil)
		}
		return fmt.Errorf("check version: %w", err)
	}
	if !closed.Valid {
		return services.Wrap(services.ErrConflict, "objects", "user version", fmt.Sprintf("%s v%d is still open", druid, version), nil)
	}
	return nil
}

const userVersionColumns = "druid, user_version, version, withdrawn, created_at, updated_at"

func scanUserVersion(scanner interface{ Scan(dest ...any) error }) (*UserVersion, error) {
	var (
		druid       string
		userVersion int
		version     int
		withdrawn   int
		createdRaw  string
		updatedRaw  string
	)
	if err := scanner.Scan(&druid, &userVersion, &version, &withdrawn, &createdRaw, &updatedRaw); err != nil {
		return nil, err
	}

	uv := &UserVersion{
		Druid:       druid,
		UserVersion: userVersion,
		Version:     version,
		Withdrawn:   withdrawn != 0,
	}
	if created, err := parseTimeString(createdRaw); err == nil {
		uv.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw); err == nil {
		uv.UpdatedAt = updated
	}
	return uv, nil
}
