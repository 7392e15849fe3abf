package objects

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"lectern/internal/config"
	"lectern/internal/services"
)

// Store manages repository object persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

// retryOnBusy retries op with exponential backoff while SQLite reports the
// database locked, respecting context cancellation.
func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			return lastErr
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

// Open initializes or connects to the objects database and applies
// migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.DatabasePath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// CreateObject registers a new repository object with version 1 open. The
// returned object carries the freshly minted lock token.
func (s *Store) CreateObject(ctx context.Context, reg Registration) (*RepositoryObject, error) {
	existing, err := s.GetObject(ctx, reg.Druid)
	if err != nil && !errors.Is(err, services.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, services.Wrap(services.ErrConflict, "objects", "create", fmt.Sprintf("object %s already registered", reg.Druid), nil)
	}

	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)
	token := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin create tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO repository_objects (
            druid, source_id, object_type, label, lock_token, head_version,
            created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		reg.Druid,
		nullableString(reg.SourceID),
		reg.ObjectType,
		reg.Label,
		token,
		1,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert object: %w", err)
	}

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO object_versions (
            druid, version, label, description, cocina_version,
            description_json, structural_json, created_at, closed_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, NULL)`,
		reg.Druid,
		1,
		nullableString(reg.Label),
		nullableString("registered"),
		nullableString(reg.CocinaVersion),
		nullableString(reg.DescriptionJSON),
		nullableString(reg.StructuralJSON),
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert initial version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create: %w", err)
	}
	return s.GetObject(ctx, reg.Druid)
}

// GetObject fetches a repository object by druid.
func (s *Store) GetObject(ctx context.Context, druid string) (*RepositoryObject, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+objectColumns+` FROM repository_objects WHERE druid = ?`, druid)
	obj, err := scanObject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, services.Wrap(services.ErrNotFound, "objects", "get", fmt.Sprintf("object %s", druid), nil)
	}
	if err != nil {
		return nil, fmt.Errorf("get object: %w", err)
	}
	return obj, nil
}

// GetVersion fetches one version of an object.
func (s *Store) GetVersion(ctx context.Context, druid string, version int) (*Version, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+versionColumns+` FROM object_versions WHERE druid = ? AND version = ?`, druid, version)
	v, err := scanVersion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, services.Wrap(services.ErrNotFound, "objects", "get version", fmt.Sprintf("%s v%d", druid, version), nil)
	}
	if err != nil {
		return nil, fmt.Errorf("get version: %w", err)
	}
	return v, nil
}

// OpenVersion returns the currently open version, or nil when every version
// is closed.
func (s *Store) OpenVersion(ctx context.Context, druid string) (*Version, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+versionColumns+` FROM object_versions WHERE druid = ? AND closed_at IS NULL`, druid)
	v, err := scanVersion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open version: %w", err)
	}
	return v, nil
}

// ListVersions returns every version of an object in ascending order.
func (s *Store) ListVersions(ctx context.Context, druid string) ([]*Version, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+versionColumns+` FROM object_versions WHERE druid = ? ORDER BY version`, druid)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	defer rows.Close()

	var versions []*Version
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

// CreateVersion opens a new draft version numbered head+1 and bumps the
// object's head pointer. The caller's lock token is compared first.
func (s *Store) CreateVersion(ctx context.Context, druid, token string, params VersionParams) (*Version, string, error) {
	var created int
	newToken, err := s.withLock(ctx, druid, token, func(tx execer, obj *RepositoryObject) error {
		// Re-check inside the transaction: a concurrent open must not leave
		// two versions with a null closed_at.
		var open int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM object_versions WHERE druid = ? AND closed_at IS NULL`, druid).Scan(&open); err != nil {
			return fmt.Errorf("count open versions: %w", err)
		}
		if open > 0 {
			return services.Wrap(services.ErrConflict, "objects", "open", fmt.Sprintf("object %s already has an open version", druid), nil)
		}

		next := obj.HeadVersion + 1
		timestamp := time.Now().UTC().Format(time.RFC3339Nano)
		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO object_versions (
                druid, version, label, description, cocina_version,
                description_json, structural_json, created_at, closed_at
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, NULL)`,
			druid,
			next,
			nullableString(params.Label),
			nullableString(params.Description),
			nullableString(params.CocinaVersion),
			nullableString(params.DescriptionJSON),
			nullableString(params.StructuralJSON),
			timestamp,
		)
		if err != nil {
			return fmt.Errorf("insert version: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `UPDATE repository_objects SET head_version = ? WHERE druid = ?`, next, druid); err != nil {
			return fmt.Errorf("bump head version: %w", err)
		}
		created = next
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	v, err := s.GetVersion(ctx, druid, created)
	if err != nil {
		return nil, "", err
	}
	return v, newToken, nil
}

// UpdateOpenVersion replaces the metadata of the current draft version.
func (s *Store) UpdateOpenVersion(ctx context.Context, druid, token string, params VersionParams) (string, error) {
	return s.withLock(ctx, druid, token, func(tx execer, obj *RepositoryObject) error {
		res, err := tx.ExecContext(
			ctx,
			`UPDATE object_versions
             SET label = ?, description = ?, cocina_version = ?,
                 description_json = ?, structural_json = ?
             WHERE druid = ? AND closed_at IS NULL`,
			nullableString(params.Label),
			nullableString(params.Description),
			nullableString(params.CocinaVersion),
			nullableString(params.DescriptionJSON),
			nullableString(params.StructuralJSON),
			druid,
		)
		if err != nil {
			return fmt.Errorf("update open version: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			return services.Wrap(services.ErrConflict, "objects", "update", fmt.Sprintf("object %s has no open version", druid), nil)
		}
		return nil
	})
}

// CloseOpenVersion stamps the current draft version closed.
func (s *Store) CloseOpenVersion(ctx context.Context, druid, token string) (string, error) {
	return s.withLock(ctx, druid, token, func(tx execer, obj *RepositoryObject) error {
		timestamp := time.Now().UTC().Format(time.RFC3339Nano)
		res, err := tx.ExecContext(
			ctx,
			`UPDATE object_versions SET closed_at = ? WHERE druid = ? AND closed_at IS NULL`,
			timestamp,
			druid,
		)
		if err != nil {
			return fmt.Errorf("close version: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			return services.Wrap(services.ErrConflict, "objects", "close", fmt.Sprintf("object %s is not open for versioning", druid), nil)
		}
		return nil
	})
}

// execer is the subset of database operations mutations run against while a
// lock transaction is held. *sql.Conn satisfies it.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// withLock runs fn inside an immediate transaction after comparing the
// caller's lock token against the object row. On success a fresh token is
// minted and returned; on any failure nothing is written.
func (s *Store) withLock(ctx context.Context, druid, token string, fn func(tx execer, obj *RepositoryObject) error) (string, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return "", fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	// Pool pragmas do not carry over to a dedicated connection.
	if _, err := conn.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		return "", fmt.Errorf("set busy timeout: %w", err)
	}
	err = retryOnBusy(ctx, func() error {
		_, beginErr := conn.ExecContext(ctx, "BEGIN IMMEDIATE")
		return beginErr
	})
	if err != nil {
		return "", fmt.Errorf("begin immediate: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_, _ = conn.ExecContext(ctx, "ROLLBACK")
		}
	}()

	row := conn.QueryRowContext(ctx, `SELECT `+objectColumns+` FROM repository_objects WHERE druid = ?`, druid)
	obj, err := scanObject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return "", services.Wrap(services.ErrNotFound, "objects", "lock", fmt.Sprintf("object %s", druid), nil)
	}
	if err != nil {
		return "", fmt.Errorf("read object for lock: %w", err)
	}

	// An empty caller token means "latest": the compare is skipped but the
	// mutation still runs atomically under the immediate transaction.
	if token != "" && token != obj.LockToken {
		return "", services.Wrap(services.ErrPreconditionFailed, "objects", "lock", fmt.Sprintf("stale lock token for %s", druid), nil)
	}

	if err := fn(conn, obj); err != nil {
		return "", err
	}

	newToken := uuid.NewString()
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := conn.ExecContext(ctx, `UPDATE repository_objects SET lock_token = ?, updated_at = ? WHERE druid = ?`, newToken, timestamp, druid); err != nil {
		return "", fmt.Errorf("mint lock token: %w", err)
	}

	if _, err := conn.ExecContext(ctx, "COMMIT"); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	committed = true
	return newToken, nil
}

const objectColumns = "druid, source_id, object_type, label, lock_token, head_version, created_at, updated_at"

func scanObject(scanner interface{ Scan(dest ...any) error }) (*RepositoryObject, error) {
	var (
		druid      string
		sourceID   sql.NullString
		objectType string
		label      string
		lockToken  string
		head       int
		createdRaw string
		updatedRaw string
	)
	if err := scanner.Scan(&druid, &sourceID, &objectType, &label, &lockToken, &head, &createdRaw, &updatedRaw); err != nil {
		return nil, err
	}

	obj := &RepositoryObject{
		Druid:       druid,
		SourceID:    sourceID.String,
		ObjectType:  objectType,
		Label:       label,
		LockToken:   lockToken,
		HeadVersion: head,
	}
	if created, err := parseTimeString(createdRaw); err == nil {
		obj.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw); err == nil {
		obj.UpdatedAt = updated
	}
	return obj, nil
}

const versionColumns = "druid, version, label, description, cocina_version, description_json, structural_json, created_at, closed_at"

func scanVersion(scanner interface{ Scan(dest ...any) error }) (*Version, error) {
	var (
		druid         string
		version       int
		label         sql.NullString
		description   sql.NullString
		cocinaVersion sql.NullString
		descJSON      sql.NullString
		structJSON    sql.NullString
		createdRaw    string
		closedRaw     sql.NullString
	)
	if err := scanner.Scan(&druid, &version, &label, &description, &cocinaVersion, &descJSON, &structJSON, &createdRaw, &closedRaw); err != nil {
		return nil, err
	}

	v := &Version{
		Druid:           druid,
		Version:         version,
		Label:           label.String,
		Description:     description.String,
		CocinaVersion:   cocinaVersion.String,
		DescriptionJSON: descJSON.String,
		StructuralJSON:  structJSON.String,
	}
	if created, err := parseTimeString(createdRaw); err == nil {
		v.CreatedAt = created
	}
	if closedRaw.Valid {
		if closed, err := parseTimeString(closedRaw.String); err == nil {
			v.ClosedAt = &closed
		}
	}
	return v, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
