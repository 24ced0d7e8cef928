// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/syncvault/engine/internal/logger"
	"github.com/syncvault/engine/models"
)

// postgresStore is the PostgreSQL-backed [Store] implementation, querying
// the schema in migrations/server against the "users", "devices",
// "feature_entries", and "connect_payloads" tables.
//
// Every entry the server persists is an opaque, already-encrypted blob
// (spec.md §4.1 keeps the server zero-knowledge of payload contents), so
// feature_entries is append-only: ApplyPatch assigns a fresh entry_id to
// every accepted update rather than updating in place, since the server
// has no way to tell whether two ciphertexts describe "the same" logical
// object.
type postgresStore struct {
	db  *sql.DB
	log *logger.Logger
	qb  sq.StatementBuilderType
}

// NewPostgresStore opens a PostgreSQL connection using the pgx stdlib
// driver and dsn, verifies reachability with a ping, and returns a [Store].
func NewPostgresStore(ctx context.Context, dsn string, log *logger.Logger) (Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Err(err).Msg("open postgres connection")
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(4)

	if err := db.PingContext(ctx); err != nil {
		log.Err(err).Msg("ping postgres")
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	log.Debug().Msg("connected to postgres successfully")

	return &postgresStore{
		db:  db,
		log: log,
		qb:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}, nil
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func (s *postgresStore) CreateUser(ctx context.Context, user StoredUser) error {
	query, args, err := s.qb.Insert("users").
		Columns("user_id", "hashed_password", "protected_encryption_key").
		Values(user.UserID, user.HashedPassword, user.ProtectedEncryptionKey).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert user query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		if pgErrorCode(err) == pgerrcode.UniqueViolation {
			return ErrUserAlreadyExists
		}
		s.log.Err(err).Str("userID", user.UserID).Msg("create user failed")
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *postgresStore) FindUser(ctx context.Context, userID string) (StoredUser, error) {
	query, args, err := s.qb.Select("user_id", "hashed_password", "protected_encryption_key").
		From("users").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return StoredUser{}, fmt.Errorf("build find user query: %w", err)
	}

	var out StoredUser
	row := s.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&out.UserID, &out.HashedPassword, &out.ProtectedEncryptionKey); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return StoredUser{}, ErrUserNotFound
		}
		s.log.Err(err).Str("userID", userID).Msg("find user failed")
		return StoredUser{}, fmt.Errorf("find user: %w", err)
	}
	return out, nil
}

func (s *postgresStore) DeleteUser(ctx context.Context, userID string) error {
	query, args, err := s.qb.Delete("users").Where(sq.Eq{"user_id": userID}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete user query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		s.log.Err(err).Str("userID", userID).Msg("delete user failed")
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (s *postgresStore) CreateDevice(ctx context.Context, userID string, device models.Device) error {
	query, args, err := s.qb.Insert("devices").
		Columns("device_id", "user_id", "device_name", "device_type").
		Values(device.DeviceID, userID, device.DeviceName, device.DeviceType).
		Suffix("ON CONFLICT (device_id) DO UPDATE SET device_name = EXCLUDED.device_name, device_type = EXCLUDED.device_type").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert device query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		s.log.Err(err).Str("deviceID", device.DeviceID).Msg("create device failed")
		return fmt.Errorf("create device: %w", err)
	}
	return nil
}

func (s *postgresStore) ListDevices(ctx context.Context, userID string) ([]models.Device, error) {
	query, args, err := s.qb.Select("device_id", "device_name", "device_type").
		From("devices").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list devices query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	defer rows.Close()

	var devices []models.Device
	for rows.Next() {
		var d models.Device
		if err := rows.Scan(&d.DeviceID, &d.DeviceName, &d.DeviceType); err != nil {
			return nil, fmt.Errorf("scan device: %w", err)
		}
		devices = append(devices, d)
	}
	return devices, rows.Err()
}

func (s *postgresStore) DeleteDevice(ctx context.Context, userID, deviceID string) error {
	query, args, err := s.qb.Delete("devices").
		Where(sq.Eq{"user_id": userID, "device_id": deviceID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete device query: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		s.log.Err(err).Str("deviceID", deviceID).Msg("delete device failed")
		return fmt.Errorf("delete device: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete device rows affected: %w", err)
	}
	if affected == 0 {
		return ErrDeviceNotFound
	}
	return nil
}

// ApplyPatch inserts one feature_entries row per update, stamped with now,
// then returns every entry for featureName modified strictly after
// modifiedSince — which always includes the rows just inserted.
func (s *postgresStore) ApplyPatch(ctx context.Context, userID, featureName string, updates []models.Syncable, modifiedSince string, now time.Time) (models.RawFeatureResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.RawFeatureResponse{}, fmt.Errorf("begin patch tx: %w", err)
	}
	defer tx.Rollback()

	insert := s.qb.Insert("feature_entries").
		Columns("user_id", "feature_name", "entry_id", "payload", "is_deleted", "modified_at")
	for _, update := range updates {
		insert = insert.Values(userID, featureName, uuid.NewString(), []byte(update.Payload), update.IsDeleted, now)
	}

	if len(updates) > 0 {
		query, args, err := insert.ToSql()
		if err != nil {
			return models.RawFeatureResponse{}, fmt.Errorf("build insert entries query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			s.log.Err(err).Str("feature", featureName).Msg("insert feature entries failed")
			return models.RawFeatureResponse{}, fmt.Errorf("insert feature entries: %w", err)
		}
	}

	resp, err := fetchChangesTx(ctx, tx, s.qb, userID, featureName, modifiedSince)
	if err != nil {
		return models.RawFeatureResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.RawFeatureResponse{}, fmt.Errorf("commit patch tx: %w", err)
	}
	return resp, nil
}

func (s *postgresStore) FetchChanges(ctx context.Context, userID, featureName, since string) (models.RawFeatureResponse, error) {
	return fetchChangesTx(ctx, s.db, s.qb, userID, featureName, since)
}

// sqlExecutor is satisfied by both *sql.DB and *sql.Tx, so fetchChangesTx
// can run either standalone or inside ApplyPatch's transaction.
type sqlExecutor interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func fetchChangesTx(ctx context.Context, exec sqlExecutor, qb sq.StatementBuilderType, userID, featureName, since string) (models.RawFeatureResponse, error) {
	sinceValue := since
	if sinceValue == "" {
		sinceValue = "0"
	}

	builder := qb.Select("payload", "is_deleted", "modified_at").
		From("feature_entries").
		Where(sq.Eq{"user_id": userID, "feature_name": featureName}).
		OrderBy("modified_at")

	if sinceValue != "0" {
		builder = builder.Where(sq.Gt{"modified_at": sinceValue})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return models.RawFeatureResponse{}, fmt.Errorf("build fetch changes query: %w", err)
	}

	rows, err := exec.QueryContext(ctx, query, args...)
	if err != nil {
		return models.RawFeatureResponse{}, fmt.Errorf("fetch changes: %w", err)
	}
	defer rows.Close()

	var (
		out          models.RawFeatureResponse
		lastModified time.Time
	)
	for rows.Next() {
		var (
			payload    []byte
			isDeleted  bool
			modifiedAt time.Time
		)
		if err := rows.Scan(&payload, &isDeleted, &modifiedAt); err != nil {
			return models.RawFeatureResponse{}, fmt.Errorf("scan feature entry: %w", err)
		}
		out.Entries = append(out.Entries, payload)
		if modifiedAt.After(lastModified) {
			lastModified = modifiedAt
		}
	}
	if err := rows.Err(); err != nil {
		return models.RawFeatureResponse{}, fmt.Errorf("iterate feature entries: %w", err)
	}

	if !lastModified.IsZero() {
		out.LastModified = lastModified.Format(time.RFC3339Nano)
	} else {
		out.LastModified = sinceValue
	}
	return out, nil
}

func (s *postgresStore) PutConnectPayload(ctx context.Context, deviceID, sealedRecovery string) error {
	query, args, err := s.qb.Insert("connect_payloads").
		Columns("device_id", "sealed_recovery").
		Values(deviceID, sealedRecovery).
		Suffix("ON CONFLICT (device_id) DO UPDATE SET sealed_recovery = EXCLUDED.sealed_recovery, created_at = now()").
		ToSql()
	if err != nil {
		return fmt.Errorf("build put connect payload query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		s.log.Err(err).Str("deviceID", deviceID).Msg("put connect payload failed")
		return fmt.Errorf("put connect payload: %w", err)
	}
	return nil
}

// TakeConnectPayload reads and deletes in one transaction, so a payload is
// handed to at most one poller even under concurrent polling.
func (s *postgresStore) TakeConnectPayload(ctx context.Context, deviceID string) (*models.ConnectPayload, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin take connect payload tx: %w", err)
	}
	defer tx.Rollback()

	selectQuery, selectArgs, err := s.qb.Select("sealed_recovery").
		From("connect_payloads").
		Where(sq.Eq{"device_id": deviceID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select connect payload query: %w", err)
	}

	var sealedRecovery string
	row := tx.QueryRowContext(ctx, selectQuery, selectArgs...)
	if err := row.Scan(&sealedRecovery); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select connect payload: %w", err)
	}

	deleteQuery, deleteArgs, err := s.qb.Delete("connect_payloads").
		Where(sq.Eq{"device_id": deviceID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build delete connect payload query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return nil, fmt.Errorf("delete connect payload: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit take connect payload tx: %w", err)
	}

	return &models.ConnectPayload{DeviceID: deviceID, SealedRecovery: sealedRecovery}, nil
}

func (s *postgresStore) Close() error {
	return s.db.Close()
}
