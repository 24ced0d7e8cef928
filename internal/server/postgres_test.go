// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	sq "github.com/Masterminds/squirrel"

	"github.com/syncvault/engine/internal/logger"
	"github.com/syncvault/engine/models"
)

func newTestPostgresStore(t *testing.T) (*postgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &postgresStore{
		db:  db,
		log: logger.Nop(),
		qb:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestCreateUser_UniqueViolationMapsToSentinel(t *testing.T) {
	store, mock := newTestPostgresStore(t)

	mock.ExpectExec("INSERT INTO users").
		WithArgs("alice", "hashed", "wrapped").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	err := store.CreateUser(context.Background(), StoredUser{
		UserID: "alice", HashedPassword: "hashed", ProtectedEncryptionKey: "wrapped",
	})
	require.ErrorIs(t, err, ErrUserAlreadyExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_Success(t *testing.T) {
	store, mock := newTestPostgresStore(t)

	mock.ExpectExec("INSERT INTO users").
		WithArgs("alice", "hashed", "wrapped").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.CreateUser(context.Background(), StoredUser{
		UserID: "alice", HashedPassword: "hashed", ProtectedEncryptionKey: "wrapped",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUser_NotFoundMapsToSentinel(t *testing.T) {
	store, mock := newTestPostgresStore(t)

	mock.ExpectQuery("SELECT user_id, hashed_password, protected_encryption_key FROM users").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := store.FindUser(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUser_Success(t *testing.T) {
	store, mock := newTestPostgresStore(t)

	rows := sqlmock.NewRows([]string{"user_id", "hashed_password", "protected_encryption_key"}).
		AddRow("alice", "hashed", "wrapped")
	mock.ExpectQuery("SELECT user_id, hashed_password, protected_encryption_key FROM users").
		WithArgs("alice").
		WillReturnRows(rows)

	user, err := store.FindUser(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, "wrapped", user.ProtectedEncryptionKey)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteDevice_NotFoundMapsToSentinel(t *testing.T) {
	store, mock := newTestPostgresStore(t)

	mock.ExpectExec("DELETE FROM devices").
		WithArgs("dev-404", "alice").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.DeleteDevice(context.Background(), "alice", "dev-404")
	require.ErrorIs(t, err, ErrDeviceNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyPatch_InsertsEntriesThenFetchesChangesInOneTransaction(t *testing.T) {
	store, mock := newTestPostgresStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO feature_entries").
		WillReturnResult(sqlmock.NewResult(0, 1))

	now := time.Date(2026, 7, 29, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"payload", "is_deleted", "modified_at"}).
		AddRow([]byte(`{"ciphertext":"..."}`), false, now)
	mock.ExpectQuery("SELECT payload, is_deleted, modified_at FROM feature_entries").
		WillReturnRows(rows)
	mock.ExpectCommit()

	resp, err := store.ApplyPatch(context.Background(), "alice", "bookmarks",
		[]models.Syncable{{Payload: []byte(`{"ciphertext":"..."}`)}}, "0", now)
	require.NoError(t, err)
	require.Len(t, resp.Entries, 1)
	require.Equal(t, now.Format(time.RFC3339Nano), resp.LastModified)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyPatch_RollsBackOnInsertFailure(t *testing.T) {
	store, mock := newTestPostgresStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO feature_entries").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := store.ApplyPatch(context.Background(), "alice", "bookmarks",
		[]models.Syncable{{Payload: []byte(`{}`)}}, "0", time.Now())
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTakeConnectPayload_DeletesOnRead(t *testing.T) {
	store, mock := newTestPostgresStore(t)

	mock.ExpectBegin()
	rows := sqlmock.NewRows([]string{"sealed_recovery"}).AddRow("ciphertext")
	mock.ExpectQuery("SELECT sealed_recovery FROM connect_payloads").
		WithArgs("dev-new").
		WillReturnRows(rows)
	mock.ExpectExec("DELETE FROM connect_payloads").
		WithArgs("dev-new").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	payload, err := store.TakeConnectPayload(context.Background(), "dev-new")
	require.NoError(t, err)
	require.NotNil(t, payload)
	require.Equal(t, "ciphertext", payload.SealedRecovery)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTakeConnectPayload_NonePendingReturnsNilNil(t *testing.T) {
	store, mock := newTestPostgresStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT sealed_recovery FROM connect_payloads").
		WithArgs("dev-new").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	payload, err := store.TakeConnectPayload(context.Background(), "dev-new")
	require.NoError(t, err)
	require.Nil(t, payload)
	require.NoError(t, mock.ExpectationsWereMet())
}
