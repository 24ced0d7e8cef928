// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/syncvault/engine/migrations"
	"github.com/syncvault/engine/models"
)

// command is a closure submitted to the background worker, executed against
// the single *sql.DB handle, with its outcome delivered on result.
type command struct {
	exec   func(db *sql.DB) (any, error)
	result chan outcome
}

type outcome struct {
	val any
	err error
}

// store is the SQLite-backed implementation of [Store].
type store struct {
	db       *sql.DB
	requests chan command
}

// NewStore opens (creating if necessary) the SQLite database at dsn and
// applies any pending migrations. The returned [Store] does not begin
// serving requests until [Store.Run] is started on a goroutine.
func NewStore(dsn string) (Store, error) {
	if err := createFileIfNotExists(dsn); err != nil {
		return nil, fmt.Errorf("create metadata db file: %w", err)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open metadata db: %w", err)
	}
	// the single-background-worker invariant is easiest to reason about
	// with exactly one underlying connection.
	db.SetMaxOpenConns(1)

	if err := migrations.MigrateMetadata(db); err != nil {
		return nil, fmt.Errorf("migrate metadata db: %w", err)
	}

	return &store{
		db:       db,
		requests: make(chan command),
	}, nil
}

func createFileIfNotExists(dsn string) error {
	if dsn == ":memory:" {
		return nil
	}
	if _, err := os.Stat(dsn); os.IsNotExist(err) {
		f, err := os.Create(dsn)
		if err != nil {
			return err
		}
		return f.Close()
	}
	return nil
}

func (s *store) Run(ctx context.Context) {
	defer s.db.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-s.requests:
			val, err := cmd.exec(s.db)
			cmd.result <- outcome{val: val, err: err}
		}
	}
}

func (s *store) submit(ctx context.Context, exec func(db *sql.DB) (any, error)) (any, error) {
	cmd := command{exec: exec, result: make(chan outcome, 1)}

	select {
	case s.requests <- cmd:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case out := <-cmd.result:
		return out.val, out.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *store) Register(ctx context.Context, name string) error {
	_, err := s.submit(ctx, func(db *sql.DB) (any, error) {
		var exists bool
		row := db.QueryRow(`SELECT 1 FROM feature_metadata WHERE feature_name = ?`, name)
		if scanErr := row.Scan(new(int)); scanErr == nil {
			exists = true
		} else if !errors.Is(scanErr, sql.ErrNoRows) {
			return nil, scanErr
		}
		if exists {
			return nil, nil
		}

		_, err := db.Exec(
			`INSERT INTO feature_metadata (feature_name, setup_state, server_timestamp) VALUES (?, ?, '')`,
			name, models.SetupStateNeedsRemoteDataFetch,
		)
		return nil, err
	})
	return err
}

func (s *store) Deregister(ctx context.Context, name string) error {
	_, err := s.submit(ctx, func(db *sql.DB) (any, error) {
		_, err := db.Exec(`DELETE FROM feature_metadata WHERE feature_name = ?`, name)
		return nil, err
	})
	return err
}

func (s *store) IsRegistered(ctx context.Context, name string) (bool, error) {
	val, err := s.submit(ctx, func(db *sql.DB) (any, error) {
		row := db.QueryRow(`SELECT 1 FROM feature_metadata WHERE feature_name = ?`, name)
		if scanErr := row.Scan(new(int)); scanErr != nil {
			if errors.Is(scanErr, sql.ErrNoRows) {
				return false, nil
			}
			return nil, scanErr
		}
		return true, nil
	})
	if err != nil {
		return false, err
	}
	return val.(bool), nil
}

func (s *store) State(ctx context.Context, name string) (models.SetupState, error) {
	val, err := s.submit(ctx, func(db *sql.DB) (any, error) {
		var state int
		row := db.QueryRow(`SELECT setup_state FROM feature_metadata WHERE feature_name = ?`, name)
		if scanErr := row.Scan(&state); scanErr != nil {
			if errors.Is(scanErr, sql.ErrNoRows) {
				return nil, ErrFeatureNotRegistered
			}
			return nil, scanErr
		}
		return models.SetupState(state), nil
	})
	if err != nil {
		return 0, err
	}
	return val.(models.SetupState), nil
}

func (s *store) ServerTimestamp(ctx context.Context, name string) (string, error) {
	val, err := s.submit(ctx, func(db *sql.DB) (any, error) {
		var ts string
		row := db.QueryRow(`SELECT server_timestamp FROM feature_metadata WHERE feature_name = ?`, name)
		if scanErr := row.Scan(&ts); scanErr != nil {
			if errors.Is(scanErr, sql.ErrNoRows) {
				return nil, ErrFeatureNotRegistered
			}
			return nil, scanErr
		}
		return ts, nil
	})
	if err != nil {
		return "", err
	}
	return val.(string), nil
}

func (s *store) LocalTimestamp(ctx context.Context, name string) (time.Time, error) {
	val, err := s.submit(ctx, func(db *sql.DB) (any, error) {
		var ts sql.NullTime
		row := db.QueryRow(`SELECT local_timestamp FROM feature_metadata WHERE feature_name = ?`, name)
		if scanErr := row.Scan(&ts); scanErr != nil {
			if errors.Is(scanErr, sql.ErrNoRows) {
				return nil, ErrFeatureNotRegistered
			}
			return nil, scanErr
		}
		return ts.Time, nil
	})
	if err != nil {
		return time.Time{}, err
	}
	return val.(time.Time), nil
}

func (s *store) Update(ctx context.Context, name string, server string, local time.Time, state models.SetupState) error {
	_, err := s.submit(ctx, func(db *sql.DB) (any, error) {
		res, err := db.Exec(
			`UPDATE feature_metadata SET server_timestamp = ?, local_timestamp = ?, setup_state = ? WHERE feature_name = ?`,
			server, local, int(state), name,
		)
		if err != nil {
			return nil, err
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		if rows == 0 {
			return nil, ErrFeatureNotRegistered
		}
		return nil, nil
	})
	return err
}
