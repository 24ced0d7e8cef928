// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package migrations manages database schema migrations for both the local
// metadata store (SQLite) and the reference sync server (PostgreSQL). It
// uses the goose migration library with embedded SQL files, ensuring
// migrations are compiled into the binary and applied automatically at
// startup without requiring external file access.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"
)

//go:embed metadata/*.sql
var embedMetadataMigrations embed.FS

//go:embed server/*.sql
var embedServerMigrations embed.FS

// MigrateMetadata applies all pending migrations to the local metadata
// store (SQLite). Intended to be called once at engine startup, before the
// metadata store is used.
func MigrateMetadata(db *sql.DB) error {
	return migrate(db, embedMetadataMigrations, "metadata")
}

// MigrateServer applies all pending migrations to the reference sync
// server's database (PostgreSQL). Intended to be called once at server
// startup.
func MigrateServer(db *sql.DB) error {
	return migrate(db, embedServerMigrations, "server")
}

func migrate(db *sql.DB, fsys embed.FS, dir string) error {
	if db == nil {
		return fmt.Errorf("migration error: db is nil")
	}

	goose.SetBaseFS(fsys)

	if err := goose.SetDialect(resolveDialect(db)); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

func resolveDialect(db *sql.DB) string {
	driverType := fmt.Sprintf("%T", db.Driver())
	if strings.Contains(strings.ToLower(driverType), "sqlite") {
		return "sqlite3"
	}
	return "pgx"
}
