// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package migrations embeds the core lowboy schema and applies it, and any
// application schema, with goose.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"

	"github.com/MKhiriev/lowboy/internal/logger"
)

//go:embed sqlite/*.sql postgres/*.sql
var embedMigrations embed.FS

const (
	// CoreVersionTable tracks the lowboy schema.
	CoreVersionTable = "lowboy_db_version"
	// AppVersionTable tracks the application schema, kept apart so both
	// sets can number their files independently.
	AppVersionTable = "app_db_version"
)

var errNilDB = errors.New("migration error: db is nil")

// goose keeps its settings in package globals.
var gooseMu sync.Mutex

// Migrate applies the core schema for the given goose dialect ("sqlite3" or
// "pgx").
func Migrate(db *sql.DB, dialect string, log *logger.Logger) error {
	return MigrateFS(db, dialect, embedMigrations, CoreVersionTable, log)
}

// MigrateFS applies the migrations found in fsys under the directory named
// after the dialect ("sqlite" or "postgres"), recording versions in table.
func MigrateFS(db *sql.DB, dialect string, fsys fs.FS, table string, log *logger.Logger) error {
	if db == nil {
		return errNilDB
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(fsys)
	goose.SetTableName(table)
	goose.SetLogger(gooseLogger{log: log.Component("migration")})

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dirFor(dialect)); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

func dirFor(dialect string) string {
	if dialect == "pgx" || dialect == "postgres" {
		return "postgres"
	}
	return "sqlite"
}

// gooseLogger streams goose output into the structured log.
type gooseLogger struct {
	log *logger.Logger
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.log.Info().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.log.Error().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
