// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/lowboy/internal/config"
	"github.com/MKhiriev/lowboy/internal/logger"
	"github.com/MKhiriev/lowboy/migrations"
)

// DB is the application's connection pool together with the dialect it
// speaks.
type DB struct {
	*sql.DB
	dialect            Dialect
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewDB wraps an already opened pool. It is used by the connect functions and
// by tests that hand in a sqlmock pool.
func NewDB(conn *sql.DB, dialect Dialect, log *logger.Logger) *DB {
	var classifier ErrorClassificator = NewSQLiteErrorClassifier()
	if dialect == Postgres {
		classifier = NewPostgresErrorClassifier()
	}

	return &DB{
		DB:                 conn,
		dialect:            dialect,
		errorClassificator: classifier,
		logger:             log,
	}
}

// Connect opens the pool described by cfg, picking the driver from the
// database url.
func Connect(ctx context.Context, cfg config.Database, log *logger.Logger) (*DB, error) {
	dialect, dsn, err := ParseDatabaseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	switch dialect {
	case Postgres:
		return NewConnectPostgres(ctx, dsn, cfg.PoolSize, log)
	default:
		return NewConnectSQLite(ctx, dsn, cfg.PoolSize, log)
	}
}

// Dialect reports the backend of the pool.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Builder implements [Querier].
func (db *DB) Builder() sq.StatementBuilderType {
	return db.dialect.StatementBuilder()
}

// InTx implements [Querier].
func (db *DB) InTx(ctx context.Context, fn func(q Querier) error) error {
	return runInTx(ctx, db.DB, db.dialect, db.errorClassificator, fn)
}

// Conn checks a connection out of the pool.
func (db *DB) Conn(ctx context.Context) (*Conn, error) {
	conn, err := db.DB.Conn(ctx)
	if err != nil {
		db.logger.Err(err).Str("func", "*DB.Conn").Msg("error checking out a pooled connection")
		return nil, fmt.Errorf("%w: %w", ErrPoolCheckout, err)
	}

	return &Conn{Conn: conn, dialect: db.dialect, classifier: db.errorClassificator}, nil
}

// Migrate applies the core schema, then the application schema in appFS
// when one is given.
func (db *DB) Migrate(appFS fs.FS) error {
	dialect := db.dialect.GooseDialect()

	if err := migrations.Migrate(db.DB, dialect, db.logger); err != nil {
		return err
	}

	if appFS == nil {
		return nil
	}
	return migrations.MigrateFS(db.DB, dialect, appFS, migrations.AppVersionTable, db.logger)
}
