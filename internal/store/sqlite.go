// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/lowboy/internal/logger"
)

const sqliteDriverName = "sqlite3_lowboy"

// sqlitePragmas run on every new pooled connection.
var sqlitePragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA synchronous = NORMAL",
	"PRAGMA foreign_keys = ON",
	"PRAGMA busy_timeout = 30000",
}

var registerSQLiteDriver sync.Once

func sqliteDriver() string {
	registerSQLiteDriver.Do(func() {
		sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				for _, pragma := range sqlitePragmas {
					if _, err := conn.Exec(pragma, nil); err != nil {
						return fmt.Errorf("%s: %w", pragma, err)
					}
				}
				return nil
			},
		})
	})

	return sqliteDriverName
}

// NewConnectSQLite opens a sqlite pool of at most poolSize connections.
func NewConnectSQLite(ctx context.Context, dsn string, poolSize int, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open(sqliteDriver(), dsn)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error opening sqlite database")
		return nil, fmt.Errorf("%w: %w", ErrOpeningDatabase, err)
	}

	conn.SetMaxOpenConns(poolSize)
	conn.SetMaxIdleConns(poolSize)

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		_ = conn.Close()
		return nil, fmt.Errorf("%w: %w", ErrOpeningDatabase, err)
	}

	log.Info().Str("func", "NewConnectSQLite").Int("pool_size", poolSize).Msg("connected to sqlite database")
	return NewDB(conn, SQLite, log), nil
}
