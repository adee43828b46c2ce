// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/MKhiriev/lowboy/internal/logger"
)

// NewConnectPostgres opens a postgres pool through the pgx stdlib driver.
func NewConnectPostgres(ctx context.Context, dsn string, poolSize int, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occurred during database connection")
		return nil, fmt.Errorf("%w: %w", ErrOpeningDatabase, err)
	}

	conn.SetMaxOpenConns(poolSize)
	conn.SetMaxIdleConns(poolSize / 4)

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		_ = conn.Close()
		return nil, fmt.Errorf("%w: %w", ErrOpeningDatabase, err)
	}

	log.Info().Str("func", "NewConnectPostgres").Int("pool_size", poolSize).Msg("connected to postgres database")
	return NewDB(conn, Postgres, log), nil
}
