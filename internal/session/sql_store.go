// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/lowboy/internal/logger"
	"github.com/MKhiriev/lowboy/internal/store"
	"github.com/MKhiriev/lowboy/internal/utils"
)

// TableName is the table SQLStore keeps its records in.
const TableName = "tower_session"

// Database is the handle SQLStore runs on; *store.DB implements it.
type Database interface {
	store.Querier
	Dialect() store.Dialect
}

// SQLStore is a [Store] backed by the application database.
type SQLStore struct {
	db     Database
	ids    IDGenerator
	now    func() time.Time
	logger *logger.Logger
}

// SQLStoreOption customises [NewSQLStore].
type SQLStoreOption func(*SQLStore)

// WithIDGenerator replaces the UUIDv7 generator used after id collisions.
func WithIDGenerator(ids IDGenerator) SQLStoreOption {
	return func(s *SQLStore) { s.ids = ids }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) SQLStoreOption {
	return func(s *SQLStore) { s.now = now }
}

// NewSQLStore returns a store on db. Call Migrate before first use.
func NewSQLStore(db Database, log *logger.Logger, opts ...SQLStoreOption) *SQLStore {
	s := &SQLStore{
		db:     db,
		ids:    utils.NewUUIDGenerator(),
		now:    time.Now,
		logger: log.Component("session-store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Migrate creates the session table if it does not exist.
func (s *SQLStore) Migrate(ctx context.Context) error {
	expiryType := "INTEGER"
	if s.db.Dialect() == store.Postgres {
		expiryType = "BIGINT"
	}
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    id          TEXT PRIMARY KEY NOT NULL,
    data        %s NOT NULL,
    expiry_date %s NOT NULL
)`, TableName, s.db.Dialect().BlobType(), expiryType)

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		s.logger.Err(err).Str("func", "*SQLStore.Migrate").Msg("error creating session table")
		return fmt.Errorf("creating %s: %w", TableName, err)
	}
	return nil
}

// Create implements [Store].
func (s *SQLStore) Create(ctx context.Context, record *Record) error {
	for {
		err := s.insert(ctx, *record)
		if err == nil {
			return nil
		}
		if !store.IsUniqueViolation(err) {
			return err
		}
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %w", ErrCreatingSession, ctx.Err())
		}
		s.logger.Debug().Str("func", "*SQLStore.Create").Msg("session id collision, retrying with a new id")
		record.ID = s.ids.Generate()
	}
}

func (s *SQLStore) insert(ctx context.Context, record Record) error {
	query, args, err := s.db.Builder().Insert(TableName).
		Columns("id", "data", "expiry_date").
		Values(record.ID, record.Data, store.UnixTime(record.ExpiryDate)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", store.ErrBuildingSQLQuery, err)
	}
	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

// Save implements [Store].
func (s *SQLStore) Save(ctx context.Context, record Record) error {
	query, args, err := s.db.Builder().Insert(TableName).
		Columns("id", "data", "expiry_date").
		Values(record.ID, record.Data, store.UnixTime(record.ExpiryDate)).
		Suffix("ON CONFLICT (id) DO UPDATE SET data = excluded.data, expiry_date = excluded.expiry_date").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", store.ErrBuildingSQLQuery, err)
	}
	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).Str("func", "*SQLStore.Save").Msg("error saving session")
		return err
	}
	return nil
}

// Load implements [Store].
func (s *SQLStore) Load(ctx context.Context, id string) (Record, error) {
	query, args, err := s.db.Builder().Select("id", "data", "expiry_date").
		From(TableName).
		Where(sq.Eq{"id": id}).
		Where(sq.Gt{"expiry_date": store.UnixTime(s.now())}).
		ToSql()
	if err != nil {
		return Record{}, fmt.Errorf("%w: %w", store.ErrBuildingSQLQuery, err)
	}

	var r Record
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&r.ID, &r.Data, (*store.UnixTime)(&r.ExpiryDate))
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	return r, nil
}

// Delete implements [Store].
func (s *SQLStore) Delete(ctx context.Context, id string) error {
	query, args, err := s.db.Builder().Delete(TableName).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", store.ErrBuildingSQLQuery, err)
	}
	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

// DeleteExpired implements [Store].
func (s *SQLStore) DeleteExpired(ctx context.Context) (int64, error) {
	query, args, err := s.db.Builder().Delete(TableName).
		Where(sq.LtOrEq{"expiry_date": store.UnixTime(s.now())}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", store.ErrBuildingSQLQuery, err)
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
