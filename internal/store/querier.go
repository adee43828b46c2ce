// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// Querier is the handle every persistence call runs on. It is satisfied by
// [*DB] (the pool), [*Conn] (a checked-out connection) and [*Tx].
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row

	// Builder returns a squirrel builder bound to the handle's placeholder format.
	Builder() sq.StatementBuilderType

	// InTx runs fn inside a transaction. On a [*Tx] fn runs in the same
	// transaction.
	InTx(ctx context.Context, fn func(q Querier) error) error
}

// Scanner is implemented by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// Conn is a single connection checked out of the pool for one request.
// Callers must Close it to return it to the pool.
type Conn struct {
	*sql.Conn
	dialect    Dialect
	classifier ErrorClassificator
}

// Builder implements [Querier].
func (c *Conn) Builder() sq.StatementBuilderType {
	return c.dialect.StatementBuilder()
}

// InTx implements [Querier].
func (c *Conn) InTx(ctx context.Context, fn func(q Querier) error) error {
	return runInTx(ctx, c.Conn, c.dialect, c.classifier, fn)
}

// Tx is an open transaction.
type Tx struct {
	*sql.Tx
	dialect Dialect
}

// Builder implements [Querier].
func (t *Tx) Builder() sq.StatementBuilderType {
	return t.dialect.StatementBuilder()
}

// InTx implements [Querier]. Nested transactions are flattened into t.
func (t *Tx) InTx(_ context.Context, fn func(q Querier) error) error {
	return fn(t)
}

type txBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// maxTxAttempts bounds how often a transaction failing with a retryable
// error is replayed.
const maxTxAttempts = 3

func runInTx(ctx context.Context, b txBeginner, d Dialect, c ErrorClassificator, fn func(q Querier) error) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = runTxOnce(ctx, b, d, fn)
		if err == nil || c == nil || c.Classify(err) != Retryable || ctx.Err() != nil {
			return err
		}
	}
	return err
}

func runTxOnce(ctx context.Context, b txBeginner, d Dialect, fn func(q Querier) error) error {
	sqlTx, err := b.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	if err = fn(&Tx{Tx: sqlTx, dialect: d}); err != nil {
		_ = sqlTx.Rollback()
		return err
	}

	if err = sqlTx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommittingTransaction, err)
	}
	return nil
}
