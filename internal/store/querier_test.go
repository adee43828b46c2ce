// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/lowboy/internal/logger"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewDB(conn, SQLite, logger.Nop()), mock
}

func TestDB_InTx_Commits(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM token").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := db.InTx(context.Background(), func(q Querier) error {
		_, err := q.ExecContext(context.Background(), "DELETE FROM token WHERE id = ?", 1)
		return err
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_InTx_RollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	fnErr := errors.New("fn failed")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := db.InTx(context.Background(), func(q Querier) error {
		return fnErr
	})

	require.ErrorIs(t, err, fnErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_InTx_RetriesBusy(t *testing.T) {
	db, mock := newMockDB(t)
	busy := sqlite3.Error{Code: sqlite3.ErrBusy}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE email").WillReturnError(busy)
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE email").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	calls := 0
	err := db.InTx(context.Background(), func(q Querier) error {
		calls++
		_, err := q.ExecContext(context.Background(), "UPDATE email SET verified = ?", true)
		return err
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTx_InTx_IsFlattened(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := db.InTx(context.Background(), func(q Querier) error {
		outer := q
		return q.InTx(context.Background(), func(inner Querier) error {
			assert.Same(t, outer, inner)
			return nil
		})
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnixTime_ScanAndValue(t *testing.T) {
	instant := time.Unix(1_700_000_000, 0)

	v, err := UnixTime(instant).Value()
	require.NoError(t, err)
	assert.Equal(t, int64(1_700_000_000), v)

	for _, src := range []any{int64(1_700_000_000), "1700000000", []byte("1700000000"), instant} {
		var got UnixTime
		require.NoError(t, got.Scan(src))
		assert.True(t, time.Time(got).Equal(instant), "source %T", src)
	}

	var got UnixTime
	assert.Error(t, got.Scan(3.14))
	assert.Error(t, got.Scan("yesterday"))
}
