// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package extract

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/lowboy/internal/appctx"
	"github.com/MKhiriev/lowboy/internal/apperror"
	"github.com/MKhiriev/lowboy/internal/auth"
	"github.com/MKhiriev/lowboy/internal/events"
	"github.com/MKhiriev/lowboy/internal/logger"
	"github.com/MKhiriev/lowboy/internal/model"
	"github.com/MKhiriev/lowboy/internal/store"
	"github.com/MKhiriev/lowboy/internal/workers"
)

func newAppContext(t *testing.T) *appctx.Context {
	t.Helper()
	db, err := store.NewConnectSQLite(context.Background(), filepath.Join(t.TempDir(), "lowboy.db"), 2, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &appctx.Context{
		DB:        db,
		Events:    events.NewBroker(logger.Nop()),
		Scheduler: workers.NewScheduler(logger.Nop()),
		Logger:    logger.Nop(),
	}
}

func request(c *appctx.Context, user *model.LowboyUserRecord) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := r.Context()
	if c != nil {
		ctx = appctx.With(ctx, c)
	}
	if user != nil {
		ctx = auth.WithUser(ctx, *user)
	}
	return r.WithContext(ctx)
}

func usernameLifter(_ context.Context, q store.Querier, record model.LowboyUserRecord) (string, error) {
	var one int
	if err := q.QueryRowContext(context.Background(), "SELECT 1").Scan(&one); err != nil {
		return "", err
	}
	return "lifted:" + record.Username, nil
}

func kindOf(t *testing.T, err error) apperror.Kind {
	t.Helper()
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	return appErr.Kind
}

func TestDatabaseConnection(t *testing.T) {
	c := newAppContext(t)

	conn, err := DatabaseConnection(request(c, nil))
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	_, err = DatabaseConnection(request(nil, nil))
	assert.Equal(t, apperror.KindInternal, kindOf(t, err))
	assert.ErrorIs(t, err, ErrNoAppContext)

	require.NoError(t, c.DB.Close())
	_, err = DatabaseConnection(request(c, nil))
	assert.Equal(t, apperror.KindInternal, kindOf(t, err))
	assert.ErrorIs(t, err, store.ErrPoolCheckout)
}

func TestWithDatabaseConnection_ReleasesConnection(t *testing.T) {
	c := newAppContext(t)
	c.DB.SetMaxOpenConns(1)
	r := request(c, nil)

	errBoom := errors.New("boom")
	for _, want := range []error{nil, errBoom} {
		err := WithDatabaseConnection(r, func(conn *store.Conn) error {
			var one int
			require.NoError(t, conn.QueryRowContext(r.Context(), "SELECT 1").Scan(&one))
			return want
		})
		assert.ErrorIs(t, err, want)

		// with a single connection in the pool this only succeeds when fn's
		// connection went back
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		conn, err := c.DB.Conn(ctx)
		cancel()
		require.NoError(t, err)
		require.NoError(t, conn.Close())
	}

	err := WithDatabaseConnection(request(nil, nil), func(*store.Conn) error {
		t.Fatal("fn must not run without an app context")
		return nil
	})
	assert.ErrorIs(t, err, ErrNoAppContext)
}

func TestSchedulerAndEvents(t *testing.T) {
	c := newAppContext(t)

	s, err := Scheduler(request(c, nil))
	require.NoError(t, err)
	assert.Same(t, c.Scheduler, s)

	b, err := Events(request(c, nil))
	require.NoError(t, err)
	assert.Same(t, c.Events, b)

	_, err = Events(request(nil, nil))
	assert.ErrorIs(t, err, ErrNoAppContext)
}

func TestAppUser(t *testing.T) {
	c := newAppContext(t)
	ada := &model.LowboyUserRecord{ID: 1, Username: "ada"}

	user, ok, err := AppUser(request(c, ada), usernameLifter)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "lifted:ada", user)

	user, ok, err = AppUser(request(c, nil), usernameLifter)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, user)

	failing := func(context.Context, store.Querier, model.LowboyUserRecord) (string, error) {
		return "", errors.New("profile missing")
	}
	_, _, err = AppUser(request(c, ada), failing)
	assert.Equal(t, apperror.KindInternal, kindOf(t, err))
}

func TestEnsureAppUser(t *testing.T) {
	c := newAppContext(t)

	user, err := EnsureAppUser(request(c, &model.LowboyUserRecord{ID: 1, Username: "ada"}), usernameLifter)
	require.NoError(t, err)
	assert.Equal(t, "lifted:ada", user)

	_, err = EnsureAppUser(request(c, nil), usernameLifter)
	assert.Equal(t, apperror.KindUnauthorized, kindOf(t, err))
	assert.Equal(t, http.StatusUnauthorized, apperror.From(err).Status())
}
