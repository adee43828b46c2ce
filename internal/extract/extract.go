// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package extract derives per-request resources from the application
// context and the authenticated request. Failures come back as
// *apperror.Error values ready for apperror.Write.
package extract

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/lowboy/internal/appctx"
	"github.com/MKhiriev/lowboy/internal/apperror"
	"github.com/MKhiriev/lowboy/internal/auth"
	"github.com/MKhiriev/lowboy/internal/events"
	"github.com/MKhiriev/lowboy/internal/model"
	"github.com/MKhiriev/lowboy/internal/store"
	"github.com/MKhiriev/lowboy/internal/workers"
)

// ErrNoAppContext is the cause reported when the request did not pass
// through appctx.Middleware.
var ErrNoAppContext = errors.New("extract: no application context on request")

// Lifter builds the application's domain user from the logged-in record.
type Lifter[U any] func(ctx context.Context, q store.Querier, record model.LowboyUserRecord) (U, error)

func appContext(r *http.Request) (*appctx.Context, error) {
	c := appctx.FromRequest(r)
	if c == nil {
		return nil, apperror.Internal(ErrNoAppContext)
	}
	return c, nil
}

// DatabaseConnection checks a connection out of the pool. The caller must
// Close it before writing the response; see [WithDatabaseConnection].
func DatabaseConnection(r *http.Request) (*store.Conn, error) {
	c, err := appContext(r)
	if err != nil {
		return nil, err
	}
	conn, err := c.DB.Conn(r.Context())
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return conn, nil
}

// WithDatabaseConnection runs fn on a pooled connection and returns the
// connection before it returns. Handlers write their response afterwards:
// the write commits the session, which needs a connection of its own.
func WithDatabaseConnection(r *http.Request, fn func(conn *store.Conn) error) error {
	conn, err := DatabaseConnection(r)
	if err != nil {
		return err
	}
	defer conn.Close()

	return fn(conn)
}

// Scheduler returns the job scheduler.
func Scheduler(r *http.Request) (*workers.Scheduler, error) {
	c, err := appContext(r)
	if err != nil {
		return nil, err
	}
	return c.Scheduler, nil
}

// Events returns the event broker.
func Events(r *http.Request) (*events.Broker, error) {
	c, err := appContext(r)
	if err != nil {
		return nil, err
	}
	return c.Events, nil
}

// AppUser lifts the logged-in user with lift. ok is false for anonymous
// requests.
func AppUser[U any](r *http.Request, lift Lifter[U]) (user U, ok bool, err error) {
	record, found := auth.UserFromContext(r.Context())
	if !found {
		return user, false, nil
	}

	var liftErr error
	err = WithDatabaseConnection(r, func(conn *store.Conn) error {
		user, liftErr = lift(r.Context(), conn, record)
		return nil
	})
	if err != nil {
		return user, false, err
	}
	if liftErr != nil {
		return user, false, apperror.Internal(liftErr)
	}
	return user, true, nil
}

// EnsureAppUser is AppUser for routes that need a user: anonymous requests
// fail with 401.
func EnsureAppUser[U any](r *http.Request, lift Lifter[U]) (U, error) {
	user, ok, err := AppUser(r, lift)
	if err != nil {
		return user, err
	}
	if !ok {
		return user, apperror.Unauthorized("")
	}
	return user, nil
}
