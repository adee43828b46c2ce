// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package lowboy

import (
	"context"
	"io/fs"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/lowboy/internal/appctx"
	"github.com/MKhiriev/lowboy/internal/auth"
	handlerhttp "github.com/MKhiriev/lowboy/internal/handler/http"
	"github.com/MKhiriev/lowboy/internal/model"
	"github.com/MKhiriev/lowboy/internal/store"
	"github.com/MKhiriev/lowboy/internal/view"
	"github.com/MKhiriev/lowboy/internal/workers"
)

// App is an application running on lowboy.
type App interface {
	// Name labels the application's log entries.
	Name() string

	// AppTitle is the app_title layout key.
	AppTitle() string

	// Routes registers the application's routes. They run behind the full
	// middleware stack; wrap them in auth.LoginRequired where needed.
	Routes(r chi.Router)

	// Migrations holds the application schema in "sqlite" and "postgres"
	// directories, or is nil.
	Migrations() fs.FS

	// Static is served under /static/, or is nil.
	Static() fs.FS

	// Layout wraps every page.
	Layout() view.Layout

	// ErrorView renders the body of error pages.
	ErrorView(status int, message string) view.Renderable

	// LiftUser builds the application's user from the logged-in record. The
	// result is handed to the layout.
	LiftUser(ctx context.Context, q store.Querier, record model.LowboyUserRecord) (any, error)

	// OnNewUser runs once for every user created by a registration or a
	// first OAuth login. Errors are logged.
	OnNewUser(ctx context.Context, q store.Querier, user model.LowboyUserRecord, details auth.RegistrationDetails) error

	// Jobs lists the application's periodic jobs. They are started after
	// boot and stopped on shutdown.
	Jobs(c *appctx.Context) []workers.Job
}

// AuthViewer is implemented by applications that restyle the login and
// registration pages.
type AuthViewer interface {
	AuthViews() handlerhttp.AuthViews
}
