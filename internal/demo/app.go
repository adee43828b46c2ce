// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package demo is a small social feed built on lowboy: users get a profile
// when they sign up, post short messages, and see each other's posts appear
// live through the event stream.
package demo

import (
	"context"
	"embed"
	"html/template"
	"io/fs"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/lowboy/internal/appctx"
	"github.com/MKhiriev/lowboy/internal/auth"
	"github.com/MKhiriev/lowboy/internal/logger"
	"github.com/MKhiriev/lowboy/internal/lowboy"
	"github.com/MKhiriev/lowboy/internal/model"
	"github.com/MKhiriev/lowboy/internal/store"
	"github.com/MKhiriev/lowboy/internal/validators"
	"github.com/MKhiriev/lowboy/internal/view"
	"github.com/MKhiriev/lowboy/internal/workers"
)

//go:embed migrations
var migrationsFS embed.FS

//go:embed static
var staticFS embed.FS

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("demo").ParseFS(templateFS, "templates/*.html"))

// App is the demo application.
type App struct {
	validator validators.Validator
	logger    *logger.Logger
}

var _ lowboy.App = (*App)(nil)

func NewApp(log *logger.Logger) *App {
	return &App{
		validator: validators.NewFormValidator(),
		logger:    log.Component("demo"),
	}
}

func (a *App) Name() string     { return "lowboy-demo" }
func (a *App) AppTitle() string { return "Lowboy Demo" }

func (a *App) Routes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(auth.LoginRequired)
		r.Get("/", a.home)
		r.Post("/post", a.createPost)
	})
}

func (a *App) Migrations() fs.FS {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

func (a *App) Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

func (a *App) Layout() view.Layout {
	return view.DefaultLayout()
}

func (a *App) ErrorView(status int, message string) view.Renderable {
	return view.DefaultErrorView(status, message)
}

func (a *App) LiftUser(ctx context.Context, q store.Querier, record model.LowboyUserRecord) (any, error) {
	return LiftUserProfile(ctx, q, record)
}

func (a *App) OnNewUser(ctx context.Context, q store.Querier, user model.LowboyUserRecord, details auth.RegistrationDetails) error {
	profile, err := CreateProfile(ctx, q, user, details)
	if err != nil {
		return err
	}
	a.logger.Info().Int64("user_id", user.ID).Int64("profile_id", profile.ID).Str("provider", details.Provider).Msg("profile created")
	return nil
}

func (a *App) Jobs(c *appctx.Context) []workers.Job {
	return []workers.Job{HeartbeatJob(c.DB, HeartbeatInterval, a.logger)}
}
