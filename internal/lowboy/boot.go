// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package lowboy

import (
	"context"
	"crypto/rand"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/MKhiriev/lowboy/internal/appctx"
	"github.com/MKhiriev/lowboy/internal/auth"
	"github.com/MKhiriev/lowboy/internal/config"
	"github.com/MKhiriev/lowboy/internal/crypto"
	"github.com/MKhiriev/lowboy/internal/events"
	"github.com/MKhiriev/lowboy/internal/extract"
	handlerhttp "github.com/MKhiriev/lowboy/internal/handler/http"
	"github.com/MKhiriev/lowboy/internal/logger"
	"github.com/MKhiriev/lowboy/internal/session"
	"github.com/MKhiriev/lowboy/internal/store"
	"github.com/MKhiriev/lowboy/internal/utils"
	"github.com/MKhiriev/lowboy/internal/view"
	"github.com/MKhiriev/lowboy/internal/workers"
)

// ProviderTimeout bounds each request to an OAuth provider.
const ProviderTimeout = 10 * time.Second

// generatedKeyLen is the length of the signing key made up when none is
// configured.
const generatedKeyLen = 64

// Instance is a booted application.
type Instance struct {
	// Context is the shared application context.
	Context *appctx.Context
	// Router serves the application.
	Router http.Handler

	cfg    *config.StructuredConfig
	logger *logger.Logger

	mu      sync.Mutex
	serving bool
}

type options struct {
	version string
	clock   func() time.Time
}

// Option customises [Boot].
type Option func(*options)

// WithVersion sets the lowboy_version layout key.
func WithVersion(version string) Option {
	return func(o *options) { o.version = version }
}

// WithClock replaces time.Now in the framework controllers.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.clock = now }
}

// Boot prepares app for serving. On error every resource opened so far is
// released.
func Boot(ctx context.Context, app App, cfg *config.StructuredConfig, log *logger.Logger, opts ...Option) (*Instance, error) {
	o := options{version: "dev", clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	log.Info().Str("app", app.Name()).Str("version", o.version).Msg("booting")

	db, err := store.Connect(ctx, cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("connecting to the database: %w", err)
	}

	inst, err := boot(ctx, app, cfg, db, log, o)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return inst, nil
}

func boot(ctx context.Context, app App, cfg *config.StructuredConfig, db *store.DB, log *logger.Logger, o options) (*Instance, error) {
	if err := db.Migrate(app.Migrations()); err != nil {
		return nil, fmt.Errorf("migrating: %w", err)
	}

	sessionStore := session.NewSQLStore(db, log)
	if err := sessionStore.Migrate(ctx); err != nil {
		return nil, err
	}

	key, err := sessionKey(cfg, log)
	if err != nil {
		return nil, err
	}
	if !cfg.Session.Secure {
		log.Warn().Msg("session cookie is sent without the Secure attribute")
	}

	providers, err := auth.NewProviders(cfg.OAuthProviders, utils.NewHTTPClient(ProviderTimeout), log)
	if err != nil {
		return nil, fmt.Errorf("configuring oauth providers: %w", err)
	}
	backend := auth.NewBackend(crypto.NewArgon2idHasher(), providers, log,
		auth.WithNewUserHook(app.OnNewUser),
		auth.WithBackendClock(o.clock),
	)

	appCtx := &appctx.Context{
		DB:        db,
		Events:    events.NewBroker(log),
		Scheduler: workers.NewScheduler(log),
		Auth:      backend,
		Mailer:    cfg.Mailer,
		Logger:    log,
	}

	if err = appCtx.Scheduler.Add(session.SweeperJob(sessionStore, session.SweepInterval, log)); err != nil {
		return nil, err
	}
	for _, job := range app.Jobs(appCtx) {
		if err = appCtx.Scheduler.Add(job); err != nil {
			return nil, err
		}
	}

	pipeline := view.NewPipeline(
		view.WithLayout(app.Layout()),
		view.WithErrorView(app.ErrorView),
		view.WithUserLoader(userLoader(app)),
		view.WithAppTitle(app.AppTitle()),
		view.WithVersion(o.version),
	)

	handlerOpts := []handlerhttp.Option{handlerhttp.WithClock(o.clock)}
	if viewer, ok := app.(AuthViewer); ok {
		handlerOpts = append(handlerOpts, handlerhttp.WithAuthViews(viewer.AuthViews()))
	}

	sessions := session.NewManager(sessionStore, key, log, session.WithSecureCookie(cfg.Session.Secure))
	handler := handlerhttp.NewHandler(appCtx, sessions, pipeline, log, handlerOpts...)

	return &Instance{
		Context: appCtx,
		Router:  handler.Init(app.Routes, app.Static()),
		cfg:     cfg,
		logger:  log,
	}, nil
}

// sessionKey returns the configured signing key, or a random one. Sessions
// signed with a random key do not survive a restart.
func sessionKey(cfg *config.StructuredConfig, log *logger.Logger) ([]byte, error) {
	key, err := cfg.SessionKey()
	if err != nil {
		return nil, err
	}
	if key != nil {
		return key, nil
	}

	log.Warn().Msg("no session key configured, generating one; sessions will not survive a restart")
	key = make([]byte, generatedKeyLen)
	if _, err = rand.Read(key); err != nil {
		return nil, fmt.Errorf("generating session key: %w", err)
	}
	return key, nil
}

// userLoader lifts the logged-in record for the layout.
func userLoader(app App) view.UserLoader {
	return func(r *http.Request) (any, error) {
		record, ok := auth.UserFromContext(r.Context())
		if !ok {
			return nil, nil
		}

		var user any
		err := extract.WithDatabaseConnection(r, func(conn *store.Conn) error {
			var err error
			user, err = app.LiftUser(r.Context(), conn, record)
			return err
		})
		return user, err
	}
}
