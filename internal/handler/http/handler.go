package http

import (
	"time"

	"github.com/MKhiriev/lowboy/internal/appctx"
	"github.com/MKhiriev/lowboy/internal/logger"
	"github.com/MKhiriev/lowboy/internal/session"
	"github.com/MKhiriev/lowboy/internal/validators"
	"github.com/MKhiriev/lowboy/internal/view"
)

type Handler struct {
	app       *appctx.Context
	sessions  *session.Manager
	pipeline  *view.Pipeline
	views     AuthViews
	validator validators.Validator
	now       func() time.Time

	logger *logger.Logger
}

// Option customises [NewHandler].
type Option func(*Handler)

// WithAuthViews replaces the built-in login and registration pages.
func WithAuthViews(v AuthViews) Option {
	return func(h *Handler) {
		if v != nil {
			h.views = v
		}
	}
}

// WithClock replaces time.Now for email verification.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

func NewHandler(app *appctx.Context, sessions *session.Manager, pipeline *view.Pipeline, logger *logger.Logger, opts ...Option) *Handler {
	h := &Handler{
		app:       app,
		sessions:  sessions,
		pipeline:  pipeline,
		views:     DefaultAuthViews{},
		validator: validators.NewFormValidator(),
		now:       time.Now,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(h)
	}

	logger.Info().Msg("http handler created")
	return h
}
