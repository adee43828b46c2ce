// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package appctx holds the application-wide dependencies every request can
// reach: the database, the event broker, the job scheduler and the
// authentication backend.
package appctx

import (
	"context"
	"net/http"

	"github.com/MKhiriev/lowboy/internal/auth"
	"github.com/MKhiriev/lowboy/internal/config"
	"github.com/MKhiriev/lowboy/internal/events"
	"github.com/MKhiriev/lowboy/internal/logger"
	"github.com/MKhiriev/lowboy/internal/store"
	"github.com/MKhiriev/lowboy/internal/utils"
	"github.com/MKhiriev/lowboy/internal/workers"
)

// Context is shared by all requests. It is built once at boot.
type Context struct {
	DB        *store.DB
	Events    *events.Broker
	Scheduler *workers.Scheduler
	Auth      *auth.Backend
	// Mailer is carried for applications; nothing sends mail yet.
	Mailer config.Mailer

	Logger *logger.Logger
}

// Middleware attaches c to every request.
func Middleware(c *Context) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(With(r.Context(), c)))
		})
	}
}

// With attaches c to ctx.
func With(ctx context.Context, c *Context) context.Context {
	return context.WithValue(ctx, utils.AppCtxKey, c)
}

// FromContext returns the application context of ctx, or nil.
func FromContext(ctx context.Context) *Context {
	c, _ := ctx.Value(utils.AppCtxKey).(*Context)
	return c
}

// FromRequest is FromContext(r.Context()).
func FromRequest(r *http.Request) *Context {
	return FromContext(r.Context())
}
