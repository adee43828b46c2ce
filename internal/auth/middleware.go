// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/MKhiriev/lowboy/internal/apperror"
	"github.com/MKhiriev/lowboy/internal/logger"
	"github.com/MKhiriev/lowboy/internal/model"
	"github.com/MKhiriev/lowboy/internal/session"
	"github.com/MKhiriev/lowboy/internal/store"
	"github.com/MKhiriev/lowboy/internal/utils"
)

// LoginPath is where [LoginRequired] sends anonymous visitors.
const LoginPath = "/login"

// Middleware attaches the logged-in user to the request. Sessions naming a
// deleted user, or remembering an auth hash that no longer matches the
// user's credentials, are flushed and the request continues anonymously.
// It must run inside the session manager.
func (b *Backend) Middleware(db store.Querier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := session.FromRequest(r)
			if s == nil {
				next.ServeHTTP(w, r)
				return
			}

			log := logger.FromRequest(r)
			var userID int64
			found, err := s.Get(KeyUserID, &userID)
			if err != nil {
				log.Err(err).Str("func", "*Backend.Middleware").Msg("discarding session with an unreadable user id")
				s.Flush()
			}
			if !found || err != nil {
				next.ServeHTTP(w, r)
				return
			}

			user, err := b.GetUser(r.Context(), db, userID)
			if errors.Is(err, ErrStaleSession) {
				log.Info().Int64("user_id", userID).Msg("flushing session of a deleted user")
				s.Flush()
				next.ServeHTTP(w, r)
				return
			}
			if err != nil {
				apperror.Write(w, r, err)
				return
			}

			var hash []byte
			if _, err = s.Get(KeyAuthHash, &hash); err != nil || subtle.ConstantTimeCompare(hash, user.SessionAuthHash()) != 1 {
				log.Info().Int64("user_id", userID).Msg("flushing session with outdated credentials")
				s.Flush()
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// WithUser attaches user to ctx as the logged-in user.
func WithUser(ctx context.Context, user model.LowboyUserRecord) context.Context {
	ctx = context.WithValue(ctx, utils.AuthUserCtxKey, user)
	return context.WithValue(ctx, utils.UserIDCtxKey, user.ID)
}

// UserFromContext returns the logged-in user of ctx.
func UserFromContext(ctx context.Context) (model.LowboyUserRecord, bool) {
	user, ok := ctx.Value(utils.AuthUserCtxKey).(model.LowboyUserRecord)
	return user, ok
}

// LoginRequired answers anonymous requests with a 303 to the login page,
// passing the requested uri as the next parameter.
func LoginRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); !ok {
			utils.SeeOther(w, LoginPath+"?next="+url.QueryEscape(r.URL.RequestURI()))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SafeNext returns next when it is a local path, "/" otherwise, so login
// cannot be used to redirect to another site.
func SafeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	if u, err := url.Parse(next); err != nil || u.Host != "" {
		return "/"
	}
	return next
}
